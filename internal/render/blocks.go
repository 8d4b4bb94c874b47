// internal/render/blocks.go
package render

import (
	"fmt"
	"strings"

	"github.com/quartzline/b2bmailer-backend/internal/block"
)

func (c *Compiler) renderHeading(b block.Block) string {
	level := b.Level
	if level < 1 || level > 3 {
		level = 2
	}
	size := intOr(b.FontSize, headingSizes[level])
	bg := ""
	if b.BackgroundColor != "" {
		bg = "background-color:" + b.BackgroundColor + ";"
	}
	return fmt.Sprintf(
		`<tr><td style="%spadding:%s;"><h%d style="margin:0;font-family:%s;font-size:%dpx;line-height:1.3;color:%s;text-align:%s;font-weight:%s;">%s</h%d></td></tr>`+"\n",
		bg,
		paddingCSS(b, 24, 32, 8, 32),
		level,
		fontFamily(b),
		size,
		strOr(b.TextColor, defaultTextColor),
		textAlign(b),
		strOr(b.FontWeight, "bold"),
		SanitizeRichText(b.Content),
		level,
	)
}

func (c *Compiler) renderText(b block.Block) string {
	bg := ""
	if b.BackgroundColor != "" {
		bg = "background-color:" + b.BackgroundColor + ";"
	}
	return fmt.Sprintf(
		`<tr><td style="%spadding:%s;"><div style="font-family:%s;font-size:%dpx;line-height:1.6;color:%s;text-align:%s;font-weight:%s;">%s</div></td></tr>`+"\n",
		bg,
		paddingCSS(b, 8, 32, 8, 32),
		fontFamily(b),
		intOr(b.FontSize, 16),
		strOr(b.TextColor, defaultTextColor),
		textAlign(b),
		strOr(b.FontWeight, "normal"),
		SanitizeRichText(b.Content),
	)
}

// renderImage serves both image and logo blocks; they differ only in their
// default scale. FontSize doubles as "width percent" for these two types.
// Outlook ignores max-width on images, hence the v:rect path sized in px.
func (c *Compiler) renderImage(b block.Block, defaultWidthPct int) string {
	if b.Src == "" {
		return ""
	}
	pct := intOr(b.FontSize, defaultWidthPct)
	if pct < 1 {
		pct = 1
	}
	if pct > 100 {
		pct = 100
	}
	pxWidth := contentWidth * pct / 100
	radius := intOr(b.BorderRadius, 0)
	src := SafeURL(b.Src)
	alt := EscapeText(b.Alt)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<tr><td align="%s" style="padding:%s;">`, textAlign(b), paddingCSS(b, 8, 32, 8, 32)))
	sb.WriteString("\n<!--[if mso]>\n")
	sb.WriteString(fmt.Sprintf(`<v:rect xmlns:v="urn:schemas-microsoft-com:vml" stroked="false" style="width:%dpx;"><v:fill type="frame" src="%s" /></v:rect>`, pxWidth, src))
	sb.WriteString("\n<![endif]-->\n<!--[if !mso]><!-->\n")
	sb.WriteString(fmt.Sprintf(`<img src="%s" alt="%s" width="%d" style="display:block;width:%d%%;max-width:100%%;height:auto;border:0;border-radius:%dpx;margin:0 auto;" />`, src, alt, pxWidth, pct, radius))
	sb.WriteString("\n<!--<![endif]-->\n</td></tr>\n")
	return sb.String()
}

func (c *Compiler) renderButton(b block.Block) string {
	text := EscapeText(strOr(b.ButtonText, "Click here"))
	url := SafeURL(strOr(b.ButtonURL, "#"))
	color := strOr(b.ButtonColor, defaultButtonColor)
	textColor := strOr(b.ButtonTextColor, defaultButtonTextColor)
	radius := intOr(b.BorderRadius, 6)
	align := b.TextAlign
	if align != "left" && align != "right" {
		align = "center"
	}
	return fmt.Sprintf(
		`<tr><td align="%s" style="padding:%s;"><table role="presentation" cellpadding="0" cellspacing="0" border="0"><tr><td align="center" bgcolor="%s" style="border-radius:%dpx;"><a href="%s" target="_blank" style="display:inline-block;padding:12px 32px;font-family:%s;font-size:16px;font-weight:bold;color:%s;text-decoration:none;border-radius:%dpx;">%s</a></td></tr></table></td></tr>`+"\n",
		align,
		paddingCSS(b, 16, 32, 16, 32),
		color,
		radius,
		url,
		fontFamily(b),
		textColor,
		radius,
		text,
	)
}

func (c *Compiler) renderDivider(b block.Block) string {
	return fmt.Sprintf(
		`<tr><td style="padding:%s;"><table role="presentation" width="100%%" cellpadding="0" cellspacing="0" border="0"><tr><td style="border-top:1px solid %s;font-size:0;line-height:0;">&nbsp;</td></tr></table></td></tr>`+"\n",
		paddingCSS(b, 16, 32, 16, 32),
		strOr(b.BorderColor, defaultBorderColor),
	)
}

func (c *Compiler) renderSpacer(b block.Block) string {
	h := intOr(b.Padding, 24)
	if h < 1 {
		h = 1
	}
	return fmt.Sprintf(
		`<tr><td style="height:%dpx;line-height:%dpx;font-size:0;">&nbsp;</td></tr>`+"\n", h, h)
}

func (c *Compiler) renderProduct(b block.Block) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<tr><td style="padding:%s;"><table role="presentation" width="100%%" cellpadding="0" cellspacing="0" border="0" style="border:1px solid %s;border-radius:%dpx;">`,
		paddingCSS(b, 16, 32, 16, 32),
		strOr(b.BorderColor, defaultBorderColor),
		intOr(b.BorderRadius, 8)))
	if b.Src != "" {
		sb.WriteString(fmt.Sprintf(`<tr><td align="center" style="padding:16px 16px 0 16px;"><img src="%s" alt="%s" width="200" style="display:block;max-width:100%%;height:auto;border:0;" /></td></tr>`,
			SafeURL(b.Src), EscapeText(b.Alt)))
	}
	if b.Content != "" {
		sb.WriteString(fmt.Sprintf(`<tr><td align="center" style="padding:12px 16px 4px 16px;font-family:%s;font-size:%dpx;font-weight:bold;color:%s;">%s</td></tr>`,
			fontFamily(b),
			intOr(b.FontSize, 18),
			strOr(b.TextColor, defaultTextColor),
			SanitizeRichText(b.Content)))
	}
	if b.ButtonURL != "" {
		sb.WriteString(fmt.Sprintf(`<tr><td align="center" style="padding:8px 16px 16px 16px;"><a href="%s" target="_blank" style="display:inline-block;padding:10px 24px;font-family:%s;font-size:14px;font-weight:bold;color:%s;background-color:%s;text-decoration:none;border-radius:6px;">%s</a></td></tr>`,
			SafeURL(b.ButtonURL),
			fontFamily(b),
			strOr(b.ButtonTextColor, defaultButtonTextColor),
			strOr(b.ButtonColor, defaultButtonColor),
			EscapeText(strOr(b.ButtonText, "View details"))))
	}
	sb.WriteString("</table></td></tr>\n")
	return sb.String()
}

func (c *Compiler) renderSocial(b block.Block) string {
	if len(b.SocialLinks) == 0 {
		return ""
	}
	return fmt.Sprintf(
		`<tr><td align="center" style="padding:%s;">%s</td></tr>`+"\n",
		paddingCSS(b, 16, 32, 16, 32),
		c.socialIconRow(b.SocialLinks),
	)
}

// socialIconRow builds the icon strip shared by social and footer blocks.
func (c *Compiler) socialIconRow(links []block.SocialLink) string {
	var sb strings.Builder
	sb.WriteString(`<table role="presentation" cellpadding="0" cellspacing="0" border="0" style="margin:0 auto;"><tr>`)
	for _, link := range links {
		style := styleForPlatform(link.Platform)
		icon := link.IconURL
		if icon == "" {
			icon = style.IconURL
		}
		sb.WriteString(fmt.Sprintf(
			`<td style="padding:0 6px;"><a href="%s" target="_blank"><img src="%s" alt="%s" width="32" height="32" style="display:block;border-radius:50%%;background-color:%s;" /></a></td>`,
			SafeURL(link.URL),
			SafeURL(icon),
			EscapeText(link.Platform),
			style.Color,
		))
	}
	sb.WriteString(`</tr></table>`)
	return sb.String()
}

func (c *Compiler) renderFooter(b block.Block) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<tr><td style="background-color:%s;padding:%s;" align="center">`,
		strOr(b.BackgroundColor, defaultFooterBackground),
		paddingCSS(b, 32, 32, 32, 32)))
	if len(b.SocialLinks) > 0 {
		sb.WriteString(c.socialIconRow(b.SocialLinks))
		sb.WriteString(`<div style="height:16px;line-height:16px;font-size:0;">&nbsp;</div>`)
	}
	font := fontFamily(b)
	muted := strOr(b.TextColor, defaultMutedColor)
	if b.CompanyName != "" {
		sb.WriteString(fmt.Sprintf(`<div style="font-family:%s;font-size:14px;font-weight:bold;color:%s;">%s</div>`,
			font, strOr(b.TextColor, defaultTextColor), EscapeText(b.CompanyName)))
	}
	if b.Address != "" {
		sb.WriteString(fmt.Sprintf(`<div style="font-family:%s;font-size:12px;line-height:1.6;color:%s;padding-top:4px;">%s</div>`,
			font, muted, EscapeText(b.Address)))
	}
	sb.WriteString(fmt.Sprintf(`<div style="font-family:%s;font-size:12px;color:%s;padding-top:8px;">&copy; %d %s. All rights reserved.</div>`,
		font, muted, c.Year, EscapeText(strOr(b.CompanyName, "Company"))))
	sb.WriteString(fmt.Sprintf(`<div style="font-family:%s;font-size:12px;padding-top:8px;"><a href="%s" style="color:%s;text-decoration:underline;">%s</a></div>`,
		font, UnsubscribePlaceholder, muted, EscapeText(strOr(b.UnsubscribeText, "Unsubscribe"))))
	sb.WriteString("</td></tr>\n")
	return sb.String()
}

func (c *Compiler) renderSection(b block.Block) string {
	var sb strings.Builder
	bg := ""
	if b.BackgroundColor != "" {
		bg = "background-color:" + b.BackgroundColor + ";"
	}
	radius := ""
	if b.BorderRadius != nil {
		radius = fmt.Sprintf("border-radius:%dpx;", *b.BorderRadius)
	}
	sb.WriteString(fmt.Sprintf(`<tr><td style="%s%spadding:%s;"><table role="presentation" width="100%%" cellpadding="0" cellspacing="0" border="0">`,
		bg, radius, paddingCSS(b, 16, 0, 16, 0)))
	sb.WriteString("\n")
	for _, child := range b.Children {
		sb.WriteString(c.renderBlock(child, true))
	}
	sb.WriteString("</table></td></tr>\n")
	return sb.String()
}

func (c *Compiler) renderColumns(b block.Block) string {
	lanes := b.Columns
	if len(lanes) == 0 {
		return ""
	}
	pct := 100 / len(lanes)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<tr><td style="padding:%s;"><table role="presentation" width="100%%" cellpadding="0" cellspacing="0" border="0"><tr>`,
		paddingCSS(b, 8, 16, 8, 16)))
	sb.WriteString("\n")
	for _, lane := range lanes {
		sb.WriteString(fmt.Sprintf(`<td class="stack-column" width="%d%%" valign="top" style="width:%d%%;padding:0 8px;"><table role="presentation" width="100%%" cellpadding="0" cellspacing="0" border="0">`, pct, pct))
		sb.WriteString("\n")
		for _, child := range lane {
			sb.WriteString(c.renderBlock(child, true))
		}
		sb.WriteString("</table></td>\n")
	}
	sb.WriteString("</tr></table></td></tr>\n")
	return sb.String()
}

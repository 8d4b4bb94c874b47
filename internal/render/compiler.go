// internal/render/compiler.go
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/quartzline/b2bmailer-backend/internal/block"
)

// Rendering defaults. These values are part of the persisted-output contract:
// previews are diffed against cached html_content, so changing any of them
// changes every stored template projection.
const (
	contentWidth = 600

	defaultTextColor       = "#1a1a1a"
	defaultMutedColor      = "#666666"
	defaultButtonColor     = "#00bed6"
	defaultButtonTextColor = "#ffffff"
	defaultFontFamily      = "Arial, sans-serif"
	defaultBorderColor     = "#e2e2e2"
	defaultBodyBackground  = "#f4f4f5"
	defaultFooterBackground = "#f5f5f5"
)

// headingSizes maps heading level to its default font size in px.
var headingSizes = map[int]int{1: 28, 2: 24, 3: 20}

// UnsubscribePlaceholder is emitted verbatim by footer rendering. The
// compiler has no recipient context; resolution happens at send time in the
// personalization layer.
const UnsubscribePlaceholder = "{{unsubscribe_url}}"

// Compiler turns a block document into a complete email-client-safe HTML
// page. It is pure: same input, same output, byte for byte. Year is injected
// so footer copyright lines are reproducible in tests.
type Compiler struct {
	Year int
}

// New returns a compiler stamped with the current year.
func New() *Compiler {
	return &Compiler{Year: time.Now().Year()}
}

// Compile renders the document. It never fails: unknown block types render
// to nothing and absent fields fall back to defaults, because a template
// must always produce something previewable.
func (c *Compiler) Compile(blocks []block.Block, title string) string {
	var rows strings.Builder
	for _, b := range blocks {
		rows.WriteString(c.renderBlock(b, false))
	}

	escTitle := EscapeText(title)

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString(`<html lang="en" xmlns="http://www.w3.org/1999/xhtml" xmlns:v="urn:schemas-microsoft-com:vml" xmlns:o="urn:schemas-microsoft-com:office:office">`)
	sb.WriteString("\n<head>\n")
	sb.WriteString("<meta charset=\"utf-8\">\n")
	sb.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString("<meta http-equiv=\"X-UA-Compatible\" content=\"IE=edge\">\n")
	sb.WriteString("<meta name=\"color-scheme\" content=\"light dark\">\n")
	sb.WriteString("<meta name=\"supported-color-schemes\" content=\"light dark\">\n")
	sb.WriteString("<title>" + escTitle + "</title>\n")
	// Outlook renders at Word-engine DPI unless told otherwise.
	sb.WriteString("<!--[if mso]>\n<noscript><xml><o:OfficeDocumentSettings><o:PixelsPerInch>96</o:PixelsPerInch></o:OfficeDocumentSettings></xml></noscript>\n<![endif]-->\n")
	sb.WriteString("<style>\n")
	sb.WriteString("body{margin:0;padding:0;-webkit-text-size-adjust:100%;-ms-text-size-adjust:100%;}\n")
	sb.WriteString("table{border-collapse:collapse;mso-table-lspace:0pt;mso-table-rspace:0pt;}\n")
	sb.WriteString("img{border:0;outline:none;text-decoration:none;-ms-interpolation-mode:bicubic;}\n")
	sb.WriteString("@media only screen and (max-width: 600px){\n")
	sb.WriteString(".email-container{width:100% !important;max-width:100% !important;}\n")
	sb.WriteString(".stack-column{display:block !important;width:100% !important;max-width:100% !important;}\n")
	sb.WriteString("}\n")
	sb.WriteString("@media (prefers-color-scheme: dark){\n")
	sb.WriteString("body,.email-body{background-color:#1a1a1a !important;}\n")
	sb.WriteString(".email-container{background-color:#2d2d2d !important;}\n")
	sb.WriteString("}\n")
	sb.WriteString("</style>\n</head>\n")
	sb.WriteString(`<body style="margin:0;padding:0;background-color:` + defaultBodyBackground + `;">` + "\n")
	// Preheader: hidden in the body, shown by inbox list views next to the subject.
	sb.WriteString(`<span style="display:none;font-size:1px;color:#ffffff;line-height:1px;max-height:0;max-width:0;opacity:0;overflow:hidden;mso-hide:all;">` + escTitle + "</span>\n")
	sb.WriteString(`<table role="presentation" class="email-body" width="100%" cellpadding="0" cellspacing="0" border="0" style="background-color:` + defaultBodyBackground + `;">` + "\n")
	sb.WriteString(`<tr><td align="center" style="padding:24px 8px;">` + "\n")
	sb.WriteString(fmt.Sprintf("<!--[if mso]>\n<table role=\"presentation\" width=\"%d\" align=\"center\" cellpadding=\"0\" cellspacing=\"0\" border=\"0\"><tr><td>\n<![endif]-->\n", contentWidth))
	sb.WriteString(fmt.Sprintf(`<table role="presentation" class="email-container" align="center" width="%d" cellpadding="0" cellspacing="0" border="0" style="width:%dpx;max-width:%dpx;background-color:#ffffff;margin:0 auto;">`, contentWidth, contentWidth, contentWidth))
	sb.WriteString("\n")
	sb.WriteString(rows.String())
	sb.WriteString("</table>\n")
	sb.WriteString("<!--[if mso]>\n</td></tr></table>\n<![endif]-->\n")
	sb.WriteString("</td></tr></table>\n</body>\n</html>\n")
	return sb.String()
}

// renderBlock dispatches on block type. nested marks rendering inside a
// section or column lane, where the container types are not part of the rule
// set: a section-in-section renders nothing at all.
func (c *Compiler) renderBlock(b block.Block, nested bool) string {
	switch b.Type {
	case block.TypeHeading:
		return c.renderHeading(b)
	case block.TypeText:
		return c.renderText(b)
	case block.TypeImage:
		return c.renderImage(b, 100)
	case block.TypeLogo:
		return c.renderImage(b, 40)
	case block.TypeButton:
		return c.renderButton(b)
	case block.TypeDivider:
		return c.renderDivider(b)
	case block.TypeSpacer:
		return c.renderSpacer(b)
	case block.TypeProduct:
		return c.renderProduct(b)
	case block.TypeSocial:
		return c.renderSocial(b)
	case block.TypeFooter:
		return c.renderFooter(b)
	case block.TypeSection:
		if nested {
			return ""
		}
		return c.renderSection(b)
	case block.TypeColumns:
		if nested {
			return ""
		}
		return c.renderColumns(b)
	default:
		return ""
	}
}

// ---- style helpers ----

func intOr(p *int, def int) int {
	if p != nil {
		return *p
	}
	return def
}

func strOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// paddingCSS resolves the uniform/four-sided padding fields against per-type
// defaults, shorthand order top right bottom left.
func paddingCSS(b block.Block, top, right, bottom, left int) string {
	if b.Padding != nil {
		return fmt.Sprintf("%dpx", *b.Padding)
	}
	return fmt.Sprintf("%dpx %dpx %dpx %dpx",
		intOr(b.PaddingTop, top),
		intOr(b.PaddingRight, right),
		intOr(b.PaddingBottom, bottom),
		intOr(b.PaddingLeft, left))
}

func textAlign(b block.Block) string {
	switch b.TextAlign {
	case "left", "center", "right":
		return b.TextAlign
	}
	return "left"
}

func fontFamily(b block.Block) string {
	return strOr(b.FontFamily, defaultFontFamily)
}

package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartzline/b2bmailer-backend/internal/block"
	"github.com/quartzline/b2bmailer-backend/internal/render"
)

func testCompiler() *render.Compiler {
	return &render.Compiler{Year: 2025}
}

func TestCompileIsDeterministic(t *testing.T) {
	blocks := []block.Block{
		block.NewHeading("b1", "Launch week", 1),
		block.NewText("b2", "We shipped."),
		block.NewButton("b3", "Read more", "https://example.com/blog"),
		block.NewFooter("b4", "Quartzline Ltd", "12 Harbour Rd, Tema", ""),
	}
	c := testCompiler()

	first := c.Compile(blocks, "Launch")
	second := c.Compile(blocks, "Launch")

	assert.Equal(t, first, second)
}

func TestCompileDocumentShell(t *testing.T) {
	html := testCompiler().Compile([]block.Block{block.NewText("b1", "hi")}, "My Campaign")

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>My Campaign</title>")
	// Preheader mirrors the title for inbox list views.
	assert.Contains(t, html, `mso-hide:all;">My Campaign</span>`)
	// Outlook DPI fix and fixed-width wrapper.
	assert.Contains(t, html, "<o:PixelsPerInch>96</o:PixelsPerInch>")
	assert.Contains(t, html, `<table role="presentation" width="600"`)
	assert.Contains(t, html, "max-width:600px")
	// Mobile stacking and dark mode support.
	assert.Contains(t, html, "@media only screen and (max-width: 600px)")
	assert.Contains(t, html, "@media (prefers-color-scheme: dark)")
}

func TestCompileEmptyDocumentStillRenders(t *testing.T) {
	html := testCompiler().Compile(nil, "Empty")

	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "<title>Empty</title>")
}

func TestCompileEscapesTitle(t *testing.T) {
	html := testCompiler().Compile(nil, `<script>alert(1)</script>`)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestHeadingDefaultsByLevel(t *testing.T) {
	c := testCompiler()

	h1 := c.Compile([]block.Block{block.NewHeading("b", "One", 1)}, "t")
	h3 := c.Compile([]block.Block{block.NewHeading("b", "Three", 3)}, "t")
	bogus := c.Compile([]block.Block{{Type: block.TypeHeading, Content: "Bogus", Level: 9}}, "t")

	assert.Contains(t, h1, "<h1")
	assert.Contains(t, h1, "font-size:28px")
	assert.Contains(t, h3, "<h3")
	assert.Contains(t, h3, "font-size:20px")
	// Out-of-range level falls back to h2.
	assert.Contains(t, bogus, "<h2")
	assert.Contains(t, bogus, "font-size:24px")
}

func TestTextDefaults(t *testing.T) {
	html := testCompiler().Compile([]block.Block{block.NewText("b", "body copy")}, "t")

	assert.Contains(t, html, "font-size:16px")
	assert.Contains(t, html, "color:#1a1a1a")
	assert.Contains(t, html, "Arial, sans-serif")
	assert.Contains(t, html, "text-align:left")
}

func TestTextStyleOverrides(t *testing.T) {
	b := block.NewText("b", "styled")
	b.FontSize = block.IntPtr(20)
	b.TextColor = "#ff0000"
	b.TextAlign = "center"

	html := testCompiler().Compile([]block.Block{b}, "t")

	assert.Contains(t, html, "font-size:20px")
	assert.Contains(t, html, "color:#ff0000")
	assert.Contains(t, html, "text-align:center")
}

func TestButtonDefaults(t *testing.T) {
	html := testCompiler().Compile([]block.Block{block.NewButton("b", "", "")}, "t")

	assert.Contains(t, html, ">Click here</a>")
	assert.Contains(t, html, `href="#"`)
	assert.Contains(t, html, `bgcolor="#00bed6"`)
	assert.Contains(t, html, "border-radius:6px")
}

func TestImageRendersBothOutlookAndStandardPaths(t *testing.T) {
	b := block.NewImage("b", "https://cdn.example.com/hero.png", "Hero shot")

	html := testCompiler().Compile([]block.Block{b}, "t")

	assert.Contains(t, html, "<v:rect")
	assert.Contains(t, html, `<v:fill type="frame" src="https://cdn.example.com/hero.png" />`)
	assert.Contains(t, html, `<img src="https://cdn.example.com/hero.png" alt="Hero shot"`)
	// Full-width image: 100% of the 600px canvas.
	assert.Contains(t, html, `width="600"`)
	assert.Contains(t, html, "<!--[if mso]>")
	assert.Contains(t, html, "<!--[if !mso]><!-->")
}

func TestImageWithoutSourceRendersNothing(t *testing.T) {
	b := block.Block{ID: "x", Type: block.TypeImage}

	html := testCompiler().Compile([]block.Block{b}, "t")

	assert.NotContains(t, html, "<img")
	assert.NotContains(t, html, "<v:rect")
}

func TestLogoDefaultsToFortyPercentWidth(t *testing.T) {
	html := testCompiler().Compile([]block.Block{block.NewLogo("b", "https://cdn.example.com/logo.png", "Logo")}, "t")

	// 40% of 600px.
	assert.Contains(t, html, `width="240"`)
}

func TestSpacerHeight(t *testing.T) {
	html := testCompiler().Compile([]block.Block{block.NewSpacer("b", 40)}, "t")

	assert.Contains(t, html, "height:40px")
}

func TestDividerUsesBorderColor(t *testing.T) {
	b := block.NewDivider("b")
	b.BorderColor = "#123456"

	html := testCompiler().Compile([]block.Block{b}, "t")

	assert.Contains(t, html, "border-top:1px solid #123456")
}

func TestProductCard(t *testing.T) {
	b := block.NewProduct("p1", "Widget Pro", "https://cdn.example.com/widget.png", "https://shop.example.com/widget")

	html := testCompiler().Compile([]block.Block{b}, "t")

	assert.Contains(t, html, "Widget Pro")
	assert.Contains(t, html, `src="https://cdn.example.com/widget.png"`)
	assert.Contains(t, html, `href="https://shop.example.com/widget"`)
	assert.Contains(t, html, ">View details</a>")
}

func TestSocialKnownPlatformAndFallback(t *testing.T) {
	b := block.NewSocial("b",
		block.SocialLink{Platform: "facebook", URL: "https://facebook.com/acme"},
		block.SocialLink{Platform: "myspace", URL: "https://myspace.com/acme"},
	)

	html := testCompiler().Compile([]block.Block{b}, "t")

	assert.Contains(t, html, "#1877f2") // facebook brand color
	assert.Contains(t, html, "#6b7280") // neutral fallback
	assert.Contains(t, html, `href="https://facebook.com/acme"`)
}

func TestSocialWithoutLinksRendersNothing(t *testing.T) {
	html := testCompiler().Compile([]block.Block{block.NewSocial("b")}, "t")

	assert.NotContains(t, html, `width="32"`)
}

func TestFooterEmitsUnsubscribePlaceholderVerbatim(t *testing.T) {
	html := testCompiler().Compile([]block.Block{block.NewFooter("b", "Quartzline Ltd", "12 Harbour Rd", "")}, "t")

	assert.Contains(t, html, `href="{{unsubscribe_url}}"`)
	assert.Contains(t, html, "Quartzline Ltd")
	assert.Contains(t, html, "12 Harbour Rd")
	assert.Contains(t, html, "&copy; 2025 Quartzline Ltd. All rights reserved.")
	assert.Contains(t, html, ">Unsubscribe</a>")
}

func TestSectionRendersChildrenAndStyling(t *testing.T) {
	section := block.NewSection("s",
		block.NewHeading("h", "Inside", 2),
		block.NewText("t", "nested copy"),
	)
	section.BackgroundColor = "#eef2ff"
	section.BorderRadius = block.IntPtr(12)

	html := testCompiler().Compile([]block.Block{section}, "t")

	assert.Contains(t, html, "background-color:#eef2ff")
	assert.Contains(t, html, "border-radius:12px")
	assert.Contains(t, html, "Inside")
	assert.Contains(t, html, "nested copy")
}

func TestNestedContainersRenderNothing(t *testing.T) {
	// One level of nesting only: a section inside a section contributes
	// nothing, but its siblings still render. Hand-assembled blocks bypass
	// the constructor's containment filter on purpose here.
	inner := block.Block{Type: block.TypeSection, Children: []block.Block{block.NewText("d", "too deep")}}
	outer := block.Block{Type: block.TypeSection, Children: []block.Block{
		inner,
		block.NewText("s", "sibling survives"),
	}}

	html := testCompiler().Compile([]block.Block{outer}, "t")

	assert.NotContains(t, html, "too deep")
	assert.Contains(t, html, "sibling survives")
}

func TestColumnsSplitWidthEvenly(t *testing.T) {
	cols := block.NewColumns("c",
		[]block.Block{block.NewText("l", "left")},
		[]block.Block{block.NewText("m", "middle")},
		[]block.Block{block.NewText("r", "right")},
	)

	html := testCompiler().Compile([]block.Block{cols}, "t")

	assert.Contains(t, html, `class="stack-column" width="33%"`)
	assert.Contains(t, html, "left")
	assert.Contains(t, html, "middle")
	assert.Contains(t, html, "right")
}

func TestColumnsRejectNestedContainers(t *testing.T) {
	cols := block.Block{Type: block.TypeColumns, Columns: [][]block.Block{
		{{Type: block.TypeColumns, Columns: [][]block.Block{{block.NewText("g", "grid in grid")}}}},
		{block.NewText("p", "plain lane")},
	}}

	html := testCompiler().Compile([]block.Block{cols}, "t")

	assert.NotContains(t, html, "grid in grid")
	assert.Contains(t, html, "plain lane")
}

func TestUnknownBlockTypeIsSkipped(t *testing.T) {
	blocks := []block.Block{
		{Type: "hologram", Content: "from the future"},
		block.NewText("b", "still here"),
	}

	html := testCompiler().Compile(blocks, "t")

	assert.NotContains(t, html, "from the future")
	assert.Contains(t, html, "still here")
}

func TestRichTextBlocksKeepFormattingStripScripts(t *testing.T) {
	b := block.NewText("b", `Hello <strong>world</strong><script>alert(1)</script>`)

	html := testCompiler().Compile([]block.Block{b}, "t")

	assert.Contains(t, html, "<strong>world</strong>")
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "alert(1)")
}

func TestPlainTextFieldsAreEscaped(t *testing.T) {
	footer := block.NewFooter("f", `Acme <img src=x onerror=alert(1)>`, "addr", "")
	button := block.NewButton("b", `<em>Go</em>`, "https://example.com")

	html := testCompiler().Compile([]block.Block{footer, button}, "t")

	assert.NotContains(t, html, "<img src=x")
	assert.Contains(t, html, "&lt;img src=x")
	assert.NotContains(t, html, "<em>Go</em>")
	assert.Contains(t, html, "&lt;em&gt;Go&lt;/em&gt;")
}

func TestNewStampsCurrentYear(t *testing.T) {
	c := render.New()
	require.NotZero(t, c.Year)
	assert.GreaterOrEqual(t, c.Year, 2025)
}

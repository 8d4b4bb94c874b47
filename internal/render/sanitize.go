// internal/render/sanitize.go
package render

import (
	"html"
	"regexp"
	"strings"
)

// Rich-text fields are HTML on purpose: the editor produces bold, italic,
// lists and inline styles that must survive compilation. So this is a
// denylist of known-dangerous constructs, not an allowlist sanitizer.
// Everything that is NOT rich text goes through EscapeText instead.
var (
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	scriptTagRe   = regexp.MustCompile(`(?i)</?\s*script\b[^>]*>`)
	eventAttrRe   = regexp.MustCompile(`(?i)\s+on\w+\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
	jsHrefRe      = regexp.MustCompile(`(?i)(href\s*=\s*)(["'])\s*javascript:[^"']*(["'])`)
	jsHrefBareRe  = regexp.MustCompile(`(?i)href\s*=\s*javascript:[^\s>]*`)
	cssExprRe     = regexp.MustCompile(`(?i)expression\s*\([^)]*\)`)
)

// SanitizeRichText strips script tags (with their content), inline event
// handlers, javascript: link targets and CSS expression() calls from an HTML
// fragment, leaving other markup untouched.
func SanitizeRichText(s string) string {
	s = scriptBlockRe.ReplaceAllString(s, "")
	s = scriptTagRe.ReplaceAllString(s, "")
	s = eventAttrRe.ReplaceAllString(s, "")
	s = jsHrefRe.ReplaceAllString(s, `$1$2#$3`)
	s = jsHrefBareRe.ReplaceAllString(s, `href="#"`)
	s = cssExprRe.ReplaceAllString(s, "")
	return s
}

// EscapeText entity-escapes a plain-text value for embedding in markup or an
// attribute. Plain-text fields are never HTML; anything that looks like
// markup in them is data, not structure.
func EscapeText(s string) string {
	return html.EscapeString(s)
}

// SafeURL neutralizes javascript: targets and escapes the rest for attribute
// position. Personalization tokens like {{unsubscribe_url}} pass through
// untouched apart from escaping, which does not alter them.
func SafeURL(u string) string {
	trimmed := strings.TrimSpace(u)
	if strings.HasPrefix(strings.ToLower(trimmed), "javascript:") {
		return "#"
	}
	return html.EscapeString(trimmed)
}

// internal/service/personalize.go
package service

import (
	"net/url"
	"strings"

	"github.com/quartzline/b2bmailer-backend/internal/model"
	"github.com/quartzline/b2bmailer-backend/internal/render"
)

// fallbackName replaces {{name}} for subscribers who never gave one.
const fallbackName = "Subscriber"

// Sample values used by preview rendering, where there is no real recipient.
const (
	sampleName  = "Jane Doe"
	sampleEmail = "subscriber@example.com"
)

// Personalize substitutes the per-recipient tokens in compiled campaign HTML.
// strings.Replacer walks the input once, so a substituted value can never be
// re-matched by a later token (a name containing "{{email}}" stays literal).
// Values are entity-escaped before insertion; the surrounding HTML is not
// touched, so nothing gets double-encoded.
func Personalize(html string, sub model.Subscriber, baseURL string) string {
	name := strings.TrimSpace(sub.Name)
	if name == "" {
		name = fallbackName
	}
	r := strings.NewReplacer(
		"{{name}}", render.EscapeText(name),
		"{{email}}", render.EscapeText(sub.Email),
		"{{unsubscribe_url}}", UnsubscribeURL(baseURL, sub.Email),
	)
	return r.Replace(html)
}

// PersonalizeSample fills the same tokens with placeholder values. Preview
// and dispatch share this one substitution layer on purpose: a round-trip
// test on preview exercises the send-time path too.
func PersonalizeSample(html string) string {
	r := strings.NewReplacer(
		"{{name}}", sampleName,
		"{{email}}", sampleEmail,
		"{{unsubscribe_url}}", "#",
	)
	return r.Replace(html)
}

// UnsubscribeURL builds the literal query-string contract consumed by the
// unsubscribe handler: <base-url>/unsubscribe?email=<url-encoded-email>.
func UnsubscribeURL(baseURL, email string) string {
	return strings.TrimRight(baseURL, "/") + "/unsubscribe?email=" + url.QueryEscape(email)
}

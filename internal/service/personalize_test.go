package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quartzline/b2bmailer-backend/internal/model"
	"github.com/quartzline/b2bmailer-backend/internal/service"
)

func TestPersonalizeReplacesAllTokens(t *testing.T) {
	html := `<p>Hi {{name}}</p><p>{{name}}, we sent this to {{email}}.</p><a href="{{unsubscribe_url}}">out</a>`
	sub := model.Subscriber{Email: "a@b.com", Name: "A"}

	got := service.Personalize(html, sub, "https://x.example.com")

	assert.Equal(t, `<p>Hi A</p><p>A, we sent this to a@b.com.</p><a href="https://x.example.com/unsubscribe?email=a%40b.com">out</a>`, got)
}

func TestPersonalizeNoCrossSubstitution(t *testing.T) {
	// A name containing a token must stay literal; single-pass replacement
	// never re-scans inserted values.
	sub := model.Subscriber{Email: "a@b.com", Name: "{{email}}"}

	got := service.Personalize("Hello {{name}}!", sub, "https://x.example.com")

	assert.Equal(t, "Hello {{email}}!", got)
}

func TestPersonalizeFallbackName(t *testing.T) {
	sub := model.Subscriber{Email: "a@b.com", Name: "  "}

	got := service.Personalize("Hello {{name}}", sub, "https://x.example.com")

	assert.Equal(t, "Hello Subscriber", got)
}

func TestPersonalizeEscapesValues(t *testing.T) {
	sub := model.Subscriber{Email: "a@b.com", Name: `<b onclick="x">Ann</b>`}

	got := service.Personalize("Hello {{name}}", sub, "https://x.example.com")

	assert.NotContains(t, got, "<b")
	assert.Contains(t, got, "&lt;b")
}

func TestPersonalizeSample(t *testing.T) {
	html := `Hi {{name}} ({{email}}) <a href="{{unsubscribe_url}}">x</a>`

	got := service.PersonalizeSample(html)

	assert.NotContains(t, got, "{{name}}")
	assert.NotContains(t, got, "{{email}}")
	assert.Contains(t, got, `href="#"`)
}

func TestUnsubscribeURLEncodesEmail(t *testing.T) {
	got := service.UnsubscribeURL("https://x.example.com/", "a+b@c.com")

	assert.Equal(t, "https://x.example.com/unsubscribe?email=a%2Bb%40c.com", got)
}

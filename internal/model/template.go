// internal/model/template.go
package model

import (
	"encoding/json"
	"time"
)

// Template is an email template. Content (the block document) is the source
// of truth; HTMLContent is a regenerable projection that must be recompiled
// on every content write and never edited on its own.
type Template struct {
	ID          int             `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Subject     string          `db:"subject" json:"subject"`
	Content     json.RawMessage `db:"content" json:"content"`
	HTMLContent string          `db:"html_content" json:"html_content"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time      `db:"updated_at" json:"updated_at,omitempty"`
}

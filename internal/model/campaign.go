// internal/model/campaign.go
package model

import "time"

// Campaign statuses. There is deliberately no "failed" terminal status: a
// dispatch that delivers nothing reverts the campaign to draft so the
// operator can fix and retry. Partial delivery is visible through SentCount.
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusScheduled = "scheduled"
	CampaignStatusSending   = "sending"
	CampaignStatusSent      = "sent"
)

type Campaign struct {
	ID          int        `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	TemplateID  *int       `db:"template_id" json:"template_id,omitempty"`
	Subject     string     `db:"subject" json:"subject"`
	Status      string     `db:"status" json:"status"`
	ScheduledAt *time.Time `db:"scheduled_at" json:"scheduled_at,omitempty"`
	SentAt      *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	SentCount   int        `db:"sent_count" json:"sent_count"`
	OpenCount   int        `db:"open_count" json:"open_count"`
	ClickCount  int        `db:"click_count" json:"click_count"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

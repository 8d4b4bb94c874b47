// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// Not-found and precondition failures are typed so workflows can map them to
// user-facing messages without string matching at call sites.

type ErrCampaignNotFound struct {
	CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

func NewCampaignNotFound(id int) error {
	return &ErrCampaignNotFound{CampaignID: id}
}

type ErrTemplateNotFound struct {
	TemplateID int
}

func (e *ErrTemplateNotFound) Error() string {
	return fmt.Sprintf("template with ID %d not found", e.TemplateID)
}

func NewTemplateNotFound(id int) error {
	return &ErrTemplateNotFound{TemplateID: id}
}

type ErrInquiryNotFound struct {
	InquiryID int
}

func (e *ErrInquiryNotFound) Error() string {
	return fmt.Sprintf("inquiry with ID %d not found", e.InquiryID)
}

func NewInquiryNotFound(id int) error {
	return &ErrInquiryNotFound{InquiryID: id}
}

// ErrNoActiveSubscribers signals a dispatch precondition failure: the check
// runs before any status mutation, so an empty list never marks a campaign
// as sending.
var ErrNoActiveSubscribers = errors.New("no active subscribers found")

// ErrTemplateUnlinked signals a campaign whose template reference was
// cleared after the template was deleted.
var ErrTemplateUnlinked = errors.New("campaign has no linked template")

// IsNotFound reports whether err is any of the typed not-found errors.
func IsNotFound(err error) bool {
	var c *ErrCampaignNotFound
	var t *ErrTemplateNotFound
	var i *ErrInquiryNotFound
	return errors.As(err, &c) || errors.As(err, &t) || errors.As(err, &i)
}

// internal/mailer/postmark.go
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"

	"github.com/quartzline/b2bmailer-backend/internal/config"
)

var (
	ErrInvalidConfig = errors.New("mailer: invalid config")
	ErrSendFailed    = errors.New("mailer: failed to send email")
)

type postmarkSender struct {
	client  *postmark.Client
	from    string
	replyTo string
}

// NewPostmarkSender builds the production transport. Both tokens and a
// sender address are required so a half-configured deployment fails at
// startup instead of silently dropping campaign mail.
func NewPostmarkSender(cfg config.Config) (EmailSender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: POSTMARK_SERVER_TOKEN is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: POSTMARK_ACCOUNT_TOKEN is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SENDER_EMAIL is required", ErrInvalidConfig)
	}
	return &postmarkSender{
		client:  postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		from:    cfg.SenderEmail,
		replyTo: cfg.ReplyToEmail,
	}, nil
}

func (s *postmarkSender) Send(ctx context.Context, params SendParams) error {
	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:       s.from,
		ReplyTo:    s.replyTo,
		To:         params.To,
		Subject:    params.Subject,
		HTMLBody:   params.HTML,
		Tag:        params.Tag,
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	})
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(ErrSendFailed, fmt.Errorf("postmark error %d: %s", resp.ErrorCode, resp.Message))
	}
	return nil
}

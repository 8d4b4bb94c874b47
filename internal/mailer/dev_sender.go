// internal/mailer/dev_sender.go
package mailer

import (
	"context"
	"log/slog"
)

// devSender logs instead of delivering. Selected automatically when no
// Postmark token is configured so local environments can never email real
// subscribers.
type devSender struct {
	log *slog.Logger
}

func NewDevSender(log *slog.Logger) EmailSender {
	return &devSender{log: log}
}

func (s *devSender) Send(_ context.Context, params SendParams) error {
	s.log.Info("dev sender: email not delivered",
		"to", params.To,
		"subject", params.Subject,
		"tag", params.Tag,
		"html_bytes", len(params.HTML),
	)
	return nil
}

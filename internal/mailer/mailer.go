// internal/mailer/mailer.go
package mailer

import "context"

// EmailSender is the transport boundary. Every call is independently
// fallible; callers own pacing and aggregation, the transport owns per-call
// timeouts. No retries happen at this layer.
type EmailSender interface {
	Send(ctx context.Context, params SendParams) error
}

// SendParams describes one outbound email.
type SendParams struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Tag     string `json:"tag,omitempty"`
}

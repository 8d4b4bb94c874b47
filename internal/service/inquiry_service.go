// internal/service/inquiry_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/quartzline/b2bmailer-backend/internal/mailer"
	"github.com/quartzline/b2bmailer-backend/internal/model"
	"github.com/quartzline/b2bmailer-backend/internal/render"
	"github.com/quartzline/b2bmailer-backend/internal/repository"
)

// Quote carries the priced offer attached to an inquiry reply.
type Quote struct {
	UnitPrice float64 `json:"unit_price"`
	Currency  string  `json:"currency"`
	Notes     string  `json:"notes,omitempty"`
}

// InquiryService handles quote-request conversations: append to the thread
// log, then email the inquirer. Every interpolated value in these emails is
// plain text and gets entity-escaped; inquirers do not write HTML.
type InquiryService struct {
	InquiryRepo repository.InquiryRepositoryInterface
	Sender      mailer.EmailSender
	Log         *slog.Logger
	CompanyName string
}

// Reply appends an admin message to the inquiry thread and emails it to the
// inquirer. The thread write happens first: the conversation log must
// reflect the reply even if the email bounces.
func (s *InquiryService) Reply(ctx context.Context, inquiryID int, message string) (*model.Inquiry, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("reply message cannot be empty")
	}

	inquiry, err := s.InquiryRepo.GetByID(inquiryID)
	if err != nil {
		return nil, err
	}

	threads := append(inquiry.MessageThreads, model.MessageThread{
		Sender:    "admin",
		Message:   message,
		Timestamp: time.Now(),
	})
	if err := s.InquiryRepo.AppendThread(inquiryID, threads, model.InquiryStatusReplied); err != nil {
		return nil, err
	}
	inquiry.MessageThreads = threads
	inquiry.Status = model.InquiryStatusReplied

	html := s.replyHTML(inquiry, message)
	if err := s.Sender.Send(ctx, mailer.SendParams{
		To:      inquiry.Email,
		Subject: fmt.Sprintf("Re: your inquiry about %s", inquiry.ProductName),
		HTML:    html,
		Tag:     "inquiry-reply",
	}); err != nil {
		s.Log.Error("failed to send inquiry reply", "inquiry_id", inquiryID, "err", err)
		return inquiry, fmt.Errorf("reply saved but email delivery failed")
	}
	return inquiry, nil
}

// SendQuote emails a priced quote for the inquiry and records it on the
// thread. Same trust boundary as Reply: all values strictly escaped.
func (s *InquiryService) SendQuote(ctx context.Context, inquiryID int, quote Quote) (*model.Inquiry, error) {
	if quote.UnitPrice <= 0 {
		return nil, fmt.Errorf("quote unit price must be positive")
	}
	if quote.Currency == "" {
		quote.Currency = "USD"
	}

	inquiry, err := s.InquiryRepo.GetByID(inquiryID)
	if err != nil {
		return nil, err
	}

	total := quote.UnitPrice * float64(inquiry.Quantity)
	summary := fmt.Sprintf("Quote sent: %d x %s at %.2f %s (total %.2f %s)",
		inquiry.Quantity, inquiry.ProductName, quote.UnitPrice, quote.Currency, total, quote.Currency)

	threads := append(inquiry.MessageThreads, model.MessageThread{
		Sender:    "admin",
		Message:   summary,
		Timestamp: time.Now(),
	})
	if err := s.InquiryRepo.AppendThread(inquiryID, threads, model.InquiryStatusQuoted); err != nil {
		return nil, err
	}
	inquiry.MessageThreads = threads
	inquiry.Status = model.InquiryStatusQuoted

	html := s.quoteHTML(inquiry, quote, total)
	if err := s.Sender.Send(ctx, mailer.SendParams{
		To:      inquiry.Email,
		Subject: fmt.Sprintf("Your quote for %s", inquiry.ProductName),
		HTML:    html,
		Tag:     "inquiry-quote",
	}); err != nil {
		s.Log.Error("failed to send quote", "inquiry_id", inquiryID, "err", err)
		return inquiry, fmt.Errorf("quote saved but email delivery failed")
	}
	return inquiry, nil
}

func (s *InquiryService) replyHTML(inquiry *model.Inquiry, message string) string {
	name := render.EscapeText(strOrDefault(inquiry.Name, "there"))
	company := render.EscapeText(strOrDefault(s.CompanyName, "Our team"))
	// Admin replies are typed as plain text; newlines become breaks.
	body := strings.ReplaceAll(render.EscapeText(message), "\n", "<br/>")
	return fmt.Sprintf(transactionalShell,
		fmt.Sprintf(`<p style="margin:0 0 12px 0;">Hi %s,</p><p style="margin:0 0 12px 0;">%s</p><p style="margin:0;">Best regards,<br/>%s</p>`,
			name, body, company))
}

func (s *InquiryService) quoteHTML(inquiry *model.Inquiry, quote Quote, total float64) string {
	name := render.EscapeText(strOrDefault(inquiry.Name, "there"))
	company := render.EscapeText(strOrDefault(s.CompanyName, "Our team"))
	product := render.EscapeText(inquiry.ProductName)
	currency := render.EscapeText(quote.Currency)

	var notes string
	if quote.Notes != "" {
		notes = fmt.Sprintf(`<p style="margin:12px 0 0 0;font-size:13px;color:#666666;">%s</p>`, render.EscapeText(quote.Notes))
	}

	table := fmt.Sprintf(`<table role="presentation" width="100%%" cellpadding="8" cellspacing="0" border="0" style="border:1px solid #e2e2e2;border-collapse:collapse;font-size:14px;">`+
		`<tr style="background-color:#f5f5f5;"><th align="left" style="border:1px solid #e2e2e2;">Product</th><th align="right" style="border:1px solid #e2e2e2;">Qty</th><th align="right" style="border:1px solid #e2e2e2;">Unit price</th><th align="right" style="border:1px solid #e2e2e2;">Total</th></tr>`+
		`<tr><td style="border:1px solid #e2e2e2;">%s</td><td align="right" style="border:1px solid #e2e2e2;">%d</td><td align="right" style="border:1px solid #e2e2e2;">%.2f %s</td><td align="right" style="border:1px solid #e2e2e2;">%.2f %s</td></tr>`+
		`</table>`,
		product, inquiry.Quantity, quote.UnitPrice, currency, total, currency)

	return fmt.Sprintf(transactionalShell,
		fmt.Sprintf(`<p style="margin:0 0 12px 0;">Hi %s,</p><p style="margin:0 0 12px 0;">Thank you for your inquiry. Please find our quote below:</p>%s%s<p style="margin:16px 0 0 0;">Best regards,<br/>%s</p>`,
			name, table, notes, company))
}

// transactionalShell is the minimal wrapper for one-off operational emails.
// Campaign mail goes through the full block compiler instead.
const transactionalShell = `<!DOCTYPE html>
<html><body style="margin:0;padding:0;background-color:#f4f4f5;">
<table role="presentation" width="100%%" cellpadding="0" cellspacing="0" border="0"><tr><td align="center" style="padding:24px 8px;">
<table role="presentation" width="600" cellpadding="0" cellspacing="0" border="0" style="max-width:600px;background-color:#ffffff;">
<tr><td style="padding:32px;font-family:Arial, sans-serif;font-size:15px;line-height:1.6;color:#1a1a1a;">%s</td></tr>
</table></td></tr></table>
</body></html>`

func strOrDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// internal/service/dispatch_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/quartzline/b2bmailer-backend/internal/block"
	"github.com/quartzline/b2bmailer-backend/internal/mailer"
	"github.com/quartzline/b2bmailer-backend/internal/model"
	"github.com/quartzline/b2bmailer-backend/internal/render"
	"github.com/quartzline/b2bmailer-backend/internal/repository"
)

// Batch tuning. Size and delay pace the fan-out against the email
// transport's rate limits; neither is a correctness requirement, but the
// delay must stay between batches, never inside one.
const (
	defaultBatchSize  = 10
	batchDelay        = time.Second
	maxSurfacedErrors = 3
)

// SendError records one recipient that could not be delivered to.
type SendError struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

// DispatchResult is the structured outcome of one dispatch attempt. Errors
// holds every per-recipient failure; Error is the user-facing summary, set
// only when the attempt as a whole failed.
type DispatchResult struct {
	Success          bool        `json:"success"`
	SentCount        int         `json:"sent_count"`
	TotalSubscribers int         `json:"total_subscribers"`
	Errors           []SendError `json:"errors,omitempty"`
	Error            string      `json:"error,omitempty"`
}

// DispatchService runs the campaign send workflow: load, batch, fan out,
// aggregate, transition. Its one hard contract is that the persisted
// campaign status after Dispatch returns is never "sending", on any path.
type DispatchService struct {
	CampaignRepo   repository.CampaignRepositoryInterface
	TemplateRepo   repository.TemplateRepositoryInterface
	SubscriberRepo repository.SubscriberRepositoryInterface
	Sender         mailer.EmailSender
	Compiler       *render.Compiler
	Log            *slog.Logger

	BaseURL string
	// BatchSize overrides defaultBatchSize when > 0 (per-deployment tuning).
	BatchSize int
	// Delay overrides batchDelay in tests. Nil means the default pacing.
	Delay *time.Duration
}

func (s *DispatchService) batchSize() int {
	if s.BatchSize > 0 {
		return s.BatchSize
	}
	return defaultBatchSize
}

func (s *DispatchService) delay() time.Duration {
	if s.Delay != nil {
		return *s.Delay
	}
	return batchDelay
}

// Dispatch sends the campaign to every active subscriber. It never returns
// an error; every failure mode is folded into the result so the HTTP layer
// can hand the message straight to the operator.
func (s *DispatchService) Dispatch(ctx context.Context, campaignID int) (result DispatchResult) {
	// Whatever goes wrong below, the campaign must not stay stuck in
	// "sending" after this call returns.
	var sendingPersisted bool
	defer func() {
		if r := recover(); r != nil {
			s.Log.Error("dispatch panicked", "campaign_id", campaignID, "panic", r)
			if sendingPersisted {
				s.revertToDraft(campaignID)
			}
			result = DispatchResult{Success: false, Error: "failed to send campaign"}
		}
	}()

	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return DispatchResult{Success: false, Error: "campaign not found"}
	}
	if campaign.Status != model.CampaignStatusDraft && campaign.Status != model.CampaignStatusScheduled {
		return DispatchResult{Success: false, Error: fmt.Sprintf("campaign cannot be sent in status: %s", campaign.Status)}
	}

	if campaign.TemplateID == nil {
		return DispatchResult{Success: false, Error: "template not found"}
	}
	template, err := s.TemplateRepo.GetByID(*campaign.TemplateID)
	if err != nil {
		return DispatchResult{Success: false, Error: "template not found"}
	}

	subscribers, err := s.SubscriberRepo.ListActive()
	if err != nil {
		s.Log.Error("failed to load subscribers", "campaign_id", campaignID, "err", err)
		return DispatchResult{Success: false, Error: "failed to load subscribers"}
	}
	if len(subscribers) == 0 {
		return DispatchResult{Success: false, Error: "no active subscribers found"}
	}

	html, err := s.templateHTML(template)
	if err != nil {
		s.Log.Error("failed to render template", "template_id", template.ID, "err", err)
		return DispatchResult{Success: false, Error: "failed to render template"}
	}
	subject := campaign.Subject
	if subject == "" {
		subject = template.Subject
	}

	// Point of no return: the in-flight state becomes externally visible
	// before the first send attempt.
	if err := s.CampaignRepo.UpdateStatus(campaignID, model.CampaignStatusSending); err != nil {
		s.Log.Error("failed to mark campaign sending", "campaign_id", campaignID, "err", err)
		return DispatchResult{Success: false, Error: "failed to update campaign status"}
	}
	sendingPersisted = true

	sentCount, sendErrors := s.sendBatches(ctx, campaign, subject, html, subscribers)

	result = DispatchResult{
		SentCount:        sentCount,
		TotalSubscribers: len(subscribers),
		Errors:           sendErrors,
	}

	if sentCount > 0 {
		if err := s.CampaignRepo.MarkSent(campaignID, time.Now(), sentCount); err != nil {
			s.Log.Error("failed to mark campaign sent", "campaign_id", campaignID, "err", err)
			s.revertToDraft(campaignID)
			result.Success = false
			result.Error = "failed to update campaign status"
			return result
		}
		result.Success = true
		return result
	}

	s.revertToDraft(campaignID)
	result.Success = false
	result.Error = summarizeErrors(sendErrors)
	return result
}

// TestSend delivers the campaign to a single address without touching
// campaign state, so an operator can proof a draft in a real inbox. The
// recipient is personalized like any subscriber would be.
func (s *DispatchService) TestSend(ctx context.Context, campaignID int, email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email is required")
	}

	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return err
	}
	if campaign.TemplateID == nil {
		return fmt.Errorf("template not found")
	}
	template, err := s.TemplateRepo.GetByID(*campaign.TemplateID)
	if err != nil {
		return fmt.Errorf("template not found")
	}

	html, err := s.templateHTML(template)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	subject := campaign.Subject
	if subject == "" {
		subject = template.Subject
	}

	personalized := Personalize(html, model.Subscriber{Email: email}, s.BaseURL)
	return s.Sender.Send(ctx, mailer.SendParams{
		To:      email,
		Subject: "[Test] " + subject,
		HTML:    personalized,
		Tag:     fmt.Sprintf("campaign-%d-test", campaign.ID),
	})
}

// sendBatches fans each batch out concurrently, joins it, then paces before
// the next one. A recipient failure never cancels its siblings; it is
// captured and the batch keeps settling.
func (s *DispatchService) sendBatches(ctx context.Context, campaign *model.Campaign, subject, html string, subscribers []model.Subscriber) (int, []SendError) {
	size := s.batchSize()
	var (
		mu         sync.Mutex
		sentCount  int
		sendErrors []SendError
	)

	for start := 0; start < len(subscribers); start += size {
		end := start + size
		if end > len(subscribers) {
			end = len(subscribers)
		}
		batch := subscribers[start:end]

		var wg sync.WaitGroup
		for _, sub := range batch {
			wg.Add(1)
			go func(sub model.Subscriber) {
				defer wg.Done()
				// A panicking send must not take its siblings (or the
				// process) down; it becomes one more recipient failure.
				defer func() {
					if r := recover(); r != nil {
						mu.Lock()
						sendErrors = append(sendErrors, SendError{Email: sub.Email, Error: fmt.Sprintf("send panicked: %v", r)})
						mu.Unlock()
					}
				}()
				personalized := Personalize(html, sub, s.BaseURL)
				err := s.Sender.Send(ctx, mailer.SendParams{
					To:      sub.Email,
					Subject: subject,
					HTML:    personalized,
					Tag:     fmt.Sprintf("campaign-%d", campaign.ID),
				})
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					s.Log.Warn("send failed", "campaign_id", campaign.ID, "to", sub.Email, "err", err)
					sendErrors = append(sendErrors, SendError{Email: sub.Email, Error: err.Error()})
					return
				}
				sentCount++
			}(sub)
		}
		wg.Wait()

		if end < len(subscribers) {
			time.Sleep(s.delay())
		}
	}
	return sentCount, sendErrors
}

// templateHTML prefers the persisted projection and recompiles from the
// block document when the cache is empty.
func (s *DispatchService) templateHTML(t *model.Template) (string, error) {
	if t.HTMLContent != "" {
		return t.HTMLContent, nil
	}
	blocks, err := block.ParseDocument(t.Content)
	if err != nil {
		return "", err
	}
	return s.Compiler.Compile(blocks, t.Name), nil
}

func (s *DispatchService) revertToDraft(campaignID int) {
	if err := s.CampaignRepo.UpdateStatus(campaignID, model.CampaignStatusDraft); err != nil {
		// Nothing left to do but tell the operator; the campaign may need a
		// manual status reset.
		s.Log.Error("failed to revert campaign to draft", "campaign_id", campaignID, "err", err)
	}
}

func summarizeErrors(errs []SendError) string {
	if len(errs) == 0 {
		return "failed to send campaign"
	}
	n := len(errs)
	if n > maxSurfacedErrors {
		n = maxSurfacedErrors
	}
	parts := make([]string, 0, n)
	for _, e := range errs[:n] {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Email, e.Error))
	}
	return "failed to send campaign: " + strings.Join(parts, "; ")
}

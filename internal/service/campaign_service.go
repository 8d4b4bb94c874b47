// internal/service/campaign_service.go
package service

import (
	"fmt"
	"time"

	"github.com/quartzline/b2bmailer-backend/internal/model"
	"github.com/quartzline/b2bmailer-backend/internal/repository"
)

// CampaignService covers campaign CRUD. Sending lives in DispatchService.
type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	TemplateRepo repository.TemplateRepositoryInterface
}

func (s *CampaignService) CreateCampaign(name, subject string, templateID int, scheduledAt *string) (*model.Campaign, error) {
	// Reject dangling references up front; a campaign created against a
	// deleted template would only fail later, at dispatch.
	if _, err := s.TemplateRepo.GetByID(templateID); err != nil {
		return nil, err
	}

	c := &model.Campaign{
		Name:       name,
		Subject:    subject,
		TemplateID: &templateID,
		Status:     model.CampaignStatusDraft,
	}

	if scheduledAt != nil && *scheduledAt != "" {
		t, err := time.Parse(time.RFC3339, *scheduledAt)
		if err != nil {
			return nil, fmt.Errorf("invalid scheduled_at: %w", err)
		}
		c.ScheduledAt = &t
		c.Status = model.CampaignStatusScheduled
	}

	if err := s.CampaignRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCampaigns fetches campaigns with pagination.
func (s *CampaignService) ListCampaigns(page, pageSize int, status string) ([]model.Campaign, map[string]int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	ptrs, total, err := s.CampaignRepo.ListCampaigns(offset, pageSize, status)
	if err != nil {
		return nil, nil, err
	}

	campaigns := make([]model.Campaign, len(ptrs))
	for i, c := range ptrs {
		campaigns[i] = *c
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}

	return campaigns, pagination, nil
}

func (s *CampaignService) GetCampaign(id int) (*model.Campaign, error) {
	return s.CampaignRepo.GetByID(id)
}

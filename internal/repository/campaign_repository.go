package repository

import (
	"database/sql"
	"fmt"
	"time"

	appErrors "github.com/quartzline/b2bmailer-backend/internal/errors"
	"github.com/quartzline/b2bmailer-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	Create(c *model.Campaign) error
	GetByID(id int) (*model.Campaign, error)
	ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error)
	UpdateStatus(campaignID int, status string) error
	MarkSent(campaignID int, sentAt time.Time, sentCount int) error
	UnlinkTemplate(templateID int) error
}

type CampaignRepository struct {
	DB *sql.DB
}

func (r *CampaignRepository) Create(c *model.Campaign) error {
	c.CreatedAt = time.Now()
	if c.Status == "" {
		c.Status = model.CampaignStatusDraft
	}
	query := `
        INSERT INTO campaigns (name, template_id, subject, status, scheduled_at, sent_count, open_count, click_count, created_at)
        VALUES ($1, $2, $3, $4, $5, 0, 0, 0, $6)
        RETURNING id
    `
	return r.DB.QueryRow(query, c.Name, c.TemplateID, c.Subject, c.Status, c.ScheduledAt, c.CreatedAt).Scan(&c.ID)
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
	query := `
        SELECT id, name, template_id, subject, status, scheduled_at, sent_at, sent_count, open_count, click_count, created_at, updated_at
        FROM campaigns WHERE id=$1
    `
	var c model.Campaign
	err := r.DB.QueryRow(query, id).Scan(
		&c.ID, &c.Name, &c.TemplateID, &c.Subject, &c.Status,
		&c.ScheduledAt, &c.SentAt, &c.SentCount, &c.OpenCount, &c.ClickCount,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
	campaigns := []*model.Campaign{}
	query := `SELECT id, name, template_id, subject, status, scheduled_at, sent_at, sent_count, open_count, click_count, created_at, updated_at FROM campaigns WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		c := &model.Campaign{}
		if err := rows.Scan(
			&c.ID, &c.Name, &c.TemplateID, &c.Subject, &c.Status,
			&c.ScheduledAt, &c.SentAt, &c.SentCount, &c.OpenCount, &c.ClickCount,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		campaigns = append(campaigns, c)
	}

	countQuery := `SELECT COUNT(*) FROM campaigns WHERE 1=1`
	argsCount := []interface{}{}
	if status != "" {
		countQuery += " AND status=$1"
		argsCount = append(argsCount, status)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

func (r *CampaignRepository) UpdateStatus(campaignID int, status string) error {
	query := `UPDATE campaigns SET status=$1, updated_at=$2 WHERE id=$3`
	_, err := r.DB.Exec(query, status, time.Now(), campaignID)
	return err
}

// MarkSent records the terminal success state in one write so status and
// sent_count cannot drift apart within this statement.
func (r *CampaignRepository) MarkSent(campaignID int, sentAt time.Time, sentCount int) error {
	query := `UPDATE campaigns SET status=$1, sent_at=$2, sent_count=$3, updated_at=$4 WHERE id=$5`
	_, err := r.DB.Exec(query, model.CampaignStatusSent, sentAt, sentCount, time.Now(), campaignID)
	return err
}

// UnlinkTemplate clears template_id on campaigns referencing a deleted
// template. Dispatch on such a campaign then fails fast with a typed error.
func (r *CampaignRepository) UnlinkTemplate(templateID int) error {
	query := `UPDATE campaigns SET template_id=NULL, updated_at=$1 WHERE template_id=$2`
	_, err := r.DB.Exec(query, time.Now(), templateID)
	return err
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)

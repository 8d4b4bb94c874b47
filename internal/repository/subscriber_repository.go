package repository

import (
	"database/sql"
	"time"

	"github.com/quartzline/b2bmailer-backend/internal/model"
)

type SubscriberRepositoryInterface interface {
	// ListActive is always a fresh read; dispatch must see the subscriber
	// set as of send time, not as of campaign creation.
	ListActive() ([]model.Subscriber, error)
	ListAll() ([]model.Subscriber, error)
	Create(s *model.Subscriber) error
	GetByEmail(email string) (*model.Subscriber, error)
	UpdateStatusByEmail(email, status string) error
}

type SubscriberRepository struct {
	DB *sql.DB
}

func (r *SubscriberRepository) ListActive() ([]model.Subscriber, error) {
	return r.list(`SELECT id, email, name, status, created_at FROM subscribers WHERE status=$1 ORDER BY id`, model.SubscriberStatusActive)
}

func (r *SubscriberRepository) ListAll() ([]model.Subscriber, error) {
	return r.list(`SELECT id, email, name, status, created_at FROM subscribers ORDER BY id`)
}

func (r *SubscriberRepository) list(query string, args ...interface{}) ([]model.Subscriber, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subscribers := []model.Subscriber{}
	for rows.Next() {
		var s model.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.Name, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		subscribers = append(subscribers, s)
	}
	return subscribers, nil
}

func (r *SubscriberRepository) Create(s *model.Subscriber) error {
	s.CreatedAt = time.Now()
	if s.Status == "" {
		s.Status = model.SubscriberStatusActive
	}
	query := `
        INSERT INTO subscribers (email, name, status, created_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (email) DO UPDATE SET name=EXCLUDED.name, status=EXCLUDED.status
        RETURNING id
    `
	return r.DB.QueryRow(query, s.Email, s.Name, s.Status, s.CreatedAt).Scan(&s.ID)
}

func (r *SubscriberRepository) GetByEmail(email string) (*model.Subscriber, error) {
	query := `SELECT id, email, name, status, created_at FROM subscribers WHERE email=$1`
	var s model.Subscriber
	err := r.DB.QueryRow(query, email).Scan(&s.ID, &s.Email, &s.Name, &s.Status, &s.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SubscriberRepository) UpdateStatusByEmail(email, status string) error {
	query := `UPDATE subscribers SET status=$1 WHERE email=$2`
	_, err := r.DB.Exec(query, status, email)
	return err
}

var _ SubscriberRepositoryInterface = (*SubscriberRepository)(nil)

package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	appErrors "github.com/quartzline/b2bmailer-backend/internal/errors"
	"github.com/quartzline/b2bmailer-backend/internal/model"
)

type TemplateRepositoryInterface interface {
	Create(t *model.Template) error
	GetByID(id int) (*model.Template, error)
	ListAll() ([]model.Template, error)
	// UpdateContent persists the block document together with its compiled
	// projection. The two always travel in the same statement.
	UpdateContent(id int, name, subject string, content json.RawMessage, htmlContent string) error
	Delete(id int) error
}

type TemplateRepository struct {
	DB *sql.DB
}

func (r *TemplateRepository) Create(t *model.Template) error {
	t.CreatedAt = time.Now()
	query := `
        INSERT INTO templates (name, subject, content, html_content, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	return r.DB.QueryRow(query, t.Name, t.Subject, []byte(t.Content), t.HTMLContent, t.CreatedAt).Scan(&t.ID)
}

func (r *TemplateRepository) GetByID(id int) (*model.Template, error) {
	query := `
        SELECT id, name, subject, content, html_content, created_at, updated_at
        FROM templates WHERE id=$1
    `
	var t model.Template
	var content []byte
	err := r.DB.QueryRow(query, id).Scan(&t.ID, &t.Name, &t.Subject, &content, &t.HTMLContent, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewTemplateNotFound(id)
		}
		return nil, err
	}
	t.Content = json.RawMessage(content)
	return &t, nil
}

func (r *TemplateRepository) ListAll() ([]model.Template, error) {
	query := `
        SELECT id, name, subject, content, html_content, created_at, updated_at
        FROM templates ORDER BY id DESC
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []model.Template{}
	for rows.Next() {
		var t model.Template
		var content []byte
		if err := rows.Scan(&t.ID, &t.Name, &t.Subject, &content, &t.HTMLContent, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.Content = json.RawMessage(content)
		templates = append(templates, t)
	}
	return templates, nil
}

func (r *TemplateRepository) UpdateContent(id int, name, subject string, content json.RawMessage, htmlContent string) error {
	query := `
        UPDATE templates
        SET name=$1, subject=$2, content=$3, html_content=$4, updated_at=NOW()
        WHERE id=$5
    `
	res, err := r.DB.Exec(query, name, subject, []byte(content), htmlContent, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return appErrors.NewTemplateNotFound(id)
	}
	return nil
}

func (r *TemplateRepository) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM templates WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return appErrors.NewTemplateNotFound(id)
	}
	return nil
}

var _ TemplateRepositoryInterface = (*TemplateRepository)(nil)

package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	appErrors "github.com/quartzline/b2bmailer-backend/internal/errors"
	"github.com/quartzline/b2bmailer-backend/internal/model"
)

type InquiryRepositoryInterface interface {
	Create(i *model.Inquiry) error
	GetByID(id int) (*model.Inquiry, error)
	ListAll() ([]model.Inquiry, error)
	// AppendThread persists the grown conversation log with the new status.
	// The log is append-only: callers pass the full list with one entry added.
	AppendThread(id int, threads []model.MessageThread, status string) error
}

type InquiryRepository struct {
	DB *sql.DB
}

func (r *InquiryRepository) Create(i *model.Inquiry) error {
	i.CreatedAt = time.Now()
	if i.Status == "" {
		i.Status = model.InquiryStatusNew
	}
	if i.MessageThreads == nil {
		i.MessageThreads = []model.MessageThread{}
	}
	threads, err := json.Marshal(i.MessageThreads)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO inquiries (name, email, company, product_name, quantity, message, status, message_threads, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `
	return r.DB.QueryRow(query, i.Name, i.Email, i.Company, i.ProductName, i.Quantity, i.Message, i.Status, threads, i.CreatedAt).Scan(&i.ID)
}

func (r *InquiryRepository) GetByID(id int) (*model.Inquiry, error) {
	query := `
        SELECT id, name, email, company, product_name, quantity, message, status, message_threads, created_at, updated_at
        FROM inquiries WHERE id=$1
    `
	var i model.Inquiry
	var threads []byte
	err := r.DB.QueryRow(query, id).Scan(
		&i.ID, &i.Name, &i.Email, &i.Company, &i.ProductName, &i.Quantity,
		&i.Message, &i.Status, &threads, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewInquiryNotFound(id)
		}
		return nil, err
	}
	if len(threads) > 0 {
		if err := json.Unmarshal(threads, &i.MessageThreads); err != nil {
			return nil, err
		}
	}
	return &i, nil
}

func (r *InquiryRepository) ListAll() ([]model.Inquiry, error) {
	query := `
        SELECT id, name, email, company, product_name, quantity, message, status, message_threads, created_at, updated_at
        FROM inquiries ORDER BY id DESC
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inquiries := []model.Inquiry{}
	for rows.Next() {
		var i model.Inquiry
		var threads []byte
		if err := rows.Scan(
			&i.ID, &i.Name, &i.Email, &i.Company, &i.ProductName, &i.Quantity,
			&i.Message, &i.Status, &threads, &i.CreatedAt, &i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if len(threads) > 0 {
			if err := json.Unmarshal(threads, &i.MessageThreads); err != nil {
				return nil, err
			}
		}
		inquiries = append(inquiries, i)
	}
	return inquiries, nil
}

func (r *InquiryRepository) AppendThread(id int, threads []model.MessageThread, status string) error {
	data, err := json.Marshal(threads)
	if err != nil {
		return err
	}
	query := `UPDATE inquiries SET message_threads=$1, status=$2, updated_at=NOW() WHERE id=$3`
	res, err := r.DB.Exec(query, data, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return appErrors.NewInquiryNotFound(id)
	}
	return nil
}

var _ InquiryRepositoryInterface = (*InquiryRepository)(nil)

// internal/model/inquiry.go
package model

import "time"

const (
	InquiryStatusNew     = "new"
	InquiryStatusReplied = "replied"
	InquiryStatusQuoted  = "quoted"
	InquiryStatusClosed  = "closed"
)

// MessageThread is one entry of an inquiry's conversation log. The log is
// append-only: replies add entries, nothing rewrites history.
type MessageThread struct {
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Inquiry is a quote request submitted against the catalog.
type Inquiry struct {
	ID             int             `db:"id" json:"id"`
	Name           string          `db:"name" json:"name"`
	Email          string          `db:"email" json:"email"`
	Company        string          `db:"company" json:"company"`
	ProductName    string          `db:"product_name" json:"product_name"`
	Quantity       int             `db:"quantity" json:"quantity"`
	Message        string          `db:"message" json:"message"`
	Status         string          `db:"status" json:"status"`
	MessageThreads []MessageThread `db:"message_threads" json:"message_threads"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      *time.Time      `db:"updated_at" json:"updated_at,omitempty"`
}

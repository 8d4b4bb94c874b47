// internal/model/subscriber.go
package model

import "time"

const (
	SubscriberStatusActive       = "active"
	SubscriberStatusUnsubscribed = "unsubscribed"
)

// Subscriber is one recipient on the mailing list. Only active subscribers
// are eligible for campaign dispatch, and the active set is read fresh at
// dispatch time rather than cached.
type Subscriber struct {
	ID        int       `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

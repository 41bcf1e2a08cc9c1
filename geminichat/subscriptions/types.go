package subscriptions

import (
	"time"

	"codeberg.org/geminichat/server/internal/storage"
)

const (
	TierBasic = "basic"
	TierPro   = "pro"

	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusCanceled = "canceled"
)

// handles subscription database operations
type Repository struct {
	db storage.DB
}

// one subscription record per user
type Subscription struct {
	UserID               string     `json:"-"`
	Tier                 string     `json:"tier"`
	Status               string     `json:"status"`
	StripeCustomerID     *string    `json:"-"`
	StripeSubscriptionID *string    `json:"-"`
	StartedAt            *time.Time `json:"started_at"`
	EndsAt               *time.Time `json:"ends_at"`
}

// data recorded when a checkout completes
type Activation struct {
	UserID               string
	StripeCustomerID     string
	StripeSubscriptionID string
	StartedAt            time.Time
}

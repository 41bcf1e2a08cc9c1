package billing

import (
	"errors"

	"github.com/stripe/stripe-go/v79"
)

var (
	ErrNotConfigured = errors.New("stripe billing not configured")
	ErrInvalidEvent  = errors.New("invalid webhook event")
)

// stripe event types the server acts on
const (
	EventCheckoutCompleted    = "checkout.session.completed"
	EventSubscriptionDeleted  = "customer.subscription.deleted"
	metadataUserID            = "user_id"
	checkoutSessionIDTemplate = "session_id={CHECKOUT_SESSION_ID}"
)

type Config struct {
	APIKey        string
	WebhookSecret string
	ProPriceID    string
	SuccessURL    string
	CancelURL     string
}

// creates a checkout session, session.New in production
type SessionCreator func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)

// wraps stripe checkout and webhook event handling
type Service struct {
	config     Config
	newSession SessionCreator
}

// the parts of a webhook event the subscription store needs
type Event struct {
	ID             string
	Type           string
	UserID         string
	CustomerID     string
	SubscriptionID string
}

package subscriptions

import (
	"context"
	"time"

	"codeberg.org/geminichat/server/geminichat/subscriptions"
	"codeberg.org/geminichat/server/internal/billing"
)

// stripe documents 64KB as the upper bound of an event payload
const maxWebhookBody = 65536

// subscription persistence needed by the handlers
type SubscriptionStore interface {
	Get(ctx context.Context, userID string) (*subscriptions.Subscription, error)
	ActivatePro(ctx context.Context, a subscriptions.Activation) error
	DeactivateBySubscriptionID(ctx context.Context, stripeSubscriptionID string, endedAt time.Time) (bool, error)
}

// payment provider operations, implemented by billing.Service
type Billing interface {
	CreateProCheckout(userID string) (string, error)
	ParseEvent(payload []byte, signature string) (*billing.Event, error)
}

type CheckoutData struct {
	CheckoutURL string `json:"checkout_url"`
}

type WebhookResponse struct {
	Status string `json:"status"`
}

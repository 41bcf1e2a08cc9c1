package billing

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
)

// creates the billing service and sets the process-wide stripe key
func NewService(config Config) *Service {
	if config.APIKey != "" {
		stripe.Key = config.APIKey
	}

	return &Service{config: config, newSession: session.New}
}

// reports whether checkout can be created
func (s *Service) CheckoutEnabled() bool {
	return s.config.APIKey != "" && s.config.ProPriceID != ""
}

// starts a pro subscription checkout for the user and returns its URL
func (s *Service) CreateProCheckout(userID string) (string, error) {
	if !s.CheckoutEnabled() {
		return "", ErrNotConfigured
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.config.ProPriceID),
				Quantity: stripe.Int64(1),
			},
		},
		ClientReferenceID: stripe.String(userID),
		SuccessURL:        stripe.String(withSessionID(s.config.SuccessURL)),
		CancelURL:         stripe.String(s.config.CancelURL),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{metadataUserID: userID},
		},
	}
	params.AddMetadata(metadataUserID, userID)

	sess, err := s.newSession(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	return sess.URL, nil
}

// verifies and decodes a webhook delivery via stripe-go
func (s *Service) ParseEvent(payload []byte, signature string) (*Event, error) {
	if s.config.WebhookSecret == "" {
		return nil, ErrNotConfigured
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, s.config.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	out := &Event{ID: event.ID, Type: string(event.Type)}

	switch out.Type {
	case EventCheckoutCompleted:
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("%w: checkout session payload: %v", ErrInvalidEvent, err)
		}

		out.UserID = sess.Metadata[metadataUserID]
		if out.UserID == "" {
			out.UserID = sess.ClientReferenceID
		}

		if out.UserID == "" {
			return nil, fmt.Errorf("%w: checkout session without user id", ErrInvalidEvent)
		}

		if sess.Customer != nil {
			out.CustomerID = sess.Customer.ID
		}

		if sess.Subscription != nil {
			out.SubscriptionID = sess.Subscription.ID
		}

	case EventSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("%w: subscription payload: %v", ErrInvalidEvent, err)
		}

		out.SubscriptionID = sub.ID
		out.UserID = sub.Metadata[metadataUserID]

		if sub.Customer != nil {
			out.CustomerID = sub.Customer.ID
		}
	}

	return out, nil
}

func withSessionID(successURL string) string {
	if successURL == "" || strings.Contains(successURL, "{CHECKOUT_SESSION_ID}") {
		return successURL
	}

	sep := "?"
	if strings.Contains(successURL, "?") {
		sep = "&"
	}

	return successURL + sep + checkoutSessionIDTemplate
}

package billing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

const testWebhookSecret = "whsec_test_secret"

func newTestService(creator SessionCreator) *Service {
	s := &Service{
		config: Config{
			APIKey:        "sk_test_123",
			WebhookSecret: testWebhookSecret,
			ProPriceID:    "price_pro",
			SuccessURL:    "https://example.test/success",
			CancelURL:     "https://example.test/cancel",
		},
		newSession: creator,
	}

	return s
}

func sign(t *testing.T, payload string) string {
	t.Helper()

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    testWebhookSecret,
		Timestamp: time.Now(),
	})

	return signed.Header
}

func TestCreateProCheckout(t *testing.T) {
	var got *stripe.CheckoutSessionParams

	s := newTestService(func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		got = params
		return &stripe.CheckoutSession{URL: "https://checkout.stripe.test/c/pay/cs_1"}, nil
	})

	url, err := s.CreateProCheckout("user-1")

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.test/c/pay/cs_1", url)
	require.NotNil(t, got)
	assert.Equal(t, "subscription", *got.Mode)
	assert.Equal(t, "price_pro", *got.LineItems[0].Price)
	assert.Equal(t, "user-1", got.Metadata["user_id"])
	assert.Equal(t, "user-1", *got.ClientReferenceID)
	assert.Equal(t, "https://example.test/success?session_id={CHECKOUT_SESSION_ID}", *got.SuccessURL)
}

func TestCreateProCheckout_Failures(t *testing.T) {
	s := newTestService(func(*stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		return nil, errors.New("card_declined")
	})

	_, err := s.CreateProCheckout("user-1")
	assert.Error(t, err)

	s.config.ProPriceID = ""
	_, err = s.CreateProCheckout("user-1")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestParseEvent_CheckoutCompleted(t *testing.T) {
	s := newTestService(nil)
	payload := `{
		"id": "evt_1",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_1",
			"object": "checkout.session",
			"customer": "cus_1",
			"subscription": "sub_1",
			"metadata": {"user_id": "user-1"}
		}}
	}`

	event, err := s.ParseEvent([]byte(payload), sign(t, payload))

	require.NoError(t, err)
	assert.Equal(t, EventCheckoutCompleted, event.Type)
	assert.Equal(t, "user-1", event.UserID)
	assert.Equal(t, "cus_1", event.CustomerID)
	assert.Equal(t, "sub_1", event.SubscriptionID)
}

func TestParseEvent_CheckoutWithoutUser(t *testing.T) {
	s := newTestService(nil)
	payload := `{"id":"evt_2","object":"event","type":"checkout.session.completed","data":{"object":{"id":"cs_2","object":"checkout.session"}}}`

	_, err := s.ParseEvent([]byte(payload), sign(t, payload))

	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestParseEvent_SubscriptionDeleted(t *testing.T) {
	s := newTestService(nil)
	payload := `{"id":"evt_3","object":"event","type":"customer.subscription.deleted","data":{"object":{"id":"sub_1","object":"subscription","customer":"cus_1","metadata":{"user_id":"user-1"}}}}`

	event, err := s.ParseEvent([]byte(payload), sign(t, payload))

	require.NoError(t, err)
	assert.Equal(t, EventSubscriptionDeleted, event.Type)
	assert.Equal(t, "sub_1", event.SubscriptionID)
	assert.Equal(t, "user-1", event.UserID)
}

func TestParseEvent_BadSignature(t *testing.T) {
	s := newTestService(nil)
	payload := `{"id":"evt_4","object":"event","type":"checkout.session.completed","data":{"object":{}}}`

	_, err := s.ParseEvent([]byte(payload), "t=1,v1=deadbeef")

	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestParseEvent_UnhandledTypePassesThrough(t *testing.T) {
	s := newTestService(nil)
	payload := `{"id":"evt_5","object":"event","type":"invoice.paid","data":{"object":{"id":"in_1","object":"invoice"}}}`

	event, err := s.ParseEvent([]byte(payload), sign(t, payload))

	require.NoError(t, err)
	assert.Equal(t, "invoice.paid", event.Type)
	assert.Empty(t, event.UserID)
}

func TestWithSessionID(t *testing.T) {
	assert.Equal(t, "", withSessionID(""))
	assert.Equal(t, "https://a.test/ok?x=1&session_id={CHECKOUT_SESSION_ID}", withSessionID("https://a.test/ok?x=1"))
	assert.Equal(t, "https://a.test/ok?session_id={CHECKOUT_SESSION_ID}", withSessionID("https://a.test/ok?session_id={CHECKOUT_SESSION_ID}"))
}

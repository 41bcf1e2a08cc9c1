package subscriptions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"codeberg.org/geminichat/server/geminichat/subscriptions"
	"codeberg.org/geminichat/server/internal/billing"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier map[string]string

func (v stubVerifier) Verify(token string) (string, error) {
	if id, ok := v[token]; ok {
		return id, nil
	}

	return "", errors.New("bad token")
}

type stubBilling struct {
	url         string
	err         error
	event       *billing.Event
	parseErr    error
	payload     []byte
	signature   string
	checkoutFor string
}

func (s *stubBilling) CreateProCheckout(userID string) (string, error) {
	s.checkoutFor = userID
	return s.url, s.err
}

func (s *stubBilling) ParseEvent(payload []byte, signature string) (*billing.Event, error) {
	s.payload = payload
	s.signature = signature

	return s.event, s.parseErr
}

type memoryStore struct {
	subs        map[string]*subscriptions.Subscription
	activations []subscriptions.Activation
	deactivated []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{subs: make(map[string]*subscriptions.Subscription)}
}

func (m *memoryStore) Get(_ context.Context, userID string) (*subscriptions.Subscription, error) {
	if sub, ok := m.subs[userID]; ok {
		return sub, nil
	}

	return &subscriptions.Subscription{UserID: userID, Tier: subscriptions.TierBasic, Status: subscriptions.StatusInactive}, nil
}

func (m *memoryStore) ActivatePro(_ context.Context, a subscriptions.Activation) error {
	m.activations = append(m.activations, a)

	subID := a.StripeSubscriptionID
	started := a.StartedAt
	m.subs[a.UserID] = &subscriptions.Subscription{
		UserID:               a.UserID,
		Tier:                 subscriptions.TierPro,
		Status:               subscriptions.StatusActive,
		StripeSubscriptionID: &subID,
		StartedAt:            &started,
	}

	return nil
}

func (m *memoryStore) DeactivateBySubscriptionID(_ context.Context, subID string, endedAt time.Time) (bool, error) {
	m.deactivated = append(m.deactivated, subID)

	for _, sub := range m.subs {
		if sub.StripeSubscriptionID != nil && *sub.StripeSubscriptionID == subID {
			sub.Tier = subscriptions.TierBasic
			sub.Status = subscriptions.StatusCanceled
			sub.EndsAt = &endedAt

			return true, nil
		}
	}

	return false, nil
}

var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func newRouter(payments *stubBilling, store *memoryStore) *gin.Engine {
	r := gin.New()
	RegisterRoutes(r, stubVerifier{"alice": "user-a"}, payments, store, func() time.Time { return testNow })

	return r
}

func send(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	req.Header.Set("Stripe-Signature", "t=1,v1=abc")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestSubscribePro(t *testing.T) {
	payments := &stubBilling{url: "https://checkout.stripe.test/c/pay/cs_1"}
	r := newRouter(payments, newMemoryStore())

	w := send(r, http.MethodPost, "/subscribe/pro", "alice", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string       `json:"status"`
		Data   CheckoutData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, payments.url, body.Data.CheckoutURL)
	assert.Equal(t, "user-a", payments.checkoutFor)

	assert.Equal(t, http.StatusUnauthorized, send(r, http.MethodPost, "/subscribe/pro", "", "").Code)
}

func TestSubscribePro_Errors(t *testing.T) {
	payments := &stubBilling{err: billing.ErrNotConfigured}
	r := newRouter(payments, newMemoryStore())

	assert.Equal(t, http.StatusServiceUnavailable, send(r, http.MethodPost, "/subscribe/pro", "alice", "").Code)

	payments.err = fmt.Errorf("failed to create checkout session: %w", errors.New("card_declined"))
	assert.Equal(t, http.StatusBadGateway, send(r, http.MethodPost, "/subscribe/pro", "alice", "").Code)
}

func TestStripeWebhook_CheckoutCompletedUpgrades(t *testing.T) {
	payments := &stubBilling{event: &billing.Event{
		ID:             "evt_1",
		Type:           billing.EventCheckoutCompleted,
		UserID:         "user-a",
		CustomerID:     "cus_1",
		SubscriptionID: "sub_1",
	}}
	store := newMemoryStore()
	r := newRouter(payments, store)

	w := send(r, http.MethodPost, "/webhook/stripe", "", `{"id":"evt_1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success"}`, w.Body.String())
	assert.Equal(t, `{"id":"evt_1"}`, string(payments.payload))
	assert.Equal(t, "t=1,v1=abc", payments.signature)

	require.Len(t, store.activations, 1)
	assert.Equal(t, subscriptions.Activation{
		UserID:               "user-a",
		StripeCustomerID:     "cus_1",
		StripeSubscriptionID: "sub_1",
		StartedAt:            testNow,
	}, store.activations[0])

	w = send(r, http.MethodGet, "/subscription/status", "alice", "")
	require.Equal(t, http.StatusOK, w.Code)

	var status map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "pro", status["tier"])
	assert.Equal(t, "active", status["status"])
}

func TestStripeWebhook_SubscriptionDeletedDowngrades(t *testing.T) {
	store := newMemoryStore()
	require.NoError(t, store.ActivatePro(context.Background(), subscriptions.Activation{UserID: "user-a", StripeSubscriptionID: "sub_1"}))

	payments := &stubBilling{event: &billing.Event{ID: "evt_2", Type: billing.EventSubscriptionDeleted, SubscriptionID: "sub_1"}}
	r := newRouter(payments, store)

	w := send(r, http.MethodPost, "/webhook/stripe", "", "{}")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"sub_1"}, store.deactivated)
	assert.Equal(t, subscriptions.TierBasic, store.subs["user-a"].Tier)
}

func TestStripeWebhook_Rejections(t *testing.T) {
	payments := &stubBilling{parseErr: fmt.Errorf("%w: bad signature", billing.ErrInvalidEvent)}
	store := newMemoryStore()
	r := newRouter(payments, store)

	w := send(r, http.MethodPost, "/webhook/stripe", "", "{}")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid webhook signature")

	payments.parseErr = billing.ErrNotConfigured
	w = send(r, http.MethodPost, "/webhook/stripe", "", "{}")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	assert.Empty(t, store.activations)
}

func TestStripeWebhook_IgnoresOtherEvents(t *testing.T) {
	payments := &stubBilling{event: &billing.Event{ID: "evt_3", Type: "invoice.paid"}}
	store := newMemoryStore()
	r := newRouter(payments, store)

	w := send(r, http.MethodPost, "/webhook/stripe", "", "{}")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.activations)
	assert.Empty(t, store.deactivated)
}

func TestSubscriptionStatus_DefaultsToBasic(t *testing.T) {
	r := newRouter(&stubBilling{}, newMemoryStore())

	w := send(r, http.MethodGet, "/subscription/status", "alice", "")
	require.Equal(t, http.StatusOK, w.Code)

	var status map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "basic", status["tier"])
	assert.Equal(t, "inactive", status["status"])
	assert.Nil(t, status["started_at"])
}

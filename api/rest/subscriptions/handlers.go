package subscriptions

import (
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"codeberg.org/geminichat/server/api/rest/response"
	"codeberg.org/geminichat/server/geminichat/subscriptions"
	"codeberg.org/geminichat/server/internal/auth"
	"codeberg.org/geminichat/server/internal/billing"
	"codeberg.org/geminichat/server/internal/errors"
	"codeberg.org/geminichat/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// SubscribeProHandler godoc
// @Summary Start a Pro subscription checkout
// @Tags subscriptions
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /subscribe/pro [post]
// @Security BearerAuth
func SubscribeProHandler(payments Billing) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		url, err := payments.CreateProCheckout(userID)
		if stderrors.Is(err, billing.ErrNotConfigured) {
			errors.ServiceUnavailable(c, "billing is not configured")
			return
		}

		if err != nil {
			errors.BadGateway(c, "failed to create checkout session", err)
			return
		}

		response.Success(c, http.StatusOK, "Stripe checkout session created", CheckoutData{CheckoutURL: url})
	}
}

// StripeWebhookHandler godoc
// @Summary Receive Stripe events
// @Description Completed checkouts upgrade the user to Pro, deleted subscriptions downgrade them. Other events are acknowledged and ignored.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Success 200 {object} WebhookResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /webhook/stripe [post]
func StripeWebhookHandler(payments Billing, store SubscriptionStore, now func() time.Time) gin.HandlerFunc {
	if now == nil {
		now = time.Now
	}

	return func(c *gin.Context) {
		payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
		if err != nil {
			errors.BadRequest(c, "failed to read request body", err)
			return
		}

		event, err := payments.ParseEvent(payload, c.GetHeader("Stripe-Signature"))
		switch {
		case stderrors.Is(err, billing.ErrNotConfigured):
			errors.ServiceUnavailable(c, "billing is not configured")
			return
		case err != nil:
			errors.BadRequest(c, "Invalid webhook signature", nil)
			return
		}

		ctx := c.Request.Context()
		log := logger.FromContext(ctx).With("event_id", event.ID, "event_type", event.Type)

		switch event.Type {
		case billing.EventCheckoutCompleted:
			err := store.ActivatePro(ctx, subscriptions.Activation{
				UserID:               event.UserID,
				StripeCustomerID:     event.CustomerID,
				StripeSubscriptionID: event.SubscriptionID,
				StartedAt:            now().UTC(),
			})
			if err != nil {
				errors.InternalError(c, "failed to activate subscription", err)
				return
			}

			log.Info("subscription activated", "user_id", event.UserID)

		case billing.EventSubscriptionDeleted:
			found, err := store.DeactivateBySubscriptionID(ctx, event.SubscriptionID, now().UTC())
			if err != nil {
				errors.InternalError(c, "failed to deactivate subscription", err)
				return
			}

			if !found {
				log.Warn("cancelled subscription has no local record", "subscription_id", event.SubscriptionID)
			} else {
				log.Info("subscription deactivated", "subscription_id", event.SubscriptionID)
			}

		default:
			log.Debug("ignoring stripe event")
		}

		c.JSON(http.StatusOK, WebhookResponse{Status: response.StatusSuccess})
	}
}

// SubscriptionStatusHandler godoc
// @Summary Get the current subscription
// @Description Users without a subscription record are reported as basic and inactive
// @Tags subscriptions
// @Produce json
// @Success 200 {object} subscriptions.Subscription
// @Failure 401 {object} errors.ErrorResponse
// @Router /subscription/status [get]
// @Security BearerAuth
func SubscriptionStatusHandler(store SubscriptionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		sub, err := store.Get(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to fetch subscription", err)
			return
		}

		c.JSON(http.StatusOK, sub)
	}
}

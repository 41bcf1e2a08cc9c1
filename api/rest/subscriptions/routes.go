package subscriptions

import (
	"time"

	"codeberg.org/geminichat/server/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router gin.IRouter, verifier auth.Verifier, payments Billing, store SubscriptionStore, now func() time.Time) {
	// stripe authenticates with the signature header, not a bearer token
	router.POST("/webhook/stripe", StripeWebhookHandler(payments, store, now))

	authed := router.Group("")
	authed.Use(auth.Middleware(verifier))
	{
		authed.POST("/subscribe/pro", SubscribeProHandler(payments))
		authed.GET("/subscription/status", SubscriptionStatusHandler(store))
	}
}

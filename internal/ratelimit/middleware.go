package ratelimit

import (
	"strconv"

	"codeberg.org/geminichat/server/internal/auth"
	apierrors "codeberg.org/geminichat/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// gates the route it is attached to
func (g *Gate) Limited() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := auth.Authenticate(c, g.verifier)
		if err != nil {
			apierrors.Unauthorized(c, auth.Message(err))
			return
		}

		d := g.Decide(c.Request.Context(), userID)
		c.Set(ContextDecision, d)

		if d.Tier.Capped() && d.Outcome != OutcomeUnavailable && !d.Unaccounted {
			c.Header("X-RateLimit-Limit", strconv.FormatInt(d.Limit, 10))
			c.Header("X-RateLimit-Remaining", strconv.FormatInt(d.Remaining(), 10))
		}

		switch d.Outcome {
		case OutcomeReject:
			apierrors.TooManyRequests(c, QuotaExceededMessage)
		case OutcomeUnavailable:
			apierrors.ServiceUnavailable(c, UnavailableMessage)
		default:
			c.Next()
		}
	}
}

// gates only matching chatroom message sends, for mounting on the whole engine
func (g *Gate) Intercept() gin.HandlerFunc {
	limited := g.Limited()

	return func(c *gin.Context) {
		if !IsGatedRoute(c.Request.Method, c.Request.URL.Path) {
			c.Next()
			return
		}

		limited(c)
	}
}

// returns the decision stored by the gate, if the request was gated
func DecisionFrom(c *gin.Context) (Decision, bool) {
	v, ok := c.Get(ContextDecision)
	if !ok {
		return Decision{}, false
	}

	d, ok := v.(Decision)
	return d, ok
}

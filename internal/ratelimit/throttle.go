package ratelimit

import (
	"fmt"

	apierrors "codeberg.org/geminichat/server/internal/errors"
	"codeberg.org/geminichat/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const throttleMessage = "too many requests, try again later"

// builds a per-client-IP throttle backed by redis
// formatted uses the limiter notation, e.g. "5-M" for five per minute
func NewIPThrottle(client *redis.Client, formatted, prefix string) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("failed to parse throttle rate %q: %w", formatted, err)
	}

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   prefix,
		MaxRetry: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create throttle store: %w", err)
	}

	middleware := mgin.NewMiddleware(limiter.New(store, rate),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			apierrors.TooManyRequests(c, throttleMessage)
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			logger.FromContext(c.Request.Context()).Error("throttle store failed",
				"component", "throttle",
				"prefix", prefix,
				"error", err,
			)
			apierrors.ServiceUnavailable(c, "")
		}),
	)

	return middleware, nil
}

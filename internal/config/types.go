package config

import "time"

type Config struct {
	Environment string
	Port        string

	DatabaseURL string
	RedisURL    string

	JWTSecret string
	JWTExpiry time.Duration
	OTPExpiry time.Duration

	RateLimit RateLimitConfig

	ChatroomCacheTTL time.Duration
	// ulule/limiter formatted rate, e.g. "5-M"
	OTPRateLimit string

	GeminiAPIKey string
	GeminiModel  string

	Stripe StripeConfig

	CORSAllowedOrigins []string
}

type RateLimitConfig struct {
	BasicDailyLimit int64
	CounterTTL      time.Duration
	// "closed" or "open"
	FailurePolicy string
	// "soft" or "hard"
	CapMode string
}

type StripeConfig struct {
	APIKey        string
	WebhookSecret string
	ProPriceID    string
	SuccessURL    string
	CancelURL     string
}

type Flags struct {
	MigrateOnly bool
	SkipMigrate bool
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort             = "8000"
	defaultEnvironment      = "development"
	defaultJWTExpiry        = 30 * time.Minute
	defaultOTPExpiry        = 10 * time.Minute
	defaultBasicDailyLimit  = 5
	defaultCounterTTL       = 24 * time.Hour
	defaultChatroomCacheTTL = 600 * time.Second
	defaultOTPRateLimit     = "5-M"
	defaultGeminiModel      = "gemini-2.0-flash"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return FromEnv(os.Getenv)
}

// builds the config from a lookup function so tests can inject values
func FromEnv(getenv func(string) string) (*Config, error) {
	databaseURL := getenv("DATABASE_URL")
	redisURL := getenv("REDIS_URL")
	jwtSecret := getenv("JWT_SECRET_KEY")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is required")
	}

	jwtExpiry, err := durationVar(getenv, "JWT_EXPIRY", defaultJWTExpiry)
	if err != nil {
		return nil, err
	}

	otpExpiry, err := durationVar(getenv, "OTP_EXPIRY", defaultOTPExpiry)
	if err != nil {
		return nil, err
	}

	counterTTL, err := durationVar(getenv, "USAGE_COUNTER_TTL", defaultCounterTTL)
	if err != nil {
		return nil, err
	}

	cacheTTL, err := durationVar(getenv, "CHATROOM_CACHE_TTL", defaultChatroomCacheTTL)
	if err != nil {
		return nil, err
	}

	dailyLimit := int64(defaultBasicDailyLimit)
	if raw := getenv("BASIC_DAILY_LIMIT"); raw != "" {
		dailyLimit, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || dailyLimit <= 0 {
			return nil, fmt.Errorf("BASIC_DAILY_LIMIT must be a positive integer, got %q", raw)
		}
	}

	failurePolicy := strings.ToLower(orDefault(getenv("RATE_LIMIT_FAILURE_POLICY"), "closed"))
	if failurePolicy != "closed" && failurePolicy != "open" {
		return nil, fmt.Errorf("RATE_LIMIT_FAILURE_POLICY must be closed or open, got %q", failurePolicy)
	}

	capMode := strings.ToLower(orDefault(getenv("RATE_LIMIT_CAP_MODE"), "soft"))
	if capMode != "soft" && capMode != "hard" {
		return nil, fmt.Errorf("RATE_LIMIT_CAP_MODE must be soft or hard, got %q", capMode)
	}

	return &Config{
		Environment: orDefault(getenv("ENVIRONMENT"), defaultEnvironment),
		Port:        orDefault(getenv("PORT"), defaultPort),
		DatabaseURL: databaseURL,
		RedisURL:    redisURL,
		JWTSecret:   jwtSecret,
		JWTExpiry:   jwtExpiry,
		OTPExpiry:   otpExpiry,
		RateLimit: RateLimitConfig{
			BasicDailyLimit: dailyLimit,
			CounterTTL:      counterTTL,
			FailurePolicy:   failurePolicy,
			CapMode:         capMode,
		},
		ChatroomCacheTTL: cacheTTL,
		OTPRateLimit:     orDefault(getenv("OTP_RATE_LIMIT"), defaultOTPRateLimit),
		GeminiAPIKey:     getenv("GEMINI_API_KEY"),
		GeminiModel:      orDefault(getenv("GEMINI_MODEL"), defaultGeminiModel),
		Stripe: StripeConfig{
			APIKey:        getenv("STRIPE_API_KEY"),
			WebhookSecret: getenv("STRIPE_WEBHOOK_SECRET"),
			ProPriceID:    getenv("STRIPE_PRO_PRICE_ID"),
			SuccessURL:    getenv("STRIPE_SUCCESS_URL"),
			CancelURL:     getenv("STRIPE_CANCEL_URL"),
		},
		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS")),
	}, nil
}

// accepts Go durations ("24h") or plain seconds ("86400")
func durationVar(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}

	if secs, err := strconv.Atoi(raw); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("%s must be positive, got %q", key, raw)
		}

		return time.Duration(secs) * time.Second, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}

	return d, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}

	return v
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}

	return out
}

package main

import (
	"fmt"

	"codeberg.org/geminichat/server/geminichat/subscriptions"
	"codeberg.org/geminichat/server/internal/auth"
	"codeberg.org/geminichat/server/internal/billing"
	"codeberg.org/geminichat/server/internal/cache"
	"codeberg.org/geminichat/server/internal/config"
	"codeberg.org/geminichat/server/internal/llm"
	"codeberg.org/geminichat/server/internal/logger"
	"codeberg.org/geminichat/server/internal/metrics"
	"codeberg.org/geminichat/server/internal/ratelimit"
	"github.com/redis/go-redis/v9"
)

// creates and configures all service clients
func InitializeServices(cfg *config.Config, rdb *redis.Client, subRepo *subscriptions.Repository) (*Services, error) {
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	m := metrics.New()

	counter := ratelimit.NewCounter(rdb, cfg.RateLimit.CounterTTL)
	tiers := ratelimit.NewTierResolver(subRepo)

	gate := ratelimit.NewGate(counter, tiers, tokens, ratelimit.Options{
		DailyLimit:    cfg.RateLimit.BasicDailyLimit,
		FailurePolicy: ratelimit.FailurePolicy(cfg.RateLimit.FailurePolicy),
		CapMode:       ratelimit.CapMode(cfg.RateLimit.CapMode),
		Recorder:      m,
	})

	otpThrottle, err := ratelimit.NewIPThrottle(rdb, cfg.OTPRateLimit, "otp_limiter")
	if err != nil {
		return nil, fmt.Errorf("failed to create otp throttle: %w", err)
	}

	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, chatroom replies will carry the error marker")
	}

	gemini := llm.NewGeminiClient(llm.GeminiConfig{
		APIKey:   cfg.GeminiAPIKey,
		Model:    cfg.GeminiModel,
		Observer: m,
	})

	payments := billing.NewService(billing.Config{
		APIKey:        cfg.Stripe.APIKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		ProPriceID:    cfg.Stripe.ProPriceID,
		SuccessURL:    cfg.Stripe.SuccessURL,
		CancelURL:     cfg.Stripe.CancelURL,
	})

	if !payments.CheckoutEnabled() {
		logger.Warn("stripe not configured, /subscribe/pro will answer 503")
	}

	logger.Info("rate limit gate configured",
		"daily_limit", cfg.RateLimit.BasicDailyLimit,
		"failure_policy", cfg.RateLimit.FailurePolicy,
		"cap_mode", cfg.RateLimit.CapMode,
	)

	return &Services{
		Tokens:       tokens,
		Counter:      counter,
		Tiers:        tiers,
		Gate:         gate,
		OTPThrottle:  otpThrottle,
		Gemini:       gemini,
		Billing:      payments,
		ChatroomList: cache.NewChatroomCache(rdb, cfg.ChatroomCacheTTL),
		Metrics:      m,
	}, nil
}

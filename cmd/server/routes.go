package main

import (
	"context"
	"time"

	"codeberg.org/geminichat/server/api/rest/auth"
	"codeberg.org/geminichat/server/api/rest/chatrooms"
	"codeberg.org/geminichat/server/api/rest/health"
	"codeberg.org/geminichat/server/api/rest/subscriptions"
	"codeberg.org/geminichat/server/api/rest/users"
	internalauth "codeberg.org/geminichat/server/internal/auth"
	"codeberg.org/geminichat/server/internal/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	svc := server.services

	router.Use(CORSMiddleware(server.config.CORSAllowedOrigins))
	router.Use(logger.Middleware())
	router.Use(svc.Metrics.Middleware())

	router.GET("/", health.RootHandler)
	router.GET("/health", health.Handler(map[string]health.Pinger{
		"postgres": health.PingFunc(server.db.Ping),
		"redis": health.PingFunc(func(ctx context.Context) error {
			return server.redis.Ping(ctx).Err()
		}),
	}))
	router.GET("/metrics", gin.WrapH(svc.Metrics.Handler()))

	auth.RegisterRoutes(router,
		server.userRepo,
		server.otpRepo,
		svc.Tokens,
		internalauth.GenerateOTP,
		server.config.OTPExpiry,
		svc.OTPThrottle,
	)

	users.RegisterRoutes(router, svc.Tokens, server.userRepo, svc.Tiers, svc.Counter, users.UsageConfig{
		DailyLimit: server.config.RateLimit.BasicDailyLimit,
	})

	chatrooms.RegisterRoutes(router, svc.Tokens, server.roomRepo, svc.ChatroomList, svc.Gemini, svc.Gate.Limited())

	subscriptions.RegisterRoutes(router, svc.Tokens, svc.Billing, server.subRepo, time.Now)
}

// allows browser clients from the configured origins, any origin when none are set
func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}

	return cors.New(cfg)
}

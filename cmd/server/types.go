package main

import (
	"codeberg.org/geminichat/server/geminichat/chatrooms"
	"codeberg.org/geminichat/server/geminichat/otps"
	"codeberg.org/geminichat/server/geminichat/subscriptions"
	"codeberg.org/geminichat/server/geminichat/users"
	"codeberg.org/geminichat/server/internal/auth"
	"codeberg.org/geminichat/server/internal/billing"
	"codeberg.org/geminichat/server/internal/cache"
	"codeberg.org/geminichat/server/internal/config"
	"codeberg.org/geminichat/server/internal/llm"
	"codeberg.org/geminichat/server/internal/metrics"
	"codeberg.org/geminichat/server/internal/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// holds all dependencies and state for the API server
type Server struct {
	db       *pgxpool.Pool
	redis    *redis.Client
	config   *config.Config
	userRepo *users.Repository
	otpRepo  *otps.Repository
	roomRepo *chatrooms.Repository
	subRepo  *subscriptions.Repository
	services *Services
	router   *gin.Engine
}

// holds the service clients built on top of the stores
type Services struct {
	Tokens       *auth.TokenService
	Counter      *ratelimit.Counter
	Tiers        *ratelimit.TierResolver
	Gate         *ratelimit.Gate
	OTPThrottle  gin.HandlerFunc
	Gemini       *llm.GeminiClient
	Billing      *billing.Service
	ChatroomList *cache.ChatroomCache
	Metrics      *metrics.Metrics
}

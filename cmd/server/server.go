package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/geminichat/server/geminichat/chatrooms"
	"codeberg.org/geminichat/server/geminichat/otps"
	"codeberg.org/geminichat/server/geminichat/subscriptions"
	"codeberg.org/geminichat/server/geminichat/users"
	"codeberg.org/geminichat/server/internal/config"
	"codeberg.org/geminichat/server/internal/logger"
	"codeberg.org/geminichat/server/internal/storage"
	"github.com/gin-gonic/gin"
)

const (
	// how often expired OTPs are purged
	otpCleanupInterval = 10 * time.Minute
)

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config, flags config.Flags) (*Server, error) {
	db, err := storage.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if !flags.SkipMigrate {
		if err := storage.Apply(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	rdb, err := storage.NewRedis(cfg.RedisURL)
	if err != nil {
		db.Close()
		return nil, err
	}

	subRepo := subscriptions.NewRepository(db)

	services, err := InitializeServices(cfg, rdb, subRepo)
	if err != nil {
		_ = rdb.Close()
		db.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		db:       db,
		redis:    rdb,
		config:   cfg,
		userRepo: users.NewRepository(db),
		otpRepo:  otps.NewRepository(db),
		roomRepo: chatrooms.NewRepository(db),
		subRepo:  subRepo,
		services: services,
		router:   router,
	}

	RegisterRoutes(router, server)

	return server, nil
}

// purges expired OTPs until ctx is cancelled
func (s *Server) runOTPCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.otpRepo.DeleteExpired(ctx)
			if err != nil {
				logger.ErrorErr(err, "failed to purge expired otps")
				continue
			}

			if removed > 0 {
				logger.Debug("purged expired otps", "count", removed)
			}
		}
	}
}

// releases the database and redis connections
func (s *Server) Close() {
	_ = s.redis.Close()
	s.db.Close()
}

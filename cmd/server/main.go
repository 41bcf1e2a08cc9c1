package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/geminichat/server/internal/config"
	"codeberg.org/geminichat/server/internal/logger"
	"codeberg.org/geminichat/server/internal/storage"
)

// @title Gemini Chatroom API
// @version 1.0
// @description Chatroom backend with OTP login, Gemini replies and Stripe subscriptions
// @description
// @description Features:
// @description - OTP based mobile login with JWT access tokens
// @description - Chatrooms with Gemini generated replies
// @description - Daily message limit for Basic users, unlimited for Pro
// @description - Stripe checkout for the Pro tier

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authenticated requests. Format: Bearer {token}

func main() {
	flags, err := config.ParseServerFlags(os.Args[1:])
	if err != nil {
		logger.Fatal("failed to parse flags", "error", err)
	}

	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	logger.Configure(cfg.Environment)
	logger.Info("starting geminichat server", "environment", cfg.Environment)

	ctx := context.Background()

	if flags.MigrateOnly {
		if err := migrate(ctx, cfg); err != nil {
			logger.FatalErr(err, "migration failed")
		}

		logger.Info("migrations applied")
		return
	}

	// create server with all dependencies
	srv, err := NewServer(ctx, cfg, flags)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // gemini replies are generated inline
		IdleTimeout:  60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// start otp cleanup with cancellable context
	cleanupCtx, cleanupCancel := context.WithCancel(ctx)
	go srv.runOTPCleanup(cleanupCtx, otpCleanupInterval)

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cleanupCancel()

	logger.Info("shutting down server")

	// graceful shutdown with 10 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	srv.Close()

	logger.Info("server stopped")
}

// applies migrations without starting the server
func migrate(ctx context.Context, cfg *config.Config) error {
	db, err := storage.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}

	defer db.Close()

	return storage.Apply(ctx, db)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"codeberg.org/geminichat/server/geminichat/subscriptions"
	"codeberg.org/geminichat/server/geminichat/users"
	"codeberg.org/geminichat/server/internal/auth"
	"codeberg.org/geminichat/server/internal/config"
	"codeberg.org/geminichat/server/internal/logger"
	"codeberg.org/geminichat/server/internal/storage"
)

// issues an access token for a test user, skipping the OTP round trip
func main() {
	mobile := flag.String("mobile", "+15550000000", "mobile number of the test user")
	pro := flag.Bool("pro", false, "upgrade the test user to an active pro subscription")
	flag.Parse()

	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	ctx := context.Background()

	db, err := storage.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.FatalErr(err, "failed to connect to database")
	}
	defer db.Close()

	user, err := users.NewRepository(db).FindOrCreateByMobile(ctx, *mobile)
	if err != nil {
		logger.FatalErr(err, "failed to create test user")
	}

	if *pro {
		err := subscriptions.NewRepository(db).ActivatePro(ctx, subscriptions.Activation{
			UserID:    user.ID,
			StartedAt: time.Now().UTC(),
		})
		if err != nil {
			logger.FatalErr(err, "failed to activate pro")
		}
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		logger.FatalErr(err, "failed to create token service")
	}

	token, err := tokens.Issue(user.ID, user.Mobile)
	if err != nil {
		logger.FatalErr(err, "failed to generate token")
	}

	fmt.Printf("user %s (%s), pro=%t\n\n", user.ID, user.Mobile, *pro)
	fmt.Printf("export TEST_TOKEN=\"%s\"\n", token)
}

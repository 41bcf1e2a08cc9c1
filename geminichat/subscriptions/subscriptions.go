package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codeberg.org/geminichat/server/internal/storage"
	"github.com/jackc/pgx/v5"
)

// creates a new subscription repository
func NewRepository(db storage.DB) *Repository {
	return &Repository{db: db}
}

// returns the stored tier name, found is false when the user has no record
func (r *Repository) GetTier(ctx context.Context, userID string) (string, bool, error) {
	var tier string

	err := r.db.QueryRow(ctx, queryGetTier, userID).Scan(&tier)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("failed to get subscription tier: %w", err)
	}

	return tier, true, nil
}

// returns the user's subscription, a basic/inactive value when none is stored
func (r *Repository) Get(ctx context.Context, userID string) (*Subscription, error) {
	var sub Subscription

	err := r.db.QueryRow(ctx, queryGet, userID).Scan(
		&sub.UserID,
		&sub.Tier,
		&sub.Status,
		&sub.StripeCustomerID,
		&sub.StripeSubscriptionID,
		&sub.StartedAt,
		&sub.EndsAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return &Subscription{UserID: userID, Tier: TierBasic, Status: StatusInactive}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return &sub, nil
}

// upgrades the user to an active pro subscription
func (r *Repository) ActivatePro(ctx context.Context, a Activation) error {
	_, err := r.db.Exec(ctx, queryActivatePro,
		a.UserID,
		a.StripeCustomerID,
		a.StripeSubscriptionID,
		a.StartedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to activate subscription: %w", err)
	}

	return nil
}

// downgrades the user holding a cancelled stripe subscription, false when none matched
func (r *Repository) DeactivateBySubscriptionID(ctx context.Context, stripeSubscriptionID string, endedAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, queryDeactivateBySubscription, stripeSubscriptionID, endedAt)
	if err != nil {
		return false, fmt.Errorf("failed to deactivate subscription: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

package otps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codeberg.org/geminichat/server/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// creates a new OTP repository
func NewRepository(db storage.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// stores a code for mobile valid for ttl
func (r *Repository) Create(ctx context.Context, mobile, code string, purpose Purpose, ttl time.Duration) (*OTP, error) {
	otp := &OTP{
		ID:        uuid.NewString(),
		Mobile:    mobile,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: r.now().Add(ttl).UTC(),
	}

	_, err := r.db.Exec(ctx, queryCreate, otp.ID, otp.Mobile, otp.Code, string(otp.Purpose), otp.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to store otp: %w", err)
	}

	return otp, nil
}

// deletes a matching unexpired code, false when none matched
func (r *Repository) Consume(ctx context.Context, mobile, code string, purpose Purpose) (bool, error) {
	var id string

	err := r.db.QueryRow(ctx, queryConsume, mobile, code, string(purpose), r.now().UTC()).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to consume otp: %w", err)
	}

	return true, nil
}

// removes expired codes, returns how many were deleted
func (r *Repository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, queryDeleteExpired, r.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired otps: %w", err)
	}

	return tag.RowsAffected(), nil
}

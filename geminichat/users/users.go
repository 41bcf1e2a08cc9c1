package users

import (
	"context"

	"codeberg.org/geminichat/server/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// creates a new user repository
func NewRepository(db storage.DB) *Repository {
	return &Repository{db: db}
}

// registers a new mobile, fails with a unique violation if already taken
func (r *Repository) Create(ctx context.Context, mobile string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryCreate, uuid.NewString(), mobile))
}

// returns the user for a mobile, creating it on first login
func (r *Repository) FindOrCreateByMobile(ctx context.Context, mobile string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryFindOrCreateByMobile, uuid.NewString(), mobile))
}

// finds a user by their ID
func (r *Repository) FindByID(ctx context.Context, userID string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryFindByID, userID))
}

// finds a user by mobile number
func (r *Repository) FindByMobile(ctx context.Context, mobile string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryFindByMobile, mobile))
}

func scanUser(row pgx.Row) (*User, error) {
	var user User

	err := row.Scan(
		&user.ID,
		&user.Mobile,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

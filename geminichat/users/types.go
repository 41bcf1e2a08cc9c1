package users

import (
	"time"

	"codeberg.org/geminichat/server/internal/storage"
)

// handles user database operations
type Repository struct {
	db storage.DB
}

// represents a user identified by mobile number
type User struct {
	ID        string    `json:"id"`
	Mobile    string    `json:"mobile"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

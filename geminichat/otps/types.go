package otps

import (
	"time"

	"codeberg.org/geminichat/server/internal/storage"
)

// what an OTP may be exchanged for
type Purpose string

const (
	PurposeLogin Purpose = "login"
	PurposeReset Purpose = "reset"
)

// handles one-time password storage
type Repository struct {
	db  storage.DB
	now func() time.Time
}

// a stored one-time password
type OTP struct {
	ID        string
	Mobile    string
	Code      string
	Purpose   Purpose
	ExpiresAt time.Time
}

// reports whether p is a known purpose
func (p Purpose) Valid() bool {
	return p == PurposeLogin || p == PurposeReset
}

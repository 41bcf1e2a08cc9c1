package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// gin context key set by the middleware
const ContextUserID = "user_id"

var (
	ErrMissingCredential = errors.New("authorization header required")
	ErrMalformedHeader   = errors.New("invalid authorization header format")
	ErrInvalidToken      = errors.New("invalid or expired token")
)

// represents JWT claims, the subject carries the user id
type Claims struct {
	Mobile string `json:"mobile,omitempty"`
	jwt.RegisteredClaims
}

// issues and verifies HS256 identity tokens
type TokenService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// verifies a bearer token and returns the user id it names
type Verifier interface {
	Verify(token string) (string, error)
}

package auth

import (
	"errors"
	"strings"

	apierrors "codeberg.org/geminichat/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// extracts the token from an "Authorization: Bearer <token>" header value
func ExtractBearer(header string) (string, error) {
	if header == "" {
		return "", ErrMissingCredential
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrMalformedHeader
	}

	return parts[1], nil
}

// verifies the bearer credential of a request and returns the user id
func Authenticate(c *gin.Context, verifier Verifier) (string, error) {
	token, err := ExtractBearer(c.GetHeader("Authorization"))
	if err != nil {
		return "", err
	}

	userID, err := verifier.Verify(token)
	if err != nil {
		return "", ErrInvalidToken
	}

	c.Set(ContextUserID, userID)
	return userID, nil
}

// validates JWT tokens and adds user info to context
func Middleware(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := Authenticate(c, verifier); err != nil {
			apierrors.Unauthorized(c, Message(err))
			return
		}

		c.Next()
	}
}

// maps an authentication error to its client-facing message
func Message(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredential):
		return ErrMissingCredential.Error()
	case errors.Is(err, ErrMalformedHeader):
		return ErrMalformedHeader.Error()
	default:
		return ErrInvalidToken.Error()
	}
}

// extracts user_id from context after Middleware
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(ContextUserID)
	return userID, userID != ""
}

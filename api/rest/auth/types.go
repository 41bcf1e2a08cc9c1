package auth

import (
	"context"
	"time"

	"codeberg.org/geminichat/server/geminichat/otps"
	"codeberg.org/geminichat/server/geminichat/users"
)

// user persistence needed by the auth flow
type UserStore interface {
	Create(ctx context.Context, mobile string) (*users.User, error)
	FindOrCreateByMobile(ctx context.Context, mobile string) (*users.User, error)
}

// OTP persistence needed by the auth flow
type OTPStore interface {
	Create(ctx context.Context, mobile, code string, purpose otps.Purpose, ttl time.Duration) (*otps.OTP, error)
	Consume(ctx context.Context, mobile, code string, purpose otps.Purpose) (bool, error)
}

// signs access tokens
type TokenIssuer interface {
	Issue(userID, mobile string) (string, error)
}

// returns a fresh one-time code
type CodeGenerator func() (string, error)

type SignupRequest struct {
	Mobile string `json:"mobile" binding:"required,min=6,max=20"`
}

type SendOTPRequest struct {
	Mobile  string `json:"mobile" binding:"required,min=6,max=20"`
	Purpose string `json:"purpose"`
}

type VerifyOTPRequest struct {
	Mobile  string `json:"mobile" binding:"required,min=6,max=20"`
	OTPCode string `json:"otp_code" binding:"required,len=6,numeric"`
	Purpose string `json:"purpose"`
}

type ForgotPasswordRequest struct {
	Mobile string `json:"mobile" binding:"required,min=6,max=20"`
}

// returned after a successful OTP verification
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type SignupData struct {
	UserID string `json:"user_id"`
}

type OTPData struct {
	OTP string `json:"otp"`
}

package auth

import (
	"net/http"
	"time"

	"codeberg.org/geminichat/server/api/rest/response"
	"codeberg.org/geminichat/server/geminichat/otps"
	"codeberg.org/geminichat/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// SignupHandler godoc
// @Summary Register a mobile number
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "mobile number"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func SignupHandler(userStore UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		user, err := userStore.Create(c.Request.Context(), req.Mobile)
		if errors.IsUniqueViolation(err) {
			errors.BadRequest(c, "Mobile already registered", nil)
			return
		}

		if err != nil {
			errors.InternalError(c, "failed to register user", err)
			return
		}

		response.Success(c, http.StatusOK, "User registered", SignupData{UserID: user.ID})
	}
}

// SendOTPHandler godoc
// @Summary Issue a one-time password
// @Description Generates a 6 digit OTP for login or reset and returns it in the response body
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SendOTPRequest true "mobile and purpose"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /auth/send-otp [post]
func SendOTPHandler(otpStore OTPStore, generate CodeGenerator, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SendOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		purpose := otps.Purpose(req.Purpose)
		if purpose == "" {
			purpose = otps.PurposeLogin
		}

		if !purpose.Valid() {
			errors.BadRequest(c, "purpose must be login or reset", nil)
			return
		}

		code, ok := issueOTP(c, otpStore, generate, req.Mobile, purpose, ttl)
		if !ok {
			return
		}

		response.Success(c, http.StatusOK, "OTP sent", OTPData{OTP: code})
	}
}

// VerifyOTPHandler godoc
// @Summary Exchange an OTP for an access token
// @Description Consumes a valid OTP, creates the user on first login and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "mobile, code and purpose"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/verify-otp [post]
func VerifyOTPHandler(otpStore OTPStore, userStore UserStore, tokens TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		purpose := otps.Purpose(req.Purpose)
		if purpose == "" {
			purpose = otps.PurposeLogin
		}

		if !purpose.Valid() {
			errors.BadRequest(c, "purpose must be login or reset", nil)
			return
		}

		ctx := c.Request.Context()

		ok, err := otpStore.Consume(ctx, req.Mobile, req.OTPCode, purpose)
		if err != nil {
			errors.InternalError(c, "failed to verify otp", err)
			return
		}

		if !ok {
			errors.BadRequest(c, "Invalid or expired OTP", nil)
			return
		}

		user, err := userStore.FindOrCreateByMobile(ctx, req.Mobile)
		if err != nil {
			errors.InternalError(c, "failed to load user", err)
			return
		}

		token, err := tokens.Issue(user.ID, user.Mobile)
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
	}
}

// ForgotPasswordHandler godoc
// @Summary Issue a reset OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "mobile number"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/forgot-password [post]
func ForgotPasswordHandler(otpStore OTPStore, generate CodeGenerator, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ForgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		code, ok := issueOTP(c, otpStore, generate, req.Mobile, otps.PurposeReset, ttl)
		if !ok {
			return
		}

		response.Success(c, http.StatusOK, "OTP sent for password reset", OTPData{OTP: code})
	}
}

func issueOTP(c *gin.Context, otpStore OTPStore, generate CodeGenerator, mobile string, purpose otps.Purpose, ttl time.Duration) (string, bool) {
	code, err := generate()
	if err != nil {
		errors.InternalError(c, "failed to generate otp", err)
		return "", false
	}

	if _, err := otpStore.Create(c.Request.Context(), mobile, code, purpose, ttl); err != nil {
		errors.InternalError(c, "failed to store otp", err)
		return "", false
	}

	return code, true
}

package auth

import (
	"time"

	"github.com/gin-gonic/gin"
)

// registers all authentication routes, throttle guards the OTP issuing endpoints
func RegisterRoutes(router gin.IRouter, userStore UserStore, otpStore OTPStore, tokens TokenIssuer, generate CodeGenerator, otpTTL time.Duration, throttle gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", SignupHandler(userStore))
		authGroup.POST("/send-otp", throttle, SendOTPHandler(otpStore, generate, otpTTL))
		authGroup.POST("/verify-otp", VerifyOTPHandler(otpStore, userStore, tokens))
		authGroup.POST("/forgot-password", throttle, ForgotPasswordHandler(otpStore, generate, otpTTL))
	}
}

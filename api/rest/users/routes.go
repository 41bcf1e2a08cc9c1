package users

import (
	"codeberg.org/geminichat/server/internal/auth"
	"codeberg.org/geminichat/server/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router gin.IRouter, verifier auth.Verifier, finder UserFinder, tiers ratelimit.TierSource, usage UsageReader, cfg UsageConfig) {
	authed := router.Group("")
	authed.Use(auth.Middleware(verifier)) // all user routes require authentication

	authed.GET("/user/me", GetMe(finder))
	authed.GET("/usage/today", GetUsageToday(tiers, usage, cfg))
}

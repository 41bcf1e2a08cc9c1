package users

import (
	"net/http"
	"time"

	"codeberg.org/geminichat/server/internal/auth"
	"codeberg.org/geminichat/server/internal/errors"
	"codeberg.org/geminichat/server/internal/logger"
	"codeberg.org/geminichat/server/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

// GetMe godoc
// @Summary Get the current user
// @Tags users
// @Produce json
// @Success 200 {object} users.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/me [get]
// @Security BearerAuth
func GetMe(finder UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		user, err := finder.FindByID(c.Request.Context(), userID)
		if errors.IsNotFound(err) {
			errors.NotFound(c, "user")
			return
		}

		if err != nil {
			errors.InternalError(c, "failed to fetch user", err)
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// GetUsageToday godoc
// @Summary Get today's message usage
// @Description Returns the tier, the messages admitted today and what is left of the daily limit. Reading does not count against the limit.
// @Tags users
// @Produce json
// @Success 200 {object} UsageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /usage/today [get]
// @Security BearerAuth
func GetUsageToday(tiers ratelimit.TierSource, usage UsageReader, cfg UsageConfig) gin.HandlerFunc {
	if cfg.DailyLimit <= 0 {
		cfg.DailyLimit = ratelimit.DefaultDailyLimit
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		ctx := c.Request.Context()
		day := cfg.Now().UTC()

		// a failed lookup reports basic
		tier, err := tiers.Resolve(ctx, userID)
		if err != nil {
			logger.FromContext(ctx).Warn("tier lookup failed, reporting user as basic",
				"component", "tier_store",
				"user_id", userID,
				"error", err,
			)
			tier = ratelimit.TierBasic
		}

		used, err := usage.Read(ctx, userID, day)
		if err != nil {
			errors.ServiceUnavailable(c, ratelimit.UnavailableMessage)
			return
		}

		resp := UsageResponse{
			Tier:      string(tier),
			Day:       day.Format("2006-01-02"),
			Used:      used,
			Limit:     -1,
			Remaining: -1,
		}

		if tier.Capped() {
			resp.Limit = cfg.DailyLimit
			resp.Remaining = max(cfg.DailyLimit-used, 0)
		}

		c.JSON(http.StatusOK, resp)
	}
}

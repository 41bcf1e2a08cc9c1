package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	serviceName = "geminichat"
	version     = "1.0.0"

	checkTimeout = 2 * time.Second
)

// Handler godoc
// @Summary Report server health
// @Description Pings every registered dependency, 503 when any is down
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Failure 503 {object} Response
// @Router /health [get]
func Handler(deps map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		defer cancel()

		resp := Response{Status: "healthy", Service: serviceName, Version: version}
		code := http.StatusOK

		if len(deps) > 0 {
			resp.Checks = make(map[string]string, len(deps))
		}

		for name, dep := range deps {
			if err := dep.Ping(ctx); err != nil {
				resp.Checks[name] = "down"
				resp.Status = "unhealthy"
				code = http.StatusServiceUnavailable

				continue
			}

			resp.Checks[name] = "up"
		}

		c.JSON(code, resp)
	}
}

// responds at the root path
func RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{Message: "Gemini-style backend system running."})
}

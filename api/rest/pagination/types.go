package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// reads ?limit from the request
// missing or unparsable values give defaultLimit, larger values are clamped to maxLimit
func LimitFromQuery(c *gin.Context, defaultLimit, maxLimit int) int {
	raw, ok := c.GetQuery("limit")
	if !ok {
		return defaultLimit
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return defaultLimit
	}

	return min(limit, maxLimit)
}

package errors

import (
	"net/http"
	"strings"

	"codeberg.org/geminichat/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers and middleware:
//   - Use errors.InternalError(), errors.BadRequest(), etc. for request-ending errors
//     These functions abort the gin chain and write the error body
//   - Use logger.ErrorErr() only for non-critical errors where processing continues
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error
//
// For services/repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond

func abort(c *gin.Context, status int, message, details string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Status:  StatusError,
		Message: message,
		Details: details,
	})
}

// returns a 401 unauthorized error
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}

	abort(c, http.StatusUnauthorized, message, "")
}

// returns a 403 forbidden error
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "permission denied"
	}

	abort(c, http.StatusForbidden, message, "")
}

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	abort(c, http.StatusNotFound, message, "")
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	abort(c, http.StatusBadRequest, message, sanitizeError(err))
}

// returns a 400 bad request error for binding failures
func ValidationError(c *gin.Context, err error) {
	message := "validation failed"
	details := ""

	if err != nil {
		details = sanitizeError(err)
		if strings.Contains(err.Error(), "binding") || strings.Contains(err.Error(), "validation") {
			message = "request validation failed"
		}
	}

	abort(c, http.StatusBadRequest, message, details)
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// full error stays server-side
	logger.FromContext(c.Request.Context()).Error(message,
		"error", err,
		"category", classifyError(err).category,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"user_id", c.GetString("user_id"),
	)

	abort(c, http.StatusInternalServerError, message, sanitizeError(err))
}

// returns a 409 conflict error
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "resource conflict"
	}

	abort(c, http.StatusConflict, message, "")
}

// returns a 429 too many requests error
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "too many requests"
	}

	abort(c, http.StatusTooManyRequests, message, "")
}

// returns a 503 service unavailable error
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "service unavailable"
	}

	abort(c, http.StatusServiceUnavailable, message, "")
}

// returns a 502 when an upstream provider fails
func BadGateway(c *gin.Context, message string, err error) {
	if message == "" {
		message = "upstream request failed"
	}

	abort(c, http.StatusBadGateway, message, sanitizeError(err))
}

// validates a UUID parameter from the request path, 404 when malformed
func ValidatePathUUID(c *gin.Context, paramName, resourceName string) (string, bool) {
	id := c.Param(paramName)

	if id == "" {
		BadRequest(c, "missing "+paramName, nil)
		return "", false
	}

	if !IsValidUUID(id) {
		NotFound(c, resourceName)
		return "", false
	}

	return id, true
}

package response

import "github.com/gin-gonic/gin"

const StatusSuccess = "success"

// envelope for action endpoints
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// writes a success envelope
func Success(c *gin.Context, code int, message string, data any) {
	c.JSON(code, APIResponse{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	})
}

package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLimitFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing", "", 50},
		{"valid", "?limit=10", 10},
		{"clamped", "?limit=1000", 200},
		{"zero", "?limit=0", 50},
		{"negative", "?limit=-3", 50},
		{"garbage", "?limit=ten", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/chatroom/x/messages"+tt.query, nil)

			assert.Equal(t, tt.want, LimitFromQuery(c, 50, 200))
		})
	}
}

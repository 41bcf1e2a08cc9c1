package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newThrottleRouter(t *testing.T, formatted string) *gin.Engine {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	throttle, err := NewIPThrottle(client, formatted, "test_throttle")
	require.NoError(t, err)

	r := gin.New()
	r.POST("/auth/send-otp", throttle, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return r
}

func sendFrom(r *gin.Engine, addr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/send-otp", nil)
	req.RemoteAddr = addr

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestIPThrottle_LimitsPerClient(t *testing.T) {
	r := newThrottleRouter(t, "2-M")

	assert.Equal(t, http.StatusOK, sendFrom(r, "192.0.2.1:1000").Code)
	assert.Equal(t, http.StatusOK, sendFrom(r, "192.0.2.1:1001").Code)

	w := sendFrom(r, "192.0.2.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), throttleMessage)

	// a different client has its own budget
	assert.Equal(t, http.StatusOK, sendFrom(r, "198.51.100.7:1000").Code)
}

func TestIPThrottle_InvalidRate(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = client.Close() })

	_, err := NewIPThrottle(client, "five-per-minute", "test_throttle")
	assert.Error(t, err)
}

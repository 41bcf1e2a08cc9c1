package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(h gin.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	r := gin.New()
	r.GET("/health", h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)

	return w, resp
}

func TestHandler_Healthy(t *testing.T) {
	ok := PingFunc(func(context.Context) error { return nil })

	w, resp := serve(Handler(map[string]Pinger{"postgres": ok, "redis": ok}))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "geminichat", resp.Service)
	assert.Equal(t, map[string]string{"postgres": "up", "redis": "up"}, resp.Checks)
}

func TestHandler_DependencyDown(t *testing.T) {
	ok := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })

	w, resp := serve(Handler(map[string]Pinger{"postgres": ok, "redis": down}))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "down", resp.Checks["redis"])
}

func TestHandler_NoDependencies(t *testing.T) {
	w, resp := serve(Handler(nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, resp.Checks)
}

func TestRootHandler(t *testing.T) {
	r := gin.New()
	r.GET("/", RootHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "running")
}

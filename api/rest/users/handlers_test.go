package users

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codeberg.org/geminichat/server/geminichat/users"
	"codeberg.org/geminichat/server/internal/logger"
	"codeberg.org/geminichat/server/internal/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier map[string]string

func (v stubVerifier) Verify(token string) (string, error) {
	if id, ok := v[token]; ok {
		return id, nil
	}

	return "", errors.New("bad token")
}

type stubFinder map[string]*users.User

func (f stubFinder) FindByID(_ context.Context, userID string) (*users.User, error) {
	if u, ok := f[userID]; ok {
		return u, nil
	}

	return nil, pgx.ErrNoRows
}

type stubTiers struct {
	tier ratelimit.Tier
	err  error
}

func (s stubTiers) Resolve(context.Context, string) (ratelimit.Tier, error) {
	return s.tier, s.err
}

type stubUsage struct {
	count int64
	err   error
	day   time.Time
}

func (s *stubUsage) Read(_ context.Context, _ string, day time.Time) (int64, error) {
	s.day = day
	return s.count, s.err
}

var testNow = time.Date(2025, 3, 14, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*3600))

func newRouter(tiers stubTiers, usage *stubUsage) *gin.Engine {
	r := gin.New()
	finder := stubFinder{"u1": {ID: "u1", Mobile: "+15550001111", IsActive: true}}

	RegisterRoutes(r, stubVerifier{"good": "u1", "ghost": "u2"}, finder, tiers, usage, UsageConfig{
		DailyLimit: 5,
		Now:        func() time.Time { return testNow },
	})

	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestGetMe(t *testing.T) {
	r := newRouter(stubTiers{tier: ratelimit.TierBasic}, &stubUsage{})

	w := get(r, "/user/me", "good")
	require.Equal(t, http.StatusOK, w.Code)

	var user users.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "+15550001111", user.Mobile)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/user/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/user/me", "forged").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/user/me", "ghost").Code)
}

func TestGetUsageToday_Basic(t *testing.T) {
	usage := &stubUsage{count: 3}
	r := newRouter(stubTiers{tier: ratelimit.TierBasic}, usage)

	w := get(r, "/usage/today", "good")
	require.Equal(t, http.StatusOK, w.Code)

	var resp UsageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, UsageResponse{Tier: "basic", Day: "2025-03-15", Used: 3, Limit: 5, Remaining: 2}, resp)
	assert.Equal(t, time.UTC, usage.day.Location())
}

func TestGetUsageToday_OverLimitClampsRemaining(t *testing.T) {
	r := newRouter(stubTiers{tier: ratelimit.TierBasic}, &stubUsage{count: 9})

	var resp UsageResponse
	require.NoError(t, json.Unmarshal(get(r, "/usage/today", "good").Body.Bytes(), &resp))
	assert.Equal(t, int64(0), resp.Remaining)
}

func TestGetUsageToday_Pro(t *testing.T) {
	r := newRouter(stubTiers{tier: ratelimit.TierPro}, &stubUsage{})

	var resp UsageResponse
	require.NoError(t, json.Unmarshal(get(r, "/usage/today", "good").Body.Bytes(), &resp))
	assert.Equal(t, "pro", resp.Tier)
	assert.Equal(t, int64(-1), resp.Limit)
	assert.Equal(t, int64(-1), resp.Remaining)
}

func TestGetUsageToday_LookupFailureReportsBasic(t *testing.T) {
	r := newRouter(stubTiers{tier: ratelimit.TierBasic, err: errors.New("db down")}, &stubUsage{count: 1})

	var resp UsageResponse
	require.NoError(t, json.Unmarshal(get(r, "/usage/today", "good").Body.Bytes(), &resp))
	assert.Equal(t, "basic", resp.Tier)
	assert.Equal(t, int64(4), resp.Remaining)
}

func TestGetUsageToday_LookupFailureIsLogged(t *testing.T) {
	r := newRouter(stubTiers{tier: ratelimit.TierPro, err: errors.New("db down")}, &stubUsage{count: 1})

	var buf bytes.Buffer
	req := httptest.NewRequest(http.MethodGet, "/usage/today", nil)
	req.Header.Set("Authorization", "Bearer good")
	req = req.WithContext(logger.WithContext(req.Context(), logger.New("production", &buf)))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp UsageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "basic", resp.Tier)
	assert.Contains(t, buf.String(), `"component":"tier_store"`)
	assert.Contains(t, buf.String(), "db down")
}

func TestGetUsageToday_CounterUnavailable(t *testing.T) {
	r := newRouter(stubTiers{tier: ratelimit.TierBasic}, &stubUsage{err: errors.New("redis down")})

	w := get(r, "/usage/today", "good")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), ratelimit.UnavailableMessage)
}

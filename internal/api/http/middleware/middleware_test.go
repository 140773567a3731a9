package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(logs *bytes.Buffer, mws ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware(zerolog.New(logs)))
	r.Use(mws...)
	return r
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	var logs bytes.Buffer
	r := newEngine(&logs)
	var seen string
	r.GET("/x", func(c *gin.Context) {
		seen = GetRequestID(c.Request.Context())
		zerolog.Ctx(c.Request.Context()).Info().Msg("inside")
		c.Status(http.StatusNoContent)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))

	rid := rr.Header().Get(HeaderRequestID)
	require.NotEmpty(t, rid)
	assert.Equal(t, rid, seen)

	lines := bytes.Split(bytes.TrimSpace(logs.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		assert.Equal(t, rid, entry["request_id"])
	}

	var access map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &access))
	assert.Equal(t, "GET", access["method"])
	assert.Equal(t, "/x", access["path"])
	assert.EqualValues(t, http.StatusNoContent, access["status"])
}

func TestRequestIDKeepsIncomingHeader(t *testing.T) {
	var logs bytes.Buffer
	r := newEngine(&logs)
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get(HeaderRequestID))
	assert.Contains(t, logs.String(), `"request_id":"abc-123"`)
}

func TestRecovery(t *testing.T) {
	var logs bytes.Buffer
	r := newEngine(&logs, Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rr.Body.String())
	assert.Contains(t, logs.String(), "panic recovered")
	assert.Contains(t, logs.String(), "kaboom")
}

func TestRateLimit(t *testing.T) {
	var logs bytes.Buffer
	r := newEngine(&logs, RateLimit(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 2}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = ip + ":1234"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, hit("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, hit("10.0.0.1").Code)

	rr := hit("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, hit("10.0.0.2").Code, "limits are per client")
}

func TestLimiterStoreEvictsIdleClients(t *testing.T) {
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := newLimiterStore(RateLimitConfig{RequestsPerSecond: 10, BurstSize: 5}, func() time.Time { return clock })
	require.Equal(t, minLimiterIdle, store.idle)

	for i := 0; i < 100; i++ {
		store.get(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}
	require.Equal(t, 100, store.size())

	clock = clock.Add(time.Minute)
	busy := store.get("10.0.0.1")

	clock = clock.Add(minLimiterIdle)
	store.get("192.168.1.1")
	assert.Equal(t, 2, store.size(), "only the recently seen client and the newcomer remain")
	assert.Same(t, busy, store.get("10.0.0.1"), "an active client keeps its limiter")

	// no sweep before another idle period has passed
	clock = clock.Add(time.Minute)
	store.get("192.168.1.2")
	assert.Equal(t, 3, store.size())
}

func TestRateLimitDisabled(t *testing.T) {
	var logs bytes.Buffer
	r := newEngine(&logs, RateLimit(RateLimitConfig{}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))
		require.Equal(t, http.StatusOK, rr.Code)
	}
}

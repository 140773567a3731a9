package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediculture/mediculture-backend/internal/cache"
	"github.com/mediculture/mediculture-backend/internal/db"
)

type fakeStore struct {
	pingErr  error
	countErr error
	counts   map[string]int64
}

func (f fakeStore) Ping(context.Context) error { return f.pingErr }

func (f fakeStore) Counts(_ context.Context, names ...string) (map[string]int64, error) {
	if f.countErr != nil {
		return nil, f.countErr
	}
	out := map[string]int64{}
	for _, n := range names {
		out[n] = f.counts[n]
	}
	return out, nil
}

func serve(h *HealthHandler, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestHealthCheckReportsCounts(t *testing.T) {
	store := fakeStore{counts: map[string]int64{
		db.Users: 1, db.Medicines: 3, db.Appointments: 2, db.CommunityPosts: 0,
	}}
	rr := serve(NewHealthHandler("1.2.3", store, nil), "/api/health")
	require.Equal(t, http.StatusOK, rr.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "OK", body.Status)
	assert.Equal(t, "Connected", body.Database)
	assert.Equal(t, CollectionCounts{Users: 1, Medicines: 3, Appointments: 2}, body.Collections)
	assert.Equal(t, "disabled", body.Cache)
	assert.Equal(t, "1.2.3", body.Version)
	assert.False(t, body.Timestamp.IsZero())
}

func TestHealthCheckStoreFailure(t *testing.T) {
	for name, store := range map[string]fakeStore{
		"ping":  {pingErr: errors.New("no reachable servers")},
		"count": {countErr: errors.New("connection reset")},
	} {
		t.Run(name, func(t *testing.T) {
			rr := serve(NewHealthHandler("1", store, nil), "/api/health")
			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.JSONEq(t, `{"status":"Error","error":"Database unavailable"}`, rr.Body.String())
		})
	}
}

func TestHealthCheckCacheStatus(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	h := NewHealthHandler("1", fakeStore{}, cache.NewRedisCache(client, 0))

	rr := serve(h, "/api/health")
	assert.Contains(t, rr.Body.String(), `"cache":"up"`)

	mr.Close()
	rr = serve(h, "/api/health")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"cache":"down"`)
}

func TestBanners(t *testing.T) {
	h := NewHealthHandler("1", fakeStore{}, nil)

	rr := serve(h, "/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "MEDICULTURE API is running")

	rr = serve(h, "/api/test")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"success"`)
	assert.Contains(t, rr.Body.String(), "timestamp")
}

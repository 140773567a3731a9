package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mediculture/mediculture-backend/internal/db"
)

// Store is the part of the document store the health check needs.
type Store interface {
	Ping(ctx context.Context) error
	Counts(ctx context.Context, collections ...string) (map[string]int64, error)
}

// Pinger reports cache reachability. Nil means no cache is configured.
type Pinger interface {
	Ping(ctx context.Context) error
}

type CollectionCounts struct {
	Users          int64 `json:"users"`
	Medicines      int64 `json:"medicines"`
	Appointments   int64 `json:"appointments"`
	CommunityPosts int64 `json:"communityPosts"`
}

type HealthResponse struct {
	Status      string           `json:"status"`
	Database    string           `json:"database"`
	Collections CollectionCounts `json:"collections"`
	Cache       string           `json:"cache"`
	Version     string           `json:"version"`
	Timestamp   time.Time        `json:"timestamp"`
}

type HealthHandler struct {
	version string
	store   Store
	cache   Pinger
	now     func() time.Time
}

func NewHealthHandler(version string, store Store, cache Pinger) *HealthHandler {
	return &HealthHandler{
		version: version,
		store:   store,
		cache:   cache,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// HealthCheck pings the store and counts every collection. Any store error
// is a 500; a cache outage only degrades the cache field.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	fail := func(err error) {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("health check failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "Error", "error": "Database unavailable"})
	}

	if err := h.store.Ping(ctx); err != nil {
		fail(err)
		return
	}
	counts, err := h.store.Counts(ctx, db.Users, db.Medicines, db.Appointments, db.CommunityPosts)
	if err != nil {
		fail(err)
		return
	}

	cacheStatus := "disabled"
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			cacheStatus = "down"
		} else {
			cacheStatus = "up"
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:   "OK",
		Database: "Connected",
		Collections: CollectionCounts{
			Users:          counts[db.Users],
			Medicines:      counts[db.Medicines],
			Appointments:   counts[db.Appointments],
			CommunityPosts: counts[db.CommunityPosts],
		},
		Cache:     cacheStatus,
		Version:   h.version,
		Timestamp: h.now(),
	})
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "MEDICULTURE API is running",
		"version":   h.version,
		"timestamp": h.now(),
	})
}

func (h *HealthHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   "API is working",
		"timestamp": h.now(),
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/api/test", h.Test)
	r.GET("/api/health", h.HealthCheck)
}

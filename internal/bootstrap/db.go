package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mediculture/mediculture-backend/config"
	"github.com/mediculture/mediculture-backend/internal/cache"
	"github.com/mediculture/mediculture-backend/internal/db"
)

// OpenDB connects to MongoDB and makes sure every collection index exists.
func OpenDB(ctx context.Context, cfg config.MongoConfig) (*db.DB, error) {
	store, err := db.Open(ctx, db.Options{
		URI:            cfg.URI,
		Database:       cfg.Database,
		ConnectTimeout: cfg.ConnectTimeout,
		PingTimeout:    cfg.PingTimeout,
	})
	if err != nil {
		return nil, err
	}

	if err := store.EnsureIndexes(ctx); err != nil {
		_ = store.Close(context.Background())
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	return store, nil
}

// OpenCache returns nil when REDIS_URL is unset. An unreachable Redis is
// logged and treated the same way; the cache is never required.
func OpenCache(ctx context.Context, cfg config.RedisConfig, logger zerolog.Logger) *cache.RedisCache {
	if cfg.URL == "" {
		logger.Info().Msg("REDIS_URL not set, categories cache disabled")
		return nil
	}
	client, err := cache.Open(ctx, cfg.URL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, categories cache disabled")
		return nil
	}
	return cache.NewRedisCache(client, cfg.CacheTTL)
}

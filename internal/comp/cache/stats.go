// Package cache provides the redis-backed aggregation cache. It is strictly
// best-effort: every failure path degrades to a cache miss and the service
// recomputes from the store.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"payscope/internal/comp/models"
	platformredis "payscope/internal/platform/redis"
)

const (
	keyPrefix  = "payscope:stats"
	versionKey = "payscope:stats:version"
)

// StatsCache stores aggregation results in redis. Invalidation bumps a
// version counter instead of scanning for keys; stale entries age out via
// their TTL.
type StatsCache struct {
	client *platformredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*StatsCache)

func WithLogger(logger *slog.Logger) Option {
	return func(c *StatsCache) {
		c.logger = logger
	}
}

func New(client *platformredis.Client, ttl time.Duration, opts ...Option) *StatsCache {
	c := &StatsCache{
		client: client,
		ttl:    ttl,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *StatsCache) Get(ctx context.Context, key string) (*models.SummaryStats, bool) {
	raw, err := c.client.Get(ctx, c.versionedKey(ctx, key)).Bytes()
	if err != nil {
		return nil, false
	}
	var stats models.SummaryStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		c.logger.WarnContext(ctx, "discarding malformed cache entry", "key", key, "error", err)
		return nil, false
	}
	return &stats, true
}

func (c *StatsCache) Set(ctx context.Context, key string, stats *models.SummaryStats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.versionedKey(ctx, key), raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "stats cache write failed", "key", key, "error", err)
	}
}

func (c *StatsCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		c.logger.WarnContext(ctx, "stats cache invalidation failed", "error", err)
	}
}

func (c *StatsCache) versionedKey(ctx context.Context, key string) string {
	version, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil {
		version = 0
	}
	return fmt.Sprintf("%s:v%d:%s", keyPrefix, version, key)
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const mastersCacheKey = "capster:masters"

// RedisMastersCache keeps the masters list in Redis. Redis failures are
// logged and treated as misses so the database stays the source of truth.
type RedisMastersCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisMastersCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisMastersCache {
	return &RedisMastersCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisMastersCache) Get(ctx context.Context) (*Masters, bool) {
	raw, err := c.client.Get(ctx, mastersCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("masters cache get", "error", err)
		}
		return nil, false
	}
	var m Masters
	if err := json.Unmarshal(raw, &m); err != nil {
		c.logger.Warn("masters cache decode", "error", err)
		return nil, false
	}
	return &m, true
}

func (c *RedisMastersCache) Set(ctx context.Context, masters *Masters) {
	raw, err := json.Marshal(masters)
	if err != nil {
		c.logger.Warn("masters cache encode", "error", err)
		return
	}
	if err := c.client.Set(ctx, mastersCacheKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("masters cache set", "error", err)
	}
}

func (c *RedisMastersCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, mastersCacheKey).Err(); err != nil {
		c.logger.Warn("masters cache invalidate", "error", err)
	}
}

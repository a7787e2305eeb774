// Package cache provides a short-TTL Redis cache for read-path query
// results. The write path never touches it; entries simply age out.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"pricefeed/internal/model"
)

// RedisCache caches rendered query rows keyed by normalized query
// parameters. Cache failures degrade to a store read, never to an error.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

type cachedRow struct {
	Columns []string          `json:"columns"`
	Values  map[string]string `json:"values"`
}

// NewRedisCache connects a client; ttl bounds how stale a read may be.
func NewRedisCache(addr, password string, db int, ttl time.Duration, logger *slog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

// Get returns cached rows for the key, or false on miss or any error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]model.Row, bool) {
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var cached []cachedRow
	if err := json.Unmarshal([]byte(data), &cached); err != nil {
		c.logger.Warn("cache entry corrupt, discarding", "key", key, "error", err)
		return nil, false
	}
	rows := make([]model.Row, len(cached))
	for i, cr := range cached {
		rows[i] = model.Row{Columns: cr.Columns, Values: cr.Values}
	}
	return rows, true
}

// Set stores rows under the key with the configured TTL. Failures are
// logged and ignored.
func (c *RedisCache) Set(ctx context.Context, key string, rows []model.Row) {
	cached := make([]cachedRow, len(rows))
	for i, row := range rows {
		cached[i] = cachedRow{Columns: row.Columns, Values: row.Values}
	}
	data, err := json.Marshal(cached)
	if err != nil {
		c.logger.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

// Close releases the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

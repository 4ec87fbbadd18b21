// Package cache holds the Redis read-through caches used by the services.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// JSONCache stores values of T as JSON under "<prefix>:<id>". A nil *JSONCache is a
// valid, always-missing cache, so callers never branch on whether Redis is configured.
// Cache errors are logged and treated as misses.
type JSONCache[T any] struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	log    zerolog.Logger
}

// NewJSONCache returns nil when rdb is nil.
func NewJSONCache[T any](rdb *redis.Client, prefix string, ttl time.Duration, log zerolog.Logger) *JSONCache[T] {
	if rdb == nil {
		return nil
	}
	return &JSONCache[T]{
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
		log:    log.With().Str("cache", prefix).Logger(),
	}
}

// Key returns the Redis key for id.
func (c *JSONCache[T]) Key(id int64) string {
	return Key(c.prefix, id)
}

// Key formats a cache key without needing a cache instance.
func Key(prefix string, id int64) string {
	return fmt.Sprintf("%s:%d", prefix, id)
}

// Get returns the cached value for id, if any.
func (c *JSONCache[T]) Get(ctx context.Context, id int64) (*T, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, c.Key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			c.log.Warn().Err(err).Int64("id", id).Msg("cache read failed")
		}
		return nil, false
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		c.log.Warn().Err(err).Int64("id", id).Msg("dropping undecodable cache entry")
		c.Invalidate(ctx, id)
		return nil, false
	}
	return &v, true
}

// Set stores v under id for the configured TTL.
func (c *JSONCache[T]) Set(ctx context.Context, id int64, v *T) {
	if c == nil || v == nil {
		return
	}

	raw, err := json.Marshal(v)
	if err != nil {
		c.log.Warn().Err(err).Int64("id", id).Msg("cache encode failed")
		return
	}
	if err := c.rdb.Set(ctx, c.Key(id), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Int64("id", id).Msg("cache write failed")
	}
}

// Invalidate removes the entries for ids.
func (c *JSONCache[T]) Invalidate(ctx context.Context, ids ...int64) {
	if c == nil || len(ids) == 0 {
		return
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.Key(id)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Strs("keys", keys).Msg("cache invalidate failed")
	}
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/mo"

	"github.com/taibuivan/yomira-reader/internal/platform/constants"
)

// DefaultCacheTTL is how long cached lookups stay valid.
const DefaultCacheTTL = 24 * time.Hour

// Cache stores raw lookup results. Implementations swallow their own failures.
type Cache interface {
	Get(ctx context.Context, key string) mo.Option[[]byte]
	Set(ctx context.Context, key string, value []byte)
}

// NoCache never hits.
type NoCache struct{}

// Get implements [Cache].
func (NoCache) Get(context.Context, string) mo.Option[[]byte] { return mo.None[[]byte]() }

// Set implements [Cache].
func (NoCache) Set(context.Context, string, []byte) {}

// RedisCache keeps lookups in Redis under the metadata prefix.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache creates a cache with the given entry lifetime.
func NewRedisCache(client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

// Get implements [Cache].
func (cache *RedisCache) Get(ctx context.Context, key string) mo.Option[[]byte] {
	value, err := cache.client.Get(ctx, constants.RedisPrefixMetadata+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			cache.logger.DebugContext(ctx, "metadata_cache_get_failed", slog.String("key", key), slog.Any("error", err))
		}
		return mo.None[[]byte]()
	}
	return mo.Some(value)
}

// Set implements [Cache].
func (cache *RedisCache) Set(ctx context.Context, key string, value []byte) {
	if err := cache.client.Set(ctx, constants.RedisPrefixMetadata+key, value, cache.ttl).Err(); err != nil {
		cache.logger.DebugContext(ctx, "metadata_cache_set_failed", slog.String("key", key), slog.Any("error", err))
	}
}

// cacheGet decodes a cached value; undecodable entries count as misses.
func cacheGet[T any](ctx context.Context, cache Cache, key string) mo.Option[T] {
	raw, ok := cache.Get(ctx, key).Get()
	if !ok {
		return mo.None[T]()
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return mo.None[T]()
	}
	return mo.Some(value)
}

func cacheSet[T any](ctx context.Context, cache Cache, key string, value T) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	cache.Set(ctx, key, raw)
}

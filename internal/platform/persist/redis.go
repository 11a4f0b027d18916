// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yomira-reader/internal/platform/constants"
)

// RedisBackend stores documents as plain string values without expiry.
type RedisBackend struct {
	client redis.Cmdable
}

// NewRedisBackend creates a backend over an existing client.
func NewRedisBackend(client redis.Cmdable) *RedisBackend {
	return &RedisBackend{client: client}
}

/*
Load implements [Backend].

Returns:
  - []byte: the stored document
  - error: [ErrNotFound] on redis.Nil, connectivity errors otherwise
*/
func (backend *RedisBackend) Load(ctx context.Context, key string) ([]byte, error) {
	document, err := backend.client.Get(ctx, constants.RedisPrefixState+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis_state_get_failed: %w", err)
	}
	return document, nil
}

// Save implements [Backend].
func (backend *RedisBackend) Save(ctx context.Context, key string, document []byte) error {
	if err := backend.client.Set(ctx, constants.RedisPrefixState+key, document, 0).Err(); err != nil {
		return fmt.Errorf("redis_state_set_failed: %w", err)
	}
	return nil
}

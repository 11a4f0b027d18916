// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persist_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-reader/internal/platform/persist"
)

// fakeRedis serves GET and SET from a map. Any other command panics.
type fakeRedis struct {
	redis.Cmdable
	values map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (fake *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if fake.getErr != nil {
		return redis.NewStringResult("", fake.getErr)
	}
	value, found := fake.values[key]
	if !found {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (fake *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	switch typed := value.(type) {
	case []byte:
		fake.values[key] = string(typed)
	case string:
		fake.values[key] = typed
	}
	fake.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestRedisBackend_MissingKeyIsNotFound(t *testing.T) {
	backend := persist.NewRedisBackend(newFakeRedis())

	_, err := backend.Load(context.Background(), "favorites-storage")
	assert.ErrorIs(t, err, persist.ErrNotFound)
}

func TestRedisBackend_RoundTripUnderPrefix(t *testing.T) {
	fake := newFakeRedis()
	backend := persist.NewRedisBackend(fake)

	require.NoError(t, backend.Save(context.Background(), "recent-storage", []byte(`{"state":{},"version":0}`)))

	assert.Equal(t, `{"state":{},"version":0}`, fake.values["yomira:state:recent-storage"])
	assert.Zero(t, fake.ttls["yomira:state:recent-storage"])

	document, err := backend.Load(context.Background(), "recent-storage")
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{},"version":0}`, string(document))
}

func TestRedisBackend_ConnectivityErrorIsNotNotFound(t *testing.T) {
	fake := newFakeRedis()
	fake.getErr = errors.New("connection refused")

	_, err := persist.NewRedisBackend(fake).Load(context.Background(), "favorites-storage")
	require.Error(t, err)
	assert.NotErrorIs(t, err, persist.ErrNotFound)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRedisBackend_WithStore(t *testing.T) {
	fake := newFakeRedis()

	registry := persist.NewRegistry(persist.NewRedisBackend(fake), discardLogger())
	store, err := persist.Open(context.Background(), registry, "counter", counterState{})
	require.NoError(t, err)
	store.Set(context.Background(), func(state counterState) counterState {
		state.Count = 7
		return state
	})

	reopened, err := persist.Open(context.Background(),
		persist.NewRegistry(persist.NewRedisBackend(fake), discardLogger()), "counter", counterState{})
	require.NoError(t, err)
	assert.Equal(t, 7, reopened.Get().Count)
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recent_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-reader/internal/library/recent"
	"github.com/taibuivan/yomira-reader/internal/platform/persist"
)

// steppingClock advances one second per call.
func steppingClock() func() time.Time {
	current := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func newStore(t *testing.T, backend persist.Backend) *recent.Store {
	t.Helper()
	registry := persist.NewRegistry(backend, slog.New(slog.NewTextHandler(io.Discard, nil)))
	store, err := recent.NewStore(context.Background(), registry, steppingClock())
	require.NoError(t, err)
	return store
}

func ids(list []recent.Entry) []string {
	return lo.Map(list, func(entry recent.Entry, _ int) string { return entry.ID })
}

/*
TestAdd_DedupeAndBump verifies that re-adding an id moves it to the front
without duplicating it.
*/
func TestAdd_DedupeAndBump(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, persist.NewMemoryBackend())

	store.Add(ctx, recent.Entry{ID: "X", Title: "x"})
	store.Add(ctx, recent.Entry{ID: "Y", Title: "y"})
	store.Add(ctx, recent.Entry{ID: "X", Title: "x", LastChapter: "ch-2"})

	list := store.List()
	assert.Equal(t, []string{"X", "Y"}, ids(list))
	assert.Equal(t, "ch-2", list[0].LastChapter)
	assert.Greater(t, list[0].LastViewed, list[1].LastViewed)
}

/*
TestAdd_CapsAtTen verifies the history bound: the eleventh distinct add evicts
the oldest entry.
*/
func TestAdd_CapsAtTen(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, persist.NewMemoryBackend())

	for i := range 11 {
		store.Add(ctx, recent.Entry{ID: fmt.Sprintf("s%d", i), Title: "t"})
	}

	list := store.List()
	require.Len(t, list, recent.MaxEntries)
	assert.Equal(t, "s10", list[0].ID)
	assert.NotContains(t, ids(list), "s0")
	assert.Equal(t, "s1", list[len(list)-1].ID)
}

func TestAdd_StampsLastViewed(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, persist.NewMemoryBackend())

	entry := store.Add(ctx, recent.Entry{ID: "X", Title: "x", LastViewed: 42})

	want := time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC).UnixMilli()
	assert.Equal(t, want, entry.LastViewed)
	assert.Equal(t, want, store.List()[0].LastViewed)
}

func TestPush_IsPure(t *testing.T) {
	original := []recent.Entry{{ID: "a"}, {ID: "b"}}
	next := recent.Push(original, recent.Entry{ID: "b"})

	assert.Equal(t, []string{"a", "b"}, ids(original))
	assert.Equal(t, []string{"b", "a"}, ids(next))
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	backend := persist.NewMemoryBackend()
	store := newStore(t, backend)

	store.Add(ctx, recent.Entry{ID: "X", Title: "x"})
	store.Clear(ctx)
	assert.Empty(t, store.List())

	raw, err := backend.Load(ctx, "recent-storage")
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{"recentlyViewed":[]},"version":0}`, string(raw))
}

func TestHandler_AddAndClear(t *testing.T) {
	store := newStore(t, persist.NewMemoryBackend())
	router := recent.NewHandler(store).Routes()

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id":"X","title":"Title X","coverImage":"c"}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, []string{"X"}, ids(store.List()))

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/", nil))
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, store.List())
}

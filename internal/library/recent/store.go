// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recent

import (
	"context"
	"slices"
	"time"

	"github.com/taibuivan/yomira-reader/internal/platform/constants"
	"github.com/taibuivan/yomira-reader/internal/platform/persist"
)

// Store is the persisted recent-history list.
type Store struct {
	state *persist.Store[State]
	now   func() time.Time
}

// NewStore opens the recent-history document. A nil clock uses time.Now.
func NewStore(ctx context.Context, registry *persist.Registry, now func() time.Time) (*Store, error) {
	state, err := persist.Open(ctx, registry, constants.StorageKeyRecent, State{RecentlyViewed: []Entry{}})
	if err != nil {
		return nil, err
	}

	if now == nil {
		now = time.Now
	}
	return &Store{state: state, now: now}, nil
}

// Add stamps entry with the current time and moves it to the front of the history.
func (store *Store) Add(ctx context.Context, entry Entry) Entry {
	entry.LastViewed = store.now().UnixMilli()

	store.state.Set(ctx, func(state State) State {
		state.RecentlyViewed = Push(state.RecentlyViewed, entry)
		return state
	})
	return entry
}

// Clear empties the history.
func (store *Store) Clear(ctx context.Context) {
	store.state.Set(ctx, func(state State) State {
		state.RecentlyViewed = []Entry{}
		return state
	})
}

// List returns a copy of the history, most recent first.
func (store *Store) List() []Entry {
	list := slices.Clone(store.state.Get().RecentlyViewed)
	if list == nil {
		return []Entry{}
	}
	return list
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorites

import (
	"context"
	"slices"

	"github.com/taibuivan/yomira-reader/internal/platform/constants"
	"github.com/taibuivan/yomira-reader/internal/platform/persist"
)

// Store is the persisted favorites list.
type Store struct {
	state *persist.Store[State]
}

// NewStore opens the favorites document in the registry.
func NewStore(ctx context.Context, registry *persist.Registry) (*Store, error) {
	state, err := persist.Open(ctx, registry, constants.StorageKeyFavorites, State{Favorites: []Entry{}})
	if err != nil {
		return nil, err
	}
	return &Store{state: state}, nil
}

// Add bookmarks entry unless its source id is already bookmarked.
func (store *Store) Add(ctx context.Context, entry Entry) {
	store.state.Set(ctx, func(state State) State {
		state.Favorites = Add(state.Favorites, entry)
		return state
	})
}

// Remove drops the bookmark for sourceID. Absent ids are ignored.
func (store *Store) Remove(ctx context.Context, sourceID string) {
	store.state.Set(ctx, func(state State) State {
		state.Favorites = Remove(state.Favorites, sourceID)
		return state
	})
}

// Toggle removes the bookmark when present and adds it otherwise.
// It reports whether the entry is a favorite afterwards.
func (store *Store) Toggle(ctx context.Context, entry Entry) bool {
	next := store.state.Set(ctx, func(state State) State {
		if Contains(state.Favorites, entry.SourceID) {
			state.Favorites = Remove(state.Favorites, entry.SourceID)
		} else {
			state.Favorites = Add(state.Favorites, entry)
		}
		return state
	})
	return Contains(next.Favorites, entry.SourceID)
}

// IsFavorite reports whether sourceID is bookmarked.
func (store *Store) IsFavorite(sourceID string) bool {
	return Contains(store.state.Get().Favorites, sourceID)
}

// List returns a copy of the bookmarks in insertion order.
func (store *Store) List() []Entry {
	list := slices.Clone(store.state.Get().Favorites)
	if list == nil {
		return []Entry{}
	}
	return list
}

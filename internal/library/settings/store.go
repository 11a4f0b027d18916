// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package settings

import (
	"context"

	"github.com/taibuivan/yomira-reader/internal/platform/constants"
	"github.com/taibuivan/yomira-reader/internal/platform/persist"
)

// Store is the persisted preference set.
type Store struct {
	state *persist.Store[State]
}

// NewStore opens the settings document.
func NewStore(ctx context.Context, registry *persist.Registry) (*Store, error) {
	state, err := persist.Open(ctx, registry, constants.StorageKeySettings, State{Settings: Defaults()})
	if err != nil {
		return nil, err
	}
	return &Store{state: state}, nil
}

// Get returns the current preferences.
func (store *Store) Get() Settings {
	return store.state.Get().Settings
}

/*
Update merges patch into the current preferences.

Returns:
  - Settings: the preferences after the update
  - error: VALIDATION_ERROR when patch is invalid; the state is left untouched
*/
func (store *Store) Update(ctx context.Context, patch Patch) (Settings, error) {
	if err := patch.Validate(); err != nil {
		return store.Get(), err
	}

	next := store.state.Set(ctx, func(state State) State {
		state.Settings = Apply(state.Settings, patch)
		return state
	})
	return next.Settings, nil
}

// Reset restores the defaults.
func (store *Store) Reset(ctx context.Context) Settings {
	next := store.state.Set(ctx, func(State) State {
		return State{Settings: Defaults()}
	})
	return next.Settings
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package persist keeps small pieces of user-owned state in memory and mirrors
every change to a durable key-value backend.

Each [Store] owns exactly one key. On open it loads the persisted document and
uses it when it is schema-compatible, otherwise it starts from the supplied
initial value. Every [Store.Set] applies a pure updater and writes the new
state through before returning.

Document format:

	{"state": <T>, "version": 0}

Persistence failures never reach callers: they are logged at WARN and the
in-memory state stays authoritative for the rest of the process.
*/
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// SchemaVersion is written into every document; documents carrying any other
// version are treated as incompatible.
const SchemaVersion = 0

var (
	// ErrNotFound is returned by a [Backend] when no document exists for a key.
	ErrNotFound = errors.New("persist: document not found")

	// ErrKeyInUse is returned by [Open] when another store already owns the key.
	ErrKeyInUse = errors.New("persist: storage key already in use")
)

// Backend reads and writes raw documents by key.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, document []byte) error
}

// Document is the persisted envelope around a store's state.
type Document[T any] struct {
	State   T   `json:"state"`
	Version int `json:"version"`
}

// # Registry

// Registry hands out storage keys over a shared backend.
type Registry struct {
	mu      sync.Mutex
	backend Backend
	logger  *slog.Logger
	keys    map[string]struct{}
}

// NewRegistry creates a registry writing through the given backend.
func NewRegistry(backend Backend, logger *slog.Logger) *Registry {
	return &Registry{
		backend: backend,
		logger:  logger,
		keys:    make(map[string]struct{}),
	}
}

func (registry *Registry) claim(key string) error {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, taken := registry.keys[key]; taken {
		return fmt.Errorf("%w: %s", ErrKeyInUse, key)
	}
	registry.keys[key] = struct{}{}
	return nil
}

// Keys returns the claimed storage keys in no particular order.
func (registry *Registry) Keys() []string {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	keys := make([]string, 0, len(registry.keys))
	for key := range registry.keys {
		keys = append(keys, key)
	}
	return keys
}

// # Store

// Store holds the live state for one storage key.
type Store[T any] struct {
	mu      sync.Mutex
	key     string
	state   T
	backend Backend
	logger  *slog.Logger
}

/*
Open claims key in the registry and loads its persisted state.

Parameters:
  - ctx: bounds the initial load
  - registry: owner of the key namespace and backend
  - key: storage key (e.g. "favorites-storage")
  - initial: state used when nothing compatible is persisted

Returns:
  - *Store[T]: the ready store
  - error: [ErrKeyInUse] when the key is already owned
*/
func Open[T any](ctx context.Context, registry *Registry, key string, initial T) (*Store[T], error) {
	if err := registry.claim(key); err != nil {
		return nil, err
	}

	logger := registry.logger.With(slog.String("store_key", key))
	store := &Store[T]{
		key:     key,
		backend: registry.backend,
		logger:  logger,
	}
	store.state = store.load(ctx, initial)

	return store, nil
}

// load returns the persisted state, or initial when the document is missing,
// unreadable or incompatible.
func (store *Store[T]) load(ctx context.Context, initial T) T {
	raw, err := store.backend.Load(ctx, store.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			store.logger.WarnContext(ctx, "persist_load_failed", slog.Any("error", err))
		}
		return initial
	}

	// Decode over a copy of the initial state so fields absent from the
	// document keep their defaults.
	base, err := clone(initial)
	if err != nil {
		store.logger.WarnContext(ctx, "persist_load_failed", slog.Any("error", err))
		return initial
	}

	document := Document[T]{State: base, Version: SchemaVersion}
	if err := json.Unmarshal(raw, &document); err != nil {
		store.logger.WarnContext(ctx, "persist_document_incompatible", slog.Any("error", err))
		return initial
	}

	if document.Version != SchemaVersion {
		store.logger.WarnContext(ctx, "persist_document_incompatible", slog.Int("version", document.Version))
		return initial
	}

	return document.State
}

// Key returns the storage key owned by the store.
func (store *Store[T]) Key() string {
	return store.key
}

// Get returns the current state.
func (store *Store[T]) Get() T {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.state
}

/*
Set replaces the state with updater(current) and writes it through.

The updater runs under the store lock and must not call back into the store.
A failed write is logged and otherwise ignored.

Returns:
  - T: the new state
*/
func (store *Store[T]) Set(ctx context.Context, updater func(T) T) T {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.state = updater(store.state)
	store.save(ctx, store.state)

	return store.state
}

func (store *Store[T]) save(ctx context.Context, state T) {
	raw, err := json.Marshal(Document[T]{State: state, Version: SchemaVersion})
	if err != nil {
		store.logger.WarnContext(ctx, "persist_save_failed", slog.Any("error", err))
		return
	}

	if err := store.backend.Save(ctx, store.key, raw); err != nil {
		store.logger.WarnContext(ctx, "persist_save_failed", slog.Any("error", err))
	}
}

// clone deep-copies a JSON-serializable value.
func clone[T any](value T) (T, error) {
	var copied T

	raw, err := json.Marshal(value)
	if err != nil {
		return copied, err
	}
	err = json.Unmarshal(raw, &copied)
	return copied, err
}

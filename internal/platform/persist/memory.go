// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persist

import (
	"context"
	"slices"
	"sync"
)

// MemoryBackend keeps documents for the lifetime of the process only.
type MemoryBackend struct {
	mu        sync.RWMutex
	documents map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{documents: make(map[string][]byte)}
}

// Load implements [Backend].
func (backend *MemoryBackend) Load(_ context.Context, key string) ([]byte, error) {
	backend.mu.RLock()
	defer backend.mu.RUnlock()

	document, found := backend.documents[key]
	if !found {
		return nil, ErrNotFound
	}
	return slices.Clone(document), nil
}

// Save implements [Backend].
func (backend *MemoryBackend) Save(_ context.Context, key string, document []byte) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	backend.documents[key] = slices.Clone(document)
	return nil
}

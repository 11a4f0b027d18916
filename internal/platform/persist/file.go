// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/metafates/gache"

	"github.com/taibuivan/yomira-reader/internal/platform/filesystem"
)

// FileBackend stores one gache JSON file per key under a directory.
type FileBackend struct {
	mu     sync.Mutex
	fs     *filesystem.FS
	dir    string
	caches map[string]*gache.Cache[json.RawMessage]
}

// NewFileBackend creates a backend rooted at dir on the given filesystem.
func NewFileBackend(fs *filesystem.FS, dir string) *FileBackend {
	return &FileBackend{
		fs:     fs,
		dir:    dir,
		caches: make(map[string]*gache.Cache[json.RawMessage]),
	}
}

// Path returns the file that holds the document for key.
func (backend *FileBackend) Path(key string) string {
	return filepath.Join(backend.dir, key+".json")
}

func (backend *FileBackend) cache(key string) *gache.Cache[json.RawMessage] {
	cache, found := backend.caches[key]
	if !found {
		cache = gache.New[json.RawMessage](&gache.Options{
			Path:       backend.Path(key),
			FileSystem: backend.fs,
		})
		backend.caches[key] = cache
	}
	return cache
}

// Load implements [Backend].
func (backend *FileBackend) Load(_ context.Context, key string) ([]byte, error) {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	exists, err := backend.fs.Exists(backend.Path(key))
	if err != nil {
		return nil, fmt.Errorf("persist: stat %s: %w", key, err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	document, expired, err := backend.cache(key).Get()
	if err != nil {
		return nil, fmt.Errorf("persist: read %s: %w", key, err)
	}
	if expired || len(document) == 0 {
		return nil, ErrNotFound
	}
	return document, nil
}

// Save implements [Backend].
func (backend *FileBackend) Save(_ context.Context, key string, document []byte) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	if err := backend.fs.MkdirAll(backend.dir, 0o755); err != nil {
		return fmt.Errorf("persist: create %s: %w", backend.dir, err)
	}

	if err := backend.cache(key).Set(json.RawMessage(document)); err != nil {
		return fmt.Errorf("persist: write %s: %w", key, err)
	}
	return nil
}

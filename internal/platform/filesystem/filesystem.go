// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package filesystem provides a swappable filesystem for on-disk state.

It wraps afero so the file-backed state store can run against the real disk
in production and an in-memory tree in tests, without touching the os package
directly.
*/
package filesystem

import (
	"io"
	"os"

	"github.com/spf13/afero"
)

// FS is an afero filesystem that also satisfies gache's FileSystem contract.
type FS struct {
	afero.Afero
}

// OS returns a filesystem backed by the operating system.
func OS() *FS {
	return &FS{Afero: afero.Afero{Fs: afero.NewOsFs()}}
}

// Memory returns a volatile in-memory filesystem.
func Memory() *FS {
	return &FS{Afero: afero.Afero{Fs: afero.NewMemMapFs()}}
}

// # gache adapter

// OpenFile opens a file on the wrapped backend. It narrows afero.File to the
// io.ReadWriteCloser gache expects.
func (fs *FS) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return fs.Fs.OpenFile(name, flag, perm)
}

// MkdirAll creates a directory tree on the wrapped backend.
func (fs *FS) MkdirAll(path string, perm os.FileMode) error {
	return fs.Fs.MkdirAll(path, perm)
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package filesystem_test

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-reader/internal/platform/filesystem"
)

func TestBackends(t *testing.T) {
	assert.Equal(t, "OsFs", filesystem.OS().Name())
	assert.Equal(t, "MemMapFS", filesystem.Memory().Name())
}

/*
TestFS_OpenFile_RoundTrip writes through the gache adapter and reads back
through afero.
*/
func TestFS_OpenFile_RoundTrip(t *testing.T) {
	fs := filesystem.Memory()

	require.NoError(t, fs.MkdirAll("/state", 0o755))

	file, err := fs.OpenFile("/state/doc.json", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	require.NoError(t, err)
	_, err = io.WriteString(file, `{"ok":true}`)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	exists, err := fs.Exists("/state/doc.json")
	require.NoError(t, err)
	assert.True(t, exists)

	content, err := fs.ReadFile("/state/doc.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(content))
}

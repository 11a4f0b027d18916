// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-reader/internal/app"
	"github.com/taibuivan/yomira-reader/internal/cli"
	"github.com/taibuivan/yomira-reader/internal/library/favorites"
	"github.com/taibuivan/yomira-reader/internal/library/recent"
	"github.com/taibuivan/yomira-reader/internal/library/settings"
)

func newLibrary(t *testing.T) *app.App {
	t.Helper()
	library, err := app.NewInMemory(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return library
}

func run(t *testing.T, library *app.App, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := cli.NewRootCommand(func(context.Context) (*app.App, error) { return library, nil }, &out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFavorites_AddListRemove(t *testing.T) {
	library := newLibrary(t)

	_, err := run(t, library, "favorites", "add", "op", "One Piece", "--image", "op.jpg")
	require.NoError(t, err)

	out, err := run(t, library, "favorites", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "One Piece")

	out, err = run(t, library, "favorites", "list", "--json")
	require.NoError(t, err)
	var entries []favorites.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Equal(t, []favorites.Entry{{SourceID: "op", AnimeName: "One Piece", ImageSrc: "op.jpg"}}, entries)

	_, err = run(t, library, "favorites", "rm", "op")
	require.NoError(t, err)
	assert.Empty(t, library.Favorites.List())

	_, err = run(t, library, "favorites", "remove", "op")
	assert.Error(t, err)
}

func TestRecent_ListAndClear(t *testing.T) {
	library := newLibrary(t)
	library.Recent.Add(context.Background(), recent.Entry{ID: "x", Title: "Series X", LastChapter: "12"})

	out, err := run(t, library, "recent", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Series X")

	out, err = run(t, library, "recent", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "History cleared.")
	assert.Empty(t, library.Recent.List())

	out, err = run(t, library, "recent", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No reading history.")
}

func TestSettings_SetShowReset(t *testing.T) {
	library := newLibrary(t)

	out, err := run(t, library, "settings", "set", "--color-scheme", "sepia", "--speed", "10", "--json")
	require.NoError(t, err)

	var updated settings.Settings
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, settings.SchemeSepia, updated.ColorScheme)
	assert.Equal(t, 10, updated.AutoScrollSpeed)
	assert.Equal(t, settings.Defaults().FontSize, updated.FontSize)

	out, err = run(t, library, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "sepia")

	_, err = run(t, library, "settings", "reset")
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults(), library.Settings.Get())
}

func TestSettings_SetRejectsInvalid(t *testing.T) {
	library := newLibrary(t)

	_, err := run(t, library, "settings", "set", "--speed", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "autoScrollSpeed")
	assert.Equal(t, settings.Defaults(), library.Settings.Get())

	_, err = run(t, library, "settings", "set")
	assert.Error(t, err)
}

func TestClosing_ReleasesAfterFailedCommand(t *testing.T) {
	library := newLibrary(t)

	closed := 0
	library.OnClose("counter", func() error { closed++; return nil })

	open, release := cli.Closing(func(context.Context) (*app.App, error) { return library, nil })
	root := cli.NewRootCommand(open, io.Discard)
	root.SetArgs([]string{"settings", "set", "--speed", "99"})

	require.Error(t, root.ExecuteContext(context.Background()))
	assert.Zero(t, closed)

	release()
	assert.Equal(t, 1, closed)

	release()
	assert.Equal(t, 1, closed)
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reader drives paginated reading sessions.

A [Session] holds the view state of one open chapter: view mode, zoom,
rotation, auto-scroll, and whether the on-screen controls are showing. Key
presses mutate that state the same way the reader's keyboard shortcuts do.
Two timers run per session:

  - Auto-scroll: while enabled, every tick advances the scroll offset by the
    current speed.
  - Controls fade: [Session.Touch] shows the controls and hides them again
    after a quiet period, unless a side panel is open.

Both timers stop when the session closes. The [Manager] owns every open
session and closes them all on shutdown.
*/
package reader

import (
	"math"
	"time"

	"github.com/taibuivan/yomira-reader/internal/catalog"
	"github.com/taibuivan/yomira-reader/internal/platform/apperr"
)

// Keys understood by [Session.Press].
const (
	KeyFullscreen = "f"
	KeyVertical   = "v"
	KeyHorizontal = "h"
	KeyDouble     = "d"
	KeySingle     = "s"
	KeyZoomIn     = "+"
	KeyZoomOut    = "-"
	KeyRotate     = "r"
	KeySpace      = " "
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
)

// Zoom bounds, in percent.
const (
	MinZoom     = 50
	MaxZoom     = 200
	ZoomStep    = 10
	DefaultZoom = 100
)

// Chapter navigation directions.
const (
	Next     = 1
	Previous = -1
)

// ErrClosed is returned by every operation on a closed session.
var ErrClosed = apperr.Gone("Reader session is closed")

// # Timing

// Timing configures the session timers.
type Timing struct {
	// ScrollInterval is the auto-scroll tick.
	ScrollInterval time.Duration
	// ControlsFade is how long controls stay visible after the last touch.
	ControlsFade time.Duration
}

// DefaultTiming returns the production timer settings.
func DefaultTiming() Timing {
	return Timing{
		ScrollInterval: 50 * time.Millisecond,
		ControlsFade:   3 * time.Second,
	}
}

// # Snapshot

// State is a point-in-time copy of a session.
type State struct {
	ID              string            `json:"id"`
	SeriesID        string            `json:"series_id"`
	Title           string            `json:"title"`
	CoverImage      string            `json:"cover_image"`
	ChapterID       string            `json:"chapter_id"`
	ChapterIndex    int               `json:"chapter_index"`
	Chapters        []catalog.Chapter `json:"chapters"`
	Pages           []catalog.Page    `json:"pages"`
	ViewMode        string            `json:"view_mode"`
	ColorScheme     string            `json:"color_scheme"`
	Zoom            int               `json:"zoom"`
	Rotation        int               `json:"rotation"`
	Fullscreen      bool              `json:"fullscreen"`
	AutoScroll      bool              `json:"auto_scroll"`
	AutoScrollSpeed int               `json:"auto_scroll_speed"`
	ScrollOffset    int               `json:"scroll_offset"`
	Page            int               `json:"page"`
	Progress        int               `json:"progress"`
	ControlsVisible bool              `json:"controls_visible"`
	SettingsOpen    bool              `json:"settings_open"`
	ChapterListOpen bool              `json:"chapter_list_open"`
	HasNext         bool              `json:"has_next"`
	HasPrevious     bool              `json:"has_previous"`
}

// # Pure Transitions

// Zoom applies delta to current and clamps the result to [MinZoom, MaxZoom].
func Zoom(current, delta int) int {
	return min(MaxZoom, max(MinZoom, current+delta))
}

// Rotate turns the page a quarter clockwise.
func Rotate(degrees int) int {
	return (degrees + 90) % 360
}

// Percentage is the rounded share of total that page represents, capped at 100.
// An empty chapter has no progress.
func Percentage(page, total int) int {
	if total <= 0 {
		return 0
	}
	return min(100, int(math.Round(float64(page)/float64(total)*100)))
}

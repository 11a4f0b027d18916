// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/yomira-reader/internal/library/settings"
	"github.com/taibuivan/yomira-reader/pkg/pointer"
)

// Session is one open chapter. All methods are safe for concurrent use.
type Session struct {
	mu     sync.Mutex
	state  State
	deps   *dependencies
	closed bool

	// Generations invalidate timer callbacks that were already in flight when
	// their timer was replaced or stopped.
	scrollGen  uint64
	stopScroll context.CancelFunc
	fadeGen    uint64
	fade       *time.Timer

	workers sync.WaitGroup
}

func newSession(state State, deps *dependencies) *Session {
	session := &Session{state: state, deps: deps}
	if state.AutoScroll {
		session.startScrollLocked()
	}
	return session
}

// ID returns the session identifier.
func (session *Session) ID() string {
	return session.state.ID
}

// State returns a snapshot of the session.
func (session *Session) State() (State, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.closed {
		return State{}, ErrClosed
	}
	return session.snapshotLocked(), nil
}

// # Key Bindings

/*
Press applies a keyboard shortcut.

Space toggles auto-scroll. ArrowUp slows it down and ArrowDown speeds it up,
but only while it is running. Both changes are written back to the reading
settings so the next session starts the same way. Unknown keys are ignored.
*/
func (session *Session) Press(ctx context.Context, key string) (State, error) {
	session.mu.Lock()
	if session.closed {
		session.mu.Unlock()
		return State{}, ErrClosed
	}

	var patch *settings.Patch
	state := &session.state

	switch key {
	case KeyFullscreen:
		state.Fullscreen = !state.Fullscreen
	case KeyVertical:
		state.ViewMode = settings.ModeVertical
	case KeyHorizontal:
		state.ViewMode = settings.ModeHorizontal
	case KeyDouble:
		state.ViewMode = settings.ModeDouble
	case KeySingle:
		state.ViewMode = settings.ModeSingle
	case KeyZoomIn:
		state.Zoom = Zoom(state.Zoom, ZoomStep)
	case KeyZoomOut:
		state.Zoom = Zoom(state.Zoom, -ZoomStep)
	case KeyRotate:
		state.Rotation = Rotate(state.Rotation)
	case KeySpace:
		state.AutoScroll = !state.AutoScroll
		if state.AutoScroll {
			session.startScrollLocked()
		} else {
			session.stopScrollLocked()
		}
		patch = &settings.Patch{AutoScroll: pointer.To(state.AutoScroll)}
	case KeyArrowUp, KeyArrowDown:
		if !state.AutoScroll {
			break
		}
		speed := state.AutoScrollSpeed + 1
		if key == KeyArrowUp {
			speed = state.AutoScrollSpeed - 1
		}
		state.AutoScrollSpeed = min(settings.MaxSpeed, max(settings.MinSpeed, speed))
		patch = &settings.Patch{AutoScrollSpeed: pointer.To(state.AutoScrollSpeed)}
	}

	snapshot := session.snapshotLocked()
	session.mu.Unlock()

	if patch != nil {
		if _, err := session.deps.prefs.Update(ctx, *patch); err != nil {
			session.deps.logger.WarnContext(ctx, "reader_settings_persist_failed",
				slog.String("session_id", snapshot.ID),
				slog.Any("error", err),
			)
		}
	}
	return snapshot, nil
}

// # Controls

// Touch shows the controls and restarts the fade timer.
func (session *Session) Touch() (State, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.closed {
		return State{}, ErrClosed
	}

	session.state.ControlsVisible = true
	session.stopFadeLocked()

	generation := session.fadeGen
	session.fade = time.AfterFunc(session.deps.timing.ControlsFade, func() {
		session.mu.Lock()
		defer session.mu.Unlock()

		if session.closed || session.fadeGen != generation {
			return
		}
		if !session.state.SettingsOpen && !session.state.ChapterListOpen {
			session.state.ControlsVisible = false
		}
	})

	return session.snapshotLocked(), nil
}

// SetPanels records which side panels are open. An open panel keeps the
// controls on screen.
func (session *Session) SetPanels(settingsOpen, chapterListOpen bool) (State, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.closed {
		return State{}, ErrClosed
	}

	session.state.SettingsOpen = settingsOpen
	session.state.ChapterListOpen = chapterListOpen
	if settingsOpen || chapterListOpen {
		session.state.ControlsVisible = true
	}
	return session.snapshotLocked(), nil
}

// Seek moves to a page (1-based, clamped to the chapter) and updates progress.
func (session *Session) Seek(page int) (State, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.closed {
		return State{}, ErrClosed
	}

	total := len(session.state.Pages)
	session.state.Page = min(total, max(1, page))
	session.state.Progress = Percentage(session.state.Page, total)
	return session.snapshotLocked(), nil
}

// # Chapter Navigation

/*
Navigate opens the neighbouring chapter in direction ([Next] or [Previous]).

Moving past either end of the chapter list is a no-op. The new chapter's
pages are fetched before the session switches, so a failed fetch leaves the
current chapter in place. A successful switch is recorded in recent history.
*/
func (session *Session) Navigate(ctx context.Context, direction int) (State, error) {
	session.mu.Lock()
	if session.closed {
		session.mu.Unlock()
		return State{}, ErrClosed
	}

	target := session.state.ChapterIndex + direction
	if direction == 0 || target < 0 || target >= len(session.state.Chapters) {
		snapshot := session.snapshotLocked()
		session.mu.Unlock()
		return snapshot, nil
	}
	chapter := session.state.Chapters[target]
	session.mu.Unlock()

	pages, err := session.deps.catalog.FetchPages(ctx, chapter.ChapterID)
	if err != nil {
		return State{}, err
	}

	session.mu.Lock()
	if session.closed {
		session.mu.Unlock()
		return State{}, ErrClosed
	}
	session.state.ChapterIndex = target
	session.state.ChapterID = chapter.ChapterID
	session.state.Pages = pages
	session.state.ScrollOffset = 0
	session.state.Page = 0
	session.state.Progress = 0
	snapshot := session.snapshotLocked()
	session.mu.Unlock()

	session.deps.recordVisit(ctx, snapshot.SeriesID, snapshot.Title, snapshot.CoverImage, chapter)
	return snapshot, nil
}

// # Lifecycle

// Close stops both timers and waits for the auto-scroll worker to exit.
// Closing twice is harmless.
func (session *Session) Close() {
	session.mu.Lock()
	if session.closed {
		session.mu.Unlock()
		return
	}
	session.closed = true
	session.stopScrollLocked()
	session.stopFadeLocked()
	session.mu.Unlock()

	session.workers.Wait()
}

// # Timers

func (session *Session) startScrollLocked() {
	session.stopScrollLocked()

	ctx, cancel := context.WithCancel(context.Background())
	session.stopScroll = cancel
	generation := session.scrollGen

	session.workers.Add(1)
	go session.scroll(ctx, generation)
}

func (session *Session) stopScrollLocked() {
	session.scrollGen++
	if session.stopScroll != nil {
		session.stopScroll()
		session.stopScroll = nil
	}
}

func (session *Session) scroll(ctx context.Context, generation uint64) {
	defer session.workers.Done()

	ticker := time.NewTicker(session.deps.timing.ScrollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			session.mu.Lock()
			if !session.closed && session.scrollGen == generation && session.state.AutoScroll {
				session.state.ScrollOffset += session.state.AutoScrollSpeed
			}
			session.mu.Unlock()
		}
	}
}

func (session *Session) stopFadeLocked() {
	session.fadeGen++
	if session.fade != nil {
		session.fade.Stop()
		session.fade = nil
	}
}

func (session *Session) snapshotLocked() State {
	snapshot := session.state
	snapshot.Chapters = slices.Clone(session.state.Chapters)
	snapshot.Pages = slices.Clone(session.state.Pages)
	snapshot.HasPrevious = snapshot.ChapterIndex > 0
	snapshot.HasNext = snapshot.ChapterIndex < len(snapshot.Chapters)-1
	return snapshot
}

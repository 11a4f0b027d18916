// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"cmp"
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/taibuivan/yomira-reader/internal/catalog"
	"github.com/taibuivan/yomira-reader/internal/library/recent"
	"github.com/taibuivan/yomira-reader/internal/library/settings"
	"github.com/taibuivan/yomira-reader/internal/platform/apperr"
	"github.com/taibuivan/yomira-reader/pkg/uuid"
)

// # Dependencies

// Catalog resolves series, chapters, and pages.
type Catalog interface {
	Lookup(sourceID string) (catalog.Entry, error)
	ChaptersFor(sourceID string) []catalog.Chapter
	FetchChapters(ctx context.Context, sourceID string) ([]catalog.Chapter, error)
	FetchPages(ctx context.Context, chapterID string) ([]catalog.Page, error)
}

// History records opened chapters.
type History interface {
	Add(ctx context.Context, entry recent.Entry) recent.Entry
}

// Preferences seeds new sessions and persists auto-scroll changes.
type Preferences interface {
	Get() settings.Settings
	Update(ctx context.Context, patch settings.Patch) (settings.Settings, error)
}

type dependencies struct {
	catalog Catalog
	history History
	prefs   Preferences
	timing  Timing
	logger  *slog.Logger
}

// recordVisit pushes the series to recent history with the chapter as its
// last read position. Series without a title are not recorded.
func (deps *dependencies) recordVisit(ctx context.Context, seriesID, title, cover string, chapter catalog.Chapter) {
	if title == "" {
		deps.logger.DebugContext(ctx, "reader_visit_untitled", slog.String("series_id", seriesID))
		return
	}

	deps.history.Add(ctx, recent.Entry{
		ID:          seriesID,
		Title:       title,
		CoverImage:  cover,
		LastChapter: cmp.Or(chapter.ChapterNumber, chapter.ChapterID),
	})
}

// # Manager

// Option customises a [Manager].
type Option func(*Manager)

// WithTiming overrides the session timers.
func WithTiming(timing Timing) Option {
	return func(manager *Manager) { manager.deps.timing = timing }
}

// WithIDs overrides the session id generator.
func WithIDs(next func() string) Option {
	return func(manager *Manager) { manager.newID = next }
}

// Manager owns the open sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	deps     *dependencies
	newID    func() string
}

// NewManager creates an empty session manager.
func NewManager(catalog Catalog, history History, prefs Preferences, logger *slog.Logger, opts ...Option) *Manager {
	manager := &Manager{
		sessions: make(map[string]*Session),
		deps: &dependencies{
			catalog: catalog,
			history: history,
			prefs:   prefs,
			timing:  DefaultTiming(),
			logger:  logger,
		},
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(manager)
	}
	return manager
}

// OpenRequest names the chapter to read. Title and CoverImage are used for
// recent history when the series is not in the catalog state.
type OpenRequest struct {
	SeriesID   string `json:"series_id"`
	ChapterID  string `json:"chapter_id"`
	Title      string `json:"title"`
	CoverImage string `json:"cover_image"`
}

/*
Open starts a session on a chapter.

Steps:
 1. Resolve the series chapter list (cached, else fetched).
 2. Locate the chapter in that list.
 3. Fetch the chapter's pages.
 4. Seed view state from the reading settings and record the visit.

Returns:
  - *Session: the registered session
  - error: NOT_FOUND when the chapter is not part of the series, or the
    catalog error when chapters or pages cannot be fetched
*/
func (manager *Manager) Open(ctx context.Context, request OpenRequest) (*Session, error) {
	chapters := manager.deps.catalog.ChaptersFor(request.SeriesID)
	if len(chapters) == 0 {
		fetched, err := manager.deps.catalog.FetchChapters(ctx, request.SeriesID)
		if err != nil {
			return nil, err
		}
		chapters = fetched
	}

	chapter, index, found := lo.FindIndexOf(chapters, func(chapter catalog.Chapter) bool {
		return chapter.ChapterID == request.ChapterID
	})
	if !found {
		return nil, apperr.NotFound("Chapter")
	}

	pages, err := manager.deps.catalog.FetchPages(ctx, request.ChapterID)
	if err != nil {
		return nil, err
	}

	title, cover := request.Title, request.CoverImage
	if entry, err := manager.deps.catalog.Lookup(request.SeriesID); err == nil {
		title = cmp.Or(entry.AnimeName, title)
		cover = cmp.Or(entry.ImageSrc, cover)
	}

	prefs := manager.deps.prefs.Get()
	session := newSession(State{
		ID:              manager.newID(),
		SeriesID:        request.SeriesID,
		Title:           title,
		CoverImage:      cover,
		ChapterID:       chapter.ChapterID,
		ChapterIndex:    index,
		Chapters:        chapters,
		Pages:           pages,
		ViewMode:        prefs.ReadingMode,
		ColorScheme:     prefs.ColorScheme,
		Zoom:            DefaultZoom,
		AutoScroll:      prefs.AutoScroll,
		AutoScrollSpeed: prefs.AutoScrollSpeed,
		ControlsVisible: true,
	}, manager.deps)

	manager.mu.Lock()
	manager.sessions[session.ID()] = session
	manager.mu.Unlock()

	manager.deps.recordVisit(ctx, request.SeriesID, title, cover, chapter)

	manager.deps.logger.InfoContext(ctx, "reader_session_opened",
		slog.String("session_id", session.ID()),
		slog.String("series_id", request.SeriesID),
		slog.String("chapter_id", request.ChapterID),
	)
	return session, nil
}

// Get returns an open session.
func (manager *Manager) Get(id string) (*Session, error) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	session, found := manager.sessions[id]
	if !found {
		return nil, apperr.NotFound("Reader session")
	}
	return session, nil
}

// List returns snapshots of every open session ordered by id.
func (manager *Manager) List() []State {
	manager.mu.RLock()
	sessions := slices.Collect(maps.Values(manager.sessions))
	manager.mu.RUnlock()

	states := make([]State, 0, len(sessions))
	for _, session := range sessions {
		if state, err := session.State(); err == nil {
			states = append(states, state)
		}
	}
	slices.SortFunc(states, func(a, b State) int { return strings.Compare(a.ID, b.ID) })
	return states
}

// Close closes and forgets a session.
func (manager *Manager) Close(id string) error {
	manager.mu.Lock()
	session, found := manager.sessions[id]
	delete(manager.sessions, id)
	manager.mu.Unlock()

	if !found {
		return apperr.NotFound("Reader session")
	}
	session.Close()
	return nil
}

// Shutdown closes every open session.
func (manager *Manager) Shutdown() {
	manager.mu.Lock()
	sessions := manager.sessions
	manager.sessions = make(map[string]*Session)
	manager.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}
	manager.deps.logger.Info("reader_sessions_closed", slog.Int("count", len(sessions)))
}

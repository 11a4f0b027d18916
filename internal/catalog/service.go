// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/yomira-reader/internal/platform/apperr"
)

// User-visible failure messages recorded in [State.Error].
const (
	ErrMsgRecent = "Failed to fetch recent manga"
	ErrMsgHot    = "Failed to fetch hot series"
	ErrMsgSearch = "Failed to search manga"
	ErrMsgPages  = "Failed to fetch pages"
)

// chapterFetchLimit bounds concurrent chapter requests during [Service.LoadHome].
const chapterFetchLimit = 8

// State is a snapshot of the browse state.
type State struct {
	Recent          []Entry              `json:"recent"`
	Hot             []Entry              `json:"hot"`
	SearchResults   []Entry              `json:"search_results"`
	ChapterMap      map[string][]Chapter `json:"chapter_map"`
	CurrentChapters []Chapter            `json:"current_chapters"`
	CurrentPages    []Page               `json:"current_pages"`
	Loading         bool                 `json:"loading"`
	Error           string               `json:"error,omitempty"`
}

// Service owns the browse state. A failed fetch records a message in
// State.Error and leaves the previously fetched lists untouched.
type Service struct {
	source Source
	logger *slog.Logger

	mu    sync.RWMutex
	state State
}

// NewService creates an empty browse state over source.
func NewService(source Source, logger *slog.Logger) *Service {
	return &Service{
		source: source,
		logger: logger,
		state: State{
			Recent:          []Entry{},
			Hot:             []Entry{},
			SearchResults:   []Entry{},
			ChapterMap:      map[string][]Chapter{},
			CurrentChapters: []Chapter{},
			CurrentPages:    []Page{},
		},
	}
}

// update mutates the state under the write lock.
func (service *Service) update(mutate func(state *State)) {
	service.mu.Lock()
	defer service.mu.Unlock()
	mutate(&service.state)
}

// # Fetch Operations

// FetchRecent refreshes the recent list.
func (service *Service) FetchRecent(context context.Context) ([]Entry, error) {
	results, err := service.source.RecentlyAdded(context)
	if err != nil {
		return nil, service.fail(context, "catalog_fetch_recent_failed", ErrMsgRecent, err)
	}

	service.update(func(state *State) { state.Recent = results })
	return results, nil
}

// FetchHot refreshes the hot-series list.
func (service *Service) FetchHot(context context.Context) ([]Entry, error) {
	results, err := service.source.HotSeries(context)
	if err != nil {
		return nil, service.fail(context, "catalog_fetch_hot_failed", ErrMsgHot, err)
	}

	service.update(func(state *State) { state.Hot = results })
	return results, nil
}

// Search replaces the search results. A blank query clears them without
// calling the catalog.
func (service *Service) Search(context context.Context, query string) ([]Entry, error) {
	if strings.TrimSpace(query) == "" {
		service.update(func(state *State) { state.SearchResults = []Entry{} })
		return []Entry{}, nil
	}

	service.update(func(state *State) {
		state.Loading = true
		state.Error = ""
	})
	defer service.update(func(state *State) { state.Loading = false })

	results, err := service.source.Search(context, query)
	if err != nil {
		return nil, service.fail(context, "catalog_search_failed", ErrMsgSearch, err)
	}

	service.update(func(state *State) { state.SearchResults = results })
	return results, nil
}

// FetchChapters loads the chapter list of a series into the chapter map and
// makes it the current chapter list. Failures are logged and do not touch
// State.Error.
func (service *Service) FetchChapters(context context.Context, sourceID string) ([]Chapter, error) {
	chapters, err := service.source.Chapters(context, sourceID)
	if err != nil {
		service.logger.WarnContext(context, "catalog_fetch_chapters_failed",
			slog.String("source_id", sourceID),
			slog.Any("error", err),
		)
		return nil, apperr.BadGateway("Failed to fetch chapters", err)
	}

	service.update(func(state *State) {
		state.ChapterMap[sourceID] = chapters
		state.CurrentChapters = chapters
	})
	return chapters, nil
}

// FetchPages loads the proxied page list of a chapter.
func (service *Service) FetchPages(context context.Context, chapterID string) ([]Page, error) {
	service.update(func(state *State) {
		state.Loading = true
		state.Error = ""
	})
	defer service.update(func(state *State) { state.Loading = false })

	pages, err := service.source.Pages(context, chapterID)
	if err != nil {
		return nil, service.fail(context, "catalog_fetch_pages_failed", ErrMsgPages, err)
	}

	service.update(func(state *State) { state.CurrentPages = pages })
	return pages, nil
}

/*
LoadHome refreshes the recent and hot lists concurrently, then loads chapters
for every distinct series across both lists.

Returns an error only when both lists failed; chapter failures are logged.
*/
func (service *Service) LoadHome(context context.Context) error {
	var group errgroup.Group
	var recentErr, hotErr error

	group.Go(func() error {
		_, recentErr = service.FetchRecent(context)
		return nil
	})
	group.Go(func() error {
		_, hotErr = service.FetchHot(context)
		return nil
	})
	_ = group.Wait()

	if recentErr != nil && hotErr != nil {
		return recentErr
	}

	snapshot := service.Snapshot()
	ids := lo.Uniq(lo.Map(append(snapshot.Recent, snapshot.Hot...), func(entry Entry, _ int) string {
		return entry.SourceID
	}))

	var chapters errgroup.Group
	chapters.SetLimit(chapterFetchLimit)
	for _, sourceID := range ids {
		chapters.Go(func() error {
			_, _ = service.FetchChapters(context, sourceID)
			return nil
		})
	}
	return chapters.Wait()
}

// # Queries

// Lookup finds a series by id in the recent list, then the search results,
// then the hot list.
func (service *Service) Lookup(sourceID string) (Entry, error) {
	service.mu.RLock()
	defer service.mu.RUnlock()

	for _, list := range [][]Entry{service.state.Recent, service.state.SearchResults, service.state.Hot} {
		if entry, found := lo.Find(list, func(entry Entry) bool { return entry.SourceID == sourceID }); found {
			return entry, nil
		}
	}
	return Entry{}, apperr.NotFound("Series")
}

// ChaptersFor returns the cached chapters of a series, or an empty list.
func (service *Service) ChaptersFor(sourceID string) []Chapter {
	service.mu.RLock()
	defer service.mu.RUnlock()

	return slices.Clone(nonNil(service.state.ChapterMap[sourceID]))
}

// Snapshot returns a copy of the browse state.
func (service *Service) Snapshot() State {
	service.mu.RLock()
	defer service.mu.RUnlock()

	state := service.state
	state.Recent = slices.Clone(state.Recent)
	state.Hot = slices.Clone(state.Hot)
	state.SearchResults = slices.Clone(state.SearchResults)
	state.ChapterMap = maps.Clone(state.ChapterMap)
	state.CurrentChapters = slices.Clone(state.CurrentChapters)
	state.CurrentPages = slices.Clone(state.CurrentPages)
	return state
}

// fail records message as the user-visible error and returns the matching AppError.
func (service *Service) fail(context context.Context, event, message string, cause error) error {
	service.logger.WarnContext(context, event, slog.Any("error", cause))
	service.update(func(state *State) { state.Error = message })
	return apperr.BadGateway(message, cause)
}

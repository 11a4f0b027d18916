// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package discover browses series by genre or title through the metadata
service and resolves every hit to a readable catalog series.

Metadata hits carry "anilist-" ids that the catalog cannot open. Each hit is
searched in the catalog by name; the closest catalog title replaces the id and
brings its chapter list along. Hits that cannot be resolved are dropped.
*/
package discover

import (
	"context"
	"log/slog"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/yomira-reader/internal/catalog"
	"github.com/taibuivan/yomira-reader/internal/metadata"
	"github.com/taibuivan/yomira-reader/pkg/slug"
)

// resolveLimit bounds concurrent catalog lookups per discovery.
const resolveLimit = 6

// Searcher is the metadata side of discovery.
type Searcher interface {
	Search(ctx context.Context, search, genre string, page int) metadata.SearchResult
}

// Catalog is the catalog side of discovery.
type Catalog interface {
	Search(ctx context.Context, text string) ([]catalog.Entry, error)
	Chapters(ctx context.Context, sourceID string) ([]catalog.Chapter, error)
}

// Result is a metadata hit resolved to a catalog series.
type Result struct {
	metadata.Manga
	Chapters []catalog.Chapter `json:"chapters"`
}

// Service runs discoveries.
type Service struct {
	searcher Searcher
	catalog  Catalog
	logger   *slog.Logger
}

// NewService creates a discovery service.
func NewService(searcher Searcher, catalog Catalog, logger *slog.Logger) *Service {
	return &Service{searcher: searcher, catalog: catalog, logger: logger}
}

/*
Discover searches metadata by query and/or genre and resolves every hit
against the catalog.

Parameters:
  - context: cancels outstanding catalog lookups
  - query: free-text title search (may be blank)
  - genre: genre filter (may be blank)

Returns:
  - []Result: resolved hits in metadata order; empty when query and genre are both blank
*/
func (service *Service) Discover(context context.Context, query, genre string) []Result {
	query, genre = strings.TrimSpace(query), strings.TrimSpace(genre)
	if query == "" && genre == "" {
		return []Result{}
	}

	hits := service.searcher.Search(context, query, genre, 1).Results

	resolved := make([]*Result, len(hits))
	var group errgroup.Group
	group.SetLimit(resolveLimit)

	for index, hit := range hits {
		group.Go(func() error {
			resolved[index] = service.resolve(context, hit)
			return nil
		})
	}
	_ = group.Wait()

	results := make([]Result, 0, len(hits))
	for _, result := range resolved {
		if result != nil && !strings.HasPrefix(result.SourceID, metadata.SourcePrefix) {
			results = append(results, *result)
		}
	}
	return results
}

// resolve maps one hit to its closest catalog series, or nil.
func (service *Service) resolve(context context.Context, hit metadata.Manga) *Result {
	candidates, err := service.catalog.Search(context, hit.AnimeName)
	if err != nil {
		service.logger.WarnContext(context, "discover_catalog_search_failed",
			slog.String("title", hit.AnimeName),
			slog.Any("error", err),
		)
		return nil
	}
	if len(candidates) == 0 {
		return nil
	}

	match := Closest(hit.AnimeName, candidates)

	chapters, err := service.catalog.Chapters(context, match.SourceID)
	if err != nil {
		service.logger.WarnContext(context, "discover_catalog_chapters_failed",
			slog.String("source_id", match.SourceID),
			slog.Any("error", err),
		)
		return nil
	}

	hit.SourceID = match.SourceID
	return &Result{Manga: hit, Chapters: chapters}
}

// Closest returns the candidate whose normalized name is nearest to title.
// Ties keep the earlier candidate, so the catalog's own ranking wins.
func Closest(title string, candidates []catalog.Entry) catalog.Entry {
	target := slug.Words(title)
	return lo.MinBy(candidates, func(a, b catalog.Entry) bool {
		return levenshtein.Distance(target, slug.Words(a.AnimeName)) <
			levenshtein.Distance(target, slug.Words(b.AnimeName))
	})
}

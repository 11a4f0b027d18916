// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog reads series, chapters, and pages from the remote catalog API
and keeps the lists the reader is currently browsing.

The [Client] speaks to the catalog through the request proxy's /api prefix.
The [Service] holds the in-memory browse state (recent, hot, search results,
chapter lists, current pages) and the last user-visible error.
*/
package catalog

import (
	"context"
	"fmt"
)

// # Domain Models

// Entry is one series as listed by the catalog.
type Entry struct {
	AnimeName string    `json:"anime_name"`
	ImageSrc  string    `json:"image_src"`
	SourceID  string    `json:"source_id"`
	Chapters  []Chapter `json:"chapters,omitempty"`
}

// Chapter is one chapter of a series.
type Chapter struct {
	ChapterNumber string `json:"chapter_number"`
	ChapterID     string `json:"chapter_id"`
	ChapterName   string `json:"chapter_name"`
}

// Page is one image of a chapter.
type Page struct {
	Page int    `json:"page"`
	URL  string `json:"url"`
}

// listResponse is the catalog's list envelope.
type listResponse struct {
	Results []Entry `json:"results"`
}

// Source is the read side of the catalog.
type Source interface {
	RecentlyAdded(ctx context.Context) ([]Entry, error)
	HotSeries(ctx context.Context) ([]Entry, error)
	Search(ctx context.Context, text string) ([]Entry, error)
	Chapters(ctx context.Context, sourceID string) ([]Chapter, error)
	Pages(ctx context.Context, chapterID string) ([]Page, error)
}

// UpstreamError reports a non-success status from the catalog.
type UpstreamError struct {
	Status int
	Path   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("catalog: %s returned status %d", e.Path, e.Status)
}

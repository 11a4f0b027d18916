// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package recent keeps the short history of series the reader opened.

The history is persisted under the "recent-storage" key. It is ordered most
recent first, holds each series at most once, and never exceeds [MaxEntries].
*/
package recent

import (
	"github.com/samber/lo"
)

// MaxEntries bounds the history length.
const MaxEntries = 10

// # Domain Models

// Entry is one recently viewed series.
type Entry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	CoverImage  string `json:"coverImage"`
	LastViewed  int64  `json:"lastViewed"`
	LastChapter string `json:"lastChapter,omitempty"`
}

// State is the persisted document body.
type State struct {
	RecentlyViewed []Entry `json:"recentlyViewed"`
}

// # Transitions

// Push returns list with entry at the front, any older entry with the same id
// removed, truncated to [MaxEntries].
func Push(list []Entry, entry Entry) []Entry {
	rest := lo.Reject(list, func(existing Entry, _ int) bool {
		return existing.ID == entry.ID
	})

	next := make([]Entry, 0, min(len(rest)+1, MaxEntries))
	next = append(next, entry)
	next = append(next, rest...)

	if len(next) > MaxEntries {
		next = next[:MaxEntries]
	}
	return next
}

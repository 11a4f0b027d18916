// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package favorites keeps the reader's bookmarked series.

The list is persisted under the "favorites-storage" key and holds at most one
entry per source id. Transitions are pure functions over slices; [Store]
applies them to the persisted state.
*/
package favorites

import (
	"slices"

	"github.com/samber/lo"
)

// # Domain Models

// Entry is one bookmarked series.
type Entry struct {
	SourceID  string `json:"source_id"`
	AnimeName string `json:"anime_name"`
	ImageSrc  string `json:"image_src"`
}

// State is the persisted document body.
type State struct {
	Favorites []Entry `json:"favorites"`
}

// # Transitions

// Add returns list with entry appended, or list unchanged when the source id
// is already present.
func Add(list []Entry, entry Entry) []Entry {
	if Contains(list, entry.SourceID) {
		return list
	}
	return append(slices.Clip(list), entry)
}

// Remove returns list without any entry carrying sourceID.
func Remove(list []Entry, sourceID string) []Entry {
	return lo.Reject(list, func(entry Entry, _ int) bool {
		return entry.SourceID == sourceID
	})
}

// Contains reports whether any entry carries sourceID.
func Contains(list []Entry, sourceID string) bool {
	return lo.ContainsBy(list, func(entry Entry) bool {
		return entry.SourceID == sourceID
	})
}

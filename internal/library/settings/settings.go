// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package settings keeps the reader's display preferences.

Preferences are persisted under the "reading-settings" key. Updates are
partial: a [Patch] only carries the fields the caller wants to change, and
every patch is validated before it touches the stored state.
*/
package settings

import (
	"github.com/taibuivan/yomira-reader/internal/platform/validate"
	"github.com/taibuivan/yomira-reader/pkg/pointer"
)

// Color schemes.
const (
	SchemeLight = "light"
	SchemeDark  = "dark"
	SchemeSepia = "sepia"
)

// Reading modes.
const (
	ModeVertical   = "vertical"
	ModeHorizontal = "horizontal"
	ModeSingle     = "single"
	ModeDouble     = "double"
)

// Auto-scroll speed bounds.
const (
	MinSpeed = 1
	MaxSpeed = 15
)

// # Domain Models

// Settings is the full preference set.
type Settings struct {
	FontSize        int     `json:"fontSize"`
	LineHeight      float64 `json:"lineHeight"`
	FontFamily      string  `json:"fontFamily"`
	ColorScheme     string  `json:"colorScheme"`
	ReadingMode     string  `json:"readingMode"`
	AutoScroll      bool    `json:"autoScroll"`
	AutoScrollSpeed int     `json:"autoScrollSpeed"`
}

// Patch is a partial update; nil fields keep their current value.
type Patch struct {
	FontSize        *int     `json:"fontSize,omitempty"`
	LineHeight      *float64 `json:"lineHeight,omitempty"`
	FontFamily      *string  `json:"fontFamily,omitempty"`
	ColorScheme     *string  `json:"colorScheme,omitempty"`
	ReadingMode     *string  `json:"readingMode,omitempty"`
	AutoScroll      *bool    `json:"autoScroll,omitempty"`
	AutoScrollSpeed *int     `json:"autoScrollSpeed,omitempty"`
}

// State is the persisted document body.
type State struct {
	Settings Settings `json:"settings"`
}

// Defaults returns the preferences of a fresh install.
func Defaults() Settings {
	return Settings{
		FontSize:        16,
		LineHeight:      1.5,
		FontFamily:      "system-ui",
		ColorScheme:     SchemeLight,
		ReadingMode:     ModeVertical,
		AutoScroll:      false,
		AutoScrollSpeed: 8,
	}
}

// # Transitions

// Apply returns current with every non-nil field of patch copied over.
func Apply(current Settings, patch Patch) Settings {
	return Settings{
		FontSize:        pointer.Or(patch.FontSize, current.FontSize),
		LineHeight:      pointer.Or(patch.LineHeight, current.LineHeight),
		FontFamily:      pointer.Or(patch.FontFamily, current.FontFamily),
		ColorScheme:     pointer.Or(patch.ColorScheme, current.ColorScheme),
		ReadingMode:     pointer.Or(patch.ReadingMode, current.ReadingMode),
		AutoScroll:      pointer.Or(patch.AutoScroll, current.AutoScroll),
		AutoScrollSpeed: pointer.Or(patch.AutoScrollSpeed, current.AutoScrollSpeed),
	}
}

// Validate checks the fields present in patch.
//
// Returns a VALIDATION_ERROR listing every offending field, or nil.
func (patch Patch) Validate() error {
	validator := &validate.Validator{}

	if patch.FontSize != nil {
		validator.Range("fontSize", *patch.FontSize, 8, 48)
	}
	if patch.LineHeight != nil {
		validator.RangeFloat("lineHeight", *patch.LineHeight, 1, 3)
	}
	if patch.FontFamily != nil {
		validator.Required("fontFamily", *patch.FontFamily).MaxLen("fontFamily", *patch.FontFamily, 100)
	}
	if patch.ColorScheme != nil {
		validator.OneOf("colorScheme", *patch.ColorScheme, SchemeLight, SchemeDark, SchemeSepia)
	}
	if patch.ReadingMode != nil {
		validator.OneOf("readingMode", *patch.ReadingMode, ModeVertical, ModeHorizontal, ModeSingle, ModeDouble)
	}
	if patch.AutoScrollSpeed != nil {
		validator.Range("autoScrollSpeed", *patch.AutoScrollSpeed, MinSpeed, MaxSpeed)
	}

	return validator.Err()
}

// IsEmpty reports whether the patch changes nothing.
func (patch Patch) IsEmpty() bool {
	return patch == Patch{}
}

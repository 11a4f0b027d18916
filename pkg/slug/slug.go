// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug reduces arbitrary Unicode titles to comparable ASCII keys.
//
// # Usage
//
// Series titles arrive from two sources (catalog and metadata) with different
// casing, accents, and punctuation. Keys from this package are used to cache
// metadata lookups and to compare titles across the two sources.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// folder case-folds after compatibility decomposition ("Ｏｎｅ" → "one").
var folder = cases.Fold()

// From converts a title into a hyphen-separated key.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFKD and strips combining marks (é → e, full-width → ASCII).
// 2. Case-folds.
// 3. Keeps letters and digits; every other run of runes becomes one hyphen.
func From(s string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFKD, transform.RemoveFunc(isMn)), s)
	if err != nil {
		stripped = s
	}
	folded := folder.String(stripped)

	var builder strings.Builder
	pendingHyphen := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			builder.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}

	return builder.String()
}

// Words returns the key of s with hyphens as spaces, for distance comparisons.
func Words(s string) string {
	return strings.ReplaceAll(From(s), "-", " ")
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

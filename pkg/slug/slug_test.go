// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-reader/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Solo Leveling", "solo-leveling"},
		{"  Pokémon: Adventures!! ", "pokemon-adventures"},
		{"ＯＮＥ ＰＩＥＣＥ", "one-piece"},
		{"Re:Zero -Starting Life-", "re-zero-starting-life"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.in))
		})
	}
}

func TestWords(t *testing.T) {
	assert.Equal(t, "one piece", slug.Words("One-Piece"))
}

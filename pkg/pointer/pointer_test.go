// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-reader/pkg/pointer"
)

func TestOr(t *testing.T) {
	assert.Equal(t, 16, pointer.Or[int](nil, 16))
	assert.Equal(t, 20, pointer.Or(pointer.To(20), 16))
	assert.Equal(t, "", pointer.Or(pointer.To(""), "system-ui"))
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tokend/counter"
)

func TestCounter(t *testing.T) {
	c := counter.Counter(0)

	assert.True(t, c.IsZero(), "initial counter not zero")

	assert.Equal(t, uint64(1), c.Increment(), "wrong increment")
	assert.Equal(t, uint64(2), c.Increment(), "wrong increment")
	assert.Equal(t, uint64(2), c.Uint64(), "wrong value")

	assert.Equal(t, uint64(1), c.Decrement(), "wrong decrement")
	assert.Equal(t, uint64(0), c.Decrement(), "wrong decrement")
	assert.True(t, c.IsZero(), "counter not zero")
}

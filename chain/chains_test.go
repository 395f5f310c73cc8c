// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"

	"github.com/bitmark-inc/tokend/chain"
)

func TestValid(t *testing.T) {
	testItems := []struct {
		name     string
		expected bool
	}{
		{chain.Token, true},
		{chain.Testing, true},
		{chain.Local, true},
		{"", false},
		{"bogus", false},
		{"Token", false},
	}

	for i, item := range testItems {
		actual := chain.Valid(item.name)
		if actual != item.expected {
			t.Errorf("%d: chain.Valid(%q) = %v  expected: %v", i, item.name, actual, item.expected)
		}
	}
}

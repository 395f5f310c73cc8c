// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/bitmark-inc/tokend/util"
)

func TestVarint64(t *testing.T) {

	testItems := []struct {
		value    uint64
		expected []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{0x1234, []byte{0xb4, 0x24}},
		{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	}

	for i, item := range testItems {
		actual := util.ToVarint64(item.value)
		if !bytes.Equal(actual, item.expected) {
			t.Errorf("%d: ToVarint64(%d) = %x  expected: %x", i, item.value, actual, item.expected)
		}

		value, count := util.FromVarint64(actual)
		if value != item.value || count != len(item.expected) {
			t.Errorf("%d: FromVarint64(%x) = %d, %d  expected: %d, %d",
				i, actual, value, count, item.value, len(item.expected))
		}
	}

	// truncated buffer
	value, count := util.FromVarint64([]byte{0x80})
	if 0 != value || 0 != count {
		t.Errorf("truncated buffer accepted: %d, %d", value, count)
	}
}

func TestNextBytes(t *testing.T) {
	buffer := util.AppendString(nil, "hello")
	buffer = util.AppendBytes(buffer, []byte{0x01, 0x02})

	s, n := util.NextString(buffer)
	if "hello" != s {
		t.Fatalf("NextString = %q  expected: %q", s, "hello")
	}

	b, m := util.NextBytes(buffer[n:])
	if !bytes.Equal([]byte{0x01, 0x02}, b) || 0 == m {
		t.Fatalf("NextBytes = %x", b)
	}

	// truncated block
	b, m = util.NextBytes([]byte{0x05, 'x'})
	if nil != b || 0 != m {
		t.Fatalf("truncated block accepted: %x, %d", b, m)
	}
}

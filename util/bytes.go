// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// AppendVarint64 - append a value as Varint64
func AppendVarint64(buffer []byte, value uint64) []byte {
	return append(buffer, ToVarint64(value)...)
}

// AppendBytes - append a length prefixed block of bytes
func AppendBytes(buffer []byte, data []byte) []byte {
	buffer = append(buffer, ToVarint64(uint64(len(data)))...)
	return append(buffer, data...)
}

// AppendString - append a length prefixed string
func AppendString(buffer []byte, s string) []byte {
	return AppendBytes(buffer, []byte(s))
}

// NextBytes - extract a length prefixed block of bytes
//
// returns nil, 0 if the buffer is truncated
func NextBytes(buffer []byte) ([]byte, int) {
	length, count := FromVarint64(buffer)
	if 0 == count {
		return nil, 0
	}
	end := count + int(length)
	if end > len(buffer) {
		return nil, 0
	}
	data := make([]byte, length)
	copy(data, buffer[count:end])
	return data, end
}

// NextString - extract a length prefixed string
//
// returns "", 0 if the buffer is truncated
func NextString(buffer []byte) (string, int) {
	data, count := NextBytes(buffer)
	if 0 == count {
		return "", 0
	}
	return string(data), count
}

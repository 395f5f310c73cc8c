// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokenregistry

import (
	"encoding/binary"
	"sort"

	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/storage"
	"github.com/bitmark-inc/tokend/util"
)

// key under storage.Pool.Counters holding the next token id
var nextTokenIDKey = []byte("token-id")

// Metadata - opaque attributes attached to a token id
//
// the registry does not interpret the contents; existence of the
// record is the sole authority on whether a token id is defined
type Metadata map[string][]byte

// TokenKey - big endian token id as a pool key
//
// fixed width so pool scans run in numeric order
func TokenKey(tokenID uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, tokenID)
	return key
}

// IsDefined - check whether a token id has a metadata record
func IsDefined(trx storage.Transaction, tokenID uint64) bool {
	return trx.Has(storage.Pool.TokenMetadata, TokenKey(tokenID))
}

// NextTokenID - assign the next sequential token id
//
// ids start at zero and are never reused after Undefine
func NextTokenID(trx storage.Transaction) uint64 {
	tokenID, _ := trx.GetN(storage.Pool.Counters, nextTokenIDKey)
	trx.PutN(storage.Pool.Counters, nextTokenIDKey, tokenID+1)
	return tokenID
}

// LastTokenID - the id that will be assigned to the next new token
func LastTokenID(trx storage.Transaction) uint64 {
	tokenID, _ := trx.GetN(storage.Pool.Counters, nextTokenIDKey)
	return tokenID
}

// Define - create the metadata record for a token id
func Define(trx storage.Transaction, tokenID uint64, metadata Metadata) error {
	key := TokenKey(tokenID)
	if trx.Has(storage.Pool.TokenMetadata, key) {
		return fault.TokenAlreadyDefined
	}
	trx.Put(storage.Pool.TokenMetadata, key, packMetadata(metadata))
	return nil
}

// Get - fetch the metadata record for a token id
func Get(trx storage.Transaction, tokenID uint64) (Metadata, error) {
	packed := trx.Get(storage.Pool.TokenMetadata, TokenKey(tokenID))
	if nil == packed {
		return nil, fault.TokenUndefined
	}
	return unpackMetadata(packed)
}

// Undefine - remove the metadata record for a token id
//
// only reachable through burn; the id is never assigned again
func Undefine(trx storage.Transaction, tokenID uint64) error {
	key := TokenKey(tokenID)
	if !trx.Has(storage.Pool.TokenMetadata, key) {
		return fault.TokenUndefined
	}
	trx.Delete(storage.Pool.TokenMetadata, key)
	return nil
}

// Count - number of currently defined token ids
//
// committed records only; counts a scan of the metadata pool
func Count() uint64 {
	n := uint64(0)
	storage.Pool.TokenMetadata.Scan(func(key []byte, value []byte) bool {
		n += 1
		return true
	})
	return n
}

// pack a metadata map with sorted keys so the record is deterministic
func packMetadata(metadata Metadata) []byte {
	names := make([]string, 0, len(metadata))
	for name := range metadata {
		names = append(names, name)
	}
	sort.Strings(names)

	buffer := util.ToVarint64(uint64(len(metadata)))
	for _, name := range names {
		buffer = util.AppendString(buffer, name)
		buffer = util.AppendBytes(buffer, metadata[name])
	}
	return buffer
}

func unpackMetadata(packed []byte) (Metadata, error) {
	count, n := util.FromVarint64(packed)
	if 0 == n {
		return nil, fault.InvalidItem
	}
	packed = packed[n:]

	metadata := make(Metadata, count)
	for i := uint64(0); i < count; i += 1 {
		name, n := util.NextString(packed)
		if 0 == n {
			return nil, fault.InvalidItem
		}
		packed = packed[n:]

		value, n := util.NextBytes(packed)
		if 0 == n {
			return nil, fault.InvalidItem
		}
		packed = packed[n:]

		metadata[name] = value
	}
	return metadata, nil
}

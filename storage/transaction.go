// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Transaction - all-or-nothing update of any number of pools
//
// writes are staged in memory and only reach the database on Commit;
// reads made between Begin and Commit observe the staged writes
type Transaction interface {
	Begin() error
	Abort()
	Commit() error
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	GetNB(*PoolHandle, []byte) (uint64, []byte)
	Has(*PoolHandle, []byte) bool
	Delete(*PoolHandle, []byte)
	InUse() bool
}

// TransactionImpl - concrete transaction over the single database
type TransactionImpl struct {
	dataAccess Access
}

func newTransaction(access Access) Transaction {
	return &TransactionImpl{
		dataAccess: access,
	}
}

// Begin - mark the transaction as in use
//
// returns fault.TransactionAlreadyInUse if another transaction
// has begun and not yet committed or aborted
func (t *TransactionImpl) Begin() error {
	return t.dataAccess.Begin()
}

// InUse - check whether a transaction is currently active
func (t *TransactionImpl) InUse() bool {
	return t.dataAccess.InUse()
}

// Abort - discard all staged operations
func (t *TransactionImpl) Abort() {
	t.dataAccess.Abort()
}

// Commit - write all staged operations as a single batch
func (t *TransactionImpl) Commit() error {
	return t.dataAccess.Commit()
}

// Put - stage a key/value pair into a pool
func (t *TransactionImpl) Put(pool *PoolHandle, key []byte, value []byte) {
	pool.put(key, value)
}

// PutN - stage an 8 byte big endian value into a pool
func (t *TransactionImpl) PutN(pool *PoolHandle, key []byte, value uint64) {
	pool.putN(key, value)
}

// Get - read a value, observing staged writes
func (t *TransactionImpl) Get(pool *PoolHandle, key []byte) []byte {
	return pool.Get(key)
}

// GetN - read a big endian uint64, observing staged writes
func (t *TransactionImpl) GetN(pool *PoolHandle, key []byte) (uint64, bool) {
	return pool.GetN(key)
}

// GetNB - read a uint64 and trailing bytes, observing staged writes
func (t *TransactionImpl) GetNB(pool *PoolHandle, key []byte) (uint64, []byte) {
	return pool.GetNB(key)
}

// Has - check a key, observing staged writes
func (t *TransactionImpl) Has(pool *PoolHandle, key []byte) bool {
	return pool.Has(key)
}

// Delete - stage removal of a key from a pool
func (t *TransactionImpl) Delete(pool *PoolHandle, key []byte) {
	pool.remove(key)
}

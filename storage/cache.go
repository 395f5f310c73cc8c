// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// CacheState - state of a key inside the transaction cache
type CacheState int

// possible states
const (
	cacheMiss CacheState = iota
	cacheSet
	cacheDeleted
)

// Cache - staged put/delete overlay so a transaction reads its own writes
type Cache interface {
	Get(string) ([]byte, CacheState)
	Set(CacheState, string, []byte)
	Clear()
}

const (
	defaultTimeout    = 1 * time.Minute
	defaultExpiration = 2 * time.Minute
)

type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	op    CacheState
	value []byte
}

func newCache() Cache {
	return &dbCache{
		cache: cache.New(defaultTimeout, defaultExpiration),
	}
}

func (c *dbCache) Get(key string) ([]byte, CacheState) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, cacheMiss
	}

	data := obj.(cacheData)
	if cacheDeleted == data.op {
		return nil, cacheDeleted
	}

	return data.value, cacheSet
}

func (c *dbCache) Set(op CacheState, key string, value []byte) {
	cached := cacheData{
		op:    op,
		value: value,
	}
	c.cache.Set(key, cached, defaultExpiration)
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}

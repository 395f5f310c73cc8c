// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sync"

	"github.com/bitmark-inc/tokend/account"
)

// Registry - hosted token contracts indexed by their reference account
//
// balances share one set of storage pools, so a single database
// normally hosts a single contract; the registry exists so that
// auction records can name their counterparty and have it resolved
type Registry struct {
	sync.RWMutex
	index map[string]*Ledger
}

// NewRegistry - create an empty contract registry
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]*Ledger),
	}
}

// Add - register a contract under its reference account
func (r *Registry) Add(reference *account.Account, l *Ledger) {
	r.Lock()
	r.index[string(reference.Bytes())] = l
	r.Unlock()
}

// Get - look up a contract by its reference account
func (r *Registry) Get(reference *account.Account) (*Ledger, bool) {
	r.RLock()
	l, ok := r.index[string(reference.Bytes())]
	r.RUnlock()
	return l, ok
}

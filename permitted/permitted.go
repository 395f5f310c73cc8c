// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package permitted - the permitted-counterparty registry
//
// the auction engine only custodies tokens from contracts listed
// here; each entry records whether swapping is allowed and how the
// contract reports royalties.
package permitted

import (
	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/administration"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/storage"
)

// RoyaltyKind - how a permitted contract reports royalties
type RoyaltyKind byte

// known royalty kinds
const (
	RoyaltyNone   RoyaltyKind = iota // contract carries no royalty data
	RoyaltyNative                    // royalty records in this ledger's own format
)

// Entry - registry record for one token contract
type Entry struct {
	SwapAllowed bool        `json:"swapAllowed"`
	RoyaltyKind RoyaltyKind `json:"royaltyKind"`
}

// Add - list a token contract; administrator only
//
// re-adding replaces the existing entry
func Add(trx storage.Transaction, caller *account.Account, contract *account.Account, entry Entry) error {
	if !administration.IsAdministrator(trx, caller) {
		return fault.NotAdministrator
	}
	value := []byte{0, byte(entry.RoyaltyKind)}
	if entry.SwapAllowed {
		value[0] = 1
	}
	trx.Put(storage.Pool.Permitted, contract.Bytes(), value)
	return nil
}

// Remove - delist a token contract; administrator only
func Remove(trx storage.Transaction, caller *account.Account, contract *account.Account) error {
	if !administration.IsAdministrator(trx, caller) {
		return fault.NotAdministrator
	}
	if !trx.Has(storage.Pool.Permitted, contract.Bytes()) {
		return fault.TokenNotPermitted
	}
	trx.Delete(storage.Pool.Permitted, contract.Bytes())
	return nil
}

// Get - look up a token contract
func Get(trx storage.Transaction, contract *account.Account) (Entry, error) {
	packed := trx.Get(storage.Pool.Permitted, contract.Bytes())
	if nil == packed {
		return Entry{}, fault.TokenNotPermitted
	}
	if 2 != len(packed) {
		return Entry{}, fault.InvalidItem
	}
	return Entry{
		SwapAllowed: 1 == packed[0],
		RoyaltyKind: RoyaltyKind(packed[1]),
	}, nil
}

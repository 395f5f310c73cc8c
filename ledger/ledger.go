// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/policy"
	"github.com/bitmark-inc/tokend/storage"
	"github.com/bitmark-inc/tokend/tokenregistry"
	"github.com/bitmark-inc/tokend/util"
)

// Shape - how balances are keyed
type Shape int

// the three ledger shapes
const (
	NFT         Shape = iota // token id → owner, balance implicitly one
	Fungible                 // owner and token id → amount, per-token supply
	SingleAsset              // owner → amount, token id fixed at zero
)

// the only valid token id on a single-asset ledger
const singleAssetTokenID = 0

// supply pool key for the single-asset shape
var singleSupplyKey = []byte("supply")

// Ledger - one token ledger instance
//
// the shape and policy are fixed at construction; allowMintExisting
// controls whether supply of a defined token can be grown again
type Ledger struct {
	shape             Shape
	policy            policy.Policy
	allowMintExisting bool
}

// New - build a ledger
func New(shape Shape, transferPolicy policy.Policy, allowMintExisting bool) *Ledger {
	return &Ledger{
		shape:             shape,
		policy:            transferPolicy,
		allowMintExisting: allowMintExisting,
	}
}

// Shape - the ledger's shape
func (l *Ledger) Shape() Shape {
	return l.shape
}

// Policy - the ledger's authorization policy
func (l *Ledger) Policy() policy.Policy {
	return l.policy
}

// balance pool key for one owner and token
func (l *Ledger) balanceKey(owner *account.Account, tokenID uint64) []byte {
	switch l.shape {
	case NFT:
		return tokenregistry.TokenKey(tokenID)
	case SingleAsset:
		return owner.Bytes()
	default:
		buffer := util.AppendBytes(nil, owner.Bytes())
		return util.AppendVarint64(buffer, tokenID)
	}
}

// read one balance; absence means zero
func (l *Ledger) balance(trx storage.Transaction, owner *account.Account, tokenID uint64) uint64 {
	if NFT == l.shape {
		stored := trx.Get(storage.Pool.Balances, l.balanceKey(owner, tokenID))
		if nil == stored {
			return 0
		}
		holder, _, err := account.AccountFromBytes(stored)
		if nil != err || !holder.SameAs(owner) {
			return 0
		}
		return 1
	}
	amount, _ := trx.GetN(storage.Pool.Balances, l.balanceKey(owner, tokenID))
	return amount
}

// write one balance; zero deletes the entry
func (l *Ledger) setBalance(trx storage.Transaction, owner *account.Account, tokenID uint64, amount uint64) {
	key := l.balanceKey(owner, tokenID)
	if 0 == amount {
		trx.Delete(storage.Pool.Balances, key)
		return
	}
	trx.PutN(storage.Pool.Balances, key, amount)
}

// the single-asset shape only defines token id zero; anything else
// reads as an undefined token
func (l *Ledger) isDefined(trx storage.Transaction, tokenID uint64) bool {
	if SingleAsset == l.shape && singleAssetTokenID != tokenID {
		return false
	}
	return tokenregistry.IsDefined(trx, tokenID)
}

// supply pool key
func (l *Ledger) supplyKey(tokenID uint64) []byte {
	if SingleAsset == l.shape {
		return singleSupplyKey
	}
	return tokenregistry.TokenKey(tokenID)
}

// TotalSupply - circulating amount of one token
func (l *Ledger) TotalSupply(trx storage.Transaction, tokenID uint64) (uint64, error) {
	if !l.isDefined(trx, tokenID) {
		return 0, fault.TokenUndefined
	}
	if NFT == l.shape {
		return 1, nil
	}
	supply, _ := trx.GetN(storage.Pool.Supply, l.supplyKey(tokenID))
	return supply, nil
}

// Owner - current owner of an NFT token
func (l *Ledger) Owner(trx storage.Transaction, tokenID uint64) (*account.Account, error) {
	if NFT != l.shape {
		return nil, fault.InvalidItem
	}
	if !l.isDefined(trx, tokenID) {
		return nil, fault.TokenUndefined
	}
	stored := trx.Get(storage.Pool.Balances, tokenregistry.TokenKey(tokenID))
	if nil == stored {
		// a defined nft always has an owner record
		return nil, fault.InvalidItem
	}
	owner, _, err := account.AccountFromBytes(stored)
	return owner, err
}

// pack an nft owner record
func packOwner(owner *account.Account) []byte {
	return owner.Bytes()
}

// supply arithmetic helpers

func (l *Ledger) addSupply(trx storage.Transaction, tokenID uint64, amount uint64) {
	supply, _ := trx.GetN(storage.Pool.Supply, l.supplyKey(tokenID))
	trx.PutN(storage.Pool.Supply, l.supplyKey(tokenID), supply+amount)
}

// decrement, clamping at zero; returns the remaining supply
func (l *Ledger) subtractSupply(trx storage.Transaction, tokenID uint64, amount uint64) uint64 {
	key := l.supplyKey(tokenID)
	supply, _ := trx.GetN(storage.Pool.Supply, key)
	if amount >= supply {
		trx.Delete(storage.Pool.Supply, key)
		return 0
	}
	trx.PutN(storage.Pool.Supply, key, supply-amount)
	return supply - amount
}

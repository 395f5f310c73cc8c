// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/administration"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/royalty"
	"github.com/bitmark-inc/tokend/storage"
	"github.com/bitmark-inc/tokend/tokenregistry"
)

// MintNew - create a token and its first balance
//
// administrator only.  Assigns the next sequential token id on nft
// and fungible shapes; the single-asset shape only ever defines
// token zero.  Royalties are validated here, the one time they are
// checked.
func (l *Ledger) MintNew(trx storage.Transaction, caller *account.Account, to *account.Account, metadata tokenregistry.Metadata, royalties royalty.Record, amount uint64) (uint64, error) {

	if !administration.IsAdministrator(trx, caller) {
		return 0, fault.NotAdministrator
	}

	tokenID := uint64(singleAssetTokenID)
	switch l.shape {
	case SingleAsset:
		if tokenregistry.IsDefined(trx, tokenID) {
			return 0, fault.TokenAlreadyDefined
		}
	default:
		tokenID = tokenregistry.NextTokenID(trx)
	}

	err := tokenregistry.Define(trx, tokenID, metadata)
	if nil != err {
		return 0, err
	}

	err = royalty.Put(trx, tokenID, royalties)
	if nil != err {
		return 0, err
	}

	switch l.shape {
	case NFT:
		trx.Put(storage.Pool.Balances, l.balanceKey(to, tokenID), packOwner(to))
	default:
		l.setBalance(trx, to, tokenID, amount)
		l.addSupply(trx, tokenID, amount)
	}
	return tokenID, nil
}

// MintExisting - grow the supply of an already defined token
//
// administrator only; refused on the nft shape and on ledgers built
// without mint-existing
func (l *Ledger) MintExisting(trx storage.Transaction, caller *account.Account, to *account.Account, tokenID uint64, amount uint64) error {

	if !administration.IsAdministrator(trx, caller) {
		return fault.NotAdministrator
	}
	if NFT == l.shape || !l.allowMintExisting {
		return fault.TransfersNotSupported
	}
	if SingleAsset == l.shape && singleAssetTokenID != tokenID {
		return fault.SingleAssetTokenIdNotZero
	}
	if !l.isDefined(trx, tokenID) {
		return fault.TokenUndefined
	}

	l.setBalance(trx, to, tokenID, l.balance(trx, to, tokenID)+amount)
	l.addSupply(trx, tokenID, amount)
	return nil
}

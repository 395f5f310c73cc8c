// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/royalty"
	"github.com/bitmark-inc/tokend/storage"
	"github.com/bitmark-inc/tokend/tokenregistry"
)

// Burn - destroy balance held by owner
//
// gated exactly like a transfer: defined, then authorization, then
// balance.  Destroying the last unit of an nft deletes the token's
// metadata and royalty record; a fungible token follows only when
// the ledger forbids re-minting, making it a one-shot token.
func (l *Ledger) Burn(trx storage.Transaction, caller *account.Account, owner *account.Account, tokenID uint64, amount uint64) error {

	if !l.isDefined(trx, tokenID) {
		return fault.TokenUndefined
	}

	err := l.policy.AuthorizeTransfer(trx, owner, caller, tokenID)
	if nil != err {
		return err
	}

	if NFT == l.shape {
		if amount > 1 {
			return fault.InsufficientBalance
		}
		if l.balance(trx, owner, tokenID) < amount {
			return fault.InsufficientBalance
		}
		if 0 == amount {
			return nil
		}
		trx.Delete(storage.Pool.Balances, l.balanceKey(owner, tokenID))
		royalty.Delete(trx, tokenID)
		return tokenregistry.Undefine(trx, tokenID)
	}

	balance := l.balance(trx, owner, tokenID)
	if balance < amount {
		return fault.InsufficientBalance
	}
	if 0 == amount {
		return nil
	}

	l.setBalance(trx, owner, tokenID, balance-amount)

	// supply clamps at zero rather than underflowing
	remaining := l.subtractSupply(trx, tokenID, amount)

	if 0 == remaining && !l.allowMintExisting {
		royalty.Delete(trx, tokenID)
		return tokenregistry.Undefine(trx, tokenID)
	}
	return nil
}

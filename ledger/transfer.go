// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/storage"
)

// TransferTx - one leaf transfer inside a batch
type TransferTx struct {
	To      *account.Account `json:"to"`
	TokenID uint64           `json:"tokenId"`
	Amount  uint64           `json:"amount"`
}

// TransferBatch - all leaf transfers from one source account
type TransferBatch struct {
	From *account.Account `json:"from"`
	Txs  []TransferTx     `json:"txs"`
}

// Transfer - execute a transfer batch on behalf of caller
//
// per leaf the checks run in a fixed order: token defined, then
// authorization, then balance.  The order is externally observable
// through the failure code and must not change.  A zero amount runs
// the checks but moves nothing.
func (l *Ledger) Transfer(trx storage.Transaction, caller *account.Account, batches []TransferBatch) error {
	for _, batch := range batches {
		for _, tx := range batch.Txs {

			if !l.isDefined(trx, tx.TokenID) {
				return fault.TokenUndefined
			}

			err := l.policy.AuthorizeTransfer(trx, batch.From, caller, tx.TokenID)
			if nil != err {
				return err
			}

			err = l.move(trx, batch.From, tx.To, tx.TokenID, tx.Amount)
			if nil != err {
				return err
			}
		}
	}
	return nil
}

// TransferTo - single transfer convenience used by the auction engine
func (l *Ledger) TransferTo(trx storage.Transaction, caller *account.Account, from *account.Account, to *account.Account, tokenID uint64, amount uint64) error {
	return l.Transfer(trx, caller, []TransferBatch{{
		From: from,
		Txs: []TransferTx{{
			To:      to,
			TokenID: tokenID,
			Amount:  amount,
		}},
	}})
}

// move balance after all checks passed except the balance check
func (l *Ledger) move(trx storage.Transaction, from *account.Account, to *account.Account, tokenID uint64, amount uint64) error {

	if NFT == l.shape {
		if amount > 1 {
			return fault.InsufficientBalance
		}
		if l.balance(trx, from, tokenID) < amount {
			return fault.InsufficientBalance
		}
		if 0 == amount {
			return nil
		}
		trx.Put(storage.Pool.Balances, l.balanceKey(to, tokenID), packOwner(to))
		return nil
	}

	fromBalance := l.balance(trx, from, tokenID)
	if fromBalance < amount {
		return fault.InsufficientBalance
	}
	if 0 == amount {
		return nil
	}

	// self transfer conserves the balance untouched
	if from.SameAs(to) {
		return nil
	}

	l.setBalance(trx, from, tokenID, fromBalance-amount)
	l.setBalance(trx, to, tokenID, l.balance(trx, to, tokenID)+amount)
	return nil
}

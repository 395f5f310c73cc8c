// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package payment - the native funds ledger
//
// balances are integer units of the smallest currency denomination;
// bid settlement draws on these and payouts fan out through Send.
package payment

import (
	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/storage"
)

// Balance - funds held by an account; absent record reads zero
func Balance(trx storage.Transaction, owner *account.Account) uint64 {
	balance, _ := trx.GetN(storage.Pool.Funds, owner.Bytes())
	return balance
}

// Deposit - credit funds to an account
func Deposit(trx storage.Transaction, owner *account.Account, amount uint64) {
	if 0 == amount {
		return
	}
	balance, _ := trx.GetN(storage.Pool.Funds, owner.Bytes())
	trx.PutN(storage.Pool.Funds, owner.Bytes(), balance+amount)
}

// Withdraw - debit funds from an account
//
// a zero balance record is removed, not stored
func Withdraw(trx storage.Transaction, owner *account.Account, amount uint64) error {
	if 0 == amount {
		return nil
	}
	balance, _ := trx.GetN(storage.Pool.Funds, owner.Bytes())
	if balance < amount {
		return fault.InsufficientFunds
	}
	if balance == amount {
		trx.Delete(storage.Pool.Funds, owner.Bytes())
	} else {
		trx.PutN(storage.Pool.Funds, owner.Bytes(), balance-amount)
	}
	return nil
}

// Send - move funds between accounts
//
// a zero value send is skipped, not attempted
func Send(trx storage.Transaction, from *account.Account, to *account.Account, amount uint64) error {
	if 0 == amount {
		return nil
	}
	err := Withdraw(trx, from, amount)
	if nil != err {
		return err
	}
	Deposit(trx, to, amount)
	return nil
}

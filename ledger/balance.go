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

// BalanceQuery - one request in a balance batch
type BalanceQuery struct {
	Owner   *account.Account `json:"owner"`
	TokenID uint64           `json:"tokenId"`
}

// BalanceResponse - one answer in a balance batch
type BalanceResponse struct {
	Query   BalanceQuery `json:"query"`
	Balance uint64       `json:"balance"`
}

// BalanceOf - batched balance view
//
// an unknown token id fails the whole call; silence would hide the
// difference between an undefined token and a zero balance.  A
// defined but never funded token reads zero.
func (l *Ledger) BalanceOf(trx storage.Transaction, queries []BalanceQuery) ([]BalanceResponse, error) {
	responses := make([]BalanceResponse, 0, len(queries))
	for _, query := range queries {
		if !l.isDefined(trx, query.TokenID) {
			return nil, fault.TokenUndefined
		}
		responses = append(responses, BalanceResponse{
			Query:   query,
			Balance: l.balance(trx, query.Owner, query.TokenID),
		})
	}
	return responses, nil
}

// Balance - single balance view used by the auction engine
func (l *Ledger) Balance(trx storage.Transaction, owner *account.Account, tokenID uint64) (uint64, error) {
	if !l.isDefined(trx, tokenID) {
		return 0, fault.TokenUndefined
	}
	return l.balance(trx, owner, tokenID), nil
}

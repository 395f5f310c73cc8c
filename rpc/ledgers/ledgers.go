// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledgers

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/ledger"
	"github.com/bitmark-inc/tokend/policy"
	"github.com/bitmark-inc/tokend/royalty"
	"github.com/bitmark-inc/tokend/rpc/ratelimit"
	"github.com/bitmark-inc/tokend/storage"
	"github.com/bitmark-inc/tokend/tokenregistry"
)

// Ledger - type for the RPC
type Ledger struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Registry *ledger.Registry
	ReadOnly bool
}

const (
	maximumTransfers = 100
	maximumBalances  = 100
	maximumOperators = 100
	rateLimitLedger  = 200
	rateBurstLedger  = 100
)

func New(log *logger.L, registry *ledger.Registry, readOnly bool) *Ledger {
	return &Ledger{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitLedger, rateBurstLedger),
		Registry: registry,
		ReadOnly: readOnly,
	}
}

// resolve the contract argument or fail
func (l *Ledger) contract(reference *account.Account) (*ledger.Ledger, error) {
	if nil == reference {
		return nil, fault.MissingParameters
	}
	contract, ok := l.Registry.Get(reference)
	if !ok {
		return nil, fault.TokenNotPermitted
	}
	return contract, nil
}

// run a mutating operation inside the global transaction
func update(f func(trx storage.Transaction) error) error {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	err = f(trx)
	if nil != err {
		trx.Abort()
		return err
	}
	return trx.Commit()
}

// ---

// TransferArguments - arguments for RPC request
type TransferArguments struct {
	Caller   *account.Account       `json:"caller"`
	Contract *account.Account       `json:"contract"`
	Batches  []ledger.TransferBatch `json:"batches"`
}

// TransferReply - results from transfer request
type TransferReply struct {
	Transfers int `json:"transfers"`
}

// Transfer - execute a batched transfer
func (l *Ledger) Transfer(arguments *TransferArguments, reply *TransferReply) error {

	count := 0
	for _, batch := range arguments.Batches {
		count += len(batch.Txs)
	}
	if err := ratelimit.LimitN(l.Limiter, count, maximumTransfers); nil != err {
		return err
	}

	if l.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	contract, err := l.contract(arguments.Contract)
	if nil != err {
		return err
	}
	if nil == arguments.Caller {
		return fault.MissingParameters
	}

	l.Log.Infof("Ledger.Transfer: %d batches", len(arguments.Batches))

	err = update(func(trx storage.Transaction) error {
		return contract.Transfer(trx, arguments.Caller, arguments.Batches)
	})
	if nil != err {
		return err
	}

	reply.Transfers = count
	return nil
}

// ---

// MintArguments - arguments for RPC request
type MintArguments struct {
	Caller   *account.Account       `json:"caller"`
	Contract *account.Account       `json:"contract"`
	To       *account.Account       `json:"to"`
	Metadata tokenregistry.Metadata `json:"metadata"`
	Royalty  royalty.Record         `json:"royalty"`
	TokenID  uint64                 `json:"tokenId"`
	Amount   uint64                 `json:"amount"`
	Existing bool                   `json:"existing"`
}

// MintReply - results from mint request
type MintReply struct {
	TokenID uint64 `json:"tokenId"`
}

// Mint - define a new token or grow the supply of an existing one
func (l *Ledger) Mint(arguments *MintArguments, reply *MintReply) error {

	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	if l.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	contract, err := l.contract(arguments.Contract)
	if nil != err {
		return err
	}
	if nil == arguments.Caller || nil == arguments.To {
		return fault.MissingParameters
	}

	l.Log.Infof("Ledger.Mint: to: %s existing: %t", arguments.To, arguments.Existing)

	tokenID := arguments.TokenID
	err = update(func(trx storage.Transaction) error {
		if arguments.Existing {
			return contract.MintExisting(trx, arguments.Caller, arguments.To, arguments.TokenID, arguments.Amount)
		}
		var inner error
		tokenID, inner = contract.MintNew(trx, arguments.Caller, arguments.To, arguments.Metadata, arguments.Royalty, arguments.Amount)
		return inner
	})
	if nil != err {
		return err
	}

	reply.TokenID = tokenID
	return nil
}

// ---

// BurnArguments - arguments for RPC request
type BurnArguments struct {
	Caller   *account.Account `json:"caller"`
	Contract *account.Account `json:"contract"`
	Owner    *account.Account `json:"owner"`
	TokenID  uint64           `json:"tokenId"`
	Amount   uint64           `json:"amount"`
}

// BurnReply - results from burn request
type BurnReply struct {
	Burned bool `json:"burned"`
}

// Burn - destroy token units held by an owner
func (l *Ledger) Burn(arguments *BurnArguments, reply *BurnReply) error {

	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	if l.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	contract, err := l.contract(arguments.Contract)
	if nil != err {
		return err
	}
	if nil == arguments.Caller || nil == arguments.Owner {
		return fault.MissingParameters
	}

	l.Log.Infof("Ledger.Burn: token: %d amount: %d", arguments.TokenID, arguments.Amount)

	err = update(func(trx storage.Transaction) error {
		return contract.Burn(trx, arguments.Caller, arguments.Owner, arguments.TokenID, arguments.Amount)
	})
	if nil != err {
		return err
	}

	reply.Burned = true
	return nil
}

// ---

// BalancesArguments - arguments for RPC request
type BalancesArguments struct {
	Contract *account.Account      `json:"contract"`
	Queries  []ledger.BalanceQuery `json:"queries"`
}

// BalancesReply - results from balances request
type BalancesReply struct {
	Balances []ledger.BalanceResponse `json:"balances"`
}

// Balances - batched balance view
func (l *Ledger) Balances(arguments *BalancesArguments, reply *BalancesReply) error {

	if err := ratelimit.LimitN(l.Limiter, len(arguments.Queries), maximumBalances); nil != err {
		return err
	}

	contract, err := l.contract(arguments.Contract)
	if nil != err {
		return err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	defer trx.Abort()

	balances, err := contract.BalanceOf(trx, arguments.Queries)
	if nil != err {
		return err
	}

	reply.Balances = balances
	return nil
}

// ---

// UpdateOperatorsArguments - arguments for RPC request
type UpdateOperatorsArguments struct {
	Caller   *account.Account        `json:"caller"`
	Contract *account.Account        `json:"contract"`
	Updates  []ledger.OperatorUpdate `json:"updates"`
}

// UpdateOperatorsReply - results from operator update request
type UpdateOperatorsReply struct {
	Updates int `json:"updates"`
}

// UpdateOperators - add and remove long-lived operator grants
func (l *Ledger) UpdateOperators(arguments *UpdateOperatorsArguments, reply *UpdateOperatorsReply) error {

	if err := ratelimit.LimitN(l.Limiter, len(arguments.Updates), maximumOperators); nil != err {
		return err
	}

	if l.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	contract, err := l.contract(arguments.Contract)
	if nil != err {
		return err
	}
	if nil == arguments.Caller {
		return fault.MissingParameters
	}

	err = update(func(trx storage.Transaction) error {
		return contract.UpdateOperators(trx, arguments.Caller, arguments.Updates)
	})
	if nil != err {
		return err
	}

	reply.Updates = len(arguments.Updates)
	return nil
}

// ---

// UpdateAdhocOperatorsArguments - arguments for RPC request
//
// Clear drops the whole adhoc set instead of adding; administrator only
type UpdateAdhocOperatorsArguments struct {
	Caller   *account.Account    `json:"caller"`
	Contract *account.Account    `json:"contract"`
	Adds     []policy.AdhocGrant `json:"adds"`
	Clear    bool                `json:"clear"`
}

// UpdateAdhocOperatorsReply - results from adhoc operator update request
type UpdateAdhocOperatorsReply struct {
	Updates int `json:"updates"`
}

// UpdateAdhocOperators - grant transient operator permissions
//
// grants live in a rolling time-bucket window and expire on their own;
// adding n evicts up to n of the oldest entries
func (l *Ledger) UpdateAdhocOperators(arguments *UpdateAdhocOperatorsArguments, reply *UpdateAdhocOperatorsReply) error {

	count := len(arguments.Adds)
	if 0 == count {
		count = 1 // a clear still spends one token
	}
	if err := ratelimit.LimitN(l.Limiter, count, maximumOperators); nil != err {
		return err
	}

	if l.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	if _, err := l.contract(arguments.Contract); nil != err {
		return err
	}
	if nil == arguments.Caller {
		return fault.MissingParameters
	}

	err := update(func(trx storage.Transaction) error {
		if arguments.Clear {
			return policy.ClearAdhocOperators(trx, arguments.Caller)
		}
		return policy.AddAdhocOperators(trx, arguments.Caller, arguments.Adds)
	})
	if nil != err {
		return err
	}

	reply.Updates = len(arguments.Adds)
	return nil
}

// ---

// IsOperatorArguments - arguments for RPC request
type IsOperatorArguments struct {
	Contract *account.Account `json:"contract"`
	Grant    policy.Grant     `json:"grant"`
}

// IsOperatorReply - results from operator query
type IsOperatorReply struct {
	Operator bool `json:"operator"`
}

// IsOperator - query a single operator grant
func (l *Ledger) IsOperator(arguments *IsOperatorArguments, reply *IsOperatorReply) error {

	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	contract, err := l.contract(arguments.Contract)
	if nil != err {
		return err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	defer trx.Abort()

	reply.Operator = contract.IsOperator(trx, arguments.Grant)
	return nil
}

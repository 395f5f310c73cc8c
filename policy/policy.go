// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package policy

import (
	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/storage"
)

// Grant - one operator permission: operator may move owner's tokens
// of the given id
type Grant struct {
	Owner    *account.Account `json:"owner"`
	Operator *account.Account `json:"operator"`
	TokenID  uint64           `json:"tokenId"`
}

// Policy - decides who may move a token and who may edit grants
//
// one variant is selected at ledger construction and never replugged
type Policy interface {

	// called before every transfer-driven balance mutation
	AuthorizeTransfer(trx storage.Transaction, owner *account.Account, claimant *account.Account, tokenID uint64) error

	// called before every grant add or remove
	AuthorizeOperatorUpdate(trx storage.Transaction, caller *account.Account, grant Grant) error

	// pure membership query for read-only views
	IsOperator(trx storage.Transaction, grant Grant) bool

	// false on variants with no grant storage at all
	SupportsOperators() bool
}

// New - select a policy variant by configuration name
func New(name string) (Policy, error) {
	switch name {
	case "no-transfer":
		return NoTransfer{}, nil
	case "owner":
		return OwnerOnly{}, nil
	case "owner-or-operator":
		return OwnerOrOperator{}, nil
	case "owner-or-operator-adhoc":
		return OwnerOrOperatorAdhoc{}, nil
	default:
		return nil, fault.InvalidItem
	}
}

// NoTransfer - every transfer is denied
type NoTransfer struct{}

func (NoTransfer) AuthorizeTransfer(_ storage.Transaction, _ *account.Account, _ *account.Account, _ uint64) error {
	return fault.TransfersNotSupported
}

func (NoTransfer) AuthorizeOperatorUpdate(_ storage.Transaction, _ *account.Account, _ Grant) error {
	return fault.OperatorsUnsupported
}

func (NoTransfer) IsOperator(_ storage.Transaction, _ Grant) bool {
	return false
}

func (NoTransfer) SupportsOperators() bool {
	return false
}

// OwnerOnly - only the owner moves its own tokens
type OwnerOnly struct{}

func (OwnerOnly) AuthorizeTransfer(_ storage.Transaction, owner *account.Account, claimant *account.Account, _ uint64) error {
	if owner.SameAs(claimant) {
		return nil
	}
	return fault.NotOperator
}

func (OwnerOnly) AuthorizeOperatorUpdate(_ storage.Transaction, _ *account.Account, _ Grant) error {
	return fault.OperatorsUnsupported
}

func (OwnerOnly) IsOperator(_ storage.Transaction, _ Grant) bool {
	return false
}

func (OwnerOnly) SupportsOperators() bool {
	return false
}

// OwnerOrOperator - owner, or a long-lived operator grant
type OwnerOrOperator struct{}

func (OwnerOrOperator) AuthorizeTransfer(trx storage.Transaction, owner *account.Account, claimant *account.Account, tokenID uint64) error {
	if owner.SameAs(claimant) {
		return nil
	}
	if HasOperator(trx, Grant{Owner: owner, Operator: claimant, TokenID: tokenID}) {
		return nil
	}
	return fault.NotOperator
}

func (OwnerOrOperator) AuthorizeOperatorUpdate(trx storage.Transaction, caller *account.Account, grant Grant) error {
	return authorizeSelfService(caller, grant)
}

func (OwnerOrOperator) IsOperator(trx storage.Transaction, grant Grant) bool {
	return HasOperator(trx, grant)
}

func (OwnerOrOperator) SupportsOperators() bool {
	return true
}

// OwnerOrOperatorAdhoc - owner, long-lived grant, or a grant hashed
// into the current time bucket
type OwnerOrOperatorAdhoc struct{}

func (OwnerOrOperatorAdhoc) AuthorizeTransfer(trx storage.Transaction, owner *account.Account, claimant *account.Account, tokenID uint64) error {
	if owner.SameAs(claimant) {
		return nil
	}
	grant := Grant{Owner: owner, Operator: claimant, TokenID: tokenID}
	if HasOperator(trx, grant) {
		return nil
	}
	if HasAdhocOperator(trx, grant) {
		return nil
	}
	return fault.NotOperator
}

func (OwnerOrOperatorAdhoc) AuthorizeOperatorUpdate(trx storage.Transaction, caller *account.Account, grant Grant) error {
	return authorizeSelfService(caller, grant)
}

func (OwnerOrOperatorAdhoc) IsOperator(trx storage.Transaction, grant Grant) bool {
	return HasOperator(trx, grant) || HasAdhocOperator(trx, grant)
}

func (OwnerOrOperatorAdhoc) SupportsOperators() bool {
	return true
}

// PauseGate - denies everything while the pause state is set,
// otherwise delegates to the wrapped variant
type PauseGate struct {
	Inner    Policy
	IsPaused func(trx storage.Transaction) bool
}

func (p PauseGate) AuthorizeTransfer(trx storage.Transaction, owner *account.Account, claimant *account.Account, tokenID uint64) error {
	if p.IsPaused(trx) {
		return fault.Paused
	}
	return p.Inner.AuthorizeTransfer(trx, owner, claimant, tokenID)
}

func (p PauseGate) AuthorizeOperatorUpdate(trx storage.Transaction, caller *account.Account, grant Grant) error {
	if p.IsPaused(trx) {
		return fault.Paused
	}
	return p.Inner.AuthorizeOperatorUpdate(trx, caller, grant)
}

func (p PauseGate) IsOperator(trx storage.Transaction, grant Grant) bool {
	return p.Inner.IsOperator(trx, grant)
}

func (p PauseGate) SupportsOperators() bool {
	return p.Inner.SupportsOperators()
}

// registration is self-service only: nobody edits another's grants
func authorizeSelfService(caller *account.Account, grant Grant) error {
	if nil == grant.Owner || !grant.Owner.SameAs(caller) {
		return fault.NotOwner
	}
	return nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package administration

import (
	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/storage"
)

// governance pool keys
var (
	adminKey    = []byte("admin")
	proposedKey = []byte("proposed-admin")
	pausedKey   = []byte("paused")
)

// Bootstrap - set the initial administrator
//
// only valid while no administrator is recorded
func Bootstrap(trx storage.Transaction, admin *account.Account) error {
	if trx.Has(storage.Pool.Governance, adminKey) {
		return fault.AlreadyInitialised
	}
	trx.Put(storage.Pool.Governance, adminKey, admin.Bytes())
	return nil
}

// Administrator - fetch the current administrator
func Administrator(trx storage.Transaction) (*account.Account, error) {
	packed := trx.Get(storage.Pool.Governance, adminKey)
	if nil == packed {
		return nil, fault.NotInitialised
	}
	admin, _, err := account.AccountFromBytes(packed)
	return admin, err
}

// IsAdministrator - check an identity against the current administrator
func IsAdministrator(trx storage.Transaction, caller *account.Account) bool {
	admin, err := Administrator(trx)
	if nil != err {
		return false
	}
	return admin.SameAs(caller)
}

// Transfer - propose a new administrator
//
// first half of the two phase hand-off; only the current
// administrator may propose, and a later proposal replaces an
// earlier one
func Transfer(trx storage.Transaction, caller *account.Account, proposed *account.Account) error {
	if !IsAdministrator(trx, caller) {
		return fault.NotAdministrator
	}
	trx.Put(storage.Pool.Governance, proposedKey, proposed.Bytes())
	return nil
}

// Accept - complete the administrator hand-off
//
// only the proposed administrator may accept; the proposal is
// consumed whether or not one existed before
func Accept(trx storage.Transaction, caller *account.Account) error {
	packed := trx.Get(storage.Pool.Governance, proposedKey)
	if nil == packed {
		return fault.NoAdminTransfer
	}
	proposed, _, err := account.AccountFromBytes(packed)
	if nil != err {
		return err
	}
	if !proposed.SameAs(caller) {
		return fault.NotProposedAdministrator
	}
	trx.Put(storage.Pool.Governance, adminKey, proposed.Bytes())
	trx.Delete(storage.Pool.Governance, proposedKey)
	return nil
}

// ProposedAdministrator - fetch the pending proposal, nil if none
func ProposedAdministrator(trx storage.Transaction) *account.Account {
	packed := trx.Get(storage.Pool.Governance, proposedKey)
	if nil == packed {
		return nil
	}
	proposed, _, err := account.AccountFromBytes(packed)
	if nil != err {
		return nil
	}
	return proposed
}

// SetPaused - flip the pause flag; administrator only
func SetPaused(trx storage.Transaction, caller *account.Account, paused bool) error {
	if !IsAdministrator(trx, caller) {
		return fault.NotAdministrator
	}
	if paused {
		trx.Put(storage.Pool.Governance, pausedKey, []byte{1})
	} else {
		trx.Delete(storage.Pool.Governance, pausedKey)
	}
	return nil
}

// IsPaused - read the pause flag
func IsPaused(trx storage.Transaction) bool {
	return trx.Has(storage.Pool.Governance, pausedKey)
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package whitelist - the allow-list gate
//
// while enabled, gated operations require the caller to hold an
// entry; settlement of an administrator-owned auction consumes the
// entry so admission is single use.  Disabling the gate admits
// everyone without touching stored entries.
package whitelist

import (
	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/administration"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/storage"
)

var enabledKey = []byte("whitelist-enabled")

// Enabled - read the gate flag; the gate starts enabled
func Enabled(trx storage.Transaction) bool {
	return !trx.Has(storage.Pool.Governance, enabledKey)
}

// SetEnabled - flip the gate flag; administrator only
func SetEnabled(trx storage.Transaction, caller *account.Account, enabled bool) error {
	if !administration.IsAdministrator(trx, caller) {
		return fault.NotAdministrator
	}
	if enabled {
		trx.Delete(storage.Pool.Governance, enabledKey)
	} else {
		trx.Put(storage.Pool.Governance, enabledKey, []byte{1})
	}
	return nil
}

// Add - grant entries; administrator only
func Add(trx storage.Transaction, caller *account.Account, members []*account.Account) error {
	if !administration.IsAdministrator(trx, caller) {
		return fault.NotAdministrator
	}
	for _, member := range members {
		trx.Put(storage.Pool.Whitelist, member.Bytes(), []byte{1})
	}
	return nil
}

// Remove - revoke entries; administrator only
func Remove(trx storage.Transaction, caller *account.Account, members []*account.Account) error {
	if !administration.IsAdministrator(trx, caller) {
		return fault.NotAdministrator
	}
	for _, member := range members {
		trx.Delete(storage.Pool.Whitelist, member.Bytes())
	}
	return nil
}

// IsWhitelisted - check admission
//
// a disabled gate admits everyone
func IsWhitelisted(trx storage.Transaction, member *account.Account) bool {
	if !Enabled(trx) {
		return true
	}
	return trx.Has(storage.Pool.Whitelist, member.Bytes())
}

// Consume - remove a member's entry after a single-use admission
//
// no administrator gate: only reachable from settlement paths that
// have already verified admission
func Consume(trx storage.Transaction, member *account.Account) {
	trx.Delete(storage.Pool.Whitelist, member.Bytes())
}

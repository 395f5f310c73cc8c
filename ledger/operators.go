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
)

// OperatorUpdate - one add or remove in an operator batch
type OperatorUpdate struct {
	Add   bool         `json:"add"`
	Grant policy.Grant `json:"grant"`
}

// UpdateOperators - batched editing of the long-lived grant set
//
// the whole call is refused on a policy without operator storage;
// each update is then individually authorized
func (l *Ledger) UpdateOperators(trx storage.Transaction, caller *account.Account, updates []OperatorUpdate) error {

	if !l.policy.SupportsOperators() {
		return fault.OperatorsUnsupported
	}

	for _, update := range updates {
		err := l.policy.AuthorizeOperatorUpdate(trx, caller, update.Grant)
		if nil != err {
			return err
		}
		if update.Add {
			policy.AddOperator(trx, update.Grant)
		} else {
			policy.RemoveOperator(trx, update.Grant)
		}
	}
	return nil
}

// IsOperator - read-only grant membership view
func (l *Ledger) IsOperator(trx storage.Transaction, grant policy.Grant) bool {
	return l.policy.IsOperator(trx, grant)
}

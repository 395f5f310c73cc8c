// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package policy

import (
	"github.com/bitmark-inc/tokend/storage"
	"github.com/bitmark-inc/tokend/util"
)

// the long-lived operator grant set
//
// membership key is the full owner/operator/token triple; the stored
// value carries no information

func grantKey(grant Grant) []byte {
	buffer := util.AppendBytes(nil, grant.Owner.Bytes())
	buffer = util.AppendBytes(buffer, grant.Operator.Bytes())
	return util.AppendVarint64(buffer, grant.TokenID)
}

// AddOperator - store a long-lived grant; adding twice is harmless
func AddOperator(trx storage.Transaction, grant Grant) {
	trx.Put(storage.Pool.Operators, grantKey(grant), []byte{1})
}

// RemoveOperator - delete a long-lived grant; absence is not an error
func RemoveOperator(trx storage.Transaction, grant Grant) {
	trx.Delete(storage.Pool.Operators, grantKey(grant))
}

// HasOperator - membership test on the long-lived set
func HasOperator(trx storage.Transaction, grant Grant) bool {
	return trx.Has(storage.Pool.Operators, grantKey(grant))
}

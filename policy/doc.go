// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package policy - transfer authorization
//
// a ledger is built with exactly one Policy variant:
//
//	NoTransfer            every transfer denied
//	OwnerOnly             owner moves its own tokens, nothing else
//	OwnerOrOperator       adds the long-lived operator grant set
//	OwnerOrOperatorAdhoc  adds transient hash-keyed grants on top
//
// PauseGate wraps any variant and denies all checks while the pause
// state holds.
//
// adhoc grants are stored content-addressed: a one-way hash of
// (owner, operator, token id, time bucket).  A grant is only
// findable during the bucket it was created in; a background prune
// drops grants from older buckets, and each add call evicts the
// oldest grants one for one so the set is a fixed-capacity ring.
package policy

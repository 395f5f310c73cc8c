// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - ownership and balance tracking
//
// one Ledger instance serves one token collection.  The shape fixes
// how balances are keyed:
//
//	NFT          token id → owner; one owner per id, balance is one
//	Fungible     (owner, token id) → amount, with per-token supply
//	SingleAsset  owner → amount of the single token id zero
//
// a balance of zero is never stored; the entry is deleted and
// absence means zero.  Supply is tracked separately from summing
// the ledger so reads stay cheap, and every mint and burn keeps the
// two consistent.
package ledger

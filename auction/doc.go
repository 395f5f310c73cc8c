// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package auction - dutch auction settlement
//
// an auction record lives from create until bid or cancel; terminal
// states delete the record and no history is kept here.  The engine
// holds custody of the traded token between create and settlement
// under its own account, a bounded borrow against the token ledger.
//
// the ask price decays stepwise from start price to end price over
// the auction window; all monetary arithmetic is integer with floor
// division and settlement conserves the ask exactly: seller payout
// plus platform fee plus contributor royalties always equals the
// ask, rounding remainders land on the fee collector.
package auction

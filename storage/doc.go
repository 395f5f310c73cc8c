// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintains a single LevelDB database containing a number of prefixed
// key:value pools, one pool per logical table:
//
//   TokenMetadata   token id          -> packed metadata map
//   Balances        owner ‖ token id  -> 8 byte balance
//   Supply          token id          -> 8 byte circulating supply
//   Royalties       token id          -> packed royalty record
//   Operators       owner ‖ operator ‖ token id -> 1 byte marker
//   AdhocOperators  sha3 key          -> 8 byte sequence ‖ 8 byte bucket
//   Funds           owner             -> 8 byte balance
//   Counters        name              -> 8 byte next value
//   Auctions        auction id        -> packed auction record
//   Permitted       contract name     -> packed counterparty properties
//   Whitelist       account           -> 1 byte marker
//   Governance      name              -> state value
//
// every state changing operation runs inside a Transaction: staged
// puts and deletes accumulate in a batch overlaid by a cache so that
// reads inside the transaction observe staged values, then the batch
// is committed as one atomic LevelDB write or abandoned entirely
package storage

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - ledger participant identities
//
// an account is an ed25519 public key tagged with its network; the
// text form is base58 over a key variant byte, the key and a SHA3-256
// checksum so that mistyped identities are detected before use
package account

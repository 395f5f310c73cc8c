// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tokenregistry - the token metadata table
//
// a token id has exactly two lifecycle states: defined, while its
// metadata record exists, and undefined.  Define is the only way in,
// Undefine (reached through burn) the only way out, and an id that
// has gone undefined is never assigned again.
//
// ids are sequential from zero; the next id lives in the counters
// pool so it survives restarts.
package tokenregistry

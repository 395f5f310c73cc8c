// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package administration - administrator identity and pause flag
//
// hand-off is two phase: the current administrator proposes a
// successor, the successor accepts.  An unaccepted proposal can be
// replaced or simply left to expire by a further Transfer.
package administration

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auction

// Price - the ask at a given moment, pure integer arithmetic
//
// clamps to start price before the window and end price after it;
// inside the window the price drops by a fixed amount per whole
// granularity step.  The granularity can be raised past a live
// auction's duration after create, leaving no whole step inside the
// window; the ask is then already the end price.
func Price(startPrice uint64, endPrice uint64, startTime int64, endTime int64, granularity uint64, now int64) uint64 {

	if now <= startTime {
		return startPrice
	}
	if now >= endTime {
		return endPrice
	}

	steps := uint64(endTime-startTime) / granularity
	if 0 == steps {
		return endPrice
	}
	elapsed := uint64(now-startTime) / granularity

	perStep := (startPrice - endPrice) / steps

	return startPrice - perStep*elapsed
}

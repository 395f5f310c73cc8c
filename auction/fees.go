// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auction

import (
	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/administration"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/storage"
	"github.com/bitmark-inc/tokend/util"
)

// administrator knobs, stored in the governance pool

// MaximumFeeRate - cap on the platform fee in parts per thousand
const MaximumFeeRate = 60

// default fee rate applied until the administrator sets one
const defaultFeeRate = 25

// default price-decay step width in seconds
const defaultGranularity = 60

var (
	feesKey        = []byte("fees")
	secondaryKey   = []byte("secondary-disabled")
	granularityKey = []byte("auction-granularity")
)

// SetFees - set platform fee rate and collector; administrator only
func SetFees(trx storage.Transaction, caller *account.Account, rate uint64, collector *account.Account) error {
	if !administration.IsAdministrator(trx, caller) {
		return fault.NotAdministrator
	}
	if rate > MaximumFeeRate {
		return fault.FeeRateTooHigh
	}
	buffer := util.ToVarint64(rate)
	buffer = util.AppendBytes(buffer, collector.Bytes())
	trx.Put(storage.Pool.Governance, feesKey, buffer)
	return nil
}

// Fees - current platform fee rate and collector
//
// before SetFees the rate defaults and fees accrue to the
// administrator account
func Fees(trx storage.Transaction) (uint64, *account.Account) {
	packed := trx.Get(storage.Pool.Governance, feesKey)
	if nil == packed {
		admin, err := administration.Administrator(trx)
		if nil != err {
			return defaultFeeRate, nil
		}
		return defaultFeeRate, admin
	}

	rate, n := util.FromVarint64(packed)
	if 0 == n {
		return defaultFeeRate, nil
	}
	collectorBytes, n2 := util.NextBytes(packed[n:])
	if 0 == n2 {
		return rate, nil
	}
	collector, _, err := account.AccountFromBytes(collectorBytes)
	if nil != err {
		return rate, nil
	}
	return rate, collector
}

// SetSecondaryEnabled - open or close the secondary market;
// administrator only.  While closed only the administrator creates
// auctions.
func SetSecondaryEnabled(trx storage.Transaction, caller *account.Account, enabled bool) error {
	if !administration.IsAdministrator(trx, caller) {
		return fault.NotAdministrator
	}
	if enabled {
		trx.Delete(storage.Pool.Governance, secondaryKey)
	} else {
		trx.Put(storage.Pool.Governance, secondaryKey, []byte{1})
	}
	return nil
}

// SecondaryEnabled - read the secondary market flag; open by default
func SecondaryEnabled(trx storage.Transaction) bool {
	return !trx.Has(storage.Pool.Governance, secondaryKey)
}

// SetGranularity - set the price-decay step width in seconds;
// administrator only
func SetGranularity(trx storage.Transaction, caller *account.Account, seconds uint64) error {
	if !administration.IsAdministrator(trx, caller) {
		return fault.NotAdministrator
	}
	if 0 == seconds {
		return fault.InvalidGranularity
	}
	trx.PutN(storage.Pool.Governance, granularityKey, seconds)
	return nil
}

// Granularity - current price-decay step width in seconds
func Granularity(trx storage.Transaction) uint64 {
	seconds, found := trx.GetN(storage.Pool.Governance, granularityKey)
	if !found || 0 == seconds {
		return defaultGranularity
	}
	return seconds
}

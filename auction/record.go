// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auction

import (
	"encoding/binary"

	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/storage"
	"github.com/bitmark-inc/tokend/util"
)

// key under storage.Pool.Counters holding the next auction id
var nextAuctionIDKey = []byte("auction-id")

// Auction - one live auction record
type Auction struct {
	Owner      *account.Account `json:"owner"`
	Contract   *account.Account `json:"contract"` // token contract reference
	TokenID    uint64           `json:"tokenId"`
	StartPrice uint64           `json:"startPrice"`
	EndPrice   uint64           `json:"endPrice"`
	StartTime  int64            `json:"startTime"` // unix seconds
	EndTime    int64            `json:"endTime"`   // unix seconds
}

func auctionKey(auctionID uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, auctionID)
	return key
}

func nextAuctionID(trx storage.Transaction) uint64 {
	auctionID, _ := trx.GetN(storage.Pool.Counters, nextAuctionIDKey)
	trx.PutN(storage.Pool.Counters, nextAuctionIDKey, auctionID+1)
	return auctionID
}

// Get - fetch a live auction record
func Get(trx storage.Transaction, auctionID uint64) (Auction, error) {
	packed := trx.Get(storage.Pool.Auctions, auctionKey(auctionID))
	if nil == packed {
		return Auction{}, fault.AuctionNotFound
	}
	return unpack(packed)
}

func store(trx storage.Transaction, auctionID uint64, record Auction) {
	trx.Put(storage.Pool.Auctions, auctionKey(auctionID), pack(record))
}

func remove(trx storage.Transaction, auctionID uint64) {
	trx.Delete(storage.Pool.Auctions, auctionKey(auctionID))
}

func pack(record Auction) []byte {
	buffer := util.AppendBytes(nil, record.Owner.Bytes())
	buffer = util.AppendBytes(buffer, record.Contract.Bytes())
	buffer = util.AppendVarint64(buffer, record.TokenID)
	buffer = util.AppendVarint64(buffer, record.StartPrice)
	buffer = util.AppendVarint64(buffer, record.EndPrice)
	buffer = util.AppendVarint64(buffer, uint64(record.StartTime))
	buffer = util.AppendVarint64(buffer, uint64(record.EndTime))
	return buffer
}

func unpack(packed []byte) (Auction, error) {
	record := Auction{}

	ownerBytes, n := util.NextBytes(packed)
	if 0 == n {
		return Auction{}, fault.InvalidItem
	}
	packed = packed[n:]
	owner, _, err := account.AccountFromBytes(ownerBytes)
	if nil != err {
		return Auction{}, err
	}
	record.Owner = owner

	contractBytes, n := util.NextBytes(packed)
	if 0 == n {
		return Auction{}, fault.InvalidItem
	}
	packed = packed[n:]
	contract, _, err := account.AccountFromBytes(contractBytes)
	if nil != err {
		return Auction{}, err
	}
	record.Contract = contract

	values := make([]uint64, 5)
	for i := range values {
		value, n := util.FromVarint64(packed)
		if 0 == n {
			return Auction{}, fault.InvalidItem
		}
		packed = packed[n:]
		values[i] = value
	}

	record.TokenID = values[0]
	record.StartPrice = values[1]
	record.EndPrice = values[2]
	record.StartTime = int64(values[3])
	record.EndTime = int64(values[4])
	return record, nil
}

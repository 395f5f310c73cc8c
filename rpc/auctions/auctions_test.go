// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auctions_test

import (
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/administration"
	"github.com/bitmark-inc/tokend/auction"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/payment"
	"github.com/bitmark-inc/tokend/permitted"
	"github.com/bitmark-inc/tokend/rpc/auctions"
	"github.com/bitmark-inc/tokend/rpc/fixtures"
	"github.com/bitmark-inc/tokend/rpc/mocks"
	"github.com/bitmark-inc/tokend/storage"
)

const (
	databaseFileName = "auctions-test"
)

var (
	admin     = fixtures.Account(1)
	seller    = fixtures.Account(2)
	bidder    = fixtures.Account(3)
	custodian = fixtures.Account(8)
	contract  = fixtures.Account(9)
)

const startTime = int64(2000000)

func setup(t *testing.T, tokenContract auction.TokenContract) *auctions.Auction {
	fixtures.SetupTestLogger()

	os.RemoveAll(databaseFileName + "-data.leveldb")
	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction begin error: %s", err)
	}
	err = administration.Bootstrap(trx, admin)
	assert.Nil(t, err, "bootstrap error")
	err = permitted.Add(trx, admin, contract, permitted.Entry{
		SwapAllowed: true,
		RoyaltyKind: permitted.RoyaltyNone,
	})
	assert.Nil(t, err, "permitted error")
	payment.Deposit(trx, bidder, 5000)
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	resolver := auction.ResolverFunc(func(ref *account.Account) (auction.TokenContract, bool) {
		if contract.SameAs(ref) {
			return tokenContract, true
		}
		return nil, false
	})
	engine := auction.NewWithClock(custodian, resolver, func() time.Time {
		return time.Unix(startTime, 0)
	})

	return auctions.New(logger.New(fixtures.LogCategory), engine, false)
}

func teardown(t *testing.T) {
	storage.Finalise()
	os.RemoveAll(databaseFileName + "-data.leveldb")
	fixtures.TeardownTestLogger()
}

func fundsOf(t *testing.T, owner *account.Account) uint64 {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction begin error: %s", err)
	}
	defer trx.Abort()
	return payment.Balance(trx, owner)
}

func TestAuctionLifecycle(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tokenContract := mocks.NewMockTokenContract(ctl)
	a := setup(t, tokenContract)
	defer teardown(t)

	tokenContract.EXPECT().
		Balance(gomock.Any(), seller, uint64(7)).
		Return(uint64(1), nil).
		Times(1)
	tokenContract.EXPECT().
		TransferTo(gomock.Any(), custodian, seller, custodian, uint64(7), uint64(1)).
		Return(nil).
		Times(1)

	var createReply auctions.CreateReply
	err := a.Create(&auctions.CreateArguments{
		Caller:     seller,
		Contract:   contract,
		TokenID:    7,
		StartPrice: 1000,
		EndPrice:   1000,
		StartTime:  startTime,
		EndTime:    startTime + 4800,
	}, &createReply)
	assert.Nil(t, err, "create error")

	var getReply auctions.GetReply
	err = a.Get(&auctions.GetArguments{AuctionID: createReply.AuctionID}, &getReply)
	assert.Nil(t, err, "get error")
	assert.True(t, seller.SameAs(getReply.Auction.Owner), "wrong auction owner")
	assert.Equal(t, uint64(1000), getReply.Price, "wrong ask")

	var priceReply auctions.PriceReply
	err = a.Price(&auctions.PriceArguments{AuctionID: createReply.AuctionID}, &priceReply)
	assert.Nil(t, err, "price error")
	assert.Equal(t, uint64(1000), priceReply.Price, "wrong price")

	// settlement hands the token to the bidder
	tokenContract.EXPECT().
		TransferTo(gomock.Any(), custodian, custodian, bidder, uint64(7), uint64(1)).
		Return(nil).
		Times(1)

	var bidReply auctions.BidReply
	err = a.Bid(&auctions.BidArguments{
		Caller:    bidder,
		AuctionID: createReply.AuctionID,
		Amount:    1000,
	}, &bidReply)
	assert.Nil(t, err, "bid error")
	assert.True(t, bidReply.Settled, "not settled")

	// platform fee 25 permille to the administrator, rest to the seller
	assert.Equal(t, uint64(4000), fundsOf(t, bidder), "wrong bidder funds")
	assert.Equal(t, uint64(975), fundsOf(t, seller), "wrong seller funds")
	assert.Equal(t, uint64(25), fundsOf(t, admin), "wrong platform funds")

	err = a.Get(&auctions.GetArguments{AuctionID: createReply.AuctionID}, &getReply)
	assert.Equal(t, fault.AuctionNotFound, err, "record survived settlement")
}

func TestCancel(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tokenContract := mocks.NewMockTokenContract(ctl)
	a := setup(t, tokenContract)
	defer teardown(t)

	tokenContract.EXPECT().
		Balance(gomock.Any(), seller, uint64(3)).
		Return(uint64(1), nil).
		Times(1)
	tokenContract.EXPECT().
		TransferTo(gomock.Any(), custodian, seller, custodian, uint64(3), uint64(1)).
		Return(nil).
		Times(1)

	var createReply auctions.CreateReply
	err := a.Create(&auctions.CreateArguments{
		Caller:     seller,
		Contract:   contract,
		TokenID:    3,
		StartPrice: 500,
		EndPrice:   100,
		StartTime:  startTime,
		EndTime:    startTime + 4800,
	}, &createReply)
	assert.Nil(t, err, "create error")

	// the token goes back to the owner
	tokenContract.EXPECT().
		TransferTo(gomock.Any(), custodian, custodian, seller, uint64(3), uint64(1)).
		Return(nil).
		Times(1)

	var cancelReply auctions.CancelReply
	err = a.Cancel(&auctions.CancelArguments{Caller: seller, AuctionID: createReply.AuctionID}, &cancelReply)
	assert.Nil(t, err, "cancel error")
	assert.True(t, cancelReply.Cancelled, "not cancelled")

	err = a.Cancel(&auctions.CancelArguments{Caller: seller, AuctionID: createReply.AuctionID}, &cancelReply)
	assert.Equal(t, fault.AuctionNotFound, err, "double cancel")
}

func TestReadOnly(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tokenContract := mocks.NewMockTokenContract(ctl)
	setup(t, tokenContract)
	defer teardown(t)

	engine := auction.New(custodian, auction.ResolverFunc(func(_ *account.Account) (auction.TokenContract, bool) {
		return nil, false
	}))
	a := auctions.New(logger.New(fixtures.LogCategory), engine, true)

	var createReply auctions.CreateReply
	err := a.Create(&auctions.CreateArguments{Caller: seller, Contract: contract}, &createReply)
	assert.Equal(t, fault.NotAvailableInReadOnlyMode, err, "read-only create")

	var cancelReply auctions.CancelReply
	err = a.Cancel(&auctions.CancelArguments{Caller: seller}, &cancelReply)
	assert.Equal(t, fault.NotAvailableInReadOnlyMode, err, "read-only cancel")

	var bidReply auctions.BidReply
	err = a.Bid(&auctions.BidArguments{Caller: bidder}, &bidReply)
	assert.Equal(t, fault.NotAvailableInReadOnlyMode, err, "read-only bid")
}

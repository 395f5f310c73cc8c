// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auctions

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/auction"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/rpc/ratelimit"
	"github.com/bitmark-inc/tokend/storage"
)

// Auction - type for the RPC
type Auction struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Engine   *auction.Engine
	ReadOnly bool
}

const (
	rateLimitAuction = 200
	rateBurstAuction = 100
)

func New(log *logger.L, engine *auction.Engine, readOnly bool) *Auction {
	return &Auction{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitAuction, rateBurstAuction),
		Engine:   engine,
		ReadOnly: readOnly,
	}
}

// run a mutating operation inside the global transaction
func update(f func(trx storage.Transaction) error) error {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	err = f(trx)
	if nil != err {
		trx.Abort()
		return err
	}
	return trx.Commit()
}

// ---

// CreateArguments - arguments for RPC request
type CreateArguments struct {
	Caller     *account.Account `json:"caller"`
	Contract   *account.Account `json:"contract"`
	TokenID    uint64           `json:"tokenId"`
	StartPrice uint64           `json:"startPrice"`
	EndPrice   uint64           `json:"endPrice"`
	StartTime  int64            `json:"startTime"`
	EndTime    int64            `json:"endTime"`
}

// CreateReply - results from create request
type CreateReply struct {
	AuctionID uint64 `json:"auctionId"`
}

// Create - open an auction and move the token into custody
func (a *Auction) Create(arguments *CreateArguments, reply *CreateReply) error {

	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}

	if a.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	if nil == arguments.Caller || nil == arguments.Contract {
		return fault.MissingParameters
	}

	a.Log.Infof("Auction.Create: token: %d start: %d end: %d", arguments.TokenID, arguments.StartPrice, arguments.EndPrice)

	auctionID := uint64(0)
	err := update(func(trx storage.Transaction) error {
		var inner error
		auctionID, inner = a.Engine.Create(
			trx,
			arguments.Caller,
			arguments.Contract,
			arguments.TokenID,
			arguments.StartPrice,
			arguments.EndPrice,
			arguments.StartTime,
			arguments.EndTime,
		)
		return inner
	})
	if nil != err {
		return err
	}

	reply.AuctionID = auctionID
	return nil
}

// ---

// CancelArguments - arguments for RPC request
type CancelArguments struct {
	Caller    *account.Account `json:"caller"`
	AuctionID uint64           `json:"auctionId"`
}

// CancelReply - results from cancel request
type CancelReply struct {
	Cancelled bool `json:"cancelled"`
}

// Cancel - close an auction and return the token to its owner
func (a *Auction) Cancel(arguments *CancelArguments, reply *CancelReply) error {

	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}

	if a.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	if nil == arguments.Caller {
		return fault.MissingParameters
	}

	a.Log.Infof("Auction.Cancel: %d", arguments.AuctionID)

	err := update(func(trx storage.Transaction) error {
		return a.Engine.Cancel(trx, arguments.Caller, arguments.AuctionID)
	})
	if nil != err {
		return err
	}

	reply.Cancelled = true
	return nil
}

// ---

// BidArguments - arguments for RPC request
type BidArguments struct {
	Caller    *account.Account `json:"caller"`
	AuctionID uint64           `json:"auctionId"`
	Amount    uint64           `json:"amount"`
}

// BidReply - results from bid request
type BidReply struct {
	Settled bool `json:"settled"`
}

// Bid - settle an auction at the current ask
func (a *Auction) Bid(arguments *BidArguments, reply *BidReply) error {

	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}

	if a.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	if nil == arguments.Caller {
		return fault.MissingParameters
	}

	a.Log.Infof("Auction.Bid: %d amount: %d", arguments.AuctionID, arguments.Amount)

	err := update(func(trx storage.Transaction) error {
		return a.Engine.Bid(trx, arguments.Caller, arguments.AuctionID, arguments.Amount)
	})
	if nil != err {
		return err
	}

	reply.Settled = true
	return nil
}

// ---

// GetArguments - arguments for RPC request
type GetArguments struct {
	AuctionID uint64 `json:"auctionId"`
}

// GetReply - results from get request
type GetReply struct {
	Auction auction.Auction `json:"auction"`
	Price   uint64          `json:"price"`
}

// Get - fetch an auction record with its current ask
func (a *Auction) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	defer trx.Abort()

	record, err := auction.Get(trx, arguments.AuctionID)
	if nil != err {
		return err
	}
	price, err := a.Engine.CurrentPrice(trx, arguments.AuctionID)
	if nil != err {
		return err
	}

	reply.Auction = record
	reply.Price = price
	return nil
}

// ---

// PriceArguments - arguments for RPC request
type PriceArguments struct {
	AuctionID uint64 `json:"auctionId"`
}

// PriceReply - results from price request
type PriceReply struct {
	Price uint64 `json:"price"`
}

// Price - current ask of a running auction
func (a *Auction) Price(arguments *PriceArguments, reply *PriceReply) error {

	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	defer trx.Abort()

	price, err := a.Engine.CurrentPrice(trx, arguments.AuctionID)
	if nil != err {
		return err
	}

	reply.Price = price
	return nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auction

import (
	"time"

	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/administration"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/payment"
	"github.com/bitmark-inc/tokend/permitted"
	"github.com/bitmark-inc/tokend/royalty"
	"github.com/bitmark-inc/tokend/storage"
	"github.com/bitmark-inc/tokend/whitelist"
)

// amount custodied per auction; the engine trades whole tokens
const auctionedAmount = 1

// TokenContract - the ledger surface the engine consumes
type TokenContract interface {

	// custody and release; the engine is the claimant so the seller
	// must have made the engine an operator
	TransferTo(trx storage.Transaction, caller *account.Account, from *account.Account, to *account.Account, tokenID uint64, amount uint64) error

	// ownership test at create time
	Balance(trx storage.Transaction, owner *account.Account, tokenID uint64) (uint64, error)
}

// Resolver - maps a contract reference to its ledger
type Resolver interface {
	Contract(ref *account.Account) (TokenContract, bool)
}

// ResolverFunc - plain function form of Resolver
type ResolverFunc func(ref *account.Account) (TokenContract, bool)

// Contract - call the wrapped function
func (f ResolverFunc) Contract(ref *account.Account) (TokenContract, bool) {
	return f(ref)
}

// Engine - the auction engine instance
type Engine struct {
	custodian *account.Account
	resolver  Resolver
	clock     func() time.Time
}

// New - build an engine holding custody under the given account
func New(custodian *account.Account, resolver Resolver) *Engine {
	return &Engine{
		custodian: custodian,
		resolver:  resolver,
		clock:     time.Now,
	}
}

// NewWithClock - engine with an explicit time source
func NewWithClock(custodian *account.Account, resolver Resolver, clock func() time.Time) *Engine {
	return &Engine{
		custodian: custodian,
		resolver:  resolver,
		clock:     clock,
	}
}

// Custodian - the engine's own account
func (e *Engine) Custodian() *account.Account {
	return e.custodian
}

// Create - open an auction and take custody of the token
func (e *Engine) Create(trx storage.Transaction, caller *account.Account, contract *account.Account, tokenID uint64, startPrice uint64, endPrice uint64, startTime int64, endTime int64) (uint64, error) {

	if administration.IsPaused(trx) {
		return 0, fault.Paused
	}

	// a closed secondary market is primary sales only
	if !SecondaryEnabled(trx) && !administration.IsAdministrator(trx, caller) {
		return 0, fault.SecondaryMarketDisabled
	}

	entry, err := permitted.Get(trx, contract)
	if nil != err {
		return 0, err
	}
	if !entry.SwapAllowed {
		return 0, fault.SwapNotAllowed
	}

	now := e.clock().Unix()
	granularity := Granularity(trx)
	if startTime < now || startTime >= endTime || uint64(endTime-startTime) <= granularity {
		return 0, fault.InvalidAuctionTiming
	}
	if endPrice > startPrice {
		return 0, fault.InvalidAuctionPricing
	}

	tokenContract, ok := e.resolver.Contract(contract)
	if !ok {
		return 0, fault.TokenNotPermitted
	}

	// ownership test before taking custody
	balance, err := tokenContract.Balance(trx, caller, tokenID)
	if nil != err {
		return 0, err
	}
	if 0 == balance {
		return 0, fault.NotOwner
	}

	// custody transfer; the authorization policy runs in the ledger
	err = tokenContract.TransferTo(trx, e.custodian, caller, e.custodian, tokenID, auctionedAmount)
	if nil != err {
		return 0, err
	}

	auctionID := nextAuctionID(trx)
	store(trx, auctionID, Auction{
		Owner:      caller,
		Contract:   contract,
		TokenID:    tokenID,
		StartPrice: startPrice,
		EndPrice:   endPrice,
		StartTime:  startTime,
		EndTime:    endTime,
	})
	return auctionID, nil
}

// Cancel - close an auction unsettled and return the token
func (e *Engine) Cancel(trx storage.Transaction, caller *account.Account, auctionID uint64) error {

	if administration.IsPaused(trx) {
		return fault.Paused
	}

	record, err := Get(trx, auctionID)
	if nil != err {
		return err
	}
	if !record.Owner.SameAs(caller) {
		return fault.NotOwner
	}

	tokenContract, ok := e.resolver.Contract(record.Contract)
	if !ok {
		return fault.TokenNotPermitted
	}

	err = tokenContract.TransferTo(trx, e.custodian, e.custodian, record.Owner, record.TokenID, auctionedAmount)
	if nil != err {
		return err
	}

	remove(trx, auctionID)
	return nil
}

// CurrentPrice - the ask right now
func (e *Engine) CurrentPrice(trx storage.Transaction, auctionID uint64) (uint64, error) {
	record, err := Get(trx, auctionID)
	if nil != err {
		return 0, err
	}
	return Price(record.StartPrice, record.EndPrice, record.StartTime, record.EndTime, Granularity(trx), e.clock().Unix()), nil
}

// Bid - settle an auction at the current ask
//
// paid is drawn from the bidder's funds; overpay is returned in the
// same settlement, royalties and platform fee are split out of the
// ask per the stored record, and whatever one recipient is owed
// across all roles arrives as a single credit
func (e *Engine) Bid(trx storage.Transaction, caller *account.Account, auctionID uint64, paid uint64) error {

	if administration.IsPaused(trx) {
		return fault.Paused
	}

	record, err := Get(trx, auctionID)
	if nil != err {
		return err
	}

	now := e.clock().Unix()
	if now < record.StartTime {
		return fault.AuctionNotStarted
	}

	// administrator-owned auctions are gated primary sales
	adminSale := administration.IsAdministrator(trx, record.Owner)
	if adminSale && !whitelist.IsWhitelisted(trx, caller) {
		return fault.OnlyWhitelisted
	}

	ask := Price(record.StartPrice, record.EndPrice, record.StartTime, record.EndTime, Granularity(trx), now)
	if paid < ask {
		return fault.WrongAmount
	}

	err = payment.Withdraw(trx, caller, paid)
	if nil != err {
		return err
	}

	payouts := newPayoutSet()
	payouts.add(caller, paid-ask) // overpay refund

	if ask > 0 {
		err = e.splitProceeds(trx, record, ask, payouts)
		if nil != err {
			return err
		}
	}

	for _, payout := range payouts.list {
		payment.Deposit(trx, payout.account, payout.amount)
	}

	tokenContract, ok := e.resolver.Contract(record.Contract)
	if !ok {
		return fault.TokenNotPermitted
	}
	err = tokenContract.TransferTo(trx, e.custodian, e.custodian, caller, record.TokenID, auctionedAmount)
	if nil != err {
		return err
	}

	// single-use admission
	if adminSale {
		whitelist.Consume(trx, caller)
	}

	remove(trx, auctionID)
	return nil
}

// carve the ask into seller, royalty and platform shares
func (e *Engine) splitProceeds(trx storage.Transaction, record Auction, ask uint64, payouts *payoutSet) error {

	// swapping may have been disabled since create
	entry, err := permitted.Get(trx, record.Contract)
	if nil != err {
		return err
	}
	if !entry.SwapAllowed {
		return fault.SwapNotAllowed
	}

	royalties := royalty.Record{}
	switch entry.RoyaltyKind {
	case permitted.RoyaltyNone:
		// no royalty data for this contract
	case permitted.RoyaltyNative:
		royalties = royalty.Get(trx, record.TokenID)
	default:
		return fault.RoyaltiesNotImplemented
	}

	feeRate, collector := Fees(trx)

	totalRate := royalties.Rate + feeRate
	fee := ask * totalRate / 1000

	royaltyAmount := uint64(0)
	if totalRate > 0 {
		royaltyAmount = royalties.Rate * fee / totalRate
	}

	contributed := uint64(0)
	for _, contributor := range royalties.Contributors {
		amount := royaltyAmount * contributor.Relative / 1000
		payouts.add(contributor.Account, amount)
		contributed += amount
	}

	// rounding remainder goes to the collector
	if nil == collector {
		// unconfigured collector, keep the value with the seller
		collector = record.Owner
	}
	payouts.add(collector, fee-contributed)
	payouts.add(record.Owner, ask-fee)
	return nil
}

// payout coalescing: one credit per recipient, insertion ordered

type payout struct {
	account *account.Account
	amount  uint64
}

type payoutSet struct {
	index map[string]int
	list  []payout
}

func newPayoutSet() *payoutSet {
	return &payoutSet{
		index: make(map[string]int),
	}
}

func (p *payoutSet) add(recipient *account.Account, amount uint64) {
	if 0 == amount {
		return
	}
	key := string(recipient.Bytes())
	if i, ok := p.index[key]; ok {
		p.list[i].amount += amount
		return
	}
	p.index[key] = len(p.list)
	p.list = append(p.list, payout{
		account: recipient,
		amount:  amount,
	})
}

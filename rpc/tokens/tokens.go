// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokens

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/ledger"
	"github.com/bitmark-inc/tokend/royalty"
	"github.com/bitmark-inc/tokend/rpc/ratelimit"
	"github.com/bitmark-inc/tokend/storage"
	"github.com/bitmark-inc/tokend/tokenregistry"
)

// Token - type for the RPC
type Token struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Registry *ledger.Registry
}

const (
	rateLimitToken = 200
	rateBurstToken = 100
)

func New(log *logger.L, registry *ledger.Registry) *Token {
	return &Token{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitToken, rateBurstToken),
		Registry: registry,
	}
}

// resolve the contract argument or fail
func (token *Token) contract(reference *account.Account) (*ledger.Ledger, error) {
	if nil == reference {
		return nil, fault.MissingParameters
	}
	l, ok := token.Registry.Get(reference)
	if !ok {
		return nil, fault.TokenNotPermitted
	}
	return l, nil
}

// ---

// MetadataArguments - arguments for RPC request
type MetadataArguments struct {
	Contract *account.Account `json:"contract"`
	TokenID  uint64           `json:"tokenId"`
}

// MetadataReply - results from metadata request
type MetadataReply struct {
	TokenID  uint64                 `json:"tokenId"`
	Metadata tokenregistry.Metadata `json:"metadata"`
}

// Metadata - fetch the metadata record of a defined token
func (token *Token) Metadata(arguments *MetadataArguments, reply *MetadataReply) error {

	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	if _, err := token.contract(arguments.Contract); nil != err {
		return err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	defer trx.Abort()

	metadata, err := tokenregistry.Get(trx, arguments.TokenID)
	if nil != err {
		return err
	}

	reply.TokenID = arguments.TokenID
	reply.Metadata = metadata
	return nil
}

// ---

// SupplyArguments - arguments for RPC request
type SupplyArguments struct {
	Contract *account.Account `json:"contract"`
	TokenID  uint64           `json:"tokenId"`
}

// SupplyReply - results from supply request
type SupplyReply struct {
	TokenID uint64 `json:"tokenId"`
	Supply  uint64 `json:"supply"`
}

// Supply - total supply of a defined token
func (token *Token) Supply(arguments *SupplyArguments, reply *SupplyReply) error {

	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	l, err := token.contract(arguments.Contract)
	if nil != err {
		return err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	defer trx.Abort()

	supply, err := l.TotalSupply(trx, arguments.TokenID)
	if nil != err {
		return err
	}

	reply.TokenID = arguments.TokenID
	reply.Supply = supply
	return nil
}

// ---

// RoyaltiesArguments - arguments for RPC request
type RoyaltiesArguments struct {
	Contract *account.Account `json:"contract"`
	TokenID  uint64           `json:"tokenId"`
}

// RoyaltiesReply - results from royalties request
type RoyaltiesReply struct {
	TokenID   uint64         `json:"tokenId"`
	Royalties royalty.Record `json:"royalties"`
}

// Royalties - royalty terms of a defined token
//
// a defined token with no royalty data yields the zero record
func (token *Token) Royalties(arguments *RoyaltiesArguments, reply *RoyaltiesReply) error {

	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	if _, err := token.contract(arguments.Contract); nil != err {
		return err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	defer trx.Abort()

	if _, err := tokenregistry.Get(trx, arguments.TokenID); nil != err {
		return err
	}

	reply.TokenID = arguments.TokenID
	reply.Royalties = royalty.Get(trx, arguments.TokenID)
	return nil
}

// ---

// CountArguments - arguments for RPC request
type CountArguments struct {
	Contract *account.Account `json:"contract"`
}

// CountReply - results from count request
type CountReply struct {
	Count uint64 `json:"count"`
}

// Count - number of currently defined tokens
func (token *Token) Count(arguments *CountArguments, reply *CountReply) error {

	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	if _, err := token.contract(arguments.Contract); nil != err {
		return err
	}

	reply.Count = tokenregistry.Count()
	return nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokens_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokend/administration"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/ledger"
	"github.com/bitmark-inc/tokend/policy"
	"github.com/bitmark-inc/tokend/royalty"
	"github.com/bitmark-inc/tokend/rpc/fixtures"
	"github.com/bitmark-inc/tokend/rpc/tokens"
	"github.com/bitmark-inc/tokend/storage"
	"github.com/bitmark-inc/tokend/tokenregistry"
)

const (
	databaseFileName = "tokens-test"
)

var (
	admin    = fixtures.Account(1)
	alice    = fixtures.Account(2)
	contract = fixtures.Account(9)
)

func setup(t *testing.T) (*tokens.Token, uint64) {
	fixtures.SetupTestLogger()

	os.RemoveAll(databaseFileName + "-data.leveldb")
	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	l := ledger.New(ledger.Fungible, policy.OwnerOnly{}, true)
	registry := ledger.NewRegistry()
	registry.Add(contract, l)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction begin error: %s", err)
	}
	err = administration.Bootstrap(trx, admin)
	assert.Nil(t, err, "bootstrap error")
	tokenID, err := l.MintNew(trx, admin, alice, tokenregistry.Metadata{"name": []byte("gold")}, royalty.Record{}, 500)
	assert.Nil(t, err, "mint error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	return tokens.New(logger.New(fixtures.LogCategory), registry), tokenID
}

func teardown(t *testing.T) {
	storage.Finalise()
	os.RemoveAll(databaseFileName + "-data.leveldb")
	fixtures.TeardownTestLogger()
}

func TestMetadata(t *testing.T) {
	token, tokenID := setup(t)
	defer teardown(t)

	var reply tokens.MetadataReply
	err := token.Metadata(&tokens.MetadataArguments{Contract: contract, TokenID: tokenID}, &reply)
	assert.Nil(t, err, "metadata error")
	assert.Equal(t, tokenID, reply.TokenID, "wrong token id")
	assert.Equal(t, []byte("gold"), reply.Metadata["name"], "wrong metadata")

	err = token.Metadata(&tokens.MetadataArguments{Contract: contract, TokenID: tokenID + 1}, &reply)
	assert.Equal(t, fault.TokenUndefined, err, "undefined token answered")

	err = token.Metadata(&tokens.MetadataArguments{Contract: alice, TokenID: tokenID}, &reply)
	assert.Equal(t, fault.TokenNotPermitted, err, "unknown contract answered")

	err = token.Metadata(&tokens.MetadataArguments{TokenID: tokenID}, &reply)
	assert.Equal(t, fault.MissingParameters, err, "missing contract answered")
}

func TestSupply(t *testing.T) {
	token, tokenID := setup(t)
	defer teardown(t)

	var reply tokens.SupplyReply
	err := token.Supply(&tokens.SupplyArguments{Contract: contract, TokenID: tokenID}, &reply)
	assert.Nil(t, err, "supply error")
	assert.Equal(t, uint64(500), reply.Supply, "wrong supply")

	err = token.Supply(&tokens.SupplyArguments{Contract: contract, TokenID: tokenID + 1}, &reply)
	assert.Equal(t, fault.TokenUndefined, err, "undefined token answered")
}

func TestRoyalties(t *testing.T) {
	token, tokenID := setup(t)
	defer teardown(t)

	creator := fixtures.Account(4)
	terms := royalty.Record{
		Rate: 250,
		Contributors: []royalty.Contributor{
			{Account: creator, Relative: 1000, Role: royalty.RoleCreator},
		},
	}

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction begin error")
	l, _ := token.Registry.Get(contract)
	royalTokenID, err := l.MintNew(trx, admin, alice, tokenregistry.Metadata{"name": []byte("silver")}, terms, 100)
	assert.Nil(t, err, "mint error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	var reply tokens.RoyaltiesReply
	err = token.Royalties(&tokens.RoyaltiesArguments{Contract: contract, TokenID: royalTokenID}, &reply)
	assert.Nil(t, err, "royalties error")
	assert.Equal(t, royalTokenID, reply.TokenID, "wrong token id")
	assert.Equal(t, uint64(250), reply.Royalties.Rate, "wrong rate")
	assert.Equal(t, 1, len(reply.Royalties.Contributors), "wrong contributor count")
	assert.True(t, creator.SameAs(reply.Royalties.Contributors[0].Account), "wrong contributor")

	// a defined token without royalty data reads as the zero record
	err = token.Royalties(&tokens.RoyaltiesArguments{Contract: contract, TokenID: tokenID}, &reply)
	assert.Nil(t, err, "bare token royalties error")
	assert.Equal(t, uint64(0), reply.Royalties.Rate, "unexpected rate")
	assert.Equal(t, 0, len(reply.Royalties.Contributors), "unexpected contributors")

	err = token.Royalties(&tokens.RoyaltiesArguments{Contract: contract, TokenID: royalTokenID + 1}, &reply)
	assert.Equal(t, fault.TokenUndefined, err, "undefined token answered")

	err = token.Royalties(&tokens.RoyaltiesArguments{Contract: alice, TokenID: royalTokenID}, &reply)
	assert.Equal(t, fault.TokenNotPermitted, err, "unknown contract answered")
}

func TestCount(t *testing.T) {
	token, _ := setup(t)
	defer teardown(t)

	var reply tokens.CountReply
	err := token.Count(&tokens.CountArguments{Contract: contract}, &reply)
	assert.Nil(t, err, "count error")
	assert.Equal(t, uint64(1), reply.Count, "wrong count")
}

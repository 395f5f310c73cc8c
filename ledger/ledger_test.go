// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/administration"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/ledger"
	"github.com/bitmark-inc/tokend/policy"
	"github.com/bitmark-inc/tokend/royalty"
	"github.com/bitmark-inc/tokend/storage"
	"github.com/bitmark-inc/tokend/tokenregistry"
)

const (
	databaseFileName = "ledger-test"
)

var (
	admin    = makeAccount(1)
	alice    = makeAccount(2)
	bob      = makeAccount(3)
	operator = makeAccount(4)
)

func setup(t *testing.T) storage.Transaction {
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
	if nil != err {
		t.Fatalf("bootstrap error: %s", err)
	}
	return trx
}

func teardown(t *testing.T) {
	storage.Finalise()
	os.RemoveAll(databaseFileName + "-data.leveldb")
}

func makeAccount(seed byte) *account.Account {
	publicKey := make([]byte, 32)
	publicKey[0] = seed
	return &account.Account{
		Test:      true,
		PublicKey: publicKey,
	}
}

func metadata(doc string) tokenregistry.Metadata {
	return tokenregistry.Metadata{"": []byte(doc)}
}

func transfer(l *ledger.Ledger, trx storage.Transaction, caller *account.Account, from *account.Account, to *account.Account, tokenID uint64, amount uint64) error {
	return l.Transfer(trx, caller, []ledger.TransferBatch{{
		From: from,
		Txs: []ledger.TransferTx{{
			To:      to,
			TokenID: tokenID,
			Amount:  amount,
		}},
	}})
}

func TestNFTLifecycle(t *testing.T) {
	trx := setup(t)
	defer teardown(t)
	defer trx.Abort()

	l := ledger.New(ledger.NFT, policy.OwnerOrOperator{}, false)

	// only the administrator mints
	_, err := l.MintNew(trx, alice, alice, metadata("item"), royalty.Record{}, 1)
	assert.Equal(t, fault.NotAdministrator, err, "non-admin minted")

	tokenID, err := l.MintNew(trx, admin, alice, metadata("item"), royalty.Record{}, 1)
	assert.Nil(t, err, "mint error")
	assert.Equal(t, uint64(0), tokenID, "first token id")

	owner, err := l.Owner(trx, tokenID)
	assert.Nil(t, err, "owner error")
	assert.True(t, alice.SameAs(owner), "owner after mint")

	supply, err := l.TotalSupply(trx, tokenID)
	assert.Nil(t, err, "supply error")
	assert.Equal(t, uint64(1), supply, "nft supply")

	// transfer by owner
	err = transfer(l, trx, alice, alice, bob, tokenID, 1)
	assert.Nil(t, err, "transfer error")

	owner, err = l.Owner(trx, tokenID)
	assert.Nil(t, err, "owner error")
	assert.True(t, bob.SameAs(owner), "owner after transfer")

	balance, err := l.Balance(trx, alice, tokenID)
	assert.Nil(t, err, "balance error")
	assert.Equal(t, uint64(0), balance, "old owner balance")

	// previous owner can no longer move it
	err = transfer(l, trx, alice, alice, bob, tokenID, 1)
	assert.Equal(t, fault.InsufficientBalance, err, "stale owner transferred")
}

func TestTransferCheckOrder(t *testing.T) {
	trx := setup(t)
	defer teardown(t)
	defer trx.Abort()

	l := ledger.New(ledger.NFT, policy.OwnerOrOperator{}, false)

	// undefined token fails before any authorization check, even for
	// a caller with no rights at all
	err := transfer(l, trx, bob, alice, bob, 7, 1)
	assert.Equal(t, fault.TokenUndefined, err, "undefined token check order")

	tokenID, err := l.MintNew(trx, admin, alice, metadata("item"), royalty.Record{}, 1)
	assert.Nil(t, err, "mint error")

	// authorization fails before the balance check: bob holds nothing
	// and is not an operator, the code must still be NotOperator
	err = transfer(l, trx, bob, alice, bob, tokenID, 1)
	assert.Equal(t, fault.NotOperator, err, "authorization check order")

	// owner with balance but excessive amount fails on balance
	err = transfer(l, trx, alice, alice, bob, tokenID, 2)
	assert.Equal(t, fault.InsufficientBalance, err, "balance check order")
}

func TestOperatorTransfer(t *testing.T) {
	trx := setup(t)
	defer teardown(t)
	defer trx.Abort()

	l := ledger.New(ledger.NFT, policy.OwnerOrOperator{}, false)

	tokenID, err := l.MintNew(trx, admin, alice, metadata("item"), royalty.Record{}, 1)
	assert.Nil(t, err, "mint error")

	grant := policy.Grant{Owner: alice, Operator: operator, TokenID: tokenID}

	// operator denied before the grant exists
	err = transfer(l, trx, operator, alice, bob, tokenID, 1)
	assert.Equal(t, fault.NotOperator, err, "ungranted operator transferred")

	// nobody registers grants on another's behalf
	err = l.UpdateOperators(trx, operator, []ledger.OperatorUpdate{{Add: true, Grant: grant}})
	assert.Equal(t, fault.NotOwner, err, "third party registered grant")

	err = l.UpdateOperators(trx, alice, []ledger.OperatorUpdate{{Add: true, Grant: grant}})
	assert.Nil(t, err, "grant error")
	assert.True(t, l.IsOperator(trx, grant), "grant not visible")

	err = transfer(l, trx, operator, alice, bob, tokenID, 1)
	assert.Nil(t, err, "operator transfer error")

	// revocation returns to denial
	err = transfer(l, trx, bob, bob, alice, tokenID, 1)
	assert.Nil(t, err, "return transfer error")
	err = l.UpdateOperators(trx, alice, []ledger.OperatorUpdate{{Add: false, Grant: grant}})
	assert.Nil(t, err, "revoke error")
	err = transfer(l, trx, operator, alice, bob, tokenID, 1)
	assert.Equal(t, fault.NotOperator, err, "revoked operator transferred")
}

func TestOperatorsUnsupported(t *testing.T) {
	trx := setup(t)
	defer teardown(t)
	defer trx.Abort()

	l := ledger.New(ledger.NFT, policy.OwnerOnly{}, false)

	grant := policy.Grant{Owner: alice, Operator: operator, TokenID: 0}
	err := l.UpdateOperators(trx, alice, []ledger.OperatorUpdate{{Add: true, Grant: grant}})
	assert.Equal(t, fault.OperatorsUnsupported, err, "owner-only accepted grant")
}

func TestFungibleConservation(t *testing.T) {
	trx := setup(t)
	defer teardown(t)
	defer trx.Abort()

	l := ledger.New(ledger.Fungible, policy.OwnerOrOperator{}, true)

	tokenID, err := l.MintNew(trx, admin, alice, metadata("coin"), royalty.Record{}, 1000)
	assert.Nil(t, err, "mint error")

	total := func() uint64 {
		a, err := l.Balance(trx, alice, tokenID)
		assert.Nil(t, err, "alice balance error")
		b, err := l.Balance(trx, bob, tokenID)
		assert.Nil(t, err, "bob balance error")
		return a + b
	}

	assert.Equal(t, uint64(1000), total(), "total after mint")

	err = transfer(l, trx, alice, alice, bob, tokenID, 300)
	assert.Nil(t, err, "transfer error")
	assert.Equal(t, uint64(1000), total(), "total after transfer")

	supply, err := l.TotalSupply(trx, tokenID)
	assert.Nil(t, err, "supply error")
	assert.Equal(t, uint64(1000), supply, "supply after transfer")

	// zero amount runs the checks only
	err = transfer(l, trx, bob, alice, bob, tokenID, 0)
	assert.Equal(t, fault.NotOperator, err, "zero transfer skipped checks")
	err = transfer(l, trx, alice, alice, bob, tokenID, 0)
	assert.Nil(t, err, "zero transfer error")
	assert.Equal(t, uint64(1000), total(), "total after zero transfer")

	// emptying the source deletes its entry rather than storing zero
	err = transfer(l, trx, alice, alice, bob, tokenID, 700)
	assert.Nil(t, err, "drain transfer error")
	assert.Equal(t, uint64(1000), total(), "total after drain")

	err = transfer(l, trx, alice, alice, bob, tokenID, 1)
	assert.Equal(t, fault.InsufficientBalance, err, "overdraw allowed")
}

func TestFungibleMintExistingAndBurn(t *testing.T) {
	trx := setup(t)
	defer teardown(t)
	defer trx.Abort()

	l := ledger.New(ledger.Fungible, policy.OwnerOrOperator{}, true)

	tokenID, err := l.MintNew(trx, admin, alice, metadata("coin"), royalty.Record{}, 100)
	assert.Nil(t, err, "mint error")

	err = l.MintExisting(trx, admin, bob, tokenID, 50)
	assert.Nil(t, err, "mint existing error")

	supply, err := l.TotalSupply(trx, tokenID)
	assert.Nil(t, err, "supply error")
	assert.Equal(t, uint64(150), supply, "supply after mint existing")

	err = l.MintExisting(trx, alice, bob, tokenID, 50)
	assert.Equal(t, fault.NotAdministrator, err, "non-admin minted existing")

	// burn follows the transfer gate
	err = l.Burn(trx, bob, alice, tokenID, 10)
	assert.Equal(t, fault.NotOperator, err, "unauthorized burn")

	err = l.Burn(trx, alice, alice, tokenID, 40)
	assert.Nil(t, err, "burn error")
	supply, err = l.TotalSupply(trx, tokenID)
	assert.Nil(t, err, "supply error")
	assert.Equal(t, uint64(110), supply, "supply after burn")

	// re-mintable token keeps its metadata at zero supply
	err = l.Burn(trx, alice, alice, tokenID, 60)
	assert.Nil(t, err, "burn to zero error")
	err = l.Burn(trx, bob, bob, tokenID, 50)
	assert.Nil(t, err, "final burn error")
	supply, err = l.TotalSupply(trx, tokenID)
	assert.Nil(t, err, "supply error")
	assert.Equal(t, uint64(0), supply, "supply after final burn")
	assert.True(t, tokenregistry.IsDefined(trx, tokenID), "re-mintable token undefined")
}

func TestOneShotTokenBurn(t *testing.T) {
	trx := setup(t)
	defer teardown(t)
	defer trx.Abort()

	l := ledger.New(ledger.Fungible, policy.OwnerOrOperator{}, false)

	tokenID, err := l.MintNew(trx, admin, alice, metadata("one-shot"), royalty.Record{}, 10)
	assert.Nil(t, err, "mint error")

	err = l.MintExisting(trx, admin, alice, tokenID, 5)
	assert.Equal(t, fault.TransfersNotSupported, err, "one-shot token re-minted")

	err = l.Burn(trx, alice, alice, tokenID, 10)
	assert.Nil(t, err, "burn error")

	// metadata destroyed with the last unit
	assert.False(t, tokenregistry.IsDefined(trx, tokenID), "one-shot token survived")
	_, err = l.Balance(trx, alice, tokenID)
	assert.Equal(t, fault.TokenUndefined, err, "balance after undefine")
}

func TestNFTBurnDestroysRecords(t *testing.T) {
	trx := setup(t)
	defer teardown(t)
	defer trx.Abort()

	l := ledger.New(ledger.NFT, policy.OwnerOrOperator{}, false)

	royalties := royalty.Record{
		Rate: 100,
		Contributors: []royalty.Contributor{
			{Account: alice, Relative: 1000, Role: royalty.RoleMinter},
		},
	}

	tokenID, err := l.MintNew(trx, admin, alice, metadata("item"), royalties, 1)
	assert.Nil(t, err, "mint error")

	stored := royalty.Get(trx, tokenID)
	assert.Equal(t, uint64(100), stored.Rate, "royalty stored")

	err = l.Burn(trx, alice, alice, tokenID, 1)
	assert.Nil(t, err, "burn error")

	assert.False(t, tokenregistry.IsDefined(trx, tokenID), "metadata survived burn")
	assert.Equal(t, uint64(0), royalty.Get(trx, tokenID).Rate, "royalty survived burn")

	// the id is dead: balance mutations fail Not-found forever
	err = transfer(l, trx, alice, alice, bob, tokenID, 1)
	assert.Equal(t, fault.TokenUndefined, err, "burned token transferable")
}

func TestSingleAssetShape(t *testing.T) {
	trx := setup(t)
	defer teardown(t)
	defer trx.Abort()

	l := ledger.New(ledger.SingleAsset, policy.OwnerOnly{}, true)

	tokenID, err := l.MintNew(trx, admin, alice, metadata("the-coin"), royalty.Record{}, 500)
	assert.Nil(t, err, "mint error")
	assert.Equal(t, uint64(0), tokenID, "single asset token id")

	// a second definition is refused
	_, err = l.MintNew(trx, admin, bob, metadata("another"), royalty.Record{}, 1)
	assert.Equal(t, fault.TokenAlreadyDefined, err, "second single asset defined")

	// any non-zero token id reads as undefined
	err = transfer(l, trx, alice, alice, bob, 1, 10)
	assert.Equal(t, fault.TokenUndefined, err, "non-zero id accepted")
	_, err = l.Balance(trx, alice, 1)
	assert.Equal(t, fault.TokenUndefined, err, "non-zero id balance")

	// mint-existing names its token id explicitly, so a non-zero id
	// is a caller error rather than an undefined token
	err = l.MintExisting(trx, admin, alice, 1, 10)
	assert.Equal(t, fault.SingleAssetTokenIdNotZero, err, "non-zero id minted")
	err = l.MintExisting(trx, admin, alice, 0, 10)
	assert.Nil(t, err, "mint existing error")

	err = transfer(l, trx, alice, alice, bob, 0, 200)
	assert.Nil(t, err, "transfer error")

	balance, err := l.Balance(trx, bob, 0)
	assert.Nil(t, err, "balance error")
	assert.Equal(t, uint64(200), balance, "bob balance")

	supply, err := l.TotalSupply(trx, 0)
	assert.Nil(t, err, "supply error")
	assert.Equal(t, uint64(510), supply, "single asset supply")
}

func TestBalanceOfBatch(t *testing.T) {
	trx := setup(t)
	defer teardown(t)
	defer trx.Abort()

	l := ledger.New(ledger.Fungible, policy.OwnerOrOperator{}, true)

	tokenID, err := l.MintNew(trx, admin, alice, metadata("coin"), royalty.Record{}, 100)
	assert.Nil(t, err, "mint error")

	responses, err := l.BalanceOf(trx, []ledger.BalanceQuery{
		{Owner: alice, TokenID: tokenID},
		{Owner: bob, TokenID: tokenID},
	})
	assert.Nil(t, err, "balance batch error")
	assert.Equal(t, uint64(100), responses[0].Balance, "alice balance")
	assert.Equal(t, uint64(0), responses[1].Balance, "bob unfunded balance")

	// an unknown id fails the whole batch rather than reading zero
	_, err = l.BalanceOf(trx, []ledger.BalanceQuery{
		{Owner: alice, TokenID: tokenID},
		{Owner: alice, TokenID: 99},
	})
	assert.Equal(t, fault.TokenUndefined, err, "unknown id defaulted to zero")
}

func TestNoTransferPolicy(t *testing.T) {
	trx := setup(t)
	defer teardown(t)
	defer trx.Abort()

	l := ledger.New(ledger.NFT, policy.NoTransfer{}, false)

	tokenID, err := l.MintNew(trx, admin, alice, metadata("soulbound"), royalty.Record{}, 1)
	assert.Nil(t, err, "mint error")

	err = transfer(l, trx, alice, alice, bob, tokenID, 1)
	assert.Equal(t, fault.TransfersNotSupported, err, "no-transfer ledger moved a token")
}

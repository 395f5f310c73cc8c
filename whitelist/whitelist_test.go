// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package whitelist_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/administration"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/storage"
	"github.com/bitmark-inc/tokend/whitelist"
)

const (
	databaseFileName = "whitelist-test"
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

func TestGate(t *testing.T) {
	trx := setup(t)
	defer teardown(t)
	defer trx.Abort()

	admin := makeAccount(1)
	alice := makeAccount(2)
	bob := makeAccount(3)

	err := administration.Bootstrap(trx, admin)
	assert.Nil(t, err, "bootstrap error")

	// gate starts enabled and empty
	assert.True(t, whitelist.Enabled(trx), "gate disabled by default")
	assert.False(t, whitelist.IsWhitelisted(trx, alice), "admitted without entry")

	// only the administrator manages entries
	err = whitelist.Add(trx, alice, []*account.Account{alice})
	assert.Equal(t, fault.NotAdministrator, err, "self admission")

	err = whitelist.Add(trx, admin, []*account.Account{alice, bob})
	assert.Nil(t, err, "add error")
	assert.True(t, whitelist.IsWhitelisted(trx, alice), "alice not admitted")
	assert.True(t, whitelist.IsWhitelisted(trx, bob), "bob not admitted")

	err = whitelist.Remove(trx, admin, []*account.Account{bob})
	assert.Nil(t, err, "remove error")
	assert.False(t, whitelist.IsWhitelisted(trx, bob), "bob still admitted")

	// single-use consumption
	whitelist.Consume(trx, alice)
	assert.False(t, whitelist.IsWhitelisted(trx, alice), "alice admitted twice")
}

func TestDisabledGateAdmitsAll(t *testing.T) {
	trx := setup(t)
	defer teardown(t)
	defer trx.Abort()

	admin := makeAccount(1)
	alice := makeAccount(2)

	err := administration.Bootstrap(trx, admin)
	assert.Nil(t, err, "bootstrap error")

	err = whitelist.SetEnabled(trx, alice, false)
	assert.Equal(t, fault.NotAdministrator, err, "stranger disabled gate")

	err = whitelist.SetEnabled(trx, admin, false)
	assert.Nil(t, err, "disable error")
	assert.False(t, whitelist.Enabled(trx), "gate still enabled")
	assert.True(t, whitelist.IsWhitelisted(trx, alice), "disabled gate rejected")

	err = whitelist.SetEnabled(trx, admin, true)
	assert.Nil(t, err, "enable error")
	assert.False(t, whitelist.IsWhitelisted(trx, alice), "entries survived re-enable")
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package policy_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/policy"
	"github.com/bitmark-inc/tokend/storage"
)

const (
	databaseFileName = "policy-test"
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

func TestNew(t *testing.T) {
	for _, name := range []string{"no-transfer", "owner", "owner-or-operator", "owner-or-operator-adhoc"} {
		p, err := policy.New(name)
		assert.Nil(t, err, "variant: %s", name)
		assert.NotNil(t, p, "variant: %s", name)
	}
	_, err := policy.New("anything-goes")
	assert.Equal(t, fault.InvalidItem, err, "unknown variant accepted")
}

func TestVariantTransferChecks(t *testing.T) {
	trx := setup(t)
	defer teardown(t)
	defer trx.Abort()

	owner := makeAccount(1)
	operator := makeAccount(2)
	stranger := makeAccount(3)

	grant := policy.Grant{Owner: owner, Operator: operator, TokenID: 7}
	policy.AddOperator(trx, grant)

	testCases := []struct {
		name     string
		policy   policy.Policy
		claimant *account.Account
		expected error
	}{
		{"no-transfer denies owner", policy.NoTransfer{}, owner, fault.TransfersNotSupported},
		{"no-transfer denies operator", policy.NoTransfer{}, operator, fault.TransfersNotSupported},
		{"owner-only allows owner", policy.OwnerOnly{}, owner, nil},
		{"owner-only denies operator", policy.OwnerOnly{}, operator, fault.NotOperator},
		{"owner-or-operator allows owner", policy.OwnerOrOperator{}, owner, nil},
		{"owner-or-operator allows operator", policy.OwnerOrOperator{}, operator, nil},
		{"owner-or-operator denies stranger", policy.OwnerOrOperator{}, stranger, fault.NotOperator},
		{"adhoc variant allows long-lived grant", policy.OwnerOrOperatorAdhoc{}, operator, nil},
		{"adhoc variant denies stranger", policy.OwnerOrOperatorAdhoc{}, stranger, fault.NotOperator},
	}

	for _, testCase := range testCases {
		err := testCase.policy.AuthorizeTransfer(trx, owner, testCase.claimant, 7)
		assert.Equal(t, testCase.expected, err, testCase.name)
	}

	// grant is scoped to its token id
	err := policy.OwnerOrOperator{}.AuthorizeTransfer(trx, owner, operator, 8)
	assert.Equal(t, fault.NotOperator, err, "grant leaked across token ids")

	// revocation returns to denial
	policy.RemoveOperator(trx, grant)
	err = policy.OwnerOrOperator{}.AuthorizeTransfer(trx, owner, operator, 7)
	assert.Equal(t, fault.NotOperator, err, "revoked grant still allowed")
}

func TestOperatorUpdateSelfServiceOnly(t *testing.T) {
	trx := setup(t)
	defer teardown(t)
	defer trx.Abort()

	owner := makeAccount(1)
	operator := makeAccount(2)

	grant := policy.Grant{Owner: owner, Operator: operator, TokenID: 1}

	err := policy.OwnerOrOperator{}.AuthorizeOperatorUpdate(trx, owner, grant)
	assert.Nil(t, err, "owner denied")

	err = policy.OwnerOrOperator{}.AuthorizeOperatorUpdate(trx, operator, grant)
	assert.Equal(t, fault.NotOwner, err, "third party allowed")

	// variants without grant storage refuse updates entirely
	err = policy.NoTransfer{}.AuthorizeOperatorUpdate(trx, owner, grant)
	assert.Equal(t, fault.OperatorsUnsupported, err, "no-transfer supports updates")
	err = policy.OwnerOnly{}.AuthorizeOperatorUpdate(trx, owner, grant)
	assert.Equal(t, fault.OperatorsUnsupported, err, "owner-only supports updates")

	assert.False(t, policy.NoTransfer{}.SupportsOperators(), "no-transfer")
	assert.False(t, policy.OwnerOnly{}.SupportsOperators(), "owner-only")
	assert.True(t, policy.OwnerOrOperator{}.SupportsOperators(), "owner-or-operator")
	assert.True(t, policy.OwnerOrOperatorAdhoc{}.SupportsOperators(), "adhoc")
}

func TestPauseGate(t *testing.T) {
	trx := setup(t)
	defer teardown(t)
	defer trx.Abort()

	owner := makeAccount(1)
	operator := makeAccount(2)
	grant := policy.Grant{Owner: owner, Operator: operator, TokenID: 1}

	paused := false
	gate := policy.PauseGate{
		Inner:    policy.OwnerOrOperator{},
		IsPaused: func(_ storage.Transaction) bool { return paused },
	}

	err := gate.AuthorizeTransfer(trx, owner, owner, 1)
	assert.Nil(t, err, "unpaused transfer denied")
	err = gate.AuthorizeOperatorUpdate(trx, owner, grant)
	assert.Nil(t, err, "unpaused update denied")

	paused = true
	err = gate.AuthorizeTransfer(trx, owner, owner, 1)
	assert.Equal(t, fault.Paused, err, "paused transfer allowed")
	err = gate.AuthorizeOperatorUpdate(trx, owner, grant)
	assert.Equal(t, fault.Paused, err, "paused update allowed")

	// views keep working while paused
	policy.AddOperator(trx, grant)
	assert.True(t, gate.IsOperator(trx, grant), "view blocked while paused")
}

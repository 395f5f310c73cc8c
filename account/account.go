// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/util"
)

// supported key algorithm: only ed25519
const (
	ED25519 = 1
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01
	testKeyCode   = 0x02

	algorithmShift = 4 // shift 4 bits to get algorithm
)

// Account - the identity of a ledger participant
//
// only the public part of an ed25519 key pair; the matching private
// key never enters this system
type Account struct {
	Test      bool
	PublicKey []byte
}

// Bytes - key variant Varint64 followed by the raw public key
func (account *Account) Bytes() []byte {
	keyVariant := uint64(ED25519<<algorithmShift | publicKeyCode)
	if account.Test {
		keyVariant |= testKeyCode
	}
	return append(util.ToVarint64(keyVariant), account.PublicKey...)
}

// String - base58 encoded bytes with a 4 byte SHA3-256 checksum
func (account *Account) String() string {
	buffer := account.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - marshal as the base58 text form
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert from the base58 text form
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	account.Test = a.Test
	account.PublicKey = a.PublicKey
	return nil
}

// AccountFromBase58 - convert a base58 encoded string to an account
func AccountFromBase58(accountBase58Encoded string) (*Account, error) {
	accountDecoded, err := base58.Decode(accountBase58Encoded)
	if nil != err || 0 == len(accountDecoded) {
		return nil, fault.CannotDecodeAccount
	}

	// key variant
	keyVariant, keyVariantLength := util.FromVarint64(accountDecoded)
	if 0 == keyVariantLength || keyVariant&publicKeyCode != publicKeyCode {
		return nil, fault.NotPublicKey
	}

	if keyVariant>>algorithmShift != ED25519 {
		return nil, fault.NotPublicKey
	}

	isTest := 0 != keyVariant&testKeyCode

	keyLength := len(accountDecoded) - keyVariantLength - checksumLength
	if ed25519.PublicKeySize != keyLength {
		return nil, fault.InvalidKeyLength
	}

	// verify checksum
	checksumStart := len(accountDecoded) - checksumLength
	checksum := sha3.Sum256(accountDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], accountDecoded[checksumStart:]) {
		return nil, fault.NotChecksummedAccount
	}

	publicKey := make([]byte, ed25519.PublicKeySize)
	copy(publicKey, accountDecoded[keyVariantLength:checksumStart])

	return &Account{
		Test:      isTest,
		PublicKey: publicKey,
	}, nil
}

// AccountFromBytes - convert the packed form back to an account
func AccountFromBytes(buffer []byte) (*Account, int, error) {
	keyVariant, keyVariantLength := util.FromVarint64(buffer)
	if 0 == keyVariantLength || keyVariant&publicKeyCode != publicKeyCode {
		return nil, 0, fault.NotPublicKey
	}
	if keyVariant>>algorithmShift != ED25519 {
		return nil, 0, fault.NotPublicKey
	}
	end := keyVariantLength + ed25519.PublicKeySize
	if end > len(buffer) {
		return nil, 0, fault.InvalidKeyLength
	}
	publicKey := make([]byte, ed25519.PublicKeySize)
	copy(publicKey, buffer[keyVariantLength:end])
	return &Account{
		Test:      0 != keyVariant&testKeyCode,
		PublicKey: publicKey,
	}, end, nil
}

// CheckSignature - verify an ed25519 signature over a message
func (account *Account) CheckSignature(message []byte, signature []byte) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.InvalidSignature
	}
	if !ed25519.Verify(account.PublicKey, message, signature) {
		return fault.InvalidSignature
	}
	return nil
}

// IsTesting - true if the account belongs to a test network
func (account *Account) IsTesting() bool {
	return account.Test
}

// IsZero - true for the unset account
func (account *Account) IsZero() bool {
	return 0 == len(account.PublicKey)
}

// SameAs - compare two accounts for equality
func (account *Account) SameAs(other *Account) bool {
	if nil == account || nil == other {
		return false
	}
	return account.Test == other.Test &&
		bytes.Equal(account.PublicKey, other.PublicKey)
}

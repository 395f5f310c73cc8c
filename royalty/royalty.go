// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package royalty

import (
	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/storage"
	"github.com/bitmark-inc/tokend/tokenregistry"
	"github.com/bitmark-inc/tokend/util"
)

// limits on an acceptable record
const (
	MaximumRate         = 250 // parts per thousand of the sale price
	MaximumContributors = 3
	totalRelativeShares = 1000
)

// contributor roles
const (
	RoleMinter   = "minter"
	RoleCreator  = "creator"
	RoleDonation = "donation"
)

// Contributor - one party in a royalty split
type Contributor struct {
	Account  *account.Account `json:"account"`
	Relative uint64           `json:"relative"` // parts per thousand of the royalty amount
	Role     string           `json:"role"`
}

// Record - the royalty terms attached to one token id
//
// immutable once stored; only burn removes it
type Record struct {
	Rate         uint64        `json:"rate"` // parts per thousand of the sale price
	Contributors []Contributor `json:"contributors"`
}

// Validate - check a record against the split invariants
//
// called once at token creation; stored records are never re-validated
func Validate(record Record) error {
	if record.Rate > MaximumRate {
		return fault.RoyaltiesInvalid
	}
	if len(record.Contributors) > MaximumContributors {
		return fault.RoyaltiesInvalid
	}
	if 0 == record.Rate {
		if 0 != len(record.Contributors) {
			return fault.RoyaltiesInvalid
		}
		return nil
	}

	total := uint64(0)
	for _, contributor := range record.Contributors {
		if nil == contributor.Account {
			return fault.RoyaltiesInvalid
		}
		total += contributor.Relative
	}
	if totalRelativeShares != total {
		return fault.RoyaltiesInvalid
	}
	return nil
}

// Put - validate and store the record for a token id
func Put(trx storage.Transaction, tokenID uint64, record Record) error {
	err := Validate(record)
	if nil != err {
		return err
	}
	trx.Put(storage.Pool.Royalties, tokenregistry.TokenKey(tokenID), pack(record))
	return nil
}

// Get - fetch the record for a token id
//
// a token without royalty data yields the zero record; never fails
func Get(trx storage.Transaction, tokenID uint64) Record {
	packed := trx.Get(storage.Pool.Royalties, tokenregistry.TokenKey(tokenID))
	if nil == packed {
		return Record{}
	}
	record, err := unpack(packed)
	if nil != err {
		// only reachable through direct database corruption
		return Record{}
	}
	return record
}

// Delete - remove the record for a token id; reached through burn
func Delete(trx storage.Transaction, tokenID uint64) {
	trx.Delete(storage.Pool.Royalties, tokenregistry.TokenKey(tokenID))
}

func pack(record Record) []byte {
	buffer := util.ToVarint64(record.Rate)
	buffer = util.AppendVarint64(buffer, uint64(len(record.Contributors)))
	for _, contributor := range record.Contributors {
		buffer = util.AppendBytes(buffer, contributor.Account.Bytes())
		buffer = util.AppendVarint64(buffer, contributor.Relative)
		buffer = util.AppendString(buffer, contributor.Role)
	}
	return buffer
}

func unpack(packed []byte) (Record, error) {
	record := Record{}

	rate, n := util.FromVarint64(packed)
	if 0 == n {
		return Record{}, fault.InvalidItem
	}
	packed = packed[n:]
	record.Rate = rate

	count, n := util.FromVarint64(packed)
	if 0 == n {
		return Record{}, fault.InvalidItem
	}
	packed = packed[n:]

	for i := uint64(0); i < count; i += 1 {
		accountBytes, n := util.NextBytes(packed)
		if 0 == n {
			return Record{}, fault.InvalidItem
		}
		packed = packed[n:]

		acc, _, err := account.AccountFromBytes(accountBytes)
		if nil != err {
			return Record{}, err
		}

		relative, n := util.FromVarint64(packed)
		if 0 == n {
			return Record{}, fault.InvalidItem
		}
		packed = packed[n:]

		role, n := util.NextString(packed)
		if 0 == n {
			return Record{}, fault.InvalidItem
		}
		packed = packed[n:]

		record.Contributors = append(record.Contributors, Contributor{
			Account:  acc,
			Relative: relative,
			Role:     role,
		})
	}
	return record, nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package policy

import (
	"encoding/binary"
	"sort"
	"sync"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/administration"
	"github.com/bitmark-inc/tokend/background"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/storage"
	"github.com/bitmark-inc/tokend/util"
)

// AdhocMaximumBatch - cap on grants added per call
const AdhocMaximumBatch = 100

// default width of the adhoc time bucket in seconds
const defaultGranularity = 60

// key under storage.Pool.Counters holding the next adhoc sequence number
var adhocSeqKey = []byte("adhoc-seq")

// AdhocGrant - one adhoc permission request; the owner is the caller
type AdhocGrant struct {
	Operator *account.Account `json:"operator"`
	TokenID  uint64           `json:"tokenId"`
}

// janitor state
type pruneData struct {
	log *logger.L
}

// globalData for this package
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	granularity uint64
	prune       pruneData
	background  *background.T
	initialised bool
}

var globalData globalDataType

// Initialise - start the adhoc grant subsystem
//
// granularity is the bucket width in seconds; zero selects the default
func Initialise(granularity uint64) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("policy")
	globalData.log.Info("starting…")

	if 0 == granularity {
		granularity = defaultGranularity
	}
	globalData.granularity = granularity

	globalData.prune.log = logger.New("policy-prune")

	processes := background.Processes{
		&globalData.prune,
	}
	globalData.background = background.Start(processes, nil)

	globalData.initialised = true
	return nil
}

// Finalise - stop background processing
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.background.Stop()

	globalData.Lock()
	globalData.initialised = false
	globalData.Unlock()

	globalData.log.Flush()
	return nil
}

// bucket width in seconds, usable before Initialise for tests
func granularity() uint64 {
	globalData.RLock()
	defer globalData.RUnlock()
	if 0 == globalData.granularity {
		return defaultGranularity
	}
	return globalData.granularity
}

func currentBucket(now time.Time) uint64 {
	return uint64(now.Unix()) / granularity()
}

// one-way hash of the grant tuple and its time bucket; grants are
// never stored in reversible form
func adhocKey(grant Grant, bucket uint64) []byte {
	buffer := util.AppendBytes(nil, grant.Owner.Bytes())
	buffer = util.AppendBytes(buffer, grant.Operator.Bytes())
	buffer = util.AppendVarint64(buffer, grant.TokenID)
	buffer = util.AppendVarint64(buffer, bucket)
	digest := sha3.Sum256(buffer)
	return digest[:]
}

// AddAdhocOperators - grant transient operator permissions
//
// the set is a rolling window: adding n grants first evicts up to n
// of the oldest existing grants, so the footprint never grows
func AddAdhocOperators(trx storage.Transaction, owner *account.Account, adds []AdhocGrant) error {
	if len(adds) > AdhocMaximumBatch {
		return fault.AdhocOperatorLimit
	}
	if 0 == len(adds) {
		return nil
	}

	evictOldest(trx, len(adds))

	bucket := currentBucket(time.Now())
	seq, _ := trx.GetN(storage.Pool.Counters, adhocSeqKey)

	for _, add := range adds {
		grant := Grant{
			Owner:    owner,
			Operator: add.Operator,
			TokenID:  add.TokenID,
		}

		value := make([]byte, 16)
		binary.BigEndian.PutUint64(value[:8], seq)
		binary.BigEndian.PutUint64(value[8:], bucket)
		seq += 1

		trx.Put(storage.Pool.AdhocOperators, adhocKey(grant, bucket), value)
	}

	trx.PutN(storage.Pool.Counters, adhocSeqKey, seq)
	return nil
}

// HasAdhocOperator - membership test scoped to the current bucket
func HasAdhocOperator(trx storage.Transaction, grant Grant) bool {
	return trx.Has(storage.Pool.AdhocOperators, adhocKey(grant, currentBucket(time.Now())))
}

// ClearAdhocOperators - drop every adhoc grant
//
// the only operation that shrinks the set unilaterally, so it is
// restricted to the administrator
func ClearAdhocOperators(trx storage.Transaction, caller *account.Account) error {
	if !administration.IsAdministrator(trx, caller) {
		return fault.NotAdministrator
	}
	storage.Pool.AdhocOperators.Scan(func(key []byte, value []byte) bool {
		trx.Delete(storage.Pool.AdhocOperators, key)
		return true
	})
	return nil
}

type adhocEntry struct {
	seq uint64
	key []byte
}

// remove up to n oldest committed grants
func evictOldest(trx storage.Transaction, n int) {
	entries := make([]adhocEntry, 0, AdhocMaximumBatch)
	storage.Pool.AdhocOperators.Scan(func(key []byte, value []byte) bool {
		if len(value) < 16 {
			return true
		}
		entries = append(entries, adhocEntry{
			seq: binary.BigEndian.Uint64(value[:8]),
			key: key,
		})
		return true
	})

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].seq < entries[j].seq
	})

	if n > len(entries) {
		n = len(entries)
	}
	for _, entry := range entries[:n] {
		trx.Delete(storage.Pool.AdhocOperators, entry.key)
	}
}

// prune loop: grants whose bucket has passed can never match a
// lookup key again, so they are dead weight
func (state *pruneData) Run(args interface{}, shutdown <-chan struct{}) {

	log := state.log

	interval := time.Duration(granularity()) * time.Second
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(interval):
			pruneExpired(log)
		}
	}
}

func pruneExpired(log *logger.L) {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		// a caller holds the transaction; try again next tick
		return
	}

	bucket := currentBucket(time.Now())
	expired := 0
	storage.Pool.AdhocOperators.Scan(func(key []byte, value []byte) bool {
		if len(value) < 16 || binary.BigEndian.Uint64(value[8:16]) < bucket {
			trx.Delete(storage.Pool.AdhocOperators, key)
			expired += 1
		}
		return true
	})

	if 0 == expired {
		trx.Abort()
		return
	}

	err = trx.Commit()
	if nil != err {
		log.Errorf("prune commit error: %s", err)
		trx.Abort()
		return
	}
	log.Infof("pruned %d expired adhoc grants", expired)
}

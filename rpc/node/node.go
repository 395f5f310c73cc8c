// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokend/counter"
	"github.com/bitmark-inc/tokend/mode"
	"github.com/bitmark-inc/tokend/rpc/ratelimit"
	"github.com/bitmark-inc/tokend/tokenregistry"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Start    time.Time
	Version  string
	ReadOnly bool
	counter  *counter.Counter
}

func New(log *logger.L, start time.Time, version string, rpcCount *counter.Counter, readOnly bool) *Node {
	return &Node{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:    start,
		Version:  version,
		ReadOnly: readOnly,
		counter:  rpcCount,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain    string `json:"chain"`
	Mode     string `json:"mode"`
	Tokens   uint64 `json:"tokens"`
	RPCs     uint64 `json:"rpcs"`
	ReadOnly bool   `json:"readOnly"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
}

// Info - return some information about this node
// only enough for clients to determine node state
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Chain = mode.ChainName()
	reply.Mode = mode.String()
	reply.Tokens = tokenregistry.Count()
	reply.RPCs = node.counter.Uint64()
	reply.ReadOnly = node.ReadOnly
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokend/auction"
	"github.com/bitmark-inc/tokend/counter"
	"github.com/bitmark-inc/tokend/ledger"
	"github.com/bitmark-inc/tokend/rpc/auctions"
	"github.com/bitmark-inc/tokend/rpc/ledgers"
	"github.com/bitmark-inc/tokend/rpc/node"
	"github.com/bitmark-inc/tokend/rpc/tokens"
)

// Create - build the RPC server with all handlers registered
func Create(
	log *logger.L,
	version string,
	rpcCount *counter.Counter,
	registry *ledger.Registry,
	engine *auction.Engine,
	readOnly bool,
) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(tokens.New(log, registry))
	_ = server.Register(ledgers.New(log, registry, readOnly))
	_ = server.Register(auctions.New(log, engine, readOnly))
	_ = server.Register(node.New(log, start, version, rpcCount, readOnly))

	return server
}

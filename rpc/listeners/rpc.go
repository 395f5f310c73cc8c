// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"io"
	"net/rpc"
	"net/rpc/jsonrpc"

	"github.com/bitmark-inc/listener"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokend/counter"
	"github.com/bitmark-inc/tokend/fault"
)

const (
	logName = "client_rpc"
)

// RPCConfiguration - configuration file data for RPC setup
type RPCConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

// Listener - a started RPC service
type Listener interface {
	Serve() error
	Stop()
}

type rpcListener struct {
	log      *logger.L
	multi    *listener.MultiListener
	argument *serverArgument
}

type serverArgument struct {
	server *rpc.Server
	count  *counter.Counter
	limit  uint64
	log    *logger.L
}

// NewRPC - validate the configuration and build the TLS multi
// listener for the JSON RPC service
func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	count *counter.Counter,
	server *rpc.Server,
	tlsConfiguration *tls.Config,
	certificateFingerprint [32]byte,
) (Listener, error) {

	if configuration.MaximumConnections < 1 {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}
	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", logName)
		return nil, fault.MissingParameters
	}

	log.Infof("%s: SHA3-256 fingerprint: %x", logName, certificateFingerprint)

	argument := &serverArgument{
		server: server,
		count:  count,
		limit:  configuration.MaximumConnections,
		log:    log,
	}

	limiter := listener.NewLimiter(int(configuration.MaximumConnections))
	multi, err := listener.NewMultiListener(logName, configuration.Listen, tlsConfiguration, limiter, serveRPC)
	if nil != err {
		log.Errorf("invalid %s listen addresses", logName)
		return nil, err
	}

	r := &rpcListener{
		log:      log,
		multi:    multi,
		argument: argument,
	}
	return r, nil
}

// Serve - start accepting connections
func (r *rpcListener) Serve() error {
	r.log.Info("starting RPC server…")
	r.multi.Start(r.argument)
	return nil
}

// Stop - stop accepting connections
func (r *rpcListener) Stop() {
	r.multi.Stop()
}

// one connection worth of JSON RPC
func serveRPC(conn io.ReadWriteCloser, argument interface{}) {
	arg := argument.(*serverArgument)

	if arg.count.Increment() <= arg.limit {
		codec := jsonrpc.NewServerCodec(conn)
		arg.server.ServeCodec(codec)
		_ = codec.Close()
	} else {
		_ = conn.Close()
	}
	arg.count.Decrement()
}

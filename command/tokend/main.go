// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokend/account"
	"github.com/bitmark-inc/tokend/administration"
	"github.com/bitmark-inc/tokend/auction"
	"github.com/bitmark-inc/tokend/fault"
	"github.com/bitmark-inc/tokend/ledger"
	"github.com/bitmark-inc/tokend/mode"
	"github.com/bitmark-inc/tokend/permitted"
	"github.com/bitmark-inc/tokend/policy"
	"github.com/bitmark-inc/tokend/rpc"
	"github.com/bitmark-inc/tokend/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise(theConfiguration.Chain)
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	// general info
	log.Infof("test mode: %v", mode.IsTesting())
	log.Infof("database: %q", theConfiguration.Database)

	// connection info
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)

	// start the data storage
	log.Info("initialise storage")
	storageMode := storage.ReadWrite
	if theConfiguration.ReadOnly {
		storageMode = storage.ReadOnly
	}
	err = storage.Initialise(theConfiguration.Database.Name, storageMode)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// start the adhoc grant janitor
	log.Info("initialise policy")
	err = policy.Initialise(theConfiguration.Contract.AdhocGranularity)
	if nil != err {
		log.Criticalf("policy initialise error: %s", err)
		exitwithstatus.Message("policy initialise error: %s", err)
	}
	defer policy.Finalise()

	// assemble the hosted contract from the configuration
	contractLedger, contractReference, err := buildLedger(&theConfiguration.Contract)
	if nil != err {
		log.Criticalf("contract setup error: %s", err)
		exitwithstatus.Message("contract setup error: %s", err)
	}

	registry := ledger.NewRegistry()
	registry.Add(contractReference, contractLedger)

	custodian, err := account.AccountFromBase58(theConfiguration.Auction.Custodian)
	if nil != err {
		log.Criticalf("auction custodian error: %s", err)
		exitwithstatus.Message("auction custodian error: %s", err)
	}

	engine := auction.New(custodian, auction.ResolverFunc(
		func(ref *account.Account) (auction.TokenContract, bool) {
			l, ok := registry.Get(ref)
			if !ok {
				return nil, false
			}
			return l, true
		}))

	// one-time administrator bootstrap and auction settings
	if !theConfiguration.ReadOnly {
		err = applyBootstrap(log, theConfiguration, contractReference)
		if nil != err {
			log.Criticalf("bootstrap error: %s", err)
			exitwithstatus.Message("bootstrap error: %s", err)
		}
	}

	// start up the rpc background processes
	err = rpc.Initialise(&theConfiguration.ClientRPC, version, registry, engine, theConfiguration.ReadOnly)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
}

// create the configured ledger and its reference account
func buildLedger(conf *ContractType) (*ledger.Ledger, *account.Account, error) {

	if "" == conf.Reference {
		return nil, nil, fault.MissingParameters
	}
	reference, err := account.AccountFromBase58(conf.Reference)
	if nil != err {
		return nil, nil, err
	}

	var shape ledger.Shape
	switch conf.Shape {
	case "nft":
		shape = ledger.NFT
	case "fungible":
		shape = ledger.Fungible
	case "single-asset":
		shape = ledger.SingleAsset
	default:
		return nil, nil, fmt.Errorf("shape: %q is not supported", conf.Shape)
	}

	transferPolicy, err := policy.New(conf.Policy)
	if nil != err {
		return nil, nil, fmt.Errorf("policy: %q is not supported", conf.Policy)
	}

	// every configured policy runs behind the pause switch
	gated := policy.PauseGate{
		Inner:    transferPolicy,
		IsPaused: administration.IsPaused,
	}

	return ledger.New(shape, gated, conf.AllowMintExisting), reference, nil
}

// first-run administrator bootstrap plus configured auction settings
//
// settings are reapplied on every start so the configuration file
// stays the single source for fee and granularity values
func applyBootstrap(log *logger.L, conf *Configuration, contractReference *account.Account) error {

	if "" == conf.Contract.Administrator {
		log.Warn("no administrator configured, administration disabled")
		return nil
	}

	admin, err := account.AccountFromBase58(conf.Contract.Administrator)
	if nil != err {
		return err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	_, err = administration.Administrator(trx)
	if fault.NotInitialised == err {
		log.Infof("bootstrap administrator: %s", admin)
		err = administration.Bootstrap(trx, admin)
	}
	if nil != err {
		trx.Abort()
		return err
	}

	// list the hosted contract for auction settlement
	_, err = permitted.Get(trx, contractReference)
	if nil != err {
		royaltyKind := permitted.RoyaltyNone
		if "native" == conf.Auction.Royalties {
			royaltyKind = permitted.RoyaltyNative
		}
		err = permitted.Add(trx, admin, contractReference, permitted.Entry{
			SwapAllowed: conf.Auction.SwapAllowed,
			RoyaltyKind: royaltyKind,
		})
		if nil != err {
			trx.Abort()
			return err
		}
	}

	if 0 != conf.Auction.Granularity {
		err = auction.SetGranularity(trx, admin, conf.Auction.Granularity)
		if nil != err {
			trx.Abort()
			return err
		}
	}

	if 0 != conf.Auction.FeeRate {
		collector := admin
		if "" != conf.Auction.FeeCollector {
			collector, err = account.AccountFromBase58(conf.Auction.FeeCollector)
			if nil != err {
				trx.Abort()
				return err
			}
		}
		err = auction.SetFees(trx, admin, conf.Auction.FeeRate, collector)
		if nil != err {
			trx.Abort()
			return err
		}
	}

	return trx.Commit()
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokend/account"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// Account - deterministic test account
func Account(seed byte) *account.Account {
	publicKey := make([]byte, 32)
	publicKey[0] = seed
	return &account.Account{
		Test:      true,
		PublicKey: publicKey,
	}
}

var (
	certificateOnce sync.Once
	certificatePEM  []byte
	keyPEM          []byte
)

func generateKeyPair() {
	certificateOnce.Do(func() {
		cert, key, err := certgen.NewTLSCertPair("tokend testing", time.Now().Add(time.Hour), false, nil)
		if nil != err {
			panic(fmt.Sprintf("certificate generation failed: %s", err))
		}
		certificatePEM = cert
		keyPEM = key
	})
}

// Certificate - PEM encoded throwaway certificate
func Certificate() string {
	generateKeyPair()
	return string(certificatePEM)
}

// Key - PEM encoded private key matching Certificate
func Key() string {
	generateKeyPair()
	return string(keyPEM)
}

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

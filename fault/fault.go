// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// IsErrExists - determine if an error is a member of the exists class
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine if an error is a member of the invalid class
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrLength - determine if an error is a member of the length class
func IsErrLength(e error) bool { _, ok := e.(LengthError); return ok }

// IsErrNotFound - determine if an error is a member of the not found class
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine if an error is a member of the process class
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }

// IsErrRecord - determine if an error is a member of the record class
func IsErrRecord(e error) bool { _, ok := e.(RecordError); return ok }

// common errors - keep in alphabetic order
var (
	AdhocOperatorLimit         = LengthError("adhoc operator limit exceeded")
	AlreadyInitialised         = ExistsError("already initialised")
	AuctionNotFound            = NotFoundError("auction not found")
	AuctionNotStarted          = ProcessError("auction not started")
	CannotDecodeAccount        = RecordError("cannot decode account")
	CertificateFileExists      = ExistsError("certificate file already exists")
	FeeRateTooHigh             = InvalidError("fee rate too high")
	InsufficientBalance        = InvalidError("insufficient balance")
	InsufficientFunds          = InvalidError("insufficient funds")
	InvalidAuctionPricing      = InvalidError("invalid auction pricing")
	InvalidAuctionTiming       = InvalidError("invalid auction timing")
	InvalidChain               = InvalidError("invalid chain")
	InvalidCount               = InvalidError("invalid count")
	InvalidGranularity         = InvalidError("invalid granularity")
	InvalidItem                = InvalidError("invalid item")
	InvalidKeyLength           = InvalidError("invalid key length")
	InvalidSignature           = InvalidError("invalid signature")
	KeyFileExists              = ExistsError("key file already exists")
	MissingParameters          = LengthError("missing parameters")
	NoAdminTransfer            = NotFoundError("no admin transfer in progress")
	NotAdministrator           = InvalidError("not administrator")
	NotAvailableInReadOnlyMode = ProcessError("not available in read only mode")
	NotChecksummedAccount      = RecordError("account checksum mismatch")
	NotInitialised             = NotFoundError("not initialised")
	NotOperator                = InvalidError("not operator")
	NotOwner                   = InvalidError("not owner")
	NotProposedAdministrator   = InvalidError("not proposed administrator")
	NotPublicKey               = RecordError("not public key")
	OnlyWhitelisted            = InvalidError("only whitelisted")
	OperatorsUnsupported       = ProcessError("operators unsupported")
	Paused                     = ProcessError("paused")
	RateLimiting               = ProcessError("rate limiting")
	RoyaltiesInvalid           = RecordError("royalties invalid")
	RoyaltiesNotImplemented    = ProcessError("royalties not implemented")
	SecondaryMarketDisabled    = ProcessError("secondary market disabled")
	SingleAssetTokenIdNotZero  = InvalidError("single asset token id not zero")
	SwapNotAllowed             = ProcessError("swap not allowed")
	TokenAlreadyDefined        = ExistsError("token already defined")
	TokenNotPermitted          = NotFoundError("token contract not permitted")
	TokenUndefined             = NotFoundError("token undefined")
	TransactionAlreadyInUse    = ProcessError("transaction already in use")
	TransfersNotSupported      = ProcessError("transfers not supported")
	WrongAmount                = InvalidError("wrong amount")
	WrongNetworkForPublicKey   = RecordError("wrong network for public key")
)

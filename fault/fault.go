// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised     = ExistsError("already initialised")
	ErrConfigurationNotTable  = InvalidError("configuration did not return a table")
	ErrDatabaseIsNotSet       = ProcessError("database is not set")
	ErrDatabaseVersion        = ProcessError("database version is newer than this program")
	ErrDigestTooShort         = InvalidError("hashed key is shorter than its digest")
	ErrDuplicateInstance      = ExistsError("duplicate instance name")
	ErrDuplicateItem          = ExistsError("duplicate storage item name")
	ErrDuplicateModule        = ExistsError("duplicate module name")
	ErrEmptyInstanceName      = InvalidError("instance name is empty")
	ErrEmptyItemName          = InvalidError("storage item name is empty")
	ErrEmptyModuleName        = InvalidError("module name is empty")
	ErrInvalidCount           = InvalidError("invalid count")
	ErrInvalidCursor          = InvalidError("invalid cursor")
	ErrInvalidHasher          = InvalidError("invalid hasher")
	ErrInvalidHexString       = InvalidError("invalid hex string")
	ErrInvalidInstanceNumber  = InvalidError("invalid instance number")
	ErrInvalidLiteral         = InvalidError("invalid literal")
	ErrInvalidStructPointer   = InvalidError("invalid struct pointer")
	ErrKeyCountMismatch       = InvalidError("key count does not match storage item")
	ErrKeyNotRecoverable      = InvalidError("key is not recoverable from an opaque hash")
	ErrMissingMeasure         = InvalidError("leading concat key requires a length measure")
	ErrPrefixMismatch         = InvalidError("key does not start with the storage item prefix")
	ErrReadOnly               = ProcessError("database is read only")
	ErrTooManyKeys            = InvalidError("storage item cannot have more than two keys")
	ErrTrailingData           = InvalidError("trailing data after decoded value")
	ErrTransactionAlreadyOpen = ProcessError("transaction already in use")
	ErrTransactionNotOpen     = ProcessError("transaction not in use")
	ErrTruncated              = InvalidError("truncated data")
	ErrUnknownAlgorithm       = InvalidError("unknown hash algorithm")
	ErrUnknownHasher          = NotFoundError("unknown hasher name")
	ErrUnknownInstance        = NotFoundError("unknown instance")
	ErrUnknownItem            = NotFoundError("unknown storage item")
	ErrUnknownModule          = NotFoundError("unknown module")
	ErrUnknownLiteralType     = NotFoundError("unknown literal type")
	ErrWrongFieldType         = InvalidError("schema field is not a storage handle")
	ErrWrongShape             = InvalidError("storage item has the wrong number of keys")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }

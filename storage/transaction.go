// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/logger"
)

// Transaction - an open batch of writes
//
// while a transaction is open every write, from any handle, is added
// to it; reads see the pending writes, cursors do not
type Transaction interface {
	Commit() error
	Abort()
}

type transaction struct {
	access Access
	log    *logger.L
}

// NewDBTransaction - open a transaction on the database
//
// only one transaction may be open at a time
func NewDBTransaction() (Transaction, error) {
	access, log, err := currentAccess(true)
	if nil != err {
		return nil, err
	}

	err = access.Begin()
	if nil != err {
		return nil, err
	}
	log.Debug("transaction begin")

	return &transaction{
		access: access,
		log:    log,
	}, nil
}

// Commit - write all pending changes
func (t *transaction) Commit() error {
	err := t.access.Commit()
	if nil != err {
		t.log.Errorf("transaction commit error: %s", err)
		return err
	}
	t.log.Debug("transaction commit")
	return nil
}

// Abort - discard all pending changes
func (t *transaction) Abort() {
	t.access.Abort()
	t.log.Debug("transaction abort")
}

// run a write either inside the open transaction or as its own
// immediately committed transaction
func write(f func(Access)) error {
	access, log, err := currentAccess(true)
	if nil != err {
		return err
	}

	err = access.Begin()
	if nil != err {
		// join the transaction already open, its Abort discards this write
		log.Debugf("write joined open transaction: pending: %d bytes", len(access.DumpTx()))
		f(access)
		return nil
	}

	f(access)
	err = access.Commit()
	logger.PanicIfError("storage.write", err)
	log.Tracef("committed write")
	return nil
}

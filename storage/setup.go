// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/modstore/fault"
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// holds the database handle
var poolData struct {
	sync.RWMutex
	log      *logger.L
	db       *leveldb.DB
	batch    *leveldb.Batch
	cache    Cache
	access   Access
	readOnly bool
}

// database access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Initialise - open up the database connection
//
// this must be called before any item is accessed
func Initialise(database string, readOnly bool) error {
	poolData.Lock()
	defer poolData.Unlock()

	if nil != poolData.db {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("storage")

	db, version, err := getDB(database, readOnly)
	if nil != err {
		log.Errorf("open: %q  error: %s", database, err)
		return err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		db.Close()
		return fault.ErrDatabaseVersion
	}

	if 0 == version && !readOnly {

		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			db.Close()
			return err
		}
	}

	log.Infof("opened: %q  version: %d  read only: %t", database, version, readOnly)

	setup(log, db, readOnly)
	return nil
}

// InitialiseMemory - use a fresh in-memory database
//
// contents are lost on Finalise
func InitialiseMemory() error {
	poolData.Lock()
	defer poolData.Unlock()

	if nil != poolData.db {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("storage")

	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return err
	}
	err = putVersion(db, currentDBVersion)
	if nil != err {
		db.Close()
		return err
	}

	log.Info("opened in-memory database")

	setup(log, db, ReadWrite)
	return nil
}

// must hold the write lock
func setup(log *logger.L, db *leveldb.DB, readOnly bool) {
	poolData.log = log
	poolData.db = db
	poolData.batch = new(leveldb.Batch)
	poolData.cache = newCache()
	poolData.access = newDA(db, poolData.batch, poolData.cache)
	poolData.readOnly = readOnly
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	defer poolData.Unlock()

	if nil == poolData.db {
		return
	}

	if poolData.access.InUse() {
		poolData.log.Warn("transaction still open at close, discarding")
		poolData.access.Abort()
	}

	poolData.db.Close()
	poolData.log.Info("closed")
	poolData.log.Flush()

	poolData.db = nil
	poolData.batch = nil
	poolData.cache = nil
	poolData.access = nil
	poolData.log = nil
}

// return the current access, write access is refused for a read
// only database
func currentAccess(write bool) (Access, *logger.L, error) {
	poolData.RLock()
	defer poolData.RUnlock()

	if nil == poolData.db {
		return nil, nil, fault.ErrDatabaseIsNotSet
	}
	if write && poolData.readOnly {
		return nil, nil, fault.ErrReadOnly
	}
	return poolData.access, poolData.log, nil
}

// return:
//   database handle
//   version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}

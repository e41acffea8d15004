// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/modstore/fault"
	"github.com/bitmark-inc/modstore/storage/mocks"
)

const (
	dbName     = "data-access"
	defaultKey = "key"
)

var (
	db           *leveldb.DB
	defaultValue = []byte{'a'}
)

func newMockCache(t *testing.T) (*mocks.MockCache, *gomock.Controller) {
	ctl := gomock.NewController(t)
	return mocks.NewMockCache(ctl), ctl
}

func setupDummyMockCache(t *testing.T) (*mocks.MockCache, *gomock.Controller) {
	mockCache, ctl := newMockCache(t)

	mockCache.EXPECT().Get(gomock.Any()).Return(nil, false, false).AnyTimes()
	mockCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockCache.EXPECT().Clear().AnyTimes()

	return mockCache, ctl
}

func setupTestDataAccess(mockCache *mocks.MockCache) Access {
	return newDA(db, new(leveldb.Batch), mockCache)
}

func removeDir(dirName string) {
	dirPath, _ := filepath.Abs(dirName)
	_ = os.RemoveAll(dirPath)
}

func teardownTestDataAccess() {
	_ = db.Close()
	removeDir(dbName)
}

func TestBeginShouldErrorWhenAlreadyInTransaction(t *testing.T) {
	mc, ctl := setupDummyMockCache(t)
	defer ctl.Finish()
	da := setupTestDataAccess(mc)

	err := da.Begin()
	assert.Equal(t, nil, err, "first time Begin should with not error")

	err = da.Begin()
	assert.Equal(t, fault.ErrTransactionAlreadyOpen, err, "second time Begin should return error")
}

func TestCommitUnlocksInUse(t *testing.T) {
	mc, ctl := setupDummyMockCache(t)
	defer ctl.Finish()
	da := setupTestDataAccess(mc)

	_ = da.Begin()
	_ = da.Commit()

	err := da.Begin()
	assert.Nil(t, err, "did not reset internal inUse")
}

func TestCommitWithoutBegin(t *testing.T) {
	mc, ctl := setupDummyMockCache(t)
	defer ctl.Finish()
	da := setupTestDataAccess(mc)

	err := da.Commit()
	assert.Equal(t, fault.ErrTransactionNotOpen, err, "commit without begin")
}

func TestCommitResetTransaction(t *testing.T) {
	mc, ctl := newMockCache(t)
	defer ctl.Finish()

	mc.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mc.EXPECT().Clear().AnyTimes()
	da := setupTestDataAccess(mc)

	_ = da.Begin()
	da.Put([]byte(defaultKey), defaultValue)
	_ = da.Commit()

	actual := da.DumpTx()
	assert.Equal(t, 0, len(actual), "Commit did not reset transaction")
}

func TestCommitWriteToDB(t *testing.T) {
	mc, ctl := newMockCache(t)
	defer ctl.Finish()

	mc.EXPECT().Get(gomock.Any()).Return(nil, false, false).AnyTimes()
	mc.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mc.EXPECT().Clear().AnyTimes()
	da := setupTestDataAccess(mc)

	_ = da.Begin()
	da.Put([]byte(defaultKey), defaultValue)
	_ = da.Commit()

	actual, err := da.Get([]byte(defaultKey))
	assert.Nil(t, err, "get error")
	assert.Equal(t, defaultValue, actual, "commit not write to db")
}

func TestPutActionCached(t *testing.T) {
	mc, ctl := newMockCache(t)
	defer ctl.Finish()

	mc.EXPECT().Set(dbPut, defaultKey, defaultValue).Times(1)
	da := setupTestDataAccess(mc)

	_ = da.Begin()
	da.Put([]byte(defaultKey), defaultValue)
}

func TestDeleteActionCached(t *testing.T) {
	mc, ctl := newMockCache(t)
	defer ctl.Finish()

	mc.EXPECT().Set(dbPut, "a", []byte{'b'}).Times(1)
	mc.EXPECT().Set(dbDelete, "a", []byte{}).Times(1)
	da := setupTestDataAccess(mc)

	fixture := struct {
		key   []byte
		value []byte
	}{
		[]byte{'a'},
		[]byte{'b'},
	}

	_ = da.Begin()
	da.Put(fixture.key, fixture.value)
	da.Delete(fixture.key)
}

func TestCommitClearsCache(t *testing.T) {
	mc, ctl := newMockCache(t)
	defer ctl.Finish()

	mc.EXPECT().Set(dbPut, defaultKey, defaultValue).Times(1)
	mc.EXPECT().Clear().Times(1)
	da := setupTestDataAccess(mc)

	_ = da.Begin()
	da.Put([]byte(defaultKey), defaultValue)
	_ = da.Commit()
}

func TestGetActionReadsFromCache(t *testing.T) {
	mc, ctl := newMockCache(t)
	defer ctl.Finish()

	mc.EXPECT().Get(defaultKey).Return(defaultValue, false, true).Times(1)
	mc.EXPECT().Set(dbPut, defaultKey, defaultValue).Times(1)
	mc.EXPECT().Clear().Times(0)
	da := setupTestDataAccess(mc)

	_ = da.Begin()
	da.Put([]byte(defaultKey), defaultValue)
	actual, err := da.Get([]byte(defaultKey))

	assert.Nil(t, err, "get error")
	assert.Equal(t, defaultValue, actual, "wrong cached value")
}

func TestGetPendingDeleteHidesDB(t *testing.T) {
	key := "deleted"
	value := []byte{'x'}

	assert.Nil(t, db.Put([]byte(key), value, nil), "direct db put")

	mc, ctl := newMockCache(t)
	defer ctl.Finish()

	mc.EXPECT().Set(dbDelete, key, []byte{}).Times(1)
	mc.EXPECT().Get(key).Return(nil, true, true).Times(2)
	da := setupTestDataAccess(mc)

	_ = da.Begin()
	da.Delete([]byte(key))

	actual, err := da.Get([]byte(key))
	assert.Equal(t, leveldb.ErrNotFound, err, "pending delete must hide committed value")
	assert.Nil(t, actual, "pending delete returned a value")

	has, err := da.Has([]byte(key))
	assert.Nil(t, err, "has error")
	assert.False(t, has, "pending delete must hide committed key")
}

func TestGetActionReadDBIfNotInCache(t *testing.T) {
	key := "random"
	value := []byte{'a', 'b', 'c'}

	mc, ctl := newMockCache(t)
	defer ctl.Finish()

	mc.EXPECT().Get(gomock.Any()).Return(nil, false, false).Times(1)
	mc.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
	mc.EXPECT().Clear().Times(1)
	da := setupTestDataAccess(mc)

	_ = da.Begin()
	da.Put([]byte(key), value)
	_ = da.Commit()
	actual, _ := da.Get([]byte(key))

	assert.Equal(t, value, actual, "db value not set")
}

func TestInUse(t *testing.T) {
	mc, ctl := newMockCache(t)
	defer ctl.Finish()

	da := setupTestDataAccess(mc)

	inUse := da.InUse()
	assert.Equal(t, false, inUse, "inUse default not true")

	_ = da.Begin()
	inUse = da.InUse()
	assert.Equal(t, true, inUse, "inUse not set")
}

func TestAbortResetInUse(t *testing.T) {
	mc, ctl := newMockCache(t)
	defer ctl.Finish()

	mc.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
	mc.EXPECT().Clear().Times(1)
	da := setupTestDataAccess(mc)

	_ = da.Begin()
	da.Put([]byte(defaultKey), defaultValue)
	da.Abort()

	inUse := da.InUse()
	assert.Equal(t, false, inUse, "inUse is not set")
}

func TestAbortResetBatch(t *testing.T) {
	mc, ctl := newMockCache(t)
	defer ctl.Finish()

	mc.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
	mc.EXPECT().Clear().Times(1)
	da := setupTestDataAccess(mc)

	_ = da.Begin()
	da.Put([]byte(defaultKey), defaultValue)
	da.Abort()

	dump := da.DumpTx()
	assert.Equal(t, 0, len(dump), "batch not reset")
}

func TestHasCached(t *testing.T) {
	mc, ctl := newMockCache(t)
	defer ctl.Finish()

	mc.EXPECT().Set(dbPut, defaultKey, defaultValue).Times(1)
	mc.EXPECT().Get(defaultKey).Return(defaultValue, false, true).Times(1)
	da := setupTestDataAccess(mc)

	_ = da.Begin()
	da.Put([]byte(defaultKey), defaultValue)
	has, err := da.Has([]byte(defaultKey))
	assert.Equal(t, true, has, "cannot find cached key")
	assert.Equal(t, nil, err, "has with error")
}

func TestHasNotCached(t *testing.T) {
	mc, ctl := newMockCache(t)
	defer ctl.Finish()

	mc.EXPECT().Get(gomock.Any()).Return(nil, false, false).Times(1)
	mc.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
	mc.EXPECT().Clear().Times(1)
	da := setupTestDataAccess(mc)

	_ = da.Begin()
	da.Put([]byte(defaultKey), defaultValue)
	_ = da.Commit()
	has, _ := da.Has([]byte(defaultKey))
	assert.Equal(t, true, has, "didn't check db")
}

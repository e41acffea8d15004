// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/syndtr/goleveldb/leveldb"
	"golang.org/x/crypto/blake2b"

	"github.com/bitmark-inc/modstore/codec"
	"github.com/bitmark-inc/modstore/fault"
	"github.com/bitmark-inc/modstore/hasher"
	"github.com/bitmark-inc/modstore/storagekey"
)

func mustDescriptor(t *testing.T, module string, instance storagekey.Instance, item string, hashers ...hasher.Hasher) *storagekey.Descriptor {
	d, err := storagekey.NewDescriptor(module, instance, item, hashers...)
	if nil != err {
		t.Fatalf("descriptor error: %s", err)
	}
	return d
}

func TestNotInitialised(t *testing.T) {
	_, _, err := GetRaw([]byte("anything"))
	assert.Equal(t, fault.ErrDatabaseIsNotSet, err, "read before initialise")

	err = PutRaw(make([]byte, storagekey.PrefixLength), []byte{1})
	assert.Equal(t, fault.ErrDatabaseIsNotSet, err, "write before initialise")

	_, err = NewDBTransaction()
	assert.Equal(t, fault.ErrDatabaseIsNotSet, err, "transaction before initialise")
}

func TestInitialiseTwice(t *testing.T) {
	setupMemory(t)
	defer teardownStorage()

	err := InitialiseMemory()
	assert.Equal(t, fault.ErrAlreadyInitialised, err, "second initialise")
}

// a map value stored through a handle is found under the final key
// built by hand from its parts
func TestMapValueUnderRawFinalKey(t *testing.T) {
	setupMemory(t)
	defer teardownStorage()

	d := mustDescriptor(t, "FinalKeysNone", storagekey.DefaultInstance, "Map", hasher.Blake2_64Concat)
	m, err := NewMap(d)
	assert.Nil(t, err, "new map")

	err = m.Put(codec.U32(1), codec.U32(2).Encode())
	assert.Nil(t, err, "put")

	module := hasher.Namespace([]byte("FinalKeysNone"))
	item := hasher.Namespace([]byte("Map"))
	encodedKey := []byte{1, 0, 0, 0}
	h, _ := blake2b.New(8, nil)
	h.Write(encodedKey)

	finalKey := append([]byte{}, module[:]...)
	finalKey = append(finalKey, item[:]...)
	finalKey = h.Sum(finalKey)
	finalKey = append(finalKey, encodedKey...)

	value, found, err := GetRaw(finalKey)
	assert.Nil(t, err, "get raw")
	assert.True(t, found, "raw key not found")
	assert.Equal(t, []byte{2, 0, 0, 0}, value, "wrong raw value")

	n, err := codec.DecodeU32(value)
	assert.Nil(t, err, "decode")
	assert.Equal(t, uint32(2), n, "wrong decoded value")
}

func TestValueHandle(t *testing.T) {
	setupMemory(t)
	defer teardownStorage()

	v, err := NewValue(mustDescriptor(t, "FinalKeysNone", storagekey.DefaultInstance, "Value"))
	assert.Nil(t, err, "new value")

	_, found, err := v.Get()
	assert.Nil(t, err, "get")
	assert.False(t, found, "unset value found")

	assert.Nil(t, v.Put(codec.U32(7).Encode()), "put")
	exists, _ := v.Exists()
	assert.True(t, exists, "value not set")

	value, found, _ := v.Get()
	assert.True(t, found, "value not found")
	assert.Equal(t, codec.U32(7).Encode(), value, "wrong value")

	assert.Nil(t, v.Remove(), "remove")
	exists, _ = v.Exists()
	assert.False(t, exists, "value not removed")
}

func TestEmptyValueIsStored(t *testing.T) {
	setupMemory(t)
	defer teardownStorage()

	v, _ := NewValue(mustDescriptor(t, "FinalKeysNone", storagekey.DefaultInstance, "Unit"))
	assert.Nil(t, v.Put(codec.Unit{}.Encode()), "put unit")

	value, found, err := v.Get()
	assert.Nil(t, err, "get")
	assert.True(t, found, "empty value must be distinguishable from absent")
	assert.Equal(t, 0, len(value), "unit must be empty")
}

func TestWrongShape(t *testing.T) {
	value := mustDescriptor(t, "M", storagekey.DefaultInstance, "V")
	single := mustDescriptor(t, "M", storagekey.DefaultInstance, "S", hasher.Twox64Concat)
	double := mustDescriptor(t, "M", storagekey.DefaultInstance, "D", hasher.Twox64Concat, hasher.Twox64Concat)

	_, err := NewValue(single)
	assert.Equal(t, fault.ErrWrongShape, err, "value from map")
	_, err = NewMap(double)
	assert.Equal(t, fault.ErrWrongShape, err, "map from double map")
	_, err = NewDoubleMap(value)
	assert.Equal(t, fault.ErrWrongShape, err, "double map from value")
}

func TestItemKeyCountMismatch(t *testing.T) {
	setupMemory(t)
	defer teardownStorage()

	it := NewItem(mustDescriptor(t, "M", storagekey.DefaultInstance, "D", hasher.Twox64Concat, hasher.Twox64Concat))

	err := it.Put([]byte{1}, codec.U8(1))
	assert.Equal(t, fault.ErrKeyCountMismatch, err, "one key for double map")

	_, _, err = it.Get(codec.U8(1), codec.U8(2), codec.U8(3))
	assert.Equal(t, fault.ErrKeyCountMismatch, err, "three keys for double map")

	_, err = it.NewFetchCursor(codec.U8(1), codec.U8(2), codec.U8(3))
	assert.Equal(t, fault.ErrKeyCountMismatch, err, "cursor with too many keys")
}

func TestInstancesAreDisjoint(t *testing.T) {
	setupMemory(t)
	defer teardownStorage()

	first, _ := NewMap(mustDescriptor(t, "FinalKeysSome", storagekey.DefaultInstance, "Map", hasher.Blake2_64Concat))
	second, _ := NewMap(mustDescriptor(t, "FinalKeysSome", storagekey.Instance("Instance2"), "Map", hasher.Blake2_64Concat))

	assert.Nil(t, first.Put(codec.U32(1), []byte{1}), "put first")
	assert.Nil(t, second.Put(codec.U32(1), []byte{2}), "put second")

	v1, _, _ := first.Get(codec.U32(1))
	v2, _, _ := second.Get(codec.U32(1))
	assert.Equal(t, []byte{1}, v1, "default instance value")
	assert.Equal(t, []byte{2}, v2, "second instance value")

	n, err := second.RemoveAll()
	assert.Nil(t, err, "remove all")
	assert.Equal(t, 1, n, "removed count")

	has, _ := first.Has(codec.U32(1))
	assert.True(t, has, "other instance must be untouched")
}

func TestDoubleMapPrefix(t *testing.T) {
	setupMemory(t)
	defer teardownStorage()

	dm, _ := NewDoubleMap(mustDescriptor(t, "FinalKeysNone", storagekey.DefaultInstance, "DoubleMap", hasher.Blake2_64Concat, hasher.Twox32Concat))

	for k1 := uint32(1); k1 <= 3; k1 += 1 {
		for k2 := uint64(0); k2 < 4; k2 += 1 {
			assert.Nil(t, dm.Put(codec.U32(k1), codec.U64(k2), codec.U64(10*uint64(k1)+k2).Encode()), "put")
		}
	}

	elements, err := dm.NewPrefixCursor(codec.U32(2)).Fetch(100)
	assert.Nil(t, err, "fetch")
	assert.Equal(t, 4, len(elements), "entries under first key")

	seen := make(map[uint64]bool)
	for _, e := range elements {
		keys, err := dm.Item().ElementKeys(e, codec.FixedWidth(4))
		assert.Nil(t, err, "element keys")
		assert.Equal(t, codec.U32(2).Encode(), keys[0], "first key")
		k2, _ := codec.DecodeU64(keys[1])
		v, _ := codec.DecodeU64(e.Value)
		assert.Equal(t, 20+k2, v, "value of entry")
		seen[k2] = true
	}
	assert.Equal(t, 4, len(seen), "distinct second keys")

	n, err := dm.RemovePrefix(codec.U32(2))
	assert.Nil(t, err, "remove prefix")
	assert.Equal(t, 4, n, "removed count")

	has, _ := dm.Has(codec.U32(2), codec.U64(0))
	assert.False(t, has, "entry not removed")
	has, _ = dm.Has(codec.U32(3), codec.U64(0))
	assert.True(t, has, "sibling removed")

	n, _ = dm.RemoveAll()
	assert.Equal(t, 8, n, "remove all count")
}

func TestCursorPaging(t *testing.T) {
	setupMemory(t)
	defer teardownStorage()

	m, _ := NewMap(mustDescriptor(t, "Paging", storagekey.DefaultInstance, "Entries", hasher.IdentityConcat))
	for i := 0; i < 10; i += 1 {
		assert.Nil(t, m.Put(codec.U8(i), []byte{byte(i)}), "put")
	}

	cursor := m.NewFetchCursor()
	all := make([]Element, 0, 10)
	for {
		elements, err := cursor.Fetch(3)
		assert.Nil(t, err, "fetch")
		if 0 == len(elements) {
			break
		}
		assert.True(t, len(elements) <= 3, "page too large")
		all = append(all, elements...)
	}

	assert.Equal(t, 10, len(all), "total entries")
	for i, e := range all {
		assert.Equal(t, []byte{byte(i)}, e.Key, "identity keys are in order")
		assert.Equal(t, []byte{byte(i)}, e.Value, "value")
	}

	_, err := cursor.Fetch(0)
	assert.Equal(t, fault.ErrInvalidCount, err, "zero count")

	var nilCursor *FetchCursor
	_, err = nilCursor.Fetch(1)
	assert.Equal(t, fault.ErrInvalidCursor, err, "nil cursor")
}

func TestCursorSeekAndMap(t *testing.T) {
	setupMemory(t)
	defer teardownStorage()

	m, _ := NewMap(mustDescriptor(t, "Paging", storagekey.DefaultInstance, "Entries", hasher.IdentityConcat))
	for i := 0; i < 5; i += 1 {
		assert.Nil(t, m.Put(codec.U8(i), []byte{byte(i)}), "put")
	}

	elements, err := m.NewFetchCursor().Seek([]byte{3}).Fetch(10)
	assert.Nil(t, err, "fetch")
	assert.Equal(t, 2, len(elements), "entries after seek")

	sum := 0
	err = m.NewFetchCursor().Map(func(key []byte, value []byte) error {
		sum += int(value[0])
		return nil
	})
	assert.Nil(t, err, "map")
	assert.Equal(t, 0+1+2+3+4, sum, "map over all values")

	err = m.NewFetchCursor().Map(func(key []byte, value []byte) error {
		return fault.ErrInvalidCount
	})
	assert.Equal(t, fault.ErrInvalidCount, err, "map error returned")
}

func TestRawCursorCoversModule(t *testing.T) {
	setupMemory(t)
	defer teardownStorage()

	a, _ := NewValue(mustDescriptor(t, "Dump", storagekey.DefaultInstance, "A"))
	b, _ := NewValue(mustDescriptor(t, "Dump", storagekey.DefaultInstance, "B"))
	other, _ := NewValue(mustDescriptor(t, "Other", storagekey.DefaultInstance, "A"))
	_ = a.Put([]byte{1})
	_ = b.Put([]byte{2})
	_ = other.Put([]byte{3})

	modulePrefix, _ := storagekey.ModulePrefix("Dump", storagekey.DefaultInstance)
	elements, err := NewRawCursor(modulePrefix[:]).Fetch(10)
	assert.Nil(t, err, "fetch")
	assert.Equal(t, 2, len(elements), "items of module")
	for _, e := range elements {
		assert.Equal(t, storagekey.PrefixLength, len(e.Key), "raw keys are complete")
	}

	_, err = RemoveRawPrefix(nil)
	assert.Equal(t, fault.ErrPrefixMismatch, err, "empty prefix refused")
}

func TestTransaction(t *testing.T) {
	setupMemory(t)
	defer teardownStorage()

	m, _ := NewMap(mustDescriptor(t, "Trx", storagekey.DefaultInstance, "Map", hasher.Twox64Concat))

	trx, err := NewDBTransaction()
	assert.Nil(t, err, "begin")

	_, err = NewDBTransaction()
	assert.Equal(t, fault.ErrTransactionAlreadyOpen, err, "second transaction")

	assert.Nil(t, m.Put(codec.U32(1), []byte{1}), "put in transaction")
	value, found, _ := m.Get(codec.U32(1))
	assert.True(t, found, "pending write not visible")
	assert.Equal(t, []byte{1}, value, "pending value")

	elements, _ := m.NewFetchCursor().Fetch(10)
	assert.Equal(t, 0, len(elements), "cursor sees only committed data")

	trx.Abort()
	_, found, _ = m.Get(codec.U32(1))
	assert.False(t, found, "aborted write visible")

	trx, err = NewDBTransaction()
	assert.Nil(t, err, "begin after abort")
	assert.Nil(t, m.Put(codec.U32(2), []byte{2}), "put")
	assert.Nil(t, m.Remove(codec.U32(2)), "remove pending")
	assert.Nil(t, m.Put(codec.U32(3), []byte{3}), "put")
	assert.Nil(t, trx.Commit(), "commit")

	has, _ := m.Has(codec.U32(2))
	assert.False(t, has, "removed entry committed")
	has, _ = m.Has(codec.U32(3))
	assert.True(t, has, "entry not committed")
}

func TestWriteFromOtherGoroutineJoinsTransaction(t *testing.T) {
	setupMemory(t)
	defer teardownStorage()

	v, _ := NewValue(mustDescriptor(t, "Trx", storagekey.DefaultInstance, "Shared"))

	trx, err := NewDBTransaction()
	assert.Nil(t, err, "begin")

	done := make(chan error)
	go func() {
		done <- v.Put([]byte{7})
	}()
	assert.Nil(t, <-done, "joined write must not fail")

	exists, _ := v.Exists()
	assert.True(t, exists, "joined write must be pending")

	trx.Abort()
	exists, _ = v.Exists()
	assert.False(t, exists, "abort discards the joined write")

	assert.Nil(t, v.Put([]byte{8}), "write without a transaction")
	value, found, _ := v.Get()
	assert.True(t, found, "write must commit on its own")
	assert.Equal(t, []byte{8}, value, "committed value")
}

func TestFileDatabase(t *testing.T) {
	setupFile(t)

	v, _ := NewValue(mustDescriptor(t, "File", storagekey.DefaultInstance, "Value"))
	assert.Nil(t, v.Put([]byte{42}), "put")
	Finalise()

	err := Initialise(databaseFileName, ReadOnly)
	assert.Nil(t, err, "reopen read only")

	value, found, err := v.Get()
	assert.Nil(t, err, "get")
	assert.True(t, found, "value lost on reopen")
	assert.Equal(t, []byte{42}, value, "value after reopen")

	err = v.Put([]byte{43})
	assert.Equal(t, fault.ErrReadOnly, err, "write to read only database")

	_, err = NewDBTransaction()
	assert.Equal(t, fault.ErrReadOnly, err, "transaction on read only database")

	teardownStorage()
}

func TestRefuseNewerDatabase(t *testing.T) {
	removeDir(databaseFileName)
	defer removeDir(databaseFileName)

	ldb, err := leveldb.OpenFile(databaseFileName, nil)
	assert.Nil(t, err, "create database")
	assert.Nil(t, putVersion(ldb, currentDBVersion+1), "put version")
	ldb.Close()

	err = Initialise(databaseFileName, ReadWrite)
	assert.Equal(t, fault.ErrDatabaseVersion, err, "newer database accepted")
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/modstore/codec"
	"github.com/bitmark-inc/modstore/fault"
	"github.com/bitmark-inc/modstore/storagekey"
)

// Item - access to one storage item of any shape
//
// keys are passed in declaration order and must match the item's
// number of hashers
type Item struct {
	descriptor *storagekey.Descriptor
}

// NewItem - handle for the item a descriptor names
func NewItem(descriptor *storagekey.Descriptor) *Item {
	return &Item{
		descriptor: descriptor,
	}
}

// Descriptor - the item's static metadata
func (it *Item) Descriptor() *storagekey.Descriptor {
	return it.descriptor
}

// FinalKey - the backend key of one entry
func (it *Item) FinalKey(keys ...codec.Encodable) ([]byte, error) {
	return storagekey.ComposeKeys(it.descriptor, keys...)
}

// Get - value of an entry, found is false if absent
func (it *Item) Get(keys ...codec.Encodable) ([]byte, bool, error) {
	key, err := it.FinalKey(keys...)
	if nil != err {
		return nil, false, err
	}
	return GetRaw(key)
}

// Has - check if an entry is present
func (it *Item) Has(keys ...codec.Encodable) (bool, error) {
	key, err := it.FinalKey(keys...)
	if nil != err {
		return false, err
	}
	return HasRaw(key)
}

// Put - store the value of an entry
func (it *Item) Put(value []byte, keys ...codec.Encodable) error {
	key, err := it.FinalKey(keys...)
	if nil != err {
		return err
	}
	return PutRaw(key, value)
}

// Remove - delete an entry, absent entries are ignored
func (it *Item) Remove(keys ...codec.Encodable) error {
	key, err := it.FinalKey(keys...)
	if nil != err {
		return err
	}
	return RemoveRaw(key)
}

// NewFetchCursor - cursor over the entries sharing leading keys
//
// with no leading keys this covers the whole item
func (it *Item) NewFetchCursor(leadingKeys ...codec.Encodable) (*FetchCursor, error) {
	prefix, err := it.partialKey(leadingKeys)
	if nil != err {
		return nil, err
	}
	return newFetchCursor(it.descriptor.Prefix().Bytes(), prefix), nil
}

// RemovePrefix - delete all committed entries sharing leading keys
//
// returns the number of entries removed
func (it *Item) RemovePrefix(leadingKeys ...codec.Encodable) (int, error) {
	prefix, err := it.partialKey(leadingKeys)
	if nil != err {
		return 0, err
	}
	return RemoveRawPrefix(prefix)
}

// ElementKeys - recover the encoded keys of an element from an item cursor
//
// opaque keys come back as nil, see storagekey.Decompose for measures
func (it *Item) ElementKeys(e Element, measures ...codec.Measure) ([][]byte, error) {
	key := make([]byte, storagekey.PrefixLength+len(e.Key))
	prefix := it.descriptor.Prefix()
	copy(key, prefix[:])
	copy(key[storagekey.PrefixLength:], e.Key)
	return storagekey.Decompose(it.descriptor, key, measures...)
}

func (it *Item) partialKey(leadingKeys []codec.Encodable) ([]byte, error) {
	encoded := make([][]byte, len(leadingKeys))
	for i, k := range leadingKeys {
		encoded[i] = k.Encode()
	}
	return storagekey.ComposePartial(it.descriptor, encoded...)
}

// GetRaw - value stored under a final key
func GetRaw(key []byte) ([]byte, bool, error) {
	access, _, err := currentAccess(false)
	if nil != err {
		return nil, false, err
	}

	value, err := access.Get(key)
	if leveldb.ErrNotFound == err {
		return nil, false, nil
	}
	logger.PanicIfError("storage.GetRaw", err)

	if nil == value {
		value = []byte{}
	}
	return value, true, nil
}

// HasRaw - check if a final key is present
func HasRaw(key []byte) (bool, error) {
	access, _, err := currentAccess(false)
	if nil != err {
		return false, err
	}

	found, err := access.Has(key)
	logger.PanicIfError("storage.HasRaw", err)
	return found, nil
}

// PutRaw - store a value under a final key
func PutRaw(key []byte, value []byte) error {
	if len(key) < storagekey.PrefixLength {
		return fault.ErrPrefixMismatch
	}
	return write(func(access Access) {
		access.Put(key, value)
	})
}

// RemoveRaw - delete the value under a final key
func RemoveRaw(key []byte) error {
	if len(key) < storagekey.PrefixLength {
		return fault.ErrPrefixMismatch
	}
	return write(func(access Access) {
		access.Delete(key)
	})
}

// RemoveRawPrefix - delete all committed keys starting with prefix
//
// an empty prefix is refused so that the version record survives
func RemoveRawPrefix(prefix []byte) (int, error) {
	if 0 == len(prefix) {
		return 0, fault.ErrPrefixMismatch
	}

	keys := make([][]byte, 0)
	err := NewRawCursor(prefix).Map(func(key []byte, value []byte) error {
		keys = append(keys, key)
		return nil
	})
	if nil != err {
		return 0, err
	}
	if 0 == len(keys) {
		return 0, nil
	}

	err = write(func(access Access) {
		for _, k := range keys {
			access.Delete(k)
		}
	})
	if nil != err {
		return 0, err
	}
	return len(keys), nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"

	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/modstore/fault"
)

// Element - a key/value pair
//
// for item cursors the key has the item's final prefix removed
type Element struct {
	Key   []byte
	Value []byte
}

// FetchCursor - cursor structure
type FetchCursor struct {
	strip    []byte
	base     []byte
	maxRange util.Range
}

func newFetchCursor(strip []byte, prefix []byte) *FetchCursor {
	return &FetchCursor{
		strip:    strip,
		base:     prefix,
		maxRange: *util.BytesPrefix(prefix),
	}
}

// NewRawCursor - cursor over all committed keys starting with prefix
//
// element keys are complete final keys
func NewRawCursor(prefix []byte) *FetchCursor {
	return newFetchCursor(nil, prefix)
}

// Seek - move cursor to specific key position
//
// the key is relative to the stripped prefix; positions before the
// start of the cursor's range are clamped to it
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	start := make([]byte, len(cursor.strip)+len(key))
	copy(start, cursor.strip)
	copy(start[len(cursor.strip):], key)

	if bytes.Compare(start, cursor.base) < 0 {
		start = cursor.base
	}
	cursor.maxRange.Start = start
	return cursor
}

// Fetch - return some elements starting from key
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.ErrInvalidCursor
	}
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	access, _, err := currentAccess(false)
	if nil != err {
		return nil, err
	}

	iter := access.Iterator(&cursor.maxRange)

	results := make([]Element, 0, count)
	n := 0
iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		e := cursor.element(iter.Key(), iter.Value())
		results = append(results, e)
		n += 1
		if n >= count {
			break iterating
		}
	}
	iter.Release()
	err = iter.Error()

	// restart at the smallest key after the last one returned
	if n > 0 {
		last := results[n-1].Key
		start := make([]byte, len(cursor.strip)+len(last)+1)
		copy(start, cursor.strip)
		copy(start[len(cursor.strip):], last)
		cursor.maxRange.Start = start
	}
	return results, err
}

// Map - run a function on all elements in the range
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.ErrInvalidCursor
	}

	access, _, err := currentAccess(false)
	if nil != err {
		return err
	}

	iter := access.Iterator(&cursor.maxRange)

iterating:
	for iter.Next() {
		e := cursor.element(iter.Key(), iter.Value())
		err = f(e.Key, e.Value)
		if nil != err {
			break iterating
		}
	}
	iter.Release()
	if nil == err {
		err = iter.Error()
	}
	return err
}

func (cursor *FetchCursor) element(key []byte, value []byte) Element {
	dataKey := make([]byte, len(key)-len(cursor.strip)) // strip the prefix
	copy(dataKey, key[len(cursor.strip):])              // ...

	dataValue := make([]byte, len(value))
	copy(dataValue, value)

	return Element{
		Key:   dataKey,
		Value: dataValue,
	}
}

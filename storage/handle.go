// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/modstore/codec"
	"github.com/bitmark-inc/modstore/fault"
	"github.com/bitmark-inc/modstore/storagekey"
)

// Value - an item holding a single value
type Value struct {
	item *Item
}

// Map - an item keyed by one key
type Map struct {
	item *Item
}

// DoubleMap - an item keyed by two keys
type DoubleMap struct {
	item *Item
}

// NewValue - value handle, the descriptor must have no hashers
func NewValue(descriptor *storagekey.Descriptor) (*Value, error) {
	if storagekey.Value != descriptor.Shape() {
		return nil, fault.ErrWrongShape
	}
	return &Value{item: NewItem(descriptor)}, nil
}

// NewMap - map handle, the descriptor must have one hasher
func NewMap(descriptor *storagekey.Descriptor) (*Map, error) {
	if storagekey.Map != descriptor.Shape() {
		return nil, fault.ErrWrongShape
	}
	return &Map{item: NewItem(descriptor)}, nil
}

// NewDoubleMap - double map handle, the descriptor must have two hashers
func NewDoubleMap(descriptor *storagekey.Descriptor) (*DoubleMap, error) {
	if storagekey.DoubleMap != descriptor.Shape() {
		return nil, fault.ErrWrongShape
	}
	return &DoubleMap{item: NewItem(descriptor)}, nil
}

// Item - the underlying generic handle
func (v *Value) Item() *Item { return v.item }

// Get - the stored value, found is false if never set
func (v *Value) Get() ([]byte, bool, error) {
	return v.item.Get()
}

// Put - set the value
func (v *Value) Put(value []byte) error {
	return v.item.Put(value)
}

// Remove - clear the value
func (v *Value) Remove() error {
	return v.item.Remove()
}

// Exists - check if the value is set
func (v *Value) Exists() (bool, error) {
	return v.item.Has()
}

// Item - the underlying generic handle
func (m *Map) Item() *Item { return m.item }

func (m *Map) Get(key codec.Encodable) ([]byte, bool, error) {
	return m.item.Get(key)
}

func (m *Map) Put(key codec.Encodable, value []byte) error {
	return m.item.Put(value, key)
}

func (m *Map) Remove(key codec.Encodable) error {
	return m.item.Remove(key)
}

func (m *Map) Has(key codec.Encodable) (bool, error) {
	return m.item.Has(key)
}

// NewFetchCursor - cursor over all entries, keys are the hashed key fragments
func (m *Map) NewFetchCursor() *FetchCursor {
	c, _ := m.item.NewFetchCursor()
	return c
}

// RemoveAll - delete every committed entry
func (m *Map) RemoveAll() (int, error) {
	return m.item.RemovePrefix()
}

// Item - the underlying generic handle
func (d *DoubleMap) Item() *Item { return d.item }

func (d *DoubleMap) Get(key1 codec.Encodable, key2 codec.Encodable) ([]byte, bool, error) {
	return d.item.Get(key1, key2)
}

func (d *DoubleMap) Put(key1 codec.Encodable, key2 codec.Encodable, value []byte) error {
	return d.item.Put(value, key1, key2)
}

func (d *DoubleMap) Remove(key1 codec.Encodable, key2 codec.Encodable) error {
	return d.item.Remove(key1, key2)
}

func (d *DoubleMap) Has(key1 codec.Encodable, key2 codec.Encodable) (bool, error) {
	return d.item.Has(key1, key2)
}

// NewFetchCursor - cursor over all entries
func (d *DoubleMap) NewFetchCursor() *FetchCursor {
	c, _ := d.item.NewFetchCursor()
	return c
}

// NewPrefixCursor - cursor over the entries whose first key is key1
func (d *DoubleMap) NewPrefixCursor(key1 codec.Encodable) *FetchCursor {
	c, _ := d.item.NewFetchCursor(key1)
	return c
}

// RemovePrefix - delete the committed entries whose first key is key1
func (d *DoubleMap) RemovePrefix(key1 codec.Encodable) (int, error) {
	return d.item.RemovePrefix(key1)
}

// RemoveAll - delete every committed entry
func (d *DoubleMap) RemoveAll() (int, error) {
	return d.item.RemovePrefix()
}

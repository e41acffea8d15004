// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storagekey

import (
	"fmt"

	"github.com/bitmark-inc/modstore/fault"
	"github.com/bitmark-inc/modstore/hasher"
)

// Shape - number of keys addressing a storage item
type Shape int

// storage item shapes
const (
	Value     Shape = 0
	Map       Shape = 1
	DoubleMap Shape = 2
)

func (s Shape) String() string {
	switch s {
	case Value:
		return "value"
	case Map:
		return "map"
	case DoubleMap:
		return "double_map"
	default:
		return "unknown"
	}
}

// Descriptor - static metadata of one storage item of one module instance
//
// create with NewDescriptor, read only afterwards
type Descriptor struct {
	module   string
	instance Instance
	item     string
	prefix   Prefix
	hashers  []hasher.Hasher
}

// NewDescriptor - validate names and hashers and compute the final prefix
func NewDescriptor(module string, instance Instance, item string, hashers ...hasher.Hasher) (*Descriptor, error) {
	if len(hashers) > int(DoubleMap) {
		return nil, fault.ErrTooManyKeys
	}
	for _, h := range hashers {
		if !h.Valid() {
			return nil, fault.ErrInvalidHasher
		}
	}

	prefix, err := FinalPrefix(module, instance, item)
	if nil != err {
		return nil, err
	}

	d := &Descriptor{
		module:   module,
		instance: instance,
		item:     item,
		prefix:   prefix,
		hashers:  make([]hasher.Hasher, len(hashers)),
	}
	copy(d.hashers, hashers)
	return d, nil
}

// Module - the module name
func (d *Descriptor) Module() string {
	return d.module
}

// Instance - the module instance
func (d *Descriptor) Instance() Instance {
	return d.instance
}

// Item - the storage item name
func (d *Descriptor) Item() string {
	return d.item
}

// Prefix - the final prefix, returned by value
func (d *Descriptor) Prefix() Prefix {
	return d.prefix
}

// Hashers - a copy of the hashers, one per key in order
func (d *Descriptor) Hashers() []hasher.Hasher {
	hashers := make([]hasher.Hasher, len(d.hashers))
	copy(hashers, d.hashers)
	return hashers
}

// Shape - value, map or double map
func (d *Descriptor) Shape() Shape {
	return Shape(len(d.hashers))
}

func (d *Descriptor) String() string {
	if d.instance.IsDefault() {
		return fmt.Sprintf("%s.%s", d.module, d.item)
	}
	return fmt.Sprintf("%s[%s].%s", d.module, d.instance, d.item)
}

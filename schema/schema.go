// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package schema - declared modules and their storage items
//
// a declaration is turned once into a table of descriptors, one for
// every storage item of every instance of every module; the table
// is read only afterwards and may be shared freely
package schema

import (
	"github.com/bitmark-inc/modstore/fault"
	"github.com/bitmark-inc/modstore/hasher"
	"github.com/bitmark-inc/modstore/storagekey"
)

// Item - one declared storage item
//
// no hashers declares a value, one a map and two a double map; the
// choice of hasher width is made here per item, fast twox hashers only
// for keys that are not attacker controlled
type Item struct {
	Name    string   `gluamapper:"name" json:"name"`
	Hashers []string `gluamapper:"hashers" json:"hashers"`
}

// Module - one declared module
//
// the default instance always exists, Instances lists any extra ones
type Module struct {
	Name      string   `gluamapper:"name" json:"name"`
	Instances []string `gluamapper:"instances" json:"instances"`
	Items     []Item   `gluamapper:"items" json:"items"`
}

type entryKey struct {
	module   string
	instance storagekey.Instance
	item     string
}

// Table - descriptors for all declared items
type Table struct {
	descriptors []*storagekey.Descriptor
	index       map[entryKey]*storagekey.Descriptor
	instances   map[string][]storagekey.Instance
}

// Build - validate a declaration and compute all descriptors
func Build(modules []Module) (*Table, error) {
	t := &Table{
		descriptors: make([]*storagekey.Descriptor, 0),
		index:       make(map[entryKey]*storagekey.Descriptor),
		instances:   make(map[string][]storagekey.Instance),
	}

	for _, m := range modules {
		if "" == m.Name {
			return nil, fault.ErrEmptyModuleName
		}
		if _, ok := t.instances[m.Name]; ok {
			return nil, fault.ErrDuplicateModule
		}

		instances, err := moduleInstances(m)
		if nil != err {
			return nil, err
		}

		items, err := moduleItems(m)
		if nil != err {
			return nil, err
		}

		for _, instance := range instances {
			for _, item := range items {
				d, err := storagekey.NewDescriptor(m.Name, instance, item.name, item.hashers...)
				if nil != err {
					return nil, err
				}
				t.descriptors = append(t.descriptors, d)
				t.index[entryKey{m.Name, instance, item.name}] = d
			}
		}
		t.instances[m.Name] = instances
	}
	return t, nil
}

func moduleInstances(m Module) ([]storagekey.Instance, error) {
	instances := []storagekey.Instance{storagekey.DefaultInstance}
	seen := map[string]struct{}{}
	for _, name := range m.Instances {
		instance, err := storagekey.NamedInstance(name)
		if nil != err {
			return nil, err
		}
		if _, ok := seen[name]; ok {
			return nil, fault.ErrDuplicateInstance
		}
		seen[name] = struct{}{}
		instances = append(instances, instance)
	}
	return instances, nil
}

type parsedItem struct {
	name    string
	hashers []hasher.Hasher
}

func moduleItems(m Module) ([]parsedItem, error) {
	items := make([]parsedItem, 0, len(m.Items))
	seen := map[string]struct{}{}
	for _, item := range m.Items {
		if "" == item.Name {
			return nil, fault.ErrEmptyItemName
		}
		if _, ok := seen[item.Name]; ok {
			return nil, fault.ErrDuplicateItem
		}
		seen[item.Name] = struct{}{}

		if len(item.Hashers) > int(storagekey.DoubleMap) {
			return nil, fault.ErrTooManyKeys
		}
		hashers, err := hasher.ParseList(item.Hashers)
		if nil != err {
			return nil, err
		}
		items = append(items, parsedItem{name: item.Name, hashers: hashers})
	}
	return items, nil
}

// Lookup - the descriptor of one item of one module instance
func (t *Table) Lookup(module string, instance storagekey.Instance, item string) (*storagekey.Descriptor, error) {
	instances, ok := t.instances[module]
	if !ok {
		return nil, fault.ErrUnknownModule
	}

	found := false
	for _, i := range instances {
		if i == instance {
			found = true
			break
		}
	}
	if !found {
		return nil, fault.ErrUnknownInstance
	}

	d, ok := t.index[entryKey{module, instance, item}]
	if !ok {
		return nil, fault.ErrUnknownItem
	}
	return d, nil
}

// Descriptors - all descriptors in declaration order
func (t *Table) Descriptors() []*storagekey.Descriptor {
	result := make([]*storagekey.Descriptor, len(t.descriptors))
	copy(result, t.descriptors)
	return result
}

// Instances - the instances of a module, default first
func (t *Table) Instances(module string) ([]storagekey.Instance, error) {
	instances, ok := t.instances[module]
	if !ok {
		return nil, fault.ErrUnknownModule
	}
	result := make([]storagekey.Instance, len(instances))
	copy(result, instances)
	return result, nil
}

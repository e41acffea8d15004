// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/modstore/codec"
	"github.com/bitmark-inc/modstore/fault"
	"github.com/bitmark-inc/modstore/storage"
	"github.com/bitmark-inc/modstore/storagekey"
)

type dumpEntry struct {
	Key     string   `json:"key"`
	Keys    []string `json:"keys,omitempty"`
	Value   string   `json:"value"`
	Decoded string   `json:"decoded,omitempty"`
}

// dump a whole module instance when no item is given, otherwise the
// entries of one item, optionally restricted by leading keys
func runDump(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	count := c.Int("count")
	if count <= 0 {
		return fault.ErrInvalidCount
	}

	var cursor *storage.FetchCursor
	var item *storage.Item
	keyTypes := c.StringSlice("key-type")

	if "" == c.String("item") {
		module := c.String("module")
		if "" == module {
			return ErrMissingModule
		}
		instance, err := parseInstance(c.String("instance"))
		if nil != err {
			return err
		}
		prefix, err := storagekey.ModulePrefix(module, instance)
		if nil != err {
			return err
		}
		cursor = storage.NewRawCursor(prefix[:])

	} else {
		d, err := getDescriptor(c, m)
		if nil != err {
			return err
		}
		leading, err := getKeys(c)
		if nil != err {
			return err
		}
		item = storage.NewItem(d)
		cursor, err = item.NewFetchCursor(leading...)
		if nil != err {
			return err
		}
	}

	err := openStorage(m, storage.ReadOnly)
	if nil != err {
		return err
	}

	elements, err := cursor.Fetch(count)
	if nil != err {
		return err
	}

	valueType := c.String("type")
	entries := make([]dumpEntry, 0, len(elements))
	for _, e := range elements {
		entry := dumpEntry{
			Key:   m.format(e.Key),
			Value: m.format(e.Value),
		}

		if nil != item && 0 != len(keyTypes) {
			entry.Keys, err = recoverKeys(item, e, keyTypes)
			if nil != err {
				return err
			}
		}
		if "" != valueType {
			entry.Decoded, err = codec.FormatLiteral(valueType, e.Value)
			if nil != err {
				return err
			}
		}
		entries = append(entries, entry)
	}

	if m.verbose {
		fmt.Fprintf(m.e, "entries: %d\n", len(entries))
	}
	return printJson(m.w, entries)
}

// render the recoverable keys of an element as literals; opaque keys
// are shown as "-"
func recoverKeys(item *storage.Item, e storage.Element, keyTypes []string) ([]string, error) {
	measures := make([]codec.Measure, len(keyTypes))
	for i, t := range keyTypes {
		measure, err := codec.MeasureOf(t)
		if nil != err {
			return nil, err
		}
		measures[i] = measure
	}

	keys, err := item.ElementKeys(e, measures...)
	if nil != err {
		return nil, err
	}

	result := make([]string, len(keys))
	for i, k := range keys {
		if nil == k || i >= len(keyTypes) {
			result[i] = "-"
			continue
		}
		result[i], err = codec.FormatLiteral(keyTypes[i], k)
		if nil != err {
			return nil, err
		}
	}
	return result, nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package genesis - initial storage contents
//
// each entry names a declared storage item, its keys and its value as
// literals, e.g. keys = { "u32:1" }, value = "u32:2"
package genesis

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/modstore/codec"
	"github.com/bitmark-inc/modstore/schema"
	"github.com/bitmark-inc/modstore/storage"
	"github.com/bitmark-inc/modstore/storagekey"
)

// Entry - one initial value
type Entry struct {
	Module   string   `gluamapper:"module" json:"module"`
	Instance string   `gluamapper:"instance" json:"instance"`
	Item     string   `gluamapper:"item" json:"item"`
	Keys     []string `gluamapper:"keys" json:"keys"`
	Value    string   `gluamapper:"value" json:"value"`
}

type record struct {
	key   []byte
	value []byte
}

// Load - store all entries in a single transaction
//
// every entry is resolved before anything is written, so a bad entry
// leaves the database unchanged
func Load(table *schema.Table, entries []Entry) error {
	log := logger.New("genesis")

	records := make([]record, 0, len(entries))
	for i, e := range entries {
		r, err := resolve(table, e)
		if nil != err {
			log.Errorf("entry[%d]: %s.%s  error: %s", i, e.Module, e.Item, err)
			return err
		}
		log.Debugf("entry[%d]: key: %x  value: %x", i, r.key, r.value)
		records = append(records, r)
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		log.Errorf("transaction error: %s", err)
		return err
	}

	for _, r := range records {
		err := storage.PutRaw(r.key, r.value)
		if nil != err {
			trx.Abort()
			return err
		}
	}

	err = trx.Commit()
	if nil != err {
		return err
	}

	log.Infof("loaded: %d entries", len(records))
	return nil
}

func resolve(table *schema.Table, e Entry) (record, error) {
	d, err := table.Lookup(e.Module, storagekey.Instance(e.Instance), e.Item)
	if nil != err {
		return record{}, err
	}

	keys, err := codec.ParseLiterals(e.Keys)
	if nil != err {
		return record{}, err
	}

	key, err := storagekey.ComposeKeys(d, keys...)
	if nil != err {
		return record{}, err
	}

	value, err := codec.ParseLiteral(e.Value)
	if nil != err {
		return record{}, err
	}

	return record{
		key:   key,
		value: value.Encode(),
	}, nil
}

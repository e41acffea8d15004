// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/modstore/codec"
	"github.com/bitmark-inc/modstore/storage"
)

func runPut(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	literal := c.String("value")
	if "" == literal {
		return ErrMissingValue
	}
	value, err := codec.ParseLiteral(literal)
	if nil != err {
		return err
	}

	d, err := getDescriptor(c, m)
	if nil != err {
		return err
	}
	keys, err := getKeys(c)
	if nil != err {
		return err
	}

	err = openStorage(m, storage.ReadWrite)
	if nil != err {
		return err
	}

	item := storage.NewItem(d)
	err = item.Put(value.Encode(), keys...)
	if nil != err {
		return err
	}

	finalKey, _ := item.FinalKey(keys...)
	if m.verbose {
		fmt.Fprintf(m.e, "stored: %s\n", d)
	}

	return printJson(m.w, getResult{
		Item:     d.String(),
		FinalKey: m.format(finalKey),
		Value:    m.format(value.Encode()),
	})
}

func runRemove(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	d, err := getDescriptor(c, m)
	if nil != err {
		return err
	}
	keys, err := getKeys(c)
	if nil != err {
		return err
	}

	err = openStorage(m, storage.ReadWrite)
	if nil != err {
		return err
	}

	item := storage.NewItem(d)
	found, err := item.Has(keys...)
	if nil != err {
		return err
	}
	if !found {
		return ErrNotFound
	}

	err = item.Remove(keys...)
	if nil != err {
		return err
	}

	finalKey, _ := item.FinalKey(keys...)
	out := struct {
		Item     string `json:"item"`
		FinalKey string `json:"final_key"`
		Removed  bool   `json:"removed"`
	}{
		Item:     d.String(),
		FinalKey: m.format(finalKey),
		Removed:  true,
	}
	return printJson(m.w, out)
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/modstore/codec"
	"github.com/bitmark-inc/modstore/storage"
)

type getResult struct {
	Item     string `json:"item"`
	FinalKey string `json:"final_key"`
	Value    string `json:"value"`
	Decoded  string `json:"decoded,omitempty"`
}

func runGet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	d, err := getDescriptor(c, m)
	if nil != err {
		return err
	}
	keys, err := getKeys(c)
	if nil != err {
		return err
	}

	err = openStorage(m, storage.ReadOnly)
	if nil != err {
		return err
	}

	item := storage.NewItem(d)
	finalKey, err := item.FinalKey(keys...)
	if nil != err {
		return err
	}

	value, found, err := storage.GetRaw(finalKey)
	if nil != err {
		return err
	}
	if !found {
		return ErrNotFound
	}

	result := getResult{
		Item:     d.String(),
		FinalKey: m.format(finalKey),
		Value:    m.format(value),
	}
	if typeName := c.String("type"); "" != typeName {
		result.Decoded, err = codec.FormatLiteral(typeName, value)
		if nil != err {
			return err
		}
	}
	return printJson(m.w, result)
}

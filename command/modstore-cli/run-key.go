// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/modstore/storagekey"
)

type keyResult struct {
	Item        string       `json:"item"`
	Shape       string       `json:"shape"`
	Hashers     []hasherInfo `json:"hashers"`
	Keys        []string     `json:"keys"`
	FinalPrefix string       `json:"final_prefix"`
	FinalKey    string       `json:"final_key"`
}

func runKey(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	d, err := getDescriptor(c, m)
	if nil != err {
		return err
	}
	keys, err := getKeys(c)
	if nil != err {
		return err
	}

	finalKey, err := storagekey.ComposeKeys(d, keys...)
	if nil != err {
		return err
	}

	encoded := make([]string, 0, len(keys))
	for _, k := range keys {
		encoded = append(encoded, m.format(k.Encode()))
	}

	if m.verbose {
		fmt.Fprintf(m.e, "item: %s  keys: %d\n", d, len(keys))
	}

	return printJson(m.w, keyResult{
		Item:        d.String(),
		Shape:       d.Shape().String(),
		Hashers:     describeHashers(d.Hashers()),
		Keys:        encoded,
		FinalPrefix: m.format(d.Prefix().Bytes()),
		FinalKey:    m.format(finalKey),
	})
}

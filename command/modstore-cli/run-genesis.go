// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/modstore/genesis"
	"github.com/bitmark-inc/modstore/storage"
)

func runGenesis(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)
	if nil == m.config {
		return ErrMissingConfiguration
	}

	table, err := m.config.Schema()
	if nil != err {
		return err
	}

	err = openStorage(m, storage.ReadWrite)
	if nil != err {
		return err
	}

	err = genesis.Load(table, m.config.Genesis)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "genesis entries stored: %d\n", len(m.config.Genesis))
	}

	out := struct {
		Entries int `json:"entries"`
	}{
		Entries: len(m.config.Genesis),
	}
	return printJson(m.w, out)
}

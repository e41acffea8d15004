// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/modstore/storagekey"
)

type prefixResult struct {
	Module       string `json:"module"`
	Instance     string `json:"instance"`
	Item         string `json:"item"`
	ModulePrefix string `json:"module_prefix"`
	FinalPrefix  string `json:"final_prefix"`
}

func runPrefix(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	module := c.String("module")
	if "" == module {
		return ErrMissingModule
	}
	item := c.String("item")
	if "" == item {
		return ErrMissingItem
	}
	instance, err := parseInstance(c.String("instance"))
	if nil != err {
		return err
	}

	modulePrefix, err := storagekey.ModulePrefix(module, instance)
	if nil != err {
		return err
	}
	finalPrefix, err := storagekey.FinalPrefix(module, instance, item)
	if nil != err {
		return err
	}

	return printJson(m.w, prefixResult{
		Module:       module,
		Instance:     instance.String(),
		Item:         item,
		ModulePrefix: m.format(modulePrefix[:]),
		FinalPrefix:  m.format(finalPrefix.Bytes()),
	})
}

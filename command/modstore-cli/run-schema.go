// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

type schemaEntry struct {
	Module      string       `json:"module"`
	Instance    string       `json:"instance"`
	Item        string       `json:"item"`
	Shape       string       `json:"shape"`
	Hashers     []hasherInfo `json:"hashers"`
	FinalPrefix string       `json:"final_prefix"`
}

func runSchema(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)
	if nil == m.config {
		return ErrMissingConfiguration
	}

	table, err := m.config.Schema()
	if nil != err {
		return err
	}

	descriptors := table.Descriptors()
	entries := make([]schemaEntry, 0, len(descriptors))
	for _, d := range descriptors {
		entries = append(entries, schemaEntry{
			Module:      d.Module(),
			Instance:    d.Instance().String(),
			Item:        d.Item(),
			Shape:       d.Shape().String(),
			Hashers:     describeHashers(d.Hashers()),
			FinalPrefix: m.format(d.Prefix().Bytes()),
		})
	}

	return printJson(m.w, entries)
}

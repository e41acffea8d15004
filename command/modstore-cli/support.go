// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/mr-tron/base58"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/modstore/codec"
	"github.com/bitmark-inc/modstore/hasher"
	"github.com/bitmark-inc/modstore/storage"
	"github.com/bitmark-inc/modstore/storagekey"
)

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

// render bytes in the selected output format
func (m *metadata) format(b []byte) string {
	if m.base58 {
		return base58.Encode(b)
	}
	return hex.EncodeToString(b)
}

// a decimal number selects a numbered instance, anything else is a name
func parseInstance(s string) (storagekey.Instance, error) {
	if "" == s {
		return storagekey.DefaultInstance, nil
	}
	if n, err := strconv.Atoi(s); nil == err {
		return storagekey.NumberedInstance(n)
	}
	return storagekey.NamedInstance(s)
}

// resolve the item named by the command flags
//
// explicit hashers describe an ad hoc item, otherwise the item must be
// declared in the configuration
func getDescriptor(c *cli.Context, m *metadata) (*storagekey.Descriptor, error) {
	module := c.String("module")
	if "" == module {
		return nil, ErrMissingModule
	}
	item := c.String("item")
	if "" == item {
		return nil, ErrMissingItem
	}
	instance, err := parseInstance(c.String("instance"))
	if nil != err {
		return nil, err
	}

	if names := c.StringSlice("hasher"); 0 != len(names) {
		hashers, err := hasher.ParseList(names)
		if nil != err {
			return nil, err
		}
		return storagekey.NewDescriptor(module, instance, item, hashers...)
	}

	if nil == m.config {
		return nil, ErrMissingConfiguration
	}
	table, err := m.config.Schema()
	if nil != err {
		return nil, err
	}
	return table.Lookup(module, instance, item)
}

// the key literals given on the command line
func getKeys(c *cli.Context) ([]codec.Encodable, error) {
	return codec.ParseLiterals(c.StringSlice("key"))
}

// open the configured database
func openStorage(m *metadata, readOnly bool) error {
	if nil == m.config {
		return ErrMissingConfiguration
	}

	databasePath := m.config.DatabasePath()
	if m.verbose {
		fmt.Fprintf(m.e, "database: %q  read only: %t\n", databasePath, readOnly)
	}

	err := storage.Initialise(databasePath, readOnly)
	if nil != err {
		return err
	}
	m.opened = true
	return nil
}

type hasherInfo struct {
	Name  string `json:"name"`
	Width int    `json:"digest_width"`
}

func describeHashers(hashers []hasher.Hasher) []hasherInfo {
	info := make([]hasherInfo, 0, len(hashers))
	for _, h := range hashers {
		info = append(info, hasherInfo{
			Name:  h.String(),
			Width: h.DigestWidth(),
		})
	}
	return info
}

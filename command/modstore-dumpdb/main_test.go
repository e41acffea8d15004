// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/modstore/storagekey"
)

func TestSelectPrefix(t *testing.T) {
	p, err := selectPrefix(map[string][]string{}, nil)
	assert.Nil(t, err, "no prefix")
	assert.Equal(t, 0, len(p), "everything")

	p, err = selectPrefix(map[string][]string{}, []string{"26aa"})
	assert.Nil(t, err, "hex prefix")
	assert.Equal(t, []byte{0x26, 0xaa}, p, "hex bytes")

	_, err = selectPrefix(map[string][]string{}, []string{"xyz"})
	assert.NotNil(t, err, "bad hex")

	p, err = selectPrefix(map[string][]string{"module": {"System"}}, nil)
	assert.Nil(t, err, "module prefix")
	modulePrefix, _ := storagekey.ModulePrefix("System", storagekey.DefaultInstance)
	assert.Equal(t, modulePrefix[:], p, "module prefix bytes")

	p, err = selectPrefix(map[string][]string{"module": {"System"}, "item": {"Account"}}, nil)
	assert.Nil(t, err, "item prefix")
	finalPrefix, _ := storagekey.FinalPrefix("System", storagekey.DefaultInstance, "Account")
	assert.Equal(t, finalPrefix.Bytes(), p, "item prefix bytes")

	p, err = selectPrefix(map[string][]string{"module": {"Balances"}, "instance": {"Instance2"}}, nil)
	assert.Nil(t, err, "instance prefix")
	modulePrefix, _ = storagekey.ModulePrefix("Balances", storagekey.Instance("Instance2"))
	assert.Equal(t, modulePrefix[:], p, "instance prefix bytes")
}

func TestSplitKey(t *testing.T) {
	assert.Equal(t, "0056", splitKey([]byte{0x00, 0x56}), "short key unsplit")

	key := make([]byte, storagekey.PrefixLength+2)
	key[0] = 0x01
	key[16] = 0x02
	key[32] = 0x03
	key[33] = 0x04
	expected := "01000000000000000000000000000000 02000000000000000000000000000000 0304"
	assert.Equal(t, expected, splitKey(key), "module item and key parts")
}

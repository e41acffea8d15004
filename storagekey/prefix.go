// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storagekey

import (
	"encoding/hex"

	"github.com/bitmark-inc/modstore/fault"
	"github.com/bitmark-inc/modstore/hasher"
)

// PrefixLength - bytes in a final prefix
const PrefixLength = 2 * hasher.NamespaceWidth

// Prefix - the final prefix of a storage item
type Prefix [PrefixLength]byte

// ModulePrefix - namespace hash of instance ++ module
func ModulePrefix(module string, instance Instance) ([hasher.NamespaceWidth]byte, error) {
	if "" == module {
		return [hasher.NamespaceWidth]byte{}, fault.ErrEmptyModuleName
	}
	name := make([]byte, 0, len(instance)+len(module))
	name = append(name, string(instance)...)
	name = append(name, module...)
	return hasher.Namespace(name), nil
}

// FinalPrefix - prefix shared by every key of one storage item
func FinalPrefix(module string, instance Instance, item string) (Prefix, error) {
	if "" == module {
		return Prefix{}, fault.ErrEmptyModuleName
	}
	if "" == item {
		return Prefix{}, fault.ErrEmptyItemName
	}

	m, err := ModulePrefix(module, instance)
	if nil != err {
		return Prefix{}, err
	}
	i := hasher.Namespace([]byte(item))

	p := Prefix{}
	copy(p[:hasher.NamespaceWidth], m[:])
	copy(p[hasher.NamespaceWidth:], i[:])
	return p, nil
}

// Bytes - a copy of the prefix as a slice
func (p Prefix) Bytes() []byte {
	b := make([]byte, PrefixLength)
	copy(b, p[:])
	return b
}

func (p Prefix) String() string {
	return hex.EncodeToString(p[:])
}

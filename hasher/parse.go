// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hasher

import (
	"strings"

	"github.com/bitmark-inc/modstore/fault"
)

var algorithmNames = map[string]Algorithm{
	"identity":   Identity,
	"twox_32":    Twox32,
	"twox_64":    Twox64,
	"twox_128":   Twox128,
	"twox_256":   Twox256,
	"blake2_64":  Blake2_64,
	"blake2_128": Blake2_128,
	"blake2_256": Blake2_256,
}

// Parse - convert a schema hasher name into a hasher
//
// names are the algorithm, optionally followed by "_concat",
// e.g. "twox_64_concat", "blake2_256" or "identity"
func Parse(name string) (Hasher, error) {
	n := strings.ToLower(strings.TrimSpace(name))

	kind := Opaque
	if strings.HasSuffix(n, "_concat") {
		kind = Concat
		n = strings.TrimSuffix(n, "_concat")
	}

	algorithm, ok := algorithmNames[n]
	if !ok {
		return Hasher{}, fault.ErrUnknownHasher
	}

	// identity is only meaningful with the key kept
	if Identity == algorithm {
		kind = Concat
	}

	return Hasher{Algorithm: algorithm, Kind: kind}, nil
}

// ParseList - convert a list of hasher names, one per key dimension
func ParseList(names []string) ([]Hasher, error) {
	hashers := make([]Hasher, 0, len(names))
	for _, name := range names {
		h, err := Parse(name)
		if nil != err {
			return nil, err
		}
		hashers = append(hashers, h)
	}
	return hashers, nil
}

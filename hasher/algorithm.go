// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hasher

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/bitmark-inc/modstore/fault"
)

// Algorithm - digest function applied to an encoded key
type Algorithm int

// available algorithms
const (
	Identity Algorithm = iota
	Twox32
	Twox64
	Twox128
	Twox256
	Blake2_64
	Blake2_128
	Blake2_256
)

// NamespaceWidth - width in bytes of the module/item name digest
const NamespaceWidth = 16

// Width - number of digest bytes produced
func (a Algorithm) Width() int {
	switch a {
	case Identity:
		return 0
	case Twox32:
		return 4
	case Twox64, Blake2_64:
		return 8
	case Twox128, Blake2_128:
		return 16
	case Twox256, Blake2_256:
		return 32
	default:
		return -1
	}
}

// Valid - true if the algorithm is one of the known set
func (a Algorithm) Valid() bool {
	return a.Width() >= 0
}

func (a Algorithm) String() string {
	switch a {
	case Identity:
		return "identity"
	case Twox32:
		return "twox_32"
	case Twox64:
		return "twox_64"
	case Twox128:
		return "twox_128"
	case Twox256:
		return "twox_256"
	case Blake2_64:
		return "blake2_64"
	case Blake2_128:
		return "blake2_128"
	case Blake2_256:
		return "blake2_256"
	default:
		return "unknown"
	}
}

// Sum - compute the digest of data
//
// the result is always a new slice of exactly Width() bytes
func (a Algorithm) Sum(data []byte) ([]byte, error) {
	switch a {
	case Identity:
		return []byte{}, nil
	case Twox32:
		return twox(data, 1)[:4], nil
	case Twox64:
		return twox(data, 1), nil
	case Twox128:
		return twox(data, 2), nil
	case Twox256:
		return twox(data, 4), nil
	case Blake2_64, Blake2_128, Blake2_256:
		h, err := blake2b.New(a.Width(), nil)
		if nil != err {
			return nil, err
		}
		h.Write(data)
		return h.Sum(nil), nil
	default:
		return nil, fault.ErrUnknownAlgorithm
	}
}

// concatenate xxHash64 of data with seeds 0..lanes-1, little endian
func twox(data []byte, lanes int) []byte {
	out := make([]byte, 8*lanes)
	for seed := 0; seed < lanes; seed += 1 {
		d := xxhash.NewWithSeed(uint64(seed))
		d.Write(data)
		binary.LittleEndian.PutUint64(out[8*seed:], d.Sum64())
	}
	return out
}

// Namespace - the fixed-width hash used for module and storage item names
func Namespace(data []byte) [NamespaceWidth]byte {
	var n [NamespaceWidth]byte
	copy(n[:], twox(data, 2))
	return n
}

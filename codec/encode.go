// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

import (
	"math/big"

	"github.com/ChainSafe/gossamer/pkg/scale"
	"github.com/bitmark-inc/logger"
)

// Encodable - any value with a canonical encoding
type Encodable interface {
	Encode() []byte
}

// the supported encodable types
type (
	U8     uint8
	U16    uint16
	U32    uint32
	U64    uint64
	Bool   bool
	Bytes  []byte
	String string
	Unit   struct{}
	Tuple  []Encodable
)

// none of the supported types can fail to marshal
func marshal(v interface{}) []byte {
	b, err := scale.Marshal(v)
	logger.PanicIfError("codec.marshal", err)
	return b
}

// Encode - one byte
func (v U8) Encode() []byte {
	return marshal(uint8(v))
}

// Encode - two bytes little endian
func (v U16) Encode() []byte {
	return marshal(uint16(v))
}

// Encode - four bytes little endian
func (v U32) Encode() []byte {
	return marshal(uint32(v))
}

// Encode - eight bytes little endian
func (v U64) Encode() []byte {
	return marshal(uint64(v))
}

// Encode - 0x00 or 0x01
func (v Bool) Encode() []byte {
	return marshal(bool(v))
}

// Encode - compact length ++ data
func (v Bytes) Encode() []byte {
	return marshal([]byte(v))
}

// Encode - compact length ++ UTF-8 bytes
func (v String) Encode() []byte {
	return marshal(string(v))
}

// Encode - empty
func (v Unit) Encode() []byte {
	return []byte{}
}

// Encode - concatenation of all elements
func (v Tuple) Encode() []byte {
	b := []byte{}
	for _, e := range v {
		b = append(b, e.Encode()...)
	}
	return b
}

// CompactLength - encode a length prefix
func CompactLength(n uint64) []byte {
	return marshal(new(big.Int).SetUint64(n))
}

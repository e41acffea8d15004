// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

import (
	"math/big"

	"github.com/ChainSafe/gossamer/pkg/scale"

	"github.com/bitmark-inc/modstore/fault"
)

// Measure - determine how many leading bytes of an encoding belong to
// one value, used to split concatenated keys
type Measure func(data []byte) (int, error)

// FixedWidth - measure for fixed size types such as U32
func FixedWidth(n int) Measure {
	return func(data []byte) (int, error) {
		if len(data) < n {
			return 0, fault.ErrTruncated
		}
		return n, nil
	}
}

// CompactPrefixed - measure for Bytes and String
func CompactPrefixed(data []byte) (int, error) {
	n, size, err := DecodeCompactLength(data)
	if nil != err {
		return 0, err
	}
	if n > uint64(len(data)-size) {
		return 0, fault.ErrTruncated
	}
	return size + int(n), nil
}

// DecodeCompactLength - returns the length and the bytes consumed
func DecodeCompactLength(data []byte) (uint64, int, error) {
	if 0 == len(data) {
		return 0, 0, fault.ErrTruncated
	}

	size := 0
	switch data[0] & 0x03 {
	case 0x00:
		size = 1
	case 0x01:
		size = 2
	case 0x02:
		size = 4
	default:
		if data[0]>>2 > 4 {
			return 0, 0, fault.ErrInvalidLiteral
		}
		size = 1 + int(data[0]>>2) + 4
	}
	if len(data) < size {
		return 0, 0, fault.ErrTruncated
	}

	var n *big.Int
	err := scale.Unmarshal(data[:size], &n)
	if nil != err || nil == n || !n.IsUint64() {
		return 0, 0, fault.ErrInvalidLiteral
	}
	return n.Uint64(), size, nil
}

func exact(data []byte, n int) error {
	if len(data) < n {
		return fault.ErrTruncated
	}
	if len(data) > n {
		return fault.ErrTrailingData
	}
	return nil
}

// decode exactly n bytes into dst
func unmarshal(data []byte, n int, dst interface{}) error {
	if err := exact(data, n); nil != err {
		return err
	}
	if err := scale.Unmarshal(data, dst); nil != err {
		return fault.ErrTruncated
	}
	return nil
}

// DecodeU8 - single byte
func DecodeU8(data []byte) (uint8, error) {
	var v uint8
	err := unmarshal(data, 1, &v)
	return v, err
}

// DecodeU16 - two bytes little endian
func DecodeU16(data []byte) (uint16, error) {
	var v uint16
	err := unmarshal(data, 2, &v)
	return v, err
}

// DecodeU32 - four bytes little endian
func DecodeU32(data []byte) (uint32, error) {
	var v uint32
	err := unmarshal(data, 4, &v)
	return v, err
}

// DecodeU64 - eight bytes little endian
func DecodeU64(data []byte) (uint64, error) {
	var v uint64
	err := unmarshal(data, 8, &v)
	return v, err
}

// DecodeBool - 0x00 or 0x01
func DecodeBool(data []byte) (bool, error) {
	if err := exact(data, 1); nil != err {
		return false, err
	}
	if data[0] > 1 {
		return false, fault.ErrInvalidLiteral
	}
	var v bool
	err := unmarshal(data, 1, &v)
	return v, err
}

// DecodeBytes - compact length ++ data
func DecodeBytes(data []byte) ([]byte, error) {
	n, err := CompactPrefixed(data)
	if nil != err {
		return nil, err
	}
	var b []byte
	if err := unmarshal(data, n, &b); nil != err {
		return nil, err
	}
	if nil == b {
		b = []byte{}
	}
	return b, nil
}

// DecodeString - compact length ++ UTF-8 bytes
func DecodeString(data []byte) (string, error) {
	n, err := CompactPrefixed(data)
	if nil != err {
		return "", err
	}
	var s string
	err = unmarshal(data, n, &s)
	return s, err
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/bitmark-inc/modstore/fault"
)

// ParseLiteral - convert "type:value" text into an encodable value
//
// types: u8 u16 u32 u64 bool bytes(hex) str unit
// e.g. "u32:1", "bytes:0x0102", "str:alice", "unit"
func ParseLiteral(literal string) (Encodable, error) {
	typeName, value := splitLiteral(literal)

	switch typeName {
	case "u8", "u16", "u32", "u64":
		bits, _ := strconv.Atoi(typeName[1:])
		n, err := strconv.ParseUint(value, 0, bits)
		if nil != err {
			return nil, fault.ErrInvalidLiteral
		}
		switch bits {
		case 8:
			return U8(n), nil
		case 16:
			return U16(n), nil
		case 32:
			return U32(n), nil
		default:
			return U64(n), nil
		}

	case "bool":
		b, err := strconv.ParseBool(value)
		if nil != err {
			return nil, fault.ErrInvalidLiteral
		}
		return Bool(b), nil

	case "bytes":
		b, err := hex.DecodeString(strings.TrimPrefix(value, "0x"))
		if nil != err {
			return nil, fault.ErrInvalidHexString
		}
		return Bytes(b), nil

	case "str":
		return String(value), nil

	case "unit":
		if "" != value {
			return nil, fault.ErrInvalidLiteral
		}
		return Unit{}, nil
	}
	return nil, fault.ErrUnknownLiteralType
}

// ParseLiterals - convert a list of literals
func ParseLiterals(literals []string) ([]Encodable, error) {
	values := make([]Encodable, 0, len(literals))
	for _, l := range literals {
		v, err := ParseLiteral(l)
		if nil != err {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// FormatLiteral - decode data as the given type and render it as a literal
func FormatLiteral(typeName string, data []byte) (string, error) {
	switch strings.ToLower(typeName) {
	case "u8":
		v, err := DecodeU8(data)
		return "u8:" + strconv.FormatUint(uint64(v), 10), err
	case "u16":
		v, err := DecodeU16(data)
		return "u16:" + strconv.FormatUint(uint64(v), 10), err
	case "u32":
		v, err := DecodeU32(data)
		return "u32:" + strconv.FormatUint(uint64(v), 10), err
	case "u64":
		v, err := DecodeU64(data)
		return "u64:" + strconv.FormatUint(v, 10), err
	case "bool":
		v, err := DecodeBool(data)
		return "bool:" + strconv.FormatBool(v), err
	case "bytes":
		v, err := DecodeBytes(data)
		return "bytes:0x" + hex.EncodeToString(v), err
	case "str":
		v, err := DecodeString(data)
		return "str:" + v, err
	case "unit":
		if 0 != len(data) {
			return "", fault.ErrTrailingData
		}
		return "unit", nil
	}
	return "", fault.ErrUnknownLiteralType
}

// MeasureOf - the length measure for a literal type name
func MeasureOf(typeName string) (Measure, error) {
	switch strings.ToLower(typeName) {
	case "u8", "bool":
		return FixedWidth(1), nil
	case "u16":
		return FixedWidth(2), nil
	case "u32":
		return FixedWidth(4), nil
	case "u64":
		return FixedWidth(8), nil
	case "bytes", "str":
		return CompactPrefixed, nil
	case "unit":
		return FixedWidth(0), nil
	}
	return nil, fault.ErrUnknownLiteralType
}

func splitLiteral(literal string) (string, string) {
	s := strings.TrimSpace(literal)
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return strings.ToLower(s), ""
	}
	return strings.ToLower(s[:i]), s[i+1:]
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package codec - canonical binary encoding of keys and values
//
// Encoding rules:
//
//   u8 .. u64     fixed width little endian
//   bool          one byte, 0x00 or 0x01
//   bytes, str    compact length ++ data
//   unit          nothing
//   tuple         concatenation of the element encodings
//
// compact length uses the two low bits of the first byte as a mode:
//
//   00  single byte, value << 2              (0 .. 63)
//   01  two bytes LE, value << 2             (64 .. 2^14-1)
//   10  four bytes LE, value << 2            (2^14 .. 2^30-1)
//   11  ((n-4) << 2) ++ n bytes LE            (larger)
//
// marshalling is done with github.com/ChainSafe/gossamer/pkg/scale, this
// package adds the length measures and text literals keys need.
//
// Every encoding is injective for a fixed type, which is the property
// required of storage map keys.
package codec

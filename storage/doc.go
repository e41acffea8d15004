// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk module state
//
// This maintains a single LevelDB database holding the storage items
// of every module instance.  Each item occupies the key range below
// its 32 byte final prefix, so items never overlap and any item, or
// any module instance, can be enumerated by prefix.
//
//
// Notes:
// 1. ++          = concatenation of byte data
// 2. twox128(x)  = 16 byte namespace hash
// 3. Hn(k)       = digest of encoded key k, followed by k for concat hashers
// 4. values are stored exactly as given, normally codec encoded
//
// Items:
//
//   twox128(instance ++ module) ++ twox128(item)            - value
//   twox128(instance ++ module) ++ twox128(item) ++ H0(k0)  - map
//   ... ++ twox128(item) ++ H0(k0) ++ H1(k1)                - double map
//
// Version:
//
//   0x00 ++ "VERSION"          - database version
//                                data: big endian uint32
//
// the version key is shorter than any final key, so it never
// appears inside an item range
package storage

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storagekey - derive backend keys for module storage items
//
// Notes:
// 1. ++          = concatenation of byte data
// 2. N(x)        = 16 byte namespace hash (Twox128) of x
// 3. instance    = "" for the default instance, e.g. "Instance2" otherwise
// 4. Hi(k)       = fragment of key k under the item's i-th hasher
//                  opaque: digest(k)
//                  concat: digest(k) ++ k
//
// Final prefix (32 bytes, one per module instance and item):
//
//   N(instance ++ module) ++ N(item)
//
// Final keys:
//
//   value:       prefix
//   map:         prefix ++ H0(k0)
//   double map:  prefix ++ H0(k0) ++ H1(k1)
//
// Every entry of an item starts with its prefix, so a prefix scan
// enumerates exactly one item.  With a concat first hasher, a scan of
// prefix ++ H0(k0) enumerates every k1 stored under k0.
//
// Renaming a module or item changes its prefix and orphans the data
// already stored under the old name.
package storagekey

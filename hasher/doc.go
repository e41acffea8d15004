// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hasher - per-key storage hashers
//
// A hasher is a fixed pair of a digest algorithm and a shape:
//
//   opaque:  H(key)
//   concat:  H(key) ++ key
//
// The twox family (xxHash64 with successive seeds) is fast but not
// collision resistant, so it should only be chosen for keys that an
// attacker cannot select.  The blake2 family is for keys that may be
// attacker controlled.  Concat is required wherever entries must be
// enumerated by leading key or the original key recovered.
//
// The namespace hash used for module and item names is Twox128.
package hasher

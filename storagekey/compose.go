// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storagekey

import (
	"bytes"

	"github.com/bitmark-inc/modstore/codec"
	"github.com/bitmark-inc/modstore/fault"
	"github.com/bitmark-inc/modstore/hasher"
)

// Compose - the final key of an entry from its encoded keys
//
// exactly one encoded key per hasher, in declaration order;
// the result is a newly allocated slice
func Compose(d *Descriptor, encodedKeys ...[]byte) ([]byte, error) {
	if len(encodedKeys) != len(d.hashers) {
		return nil, fault.ErrKeyCountMismatch
	}
	return compose(d, encodedKeys)
}

// ComposePartial - the common prefix of all entries sharing leading keys
//
// fewer keys than the item has may be given, with none this is the
// final prefix itself; only meaningful when the leading hashers are concat
// or the caller holds the exact leading keys
func ComposePartial(d *Descriptor, leadingKeys ...[]byte) ([]byte, error) {
	if len(leadingKeys) > len(d.hashers) {
		return nil, fault.ErrKeyCountMismatch
	}
	return compose(d, leadingKeys)
}

// ComposeKeys - Compose with values encoded by the codec
func ComposeKeys(d *Descriptor, keys ...codec.Encodable) ([]byte, error) {
	if len(keys) != len(d.hashers) {
		return nil, fault.ErrKeyCountMismatch
	}
	encoded := make([][]byte, len(keys))
	for i, k := range keys {
		encoded[i] = k.Encode()
	}
	return compose(d, encoded)
}

func compose(d *Descriptor, encodedKeys [][]byte) ([]byte, error) {
	size := PrefixLength
	for i, k := range encodedKeys {
		size += d.hashers[i].DigestWidth() + len(k)
	}

	key := make([]byte, PrefixLength, size)
	copy(key, d.prefix[:])
	for i, k := range encodedKeys {
		fragment, err := d.hashers[i].Hash(k)
		if nil != err {
			return nil, err
		}
		key = append(key, fragment...)
	}
	return key, nil
}

// Decompose - split a final key back into its encoded keys
//
// opaque components are returned as nil.  The last component takes the
// rest of the key; every earlier concat component needs a measure to
// find where its encoded key ends, measures are matched to the leading
// components in order
func Decompose(d *Descriptor, finalKey []byte, measures ...codec.Measure) ([][]byte, error) {
	if !bytes.HasPrefix(finalKey, d.prefix[:]) {
		return nil, fault.ErrPrefixMismatch
	}
	rest := finalKey[PrefixLength:]

	keys := make([][]byte, len(d.hashers))
	for i, h := range d.hashers {
		if !h.Valid() {
			return nil, fault.ErrInvalidHasher
		}
		width := h.DigestWidth()
		if len(rest) < width {
			return nil, fault.ErrDigestTooShort
		}
		last := i == len(d.hashers)-1

		switch {
		case hasher.Concat != h.Kind:
			rest = rest[width:]

		case last:
			k, err := h.Reverse(rest)
			if nil != err {
				return nil, err
			}
			keys[i] = k
			rest = nil

		default:
			if i >= len(measures) || nil == measures[i] {
				return nil, fault.ErrMissingMeasure
			}
			n, err := measures[i](rest[width:])
			if nil != err {
				return nil, err
			}
			k, err := h.Reverse(rest[:width+n])
			if nil != err {
				return nil, err
			}
			keys[i] = k
			rest = rest[width+n:]
		}
	}

	if 0 != len(rest) {
		return nil, fault.ErrTrailingData
	}
	return keys, nil
}

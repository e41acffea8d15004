// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hasher

import (
	"github.com/bitmark-inc/modstore/fault"
)

// Kind - shape of the hashed key fragment
type Kind int

// fragment shapes
const (
	Opaque Kind = iota // digest only
	Concat             // digest ++ encoded key
)

func (k Kind) String() string {
	switch k {
	case Opaque:
		return "opaque"
	case Concat:
		return "concat"
	default:
		return "unknown"
	}
}

// Hasher - the per-dimension key hasher of a storage item
type Hasher struct {
	Algorithm Algorithm
	Kind      Kind
}

// the hashers that can be named in a schema
var (
	IdentityConcat   = Hasher{Algorithm: Identity, Kind: Concat}
	Twox32Concat     = Hasher{Algorithm: Twox32, Kind: Concat}
	Twox64Concat     = Hasher{Algorithm: Twox64, Kind: Concat}
	Twox128Opaque    = Hasher{Algorithm: Twox128, Kind: Opaque}
	Twox256Opaque    = Hasher{Algorithm: Twox256, Kind: Opaque}
	Blake2_64Concat  = Hasher{Algorithm: Blake2_64, Kind: Concat}
	Blake2_128Concat = Hasher{Algorithm: Blake2_128, Kind: Concat}
	Blake2_128Opaque = Hasher{Algorithm: Blake2_128, Kind: Opaque}
	Blake2_256Opaque = Hasher{Algorithm: Blake2_256, Kind: Opaque}
)

// Valid - check the algorithm/kind combination
//
// identity without the key appended would map every key to nothing
func (h Hasher) Valid() bool {
	if !h.Algorithm.Valid() {
		return false
	}
	switch h.Kind {
	case Opaque:
		return Identity != h.Algorithm
	case Concat:
		return true
	default:
		return false
	}
}

// DigestWidth - fixed number of digest bytes at the start of a fragment
func (h Hasher) DigestWidth() int {
	return h.Algorithm.Width()
}

// Hash - produce the key fragment for an encoded key
func (h Hasher) Hash(encoded []byte) ([]byte, error) {
	if !h.Valid() {
		return nil, fault.ErrInvalidHasher
	}
	digest, err := h.Algorithm.Sum(encoded)
	if nil != err {
		return nil, err
	}
	if Opaque == h.Kind {
		return digest, nil
	}
	fragment := make([]byte, len(digest), len(digest)+len(encoded))
	copy(fragment, digest)
	return append(fragment, encoded...), nil
}

// Reverse - recover the encoded key from a concat fragment
//
// the fragment must be exactly one hashed key, i.e. the digest
// followed by the encoded key and nothing else
func (h Hasher) Reverse(fragment []byte) ([]byte, error) {
	if !h.Valid() {
		return nil, fault.ErrInvalidHasher
	}
	if Concat != h.Kind {
		return nil, fault.ErrKeyNotRecoverable
	}
	width := h.DigestWidth()
	if len(fragment) < width {
		return nil, fault.ErrDigestTooShort
	}
	key := make([]byte, len(fragment)-width)
	copy(key, fragment[width:])
	return key, nil
}

// String - the schema name of the hasher, e.g. "blake2_128_concat"
func (h Hasher) String() string {
	if Identity == h.Algorithm && Concat == h.Kind {
		return "identity"
	}
	if Concat == h.Kind {
		return h.Algorithm.String() + "_concat"
	}
	return h.Algorithm.String()
}

// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

package stringedit

import (
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/stope-project/stope/lib/codec"
	"github.com/stope-project/stope/lib/geom"
)

// Fingerprint is a 32-byte BLAKE3 digest of a vertex sequence's
// canonical CBOR encoding. Two sequences have equal fingerprints
// exactly when they contain the same vertices in the same order,
// which is what the Modified stat and journal record integrity need.
type Fingerprint [32]byte

// sequenceDomainKey is the BLAKE3 keyed-hashing domain for sequence
// fingerprints. A fixed constant — changing it invalidates every
// stored fingerprint. ASCII encoding of the domain name, zero-padded
// to 32 bytes, so the key is inspectable in hex dumps.
var sequenceDomainKey = [32]byte{
	's', 't', 'o', 'p', 'e', '.', 'g', 'e', 'o', 'm', '.',
	's', 'e', 'q', 'u', 'e', 'n', 'c', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// SequenceFingerprint computes the keyed BLAKE3 digest of the
// sequence's deterministic CBOR encoding.
func SequenceFingerprint(sequence geom.Sequence) Fingerprint {
	encoded, err := codec.Marshal(sequence.Vertices())
	if err != nil {
		// A slice of plain float structs cannot fail to encode.
		panic("stringedit: sequence encoding failed: " + err.Error())
	}

	hasher, err := blake3.NewKeyed(sequenceDomainKey[:])
	if err != nil {
		panic("stringedit: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(encoded)

	var digest Fingerprint
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// String returns the hex encoding of the fingerprint for logs.
func (fingerprint Fingerprint) String() string {
	return hex.EncodeToString(fingerprint[:])
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 digest.
type Digest [32]byte

// domainKey is a 32-byte BLAKE3 key. The byte values are the ASCII
// domain name zero-padded to 32 bytes so keys stay readable in hex
// dumps.
type domainKey [32]byte

// Domain keys are fixed constants. Changing one invalidates every
// digest stored in that domain (for the model domain: every cached
// reduction).
var (
	modelDomainKey = domainKey{
		'a', 'r', 'c', 'h', 'e', 't', 'y', 'p', 'e', '.', 'm', 'o', 'd', 'e', 'l', 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	nameDomainKey = domainKey{
		'a', 'r', 'c', 'h', 'e', 't', 'y', 'p', 'e', '.', 'c', 'o', 'm', 'b', 'i', 'n',
		'e', 'd', '-', 'n', 'a', 'm', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// HashFile computes the BLAKE3 digest of the file at path. The file is
// streamed through the hasher so memory use is constant regardless of
// file size.
func HashFile(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}

	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// Sum returns the unkeyed BLAKE3 digest of data.
func Sum(data []byte) Digest {
	return Digest(blake3.Sum256(data))
}

// ModelKey derives the cache key for a reduced building: the keyed
// hash of the model content digest followed by the reduction options
// fingerprint. Two runs over the same model with different options
// (zone weighting, core detection) get different keys.
func ModelKey(content Digest, fingerprint string) Digest {
	hasher := newKeyed(modelDomainKey)
	hasher.Write(content[:])
	hasher.Write([]byte(fingerprint))
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// NameDigest hashes a set of names independent of their order. Names
// are sorted and each is terminated by a zero byte so that
// ("ab","c") and ("a","bc") hash differently.
func NameDigest(names []string) Digest {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	hasher := newKeyed(nameDomainKey)
	for _, name := range sorted {
		hasher.Write([]byte(name))
		hasher.Write([]byte{0})
	}
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

func newKeyed(key domainKey) *blake3.Hasher {
	// NewKeyed only fails for a key that is not 32 bytes, which the
	// domainKey type rules out.
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("binhash: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return hasher
}

// FormatDigest returns the hex-encoded string representation of a
// digest.
func FormatDigest(digest Digest) string {
	return hex.EncodeToString(digest[:])
}

// String implements fmt.Stringer with the hex encoding.
func (d Digest) String() string {
	return FormatDigest(d)
}

// ParseDigest parses a hex-encoded digest string. Returns an error if
// the string is not a valid 64-character hex encoding of 32 bytes.
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing hash digest: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("hash digest is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}

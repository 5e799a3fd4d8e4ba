// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash provides BLAKE3 content hashing for input models and
// for the provenance names given to combined template entities.
//
// Two hashing modes are exposed:
//
//   - [HashFile] and [Sum] are plain BLAKE3 digests of file or byte
//     content, used to recognize an unchanged input model.
//   - [ModelKey] and [NameDigest] are domain-keyed hashes. The same
//     bytes hashed in different domains produce unrelated digests, so a
//     cache key can never collide with a combined-entity name digest.
//
// [FormatDigest] and [ParseDigest] convert digests to and from their
// canonical lowercase hex representation, used as SQLite keys and in
// log output.
//
// This package has no dependencies on other archetype packages.
package binhash

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides archetype's CBOR encoding configuration.
//
// Template documents are JSON at the edges (files handed to simulation
// tools, CLI output) and CBOR inside the reduction cache and in .cbor
// document files. Both formats are driven by the same `json` struct
// tags: fxamacker/cbor v2 falls back to `json` tags when `cbor` tags
// are absent, so "$id" and "$ref" keys survive either encoding.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same document always produces identical bytes, which keeps cache
// blobs comparable by digest.
//
//	data, err := codec.Marshal(doc)
//	err = codec.Unmarshal(data, &doc)
//
// For files and compressed streams:
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
package codec

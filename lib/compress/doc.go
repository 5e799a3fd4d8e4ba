// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress wraps the two codecs archetype stores data with:
// LZ4 (github.com/pierrec/lz4/v4) and zstd
// (github.com/klauspost/compress/zstd).
//
// Block functions ([Compress], [Decompress]) operate on whole byte
// slices and are used for cache blobs, where the uncompressed size is
// stored next to the data. Stream functions ([NewWriter], [NewReader])
// use each codec's framed format and are used for document files
// ending in .zst or .lz4.
//
// A [Tag] names the codec. Tag values are persisted in the reduction
// cache, so existing values must never be renumbered.
package compress

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package docfile reads and writes template documents on disk.
//
// The file name selects the encoding. A trailing .zst or .lz4 wraps
// the document in that codec's stream format; the extension beneath
// it selects the document format: .cbor for CBOR (lib/codec), anything
// else for JSON. JSON input may carry comments and trailing commas
// (github.com/tidwall/jsonc), so hand-edited libraries load as is.
//
//	library.json        plain JSON
//	library.json.zst    zstd-compressed JSON
//	library.cbor.lz4    lz4-compressed CBOR
//
// Writes go to a temporary file in the target directory and are
// renamed into place, so a failed write never leaves a truncated
// document behind.
package docfile

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package docstore is the reduction cache: a SQLite table of reduced
// building documents keyed by the digest of the model they came from.
//
// Each row holds one building's template document encoded as CBOR
// (lib/codec) and compressed with a configurable [compress.Tag]. The
// key is computed by the caller, normally
// binhash.ModelKey(model digest, options fingerprint), so changing the
// reduction options never returns a stale document.
//
// Rows also record provenance: the building name, the model path, the
// batch run id that produced them, and when they were written. The
// `archetype cache` command reports [Store.Stats] and calls
// [Store.Clear].
package docstore

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package reduce turns parsed building models into building templates.
//
// [Building] reduces one model: every usable zone is translated through
// a [umi.Builder], classified as core or perimeter, and the two groups
// are folded pairwise with [umi.Zone.Combine] into the template's Core
// and Perimeter zones. Plenums and zones excluded from the total floor
// area take no part. When a building has no zone of one class, the
// other class stands in for it.
//
// [Batch] runs [Building] over many model files with bounded
// parallelism. Each task owns its own [umi.Registry]; the registries
// share one [umi.IDSequence] so entity ids stay unique across the run
// and the resulting templates can be written to one document. A failed
// task is reported on its [Result] and never cancels its siblings.
//
// An optional [Cache] short-circuits reduction for models whose content
// and reduction options were seen before. The cache key is the BLAKE3
// digest of the model file combined with [Options.Fingerprint].
package reduce

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Reduction code that timestamps or times anything accepts a Clock
// instead of calling time.Now directly. In production, Real() provides
// the standard library behavior. In tests, Fake() provides a clock
// that stands still until Advance or Set is called, so reduction
// durations and cache timestamps are deterministic:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	store, _ := docstore.Open(docstore.Config{Path: path, Clock: c})
//	c.Advance(time.Hour)
package clock

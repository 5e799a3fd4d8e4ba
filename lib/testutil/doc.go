// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for archetype packages.
//
// [SmallOffice] builds a two-zone building model (one interior core
// zone, one exterior perimeter zone) with real box geometry, a handful
// of materials and constructions, schedules, and every zone setting
// block. Reduction, serialization, and CLI tests all start from it so
// their expectations line up: the core zone encloses 100 m³ over 50 m²
// of floor, the perimeter zone 50 m³ over 25 m².
//
// [BoxSurfaces] generates the six faces of an axis-aligned box zone
// with caller-chosen boundary conditions, for tests that need their
// own geometry.
//
// [Approx] and [RequireApprox] compare floats with an absolute
// tolerance.
//
// All helpers call t.Fatalf or t.Errorf on failure rather than
// returning errors, since test setup failures are not recoverable.
package testutil

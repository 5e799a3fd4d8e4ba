// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package geom computes the few geometric quantities zone reduction
// needs from already-parsed surface polygons: planar area, orientation
// (tilt from horizontal), centroid, and the enclosed volume of a closed
// shell of polygons.
//
// Vertices are [r3.Vec] values in model coordinates (meters, Z up).
// Polygons are expected to be planar and ordered counter-clockwise when
// viewed from outside the zone, which is the convention simulation
// engines use for surface vertex lists. Volume is orientation-agnostic
// (it returns the absolute value) so a consistently clockwise shell
// also works.
package geom

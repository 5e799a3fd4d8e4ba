// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Polygon is an ordered list of vertices. The closing edge from the
// last vertex back to the first is implicit.
type Polygon []r3.Vec

// Degenerate reports whether the polygon has fewer than three vertices
// or zero area.
func (p Polygon) Degenerate() bool {
	return len(p) < 3 || p.Area() < 1e-12
}

// Normal returns the Newell normal of the polygon. Its direction is the
// outward face normal for counter-clockwise vertex order and its length
// is twice the polygon's area. Returns the zero vector for fewer than
// three vertices.
func (p Polygon) Normal() r3.Vec {
	var normal r3.Vec
	if len(p) < 3 {
		return normal
	}
	for i := range p {
		current := p[i]
		next := p[(i+1)%len(p)]
		normal.X += (current.Y - next.Y) * (current.Z + next.Z)
		normal.Y += (current.Z - next.Z) * (current.X + next.X)
		normal.Z += (current.X - next.X) * (current.Y + next.Y)
	}
	return normal
}

// Area returns the planar area of the polygon in square meters.
func (p Polygon) Area() float64 {
	return r3.Norm(p.Normal()) / 2
}

// Tilt returns the angle in degrees between the polygon's outward
// normal and the vertical axis: 0 for an upward-facing roof, 90 for a
// wall, 180 for a downward-facing floor. Degenerate polygons report 0.
func (p Polygon) Tilt() float64 {
	normal := p.Normal()
	length := r3.Norm(normal)
	if length < 1e-12 {
		return 0
	}
	cosine := normal.Z / length
	cosine = math.Max(-1, math.Min(1, cosine))
	return math.Acos(cosine) * 180 / math.Pi
}

// IsVertical reports whether the polygon's tilt is within tolerance
// degrees of 90.
func (p Polygon) IsVertical(tolerance float64) bool {
	return math.Abs(p.Tilt()-90) <= tolerance
}

// Centroid returns the vertex average of the polygon. For the convex
// surfaces found in zone geometry this lies on the surface.
func (p Polygon) Centroid() r3.Vec {
	var sum r3.Vec
	if len(p) == 0 {
		return sum
	}
	for _, vertex := range p {
		sum = r3.Add(sum, vertex)
	}
	return r3.Scale(1/float64(len(p)), sum)
}

// Volume returns the volume enclosed by a closed shell of polygons.
// Each polygon is fan-triangulated from its first vertex and every
// triangle contributes the signed volume of the tetrahedron it forms
// with the origin:
//
//	(x0*y1*z2 + x1*y2*z0 + x2*y0*z1 - x0*y2*z1 - x1*y0*z2 - x2*y1*z0) / 6
//
// The absolute value of the sum is returned. An open shell yields a
// meaningless (but finite) number; callers that cannot guarantee a
// closed shell should prefer a reported volume.
func Volume(shell []Polygon) float64 {
	var total float64
	for _, polygon := range shell {
		if len(polygon) < 3 {
			continue
		}
		origin := polygon[0]
		for i := 1; i+1 < len(polygon); i++ {
			total += signedTetrahedron(origin, polygon[i], polygon[i+1])
		}
	}
	return math.Abs(total) / 6
}

// signedTetrahedron returns six times the signed volume of the
// tetrahedron (origin, a, b, c), which is the scalar triple product.
func signedTetrahedron(a, b, c r3.Vec) float64 {
	return r3.Dot(a, r3.Cross(b, c))
}

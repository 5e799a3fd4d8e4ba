// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package geom

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// box returns the six outward-facing faces of an axis-aligned box with
// one corner at the origin.
func box(width, depth, height float64) []Polygon {
	v := func(x, y, z float64) r3.Vec { return r3.Vec{X: x, Y: y, Z: z} }
	return []Polygon{
		// floor, facing down
		{v(0, 0, 0), v(0, depth, 0), v(width, depth, 0), v(width, 0, 0)},
		// roof, facing up
		{v(0, 0, height), v(width, 0, height), v(width, depth, height), v(0, depth, height)},
		// south wall, facing -Y
		{v(0, 0, 0), v(width, 0, 0), v(width, 0, height), v(0, 0, height)},
		// north wall, facing +Y
		{v(width, depth, 0), v(0, depth, 0), v(0, depth, height), v(width, depth, height)},
		// west wall, facing -X
		{v(0, depth, 0), v(0, 0, 0), v(0, 0, height), v(0, depth, height)},
		// east wall, facing +X
		{v(width, 0, 0), v(width, depth, 0), v(width, depth, height), v(width, 0, height)},
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestArea(t *testing.T) {
	faces := box(10, 5, 3)
	tests := []struct {
		name string
		face Polygon
		want float64
	}{
		{"floor", faces[0], 50},
		{"roof", faces[1], 50},
		{"south", faces[2], 30},
		{"east", faces[5], 15},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.face.Area(); !approx(got, test.want) {
				t.Errorf("Area() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestTilt(t *testing.T) {
	faces := box(4, 4, 3)
	if got := faces[0].Tilt(); !approx(got, 180) {
		t.Errorf("floor tilt = %v, want 180", got)
	}
	if got := faces[1].Tilt(); !approx(got, 0) {
		t.Errorf("roof tilt = %v, want 0", got)
	}
	for i := 2; i < 6; i++ {
		if !faces[i].IsVertical(1) {
			t.Errorf("wall %d tilt = %v, want 90", i, faces[i].Tilt())
		}
	}
}

func TestVolume(t *testing.T) {
	if got := Volume(box(10, 5, 3)); !approx(got, 150) {
		t.Errorf("Volume(box) = %v, want 150", got)
	}

	// Reversing every face flips the sign of each tetrahedron; the
	// absolute value is unchanged.
	reversed := box(2, 2, 2)
	for _, face := range reversed {
		for i, j := 0, len(face)-1; i < j; i, j = i+1, j-1 {
			face[i], face[j] = face[j], face[i]
		}
	}
	if got := Volume(reversed); !approx(got, 8) {
		t.Errorf("Volume(reversed box) = %v, want 8", got)
	}
}

func TestDegenerate(t *testing.T) {
	line := Polygon{{X: 0}, {X: 1}, {X: 2}}
	if !line.Degenerate() {
		t.Error("collinear polygon should be degenerate")
	}
	if !(Polygon{{X: 0}, {X: 1}}).Degenerate() {
		t.Error("two-vertex polygon should be degenerate")
	}
	if box(1, 1, 1)[0].Degenerate() {
		t.Error("unit square should not be degenerate")
	}
}

func TestCentroid(t *testing.T) {
	got := box(10, 5, 3)[1].Centroid()
	want := r3.Vec{X: 5, Y: 2.5, Z: 3}
	if !approx(got.X, want.X) || !approx(got.Y, want.Y) || !approx(got.Z, want.Z) {
		t.Errorf("Centroid() = %v, want %v", got, want)
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import "math"

// DefaultTolerance is the absolute tolerance used by RequireApprox.
const DefaultTolerance = 1e-6

// Approx reports whether a and b differ by at most tolerance.
func Approx(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// RequireApprox fails the test (without stopping it) when got is not
// within DefaultTolerance of want.
//
//	testutil.RequireApprox(t, "Conductivity", combined.Conductivity, 150)
func RequireApprox(t interface {
	Helper()
	Errorf(format string, args ...any)
}, label string, got, want float64) {
	t.Helper()
	if !Approx(got, want, DefaultTolerance) {
		t.Errorf("%s = %v, want %v", label, got, want)
	}
}

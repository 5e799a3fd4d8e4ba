// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// resolveWeights returns the caller's weights, or the given defaults
// when weights is nil.
func resolveWeights(weights []float64, defaultA, defaultB float64) ([]float64, error) {
	if weights == nil {
		return []float64{defaultA, defaultB}, nil
	}
	if len(weights) != 2 {
		return nil, fmt.Errorf("combine weights: want 2 values, got %d", len(weights))
	}
	for _, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("combine weights: negative weight %v", w)
		}
	}
	return weights, nil
}

// floatMean is the weighted mean of a and b. Weights that sum to zero
// give the unweighted mean.
func floatMean(a, b float64, weights []float64) float64 {
	if len(weights) != 2 || weights[0]+weights[1] == 0 {
		return (a + b) / 2
	}
	return stat.Mean([]float64{a, b}, weights)
}

// seriesMean is the element-wise weighted mean of two equal-length
// series.
func seriesMean(a, b []float64, weights []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = floatMean(a[i], b[i], weights)
	}
	return out
}

// strMean keeps a when it is set.
func strMean(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func concat(a, b []float64) []float64 {
	if len(a)+len(b) == 0 {
		return nil
	}
	out := make([]float64, 0, len(a)+len(b))
	return append(append(out, a...), b...)
}

// heavier reports whether the first weight dominates (ties go to the
// first).
func heavier(weights []float64) bool {
	return len(weights) != 2 || weights[0] >= weights[1]
}

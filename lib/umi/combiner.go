// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

import "fmt"

// combiner combines the referenced entities of two aggregates with one
// set of weights, keeping the first error so field lists stay flat.
type combiner struct {
	r   *Registry
	w   []float64
	err error
}

func (c *combiner) fail(field string, err error) {
	if c.err == nil {
		c.err = fmt.Errorf("%s: %w", field, err)
	}
}

func (c *combiner) schedule(field string, a, b *YearSchedule) *YearSchedule {
	if c.err != nil {
		return nil
	}
	s, err := a.Combine(c.r, b, c.w)
	if err != nil {
		c.fail(field, err)
	}
	return s
}

func (c *combiner) opaque(field string, a, b *OpaqueConstruction) *OpaqueConstruction {
	if c.err != nil {
		return nil
	}
	s, err := a.Combine(c.r, b, c.w)
	if err != nil {
		c.fail(field, err)
	}
	return s
}

func (c *combiner) window(field string, a, b *WindowConstruction) *WindowConstruction {
	if c.err != nil {
		return nil
	}
	s, err := a.Combine(c.r, b, c.w)
	if err != nil {
		c.fail(field, err)
	}
	return s
}

func (c *combiner) mean(a, b float64) float64 {
	return floatMean(a, b, c.w)
}

func sameSchedule(a, b *YearSchedule) bool {
	return a == b || a.Equal(b)
}

func scheduleChildren(schedules ...*YearSchedule) []Entity {
	children := make([]Entity, 0, len(schedules))
	for _, s := range schedules {
		if s != nil {
			children = append(children, s)
		}
	}
	return children
}

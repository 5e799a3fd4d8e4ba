// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/bureau-foundation/archetype/lib/binhash"
)

// DefaultCategory is the category of entities created without one.
const DefaultCategory = "Uncategorized"

// Meta is the metadata every entity embeds. ID is assigned by the
// registry that created the entity and is unique within an
// [IDSequence].
type Meta struct {
	Name       string
	Category   string
	Comments   string
	DataSource string
	ID         int64

	predecessors []*Meta
}

// Metadata returns the embedded metadata. It is promoted to every
// entity type and satisfies the first half of [Entity].
func (m *Meta) Metadata() *Meta { return m }

// Predecessors returns the metadata of the entities this one was
// combined from. An entity that is not the result of a combination is
// its own only predecessor.
func (m *Meta) Predecessors() []*Meta {
	if len(m.predecessors) == 0 {
		return []*Meta{m}
	}
	return slices.Clone(m.predecessors)
}

// PredecessorNames returns the names of [Meta.Predecessors] in order.
func (m *Meta) PredecessorNames() []string {
	predecessors := m.Predecessors()
	names := make([]string, len(predecessors))
	for i, p := range predecessors {
		names[i] = p.Name
	}
	return names
}

func (m *Meta) fillDefaults() {
	if m.Category == "" {
		m.Category = DefaultCategory
	}
}

// Entity is implemented by every entity kind in this package.
type Entity interface {
	Metadata() *Meta
	Kind() Kind

	// children returns referenced entities, in field order, for
	// library traversal. Nil references are omitted.
	children() []Entity
	// equalEntity is value equality against another entity of any
	// kind.
	equalEntity(other Entity) bool
	// combineEntity combines with an entity of the same kind.
	combineEntity(r *Registry, other Entity, weights []float64) (Entity, error)
}

// combineMeta derives the metadata of the entity produced by combining
// a and b with weights w. The name digest covers the predecessor names
// and each side's share of the weight, so one pair combined under
// different weights yields different entities, while swapping the
// operands (and their weights) yields the same one.
func combineMeta(kind Kind, a, b *Meta, w []float64) Meta {
	predecessors := append(a.Predecessors(), b.Predecessors()...)
	names := make([]string, len(predecessors))
	for i, p := range predecessors {
		names[i] = p.Name
	}
	shareA, shareB := weightShares(w)
	keyed := append(slices.Clone(names),
		weightToken(a, shareA),
		weightToken(b, shareB))
	digest := binhash.FormatDigest(binhash.NameDigest(keyed))

	var comments strings.Builder
	comments.WriteString("Object composed of a combination of these objects:")
	for _, name := range uniqueSorted(names) {
		comments.WriteString("\n- ")
		comments.WriteString(name)
	}

	return Meta{
		Name:         fmt.Sprintf("Combined_%s_%s", kind, digest[:12]),
		Category:     unionField(a.Category, b.Category),
		Comments:     comments.String(),
		DataSource:   unionField(a.DataSource, b.DataSource),
		predecessors: predecessors,
	}
}

// weightShares normalizes a weight pair to fractions of its sum. Zero
// or missing weights are an even split.
func weightShares(w []float64) (float64, float64) {
	if len(w) != 2 || w[0]+w[1] == 0 {
		return 0.5, 0.5
	}
	sum := w[0] + w[1]
	return w[0] / sum, w[1] / sum
}

// weightToken identifies one operand by its sorted predecessor names
// together with its weight share.
func weightToken(m *Meta, share float64) string {
	names := m.PredecessorNames()
	slices.Sort(names)
	return fmt.Sprintf("\x00weight\x00%s=%s", strings.Join(names, "\x1f"), strconv.FormatFloat(share, 'g', 9, 64))
}

// unionField merges two comma-separated string fields into the sorted
// union of their elements.
func unionField(a, b string) string {
	var parts []string
	for _, field := range []string{a, b} {
		for _, part := range strings.Split(field, ",") {
			if part = strings.TrimSpace(part); part != "" {
				parts = append(parts, part)
			}
		}
	}
	return strings.Join(uniqueSorted(parts), ", ")
}

func uniqueSorted(values []string) []string {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}

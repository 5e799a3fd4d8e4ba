// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

import (
	"cmp"
	"slices"
)

// Library is a set of building templates and every entity reachable
// from them, each entity once.
type Library struct {
	Name              string
	BuildingTemplates []*BuildingTemplate

	entities map[Kind][]Entity
}

// NewLibrary collects the entities reachable from templates. With
// allZones the zones each template was reduced from are collected too.
func NewLibrary(name string, templates []*BuildingTemplate, allZones bool) *Library {
	library := &Library{
		Name:              name,
		BuildingTemplates: slices.Clone(templates),
		entities:          make(map[Kind][]Entity),
	}
	visited := make(map[int64]bool)
	var visit func(e Entity)
	visit = func(e Entity) {
		id := e.Metadata().ID
		if visited[id] {
			return
		}
		visited[id] = true
		library.entities[e.Kind()] = append(library.entities[e.Kind()], e)
		for _, child := range e.children() {
			visit(child)
		}
		if template, ok := e.(*BuildingTemplate); ok && allZones {
			for _, zone := range template.allZoneChildren() {
				visit(zone)
			}
		}
	}
	for _, template := range templates {
		visit(template)
	}
	return library
}

// Entities returns the library's entities of a kind, sorted by name.
func (l *Library) Entities(kind Kind) []Entity {
	entities := slices.Clone(l.entities[kind])
	slices.SortStableFunc(entities, func(a, b Entity) int {
		return cmp.Or(
			cmp.Compare(a.Metadata().Name, b.Metadata().Name),
			cmp.Compare(a.Metadata().ID, b.Metadata().ID),
		)
	})
	return entities
}

// Counts returns the number of entities of each kind.
func (l *Library) Counts() map[Kind]int {
	counts := make(map[Kind]int, len(Kinds))
	for _, kind := range Kinds {
		counts[kind] = len(l.entities[kind])
	}
	return counts
}

// Len returns the total number of entities.
func (l *Library) Len() int {
	var total int
	for _, entities := range l.entities {
		total += len(entities)
	}
	return total
}

// IncompleteConstructionSets returns the construction sets that still
// have unset slots.
func (l *Library) IncompleteConstructionSets() []*ZoneConstructionSet {
	var incomplete []*ZoneConstructionSet
	for _, e := range l.Entities(KindZoneConstructionSet) {
		if set := e.(*ZoneConstructionSet); len(set.Missing()) > 0 {
			incomplete = append(incomplete, set)
		}
	}
	return incomplete
}

// Merge returns a library holding the templates of every input library.
// Entities shared between inputs appear once.
func Merge(name string, libraries ...*Library) *Library {
	var templates []*BuildingTemplate
	for _, l := range libraries {
		templates = append(templates, l.BuildingTemplates...)
	}
	merged := &Library{
		Name:              name,
		BuildingTemplates: templates,
		entities:          make(map[Kind][]Entity),
	}
	seen := make(map[int64]bool)
	for _, l := range libraries {
		for _, kind := range Kinds {
			for _, e := range l.entities[kind] {
				if id := e.Metadata().ID; !seen[id] {
					seen[id] = true
					merged.entities[kind] = append(merged.entities[kind], e)
				}
			}
		}
	}
	return merged
}

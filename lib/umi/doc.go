// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package umi is the building template object model: the entities a
// reduced building is made of (materials, constructions, schedules,
// zone settings, zones, building templates), the rules for combining
// two entities of a kind into one representative, and the $ref/$id
// document form the template library is exchanged in.
//
// # Identity
//
// Every entity embeds [Meta] (Name, Category, Comments, DataSource,
// ID). Entities are created through a [Registry], which guarantees at
// most one live entity per (kind, name) pair: asking for an entity
// whose name is already registered returns the registered one.
// Registries are explicit values, never globals, so independent
// library builds (and tests) do not share state. A [Registry] created
// with [WithStrictNames] reports a [NameCollisionError] instead of
// silently collapsing two value-different entities that share a name.
//
// IDs come from an [IDSequence]. Registries that will be serialized
// into the same document (the per-building registries of a batch run)
// share one sequence so IDs stay unique across them.
//
// # Combination
//
// Each kind has a typed Combine method. Numeric fields take the
// weighted mean, strings keep the receiver's value when set, lists
// concatenate, and booleans OR. Window settings take the maximum of
// their numeric setpoints instead of a mean. Default weights are kind
// specific: density for materials, mass per area for constructions,
// and the owning zones' volume (or area, see [WithZoneWeight]) for
// zone settings and zones. Combining an entity with a value-equal one
// returns the receiver. The generic [Combine] dispatches on kind and
// reports a [TypeMismatchError] for mismatched kinds; [Extend]
// combines in place, preserving the receiver's ID and name.
//
// Combined entities are named Combined_<Kind>_<digest>, where the
// digest is derived from the names of every entity that went into the
// combination. Combining the same inputs twice therefore returns the
// same registered entity.
//
// # Zones
//
// A [ZoneConstructionSet] is built by dispatching each zone surface to
// one of five slots (see [Dispatch]). Zones own their settings, and
// settings refer back to their zone through a [ZoneHandle] into the
// registry's zone arena rather than a pointer.
//
// # Documents
//
// [NewLibrary] walks building templates and collects every reachable
// entity once. [Library.Document] emits the 17-category [Document];
// [FromDocument] rebuilds a library from one, resolving references
// through a [RefIndex] scoped to that single build.
package umi

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

// Combine combines two entities of the same kind with that kind's
// rules. Entities of different kinds return a [TypeMismatchError].
// Building templates cannot be combined.
func Combine(r *Registry, a, b Entity, weights []float64) (Entity, error) {
	if a.Kind() != b.Kind() {
		return nil, &TypeMismatchError{Left: a.Kind(), Right: b.Kind()}
	}
	return a.combineEntity(r, b, weights)
}

// Extend combines other into self in place: self takes the combined
// values and predecessors but keeps its own ID, name, and zone handle.
// A combined entity created only for this call is dropped from the
// registry; one that was already registered stays.
func Extend[E any, P interface {
	*E
	Entity
}](r *Registry, self P, other P, weights []float64) error {
	before := r.ids.Last()

	combined, err := self.combineEntity(r, other, weights)
	if err != nil {
		return err
	}
	result := combined.(P)
	if result == self {
		return nil
	}
	if result.Metadata().ID > before && result != other {
		r.forget(result)
	}

	id, selfName := self.Metadata().ID, self.Metadata().Name
	var handle ZoneHandle
	if zone, ok := any(self).(*Zone); ok {
		handle = zone.handle
	}

	*self = *result
	self.Metadata().ID = id
	self.Metadata().Name = selfName
	if zone, ok := any(self).(*Zone); ok {
		zone.handle = handle
		zone.adoptSettings()
	}
	return nil
}

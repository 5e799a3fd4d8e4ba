// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

import (
	"errors"
	"fmt"
)

// ErrNoZones is returned when a building has no zones that can take
// part in reduction.
var ErrNoZones = errors.New("no zones to reduce")

// ErrEmptyName is returned when an entity is registered without a
// name.
var ErrEmptyName = errors.New("entity name is required")

// ClassificationError reports a surface whose (type, outside boundary
// condition) pair has no construction slot.
type ClassificationError struct {
	Surface           string
	SurfaceType       string
	BoundaryCondition string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("surface %q: (%s, %s) is not supported by the surface dispatcher",
		e.Surface, e.SurfaceType, e.BoundaryCondition)
}

// TypeMismatchError reports an attempt to combine entities of
// different kinds.
type TypeMismatchError struct {
	Left  Kind
	Right Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cannot combine %s with %s", e.Left, e.Right)
}

// MissingReferenceError reports a document $ref that does not resolve
// to an entity built earlier in the same document.
type MissingReferenceError struct {
	Kind  Kind
	Name  string
	Field string
	Ref   string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("%s %q field %s: unresolved reference $ref=%q", e.Kind, e.Name, e.Field, e.Ref)
}

// NameCollisionError reports two value-different entities of one kind
// registered under the same name. Only a strict registry reports it.
type NameCollisionError struct {
	Kind Kind
	Name string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("%s %q already registered with different values", e.Kind, e.Name)
}

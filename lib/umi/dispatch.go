// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/archetype/lib/model"
)

// Slot is one of the five construction slots of a zone construction
// set.
type Slot int

const (
	SlotFacade Slot = iota
	SlotGround
	SlotPartition
	SlotRoof
	SlotSlab
)

// Slots lists every slot in declaration order.
var Slots = []Slot{SlotFacade, SlotGround, SlotPartition, SlotRoof, SlotSlab}

func (s Slot) String() string {
	switch s {
	case SlotFacade:
		return "Facade"
	case SlotGround:
		return "Ground"
	case SlotPartition:
		return "Partition"
	case SlotRoof:
		return "Roof"
	case SlotSlab:
		return "Slab"
	}
	return fmt.Sprintf("Slot(%d)", int(s))
}

type surfaceClass struct {
	surfaceType string
	boundary    string
}

// dispatchTable maps (surface type, outside boundary condition) to a
// slot. Keys are lower case.
var dispatchTable = map[surfaceClass]Slot{
	{"wall", "outdoors"}: SlotFacade,

	{"floor", "ground"}:     SlotGround,
	{"floor", "outdoors"}:   SlotGround,
	{"floor", "foundation"}: SlotGround,

	{"floor", "surface"}:   SlotSlab,
	{"floor", "adiabatic"}: SlotSlab,
	{"floor", "zone"}:      SlotSlab,

	{"wall", "adiabatic"}: SlotPartition,
	{"wall", "surface"}:   SlotPartition,
	{"wall", "zone"}:      SlotPartition,

	// Below-grade walls are outside the modeled scope and reported as
	// basement facades.
	{"wall", "ground"}: SlotFacade,

	{"roof", "outdoors"}: SlotRoof,
	{"roof", "zone"}:     SlotRoof,
	{"roof", "surface"}:  SlotRoof,

	{"ceiling", "adiabatic"}: SlotSlab,
	{"ceiling", "surface"}:   SlotSlab,
	{"ceiling", "zone"}:      SlotSlab,
}

func classOf(surfaceType, boundary string) surfaceClass {
	return surfaceClass{
		surfaceType: strings.ToLower(strings.TrimSpace(surfaceType)),
		boundary:    strings.ToLower(strings.TrimSpace(boundary)),
	}
}

// Dispatch returns the construction slot for a surface of the given
// type and outside boundary condition. Matching is case-insensitive.
// Pairs outside the table return a [ClassificationError].
func Dispatch(surfaceType, boundary string) (Slot, error) {
	slot, ok := dispatchTable[classOf(surfaceType, boundary)]
	if !ok {
		return 0, &ClassificationError{SurfaceType: surfaceType, BoundaryCondition: boundary}
	}
	return slot, nil
}

// IsBasementFacade reports whether a surface is a below-grade wall,
// which dispatches to the facade slot with a warning.
func IsBasementFacade(surfaceType, boundary string) bool {
	return classOf(surfaceType, boundary) == surfaceClass{"wall", "ground"}
}

// IsDispatched reports whether surfaces of this type take part in
// construction dispatch. Internal mass and shading control surfaces do
// not.
func IsDispatched(surfaceType string) bool {
	switch strings.ToLower(strings.TrimSpace(surfaceType)) {
	case strings.ToLower(model.SurfaceInternalMass), strings.ToLower(model.SurfaceWindowShadingControl):
		return false
	}
	return true
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bureau-foundation/archetype/lib/model"
)

// ZoneConstructionSet holds one opaque construction per slot for a
// zone, with an adiabatic flag per slot.
type ZoneConstructionSet struct {
	Meta
	zoneOwned

	Facade    *OpaqueConstruction
	Ground    *OpaqueConstruction
	Partition *OpaqueConstruction
	Roof      *OpaqueConstruction
	Slab      *OpaqueConstruction

	IsFacadeAdiabatic    bool
	IsGroundAdiabatic    bool
	IsPartitionAdiabatic bool
	IsRoofAdiabatic      bool
	IsSlabAdiabatic      bool
}

// NewZoneConstructionSet registers s, returning the already-registered
// set if one has the same name.
func NewZoneConstructionSet(r *Registry, s ZoneConstructionSet) (*ZoneConstructionSet, error) {
	return register(r, &s)
}

func (*ZoneConstructionSet) Kind() Kind { return KindZoneConstructionSet }

func (s *ZoneConstructionSet) children() []Entity {
	var children []Entity
	for _, slot := range Slots {
		if c := s.Construction(slot); c != nil {
			children = append(children, c)
		}
	}
	return children
}

func (s *ZoneConstructionSet) slot(slot Slot) (**OpaqueConstruction, *bool) {
	switch slot {
	case SlotFacade:
		return &s.Facade, &s.IsFacadeAdiabatic
	case SlotGround:
		return &s.Ground, &s.IsGroundAdiabatic
	case SlotPartition:
		return &s.Partition, &s.IsPartitionAdiabatic
	case SlotRoof:
		return &s.Roof, &s.IsRoofAdiabatic
	case SlotSlab:
		return &s.Slab, &s.IsSlabAdiabatic
	}
	panic(fmt.Sprintf("umi: invalid construction slot %d", int(slot)))
}

// Construction returns the construction in a slot, or nil when unset.
func (s *ZoneConstructionSet) Construction(slot Slot) *OpaqueConstruction {
	c, _ := s.slot(slot)
	return *c
}

// SetConstruction sets the construction in a slot.
func (s *ZoneConstructionSet) SetConstruction(slot Slot, c *OpaqueConstruction) {
	p, _ := s.slot(slot)
	*p = c
}

// Adiabatic returns the adiabatic flag of a slot.
func (s *ZoneConstructionSet) Adiabatic(slot Slot) bool {
	_, a := s.slot(slot)
	return *a
}

// SetAdiabatic sets the adiabatic flag of a slot.
func (s *ZoneConstructionSet) SetAdiabatic(slot Slot, adiabatic bool) {
	_, a := s.slot(slot)
	*a = adiabatic
}

// Missing returns the slots that have no construction.
func (s *ZoneConstructionSet) Missing() []Slot {
	var missing []Slot
	for _, slot := range Slots {
		if s.Construction(slot) == nil {
			missing = append(missing, slot)
		}
	}
	return missing
}

// Validate fills every unset slot with the generic construction for
// that slot and logs each substitution.
func (s *ZoneConstructionSet) Validate(r *Registry) error {
	for _, slot := range s.Missing() {
		generic, err := GenericConstruction(r, slot)
		if err != nil {
			return fmt.Errorf("construction set %q: %w", s.Name, err)
		}
		s.SetConstruction(slot, generic)
		r.logger.Warn("construction slot unset, using generic construction",
			"construction_set", s.Name,
			"slot", slot.String(),
			"construction", generic.Name)
	}
	return nil
}

// Equal reports value equality. Metadata and ownership are not
// compared.
func (s *ZoneConstructionSet) Equal(o *ZoneConstructionSet) bool {
	if s == nil || o == nil {
		return s == o
	}
	for _, slot := range Slots {
		a, b := s.Construction(slot), o.Construction(slot)
		if (a != b && !a.Equal(b)) || s.Adiabatic(slot) != o.Adiabatic(slot) {
			return false
		}
	}
	return true
}

func (s *ZoneConstructionSet) equalEntity(other Entity) bool {
	o, ok := other.(*ZoneConstructionSet)
	return ok && s.Equal(o)
}

// Combine combines s and o slot by slot, weighted by the owning zones
// unless weights are given. A slot set on only one side keeps that
// side's construction. Adiabatic flags OR.
func (s *ZoneConstructionSet) Combine(r *Registry, o *ZoneConstructionSet, weights []float64) (*ZoneConstructionSet, error) {
	if o == nil || s == o || s.Equal(o) {
		return s, nil
	}
	if s == nil {
		return o, nil
	}
	w, err := settingWeights(r, weights, s.owner, o.owner)
	if err != nil {
		return nil, err
	}
	m := &combiner{r: r, w: w}
	combined := ZoneConstructionSet{Meta: combineMeta(KindZoneConstructionSet, &s.Meta, &o.Meta, w)}
	for _, slot := range Slots {
		combined.SetConstruction(slot, m.opaque(slot.String(), s.Construction(slot), o.Construction(slot)))
		combined.SetAdiabatic(slot, s.Adiabatic(slot) || o.Adiabatic(slot))
	}
	if m.err != nil {
		return nil, m.err
	}
	return NewZoneConstructionSet(r, combined)
}

func (s *ZoneConstructionSet) combineEntity(r *Registry, other Entity, weights []float64) (Entity, error) {
	return s.Combine(r, other.(*ZoneConstructionSet), weights)
}

// ConstructionResolver returns the opaque construction with the given
// name.
type ConstructionResolver func(name string) (*OpaqueConstruction, error)

type slotMember struct {
	construction *OpaqueConstruction
	area         float64
}

// ZoneConstructionSetFromSurfaces dispatches each surface to its slot
// and reduces the constructions of each slot into one, weighted by
// surface area. Internal mass and shading control surfaces are
// skipped, as are surfaces without a construction (a partition without
// one is an air wall). A slot is adiabatic when every surface in it has
// an adiabatic boundary. Slots with no surfaces stay unset until
// [ZoneConstructionSet.Validate].
func ZoneConstructionSetFromSurfaces(r *Registry, meta Meta, surfaces []model.Surface, resolve ConstructionResolver) (*ZoneConstructionSet, error) {
	members := make(map[Slot][]slotMember)
	adiabatic := make(map[Slot]bool)

	for _, surface := range surfaces {
		if !IsDispatched(surface.SurfaceType) {
			continue
		}
		slot, err := Dispatch(surface.SurfaceType, surface.OutsideBoundaryCondition)
		if err != nil {
			var classification *ClassificationError
			if errors.As(err, &classification) {
				classification.Surface = surface.Name
			}
			return nil, err
		}
		if IsBasementFacade(surface.SurfaceType, surface.OutsideBoundaryCondition) {
			r.logger.Warn("below-grade wall is not supported, using it as facade",
				"zone", meta.Name, "surface", surface.Name)
		}
		if surface.Construction == "" {
			r.logger.Debug("surface without construction skipped",
				"zone", meta.Name, "surface", surface.Name, "slot", slot.String())
			continue
		}
		construction, err := resolve(surface.Construction)
		if err != nil {
			return nil, fmt.Errorf("surface %q: %w", surface.Name, err)
		}

		isAdiabatic := strings.EqualFold(surface.OutsideBoundaryCondition, model.BoundaryAdiabatic)
		if _, seen := members[slot]; !seen {
			adiabatic[slot] = isAdiabatic
		} else {
			adiabatic[slot] = adiabatic[slot] && isAdiabatic
		}
		members[slot] = addMember(members[slot], construction, surface.Polygon().Area())
	}

	set := ZoneConstructionSet{Meta: meta}
	for _, slot := range Slots {
		list := members[slot]
		if len(list) == 0 {
			continue
		}
		reduced, area := list[0].construction, list[0].area
		for _, member := range list[1:] {
			var err error
			reduced, err = reduced.Combine(r, member.construction, []float64{area, member.area})
			if err != nil {
				return nil, fmt.Errorf("zone %q slot %s: %w", meta.Name, slot, err)
			}
			area += member.area
		}
		set.SetConstruction(slot, reduced)
		set.SetAdiabatic(slot, adiabatic[slot])
	}
	return NewZoneConstructionSet(r, set)
}

// addMember adds a construction's area to a slot, merging value-equal
// constructions.
func addMember(members []slotMember, c *OpaqueConstruction, area float64) []slotMember {
	for i := range members {
		if members[i].construction == c || members[i].construction.Equal(c) {
			members[i].area += area
			return members
		}
	}
	return append(members, slotMember{construction: c, area: area})
}

// GenericConstruction returns the fallback construction for a slot: a
// single layer of generic concrete whose thickness depends on the
// slot.
func GenericConstruction(r *Registry, slot Slot) (*OpaqueConstruction, error) {
	material, err := NewOpaqueMaterial(r, DefaultOpaqueMaterial("Generic Concrete"))
	if err != nil {
		return nil, err
	}
	thickness := 0.2
	switch slot {
	case SlotPartition:
		thickness = 0.1
	case SlotSlab, SlotGround:
		thickness = 0.15
	}
	return NewOpaqueConstruction(r, OpaqueConstruction{
		Meta: Meta{
			Name:       "Generic " + slot.String(),
			Category:   slot.String(),
			Comments:   "Fallback construction for zones without a " + strings.ToLower(slot.String()) + " surface",
			DataSource: "archetype",
		},
		Layers: []MaterialLayer{{Material: material, Thickness: thickness}},
	})
}

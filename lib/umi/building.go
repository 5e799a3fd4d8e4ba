// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

import "slices"

// BuildingTemplate is the reduced form of one building: a core and a
// perimeter zone plus structure, windows, and descriptive metadata. It
// is the root of library traversal and is never combined.
type BuildingTemplate struct {
	Meta

	Core                     *Zone
	Perimeter                *Zone
	Structure                *StructureDefinition
	Windows                  *WindowSetting
	Lifespan                 float64
	PartitionRatio           float64
	DefaultWindowToWallRatio float64
	YearFrom                 int
	YearTo                   int
	Country                  []string
	ClimateZone              []string
	Authors                  []string
	AuthorEmails             []string
	Version                  string

	// Cores and Perimeters are the zones that were reduced into Core
	// and Perimeter. They are serialized only in all-zones mode.
	Cores      []*Zone
	Perimeters []*Zone
}

// DefaultBuildingTemplate returns an unregistered template with the
// library defaults.
func DefaultBuildingTemplate(name string) BuildingTemplate {
	return BuildingTemplate{
		Meta:                     Meta{Name: name},
		Lifespan:                 60,
		PartitionRatio:           0.35,
		DefaultWindowToWallRatio: 0.4,
		Version:                  "v1.0",
	}
}

// NewBuildingTemplate registers b, returning the already-registered
// template if one has the same name.
func NewBuildingTemplate(r *Registry, b BuildingTemplate) (*BuildingTemplate, error) {
	return register(r, &b)
}

func (*BuildingTemplate) Kind() Kind { return KindBuildingTemplate }

func (b *BuildingTemplate) children() []Entity {
	var children []Entity
	if b.Core != nil {
		children = append(children, b.Core)
	}
	if b.Perimeter != nil {
		children = append(children, b.Perimeter)
	}
	if b.Structure != nil {
		children = append(children, b.Structure)
	}
	if b.Windows != nil {
		children = append(children, b.Windows)
	}
	return children
}

// allZoneChildren returns the reduced-from zones.
func (b *BuildingTemplate) allZoneChildren() []Entity {
	children := make([]Entity, 0, len(b.Cores)+len(b.Perimeters))
	for _, z := range b.Cores {
		children = append(children, z)
	}
	for _, z := range b.Perimeters {
		children = append(children, z)
	}
	return children
}

// Validate fills unset construction slots of the core and perimeter
// zones with generic constructions.
func (b *BuildingTemplate) Validate(r *Registry) error {
	for _, z := range []*Zone{b.Core, b.Perimeter} {
		if z == nil || z.Constructions == nil {
			continue
		}
		if err := z.Constructions.Validate(r); err != nil {
			return err
		}
	}
	return nil
}

// Equal reports value equality. Metadata and the reduced-from zone
// lists are not compared.
func (b *BuildingTemplate) Equal(o *BuildingTemplate) bool {
	if b == nil || o == nil {
		return b == o
	}
	return (b.Core == o.Core || b.Core.Equal(o.Core)) &&
		(b.Perimeter == o.Perimeter || b.Perimeter.Equal(o.Perimeter)) &&
		(b.Structure == o.Structure || b.Structure.Equal(o.Structure)) &&
		(b.Windows == o.Windows || b.Windows.Equal(o.Windows)) &&
		b.Lifespan == o.Lifespan &&
		b.PartitionRatio == o.PartitionRatio &&
		b.DefaultWindowToWallRatio == o.DefaultWindowToWallRatio &&
		b.YearFrom == o.YearFrom &&
		b.YearTo == o.YearTo &&
		slices.Equal(b.Country, o.Country) &&
		slices.Equal(b.ClimateZone, o.ClimateZone) &&
		slices.Equal(b.Authors, o.Authors) &&
		slices.Equal(b.AuthorEmails, o.AuthorEmails) &&
		b.Version == o.Version
}

func (b *BuildingTemplate) equalEntity(other Entity) bool {
	o, ok := other.(*BuildingTemplate)
	return ok && b.Equal(o)
}

func (b *BuildingTemplate) combineEntity(*Registry, Entity, []float64) (Entity, error) {
	return nil, &TypeMismatchError{Left: KindBuildingTemplate, Right: KindBuildingTemplate}
}

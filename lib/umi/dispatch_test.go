// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

import (
	"errors"
	"testing"

	"github.com/bureau-foundation/archetype/lib/model"
	"github.com/bureau-foundation/archetype/lib/testutil"
)

func TestDispatch(t *testing.T) {
	tests := []struct {
		surfaceType string
		boundary    string
		want        Slot
	}{
		{"Wall", "Outdoors", SlotFacade},
		{"Wall", "Ground", SlotFacade},
		{"Wall", "Adiabatic", SlotPartition},
		{"Wall", "Surface", SlotPartition},
		{"Wall", "Zone", SlotPartition},
		{"Floor", "Ground", SlotGround},
		{"Floor", "Outdoors", SlotGround},
		{"Floor", "Foundation", SlotGround},
		{"Floor", "Surface", SlotSlab},
		{"Floor", "Adiabatic", SlotSlab},
		{"Floor", "Zone", SlotSlab},
		{"Roof", "Outdoors", SlotRoof},
		{"Roof", "Zone", SlotRoof},
		{"Roof", "Surface", SlotRoof},
		{"Ceiling", "Adiabatic", SlotSlab},
		{"Ceiling", "Surface", SlotSlab},
		{"Ceiling", "Zone", SlotSlab},
		{"WALL", "outdoors", SlotFacade},
		{" roof ", "OUTDOORS", SlotRoof},
	}
	for _, test := range tests {
		t.Run(test.surfaceType+"/"+test.boundary, func(t *testing.T) {
			got, err := Dispatch(test.surfaceType, test.boundary)
			if err != nil {
				t.Fatalf("Dispatch: %v", err)
			}
			if got != test.want {
				t.Errorf("Dispatch(%q, %q) = %s, want %s", test.surfaceType, test.boundary, got, test.want)
			}
		})
	}
}

func TestDispatchUnclassified(t *testing.T) {
	for _, pair := range [][2]string{
		{"Ceiling", "Outdoors"},
		{"Roof", "Ground"},
		{"Door", "Outdoors"},
		{"Wall", "OtherSideCoefficients"},
	} {
		_, err := Dispatch(pair[0], pair[1])
		var classification *ClassificationError
		if !errors.As(err, &classification) {
			t.Errorf("Dispatch(%q, %q) error = %v, want ClassificationError", pair[0], pair[1], err)
			continue
		}
		if classification.SurfaceType != pair[0] || classification.BoundaryCondition != pair[1] {
			t.Errorf("classification = %+v", classification)
		}
	}
}

func TestIsBasementFacade(t *testing.T) {
	if !IsBasementFacade("Wall", "Ground") {
		t.Error("below-grade wall not reported")
	}
	if IsBasementFacade("Wall", "Outdoors") || IsBasementFacade("Floor", "Ground") {
		t.Error("non-basement surface reported as basement facade")
	}
}

func TestIsDispatched(t *testing.T) {
	for surfaceType, want := range map[string]bool{
		model.SurfaceWall:                 true,
		model.SurfaceFloor:                true,
		model.SurfaceRoof:                 true,
		model.SurfaceCeiling:              true,
		model.SurfaceInternalMass:         false,
		model.SurfaceWindowShadingControl: false,
		"internalmass":                    false,
	} {
		if got := IsDispatched(surfaceType); got != want {
			t.Errorf("IsDispatched(%q) = %v, want %v", surfaceType, got, want)
		}
	}
}

func TestSlotString(t *testing.T) {
	names := []string{"Facade", "Ground", "Partition", "Roof", "Slab"}
	for i, slot := range Slots {
		if slot.String() != names[i] {
			t.Errorf("Slots[%d] = %s, want %s", i, slot, names[i])
		}
	}
	if got := Slot(9).String(); got != "Slot(9)" {
		t.Errorf("Slot(9) = %q", got)
	}
}

// resolveFrom resolves construction names against a fixed map.
func resolveFrom(constructions map[string]*OpaqueConstruction) ConstructionResolver {
	return func(name string) (*OpaqueConstruction, error) {
		c, ok := constructions[name]
		if !ok {
			return nil, errors.New("unknown construction " + name)
		}
		return c, nil
	}
}

func TestConstructionSetFromSurfaces(t *testing.T) {
	r := NewRegistry()
	concrete := newOpaque(t, r, "Concrete", 1.8, 2300)
	exterior := newConstruction(t, r, "Exterior", MaterialLayer{Material: concrete, Thickness: 0.3})
	interior := newConstruction(t, r, "Interior", MaterialLayer{Material: concrete, Thickness: 0.1})

	surfaces := testutil.BoxSurfaces(testutil.Box{
		Name: "Walls", Width: 4, Depth: 2, Height: 3,
		South: testutil.Face{Boundary: model.BoundaryOutdoors, Construction: "Exterior"},
		North: testutil.Face{Boundary: model.BoundaryAdiabatic, Construction: "Interior"},
		West:  testutil.Face{Boundary: model.BoundaryAdiabatic, Construction: "Interior"},
		East:  testutil.Face{Boundary: model.BoundarySurface, Construction: "Interior"},
	})
	// Keep only the walls.
	surfaces = surfaces[2:]

	set, err := ZoneConstructionSetFromSurfaces(r, Meta{Name: "Walls_ZoneConstructionSet"}, surfaces,
		resolveFrom(map[string]*OpaqueConstruction{"Exterior": exterior, "Interior": interior}))
	if err != nil {
		t.Fatalf("ZoneConstructionSetFromSurfaces: %v", err)
	}
	if set.Facade != exterior {
		t.Errorf("Facade = %v, want Exterior", set.Facade)
	}
	if set.Partition != interior {
		t.Errorf("Partition = %v, want Interior (equal constructions merge)", set.Partition)
	}
	if set.IsPartitionAdiabatic {
		t.Error("partition slot with a Surface boundary marked adiabatic")
	}

	missing := set.Missing()
	if len(missing) != 3 {
		t.Fatalf("Missing = %v, want Ground, Roof, Slab", missing)
	}

	if err := set.Validate(r); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(set.Missing()) != 0 {
		t.Errorf("Missing after Validate = %v", set.Missing())
	}
	for slot, want := range map[Slot]float64{SlotGround: 0.15, SlotRoof: 0.2, SlotSlab: 0.15} {
		c := set.Construction(slot)
		if c.Name != "Generic "+slot.String() {
			t.Errorf("%s = %q, want the generic construction", slot, c.Name)
		}
		testutil.RequireApprox(t, slot.String()+" thickness", c.Thickness(), want)
	}
}

func TestConstructionSetAreaWeighted(t *testing.T) {
	r := NewRegistry()
	concrete := newOpaque(t, r, "Concrete", 1.8, 2300)
	thick := newConstruction(t, r, "Thick", MaterialLayer{Material: concrete, Thickness: 0.3})
	thin := newConstruction(t, r, "Thin", MaterialLayer{Material: concrete, Thickness: 0.1})

	// South and North are 4x3, West and East are 2x3.
	outdoors := func(construction string) testutil.Face {
		return testutil.Face{Boundary: model.BoundaryOutdoors, Construction: construction}
	}
	surfaces := testutil.BoxSurfaces(testutil.Box{
		Name: "Mixed", Width: 4, Depth: 2, Height: 3,
		South: outdoors("Thick"), North: outdoors("Thick"),
		West: outdoors("Thin"), East: outdoors("Thin"),
	})[2:]

	set, err := ZoneConstructionSetFromSurfaces(r, Meta{Name: "Mixed"}, surfaces,
		resolveFrom(map[string]*OpaqueConstruction{"Thick": thick, "Thin": thin}))
	if err != nil {
		t.Fatalf("ZoneConstructionSetFromSurfaces: %v", err)
	}
	want := (24*0.3 + 12*0.1) / 36
	testutil.RequireApprox(t, "Facade thickness", set.Facade.Thickness(), want)
}

func TestConstructionSetUnclassifiedSurface(t *testing.T) {
	r := NewRegistry()
	surfaces := []model.Surface{{
		Name:                     "Odd Ceiling",
		SurfaceType:              model.SurfaceCeiling,
		OutsideBoundaryCondition: model.BoundaryOutdoors,
		Construction:             "Anything",
	}}
	_, err := ZoneConstructionSetFromSurfaces(r, Meta{Name: "Odd"}, surfaces, resolveFrom(nil))
	var classification *ClassificationError
	if !errors.As(err, &classification) {
		t.Fatalf("error = %v, want ClassificationError", err)
	}
	if classification.Surface != "Odd Ceiling" {
		t.Errorf("Surface = %q, want %q", classification.Surface, "Odd Ceiling")
	}
}

func TestConstructionSetAdiabaticSlot(t *testing.T) {
	r := NewRegistry()
	concrete := newOpaque(t, r, "Concrete", 1.8, 2300)
	interior := newConstruction(t, r, "Interior", MaterialLayer{Material: concrete, Thickness: 0.1})
	adiabatic := testutil.Face{Boundary: model.BoundaryAdiabatic, Construction: "Interior"}
	surfaces := testutil.BoxSurfaces(testutil.Box{
		Name: "Inner", Width: 2, Depth: 2, Height: 2,
		South: adiabatic, North: adiabatic, West: adiabatic, East: adiabatic,
	})[2:]

	set, err := ZoneConstructionSetFromSurfaces(r, Meta{Name: "Inner"}, surfaces,
		resolveFrom(map[string]*OpaqueConstruction{"Interior": interior}))
	if err != nil {
		t.Fatalf("ZoneConstructionSetFromSurfaces: %v", err)
	}
	if !set.IsPartitionAdiabatic {
		t.Error("all-adiabatic partition slot not marked adiabatic")
	}
}

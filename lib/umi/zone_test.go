// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

import (
	"testing"

	"github.com/bureau-foundation/archetype/lib/testutil"
)

// smallOffice translates both zones of the SmallOffice fixture.
func smallOffice(t *testing.T, r *Registry) (core, perimeter *Zone) {
	t.Helper()
	building := testutil.SmallOffice()
	builder := NewBuilder(r, building)

	var err error
	if core, err = builder.Zone(&building.Zones[0]); err != nil {
		t.Fatalf("Zone(Core): %v", err)
	}
	if perimeter, err = builder.Zone(&building.Zones[1]); err != nil {
		t.Fatalf("Zone(Perimeter): %v", err)
	}
	return core, perimeter
}

func TestZoneGeometry(t *testing.T) {
	r := NewRegistry()
	core, perimeter := smallOffice(t, r)

	testutil.RequireApprox(t, "core area", core.Area(), 50)
	testutil.RequireApprox(t, "core volume", core.Volume(), 100)
	testutil.RequireApprox(t, "perimeter area", perimeter.Area(), 25)
	testutil.RequireApprox(t, "perimeter volume", perimeter.Volume(), 50)

	if !core.IsCore() {
		t.Error("core zone not detected as core")
	}
	if perimeter.IsCore() {
		t.Error("perimeter zone detected as core")
	}
}

func TestZoneMultiplier(t *testing.T) {
	r := NewRegistry()
	building := testutil.SmallOffice()
	building.Zones[1].Multiplier = 3

	z, err := NewBuilder(r, building).Zone(&building.Zones[1])
	if err != nil {
		t.Fatalf("Zone: %v", err)
	}
	testutil.RequireApprox(t, "area", z.Area(), 75)
	testutil.RequireApprox(t, "volume", z.Volume(), 150)
}

func TestZoneReportedGeometry(t *testing.T) {
	r := NewRegistry()
	building := testutil.SmallOffice()
	building.Zones[0].Surfaces = nil

	z, err := NewBuilder(r, building).Zone(&building.Zones[0])
	if err != nil {
		t.Fatalf("Zone: %v", err)
	}
	testutil.RequireApprox(t, "area", z.Area(), 50)
	testutil.RequireApprox(t, "volume", z.Volume(), 100)
	if z.IsCore() {
		t.Error("zone without surfaces detected as core")
	}

	z.SetArea(12)
	testutil.RequireApprox(t, "area after SetArea", z.Area(), 12)
}

func TestBuilderZoneSettings(t *testing.T) {
	r := NewRegistry()
	core, perimeter := smallOffice(t, r)

	if core.Loads.Name != "Core_ZoneLoad" {
		t.Errorf("Loads.Name = %q, want Core_ZoneLoad", core.Loads.Name)
	}
	if core.Loads.DataSource != "Small Office" {
		t.Errorf("Loads.DataSource = %q, want Small Office", core.Loads.DataSource)
	}
	if core.Loads.OccupancySchedule == nil || core.Loads.OccupancySchedule.Name != "Office Occupancy" {
		t.Errorf("OccupancySchedule = %v, want Office Occupancy", core.Loads.OccupancySchedule)
	}
	if core.Loads.OccupancySchedule != perimeter.Loads.OccupancySchedule {
		t.Error("zones of one building do not share the schedule entity")
	}
	if core.Loads.Owner() != core.Handle() {
		t.Errorf("Loads owner = %d, want %d", core.Loads.Owner(), core.Handle())
	}

	if core.Windows != nil {
		t.Error("core zone without windows has a window setting")
	}
	if perimeter.Windows == nil || perimeter.Windows.Construction == nil {
		t.Fatal("perimeter window setting or construction missing")
	}
	if perimeter.Windows.Construction.Name != testutil.DoubleClear {
		t.Errorf("window construction = %q, want %q", perimeter.Windows.Construction.Name, testutil.DoubleClear)
	}
	if !perimeter.Windows.IsShadingSystemOn {
		t.Error("IsShadingSystemOn not carried over")
	}

	if core.Constructions.Facade != nil {
		t.Errorf("core Facade = %q, want unset", core.Constructions.Facade.Name)
	}
	if core.Constructions.Partition == nil || core.Constructions.Partition.Name != testutil.InteriorWall {
		t.Errorf("core Partition = %v, want %s", core.Constructions.Partition, testutil.InteriorWall)
	}

	testutil.RequireApprox(t, "core internal mass exposure", core.InternalMassExposedPerFloorArea, 0.5)
	if core.InternalMassConstruction.Name != testutil.FurnitureMass {
		t.Errorf("core internal mass = %q, want %q", core.InternalMassConstruction.Name, testutil.FurnitureMass)
	}
	if perimeter.InternalMassConstruction.Name != "InternalMass" || perimeter.InternalMassExposedPerFloorArea != 0 {
		t.Errorf("perimeter internal mass = %q at %v, want the generic construction at 0",
			perimeter.InternalMassConstruction.Name, perimeter.InternalMassExposedPerFloorArea)
	}
}

func TestZoneDefaultWeights(t *testing.T) {
	r := NewRegistry()
	core, perimeter := smallOffice(t, r)
	w := core.DefaultWeights(r, perimeter)
	if w[0] != 100 || w[1] != 50 {
		t.Errorf("volume weights = %v, want [100 50]", w)
	}

	byArea := NewRegistry(WithZoneWeight(ZoneWeightArea))
	core, perimeter = smallOffice(t, byArea)
	w = core.DefaultWeights(byArea, perimeter)
	if w[0] != 50 || w[1] != 25 {
		t.Errorf("area weights = %v, want [50 25]", w)
	}
}

func TestZoneCombine(t *testing.T) {
	r := NewRegistry()
	core, perimeter := smallOffice(t, r)

	combined, err := core.Combine(r, perimeter, nil)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}

	testutil.RequireApprox(t, "area", combined.Area(), 75)
	testutil.RequireApprox(t, "volume", combined.Volume(), 150)
	testutil.RequireApprox(t, "LightingPowerDensity", combined.Loads.LightingPowerDensity, (12*100+8*50)/150.0)
	testutil.RequireApprox(t, "Infiltration", combined.Ventilation.Infiltration, (0.1*100+0.3*50)/150)

	if combined.Constructions.Facade == nil || combined.Constructions.Facade.Name != testutil.ExteriorWall {
		t.Errorf("Facade = %v, want the perimeter's %s", combined.Constructions.Facade, testutil.ExteriorWall)
	}
	if combined.Constructions.Partition != core.Constructions.Partition {
		t.Error("shared partition construction was not kept")
	}
	if combined.Windows != nil {
		t.Error("window setting combined although only one zone has windows")
	}

	// Only the core has internal mass, so its construction is kept and
	// the exposure spreads over the combined floor area.
	if combined.InternalMassConstruction != core.InternalMassConstruction {
		t.Errorf("internal mass = %q, want %q", combined.InternalMassConstruction.Name, core.InternalMassConstruction.Name)
	}
	testutil.RequireApprox(t, "internal mass exposure", combined.InternalMassExposedPerFloorArea, 25.0/75)

	if combined.Loads.Owner() != combined.Handle() {
		t.Errorf("combined Loads owner = %d, want %d", combined.Loads.Owner(), combined.Handle())
	}
	if r.Zone(combined.Handle()) != combined {
		t.Error("combined zone not in the zone arena")
	}
}

func TestZoneCombineEqualZones(t *testing.T) {
	r := NewRegistry()
	core, _ := smallOffice(t, r)
	got, err := core.Combine(r, core, nil)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if got != core {
		t.Error("combining a zone with itself did not return it")
	}
}

func TestExtendKeepsIdentity(t *testing.T) {
	r := NewRegistry()
	core, perimeter := smallOffice(t, r)
	id, handle := core.ID, core.Handle()
	before := r.Len()

	if err := Extend(r, core, perimeter, nil); err != nil {
		t.Fatalf("Extend: %v", err)
	}
	if core.ID != id || core.Name != "Core" || core.Handle() != handle {
		t.Errorf("identity = (%d, %q, %d), want (%d, Core, %d)", core.ID, core.Name, core.Handle(), id, handle)
	}
	testutil.RequireApprox(t, "area", core.Area(), 75)
	testutil.RequireApprox(t, "LightingPowerDensity", core.Loads.LightingPowerDensity, (12*100+8*50)/150.0)
	if got, ok := r.Lookup(KindZone, "Core"); !ok || got != Entity(core) {
		t.Error("extended zone no longer registered under its name")
	}
	if core.Loads.Owner() != handle {
		t.Errorf("Loads owner = %d, want %d", core.Loads.Owner(), handle)
	}
	zones := r.All(KindZone)
	if len(zones) != 2 {
		t.Errorf("registered zones = %d, want 2 (the combined zone is dropped)", len(zones))
	}
	if r.Len() <= before {
		t.Errorf("Len = %d, want the combined settings registered (was %d)", r.Len(), before)
	}
}

func TestExtendMaterial(t *testing.T) {
	r := NewRegistry()
	light := newOpaque(t, r, "Light", 1, 100)
	heavy := newOpaque(t, r, "Heavy", 3, 300)
	id := light.ID

	if err := Extend(r, light, heavy, nil); err != nil {
		t.Fatalf("Extend: %v", err)
	}
	if light.ID != id || light.Name != "Light" {
		t.Errorf("identity = (%d, %q), want (%d, Light)", light.ID, light.Name, id)
	}
	testutil.RequireApprox(t, "Conductivity", light.Conductivity, 2.5)
	if len(r.All(KindOpaqueMaterial)) != 2 {
		t.Errorf("materials = %d, want 2", len(r.All(KindOpaqueMaterial)))
	}
}

func TestZoneAccumulateEqualZones(t *testing.T) {
	r := NewRegistry()
	building := testutil.SmallOffice()
	builder := NewBuilder(r, building)
	perimeter, err := builder.Zone(&building.Zones[1])
	if err != nil {
		t.Fatalf("Zone(Perimeter): %v", err)
	}
	twinRecord := building.Zones[1]
	twinRecord.Name = "Perimeter Twin"
	twin, err := builder.Zone(&twinRecord)
	if err != nil {
		t.Fatalf("Zone(Perimeter Twin): %v", err)
	}
	if !perimeter.Equal(twin) {
		t.Fatal("twin zone is not value-equal to the perimeter")
	}

	combined, err := perimeter.Combine(r, twin, nil)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if combined != perimeter {
		t.Errorf("Combine of value-equal zones = %q, want the receiver", combined.Name)
	}

	accumulated, err := perimeter.Accumulate(r, twin)
	if err != nil {
		t.Fatalf("Accumulate: %v", err)
	}
	if accumulated == perimeter || accumulated == twin {
		t.Fatal("Accumulate returned an input zone")
	}
	testutil.RequireApprox(t, "area", accumulated.Area(), 50)
	testutil.RequireApprox(t, "volume", accumulated.Volume(), 100)
	testutil.RequireApprox(t, "perimeter area", perimeter.Area(), 25)
	if accumulated.Loads != perimeter.Loads {
		t.Error("accumulated zone does not share the receiver's loads")
	}
	if accumulated.Loads.Owner() != accumulated.Handle() {
		t.Errorf("Loads owner = %d, want %d", accumulated.Loads.Owner(), accumulated.Handle())
	}
	names := accumulated.PredecessorNames()
	if len(names) != 2 || names[0] != "Perimeter" || names[1] != "Perimeter Twin" {
		t.Errorf("PredecessorNames = %v, want [Perimeter Perimeter Twin]", names)
	}

	again, err := perimeter.Accumulate(r, twin)
	if err != nil {
		t.Fatalf("Accumulate (again): %v", err)
	}
	if again != accumulated {
		t.Error("accumulating the same pair twice produced two zones")
	}
}

func TestZoneAccumulateDifferentZones(t *testing.T) {
	r := NewRegistry()
	core, perimeter := smallOffice(t, r)

	combined, err := core.Combine(r, perimeter, nil)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	accumulated, err := core.Accumulate(r, perimeter)
	if err != nil {
		t.Fatalf("Accumulate: %v", err)
	}
	if accumulated != combined {
		t.Errorf("Accumulate = %q, want the Combine result %q", accumulated.Name, combined.Name)
	}
}

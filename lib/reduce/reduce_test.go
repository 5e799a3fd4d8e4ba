// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package reduce

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/bureau-foundation/archetype/lib/model"
	"github.com/bureau-foundation/archetype/lib/testutil"
	"github.com/bureau-foundation/archetype/lib/umi"
)

// capture returns a registry whose log records are written to the
// returned buffer.
func capture() (*umi.Registry, *bytes.Buffer) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return umi.NewRegistry(umi.WithLogger(logger)), &buffer
}

func TestParseCoreDetection(t *testing.T) {
	tests := []struct {
		name string
		want CoreDetection
	}{
		{"", CoreByGeometry},
		{"geometry", CoreByGeometry},
		{"Table", CoreByTable},
	}
	for _, tt := range tests {
		got, err := ParseCoreDetection(tt.name)
		if err != nil {
			t.Fatalf("ParseCoreDetection(%q): %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("ParseCoreDetection(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
	if _, err := ParseCoreDetection("name"); err == nil {
		t.Error("ParseCoreDetection(\"name\") should fail")
	}
}

func TestFingerprint(t *testing.T) {
	base := Options{}.Fingerprint(umi.ZoneWeightVolume)
	if explicit := (Options{CoreDetection: CoreByGeometry}).Fingerprint(umi.ZoneWeightVolume); explicit != base {
		t.Errorf("default and explicit geometry fingerprints differ: %q vs %q", base, explicit)
	}
	variants := []string{
		Options{}.Fingerprint(umi.ZoneWeightArea),
		Options{CoreDetection: CoreByTable}.Fingerprint(umi.ZoneWeightVolume),
		Options{AllZones: true}.Fingerprint(umi.ZoneWeightVolume),
	}
	for _, variant := range variants {
		if variant == base {
			t.Errorf("fingerprint %q equals the default", variant)
		}
	}
}

func TestBuildingSmallOffice(t *testing.T) {
	r := umi.NewRegistry()
	template, err := Building(r, testutil.SmallOffice(), Options{})
	if err != nil {
		t.Fatalf("Building: %v", err)
	}

	if template.Name != "Small Office" || template.DataSource != "Small Office" {
		t.Errorf("Name, DataSource = %q, %q, want Small Office", template.Name, template.DataSource)
	}
	if template.Core == nil || template.Core.Name != "Core" {
		t.Fatalf("Core = %v, want the Core zone", template.Core)
	}
	if template.Perimeter == nil || template.Perimeter.Name != "Perimeter" {
		t.Fatalf("Perimeter = %v, want the Perimeter zone", template.Perimeter)
	}
	if template.Windows == nil || template.Windows != template.Perimeter.Windows {
		t.Errorf("Windows = %v, want the perimeter's window setting", template.Windows)
	}
	if template.Structure == nil || len(template.Structure.MassRatios) != 1 {
		t.Errorf("Structure = %v, want one mass ratio", template.Structure)
	}
	if !slices.Equal(template.Country, []string{"USA"}) || !slices.Equal(template.ClimateZone, []string{"5A"}) {
		t.Errorf("Country, ClimateZone = %v, %v", template.Country, template.ClimateZone)
	}
	if template.YearFrom != 1980 || template.YearTo != 2004 {
		t.Errorf("years = %d-%d, want 1980-2004", template.YearFrom, template.YearTo)
	}
	if template.Lifespan != 60 {
		t.Errorf("Lifespan = %v, want the default 60", template.Lifespan)
	}
	if len(template.Cores) != 0 || len(template.Perimeters) != 0 {
		t.Errorf("reduced-from zones kept without AllZones: %d cores, %d perimeters",
			len(template.Cores), len(template.Perimeters))
	}
	for _, zone := range []*umi.Zone{template.Core, template.Perimeter} {
		if missing := zone.Constructions.Missing(); len(missing) != 0 {
			t.Errorf("%s construction set missing %v after validation", zone.Name, missing)
		}
	}

	registered, ok := r.Lookup(umi.KindBuildingTemplate, "Small Office")
	if !ok || registered != umi.Entity(template) {
		t.Error("template not registered under its name")
	}
}

func TestBuildingAllZones(t *testing.T) {
	r := umi.NewRegistry()
	template, err := Building(r, testutil.SmallOffice(), Options{AllZones: true})
	if err != nil {
		t.Fatalf("Building: %v", err)
	}
	if len(template.Cores) != 1 || template.Cores[0] != template.Core {
		t.Errorf("Cores = %v, want [Core]", template.Cores)
	}
	if len(template.Perimeters) != 1 || template.Perimeters[0] != template.Perimeter {
		t.Errorf("Perimeters = %v, want [Perimeter]", template.Perimeters)
	}
}

// openCore returns the office with the core zone's south wall facing
// outdoors, so geometry no longer sees it as core while its name and
// the Zone Summary table still do.
func openCore() *model.Building {
	building := testutil.SmallOffice()
	for i, surface := range building.Zones[0].Surfaces {
		if strings.HasSuffix(surface.Name, "South") {
			building.Zones[0].Surfaces[i].OutsideBoundaryCondition = model.BoundaryOutdoors
			building.Zones[0].Surfaces[i].Construction = testutil.ExteriorWall
		}
	}
	return building
}

func TestBuildingCoreByTable(t *testing.T) {
	r := umi.NewRegistry()
	template, err := Building(r, openCore(), Options{CoreDetection: CoreByTable})
	if err != nil {
		t.Fatalf("Building: %v", err)
	}
	if template.Core.Name != "Core" || template.Perimeter.Name != "Perimeter" {
		t.Errorf("Core, Perimeter = %q, %q, want Core, Perimeter", template.Core.Name, template.Perimeter.Name)
	}
}

func TestBuildingWithoutCores(t *testing.T) {
	r, logs := capture()
	template, err := Building(r, openCore(), Options{CoreDetection: CoreByGeometry})
	if err != nil {
		t.Fatalf("Building: %v", err)
	}
	if template.Core != template.Perimeter {
		t.Errorf("Core %q and Perimeter %q differ, want the same combined zone",
			template.Core.Name, template.Perimeter.Name)
	}
	if !strings.HasPrefix(template.Perimeter.Name, "Combined_Zone_") {
		t.Errorf("Perimeter = %q, want a combined zone", template.Perimeter.Name)
	}
	testutil.RequireApprox(t, "perimeter area", template.Perimeter.Area(), 75)
	testutil.RequireApprox(t, "perimeter volume", template.Perimeter.Volume(), 150)
	if !strings.Contains(logs.String(), "no core zones") {
		t.Errorf("missing core warning not logged:\n%s", logs.String())
	}
}

func TestBuildingWithoutPerimeters(t *testing.T) {
	building := testutil.SmallOffice()
	building.Zones = building.Zones[:1]

	r, logs := capture()
	template, err := Building(r, building, Options{})
	if err != nil {
		t.Fatalf("Building: %v", err)
	}
	if template.Core.Name != "Core" || template.Perimeter != template.Core {
		t.Errorf("Core, Perimeter = %q, %q, want Core for both", template.Core.Name, template.Perimeter.Name)
	}
	if !strings.Contains(logs.String(), "no perimeter zones") {
		t.Errorf("missing perimeter warning not logged:\n%s", logs.String())
	}
}

func TestBuildingExcludesZones(t *testing.T) {
	building := testutil.SmallOffice()

	plenum := building.Zones[1]
	plenum.Name = "Plenum"
	plenum.IsPlenum = true
	attic := building.Zones[1]
	attic.Name = "Attic"
	building.Zones = append(building.Zones, plenum, attic)
	building.Tables[model.ZoneSummaryReport] = append(building.Tables[model.ZoneSummaryReport],
		map[string]any{"Zone": "ATTIC", "Area": 25.0, "Part of Total Floor Area": "No"})

	r, logs := capture()
	template, err := Building(r, building, Options{AllZones: true})
	if err != nil {
		t.Fatalf("Building: %v", err)
	}
	if len(template.Perimeters) != 1 || template.Perimeter.Name != "Perimeter" {
		t.Errorf("Perimeters = %d, Perimeter = %q, want only the Perimeter zone",
			len(template.Perimeters), template.Perimeter.Name)
	}
	for _, name := range []string{"Plenum", "Attic"} {
		if _, ok := r.Lookup(umi.KindZone, name); ok {
			t.Errorf("excluded zone %s was translated", name)
		}
		if !strings.Contains(logs.String(), "zone="+name) {
			t.Errorf("exclusion of %s not logged", name)
		}
	}
}

func TestBuildingNoZones(t *testing.T) {
	building := testutil.SmallOffice()
	for i := range building.Zones {
		building.Zones[i].ExcludedFromFloorArea = true
	}
	_, err := Building(umi.NewRegistry(), building, Options{})
	if !errors.Is(err, umi.ErrNoZones) {
		t.Fatalf("Building error = %v, want ErrNoZones", err)
	}
	if !strings.Contains(err.Error(), "Small Office") {
		t.Errorf("error %q does not name the building", err)
	}
}

func TestBuildingTemplateInfoDefaults(t *testing.T) {
	building := testutil.SmallOffice()
	building.Template = &model.TemplateInfo{Lifespan: 40, PartitionRatio: 0.5}

	template, err := Building(umi.NewRegistry(), building, Options{})
	if err != nil {
		t.Fatalf("Building: %v", err)
	}
	if template.Lifespan != 40 || template.PartitionRatio != 0.5 {
		t.Errorf("Lifespan, PartitionRatio = %v, %v, want 40, 0.5", template.Lifespan, template.PartitionRatio)
	}
	if template.DefaultWindowToWallRatio != 0.4 {
		t.Errorf("DefaultWindowToWallRatio = %v, want the default 0.4", template.DefaultWindowToWallRatio)
	}
	if template.Country != nil {
		t.Errorf("Country = %v, want unset", template.Country)
	}
}

func TestCombineZonesWeightsByExtent(t *testing.T) {
	// Three equal perimeter zones folded pairwise must give each the
	// same influence: the running aggregate carries the summed volume.
	building := testutil.SmallOffice()
	base := building.Zones[1]
	building.Zones = nil
	for i, lpd := range []float64{6, 9, 12} {
		zone := base
		zone.Name = []string{"East", "South", "West"}[i]
		loads := *base.Loads
		loads.LightingPowerDensity = lpd
		zone.Loads = &loads
		building.Zones = append(building.Zones, zone)
	}
	building.Tables = nil

	r := umi.NewRegistry()
	template, err := Building(r, building, Options{})
	if err != nil {
		t.Fatalf("Building: %v", err)
	}
	testutil.RequireApprox(t, "lighting power density", template.Perimeter.Loads.LightingPowerDensity, 9)
	testutil.RequireApprox(t, "perimeter area", template.Perimeter.Area(), 75)
}

func TestCombineZonesKeepsExtentOfEqualZones(t *testing.T) {
	// East and South are value-equal, so the first fold step merges
	// two identical zones. Their extent must still count when West
	// joins.
	building := testutil.SmallOffice()
	base := building.Zones[1]
	building.Zones = nil
	for i, lpd := range []float64{9, 9, 3} {
		zone := base
		zone.Name = []string{"East", "South", "West"}[i]
		loads := *base.Loads
		loads.LightingPowerDensity = lpd
		zone.Loads = &loads
		building.Zones = append(building.Zones, zone)
	}
	building.Tables = nil

	for _, weight := range []umi.ZoneWeight{umi.ZoneWeightVolume, umi.ZoneWeightArea} {
		t.Run(string(weight), func(t *testing.T) {
			r := umi.NewRegistry(umi.WithZoneWeight(weight))
			template, err := Building(r, building, Options{})
			if err != nil {
				t.Fatalf("Building: %v", err)
			}
			testutil.RequireApprox(t, "perimeter area", template.Perimeter.Area(), 75)
			testutil.RequireApprox(t, "perimeter volume", template.Perimeter.Volume(), 150)
			testutil.RequireApprox(t, "lighting power density", template.Perimeter.Loads.LightingPowerDensity, 7)

			for _, name := range []string{"East", "South", "West"} {
				zone, ok := r.Lookup(umi.KindZone, name)
				if !ok {
					t.Fatalf("zone %s not registered", name)
				}
				testutil.RequireApprox(t, name+" area", zone.(*umi.Zone).Area(), 25)
			}
		})
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleModel = `{
	// Comments and trailing commas are accepted.
	"Weather": "chicago.epw",
	"Materials": [
		{"Name": "Concrete", "Kind": "Opaque", "Conductivity": 1.8, "Density": 2300},
		{"Name": "Clear", "Kind": "Glazing", "SolarTransmittance": 0.8},
		{"Name": "Air", "Kind": "Gas"},
	],
	"Constructions": [
		{"Name": "Wall", "Layers": [{"Material": "Concrete", "Thickness": 0.2}]},
		{"Name": "Window", "Layers": [
			{"Material": "Clear", "Thickness": 0.003},
			{"Material": "Air", "Thickness": 0.013},
			{"Material": "Clear", "Thickness": 0.003},
		]},
	],
	"Schedules": [{"Name": "On", "Type": "Fraction", "Values": [1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1]}],
	"Zones": [{
		"Name": "Zone 1",
		"Multiplier": 2,
		"Surfaces": [
			{"Name": "Wall 1", "Surface_Type": "Wall", "Outside_Boundary_Condition": "Outdoors",
			 "Construction": "Wall", "Vertices": [[0,0,0],[1,0,0],[1,0,1],[0,0,1]]},
		],
		"Windows": [{"Name": "Win 1", "Construction": "Window"}],
		"Loads": {"IsPeopleOn": true, "PeopleDensity": 0.1, "OccupancySchedule": "On"},
	}],
	"Tables": {
		"Zone Summary": [
			{"Zone": "ZONE 1", "Area": "12.5", "Volume": 30, "Exterior Gross Wall Area": 4, "Part of Total Floor Area": "No", "Multipliers": 2}
		]
	}
}`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "office.json")
	if err := os.WriteFile(path, []byte(sampleModel), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	building, err := FileLoader{}.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if building.Name != "office" {
		t.Errorf("Name = %q, want file name %q", building.Name, "office")
	}
	if building.Source != path {
		t.Errorf("Source = %q, want %q", building.Source, path)
	}
	if len(building.Zones) != 1 || building.Zones[0].EffectiveMultiplier() != 2 {
		t.Fatalf("zones = %+v, want one zone with multiplier 2", building.Zones)
	}
	if got := building.Zones[0].Surfaces[0].Polygon().Area(); got != 1 {
		t.Errorf("wall area = %v, want 1", got)
	}

	gas, ok := building.Material("Air")
	if !ok || gas.Kind != MaterialGas {
		t.Errorf("Material(Air) = %+v, %v", gas, ok)
	}
	if _, ok := building.Construction("Window"); !ok {
		t.Error("Construction(Window) not found")
	}
	if schedule, ok := building.Schedule("On"); !ok || len(schedule.Values) != 24 {
		t.Errorf("Schedule(On) = %+v, %v", schedule, ok)
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (FileLoader{}).Load(ctx, "unused.json"); err == nil {
		t.Fatal("Load with cancelled context should fail")
	}
}

func TestZoneSummary(t *testing.T) {
	building, err := Parse([]byte(sampleModel))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	summary, ok := building.Tables.ZoneSummary("Zone 1")
	if !ok {
		t.Fatal("ZoneSummary(Zone 1) not found")
	}
	if summary.Area != 12.5 {
		t.Errorf("Area = %v, want 12.5 (parsed from string)", summary.Area)
	}
	if summary.Volume != 30 {
		t.Errorf("Volume = %v, want 30", summary.Volume)
	}
	if summary.ExteriorGrossWallArea != 4 {
		t.Errorf("ExteriorGrossWallArea = %v, want 4", summary.ExteriorGrossWallArea)
	}
	if summary.PartOfTotalFloorArea {
		t.Error("PartOfTotalFloorArea = true, want false")
	}
	if summary.Multiplier != 2 {
		t.Errorf("Multiplier = %d, want 2", summary.Multiplier)
	}

	if _, ok := building.Tables.ZoneSummary("Zone 2"); ok {
		t.Error("ZoneSummary(Zone 2) should not be found")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Building)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Building) {},
		},
		{
			name: "unknown construction",
			mutate: func(b *Building) {
				b.Zones[0].Surfaces[0].Construction = "Missing"
			},
			wantErr: `unknown construction "Missing"`,
		},
		{
			name: "unknown layer material",
			mutate: func(b *Building) {
				b.Constructions[0].Layers[0].Material = "Unobtainium"
			},
			wantErr: `unknown material "Unobtainium"`,
		},
		{
			name: "bad schedule length",
			mutate: func(b *Building) {
				b.Schedules[0].Values = []float64{1, 2, 3}
			},
			wantErr: "3 values, want 24, 168, or 8760",
		},
		{
			name: "unknown schedule reference",
			mutate: func(b *Building) {
				b.Zones[0].Loads.OccupancySchedule = "Never"
			},
			wantErr: `unknown schedule "Never"`,
		},
		{
			name: "degenerate polygon",
			mutate: func(b *Building) {
				b.Zones[0].Surfaces[0].Vertices = b.Zones[0].Surfaces[0].Vertices[:2]
			},
			wantErr: "2 vertices, want at least 3",
		},
		{
			name: "duplicate zone",
			mutate: func(b *Building) {
				b.Zones = append(b.Zones, b.Zones[0])
			},
			wantErr: `duplicate zone "Zone 1"`,
		},
		{
			name: "no zones",
			mutate: func(b *Building) {
				b.Zones = nil
			},
			wantErr: "model has no zones",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			building, err := Parse([]byte(sampleModel))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			test.mutate(building)

			err = building.Validate()
			if test.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate succeeded, want error containing %q", test.wantErr)
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("Validate error = %q, want it to contain %q", err, test.wantErr)
			}
		})
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"github.com/bureau-foundation/archetype/lib/model"
)

// Face sets the boundary condition and construction of one box face.
// SurfaceType overrides the default type for the face position
// (Floor, Roof, or Wall).
type Face struct {
	Boundary     string
	Construction string
	SurfaceType  string
}

// Box describes an axis-aligned box zone with one corner at Origin.
type Box struct {
	Name   string
	Origin [3]float64
	Width  float64
	Depth  float64
	Height float64
	Floor  Face
	Roof   Face
	South  Face
	North  Face
	West   Face
	East   Face
}

// BoxSurfaces returns the six outward-facing surfaces of the box.
// Surface names are the box name followed by the face position.
func BoxSurfaces(box Box) []model.Surface {
	x0, y0, z0 := box.Origin[0], box.Origin[1], box.Origin[2]
	x1, y1, z1 := x0+box.Width, y0+box.Depth, z0+box.Height
	v := func(x, y, z float64) [3]float64 { return [3]float64{x, y, z} }

	surface := func(position, defaultType string, face Face, vertices ...[3]float64) model.Surface {
		surfaceType := face.SurfaceType
		if surfaceType == "" {
			surfaceType = defaultType
		}
		return model.Surface{
			Name:                     box.Name + " " + position,
			SurfaceType:              surfaceType,
			OutsideBoundaryCondition: face.Boundary,
			Construction:             face.Construction,
			Vertices:                 vertices,
		}
	}

	return []model.Surface{
		surface("Floor", model.SurfaceFloor, box.Floor,
			v(x0, y0, z0), v(x0, y1, z0), v(x1, y1, z0), v(x1, y0, z0)),
		surface("Roof", model.SurfaceRoof, box.Roof,
			v(x0, y0, z1), v(x1, y0, z1), v(x1, y1, z1), v(x0, y1, z1)),
		surface("South", model.SurfaceWall, box.South,
			v(x0, y0, z0), v(x1, y0, z0), v(x1, y0, z1), v(x0, y0, z1)),
		surface("North", model.SurfaceWall, box.North,
			v(x1, y1, z0), v(x0, y1, z0), v(x0, y1, z1), v(x1, y1, z1)),
		surface("West", model.SurfaceWall, box.West,
			v(x0, y1, z0), v(x0, y0, z0), v(x0, y0, z1), v(x0, y1, z1)),
		surface("East", model.SurfaceWall, box.East,
			v(x1, y0, z0), v(x1, y1, z0), v(x1, y1, z1), v(x1, y0, z1)),
	}
}

// Construction names used by SmallOffice.
const (
	ExteriorWall  = "Exterior Wall"
	InteriorWall  = "Interior Wall"
	RoofDeck      = "Roof Deck"
	GroundSlab    = "Slab On Grade"
	DoubleClear   = "Double Clear 3mm/13mm Air"
	FurnitureMass = "Furniture"
)

// SmallOffice returns a two-zone office model. The "Core" zone is a
// 10x5x2 m box whose walls all face other zones; the "Perimeter" zone
// is a 5x5x2 m box beside it with three exterior walls and one window.
// Both zones carry every setting block. Each call returns a fresh
// value that the caller may modify.
func SmallOffice() *model.Building {
	ground := Face{Boundary: model.BoundaryGround, Construction: GroundSlab}
	roof := Face{Boundary: model.BoundaryOutdoors, Construction: RoofDeck}
	exterior := Face{Boundary: model.BoundaryOutdoors, Construction: ExteriorWall}
	interior := Face{Boundary: model.BoundarySurface, Construction: InteriorWall}

	core := model.Zone{
		Name: "Core",
		Surfaces: BoxSurfaces(Box{
			Name: "Core", Width: 10, Depth: 5, Height: 2,
			Floor: ground, Roof: roof,
			South: interior, North: interior, West: interior, East: interior,
		}),
		InternalMass: []model.InternalMass{
			{Name: "Core Furniture", Construction: FurnitureMass, Area: 25},
		},
		Conditioning:     officeConditioning(),
		Loads:            officeLoads(12),
		Ventilation:      officeVentilation(0.1),
		DomesticHotWater: officeHotWater(),
	}

	perimeter := model.Zone{
		Name: "Perimeter",
		Surfaces: BoxSurfaces(Box{
			Name: "Perimeter", Origin: [3]float64{10, 0, 0}, Width: 5, Depth: 5, Height: 2,
			Floor: ground, Roof: roof,
			South: exterior, North: exterior, West: interior, East: exterior,
		}),
		Windows: []model.Window{{
			Name:         "Perimeter East Window",
			Construction: DoubleClear,
			Vertices: [][3]float64{
				{15, 1, 0.5}, {15, 3, 0.5}, {15, 3, 1.5}, {15, 1, 1.5},
			},
		}},
		Conditioning:     officeConditioning(),
		Loads:            officeLoads(8),
		Ventilation:      officeVentilation(0.3),
		DomesticHotWater: officeHotWater(),
		WindowSetting: &model.WindowSetting{
			Type:                  "External",
			IsShadingSystemOn:     true,
			ShadingSystemSetpoint: 200,
			OperableArea:          0.5,
		},
	}

	return &model.Building{
		Name:    "Small Office",
		Weather: "USA_IL_Chicago-OHare.Intl.AP.725300_TMY3.epw",
		Materials: []model.Material{
			{Name: "Concrete", Kind: model.MaterialOpaque, Conductivity: 1.8, Density: 2300, SpecificHeat: 900},
			{Name: "Insulation", Kind: model.MaterialOpaque, Conductivity: 0.04, Density: 30, SpecificHeat: 1400},
			{Name: "Gypsum", Kind: model.MaterialOpaque, Conductivity: 0.16, Density: 800, SpecificHeat: 1090},
			{Name: "Wood", Kind: model.MaterialOpaque, Conductivity: 0.12, Density: 540, SpecificHeat: 1210},
			{
				Name: "Clear 3mm", Kind: model.MaterialGlazing, Conductivity: 0.9,
				SolarTransmittance: 0.837, SolarReflectanceFront: 0.075, SolarReflectanceBack: 0.075,
				VisibleTransmittance: 0.898, VisibleReflectanceFront: 0.081, VisibleReflectanceBack: 0.081,
				InfraredEmissivityFront: 0.84, InfraredEmissivityBack: 0.84, DirtCorrectionFactor: 1,
			},
			{Name: "Air 13mm", Kind: model.MaterialGas, GasType: "AIR"},
		},
		Constructions: []model.Construction{
			{Name: ExteriorWall, Layers: []model.Layer{
				{Material: "Concrete", Thickness: 0.2},
				{Material: "Insulation", Thickness: 0.05},
				{Material: "Gypsum", Thickness: 0.0127},
			}},
			{Name: InteriorWall, Layers: []model.Layer{
				{Material: "Gypsum", Thickness: 0.0127},
				{Material: "Gypsum", Thickness: 0.0127},
			}},
			{Name: RoofDeck, Layers: []model.Layer{
				{Material: "Insulation", Thickness: 0.1},
				{Material: "Concrete", Thickness: 0.1},
			}},
			{Name: GroundSlab, Layers: []model.Layer{
				{Material: "Concrete", Thickness: 0.15},
			}},
			{Name: DoubleClear, Layers: []model.Layer{
				{Material: "Clear 3mm", Thickness: 0.003},
				{Material: "Air 13mm", Thickness: 0.013},
				{Material: "Clear 3mm", Thickness: 0.003},
			}},
			{Name: FurnitureMass, Layers: []model.Layer{
				{Material: "Wood", Thickness: 0.05},
			}},
		},
		Schedules: []model.Schedule{
			{Name: "Always On", Type: "Fraction", Values: constant(24, 1)},
			{Name: "Office Occupancy", Type: "Fraction", Values: officeDay()},
		},
		Zones: []model.Zone{core, perimeter},
		Structure: &model.Structure{
			Material: "Concrete", HighLoadRatio: 305, NormalRatio: 305,
		},
		Template: &model.TemplateInfo{
			Country: "USA", ClimateZone: "5A", YearFrom: 1980, YearTo: 2004,
			Authors: []string{"archetype"},
		},
		Tables: model.Tables{
			model.ZoneSummaryReport: model.Table{
				{"Zone": "CORE", "Area": 50.0, "Volume": 100.0, "Exterior Gross Wall Area": 0.0, "Part of Total Floor Area": "Yes"},
				{"Zone": "PERIMETER", "Area": 25.0, "Volume": 50.0, "Exterior Gross Wall Area": 30.0, "Part of Total Floor Area": "Yes"},
			},
		},
	}
}

func officeConditioning() *model.Conditioning {
	return &model.Conditioning{
		IsHeatingOn:          true,
		IsCoolingOn:          true,
		HeatingSetpoint:      20,
		CoolingSetpoint:      24,
		HeatingCoeffOfPerf:   1,
		CoolingCoeffOfPerf:   3,
		MinFreshAirPerPerson: 0.0025,
		MinFreshAirPerArea:   0.0003,
		HeatingSchedule:      "Always On",
		CoolingSchedule:      "Always On",
		MechVentSchedule:     "Office Occupancy",
	}
}

func officeLoads(lightingPowerDensity float64) *model.Loads {
	return &model.Loads{
		IsPeopleOn:                    true,
		IsLightingOn:                  true,
		IsEquipmentOn:                 true,
		PeopleDensity:                 0.05,
		LightingPowerDensity:          lightingPowerDensity,
		EquipmentPowerDensity:         10,
		IlluminanceTarget:             500,
		OccupancySchedule:             "Office Occupancy",
		LightsAvailabilitySchedule:    "Office Occupancy",
		EquipmentAvailabilitySchedule: "Always On",
	}
}

func officeVentilation(infiltration float64) *model.Ventilation {
	return &model.Ventilation{
		IsInfiltrationOn:        true,
		Infiltration:            infiltration,
		NatVentSchedule:         "Always On",
		NatVentZoneTempSetpoint: 22,
	}
}

func officeHotWater() *model.DomesticHotWater {
	return &model.DomesticHotWater{
		IsOn:                   true,
		FlowRatePerFloorArea:   0.03,
		WaterSupplyTemperature: 65,
		WaterTemperatureInlet:  10,
		WaterSchedule:          "Office Occupancy",
	}
}

func constant(n int, value float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = value
	}
	return values
}

// officeDay is occupied from 08:00 to 18:00.
func officeDay() []float64 {
	values := make([]float64, 24)
	for hour := 8; hour < 18; hour++ {
		values[hour] = 1
	}
	return values
}

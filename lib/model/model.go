// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/bureau-foundation/archetype/lib/geom"
)

// Building is one parsed simulation model.
type Building struct {
	// Name identifies the building. Template entities derived from it
	// record it as their DataSource.
	Name string `json:"Name"`

	// Weather is the weather file reference. It is opaque to reduction
	// and passed through to the output only for provenance.
	Weather string `json:"Weather,omitempty"`

	Materials     []Material     `json:"Materials,omitempty"`
	Constructions []Construction `json:"Constructions,omitempty"`
	Schedules     []Schedule     `json:"Schedules,omitempty"`
	Zones         []Zone         `json:"Zones"`

	// Structure describes the load-bearing structure. Nil uses a
	// generic concrete structure.
	Structure *Structure `json:"Structure,omitempty"`

	// Template carries descriptive metadata copied onto the building
	// template (country, vintage, authors).
	Template *TemplateInfo `json:"Template,omitempty"`

	// Tables are simulation report tables keyed by report name.
	Tables Tables `json:"Tables,omitempty"`

	// Source is the path the model was loaded from. Not serialized.
	Source string `json:"-"`
}

// MaterialKind distinguishes the three material record types.
type MaterialKind string

const (
	MaterialOpaque  MaterialKind = "Opaque"
	MaterialGlazing MaterialKind = "Glazing"
	MaterialGas     MaterialKind = "Gas"
)

// Material is an engine material record. Which fields are meaningful
// depends on Kind.
type Material struct {
	Name     string       `json:"Name"`
	Kind     MaterialKind `json:"Kind"`
	Category string       `json:"Category,omitempty"`
	Comments string       `json:"Comments,omitempty"`

	// Opaque and shared thermal properties.
	Roughness          string  `json:"Roughness,omitempty"`
	Conductivity       float64 `json:"Conductivity,omitempty"`
	Density            float64 `json:"Density,omitempty"`
	SpecificHeat       float64 `json:"SpecificHeat,omitempty"`
	SolarAbsorptance   float64 `json:"SolarAbsorptance,omitempty"`
	ThermalEmittance   float64 `json:"ThermalEmittance,omitempty"`
	VisibleAbsorptance float64 `json:"VisibleAbsorptance,omitempty"`

	// Glazing optical properties.
	SolarTransmittance      float64 `json:"SolarTransmittance,omitempty"`
	SolarReflectanceFront   float64 `json:"SolarReflectanceFront,omitempty"`
	SolarReflectanceBack    float64 `json:"SolarReflectanceBack,omitempty"`
	VisibleTransmittance    float64 `json:"VisibleTransmittance,omitempty"`
	VisibleReflectanceFront float64 `json:"VisibleReflectanceFront,omitempty"`
	VisibleReflectanceBack  float64 `json:"VisibleReflectanceBack,omitempty"`
	InfraredTransmittance   float64 `json:"IRTransmittance,omitempty"`
	InfraredEmissivityFront float64 `json:"IREmissivityFront,omitempty"`
	InfraredEmissivityBack  float64 `json:"IREmissivityBack,omitempty"`
	DirtCorrectionFactor    float64 `json:"DirtFactor,omitempty"`

	// GasType is the gas fill for Gas records (AIR, ARGON, KRYPTON,
	// XENON). Empty means AIR.
	GasType string `json:"Gas_Type,omitempty"`

	// Environmental and cost data, all optional.
	Cost              float64 `json:"Cost,omitempty"`
	EmbodiedCarbon    float64 `json:"EmbodiedCarbon,omitempty"`
	EmbodiedEnergy    float64 `json:"EmbodiedEnergy,omitempty"`
	TransportCarbon   float64 `json:"TransportCarbon,omitempty"`
	TransportDistance float64 `json:"TransportDistance,omitempty"`
	TransportEnergy   float64 `json:"TransportEnergy,omitempty"`
}

// Construction is an ordered list of layers from the outside face to
// the inside face.
type Construction struct {
	Name   string  `json:"Name"`
	Layers []Layer `json:"Layers"`
}

// Layer references a Material by name with a thickness in meters.
type Layer struct {
	Material  string  `json:"Material"`
	Thickness float64 `json:"Thickness"`
}

// Schedule is a named series of fractional or absolute values. The
// Values length decides the period: 24 (one day, repeated), 168 (one
// week starting Monday, repeated), or 8760 (a full non-leap year).
type Schedule struct {
	Name   string    `json:"Name"`
	Type   string    `json:"Type,omitempty"`
	Values []float64 `json:"Values"`
}

// Zone is one thermal zone.
type Zone struct {
	Name string `json:"Name"`

	// Multiplier repeats the zone this many times. Zero means one.
	Multiplier int `json:"Multiplier,omitempty"`

	// IsPlenum marks return-air plenums, which are excluded from
	// core/perimeter reduction.
	IsPlenum bool `json:"IsPlenum,omitempty"`

	// ExcludedFromFloorArea marks zones that do not count toward the
	// building's total floor area. They are excluded from reduction.
	ExcludedFromFloorArea bool `json:"ExcludedFromFloorArea,omitempty"`

	Surfaces     []Surface      `json:"Surfaces"`
	InternalMass []InternalMass `json:"InternalMass,omitempty"`
	Windows      []Window       `json:"Windows,omitempty"`

	Conditioning     *Conditioning     `json:"Conditioning,omitempty"`
	Loads            *Loads            `json:"Loads,omitempty"`
	Ventilation      *Ventilation      `json:"Ventilation,omitempty"`
	DomesticHotWater *DomesticHotWater `json:"DomesticHotWater,omitempty"`
	WindowSetting    *WindowSetting    `json:"WindowSetting,omitempty"`
}

// Surface type names as they appear in engine models.
const (
	SurfaceWall                 = "Wall"
	SurfaceFloor                = "Floor"
	SurfaceRoof                 = "Roof"
	SurfaceCeiling              = "Ceiling"
	SurfaceInternalMass         = "InternalMass"
	SurfaceWindowShadingControl = "WindowShadingControl"
)

// Outside boundary condition names.
const (
	BoundaryOutdoors   = "Outdoors"
	BoundaryGround     = "Ground"
	BoundarySurface    = "Surface"
	BoundaryZone       = "Zone"
	BoundaryAdiabatic  = "Adiabatic"
	BoundaryFoundation = "Foundation"
)

// Surface is one building surface belonging to a zone.
type Surface struct {
	Name                     string       `json:"Name"`
	SurfaceType              string       `json:"Surface_Type"`
	OutsideBoundaryCondition string       `json:"Outside_Boundary_Condition"`
	Construction             string       `json:"Construction"`
	Vertices                 [][3]float64 `json:"Vertices"`
}

// Polygon returns the surface vertices as a geometric polygon.
func (s Surface) Polygon() geom.Polygon {
	return toPolygon(s.Vertices)
}

// InternalMass is a non-geometric mass surface inside a zone, such as
// furniture or interior partitions not modeled as surfaces.
type InternalMass struct {
	Name         string  `json:"Name"`
	Construction string  `json:"Construction"`
	Area         float64 `json:"Area"`
}

// Window is a fenestration surface.
type Window struct {
	Name         string       `json:"Name"`
	Construction string       `json:"Construction"`
	Vertices     [][3]float64 `json:"Vertices,omitempty"`
}

// Polygon returns the window vertices as a geometric polygon.
func (w Window) Polygon() geom.Polygon {
	return toPolygon(w.Vertices)
}

func toPolygon(vertices [][3]float64) geom.Polygon {
	polygon := make(geom.Polygon, len(vertices))
	for i, vertex := range vertices {
		polygon[i] = r3.Vec{X: vertex[0], Y: vertex[1], Z: vertex[2]}
	}
	return polygon
}

// Conditioning is the zone HVAC setting block. Schedule fields name
// entries of Building.Schedules.
type Conditioning struct {
	IsHeatingOn  bool `json:"IsHeatingOn"`
	IsCoolingOn  bool `json:"IsCoolingOn"`
	IsMechVentOn bool `json:"IsMechVentOn"`

	HeatingSetpoint    float64 `json:"HeatingSetpoint,omitempty"`
	CoolingSetpoint    float64 `json:"CoolingSetpoint,omitempty"`
	HeatingCoeffOfPerf float64 `json:"HeatingCoeffOfPerf,omitempty"`
	CoolingCoeffOfPerf float64 `json:"CoolingCoeffOfPerf,omitempty"`
	HeatingLimitType   string  `json:"HeatingLimitType,omitempty"`
	CoolingLimitType   string  `json:"CoolingLimitType,omitempty"`
	MaxHeatingCapacity float64 `json:"MaxHeatingCapacity,omitempty"`
	MaxCoolingCapacity float64 `json:"MaxCoolingCapacity,omitempty"`
	MaxHeatFlow        float64 `json:"MaxHeatFlow,omitempty"`
	MaxCoolFlow        float64 `json:"MaxCoolFlow,omitempty"`

	MinFreshAirPerPerson           float64 `json:"MinFreshAirPerPerson,omitempty"`
	MinFreshAirPerArea             float64 `json:"MinFreshAirPerArea,omitempty"`
	EconomizerType                 string  `json:"EconomizerType,omitempty"`
	HeatRecoveryType               string  `json:"HeatRecoveryType,omitempty"`
	HeatRecoveryEfficiencySensible float64 `json:"HeatRecoveryEfficiencySensible,omitempty"`
	HeatRecoveryEfficiencyLatent   float64 `json:"HeatRecoveryEfficiencyLatent,omitempty"`

	HeatingSchedule  string `json:"HeatingSchedule,omitempty"`
	CoolingSchedule  string `json:"CoolingSchedule,omitempty"`
	MechVentSchedule string `json:"MechVentSchedule,omitempty"`
}

// Loads is the zone internal gains block. Densities are per floor
// area.
type Loads struct {
	IsPeopleOn    bool `json:"IsPeopleOn"`
	IsLightingOn  bool `json:"IsLightingOn"`
	IsEquipmentOn bool `json:"IsEquipmentOn"`

	PeopleDensity         float64 `json:"PeopleDensity,omitempty"`
	LightingPowerDensity  float64 `json:"LightingPowerDensity,omitempty"`
	EquipmentPowerDensity float64 `json:"EquipmentPowerDensity,omitempty"`
	IlluminanceTarget     float64 `json:"IlluminanceTarget,omitempty"`
	DimmingType           string  `json:"DimmingType,omitempty"`

	OccupancySchedule             string `json:"OccupancySchedule,omitempty"`
	LightsAvailabilitySchedule    string `json:"LightsAvailabilitySchedule,omitempty"`
	EquipmentAvailabilitySchedule string `json:"EquipmentAvailabilitySchedule,omitempty"`
}

// Ventilation is the zone infiltration and natural ventilation block.
type Ventilation struct {
	Afn                      bool `json:"Afn"`
	IsBuoyancyOn             bool `json:"IsBuoyancyOn"`
	IsInfiltrationOn         bool `json:"IsInfiltrationOn"`
	IsNatVentOn              bool `json:"IsNatVentOn"`
	IsScheduledVentilationOn bool `json:"IsScheduledVentilationOn"`
	IsWindOn                 bool `json:"IsWindOn"`

	Infiltration                 float64 `json:"Infiltration,omitempty"`
	NatVentMaxOutdoorAirTemp     float64 `json:"NatVentMaxOutdoorAirTemp,omitempty"`
	NatVentMaxRelHumidity        float64 `json:"NatVentMaxRelHumidity,omitempty"`
	NatVentMinOutdoorAirTemp     float64 `json:"NatVentMinOutdoorAirTemp,omitempty"`
	NatVentZoneTempSetpoint      float64 `json:"NatVentZoneTempSetpoint,omitempty"`
	ScheduledVentilationAch      float64 `json:"ScheduledVentilationAch,omitempty"`
	ScheduledVentilationSetpoint float64 `json:"ScheduledVentilationSetpoint,omitempty"`

	NatVentSchedule              string `json:"NatVentSchedule,omitempty"`
	ScheduledVentilationSchedule string `json:"ScheduledVentilationSchedule,omitempty"`
}

// DomesticHotWater is the zone service hot water block.
type DomesticHotWater struct {
	IsOn                   bool    `json:"IsOn"`
	FlowRatePerFloorArea   float64 `json:"FlowRatePerFloorArea,omitempty"`
	WaterSupplyTemperature float64 `json:"WaterSupplyTemperature,omitempty"`
	WaterTemperatureInlet  float64 `json:"WaterTemperatureInlet,omitempty"`
	WaterSchedule          string  `json:"WaterSchedule,omitempty"`
}

// WindowSetting is the zone fenestration control block. The window
// construction comes from the zone's Windows, not from this block.
type WindowSetting struct {
	// Type is "External" or "Internal". Empty means External.
	Type string `json:"Type,omitempty"`

	IsShadingSystemOn  bool `json:"IsShadingSystemOn"`
	IsVirtualPartition bool `json:"IsVirtualPartition"`
	IsZoneMixingOn     bool `json:"IsZoneMixingOn"`

	OperableArea               float64 `json:"OperableArea,omitempty"`
	AfnDischargeC              float64 `json:"AfnDischargeC,omitempty"`
	AfnTempSetpoint            float64 `json:"AfnTempSetpoint,omitempty"`
	ShadingSystemSetpoint      float64 `json:"ShadingSystemSetpoint,omitempty"`
	ShadingSystemTransmittance float64 `json:"ShadingSystemTransmittance,omitempty"`
	ShadingSystemType          int     `json:"ShadingSystemType,omitempty"`
	ZoneMixingDeltaTemperature float64 `json:"ZoneMixingDeltaTemperature,omitempty"`
	ZoneMixingFlowRate         float64 `json:"ZoneMixingFlowRate,omitempty"`

	AfnWindowAvailability             string `json:"AfnWindowAvailability,omitempty"`
	ShadingSystemAvailabilitySchedule string `json:"ShadingSystemAvailabilitySchedule,omitempty"`
	ZoneMixingAvailabilitySchedule    string `json:"ZoneMixingAvailabilitySchedule,omitempty"`
}

// Structure describes the building's structural system as a single
// mass ratio entry.
type Structure struct {
	Material      string  `json:"Material"`
	HighLoadRatio float64 `json:"HighLoadRatio,omitempty"`
	NormalRatio   float64 `json:"NormalRatio,omitempty"`
}

// TemplateInfo is descriptive metadata for the resulting building
// template.
type TemplateInfo struct {
	Country                  string   `json:"Country,omitempty"`
	ClimateZone              string   `json:"ClimateZone,omitempty"`
	YearFrom                 int      `json:"YearFrom,omitempty"`
	YearTo                   int      `json:"YearTo,omitempty"`
	Authors                  []string `json:"Authors,omitempty"`
	AuthorEmails             []string `json:"AuthorEmails,omitempty"`
	Lifespan                 float64  `json:"Lifespan,omitempty"`
	PartitionRatio           float64  `json:"PartitionRatio,omitempty"`
	DefaultWindowToWallRatio float64  `json:"DefaultWindowToWallRatio,omitempty"`
}

// Material returns the material record with the given name.
func (b *Building) Material(name string) (*Material, bool) {
	for i := range b.Materials {
		if b.Materials[i].Name == name {
			return &b.Materials[i], true
		}
	}
	return nil, false
}

// Construction returns the construction record with the given name.
func (b *Building) Construction(name string) (*Construction, bool) {
	for i := range b.Constructions {
		if b.Constructions[i].Name == name {
			return &b.Constructions[i], true
		}
	}
	return nil, false
}

// Schedule returns the schedule with the given name.
func (b *Building) Schedule(name string) (*Schedule, bool) {
	for i := range b.Schedules {
		if b.Schedules[i].Name == name {
			return &b.Schedules[i], true
		}
	}
	return nil, false
}

// EffectiveMultiplier returns the zone multiplier, treating zero as
// one.
func (z *Zone) EffectiveMultiplier() int {
	if z.Multiplier <= 0 {
		return 1
	}
	return z.Multiplier
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

// Ref is a reference to another document entry by its $id.
type Ref struct {
	Ref string `json:"$ref"`
}

// MetaRecord is the metadata every document entry carries.
type MetaRecord struct {
	ID         string `json:"$id"`
	Name       string `json:"Name"`
	Category   string `json:"Category"`
	Comments   string `json:"Comments"`
	DataSource string `json:"DataSource"`
}

type MaterialBaseRecord struct {
	Cost                    float64   `json:"Cost"`
	EmbodiedCarbon          float64   `json:"EmbodiedCarbon"`
	EmbodiedEnergy          float64   `json:"EmbodiedEnergy"`
	SubstitutionTimestep    float64   `json:"SubstitutionTimestep"`
	SubstitutionRatePattern []float64 `json:"SubstitutionRatePattern"`
	TransportCarbon         float64   `json:"TransportCarbon"`
	TransportDistance       float64   `json:"TransportDistance"`
	TransportEnergy         float64   `json:"TransportEnergy"`
}

type GasMaterialRecord struct {
	MetaRecord
	MaterialBaseRecord
	Type string `json:"Type"`
}

type GlazingMaterialRecord struct {
	MetaRecord
	MaterialBaseRecord
	Density                 float64 `json:"Density"`
	Conductivity            float64 `json:"Conductivity"`
	SolarTransmittance      float64 `json:"SolarTransmittance"`
	SolarReflectanceFront   float64 `json:"SolarReflectanceFront"`
	SolarReflectanceBack    float64 `json:"SolarReflectanceBack"`
	VisibleTransmittance    float64 `json:"VisibleTransmittance"`
	VisibleReflectanceFront float64 `json:"VisibleReflectanceFront"`
	VisibleReflectanceBack  float64 `json:"VisibleReflectanceBack"`
	IRTransmittance         float64 `json:"IRTransmittance"`
	IREmissivityFront       float64 `json:"IREmissivityFront"`
	IREmissivityBack        float64 `json:"IREmissivityBack"`
	DirtFactor              float64 `json:"DirtFactor"`
	Type                    string  `json:"Type"`
	Life                    float64 `json:"Life"`
}

type OpaqueMaterialRecord struct {
	MetaRecord
	MaterialBaseRecord
	Conductivity                float64 `json:"Conductivity"`
	Density                     float64 `json:"Density"`
	SpecificHeat                float64 `json:"SpecificHeat"`
	SolarAbsorptance            float64 `json:"SolarAbsorptance"`
	ThermalEmittance            float64 `json:"ThermalEmittance"`
	VisibleAbsorptance          float64 `json:"VisibleAbsorptance"`
	Roughness                   string  `json:"Roughness"`
	MoistureDiffusionResistance float64 `json:"MoistureDiffusionResistance"`
}

type LayerRecord struct {
	Material  Ref     `json:"Material"`
	Thickness float64 `json:"Thickness"`
}

type ConstructionBaseRecord struct {
	AssemblyCarbon    float64 `json:"AssemblyCarbon"`
	AssemblyCost      float64 `json:"AssemblyCost"`
	AssemblyEnergy    float64 `json:"AssemblyEnergy"`
	DisassemblyCarbon float64 `json:"DisassemblyCarbon"`
	DisassemblyEnergy float64 `json:"DisassemblyEnergy"`
}

type OpaqueConstructionRecord struct {
	MetaRecord
	ConstructionBaseRecord
	Layers []LayerRecord `json:"Layers"`
}

type WindowConstructionRecord struct {
	MetaRecord
	ConstructionBaseRecord
	Layers []LayerRecord `json:"Layers"`
}

type MassRatioRecord struct {
	HighLoadRatio float64 `json:"HighLoadRatio"`
	Material      Ref     `json:"Material"`
	NormalRatio   float64 `json:"NormalRatio"`
}

type StructureDefinitionRecord struct {
	MetaRecord
	ConstructionBaseRecord
	MassRatios []MassRatioRecord `json:"MassRatios"`
}

type DayScheduleRecord struct {
	MetaRecord
	Type   string    `json:"Type"`
	Values []float64 `json:"Values"`
}

type WeekScheduleRecord struct {
	MetaRecord
	Type string `json:"Type"`
	Days []Ref  `json:"Days"`
}

type YearSchedulePartRecord struct {
	FromDay   int `json:"FromDay"`
	FromMonth int `json:"FromMonth"`
	ToDay     int `json:"ToDay"`
	ToMonth   int `json:"ToMonth"`
	Schedule  Ref `json:"Schedule"`
}

type YearScheduleRecord struct {
	MetaRecord
	Type  string                   `json:"Type"`
	Parts []YearSchedulePartRecord `json:"Parts"`
}

type DomesticHotWaterSettingRecord struct {
	MetaRecord
	FlowRatePerFloorArea   float64 `json:"FlowRatePerFloorArea"`
	IsOn                   bool    `json:"IsOn"`
	WaterSchedule          *Ref    `json:"WaterSchedule"`
	WaterSupplyTemperature float64 `json:"WaterSupplyTemperature"`
	WaterTemperatureInlet  float64 `json:"WaterTemperatureInlet"`
}

type VentilationSettingRecord struct {
	MetaRecord
	Afn                          bool    `json:"Afn"`
	IsBuoyancyOn                 bool    `json:"IsBuoyancyOn"`
	Infiltration                 float64 `json:"Infiltration"`
	IsInfiltrationOn             bool    `json:"IsInfiltrationOn"`
	IsNatVentOn                  bool    `json:"IsNatVentOn"`
	IsScheduledVentilationOn     bool    `json:"IsScheduledVentilationOn"`
	IsWindOn                     bool    `json:"IsWindOn"`
	NatVentMaxOutdoorAirTemp     float64 `json:"NatVentMaxOutdoorAirTemp"`
	NatVentMaxRelHumidity        float64 `json:"NatVentMaxRelHumidity"`
	NatVentMinOutdoorAirTemp     float64 `json:"NatVentMinOutdoorAirTemp"`
	NatVentSchedule              *Ref    `json:"NatVentSchedule"`
	NatVentZoneTempSetpoint      float64 `json:"NatVentZoneTempSetpoint"`
	ScheduledVentilationAch      float64 `json:"ScheduledVentilationAch"`
	ScheduledVentilationSchedule *Ref    `json:"ScheduledVentilationSchedule"`
	ScheduledVentilationSetpoint float64 `json:"ScheduledVentilationSetpoint"`
}

type ZoneConditioningRecord struct {
	MetaRecord
	CoolingCoeffOfPerf             float64 `json:"CoolingCoeffOfPerf"`
	CoolingLimitType               string  `json:"CoolingLimitType"`
	CoolingSetpoint                float64 `json:"CoolingSetpoint"`
	CoolingSchedule                *Ref    `json:"CoolingSchedule"`
	EconomizerType                 string  `json:"EconomizerType"`
	HeatRecoveryEfficiencyLatent   float64 `json:"HeatRecoveryEfficiencyLatent"`
	HeatRecoveryEfficiencySensible float64 `json:"HeatRecoveryEfficiencySensible"`
	HeatRecoveryType               string  `json:"HeatRecoveryType"`
	HeatingCoeffOfPerf             float64 `json:"HeatingCoeffOfPerf"`
	HeatingLimitType               string  `json:"HeatingLimitType"`
	HeatingSetpoint                float64 `json:"HeatingSetpoint"`
	HeatingSchedule                *Ref    `json:"HeatingSchedule"`
	IsCoolingOn                    bool    `json:"IsCoolingOn"`
	IsHeatingOn                    bool    `json:"IsHeatingOn"`
	IsMechVentOn                   bool    `json:"IsMechVentOn"`
	MaxCoolFlow                    float64 `json:"MaxCoolFlow"`
	MaxCoolingCapacity             float64 `json:"MaxCoolingCapacity"`
	MaxHeatFlow                    float64 `json:"MaxHeatFlow"`
	MaxHeatingCapacity             float64 `json:"MaxHeatingCapacity"`
	MechVentSchedule               *Ref    `json:"MechVentSchedule"`
	MinFreshAirPerArea             float64 `json:"MinFreshAirPerArea"`
	MinFreshAirPerPerson           float64 `json:"MinFreshAirPerPerson"`
}

type ZoneConstructionSetRecord struct {
	MetaRecord
	Facade               *Ref `json:"Facade"`
	Ground               *Ref `json:"Ground"`
	Partition            *Ref `json:"Partition"`
	Roof                 *Ref `json:"Roof"`
	Slab                 *Ref `json:"Slab"`
	IsFacadeAdiabatic    bool `json:"IsFacadeAdiabatic"`
	IsGroundAdiabatic    bool `json:"IsGroundAdiabatic"`
	IsPartitionAdiabatic bool `json:"IsPartitionAdiabatic"`
	IsRoofAdiabatic      bool `json:"IsRoofAdiabatic"`
	IsSlabAdiabatic      bool `json:"IsSlabAdiabatic"`
}

type ZoneLoadRecord struct {
	MetaRecord
	DimmingType                   string  `json:"DimmingType"`
	EquipmentAvailabilitySchedule *Ref    `json:"EquipmentAvailabilitySchedule"`
	EquipmentPowerDensity         float64 `json:"EquipmentPowerDensity"`
	IlluminanceTarget             float64 `json:"IlluminanceTarget"`
	LightingPowerDensity          float64 `json:"LightingPowerDensity"`
	LightsAvailabilitySchedule    *Ref    `json:"LightsAvailabilitySchedule"`
	OccupancySchedule             *Ref    `json:"OccupancySchedule"`
	IsEquipmentOn                 bool    `json:"IsEquipmentOn"`
	IsLightingOn                  bool    `json:"IsLightingOn"`
	IsPeopleOn                    bool    `json:"IsPeopleOn"`
	PeopleDensity                 float64 `json:"PeopleDensity"`
}

// ZoneRecord does not reference the zone's window setting: window
// settings follow zones in document order and are referenced from
// building templates instead.
type ZoneRecord struct {
	MetaRecord
	Conditioning                    *Ref    `json:"Conditioning"`
	Constructions                   *Ref    `json:"Constructions"`
	DaylightMeshResolution          float64 `json:"DaylightMeshResolution"`
	DaylightWorkplaneHeight         float64 `json:"DaylightWorkplaneHeight"`
	DomesticHotWater                *Ref    `json:"DomesticHotWater"`
	InternalMassConstruction        *Ref    `json:"InternalMassConstruction"`
	InternalMassExposedPerFloorArea float64 `json:"InternalMassExposedPerFloorArea"`
	Loads                           *Ref    `json:"Loads"`
	Ventilation                     *Ref    `json:"Ventilation"`

	// Area and Volume carry the zone's extent so a library read back
	// weights its zones as the one written. Documents without them
	// read as zero-extent zones.
	Area   float64 `json:"Area,omitempty"`
	Volume float64 `json:"Volume,omitempty"`
}

type WindowSettingRecord struct {
	MetaRecord
	AfnDischargeC                     float64 `json:"AfnDischargeC"`
	AfnTempSetpoint                   float64 `json:"AfnTempSetpoint"`
	AfnWindowAvailability             *Ref    `json:"AfnWindowAvailability"`
	Construction                      *Ref    `json:"Construction"`
	IsShadingSystemOn                 bool    `json:"IsShadingSystemOn"`
	IsVirtualPartition                bool    `json:"IsVirtualPartition"`
	IsZoneMixingOn                    bool    `json:"IsZoneMixingOn"`
	OperableArea                      float64 `json:"OperableArea"`
	ShadingSystemAvailabilitySchedule *Ref    `json:"ShadingSystemAvailabilitySchedule"`
	ShadingSystemSetpoint             float64 `json:"ShadingSystemSetpoint"`
	ShadingSystemTransmittance        float64 `json:"ShadingSystemTransmittance"`
	ShadingSystemType                 int     `json:"ShadingSystemType"`
	Type                              int     `json:"Type"`
	ZoneMixingAvailabilitySchedule    *Ref    `json:"ZoneMixingAvailabilitySchedule"`
	ZoneMixingDeltaTemperature        float64 `json:"ZoneMixingDeltaTemperature"`
	ZoneMixingFlowRate                float64 `json:"ZoneMixingFlowRate"`
}

type BuildingTemplateRecord struct {
	MetaRecord
	Core                     *Ref     `json:"Core"`
	Perimeter                *Ref     `json:"Perimeter"`
	Structure                *Ref     `json:"Structure"`
	Windows                  *Ref     `json:"Windows"`
	Lifespan                 float64  `json:"Lifespan"`
	PartitionRatio           float64  `json:"PartitionRatio"`
	DefaultWindowToWallRatio float64  `json:"DefaultWindowToWallRatio"`
	YearFrom                 int      `json:"YearFrom"`
	YearTo                   int      `json:"YearTo"`
	Country                  []string `json:"Country"`
	ClimateZone              []string `json:"ClimateZone"`
	Authors                  []string `json:"Authors"`
	AuthorEmails             []string `json:"AuthorEmails"`
	Version                  string   `json:"Version"`
}

// Document is the serialized library: one array per entity category,
// in dependency order.
type Document struct {
	GasMaterials             []GasMaterialRecord             `json:"GasMaterials"`
	GlazingMaterials         []GlazingMaterialRecord         `json:"GlazingMaterials"`
	OpaqueMaterials          []OpaqueMaterialRecord          `json:"OpaqueMaterials"`
	OpaqueConstructions      []OpaqueConstructionRecord      `json:"OpaqueConstructions"`
	WindowConstructions      []WindowConstructionRecord      `json:"WindowConstructions"`
	StructureDefinitions     []StructureDefinitionRecord     `json:"StructureDefinitions"`
	DaySchedules             []DayScheduleRecord             `json:"DaySchedules"`
	WeekSchedules            []WeekScheduleRecord            `json:"WeekSchedules"`
	YearSchedules            []YearScheduleRecord            `json:"YearSchedules"`
	DomesticHotWaterSettings []DomesticHotWaterSettingRecord `json:"DomesticHotWaterSettings"`
	VentilationSettings      []VentilationSettingRecord      `json:"VentilationSettings"`
	ZoneConditionings        []ZoneConditioningRecord        `json:"ZoneConditionings"`
	ZoneConstructionSets     []ZoneConstructionSetRecord     `json:"ZoneConstructionSets"`
	ZoneLoads                []ZoneLoadRecord                `json:"ZoneLoads"`
	Zones                    []ZoneRecord                    `json:"Zones"`
	WindowSettings           []WindowSettingRecord           `json:"WindowSettings"`
	BuildingTemplates        []BuildingTemplateRecord        `json:"BuildingTemplates"`
}

// Counts returns the number of entries in each category, keyed by
// kind.
func (d *Document) Counts() map[Kind]int {
	return map[Kind]int{
		KindGasMaterial:             len(d.GasMaterials),
		KindGlazingMaterial:         len(d.GlazingMaterials),
		KindOpaqueMaterial:          len(d.OpaqueMaterials),
		KindOpaqueConstruction:      len(d.OpaqueConstructions),
		KindWindowConstruction:      len(d.WindowConstructions),
		KindStructureDefinition:     len(d.StructureDefinitions),
		KindDaySchedule:             len(d.DaySchedules),
		KindWeekSchedule:            len(d.WeekSchedules),
		KindYearSchedule:            len(d.YearSchedules),
		KindDomesticHotWaterSetting: len(d.DomesticHotWaterSettings),
		KindVentilationSetting:      len(d.VentilationSettings),
		KindZoneConditioning:        len(d.ZoneConditionings),
		KindZoneConstructionSet:     len(d.ZoneConstructionSets),
		KindZoneLoad:                len(d.ZoneLoads),
		KindZone:                    len(d.Zones),
		KindWindowSetting:           len(d.WindowSettings),
		KindBuildingTemplate:        len(d.BuildingTemplates),
	}
}

// TemplateNames returns the names of the building templates in the
// document.
func (d *Document) TemplateNames() []string {
	names := make([]string, len(d.BuildingTemplates))
	for i, t := range d.BuildingTemplates {
		names[i] = t.Name
	}
	return names
}

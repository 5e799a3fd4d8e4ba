// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

import (
	"fmt"

	"github.com/bureau-foundation/archetype/lib/model"
)

// Builder translates the records of one parsed building model into
// registered entities. Every entity it creates records the building
// name as its DataSource.
type Builder struct {
	registry *Registry
	building *model.Building
}

// NewBuilder returns a builder for building that registers entities in
// r.
func NewBuilder(r *Registry, building *model.Building) *Builder {
	return &Builder{registry: r, building: building}
}

func (b *Builder) meta(name, category, comments string) Meta {
	return Meta{
		Name:       name,
		Category:   category,
		Comments:   comments,
		DataSource: b.building.Name,
	}
}

// Material returns the entity for the named material record, of the
// kind the record declares.
func (b *Builder) Material(name string) (Material, error) {
	record, ok := b.building.Material(name)
	if !ok {
		return nil, fmt.Errorf("material %q not found in building %q", name, b.building.Name)
	}
	meta := b.meta(record.Name, record.Category, record.Comments)
	base := MaterialBase{
		Cost:                    record.Cost,
		EmbodiedCarbon:          record.EmbodiedCarbon,
		EmbodiedEnergy:          record.EmbodiedEnergy,
		SubstitutionRatePattern: []float64{1},
		TransportCarbon:         record.TransportCarbon,
		TransportDistance:       record.TransportDistance,
		TransportEnergy:         record.TransportEnergy,
	}

	switch record.Kind {
	case model.MaterialOpaque:
		m := DefaultOpaqueMaterial(record.Name)
		m.Meta = meta
		m.MaterialBase = base
		m.Conductivity = record.Conductivity
		m.Density = record.Density
		m.SpecificHeat = record.SpecificHeat
		if record.SolarAbsorptance > 0 {
			m.SolarAbsorptance = record.SolarAbsorptance
		}
		if record.ThermalEmittance > 0 {
			m.ThermalEmittance = record.ThermalEmittance
		}
		if record.VisibleAbsorptance > 0 {
			m.VisibleAbsorptance = record.VisibleAbsorptance
		}
		if record.Roughness != "" {
			m.Roughness = record.Roughness
		}
		return NewOpaqueMaterial(b.registry, m)

	case model.MaterialGlazing:
		m := DefaultGlazingMaterial(record.Name)
		m.Meta = meta
		m.MaterialBase = base
		if record.Density > 0 {
			m.Density = record.Density
		}
		m.Conductivity = record.Conductivity
		m.SolarTransmittance = record.SolarTransmittance
		m.SolarReflectanceFront = record.SolarReflectanceFront
		m.SolarReflectanceBack = record.SolarReflectanceBack
		m.VisibleTransmittance = record.VisibleTransmittance
		m.VisibleReflectanceFront = record.VisibleReflectanceFront
		m.VisibleReflectanceBack = record.VisibleReflectanceBack
		m.IRTransmittance = record.InfraredTransmittance
		m.IREmissivityFront = record.InfraredEmissivityFront
		m.IREmissivityBack = record.InfraredEmissivityBack
		if record.DirtCorrectionFactor > 0 {
			m.DirtFactor = record.DirtCorrectionFactor
		}
		return NewGlazingMaterial(b.registry, m)

	case model.MaterialGas:
		m := DefaultGasMaterial(record.Name)
		m.Meta = meta
		m.MaterialBase = base
		m.Type = strMean(record.GasType, GasAir)
		return NewGasMaterial(b.registry, m)
	}
	return nil, fmt.Errorf("material %q: unknown kind %q", name, record.Kind)
}

func (b *Builder) layers(record *model.Construction) ([]MaterialLayer, error) {
	layers := make([]MaterialLayer, 0, len(record.Layers))
	for i, layer := range record.Layers {
		material, err := b.Material(layer.Material)
		if err != nil {
			return nil, fmt.Errorf("construction %q layer %d: %w", record.Name, i, err)
		}
		layers = append(layers, MaterialLayer{Material: material, Thickness: layer.Thickness})
	}
	return layers, nil
}

// OpaqueConstruction returns the entity for the named construction
// record.
func (b *Builder) OpaqueConstruction(name string) (*OpaqueConstruction, error) {
	if existing, ok := b.registry.Lookup(KindOpaqueConstruction, name); ok {
		return existing.(*OpaqueConstruction), nil
	}
	record, ok := b.building.Construction(name)
	if !ok {
		return nil, fmt.Errorf("construction %q not found in building %q", name, b.building.Name)
	}
	layers, err := b.layers(record)
	if err != nil {
		return nil, err
	}
	for _, layer := range layers {
		if layer.Material.Kind() != KindOpaqueMaterial {
			return nil, fmt.Errorf("construction %q: material %q is not opaque",
				name, layer.Material.Metadata().Name)
		}
	}
	return NewOpaqueConstruction(b.registry, OpaqueConstruction{
		Meta:   b.meta(record.Name, "", ""),
		Layers: layers,
	})
}

// WindowConstruction returns the entity for the named construction
// record. Its layers may mix glazing and gas materials.
func (b *Builder) WindowConstruction(name string) (*WindowConstruction, error) {
	if existing, ok := b.registry.Lookup(KindWindowConstruction, name); ok {
		return existing.(*WindowConstruction), nil
	}
	record, ok := b.building.Construction(name)
	if !ok {
		return nil, fmt.Errorf("construction %q not found in building %q", name, b.building.Name)
	}
	layers, err := b.layers(record)
	if err != nil {
		return nil, err
	}
	return NewWindowConstruction(b.registry, WindowConstruction{
		Meta:   b.meta(record.Name, "", ""),
		Layers: layers,
	})
}

// Schedule returns the year schedule for the named schedule record. An
// empty name returns nil.
func (b *Builder) Schedule(name string) (*YearSchedule, error) {
	if name == "" {
		return nil, nil
	}
	if existing, ok := b.registry.Lookup(KindYearSchedule, name); ok {
		return existing.(*YearSchedule), nil
	}
	record, ok := b.building.Schedule(name)
	if !ok {
		return nil, fmt.Errorf("schedule %q not found in building %q", name, b.building.Name)
	}
	return YearScheduleFromValues(b.registry, b.meta(record.Name, "", ""), record.Type, record.Values)
}

// Structure returns the structure definition of the building, or a
// generic concrete structure when the model has none.
func (b *Builder) Structure() (*StructureDefinition, error) {
	name := b.building.Name + "_StructureDefinition"
	if b.building.Structure == nil {
		material, err := NewOpaqueMaterial(b.registry, DefaultOpaqueMaterial("Generic Concrete"))
		if err != nil {
			return nil, err
		}
		return NewStructureDefinition(b.registry, StructureDefinition{
			Meta:       b.meta(name, "", "Generic structure"),
			MassRatios: []MassRatio{{HighLoadRatio: 305, Material: material, NormalRatio: 305}},
		})
	}
	record := b.building.Structure
	material, err := b.Material(record.Material)
	if err != nil {
		return nil, fmt.Errorf("structure: %w", err)
	}
	opaque, ok := material.(*OpaqueMaterial)
	if !ok {
		return nil, fmt.Errorf("structure: material %q is not opaque", record.Material)
	}
	return NewStructureDefinition(b.registry, StructureDefinition{
		Meta: b.meta(name, "", ""),
		MassRatios: []MassRatio{{
			HighLoadRatio: record.HighLoadRatio,
			Material:      opaque,
			NormalRatio:   record.NormalRatio,
		}},
	})
}

// scheduleSet resolves schedule names, keeping the first error.
type scheduleSet struct {
	b   *Builder
	err error
}

func (s *scheduleSet) get(name string) *YearSchedule {
	if s.err != nil {
		return nil
	}
	schedule, err := s.b.Schedule(name)
	if err != nil {
		s.err = err
	}
	return schedule
}

// Zone translates a zone record with all of its settings and registers
// it. Missing setting blocks take the library defaults. Area and
// volume fall back to the building's Zone Summary table.
func (b *Builder) Zone(record *model.Zone) (*Zone, error) {
	r := b.registry
	schedules := &scheduleSet{b: b}

	conditioning := DefaultZoneConditioning(record.Name + "_ZoneConditioning")
	if c := record.Conditioning; c != nil {
		conditioning.IsHeatingOn = c.IsHeatingOn
		conditioning.IsCoolingOn = c.IsCoolingOn
		conditioning.IsMechVentOn = c.IsMechVentOn
		setPositive(&conditioning.HeatingSetpoint, c.HeatingSetpoint)
		setPositive(&conditioning.CoolingSetpoint, c.CoolingSetpoint)
		setPositive(&conditioning.HeatingCoeffOfPerf, c.HeatingCoeffOfPerf)
		setPositive(&conditioning.CoolingCoeffOfPerf, c.CoolingCoeffOfPerf)
		conditioning.HeatingLimitType = strMean(c.HeatingLimitType, conditioning.HeatingLimitType)
		conditioning.CoolingLimitType = strMean(c.CoolingLimitType, conditioning.CoolingLimitType)
		setPositive(&conditioning.MaxHeatingCapacity, c.MaxHeatingCapacity)
		setPositive(&conditioning.MaxCoolingCapacity, c.MaxCoolingCapacity)
		setPositive(&conditioning.MaxHeatFlow, c.MaxHeatFlow)
		setPositive(&conditioning.MaxCoolFlow, c.MaxCoolFlow)
		setPositive(&conditioning.MinFreshAirPerPerson, c.MinFreshAirPerPerson)
		setPositive(&conditioning.MinFreshAirPerArea, c.MinFreshAirPerArea)
		conditioning.EconomizerType = strMean(c.EconomizerType, conditioning.EconomizerType)
		conditioning.HeatRecoveryType = strMean(c.HeatRecoveryType, conditioning.HeatRecoveryType)
		setPositive(&conditioning.HeatRecoveryEfficiencySensible, c.HeatRecoveryEfficiencySensible)
		setPositive(&conditioning.HeatRecoveryEfficiencyLatent, c.HeatRecoveryEfficiencyLatent)
		conditioning.HeatingSchedule = schedules.get(c.HeatingSchedule)
		conditioning.CoolingSchedule = schedules.get(c.CoolingSchedule)
		conditioning.MechVentSchedule = schedules.get(c.MechVentSchedule)
	}

	loads := DefaultZoneLoad(record.Name + "_ZoneLoad")
	if l := record.Loads; l != nil {
		loads.IsPeopleOn = l.IsPeopleOn
		loads.IsLightingOn = l.IsLightingOn
		loads.IsEquipmentOn = l.IsEquipmentOn
		loads.PeopleDensity = l.PeopleDensity
		loads.LightingPowerDensity = l.LightingPowerDensity
		loads.EquipmentPowerDensity = l.EquipmentPowerDensity
		setPositive(&loads.IlluminanceTarget, l.IlluminanceTarget)
		loads.DimmingType = strMean(l.DimmingType, loads.DimmingType)
		loads.OccupancySchedule = schedules.get(l.OccupancySchedule)
		loads.LightsAvailabilitySchedule = schedules.get(l.LightsAvailabilitySchedule)
		loads.EquipmentAvailabilitySchedule = schedules.get(l.EquipmentAvailabilitySchedule)
	}

	ventilation := DefaultVentilationSetting(record.Name + "_VentilationSetting")
	if v := record.Ventilation; v != nil {
		ventilation.Afn = v.Afn
		ventilation.IsBuoyancyOn = v.IsBuoyancyOn
		ventilation.IsInfiltrationOn = v.IsInfiltrationOn
		ventilation.IsNatVentOn = v.IsNatVentOn
		ventilation.IsScheduledVentilationOn = v.IsScheduledVentilationOn
		ventilation.IsWindOn = v.IsWindOn
		ventilation.Infiltration = v.Infiltration
		setPositive(&ventilation.NatVentMaxOutdoorAirTemp, v.NatVentMaxOutdoorAirTemp)
		setPositive(&ventilation.NatVentMaxRelHumidity, v.NatVentMaxRelHumidity)
		ventilation.NatVentMinOutdoorAirTemp = v.NatVentMinOutdoorAirTemp
		setPositive(&ventilation.NatVentZoneTempSetpoint, v.NatVentZoneTempSetpoint)
		setPositive(&ventilation.ScheduledVentilationAch, v.ScheduledVentilationAch)
		setPositive(&ventilation.ScheduledVentilationSetpoint, v.ScheduledVentilationSetpoint)
		ventilation.NatVentSchedule = schedules.get(v.NatVentSchedule)
		ventilation.ScheduledVentilationSchedule = schedules.get(v.ScheduledVentilationSchedule)
	}

	hotWater := DefaultDomesticHotWaterSetting(record.Name + "_DomesticHotWaterSetting")
	if d := record.DomesticHotWater; d != nil {
		hotWater.IsOn = d.IsOn
		hotWater.FlowRatePerFloorArea = d.FlowRatePerFloorArea
		setPositive(&hotWater.WaterSupplyTemperature, d.WaterSupplyTemperature)
		setPositive(&hotWater.WaterTemperatureInlet, d.WaterTemperatureInlet)
		hotWater.WaterSchedule = schedules.get(d.WaterSchedule)
	}

	var windows *WindowSetting
	if len(record.Windows) > 0 || record.WindowSetting != nil {
		setting := DefaultWindowSetting(record.Name + "_WindowSetting")
		if ws := record.WindowSetting; ws != nil {
			setting.Type = ParseWindowType(ws.Type)
			setting.IsShadingSystemOn = ws.IsShadingSystemOn
			setting.IsVirtualPartition = ws.IsVirtualPartition
			setting.IsZoneMixingOn = ws.IsZoneMixingOn
			setPositive(&setting.OperableArea, ws.OperableArea)
			setPositive(&setting.AfnDischargeC, ws.AfnDischargeC)
			setPositive(&setting.AfnTempSetpoint, ws.AfnTempSetpoint)
			setPositive(&setting.ShadingSystemSetpoint, ws.ShadingSystemSetpoint)
			setPositive(&setting.ShadingSystemTransmittance, ws.ShadingSystemTransmittance)
			setting.ShadingSystemType = ws.ShadingSystemType
			setPositive(&setting.ZoneMixingDeltaTemperature, ws.ZoneMixingDeltaTemperature)
			setPositive(&setting.ZoneMixingFlowRate, ws.ZoneMixingFlowRate)
			setting.AfnWindowAvailability = schedules.get(ws.AfnWindowAvailability)
			setting.ShadingSystemAvailabilitySchedule = schedules.get(ws.ShadingSystemAvailabilitySchedule)
			setting.ZoneMixingAvailabilitySchedule = schedules.get(ws.ZoneMixingAvailabilitySchedule)
		}
		construction, err := b.windowConstruction(record)
		if err != nil {
			return nil, err
		}
		setting.Construction = construction
		setting.DataSource = b.building.Name
		if windows, err = NewWindowSetting(r, setting); err != nil {
			return nil, err
		}
	}
	if schedules.err != nil {
		return nil, fmt.Errorf("zone %q: %w", record.Name, schedules.err)
	}

	for _, meta := range []*Meta{&conditioning.Meta, &loads.Meta, &ventilation.Meta, &hotWater.Meta} {
		meta.DataSource = b.building.Name
	}

	zone := DefaultZone(record.Name)
	zone.DataSource = b.building.Name
	var err error
	if zone.Conditioning, err = NewZoneConditioning(r, conditioning); err != nil {
		return nil, err
	}
	if zone.Loads, err = NewZoneLoad(r, loads); err != nil {
		return nil, err
	}
	if zone.Ventilation, err = NewVentilationSetting(r, ventilation); err != nil {
		return nil, err
	}
	if zone.DomesticHotWater, err = NewDomesticHotWaterSetting(r, hotWater); err != nil {
		return nil, err
	}
	zone.Windows = windows

	zone.Constructions, err = ZoneConstructionSetFromSurfaces(r,
		b.meta(record.Name+"_ZoneConstructionSet", "", ""),
		record.Surfaces,
		b.OpaqueConstruction)
	if err != nil {
		return nil, fmt.Errorf("zone %q: %w", record.Name, err)
	}

	geometry := ZoneGeometry{Surfaces: record.Surfaces, Multiplier: record.Multiplier}
	if summary, ok := b.building.Tables.ZoneSummary(record.Name); ok {
		geometry.ReportedArea = summary.Area
		geometry.ReportedVolume = summary.Volume
	}

	if err := b.internalMass(&zone, record, geometry); err != nil {
		return nil, fmt.Errorf("zone %q: %w", record.Name, err)
	}

	return NewZone(r, zone, geometry)
}

// windowConstruction reduces the constructions of a zone's windows
// into one, weighted by window area. A zone with a window setting but
// no windows has no construction.
func (b *Builder) windowConstruction(record *model.Zone) (*WindowConstruction, error) {
	var combined *WindowConstruction
	var area float64
	for _, window := range record.Windows {
		construction, err := b.WindowConstruction(window.Construction)
		if err != nil {
			return nil, fmt.Errorf("window %q: %w", window.Name, err)
		}
		windowArea := window.Polygon().Area()
		if combined == nil {
			combined, area = construction, windowArea
			continue
		}
		if combined, err = combined.Combine(b.registry, construction, []float64{area, windowArea}); err != nil {
			return nil, fmt.Errorf("window %q: %w", window.Name, err)
		}
		area += windowArea
	}
	return combined, nil
}

// internalMass sets the zone's internal mass construction, reduced
// from its internal mass records weighted by area, and the exposed
// area per floor area. A zone without internal mass gets the generic
// internal mass construction with no exposure.
func (b *Builder) internalMass(zone *Zone, record *model.Zone, geometry ZoneGeometry) error {
	var combined *OpaqueConstruction
	var massArea float64
	for _, mass := range record.InternalMass {
		construction, err := b.OpaqueConstruction(mass.Construction)
		if err != nil {
			return fmt.Errorf("internal mass %q: %w", mass.Name, err)
		}
		if combined == nil {
			combined, massArea = construction, mass.Area
			continue
		}
		if combined, err = combined.Combine(b.registry, construction, []float64{massArea, mass.Area}); err != nil {
			return fmt.Errorf("internal mass %q: %w", mass.Name, err)
		}
		massArea += mass.Area
	}

	if combined == nil {
		generic, err := GenericInternalMass(b.registry)
		if err != nil {
			return err
		}
		zone.InternalMassConstruction = generic
		zone.InternalMassExposedPerFloorArea = 0
		return nil
	}

	zone.InternalMassConstruction = combined
	if floorArea := geometry.area(); floorArea > 0 {
		zone.InternalMassExposedPerFloorArea = massArea * geometry.multiplier() / floorArea
	}
	return nil
}

// GenericInternalMass returns the internal mass construction used for
// zones without internal mass: a thin layer of generic concrete.
func GenericInternalMass(r *Registry) (*OpaqueConstruction, error) {
	material, err := NewOpaqueMaterial(r, DefaultOpaqueMaterial("Generic Concrete"))
	if err != nil {
		return nil, err
	}
	return NewOpaqueConstruction(r, OpaqueConstruction{
		Meta: Meta{
			Name:       "InternalMass",
			Category:   "Internal Mass",
			DataSource: "archetype",
		},
		Layers: []MaterialLayer{{Material: material, Thickness: 0.15}},
	})
}

func setPositive(field *float64, value float64) {
	if value > 0 {
		*field = value
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

import (
	"fmt"
	"slices"
)

// RefIndex maps document $id values to the entities built from them.
// It is scoped to one document read.
type RefIndex struct {
	entities map[string]Entity
}

// NewRefIndex returns an empty index.
func NewRefIndex() *RefIndex {
	return &RefIndex{entities: make(map[string]Entity)}
}

// Add records the entity built from the entry with the given $id.
func (x *RefIndex) Add(id string, e Entity) error {
	if id == "" {
		return fmt.Errorf("%s %q: missing $id", e.Kind(), e.Metadata().Name)
	}
	if previous, ok := x.entities[id]; ok {
		return fmt.Errorf("duplicate $id %q (%s %q and %s %q)",
			id, previous.Kind(), previous.Metadata().Name, e.Kind(), e.Metadata().Name)
	}
	x.entities[id] = e
	return nil
}

// Get returns the entity built from the entry with the given $id.
func (x *RefIndex) Get(id string) (Entity, bool) {
	e, ok := x.entities[id]
	return e, ok
}

// Len returns the number of indexed entries.
func (x *RefIndex) Len() int { return len(x.entities) }

// resolver resolves references for one document entry, keeping the
// first error.
type resolver struct {
	index *RefIndex
	kind  Kind
	name  string
	err   error
}

func (rs *resolver) lookup(field string, ref Ref) Entity {
	if rs.err != nil {
		return nil
	}
	e, ok := rs.index.Get(ref.Ref)
	if !ok {
		rs.err = &MissingReferenceError{Kind: rs.kind, Name: rs.name, Field: field, Ref: ref.Ref}
		return nil
	}
	return e
}

func resolve[T Entity](rs *resolver, field string, ref Ref) T {
	var zero T
	e := rs.lookup(field, ref)
	if e == nil {
		return zero
	}
	typed, ok := e.(T)
	if !ok {
		rs.err = fmt.Errorf("%s %q field %s: $ref %q is a %s", rs.kind, rs.name, field, ref.Ref, e.Kind())
		return zero
	}
	return typed
}

func resolveOptional[T Entity](rs *resolver, field string, ref *Ref) T {
	if ref == nil {
		var zero T
		return zero
	}
	return resolve[T](rs, field, *ref)
}

func (rs *resolver) material(field string, ref Ref) Material {
	return resolve[Material](rs, field, ref)
}

func (rs *resolver) layers(records []LayerRecord) []MaterialLayer {
	layers := make([]MaterialLayer, 0, len(records))
	for i, record := range records {
		material := rs.material(fmt.Sprintf("Layers[%d].Material", i), record.Material)
		if rs.err != nil {
			return nil
		}
		layers = append(layers, MaterialLayer{Material: material, Thickness: record.Thickness})
	}
	return layers
}

func metaFrom(record MetaRecord) Meta {
	return Meta{
		Name:       record.Name,
		Category:   record.Category,
		Comments:   record.Comments,
		DataSource: record.DataSource,
	}
}

func materialBaseFrom(record MaterialBaseRecord) MaterialBase {
	return MaterialBase{
		Cost:                    record.Cost,
		EmbodiedCarbon:          record.EmbodiedCarbon,
		EmbodiedEnergy:          record.EmbodiedEnergy,
		SubstitutionTimestep:    record.SubstitutionTimestep,
		SubstitutionRatePattern: record.SubstitutionRatePattern,
		TransportCarbon:         record.TransportCarbon,
		TransportDistance:       record.TransportDistance,
		TransportEnergy:         record.TransportEnergy,
	}
}

// documentReader builds the entities of one document in category
// order.
type documentReader struct {
	r        *Registry
	index    *RefIndex
	entities map[Kind][]Entity
}

// add registers a built entity, indexes it under its $id, and records
// it for the library.
func add[T Entity](d *documentReader, record MetaRecord, rs *resolver, candidate T) error {
	if rs != nil && rs.err != nil {
		return rs.err
	}
	registered, err := registerAlias(d.r, candidate, record.ID)
	if err != nil {
		return fmt.Errorf("%s %q: %w", candidate.Kind(), record.Name, err)
	}
	if err := d.index.Add(record.ID, registered); err != nil {
		return err
	}
	kind := candidate.Kind()
	if !slices.ContainsFunc(d.entities[kind], func(e Entity) bool { return e == Entity(registered) }) {
		d.entities[kind] = append(d.entities[kind], registered)
	}
	return nil
}

func (d *documentReader) resolver(kind Kind, record MetaRecord) *resolver {
	return &resolver{index: d.index, kind: kind, name: record.Name}
}

// FromDocument rebuilds a library from a document, registering its
// entities in r. References must point at entries of earlier
// categories (or earlier entries of the same category); anything else
// is a [MissingReferenceError].
func FromDocument(r *Registry, name string, doc *Document) (*Library, error) {
	d := &documentReader{r: r, index: NewRefIndex(), entities: make(map[Kind][]Entity)}
	for _, step := range []func(*Document) error{
		d.materials,
		d.constructions,
		d.schedules,
		d.settings,
		d.zones,
		d.templates,
	} {
		if err := step(doc); err != nil {
			return nil, err
		}
	}

	library := &Library{Name: name, entities: d.entities}
	for _, e := range d.entities[KindBuildingTemplate] {
		library.BuildingTemplates = append(library.BuildingTemplates, e.(*BuildingTemplate))
	}
	return library, nil
}

func (d *documentReader) materials(doc *Document) error {
	for _, rec := range doc.GasMaterials {
		m := &GasMaterial{Meta: metaFrom(rec.MetaRecord), MaterialBase: materialBaseFrom(rec.MaterialBaseRecord), Type: strMean(rec.Type, GasAir)}
		if err := add(d, rec.MetaRecord, nil, m); err != nil {
			return err
		}
	}
	for _, rec := range doc.GlazingMaterials {
		m := &GlazingMaterial{
			Meta:                    metaFrom(rec.MetaRecord),
			MaterialBase:            materialBaseFrom(rec.MaterialBaseRecord),
			Density:                 rec.Density,
			Conductivity:            rec.Conductivity,
			SolarTransmittance:      rec.SolarTransmittance,
			SolarReflectanceFront:   rec.SolarReflectanceFront,
			SolarReflectanceBack:    rec.SolarReflectanceBack,
			VisibleTransmittance:    rec.VisibleTransmittance,
			VisibleReflectanceFront: rec.VisibleReflectanceFront,
			VisibleReflectanceBack:  rec.VisibleReflectanceBack,
			IRTransmittance:         rec.IRTransmittance,
			IREmissivityFront:       rec.IREmissivityFront,
			IREmissivityBack:        rec.IREmissivityBack,
			DirtFactor:              rec.DirtFactor,
			Type:                    rec.Type,
			Life:                    rec.Life,
		}
		if err := add(d, rec.MetaRecord, nil, m); err != nil {
			return err
		}
	}
	for _, rec := range doc.OpaqueMaterials {
		m := &OpaqueMaterial{
			Meta:                        metaFrom(rec.MetaRecord),
			MaterialBase:                materialBaseFrom(rec.MaterialBaseRecord),
			Conductivity:                rec.Conductivity,
			Density:                     rec.Density,
			SpecificHeat:                rec.SpecificHeat,
			SolarAbsorptance:            rec.SolarAbsorptance,
			ThermalEmittance:            rec.ThermalEmittance,
			VisibleAbsorptance:          rec.VisibleAbsorptance,
			Roughness:                   rec.Roughness,
			MoistureDiffusionResistance: rec.MoistureDiffusionResistance,
		}
		if err := add(d, rec.MetaRecord, nil, m); err != nil {
			return err
		}
	}
	return nil
}

func (d *documentReader) constructions(doc *Document) error {
	for _, rec := range doc.OpaqueConstructions {
		rs := d.resolver(KindOpaqueConstruction, rec.MetaRecord)
		c := &OpaqueConstruction{
			Meta:             metaFrom(rec.MetaRecord),
			ConstructionBase: ConstructionBase(rec.ConstructionBaseRecord),
			Layers:           rs.layers(rec.Layers),
		}
		if err := add(d, rec.MetaRecord, rs, c); err != nil {
			return err
		}
	}
	for _, rec := range doc.WindowConstructions {
		rs := d.resolver(KindWindowConstruction, rec.MetaRecord)
		c := &WindowConstruction{
			Meta:             metaFrom(rec.MetaRecord),
			ConstructionBase: ConstructionBase(rec.ConstructionBaseRecord),
			Layers:           rs.layers(rec.Layers),
		}
		if err := add(d, rec.MetaRecord, rs, c); err != nil {
			return err
		}
	}
	for _, rec := range doc.StructureDefinitions {
		rs := d.resolver(KindStructureDefinition, rec.MetaRecord)
		s := &StructureDefinition{
			Meta:             metaFrom(rec.MetaRecord),
			ConstructionBase: ConstructionBase(rec.ConstructionBaseRecord),
		}
		for i, ratio := range rec.MassRatios {
			s.MassRatios = append(s.MassRatios, MassRatio{
				HighLoadRatio: ratio.HighLoadRatio,
				Material:      resolve[*OpaqueMaterial](rs, fmt.Sprintf("MassRatios[%d].Material", i), ratio.Material),
				NormalRatio:   ratio.NormalRatio,
			})
		}
		if err := add(d, rec.MetaRecord, rs, s); err != nil {
			return err
		}
	}
	return nil
}

func (d *documentReader) schedules(doc *Document) error {
	for _, rec := range doc.DaySchedules {
		if len(rec.Values) != HoursPerDay {
			return fmt.Errorf("%s %q: want %d values, got %d", KindDaySchedule, rec.Name, HoursPerDay, len(rec.Values))
		}
		s := &DaySchedule{Meta: metaFrom(rec.MetaRecord), Type: rec.Type, Values: rec.Values}
		if err := add(d, rec.MetaRecord, nil, s); err != nil {
			return err
		}
	}
	for _, rec := range doc.WeekSchedules {
		if len(rec.Days) != DaysPerWeek {
			return fmt.Errorf("%s %q: want %d days, got %d", KindWeekSchedule, rec.Name, DaysPerWeek, len(rec.Days))
		}
		rs := d.resolver(KindWeekSchedule, rec.MetaRecord)
		s := &WeekSchedule{Meta: metaFrom(rec.MetaRecord), Type: rec.Type}
		for i, day := range rec.Days {
			s.Days[i] = resolve[*DaySchedule](rs, fmt.Sprintf("Days[%d]", i), day)
		}
		if err := add(d, rec.MetaRecord, rs, s); err != nil {
			return err
		}
	}
	for _, rec := range doc.YearSchedules {
		rs := d.resolver(KindYearSchedule, rec.MetaRecord)
		s := &YearSchedule{Meta: metaFrom(rec.MetaRecord), Type: rec.Type}
		for i, part := range rec.Parts {
			s.Parts = append(s.Parts, YearSchedulePart{
				FromDay:   part.FromDay,
				FromMonth: part.FromMonth,
				ToDay:     part.ToDay,
				ToMonth:   part.ToMonth,
				Schedule:  resolve[*WeekSchedule](rs, fmt.Sprintf("Parts[%d].Schedule", i), part.Schedule),
			})
		}
		if err := add(d, rec.MetaRecord, rs, s); err != nil {
			return err
		}
	}
	return nil
}

func (d *documentReader) settings(doc *Document) error {
	for _, rec := range doc.DomesticHotWaterSettings {
		rs := d.resolver(KindDomesticHotWaterSetting, rec.MetaRecord)
		s := &DomesticHotWaterSetting{
			Meta:                   metaFrom(rec.MetaRecord),
			FlowRatePerFloorArea:   rec.FlowRatePerFloorArea,
			IsOn:                   rec.IsOn,
			WaterSchedule:          resolveOptional[*YearSchedule](rs, "WaterSchedule", rec.WaterSchedule),
			WaterSupplyTemperature: rec.WaterSupplyTemperature,
			WaterTemperatureInlet:  rec.WaterTemperatureInlet,
		}
		if err := add(d, rec.MetaRecord, rs, s); err != nil {
			return err
		}
	}
	for _, rec := range doc.VentilationSettings {
		rs := d.resolver(KindVentilationSetting, rec.MetaRecord)
		s := &VentilationSetting{
			Meta:                         metaFrom(rec.MetaRecord),
			Afn:                          rec.Afn,
			IsBuoyancyOn:                 rec.IsBuoyancyOn,
			Infiltration:                 rec.Infiltration,
			IsInfiltrationOn:             rec.IsInfiltrationOn,
			IsNatVentOn:                  rec.IsNatVentOn,
			IsScheduledVentilationOn:     rec.IsScheduledVentilationOn,
			IsWindOn:                     rec.IsWindOn,
			NatVentMaxOutdoorAirTemp:     rec.NatVentMaxOutdoorAirTemp,
			NatVentMaxRelHumidity:        rec.NatVentMaxRelHumidity,
			NatVentMinOutdoorAirTemp:     rec.NatVentMinOutdoorAirTemp,
			NatVentSchedule:              resolveOptional[*YearSchedule](rs, "NatVentSchedule", rec.NatVentSchedule),
			NatVentZoneTempSetpoint:      rec.NatVentZoneTempSetpoint,
			ScheduledVentilationAch:      rec.ScheduledVentilationAch,
			ScheduledVentilationSchedule: resolveOptional[*YearSchedule](rs, "ScheduledVentilationSchedule", rec.ScheduledVentilationSchedule),
			ScheduledVentilationSetpoint: rec.ScheduledVentilationSetpoint,
		}
		if err := add(d, rec.MetaRecord, rs, s); err != nil {
			return err
		}
	}
	for _, rec := range doc.ZoneConditionings {
		rs := d.resolver(KindZoneConditioning, rec.MetaRecord)
		s := &ZoneConditioning{
			Meta:                           metaFrom(rec.MetaRecord),
			CoolingCoeffOfPerf:             rec.CoolingCoeffOfPerf,
			CoolingLimitType:               rec.CoolingLimitType,
			CoolingSetpoint:                rec.CoolingSetpoint,
			CoolingSchedule:                resolveOptional[*YearSchedule](rs, "CoolingSchedule", rec.CoolingSchedule),
			EconomizerType:                 rec.EconomizerType,
			HeatRecoveryEfficiencyLatent:   rec.HeatRecoveryEfficiencyLatent,
			HeatRecoveryEfficiencySensible: rec.HeatRecoveryEfficiencySensible,
			HeatRecoveryType:               rec.HeatRecoveryType,
			HeatingCoeffOfPerf:             rec.HeatingCoeffOfPerf,
			HeatingLimitType:               rec.HeatingLimitType,
			HeatingSetpoint:                rec.HeatingSetpoint,
			HeatingSchedule:                resolveOptional[*YearSchedule](rs, "HeatingSchedule", rec.HeatingSchedule),
			IsCoolingOn:                    rec.IsCoolingOn,
			IsHeatingOn:                    rec.IsHeatingOn,
			IsMechVentOn:                   rec.IsMechVentOn,
			MaxCoolFlow:                    rec.MaxCoolFlow,
			MaxCoolingCapacity:             rec.MaxCoolingCapacity,
			MaxHeatFlow:                    rec.MaxHeatFlow,
			MaxHeatingCapacity:             rec.MaxHeatingCapacity,
			MechVentSchedule:               resolveOptional[*YearSchedule](rs, "MechVentSchedule", rec.MechVentSchedule),
			MinFreshAirPerArea:             rec.MinFreshAirPerArea,
			MinFreshAirPerPerson:           rec.MinFreshAirPerPerson,
		}
		if err := add(d, rec.MetaRecord, rs, s); err != nil {
			return err
		}
	}
	for _, rec := range doc.ZoneConstructionSets {
		rs := d.resolver(KindZoneConstructionSet, rec.MetaRecord)
		s := &ZoneConstructionSet{
			Meta:                 metaFrom(rec.MetaRecord),
			Facade:               resolveOptional[*OpaqueConstruction](rs, "Facade", rec.Facade),
			Ground:               resolveOptional[*OpaqueConstruction](rs, "Ground", rec.Ground),
			Partition:            resolveOptional[*OpaqueConstruction](rs, "Partition", rec.Partition),
			Roof:                 resolveOptional[*OpaqueConstruction](rs, "Roof", rec.Roof),
			Slab:                 resolveOptional[*OpaqueConstruction](rs, "Slab", rec.Slab),
			IsFacadeAdiabatic:    rec.IsFacadeAdiabatic,
			IsGroundAdiabatic:    rec.IsGroundAdiabatic,
			IsPartitionAdiabatic: rec.IsPartitionAdiabatic,
			IsRoofAdiabatic:      rec.IsRoofAdiabatic,
			IsSlabAdiabatic:      rec.IsSlabAdiabatic,
		}
		if err := add(d, rec.MetaRecord, rs, s); err != nil {
			return err
		}
	}
	for _, rec := range doc.ZoneLoads {
		rs := d.resolver(KindZoneLoad, rec.MetaRecord)
		s := &ZoneLoad{
			Meta:                          metaFrom(rec.MetaRecord),
			DimmingType:                   rec.DimmingType,
			EquipmentAvailabilitySchedule: resolveOptional[*YearSchedule](rs, "EquipmentAvailabilitySchedule", rec.EquipmentAvailabilitySchedule),
			EquipmentPowerDensity:         rec.EquipmentPowerDensity,
			IlluminanceTarget:             rec.IlluminanceTarget,
			LightingPowerDensity:          rec.LightingPowerDensity,
			LightsAvailabilitySchedule:    resolveOptional[*YearSchedule](rs, "LightsAvailabilitySchedule", rec.LightsAvailabilitySchedule),
			OccupancySchedule:             resolveOptional[*YearSchedule](rs, "OccupancySchedule", rec.OccupancySchedule),
			IsEquipmentOn:                 rec.IsEquipmentOn,
			IsLightingOn:                  rec.IsLightingOn,
			IsPeopleOn:                    rec.IsPeopleOn,
			PeopleDensity:                 rec.PeopleDensity,
		}
		if err := add(d, rec.MetaRecord, rs, s); err != nil {
			return err
		}
	}
	return nil
}

func (d *documentReader) zones(doc *Document) error {
	for _, rec := range doc.Zones {
		rs := d.resolver(KindZone, rec.MetaRecord)
		z := &Zone{
			Meta:                            metaFrom(rec.MetaRecord),
			Conditioning:                    resolveOptional[*ZoneConditioning](rs, "Conditioning", rec.Conditioning),
			Constructions:                   resolveOptional[*ZoneConstructionSet](rs, "Constructions", rec.Constructions),
			DaylightMeshResolution:          rec.DaylightMeshResolution,
			DaylightWorkplaneHeight:         rec.DaylightWorkplaneHeight,
			DomesticHotWater:                resolveOptional[*DomesticHotWaterSetting](rs, "DomesticHotWater", rec.DomesticHotWater),
			InternalMassConstruction:        resolveOptional[*OpaqueConstruction](rs, "InternalMassConstruction", rec.InternalMassConstruction),
			InternalMassExposedPerFloorArea: rec.InternalMassExposedPerFloorArea,
			Loads:                           resolveOptional[*ZoneLoad](rs, "Loads", rec.Loads),
			Ventilation:                     resolveOptional[*VentilationSetting](rs, "Ventilation", rec.Ventilation),
			geometry:                        ZoneGeometry{ReportedArea: rec.Area, ReportedVolume: rec.Volume},
		}
		if err := add(d, rec.MetaRecord, rs, z); err != nil {
			return err
		}
		if registered, _ := d.index.Get(rec.ID); registered == Entity(z) {
			z.adoptSettings()
		}
	}
	return nil
}

func (d *documentReader) templates(doc *Document) error {
	for _, rec := range doc.WindowSettings {
		rs := d.resolver(KindWindowSetting, rec.MetaRecord)
		s := &WindowSetting{
			Meta:                              metaFrom(rec.MetaRecord),
			AfnDischargeC:                     rec.AfnDischargeC,
			AfnTempSetpoint:                   rec.AfnTempSetpoint,
			AfnWindowAvailability:             resolveOptional[*YearSchedule](rs, "AfnWindowAvailability", rec.AfnWindowAvailability),
			Construction:                      resolveOptional[*WindowConstruction](rs, "Construction", rec.Construction),
			IsShadingSystemOn:                 rec.IsShadingSystemOn,
			IsVirtualPartition:                rec.IsVirtualPartition,
			IsZoneMixingOn:                    rec.IsZoneMixingOn,
			OperableArea:                      rec.OperableArea,
			ShadingSystemAvailabilitySchedule: resolveOptional[*YearSchedule](rs, "ShadingSystemAvailabilitySchedule", rec.ShadingSystemAvailabilitySchedule),
			ShadingSystemSetpoint:             rec.ShadingSystemSetpoint,
			ShadingSystemTransmittance:        rec.ShadingSystemTransmittance,
			ShadingSystemType:                 rec.ShadingSystemType,
			Type:                              WindowType(rec.Type),
			ZoneMixingAvailabilitySchedule:    resolveOptional[*YearSchedule](rs, "ZoneMixingAvailabilitySchedule", rec.ZoneMixingAvailabilitySchedule),
			ZoneMixingDeltaTemperature:        rec.ZoneMixingDeltaTemperature,
			ZoneMixingFlowRate:                rec.ZoneMixingFlowRate,
		}
		if err := add(d, rec.MetaRecord, rs, s); err != nil {
			return err
		}
	}
	for _, rec := range doc.BuildingTemplates {
		rs := d.resolver(KindBuildingTemplate, rec.MetaRecord)
		b := &BuildingTemplate{
			Meta:                     metaFrom(rec.MetaRecord),
			Core:                     resolveOptional[*Zone](rs, "Core", rec.Core),
			Perimeter:                resolveOptional[*Zone](rs, "Perimeter", rec.Perimeter),
			Structure:                resolveOptional[*StructureDefinition](rs, "Structure", rec.Structure),
			Windows:                  resolveOptional[*WindowSetting](rs, "Windows", rec.Windows),
			Lifespan:                 rec.Lifespan,
			PartitionRatio:           rec.PartitionRatio,
			DefaultWindowToWallRatio: rec.DefaultWindowToWallRatio,
			YearFrom:                 rec.YearFrom,
			YearTo:                   rec.YearTo,
			Country:                  rec.Country,
			ClimateZone:              rec.ClimateZone,
			Authors:                  rec.Authors,
			AuthorEmails:             rec.AuthorEmails,
			Version:                  rec.Version,
		}
		if err := add(d, rec.MetaRecord, rs, b); err != nil {
			return err
		}
	}
	return nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

import (
	"strconv"
)

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

func refTo(e Entity) Ref {
	return Ref{Ref: idString(e.Metadata().ID)}
}

// optionalRef returns a reference to e, or nil when e is a nil
// pointer.
func optionalRef[T interface {
	comparable
	Entity
}](e T) *Ref {
	var zero T
	if e == zero {
		return nil
	}
	ref := refTo(e)
	return &ref
}

func metaRecord(m *Meta) MetaRecord {
	return MetaRecord{
		ID:         idString(m.ID),
		Name:       m.Name,
		Category:   m.Category,
		Comments:   m.Comments,
		DataSource: m.DataSource,
	}
}

func materialBaseRecord(b MaterialBase) MaterialBaseRecord {
	return MaterialBaseRecord{
		Cost:                    b.Cost,
		EmbodiedCarbon:          b.EmbodiedCarbon,
		EmbodiedEnergy:          b.EmbodiedEnergy,
		SubstitutionTimestep:    b.SubstitutionTimestep,
		SubstitutionRatePattern: b.SubstitutionRatePattern,
		TransportCarbon:         b.TransportCarbon,
		TransportDistance:       b.TransportDistance,
		TransportEnergy:         b.TransportEnergy,
	}
}

func constructionBaseRecord(b ConstructionBase) ConstructionBaseRecord {
	return ConstructionBaseRecord(b)
}

func layerRecords(layers []MaterialLayer) []LayerRecord {
	records := make([]LayerRecord, len(layers))
	for i, layer := range layers {
		records[i] = LayerRecord{Material: refTo(layer.Material), Thickness: layer.Thickness}
	}
	return records
}

// Document serializes the library. Each category is sorted by name.
// The gas material category is never empty: a library without gas
// materials gets a generic air entry.
func (l *Library) Document() *Document {
	doc := &Document{}
	var maxID int64
	each := func(kind Kind, fn func(Entity)) {
		for _, e := range l.Entities(kind) {
			maxID = max(maxID, e.Metadata().ID)
			fn(e)
		}
	}

	each(KindGasMaterial, func(e Entity) {
		m := e.(*GasMaterial)
		doc.GasMaterials = append(doc.GasMaterials, GasMaterialRecord{
			MetaRecord:         metaRecord(&m.Meta),
			MaterialBaseRecord: materialBaseRecord(m.MaterialBase),
			Type:               m.Type,
		})
	})
	each(KindGlazingMaterial, func(e Entity) {
		m := e.(*GlazingMaterial)
		doc.GlazingMaterials = append(doc.GlazingMaterials, GlazingMaterialRecord{
			MetaRecord:              metaRecord(&m.Meta),
			MaterialBaseRecord:      materialBaseRecord(m.MaterialBase),
			Density:                 m.Density,
			Conductivity:            m.Conductivity,
			SolarTransmittance:      m.SolarTransmittance,
			SolarReflectanceFront:   m.SolarReflectanceFront,
			SolarReflectanceBack:    m.SolarReflectanceBack,
			VisibleTransmittance:    m.VisibleTransmittance,
			VisibleReflectanceFront: m.VisibleReflectanceFront,
			VisibleReflectanceBack:  m.VisibleReflectanceBack,
			IRTransmittance:         m.IRTransmittance,
			IREmissivityFront:       m.IREmissivityFront,
			IREmissivityBack:        m.IREmissivityBack,
			DirtFactor:              m.DirtFactor,
			Type:                    m.Type,
			Life:                    m.Life,
		})
	})
	each(KindOpaqueMaterial, func(e Entity) {
		m := e.(*OpaqueMaterial)
		doc.OpaqueMaterials = append(doc.OpaqueMaterials, OpaqueMaterialRecord{
			MetaRecord:                  metaRecord(&m.Meta),
			MaterialBaseRecord:          materialBaseRecord(m.MaterialBase),
			Conductivity:                m.Conductivity,
			Density:                     m.Density,
			SpecificHeat:                m.SpecificHeat,
			SolarAbsorptance:            m.SolarAbsorptance,
			ThermalEmittance:            m.ThermalEmittance,
			VisibleAbsorptance:          m.VisibleAbsorptance,
			Roughness:                   m.Roughness,
			MoistureDiffusionResistance: m.MoistureDiffusionResistance,
		})
	})
	each(KindOpaqueConstruction, func(e Entity) {
		c := e.(*OpaqueConstruction)
		doc.OpaqueConstructions = append(doc.OpaqueConstructions, OpaqueConstructionRecord{
			MetaRecord:             metaRecord(&c.Meta),
			ConstructionBaseRecord: constructionBaseRecord(c.ConstructionBase),
			Layers:                 layerRecords(c.Layers),
		})
	})
	each(KindWindowConstruction, func(e Entity) {
		c := e.(*WindowConstruction)
		doc.WindowConstructions = append(doc.WindowConstructions, WindowConstructionRecord{
			MetaRecord:             metaRecord(&c.Meta),
			ConstructionBaseRecord: constructionBaseRecord(c.ConstructionBase),
			Layers:                 layerRecords(c.Layers),
		})
	})
	each(KindStructureDefinition, func(e Entity) {
		s := e.(*StructureDefinition)
		ratios := make([]MassRatioRecord, len(s.MassRatios))
		for i, ratio := range s.MassRatios {
			ratios[i] = MassRatioRecord{
				HighLoadRatio: ratio.HighLoadRatio,
				Material:      refTo(ratio.Material),
				NormalRatio:   ratio.NormalRatio,
			}
		}
		doc.StructureDefinitions = append(doc.StructureDefinitions, StructureDefinitionRecord{
			MetaRecord:             metaRecord(&s.Meta),
			ConstructionBaseRecord: constructionBaseRecord(s.ConstructionBase),
			MassRatios:             ratios,
		})
	})
	each(KindDaySchedule, func(e Entity) {
		s := e.(*DaySchedule)
		doc.DaySchedules = append(doc.DaySchedules, DayScheduleRecord{
			MetaRecord: metaRecord(&s.Meta),
			Type:       s.Type,
			Values:     s.Values,
		})
	})
	each(KindWeekSchedule, func(e Entity) {
		s := e.(*WeekSchedule)
		days := make([]Ref, len(s.Days))
		for i, day := range s.Days {
			days[i] = refTo(day)
		}
		doc.WeekSchedules = append(doc.WeekSchedules, WeekScheduleRecord{
			MetaRecord: metaRecord(&s.Meta),
			Type:       s.Type,
			Days:       days,
		})
	})
	each(KindYearSchedule, func(e Entity) {
		s := e.(*YearSchedule)
		parts := make([]YearSchedulePartRecord, len(s.Parts))
		for i, part := range s.Parts {
			parts[i] = YearSchedulePartRecord{
				FromDay:   part.FromDay,
				FromMonth: part.FromMonth,
				ToDay:     part.ToDay,
				ToMonth:   part.ToMonth,
				Schedule:  refTo(part.Schedule),
			}
		}
		doc.YearSchedules = append(doc.YearSchedules, YearScheduleRecord{
			MetaRecord: metaRecord(&s.Meta),
			Type:       s.Type,
			Parts:      parts,
		})
	})
	each(KindDomesticHotWaterSetting, func(e Entity) {
		d := e.(*DomesticHotWaterSetting)
		doc.DomesticHotWaterSettings = append(doc.DomesticHotWaterSettings, DomesticHotWaterSettingRecord{
			MetaRecord:             metaRecord(&d.Meta),
			FlowRatePerFloorArea:   d.FlowRatePerFloorArea,
			IsOn:                   d.IsOn,
			WaterSchedule:          optionalRef(d.WaterSchedule),
			WaterSupplyTemperature: d.WaterSupplyTemperature,
			WaterTemperatureInlet:  d.WaterTemperatureInlet,
		})
	})
	each(KindVentilationSetting, func(e Entity) {
		v := e.(*VentilationSetting)
		doc.VentilationSettings = append(doc.VentilationSettings, VentilationSettingRecord{
			MetaRecord:                   metaRecord(&v.Meta),
			Afn:                          v.Afn,
			IsBuoyancyOn:                 v.IsBuoyancyOn,
			Infiltration:                 v.Infiltration,
			IsInfiltrationOn:             v.IsInfiltrationOn,
			IsNatVentOn:                  v.IsNatVentOn,
			IsScheduledVentilationOn:     v.IsScheduledVentilationOn,
			IsWindOn:                     v.IsWindOn,
			NatVentMaxOutdoorAirTemp:     v.NatVentMaxOutdoorAirTemp,
			NatVentMaxRelHumidity:        v.NatVentMaxRelHumidity,
			NatVentMinOutdoorAirTemp:     v.NatVentMinOutdoorAirTemp,
			NatVentSchedule:              optionalRef(v.NatVentSchedule),
			NatVentZoneTempSetpoint:      v.NatVentZoneTempSetpoint,
			ScheduledVentilationAch:      v.ScheduledVentilationAch,
			ScheduledVentilationSchedule: optionalRef(v.ScheduledVentilationSchedule),
			ScheduledVentilationSetpoint: v.ScheduledVentilationSetpoint,
		})
	})
	each(KindZoneConditioning, func(e Entity) {
		c := e.(*ZoneConditioning)
		doc.ZoneConditionings = append(doc.ZoneConditionings, ZoneConditioningRecord{
			MetaRecord:                     metaRecord(&c.Meta),
			CoolingCoeffOfPerf:             c.CoolingCoeffOfPerf,
			CoolingLimitType:               c.CoolingLimitType,
			CoolingSetpoint:                c.CoolingSetpoint,
			CoolingSchedule:                optionalRef(c.CoolingSchedule),
			EconomizerType:                 c.EconomizerType,
			HeatRecoveryEfficiencyLatent:   c.HeatRecoveryEfficiencyLatent,
			HeatRecoveryEfficiencySensible: c.HeatRecoveryEfficiencySensible,
			HeatRecoveryType:               c.HeatRecoveryType,
			HeatingCoeffOfPerf:             c.HeatingCoeffOfPerf,
			HeatingLimitType:               c.HeatingLimitType,
			HeatingSetpoint:                c.HeatingSetpoint,
			HeatingSchedule:                optionalRef(c.HeatingSchedule),
			IsCoolingOn:                    c.IsCoolingOn,
			IsHeatingOn:                    c.IsHeatingOn,
			IsMechVentOn:                   c.IsMechVentOn,
			MaxCoolFlow:                    c.MaxCoolFlow,
			MaxCoolingCapacity:             c.MaxCoolingCapacity,
			MaxHeatFlow:                    c.MaxHeatFlow,
			MaxHeatingCapacity:             c.MaxHeatingCapacity,
			MechVentSchedule:               optionalRef(c.MechVentSchedule),
			MinFreshAirPerArea:             c.MinFreshAirPerArea,
			MinFreshAirPerPerson:           c.MinFreshAirPerPerson,
		})
	})
	each(KindZoneConstructionSet, func(e Entity) {
		s := e.(*ZoneConstructionSet)
		doc.ZoneConstructionSets = append(doc.ZoneConstructionSets, ZoneConstructionSetRecord{
			MetaRecord:           metaRecord(&s.Meta),
			Facade:               optionalRef(s.Facade),
			Ground:               optionalRef(s.Ground),
			Partition:            optionalRef(s.Partition),
			Roof:                 optionalRef(s.Roof),
			Slab:                 optionalRef(s.Slab),
			IsFacadeAdiabatic:    s.IsFacadeAdiabatic,
			IsGroundAdiabatic:    s.IsGroundAdiabatic,
			IsPartitionAdiabatic: s.IsPartitionAdiabatic,
			IsRoofAdiabatic:      s.IsRoofAdiabatic,
			IsSlabAdiabatic:      s.IsSlabAdiabatic,
		})
	})
	each(KindZoneLoad, func(e Entity) {
		z := e.(*ZoneLoad)
		doc.ZoneLoads = append(doc.ZoneLoads, ZoneLoadRecord{
			MetaRecord:                    metaRecord(&z.Meta),
			DimmingType:                   z.DimmingType,
			EquipmentAvailabilitySchedule: optionalRef(z.EquipmentAvailabilitySchedule),
			EquipmentPowerDensity:         z.EquipmentPowerDensity,
			IlluminanceTarget:             z.IlluminanceTarget,
			LightingPowerDensity:          z.LightingPowerDensity,
			LightsAvailabilitySchedule:    optionalRef(z.LightsAvailabilitySchedule),
			OccupancySchedule:             optionalRef(z.OccupancySchedule),
			IsEquipmentOn:                 z.IsEquipmentOn,
			IsLightingOn:                  z.IsLightingOn,
			IsPeopleOn:                    z.IsPeopleOn,
			PeopleDensity:                 z.PeopleDensity,
		})
	})
	each(KindZone, func(e Entity) {
		z := e.(*Zone)
		doc.Zones = append(doc.Zones, ZoneRecord{
			MetaRecord:                      metaRecord(&z.Meta),
			Conditioning:                    optionalRef(z.Conditioning),
			Constructions:                   optionalRef(z.Constructions),
			DaylightMeshResolution:          z.DaylightMeshResolution,
			DaylightWorkplaneHeight:         z.DaylightWorkplaneHeight,
			DomesticHotWater:                optionalRef(z.DomesticHotWater),
			InternalMassConstruction:        optionalRef(z.InternalMassConstruction),
			InternalMassExposedPerFloorArea: z.InternalMassExposedPerFloorArea,
			Loads:                           optionalRef(z.Loads),
			Ventilation:                     optionalRef(z.Ventilation),
			Area:                            z.Area(),
			Volume:                          z.Volume(),
		})
	})
	each(KindWindowSetting, func(e Entity) {
		w := e.(*WindowSetting)
		doc.WindowSettings = append(doc.WindowSettings, WindowSettingRecord{
			MetaRecord:                        metaRecord(&w.Meta),
			AfnDischargeC:                     w.AfnDischargeC,
			AfnTempSetpoint:                   w.AfnTempSetpoint,
			AfnWindowAvailability:             optionalRef(w.AfnWindowAvailability),
			Construction:                      optionalRef(w.Construction),
			IsShadingSystemOn:                 w.IsShadingSystemOn,
			IsVirtualPartition:                w.IsVirtualPartition,
			IsZoneMixingOn:                    w.IsZoneMixingOn,
			OperableArea:                      w.OperableArea,
			ShadingSystemAvailabilitySchedule: optionalRef(w.ShadingSystemAvailabilitySchedule),
			ShadingSystemSetpoint:             w.ShadingSystemSetpoint,
			ShadingSystemTransmittance:        w.ShadingSystemTransmittance,
			ShadingSystemType:                 w.ShadingSystemType,
			Type:                              int(w.Type),
			ZoneMixingAvailabilitySchedule:    optionalRef(w.ZoneMixingAvailabilitySchedule),
			ZoneMixingDeltaTemperature:        w.ZoneMixingDeltaTemperature,
			ZoneMixingFlowRate:                w.ZoneMixingFlowRate,
		})
	})
	each(KindBuildingTemplate, func(e Entity) {
		b := e.(*BuildingTemplate)
		doc.BuildingTemplates = append(doc.BuildingTemplates, BuildingTemplateRecord{
			MetaRecord:               metaRecord(&b.Meta),
			Core:                     optionalRef(b.Core),
			Perimeter:                optionalRef(b.Perimeter),
			Structure:                optionalRef(b.Structure),
			Windows:                  optionalRef(b.Windows),
			Lifespan:                 b.Lifespan,
			PartitionRatio:           b.PartitionRatio,
			DefaultWindowToWallRatio: b.DefaultWindowToWallRatio,
			YearFrom:                 b.YearFrom,
			YearTo:                   b.YearTo,
			Country:                  b.Country,
			ClimateZone:              b.ClimateZone,
			Authors:                  b.Authors,
			AuthorEmails:             b.AuthorEmails,
			Version:                  b.Version,
		})
	})

	if len(doc.GasMaterials) == 0 {
		air := DefaultGasMaterial(GasAir)
		air.Category = DefaultCategory
		air.ID = maxID + 1
		doc.GasMaterials = []GasMaterialRecord{{
			MetaRecord:         metaRecord(&air.Meta),
			MaterialBaseRecord: materialBaseRecord(air.MaterialBase),
			Type:               air.Type,
		}}
	}
	return doc
}

// ToDocument collects the entities reachable from templates and
// serializes them.
func ToDocument(templates []*BuildingTemplate, allZones bool) *Document {
	return NewLibrary("", templates, allZones).Document()
}

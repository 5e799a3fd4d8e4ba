// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

// Kind names a concrete entity type. The string is the type name used
// in documents; the document category of a kind is its name plus "s".
type Kind string

const (
	KindGasMaterial             Kind = "GasMaterial"
	KindGlazingMaterial         Kind = "GlazingMaterial"
	KindOpaqueMaterial          Kind = "OpaqueMaterial"
	KindOpaqueConstruction      Kind = "OpaqueConstruction"
	KindWindowConstruction      Kind = "WindowConstruction"
	KindStructureDefinition     Kind = "StructureDefinition"
	KindDaySchedule             Kind = "DaySchedule"
	KindWeekSchedule            Kind = "WeekSchedule"
	KindYearSchedule            Kind = "YearSchedule"
	KindDomesticHotWaterSetting Kind = "DomesticHotWaterSetting"
	KindVentilationSetting      Kind = "VentilationSetting"
	KindZoneConditioning        Kind = "ZoneConditioning"
	KindZoneConstructionSet     Kind = "ZoneConstructionSet"
	KindZoneLoad                Kind = "ZoneLoad"
	KindZone                    Kind = "Zone"
	KindWindowSetting           Kind = "WindowSetting"
	KindBuildingTemplate        Kind = "BuildingTemplate"
)

// Kinds lists every kind in document order: a kind only references
// kinds listed before it, with the exception of zone window settings,
// which documents do not reference from zones.
var Kinds = []Kind{
	KindGasMaterial,
	KindGlazingMaterial,
	KindOpaqueMaterial,
	KindOpaqueConstruction,
	KindWindowConstruction,
	KindStructureDefinition,
	KindDaySchedule,
	KindWeekSchedule,
	KindYearSchedule,
	KindDomesticHotWaterSetting,
	KindVentilationSetting,
	KindZoneConditioning,
	KindZoneConstructionSet,
	KindZoneLoad,
	KindZone,
	KindWindowSetting,
	KindBuildingTemplate,
}

// Category returns the document category (top-level key) holding
// entities of this kind.
func (k Kind) Category() string {
	return string(k) + "s"
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"errors"
	"fmt"
)

// Validate checks referential integrity and shape: every construction
// a surface, window, or internal mass names exists, every layer names
// a known material with positive thickness, schedules have a supported
// length, schedule references resolve, and every surface polygon has
// at least three vertices. All problems are reported together.
func (b *Building) Validate() error {
	var errs []error

	if len(b.Zones) == 0 {
		errs = append(errs, fmt.Errorf("model has no zones"))
	}

	materials := make(map[string]bool, len(b.Materials))
	for _, material := range b.Materials {
		if material.Name == "" {
			errs = append(errs, fmt.Errorf("material with empty name"))
			continue
		}
		switch material.Kind {
		case MaterialOpaque, MaterialGlazing, MaterialGas:
		default:
			errs = append(errs, fmt.Errorf("material %q: unknown kind %q", material.Name, material.Kind))
		}
		materials[material.Name] = true
	}

	constructions := make(map[string]bool, len(b.Constructions))
	for _, construction := range b.Constructions {
		constructions[construction.Name] = true
		if len(construction.Layers) == 0 {
			errs = append(errs, fmt.Errorf("construction %q has no layers", construction.Name))
		}
		for i, layer := range construction.Layers {
			if !materials[layer.Material] {
				errs = append(errs, fmt.Errorf("construction %q layer %d: unknown material %q",
					construction.Name, i, layer.Material))
			}
			if layer.Thickness <= 0 {
				errs = append(errs, fmt.Errorf("construction %q layer %d: thickness must be positive, got %g",
					construction.Name, i, layer.Thickness))
			}
		}
	}

	schedules := make(map[string]bool, len(b.Schedules))
	for _, schedule := range b.Schedules {
		schedules[schedule.Name] = true
		switch len(schedule.Values) {
		case 24, 168, 8760:
		default:
			errs = append(errs, fmt.Errorf("schedule %q: %d values, want 24, 168, or 8760",
				schedule.Name, len(schedule.Values)))
		}
	}

	checkSchedule := func(zone, field, name string) {
		if name != "" && !schedules[name] {
			errs = append(errs, fmt.Errorf("zone %q %s: unknown schedule %q", zone, field, name))
		}
	}

	seen := make(map[string]bool, len(b.Zones))
	for _, zone := range b.Zones {
		if zone.Name == "" {
			errs = append(errs, fmt.Errorf("zone with empty name"))
			continue
		}
		if seen[zone.Name] {
			errs = append(errs, fmt.Errorf("duplicate zone %q", zone.Name))
		}
		seen[zone.Name] = true

		for _, surface := range zone.Surfaces {
			if len(surface.Vertices) < 3 {
				errs = append(errs, fmt.Errorf("zone %q surface %q: %d vertices, want at least 3",
					zone.Name, surface.Name, len(surface.Vertices)))
			}
			// Partitions may legitimately have no construction (air
			// walls); everything else must resolve.
			if surface.Construction != "" && !constructions[surface.Construction] {
				errs = append(errs, fmt.Errorf("zone %q surface %q: unknown construction %q",
					zone.Name, surface.Name, surface.Construction))
			}
		}
		for _, mass := range zone.InternalMass {
			if !constructions[mass.Construction] {
				errs = append(errs, fmt.Errorf("zone %q internal mass %q: unknown construction %q",
					zone.Name, mass.Name, mass.Construction))
			}
		}
		for _, window := range zone.Windows {
			if !constructions[window.Construction] {
				errs = append(errs, fmt.Errorf("zone %q window %q: unknown construction %q",
					zone.Name, window.Name, window.Construction))
			}
		}

		if c := zone.Conditioning; c != nil {
			checkSchedule(zone.Name, "HeatingSchedule", c.HeatingSchedule)
			checkSchedule(zone.Name, "CoolingSchedule", c.CoolingSchedule)
			checkSchedule(zone.Name, "MechVentSchedule", c.MechVentSchedule)
		}
		if l := zone.Loads; l != nil {
			checkSchedule(zone.Name, "OccupancySchedule", l.OccupancySchedule)
			checkSchedule(zone.Name, "LightsAvailabilitySchedule", l.LightsAvailabilitySchedule)
			checkSchedule(zone.Name, "EquipmentAvailabilitySchedule", l.EquipmentAvailabilitySchedule)
		}
		if v := zone.Ventilation; v != nil {
			checkSchedule(zone.Name, "NatVentSchedule", v.NatVentSchedule)
			checkSchedule(zone.Name, "ScheduledVentilationSchedule", v.ScheduledVentilationSchedule)
		}
		if d := zone.DomesticHotWater; d != nil {
			checkSchedule(zone.Name, "WaterSchedule", d.WaterSchedule)
		}
		if w := zone.WindowSetting; w != nil {
			checkSchedule(zone.Name, "AfnWindowAvailability", w.AfnWindowAvailability)
			checkSchedule(zone.Name, "ShadingSystemAvailabilitySchedule", w.ShadingSystemAvailabilitySchedule)
			checkSchedule(zone.Name, "ZoneMixingAvailabilitySchedule", w.ZoneMixingAvailabilitySchedule)
		}
	}

	if b.Structure != nil && b.Structure.Material != "" && !materials[b.Structure.Material] {
		errs = append(errs, fmt.Errorf("structure: unknown material %q", b.Structure.Material))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

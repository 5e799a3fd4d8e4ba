// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/archetype/lib/geom"
	"github.com/bureau-foundation/archetype/lib/model"
)

// VerticalTolerance is how far, in degrees, a surface tilt may be from
// 90 and still count as a wall in core detection.
const VerticalTolerance = 1.0

// ZoneGeometry is the geometric description a zone's area and volume
// are derived from. Zones read from a document have none.
type ZoneGeometry struct {
	Surfaces   []model.Surface
	Multiplier int

	// ReportedArea and ReportedVolume come from simulation report
	// tables. They are used when the surfaces do not give a value.
	ReportedArea   float64
	ReportedVolume float64
}

func (g ZoneGeometry) multiplier() float64 {
	if g.Multiplier <= 0 {
		return 1
	}
	return float64(g.Multiplier)
}

func (g ZoneGeometry) shell() []geom.Polygon {
	var shell []geom.Polygon
	for _, surface := range g.Surfaces {
		if !IsDispatched(surface.SurfaceType) {
			continue
		}
		if polygon := surface.Polygon(); !polygon.Degenerate() {
			shell = append(shell, polygon)
		}
	}
	return shell
}

func (g ZoneGeometry) area() float64 {
	var area float64
	for _, surface := range g.Surfaces {
		if strings.EqualFold(surface.SurfaceType, model.SurfaceFloor) {
			area += surface.Polygon().Area()
		}
	}
	if area == 0 {
		return g.ReportedArea
	}
	return area * g.multiplier()
}

func (g ZoneGeometry) volume() float64 {
	volume := geom.Volume(g.shell())
	if volume == 0 {
		return g.ReportedVolume
	}
	return volume * g.multiplier()
}

// Zone is a thermal zone: its settings, constructions, internal mass,
// and geometric extent.
type Zone struct {
	Meta

	Conditioning                    *ZoneConditioning
	Constructions                   *ZoneConstructionSet
	DomesticHotWater                *DomesticHotWaterSetting
	Loads                           *ZoneLoad
	Ventilation                     *VentilationSetting
	Windows                         *WindowSetting
	InternalMassConstruction        *OpaqueConstruction
	InternalMassExposedPerFloorArea float64
	DaylightMeshResolution          float64
	DaylightWorkplaneHeight         float64

	geometry ZoneGeometry
	area     *float64
	volume   *float64
	handle   ZoneHandle
}

// DefaultZone returns an unregistered zone with the library defaults
// and no settings.
func DefaultZone(name string) Zone {
	return Zone{
		Meta:                            Meta{Name: name},
		InternalMassExposedPerFloorArea: 1.05,
		DaylightMeshResolution:          1,
		DaylightWorkplaneHeight:         0.8,
	}
}

// NewZone registers z with the given geometry, adds it to the zone
// arena, and takes ownership of its settings. It returns the
// already-registered zone if one has the same name.
func NewZone(r *Registry, z Zone, geometry ZoneGeometry) (*Zone, error) {
	z.geometry = geometry
	registered, err := register(r, &z)
	if err != nil {
		return nil, err
	}
	if registered == &z {
		z.adoptSettings()
	}
	return registered, nil
}

func (*Zone) Kind() Kind { return KindZone }

// Handle returns the zone's position in its registry's zone arena.
func (z *Zone) Handle() ZoneHandle { return z.handle }

// Geometry returns the zone's geometric description.
func (z *Zone) Geometry() ZoneGeometry { return z.geometry }

func (z *Zone) children() []Entity {
	var children []Entity
	if z.Conditioning != nil {
		children = append(children, z.Conditioning)
	}
	if z.Constructions != nil {
		children = append(children, z.Constructions)
	}
	if z.DomesticHotWater != nil {
		children = append(children, z.DomesticHotWater)
	}
	if z.Loads != nil {
		children = append(children, z.Loads)
	}
	if z.Ventilation != nil {
		children = append(children, z.Ventilation)
	}
	if z.Windows != nil {
		children = append(children, z.Windows)
	}
	if z.InternalMassConstruction != nil {
		children = append(children, z.InternalMassConstruction)
	}
	return children
}

// adoptSettings points every owned setting back at z.
func (z *Zone) adoptSettings() {
	if z.Conditioning != nil {
		z.Conditioning.setOwner(z.handle)
	}
	if z.Constructions != nil {
		z.Constructions.setOwner(z.handle)
	}
	if z.DomesticHotWater != nil {
		z.DomesticHotWater.setOwner(z.handle)
	}
	if z.Loads != nil {
		z.Loads.setOwner(z.handle)
	}
	if z.Ventilation != nil {
		z.Ventilation.setOwner(z.handle)
	}
	if z.Windows != nil {
		z.Windows.setOwner(z.handle)
	}
}

// Area is the floor area in m2: the sum of the floor surface areas
// times the zone multiplier, the reported area when the surfaces have
// none, or the value set by [Zone.SetArea]. It is computed once.
func (z *Zone) Area() float64 {
	if z.area == nil {
		area := z.geometry.area()
		z.area = &area
	}
	return *z.area
}

// Volume is the enclosed volume in m3, derived like [Zone.Area] from
// the closed surface shell.
func (z *Zone) Volume() float64 {
	if z.volume == nil {
		volume := z.geometry.volume()
		z.volume = &volume
	}
	return *z.volume
}

// SetArea overrides the floor area.
func (z *Zone) SetArea(area float64) { z.area = &area }

// SetVolume overrides the volume.
func (z *Zone) SetVolume(volume float64) { z.volume = &volume }

// IsCore reports whether no vertical surface of the zone faces
// outdoors. A zone without surfaces is not core.
func (z *Zone) IsCore() bool {
	dispatched := 0
	for _, surface := range z.geometry.Surfaces {
		if !IsDispatched(surface.SurfaceType) {
			continue
		}
		dispatched++
		if strings.EqualFold(surface.OutsideBoundaryCondition, model.BoundaryOutdoors) &&
			surface.Polygon().IsVertical(VerticalTolerance) {
			return false
		}
	}
	return dispatched > 0
}

// InternalMassArea is the exposed internal mass surface area in m2.
func (z *Zone) InternalMassArea() float64 {
	return z.InternalMassExposedPerFloorArea * z.Area()
}

// DefaultWeights returns the weights z and o contribute to a
// combination under the registry's zone weighting.
func (z *Zone) DefaultWeights(r *Registry, o *Zone) []float64 {
	return []float64{r.zoneWeightOf(z), r.zoneWeightOf(o)}
}

// Equal reports value equality of the zone's settings and scalars.
// Metadata and geometry are not compared.
func (z *Zone) Equal(o *Zone) bool {
	if z == nil || o == nil {
		return z == o
	}
	return (z.Conditioning == o.Conditioning || z.Conditioning.Equal(o.Conditioning)) &&
		(z.Constructions == o.Constructions || z.Constructions.Equal(o.Constructions)) &&
		(z.DomesticHotWater == o.DomesticHotWater || z.DomesticHotWater.Equal(o.DomesticHotWater)) &&
		(z.Loads == o.Loads || z.Loads.Equal(o.Loads)) &&
		(z.Ventilation == o.Ventilation || z.Ventilation.Equal(o.Ventilation)) &&
		(z.Windows == o.Windows || z.Windows.Equal(o.Windows)) &&
		(z.InternalMassConstruction == o.InternalMassConstruction ||
			z.InternalMassConstruction.Equal(o.InternalMassConstruction)) &&
		z.InternalMassExposedPerFloorArea == o.InternalMassExposedPerFloorArea &&
		z.DaylightMeshResolution == o.DaylightMeshResolution &&
		z.DaylightWorkplaneHeight == o.DaylightWorkplaneHeight
}

func (z *Zone) equalEntity(other Entity) bool {
	o, ok := other.(*Zone)
	return ok && z.Equal(o)
}

// Combine merges z and o into one zone. Settings combine with the
// zones' default weights unless weights are given; window settings
// combine only when both zones have them. Area and volume are summed.
// Internal mass constructions combine weighted by each zone's exposed
// internal mass area (a zone with none contributes nothing), and the
// exposure ratio is recomputed over the summed floor area.
func (z *Zone) Combine(r *Registry, o *Zone, weights []float64) (*Zone, error) {
	if o == nil || z == o || z.Equal(o) {
		return z, nil
	}
	if z == nil {
		return o, nil
	}
	w, err := resolveWeights(weights, r.zoneWeightOf(z), r.zoneWeightOf(o))
	if err != nil {
		return nil, err
	}
	r.logger.Debug("combining zones",
		"zone", z.Name, "other", o.Name,
		"zone_weight", string(r.zoneWeight), "weights", w)

	meta := combineMeta(KindZone, &z.Meta, &o.Meta, w)
	if existing, ok := r.Lookup(KindZone, meta.Name); ok {
		return existing.(*Zone), nil
	}

	m := &combiner{r: r, w: w}
	combined := Zone{
		Meta:                    meta,
		DaylightMeshResolution:  m.mean(z.DaylightMeshResolution, o.DaylightMeshResolution),
		DaylightWorkplaneHeight: m.mean(z.DaylightWorkplaneHeight, o.DaylightWorkplaneHeight),
	}
	if combined.Conditioning, err = z.Conditioning.Combine(r, o.Conditioning, w); err != nil {
		return nil, fmt.Errorf("zone %q Conditioning: %w", z.Name, err)
	}
	if combined.Constructions, err = z.Constructions.Combine(r, o.Constructions, w); err != nil {
		return nil, fmt.Errorf("zone %q Constructions: %w", z.Name, err)
	}
	if combined.Ventilation, err = z.Ventilation.Combine(r, o.Ventilation, w); err != nil {
		return nil, fmt.Errorf("zone %q Ventilation: %w", z.Name, err)
	}
	if z.Windows != nil && o.Windows != nil {
		if combined.Windows, err = z.Windows.Combine(r, o.Windows, w); err != nil {
			return nil, fmt.Errorf("zone %q Windows: %w", z.Name, err)
		}
	}
	if combined.DomesticHotWater, err = z.DomesticHotWater.Combine(r, o.DomesticHotWater, w); err != nil {
		return nil, fmt.Errorf("zone %q DomesticHotWater: %w", z.Name, err)
	}
	if combined.Loads, err = z.Loads.Combine(r, o.Loads, w); err != nil {
		return nil, fmt.Errorf("zone %q Loads: %w", z.Name, err)
	}

	area := z.Area() + o.Area()
	massAreas := []float64{z.InternalMassArea(), o.InternalMassArea()}
	switch {
	case massAreas[1] == 0 && massAreas[0] > 0:
		combined.InternalMassConstruction = z.InternalMassConstruction
	case massAreas[0] == 0 && massAreas[1] > 0:
		combined.InternalMassConstruction = o.InternalMassConstruction
	default:
		combined.InternalMassConstruction, err = z.InternalMassConstruction.Combine(r, o.InternalMassConstruction, massAreas)
		if err != nil {
			return nil, fmt.Errorf("zone %q InternalMassConstruction: %w", z.Name, err)
		}
	}
	if area > 0 {
		combined.InternalMassExposedPerFloorArea = (massAreas[0] + massAreas[1]) / area
	} else {
		combined.InternalMassExposedPerFloorArea = m.mean(z.InternalMassExposedPerFloorArea, o.InternalMassExposedPerFloorArea)
	}

	combined.SetArea(area)
	combined.SetVolume(z.Volume() + o.Volume())

	registered, err := register(r, &combined)
	if err != nil {
		return nil, err
	}
	registered.adoptSettings()
	return registered, nil
}

// Accumulate merges o into a running aggregate z. It is
// [Zone.Combine] except when z and o are distinct but value-equal:
// Combine then returns z, dropping o's extent, while Accumulate returns
// a new zone that shares z's settings and carries the summed area and
// volume. Folding zones one at a time with Accumulate keeps every
// zone's share in later weights.
func (z *Zone) Accumulate(r *Registry, o *Zone) (*Zone, error) {
	if z == nil || o == nil || z == o || !z.Equal(o) {
		return z.Combine(r, o, nil)
	}
	w := z.DefaultWeights(r, o)
	meta := combineMeta(KindZone, &z.Meta, &o.Meta, w)
	if existing, ok := r.Lookup(KindZone, meta.Name); ok {
		return existing.(*Zone), nil
	}
	r.logger.Debug("accumulating value-equal zones", "zone", z.Name, "other", o.Name)

	combined := Zone{
		Meta:                            meta,
		Conditioning:                    z.Conditioning,
		Constructions:                   z.Constructions,
		DomesticHotWater:                z.DomesticHotWater,
		Loads:                           z.Loads,
		Ventilation:                     z.Ventilation,
		Windows:                         z.Windows,
		InternalMassConstruction:        z.InternalMassConstruction,
		InternalMassExposedPerFloorArea: z.InternalMassExposedPerFloorArea,
		DaylightMeshResolution:          z.DaylightMeshResolution,
		DaylightWorkplaneHeight:         z.DaylightWorkplaneHeight,
	}
	combined.SetArea(z.Area() + o.Area())
	combined.SetVolume(z.Volume() + o.Volume())

	registered, err := register(r, &combined)
	if err != nil {
		return nil, err
	}
	registered.adoptSettings()
	return registered, nil
}

func (z *Zone) combineEntity(r *Registry, other Entity, weights []float64) (Entity, error) {
	return z.Combine(r, other.(*Zone), weights)
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

import (
	"fmt"
	"slices"
)

// MinLayerThickness is the thinnest layer, in meters, accepted without
// a warning.
const MinLayerThickness = 0.003

// Surface film resistances in m2-K/W used for U-factors.
const (
	insideFilmResistance  = 0.13
	outsideFilmResistance = 0.04
)

// MaterialLayer pairs a material with a thickness in meters. Layers are
// values owned by their construction; the material may be shared.
type MaterialLayer struct {
	Material  Material
	Thickness float64
}

// Resistance is the layer's thermal resistance in m2-K/W.
func (l MaterialLayer) Resistance() float64 {
	k := l.Material.MaterialConductivity()
	if k <= 0 {
		return 0
	}
	return l.Thickness / k
}

func (l MaterialLayer) equal(o MaterialLayer) bool {
	return l.Thickness == o.Thickness &&
		(l.Material == o.Material || l.Material.equalEntity(o.Material))
}

func layersEqual(a, b []MaterialLayer) bool {
	return slices.EqualFunc(a, b, MaterialLayer.equal)
}

// combineLayers merges two layer stacks position by position. Aligned
// layers of the same material kind combine their materials with the
// materials' own default weights and take the weighted-mean thickness.
// Aligned layers of different kinds keep the heavier side's layer, and
// unmatched trailing layers are kept as they are.
func combineLayers(r *Registry, a, b []MaterialLayer, w []float64) ([]MaterialLayer, error) {
	n := max(len(a), len(b))
	out := make([]MaterialLayer, 0, n)
	for i := range n {
		switch {
		case i >= len(a):
			out = append(out, b[i])
		case i >= len(b):
			out = append(out, a[i])
		case a[i].Material.Kind() != b[i].Material.Kind():
			if heavier(w) {
				out = append(out, a[i])
			} else {
				out = append(out, b[i])
			}
		default:
			combined, err := Combine(r, a[i].Material, b[i].Material, nil)
			if err != nil {
				return nil, fmt.Errorf("layer %d: %w", i, err)
			}
			out = append(out, MaterialLayer{
				Material:  combined.(Material),
				Thickness: floatMean(a[i].Thickness, b[i].Thickness, w),
			})
		}
	}
	return out, nil
}

func layerChildren(layers []MaterialLayer) []Entity {
	children := make([]Entity, 0, len(layers))
	for _, layer := range layers {
		if layer.Material != nil {
			children = append(children, layer.Material)
		}
	}
	return children
}

func warnThinLayers(r *Registry, construction string, layers []MaterialLayer) {
	for i, layer := range layers {
		if layer.Thickness < MinLayerThickness {
			r.logger.Warn("material layer thinner than 3 mm",
				"construction", construction,
				"layer", i,
				"material", layer.Material.Metadata().Name,
				"thickness", layer.Thickness)
		}
	}
}

// ConstructionBase holds the assembly metrics shared by constructions
// and structure definitions.
type ConstructionBase struct {
	AssemblyCarbon    float64
	AssemblyCost      float64
	AssemblyEnergy    float64
	DisassemblyCarbon float64
	DisassemblyEnergy float64
}

func (b ConstructionBase) combine(o ConstructionBase, w []float64) ConstructionBase {
	return ConstructionBase{
		AssemblyCarbon:    floatMean(b.AssemblyCarbon, o.AssemblyCarbon, w),
		AssemblyCost:      floatMean(b.AssemblyCost, o.AssemblyCost, w),
		AssemblyEnergy:    floatMean(b.AssemblyEnergy, o.AssemblyEnergy, w),
		DisassemblyCarbon: floatMean(b.DisassemblyCarbon, o.DisassemblyCarbon, w),
		DisassemblyEnergy: floatMean(b.DisassemblyEnergy, o.DisassemblyEnergy, w),
	}
}

// layerStack holds the layers of a construction and derives its
// physical quantities.
type layerStack []MaterialLayer

// Thickness is the total thickness in meters.
func (s layerStack) Thickness() float64 {
	var total float64
	for _, layer := range s {
		total += layer.Thickness
	}
	return total
}

// MassPerArea is the areal mass in kg/m2.
func (s layerStack) MassPerArea() float64 {
	var total float64
	for _, layer := range s {
		total += layer.Material.MaterialDensity() * layer.Thickness
	}
	return total
}

// UFactor is the overall heat transfer coefficient in W/m2-K,
// including surface films.
func (s layerStack) UFactor() float64 {
	resistance := insideFilmResistance + outsideFilmResistance
	for _, layer := range s {
		resistance += layer.Resistance()
	}
	return 1 / resistance
}

// OpaqueConstruction is a layered wall, roof, floor, or internal mass
// assembly, listed from the outside face in.
type OpaqueConstruction struct {
	Meta
	ConstructionBase

	Layers []MaterialLayer
}

// NewOpaqueConstruction registers c, returning the already-registered
// construction if one has the same name.
func NewOpaqueConstruction(r *Registry, c OpaqueConstruction) (*OpaqueConstruction, error) {
	registered, err := register(r, &c)
	if err == nil && registered == &c {
		warnThinLayers(r, c.Name, c.Layers)
	}
	return registered, err
}

func (*OpaqueConstruction) Kind() Kind { return KindOpaqueConstruction }

func (c *OpaqueConstruction) children() []Entity { return layerChildren(c.Layers) }

// Thickness is the total thickness in meters.
func (c *OpaqueConstruction) Thickness() float64 { return layerStack(c.Layers).Thickness() }

// MassPerArea is the areal mass in kg/m2.
func (c *OpaqueConstruction) MassPerArea() float64 { return layerStack(c.Layers).MassPerArea() }

// UFactor is the overall heat transfer coefficient in W/m2-K.
func (c *OpaqueConstruction) UFactor() float64 { return layerStack(c.Layers).UFactor() }

// Equal reports value equality. Metadata is not compared.
func (c *OpaqueConstruction) Equal(o *OpaqueConstruction) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.ConstructionBase == o.ConstructionBase && layersEqual(c.Layers, o.Layers)
}

func (c *OpaqueConstruction) equalEntity(other Entity) bool {
	o, ok := other.(*OpaqueConstruction)
	return ok && c.Equal(o)
}

// Combine returns the combination of c and o, weighted by mass per area
// unless weights are given.
func (c *OpaqueConstruction) Combine(r *Registry, o *OpaqueConstruction, weights []float64) (*OpaqueConstruction, error) {
	if o == nil || c == o || c.Equal(o) {
		return c, nil
	}
	if c == nil {
		return o, nil
	}
	w, err := resolveWeights(weights, c.MassPerArea(), o.MassPerArea())
	if err != nil {
		return nil, err
	}
	layers, err := combineLayers(r, c.Layers, o.Layers, w)
	if err != nil {
		return nil, fmt.Errorf("combining %q with %q: %w", c.Name, o.Name, err)
	}
	return NewOpaqueConstruction(r, OpaqueConstruction{
		Meta:             combineMeta(KindOpaqueConstruction, &c.Meta, &o.Meta, w),
		ConstructionBase: c.ConstructionBase.combine(o.ConstructionBase, w),
		Layers:           layers,
	})
}

func (c *OpaqueConstruction) combineEntity(r *Registry, other Entity, weights []float64) (Entity, error) {
	return c.Combine(r, other.(*OpaqueConstruction), weights)
}

// WindowConstruction is a glazing assembly: panes and gas gaps from the
// outside in.
type WindowConstruction struct {
	Meta
	ConstructionBase

	Layers []MaterialLayer
}

// NewWindowConstruction registers c, returning the already-registered
// construction if one has the same name.
func NewWindowConstruction(r *Registry, c WindowConstruction) (*WindowConstruction, error) {
	registered, err := register(r, &c)
	if err == nil && registered == &c {
		warnThinLayers(r, c.Name, c.Layers)
	}
	return registered, err
}

func (*WindowConstruction) Kind() Kind { return KindWindowConstruction }

func (c *WindowConstruction) children() []Entity { return layerChildren(c.Layers) }

// Thickness is the total thickness in meters.
func (c *WindowConstruction) Thickness() float64 { return layerStack(c.Layers).Thickness() }

// MassPerArea is the areal mass in kg/m2.
func (c *WindowConstruction) MassPerArea() float64 { return layerStack(c.Layers).MassPerArea() }

// UFactor is the center-of-glass heat transfer coefficient in W/m2-K.
func (c *WindowConstruction) UFactor() float64 { return layerStack(c.Layers).UFactor() }

// Equal reports value equality. Metadata is not compared.
func (c *WindowConstruction) Equal(o *WindowConstruction) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.ConstructionBase == o.ConstructionBase && layersEqual(c.Layers, o.Layers)
}

func (c *WindowConstruction) equalEntity(other Entity) bool {
	o, ok := other.(*WindowConstruction)
	return ok && c.Equal(o)
}

// Combine returns the combination of c and o, weighted by mass per area
// unless weights are given.
func (c *WindowConstruction) Combine(r *Registry, o *WindowConstruction, weights []float64) (*WindowConstruction, error) {
	if o == nil || c == o || c.Equal(o) {
		return c, nil
	}
	if c == nil {
		return o, nil
	}
	w, err := resolveWeights(weights, c.MassPerArea(), o.MassPerArea())
	if err != nil {
		return nil, err
	}
	layers, err := combineLayers(r, c.Layers, o.Layers, w)
	if err != nil {
		return nil, fmt.Errorf("combining %q with %q: %w", c.Name, o.Name, err)
	}
	return NewWindowConstruction(r, WindowConstruction{
		Meta:             combineMeta(KindWindowConstruction, &c.Meta, &o.Meta, w),
		ConstructionBase: c.ConstructionBase.combine(o.ConstructionBase, w),
		Layers:           layers,
	})
}

func (c *WindowConstruction) combineEntity(r *Registry, other Entity, weights []float64) (Entity, error) {
	return c.Combine(r, other.(*WindowConstruction), weights)
}

// MassRatio is one structural material with its mass per floor area
// (kg/m2) under high and normal loads.
type MassRatio struct {
	HighLoadRatio float64
	Material      *OpaqueMaterial
	NormalRatio   float64
}

func (m MassRatio) equal(o MassRatio) bool {
	return m.HighLoadRatio == o.HighLoadRatio &&
		m.NormalRatio == o.NormalRatio &&
		(m.Material == o.Material || m.Material.Equal(o.Material))
}

// StructureDefinition describes a building's load-bearing structure.
type StructureDefinition struct {
	Meta
	ConstructionBase

	MassRatios []MassRatio
}

// NewStructureDefinition registers s, returning the already-registered
// definition if one has the same name.
func NewStructureDefinition(r *Registry, s StructureDefinition) (*StructureDefinition, error) {
	return register(r, &s)
}

func (*StructureDefinition) Kind() Kind { return KindStructureDefinition }

func (s *StructureDefinition) children() []Entity {
	children := make([]Entity, 0, len(s.MassRatios))
	for _, ratio := range s.MassRatios {
		if ratio.Material != nil {
			children = append(children, ratio.Material)
		}
	}
	return children
}

// Equal reports value equality. Metadata is not compared.
func (s *StructureDefinition) Equal(o *StructureDefinition) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.ConstructionBase == o.ConstructionBase && slices.EqualFunc(s.MassRatios, o.MassRatios, MassRatio.equal)
}

func (s *StructureDefinition) equalEntity(other Entity) bool {
	o, ok := other.(*StructureDefinition)
	return ok && s.Equal(o)
}

// Combine concatenates the mass ratios of s and o and averages the
// assembly metrics, equally weighted unless weights are given.
func (s *StructureDefinition) Combine(r *Registry, o *StructureDefinition, weights []float64) (*StructureDefinition, error) {
	if o == nil || s == o || s.Equal(o) {
		return s, nil
	}
	if s == nil {
		return o, nil
	}
	w, err := resolveWeights(weights, 1, 1)
	if err != nil {
		return nil, err
	}
	return NewStructureDefinition(r, StructureDefinition{
		Meta:             combineMeta(KindStructureDefinition, &s.Meta, &o.Meta, w),
		ConstructionBase: s.ConstructionBase.combine(o.ConstructionBase, w),
		MassRatios:       append(slices.Clone(s.MassRatios), o.MassRatios...),
	})
}

func (s *StructureDefinition) combineEntity(r *Registry, other Entity, weights []float64) (Entity, error) {
	return s.Combine(r, other.(*StructureDefinition), weights)
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

import (
	"slices"
	"strings"
)

// MaterialBase holds the cost and environmental fields shared by every
// material kind.
type MaterialBase struct {
	Cost                    float64
	EmbodiedCarbon          float64
	EmbodiedEnergy          float64
	SubstitutionTimestep    float64
	SubstitutionRatePattern []float64
	TransportCarbon         float64
	TransportDistance       float64
	TransportEnergy         float64
}

func (b MaterialBase) equal(o MaterialBase) bool {
	return b.Cost == o.Cost &&
		b.EmbodiedCarbon == o.EmbodiedCarbon &&
		b.EmbodiedEnergy == o.EmbodiedEnergy &&
		b.SubstitutionTimestep == o.SubstitutionTimestep &&
		slices.Equal(b.SubstitutionRatePattern, o.SubstitutionRatePattern) &&
		b.TransportCarbon == o.TransportCarbon &&
		b.TransportDistance == o.TransportDistance &&
		b.TransportEnergy == o.TransportEnergy
}

func (b MaterialBase) combine(o MaterialBase, w []float64) MaterialBase {
	return MaterialBase{
		Cost:                    floatMean(b.Cost, o.Cost, w),
		EmbodiedCarbon:          floatMean(b.EmbodiedCarbon, o.EmbodiedCarbon, w),
		EmbodiedEnergy:          floatMean(b.EmbodiedEnergy, o.EmbodiedEnergy, w),
		SubstitutionTimestep:    floatMean(b.SubstitutionTimestep, o.SubstitutionTimestep, w),
		SubstitutionRatePattern: concat(b.SubstitutionRatePattern, o.SubstitutionRatePattern),
		TransportCarbon:         floatMean(b.TransportCarbon, o.TransportCarbon, w),
		TransportDistance:       floatMean(b.TransportDistance, o.TransportDistance, w),
		TransportEnergy:         floatMean(b.TransportEnergy, o.TransportEnergy, w),
	}
}

// Material is implemented by the three material kinds that can appear
// in a construction layer.
type Material interface {
	Entity

	// MaterialDensity is the density in kg/m3.
	MaterialDensity() float64
	// MaterialConductivity is the thermal conductivity in W/m-K.
	MaterialConductivity() float64
}

// OpaqueMaterial is a solid material layer.
type OpaqueMaterial struct {
	Meta
	MaterialBase

	Conductivity                float64
	Density                     float64
	SpecificHeat                float64
	SolarAbsorptance            float64
	ThermalEmittance            float64
	VisibleAbsorptance          float64
	Roughness                   string
	MoistureDiffusionResistance float64
}

// DefaultOpaqueMaterial returns an unregistered opaque material with
// the library defaults: a generic concrete.
func DefaultOpaqueMaterial(name string) OpaqueMaterial {
	return OpaqueMaterial{
		Meta:                        Meta{Name: name},
		MaterialBase:                MaterialBase{SubstitutionRatePattern: []float64{1}},
		Conductivity:                2.4,
		Density:                     2400,
		SpecificHeat:                840,
		SolarAbsorptance:            0.7,
		ThermalEmittance:            0.9,
		VisibleAbsorptance:          0.7,
		Roughness:                   "Rough",
		MoistureDiffusionResistance: 50,
	}
}

// NewOpaqueMaterial registers m, returning the already-registered
// material if one has the same name.
func NewOpaqueMaterial(r *Registry, m OpaqueMaterial) (*OpaqueMaterial, error) {
	return register(r, &m)
}

func (*OpaqueMaterial) Kind() Kind { return KindOpaqueMaterial }

func (m *OpaqueMaterial) MaterialDensity() float64      { return m.Density }
func (m *OpaqueMaterial) MaterialConductivity() float64 { return m.Conductivity }

func (*OpaqueMaterial) children() []Entity { return nil }

// Equal reports value equality. Metadata is not compared.
func (m *OpaqueMaterial) Equal(o *OpaqueMaterial) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.MaterialBase.equal(o.MaterialBase) &&
		m.Conductivity == o.Conductivity &&
		m.Density == o.Density &&
		m.SpecificHeat == o.SpecificHeat &&
		m.SolarAbsorptance == o.SolarAbsorptance &&
		m.ThermalEmittance == o.ThermalEmittance &&
		m.VisibleAbsorptance == o.VisibleAbsorptance &&
		m.Roughness == o.Roughness &&
		m.MoistureDiffusionResistance == o.MoistureDiffusionResistance
}

func (m *OpaqueMaterial) equalEntity(other Entity) bool {
	o, ok := other.(*OpaqueMaterial)
	return ok && m.Equal(o)
}

// Combine returns the density-weighted combination of m and o.
func (m *OpaqueMaterial) Combine(r *Registry, o *OpaqueMaterial, weights []float64) (*OpaqueMaterial, error) {
	if o == nil || m == o || m.Equal(o) {
		return m, nil
	}
	if m == nil {
		return o, nil
	}
	w, err := resolveWeights(weights, m.Density, o.Density)
	if err != nil {
		return nil, err
	}
	return NewOpaqueMaterial(r, OpaqueMaterial{
		Meta:                        combineMeta(KindOpaqueMaterial, &m.Meta, &o.Meta, w),
		MaterialBase:                m.MaterialBase.combine(o.MaterialBase, w),
		Conductivity:                floatMean(m.Conductivity, o.Conductivity, w),
		Density:                     floatMean(m.Density, o.Density, w),
		SpecificHeat:                floatMean(m.SpecificHeat, o.SpecificHeat, w),
		SolarAbsorptance:            floatMean(m.SolarAbsorptance, o.SolarAbsorptance, w),
		ThermalEmittance:            floatMean(m.ThermalEmittance, o.ThermalEmittance, w),
		VisibleAbsorptance:          floatMean(m.VisibleAbsorptance, o.VisibleAbsorptance, w),
		Roughness:                   strMean(m.Roughness, o.Roughness),
		MoistureDiffusionResistance: floatMean(m.MoistureDiffusionResistance, o.MoistureDiffusionResistance, w),
	})
}

func (m *OpaqueMaterial) combineEntity(r *Registry, other Entity, weights []float64) (Entity, error) {
	return m.Combine(r, other.(*OpaqueMaterial), weights)
}

// GlazingMaterial is one pane of a window construction.
type GlazingMaterial struct {
	Meta
	MaterialBase

	Density                 float64
	Conductivity            float64
	SolarTransmittance      float64
	SolarReflectanceFront   float64
	SolarReflectanceBack    float64
	VisibleTransmittance    float64
	VisibleReflectanceFront float64
	VisibleReflectanceBack  float64
	IRTransmittance         float64
	IREmissivityFront       float64
	IREmissivityBack        float64
	DirtFactor              float64
	Type                    string
	Life                    float64
}

// DefaultGlazingMaterial returns an unregistered glazing material with
// the library defaults.
func DefaultGlazingMaterial(name string) GlazingMaterial {
	return GlazingMaterial{
		Meta:         Meta{Name: name},
		MaterialBase: MaterialBase{SubstitutionRatePattern: []float64{1}},
		Density:      2500,
		DirtFactor:   1,
		Life:         1,
	}
}

// NewGlazingMaterial registers m, returning the already-registered
// material if one has the same name.
func NewGlazingMaterial(r *Registry, m GlazingMaterial) (*GlazingMaterial, error) {
	return register(r, &m)
}

func (*GlazingMaterial) Kind() Kind { return KindGlazingMaterial }

func (m *GlazingMaterial) MaterialDensity() float64      { return m.Density }
func (m *GlazingMaterial) MaterialConductivity() float64 { return m.Conductivity }

func (*GlazingMaterial) children() []Entity { return nil }

// Equal reports value equality. Metadata is not compared.
func (m *GlazingMaterial) Equal(o *GlazingMaterial) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.MaterialBase.equal(o.MaterialBase) &&
		m.Density == o.Density &&
		m.Conductivity == o.Conductivity &&
		m.SolarTransmittance == o.SolarTransmittance &&
		m.SolarReflectanceFront == o.SolarReflectanceFront &&
		m.SolarReflectanceBack == o.SolarReflectanceBack &&
		m.VisibleTransmittance == o.VisibleTransmittance &&
		m.VisibleReflectanceFront == o.VisibleReflectanceFront &&
		m.VisibleReflectanceBack == o.VisibleReflectanceBack &&
		m.IRTransmittance == o.IRTransmittance &&
		m.IREmissivityFront == o.IREmissivityFront &&
		m.IREmissivityBack == o.IREmissivityBack &&
		m.DirtFactor == o.DirtFactor &&
		m.Type == o.Type &&
		m.Life == o.Life
}

func (m *GlazingMaterial) equalEntity(other Entity) bool {
	o, ok := other.(*GlazingMaterial)
	return ok && m.Equal(o)
}

// Combine returns the density-weighted combination of m and o. Life
// takes the longer of the two.
func (m *GlazingMaterial) Combine(r *Registry, o *GlazingMaterial, weights []float64) (*GlazingMaterial, error) {
	if o == nil || m == o || m.Equal(o) {
		return m, nil
	}
	if m == nil {
		return o, nil
	}
	w, err := resolveWeights(weights, m.Density, o.Density)
	if err != nil {
		return nil, err
	}
	return NewGlazingMaterial(r, GlazingMaterial{
		Meta:                    combineMeta(KindGlazingMaterial, &m.Meta, &o.Meta, w),
		MaterialBase:            m.MaterialBase.combine(o.MaterialBase, w),
		Density:                 floatMean(m.Density, o.Density, w),
		Conductivity:            floatMean(m.Conductivity, o.Conductivity, w),
		SolarTransmittance:      floatMean(m.SolarTransmittance, o.SolarTransmittance, w),
		SolarReflectanceFront:   floatMean(m.SolarReflectanceFront, o.SolarReflectanceFront, w),
		SolarReflectanceBack:    floatMean(m.SolarReflectanceBack, o.SolarReflectanceBack, w),
		VisibleTransmittance:    floatMean(m.VisibleTransmittance, o.VisibleTransmittance, w),
		VisibleReflectanceFront: floatMean(m.VisibleReflectanceFront, o.VisibleReflectanceFront, w),
		VisibleReflectanceBack:  floatMean(m.VisibleReflectanceBack, o.VisibleReflectanceBack, w),
		IRTransmittance:         floatMean(m.IRTransmittance, o.IRTransmittance, w),
		IREmissivityFront:       floatMean(m.IREmissivityFront, o.IREmissivityFront, w),
		IREmissivityBack:        floatMean(m.IREmissivityBack, o.IREmissivityBack, w),
		DirtFactor:              floatMean(m.DirtFactor, o.DirtFactor, w),
		Type:                    strMean(m.Type, o.Type),
		Life:                    max(m.Life, o.Life),
	})
}

func (m *GlazingMaterial) combineEntity(r *Registry, other Entity, weights []float64) (Entity, error) {
	return m.Combine(r, other.(*GlazingMaterial), weights)
}

// Gas fill names.
const (
	GasAir     = "AIR"
	GasArgon   = "ARGON"
	GasKrypton = "KRYPTON"
	GasXenon   = "XENON"
)

// gasProperties holds conductivity (W/m-K) and density (kg/m3) at
// 20 C for each fill gas.
var gasProperties = map[string][2]float64{
	GasAir:     {0.0257, 1.204},
	GasArgon:   {0.0172, 1.661},
	GasKrypton: {0.0095, 3.491},
	GasXenon:   {0.0055, 5.495},
}

// GasMaterial is a gas fill between window panes.
type GasMaterial struct {
	Meta
	MaterialBase

	// Type is the fill gas. Empty means air.
	Type string
}

// DefaultGasMaterial returns an unregistered air gas material.
func DefaultGasMaterial(name string) GasMaterial {
	return GasMaterial{
		Meta:         Meta{Name: name},
		MaterialBase: MaterialBase{SubstitutionRatePattern: []float64{1}},
		Type:         GasAir,
	}
}

// NewGasMaterial registers m, returning the already-registered
// material if one has the same name.
func NewGasMaterial(r *Registry, m GasMaterial) (*GasMaterial, error) {
	m.Type = strings.ToUpper(strMean(m.Type, GasAir))
	return register(r, &m)
}

func (*GasMaterial) Kind() Kind { return KindGasMaterial }

func (m *GasMaterial) gas() [2]float64 {
	if props, ok := gasProperties[strings.ToUpper(m.Type)]; ok {
		return props
	}
	return gasProperties[GasAir]
}

func (m *GasMaterial) MaterialDensity() float64      { return m.gas()[1] }
func (m *GasMaterial) MaterialConductivity() float64 { return m.gas()[0] }

func (*GasMaterial) children() []Entity { return nil }

// Equal reports value equality. Metadata is not compared.
func (m *GasMaterial) Equal(o *GasMaterial) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.MaterialBase.equal(o.MaterialBase) && m.Type == o.Type
}

func (m *GasMaterial) equalEntity(other Entity) bool {
	o, ok := other.(*GasMaterial)
	return ok && m.Equal(o)
}

// Combine returns the density-weighted combination of m and o. The fill
// gas of the heavier side is kept.
func (m *GasMaterial) Combine(r *Registry, o *GasMaterial, weights []float64) (*GasMaterial, error) {
	if o == nil || m == o || m.Equal(o) {
		return m, nil
	}
	if m == nil {
		return o, nil
	}
	w, err := resolveWeights(weights, m.MaterialDensity(), o.MaterialDensity())
	if err != nil {
		return nil, err
	}
	gasType := m.Type
	if !heavier(w) {
		gasType = o.Type
	}
	return NewGasMaterial(r, GasMaterial{
		Meta:         combineMeta(KindGasMaterial, &m.Meta, &o.Meta, w),
		MaterialBase: m.MaterialBase.combine(o.MaterialBase, w),
		Type:         gasType,
	})
}

func (m *GasMaterial) combineEntity(r *Registry, other Entity, weights []float64) (Entity, error) {
	return m.Combine(r, other.(*GasMaterial), weights)
}

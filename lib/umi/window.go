// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

import "strings"

// WindowType is where a window's shading device sits.
type WindowType int

const (
	WindowExternal WindowType = 0
	WindowInternal WindowType = 1
)

// ParseWindowType maps "External" and "Internal" (any case) to a
// window type. Anything else is external.
func ParseWindowType(name string) WindowType {
	if strings.EqualFold(strings.TrimSpace(name), "internal") {
		return WindowInternal
	}
	return WindowExternal
}

func (t WindowType) String() string {
	if t == WindowInternal {
		return "Internal"
	}
	return "External"
}

// WindowSetting is the fenestration setting of a zone or building
// template.
type WindowSetting struct {
	Meta
	zoneOwned

	Construction                      *WindowConstruction
	AfnDischargeC                     float64
	AfnTempSetpoint                   float64
	AfnWindowAvailability             *YearSchedule
	IsShadingSystemOn                 bool
	IsVirtualPartition                bool
	IsZoneMixingOn                    bool
	OperableArea                      float64
	ShadingSystemAvailabilitySchedule *YearSchedule
	ShadingSystemSetpoint             float64
	ShadingSystemTransmittance        float64
	ShadingSystemType                 int
	Type                              WindowType
	ZoneMixingAvailabilitySchedule    *YearSchedule
	ZoneMixingDeltaTemperature        float64
	ZoneMixingFlowRate                float64
}

// DefaultWindowSetting returns an unregistered window setting with the
// library defaults and no construction or schedules.
func DefaultWindowSetting(name string) WindowSetting {
	return WindowSetting{
		Meta:                       Meta{Name: name},
		AfnDischargeC:              0.65,
		AfnTempSetpoint:            20,
		OperableArea:               0.8,
		ShadingSystemSetpoint:      180,
		ShadingSystemTransmittance: 0.5,
		ZoneMixingDeltaTemperature: 2,
		ZoneMixingFlowRate:         0.001,
	}
}

// NewWindowSetting registers s, returning the already-registered
// setting if one has the same name.
func NewWindowSetting(r *Registry, s WindowSetting) (*WindowSetting, error) {
	return register(r, &s)
}

func (*WindowSetting) Kind() Kind { return KindWindowSetting }

func (s *WindowSetting) children() []Entity {
	var children []Entity
	if s.Construction != nil {
		children = append(children, s.Construction)
	}
	return append(children, scheduleChildren(
		s.AfnWindowAvailability,
		s.ShadingSystemAvailabilitySchedule,
		s.ZoneMixingAvailabilitySchedule,
	)...)
}

// Equal reports value equality. Metadata and ownership are not
// compared.
func (s *WindowSetting) Equal(o *WindowSetting) bool {
	if s == nil || o == nil {
		return s == o
	}
	return (s.Construction == o.Construction || s.Construction.Equal(o.Construction)) &&
		s.AfnDischargeC == o.AfnDischargeC &&
		s.AfnTempSetpoint == o.AfnTempSetpoint &&
		sameSchedule(s.AfnWindowAvailability, o.AfnWindowAvailability) &&
		s.IsShadingSystemOn == o.IsShadingSystemOn &&
		s.IsVirtualPartition == o.IsVirtualPartition &&
		s.IsZoneMixingOn == o.IsZoneMixingOn &&
		s.OperableArea == o.OperableArea &&
		sameSchedule(s.ShadingSystemAvailabilitySchedule, o.ShadingSystemAvailabilitySchedule) &&
		s.ShadingSystemSetpoint == o.ShadingSystemSetpoint &&
		s.ShadingSystemTransmittance == o.ShadingSystemTransmittance &&
		s.ShadingSystemType == o.ShadingSystemType &&
		s.Type == o.Type &&
		sameSchedule(s.ZoneMixingAvailabilitySchedule, o.ZoneMixingAvailabilitySchedule) &&
		s.ZoneMixingDeltaTemperature == o.ZoneMixingDeltaTemperature &&
		s.ZoneMixingFlowRate == o.ZoneMixingFlowRate
}

func (s *WindowSetting) equalEntity(other Entity) bool {
	o, ok := other.(*WindowSetting)
	return ok && s.Equal(o)
}

// Combine returns the combination of s and o. Setpoints, rates, and
// areas take the larger of the two so the result satisfies the stricter
// zone; the construction and schedules combine with the owning zones'
// weights unless weights are given.
func (s *WindowSetting) Combine(r *Registry, o *WindowSetting, weights []float64) (*WindowSetting, error) {
	if o == nil || s == o || s.Equal(o) {
		return s, nil
	}
	if s == nil {
		return o, nil
	}
	w, err := settingWeights(r, weights, s.owner, o.owner)
	if err != nil {
		return nil, err
	}
	m := &combiner{r: r, w: w}
	combined := WindowSetting{
		Meta:                              combineMeta(KindWindowSetting, &s.Meta, &o.Meta, w),
		Construction:                      m.window("Construction", s.Construction, o.Construction),
		AfnDischargeC:                     max(s.AfnDischargeC, o.AfnDischargeC),
		AfnTempSetpoint:                   max(s.AfnTempSetpoint, o.AfnTempSetpoint),
		AfnWindowAvailability:             m.schedule("AfnWindowAvailability", s.AfnWindowAvailability, o.AfnWindowAvailability),
		IsShadingSystemOn:                 s.IsShadingSystemOn || o.IsShadingSystemOn,
		IsVirtualPartition:                s.IsVirtualPartition || o.IsVirtualPartition,
		IsZoneMixingOn:                    s.IsZoneMixingOn || o.IsZoneMixingOn,
		OperableArea:                      max(s.OperableArea, o.OperableArea),
		ShadingSystemAvailabilitySchedule: m.schedule("ShadingSystemAvailabilitySchedule", s.ShadingSystemAvailabilitySchedule, o.ShadingSystemAvailabilitySchedule),
		ShadingSystemSetpoint:             max(s.ShadingSystemSetpoint, o.ShadingSystemSetpoint),
		ShadingSystemTransmittance:        max(s.ShadingSystemTransmittance, o.ShadingSystemTransmittance),
		ShadingSystemType:                 max(s.ShadingSystemType, o.ShadingSystemType),
		Type:                              s.Type,
		ZoneMixingAvailabilitySchedule:    m.schedule("ZoneMixingAvailabilitySchedule", s.ZoneMixingAvailabilitySchedule, o.ZoneMixingAvailabilitySchedule),
		ZoneMixingDeltaTemperature:        max(s.ZoneMixingDeltaTemperature, o.ZoneMixingDeltaTemperature),
		ZoneMixingFlowRate:                max(s.ZoneMixingFlowRate, o.ZoneMixingFlowRate),
	}
	if m.err != nil {
		return nil, m.err
	}
	return NewWindowSetting(r, combined)
}

func (s *WindowSetting) combineEntity(r *Registry, other Entity, weights []float64) (Entity, error) {
	return s.Combine(r, other.(*WindowSetting), weights)
}

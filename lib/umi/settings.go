// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

// ZoneConditioning is the heating, cooling, and mechanical ventilation
// setting of a zone.
type ZoneConditioning struct {
	Meta
	zoneOwned

	CoolingCoeffOfPerf             float64
	CoolingLimitType               string
	CoolingSetpoint                float64
	CoolingSchedule                *YearSchedule
	EconomizerType                 string
	HeatRecoveryEfficiencyLatent   float64
	HeatRecoveryEfficiencySensible float64
	HeatRecoveryType               string
	HeatingCoeffOfPerf             float64
	HeatingLimitType               string
	HeatingSetpoint                float64
	HeatingSchedule                *YearSchedule
	IsCoolingOn                    bool
	IsHeatingOn                    bool
	IsMechVentOn                   bool
	MaxCoolFlow                    float64
	MaxCoolingCapacity             float64
	MaxHeatFlow                    float64
	MaxHeatingCapacity             float64
	MechVentSchedule               *YearSchedule
	MinFreshAirPerArea             float64
	MinFreshAirPerPerson           float64
}

// DefaultZoneConditioning returns an unregistered conditioning setting
// with the library defaults and no schedules.
func DefaultZoneConditioning(name string) ZoneConditioning {
	return ZoneConditioning{
		Meta:                           Meta{Name: name},
		CoolingCoeffOfPerf:             1,
		CoolingLimitType:               "NoLimit",
		CoolingSetpoint:                26,
		EconomizerType:                 "NoEconomizer",
		HeatRecoveryEfficiencyLatent:   0.65,
		HeatRecoveryEfficiencySensible: 0.7,
		HeatRecoveryType:               "None",
		HeatingCoeffOfPerf:             1,
		HeatingLimitType:               "NoLimit",
		HeatingSetpoint:                20,
		IsCoolingOn:                    true,
		IsHeatingOn:                    true,
		IsMechVentOn:                   true,
		MaxCoolFlow:                    100,
		MaxCoolingCapacity:             100,
		MaxHeatFlow:                    100,
		MaxHeatingCapacity:             100,
		MinFreshAirPerArea:             0.001,
		MinFreshAirPerPerson:           0.001,
	}
}

// NewZoneConditioning registers c, returning the already-registered
// setting if one has the same name.
func NewZoneConditioning(r *Registry, c ZoneConditioning) (*ZoneConditioning, error) {
	return register(r, &c)
}

func (*ZoneConditioning) Kind() Kind { return KindZoneConditioning }

func (c *ZoneConditioning) children() []Entity {
	return scheduleChildren(c.CoolingSchedule, c.HeatingSchedule, c.MechVentSchedule)
}

// Equal reports value equality. Metadata and ownership are not
// compared.
func (c *ZoneConditioning) Equal(o *ZoneConditioning) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.CoolingCoeffOfPerf == o.CoolingCoeffOfPerf &&
		c.CoolingLimitType == o.CoolingLimitType &&
		c.CoolingSetpoint == o.CoolingSetpoint &&
		sameSchedule(c.CoolingSchedule, o.CoolingSchedule) &&
		c.EconomizerType == o.EconomizerType &&
		c.HeatRecoveryEfficiencyLatent == o.HeatRecoveryEfficiencyLatent &&
		c.HeatRecoveryEfficiencySensible == o.HeatRecoveryEfficiencySensible &&
		c.HeatRecoveryType == o.HeatRecoveryType &&
		c.HeatingCoeffOfPerf == o.HeatingCoeffOfPerf &&
		c.HeatingLimitType == o.HeatingLimitType &&
		c.HeatingSetpoint == o.HeatingSetpoint &&
		sameSchedule(c.HeatingSchedule, o.HeatingSchedule) &&
		c.IsCoolingOn == o.IsCoolingOn &&
		c.IsHeatingOn == o.IsHeatingOn &&
		c.IsMechVentOn == o.IsMechVentOn &&
		c.MaxCoolFlow == o.MaxCoolFlow &&
		c.MaxCoolingCapacity == o.MaxCoolingCapacity &&
		c.MaxHeatFlow == o.MaxHeatFlow &&
		c.MaxHeatingCapacity == o.MaxHeatingCapacity &&
		sameSchedule(c.MechVentSchedule, o.MechVentSchedule) &&
		c.MinFreshAirPerArea == o.MinFreshAirPerArea &&
		c.MinFreshAirPerPerson == o.MinFreshAirPerPerson
}

func (c *ZoneConditioning) equalEntity(other Entity) bool {
	o, ok := other.(*ZoneConditioning)
	return ok && c.Equal(o)
}

// Combine returns the combination of c and o, weighted by the owning
// zones unless weights are given.
func (c *ZoneConditioning) Combine(r *Registry, o *ZoneConditioning, weights []float64) (*ZoneConditioning, error) {
	if o == nil || c == o || c.Equal(o) {
		return c, nil
	}
	if c == nil {
		return o, nil
	}
	w, err := settingWeights(r, weights, c.owner, o.owner)
	if err != nil {
		return nil, err
	}
	m := &combiner{r: r, w: w}
	combined := ZoneConditioning{
		Meta:                           combineMeta(KindZoneConditioning, &c.Meta, &o.Meta, w),
		CoolingCoeffOfPerf:             m.mean(c.CoolingCoeffOfPerf, o.CoolingCoeffOfPerf),
		CoolingLimitType:               strMean(c.CoolingLimitType, o.CoolingLimitType),
		CoolingSetpoint:                m.mean(c.CoolingSetpoint, o.CoolingSetpoint),
		CoolingSchedule:                m.schedule("CoolingSchedule", c.CoolingSchedule, o.CoolingSchedule),
		EconomizerType:                 strMean(c.EconomizerType, o.EconomizerType),
		HeatRecoveryEfficiencyLatent:   m.mean(c.HeatRecoveryEfficiencyLatent, o.HeatRecoveryEfficiencyLatent),
		HeatRecoveryEfficiencySensible: m.mean(c.HeatRecoveryEfficiencySensible, o.HeatRecoveryEfficiencySensible),
		HeatRecoveryType:               strMean(c.HeatRecoveryType, o.HeatRecoveryType),
		HeatingCoeffOfPerf:             m.mean(c.HeatingCoeffOfPerf, o.HeatingCoeffOfPerf),
		HeatingLimitType:               strMean(c.HeatingLimitType, o.HeatingLimitType),
		HeatingSetpoint:                m.mean(c.HeatingSetpoint, o.HeatingSetpoint),
		HeatingSchedule:                m.schedule("HeatingSchedule", c.HeatingSchedule, o.HeatingSchedule),
		IsCoolingOn:                    c.IsCoolingOn || o.IsCoolingOn,
		IsHeatingOn:                    c.IsHeatingOn || o.IsHeatingOn,
		IsMechVentOn:                   c.IsMechVentOn || o.IsMechVentOn,
		MaxCoolFlow:                    m.mean(c.MaxCoolFlow, o.MaxCoolFlow),
		MaxCoolingCapacity:             m.mean(c.MaxCoolingCapacity, o.MaxCoolingCapacity),
		MaxHeatFlow:                    m.mean(c.MaxHeatFlow, o.MaxHeatFlow),
		MaxHeatingCapacity:             m.mean(c.MaxHeatingCapacity, o.MaxHeatingCapacity),
		MechVentSchedule:               m.schedule("MechVentSchedule", c.MechVentSchedule, o.MechVentSchedule),
		MinFreshAirPerArea:             m.mean(c.MinFreshAirPerArea, o.MinFreshAirPerArea),
		MinFreshAirPerPerson:           m.mean(c.MinFreshAirPerPerson, o.MinFreshAirPerPerson),
	}
	if m.err != nil {
		return nil, m.err
	}
	return NewZoneConditioning(r, combined)
}

func (c *ZoneConditioning) combineEntity(r *Registry, other Entity, weights []float64) (Entity, error) {
	return c.Combine(r, other.(*ZoneConditioning), weights)
}

// ZoneLoad is the internal gains setting of a zone. Densities are per
// floor area.
type ZoneLoad struct {
	Meta
	zoneOwned

	DimmingType                   string
	EquipmentAvailabilitySchedule *YearSchedule
	EquipmentPowerDensity         float64
	IlluminanceTarget             float64
	LightingPowerDensity          float64
	LightsAvailabilitySchedule    *YearSchedule
	OccupancySchedule             *YearSchedule
	IsEquipmentOn                 bool
	IsLightingOn                  bool
	IsPeopleOn                    bool
	PeopleDensity                 float64
}

// DefaultZoneLoad returns an unregistered load setting with the library
// defaults and no schedules.
func DefaultZoneLoad(name string) ZoneLoad {
	return ZoneLoad{
		Meta:                  Meta{Name: name},
		DimmingType:           "Continuous",
		EquipmentPowerDensity: 12,
		IlluminanceTarget:     500,
		LightingPowerDensity:  12,
		IsEquipmentOn:         true,
		IsLightingOn:          true,
		IsPeopleOn:            true,
		PeopleDensity:         0.2,
	}
}

// NewZoneLoad registers l, returning the already-registered setting if
// one has the same name.
func NewZoneLoad(r *Registry, l ZoneLoad) (*ZoneLoad, error) {
	return register(r, &l)
}

func (*ZoneLoad) Kind() Kind { return KindZoneLoad }

func (l *ZoneLoad) children() []Entity {
	return scheduleChildren(l.EquipmentAvailabilitySchedule, l.LightsAvailabilitySchedule, l.OccupancySchedule)
}

// Equal reports value equality. Metadata and ownership are not
// compared.
func (l *ZoneLoad) Equal(o *ZoneLoad) bool {
	if l == nil || o == nil {
		return l == o
	}
	return l.DimmingType == o.DimmingType &&
		sameSchedule(l.EquipmentAvailabilitySchedule, o.EquipmentAvailabilitySchedule) &&
		l.EquipmentPowerDensity == o.EquipmentPowerDensity &&
		l.IlluminanceTarget == o.IlluminanceTarget &&
		l.LightingPowerDensity == o.LightingPowerDensity &&
		sameSchedule(l.LightsAvailabilitySchedule, o.LightsAvailabilitySchedule) &&
		sameSchedule(l.OccupancySchedule, o.OccupancySchedule) &&
		l.IsEquipmentOn == o.IsEquipmentOn &&
		l.IsLightingOn == o.IsLightingOn &&
		l.IsPeopleOn == o.IsPeopleOn &&
		l.PeopleDensity == o.PeopleDensity
}

func (l *ZoneLoad) equalEntity(other Entity) bool {
	o, ok := other.(*ZoneLoad)
	return ok && l.Equal(o)
}

// Combine returns the combination of l and o, weighted by the owning
// zones unless weights are given.
func (l *ZoneLoad) Combine(r *Registry, o *ZoneLoad, weights []float64) (*ZoneLoad, error) {
	if o == nil || l == o || l.Equal(o) {
		return l, nil
	}
	if l == nil {
		return o, nil
	}
	w, err := settingWeights(r, weights, l.owner, o.owner)
	if err != nil {
		return nil, err
	}
	m := &combiner{r: r, w: w}
	combined := ZoneLoad{
		Meta:                          combineMeta(KindZoneLoad, &l.Meta, &o.Meta, w),
		DimmingType:                   strMean(l.DimmingType, o.DimmingType),
		EquipmentAvailabilitySchedule: m.schedule("EquipmentAvailabilitySchedule", l.EquipmentAvailabilitySchedule, o.EquipmentAvailabilitySchedule),
		EquipmentPowerDensity:         m.mean(l.EquipmentPowerDensity, o.EquipmentPowerDensity),
		IlluminanceTarget:             m.mean(l.IlluminanceTarget, o.IlluminanceTarget),
		LightingPowerDensity:          m.mean(l.LightingPowerDensity, o.LightingPowerDensity),
		LightsAvailabilitySchedule:    m.schedule("LightsAvailabilitySchedule", l.LightsAvailabilitySchedule, o.LightsAvailabilitySchedule),
		OccupancySchedule:             m.schedule("OccupancySchedule", l.OccupancySchedule, o.OccupancySchedule),
		IsEquipmentOn:                 l.IsEquipmentOn || o.IsEquipmentOn,
		IsLightingOn:                  l.IsLightingOn || o.IsLightingOn,
		IsPeopleOn:                    l.IsPeopleOn || o.IsPeopleOn,
		PeopleDensity:                 m.mean(l.PeopleDensity, o.PeopleDensity),
	}
	if m.err != nil {
		return nil, m.err
	}
	return NewZoneLoad(r, combined)
}

func (l *ZoneLoad) combineEntity(r *Registry, other Entity, weights []float64) (Entity, error) {
	return l.Combine(r, other.(*ZoneLoad), weights)
}

// VentilationSetting is the infiltration and natural ventilation
// setting of a zone.
type VentilationSetting struct {
	Meta
	zoneOwned

	Afn                          bool
	IsBuoyancyOn                 bool
	Infiltration                 float64
	IsInfiltrationOn             bool
	IsNatVentOn                  bool
	IsScheduledVentilationOn     bool
	IsWindOn                     bool
	NatVentMaxOutdoorAirTemp     float64
	NatVentMaxRelHumidity        float64
	NatVentMinOutdoorAirTemp     float64
	NatVentSchedule              *YearSchedule
	NatVentZoneTempSetpoint      float64
	ScheduledVentilationAch      float64
	ScheduledVentilationSchedule *YearSchedule
	ScheduledVentilationSetpoint float64
}

// DefaultVentilationSetting returns an unregistered ventilation setting
// with the library defaults and no schedules.
func DefaultVentilationSetting(name string) VentilationSetting {
	return VentilationSetting{
		Meta:                         Meta{Name: name},
		IsBuoyancyOn:                 true,
		Infiltration:                 0.1,
		IsInfiltrationOn:             true,
		NatVentMaxOutdoorAirTemp:     30,
		NatVentMaxRelHumidity:        90,
		NatVentZoneTempSetpoint:      18,
		ScheduledVentilationAch:      0.6,
		ScheduledVentilationSetpoint: 18,
	}
}

// NewVentilationSetting registers v, returning the already-registered
// setting if one has the same name.
func NewVentilationSetting(r *Registry, v VentilationSetting) (*VentilationSetting, error) {
	return register(r, &v)
}

func (*VentilationSetting) Kind() Kind { return KindVentilationSetting }

func (v *VentilationSetting) children() []Entity {
	return scheduleChildren(v.NatVentSchedule, v.ScheduledVentilationSchedule)
}

// Equal reports value equality. Metadata and ownership are not
// compared.
func (v *VentilationSetting) Equal(o *VentilationSetting) bool {
	if v == nil || o == nil {
		return v == o
	}
	return v.Afn == o.Afn &&
		v.IsBuoyancyOn == o.IsBuoyancyOn &&
		v.Infiltration == o.Infiltration &&
		v.IsInfiltrationOn == o.IsInfiltrationOn &&
		v.IsNatVentOn == o.IsNatVentOn &&
		v.IsScheduledVentilationOn == o.IsScheduledVentilationOn &&
		v.IsWindOn == o.IsWindOn &&
		v.NatVentMaxOutdoorAirTemp == o.NatVentMaxOutdoorAirTemp &&
		v.NatVentMaxRelHumidity == o.NatVentMaxRelHumidity &&
		v.NatVentMinOutdoorAirTemp == o.NatVentMinOutdoorAirTemp &&
		sameSchedule(v.NatVentSchedule, o.NatVentSchedule) &&
		v.NatVentZoneTempSetpoint == o.NatVentZoneTempSetpoint &&
		v.ScheduledVentilationAch == o.ScheduledVentilationAch &&
		sameSchedule(v.ScheduledVentilationSchedule, o.ScheduledVentilationSchedule) &&
		v.ScheduledVentilationSetpoint == o.ScheduledVentilationSetpoint
}

func (v *VentilationSetting) equalEntity(other Entity) bool {
	o, ok := other.(*VentilationSetting)
	return ok && v.Equal(o)
}

// Combine returns the combination of v and o, weighted by the owning
// zones unless weights are given.
func (v *VentilationSetting) Combine(r *Registry, o *VentilationSetting, weights []float64) (*VentilationSetting, error) {
	if o == nil || v == o || v.Equal(o) {
		return v, nil
	}
	if v == nil {
		return o, nil
	}
	w, err := settingWeights(r, weights, v.owner, o.owner)
	if err != nil {
		return nil, err
	}
	m := &combiner{r: r, w: w}
	combined := VentilationSetting{
		Meta:                         combineMeta(KindVentilationSetting, &v.Meta, &o.Meta, w),
		Afn:                          v.Afn || o.Afn,
		IsBuoyancyOn:                 v.IsBuoyancyOn || o.IsBuoyancyOn,
		Infiltration:                 m.mean(v.Infiltration, o.Infiltration),
		IsInfiltrationOn:             v.IsInfiltrationOn || o.IsInfiltrationOn,
		IsNatVentOn:                  v.IsNatVentOn || o.IsNatVentOn,
		IsScheduledVentilationOn:     v.IsScheduledVentilationOn || o.IsScheduledVentilationOn,
		IsWindOn:                     v.IsWindOn || o.IsWindOn,
		NatVentMaxOutdoorAirTemp:     m.mean(v.NatVentMaxOutdoorAirTemp, o.NatVentMaxOutdoorAirTemp),
		NatVentMaxRelHumidity:        m.mean(v.NatVentMaxRelHumidity, o.NatVentMaxRelHumidity),
		NatVentMinOutdoorAirTemp:     m.mean(v.NatVentMinOutdoorAirTemp, o.NatVentMinOutdoorAirTemp),
		NatVentSchedule:              m.schedule("NatVentSchedule", v.NatVentSchedule, o.NatVentSchedule),
		NatVentZoneTempSetpoint:      m.mean(v.NatVentZoneTempSetpoint, o.NatVentZoneTempSetpoint),
		ScheduledVentilationAch:      m.mean(v.ScheduledVentilationAch, o.ScheduledVentilationAch),
		ScheduledVentilationSchedule: m.schedule("ScheduledVentilationSchedule", v.ScheduledVentilationSchedule, o.ScheduledVentilationSchedule),
		ScheduledVentilationSetpoint: m.mean(v.ScheduledVentilationSetpoint, o.ScheduledVentilationSetpoint),
	}
	if m.err != nil {
		return nil, m.err
	}
	return NewVentilationSetting(r, combined)
}

func (v *VentilationSetting) combineEntity(r *Registry, other Entity, weights []float64) (Entity, error) {
	return v.Combine(r, other.(*VentilationSetting), weights)
}

// DomesticHotWaterSetting is the service hot water setting of a zone.
type DomesticHotWaterSetting struct {
	Meta
	zoneOwned

	FlowRatePerFloorArea   float64
	IsOn                   bool
	WaterSchedule          *YearSchedule
	WaterSupplyTemperature float64
	WaterTemperatureInlet  float64
}

// DefaultDomesticHotWaterSetting returns an unregistered hot water
// setting with the library defaults and no schedule.
func DefaultDomesticHotWaterSetting(name string) DomesticHotWaterSetting {
	return DomesticHotWaterSetting{
		Meta:                   Meta{Name: name},
		FlowRatePerFloorArea:   0.03,
		IsOn:                   true,
		WaterSupplyTemperature: 65,
		WaterTemperatureInlet:  10,
	}
}

// NewDomesticHotWaterSetting registers d, returning the
// already-registered setting if one has the same name.
func NewDomesticHotWaterSetting(r *Registry, d DomesticHotWaterSetting) (*DomesticHotWaterSetting, error) {
	return register(r, &d)
}

func (*DomesticHotWaterSetting) Kind() Kind { return KindDomesticHotWaterSetting }

func (d *DomesticHotWaterSetting) children() []Entity {
	return scheduleChildren(d.WaterSchedule)
}

// Equal reports value equality. Metadata and ownership are not
// compared.
func (d *DomesticHotWaterSetting) Equal(o *DomesticHotWaterSetting) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.FlowRatePerFloorArea == o.FlowRatePerFloorArea &&
		d.IsOn == o.IsOn &&
		sameSchedule(d.WaterSchedule, o.WaterSchedule) &&
		d.WaterSupplyTemperature == o.WaterSupplyTemperature &&
		d.WaterTemperatureInlet == o.WaterTemperatureInlet
}

func (d *DomesticHotWaterSetting) equalEntity(other Entity) bool {
	o, ok := other.(*DomesticHotWaterSetting)
	return ok && d.Equal(o)
}

// Combine returns the combination of d and o, weighted by the owning
// zones unless weights are given.
func (d *DomesticHotWaterSetting) Combine(r *Registry, o *DomesticHotWaterSetting, weights []float64) (*DomesticHotWaterSetting, error) {
	if o == nil || d == o || d.Equal(o) {
		return d, nil
	}
	if d == nil {
		return o, nil
	}
	w, err := settingWeights(r, weights, d.owner, o.owner)
	if err != nil {
		return nil, err
	}
	m := &combiner{r: r, w: w}
	combined := DomesticHotWaterSetting{
		Meta:                   combineMeta(KindDomesticHotWaterSetting, &d.Meta, &o.Meta, w),
		FlowRatePerFloorArea:   m.mean(d.FlowRatePerFloorArea, o.FlowRatePerFloorArea),
		IsOn:                   d.IsOn || o.IsOn,
		WaterSchedule:          m.schedule("WaterSchedule", d.WaterSchedule, o.WaterSchedule),
		WaterSupplyTemperature: m.mean(d.WaterSupplyTemperature, o.WaterSupplyTemperature),
		WaterTemperatureInlet:  m.mean(d.WaterTemperatureInlet, o.WaterTemperatureInlet),
	}
	if m.err != nil {
		return nil, m.err
	}
	return NewDomesticHotWaterSetting(r, combined)
}

func (d *DomesticHotWaterSetting) combineEntity(r *Registry, other Entity, weights []float64) (Entity, error) {
	return d.Combine(r, other.(*DomesticHotWaterSetting), weights)
}

// settingWeights resolves the weights of a zone setting combination,
// defaulting to the owning zones' weights.
func settingWeights(r *Registry, weights []float64, a, b ZoneHandle) ([]float64, error) {
	if weights != nil {
		return resolveWeights(weights, 0, 0)
	}
	return r.ownerWeights(a, b), nil
}

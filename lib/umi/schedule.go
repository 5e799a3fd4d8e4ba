// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Calendar constants. Year schedules describe a non-leap year that
// starts on a Monday.
const (
	HoursPerDay  = 24
	DaysPerWeek  = 7
	HoursPerWeek = HoursPerDay * DaysPerWeek
	DaysPerYear  = 365
	HoursPerYear = HoursPerDay * DaysPerYear
)

var monthLengths = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// dayOfYear converts a 1-based month and day to a 0-based day index.
func dayOfYear(month, day int) int {
	index := day - 1
	for m := range month - 1 {
		index += monthLengths[m]
	}
	return index
}

// monthDay converts a 0-based day index to a 1-based month and day.
func monthDay(index int) (month, day int) {
	for m, length := range monthLengths {
		if index < length {
			return m + 1, index + 1
		}
		index -= length
	}
	return 12, 31
}

// DaySchedule is 24 hourly values.
type DaySchedule struct {
	Meta

	// Type names the schedule limits, such as "Fraction".
	Type   string
	Values []float64
}

// NewDaySchedule registers s, returning the already-registered schedule
// if one has the same name.
func NewDaySchedule(r *Registry, s DaySchedule) (*DaySchedule, error) {
	if len(s.Values) != HoursPerDay {
		return nil, fmt.Errorf("day schedule %q: want %d values, got %d", s.Name, HoursPerDay, len(s.Values))
	}
	return register(r, &s)
}

func (*DaySchedule) Kind() Kind { return KindDaySchedule }

func (*DaySchedule) children() []Entity { return nil }

// Equal reports value equality. Metadata is not compared.
func (s *DaySchedule) Equal(o *DaySchedule) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Type == o.Type && slices.Equal(s.Values, o.Values)
}

func (s *DaySchedule) equalEntity(other Entity) bool {
	o, ok := other.(*DaySchedule)
	return ok && s.Equal(o)
}

// Combine returns the hour-by-hour weighted mean of s and o, equally
// weighted unless weights are given.
func (s *DaySchedule) Combine(r *Registry, o *DaySchedule, weights []float64) (*DaySchedule, error) {
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
	return NewDaySchedule(r, DaySchedule{
		Meta:   combineMeta(KindDaySchedule, &s.Meta, &o.Meta, w),
		Type:   strMean(s.Type, o.Type),
		Values: seriesMean(s.Values, o.Values, w),
	})
}

func (s *DaySchedule) combineEntity(r *Registry, other Entity, weights []float64) (Entity, error) {
	return s.Combine(r, other.(*DaySchedule), weights)
}

// WeekSchedule is seven day schedules, Monday first.
type WeekSchedule struct {
	Meta

	Type string
	Days [DaysPerWeek]*DaySchedule
}

// NewWeekSchedule registers s, returning the already-registered
// schedule if one has the same name.
func NewWeekSchedule(r *Registry, s WeekSchedule) (*WeekSchedule, error) {
	for i, day := range s.Days {
		if day == nil {
			return nil, fmt.Errorf("week schedule %q: day %d is not set", s.Name, i)
		}
	}
	return register(r, &s)
}

func (*WeekSchedule) Kind() Kind { return KindWeekSchedule }

func (s *WeekSchedule) children() []Entity {
	children := make([]Entity, 0, DaysPerWeek)
	for _, day := range s.Days {
		if day != nil {
			children = append(children, day)
		}
	}
	return children
}

// Values returns the 168 hourly values of the week.
func (s *WeekSchedule) Values() []float64 {
	values := make([]float64, 0, HoursPerWeek)
	for _, day := range s.Days {
		values = append(values, day.Values...)
	}
	return values
}

// Equal reports value equality. Metadata is not compared.
func (s *WeekSchedule) Equal(o *WeekSchedule) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Type != o.Type {
		return false
	}
	for i := range s.Days {
		if s.Days[i] != o.Days[i] && !s.Days[i].Equal(o.Days[i]) {
			return false
		}
	}
	return true
}

func (s *WeekSchedule) equalEntity(other Entity) bool {
	o, ok := other.(*WeekSchedule)
	return ok && s.Equal(o)
}

// Combine combines s and o day by day.
func (s *WeekSchedule) Combine(r *Registry, o *WeekSchedule, weights []float64) (*WeekSchedule, error) {
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
	combined := WeekSchedule{
		Meta: combineMeta(KindWeekSchedule, &s.Meta, &o.Meta, w),
		Type: strMean(s.Type, o.Type),
	}
	for i := range s.Days {
		day, err := s.Days[i].Combine(r, o.Days[i], w)
		if err != nil {
			return nil, fmt.Errorf("day %d: %w", i, err)
		}
		combined.Days[i] = day
	}
	return NewWeekSchedule(r, combined)
}

func (s *WeekSchedule) combineEntity(r *Registry, other Entity, weights []float64) (Entity, error) {
	return s.Combine(r, other.(*WeekSchedule), weights)
}

// YearSchedulePart applies a week schedule to an inclusive date range.
type YearSchedulePart struct {
	FromDay   int
	FromMonth int
	ToDay     int
	ToMonth   int
	Schedule  *WeekSchedule
}

func (p YearSchedulePart) equal(o YearSchedulePart) bool {
	return p.FromDay == o.FromDay && p.FromMonth == o.FromMonth &&
		p.ToDay == o.ToDay && p.ToMonth == o.ToMonth &&
		(p.Schedule == o.Schedule || p.Schedule.Equal(o.Schedule))
}

// YearSchedule covers a year with week schedules applied to date
// ranges.
type YearSchedule struct {
	Meta

	Type  string
	Parts []YearSchedulePart
}

// NewYearSchedule registers s, returning the already-registered
// schedule if one has the same name.
func NewYearSchedule(r *Registry, s YearSchedule) (*YearSchedule, error) {
	for i, part := range s.Parts {
		if part.Schedule == nil {
			return nil, fmt.Errorf("year schedule %q: part %d has no week schedule", s.Name, i)
		}
		if part.FromMonth < 1 || part.FromMonth > 12 || part.ToMonth < 1 || part.ToMonth > 12 {
			return nil, fmt.Errorf("year schedule %q: part %d: month out of range", s.Name, i)
		}
	}
	return register(r, &s)
}

func (*YearSchedule) Kind() Kind { return KindYearSchedule }

func (s *YearSchedule) children() []Entity {
	children := make([]Entity, 0, len(s.Parts))
	for _, part := range s.Parts {
		if part.Schedule != nil {
			children = append(children, part.Schedule)
		}
	}
	return children
}

// Values returns the 8760 hourly values of the year. Days not covered
// by any part are zero.
func (s *YearSchedule) Values() []float64 {
	values := make([]float64, HoursPerYear)
	for _, part := range s.Parts {
		from := dayOfYear(part.FromMonth, part.FromDay)
		to := dayOfYear(part.ToMonth, part.ToDay)
		for day := from; day <= to && day < DaysPerYear; day++ {
			copy(values[day*HoursPerDay:], part.Schedule.Days[day%DaysPerWeek].Values)
		}
	}
	return values
}

// Equal reports whether s and o produce the same hourly values.
// Metadata is not compared.
func (s *YearSchedule) Equal(o *YearSchedule) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Type != o.Type {
		return false
	}
	if slices.EqualFunc(s.Parts, o.Parts, YearSchedulePart.equal) {
		return true
	}
	return slices.Equal(s.Values(), o.Values())
}

func (s *YearSchedule) equalEntity(other Entity) bool {
	o, ok := other.(*YearSchedule)
	return ok && s.Equal(o)
}

// Combine returns the hour-by-hour weighted mean of s and o, equally
// weighted unless weights are given, developed back into day and week
// schedules.
func (s *YearSchedule) Combine(r *Registry, o *YearSchedule, weights []float64) (*YearSchedule, error) {
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
	meta := combineMeta(KindYearSchedule, &s.Meta, &o.Meta, w)
	return developYear(r, meta, strMean(s.Type, o.Type), seriesMean(s.Values(), o.Values(), w))
}

func (s *YearSchedule) combineEntity(r *Registry, other Entity, weights []float64) (Entity, error) {
	return s.Combine(r, other.(*YearSchedule), weights)
}

// YearScheduleFromValues builds a year schedule from hourly values.
// values may hold one day (24), one week starting Monday (168), or a
// full year (8760); shorter periods repeat over the year.
func YearScheduleFromValues(r *Registry, meta Meta, scheduleType string, values []float64) (*YearSchedule, error) {
	switch len(values) {
	case HoursPerDay, HoursPerWeek:
		year := make([]float64, HoursPerYear)
		for i := range year {
			year[i] = values[i%len(values)]
		}
		values = year
	case HoursPerYear:
	default:
		return nil, fmt.Errorf("schedule %q: want %d, %d, or %d values, got %d",
			meta.Name, HoursPerDay, HoursPerWeek, HoursPerYear, len(values))
	}
	return developYear(r, meta, scheduleType, values)
}

// developYear decomposes 8760 hourly values into unique day schedules,
// unique week schedules, and contiguous date-range parts. The partial
// 53rd week reuses its last day for the missing weekdays.
func developYear(r *Registry, meta Meta, scheduleType string, values []float64) (*YearSchedule, error) {
	if existing, ok := r.Lookup(KindYearSchedule, meta.Name); ok {
		return existing.(*YearSchedule), nil
	}

	days := make([]*DaySchedule, DaysPerYear)
	dayByProfile := make(map[string]*DaySchedule)
	for d := range DaysPerYear {
		profile := values[d*HoursPerDay : (d+1)*HoursPerDay]
		key := profileKey(profile)
		day, ok := dayByProfile[key]
		if !ok {
			var err error
			day, err = NewDaySchedule(r, DaySchedule{
				Meta: Meta{
					Name:       fmt.Sprintf("%s_Day_%d", meta.Name, len(dayByProfile)),
					Category:   meta.Category,
					DataSource: meta.DataSource,
				},
				Type:   scheduleType,
				Values: slices.Clone(profile),
			})
			if err != nil {
				return nil, err
			}
			dayByProfile[key] = day
		}
		days[d] = day
	}

	weekCount := (DaysPerYear + DaysPerWeek - 1) / DaysPerWeek
	weeks := make([]*WeekSchedule, weekCount)
	weekByDays := make(map[[DaysPerWeek]*DaySchedule]*WeekSchedule)
	for w := range weekCount {
		var weekDays [DaysPerWeek]*DaySchedule
		for i := range DaysPerWeek {
			weekDays[i] = days[min(w*DaysPerWeek+i, DaysPerYear-1)]
		}
		week, ok := weekByDays[weekDays]
		if !ok {
			var err error
			week, err = NewWeekSchedule(r, WeekSchedule{
				Meta: Meta{
					Name:       fmt.Sprintf("%s_Week_%d", meta.Name, len(weekByDays)),
					Category:   meta.Category,
					DataSource: meta.DataSource,
				},
				Type: scheduleType,
				Days: weekDays,
			})
			if err != nil {
				return nil, err
			}
			weekByDays[weekDays] = week
		}
		weeks[w] = week
	}

	var parts []YearSchedulePart
	start := 0
	for w := 1; w <= weekCount; w++ {
		if w < weekCount && weeks[w] == weeks[start] {
			continue
		}
		fromMonth, fromDay := monthDay(start * DaysPerWeek)
		toMonth, toDay := monthDay(min(w*DaysPerWeek, DaysPerYear) - 1)
		parts = append(parts, YearSchedulePart{
			FromDay:   fromDay,
			FromMonth: fromMonth,
			ToDay:     toDay,
			ToMonth:   toMonth,
			Schedule:  weeks[start],
		})
		start = w
	}

	return NewYearSchedule(r, YearSchedule{Meta: meta, Type: scheduleType, Parts: parts})
}

func profileKey(profile []float64) string {
	var b strings.Builder
	for i, v := range profile {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return b.String()
}

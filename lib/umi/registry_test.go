// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestRegisterReturnsExisting(t *testing.T) {
	r := NewRegistry()

	first, err := NewOpaqueMaterial(r, DefaultOpaqueMaterial("Brick"))
	if err != nil {
		t.Fatalf("NewOpaqueMaterial: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("registered material has no ID")
	}

	different := DefaultOpaqueMaterial("Brick")
	different.Density = 1
	second, err := NewOpaqueMaterial(r, different)
	if err != nil {
		t.Fatalf("NewOpaqueMaterial (second): %v", err)
	}
	if second != first {
		t.Errorf("second registration returned a new entity (ID %d), want the first (ID %d)", second.ID, first.ID)
	}
	if second.Density != first.Density {
		t.Errorf("Density = %v, want the registered %v", second.Density, first.Density)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestRegisterFillsDefaults(t *testing.T) {
	r := NewRegistry()
	m, err := NewOpaqueMaterial(r, OpaqueMaterial{Meta: Meta{Name: "Bare"}})
	if err != nil {
		t.Fatalf("NewOpaqueMaterial: %v", err)
	}
	if m.Category != DefaultCategory {
		t.Errorf("Category = %q, want %q", m.Category, DefaultCategory)
	}
}

func TestRegisterEmptyName(t *testing.T) {
	r := NewRegistry()
	_, err := NewOpaqueMaterial(r, OpaqueMaterial{})
	if !errors.Is(err, ErrEmptyName) {
		t.Fatalf("error = %v, want ErrEmptyName", err)
	}
}

func TestStrictNames(t *testing.T) {
	r := NewRegistry(WithStrictNames())

	if _, err := NewOpaqueMaterial(r, DefaultOpaqueMaterial("Brick")); err != nil {
		t.Fatalf("NewOpaqueMaterial: %v", err)
	}
	if _, err := NewOpaqueMaterial(r, DefaultOpaqueMaterial("Brick")); err != nil {
		t.Errorf("re-registering an equal value: %v", err)
	}

	different := DefaultOpaqueMaterial("Brick")
	different.Conductivity = 0.5
	_, err := NewOpaqueMaterial(r, different)
	var collision *NameCollisionError
	if !errors.As(err, &collision) {
		t.Fatalf("error = %v, want NameCollisionError", err)
	}
	if collision.Kind != KindOpaqueMaterial || collision.Name != "Brick" {
		t.Errorf("collision = %+v, want OpaqueMaterial Brick", collision)
	}
}

func TestSameNameDifferentKinds(t *testing.T) {
	r := NewRegistry()
	opaque, err := NewOpaqueMaterial(r, DefaultOpaqueMaterial("Shared"))
	if err != nil {
		t.Fatalf("NewOpaqueMaterial: %v", err)
	}
	glazing, err := NewGlazingMaterial(r, DefaultGlazingMaterial("Shared"))
	if err != nil {
		t.Fatalf("NewGlazingMaterial: %v", err)
	}
	if opaque.ID == glazing.ID {
		t.Errorf("entities of different kinds share ID %d", opaque.ID)
	}
	if r.Len() != 2 {
		t.Errorf("Len = %d, want 2", r.Len())
	}
}

func TestClearKeepsIDSequence(t *testing.T) {
	r := NewRegistry()
	before, err := NewOpaqueMaterial(r, DefaultOpaqueMaterial("Brick"))
	if err != nil {
		t.Fatalf("NewOpaqueMaterial: %v", err)
	}

	r.Clear()
	if r.Len() != 0 {
		t.Fatalf("Len after Clear = %d, want 0", r.Len())
	}
	if _, ok := r.Lookup(KindOpaqueMaterial, "Brick"); ok {
		t.Error("Lookup found an entity after Clear")
	}

	after, err := NewOpaqueMaterial(r, DefaultOpaqueMaterial("Brick"))
	if err != nil {
		t.Fatalf("NewOpaqueMaterial after Clear: %v", err)
	}
	if after == before {
		t.Error("registration after Clear returned the cleared entity")
	}
	if after.ID <= before.ID {
		t.Errorf("ID after Clear = %d, want greater than %d", after.ID, before.ID)
	}
}

func TestSharedIDSequence(t *testing.T) {
	ids := NewIDSequence()
	a := NewRegistry(WithIDSequence(ids))
	b := NewRegistry(WithIDSequence(ids))

	ma, err := NewOpaqueMaterial(a, DefaultOpaqueMaterial("Brick"))
	if err != nil {
		t.Fatalf("NewOpaqueMaterial: %v", err)
	}
	mb, err := NewOpaqueMaterial(b, DefaultOpaqueMaterial("Brick"))
	if err != nil {
		t.Fatalf("NewOpaqueMaterial: %v", err)
	}
	if ma.ID == mb.ID {
		t.Errorf("registries sharing a sequence both assigned ID %d", ma.ID)
	}
}

func TestLookupAndByID(t *testing.T) {
	r := NewRegistry()
	m, err := NewOpaqueMaterial(r, DefaultOpaqueMaterial("Brick"))
	if err != nil {
		t.Fatalf("NewOpaqueMaterial: %v", err)
	}
	if got, ok := r.Lookup(KindOpaqueMaterial, "Brick"); !ok || got != Entity(m) {
		t.Errorf("Lookup = %v, %v, want the material", got, ok)
	}
	if got, ok := r.ByID(m.ID); !ok || got != Entity(m) {
		t.Errorf("ByID = %v, %v, want the material", got, ok)
	}
	if _, ok := r.Lookup(KindGlazingMaterial, "Brick"); ok {
		t.Error("Lookup matched across kinds")
	}
}

func TestRandomSchedule(t *testing.T) {
	r := NewRegistry()
	rng := rand.New(rand.NewPCG(1, 2))
	if got := r.RandomSchedule(rng); got != nil {
		t.Errorf("RandomSchedule on empty registry = %q, want nil", got.Name)
	}

	values := make([]float64, HoursPerDay)
	schedule, err := YearScheduleFromValues(r, Meta{Name: "Flat"}, "Fraction", values)
	if err != nil {
		t.Fatalf("YearScheduleFromValues: %v", err)
	}
	if got := r.RandomSchedule(rng); got != schedule {
		t.Errorf("RandomSchedule = %v, want the only schedule", got)
	}
}

func TestParseZoneWeight(t *testing.T) {
	tests := []struct {
		name    string
		want    ZoneWeight
		wantErr bool
	}{
		{"", ZoneWeightVolume, false},
		{"volume", ZoneWeightVolume, false},
		{"area", ZoneWeightArea, false},
		{"mass", "", true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ParseZoneWeight(test.name)
			if (err != nil) != test.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, test.wantErr)
			}
			if got != test.want {
				t.Errorf("ParseZoneWeight(%q) = %q, want %q", test.name, got, test.want)
			}
		})
	}
}

func TestZoneHandleResolution(t *testing.T) {
	r := NewRegistry()
	if r.Zone(0) != nil {
		t.Error("zero handle resolved to a zone")
	}
	z, err := NewZone(r, DefaultZone("Office"), ZoneGeometry{})
	if err != nil {
		t.Fatalf("NewZone: %v", err)
	}
	if z.Handle() == 0 {
		t.Fatal("registered zone has the zero handle")
	}
	if r.Zone(z.Handle()) != z {
		t.Error("handle does not resolve to the zone")
	}
	r.Clear()
	if r.Zone(z.Handle()) != nil {
		t.Error("handle resolved after Clear")
	}
}

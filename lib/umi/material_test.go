// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

import (
	"errors"
	"strings"
	"testing"

	"github.com/bureau-foundation/archetype/lib/testutil"
)

func newOpaque(t *testing.T, r *Registry, name string, conductivity, density float64) *OpaqueMaterial {
	t.Helper()
	m := DefaultOpaqueMaterial(name)
	m.Conductivity = conductivity
	m.Density = density
	registered, err := NewOpaqueMaterial(r, m)
	if err != nil {
		t.Fatalf("NewOpaqueMaterial(%q): %v", name, err)
	}
	return registered
}

func TestOpaqueMaterialCombineDensityWeighted(t *testing.T) {
	r := NewRegistry()
	light := newOpaque(t, r, "Light", 1, 100)
	heavy := newOpaque(t, r, "Heavy", 3, 300)

	combined, err := light.Combine(r, heavy, nil)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	testutil.RequireApprox(t, "Conductivity", combined.Conductivity, 2.5)
	testutil.RequireApprox(t, "Density", combined.Density, 250)

	if !strings.HasPrefix(combined.Name, "Combined_OpaqueMaterial_") {
		t.Errorf("Name = %q, want Combined_OpaqueMaterial_ prefix", combined.Name)
	}
	if !strings.Contains(combined.Comments, "\n- Heavy") || !strings.Contains(combined.Comments, "\n- Light") {
		t.Errorf("Comments = %q, want both predecessors listed", combined.Comments)
	}
	names := combined.PredecessorNames()
	if len(names) != 2 || names[0] != "Light" || names[1] != "Heavy" {
		t.Errorf("PredecessorNames = %v, want [Light Heavy]", names)
	}
	if _, ok := r.Lookup(KindOpaqueMaterial, combined.Name); !ok {
		t.Error("combined material is not registered")
	}
}

func TestCombineExplicitWeights(t *testing.T) {
	r := NewRegistry()
	a := newOpaque(t, r, "A", 1, 100)
	b := newOpaque(t, r, "B", 3, 300)

	combined, err := a.Combine(r, b, []float64{1, 1})
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	testutil.RequireApprox(t, "Conductivity", combined.Conductivity, 2)

	zero, err := a.Combine(r, b, []float64{0, 0})
	if err != nil {
		t.Fatalf("Combine with zero weights: %v", err)
	}
	testutil.RequireApprox(t, "Conductivity (zero weights)", zero.Conductivity, 2)

	for _, weights := range [][]float64{{1}, {1, 2, 3}, {-1, 1}} {
		if _, err := a.Combine(r, b, weights); err == nil {
			t.Errorf("Combine with weights %v succeeded, want error", weights)
		}
	}
}

func TestCombineIsCached(t *testing.T) {
	r := NewRegistry()
	a := newOpaque(t, r, "A", 1, 100)
	b := newOpaque(t, r, "B", 3, 300)

	first, err := a.Combine(r, b, nil)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	second, err := a.Combine(r, b, nil)
	if err != nil {
		t.Fatalf("Combine (again): %v", err)
	}
	if first != second {
		t.Error("combining the same pair twice produced two entities")
	}

	reversed, err := b.Combine(r, a, nil)
	if err != nil {
		t.Fatalf("Combine (reversed): %v", err)
	}
	if reversed != first {
		t.Errorf("reversed combination = %q, want the cached %q", reversed.Name, first.Name)
	}
}

func TestCombineEqualReturnsSelf(t *testing.T) {
	r := NewRegistry()
	a := newOpaque(t, r, "A", 1, 100)
	twin := newOpaque(t, r, "Twin", 1, 100)

	got, err := a.Combine(r, twin, nil)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if got != a {
		t.Errorf("combining value-equal materials returned %q, want the receiver", got.Name)
	}

	got, err = a.Combine(r, a, nil)
	if err != nil {
		t.Fatalf("Combine with self: %v", err)
	}
	if got != a {
		t.Error("combining with self did not return self")
	}
}

func TestCombineNil(t *testing.T) {
	r := NewRegistry()
	a := newOpaque(t, r, "A", 1, 100)

	got, err := a.Combine(r, nil, nil)
	if err != nil || got != a {
		t.Errorf("a.Combine(nil) = %v, %v, want a", got, err)
	}
	var none *OpaqueMaterial
	got, err = none.Combine(r, a, nil)
	if err != nil || got != a {
		t.Errorf("nil.Combine(a) = %v, %v, want a", got, err)
	}
}

func TestCombineTypeMismatch(t *testing.T) {
	r := NewRegistry()
	opaque := newOpaque(t, r, "A", 1, 100)
	glazing, err := NewGlazingMaterial(r, DefaultGlazingMaterial("Pane"))
	if err != nil {
		t.Fatalf("NewGlazingMaterial: %v", err)
	}

	_, err = Combine(r, opaque, glazing, nil)
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("error = %v, want TypeMismatchError", err)
	}
	if mismatch.Left != KindOpaqueMaterial || mismatch.Right != KindGlazingMaterial {
		t.Errorf("mismatch = %+v", mismatch)
	}
}

func TestCombineMetadataUnion(t *testing.T) {
	r := NewRegistry()
	a := DefaultOpaqueMaterial("A")
	a.Category, a.DataSource = "Masonry", "Office"
	b := DefaultOpaqueMaterial("B")
	b.Category, b.DataSource = "Insulation, Masonry", "School"
	b.Density = 30

	ra, err := NewOpaqueMaterial(r, a)
	if err != nil {
		t.Fatalf("NewOpaqueMaterial: %v", err)
	}
	rb, err := NewOpaqueMaterial(r, b)
	if err != nil {
		t.Fatalf("NewOpaqueMaterial: %v", err)
	}
	combined, err := ra.Combine(r, rb, nil)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if combined.Category != "Insulation, Masonry" {
		t.Errorf("Category = %q, want %q", combined.Category, "Insulation, Masonry")
	}
	if combined.DataSource != "Office, School" {
		t.Errorf("DataSource = %q, want %q", combined.DataSource, "Office, School")
	}
}

func TestGasMaterialType(t *testing.T) {
	r := NewRegistry()
	gas, err := NewGasMaterial(r, GasMaterial{Meta: Meta{Name: "Fill"}, Type: "argon"})
	if err != nil {
		t.Fatalf("NewGasMaterial: %v", err)
	}
	if gas.Type != GasArgon {
		t.Errorf("Type = %q, want %q", gas.Type, GasArgon)
	}
	air, err := NewGasMaterial(r, GasMaterial{Meta: Meta{Name: "Default Fill"}})
	if err != nil {
		t.Fatalf("NewGasMaterial: %v", err)
	}
	if air.Type != GasAir {
		t.Errorf("Type = %q, want %q", air.Type, GasAir)
	}
	if gas.MaterialDensity() <= air.MaterialDensity() {
		t.Errorf("argon density %v not above air density %v", gas.MaterialDensity(), air.MaterialDensity())
	}

	combined, err := air.Combine(r, gas, nil)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if combined.Type != GasArgon {
		t.Errorf("combined Type = %q, want the heavier %q", combined.Type, GasArgon)
	}
}

func TestGlazingMaterialCombine(t *testing.T) {
	r := NewRegistry()
	a := DefaultGlazingMaterial("Clear")
	a.Conductivity, a.Life, a.Type = 1.0, 10, "Uncoated"
	b := DefaultGlazingMaterial("Tinted")
	b.Density, b.Conductivity, b.Life, b.Type = 1500, 0.5, 25, "Coated"
	b.DirtFactor = 0.8

	clearPane, err := NewGlazingMaterial(r, a)
	if err != nil {
		t.Fatalf("NewGlazingMaterial: %v", err)
	}
	tinted, err := NewGlazingMaterial(r, b)
	if err != nil {
		t.Fatalf("NewGlazingMaterial: %v", err)
	}

	combined, err := clearPane.Combine(r, tinted, nil)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	// Density weights 2500 and 1500.
	testutil.RequireApprox(t, "Conductivity", combined.Conductivity, (2500*1.0+1500*0.5)/4000)
	testutil.RequireApprox(t, "Density", combined.Density, (2500*2500+1500*1500)/4000.0)
	testutil.RequireApprox(t, "DirtFactor", combined.DirtFactor, (2500*1.0+1500*0.8)/4000)
	testutil.RequireApprox(t, "Life", combined.Life, 25)
	if combined.Type != "Uncoated" {
		t.Errorf("Type = %q, want the receiver's Uncoated", combined.Type)
	}

	untyped := DefaultGlazingMaterial("Untyped")
	untyped.Conductivity = 0.8
	blank, err := NewGlazingMaterial(r, untyped)
	if err != nil {
		t.Fatalf("NewGlazingMaterial: %v", err)
	}
	filled, err := blank.Combine(r, tinted, nil)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if filled.Type != "Coated" {
		t.Errorf("Type = %q, want the other side's Coated when the receiver has none", filled.Type)
	}
	testutil.RequireApprox(t, "Life", filled.Life, 25)

	twin := a
	twin.Name = "Clear Copy"
	copyPane, err := NewGlazingMaterial(r, twin)
	if err != nil {
		t.Fatalf("NewGlazingMaterial: %v", err)
	}
	if got, err := clearPane.Combine(r, copyPane, nil); err != nil || got != clearPane {
		t.Errorf("combining value-equal glazing = %v, %v, want the receiver", got, err)
	}
}

func TestGasMaterialCombineKeepsHeavierGas(t *testing.T) {
	tests := []struct {
		name    string
		self    string
		other   string
		weights []float64
		want    string
	}{
		{"density picks argon over air", GasAir, GasArgon, nil, GasArgon},
		{"density picks argon as receiver", GasArgon, GasAir, nil, GasArgon},
		{"density picks xenon over krypton", GasKrypton, GasXenon, nil, GasXenon},
		{"explicit weights favor air", GasAir, GasArgon, []float64{10, 1}, GasAir},
		{"tied weights keep the receiver", GasKrypton, GasArgon, []float64{1, 1}, GasKrypton},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			self := newGas(t, r, "Self", tt.self)
			other := newGas(t, r, "Other", tt.other)
			combined, err := self.Combine(r, other, tt.weights)
			if err != nil {
				t.Fatalf("Combine: %v", err)
			}
			if combined.Type != tt.want {
				t.Errorf("Type = %q, want %q", combined.Type, tt.want)
			}
		})
	}
}

func TestGasMaterialCombineEqual(t *testing.T) {
	r := NewRegistry()
	air := newGas(t, r, "Air", GasAir)
	gap := newGas(t, r, "Gap", "air")
	if got, err := air.Combine(r, gap, nil); err != nil || got != air {
		t.Errorf("combining value-equal gases = %v, %v, want the receiver", got, err)
	}
	if n := len(r.All(KindGasMaterial)); n != 2 {
		t.Errorf("gas materials = %d, want no combined entity", n)
	}
}

func TestCombineWeightsDistinguishResults(t *testing.T) {
	r := NewRegistry()
	a := newOpaque(t, r, "A", 1, 100)
	b := newOpaque(t, r, "B", 3, 100)

	mostlyB, err := a.Combine(r, b, []float64{1, 3})
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	mostlyA, err := a.Combine(r, b, []float64{3, 1})
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if mostlyA == mostlyB || mostlyA.Name == mostlyB.Name {
		t.Fatalf("combinations under different weights share %q", mostlyA.Name)
	}
	testutil.RequireApprox(t, "Conductivity (1:3)", mostlyB.Conductivity, 2.5)
	testutil.RequireApprox(t, "Conductivity (3:1)", mostlyA.Conductivity, 1.5)

	// Swapping operands together with their weights is the same
	// combination, as is scaling the weights.
	swapped, err := b.Combine(r, a, []float64{3, 1})
	if err != nil {
		t.Fatalf("Combine (swapped): %v", err)
	}
	if swapped != mostlyB {
		t.Errorf("swapped combination = %q, want %q", swapped.Name, mostlyB.Name)
	}
	scaled, err := a.Combine(r, b, []float64{2, 6})
	if err != nil {
		t.Fatalf("Combine (scaled): %v", err)
	}
	if scaled != mostlyB {
		t.Errorf("scaled combination = %q, want %q", scaled.Name, mostlyB.Name)
	}
}

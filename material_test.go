package xrfthick

import (
	"errors"
	"math"
	"testing"
)

func TestMassFractions_SumToOne(t *testing.T) {
	for name, c := range map[string]Composition{"steel": steel, "ZrTiV": zrtiv} {
		w, err := MassFractions(DefaultTable(), c)
		if err != nil {
			t.Fatalf("%s: MassFractions failed: %v", name, err)
		}
		var sum float64
		for _, v := range w {
			if v <= 0 {
				t.Errorf("%s: non-positive mass fraction %g", name, v)
			}
			sum += v
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("%s: mass fractions sum to %.12f, expected 1", name, sum)
		}
		t.Logf("✓ %s mass fractions %v", name, w)
	}
}

func TestMassFractions_UseAtomicWeights(t *testing.T) {
	w, err := MassFractions(DefaultTable(), zrtiv)
	if err != nil {
		t.Fatalf("MassFractions failed: %v", err)
	}

	// 20·91.224 : 35·47.867 : 45·50.942
	want := []float64{0.31499, 0.28924, 0.39577}
	for i := range want {
		if math.Abs(w[i]-want[i]) > 1e-4 {
			t.Errorf("w[%d] = %.5f, expected %.5f", i, w[i], want[i])
		}
	}
}

func TestMassFractions_ScaleInvariant(t *testing.T) {
	scaled := Composition{Elements: steel.Elements, MolarRatios: []float64{0.7, 0.2, 0.1}}

	a, _ := MassFractions(DefaultTable(), steel)
	b, err := MassFractions(DefaultTable(), scaled)
	if err != nil {
		t.Fatalf("MassFractions failed: %v", err)
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-12 {
			t.Errorf("w[%d]: %g vs %g after rescaling ratios", i, a[i], b[i])
		}
	}
}

func TestCharacterize_SingleElement(t *testing.T) {
	table := DefaultTable()
	fe := Composition{Elements: []int{26}, MolarRatios: []float64{1}}

	m, err := Characterize(table, fe, 10, 6.4)
	if err != nil {
		t.Fatalf("Characterize failed: %v", err)
	}

	if w := m.MassFractions(); len(w) != 1 || w[0] != 1 {
		t.Errorf("Mass fractions %v, expected [1]", w)
	}
	rho, _ := table.ElementDensity(26)
	if m.Density() != rho {
		t.Errorf("Density %g, expected element density %g", m.Density(), rho)
	}
	for _, e := range []float64{10, 6.4} {
		want, _ := table.CrossSection(26, e)
		got, ok := m.CrossSection(e)
		if !ok || math.Abs(got-want) > 1e-12*want {
			t.Errorf("CrossSection(%g) = %g, %v; expected %g", e, got, ok, want)
		}
	}

	t.Logf("✓ Pure Fe reproduces table values")
}

func TestCharacterize_OrderIndependent(t *testing.T) {
	reordered := Composition{Elements: []int{28, 26, 24}, MolarRatios: []float64{10, 70, 20}}

	a, err := Characterize(DefaultTable(), steel, 10, 6.4)
	if err != nil {
		t.Fatalf("Characterize failed: %v", err)
	}
	b, err := Characterize(DefaultTable(), reordered, 10, 6.4)
	if err != nil {
		t.Fatalf("Characterize failed: %v", err)
	}

	for _, e := range []float64{10, 6.4} {
		x, _ := a.CrossSection(e)
		y, _ := b.CrossSection(e)
		if math.Abs(x-y) > 1e-12*x {
			t.Errorf("σ(%g keV) depends on element order: %.15g vs %.15g", e, x, y)
		}
	}
	if math.Abs(a.Density()-b.Density()) > 1e-12*a.Density() {
		t.Errorf("Density depends on element order: %g vs %g", a.Density(), b.Density())
	}
}

func TestCharacterize_DensityPositive(t *testing.T) {
	for name, c := range map[string]Composition{"steel": steel, "ZrTiV": zrtiv} {
		m, err := Characterize(DefaultTable(), c, 10)
		if err != nil {
			t.Fatalf("%s: Characterize failed: %v", name, err)
		}
		if !(m.Density() > 0) {
			t.Errorf("%s: density %g", name, m.Density())
		}
	}

	m, _ := Characterize(DefaultTable(), zrtiv, 10)
	if math.Abs(m.Density()-5.6397) > 1e-3 {
		t.Errorf("ZrTiV molar-weighted density %.4f, expected 5.6397", m.Density())
	}
}

func TestCharacterize_DeduplicatesEnergies(t *testing.T) {
	m, err := Characterize(DefaultTable(), steel, 10, 6.4, 10)
	if err != nil {
		t.Fatalf("Characterize failed: %v", err)
	}
	if es := m.Energies(); len(es) != 2 || es[0] != 6.4 || es[1] != 10 {
		t.Errorf("Energies %v, expected [6.4 10]", es)
	}
	if _, ok := m.CrossSection(8); ok {
		t.Error("Expected no cross-section at an energy that was not requested")
	}
}

func TestCharacterize_ReturnsCopies(t *testing.T) {
	c := Composition{Elements: []int{26, 24}, MolarRatios: []float64{1, 1}}
	m, err := Characterize(DefaultTable(), c, 10)
	if err != nil {
		t.Fatalf("Characterize failed: %v", err)
	}

	c.MolarRatios[0] = 100
	got := m.Composition()
	got.Elements[0] = 99
	m.MassFractions()[0] = -1

	if m.Composition().MolarRatios[0] != 1 || m.Composition().Elements[0] != 26 {
		t.Error("Material composition aliased caller's slices")
	}
	if m.MassFractions()[0] < 0 {
		t.Error("MassFractions returned internal slice")
	}
}

func TestCharacterize_Errors(t *testing.T) {
	tests := []struct {
		name   string
		c      Composition
		energy float64
		want   error
	}{
		{"empty", Composition{}, 10, ErrEmptyComposition},
		{"all zero", Composition{Elements: []int{26}, MolarRatios: []float64{0}}, 10, ErrEmptyComposition},
		{"length mismatch", Composition{Elements: []int{26, 24}, MolarRatios: []float64{1}}, 10, ErrMalformedComposition},
		{"negative", Composition{Elements: []int{26}, MolarRatios: []float64{-1}}, 10, ErrMalformedComposition},
		{"duplicate", Composition{Elements: []int{26, 26}, MolarRatios: []float64{1, 1}}, 10, ErrMalformedComposition},
		{"NaN ratio", Composition{Elements: []int{26}, MolarRatios: []float64{math.NaN()}}, 10, ErrMalformedComposition},
		{"unknown element", Composition{Elements: []int{92}, MolarRatios: []float64{1}}, 10, ErrUnsupportedElement},
		{"energy", steel, 500, ErrEnergyOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Characterize(DefaultTable(), tt.c, tt.energy)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseComposition(t *testing.T) {
	table := DefaultTable()

	c, err := ParseComposition(table, "Fe:70, Cr:20;28:10")
	if err != nil {
		t.Fatalf("ParseComposition failed: %v", err)
	}
	want := []int{26, 24, 28}
	for i, z := range want {
		if c.Elements[i] != z {
			t.Errorf("Element %d = %d, expected %d", i, c.Elements[i], z)
		}
	}
	if c.MolarRatios[2] != 10 {
		t.Errorf("Ratio of Ni = %g, expected 10", c.MolarRatios[2])
	}
	if c.String() != "26:70 24:20 28:10" {
		t.Errorf("String() = %q", c.String())
	}

	bad := map[string]error{
		"":          ErrEmptyComposition,
		"Fe70":      ErrMalformedComposition,
		"Fe:x":      ErrMalformedComposition,
		"Fe:1 Fe:2": ErrMalformedComposition,
		"Qq:1":      ErrUnsupportedElement,
	}
	for in, wantErr := range bad {
		if _, err := ParseComposition(table, in); !errors.Is(err, wantErr) {
			t.Errorf("ParseComposition(%q) = %v, expected %v", in, err, wantErr)
		}
	}
}

package xrfthick

import (
	"errors"
	"math"
	"testing"
)

func TestTable_CoversReferenceElements(t *testing.T) {
	table := DefaultTable()

	for _, sym := range []string{"Fe", "Cr", "Ni", "Zr", "Ti", "V"} {
		z, err := table.AtomicNumber(sym)
		if err != nil {
			t.Fatalf("AtomicNumber(%s) failed: %v", sym, err)
		}
		back, err := table.Symbol(z)
		if err != nil || back != sym {
			t.Errorf("Symbol(%d) = %q, %v; expected %q", z, back, err, sym)
		}
	}

	zs := table.Elements()
	for i := 1; i < len(zs); i++ {
		if zs[i] <= zs[i-1] {
			t.Fatalf("Elements() not ascending at %d: %v", i, zs)
		}
	}

	t.Logf("✓ Table covers Z=%d..%d (%s)", zs[0], zs[len(zs)-1], TableVersion)
}

func TestTable_SymbolCaseInsensitive(t *testing.T) {
	z, err := DefaultTable().AtomicNumber(" fe ")
	if err != nil || z != 26 {
		t.Errorf("AtomicNumber(\" fe \") = %d, %v; expected 26", z, err)
	}
}

func TestTable_UnsupportedElement(t *testing.T) {
	table := DefaultTable()

	if _, err := table.CrossSection(0, 10); !errors.Is(err, ErrUnsupportedElement) {
		t.Errorf("Expected ErrUnsupportedElement for Z=0, got %v", err)
	}
	if _, err := table.AtomicWeight(118); !errors.Is(err, ErrUnsupportedElement) {
		t.Errorf("Expected ErrUnsupportedElement for Z=118, got %v", err)
	}
	if _, err := table.AtomicNumber("Xx"); !errors.Is(err, ErrUnsupportedElement) {
		t.Errorf("Expected ErrUnsupportedElement for symbol Xx, got %v", err)
	}
}

func TestTable_EnergyOutOfRange(t *testing.T) {
	table := DefaultTable()

	for _, e := range []float64{0, 0.5, 150, math.NaN()} {
		if _, err := table.CrossSection(26, e); !errors.Is(err, ErrEnergyOutOfRange) {
			t.Errorf("CrossSection(Fe, %g) = %v, expected ErrEnergyOutOfRange", e, err)
		}
	}
}

func TestTable_CrossSectionDecreasesWithEnergy(t *testing.T) {
	table := DefaultTable()

	// Between edges the cross-section falls with energy.
	prev := math.Inf(1)
	for _, e := range []float64{7.2, 8, 10, 15, 20, 40} {
		v, err := table.CrossSection(26, e)
		if err != nil {
			t.Fatalf("CrossSection(Fe, %g) failed: %v", e, err)
		}
		if !(v < prev) {
			t.Errorf("σ(Fe, %g keV) = %g not below %g", e, v, prev)
		}
		prev = v
	}

	t.Logf("✓ σ(Fe) strictly decreasing above the K edge")
}

func TestTable_KEdgeJump(t *testing.T) {
	table := DefaultTable()
	row := elementTable[26-11]
	if row.Z != 26 {
		t.Fatalf("elementTable not indexed by Z-11: row has Z=%d", row.Z)
	}

	below, _ := table.CrossSection(26, row.EdgeK-1e-6)
	above, _ := table.CrossSection(26, row.EdgeK+1e-6)
	if ratio := above / below; math.Abs(ratio-row.JumpK) > 1e-3 {
		t.Errorf("Jump across Fe K edge = %.4f, expected %.4f", ratio, row.JumpK)
	}

	// Fe at the reference energies sits in the usual tens-to-hundreds cm²/g.
	at10, _ := table.CrossSection(26, 10)
	at64, _ := table.CrossSection(26, 6.4)
	if at10 < 100 || at10 > 250 || at64 < 40 || at64 > 120 {
		t.Errorf("σ(Fe) = %.1f cm²/g at 10 keV, %.1f at 6.4 keV; outside plausible range", at10, at64)
	}

	t.Logf("✓ Fe: σ(10 keV)=%.1f, σ(6.4 keV)=%.1f cm²/g", at10, at64)
}

func TestTable_HeavyCoatingMetals(t *testing.T) {
	table := DefaultTable()

	// σ at 10 keV, bracketing tabulated photoabsorption by ±25%.
	tests := []struct {
		symbol string
		lo, hi float64
	}{
		{"Ag", 90, 150},
		{"Sn", 100, 170},
		{"W", 70, 120},
		{"Pt", 85, 140},
		{"Au", 90, 150},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			z, err := table.AtomicNumber(tt.symbol)
			if err != nil {
				t.Fatalf("AtomicNumber(%s) failed: %v", tt.symbol, err)
			}
			v, err := table.CrossSection(z, 10)
			if err != nil {
				t.Fatalf("CrossSection(%s, 10) failed: %v", tt.symbol, err)
			}
			if v < tt.lo || v > tt.hi {
				t.Errorf("σ(%s, 10 keV) = %.1f cm²/g, expected %g..%g", tt.symbol, v, tt.lo, tt.hi)
			}
			t.Logf("✓ %s: σ(10 keV)=%.1f cm²/g", tt.symbol, v)
		})
	}
}

func TestTable_LEdgeJumps(t *testing.T) {
	table := DefaultTable()
	row, ok := table.byZ[74]
	if !ok {
		t.Fatal("W missing from the default table")
	}

	edges := []struct {
		name string
		edge float64
		jump float64
	}{
		{"L1", row.EdgeL1, row.JumpL1},
		{"L2", row.EdgeL2, row.JumpL2},
		{"L3", row.EdgeL3, row.JumpL3},
	}
	for _, e := range edges {
		below, err := table.CrossSection(74, e.edge-1e-6)
		if err != nil {
			t.Fatalf("CrossSection below %s failed: %v", e.name, err)
		}
		above, _ := table.CrossSection(74, e.edge+1e-6)
		if ratio := above / below; math.Abs(ratio-e.jump) > 1e-3 {
			t.Errorf("Jump across W %s edge = %.4f, expected %.4f", e.name, ratio, e.jump)
		}
	}

	if _, err := table.CrossSection(74, row.EdgeM1-0.1); !errors.Is(err, ErrEnergyOutOfRange) {
		t.Errorf("Expected ErrEnergyOutOfRange below the W M edges, got %v", err)
	}
	if _, err := table.CrossSection(74, row.EdgeM1+0.1); err != nil {
		t.Errorf("CrossSection just above the W M edges failed: %v", err)
	}
}

func TestTable_HeavyCoatingThickness(t *testing.T) {
	table := DefaultTable()
	setup := referenceSetup(t)

	sub, err := Characterize(table, steel, setup.Energies()...)
	if err != nil {
		t.Fatalf("Characterize(steel) failed: %v", err)
	}
	gold, err := ParseComposition(table, "Au:1")
	if err != nil {
		t.Fatalf("ParseComposition failed: %v", err)
	}
	coat, err := Characterize(table, gold, setup.Energies()...)
	if err != nil {
		t.Fatalf("Characterize(Au) failed: %v", err)
	}
	model, err := NewIntensityModel(setup, sub, coat)
	if err != nil {
		t.Fatalf("NewIntensityModel failed: %v", err)
	}

	est := NewEstimator(model, DefaultFitConfig())
	AssertThicknessRecovered(t, est, referenceAngles, 0.05*Micrometre, 0, DefaultAssertionConfig())
}

func TestTable_TransitionLookups(t *testing.T) {
	table := DefaultTable()

	jump, err := table.JumpFactor(26, ShellK)
	if err != nil {
		t.Fatalf("JumpFactor failed: %v", err)
	}
	if want := 1 - 1/elementTable[26-11].JumpK; jump != want {
		t.Errorf("JumpFactor(Fe, K) = %g, expected %g", jump, want)
	}

	e, err := table.LineEnergy(26, LineKL3)
	if err != nil || math.Abs(e-6.404) > 0.01 {
		t.Errorf("LineEnergy(Fe, KL3) = %g, %v; expected ≈6.404", e, err)
	}

	if _, err := table.FluorescenceYield(26, Shell("M5")); !errors.Is(err, ErrUnsupportedTransition) {
		t.Errorf("Expected ErrUnsupportedTransition, got %v", err)
	}
	if _, err := table.RadiativeRate(26, Line("LA1")); !errors.Is(err, ErrUnsupportedTransition) {
		t.Errorf("Expected ErrUnsupportedTransition, got %v", err)
	}
}

func TestTable_PhysicalRanges(t *testing.T) {
	table := DefaultTable()

	for _, z := range table.Elements() {
		for _, shell := range []Shell{ShellK, ShellL3} {
			y, _ := table.FluorescenceYield(z, shell)
			j, _ := table.JumpFactor(z, shell)
			if y <= 0 || y >= 1 || j <= 0 || j >= 1 {
				t.Errorf("Z=%d %s: yield %g, jump factor %g outside (0, 1)", z, shell, y, j)
			}
		}
		var sum float64
		for _, line := range []Line{LineKL2, LineKL3, LineKM3} {
			r, _ := table.RadiativeRate(z, line)
			sum += r
		}
		if sum <= 0 || sum > 1 {
			t.Errorf("Z=%d: K radiative rates sum to %g", z, sum)
		}
	}
}

func TestNewTable_RejectsBadRows(t *testing.T) {
	fe := elementTable[26-11]

	if _, err := NewTable([]ElementData{fe, fe}); err == nil {
		t.Error("Expected duplicate row to be rejected")
	}

	bad := fe
	bad.EdgeL3 = bad.EdgeK + 1
	if _, err := NewTable([]ElementData{bad}); err == nil {
		t.Error("Expected L3 edge above K edge to be rejected")
	}

	bad = fe
	bad.JumpK = 1
	if _, err := NewTable([]ElementData{bad}); err == nil {
		t.Error("Expected jump ratio of 1 to be rejected")
	}

	w := DefaultTable().byZ[74]
	bad = w
	bad.EdgeL2, bad.EdgeL1 = bad.EdgeL1, bad.EdgeL2
	if _, err := NewTable([]ElementData{bad}); err == nil {
		t.Error("Expected L edges out of order to be rejected")
	}

	bad = w
	bad.JumpL1 = 0
	if _, err := NewTable([]ElementData{bad}); err == nil {
		t.Error("Expected missing L1 jump to be rejected")
	}

	bad = w
	bad.EdgeM1 = bad.EdgeL3
	if _, err := NewTable([]ElementData{bad}); err == nil {
		t.Error("Expected M1 edge at L3 to be rejected")
	}
}

func TestParseLine_Aliases(t *testing.T) {
	tests := map[string]Line{
		"KL3": LineKL3, "Ka1": LineKL3, "Ka": LineKL3,
		"KL2": LineKL2, "Ka2": LineKL2,
		"KM3": LineKM3, "Kb1": LineKM3,
	}
	for in, want := range tests {
		got, err := ParseLine(in)
		if err != nil || got != want {
			t.Errorf("ParseLine(%q) = %q, %v; expected %q", in, got, err, want)
		}
	}
	if _, err := ParseLine("La1"); !errors.Is(err, ErrUnsupportedTransition) {
		t.Errorf("Expected ErrUnsupportedTransition for La1, got %v", err)
	}
}

package xrfthick

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Composition is an elemental stoichiometry: atomic numbers paired with molar
// ratios. Ratios need not sum to one.
type Composition struct {
	Elements    []int
	MolarRatios []float64
}

// Validate checks the structural invariants of the composition.
func (c Composition) Validate() error {
	if len(c.Elements) == 0 {
		return fmt.Errorf("no elements: %w", ErrEmptyComposition)
	}
	if len(c.Elements) != len(c.MolarRatios) {
		return fmt.Errorf("%d elements but %d ratios: %w",
			len(c.Elements), len(c.MolarRatios), ErrMalformedComposition)
	}

	seen := make(map[int]bool, len(c.Elements))
	var total float64
	for i, z := range c.Elements {
		if seen[z] {
			return fmt.Errorf("element Z=%d listed twice: %w", z, ErrMalformedComposition)
		}
		seen[z] = true

		r := c.MolarRatios[i]
		if r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			return fmt.Errorf("Z=%d has ratio %g: %w", z, r, ErrMalformedComposition)
		}
		total += r
	}
	if total == 0 {
		return fmt.Errorf("all molar ratios are zero: %w", ErrEmptyComposition)
	}
	return nil
}

// String renders the composition as "Z:ratio" pairs.
func (c Composition) String() string {
	parts := make([]string, len(c.Elements))
	for i, z := range c.Elements {
		r := 0.0
		if i < len(c.MolarRatios) {
			r = c.MolarRatios[i]
		}
		parts[i] = fmt.Sprintf("%d:%g", z, r)
	}
	return strings.Join(parts, " ")
}

// ParseComposition reads "Fe:70 Cr:20 Ni:10" (spaces, commas or semicolons
// between pairs). Elements may be given by symbol or atomic number.
func ParseComposition(table *Table, s string) (Composition, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == ';' || r == '\t'
	})

	var c Composition
	for _, f := range fields {
		name, ratio, ok := strings.Cut(f, ":")
		if !ok {
			return Composition{}, fmt.Errorf("pair %q lacks ':': %w", f, ErrMalformedComposition)
		}

		z, err := strconv.Atoi(name)
		if err != nil {
			if z, err = table.AtomicNumber(name); err != nil {
				return Composition{}, err
			}
		}

		r, err := strconv.ParseFloat(ratio, 64)
		if err != nil {
			return Composition{}, fmt.Errorf("ratio %q: %w", ratio, ErrMalformedComposition)
		}
		c.Elements = append(c.Elements, z)
		c.MolarRatios = append(c.MolarRatios, r)
	}

	if err := c.Validate(); err != nil {
		return Composition{}, err
	}
	return c, nil
}

// MassFractions converts molar ratios to mass fractions:
//
//	w_i = r_i·A_i / Σ_j r_j·A_j
func MassFractions(consts Constants, c Composition) ([]float64, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	masses := make([]float64, len(c.Elements))
	var total float64
	for i, z := range c.Elements {
		a, err := consts.AtomicWeight(z)
		if err != nil {
			return nil, err
		}
		masses[i] = c.MolarRatios[i] * a
		total += masses[i]
	}
	if total == 0 {
		return nil, fmt.Errorf("zero total mass: %w", ErrEmptyComposition)
	}

	for i := range masses {
		masses[i] /= total
	}
	return masses, nil
}

// CompoundCrossSection is the mass-fraction weighted mean of the elemental
// photoelectric cross-sections at energy (cm²/g).
func CompoundCrossSection(consts Constants, elements []int, massFractions []float64, energy float64) (float64, error) {
	if len(elements) == 0 {
		return 0, fmt.Errorf("no elements: %w", ErrEmptyComposition)
	}
	if len(elements) != len(massFractions) {
		return 0, fmt.Errorf("%d elements but %d fractions: %w",
			len(elements), len(massFractions), ErrMalformedComposition)
	}

	cs := make([]float64, len(elements))
	for i, z := range elements {
		v, err := consts.CrossSection(z, energy)
		if err != nil {
			return 0, err
		}
		cs[i] = v
	}
	return stat.Mean(cs, massFractions), nil
}

// CompoundDensity is the molar-ratio weighted mean of the element densities.
//
// NOTE: this is an approximation that ignores packing and volume effects. A
// true mixture density weights by volume fraction, not by moles.
func CompoundDensity(consts Constants, c Composition) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	rho := make([]float64, len(c.Elements))
	for i, z := range c.Elements {
		v, err := consts.ElementDensity(z)
		if err != nil {
			return 0, err
		}
		rho[i] = v
	}
	return stat.Mean(rho, c.MolarRatios), nil
}

// Material is a characterized composition. It is immutable once returned by
// Characterize and may be shared between goroutines.
type Material struct {
	composition   Composition
	massFractions []float64
	crossSections map[float64]float64
	density       float64
}

// Characterize derives mass fractions, the compound cross-section at each
// requested energy and the compound density, in that order.
func Characterize(consts Constants, c Composition, energies ...float64) (*Material, error) {
	fractions, err := MassFractions(consts, c)
	if err != nil {
		return nil, err
	}

	m := &Material{
		composition: Composition{
			Elements:    append([]int(nil), c.Elements...),
			MolarRatios: append([]float64(nil), c.MolarRatios...),
		},
		massFractions: fractions,
		crossSections: make(map[float64]float64, len(energies)),
	}

	for _, e := range energies {
		if _, done := m.crossSections[e]; done {
			continue
		}
		cs, err := CompoundCrossSection(consts, m.composition.Elements, fractions, e)
		if err != nil {
			return nil, fmt.Errorf("cross-section at %g keV: %w", e, err)
		}
		m.crossSections[e] = cs
	}

	if m.density, err = CompoundDensity(consts, m.composition); err != nil {
		return nil, err
	}
	return m, nil
}

// Composition returns a copy of the source composition.
func (m *Material) Composition() Composition {
	return Composition{
		Elements:    append([]int(nil), m.composition.Elements...),
		MolarRatios: append([]float64(nil), m.composition.MolarRatios...),
	}
}

// MassFractions returns a copy of the mass fractions, in element order.
func (m *Material) MassFractions() []float64 {
	return append([]float64(nil), m.massFractions...)
}

// CrossSection returns the compound cross-section at energy, if it was requested.
func (m *Material) CrossSection(energy float64) (float64, bool) {
	v, ok := m.crossSections[energy]
	return v, ok
}

// Energies lists the characterized energies in ascending order.
func (m *Material) Energies() []float64 {
	es := make([]float64, 0, len(m.crossSections))
	for e := range m.crossSections {
		es = append(es, e)
	}
	sort.Float64s(es)
	return es
}

// Density returns the compound density (g/cm³).
func (m *Material) Density() float64 {
	return m.density
}

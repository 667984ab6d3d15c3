package xrfthick

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Point is one angle-resolved measurement or model evaluation.
type Point struct {
	Angle     float64 // incidence angle (degrees)
	Intensity float64 // detector counts
}

// layer holds the properties of one stratum at the model's two energies.
type layer struct {
	muIn    float64 // cross-section at the incident energy (cm²/g)
	muOut   float64 // cross-section at the fluorescence energy (cm²/g)
	density float64 // g/cm³
}

func newLayer(m *Material, setup Setup) (layer, error) {
	if m == nil {
		return layer{}, fmt.Errorf("nil material: %w", ErrEmptyComposition)
	}
	in, ok := m.CrossSection(setup.IncidentEnergy)
	if !ok {
		return layer{}, fmt.Errorf("%g keV: %w", setup.IncidentEnergy, ErrMissingEnergy)
	}
	out, ok := m.CrossSection(setup.FluorescenceEnergy)
	if !ok {
		return layer{}, fmt.Errorf("%g keV: %w", setup.FluorescenceEnergy, ErrMissingEnergy)
	}
	return layer{muIn: in, muOut: out, density: m.Density()}, nil
}

// IntensityModel evaluates the fluorescence of a semi-infinite substrate seen
// through a coating. The materials and setup are captured at construction;
// the only free inputs are angle and thickness.
type IntensityModel struct {
	setup     Setup
	substrate layer
	coating   layer
}

// NewIntensityModel binds a substrate and a coating characterized at the
// setup's energies.
func NewIntensityModel(setup Setup, substrate, coating *Material) (*IntensityModel, error) {
	sub, err := newLayer(substrate, setup)
	if err != nil {
		return nil, fmt.Errorf("substrate: %w", err)
	}
	coat, err := newLayer(coating, setup)
	if err != nil {
		return nil, fmt.Errorf("coating: %w", err)
	}
	return &IntensityModel{setup: setup, substrate: sub, coating: coat}, nil
}

// ValidateAngle rejects incidence angles outside the open interval (0°, 90°),
// where either the incident or the exit path degenerates.
func ValidateAngle(angle float64) error {
	if !(angle > 0 && angle < 90) {
		return fmt.Errorf("%g°: %w", angle, ErrAngleOutOfDomain)
	}
	return nil
}

// sines returns sin θ_in and sin θ_out with θ_out = 90° - θ_in.
func sines(angle float64) (float64, float64) {
	in := angle * math.Pi / 180
	out := (90 - angle) * math.Pi / 180
	return math.Sin(in), math.Sin(out)
}

// AttenuationCoefficient returns (μc_E0/sin θ_in + μc_Ef/sin θ_out)·ρc, the
// coating's effective linear attenuation along both paths (1/cm). It equals
// -∂ ln I/∂t.
func (m *IntensityModel) AttenuationCoefficient(angle float64) (float64, error) {
	if err := ValidateAngle(angle); err != nil {
		return 0, err
	}
	sin, sout := sines(angle)
	return (m.coating.muIn/sin + m.coating.muOut/sout) * m.coating.density, nil
}

// PathAttenuation is the fraction of substrate fluorescence surviving the
// coating of thickness t (cm) on the way in and out.
func (m *IntensityModel) PathAttenuation(angle, thickness float64) (float64, error) {
	k, err := m.AttenuationCoefficient(angle)
	if err != nil {
		return 0, err
	}
	return math.Exp(-k * thickness), nil
}

// bare is the intensity with no coating:
//
//	C / (ρs·sin θ_in) / (μs_E0/sin θ_in + μs_Ef/sin θ_out)
func (m *IntensityModel) bare(angle float64) float64 {
	sin, sout := sines(angle)
	return m.setup.Constant / (m.substrate.density * sin) /
		(m.substrate.muIn/sin + m.substrate.muOut/sout)
}

// Intensity is the theoretical detected fluorescence at angle (degrees) for a
// coating of thickness t (cm).
func (m *IntensityModel) Intensity(angle, thickness float64) (float64, error) {
	att, err := m.PathAttenuation(angle, thickness)
	if err != nil {
		return 0, err
	}
	return m.bare(angle) * att, nil
}

// LogIntensity is ln Intensity, evaluated without the exponential so the
// estimator's residual stays linear in thickness.
func (m *IntensityModel) LogIntensity(angle, thickness float64) (float64, error) {
	k, err := m.AttenuationCoefficient(angle)
	if err != nil {
		return 0, err
	}
	return math.Log(m.bare(angle)) - k*thickness, nil
}

// Curve evaluates Intensity over angles for one thickness.
func (m *IntensityModel) Curve(angles []float64, thickness float64) ([]Point, error) {
	pts := make([]Point, len(angles))
	for i, a := range angles {
		v, err := m.Intensity(a, thickness)
		if err != nil {
			return nil, err
		}
		pts[i] = Point{Angle: a, Intensity: v}
	}
	return pts, nil
}

// Setup returns the setup the model was built with.
func (m *IntensityModel) Setup() Setup {
	return m.setup
}

// AngleGrid returns n evenly spaced angles from lo to hi inclusive.
func AngleGrid(lo, hi float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("grid needs at least 2 points, got %d", n)
	}
	if err := ValidateAngle(lo); err != nil {
		return nil, err
	}
	if err := ValidateAngle(hi); err != nil {
		return nil, err
	}
	return floats.Span(make([]float64, n), lo, hi), nil
}

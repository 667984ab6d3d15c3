package xrfthick

import (
	"fmt"
	"math"
	"testing"
)

// AssertionConfig contains tolerances for model and fit properties.
type AssertionConfig struct {
	// Relative tolerance for exp(LogIntensity) vs Intensity
	LogTolerance float64

	// Relative tolerance for recovering a known thickness
	RecoveryTolerance float64

	// Largest standard error accepted on noise-free data (cm)
	MaxStdError float64
}

// DefaultAssertionConfig returns tolerances suited to noise-free synthetic data.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		LogTolerance:      1e-12,
		RecoveryTolerance: 1e-6,
		MaxStdError:       1e-9, // 0.01 nm
	}
}

// AssertTransparentAtZeroThickness verifies PathAttenuation(θ, 0) == 1.
//
// Physical property:
//
//	t = 0 ⇒ no coating ⇒ the substrate signal reaches the detector unattenuated
func AssertTransparentAtZeroThickness(t *testing.T, model *IntensityModel, angles []float64) {
	t.Helper()

	for _, a := range angles {
		att, err := model.PathAttenuation(a, 0)
		if err != nil {
			t.Fatalf("PathAttenuation(%g°, 0) failed: %v", a, err)
		}
		if att != 1 {
			t.Errorf("Attenuation at %g° with zero thickness = %.17g, expected exactly 1", a, att)
		}
	}

	t.Logf("✓ Zero thickness is transparent at %d angles", len(angles))
}

// AssertLogConsistency verifies exp(LogIntensity) == Intensity.
func AssertLogConsistency(t *testing.T, model *IntensityModel, angles, thicknesses []float64, cfg AssertionConfig) {
	t.Helper()

	var failures []string
	for _, a := range angles {
		for _, th := range thicknesses {
			lin, err := model.Intensity(a, th)
			if err != nil {
				t.Fatalf("Intensity(%g°, %g) failed: %v", a, th, err)
			}
			lg, err := model.LogIntensity(a, th)
			if err != nil {
				t.Fatalf("LogIntensity(%g°, %g) failed: %v", a, th, err)
			}
			if rel := math.Abs(math.Exp(lg)-lin) / lin; rel > cfg.LogTolerance {
				failures = append(failures, fmt.Sprintf(
					"  θ=%g°, t=%g cm: exp(log)=%.12g, linear=%.12g (rel %.2e)",
					a, th, math.Exp(lg), lin, rel))
			}
		}
	}

	if len(failures) > 0 {
		t.Errorf("Log and linear forms disagree:\n%s", failures)
	}

	t.Logf("✓ Log form consistent over %d×%d grid (tol %.0e)", len(angles), len(thicknesses), cfg.LogTolerance)
}

// AssertMonotonicAttenuation verifies the intensity strictly decreases as the
// coating thickens, which is what makes the inversion well posed.
//
// Mathematical property:
//
//	∂I/∂t = -k(θ)·I < 0 for all θ in (0°, 90°)
func AssertMonotonicAttenuation(t *testing.T, model *IntensityModel, angles, thicknesses []float64) {
	t.Helper()

	var failures []string
	for _, a := range angles {
		prev := math.Inf(1)
		for _, th := range thicknesses {
			v, err := model.Intensity(a, th)
			if err != nil {
				t.Fatalf("Intensity(%g°, %g) failed: %v", a, th, err)
			}
			if !(v < prev) {
				failures = append(failures, fmt.Sprintf(
					"  θ=%g°: I(t=%g) = %.6g is not below the previous %.6g", a, th, v, prev))
			}
			prev = v
		}
	}

	if len(failures) > 0 {
		t.Errorf("Intensity not strictly decreasing in thickness:\n%s", failures)
	}

	t.Logf("✓ Monotonic attenuation over %d angles", len(angles))
}

// AssertThicknessRecovered synthesizes noise-free data at truth and checks the
// estimator returns it with a near-zero standard error.
func AssertThicknessRecovered(t *testing.T, est *Estimator, angles []float64, truth, guess float64, cfg AssertionConfig) FitResult {
	t.Helper()

	intensities := make([]float64, len(angles))
	for i, a := range angles {
		v, err := est.Model().Intensity(a, truth)
		if err != nil {
			t.Fatalf("Intensity(%g°, %g) failed: %v", a, truth, err)
		}
		intensities[i] = v
	}

	res, err := est.Fit(angles, intensities, guess)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if rel := math.Abs(res.Thickness-truth) / truth; rel > cfg.RecoveryTolerance {
		t.Errorf("Recovered thickness %.9g cm, expected %.9g cm (rel error %.2e, max %.0e)",
			res.Thickness, truth, rel, cfg.RecoveryTolerance)
	}
	if math.IsNaN(res.StdError) || res.StdError > cfg.MaxStdError {
		t.Errorf("Standard error %.3g cm on noise-free data (max %.0e)", res.StdError, cfg.MaxStdError)
	}

	um, errUm := res.Micrometres()
	t.Logf("✓ Recovered t = %.6f µm ± %.2e µm (truth %.6f µm, %d iterations, %s)",
		um, errUm, truth/Micrometre, res.Iterations, res.Converged)
	return res
}

// AssertModelProperties runs every model assertion with default config.
func AssertModelProperties(t *testing.T, est *Estimator, angles []float64, truth float64) {
	t.Helper()

	cfg := DefaultAssertionConfig()
	thicknesses := []float64{0, 0.1 * truth, truth, 2 * truth, 10 * truth}

	t.Run("ZeroThickness", func(t *testing.T) {
		AssertTransparentAtZeroThickness(t, est.Model(), angles)
	})

	t.Run("LogConsistency", func(t *testing.T) {
		AssertLogConsistency(t, est.Model(), angles, thicknesses, cfg)
	})

	t.Run("MonotonicAttenuation", func(t *testing.T) {
		AssertMonotonicAttenuation(t, est.Model(), angles, thicknesses)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		AssertThicknessRecovered(t, est, angles, truth, 0.5*truth, cfg)
	})
}

package xrfthick

import (
	"errors"
	"math"
	"testing"
)

func TestAnalyzer_Analyze(t *testing.T) {
	a := referenceAnalyzer(t)
	pts := synthesize(t, referenceModel(t), referenceAngles, 0.6*Micrometre, 1)

	res, err := a.Analyze(Sample{Name: "synthetic", Coating: zrtiv, Measurements: pts})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !res.OK() {
		t.Fatalf("Result not OK: %v", res.Err)
	}

	if rel := math.Abs(res.Fit.Thickness-0.6*Micrometre) / (0.6 * Micrometre); rel > 1e-6 {
		t.Errorf("Thickness %g cm, expected %g cm", res.Fit.Thickness, 0.6*Micrometre)
	}

	cfg := DefaultAnalysisConfig()
	if len(res.References) != len(cfg.ReferenceThicknesses) {
		t.Fatalf("%d reference curves, expected %d", len(res.References), len(cfg.ReferenceThicknesses))
	}
	for i, c := range res.References {
		if c.Thickness != cfg.ReferenceThicknesses[i] {
			t.Errorf("Reference %d at %g cm, expected %g", i, c.Thickness, cfg.ReferenceThicknesses[i])
		}
		if len(c.Points) != cfg.CurvePoints {
			t.Errorf("Reference %d has %d points, expected %d", i, len(c.Points), cfg.CurvePoints)
		}
		if c.Points[0].Angle != 5 || c.Points[len(c.Points)-1].Angle != 60 {
			t.Errorf("Reference %d spans %g..%g°, expected 5..60°",
				i, c.Points[0].Angle, c.Points[len(c.Points)-1].Angle)
		}
	}

	// Thicker reference curves lie below thinner ones at every angle.
	for j := range res.References[0].Points {
		if !(res.References[0].Points[j].Intensity > res.References[2].Points[j].Intensity) {
			t.Fatalf("0.25 µm curve not above 1 µm curve at %g°", res.References[0].Points[j].Angle)
		}
	}

	if res.FitCurve.Thickness != res.Fit.Thickness || len(res.FitCurve.Points) != cfg.CurvePoints {
		t.Errorf("Fit curve at %g cm with %d points", res.FitCurve.Thickness, len(res.FitCurve.Points))
	}
	if len(res.Fitted) != len(pts) {
		t.Fatalf("%d fitted points for %d measurements", len(res.Fitted), len(pts))
	}
	for i, p := range res.Fitted {
		if p.Angle != pts[i].Angle || math.Abs(p.Intensity-pts[i].Intensity) > 1e-6*pts[i].Intensity {
			t.Errorf("Fitted %+v, measured %+v", p, pts[i])
		}
	}
	if res.Coating == nil || res.Coating.Density() <= 0 {
		t.Error("Coating not characterized")
	}

	um, errUm := res.Fit.Micrometres()
	t.Logf("✓ %s: %.4f ± %.2e µm", res.Name, um, errUm)
}

func TestAnalyzer_CopiesMeasurements(t *testing.T) {
	a := referenceAnalyzer(t)
	pts := synthesize(t, referenceModel(t), referenceAngles, 0.6*Micrometre, 1)

	res, err := a.Analyze(Sample{Name: "copy", Coating: zrtiv, Measurements: pts})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	pts[0].Intensity = -1
	if res.Measurements[0].Intensity < 0 {
		t.Error("Result aliases caller's measurements")
	}
}

func TestAnalyzer_Failures(t *testing.T) {
	a := referenceAnalyzer(t)
	good := synthesize(t, referenceModel(t), referenceAngles, 0.6*Micrometre, 1)

	tests := []struct {
		name   string
		sample Sample
		want   ErrorKind
	}{
		{"empty coating", Sample{Name: "a", Measurements: good}, KindComposition},
		{"unknown element", Sample{Name: "b", Coating: Composition{Elements: []int{99}, MolarRatios: []float64{1}}, Measurements: good}, KindConstants},
		{"one point", Sample{Name: "c", Coating: zrtiv, Measurements: good[:1]}, KindData},
		{"zero intensity", Sample{Name: "d", Coating: zrtiv, Measurements: []Point{{10, 4e5}, {20, 0}}}, KindData},
		{"grazing", Sample{Name: "e", Coating: zrtiv, Measurements: []Point{{0, 4e5}, {20, 4e5}}}, KindData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := a.Analyze(tt.sample)
			if err == nil || res.OK() {
				t.Fatal("Expected failure")
			}
			if res.Err != err {
				t.Errorf("Result error %v differs from returned %v", res.Err, err)
			}
			if got := Classify(err); got != tt.want {
				t.Errorf("Classify(%v) = %q, expected %q", err, got, tt.want)
			}
			if res.Name != tt.sample.Name {
				t.Errorf("Result name %q, expected %q", res.Name, tt.sample.Name)
			}
		})
	}
}

func TestNewAnalyzer_BadSubstrate(t *testing.T) {
	_, err := NewAnalyzer(DefaultTable(), referenceSetup(t), Composition{}, DefaultAnalysisConfig())
	if !errors.Is(err, ErrEmptyComposition) {
		t.Errorf("Expected ErrEmptyComposition, got %v", err)
	}
}

package xrfthick

import "testing"

// Reference materials: stainless steel under a Zr/Ti/V coating.
var (
	steel = Composition{Elements: []int{26, 24, 28}, MolarRatios: []float64{70, 20, 10}}
	zrtiv = Composition{Elements: []int{40, 22, 23}, MolarRatios: []float64{20, 35, 45}}

	// Inside (5°, 85°), as the reference geometry measures.
	referenceAngles = []float64{5, 10, 20, 30, 45, 60}
)

func referenceSetup(t *testing.T) Setup {
	t.Helper()
	setup, err := NewSetup(DefaultTable(), DefaultSetupConfig())
	if err != nil {
		t.Fatalf("NewSetup failed: %v", err)
	}
	return setup
}

func referenceModel(t *testing.T) *IntensityModel {
	t.Helper()
	setup := referenceSetup(t)
	sub, err := Characterize(DefaultTable(), steel, setup.Energies()...)
	if err != nil {
		t.Fatalf("Characterize(steel) failed: %v", err)
	}
	coat, err := Characterize(DefaultTable(), zrtiv, setup.Energies()...)
	if err != nil {
		t.Fatalf("Characterize(ZrTiV) failed: %v", err)
	}
	model, err := NewIntensityModel(setup, sub, coat)
	if err != nil {
		t.Fatalf("NewIntensityModel failed: %v", err)
	}
	return model
}

func referenceAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(DefaultTable(), referenceSetup(t), steel, DefaultAnalysisConfig())
	if err != nil {
		t.Fatalf("NewAnalyzer failed: %v", err)
	}
	return a
}

// synthesize evaluates the reference model at thickness, scaled by factor.
func synthesize(t *testing.T, model *IntensityModel, angles []float64, thickness, factor float64) []Point {
	t.Helper()
	pts, err := model.Curve(angles, thickness)
	if err != nil {
		t.Fatalf("Curve failed: %v", err)
	}
	for i := range pts {
		pts[i].Intensity *= factor
	}
	return pts
}

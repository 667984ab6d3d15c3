package xrfthick

import (
	"fmt"
	"log/slog"
	"sort"
)

// Sample is one coated specimen with its angle-resolved measurements.
type Sample struct {
	Name         string
	Coating      Composition
	Measurements []Point
}

// AnalysisConfig controls per-sample analysis.
type AnalysisConfig struct {
	Fit                  FitConfig
	InitialGuess         float64   // starting thickness (cm)
	ReferenceThicknesses []float64 // thicknesses of the reference curves (cm)
	CurvePoints          int       // angles per curve
}

// DefaultAnalysisConfig returns a 0.5 µm start and 0.25/0.5/1 µm reference curves.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		Fit:                  DefaultFitConfig(),
		InitialGuess:         0.5 * Micrometre,
		ReferenceThicknesses: []float64{0.25 * Micrometre, 0.5 * Micrometre, 1 * Micrometre},
		CurvePoints:          50,
	}
}

// Curve is a labelled model curve.
type Curve struct {
	Thickness float64 // cm
	Points    []Point
}

// SampleResult is everything known about one analyzed sample. Err is set
// when the analysis failed; the other fields are then partially filled.
type SampleResult struct {
	Name         string
	Coating      *Material
	Measurements []Point
	References   []Curve
	Fit          FitResult
	FitCurve     Curve
	Fitted       []Point // model at each measured angle, in measurement order
	Err          error
}

// OK reports whether the analysis succeeded.
func (r SampleResult) OK() bool {
	return r.Err == nil
}

// Analyzer analyzes samples against one substrate. The substrate is
// characterized once at construction; Analyze holds no shared mutable state.
type Analyzer struct {
	consts    Constants
	setup     Setup
	substrate *Material
	cfg       AnalysisConfig
	logger    *slog.Logger
}

// NewAnalyzer characterizes the substrate at the setup's energies.
func NewAnalyzer(consts Constants, setup Setup, substrate Composition, cfg AnalysisConfig) (*Analyzer, error) {
	sub, err := Characterize(consts, substrate, setup.Energies()...)
	if err != nil {
		return nil, fmt.Errorf("substrate: %w", err)
	}
	if cfg.CurvePoints < 2 {
		cfg.CurvePoints = 2
	}
	logger := cfg.Fit.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		consts:    consts,
		setup:     setup,
		substrate: sub,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

// Substrate returns the characterized substrate.
func (a *Analyzer) Substrate() *Material {
	return a.substrate
}

// Setup returns the experimental setup shared by every sample.
func (a *Analyzer) Setup() Setup {
	return a.setup
}

// Analyze characterizes the coating, evaluates the reference curves over the
// measured angle span, fits the thickness and evaluates the fitted curve.
func (a *Analyzer) Analyze(s Sample) (SampleResult, error) {
	res := SampleResult{
		Name:         s.Name,
		Measurements: append([]Point(nil), s.Measurements...),
	}
	fail := func(err error) (SampleResult, error) {
		res.Err = fmt.Errorf("sample %s: %w", s.Name, err)
		return res, res.Err
	}

	coating, err := Characterize(a.consts, s.Coating, a.setup.Energies()...)
	if err != nil {
		return fail(fmt.Errorf("coating: %w", err))
	}
	res.Coating = coating

	model, err := NewIntensityModel(a.setup, a.substrate, coating)
	if err != nil {
		return fail(err)
	}

	if len(s.Measurements) < 2 {
		return fail(fmt.Errorf("%d measurements: %w", len(s.Measurements), ErrInsufficientData))
	}
	grid, err := a.grid(s.Measurements)
	if err != nil {
		return fail(err)
	}

	for _, t := range a.cfg.ReferenceThicknesses {
		pts, err := model.Curve(grid, t)
		if err != nil {
			return fail(err)
		}
		res.References = append(res.References, Curve{Thickness: t, Points: pts})
	}

	fit, err := NewEstimator(model, a.cfg.Fit).FitPoints(s.Measurements, a.cfg.InitialGuess)
	if err != nil {
		return fail(err)
	}
	res.Fit = fit

	pts, err := model.Curve(grid, fit.Thickness)
	if err != nil {
		return fail(err)
	}
	res.FitCurve = Curve{Thickness: fit.Thickness, Points: pts}

	if res.Fitted, err = model.Curve(angles(s.Measurements), fit.Thickness); err != nil {
		return fail(err)
	}

	um, errUm := fit.Micrometres()
	a.logger.Info("sample analyzed",
		"sample", s.Name,
		"thickness_um", um,
		"stderr_um", errUm,
		"iterations", fit.Iterations)

	return res, nil
}

// grid spans the measured angles, as the reference curves are drawn against
// the data.
func (a *Analyzer) grid(points []Point) ([]float64, error) {
	sorted := angles(points)
	sort.Float64s(sorted)
	return AngleGrid(sorted[0], sorted[len(sorted)-1], a.cfg.CurvePoints)
}

func angles(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Angle
	}
	return out
}

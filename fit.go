package xrfthick

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"
)

// FitConfig controls the least-squares solver.
type FitConfig struct {
	MaxIterations  int          // Iteration cap before ErrFitDidNotConverge
	FTol           float64      // Relative cost reduction tolerance
	XTol           float64      // Relative step tolerance
	GTol           float64      // Scaled gradient tolerance
	InitialDamping float64      // Dimensionless μ0; damping is μ·diag(JᵀJ)
	Logger         *slog.Logger // nil = slog.Default()
}

// DefaultFitConfig returns MINPACK-like tolerances.
func DefaultFitConfig() FitConfig {
	return FitConfig{
		MaxIterations:  200,
		FTol:           1.49012e-8,
		XTol:           1.49012e-8,
		GTol:           0,
		InitialDamping: 1e-3,
	}
}

// FitResult is the outcome of one thickness fit.
type FitResult struct {
	Thickness    float64 // cm
	StdError     float64 // cm; NaN when the covariance is undefined
	RSS          float64 // Σ (ln y_i - ln I_i)²
	ReducedChiSq float64 // RSS / (m - 1)
	RSquared     float64 // on the log data; NaN when the data are constant
	Points       int
	Iterations   int
	Converged    string // which criterion stopped the solver
}

// Micrometres returns thickness and standard error in µm.
func (r FitResult) Micrometres() (float64, float64) {
	return r.Thickness / Micrometre, r.StdError / Micrometre
}

// Estimator fits the coating thickness of one substrate/coating pair.
// An Estimator holds no per-fit state and may be used concurrently.
type Estimator struct {
	model *IntensityModel
	cfg   FitConfig
}

// NewEstimator binds the forward model the residual is built on.
func NewEstimator(model *IntensityModel, cfg FitConfig) *Estimator {
	return &Estimator{model: model, cfg: cfg}
}

// Model returns the bound forward model.
func (e *Estimator) Model() *IntensityModel {
	return e.model
}

// FitPoints is Fit on (angle, intensity) pairs.
func (e *Estimator) FitPoints(points []Point, guess float64) (FitResult, error) {
	intensities := make([]float64, len(points))
	for i, p := range points {
		intensities[i] = p.Intensity
	}
	return e.Fit(angles(points), intensities, guess)
}

// Fit estimates thickness (cm) by minimizing
//
//	Σ (ln y_i - LogIntensity(θ_i, t))²
//
// starting from guess. The residual is linear in t, so well-posed data
// converge in a handful of iterations.
func (e *Estimator) Fit(angles, intensities []float64, guess float64) (FitResult, error) {
	if len(angles) != len(intensities) {
		return FitResult{}, fmt.Errorf("%d angles but %d intensities: %w",
			len(angles), len(intensities), ErrInsufficientData)
	}
	if len(angles) < 2 {
		return FitResult{}, fmt.Errorf("need at least 2 points, got %d: %w", len(angles), ErrInsufficientData)
	}
	for _, a := range angles {
		if err := ValidateAngle(a); err != nil {
			return FitResult{}, err
		}
	}
	logY := make([]float64, len(intensities))
	for i, y := range intensities {
		if !(y > 0) || math.IsInf(y, 0) {
			return FitResult{}, fmt.Errorf("point %d at %g° has intensity %g: %w",
				i, angles[i], y, ErrNonPositiveIntensity)
		}
		logY[i] = math.Log(y)
	}
	if math.IsNaN(guess) || math.IsInf(guess, 0) {
		return FitResult{}, fmt.Errorf("initial guess %g: %w", guess, ErrFitDidNotConverge)
	}

	// AttenuationCoefficient is independent of t and is the exact Jacobian
	// column of the log residual.
	slopes := make([]float64, len(angles))
	for i, a := range angles {
		k, err := e.model.AttenuationCoefficient(a)
		if err != nil {
			return FitResult{}, err
		}
		slopes[i] = k
	}

	prob := lsqProblem{
		m: len(angles),
		n: 1,
		residuals: func(p, r []float64) error {
			for i, a := range angles {
				li, err := e.model.LogIntensity(a, p[0])
				if err != nil {
					return err
				}
				r[i] = logY[i] - li
			}
			return nil
		},
		jacobian: func(_ []float64, jac *mat.Dense) error {
			for i, k := range slopes {
				jac.Set(i, 0, k)
			}
			return nil
		},
	}

	logger := e.cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sol, err := levenbergMarquardt(prob, []float64{guess}, e.cfg, logger)
	if err != nil {
		return FitResult{}, err
	}

	stdErr := math.NaN()
	if sol.Covariance != nil {
		if v := sol.Covariance.At(0, 0); v >= 0 {
			stdErr = math.Sqrt(v)
		}
	}

	rss := 2 * sol.Cost
	res := FitResult{
		Thickness:    sol.Params[0],
		StdError:     stdErr,
		RSS:          rss,
		ReducedChiSq: rss / float64(prob.m-prob.n),
		RSquared:     rSquared(logY, rss),
		Points:       prob.m,
		Iterations:   sol.Iterations,
		Converged:    sol.Reason,
	}

	logger.Debug("thickness fit",
		"thickness_um", res.Thickness/Micrometre,
		"stderr_um", res.StdError/Micrometre,
		"rss", res.RSS,
		"iterations", res.Iterations,
		"converged", res.Converged)

	return res, nil
}

// rSquared computes 1 - RSS/SStot on the log data.
func rSquared(y []float64, rss float64) float64 {
	var mean float64
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))

	var ssTot float64
	for _, v := range y {
		ssTot += (v - mean) * (v - mean)
	}
	if ssTot == 0 {
		return math.NaN()
	}
	return 1 - rss/ssTot
}

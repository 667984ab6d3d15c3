package xrfthick

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// maxCondition bounds cond(JᵀJ) for a covariance to count as well defined.
	maxCondition = 1e14

	// maxDamping is the largest μ tried; beyond it the damped step is lost in
	// the rounding of JᵀJ.
	maxDamping = 1e16
)

// lsqProblem is a nonlinear least-squares problem of m residuals in n parameters.
type lsqProblem struct {
	m, n int

	// residuals fills r (length m) at params.
	residuals func(params, r []float64) error

	// jacobian fills jac (m×n) with ∂r_i/∂p_j at params.
	jacobian func(params []float64, jac *mat.Dense) error
}

// lsqSolution is the outcome of levenbergMarquardt.
type lsqSolution struct {
	Params     []float64
	Residuals  []float64
	Cost       float64       // ½‖r‖²
	Covariance *mat.SymDense // nil when JᵀJ is singular or ill-conditioned
	Iterations int
	Reason     string
}

// levenbergMarquardt minimizes ½‖r(p)‖² starting from p0. The damping term
// is μ·D with D = diag(JᵀJ) (Marquardt's scaling) and a dimensionless μ that
// starts at InitialDamping and follows Nielsen's update, so rescaling a
// parameter's units leaves the iterates unchanged.
//
// Convergence (any of):
//   - gradient: max_j |(Jᵀr)_j| / (‖J_j‖·‖r‖) ≤ GTol, or ‖r‖ = 0
//   - step:     the undamped Gauss-Newton step at p satisfies
//     ‖δ‖ ≤ XTol·(‖p‖ + XTol)
//   - cost:     relative cost reduction of an accepted step ≤ FTol
//
// A step shrunk by damping is never taken as convergence: when damping grows
// past maxDamping without an accepted step the fit fails.
//
// The covariance is (JᵀJ)⁻¹ scaled by 2·cost/(m-n), evaluated at the solution.
func levenbergMarquardt(prob lsqProblem, p0 []float64, cfg FitConfig, logger *slog.Logger) (lsqSolution, error) {
	m, n := prob.m, prob.n
	if m < n {
		return lsqSolution{}, fmt.Errorf("%d residuals for %d parameters: %w", m, n, ErrInsufficientData)
	}

	p := append([]float64(nil), p0...)
	r := make([]float64, m)
	if err := prob.residuals(p, r); err != nil {
		return lsqSolution{}, err
	}
	cost := 0.5 * floats.Dot(r, r)

	jac := mat.NewDense(m, n, nil)
	jtj := mat.NewSymDense(n, nil)
	g := mat.NewVecDense(n, nil)
	linearize := func() error {
		if err := prob.jacobian(p, jac); err != nil {
			return err
		}
		jtj.SymOuterK(1, jac.T())
		g.MulVec(jac.T(), mat.NewVecDense(m, r))
		return nil
	}
	if err := linearize(); err != nil {
		return lsqSolution{}, err
	}

	mu := cfg.InitialDamping
	if !(mu > 0) {
		mu = DefaultFitConfig().InitialDamping
	}
	nu := 2.0

	var (
		chol   mat.Cholesky
		step   = mat.NewVecDense(n, nil)
		damped = mat.NewSymDense(n, nil)
		scale  = make([]float64, n)
		pNew   = make([]float64, n)
		rNew   = make([]float64, m)
	)

	reason := ""
	iter := 0
	for ; iter < cfg.MaxIterations; iter++ {
		if reason = gradientConverged(jtj, g, r, cfg.GTol); reason != "" {
			break
		}
		small := gaussNewtonConverged(jtj, g, p, cfg.XTol)

		// Solve (JᵀJ + μ·D) δ = -Jᵀr with D = diag(JᵀJ).
		damped.CopySym(jtj)
		for j := 0; j < n; j++ {
			scale[j] = jtj.At(j, j)
			if scale[j] == 0 {
				scale[j] = 1
			}
			damped.SetSym(j, j, jtj.At(j, j)+mu*scale[j])
		}
		solved := chol.Factorize(damped)
		if solved {
			solved = chol.SolveVecTo(step, g) == nil
		}
		if !solved {
			mu *= nu
			nu *= 2
			if mu > maxDamping {
				return lsqSolution{}, fmt.Errorf("damping diverged after %d iterations: %w", iter+1, ErrFitDidNotConverge)
			}
			continue
		}
		step.ScaleVec(-1, step)

		for j := 0; j < n; j++ {
			pNew[j] = p[j] + step.AtVec(j)
		}
		stepNorm := mat.Norm(step, 2)

		if err := prob.residuals(pNew, rNew); err != nil {
			return lsqSolution{}, err
		}
		costNew := 0.5 * floats.Dot(rNew, rNew)

		// Predicted reduction of the local quadratic model: ½ δᵀ(μ·D·δ − g).
		predicted := 0.0
		for j := 0; j < n; j++ {
			d := step.AtVec(j)
			predicted += 0.5 * d * (mu*scale[j]*d - g.AtVec(j))
		}

		rho := -1.0
		if predicted > 0 && !math.IsNaN(costNew) && !math.IsInf(costNew, 0) {
			rho = (cost - costNew) / predicted
		}

		if rho > 0 {
			reduction := cost - costNew
			copy(p, pNew)
			copy(r, rNew)
			cost = costNew
			if err := linearize(); err != nil {
				return lsqSolution{}, err
			}
			mu *= math.Max(1.0/3, 1-math.Pow(2*rho-1, 3))
			nu = 2

			logger.Debug("lm step accepted", "iter", iter, "cost", cost, "step", stepNorm, "mu", mu)

			if small {
				reason, iter = "step", iter+1
				break
			}
			if reduction <= cfg.FTol*(cost+reduction) {
				reason, iter = "cost", iter+1
				break
			}
			continue
		}

		mu *= nu
		nu *= 2
		logger.Debug("lm step rejected", "iter", iter, "cost", cost, "candidate", costNew, "mu", mu)

		// p already sits within XTol of the minimum of the local model; the
		// candidate only lost to rounding in the cost.
		if small {
			reason, iter = "step", iter+1
			break
		}
		if mu > maxDamping {
			return lsqSolution{}, fmt.Errorf("damping diverged after %d iterations: %w", iter+1, ErrFitDidNotConverge)
		}
	}

	if reason == "" {
		return lsqSolution{}, fmt.Errorf("no convergence in %d iterations (cost %g): %w",
			cfg.MaxIterations, cost, ErrFitDidNotConverge)
	}
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return lsqSolution{}, fmt.Errorf("non-finite parameters %v: %w", p, ErrFitDidNotConverge)
		}
	}

	return lsqSolution{
		Params:     p,
		Residuals:  r,
		Cost:       cost,
		Covariance: covariance(jtj, cost, m, n),
		Iterations: iter,
		Reason:     reason,
	}, nil
}

// gradientConverged applies the scaled-gradient test; it returns "gradient"
// on success and "" otherwise.
func gradientConverged(jtj *mat.SymDense, g *mat.VecDense, r []float64, gtol float64) string {
	rnorm := floats.Norm(r, 2)
	if rnorm == 0 {
		return "gradient"
	}
	worst := 0.0
	for j := 0; j < g.Len(); j++ {
		colNorm := math.Sqrt(jtj.At(j, j))
		if colNorm == 0 {
			continue
		}
		worst = math.Max(worst, math.Abs(g.AtVec(j))/(colNorm*rnorm))
	}
	if worst <= gtol {
		return "gradient"
	}
	return ""
}

// gaussNewtonConverged reports whether the undamped step -(JᵀJ)⁻¹Jᵀr is
// within XTol of p. A singular JᵀJ never satisfies it.
func gaussNewtonConverged(jtj *mat.SymDense, g *mat.VecDense, p []float64, xtol float64) bool {
	var chol mat.Cholesky
	if !chol.Factorize(jtj) {
		return false
	}
	var step mat.VecDense
	if err := chol.SolveVecTo(&step, g); err != nil {
		return false
	}
	norm := mat.Norm(&step, 2)
	return !math.IsNaN(norm) && norm <= xtol*(floats.Norm(p, 2)+xtol)
}

// covariance returns s²·(JᵀJ)⁻¹ with s² = 2·cost/(m-n), or nil when the
// inverse is not well defined.
func covariance(jtj *mat.SymDense, cost float64, m, n int) *mat.SymDense {
	if m <= n {
		return nil
	}
	var chol mat.Cholesky
	if !chol.Factorize(jtj) {
		return nil
	}
	if c := chol.Cond(); math.IsInf(c, 0) || c > maxCondition {
		return nil
	}
	inv := mat.NewSymDense(n, nil)
	if err := chol.InverseTo(inv); err != nil {
		return nil
	}
	inv.ScaleSym(2*cost/float64(m-n), inv)
	return inv
}

// Package xrfthick estimates the thickness of thin coatings from
// angle-resolved X-ray fluorescence (XRF) of the substrate underneath.
//
// # Overview
//
// A monochromatic beam excites a characteristic line (Fe Kα by default) in a
// semi-infinite substrate. On the way in and on the way out the photons cross
// a coating of unknown thickness, which absorbs a fraction that depends on the
// incidence angle. Measuring the substrate line at several angles and fitting
// the attenuation model gives the coating thickness with a standard error.
//
// # Architecture
//
// The package components:
//
//   - elements/   - Embedded atomic table implementing Constants
//   - material/   - Compositions, mass fractions, compound cross-sections
//   - setup/      - Beamline and detector constant
//   - intensity/  - Forward model I(θ, t)
//   - lsq/        - Levenberg-Marquardt least squares (gonum/mat)
//   - fit/        - Thickness estimator on log intensities
//   - sample/     - Per-sample analysis with reference curves
//   - batch/      - Concurrent analysis of many samples
//   - assertions/ - Test helpers for model properties
//
// Sub-packages:
//
//   - dataset/ - Reference measurements, CSV and XLSX loaders
//   - report/  - Plots, workbooks and PDF summaries
//   - config/  - Environment and .env configuration
//
// # Quick Start
//
//	table := xrfthick.DefaultTable()
//
//	setup, err := xrfthick.NewSetup(table, xrfthick.DefaultSetupConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	steel, _ := xrfthick.ParseComposition(table, "Fe:70 Cr:20 Ni:10")
//	coating, _ := xrfthick.ParseComposition(table, "Zr:20 Ti:35 V:45")
//
//	analyzer, err := xrfthick.NewAnalyzer(table, setup, steel, xrfthick.DefaultAnalysisConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := analyzer.Analyze(xrfthick.Sample{
//	    Name:         "S1_1B",
//	    Coating:      coating,
//	    Measurements: points,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	um, errUm := res.Fit.Micrometres()
//	fmt.Printf("t = %.4f ± %.4f µm\n", um, errUm)
//
// # The Model
//
// With θ_in the incidence angle and θ_out = 90° - θ_in the take-off angle:
//
//	bare(θ) = C / (ρs·sin θ_in) / (μs(E0)/sin θ_in + μs(Ef)/sin θ_out)
//	k(θ)    = (μc(E0)/sin θ_in + μc(Ef)/sin θ_out)·ρc
//	I(θ, t) = bare(θ)·exp(-k(θ)·t)
//
// where μ are compound photoelectric cross-sections (cm²/g), ρ densities
// (g/cm³) and t is in cm. C is the setup constant:
//
//	C = I0 · (J·R·ω) · σ(Z, E0) · A/(4π d²) · ε
//
// The estimator minimizes Σ (ln y_i - ln I(θ_i, t))². In log space the
// residual is linear in t, so the fit is well posed as long as two distinct
// positive measurements exist.
//
// # Units
//
// Energies are keV, angles degrees, thickness cm. Micrometre converts:
//
//	um := res.Fit.Thickness / xrfthick.Micrometre
//
// # Errors
//
// Every failure wraps one of the sentinel errors (ErrUnsupportedElement,
// ErrInsufficientData, ...). Classify maps an error onto a stable ErrorKind
// for summaries:
//
//	results := analyzer.AnalyzeAll(ctx, samples, 0)
//	summary := xrfthick.Summarize(results)
//	for kind, n := range summary.ByKind {
//	    log.Printf("%s: %d", kind, n)
//	}
//
// # Concurrency
//
// Tables, Materials, Setups, IntensityModels, Estimators and Analyzers are
// immutable after construction and safe to share. AnalyzeAll runs samples on
// a worker pool; results come back in input order and one failing sample
// never aborts the batch.
//
// # Testing
//
// The assertion helpers check the model on any substrate/coating pair:
//
//	func TestMyCoating(t *testing.T) {
//	    est := xrfthick.NewEstimator(model, xrfthick.DefaultFitConfig())
//	    xrfthick.AssertModelProperties(t, est, angles, 0.5*xrfthick.Micrometre)
//	}
//
// # Physics Data
//
// The embedded table (TableVersion) covers Na to Mo and the heavy coating
// metals Pd, Ag, Cd, In, Sn, Ta, W, Pt and Au between 1 and 100 keV (above
// the M edges for Ta and heavier). Cross-sections follow a single power law
// per element with K and L edge jumps; Na to Mo fold L1 and L2 into the L3
// jump. They are accurate to tens of percent, which is enough for relative
// thickness comparisons. Supply another Constants implementation for
// absolute work.
package xrfthick

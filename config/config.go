// Package config reads the analysis configuration from XRF_* environment
// variables and .env files.
//
// Variables (all optional):
//
//	XRF_BEAM_FLUX             incident photons per second
//	XRF_ELEMENT               fluorescing substrate element, symbol or Z
//	XRF_LINE                  KL3 (Ka1), KL2 (Ka2) or KM3 (Kb1)
//	XRF_JUMP_FACTOR           0 takes it from the table
//	XRF_INCIDENT_KEV          excitation energy
//	XRF_FLUORESCENCE_KEV      0 takes the line energy from the table
//	XRF_DETECTOR_AREA_MM2     detector active area
//	XRF_DETECTOR_DISTANCE_MM  sample-to-detector distance
//	XRF_DETECTOR_EFFICIENCY   fraction counted at the fluorescence energy
//	XRF_SUBSTRATE             composition, e.g. "Fe:70 Cr:20 Ni:10"
//	XRF_INITIAL_GUESS_UM      starting thickness
//	XRF_REFERENCE_UM          reference curve thicknesses, comma separated
//	XRF_CURVE_POINTS          angles per model curve
//	XRF_MAX_ITER              solver iteration cap
//	XRF_DATA                  .csv or .xlsx input; empty uses the built-in samples
//	XRF_OUT_DIR               output directory
//	XRF_WORKERS               concurrent samples; 0 uses GOMAXPROCS
//	XRF_LOG_LEVEL             debug, info, warn or error
//	XRF_OUTPUTS               any of png, xlsx, pdf (comma separated) or none
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/alexshd/xrfthick"
	"github.com/alexshd/xrfthick/dataset"
	"github.com/joho/godotenv"
)

// ErrInvalid reports a variable that could not be parsed.
var ErrInvalid = errors.New("invalid configuration")

// Outputs selects the report artifacts.
type Outputs struct {
	Plots    bool // one PNG per sample
	Workbook bool // results.xlsx
	PDF      bool // summary.pdf
}

// Config is everything the analysis program needs.
type Config struct {
	Setup     xrfthick.SetupConfig
	Analysis  xrfthick.AnalysisConfig
	Substrate xrfthick.Composition
	DataPath  string
	OutputDir string
	Workers   int
	LogLevel  slog.Level
	Outputs   Outputs
}

// Default returns the reference steel configuration writing every output to
// ./out.
func Default() Config {
	return Config{
		Setup:     xrfthick.DefaultSetupConfig(),
		Analysis:  xrfthick.DefaultAnalysisConfig(),
		Substrate: dataset.SteelSubstrate(),
		OutputDir: "out",
		LogLevel:  slog.LevelInfo,
		Outputs:   Outputs{Plots: true, Workbook: true, PDF: true},
	}
}

// Load reads files (default ".env" when none are given and it exists) and
// the process environment, which takes precedence over the files. The
// process environment is never modified.
func Load(table *xrfthick.Table, files ...string) (Config, error) {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			files = []string{".env"}
		}
	}

	fromFiles := map[string]string{}
	if len(files) > 0 {
		var err error
		if fromFiles, err = godotenv.Read(files...); err != nil {
			return Config{}, fmt.Errorf("reading %v: %w", files, err)
		}
	}

	return FromLookup(table, func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fromFiles[key]
		return v, ok
	})
}

// FromLookup builds a Config from Default, overriding every variable lookup
// reports as set.
func FromLookup(table *xrfthick.Table, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	p := parser{lookup: lookup}

	p.floatVar("XRF_BEAM_FLUX", &cfg.Setup.BeamFlux)
	if v, ok := p.get("XRF_ELEMENT"); ok {
		z, err := strconv.Atoi(v)
		if err != nil {
			z, err = table.AtomicNumber(v)
		}
		p.check("XRF_ELEMENT", err)
		cfg.Setup.Element = z
	}
	if v, ok := p.get("XRF_LINE"); ok {
		line, err := xrfthick.ParseLine(v)
		p.check("XRF_LINE", err)
		cfg.Setup.Line = line
	}
	p.floatVar("XRF_JUMP_FACTOR", &cfg.Setup.JumpFactor)
	p.floatVar("XRF_INCIDENT_KEV", &cfg.Setup.IncidentEnergy)
	p.floatVar("XRF_FLUORESCENCE_KEV", &cfg.Setup.FluorescenceEnergy)
	p.floatVar("XRF_DETECTOR_AREA_MM2", &cfg.Setup.DetectorArea)
	p.floatVar("XRF_DETECTOR_DISTANCE_MM", &cfg.Setup.DetectorDistance)
	p.floatVar("XRF_DETECTOR_EFFICIENCY", &cfg.Setup.DetectorEfficiency)

	if v, ok := p.get("XRF_SUBSTRATE"); ok {
		c, err := xrfthick.ParseComposition(table, v)
		p.check("XRF_SUBSTRATE", err)
		cfg.Substrate = c
	}

	var guess float64
	if p.floatVar("XRF_INITIAL_GUESS_UM", &guess) {
		cfg.Analysis.InitialGuess = guess * xrfthick.Micrometre
	}
	if v, ok := p.get("XRF_REFERENCE_UM"); ok {
		var refs []float64
		for _, f := range strings.Split(v, ",") {
			um, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err == nil && !(um > 0) {
				err = fmt.Errorf("thickness %g must be positive", um)
			}
			p.check("XRF_REFERENCE_UM", err)
			refs = append(refs, um*xrfthick.Micrometre)
		}
		cfg.Analysis.ReferenceThicknesses = refs
	}
	p.intVar("XRF_CURVE_POINTS", &cfg.Analysis.CurvePoints)
	p.intVar("XRF_MAX_ITER", &cfg.Analysis.Fit.MaxIterations)

	if v, ok := p.get("XRF_DATA"); ok {
		cfg.DataPath = v
	}
	if v, ok := p.get("XRF_OUT_DIR"); ok && v != "" {
		cfg.OutputDir = v
	}
	p.intVar("XRF_WORKERS", &cfg.Workers)

	if v, ok := p.get("XRF_LOG_LEVEL"); ok {
		p.check("XRF_LOG_LEVEL", cfg.LogLevel.UnmarshalText([]byte(v)))
	}
	if v, ok := p.get("XRF_OUTPUTS"); ok {
		out, err := parseOutputs(v)
		p.check("XRF_OUTPUTS", err)
		cfg.Outputs = out
	}

	if p.err != nil {
		return Config{}, p.err
	}
	return cfg, nil
}

func parseOutputs(v string) (Outputs, error) {
	var out Outputs
	for _, f := range strings.Split(v, ",") {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "png", "plot", "plots":
			out.Plots = true
		case "xlsx", "workbook":
			out.Workbook = true
		case "pdf":
			out.PDF = true
		case "none", "":
		default:
			return Outputs{}, fmt.Errorf("unknown output %q", f)
		}
	}
	return out, nil
}

// parser keeps the first error so FromLookup reads top to bottom.
type parser struct {
	lookup func(string) (string, bool)
	err    error
}

func (p *parser) get(key string) (string, bool) {
	v, ok := p.lookup(key)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (p *parser) check(key string, err error) {
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w: %w", key, err, ErrInvalid)
	}
}

func (p *parser) floatVar(key string, dst *float64) bool {
	v, ok := p.get(key)
	if !ok {
		return false
	}
	f, err := strconv.ParseFloat(v, 64)
	p.check(key, err)
	*dst = f
	return err == nil
}

func (p *parser) intVar(key string, dst *int) bool {
	v, ok := p.get(key)
	if !ok {
		return false
	}
	n, err := strconv.Atoi(v)
	p.check(key, err)
	*dst = n
	return err == nil
}

package xrfthick

import (
	"fmt"
	"math"
)

// SetupConfig describes the beamline and detector geometry.
type SetupConfig struct {
	BeamFlux           float64 // I0: incident photons per second
	Element            int     // fluorescing substrate element (Z)
	Line               Line    // fluorescence line measured
	JumpFactor         float64 // absorption-jump factor; 0 = take it from the table
	IncidentEnergy     float64 // E0 (keV)
	FluorescenceEnergy float64 // Ef (keV); 0 = line energy from the table
	DetectorArea       float64 // active area (mm²)
	DetectorDistance   float64 // sample-to-detector distance (mm)
	DetectorEfficiency float64 // fraction of photons counted at Ef
}

// DefaultSetupConfig returns the reference Fe Kα setup: 10 keV excitation,
// a 3×50 mm² detector at 30 mm.
func DefaultSetupConfig() SetupConfig {
	return SetupConfig{
		BeamFlux:           2.25e9,
		Element:            26,
		Line:               LineKL3,
		JumpFactor:         0.9,
		IncidentEnergy:     10,
		FluorescenceEnergy: 6.4,
		DetectorArea:       3 * 50,
		DetectorDistance:   30,
		DetectorEfficiency: 0.995,
	}
}

// Setup is the experimental setup constant and the two energies the model
// works at. Computed once and passed by value; never recomputed per sample.
type Setup struct {
	Constant           float64 // expt constant, folds every factor below
	IncidentEnergy     float64 // keV
	FluorescenceEnergy float64 // keV

	ExcitationFactor   float64 // jump factor × radiative rate × fluorescence yield
	CrossSection       float64 // σ_photo of the fluorescing element at E0 (cm²/g)
	DetectorAcceptance float64 // solid angle fraction area/(4π d²)
	DetectorEfficiency float64
	BeamFlux           float64
}

// NewSetup evaluates the experimental setup constant:
//
//	C = I0 · (J · R · ω) · σ(Z, E0) · A/(4π d²) · ε
func NewSetup(consts Constants, cfg SetupConfig) (Setup, error) {
	if cfg.BeamFlux <= 0 {
		return Setup{}, fmt.Errorf("beam flux %g: %w", cfg.BeamFlux, ErrInvalidSetup)
	}
	if cfg.DetectorArea <= 0 || cfg.DetectorDistance <= 0 {
		return Setup{}, fmt.Errorf("detector area %g mm², distance %g mm: %w",
			cfg.DetectorArea, cfg.DetectorDistance, ErrInvalidSetup)
	}
	if cfg.DetectorEfficiency <= 0 || cfg.DetectorEfficiency > 1 {
		return Setup{}, fmt.Errorf("detector efficiency %g: %w", cfg.DetectorEfficiency, ErrInvalidSetup)
	}
	if cfg.JumpFactor < 0 || cfg.JumpFactor > 1 {
		return Setup{}, fmt.Errorf("jump factor %g: %w", cfg.JumpFactor, ErrInvalidSetup)
	}

	shell := cfg.Line.Shell()
	rate, err := consts.RadiativeRate(cfg.Element, cfg.Line)
	if err != nil {
		return Setup{}, err
	}
	yield, err := consts.FluorescenceYield(cfg.Element, shell)
	if err != nil {
		return Setup{}, err
	}
	jump := cfg.JumpFactor
	if jump == 0 {
		if jump, err = consts.JumpFactor(cfg.Element, shell); err != nil {
			return Setup{}, err
		}
	}
	cs, err := consts.CrossSection(cfg.Element, cfg.IncidentEnergy)
	if err != nil {
		return Setup{}, err
	}

	ef := cfg.FluorescenceEnergy
	if ef == 0 {
		if ef, err = consts.LineEnergy(cfg.Element, cfg.Line); err != nil {
			return Setup{}, err
		}
	}
	if ef >= cfg.IncidentEnergy {
		return Setup{}, fmt.Errorf("fluorescence %g keV not below excitation %g keV: %w",
			ef, cfg.IncidentEnergy, ErrInvalidSetup)
	}

	excitation := jump * rate * yield
	acceptance := cfg.DetectorArea / (4 * math.Pi * cfg.DetectorDistance * cfg.DetectorDistance)

	return Setup{
		Constant:           cfg.BeamFlux * excitation * cs * acceptance * cfg.DetectorEfficiency,
		IncidentEnergy:     cfg.IncidentEnergy,
		FluorescenceEnergy: ef,
		ExcitationFactor:   excitation,
		CrossSection:       cs,
		DetectorAcceptance: acceptance,
		DetectorEfficiency: cfg.DetectorEfficiency,
		BeamFlux:           cfg.BeamFlux,
	}, nil
}

// Energies returns the energies every material must be characterized at.
func (s Setup) Energies() []float64 {
	return []float64{s.IncidentEnergy, s.FluorescenceEnergy}
}

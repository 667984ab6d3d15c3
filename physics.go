package xrfthick

import "fmt"

// Micrometre is one micrometre expressed in the model's length unit (cm).
const Micrometre = 1e-4

// Shell identifies an atomic shell.
type Shell string

const (
	ShellK  Shell = "K"
	ShellL3 Shell = "L3"
)

// Line identifies an emission line by its IUPAC transition (vacancy shell first).
type Line string

const (
	LineKL2 Line = "KL2" // Kα2
	LineKL3 Line = "KL3" // Kα1
	LineKM3 Line = "KM3" // Kβ1
)

// Shell returns the vacancy shell the line fills.
func (l Line) Shell() Shell {
	switch l {
	case LineKL2, LineKL3, LineKM3:
		return ShellK
	}
	return Shell("")
}

// ParseLine accepts IUPAC names (KL3) and the Siegbahn aliases Ka1, Ka2, Kb1.
func ParseLine(s string) (Line, error) {
	switch s {
	case "KL3", "Ka1", "Ka", "KA1", "KA":
		return LineKL3, nil
	case "KL2", "Ka2", "KA2":
		return LineKL2, nil
	case "KM3", "Kb1", "Kb", "KB1", "KB":
		return LineKM3, nil
	}
	return "", fmt.Errorf("line %q: %w", s, ErrUnsupportedTransition)
}

// Constants is a read-only source of tabulated atomic physics.
//
// Implementations must be safe for concurrent use: the estimator and the batch
// driver share one instance across goroutines without locking.
type Constants interface {
	// CrossSection returns the photoelectric mass cross-section (cm²/g) of
	// element z at the given photon energy (keV).
	CrossSection(z int, energy float64) (float64, error)

	// AtomicWeight returns the standard atomic weight (g/mol).
	AtomicWeight(z int) (float64, error)

	// ElementDensity returns the density of the pure element (g/cm³).
	ElementDensity(z int) (float64, error)

	// FluorescenceYield returns the probability that a vacancy in shell
	// relaxes radiatively.
	FluorescenceYield(z int, shell Shell) (float64, error)

	// RadiativeRate returns the branching ratio of line within its shell.
	RadiativeRate(z int, line Line) (float64, error)

	// JumpFactor returns the fraction of absorption attributable to shell,
	// 1 - 1/J with J the edge jump ratio.
	JumpFactor(z int, shell Shell) (float64, error)

	// LineEnergy returns the emission energy of line (keV).
	LineEnergy(z int, line Line) (float64, error)
}

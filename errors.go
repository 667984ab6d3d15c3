package xrfthick

import (
	"context"
	"errors"
)

// Lookup errors (Constants).
var (
	// ErrUnsupportedElement: atomic number not covered by the physics table.
	ErrUnsupportedElement = errors.New("unsupported element")
	// ErrEnergyOutOfRange: photon energy outside the table's validity range.
	ErrEnergyOutOfRange = errors.New("energy out of range")
	// ErrUnsupportedTransition: shell or emission line not tabulated.
	ErrUnsupportedTransition = errors.New("unsupported shell or line")
)

// Material and setup errors.
var (
	// ErrEmptyComposition: no elements, or every molar ratio is zero.
	ErrEmptyComposition = errors.New("empty composition")
	// ErrMalformedComposition: mismatched lengths, duplicate elements or negative ratios.
	ErrMalformedComposition = errors.New("malformed composition")
	// ErrMissingEnergy: a material was not characterized at an energy the model needs.
	ErrMissingEnergy = errors.New("material not characterized at energy")
	// ErrInvalidSetup: experimental setup parameters out of their physical range.
	ErrInvalidSetup = errors.New("invalid experimental setup")
)

// Estimator errors.
var (
	ErrInsufficientData     = errors.New("insufficient data")
	ErrNonPositiveIntensity = errors.New("non-positive intensity")
	ErrAngleOutOfDomain     = errors.New("angle out of domain")
	ErrFitDidNotConverge    = errors.New("fit did not converge")
)

// ErrorKind is a stable label for an error, used in reports and summaries.
type ErrorKind string

const (
	KindNone         ErrorKind = ""
	KindUnknown      ErrorKind = "unknown"
	KindConstants    ErrorKind = "constants"
	KindComposition  ErrorKind = "composition"
	KindSetup        ErrorKind = "setup"
	KindData         ErrorKind = "data"
	KindConvergence  ErrorKind = "convergence"
	KindCancellation ErrorKind = "cancel"
)

// Classify maps an error onto its kind using only sentinel errors.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return KindCancellation
	case errors.Is(err, ErrUnsupportedElement),
		errors.Is(err, ErrEnergyOutOfRange),
		errors.Is(err, ErrUnsupportedTransition):
		return KindConstants
	case errors.Is(err, ErrEmptyComposition),
		errors.Is(err, ErrMalformedComposition),
		errors.Is(err, ErrMissingEnergy):
		return KindComposition
	case errors.Is(err, ErrInvalidSetup):
		return KindSetup
	case errors.Is(err, ErrInsufficientData),
		errors.Is(err, ErrNonPositiveIntensity),
		errors.Is(err, ErrAngleOutOfDomain):
		return KindData
	case errors.Is(err, ErrFitDidNotConverge):
		return KindConvergence
	}
	return KindUnknown
}

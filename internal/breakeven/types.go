package breakeven

import (
	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/shopspring/decimal"
)

// SolverOptions configures the income limit search
type SolverOptions struct {
	Tolerance         decimal.Decimal // Stop when the bracket is this narrow (dollars)
	MaxIterations     int             // Maximum bisection steps
	UpperBoundPercent decimal.Decimal // Search ceiling as a percentage of the household FPL
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:         decimal.RequireFromString("0.01"),
		MaxIterations:     64,
		UpperBoundPercent: decimal.NewFromInt(1000),
	}
}

// Validate checks if the options are usable
func (o SolverOptions) Validate() error {
	if !o.Tolerance.IsPositive() {
		return &BreakEvenError{Operation: "validate_options", Message: "tolerance must be positive"}
	}
	if o.MaxIterations <= 0 {
		return &BreakEvenError{Operation: "validate_options", Message: "max_iterations must be positive"}
	}
	if !o.UpperBoundPercent.IsPositive() {
		return &BreakEvenError{Operation: "validate_options", Message: "upper_bound_percent must be positive"}
	}
	return nil
}

// LimitStatus describes how the search ended
type LimitStatus string

const (
	StatusFound          LimitStatus = "found"           // A finite income limit was bracketed
	StatusNeverQualifies LimitStatus = "never_qualifies" // No income qualifies, even zero
	StatusNoLimit        LimitStatus = "no_limit"        // Every income up to the ceiling qualifies
)

// IncomeLimitResult is the highest annual income at which the household still
// qualifies for Medicaid or CHIP, with everything else held fixed.
type IncomeLimitResult struct {
	Profile           domain.HouseholdProfile `json:"profile"`
	Status            LimitStatus             `json:"status"`
	Program           string                  `json:"program,omitempty"` // Program at the limit
	HouseholdSize     int                     `json:"householdSize"`
	FPL               decimal.Decimal         `json:"fpl"`
	MaxEligibleIncome decimal.Decimal         `json:"maxEligibleIncome"`
	FPLPercentAtLimit decimal.Decimal         `json:"fplPercentAtLimit"`
	CurrentlyEligible bool                    `json:"currentlyEligible"`
	Headroom          decimal.Decimal         `json:"headroom"` // MaxEligibleIncome - current income
	Iterations        int                     `json:"iterations"`
	Warnings          []domain.Warning        `json:"warnings,omitempty"`
}

// Found reports whether a finite limit was bracketed.
func (r *IncomeLimitResult) Found() bool {
	return r.Status == StatusFound
}

// BreakEvenError represents a solver failure
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}

package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/plan4you/internal/calculation"
	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/rgehrsitz/plan4you/internal/refdata"
	"github.com/rgehrsitz/plan4you/internal/transform"
	"github.com/shopspring/decimal"
)

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// Solver finds the income at which a household stops qualifying for
// Medicaid or CHIP. Eligibility only falls as income rises, so the search
// is a bisection over income.
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Ref        *refdata.ReferenceData
	Options    SolverOptions
}

// NewSolver creates a new income limit solver
func NewSolver(calcEngine *calculation.CalculationEngine, ref *refdata.ReferenceData, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Ref:        ref,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine, ref *refdata.ReferenceData) *Solver {
	return NewSolver(calcEngine, ref, DefaultSolverOptions())
}

// evaluation is the screen outcome at one candidate income
type evaluation struct {
	metrics  domain.HouseholdMetrics
	flags    calculation.EligibilityFlags
	warnings []domain.Warning
}

func (e evaluation) qualifies() bool {
	return e.flags.IsMedicaidEligible || e.flags.IsCHIPEligible
}

func (e evaluation) program() string {
	switch {
	case e.flags.IsMedicaidEligible:
		return "Medicaid"
	case e.flags.IsCHIPEligible:
		return "CHIP"
	default:
		return ""
	}
}

func (s *Solver) evaluate(profile domain.HouseholdProfile, income decimal.Decimal) (evaluation, error) {
	candidate, err := (&transform.SetIncome{Amount: income}).Apply(profile)
	if err != nil {
		return evaluation{}, err
	}
	metrics, err := calculation.ComputeHouseholdMetrics(candidate, s.CalcEngine.Rules.PovertyGuidelines.For(candidate.State))
	if err != nil {
		return evaluation{}, err
	}
	flags, warnings := s.CalcEngine.Classifier.Classify(candidate, metrics.FPLPercent, s.Ref)
	return evaluation{metrics: metrics, flags: flags, warnings: warnings}, nil
}

// IncomeLimit searches for the highest annual income, to within the solver
// tolerance, at which profile still qualifies for assistance.
func (s *Solver) IncomeLimit(ctx context.Context, profile domain.HouseholdProfile) (*IncomeLimitResult, error) {
	if err := s.Options.Validate(); err != nil {
		return nil, err
	}
	if s.Ref == nil {
		return nil, &BreakEvenError{Operation: "income_limit", Message: "reference data not loaded"}
	}
	profile = profile.Normalized()
	if err := profile.Validate(); err != nil {
		return nil, &BreakEvenError{Operation: "income_limit", Message: "invalid profile", Cause: err}
	}

	current, err := s.evaluate(profile, profile.Income)
	if err != nil {
		return nil, &BreakEvenError{Operation: "income_limit", Message: "failed to evaluate current income", Cause: err}
	}

	result := &IncomeLimitResult{
		Profile:           profile,
		HouseholdSize:     current.metrics.HouseholdSize,
		FPL:               current.metrics.FPL,
		CurrentlyEligible: current.qualifies(),
		Warnings:          current.warnings,
	}

	floor, err := s.evaluate(profile, decimal.Zero)
	if err != nil {
		return nil, &BreakEvenError{Operation: "income_limit", Message: "failed to evaluate zero income", Cause: err}
	}
	if !floor.qualifies() {
		result.Status = StatusNeverQualifies
		return result, nil
	}

	hi := current.metrics.FPL.Mul(s.Options.UpperBoundPercent).Div(hundred).Round(2)
	ceiling, err := s.evaluate(profile, hi)
	if err != nil {
		return nil, &BreakEvenError{Operation: "income_limit", Message: "failed to evaluate search ceiling", Cause: err}
	}
	if ceiling.qualifies() {
		result.Status = StatusNoLimit
		result.Program = ceiling.program()
		result.MaxEligibleIncome = hi
		result.FPLPercentAtLimit = ceiling.metrics.FPLPercent
		result.Headroom = hi.Sub(profile.Income)
		return result, nil
	}

	lo, best := decimal.Zero, floor
	for result.Iterations < s.Options.MaxIterations && hi.Sub(lo).GreaterThan(s.Options.Tolerance) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Iterations++

		mid := lo.Add(hi).Div(two).Round(2)
		if mid.Equal(lo) || mid.Equal(hi) {
			break
		}
		eval, err := s.evaluate(profile, mid)
		if err != nil {
			return nil, &BreakEvenError{Operation: "income_limit", Message: fmt.Sprintf("failed to evaluate income %s", mid.StringFixed(2)), Cause: err}
		}
		if eval.qualifies() {
			lo, best = mid, eval
		} else {
			hi = mid
		}
	}

	result.Status = StatusFound
	result.Program = best.program()
	result.MaxEligibleIncome = lo
	result.FPLPercentAtLimit = best.metrics.FPLPercent
	result.Headroom = lo.Sub(profile.Income)
	return result, nil
}

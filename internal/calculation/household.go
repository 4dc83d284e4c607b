package calculation

import (
	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ValidateGuidelines rejects poverty guideline tables that would make the FPL
// zero or negative for some household size.
func ValidateGuidelines(g domain.FPLGuidelines) error {
	if !g.Base.IsPositive() {
		return &domain.ConfigurationError{Field: "poverty_guidelines.base", Reason: "must be greater than zero, got " + g.Base.String()}
	}
	if g.IncrementPerPerson.IsNegative() {
		return &domain.ConfigurationError{Field: "poverty_guidelines.increment_per_person", Reason: "cannot be negative, got " + g.IncrementPerPerson.String()}
	}
	return nil
}

// ComputeHouseholdMetrics derives the household size, its poverty guideline
// and the income as a percentage of that guideline, rounded to one decimal.
//
//	fpl        = base + (size - 1) * increment
//	fplPercent = round(income / fpl * 100, 1)
func ComputeHouseholdMetrics(profile domain.HouseholdProfile, g domain.FPLGuidelines) (domain.HouseholdMetrics, error) {
	if err := ValidateGuidelines(g); err != nil {
		return domain.HouseholdMetrics{}, err
	}

	size := profile.HouseholdSize()
	fpl := g.Base.Add(g.IncrementPerPerson.Mul(decimal.NewFromInt(int64(size - 1))))

	income := profile.Income
	if income.IsNegative() {
		income = decimal.Zero
	}
	percent := income.Div(fpl).Mul(hundred).Round(1)

	return domain.HouseholdMetrics{
		HouseholdSize: size,
		FPL:           fpl,
		FPLPercent:    percent,
	}, nil
}

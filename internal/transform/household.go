package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SetIncome replaces the household's annual income.
type SetIncome struct {
	Amount decimal.Decimal
}

func (si *SetIncome) Name() string { return "set_income" }

func (si *SetIncome) Description() string {
	return fmt.Sprintf("Set annual income to $%s", si.Amount.StringFixed(2))
}

func (si *SetIncome) Validate(base domain.HouseholdProfile) error {
	if si.Amount.IsNegative() {
		return NewTransformError(si.Name(), "validate", "income cannot be negative", nil)
	}
	return nil
}

func (si *SetIncome) Apply(base domain.HouseholdProfile) (domain.HouseholdProfile, error) {
	base.Income = si.Amount
	return base, nil
}

// AdjustIncome adds Delta (which may be negative) to the annual income.
// The result is floored at zero.
type AdjustIncome struct {
	Delta decimal.Decimal
}

func (ai *AdjustIncome) Name() string { return "adjust_income" }

func (ai *AdjustIncome) Description() string {
	if ai.Delta.IsNegative() {
		return fmt.Sprintf("Reduce annual income by $%s", ai.Delta.Abs().StringFixed(2))
	}
	return fmt.Sprintf("Increase annual income by $%s", ai.Delta.StringFixed(2))
}

func (ai *AdjustIncome) Validate(base domain.HouseholdProfile) error { return nil }

func (ai *AdjustIncome) Apply(base domain.HouseholdProfile) (domain.HouseholdProfile, error) {
	base.Income = decimal.Max(decimal.Zero, base.Income.Add(ai.Delta))
	return base, nil
}

// ScaleIncome sets the income to Percent of its current value (110 is a 10% raise).
type ScaleIncome struct {
	Percent decimal.Decimal
}

func (sc *ScaleIncome) Name() string { return "scale_income" }

func (sc *ScaleIncome) Description() string {
	return fmt.Sprintf("Scale annual income to %s%% of current", sc.Percent.StringFixed(1))
}

func (sc *ScaleIncome) Validate(base domain.HouseholdProfile) error {
	if sc.Percent.IsNegative() {
		return NewTransformError(sc.Name(), "validate", "percent cannot be negative", nil)
	}
	return nil
}

func (sc *ScaleIncome) Apply(base domain.HouseholdProfile) (domain.HouseholdProfile, error) {
	base.Income = base.Income.Mul(sc.Percent).Div(hundred).Round(2)
	return base, nil
}

// SetDependents replaces the number of dependents.
type SetDependents struct {
	Count int
}

func (sd *SetDependents) Name() string { return "set_dependents" }

func (sd *SetDependents) Description() string {
	return fmt.Sprintf("Set dependents to %d", sd.Count)
}

func (sd *SetDependents) Validate(base domain.HouseholdProfile) error {
	if sd.Count < 0 {
		return NewTransformError(sd.Name(), "validate", fmt.Sprintf("dependents cannot be negative, got %d", sd.Count), nil)
	}
	return nil
}

func (sd *SetDependents) Apply(base domain.HouseholdProfile) (domain.HouseholdProfile, error) {
	base.Dependents = sd.Count
	return base, nil
}

// AddDependents adds (or, when negative, removes) dependents.
type AddDependents struct {
	Count int
}

func (ad *AddDependents) Name() string { return "add_dependents" }

func (ad *AddDependents) Description() string {
	if ad.Count < 0 {
		return fmt.Sprintf("Remove %d dependent(s)", -ad.Count)
	}
	return fmt.Sprintf("Add %d dependent(s)", ad.Count)
}

func (ad *AddDependents) Validate(base domain.HouseholdProfile) error {
	if base.Dependents+ad.Count < 0 {
		return NewTransformError(ad.Name(), "validate",
			fmt.Sprintf("cannot remove %d dependents from a household with %d", -ad.Count, base.Dependents), nil)
	}
	return nil
}

func (ad *AddDependents) Apply(base domain.HouseholdProfile) (domain.HouseholdProfile, error) {
	base.Dependents += ad.Count
	return base, nil
}

// SetAge replaces the applicant's age.
type SetAge struct {
	Age int
}

func (sa *SetAge) Name() string { return "set_age" }

func (sa *SetAge) Description() string {
	return fmt.Sprintf("Set applicant age to %d", sa.Age)
}

func (sa *SetAge) Validate(base domain.HouseholdProfile) error {
	if sa.Age < 0 {
		return NewTransformError(sa.Name(), "validate", fmt.Sprintf("age cannot be negative, got %d", sa.Age), nil)
	}
	return nil
}

func (sa *SetAge) Apply(base domain.HouseholdProfile) (domain.HouseholdProfile, error) {
	base.Age = sa.Age
	return base, nil
}

// MoveState relocates the household to another state.
type MoveState struct {
	State string
}

func (ms *MoveState) Name() string { return "move_state" }

func (ms *MoveState) Description() string {
	return fmt.Sprintf("Move household to %s", strings.ToUpper(ms.State))
}

func (ms *MoveState) Validate(base domain.HouseholdProfile) error {
	if len(strings.TrimSpace(ms.State)) != 2 {
		return NewTransformError(ms.Name(), "validate", fmt.Sprintf("state must be a two-letter code, got %q", ms.State), nil)
	}
	return nil
}

func (ms *MoveState) Apply(base domain.HouseholdProfile) (domain.HouseholdProfile, error) {
	base.State = strings.ToUpper(strings.TrimSpace(ms.State))
	return base, nil
}

// SetDental changes the dental coverage preference.
type SetDental struct {
	Wants bool
}

func (sd *SetDental) Name() string { return "set_dental" }

func (sd *SetDental) Description() string {
	if sd.Wants {
		return "Include dental coverage"
	}
	return "Exclude dental coverage"
}

func (sd *SetDental) Validate(base domain.HouseholdProfile) error { return nil }

func (sd *SetDental) Apply(base domain.HouseholdProfile) (domain.HouseholdProfile, error) {
	base.WantsDental = sd.Wants
	return base, nil
}

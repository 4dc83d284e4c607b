package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// HouseholdProfile describes the applicant household. It is created once per
// session from user input and treated as an immutable value afterwards.
type HouseholdProfile struct {
	Name        string          `yaml:"name" json:"name" validate:"required"`
	Age         int             `yaml:"age" json:"age" validate:"gte=0,lte=130"`
	Dependents  int             `yaml:"dependents" json:"dependents" validate:"gte=0,lte=50"`
	Income      decimal.Decimal `yaml:"income" json:"income" validate:"-"`                  // Total annual household income (USD)
	State       string          `yaml:"state" json:"state" validate:"required,len=2,alpha"` // Two-letter postal code
	WantsDental bool            `yaml:"wants_dental" json:"wantsDental"`
}

var profileValidator = validator.New()

// Validate checks the profile fields. Income is checked by hand because the
// validator cannot compare decimal values.
func (p HouseholdProfile) Validate() error {
	if err := profileValidator.Struct(p); err != nil {
		return fmt.Errorf("invalid household profile: %w", err)
	}
	if p.Income.IsNegative() {
		return fmt.Errorf("invalid household profile: income cannot be negative")
	}
	return nil
}

// Normalized returns a copy with the state upper-cased and surrounding
// whitespace removed from the text fields.
func (p HouseholdProfile) Normalized() HouseholdProfile {
	p.Name = strings.TrimSpace(p.Name)
	p.State = strings.ToUpper(strings.TrimSpace(p.State))
	return p
}

// HouseholdSize returns the applicant plus dependents.
func (p HouseholdProfile) HouseholdSize() int {
	return 1 + p.Dependents
}

// HouseholdMetrics holds the derived poverty-level figures for a household
type HouseholdMetrics struct {
	HouseholdSize int             `json:"householdSize" yaml:"household_size"`
	FPL           decimal.Decimal `json:"fpl" yaml:"fpl"`                 // Poverty guideline for this household size
	FPLPercent    decimal.Decimal `json:"fplPercent" yaml:"fpl_percent"` // Income as % of FPL, one decimal place
}

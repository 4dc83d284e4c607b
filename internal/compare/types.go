package compare

import (
	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single what-if scenario with its key metrics
type ComparisonResult struct {
	ScenarioName string                  `json:"scenarioName"`
	Description  string                  `json:"description,omitempty"`
	Profile      domain.HouseholdProfile `json:"profile"`

	// Key Metrics
	HouseholdSize      int             `json:"householdSize"`
	FPL                decimal.Decimal `json:"fpl"`
	FPLPercent         decimal.Decimal `json:"fplPercent"`
	IsMedicaidEligible bool            `json:"isMedicaidEligible"`
	IsCHIPEligible     bool            `json:"isChipEligible"`
	PlanCount          int             `json:"planCount"`
	BenefitCount       int             `json:"benefitCount"`
	WarningCount       int             `json:"warningCount"`

	// Comparison to Base
	FPLPercentDiff     decimal.Decimal `json:"fplPercentDiff"`
	PlanCountDiff      int             `json:"planCountDiff"`
	BenefitCountDiff   int             `json:"benefitCountDiff"`
	EligibilityChanged bool            `json:"eligibilityChanged"`
}

// Program returns the program the scenario qualifies for, or "" when none.
func (r ComparisonResult) Program() string {
	switch {
	case r.IsMedicaidEligible:
		return "Medicaid"
	case r.IsCHIPEligible:
		return "CHIP"
	default:
		return ""
	}
}

// QualifiesForAssistance reports whether either public program applies.
func (r ComparisonResult) QualifiesForAssistance() bool {
	return r.IsMedicaidEligible || r.IsCHIPEligible
}

// ComparisonSet represents a base household and its alternatives
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ProfilePath        string             `json:"profilePath,omitempty"`
}

// resultFromReport extracts comparison metrics from an engine report
func resultFromReport(name, description string, report *domain.EligibilityReport) ComparisonResult {
	return ComparisonResult{
		ScenarioName:       name,
		Description:        description,
		Profile:            report.Profile,
		HouseholdSize:      report.Eligibility.HouseholdSize,
		FPL:                report.Eligibility.FPL,
		FPLPercent:         report.Eligibility.FPLPercent,
		IsMedicaidEligible: report.Eligibility.IsMedicaidEligible,
		IsCHIPEligible:     report.Eligibility.IsCHIPEligible,
		PlanCount:          len(report.Plans),
		BenefitCount:       report.BenefitCount(),
		WarningCount:       len(report.Warnings),
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.FPLPercentDiff = scenario.FPLPercent.Sub(base.FPLPercent)
	scenario.PlanCountDiff = scenario.PlanCount - base.PlanCount
	scenario.BenefitCountDiff = scenario.BenefitCount - base.BenefitCount
	scenario.EligibilityChanged = scenario.IsMedicaidEligible != base.IsMedicaidEligible ||
		scenario.IsCHIPEligible != base.IsCHIPEligible
	return scenario
}

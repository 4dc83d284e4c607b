package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// EligibilityResult is the outcome of the Medicaid/CHIP screen for a household.
// At most one of the two flags is ever set.
type EligibilityResult struct {
	HouseholdSize      int             `json:"householdSize" yaml:"household_size"`
	FPL                decimal.Decimal `json:"fpl" yaml:"fpl"`
	FPLPercent         decimal.Decimal `json:"fplPercent" yaml:"fpl_percent"`
	IsMedicaidEligible bool            `json:"isMedicaidEligible" yaml:"is_medicaid_eligible"`
	IsCHIPEligible     bool            `json:"isChipEligible" yaml:"is_chip_eligible"`
}

// QualifiesForAssistance reports whether either public program applies.
func (r EligibilityResult) QualifiesForAssistance() bool {
	return r.IsMedicaidEligible || r.IsCHIPEligible
}

// Headline returns the one-line eligibility message shown to the applicant.
func (r EligibilityResult) Headline() string {
	switch {
	case r.IsMedicaidEligible:
		return "You may be eligible for Medicaid in your state."
	case r.IsCHIPEligible:
		return "You may be eligible for CHIP (Children's Health Insurance Program)."
	default:
		return "You may not qualify for Medicaid or CHIP."
	}
}

// WarningKind classifies a non-fatal problem found while computing a report
type WarningKind string

const (
	WarningThresholdNotFound  WarningKind = "threshold_not_found"
	WarningThresholdParse     WarningKind = "threshold_parse_error"
	WarningUngroupablePlanRow WarningKind = "ungroupable_plan_row"
	WarningSummaryUnavailable WarningKind = "summary_unavailable"
	WarningSummaryTruncated   WarningKind = "summary_plans_truncated"
)

// Warning is a non-fatal condition surfaced alongside a result.
type Warning struct {
	Kind    WarningKind `json:"kind" yaml:"kind"`
	Message string      `json:"message" yaml:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

// HasWarning reports whether warnings contains at least one of kind.
func HasWarning(warnings []Warning, kind WarningKind) bool {
	for _, w := range warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}

// EligibilityReport is the complete result handed to callers: the screen
// outcome, the candidate plans and every warning raised along the way.
type EligibilityReport struct {
	Profile     HouseholdProfile  `json:"profile" yaml:"profile"`
	Eligibility EligibilityResult `json:"eligibility" yaml:"eligibility"`
	Plans       []PlanGroup       `json:"plans" yaml:"plans"`
	Warnings    []Warning         `json:"warnings" yaml:"warnings"`
}

// BenefitCount returns the number of benefit rows across all plans.
func (r *EligibilityReport) BenefitCount() int {
	n := 0
	for _, p := range r.Plans {
		n += len(p.Benefits)
	}
	return n
}

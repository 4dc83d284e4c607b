package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Household Size",
		"Income",
		"FPL",
		"FPL Percent",
		"Medicaid Eligible",
		"CHIP Eligible",
		"Plans",
		"Benefits",
		"FPL Percent Diff",
		"Plan Count Diff",
		"Eligibility Changed",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		strconv.Itoa(result.HouseholdSize),
		result.Profile.Income.StringFixed(2),
		result.FPL.StringFixed(2),
		result.FPLPercent.StringFixed(1),
		strconv.FormatBool(result.IsMedicaidEligible),
		strconv.FormatBool(result.IsCHIPEligible),
		strconv.Itoa(result.PlanCount),
		strconv.Itoa(result.BenefitCount),
		result.FPLPercentDiff.StringFixed(1),
		strconv.Itoa(result.PlanCountDiff),
		strconv.FormatBool(result.EligibilityChanged),
	}
}

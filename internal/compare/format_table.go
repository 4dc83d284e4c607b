package compare

import (
	"fmt"
	"strings"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("HOUSEHOLD SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ProfilePath != "" {
		sb.WriteString(fmt.Sprintf("Profile: %s\n", compSet.ProfilePath))
	}
	sb.WriteString("\n")

	nameWidth := 24
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		6, "Size",
		numWidth, "Income",
		numWidth, "% of FPL",
		10, "Program",
		numWidth, "Plans"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  Change:           %s\n", alt.Description))
			}
			sb.WriteString(fmt.Sprintf("  Income vs FPL:    %s%s points\n", signed(alt.FPLPercentDiff.Sign()), alt.FPLPercentDiff.StringFixed(1)))
			if alt.EligibilityChanged {
				sb.WriteString(fmt.Sprintf("  Eligibility:      %s -> %s\n", programOrNone(compSet.BaseResult), programOrNone(&alt)))
			}
			if alt.PlanCountDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Plans:            %s%d\n", signed(alt.PlanCountDiff), alt.PlanCountDiff))
			}
			if alt.BenefitCountDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Benefits:         %s%d\n", signed(alt.BenefitCountDiff), alt.BenefitCountDiff))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*d %*s %*s %*s %*d\n",
		nameWidth, tf.truncate(name, nameWidth),
		6, result.HouseholdSize,
		numWidth, "$"+result.Profile.Income.StringFixed(0),
		numWidth, result.FPLPercent.StringFixed(1)+"%",
		10, programOrNone(result),
		numWidth, result.PlanCount)
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s (%s) | ", compSet.BaseScenarioName, programOrNone(compSet.BaseResult)))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		sb.WriteString(fmt.Sprintf("%s: %s, %s%d plans", alt.ScenarioName, programOrNone(&alt), signed(alt.PlanCountDiff), alt.PlanCountDiff))
	}

	return sb.String()
}

func programOrNone(r *ComparisonResult) string {
	if r == nil || r.Program() == "" {
		return "none"
	}
	return r.Program()
}

// signed returns "+" for positive values; negatives already carry their sign
func signed(sign int) string {
	if sign > 0 {
		return "+"
	}
	return ""
}

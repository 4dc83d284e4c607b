package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats income limit results for the console
type TableFormatter struct{}

// Format renders a single income limit result
func (tf *TableFormatter) Format(result *IncomeLimitResult) string {
	var sb strings.Builder

	sb.WriteString("MEDICAID/CHIP INCOME LIMIT\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Household:           %s, age %d, %s\n", result.Profile.Name, result.Profile.Age, result.Profile.State))
	sb.WriteString(fmt.Sprintf("Household Size:      %d\n", result.HouseholdSize))
	sb.WriteString(fmt.Sprintf("Poverty Guideline:   $%s\n", tf.formatCurrency(result.FPL)))
	sb.WriteString(fmt.Sprintf("Current Income:      $%s\n", tf.formatCurrency(result.Profile.Income)))
	sb.WriteString(fmt.Sprintf("Currently Eligible:  %s\n", tf.formatBool(result.CurrentlyEligible)))
	sb.WriteString("\n")

	switch result.Status {
	case StatusNeverQualifies:
		sb.WriteString("This household does not qualify for Medicaid or CHIP at any income.\n")
	case StatusNoLimit:
		sb.WriteString(fmt.Sprintf("Qualifies for %s at every income up to $%s (%s%% of FPL).\n",
			result.Program, tf.formatCurrency(result.MaxEligibleIncome), result.FPLPercentAtLimit.StringFixed(1)))
	default:
		sb.WriteString(fmt.Sprintf("Program at Limit:    %s\n", result.Program))
		sb.WriteString(fmt.Sprintf("Max Eligible Income: $%s\n", tf.formatCurrency(result.MaxEligibleIncome)))
		sb.WriteString(fmt.Sprintf("Income vs FPL:       %s%%\n", result.FPLPercentAtLimit.StringFixed(1)))
		sb.WriteString(fmt.Sprintf("Headroom:            %s\n", tf.formatDelta(result.Headroom)))
		sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	}

	if len(result.Warnings) > 0 {
		sb.WriteString("\nWARNINGS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, w := range result.Warnings {
			sb.WriteString(fmt.Sprintf("  ! %s\n", w))
		}
	}

	return sb.String()
}

// FormatTable renders one row per household size
func (tf *TableFormatter) FormatTable(results []IncomeLimitResult) string {
	var sb strings.Builder

	sb.WriteString("INCOME LIMITS BY HOUSEHOLD SIZE\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-6s %14s %-10s %16s %12s\n", "Size", "FPL", "Program", "Max Income", "% of FPL"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, r := range results {
		program, limit, pct := "none", "-", "-"
		switch r.Status {
		case StatusFound:
			program, limit, pct = r.Program, "$"+tf.formatCurrency(r.MaxEligibleIncome), r.FPLPercentAtLimit.StringFixed(1)+"%"
		case StatusNoLimit:
			program, limit, pct = r.Program, "no limit", "-"
		}
		sb.WriteString(fmt.Sprintf("%-6d %14s %-10s %16s %12s\n",
			r.HouseholdSize, "$"+tf.formatCurrency(r.FPL), program, limit, pct))
	}

	return sb.String()
}

func (tf *TableFormatter) formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// formatDelta renders a signed dollar amount
func (tf *TableFormatter) formatDelta(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + tf.formatCurrency(d.Abs())
	}
	return "+$" + tf.formatCurrency(d)
}

// formatCurrency formats a decimal with thousands separators and cents
func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	for i := len(intPart) - 3; i > 0; i -= 3 {
		intPart = intPart[:i] + "," + intPart[i:]
	}
	if neg {
		return "-" + intPart + frac
	}
	return intPart + frac
}

// JSONFormatter formats income limit results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format marshals a single result or a table of results
func (jf *JSONFormatter) Format(v interface{}) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

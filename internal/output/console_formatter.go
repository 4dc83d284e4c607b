package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/plan4you/internal/advisor"
	"github.com/rgehrsitz/plan4you/internal/domain"
)

// ConsoleFormatter renders the human-readable eligibility report.
type ConsoleFormatter struct {
	MaxPlans int // 0 prints every plan
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(rec *advisor.Recommendation) ([]byte, error) {
	if rec == nil || rec.Report == nil {
		return nil, fmt.Errorf("no report to format")
	}
	report := rec.Report
	elig := report.Eligibility
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf, "HEALTH COVERAGE ELIGIBILITY REPORT")
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf)

	p := report.Profile
	fmt.Fprintln(&buf, "HOUSEHOLD")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "  Name:             %s\n", p.Name)
	fmt.Fprintf(&buf, "  State:            %s\n", p.State)
	fmt.Fprintf(&buf, "  Age:              %d\n", p.Age)
	fmt.Fprintf(&buf, "  Household Size:   %d\n", elig.HouseholdSize)
	fmt.Fprintf(&buf, "  Annual Income:    %s\n", FormatCurrency(p.Income))
	fmt.Fprintf(&buf, "  Dental Coverage:  %s\n", yesNo(p.WantsDental))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "ELIGIBILITY")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "  Poverty Guideline: %s\n", FormatCurrency(elig.FPL))
	fmt.Fprintf(&buf, "  Income vs FPL:     %s\n", FormatPercentage(elig.FPLPercent))
	fmt.Fprintf(&buf, "  %s\n", elig.Headline())
	fmt.Fprintln(&buf)

	if len(report.Warnings) > 0 {
		fmt.Fprintln(&buf, "WARNINGS")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		for _, w := range report.Warnings {
			fmt.Fprintf(&buf, "  ! %s\n", w)
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "MATCHING PLANS")
	fmt.Fprintln(&buf, strings.Repeat("-", 80))
	if len(report.Plans) == 0 {
		fmt.Fprintln(&buf, "  No plans matched this household.")
	}
	shown := report.Plans
	if c.MaxPlans > 0 && len(shown) > c.MaxPlans {
		shown = shown[:c.MaxPlans]
	}
	for _, plan := range shown {
		writePlan(&buf, plan)
	}
	if len(shown) < len(report.Plans) {
		fmt.Fprintf(&buf, "  ... %d more plans not shown\n", len(report.Plans)-len(shown))
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Total: %d plans, %d benefits\n", len(report.Plans), report.BenefitCount())

	for _, s := range rec.Summaries {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "%s ADVISOR\n", strings.ToUpper(string(s.Kind)))
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		fmt.Fprintln(&buf, s.Text)
	}

	return buf.Bytes(), nil
}

func writePlan(buf *bytes.Buffer, plan domain.PlanGroup) {
	fmt.Fprintf(buf, "Plan %s\n", plan.PlanID)
	fmt.Fprintf(buf, "  %-45s %-12s %-14s %s\n", "Benefit", "Covered", "Copay Tier 1", "Coins Tier 1")
	for _, b := range plan.Benefits {
		fmt.Fprintf(buf, "  %-45s %-12s %-14s %s\n", truncate(b.Benefit, 45), truncate(b.Covered, 12), truncate(b.CopayTier1, 14), b.CoinsuranceTier1)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

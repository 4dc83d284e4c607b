package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/rgehrsitz/plan4you/internal/output"
	"github.com/rgehrsitz/plan4you/internal/tui/components"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var content string
	switch {
	case m.err != nil:
		content = m.renderError()
	case m.loading:
		content = m.renderLoading()
	case m.scene == SceneResults:
		content = m.renderResults()
	default:
		content = m.renderIntake()
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	title := TitleStyle.Render("plan4you - Health Coverage Finder")
	crumb := SubtitleStyle.Render(m.scene.String())
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, title, " ", crumb),
		"",
		content,
		"",
		m.renderStatusBar(),
	)
}

func (m Model) renderStatusBar() string {
	var shortcuts []string
	switch m.scene {
	case SceneIntake:
		shortcuts = []string{
			formatShortcut("tab", "next"),
			formatShortcut("shift+tab", "back"),
			formatShortcut("enter", "submit on last field"),
			formatShortcut("ctrl+c", "quit"),
		}
	case SceneResults:
		shortcuts = []string{
			formatShortcut("↑/↓", "scroll plans"),
			formatShortcut("n", "new household"),
			formatShortcut("q", "quit"),
		}
	}
	return StatusBarStyle.Render(strings.Join(shortcuts, " • "))
}

func formatShortcut(k, desc string) string {
	return StatusKeyStyle.Render(k) + " " + desc
}

func (m Model) renderIntake() string {
	var b strings.Builder
	b.WriteString("Tell us about your household.\n\n")
	for i, in := range m.inputs {
		label := LabelStyle.Render(fieldLabels[i])
		if i == m.focused {
			label = FocusedLabelStyle.Render(fieldLabels[i])
		}
		b.WriteString(label + in.View() + "\n")
	}
	if m.formErr != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.formErr) + "\n")
	}
	return BorderStyle.Render(b.String())
}

func (m Model) renderLoading() string {
	return BorderStyle.Render(fmt.Sprintf("%s Checking eligibility and matching plans...", m.spinner.View()))
}

func (m Model) renderError() string {
	return ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err))
}

func (m Model) renderResults() string {
	if m.result == nil || m.result.Report == nil {
		return "No results."
	}
	report := m.result.Report
	elig := report.Eligibility

	var b strings.Builder
	headline := HeadlineNeutralStyle.Render(elig.Headline())
	if elig.QualifiesForAssistance() {
		headline = HeadlinePositiveStyle.Render(elig.Headline())
	}
	b.WriteString(headline + "\n\n")
	b.WriteString(components.MetricGrid([]*components.MetricCard{
		components.NewMetricCard("Household", fmt.Sprintf("%d in %s", elig.HouseholdSize, report.Profile.State)),
		components.NewMetricCard("Annual income", output.FormatCurrency(report.Profile.Income)).
			WithDescription("FPL " + output.FormatCurrency(elig.FPL)),
		components.NewMetricCard("Income vs FPL", output.FormatPercentage(elig.FPLPercent)).
			WithStatus(elig.QualifiesForAssistance(), programLabel(elig)),
	}, 3) + "\n")
	for _, w := range report.Warnings {
		b.WriteString(WarningStyle.Render("! "+w.String()) + "\n")
	}
	fmt.Fprintf(&b, "\n%d matching plans, %d benefits\n\n", len(report.Plans), report.BenefitCount())

	visible := m.height - 16
	if visible < 1 {
		visible = 1
	}
	shown := 0
	for i := m.offset; i < len(report.Plans) && shown < visible; i++ {
		plan := report.Plans[i]
		b.WriteString(PlanIDStyle.Render(plan.PlanID) + "\n")
		shown++
		for _, ben := range plan.Benefits {
			if shown >= visible {
				break
			}
			fmt.Fprintf(&b, "  %-40s %-12s copay %-10s coins %s\n", ben.Benefit, ben.Covered, ben.CopayTier1, ben.CoinsuranceTier1)
			shown++
		}
	}

	for _, s := range m.result.Summaries {
		fmt.Fprintf(&b, "\n%s\n%s\n", SubtitleStyle.Render(strings.ToUpper(string(s.Kind))+" ADVISOR"), s.Text)
	}
	return b.String()
}

func programLabel(elig domain.EligibilityResult) string {
	switch {
	case elig.IsMedicaidEligible:
		return "Medicaid"
	case elig.IsCHIPEligible:
		return "CHIP"
	default:
		return "above limits"
	}
}

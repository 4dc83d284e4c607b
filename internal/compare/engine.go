package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/plan4you/internal/calculation"
	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/rgehrsitz/plan4you/internal/refdata"
	"github.com/rgehrsitz/plan4you/internal/transform"
)

// DefaultBaseScenarioName labels the unmodified household.
const DefaultBaseScenarioName = "base"

// CompareEngine orchestrates what-if comparison of a household
type CompareEngine struct {
	CalcEngine       *calculation.CalculationEngine
	Ref              *refdata.ReferenceData
	TemplateRegistry *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine with the built-in templates
func NewCompareEngine(calcEngine *calculation.CalculationEngine, ref *refdata.ReferenceData) *CompareEngine {
	return &CompareEngine{
		CalcEngine:       calcEngine,
		Ref:              ref,
		TemplateRegistry: transform.CreateBuiltInTemplates(),
	}
}

// Scenario is an explicitly defined alternative household
type Scenario struct {
	Name        string
	Description string
	Transforms  []transform.ProfileTransform
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string     // Label for the unmodified household
	Templates        []string   // Built-in template names to apply
	Scenarios        []Scenario // Custom alternatives, evaluated after templates
	ProfilePath      string     // Shown in reports
}

// Compare evaluates the base household and every requested alternative
func (ce *CompareEngine) Compare(ctx context.Context, profile domain.HouseholdProfile, options CompareOptions) (*ComparisonSet, error) {
	if options.BaseScenarioName == "" {
		options.BaseScenarioName = DefaultBaseScenarioName
	}

	scenarios := make([]Scenario, 0, len(options.Templates)+len(options.Scenarios))
	for _, name := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		scenarios = append(scenarios, Scenario{Name: template.Name, Description: template.Description, Transforms: template.Transforms})
	}
	scenarios = append(scenarios, options.Scenarios...)

	baseReport, err := ce.CalcEngine.ComputeEligibilityAndPlans(profile, ce.Ref)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := resultFromReport(options.BaseScenarioName, "", baseReport)

	alternatives := []ComparisonResult{}
	for _, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(baseReport.Profile, sc.Transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply scenario %s: %w", sc.Name, err)
		}

		report, err := ce.CalcEngine.ComputeEligibilityAndPlans(modified, ce.Ref)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", sc.Name, err)
		}

		description := sc.Description
		if description == "" {
			description = describe(sc.Transforms)
		}
		alternatives = append(alternatives, CalculateComparison(resultFromReport(sc.Name, description, report), baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   options.BaseScenarioName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		ProfilePath:        options.ProfilePath,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func describe(transforms []transform.ProfileTransform) string {
	parts := make([]string, 0, len(transforms))
	for _, t := range transforms {
		parts = append(parts, t.Description())
	}
	return strings.Join(parts, "; ")
}

// GenerateRecommendations summarizes how the alternatives differ from the base
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	for _, alt := range compSet.AlternativeResults {
		if !alt.EligibilityChanged {
			continue
		}
		switch {
		case alt.QualifiesForAssistance() && !base.QualifiesForAssistance():
			recommendations = append(recommendations,
				fmt.Sprintf("Gains Coverage: %s qualifies for %s at %s%% of FPL", alt.ScenarioName, alt.Program(), alt.FPLPercent.StringFixed(1)))
		case !alt.QualifiesForAssistance() && base.QualifiesForAssistance():
			recommendations = append(recommendations,
				fmt.Sprintf("Coverage Risk: %s loses %s eligibility at %s%% of FPL", alt.ScenarioName, base.Program(), alt.FPLPercent.StringFixed(1)))
		default:
			recommendations = append(recommendations,
				fmt.Sprintf("Program Change: %s moves from %s to %s", alt.ScenarioName, base.Program(), alt.Program()))
		}
	}

	mostPlans := base
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].PlanCount > mostPlans.PlanCount {
			mostPlans = &compSet.AlternativeResults[i]
		}
	}
	if mostPlans != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Most Options: %s offers %d more plans than %s", mostPlans.ScenarioName, mostPlans.PlanCount-base.PlanCount, base.ScenarioName))
	}

	return recommendations
}

package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/plan4you/internal/calculation"
	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/rgehrsitz/plan4you/internal/refdata"
	"github.com/rgehrsitz/plan4you/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testReferenceData() *refdata.ReferenceData {
	return refdata.New(
		[]domain.BenefitRecord{
			{PlanID: "TX-A", StateCode: "TX", BenefitName: "Primary Care Visit to Treat an Injury or Illness", IsCovered: "Covered", CopayTier1: strPtr("$30.00")},
			{PlanID: "TX-A", StateCode: "TX", BenefitName: "Accidental Dental", IsCovered: "Covered", CoinsuranceTier1: strPtr("20.00%")},
			{PlanID: "TX-B", StateCode: "TX", BenefitName: "Generic Drugs", IsCovered: "Covered"},
			{PlanID: "TX-C", StateCode: "TX", BenefitName: "Emergency Room Services", IsCovered: "Covered"},
		},
		[]domain.EligibilityThresholdRow{
			{State: "TX", MedicaidAges0to1: "198%", MedicaidAges1to5: "144%", MedicaidAges6to18: "138%", SeparateCHIP: "201%"},
		},
	)
}

// A 10-year-old applicant in a household of two earning $40,000 sits at 202.8% of FPL.
func childProfile() domain.HouseholdProfile {
	return domain.HouseholdProfile{
		Name:       "Sam",
		Age:        10,
		Dependents: 1,
		Income:     decimal.NewFromInt(40000),
		State:      "tx",
	}
}

func newEngine() *CompareEngine {
	return NewCompareEngine(calculation.NewCalculationEngine(), testReferenceData())
}

func TestCompare_Templates(t *testing.T) {
	compSet, err := newEngine().Compare(context.Background(), childProfile(), CompareOptions{
		Templates:   []string{"job_loss", "raise_10"},
		ProfilePath: "family.yaml",
	})
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseScenarioName, compSet.BaseScenarioName)
	base := compSet.BaseResult
	require.NotNil(t, base)
	assert.Equal(t, "TX", base.Profile.State)
	assert.Equal(t, 2, base.HouseholdSize)
	assert.Equal(t, "202.8", base.FPLPercent.StringFixed(1))
	assert.False(t, base.QualifiesForAssistance())
	assert.Equal(t, 1, base.PlanCount, "only covered rows with cost sharing pass the gate")

	require.Len(t, compSet.AlternativeResults, 2)

	jobLoss := compSet.AlternativeResults[0]
	assert.Equal(t, "job_loss", jobLoss.ScenarioName)
	assert.Equal(t, "Household loses all earned income", jobLoss.Description)
	assert.True(t, jobLoss.IsMedicaidEligible)
	assert.True(t, jobLoss.EligibilityChanged)
	assert.Equal(t, 3, jobLoss.PlanCount)
	assert.Equal(t, 2, jobLoss.PlanCountDiff)
	assert.Equal(t, "-202.8", jobLoss.FPLPercentDiff.StringFixed(1))

	raise := compSet.AlternativeResults[1]
	assert.False(t, raise.EligibilityChanged)
	assert.Equal(t, 0, raise.PlanCountDiff)
	assert.True(t, raise.Profile.Income.Equal(decimal.NewFromInt(44000)))

	assert.Equal(t, []string{
		"Gains Coverage: job_loss qualifies for Medicaid at 0.0% of FPL",
		"Most Options: job_loss offers 2 more plans than base",
	}, compSet.Recommendations)
}

func TestCompare_CustomScenarios(t *testing.T) {
	registry := transform.NewTransformRegistry()
	transforms, err := registry.ParseTransformSpecs([]string{"set_income:amount=45000", "set_dental:wants=true"})
	require.NoError(t, err)

	poor := childProfile()
	poor.Income = decimal.NewFromInt(10000)

	compSet, err := newEngine().Compare(context.Background(), poor, CompareOptions{
		BaseScenarioName: "current",
		Scenarios: []Scenario{
			{Name: "promotion", Transforms: transforms},
		},
	})
	require.NoError(t, err)

	assert.True(t, compSet.BaseResult.IsMedicaidEligible)
	alt := compSet.AlternativeResults[0]
	assert.Equal(t, "Set annual income to $45000.00; Include dental coverage", alt.Description)
	assert.False(t, alt.QualifiesForAssistance())
	assert.Equal(t, 1, alt.PlanCount, "only the dental row with cost sharing survives")
	assert.Contains(t, compSet.Recommendations, "Coverage Risk: promotion loses Medicaid eligibility at 228.2% of FPL")
}

func TestCompare_MedicaidToCHIP(t *testing.T) {
	poor := childProfile()
	poor.Income = decimal.NewFromInt(10000)

	compSet, err := newEngine().Compare(context.Background(), poor, CompareOptions{
		Scenarios: []Scenario{{Name: "promotion", Transforms: []transform.ProfileTransform{&transform.SetIncome{Amount: decimal.NewFromInt(30000)}}}},
	})
	require.NoError(t, err)

	alt := compSet.AlternativeResults[0]
	assert.Equal(t, "152.1", alt.FPLPercent.StringFixed(1))
	assert.True(t, alt.IsCHIPEligible, "over the Medicaid line, under the CHIP line")
	assert.Contains(t, compSet.Recommendations, "Program Change: promotion moves from Medicaid to CHIP")
}

func TestCompare_Errors(t *testing.T) {
	engine := newEngine()

	_, err := engine.Compare(context.Background(), childProfile(), CompareOptions{Templates: []string{"lottery"}})
	assert.ErrorContains(t, err, "template lottery not found")

	_, err = engine.Compare(context.Background(), childProfile(), CompareOptions{
		Scenarios: []Scenario{{Name: "bad", Transforms: []transform.ProfileTransform{&transform.AddDependents{Count: -5}}}},
	})
	assert.ErrorContains(t, err, "failed to apply scenario bad")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.Compare(ctx, childProfile(), CompareOptions{Templates: []string{"job_loss"}})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = NewCompareEngine(calculation.NewCalculationEngine(), nil).Compare(context.Background(), childProfile(), CompareOptions{})
	assert.ErrorContains(t, err, "failed to calculate base scenario")
}

func TestGenerateRecommendations_Empty(t *testing.T) {
	assert.Empty(t, GenerateRecommendations(&ComparisonSet{}))
	assert.Empty(t, GenerateRecommendations(&ComparisonSet{BaseResult: &ComparisonResult{ScenarioName: "base"}}))
}

func TestGenerateRecommendations_ProgramChange(t *testing.T) {
	base := &ComparisonResult{ScenarioName: "base", IsMedicaidEligible: true, PlanCount: 3}
	alt := CalculateComparison(ComparisonResult{ScenarioName: "older", IsCHIPEligible: true, PlanCount: 3}, *base)

	recs := GenerateRecommendations(&ComparisonSet{BaseResult: base, AlternativeResults: []ComparisonResult{alt}})
	assert.Equal(t, []string{"Program Change: older moves from Medicaid to CHIP"}, recs)
}

package sequencing

import (
	"testing"

	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlans() []domain.PlanGroup {
	return []domain.PlanGroup{
		{PlanID: "A", Benefits: []domain.BenefitSummary{
			{Benefit: "Primary Care", Covered: "Covered", CopayTier1: "$30.00", CoinsuranceTier1: domain.NotAvailable},
		}},
		{PlanID: "B", Benefits: []domain.BenefitSummary{
			{Benefit: "Generic Drugs", Covered: "Covered", CopayTier1: "$10.00 Copay after deductible", CoinsuranceTier1: "0.00%"},
			{Benefit: "Specialist", Covered: "Covered", CopayTier1: "No Charge", CoinsuranceTier1: "20.00%"},
			{Benefit: "Bariatric Surgery", Covered: "Not Covered", CopayTier1: domain.NotAvailable, CoinsuranceTier1: domain.NotAvailable},
		}},
		{PlanID: "C", Benefits: []domain.BenefitSummary{
			{Benefit: "Emergency Room", Covered: "Covered", CopayTier1: domain.NotAvailable, CoinsuranceTier1: "30.00%"},
			{Benefit: "Urgent Care", Covered: "covered", CopayTier1: domain.NotAvailable, CoinsuranceTier1: "Not Applicable"},
		}},
	}
}

func ids(plans []domain.PlanGroup) []string {
	out := make([]string, 0, len(plans))
	for _, p := range plans {
		out = append(out, p.PlanID)
	}
	return out
}

func TestComputeMetrics(t *testing.T) {
	plans := samplePlans()

	b := ComputeMetrics(plans[1])
	assert.Equal(t, "B", b.PlanID)
	assert.Equal(t, 3, b.BenefitCount)
	assert.Equal(t, 2, b.CoveredCount)
	assert.Equal(t, 2, b.PricedCopays)
	assert.Equal(t, "5.00", b.MeanCopay.StringFixed(2))
	assert.Equal(t, 2, b.PricedCoinsurance)
	assert.Equal(t, "10.00", b.MeanCoinsurance.StringFixed(2))

	c := ComputeMetrics(plans[2])
	assert.Equal(t, 2, c.CoveredCount)
	assert.Equal(t, 0, c.PricedCopays)
	assert.Equal(t, 1, c.PricedCoinsurance, "text cells are skipped")
	assert.True(t, c.MeanCopay.IsZero())
}

func TestStrategies(t *testing.T) {
	tests := []struct {
		name     string
		strategy SequencingStrategy
		want     []string
	}{
		{"standard", NewStandardStrategy(), []string{"A", "B", "C"}},
		{"lowest_copay", NewLowestCopayStrategy(), []string{"B", "A", "C"}},
		{"lowest_coinsurance", NewLowestCoinsuranceStrategy(), []string{"B", "C", "A"}},
		{"most_benefits", NewBreadthStrategy(), []string{"B", "C", "A"}},
		{"custom", NewCustomStrategy([]string{"C", "missing", "C"}), []string{"C", "A", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plans := samplePlans()
			assert.Equal(t, tt.name, tt.strategy.Name())
			assert.Equal(t, tt.want, ids(tt.strategy.Order(plans)))
			assert.Equal(t, []string{"A", "B", "C"}, ids(plans), "input is not reordered")
		})
	}
}

func TestStrategies_Empty(t *testing.T) {
	for _, name := range []string{"standard", "lowest_copay", "lowest_coinsurance", "most_benefits"} {
		s, err := CreateStrategy(name)
		require.NoError(t, err)
		assert.Empty(t, s.Order(nil), name)
	}
}

func TestCreateStrategy(t *testing.T) {
	s, err := CreateStrategy("")
	require.NoError(t, err)
	assert.Equal(t, "standard", s.Name())

	s, err = CreateStrategy(" Lowest_Copay ")
	require.NoError(t, err)
	assert.Equal(t, "lowest_copay", s.Name())

	s, err = CreateStrategy("custom: B , A")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, s.(*CustomStrategy).Sequence)

	_, err = CreateStrategy("custom")
	assert.ErrorContains(t, err, "requires plan IDs")

	_, err = CreateStrategy("cheapest")
	assert.ErrorContains(t, err, "unknown sequencing strategy")
	assert.Len(t, StrategyNames(), 5)
}

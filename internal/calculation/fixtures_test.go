package calculation

import (
	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/rgehrsitz/plan4you/internal/refdata"
	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func benefit(plan, state, name, covered string, copay, coins *string) domain.BenefitRecord {
	return domain.BenefitRecord{
		PlanID:           plan,
		StateCode:        state,
		BenefitName:      name,
		IsCovered:        covered,
		CopayTier1:       copay,
		CoinsuranceTier1: coins,
	}
}

// testBenefits is a small synthetic benefits table covering two TX plans, one
// FL plan and a row without a plan ID.
func testBenefits() []domain.BenefitRecord {
	return []domain.BenefitRecord{
		benefit("TX-A", "TX", "Primary Care Visit to Treat an Injury or Illness", "Covered", strPtr("$30.00"), nil),
		benefit("TX-A", "TX", "Accidental Dental", "Covered", nil, strPtr("20.00%")),
		benefit("TX-B", "tx", "Generic Drugs", "covered", strPtr("$10.00"), strPtr("0.00%")),
		benefit("TX-A", "TX", "Bariatric Surgery", "Not Covered", nil, nil),
		benefit("TX-B", "TX", "Orthodontia - Child", "Covered", nil, nil),
		benefit("FL-C", "FL", "Generic Drugs", "Covered", strPtr("$5.00"), nil),
		benefit("", "TX", "Specialist Visit", "Covered", strPtr("$50.00"), nil),
		benefit("TX-C", "TX", "Emergency Room Services", "Covered", nil, nil),
	}
}

func testThresholds() []domain.EligibilityThresholdRow {
	return []domain.EligibilityThresholdRow{
		{State: "TX", MedicaidAges0to1: "198%", MedicaidAges1to5: "144%", MedicaidAges6to18: "138%", SeparateCHIP: "201%"},
		{State: "FL", MedicaidAges0to1: "206%", MedicaidAges1to5: "140%", MedicaidAges6to18: "133%", SeparateCHIP: "N/A"},
		{State: "ZZ", MedicaidAges0to1: "n/a", MedicaidAges1to5: "n/a", MedicaidAges6to18: "n/a", SeparateCHIP: " 250 % "},
	}
}

func testReferenceData() *refdata.ReferenceData {
	return refdata.New(testBenefits(), testThresholds())
}

func profile(age, dependents int, income int64, state string, dental bool) domain.HouseholdProfile {
	return domain.HouseholdProfile{
		Name:        "Test",
		Age:         age,
		Dependents:  dependents,
		Income:      decimal.NewFromInt(income),
		State:       state,
		WantsDental: dental,
	}
}

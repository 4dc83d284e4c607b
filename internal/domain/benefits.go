package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NotAvailable is rendered in place of a missing benefit field.
const NotAvailable = "N/A"

// BenefitRecord is one row of the benefits and cost sharing dataset: a single
// benefit offered by a single plan.
type BenefitRecord struct {
	PlanID           string  `json:"planId"`           // StandardComponentId
	StateCode        string  `json:"stateCode"`        // StateCode
	BenefitName      string  `json:"benefitName"`      // BenefitName
	IsCovered        string  `json:"isCovered"`        // "Covered", "Not Covered", ...
	CopayTier1       *string `json:"copayTier1"`       // CopayInnTier1, nil when the cell is empty
	CoinsuranceTier1 *string `json:"coinsuranceTier1"` // CoinsInnTier1, nil when the cell is empty
}

// IsCoveredBenefit reports whether the coverage flag reads "covered", ignoring case.
func (r BenefitRecord) IsCoveredBenefit() bool {
	return strings.EqualFold(strings.TrimSpace(r.IsCovered), "covered")
}

// HasCostSharing reports whether at least one tier 1 cost cell is present.
func (r BenefitRecord) HasCostSharing() bool {
	return r.CopayTier1 != nil || r.CoinsuranceTier1 != nil
}

// CopayAmount parses the tier 1 copay into dollars. ok is false when the cell is
// missing or is not a dollar figure (for example "No Charge").
func (r BenefitRecord) CopayAmount() (decimal.Decimal, bool) {
	return parseCostCell(r.CopayTier1)
}

// CoinsuranceAmount parses the tier 1 coinsurance into a percentage.
func (r BenefitRecord) CoinsuranceAmount() (decimal.Decimal, bool) {
	return parseCostCell(r.CoinsuranceTier1)
}

func parseCostCell(cell *string) (decimal.Decimal, bool) {
	if cell == nil {
		return decimal.Zero, false
	}
	s := strings.TrimSpace(*cell)
	if fields := strings.Fields(s); len(fields) > 0 {
		s = fields[0]
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// EligibilityThresholdRow holds one state's Medicaid and CHIP income limits as
// they appear in the dataset, e.g. "200%".
type EligibilityThresholdRow struct {
	State             string `json:"state"`
	MedicaidAges0to1  string `json:"medicaidAges0to1"`
	MedicaidAges1to5  string `json:"medicaidAges1to5"`
	MedicaidAges6to18 string `json:"medicaidAges6to18"`
	SeparateCHIP      string `json:"separateChip"`
}

// BenefitSummary is the display form of a benefit row inside a plan group.
type BenefitSummary struct {
	Benefit          string `json:"Benefit" yaml:"benefit"`
	Covered          string `json:"Covered" yaml:"covered"`
	CopayTier1       string `json:"Copay Tier 1" yaml:"copay_tier_1"`
	CoinsuranceTier1 string `json:"Coinsurance Tier 1" yaml:"coinsurance_tier_1"`
}

// PlanGroup collects the filtered benefits of one plan in dataset order.
type PlanGroup struct {
	PlanID   string           `json:"Plan ID" yaml:"plan_id"`
	Benefits []BenefitSummary `json:"benefits" yaml:"benefits"`
}

// Package sequencing orders the matching plans of a report for presentation.
// Strategies never add, drop or edit plans; the engine's dataset order is the
// "standard" sequence.
package sequencing

import (
	"strings"

	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/shopspring/decimal"
)

// PlanMetrics summarizes the tier 1 cost sharing of one plan.
// MeanCopay and MeanCoinsurance average only the cells that parse as numbers;
// "No Charge" counts as zero.
type PlanMetrics struct {
	PlanID            string
	BenefitCount      int
	CoveredCount      int
	PricedCopays      int
	PricedCoinsurance int
	MeanCopay         decimal.Decimal
	MeanCoinsurance   decimal.Decimal
}

// ComputeMetrics derives the ordering metrics for a plan group
func ComputeMetrics(plan domain.PlanGroup) PlanMetrics {
	m := PlanMetrics{PlanID: plan.PlanID, BenefitCount: len(plan.Benefits)}
	copayTotal, coinsTotal := decimal.Zero, decimal.Zero

	for _, b := range plan.Benefits {
		if strings.EqualFold(strings.TrimSpace(b.Covered), "covered") {
			m.CoveredCount++
		}
		if v, ok := parseCost(b.CopayTier1); ok {
			copayTotal = copayTotal.Add(v)
			m.PricedCopays++
		}
		if v, ok := parseCost(b.CoinsuranceTier1); ok {
			coinsTotal = coinsTotal.Add(v)
			m.PricedCoinsurance++
		}
	}

	if m.PricedCopays > 0 {
		m.MeanCopay = copayTotal.Div(decimal.NewFromInt(int64(m.PricedCopays))).Round(2)
	}
	if m.PricedCoinsurance > 0 {
		m.MeanCoinsurance = coinsTotal.Div(decimal.NewFromInt(int64(m.PricedCoinsurance))).Round(2)
	}
	return m
}

// parseCost reads a display cell such as "$30.00", "20.00%" or
// "$10.00 Copay after deductible".
func parseCost(cell string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(cell)
	if s == "" || s == domain.NotAvailable {
		return decimal.Zero, false
	}
	if strings.HasPrefix(strings.ToLower(s), "no charge") {
		return decimal.Zero, true
	}
	s = strings.Fields(s)[0]
	s = strings.TrimSuffix(strings.TrimPrefix(s, "$"), "%")
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// SequencingStrategy defines the interface for all plan ordering algorithms.
// Order returns a new slice; the input is not modified.
type SequencingStrategy interface {
	Name() string
	Order(plans []domain.PlanGroup) []domain.PlanGroup
}

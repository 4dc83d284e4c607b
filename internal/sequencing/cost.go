package sequencing

import (
	"sort"

	"github.com/rgehrsitz/plan4you/internal/domain"
)

// CostField selects which tier 1 cost a CostStrategy ranks by
type CostField int

const (
	Copay CostField = iota
	Coinsurance
)

// CostStrategy orders plans by ascending mean copay or coinsurance. Plans
// without any priced cell in that column sort last; ties keep dataset order.
type CostStrategy struct {
	Field CostField
}

func NewLowestCopayStrategy() *CostStrategy { return &CostStrategy{Field: Copay} }

func NewLowestCoinsuranceStrategy() *CostStrategy { return &CostStrategy{Field: Coinsurance} }

func (s *CostStrategy) Name() string {
	if s.Field == Coinsurance {
		return "lowest_coinsurance"
	}
	return "lowest_copay"
}

func (s *CostStrategy) Order(plans []domain.PlanGroup) []domain.PlanGroup {
	out := append([]domain.PlanGroup(nil), plans...)
	metrics := make(map[string]PlanMetrics, len(out))
	for _, p := range out {
		metrics[p.PlanID] = ComputeMetrics(p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := metrics[out[i].PlanID], metrics[out[j].PlanID]
		aPriced, bPriced := s.priced(a), s.priced(b)
		if aPriced != bPriced {
			return aPriced
		}
		if !aPriced {
			return false
		}
		if s.Field == Coinsurance {
			return a.MeanCoinsurance.LessThan(b.MeanCoinsurance)
		}
		return a.MeanCopay.LessThan(b.MeanCopay)
	})
	return out
}

func (s *CostStrategy) priced(m PlanMetrics) bool {
	if s.Field == Coinsurance {
		return m.PricedCoinsurance > 0
	}
	return m.PricedCopays > 0
}

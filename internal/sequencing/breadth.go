package sequencing

import (
	"sort"

	"github.com/rgehrsitz/plan4you/internal/domain"
)

// BreadthStrategy puts plans with the most covered benefits first.
type BreadthStrategy struct{}

func NewBreadthStrategy() *BreadthStrategy { return &BreadthStrategy{} }

func (s *BreadthStrategy) Name() string { return "most_benefits" }

func (s *BreadthStrategy) Order(plans []domain.PlanGroup) []domain.PlanGroup {
	out := append([]domain.PlanGroup(nil), plans...)
	covered := make(map[string]int, len(out))
	for _, p := range out {
		covered[p.PlanID] = ComputeMetrics(p).CoveredCount
	}
	sort.SliceStable(out, func(i, j int) bool {
		return covered[out[i].PlanID] > covered[out[j].PlanID]
	})
	return out
}

package sequencing

import (
	"strings"

	"github.com/rgehrsitz/plan4you/internal/domain"
)

// CustomStrategy lists the given plan IDs first, in the given order, followed
// by every other plan in dataset order. Unknown IDs are ignored.
type CustomStrategy struct {
	Sequence []string
}

func NewCustomStrategy(sequence []string) *CustomStrategy { return &CustomStrategy{Sequence: sequence} }

func (s *CustomStrategy) Name() string { return "custom" }

func (s *CustomStrategy) Order(plans []domain.PlanGroup) []domain.PlanGroup {
	byID := make(map[string]int, len(plans))
	for i, p := range plans {
		byID[p.PlanID] = i
	}

	out := make([]domain.PlanGroup, 0, len(plans))
	used := make(map[int]bool, len(s.Sequence))
	for _, id := range s.Sequence {
		i, ok := byID[strings.TrimSpace(id)]
		if !ok || used[i] {
			continue
		}
		used[i] = true
		out = append(out, plans[i])
	}
	for i, p := range plans {
		if !used[i] {
			out = append(out, p)
		}
	}
	return out
}

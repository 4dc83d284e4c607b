package sequencing

import "github.com/rgehrsitz/plan4you/internal/domain"

// StandardStrategy keeps plans in dataset order.
type StandardStrategy struct{}

func NewStandardStrategy() *StandardStrategy { return &StandardStrategy{} }

func (s *StandardStrategy) Name() string { return "standard" }

func (s *StandardStrategy) Order(plans []domain.PlanGroup) []domain.PlanGroup {
	return append([]domain.PlanGroup(nil), plans...)
}

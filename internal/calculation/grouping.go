package calculation

import (
	"strings"

	"github.com/rgehrsitz/plan4you/internal/domain"
)

// GroupByPlan groups filtered rows by plan ID. Groups appear in the order their
// plan ID is first seen and keep their rows in input order. Rows without a plan
// ID cannot be grouped; they are skipped and counted in dropped.
func GroupByPlan(rows []domain.BenefitRecord) (groups []domain.PlanGroup, dropped int) {
	index := make(map[string]int)
	groups = make([]domain.PlanGroup, 0)

	for _, r := range rows {
		id := strings.TrimSpace(r.PlanID)
		if id == "" {
			dropped++
			continue
		}
		i, ok := index[id]
		if !ok {
			i = len(groups)
			index[id] = i
			groups = append(groups, domain.PlanGroup{PlanID: id})
		}
		groups[i].Benefits = append(groups[i].Benefits, summarize(r))
	}
	return groups, dropped
}

func summarize(r domain.BenefitRecord) domain.BenefitSummary {
	return domain.BenefitSummary{
		Benefit:          orNotAvailable(r.BenefitName),
		Covered:          orNotAvailable(r.IsCovered),
		CopayTier1:       optionalOrNotAvailable(r.CopayTier1),
		CoinsuranceTier1: optionalOrNotAvailable(r.CoinsuranceTier1),
	}
}

func orNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return domain.NotAvailable
	}
	return s
}

func optionalOrNotAvailable(s *string) string {
	if s == nil {
		return domain.NotAvailable
	}
	return orNotAvailable(*s)
}

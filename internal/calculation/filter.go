package calculation

import (
	"strings"

	"github.com/rgehrsitz/plan4you/internal/domain"
)

// DentalSet is the fixed set of benefit names treated as dental coverage.
type DentalSet map[string]struct{}

// NewDentalSet builds a set from benefit names, ignoring surrounding whitespace.
func NewDentalSet(names []string) DentalSet {
	set := make(DentalSet, len(names))
	for _, n := range names {
		set[strings.TrimSpace(n)] = struct{}{}
	}
	return set
}

// Contains reports whether benefit is a dental benefit.
func (s DentalSet) Contains(benefit string) bool {
	_, ok := s[strings.TrimSpace(benefit)]
	return ok
}

// FilterPlans narrows benefit rows to those relevant for the household:
//  1. rows for the household's state;
//  2. dental rows only when dental coverage is wanted, otherwise non-dental rows only;
//  3. when the household qualifies for neither Medicaid nor CHIP, covered rows
//     that carry at least one tier 1 cost figure.
//
// Input order is preserved and the input slice is not modified.
func FilterPlans(rows []domain.BenefitRecord, profile domain.HouseholdProfile, eligibility domain.EligibilityResult, dental DentalSet) []domain.BenefitRecord {
	state := strings.TrimSpace(profile.State)
	gate := !eligibility.QualifiesForAssistance()

	out := make([]domain.BenefitRecord, 0)
	for _, r := range rows {
		if !strings.EqualFold(strings.TrimSpace(r.StateCode), state) {
			continue
		}
		if dental.Contains(r.BenefitName) != profile.WantsDental {
			continue
		}
		if gate && !(r.IsCoveredBenefit() && r.HasCostSharing()) {
			continue
		}
		out = append(out, r)
	}
	return out
}

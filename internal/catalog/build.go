package catalog

import (
	"context"

	"github.com/rgehrsitz/plan4you/internal/calculation"
	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/rgehrsitz/plan4you/internal/refdata"
)

// Build precomputes every catalog for the states in ref: each combination of
// dental preference and assistance status. It returns the number of catalogs
// written.
func Build(ctx context.Context, store *Store, engine *calculation.CalculationEngine, ref *refdata.ReferenceData) (int, error) {
	written := 0
	for _, state := range ref.States() {
		for _, key := range keysFor(state) {
			if err := ctx.Err(); err != nil {
				return written, err
			}
			plans, dropped := engine.FilterAndGroup(
				domain.HouseholdProfile{State: key.State, WantsDental: key.WantsDental},
				domain.EligibilityResult{IsMedicaidEligible: key.Assisted},
				ref,
			)
			if dropped > 0 {
				engine.Logger.Warnf("%s: %d benefit rows without a plan ID were skipped", state, dropped)
			}
			if err := store.Save(ctx, key, plans, engine.Rules.Metadata.DataYear); err != nil {
				return written, err
			}
			written++
		}
		engine.Logger.Debugf("catalog built for %s", state)
	}
	engine.Logger.Infof("built %d catalogs for %d states", written, len(ref.States()))
	return written, nil
}

func keysFor(state string) []Key {
	return []Key{
		{State: state, WantsDental: false, Assisted: false},
		{State: state, WantsDental: false, Assisted: true},
		{State: state, WantsDental: true, Assisted: false},
		{State: state, WantsDental: true, Assisted: true},
	}
}

// KeyFor returns the catalog key that serves a computed report.
func KeyFor(profile domain.HouseholdProfile, eligibility domain.EligibilityResult) Key {
	return Key{
		State:       profile.State,
		WantsDental: profile.WantsDental,
		Assisted:    eligibility.QualifiesForAssistance(),
	}.normalized()
}

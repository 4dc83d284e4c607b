package calculation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/rgehrsitz/plan4you/internal/refdata"
	"golang.org/x/sync/singleflight"
)

// CalculationEngine runs the eligibility pipeline: household metrics,
// Medicaid/CHIP classification, plan filtering and grouping.
type CalculationEngine struct {
	Rules      domain.RegulatoryConfig
	Classifier *Classifier
	Dental     DentalSet
	Logger     Logger
	Debug      bool // Log per-stage row counts

	cache *planCache
}

// NewCalculationEngine creates an engine with the built-in rules
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithConfig(domain.DefaultRegulatoryConfig())
}

// NewCalculationEngineWithConfig creates an engine from loaded rules. Empty
// dental lists and unknown CHIP policies fall back to the defaults.
func NewCalculationEngineWithConfig(rules domain.RegulatoryConfig) *CalculationEngine {
	if len(rules.DentalBenefits) == 0 {
		rules.DentalBenefits = domain.DefaultDentalBenefits()
	}
	if !rules.CHIPPolicy.Valid() {
		rules.CHIPPolicy = domain.CHIPIncomeFallthrough
	}
	return &CalculationEngine{
		Rules:      rules,
		Classifier: NewClassifier(rules.CHIPPolicy),
		Dental:     NewDentalSet(rules.DentalBenefits),
		Logger:     NopLogger{},
	}
}

// SetLogger installs a logger; nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// EnablePlanCache turns on the read-through plan cache. Filtered plans depend
// only on the reference data, state, dental preference and whether the
// household qualifies for assistance, so results are shared across households
// with the same key.
func (ce *CalculationEngine) EnablePlanCache() {
	ce.cache = newPlanCache()
}

// ComputeEligibilityAndPlans is the single entry point of the engine. Fatal
// problems (missing reference data, invalid guideline constants) are returned
// as errors; everything else is reported through the report's warnings.
func (ce *CalculationEngine) ComputeEligibilityAndPlans(profile domain.HouseholdProfile, ref *refdata.ReferenceData) (*domain.EligibilityReport, error) {
	if ref == nil {
		return nil, &domain.DataLoadError{Source: "reference data", Err: errors.New("not loaded")}
	}
	profile = profile.Normalized()

	metrics, err := ComputeHouseholdMetrics(profile, ce.Rules.PovertyGuidelines.For(profile.State))
	if err != nil {
		return nil, err
	}
	ce.Logger.Debugf("household size %d, FPL %s, income at %s%% of FPL", metrics.HouseholdSize, metrics.FPL.StringFixed(0), metrics.FPLPercent.StringFixed(1))

	flags, warnings := ce.Classifier.Classify(profile, metrics.FPLPercent, ref)
	for _, w := range warnings {
		ce.Logger.Warnf("%s", w)
	}

	result := domain.EligibilityResult{
		HouseholdSize:      metrics.HouseholdSize,
		FPL:                metrics.FPL,
		FPLPercent:         metrics.FPLPercent,
		IsMedicaidEligible: flags.IsMedicaidEligible,
		IsCHIPEligible:     flags.IsCHIPEligible,
	}

	plans, dropped := ce.plansFor(profile, result, ref)
	if dropped > 0 {
		w := domain.Warning{
			Kind:    domain.WarningUngroupablePlanRow,
			Message: fmt.Sprintf("%d benefit rows without a plan ID were skipped", dropped),
		}
		ce.Logger.Warnf("%s", w)
		warnings = append(warnings, w)
	}
	ce.Logger.Infof("%s: %d matching plans", profile.State, len(plans))

	return &domain.EligibilityReport{
		Profile:     profile,
		Eligibility: result,
		Plans:       plans,
		Warnings:    warnings,
	}, nil
}

// FilterAndGroup runs only the filtering and grouping stages.
func (ce *CalculationEngine) FilterAndGroup(profile domain.HouseholdProfile, eligibility domain.EligibilityResult, ref *refdata.ReferenceData) ([]domain.PlanGroup, int) {
	filtered := FilterPlans(ref.Benefits(), profile, eligibility, ce.Dental)
	if ce.Debug {
		ce.Logger.Debugf("filtered %d of %d benefit rows for %s (dental=%t, gate=%t)",
			len(filtered), len(ref.Benefits()), profile.State, profile.WantsDental, !eligibility.QualifiesForAssistance())
	}
	return GroupByPlan(filtered)
}

func (ce *CalculationEngine) plansFor(profile domain.HouseholdProfile, eligibility domain.EligibilityResult, ref *refdata.ReferenceData) ([]domain.PlanGroup, int) {
	if ce.cache == nil {
		return ce.FilterAndGroup(profile, eligibility, ref)
	}
	key := planCacheKey{
		ref:         ref,
		state:       strings.ToUpper(profile.State),
		wantsDental: profile.WantsDental,
		eligible:    eligibility.QualifiesForAssistance(),
	}
	entry := ce.cache.get(key, func() cachedPlans {
		plans, dropped := ce.FilterAndGroup(profile, eligibility, ref)
		return cachedPlans{plans: plans, dropped: dropped}
	})
	return clonePlans(entry.plans), entry.dropped
}

type planCacheKey struct {
	ref         *refdata.ReferenceData
	state       string
	wantsDental bool
	eligible    bool
}

type cachedPlans struct {
	plans   []domain.PlanGroup
	dropped int
}

// planCache is safe for concurrent use; concurrent misses on the same key
// compute the entry once.
type planCache struct {
	mu      sync.RWMutex
	entries map[planCacheKey]cachedPlans
	group   singleflight.Group
}

func newPlanCache() *planCache {
	return &planCache{entries: make(map[planCacheKey]cachedPlans)}
}

func (c *planCache) get(key planCacheKey, fill func() cachedPlans) cachedPlans {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return entry
	}

	v, _, _ := c.group.Do(fmt.Sprintf("%p|%s|%t|%t", key.ref, key.state, key.wantsDental, key.eligible), func() (interface{}, error) {
		e := fill()
		c.mu.Lock()
		c.entries[key] = e
		c.mu.Unlock()
		return e, nil
	})
	return v.(cachedPlans)
}

func (c *planCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func clonePlans(in []domain.PlanGroup) []domain.PlanGroup {
	out := make([]domain.PlanGroup, len(in))
	for i, g := range in {
		out[i] = domain.PlanGroup{
			PlanID:   g.PlanID,
			Benefits: append([]domain.BenefitSummary(nil), g.Benefits...),
		}
	}
	return out
}

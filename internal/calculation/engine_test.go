package calculation

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/rgehrsitz/plan4you/internal/refdata"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Classifier, "Should initialize classifier")
	assert.Len(t, engine.Dental, 9, "Should load default dental benefits")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.Nil(t, engine.cache, "Cache is opt-in")
}

func TestNewCalculationEngineWithConfig_Defaults(t *testing.T) {
	rules := domain.DefaultRegulatoryConfig()
	rules.DentalBenefits = nil
	rules.CHIPPolicy = ""

	engine := NewCalculationEngineWithConfig(rules)

	assert.Len(t, engine.Dental, 9)
	assert.Equal(t, domain.CHIPIncomeFallthrough, engine.Classifier.Policy)
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestComputeEligibilityAndPlans_TexasScenario(t *testing.T) {
	engine := NewCalculationEngine()
	p := profile(42, 1, 75000, "TX", true)

	report, err := engine.ComputeEligibilityAndPlans(p, testReferenceData())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Eligibility.HouseholdSize)
	assert.True(t, report.Eligibility.FPL.Equal(decimal.NewFromInt(19720)))
	assert.Equal(t, "380.3", report.Eligibility.FPLPercent.StringFixed(1))
	assert.False(t, report.Eligibility.IsMedicaidEligible)
	assert.False(t, report.Eligibility.IsCHIPEligible)
	assert.Empty(t, report.Warnings)

	// Affordability gate is active: only the covered dental row with cost sharing survives.
	require.Len(t, report.Plans, 1)
	assert.Equal(t, "TX-A", report.Plans[0].PlanID)
	assert.Equal(t, "Accidental Dental", report.Plans[0].Benefits[0].Benefit)
	assert.Equal(t, domain.NotAvailable, report.Plans[0].Benefits[0].CopayTier1)
}

func TestComputeEligibilityAndPlans_DefaultChecksSeparateCHIP(t *testing.T) {
	// 10-year-old at 170% of FPL: over the 138% Medicaid line for ages 6-18,
	// under the 201% separate CHIP line.
	p := profile(10, 0, 24786, "TX", false)

	report, err := NewCalculationEngine().ComputeEligibilityAndPlans(p, testReferenceData())
	require.NoError(t, err)
	assert.Equal(t, "170.0", report.Eligibility.FPLPercent.StringFixed(1))
	assert.False(t, report.Eligibility.IsMedicaidEligible)
	assert.True(t, report.Eligibility.IsCHIPEligible)
	assert.Equal(t, "You may be eligible for CHIP (Children's Health Insurance Program).", report.Eligibility.Headline())

	ids := []string{}
	for _, g := range report.Plans {
		ids = append(ids, g.PlanID)
	}
	assert.Equal(t, []string{"TX-A", "TX-B", "TX-C"}, ids, "no affordability gate once CHIP applies")

	rules := domain.DefaultRegulatoryConfig()
	rules.CHIPPolicy = domain.CHIPBracketExclusive
	exclusive, err := NewCalculationEngineWithConfig(rules).ComputeEligibilityAndPlans(p, testReferenceData())
	require.NoError(t, err)
	assert.False(t, exclusive.Eligibility.QualifiesForAssistance(), "exclusive brackets stop at the Medicaid test")
}

func TestComputeEligibilityAndPlans_StateNotInThresholds(t *testing.T) {
	engine := NewCalculationEngine()
	ref := refdata.New(
		[]domain.BenefitRecord{benefit("NY-1", "NY", "Generic Drugs", "Covered", strPtr("$5"), nil)},
		testThresholds(),
	)

	report, err := engine.ComputeEligibilityAndPlans(profile(5, 0, 1000, "ny", false), ref)
	require.NoError(t, err)

	assert.Equal(t, "NY", report.Profile.State, "profile is normalized")
	assert.False(t, report.Eligibility.IsMedicaidEligible)
	assert.False(t, report.Eligibility.IsCHIPEligible)
	assert.True(t, domain.HasWarning(report.Warnings, domain.WarningThresholdNotFound))
	require.Len(t, report.Plans, 1)
}

func TestComputeEligibilityAndPlans_UngroupableRowsWarn(t *testing.T) {
	engine := NewCalculationEngine()
	// Medicaid-eligible infant: full non-dental catalog, including the row without a plan ID.
	report, err := engine.ComputeEligibilityAndPlans(profile(0, 2, 10000, "TX", false), testReferenceData())
	require.NoError(t, err)

	assert.True(t, report.Eligibility.IsMedicaidEligible)
	require.True(t, domain.HasWarning(report.Warnings, domain.WarningUngroupablePlanRow))
	ids := []string{}
	for _, p := range report.Plans {
		ids = append(ids, p.PlanID)
	}
	assert.Equal(t, []string{"TX-A", "TX-B", "TX-C"}, ids)
}

func TestComputeEligibilityAndPlans_Errors(t *testing.T) {
	t.Run("missing reference data", func(t *testing.T) {
		_, err := NewCalculationEngine().ComputeEligibilityAndPlans(profile(30, 0, 1, "TX", false), nil)
		var loadErr *domain.DataLoadError
		assert.True(t, errors.As(err, &loadErr))
	})

	t.Run("invalid guidelines", func(t *testing.T) {
		rules := domain.DefaultRegulatoryConfig()
		rules.PovertyGuidelines.Default.Base = decimal.Zero
		_, err := NewCalculationEngineWithConfig(rules).ComputeEligibilityAndPlans(profile(30, 0, 1, "TX", false), testReferenceData())
		var cfgErr *domain.ConfigurationError
		assert.True(t, errors.As(err, &cfgErr))
	})
}

func TestComputeEligibilityAndPlans_LogsWarnings(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)
	engine.Debug = true

	_, err := engine.ComputeEligibilityAndPlans(profile(30, 0, 1000, "NY", false), testReferenceData())
	require.NoError(t, err)

	assert.NotEmpty(t, logger.warnings)
	assert.Contains(t, logger.warnings[0], "threshold_not_found")
	assert.NotEmpty(t, logger.debugs)
}

func TestPlanCache(t *testing.T) {
	engine := NewCalculationEngine()
	engine.EnablePlanCache()
	ref := testReferenceData()

	first, err := engine.ComputeEligibilityAndPlans(profile(42, 1, 75000, "TX", false), ref)
	require.NoError(t, err)
	// Different household, same cache key.
	second, err := engine.ComputeEligibilityAndPlans(profile(50, 0, 90000, "tx", false), ref)
	require.NoError(t, err)

	assert.Equal(t, first.Plans, second.Plans)
	assert.Equal(t, 1, engine.cache.len())

	// Results are independent copies.
	first.Plans[0].Benefits[0].Benefit = "mutated"
	third, err := engine.ComputeEligibilityAndPlans(profile(42, 1, 75000, "TX", false), ref)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", third.Plans[0].Benefits[0].Benefit)

	// Eligible household gets a separate entry.
	_, err = engine.ComputeEligibilityAndPlans(profile(0, 0, 1000, "TX", false), ref)
	require.NoError(t, err)
	assert.Equal(t, 2, engine.cache.len())
}

func TestPlanCache_MatchesUncached(t *testing.T) {
	cached := NewCalculationEngine()
	cached.EnablePlanCache()
	plain := NewCalculationEngine()
	ref := testReferenceData()

	for _, p := range []domain.HouseholdProfile{
		profile(42, 1, 75000, "TX", true),
		profile(0, 1, 1000, "TX", false),
		profile(30, 0, 1000, "FL", false),
		profile(10, 3, 20000, "NY", true),
	} {
		a, err := cached.ComputeEligibilityAndPlans(p, ref)
		require.NoError(t, err)
		b, err := plain.ComputeEligibilityAndPlans(p, ref)
		require.NoError(t, err)
		assert.Equal(t, b, a)
	}
}

func TestPlanCache_Concurrent(t *testing.T) {
	engine := NewCalculationEngine()
	engine.EnablePlanCache()
	ref := testReferenceData()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := engine.ComputeEligibilityAndPlans(profile(30+i, 0, int64(50000+i), "TX", i%2 == 0), ref)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 2, engine.cache.len())
}

// TestLogger records log lines for assertions
type TestLogger struct {
	mu       sync.Mutex
	debugs   []string
	infos    []string
	warnings []string
	errors   []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.debugs = append(tl.debugs, fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.infos = append(tl.infos, fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.warnings = append(tl.warnings, fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.errors = append(tl.errors, fmt.Sprintf(format, args...))
}

// Package advisor combines the eligibility engine with the advisory
// summaries into a single recommendation.
package advisor

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/plan4you/internal/calculation"
	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/rgehrsitz/plan4you/internal/refdata"
	"github.com/rgehrsitz/plan4you/internal/summary"
	"golang.org/x/sync/errgroup"
)

// Summary is one advisory write-up.
type Summary struct {
	Kind summary.Kind `json:"kind" yaml:"kind"`
	Text string       `json:"text" yaml:"text"`
}

// Recommendation is the report plus whatever summaries could be produced.
type Recommendation struct {
	Report    *domain.EligibilityReport `json:"report" yaml:"report"`
	Summaries []Summary                 `json:"summaries" yaml:"summaries"`
}

// Advisor runs the engine and, when a summarizer is configured, the
// advisory personas.
type Advisor struct {
	Engine     *calculation.CalculationEngine
	Ref        *refdata.ReferenceData
	Summarizer summary.Summarizer // nil disables summaries
	Kinds      []summary.Kind
	Timeout    time.Duration // per summary; zero means no limit
	Logger     calculation.Logger
}

// New creates an advisor producing all three summaries.
func New(engine *calculation.CalculationEngine, ref *refdata.ReferenceData, s summary.Summarizer) *Advisor {
	return &Advisor{
		Engine:     engine,
		Ref:        ref,
		Summarizer: s,
		Kinds:      summary.Kinds(),
		Timeout:    60 * time.Second,
		Logger:     calculation.NopLogger{},
	}
}

// Recommend computes the eligibility report and the summaries. Only engine
// errors are returned; a summary that fails becomes a summary_unavailable
// warning on the report.
func (a *Advisor) Recommend(ctx context.Context, profile domain.HouseholdProfile) (*Recommendation, error) {
	if a.Engine == nil {
		return nil, fmt.Errorf("advisor has no calculation engine")
	}
	report, err := a.Engine.ComputeEligibilityAndPlans(profile, a.Ref)
	if err != nil {
		return nil, err
	}

	rec := &Recommendation{Report: report, Summaries: []Summary{}}
	if a.Summarizer == nil || len(a.Kinds) == 0 {
		return rec, nil
	}

	if _, omitted := summary.PromptPlans(report.Plans); omitted > 0 {
		w := domain.Warning{
			Kind:    domain.WarningSummaryTruncated,
			Message: fmt.Sprintf("summaries cover the first %d of %d plans; %d plans were not sent",
				summary.MaxPromptPlans, len(report.Plans), omitted),
		}
		a.logger().Warnf("%s", w)
		report.Warnings = append(report.Warnings, w)
	}

	texts := make([]string, len(a.Kinds))
	errs := make([]error, len(a.Kinds))

	// Callbacks always return nil: each persona's error is kept in errs so
	// one failure does not cancel the others, and becomes a warning below.
	var g errgroup.Group
	for i, kind := range a.Kinds {
		i, kind := i, kind
		g.Go(func() error {
			texts[i], errs[i] = a.summarize(ctx, summary.Request{
				Kind:        kind,
				Profile:     report.Profile,
				Eligibility: report.Eligibility,
				Plans:       report.Plans,
			})
			return nil
		})
	}
	_ = g.Wait() // nothing to report; see errs

	for i, kind := range a.Kinds {
		if errs[i] != nil {
			w := domain.Warning{
				Kind:    domain.WarningSummaryUnavailable,
				Message: fmt.Sprintf("%s summary unavailable: %v", kind, errs[i]),
			}
			a.logger().Warnf("%s", w)
			report.Warnings = append(report.Warnings, w)
			continue
		}
		rec.Summaries = append(rec.Summaries, Summary{Kind: kind, Text: texts[i]})
	}
	return rec, nil
}

func (a *Advisor) summarize(ctx context.Context, req summary.Request) (string, error) {
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}
	return a.Summarizer.Summarize(ctx, req)
}

func (a *Advisor) logger() calculation.Logger {
	if a.Logger == nil {
		return calculation.NopLogger{}
	}
	return a.Logger
}

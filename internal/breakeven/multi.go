package breakeven

import (
	"context"

	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/rgehrsitz/plan4you/internal/transform"
	"golang.org/x/sync/errgroup"
)

// LimitTable solves the income limit for the same applicant across household
// sizes, from no dependents up to maxDependents. Rows are returned in
// dependents order.
func (s *Solver) LimitTable(ctx context.Context, profile domain.HouseholdProfile, maxDependents int) ([]IncomeLimitResult, error) {
	if maxDependents < 0 {
		return nil, &BreakEvenError{Operation: "limit_table", Message: "max dependents cannot be negative"}
	}

	results := make([]IncomeLimitResult, maxDependents+1)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i <= maxDependents; i++ {
		g.Go(func() error {
			variant, err := (&transform.SetDependents{Count: i}).Apply(profile)
			if err != nil {
				return err
			}
			res, err := s.IncomeLimit(ctx, variant)
			if err != nil {
				return err
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

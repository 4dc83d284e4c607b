package transform

import (
	"fmt"

	"github.com/rgehrsitz/plan4you/internal/domain"
)

// ProfileTransform defines the interface for all household transformations.
// Transforms are composable what-if edits to a profile, used by scenario
// comparison and the income limit solver.
type ProfileTransform interface {
	// Apply returns a modified copy of base.
	Apply(base domain.HouseholdProfile) (domain.HouseholdProfile, error)

	// Name returns a short identifier for this transform (e.g., "set_income").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base domain.HouseholdProfile) error
}

// ApplyTransforms applies a sequence of transforms to a base profile.
// Each transform receives the output of the previous one, and the final
// profile must still pass validation.
func ApplyTransforms(base domain.HouseholdProfile, transforms []ProfileTransform) (domain.HouseholdProfile, error) {
	current := base
	for i, t := range transforms {
		if t == nil {
			return base, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return base, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return base, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}

	current = current.Normalized()
	if err := current.Validate(); err != nil {
		return base, err
	}
	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

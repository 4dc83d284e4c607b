package domain

import "fmt"

// DataLoadError reports reference data that is missing, malformed or
// unreadable. It is fatal: no plans can be computed without the datasets.
type DataLoadError struct {
	Source string // dataset name or path
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("failed to load reference data %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// ConfigurationError reports invalid calculation constants such as a
// non-positive poverty guideline base.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Field, e.Reason)
}

// ThresholdParseError reports a threshold cell that is not a percentage.
// The classifier converts it into a warning and treats the bracket as failed.
type ThresholdParseError struct {
	State  string
	Column string
	Value  string
	Err    error
}

func (e *ThresholdParseError) Error() string {
	return fmt.Sprintf("cannot parse %q threshold %q for %s: %v", e.Column, e.Value, e.State, e.Err)
}

func (e *ThresholdParseError) Unwrap() error { return e.Err }

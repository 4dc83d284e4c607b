package tui

import (
	"github.com/rgehrsitz/plan4you/internal/advisor"
)

// Scene represents the screens of the intake flow
type Scene int

const (
	SceneIntake Scene = iota
	SceneResults
)

func (s Scene) String() string {
	switch s {
	case SceneIntake:
		return "Household"
	case SceneResults:
		return "Results"
	default:
		return "Unknown"
	}
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// RecommendationMsg signals the eligibility run has finished
type RecommendationMsg struct {
	Recommendation *advisor.Recommendation
	Err            error
}

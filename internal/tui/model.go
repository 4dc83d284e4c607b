// Package tui implements the interactive household intake.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/plan4you/internal/advisor"
	"github.com/rgehrsitz/plan4you/internal/config"
	"github.com/rgehrsitz/plan4you/internal/domain"
)

// Intake fields in prompt order.
const (
	fieldName = iota
	fieldAge
	fieldDependents
	fieldIncome
	fieldState
	fieldDental
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name",
	"Age",
	"Dependents",
	"Annual income",
	"State (e.g. TX)",
	"Dental coverage (y/n)",
}

var fieldPlaceholders = [fieldCount]string{
	"Jane Doe",
	"42",
	"1",
	"$75,000",
	"TX",
	"yes",
}

// Model represents the entire application state
type Model struct {
	scene Scene

	// Terminal dimensions
	width  int
	height int

	inputs   []textinput.Model
	focused  int
	formErr  string
	spinner  spinner.Model
	loading  bool
	advisor  *advisor.Advisor
	result   *advisor.Recommendation
	offset   int // first plan shown on the results screen
	err      error
	quitting bool
}

// NewModel creates the intake model
func NewModel(adv *advisor.Advisor) Model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = fieldPlaceholders[i]
		ti.Prompt = "› "
		ti.CharLimit = 64
		ti.Width = 30
		inputs[i] = ti
	}
	inputs[fieldAge].CharLimit = 3
	inputs[fieldDependents].CharLimit = 2
	inputs[fieldState].CharLimit = 2
	inputs[fieldDental].CharLimit = 3
	inputs[fieldName].Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = HeadlineNeutralStyle

	return Model{
		scene:   SceneIntake,
		width:   80,
		height:  24,
		inputs:  inputs,
		spinner: s,
		advisor: adv,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Result returns the last recommendation, if any
func (m Model) Result() *advisor.Recommendation {
	return m.result
}

// Profile builds a household profile from the form, validating every field
func (m Model) Profile() (domain.HouseholdProfile, error) {
	value := func(i int) string { return strings.TrimSpace(m.inputs[i].Value()) }

	var p domain.HouseholdProfile
	p.Name = value(fieldName)
	if p.Name == "" {
		return p, fmt.Errorf("name is required")
	}

	age, err := strconv.Atoi(value(fieldAge))
	if err != nil || age < 0 {
		return p, fmt.Errorf("age must be a whole number of years")
	}
	p.Age = age

	deps, err := strconv.Atoi(value(fieldDependents))
	if err != nil || deps < 0 {
		return p, fmt.Errorf("dependents must be zero or more")
	}
	p.Dependents = deps

	income, err := config.ParseIncome(value(fieldIncome))
	if err != nil {
		return p, err
	}
	p.Income = income

	p.State = value(fieldState)

	dental, err := config.ParseYesNo(value(fieldDental))
	if err != nil {
		return p, fmt.Errorf("dental coverage: %w", err)
	}
	p.WantsDental = dental

	p = p.Normalized()
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// recommendCmd returns a command that runs the advisor for profile
func recommendCmd(adv *advisor.Advisor, profile domain.HouseholdProfile) tea.Cmd {
	return func() tea.Msg {
		if adv == nil {
			return RecommendationMsg{Err: fmt.Errorf("no advisor configured")}
		}
		rec, err := adv.Recommend(context.Background(), profile)
		return RecommendationMsg{Recommendation: rec, Err: err}
	}
}

package calculation

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/rgehrsitz/plan4you/internal/refdata"
	"github.com/shopspring/decimal"
)

// Program identifies which assistance flag a rule sets.
type Program int

const (
	ProgramMedicaid Program = iota
	ProgramCHIP
)

func (p Program) String() string {
	if p == ProgramCHIP {
		return "CHIP"
	}
	return "Medicaid"
}

// EligibilityRule is one step of the age-bracket ladder: when AppliesTo
// matches the applicant's age, the household qualifies for Program if its FPL
// percentage is at or below the threshold held in Column.
type EligibilityRule struct {
	Name      string
	AppliesTo func(age int) bool
	Column    string
	Threshold func(row domain.EligibilityThresholdRow) string
	Program   Program
}

// DefaultEligibilityRules returns the ladder in evaluation order. The last
// rule overlaps the three Medicaid brackets for every age up to 18; under the
// default policy it is consulted when the Medicaid income test fails.
func DefaultEligibilityRules() []EligibilityRule {
	return []EligibilityRule{
		{
			Name:      "medicaid_ages_0_1",
			AppliesTo: func(age int) bool { return age <= 1 },
			Column:    refdata.ColMedicaidAges0to1,
			Threshold: func(r domain.EligibilityThresholdRow) string { return r.MedicaidAges0to1 },
			Program:   ProgramMedicaid,
		},
		{
			Name:      "medicaid_ages_1_5",
			AppliesTo: func(age int) bool { return age > 1 && age <= 5 },
			Column:    refdata.ColMedicaidAges1to5,
			Threshold: func(r domain.EligibilityThresholdRow) string { return r.MedicaidAges1to5 },
			Program:   ProgramMedicaid,
		},
		{
			Name:      "medicaid_ages_6_18",
			AppliesTo: func(age int) bool { return age > 5 && age <= 18 },
			Column:    refdata.ColMedicaidAges6to18,
			Threshold: func(r domain.EligibilityThresholdRow) string { return r.MedicaidAges6to18 },
			Program:   ProgramMedicaid,
		},
		{
			Name:      "separate_chip",
			AppliesTo: func(age int) bool { return age <= 18 },
			Column:    refdata.ColSeparateCHIP,
			Threshold: func(r domain.EligibilityThresholdRow) string { return r.SeparateCHIP },
			Program:   ProgramCHIP,
		},
	}
}

// ParseThreshold converts a percentage cell such as " 200% " into a number.
func ParseThreshold(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	return decimal.NewFromString(s)
}

// EligibilityFlags is the classifier output before it is merged with the
// household metrics.
type EligibilityFlags struct {
	IsMedicaidEligible bool
	IsCHIPEligible     bool
	MatchedRule        string // name of the rule that decided the outcome, "" if none
}

// Classifier evaluates the eligibility ladder against a state's thresholds.
type Classifier struct {
	Rules  []EligibilityRule
	Policy domain.CHIPPolicy
}

// NewClassifier creates a classifier with the default ladder.
func NewClassifier(policy domain.CHIPPolicy) *Classifier {
	if !policy.Valid() {
		policy = domain.CHIPIncomeFallthrough
	}
	return &Classifier{Rules: DefaultEligibilityRules(), Policy: policy}
}

// Classify looks up the household's state and walks the rule ladder. A state
// with no threshold row, or a threshold cell that does not parse, yields a
// warning and a negative answer for the affected rule instead of an error.
func (c *Classifier) Classify(profile domain.HouseholdProfile, fplPercent decimal.Decimal, ref *refdata.ReferenceData) (EligibilityFlags, []domain.Warning) {
	var flags EligibilityFlags
	var warnings []domain.Warning

	row, ok := ref.ThresholdFor(profile.State)
	if !ok {
		warnings = append(warnings, domain.Warning{
			Kind:    domain.WarningThresholdNotFound,
			Message: fmt.Sprintf("eligibility data unavailable for state %s", profile.State),
		})
		return flags, warnings
	}

	for _, rule := range c.Rules {
		if !rule.AppliesTo(profile.Age) {
			continue
		}

		qualifies := false
		raw := rule.Threshold(row)
		threshold, err := ParseThreshold(raw)
		if err != nil {
			perr := &domain.ThresholdParseError{State: row.State, Column: rule.Column, Value: raw, Err: err}
			warnings = append(warnings, domain.Warning{Kind: domain.WarningThresholdParse, Message: perr.Error()})
		} else {
			qualifies = fplPercent.LessThanOrEqual(threshold)
		}

		if qualifies {
			switch rule.Program {
			case ProgramMedicaid:
				flags.IsMedicaidEligible = true
			case ProgramCHIP:
				flags.IsCHIPEligible = true
			}
			flags.MatchedRule = rule.Name
			return flags, warnings
		}

		if c.Policy != domain.CHIPIncomeFallthrough {
			flags.MatchedRule = rule.Name
			return flags, warnings
		}
	}
	return flags, warnings
}

// ClassifyEligibility runs the default ladder under policy.
func ClassifyEligibility(profile domain.HouseholdProfile, fplPercent decimal.Decimal, ref *refdata.ReferenceData, policy domain.CHIPPolicy) (EligibilityFlags, []domain.Warning) {
	return NewClassifier(policy).Classify(profile, fplPercent, ref)
}

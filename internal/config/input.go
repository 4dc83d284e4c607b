package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/plan4you/internal/calculation"
	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of household profile and rules files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadProfileFromFile loads a household profile from a YAML or JSON file
func (ip *InputParser) LoadProfileFromFile(filename string) (*domain.HouseholdProfile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var profile domain.HouseholdProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	profile = profile.Normalized()

	if err := ip.ValidateProfile(&profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	return &profile, nil
}

// ValidateProfile validates a household profile
func (ip *InputParser) ValidateProfile(profile *domain.HouseholdProfile) error {
	if profile == nil {
		return fmt.Errorf("profile is required")
	}
	return profile.Validate()
}

// LoadRulesFromFile loads the regulatory rules. Fields left out of the file
// keep their built-in defaults.
func (ip *InputParser) LoadRulesFromFile(filename string) (*domain.RegulatoryConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	rules := domain.DefaultRegulatoryConfig()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRules(&rules); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}
	return &rules, nil
}

// LoadRules loads rules from filename, or returns the defaults when filename is empty
func (ip *InputParser) LoadRules(filename string) (*domain.RegulatoryConfig, error) {
	if strings.TrimSpace(filename) == "" {
		rules := domain.DefaultRegulatoryConfig()
		return &rules, nil
	}
	return ip.LoadRulesFromFile(filename)
}

// ValidateRules validates the poverty guidelines, regional overrides, dental
// names and CHIP policy. Guideline problems are *domain.ConfigurationError.
func (ip *InputParser) ValidateRules(rules *domain.RegulatoryConfig) error {
	if err := calculation.ValidateGuidelines(rules.PovertyGuidelines.Default); err != nil {
		return err
	}
	for state, g := range rules.PovertyGuidelines.Regions {
		if len(strings.TrimSpace(state)) != 2 {
			return &domain.ConfigurationError{Field: "poverty_guidelines.regions", Reason: fmt.Sprintf("%q is not a two-letter state code", state)}
		}
		if err := calculation.ValidateGuidelines(g); err != nil {
			return fmt.Errorf("region %s: %w", state, err)
		}
	}
	if len(rules.DentalBenefits) == 0 {
		return &domain.ConfigurationError{Field: "dental_benefits", Reason: "at least one dental benefit name is required"}
	}
	for i, name := range rules.DentalBenefits {
		if strings.TrimSpace(name) == "" {
			return &domain.ConfigurationError{Field: "dental_benefits", Reason: fmt.Sprintf("entry %d is blank", i)}
		}
	}
	if rules.CHIPPolicy == "" {
		rules.CHIPPolicy = domain.CHIPIncomeFallthrough
	}
	if !rules.CHIPPolicy.Valid() {
		return &domain.ConfigurationError{Field: "chip_policy", Reason: fmt.Sprintf("must be %q or %q", domain.CHIPBracketExclusive, domain.CHIPIncomeFallthrough)}
	}
	return nil
}

// ParseIncome accepts amounts as typed by people: "75000", "$75,000.00".
func ParseIncome(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, ",", "")
	if clean == "" {
		return decimal.Zero, fmt.Errorf("income is required")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid income %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("income cannot be negative")
	}
	return d, nil
}

// ParseYesNo interprets a yes/no answer.
func ParseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true":
		return true, nil
	case "n", "no", "false":
		return false, nil
	default:
		return false, fmt.Errorf("expected yes or no, got %q", s)
	}
}

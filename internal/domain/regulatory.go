package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RegulatoryConfig contains the program rules that apply uniformly to every
// household. It is loaded from rules.yaml; DefaultRegulatoryConfig supplies the
// built-in values when no file is given.
type RegulatoryConfig struct {
	Metadata          RegulatoryMetadata `yaml:"metadata" json:"metadata"`
	PovertyGuidelines PovertyGuidelines  `yaml:"poverty_guidelines" json:"poverty_guidelines"`
	DentalBenefits    []string           `yaml:"dental_benefits" json:"dental_benefits"`
	CHIPPolicy        CHIPPolicy         `yaml:"chip_policy" json:"chip_policy"`
}

// RegulatoryMetadata contains information about the regulatory data
type RegulatoryMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// FPLGuidelines is one HHS poverty guideline table: the amount for a single
// person plus the amount added for each additional household member.
type FPLGuidelines struct {
	Base               decimal.Decimal `yaml:"base" json:"base"`
	IncrementPerPerson decimal.Decimal `yaml:"increment_per_person" json:"increment_per_person"`
}

// PovertyGuidelines holds the contiguous-states table and any regional
// overrides keyed by state code (Alaska and Hawaii publish their own).
type PovertyGuidelines struct {
	Default FPLGuidelines            `yaml:"default" json:"default"`
	Regions map[string]FPLGuidelines `yaml:"regions" json:"regions"`
}

// For returns the guideline table that applies to state.
func (pg PovertyGuidelines) For(state string) FPLGuidelines {
	if g, ok := pg.Regions[strings.ToUpper(strings.TrimSpace(state))]; ok {
		return g
	}
	return pg.Default
}

// CHIPPolicy selects how the CHIP rule interacts with the Medicaid age brackets.
type CHIPPolicy string

const (
	// CHIPIncomeFallthrough moves on to the next rule when a matching Medicaid
	// bracket fails its income test, so children over the Medicaid limit are
	// checked against the separate CHIP limit. This is the default.
	CHIPIncomeFallthrough CHIPPolicy = "income_fallthrough"
	// CHIPBracketExclusive stops at the first age bracket that matches, so the
	// CHIP rule is never reached for children already covered by a Medicaid bracket.
	CHIPBracketExclusive CHIPPolicy = "bracket_exclusive"
)

// Valid reports whether p is a known policy.
func (p CHIPPolicy) Valid() bool {
	return p == CHIPBracketExclusive || p == CHIPIncomeFallthrough
}

// DefaultDentalBenefits lists the benefit names treated as dental coverage.
func DefaultDentalBenefits() []string {
	return []string{
		"Routine Dental Services (Adult)",
		"Dental Check-Up for Children",
		"Basic Dental Care - Child",
		"Orthodontia - Child",
		"Major Dental Care - Child",
		"Basic Dental Care - Adult",
		"Orthodontia - Adult",
		"Major Dental Care - Adult",
		"Accidental Dental",
	}
}

// DefaultPovertyGuidelines returns the 2023 HHS poverty guidelines, which
// apply to 2024 coverage.
func DefaultPovertyGuidelines() PovertyGuidelines {
	return PovertyGuidelines{
		Default: FPLGuidelines{
			Base:               decimal.NewFromInt(14580),
			IncrementPerPerson: decimal.NewFromInt(5140),
		},
		Regions: map[string]FPLGuidelines{
			"AK": {Base: decimal.NewFromInt(18210), IncrementPerPerson: decimal.NewFromInt(6430)},
			"HI": {Base: decimal.NewFromInt(16770), IncrementPerPerson: decimal.NewFromInt(5910)},
		},
	}
}

// DefaultRegulatoryConfig returns the built-in rules.
func DefaultRegulatoryConfig() RegulatoryConfig {
	return RegulatoryConfig{
		Metadata: RegulatoryMetadata{
			DataYear:    2023,
			Description: "HHS poverty guidelines and marketplace dental benefit names",
		},
		PovertyGuidelines: DefaultPovertyGuidelines(),
		DentalBenefits:    DefaultDentalBenefits(),
		CHIPPolicy:        CHIPIncomeFallthrough,
	}
}

package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Settings holds process-level settings read from the environment.
type Settings struct {
	BenefitsPath    string `env:"PLAN4YOU_BENEFITS_PATH" envDefault:"benefits-and-cost-sharing-puf.csv"`
	EligibilityPath string `env:"PLAN4YOU_ELIGIBILITY_PATH" envDefault:"medicaid-and-chip-eligibility-levels.csv"`
	RulesPath       string `env:"PLAN4YOU_RULES_PATH"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"PLAN4YOU_GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	CatalogDBPath string `env:"PLAN4YOU_CATALOG_DB" envDefault:"plan4you.db"`
	HTTPAddr      string `env:"PLAN4YOU_HTTP_ADDR" envDefault:":8080"`
	PlanCache     bool   `env:"PLAN4YOU_PLAN_CACHE" envDefault:"true"`
}

// LoadSettings loads .env files (missing files are ignored) and then parses
// the environment.
func LoadSettings(envFiles ...string) (*Settings, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &s, nil
}

// SettingsFromMap parses settings from an explicit variable map instead of
// the process environment.
func SettingsFromMap(vars map[string]string) (*Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &s, nil
}

// SummariesEnabled reports whether a Gemini key is configured.
func (s *Settings) SummariesEnabled() bool {
	return s.GeminiAPIKey != ""
}

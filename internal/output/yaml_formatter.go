package output

import (
	"github.com/rgehrsitz/plan4you/internal/advisor"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter renders the recommendation as YAML
type YAMLFormatter struct{}

func (YAMLFormatter) Name() string { return "yaml" }

func (YAMLFormatter) Format(rec *advisor.Recommendation) ([]byte, error) {
	return yaml.Marshal(rec)
}

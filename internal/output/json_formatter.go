package output

import (
	"encoding/json"

	"github.com/rgehrsitz/plan4you/internal/advisor"
)

// JSONFormatter renders the recommendation as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (jf JSONFormatter) Name() string { return "json" }

func (jf JSONFormatter) Format(rec *advisor.Recommendation) ([]byte, error) {
	if jf.Pretty {
		return json.MarshalIndent(rec, "", "  ")
	}
	return json.Marshal(rec)
}

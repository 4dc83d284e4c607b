package compare

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rgehrsitz/plan4you/internal/domain"
)

// ComparisonDocument is the stable JSON shape of a comparison: the household
// the scenarios start from, the base result and one entry per scenario.
type ComparisonDocument struct {
	Household       domain.HouseholdProfile `json:"household"`
	ProfilePath     string                  `json:"profilePath,omitempty"`
	BaseScenario    string                  `json:"baseScenario"`
	Base            ComparisonResult        `json:"base"`
	Scenarios       []ComparisonResult      `json:"scenarios"`
	Recommendations []string                `json:"recommendations"`
}

// NewComparisonDocument builds the document for compSet. Slices are never
// nil so consumers always see arrays.
func NewComparisonDocument(compSet *ComparisonSet) (*ComparisonDocument, error) {
	if compSet == nil || compSet.BaseResult == nil {
		return nil, errors.New("comparison has no base result")
	}
	doc := &ComparisonDocument{
		Household:       compSet.BaseResult.Profile,
		ProfilePath:     compSet.ProfilePath,
		BaseScenario:    compSet.BaseScenarioName,
		Base:            *compSet.BaseResult,
		Scenarios:       compSet.AlternativeResults,
		Recommendations: compSet.Recommendations,
	}
	if doc.Scenarios == nil {
		doc.Scenarios = []ComparisonResult{}
	}
	if doc.Recommendations == nil {
		doc.Recommendations = []string{}
	}
	return doc, nil
}

// JSONFormatter renders a comparison as a ComparisonDocument
type JSONFormatter struct {
	Pretty bool
}

// Format encodes compSet
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	doc, err := NewComparisonDocument(compSet)
	if err != nil {
		return "", err
	}
	var data []byte
	if jf.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode comparison: %w", err)
	}
	return string(data), nil
}

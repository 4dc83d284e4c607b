package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/rgehrsitz/plan4you/internal/advisor"
)

// CSVFormatter writes one row per benefit of every matching plan.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(rec *advisor.Recommendation) ([]byte, error) {
	if rec == nil || rec.Report == nil {
		return nil, fmt.Errorf("no report to format")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Plan ID", "Benefit", "Covered", "Copay Tier 1", "Coinsurance Tier 1"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, plan := range rec.Report.Plans {
		for _, b := range plan.Benefits {
			row := []string{plan.PlanID, b.Benefit, b.Covered, b.CopayTier1, b.CoinsuranceTier1}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

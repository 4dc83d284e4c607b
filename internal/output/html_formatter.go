package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/rgehrsitz/plan4you/internal/advisor"
	"github.com/rgehrsitz/plan4you/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct {
	MaxPlans int // 0 renders every plan
}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"pct":   FormatPercentage,
	"yesno": yesNo,
	"upper": strings.ToUpper,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(rec *advisor.Recommendation) ([]byte, error) {
	if rec == nil || rec.Report == nil {
		return nil, fmt.Errorf("no report to format")
	}
	plans := rec.Report.Plans
	hidden := 0
	if h.MaxPlans > 0 && len(plans) > h.MaxPlans {
		hidden = len(plans) - h.MaxPlans
		plans = plans[:h.MaxPlans]
	}

	var buf bytes.Buffer
	data := struct {
		*domain.EligibilityReport
		Shown       []domain.PlanGroup
		Hidden      int
		Summaries   []advisor.Summary
		Assumptions []string
	}{rec.Report, plans, hidden, rec.Summaries, DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rgehrsitz/plan4you/internal/advisor"
	"github.com/rgehrsitz/plan4you/internal/breakeven"
	"github.com/rgehrsitz/plan4you/internal/calculation"
	"github.com/rgehrsitz/plan4you/internal/catalog"
	"github.com/rgehrsitz/plan4you/internal/compare"
	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/rgehrsitz/plan4you/internal/refdata"
	"github.com/rgehrsitz/plan4you/internal/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoSummarizer struct{}

func (echoSummarizer) Summarize(_ context.Context, req summary.Request) (string, error) {
	return string(req.Kind) + " summary", nil
}

type fakeCatalog struct {
	entries map[catalog.Key]*catalog.Entry
	err     error
}

func (f *fakeCatalog) Find(_ context.Context, key catalog.Key) (*catalog.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	key.State = strings.ToUpper(key.State)
	if e, ok := f.entries[key]; ok {
		return e, nil
	}
	return nil, catalog.ErrNotFound
}

func (f *fakeCatalog) List(context.Context) ([]catalog.Summary, error) {
	out := []catalog.Summary{}
	for k, e := range f.entries {
		out = append(out, catalog.Summary{Key: k, PlanCount: len(e.Plans)})
	}
	return out, f.err
}

func testRef() *refdata.ReferenceData {
	copay := "$30.00"
	return refdata.New(
		[]domain.BenefitRecord{
			{PlanID: "TX-A", StateCode: "TX", BenefitName: "Primary Care", IsCovered: "Covered", CopayTier1: &copay},
		},
		[]domain.EligibilityThresholdRow{
			{State: "TX", MedicaidAges0to1: "198%", MedicaidAges1to5: "144%", MedicaidAges6to18: "138%", SeparateCHIP: "201%"},
		},
	)
}

func newTestServer(t *testing.T, cat CatalogReader) http.Handler {
	t.Helper()
	adv := advisor.New(calculation.NewCalculationEngine(), testRef(), echoSummarizer{})
	srv, err := New(Config{Advisor: adv, Catalog: cat})
	require.NoError(t, err)
	gin.SetMode(gin.TestMode)
	return srv.Handler()
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestNew_RequiresAdvisor(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestHealthzAndTest(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(h, http.MethodGet, "/api/test", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "message")

	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err, "every response carries a request ID")
}

func TestRequestIDPassthrough(t *testing.T) {
	h := newTestServer(t, nil)
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, id, w.Header().Get(RequestIDHeader))
}

func TestEligibility_OK(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(h, http.MethodPost, "/api/eligibility",
		`{"name":"Jane","age":42,"dependents":1,"income":"75000","state":"tx","wantsDental":false}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		RequestID string                   `json:"requestId"`
		Headline  string                   `json:"headline"`
		Report    domain.EligibilityReport `json:"report"`
		Summaries []advisor.Summary        `json:"summaries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, "You may not qualify for Medicaid or CHIP.", resp.Headline)
	assert.Equal(t, "TX", resp.Report.Profile.State)
	assert.Equal(t, "380.3", resp.Report.Eligibility.FPLPercent.StringFixed(1))
	require.Len(t, resp.Report.Plans, 1)
	assert.Equal(t, "TX-A", resp.Report.Plans[0].PlanID)
	assert.Len(t, resp.Summaries, 3)
}

func TestEligibility_PlanPayloadKeys(t *testing.T) {
	h := newTestServer(t, nil)
	w := do(h, http.MethodPost, "/api/eligibility",
		`{"name":"Jane","age":42,"dependents":1,"income":75000,"state":"TX"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	for _, key := range []string{`"Plan ID"`, `"benefits"`, `"Benefit"`, `"Covered"`, `"Copay Tier 1"`, `"Coinsurance Tier 1"`} {
		assert.Contains(t, body, key)
	}
}

func TestEligibility_BadRequests(t *testing.T) {
	h := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"name":`},
		{"missing name", `{"age":42,"income":1000,"state":"TX"}`},
		{"negative age", `{"name":"A","age":-3,"income":1000,"state":"TX"}`},
		{"bad state", `{"name":"A","age":3,"income":1000,"state":"Texas"}`},
		{"negative income", `{"name":"A","age":3,"income":-1,"state":"TX"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, http.MethodPost, "/api/eligibility", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestEligibility_Sort(t *testing.T) {
	h := newTestServer(t, nil)
	body := `{"name":"Jane","age":42,"dependents":1,"income":75000,"state":"TX"}`

	w := do(h, http.MethodPost, "/api/eligibility?sort=most_benefits", body)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(h, http.MethodPost, "/api/eligibility?sort=alphabetical", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown sequencing strategy")
}

func TestLimit(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(h, http.MethodPost, "/api/limit",
		`{"name":"Sam","age":10,"dependents":1,"income":40000,"state":"TX"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result breakeven.IncomeLimitResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, breakeven.StatusFound, result.Status)
	assert.Equal(t, "39647.05", result.MaxEligibleIncome.StringFixed(2))
	assert.Equal(t, "CHIP", result.Program)
	assert.False(t, result.CurrentlyEligible)

	w = do(h, http.MethodPost, "/api/limit", `{"age":10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompare(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(h, http.MethodPost, "/api/compare",
		`{"profile":{"name":"Sam","age":10,"dependents":1,"income":40000,"state":"TX"},"templates":["job_loss"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var doc compare.ComparisonDocument
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "Sam", doc.Household.Name)
	require.Len(t, doc.Scenarios, 1)
	assert.Equal(t, "job_loss", doc.Scenarios[0].ScenarioName)
	assert.True(t, doc.Scenarios[0].IsMedicaidEligible)

	w = do(h, http.MethodPost, "/api/compare",
		`{"profile":{"name":"Sam","age":10,"dependents":1,"income":40000,"state":"TX"},"transforms":["set_income:amount=20000"],"name":"part_time"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "part_time")

	tests := []struct {
		name string
		body string
	}{
		{"unknown template", `{"profile":{"name":"Sam","age":10,"income":1,"state":"TX"},"templates":["lottery"]}`},
		{"bad transform", `{"profile":{"name":"Sam","age":10,"income":1,"state":"TX"},"transforms":["fly:x=1"]}`},
		{"invalid profile", `{"profile":{"age":10},"templates":["job_loss"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, http.MethodPost, "/api/compare", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCatalog(t *testing.T) {
	cat := &fakeCatalog{entries: map[catalog.Key]*catalog.Entry{
		{State: "TX", WantsDental: true}: {ID: "1", Key: catalog.Key{State: "TX", WantsDental: true}, Plans: []domain.PlanGroup{{PlanID: "TX-A"}}},
	}}
	h := newTestServer(t, cat)

	w := do(h, http.MethodGet, "/api/catalog/tx?dental=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	var entry catalog.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, "TX-A", entry.Plans[0].PlanID)

	w = do(h, http.MethodGet, "/api/catalog/TX", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(h, http.MethodGet, "/api/catalog/TX?dental=perhaps", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(h, http.MethodGet, "/api/catalog", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "catalogs")
}

func TestCatalog_Errors(t *testing.T) {
	w := do(newTestServer(t, nil), http.MethodGet, "/api/catalog/TX", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = do(newTestServer(t, &fakeCatalog{err: errors.New("disk full")}), http.MethodGet, "/api/catalog/TX", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	w := do(newTestServer(t, nil), http.MethodOptions, "/api/eligibility", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

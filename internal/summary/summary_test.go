package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func samplePlans() []domain.PlanGroup {
	return []domain.PlanGroup{
		{
			PlanID: "12345TX0010001",
			Benefits: []domain.BenefitSummary{
				{Benefit: "Accidental Dental", Covered: "Covered", CopayTier1: domain.NotAvailable, CoinsuranceTier1: "20.00%"},
			},
		},
	}
}

func sampleRequest(kind Kind) Request {
	return Request{
		Kind:        kind,
		Profile:     domain.HouseholdProfile{Name: "Jane", Age: 42, Dependents: 1, Income: decimal.NewFromInt(75000), State: "TX", WantsDental: true},
		Eligibility: domain.EligibilityResult{HouseholdSize: 2, FPLPercent: decimal.RequireFromString("380.3")},
		Plans:       samplePlans(),
	}
}

func TestFormatPlansForPrompt(t *testing.T) {
	out, err := FormatPlansForPrompt(samplePlans())
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "12345TX0010001", decoded[0]["Plan ID"])

	benefits := decoded[0]["benefits"].([]interface{})
	first := benefits[0].(map[string]interface{})
	assert.Equal(t, "Accidental Dental", first["Benefit"])
	assert.Equal(t, "Covered", first["Covered"])
	assert.Equal(t, "N/A", first["Copay Tier 1"])
	assert.Equal(t, "20.00%", first["Coinsurance Tier 1"])
}

func TestFormatPlansForPrompt_EmptyAndCapped(t *testing.T) {
	out, err := FormatPlansForPrompt(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)

	many := make([]domain.PlanGroup, MaxPromptPlans+5)
	for i := range many {
		many[i] = domain.PlanGroup{PlanID: fmt.Sprintf("P%d", i), Benefits: []domain.BenefitSummary{}}
	}
	out, err = FormatPlansForPrompt(many)
	require.NoError(t, err)
	var decoded []domain.PlanGroup
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded, MaxPromptPlans)
}

func TestPromptPlans(t *testing.T) {
	few := make([]domain.PlanGroup, 3)
	kept, omitted := PromptPlans(few)
	assert.Len(t, kept, 3)
	assert.Zero(t, omitted)

	many := make([]domain.PlanGroup, MaxPromptPlans+7)
	kept, omitted = PromptPlans(many)
	assert.Len(t, kept, MaxPromptPlans)
	assert.Equal(t, 7, omitted)
}

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		kind     Kind
		contains []string
	}{
		{KindInsurance, []string{"insurance agent", "12345TX0010001", `"state": "TX"`, "top 5-10"}},
		{KindFinancial, []string{"financial advisor", "$75000.00", "380.3%", "12345TX0010001"}},
		{KindLegal, []string{"regulations and compliance", "red flags", "12345TX0010001"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			prompt, err := BuildPrompt(sampleRequest(tt.kind))
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, prompt, s)
			}
			assert.NotContains(t, prompt, "%!")
		})
	}

	_, err := BuildPrompt(sampleRequest("astrologer"))
	assert.Error(t, err)
}

func TestPromptSummarizer(t *testing.T) {
	gen := &fakeGenerator{reply: "  Plan 12345TX0010001 is the best fit.\n"}
	s := NewPromptSummarizer(gen)

	text, err := s.Summarize(context.Background(), sampleRequest(KindLegal))
	require.NoError(t, err)
	assert.Equal(t, "Plan 12345TX0010001 is the best fit.", text)
	require.Len(t, gen.prompts, 1)
	assert.True(t, strings.Contains(gen.prompts[0], "red flags"))
}

func TestPromptSummarizer_Errors(t *testing.T) {
	t.Run("generator error", func(t *testing.T) {
		cause := errors.New("quota exceeded")
		s := NewPromptSummarizer(&fakeGenerator{err: cause})
		_, err := s.Summarize(context.Background(), sampleRequest(KindFinancial))
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "financial")
	})

	t.Run("empty reply", func(t *testing.T) {
		s := NewPromptSummarizer(&fakeGenerator{reply: "   "})
		_, err := s.Summarize(context.Background(), sampleRequest(KindInsurance))
		assert.Error(t, err)
	})

	t.Run("no generator", func(t *testing.T) {
		_, err := (&PromptSummarizer{}).Summarize(context.Background(), sampleRequest(KindInsurance))
		assert.Error(t, err)
	})
}

func TestExtractTextFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello, "), genai.Text("world")}},
		}},
	}
	text, err := extractTextFromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world", text)

	_, err = extractTextFromResponse(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	_, err = extractTextFromResponse(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}})
	assert.Error(t, err)

	_, err = extractTextFromResponse(nil)
	assert.Error(t, err)
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "")
	assert.Error(t, err)
}

func TestKinds(t *testing.T) {
	assert.Equal(t, []Kind{KindInsurance, KindFinancial, KindLegal}, Kinds())
}

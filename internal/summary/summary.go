// Package summary produces the plain-language advisory write-ups that
// accompany an eligibility report.
package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/plan4you/internal/domain"
)

// Kind names one advisor persona.
type Kind string

const (
	KindInsurance Kind = "insurance"
	KindFinancial Kind = "financial"
	KindLegal     Kind = "legal"
)

// Kinds returns every persona in display order.
func Kinds() []Kind {
	return []Kind{KindInsurance, KindFinancial, KindLegal}
}

// Request is everything a summarizer may use to write one summary.
type Request struct {
	Kind        Kind
	Profile     domain.HouseholdProfile
	Eligibility domain.EligibilityResult
	Plans       []domain.PlanGroup
}

// Summarizer turns a request into prose. Implementations must be safe for
// concurrent use.
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (string, error)
}

// TextGenerator is the model call behind a PromptSummarizer.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// MaxPromptPlans caps how many plan groups are sent to the model.
const MaxPromptPlans = 50

// PromptSummarizer renders the persona prompt and hands it to a generator.
type PromptSummarizer struct {
	Generator TextGenerator
}

// NewPromptSummarizer creates a summarizer backed by gen.
func NewPromptSummarizer(gen TextGenerator) *PromptSummarizer {
	return &PromptSummarizer{Generator: gen}
}

// Summarize implements Summarizer.
func (s *PromptSummarizer) Summarize(ctx context.Context, req Request) (string, error) {
	if s.Generator == nil {
		return "", fmt.Errorf("no text generator configured")
	}
	prompt, err := BuildPrompt(req)
	if err != nil {
		return "", err
	}
	text, err := s.Generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%s summary: %w", req.Kind, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%s summary: empty response", req.Kind)
	}
	return text, nil
}

// PromptPlans returns the plan groups that fit in a prompt and how many were
// left out.
func PromptPlans(plans []domain.PlanGroup) ([]domain.PlanGroup, int) {
	if len(plans) <= MaxPromptPlans {
		return plans, 0
	}
	return plans[:MaxPromptPlans], len(plans) - MaxPromptPlans
}

// FormatPlansForPrompt renders plan groups as indented JSON using the
// "Plan ID" / "benefits" layout the prompts describe. Groups past
// MaxPromptPlans are not sent.
func FormatPlansForPrompt(plans []domain.PlanGroup) (string, error) {
	if plans == nil {
		plans = []domain.PlanGroup{}
	}
	plans, _ = PromptPlans(plans)
	data, err := json.MarshalIndent(plans, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode plans: %w", err)
	}
	return string(data), nil
}

type promptProfile struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Dependents  int    `json:"dependents"`
	Income      string `json:"income"`
	State       string `json:"state"`
	WantsDental bool   `json:"wantsDental"`
	Eligibility string `json:"eligibility"`
}

// BuildPrompt renders the prompt for req.Kind.
func BuildPrompt(req Request) (string, error) {
	plans, err := FormatPlansForPrompt(req.Plans)
	if err != nil {
		return "", err
	}

	switch req.Kind {
	case KindInsurance:
		profile, err := json.MarshalIndent(promptProfile{
			Name:        req.Profile.Name,
			Age:         req.Profile.Age,
			Dependents:  req.Profile.Dependents,
			Income:      req.Profile.Income.StringFixed(2),
			State:       req.Profile.State,
			WantsDental: req.Profile.WantsDental,
			Eligibility: req.Eligibility.Headline(),
		}, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode profile: %w", err)
		}
		return fmt.Sprintf(insurancePrompt, plans, string(profile)), nil
	case KindFinancial:
		return fmt.Sprintf(financialPrompt, req.Profile.Income.StringFixed(2), req.Eligibility.FPLPercent.StringFixed(1), plans), nil
	case KindLegal:
		return fmt.Sprintf(legalPrompt, plans), nil
	default:
		return "", fmt.Errorf("unknown summary kind %q", req.Kind)
	}
}

const insurancePrompt = `You are a knowledgeable and friendly medical insurance agent who recommends the best policy by explaining it.

Your main goal is to help clients select the insurance policies that best meet their needs, preferences and budget.

Based on the following insurance policies:
%s
and the user's needs:
%s

Explain the key features, benefits and drawbacks of each policy in a clear and concise manner.
Highlight the policies that seem most suitable and explain why. Give the top 5-10 policies.`

const financialPrompt = `You are a qualified financial advisor.
The user's annual household income is $%s, which is %s%% of the federal poverty level.
Considering the user's financial situation and insurance needs, analyze the cost effectiveness of these policies:
%s

Discuss the long term financial implications of each option and help the user understand the value proposition and why they should prefer one policy over another.`

const legalPrompt = `You are an expert in insurance regulations and compliance.
Review the following recommended policies and check that they align with standard industry practice and legal requirements:
%s

Highlight any potential red flags or important legal considerations the user should be aware of (for example exclusions or waiting periods).`

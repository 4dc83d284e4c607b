package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ProfileTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names in alphabetical order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common household changes
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "job_loss",
		Description: "Household loses all earned income",
		Transforms:  []ProfileTransform{&SetIncome{Amount: decimal.Zero}},
	})

	registry.Register(Template{
		Name:        "income_drop_25",
		Description: "Household income falls by 25%",
		Transforms:  []ProfileTransform{&ScaleIncome{Percent: decimal.NewFromInt(75)}},
	})

	registry.Register(Template{
		Name:        "income_drop_50",
		Description: "Household income falls by 50%",
		Transforms:  []ProfileTransform{&ScaleIncome{Percent: decimal.NewFromInt(50)}},
	})

	registry.Register(Template{
		Name:        "raise_10",
		Description: "Household income rises by 10%",
		Transforms:  []ProfileTransform{&ScaleIncome{Percent: decimal.NewFromInt(110)}},
	})

	registry.Register(Template{
		Name:        "new_child",
		Description: "Add one dependent to the household",
		Transforms:  []ProfileTransform{&AddDependents{Count: 1}},
	})

	registry.Register(Template{
		Name:        "new_child_leave",
		Description: "Add one dependent while income falls by 25% during parental leave",
		Transforms: []ProfileTransform{
			&AddDependents{Count: 1},
			&ScaleIncome{Percent: decimal.NewFromInt(75)},
		},
	})

	registry.Register(Template{
		Name:        "with_dental",
		Description: "Include dental coverage",
		Transforms:  []ProfileTransform{&SetDental{Wants: true}},
	})

	registry.Register(Template{
		Name:        "without_dental",
		Description: "Exclude dental coverage",
		Transforms:  []ProfileTransform{&SetDental{Wants: false}},
	})

	return registry
}

// ApplyTemplate applies all transforms in a template to a base profile
func ApplyTemplate(base domain.HouseholdProfile, template Template) (domain.HouseholdProfile, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return []string{}
	}

	parts := strings.Split(templateList, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// GetTemplateHelp returns help text describing all available templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	var sb strings.Builder
	sb.WriteString("Available templates:\n")
	for _, name := range registry.List() {
		t, _ := registry.Get(name)
		sb.WriteString(fmt.Sprintf("  %-18s %s\n", t.Name, t.Description))
	}
	return sb.String()
}

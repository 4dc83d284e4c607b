package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorLabel    = lipgloss.Color("#7A7A7A")
	colorValue    = lipgloss.Color("#2E86AB")
	colorPositive = lipgloss.Color("#3BB273")
	colorNegative = lipgloss.Color("#E4572E")
	colorBorder   = lipgloss.Color("#4A4A4A")

	labelStyle = lipgloss.NewStyle().Foreground(colorLabel)
	valueStyle = lipgloss.NewStyle().Foreground(colorValue).Bold(true)
	descStyle  = lipgloss.NewStyle().Foreground(colorLabel).Italic(true)
)

// MetricCard displays one household figure with an optional status line
type MetricCard struct {
	Label       string
	Value       string
	Status      *Status
	Description string
	Width       int
}

// Status marks a metric as favorable or not, e.g. "within Medicaid limit"
type Status struct {
	IsPositive bool
	Text       string
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 24,
	}
}

// WithStatus adds a status indicator to the card
func (m *MetricCard) WithStatus(isPositive bool, text string) *MetricCard {
	m.Status = &Status{IsPositive: isPositive, Text: text}
	return m
}

// WithDescription adds a subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) statusLine() string {
	if m.Status == nil {
		return ""
	}
	marker, color := "✗", colorNegative
	if m.Status.IsPositive {
		marker, color = "✓", colorPositive
	}
	return lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("%s %s", marker, m.Status.Text))
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := labelStyle.Render(m.Label) + "\n" + valueStyle.Render(m.Value)
	if s := m.statusLine(); s != "" {
		content += "\n" + s
	}
	if m.Description != "" {
		content += "\n" + descStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns an inline version without border
func (m *MetricCard) RenderCompact() string {
	out := labelStyle.Render(m.Label+":") + " " + valueStyle.Render(m.Value)
	if s := m.statusLine(); s != "" {
		out += " " + s
	}
	return out
}

// MetricGrid renders cards left to right, wrapping after columns cards
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

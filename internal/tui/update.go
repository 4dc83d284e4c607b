package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	keyQuit   = key.NewBinding(key.WithKeys("ctrl+c"))
	keyNext   = key.NewBinding(key.WithKeys("tab", "down", "enter"))
	keyPrev   = key.NewBinding(key.WithKeys("shift+tab", "up"))
	keySubmit = key.NewBinding(key.WithKeys("enter"))
	keyNew    = key.NewBinding(key.WithKeys("n"))
	keyLeave  = key.NewBinding(key.WithKeys("q", "esc"))
	keyUp     = key.NewBinding(key.WithKeys("up", "k"))
	keyDown   = key.NewBinding(key.WithKeys("down", "j"))
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case RecommendationMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.result = msg.Recommendation
		m.offset = 0
		m.scene = SceneResults
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keyQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.loading {
			return m, nil
		}
		if m.err != nil {
			// Any key dismisses the error and returns to the form.
			m.err = nil
			m.scene = SceneIntake
			return m, nil
		}
		switch m.scene {
		case SceneIntake:
			return m.updateIntake(msg)
		case SceneResults:
			return m.updateResults(msg)
		}
	}

	if m.scene == SceneIntake {
		return m.updateInputs(msg)
	}
	return m, nil
}

func (m Model) updateIntake(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keySubmit) && m.focused == fieldCount-1:
		return m.submit()
	case key.Matches(msg, keyNext):
		return m.focus(m.focused + 1)
	case key.Matches(msg, keyPrev):
		return m.focus(m.focused - 1)
	}
	m.formErr = ""
	return m.updateInputs(msg)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	profile, err := m.Profile()
	if err != nil {
		m.formErr = err.Error()
		return m, nil
	}
	m.formErr = ""
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, recommendCmd(m.advisor, profile))
}

func (m Model) focus(i int) (tea.Model, tea.Cmd) {
	if i < 0 {
		i = 0
	}
	if i >= fieldCount {
		i = fieldCount - 1
	}
	m.inputs[m.focused].Blur()
	m.focused = i
	cmd := m.inputs[m.focused].Focus()
	return m, cmd
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keyLeave):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keyNew):
		next := NewModel(m.advisor)
		next.width, next.height = m.width, m.height
		return next, textinput.Blink
	case key.Matches(msg, keyDown):
		if m.result != nil && m.offset < len(m.result.Report.Plans)-1 {
			m.offset++
		}
	case key.Matches(msg, keyUp):
		if m.offset > 0 {
			m.offset--
		}
	}
	return m, nil
}

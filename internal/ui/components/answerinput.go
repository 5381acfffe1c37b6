package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lumikids/lumi/internal/ui/theme"
)

// AnswerInput wraps bubbles/textinput for short-answer items.
type AnswerInput struct {
	Model textinput.Model

	// Disabled drops keystrokes while a submission is in flight.
	Disabled bool
}

// NewAnswerInput creates a focused input with Lumi styling.
func NewAnswerInput(placeholder string, charLimit int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return AnswerInput{Model: ti}
}

// Init returns the focus command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update forwards messages to the underlying input.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if a.Disabled {
		return a, nil
	}
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// Value returns the current text.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// View renders the input inside a bordered box.
func (a AnswerInput) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(a.Model.View())
}

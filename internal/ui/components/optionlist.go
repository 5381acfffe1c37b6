package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lumikids/lumi/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// OptionList is the multiple-choice selector. It knows the option texts
// and which one is highlighted, nothing else: correctness never reaches
// this component. Re-selection is always permitted until the session
// layer disables the list.
type OptionList struct {
	Options  []string
	Selected int

	// Disabled freezes navigation while a submission is in flight.
	Disabled bool
}

// NewOptionList creates a selector with the first option highlighted.
func NewOptionList(options []string) OptionList {
	return OptionList{Options: options}
}

// Update handles navigation keys. Number keys jump directly.
func (l OptionList) Update(msg tea.Msg) OptionList {
	if l.Disabled {
		return l
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if l.Selected > 0 {
			l.Selected--
		}
	case "down", "j":
		if l.Selected < len(l.Options)-1 {
			l.Selected++
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			idx := int(key[0] - '1')
			if idx < len(l.Options) {
				l.Selected = idx
			}
		}
	}
	return l
}

// View renders the options with the highlight cursor.
func (l OptionList) View() string {
	var s string
	for i, opt := range l.Options {
		label := fmt.Sprintf("%d", i+1)
		if i < len(optionLabels) {
			label = optionLabels[i]
		}

		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == l.Selected {
			prefix = "▸ "
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		if l.Disabled {
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		}

		s += style.Render(fmt.Sprintf("%s%s)  %s", prefix, label, opt)) + "\n"
	}
	return s
}

package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lumikids/lumi/internal/ui/theme"
)

// MenuItem is one selectable entry.
type MenuItem struct {
	Label       string
	Description string
}

// Menu is a vertical selector used on the home screen.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first entry highlighted.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update handles navigation.
func (m Menu) Update(msg tea.Msg) Menu {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m
	}
	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Items)-1 {
			m.Selected++
		}
	}
	return m
}

// View renders the menu.
func (m Menu) View() string {
	var s string
	for i, item := range m.Items {
		label := item.Label
		if i == m.Selected {
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ "+label) + "\n"
			if item.Description != "" {
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render("    "+item.Description) + "\n"
			}
		} else {
			s += lipgloss.NewStyle().Foreground(theme.Text).Render("  "+label) + "\n"
		}
	}
	return s
}

package home

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lumikids/lumi/internal/router"
	"github.com/lumikids/lumi/internal/ui/components"
	"github.com/lumikids/lumi/internal/ui/layout"
	"github.com/lumikids/lumi/internal/ui/theme"
)

// Config supplies the screen factories the menu entries push. The app
// shell owns the wiring so this package stays free of session and
// store dependencies.
type Config struct {
	NewSession func() router.Screen
	NewHistory func() router.Screen
}

// Screen is the landing menu.
type Screen struct {
	cfg  Config
	menu components.Menu
}

var _ router.Screen = (*Screen)(nil)
var _ router.KeyHintProvider = (*Screen)(nil)

// New creates the home screen.
func New(cfg Config) *Screen {
	return &Screen{
		cfg: cfg,
		menu: components.NewMenu([]components.MenuItem{
			{Label: "Start practicing", Description: "A short set of questions picked for you"},
			{Label: "My sessions", Description: "See how past practice went"},
			{Label: "Quit", Description: "See you next time"},
		}),
	}
}

func (s *Screen) Title() string {
	return "Home"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Move"},
		{Key: "Enter", Description: "Choose"},
		{Key: "Q", Description: "Quit"},
	}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "q", "esc":
		return s, tea.Quit

	case "enter":
		switch s.menu.Selected {
		case 0:
			screen := s.cfg.NewSession()
			return s, func() tea.Msg { return router.PushMsg{Screen: screen} }
		case 1:
			screen := s.cfg.NewHistory()
			return s, func() tea.Msg { return router.PushMsg{Screen: screen} }
		case 2:
			return s, tea.Quit
		}
	}

	s.menu = s.menu.Update(msg)
	return s, nil
}

func (s *Screen) View(width, height int) string {
	greeting := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Width(width).
		Align(lipgloss.Center).
		Render("Ready to practice?")

	menu := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(s.menu.View())

	return "\n\n" + greeting + "\n\n" + menu
}

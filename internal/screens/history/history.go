package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lumikids/lumi/internal/router"
	sess "github.com/lumikids/lumi/internal/session"
	"github.com/lumikids/lumi/internal/store"
	"github.com/lumikids/lumi/internal/ui/layout"
	"github.com/lumikids/lumi/internal/ui/theme"
)

const pageSize = 20

type loadedMsg struct {
	results []sess.Result
	err     error
}

// Screen lists past completed sessions, newest first.
type Screen struct {
	store *store.Store

	results []sess.Result
	loading bool
	err     error
}

var _ router.Screen = (*Screen)(nil)
var _ router.KeyHintProvider = (*Screen)(nil)

// New creates a history screen backed by the given store.
func New(st *store.Store) *Screen {
	return &Screen{store: st, loading: true}
}

func (s *Screen) Title() string {
	return "My Sessions"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Init() tea.Cmd {
	return func() tea.Msg {
		results, err := s.store.List(context.Background(), pageSize)
		return loadedMsg{results: results, err: err}
	}
}

func (s *Screen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loading = false
		s.results = msg.results
		s.err = msg.err
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "enter":
			return s, func() tea.Msg { return router.PopMsg{} }
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	if s.loading {
		return theme.Dim.Render("\n  Loading your sessions...")
	}
	if s.err != nil {
		return lipgloss.NewStyle().
			Foreground(theme.Error).
			Render("\n  Couldn't read your session history.")
	}
	if len(s.results) == 0 {
		return theme.Dim.Render("\n  No sessions yet. Go practice!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, r := range s.results {
		date := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(r.StartedAt.Format("Mon Jan 2 3:04pm"))
		counts := lipgloss.NewStyle().
			Foreground(theme.Text).
			Render(fmt.Sprintf("%d/%d right", r.Correct, r.Attempted))
		effort := lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Render(string(r.Effort))

		line := fmt.Sprintf("  %s   %s   %s", date, counts, effort)
		if r.BonusUsed {
			line += lipgloss.NewStyle().Foreground(theme.Accent).Render("  +bonus")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

package app

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lumikids/lumi/internal/content"
	"github.com/lumikids/lumi/internal/router"
	"github.com/lumikids/lumi/internal/screens/history"
	"github.com/lumikids/lumi/internal/screens/home"
	sessionscreen "github.com/lumikids/lumi/internal/screens/session"
	"github.com/lumikids/lumi/internal/screens/summary"
	sess "github.com/lumikids/lumi/internal/session"
	"github.com/lumikids/lumi/internal/store"
	"github.com/lumikids/lumi/internal/ui/layout"
)

// Options carries everything the app shell needs to run: the content
// source for sessions, the session config, the history store and the
// logger. The command layer builds it; the shell stays ignorant of
// flags and env.
type Options struct {
	Source     content.Source
	SessionCfg sess.Config
	Store      *store.Store
	Logger     *slog.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	opts   Options
	router *router.Router
	width  int
	height int
}

func newModel(opts Options) *Model {
	m := &Model{opts: opts}
	m.router = router.New(home.New(home.Config{
		NewSession: m.newSessionScreen,
		NewHistory: func() router.Screen { return history.New(opts.Store) },
	}))
	return m
}

// newSessionScreen builds a session screen with the shell's
// persistence hook attached. Completed results are appended to the
// history store; a failed write is logged and the session continues to
// the summary regardless.
func (m *Model) newSessionScreen() router.Screen {
	return sessionscreen.New(m.opts.Source, m.opts.SessionCfg, sessionscreen.Hooks{
		OnComplete: func(r sess.Result) {
			if m.opts.Store == nil {
				return
			}
			if err := m.opts.Store.Append(context.Background(), r); err != nil {
				m.opts.Logger.Warn("persist session result failed",
					"session_id", r.SessionID, "error", err)
			}
		},
	}, m.opts.Logger)
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case summary.BonusAcceptedMsg:
		return m, m.acceptBonus(msg.SessionID)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// acceptBonus records the acceptance and swaps the summary for a fresh
// session.
func (m *Model) acceptBonus(sessionID string) tea.Cmd {
	if m.opts.Store != nil {
		if err := m.opts.Store.MarkBonusUsed(context.Background(), sessionID); err != nil {
			m.opts.Logger.Warn("mark bonus used failed",
				"session_id", sessionID, "error", err)
		}
	}
	screen := m.newSessionScreen()
	return m.router.Replace(screen)
}

func (m *Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.width)

	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if provider, ok := active.(router.KeyHintProvider); ok {
		hints = provider.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newModel(opts))
	_, err := p.Run()
	return err
}

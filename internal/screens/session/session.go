package session

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/lumikids/lumi/internal/content"
	"github.com/lumikids/lumi/internal/router"
	"github.com/lumikids/lumi/internal/screens/summary"
	sess "github.com/lumikids/lumi/internal/session"
	"github.com/lumikids/lumi/internal/ui/components"
	"github.com/lumikids/lumi/internal/ui/layout"
)

// Hooks are the host's observation points, forwarded from the app
// shell. OnComplete receives the finished result (the app persists it);
// OnExit fires on a confirmed early exit.
type Hooks struct {
	OnComplete func(sess.Result)
	OnExit     func()
}

// Screen presents one question at a time and translates learner
// interaction into orchestrator calls. It holds only per-item transient
// UI state; everything session-scoped lives in the orchestrator.
type Screen struct {
	orch  *sess.Orchestrator
	hooks Hooks

	options components.OptionList
	input   components.AnswerInput

	// finished and exited are set by the orchestrator callbacks during
	// an Update call and converted into navigation commands before the
	// call returns.
	finished *sess.Result
	exited   bool
}

var _ router.Screen = (*Screen)(nil)
var _ router.KeyHintProvider = (*Screen)(nil)

// New wires a session screen around a fresh orchestrator. One screen
// per session; a new session always gets a new screen.
func New(source content.Source, cfg sess.Config, hooks Hooks, logger *slog.Logger) *Screen {
	s := &Screen{hooks: hooks}
	s.orch = sess.New(source, cfg, sess.Callbacks{
		OnComplete: func(r sess.Result) {
			s.finished = &r
			if hooks.OnComplete != nil {
				hooks.OnComplete(r)
			}
		},
		OnExit: func() {
			s.exited = true
			if hooks.OnExit != nil {
				hooks.OnExit()
			}
		},
	}, logger)
	return s
}

func (s *Screen) Title() string {
	return "Practice"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.orch.ExitPending() {
		return []layout.KeyHint{
			{Key: "Y", Description: "Stop now"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.orch.IsSubmitting() {
		return []layout.KeyHint{}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "?", Description: "Hint"},
		{Key: "Esc", Description: "Stop"},
	}
}

// Init starts the plan fetch. The command only fetches; state is
// written when the message is applied in Update, so key events served
// during the fetch never race the load.
func (s *Screen) Init() tea.Cmd {
	return func() tea.Msg {
		plan, usedFallback := s.orch.FetchPlan(context.Background())
		return itemsLoadedMsg{Plan: plan, UsedFallback: usedFallback}
	}
}

func (s *Screen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case itemsLoadedMsg:
		s.orch.ApplyPlan(msg.Plan, msg.UsedFallback)
		if s.orch.Phase() != sess.PhaseAwaiting {
			// The learner bailed out while the fetch was in flight;
			// the plan was dropped as stale.
			return s, nil
		}
		s.setupWidgets()
		return s, s.input.Init()

	case hintFetchedMsg:
		s.orch.ApplyHint(msg.ItemID, msg.Text)
		return s, nil

	case advanceMsg:
		s.orch.Advance()
		if cmd := s.navigation(); cmd != nil {
			return s, cmd
		}
		s.setupWidgets()
		return s, s.input.Init()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forward(msg)
}

func (s *Screen) handleKey(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	key := msg.String()

	if s.orch.ExitPending() {
		switch key {
		case "y", "Y":
			s.orch.ConfirmExit()
			return s, s.navigation()
		case "n", "N", "esc":
			s.orch.CancelExit()
		}
		return s, nil
	}

	// Controls freeze while a submission is in flight; the advance
	// timer is the only thing that can move the session forward.
	if s.orch.IsSubmitting() {
		return s, nil
	}

	switch key {
	case "esc":
		s.orch.RequestExit()
		return s, s.navigation()

	case "?":
		return s, s.fetchHintCmd()

	case "enter":
		return s.submit()
	}

	return s.forward(msg)
}

// forward hands non-handled input to the active answer widget.
func (s *Screen) forward(msg tea.Msg) (router.Screen, tea.Cmd) {
	item, ok := s.orch.CurrentItem()
	if !ok || s.orch.Phase() != sess.PhaseAwaiting {
		return s, nil
	}
	if item.Type == content.TypeMultipleChoice {
		s.options = s.options.Update(msg)
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit builds the selection from the active widget and hands it to
// the orchestrator. A rejected submission (empty selection, duplicate
// submit) changes nothing on screen.
func (s *Screen) submit() (router.Screen, tea.Cmd) {
	item, ok := s.orch.CurrentItem()
	if !ok {
		return s, nil
	}

	sel := content.NoSelection
	if item.Type == content.TypeMultipleChoice {
		sel = content.Selection{OptionIndex: s.options.Selected}
	} else {
		sel = content.Selection{OptionIndex: -1, Text: s.input.Value()}
	}

	if !s.orch.Submit(sel) {
		return s, nil
	}

	s.options.Disabled = true
	s.input.Disabled = true

	return s, tea.Tick(s.orch.AdvanceDelay(), func(time.Time) tea.Msg {
		return advanceMsg{}
	})
}

// fetchHintCmd starts a hint fetch unless one already happened for this
// item. The orchestrator enforces the once-per-item rule; this just
// avoids queuing a redundant command.
func (s *Screen) fetchHintCmd() tea.Cmd {
	if !s.orch.RequestHint() {
		return nil
	}
	item, ok := s.orch.CurrentItem()
	if !ok {
		return nil
	}
	itemID := item.ID
	return func() tea.Msg {
		text := s.orch.FetchHint(context.Background(), itemID)
		return hintFetchedMsg{ItemID: itemID, Text: text}
	}
}

// setupWidgets resets the per-item widgets for the current item.
func (s *Screen) setupWidgets() {
	item, ok := s.orch.CurrentItem()
	if !ok {
		return
	}
	if item.Type == content.TypeMultipleChoice {
		s.options = components.NewOptionList(item.Options)
	} else {
		s.input = components.NewAnswerInput("Type your answer...", 40)
	}
}

// navigation converts callback outcomes set during this Update into
// router commands: the summary replaces the session on completion, and
// an exit pops back home.
func (s *Screen) navigation() tea.Cmd {
	if s.finished != nil {
		result := *s.finished
		return func() tea.Msg {
			return router.ReplaceMsg{Screen: summary.New(result)}
		}
	}
	if s.exited {
		return func() tea.Msg {
			return router.PopMsg{}
		}
	}
	return nil
}

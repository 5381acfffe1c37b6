package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/lumikids/lumi/internal/ui/layout"
)

// Screen is one full-window view managed by the Router.
type Screen interface {
	// Init returns the screen's startup command.
	Init() tea.Cmd

	// Update handles a message and returns the updated screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area (header and footer excluded).
	View(width, height int) string

	// Title names the screen for the header bar.
	Title() string
}

// KeyHintProvider lets a screen supply its own footer key legend.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// PushMsg asks the router to push a screen onto the stack.
type PushMsg struct {
	Screen Screen
}

// PopMsg asks the router to pop the active screen.
type PopMsg struct{}

// ReplaceMsg swaps the active screen without growing the stack. Used
// when the session hands off to the summary so Esc from the summary
// goes home rather than back into a finished session.
type ReplaceMsg struct {
	Screen Screen
}

// Router manages the screen stack.
type Router struct {
	stack []Screen
}

// New creates a router showing the initial screen.
func New(initial Screen) *Router {
	return &Router{stack: []Screen{initial}}
}

// Push adds a screen on top and runs its Init.
func (r *Router) Push(s Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the active screen. The last screen never pops.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

// Replace swaps the active screen in place and runs the newcomer's Init.
func (r *Router) Replace(s Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.Push(s)
	}
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Active returns the top screen.
func (r *Router) Active() Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the stack depth.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update routes navigation messages, forwarding everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushMsg:
		return r.Push(msg.Screen)
	case PopMsg:
		return r.Pop()
	case ReplaceMsg:
		return r.Replace(msg.Screen)
	}

	active := r.Active()
	if active == nil {
		return nil
	}
	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}

package session

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/lumikids/lumi/internal/content"
	sess "github.com/lumikids/lumi/internal/session"
	"github.com/lumikids/lumi/internal/ui/components"
	"github.com/lumikids/lumi/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if s.orch.IsLoading() {
		return renderLoading(width)
	}
	if s.orch.ExitPending() {
		return renderExitConfirm(width)
	}
	return s.renderQuestion(width)
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n  Getting your questions ready...")
}

func renderExitConfirm(width int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 3).
		Render(
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Stop practicing?") + "\n\n" +
				lipgloss.NewStyle().Foreground(theme.TextDim).Render("Your answers so far won't be saved.") + "\n\n" +
				lipgloss.NewStyle().Foreground(theme.Secondary).Render("Y: stop now    N: keep going"))
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("\n\n" + box)
}

func (s *Screen) renderQuestion(width int) string {
	item, ok := s.orch.CurrentItem()
	if !ok {
		return ""
	}

	var b strings.Builder

	// Progress line.
	progress := s.orch.Progress()
	bar := components.NewProgressBar(progress.Label(), progress.Ratio(), width-8)
	b.WriteString("  " + bar.View() + "\n\n")

	// Stimulus, when the item has one.
	if item.Stimulus != "" {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Width(width - 8).
			PaddingLeft(4).
			Render(item.Stimulus) + "\n\n")
	}

	// Prompt.
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(width - 8).
		PaddingLeft(4).
		Render(item.Prompt) + "\n\n")

	// Answer widget.
	if item.Type == content.TypeMultipleChoice {
		b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Render(s.options.View()) + "\n")
	} else {
		b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Render(s.input.View()) + "\n")
	}

	// Hint, once shown, stays for the remainder of the item.
	switch hint := s.orch.Hint(); hint.Status {
	case sess.HintPending:
		b.WriteString("\n" + lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(theme.TextDim).
			Render("Finding a hint...") + "\n")
	case sess.HintResolved:
		b.WriteString("\n" + lipgloss.NewStyle().
			PaddingLeft(4).
			Render(theme.Hint.Render("Hint: "+hint.Text)) + "\n")
	}

	// Neutral pacing feedback. The presenter never learns whether the
	// answer was correct; it only knows one was locked in.
	if s.orch.IsSubmitting() {
		b.WriteString("\n" + lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(theme.Success).
			Bold(true).
			Render("Locked in! Next one coming up...") + "\n")
	}

	return b.String()
}

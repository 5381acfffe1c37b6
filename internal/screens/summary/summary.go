package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lumikids/lumi/internal/router"
	sess "github.com/lumikids/lumi/internal/session"
	"github.com/lumikids/lumi/internal/ui/layout"
	"github.com/lumikids/lumi/internal/ui/theme"
)

// BonusAcceptedMsg reports that the learner took the bonus offer. The
// app shell records the acceptance and starts the extra play.
type BonusAcceptedMsg struct {
	SessionID string
}

// encouragement maps each effort label to its kid-facing line.
var encouragement = map[sess.EffortLabel]string{
	sess.LabelSteady:    "Every session counts. See you next time!",
	sess.LabelFocused:   "You worked it all out on your own. Amazing focus!",
	sess.LabelPersisted: "You kept going and used your hints wisely. That's how learning works!",
	sess.LabelImproved:  "You got stronger as you went. That's real progress!",
	sess.LabelTriedHard: "You gave it a real go. Trying hard is what matters!",
}

// Screen is the session wrap-up: counts, effort encouragement, and the
// bonus offer after a perfect run.
type Screen struct {
	result sess.Result
}

var _ router.Screen = (*Screen)(nil)
var _ router.KeyHintProvider = (*Screen)(nil)

// New creates a summary screen for a finished session.
func New(result sess.Result) *Screen {
	return &Screen{result: result}
}

func (s *Screen) Title() string {
	return "All Done"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
	if s.result.BonusOffered {
		hints = append([]layout.KeyHint{
			{Key: "B", Description: "Bonus question!"},
		}, hints...)
	}
	return hints
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
	case "enter", "esc", "q":
		return s, func() tea.Msg { return router.PopMsg{} }

	case "b", "B":
		if s.result.BonusOffered {
			id := s.result.SessionID
			return s, func() tea.Msg { return BonusAcceptedMsg{SessionID: id} }
		}
	}

	return s, nil
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder

	heading := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Width(width).
		Align(lipgloss.Center).
		Render("Great practicing today!")
	b.WriteString("\n" + heading + "\n\n")

	counts := fmt.Sprintf("Answered %d  ·  Got right %d  ·  Hints used %d",
		s.result.Attempted, s.result.Correct, s.result.Hinted)
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(width).
		Align(lipgloss.Center).
		Render(counts) + "\n\n")

	if len(s.result.SkillTags) > 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Width(width).
			Align(lipgloss.Center).
			Render("Practiced: "+strings.Join(s.result.SkillTags, ", ")) + "\n\n")
	}

	line, ok := encouragement[s.result.Effort]
	if !ok {
		line = encouragement[sess.LabelTriedHard]
	}
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Italic(true).
		Width(width).
		Align(lipgloss.Center).
		Render(line) + "\n")

	if s.result.BonusOffered {
		bonus := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 2).
			Render(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Perfect score! Press B for a bonus round."))
		b.WriteString("\n" + lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render(bonus) + "\n")
	}

	return b.String()
}

package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/lumikids/lumi/internal/router"
	sess "github.com/lumikids/lumi/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testResult() sess.Result {
	return sess.Result{
		SessionID: "sess-1",
		Attempted: 8,
		Correct:   6,
		Hinted:    2,
		SkillTags: []string{"addition", "subtraction"},
		Effort:    sess.LabelPersisted,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult())
	if s.Title() != "All Done" {
		t.Errorf("Title = %q, want %q", s.Title(), "All Done")
	}
}

func TestSummaryScreen_ViewShowsCountsAndEncouragement(t *testing.T) {
	view := New(testResult()).View(80, 24)

	for _, want := range []string{
		"Answered 8",
		"Got right 6",
		"Hints used 2",
		"addition, subtraction",
		"used your hints wisely",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "bonus") {
		t.Error("bonus offer shown without a perfect run")
	}
}

func TestSummaryScreen_UnknownEffortFallsBack(t *testing.T) {
	r := testResult()
	r.Effort = sess.EffortLabel("???")
	view := New(r).View(80, 24)
	if !strings.Contains(view, "Trying hard is what matters") {
		t.Error("expected the tried-hard line for an unknown label")
	}
}

func TestSummaryScreen_EnterPopsHome(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{
		specialKey(tea.KeyEnter),
		specialKey(tea.KeyEscape),
		keyPress('q'),
	} {
		s := New(testResult())
		_, cmd := s.Update(key)
		if cmd == nil {
			t.Fatalf("key %q produced no command", key.String())
		}
		if _, ok := cmd().(router.PopMsg); !ok {
			t.Errorf("key %q did not pop home", key.String())
		}
	}
}

func TestSummaryScreen_BonusAccept(t *testing.T) {
	r := testResult()
	r.Correct = r.Attempted
	r.BonusOffered = true
	s := New(r)

	if view := s.View(80, 24); !strings.Contains(view, "bonus") {
		t.Error("perfect run did not show the bonus offer")
	}

	_, cmd := s.Update(keyPress('b'))
	if cmd == nil {
		t.Fatal("bonus key produced no command")
	}
	msg, ok := cmd().(BonusAcceptedMsg)
	if !ok {
		t.Fatalf("bonus key produced %T, want BonusAcceptedMsg", cmd())
	}
	if msg.SessionID != "sess-1" {
		t.Errorf("SessionID = %q, want %q", msg.SessionID, "sess-1")
	}
}

func TestSummaryScreen_BonusKeyIgnoredWithoutOffer(t *testing.T) {
	s := New(testResult())
	if _, cmd := s.Update(keyPress('b')); cmd != nil {
		t.Error("bonus key produced a command without an offer")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	if got := len(New(testResult()).KeyHints()); got != 1 {
		t.Errorf("hints without bonus = %d, want 1", got)
	}

	r := testResult()
	r.BonusOffered = true
	if got := len(New(r).KeyHints()); got != 2 {
		t.Errorf("hints with bonus = %d, want 2", got)
	}
}

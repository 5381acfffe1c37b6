package content

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// BankVersion identifies the bundled fallback item set. Bump when the
// bank contents change so reported sessions can be traced to the exact
// items served.
const BankVersion = 3

// GenericHint is served when a remote hint fetch fails and the item has
// no bundled hint of its own.
const GenericHint = "Read the question again slowly, then rule out the answers you know are wrong."

// cannedHints are cycled deterministically by item position in local
// mode, so a demo session always shows the same hint for the same item.
var cannedHints = []string{
	"Try saying the question out loud. It often helps to hear it.",
	"Look for a key word in the question that tells you what to do.",
	"Break the problem into two smaller steps and do one at a time.",
	"Picture the problem in your head, or sketch it with your finger.",
}

// bankItems is the fixed local item set. Every entry must satisfy the
// QuestionItem invariants; mustMC/mustSA panic at startup otherwise,
// which is the right failure mode for bundled literals.
var bankItems = []QuestionItem{
	mustMC("bank-num-01", "What is 47 + 26?", "",
		[]string{"63", "73", "71", "83"}, 1, "addition"),
	mustMC("bank-num-02", "Which number is the largest?", "",
		[]string{"309", "390", "93", "339"}, 1, "place-value"),
	mustSA("bank-num-03", "What is 9 times 6?", "",
		`54|fifty[- ]?four`, "multiplication"),
	mustMC("bank-num-04", "What is 80 - 35?", "",
		[]string{"55", "50", "45", "35"}, 2, "subtraction"),
	mustSA("bank-word-05", "How many wheels do 4 bicycles have altogether?",
		"Milo counts the bicycles parked outside the library.",
		`8|eight`, "multiplication"),
	mustMC("bank-frac-06", "Which fraction is the same as one half?", "",
		[]string{"2/6", "3/4", "2/4", "1/3"}, 2, "fractions"),
	mustMC("bank-time-07", "A film starts at 3:15 and runs for 45 minutes. When does it end?", "",
		[]string{"3:45", "4:00", "4:15", "3:50"}, 1, "time"),
	mustSA("bank-num-08", "What number comes next: 5, 10, 15, 20, ...?", "",
		`25|twenty[- ]?five`, "patterns"),
}

func mustMC(id, prompt, stimulus string, options []string, answerIndex int, skillTag string) QuestionItem {
	item, err := NewMultipleChoice(id, prompt, stimulus, options, answerIndex, skillTag)
	if err != nil {
		panic(fmt.Sprintf("bad bank item: %v", err))
	}
	return item
}

func mustSA(id, prompt, stimulus, pattern, skillTag string) QuestionItem {
	item, err := NewShortAnswer(id, prompt, stimulus, pattern, skillTag)
	if err != nil {
		panic(fmt.Sprintf("bad bank item: %v", err))
	}
	return item
}

// LocalSource serves the bundled bank. It never fails, which is what
// makes it a safe fallback target: a session must always be able to
// start.
type LocalSource struct{}

var _ Source = LocalSource{}

// NewLocalSource returns the bundled-bank source.
func NewLocalSource() LocalSource {
	return LocalSource{}
}

// CreateSessionPlan returns the fixed bank and a synthesized session id.
func (LocalSource) CreateSessionPlan(_ context.Context, _ Learner) (SessionPlan, error) {
	items := make([]QuestionItem, len(bankItems))
	copy(items, bankItems)
	return SessionPlan{
		SessionID: "local-" + uuid.New().String(),
		Items:     items,
	}, nil
}

// GetHint returns a canned hint chosen deterministically by the item's
// position in the bank, so repeated demo runs behave identically.
func (LocalSource) GetHint(_ context.Context, _ string, questionID string, _ Learner) (string, error) {
	for i, item := range bankItems {
		if item.ID == questionID {
			return cannedHints[i%len(cannedHints)], nil
		}
	}
	return GenericHint, nil
}

// SubmitResponse is a no-op in local mode; there is nowhere to report.
func (LocalSource) SubmitResponse(_ context.Context, _ string, _ ResponseRecord, _ Learner) ReportStatus {
	return ReportOK
}

// FinalizeSession is a no-op in local mode.
func (LocalSource) FinalizeSession(_ context.Context, _ string, _ []ResponseRecord, _ Learner) ReportStatus {
	return ReportOK
}

// BankSize reports how many items the bundled bank holds.
func BankSize() int {
	return len(bankItems)
}

package session

import (
	"time"

	"github.com/lumikids/lumi/internal/content"
)

// Phase is the orchestrator's position in the session state machine.
type Phase int

const (
	// PhaseLoading covers the item-set fetch (or fallback) at mount.
	PhaseLoading Phase = iota

	// PhaseAwaiting means the current item is displayed and the
	// orchestrator is waiting for a selection.
	PhaseAwaiting

	// PhaseSubmitting covers the window between an accepted submission
	// and the advance to the next item (the pacing delay).
	PhaseSubmitting

	// PhaseFinalized is terminal: the last response was recorded and
	// the result handed to the host.
	PhaseFinalized

	// PhaseExited is terminal: the learner confirmed an early exit and
	// all in-memory state was discarded.
	PhaseExited
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseAwaiting:
		return "awaiting"
	case PhaseSubmitting:
		return "submitting"
	case PhaseFinalized:
		return "finalized"
	case PhaseExited:
		return "exited"
	}
	return "unknown"
}

// Response records the outcome of one attempted item. Appended in
// presentation order, exactly one per item, never mutated.
type Response struct {
	QuestionID  string
	Selected    content.Selection
	IsCorrect   bool
	TimestampMs int64
	HintWasUsed bool
}

// HintStatus tags the hint state for the current item.
type HintStatus int

const (
	// HintNone means no hint has been requested for the current item.
	HintNone HintStatus = iota

	// HintPending means a fetch is in flight for ItemID.
	HintPending

	// HintResolved means Text holds the hint for ItemID.
	HintResolved
)

// HintState couples the hint to the item it was requested for. A hint
// resolution carrying a different item id than the current one is
// structurally stale and gets discarded, so a slow fetch can never
// attach its text to the wrong item.
type HintState struct {
	Status HintStatus
	ItemID string
	Text   string
}

// state is the orchestrator's working memory for one session. Owned by
// a single Orchestrator instance and mutated one event at a time.
type state struct {
	items     []content.QuestionItem
	current   int
	responses []Response
	hint      HintState

	sessionID   string
	loading     bool
	submitting  bool
	exitPending bool
	phase       Phase

	startedAt    time.Time
	usedFallback bool
}

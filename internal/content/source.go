package content

import (
	"context"
	"errors"
	"fmt"
)

// Mode selects where session content comes from. It is injected
// explicitly at construction rather than read from ambient state, so
// the fallback path stays testable in isolation.
type Mode string

const (
	// ModeRemote fetches content from the adaptive-content service.
	ModeRemote Mode = "remote"

	// ModeLocal serves the bundled item bank. Used for demo mode and as
	// the fallback target when other sources fail.
	ModeLocal Mode = "local"

	// ModeGenAI generates the item set with an LLM provider.
	ModeGenAI Mode = "genai"
)

// ParseMode validates a mode string from config.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRemote, ModeLocal, ModeGenAI:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown content mode %q", s)
}

// ErrUnavailable indicates a source could not produce content. The
// session layer recovers by falling back to the local bank; it is never
// surfaced to the learner.
var ErrUnavailable = errors.New("content source unavailable")

// ReportStatus is the outcome of a fire-and-forget report. Callers
// deliberately discard it after logging; the local response record is
// authoritative, so a failed report never blocks the session.
type ReportStatus int

const (
	ReportOK ReportStatus = iota
	ReportFailed
)

func (s ReportStatus) String() string {
	if s == ReportOK {
		return "ok"
	}
	return "failed"
}

// ResponseRecord is the wire shape of one recorded answer, reported to
// the content service on submit and again in bulk on finalize.
type ResponseRecord struct {
	QuestionID  string `json:"questionId"`
	Selected    string `json:"selected"`
	Correct     bool   `json:"correct"`
	HintUsed    bool   `json:"hintUsed"`
	TimestampMs int64  `json:"timestampMs"`
}

// Learner identifies who is practicing. Supplied by the host at mount
// time.
type Learner struct {
	ID        string
	YearLevel int
}

// Source is the contract the session orchestrator depends on. Exactly
// four operations; all four may fail, and the orchestrator owns the
// recovery policy for each (fallback, canned hint, or logged discard).
type Source interface {
	// CreateSessionPlan obtains the item set and session id for a
	// learner. Failure is reported as an error wrapping ErrUnavailable.
	CreateSessionPlan(ctx context.Context, learner Learner) (SessionPlan, error)

	// GetHint fetches a hint for one item of an active session.
	GetHint(ctx context.Context, sessionID, questionID string, learner Learner) (string, error)

	// SubmitResponse reports a single recorded answer. Fire-and-forget.
	SubmitResponse(ctx context.Context, sessionID string, rec ResponseRecord, learner Learner) ReportStatus

	// FinalizeSession reports session completion with the full response
	// list. Fire-and-forget.
	FinalizeSession(ctx context.Context, sessionID string, recs []ResponseRecord, learner Learner) ReportStatus
}

package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/lumikids/lumi/internal/content"
)

// DefaultAdvanceDelay is the pause between an accepted submission and
// the advance to the next item, giving the presenter time to show
// feedback. A pacing knob, not a correctness requirement.
const DefaultAdvanceDelay = 500 * time.Millisecond

// Config is everything the orchestrator needs at construction. The
// content mode arrives through the injected Source; there is no
// ambient demo-mode flag.
type Config struct {
	Learner content.Learner

	// AdvanceDelay overrides DefaultAdvanceDelay when positive.
	AdvanceDelay time.Duration
}

// Callbacks are the host's two observation points. OnComplete fires
// exactly once with the finished result; OnExit fires exactly once on a
// confirmed (or confirmation-free) early exit. Either may be nil.
type Callbacks struct {
	OnComplete func(Result)
	OnExit     func()
}

// Orchestrator drives one session from load to completion or exit. One
// instance per session; a new session always means a new Orchestrator
// with fresh state. All mutation happens synchronously, one event at a
// time, on the event loop; the blocking fetch methods (FetchPlan,
// FetchHint) never write state, and their outcomes are installed by the
// synchronous apply counterparts (ApplyPlan, ApplyHint), which drop
// anything that arrives stale.
type Orchestrator struct {
	cfg      Config
	source   content.Source
	fallback content.LocalSource
	cb       Callbacks
	logger   *slog.Logger

	st state
}

// New creates an orchestrator in the Loading phase.
func New(source content.Source, cfg Config, cb Callbacks, logger *slog.Logger) *Orchestrator {
	if cfg.AdvanceDelay <= 0 {
		cfg.AdvanceDelay = DefaultAdvanceDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		cfg:      cfg,
		source:   source,
		fallback: content.NewLocalSource(),
		cb:       cb,
		logger:   logger,
		st: state{
			loading: true,
			phase:   PhaseLoading,
		},
	}
}

// FetchPlan obtains the item set. On any source failure it falls back
// to the bundled bank with a synthesized session id, with zero retries:
// a session must never hard-fail on load, at the accepted cost of
// degraded personalization. Pure fetch with no state writes, so it is
// safe to run off the event loop; install the outcome with ApplyPlan.
// The second return reports whether the fallback bank was served.
func (o *Orchestrator) FetchPlan(ctx context.Context) (content.SessionPlan, bool) {
	plan, err := o.source.CreateSessionPlan(ctx, o.cfg.Learner)
	if err != nil {
		o.logger.Warn("item set unavailable, serving local bank",
			"learner_id", o.cfg.Learner.ID,
			"err", err)
		plan, _ = o.fallback.CreateSessionPlan(ctx, o.cfg.Learner)
		return plan, true
	}
	return plan, false
}

// ApplyPlan installs a fetched plan and opens the session. Accepted
// only while still loading: a plan whose fetch outlived an exit is
// stale and dropped, so a terminal phase can never be overwritten.
func (o *Orchestrator) ApplyPlan(plan content.SessionPlan, usedFallback bool) {
	if o.st.phase != PhaseLoading {
		return
	}
	o.st.items = plan.Items
	o.st.sessionID = plan.SessionID
	o.st.usedFallback = usedFallback
	o.st.current = 0
	o.st.loading = false
	o.st.phase = PhaseAwaiting
	o.st.startedAt = time.Now()
}

// Load fetches and applies in one blocking call, for callers that run
// the load before serving any events.
func (o *Orchestrator) Load(ctx context.Context) {
	plan, usedFallback := o.FetchPlan(ctx)
	o.ApplyPlan(plan, usedFallback)
}

// CurrentItem returns the item awaiting an answer.
func (o *Orchestrator) CurrentItem() (content.QuestionItem, bool) {
	if o.st.current < 0 || o.st.current >= len(o.st.items) {
		return content.QuestionItem{}, false
	}
	return o.st.items[o.st.current], true
}

// Submit records the learner's selection for the current item. Returns
// false, without any state change, when the submission is invalid: an
// empty selection, a submission already in flight, or no item awaiting
// an answer. Invalid submissions are silent no-ops since they are only
// reachable through rapid duplicate interaction.
func (o *Orchestrator) Submit(sel content.Selection) bool {
	if o.st.submitting || o.st.phase != PhaseAwaiting {
		return false
	}
	item, ok := o.CurrentItem()
	if !ok || sel.IsEmpty(item.Type) {
		return false
	}

	resp := Response{
		QuestionID:  item.ID,
		Selected:    sel,
		IsCorrect:   content.CheckSelection(item, sel),
		TimestampMs: time.Now().UnixMilli(),
		HintWasUsed: o.st.hint.Status != HintNone && o.st.hint.ItemID == item.ID,
	}
	o.st.responses = append(o.st.responses, resp)
	o.st.submitting = true
	o.st.phase = PhaseSubmitting

	o.reportResponse(resp)
	return true
}

// reportResponse sends the response to the content service without
// blocking the session. The status is logged and discarded on purpose:
// the in-memory response list is authoritative.
func (o *Orchestrator) reportResponse(resp Response) {
	rec := toRecord(resp)
	sessionID := o.st.sessionID
	go func() {
		status := o.source.SubmitResponse(context.Background(), sessionID, rec, o.cfg.Learner)
		if status == content.ReportFailed {
			o.logger.Warn("discarding failed response report",
				"session_id", sessionID,
				"question_id", rec.QuestionID)
		}
	}()
}

// Advance moves past the just-answered item. The presenter calls this
// after the pacing delay. Clears the hint, then either surfaces the
// next item or finalizes the session.
func (o *Orchestrator) Advance() {
	if o.st.phase != PhaseSubmitting {
		return
	}
	o.st.hint = HintState{}
	o.st.submitting = false

	if o.st.current+1 < len(o.st.items) {
		o.st.current++
		o.st.phase = PhaseAwaiting
		return
	}
	o.finalize()
}

// finalize is the single terminal transition to PhaseFinalized. It
// aggregates the response list, reports completion best-effort, and
// hands the result to the host. No state mutation happens afterwards.
func (o *Orchestrator) finalize() {
	o.st.current = len(o.st.items)
	o.st.phase = PhaseFinalized

	result := buildResult(
		o.cfg.Learner, o.st.sessionID, o.st.items, o.st.responses,
		o.st.startedAt, time.Now(), o.st.usedFallback,
	)

	recs := make([]content.ResponseRecord, len(o.st.responses))
	for i, r := range o.st.responses {
		recs[i] = toRecord(r)
	}
	sessionID := o.st.sessionID
	go func() {
		status := o.source.FinalizeSession(context.Background(), sessionID, recs, o.cfg.Learner)
		if status == content.ReportFailed {
			o.logger.Warn("discarding failed finalize report", "session_id", sessionID)
		}
	}()

	if o.cb.OnComplete != nil {
		o.cb.OnComplete(result)
	}
}

// RequestHint marks a hint pending for the current item. Idempotent: a
// second request while one is pending or resolved is a no-op, so at
// most one outward fetch happens per item. Returns true when the caller
// should follow up with FetchHint.
func (o *Orchestrator) RequestHint() bool {
	if o.st.phase != PhaseAwaiting {
		return false
	}
	item, ok := o.CurrentItem()
	if !ok {
		return false
	}
	if o.st.hint.Status != HintNone && o.st.hint.ItemID == item.ID {
		return false
	}
	o.st.hint = HintState{Status: HintPending, ItemID: item.ID}
	return true
}

// FetchHint performs the blocking hint fetch for the given item,
// substituting the generic canned hint on failure so the learner is
// never left with nothing. Safe to run off the event loop; apply the
// outcome with ApplyHint.
func (o *Orchestrator) FetchHint(ctx context.Context, itemID string) string {
	hint, err := o.source.GetHint(ctx, o.st.sessionID, itemID, o.cfg.Learner)
	if err != nil {
		o.logger.Warn("hint unavailable, serving canned hint",
			"session_id", o.st.sessionID,
			"question_id", itemID,
			"err", err)
		return content.GenericHint
	}
	return hint
}

// ApplyHint resolves a pending hint. A resolution for anything other
// than the currently pending item is stale and dropped.
func (o *Orchestrator) ApplyHint(itemID, text string) {
	if o.st.hint.Status != HintPending || o.st.hint.ItemID != itemID {
		return
	}
	item, ok := o.CurrentItem()
	if !ok || item.ID != itemID {
		return
	}
	o.st.hint = HintState{Status: HintResolved, ItemID: itemID, Text: text}
}

// RequestExit starts the exit flow. With no responses recorded there is
// nothing to lose, so the exit callback fires immediately and false is
// returned; otherwise the confirmation state is entered.
func (o *Orchestrator) RequestExit() bool {
	if o.st.phase == PhaseFinalized || o.st.phase == PhaseExited {
		return false
	}
	if len(o.st.responses) == 0 {
		o.exit()
		return false
	}
	o.st.exitPending = true
	return true
}

// ConfirmExit abandons the session unconditionally. No partial result
// is produced or persisted.
func (o *Orchestrator) ConfirmExit() {
	if !o.st.exitPending {
		return
	}
	o.st.exitPending = false
	o.exit()
}

// CancelExit returns to the in-progress state unchanged.
func (o *Orchestrator) CancelExit() {
	o.st.exitPending = false
}

func (o *Orchestrator) exit() {
	if o.st.phase == PhaseExited {
		return
	}
	o.st.phase = PhaseExited
	o.st.loading = false
	if o.cb.OnExit != nil {
		o.cb.OnExit()
	}
}

// Progress reports the 1-based position for the progress indicator.
func (o *Orchestrator) Progress() Progress {
	current := o.st.current + 1
	if current > len(o.st.items) {
		current = len(o.st.items)
	}
	return Progress{Current: current, Total: len(o.st.items)}
}

// Phase returns the current state-machine phase.
func (o *Orchestrator) Phase() Phase { return o.st.phase }

// SessionID returns the id assigned at load time.
func (o *Orchestrator) SessionID() string { return o.st.sessionID }

// IsLoading reports whether the item set is still being obtained.
func (o *Orchestrator) IsLoading() bool { return o.st.loading }

// IsSubmitting reports whether a submission is in flight; the presenter
// disables all controls while true.
func (o *Orchestrator) IsSubmitting() bool { return o.st.submitting }

// ExitPending reports whether the exit confirmation dialog is up.
func (o *Orchestrator) ExitPending() bool { return o.st.exitPending }

// Hint returns the hint state for the current item.
func (o *Orchestrator) Hint() HintState { return o.st.hint }

// UsedFallback reports whether the session ran on the bundled bank.
func (o *Orchestrator) UsedFallback() bool { return o.st.usedFallback }

// AdvanceDelay is the configured pacing delay, for the presenter's
// timer.
func (o *Orchestrator) AdvanceDelay() time.Duration { return o.cfg.AdvanceDelay }

// Responses returns a copy of the recorded responses.
func (o *Orchestrator) Responses() []Response {
	out := make([]Response, len(o.st.responses))
	copy(out, o.st.responses)
	return out
}

// Items returns a copy of the loaded item set.
func (o *Orchestrator) Items() []content.QuestionItem {
	out := make([]content.QuestionItem, len(o.st.items))
	copy(out, o.st.items)
	return out
}

func toRecord(r Response) content.ResponseRecord {
	return content.ResponseRecord{
		QuestionID:  r.QuestionID,
		Selected:    r.Selected.String(),
		Correct:     r.IsCorrect,
		HintUsed:    r.HintWasUsed,
		TimestampMs: r.TimestampMs,
	}
}

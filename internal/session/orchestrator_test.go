package session

import (
	"context"
	"sync"
	"testing"

	"github.com/lumikids/lumi/internal/content"
)

// fakeSource is a scriptable content source. Report calls are recorded
// under a mutex since the orchestrator fires them from goroutines.
type fakeSource struct {
	plan    content.SessionPlan
	planErr error
	hint    string
	hintErr error

	mu         sync.Mutex
	submits    []content.ResponseRecord
	finalizes  int
	finalRecs  []content.ResponseRecord
	reportFail bool
}

func (f *fakeSource) CreateSessionPlan(_ context.Context, _ content.Learner) (content.SessionPlan, error) {
	if f.planErr != nil {
		return content.SessionPlan{}, f.planErr
	}
	return f.plan, nil
}

func (f *fakeSource) GetHint(_ context.Context, _, _ string, _ content.Learner) (string, error) {
	if f.hintErr != nil {
		return "", f.hintErr
	}
	return f.hint, nil
}

func (f *fakeSource) SubmitResponse(_ context.Context, _ string, rec content.ResponseRecord, _ content.Learner) content.ReportStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits = append(f.submits, rec)
	if f.reportFail {
		return content.ReportFailed
	}
	return content.ReportOK
}

func (f *fakeSource) FinalizeSession(_ context.Context, _ string, recs []content.ResponseRecord, _ content.Learner) content.ReportStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finalizes++
	f.finalRecs = recs
	if f.reportFail {
		return content.ReportFailed
	}
	return content.ReportOK
}

func mcItem(t *testing.T, id, prompt string, options []string, answerIndex int, skillTag string) content.QuestionItem {
	t.Helper()
	item, err := content.NewMultipleChoice(id, prompt, "", options, answerIndex, skillTag)
	if err != nil {
		t.Fatalf("build test item %s: %v", id, err)
	}
	return item
}

func saItem(t *testing.T, id, prompt, pattern, skillTag string) content.QuestionItem {
	t.Helper()
	item, err := content.NewShortAnswer(id, prompt, "", pattern, skillTag)
	if err != nil {
		t.Fatalf("build test item %s: %v", id, err)
	}
	return item
}

func testPlan(t *testing.T) content.SessionPlan {
	t.Helper()
	return content.SessionPlan{
		SessionID: "sess-1",
		Items: []content.QuestionItem{
			mcItem(t, "q1", "2 + 2?", []string{"3", "4", "5"}, 1, "addition"),
			saItem(t, "q2", "Spell the number 7.", `seven`, "numerals"),
			mcItem(t, "q3", "10 - 4?", []string{"6", "5"}, 0, "subtraction"),
		},
	}
}

func loadedOrchestrator(t *testing.T, src content.Source, cb Callbacks) *Orchestrator {
	t.Helper()
	o := New(src, Config{Learner: content.Learner{ID: "kid-1", YearLevel: 3}}, cb, nil)
	o.Load(context.Background())
	return o
}

func TestLoad_Success(t *testing.T) {
	src := &fakeSource{plan: testPlan(t)}
	o := loadedOrchestrator(t, src, Callbacks{})

	if o.Phase() != PhaseAwaiting {
		t.Errorf("Phase = %v, want awaiting", o.Phase())
	}
	if o.SessionID() != "sess-1" {
		t.Errorf("SessionID = %q, want sess-1", o.SessionID())
	}
	if o.UsedFallback() {
		t.Error("UsedFallback = true for a successful load")
	}
	if got := o.Progress(); got.Current != 1 || got.Total != 3 {
		t.Errorf("Progress = %+v, want 1/3", got)
	}
}

func TestLoad_FallsBackToBank(t *testing.T) {
	src := &fakeSource{planErr: content.ErrUnavailable}
	o := loadedOrchestrator(t, src, Callbacks{})

	if o.Phase() != PhaseAwaiting {
		t.Fatalf("Phase = %v, want awaiting after fallback", o.Phase())
	}
	if !o.UsedFallback() {
		t.Error("UsedFallback = false after a failed load")
	}
	if len(o.Items()) != content.BankSize() {
		t.Errorf("items = %d, want full bank of %d", len(o.Items()), content.BankSize())
	}
	if o.SessionID() == "" {
		t.Error("fallback session has no id")
	}
}

func TestApplyPlan_StaleAfterExitIsDropped(t *testing.T) {
	src := &fakeSource{plan: testPlan(t)}
	exited := false
	o := New(src, Config{Learner: content.Learner{ID: "kid-1"}},
		Callbacks{OnExit: func() { exited = true }}, nil)

	// The learner bails out of the loading screen while the fetch is
	// still in flight.
	if o.RequestExit() {
		t.Fatal("exit from the loading screen wanted confirmation")
	}
	if !exited {
		t.Fatal("exit callback did not fire")
	}

	plan, usedFallback := o.FetchPlan(context.Background())
	o.ApplyPlan(plan, usedFallback)

	if o.Phase() != PhaseExited {
		t.Errorf("Phase = %v after stale plan, want exited", o.Phase())
	}
	if o.IsLoading() {
		t.Error("IsLoading = true after exit")
	}
	if len(o.Items()) != 0 {
		t.Errorf("items = %d installed on an exited session, want 0", len(o.Items()))
	}
}

func TestFetchPlan_WritesNoState(t *testing.T) {
	src := &fakeSource{plan: testPlan(t)}
	o := New(src, Config{Learner: content.Learner{ID: "kid-1"}}, Callbacks{}, nil)

	plan, usedFallback := o.FetchPlan(context.Background())

	if o.Phase() != PhaseLoading {
		t.Errorf("Phase = %v after fetch alone, want loading", o.Phase())
	}
	if !o.IsLoading() {
		t.Error("IsLoading flipped before apply")
	}
	if o.SessionID() != "" {
		t.Errorf("SessionID = %q before apply, want empty", o.SessionID())
	}

	o.ApplyPlan(plan, usedFallback)
	if o.Phase() != PhaseAwaiting {
		t.Errorf("Phase = %v after apply, want awaiting", o.Phase())
	}
}

func TestSubmit_RecordsResponseInOrder(t *testing.T) {
	src := &fakeSource{plan: testPlan(t)}
	o := loadedOrchestrator(t, src, Callbacks{})

	if !o.Submit(content.Selection{OptionIndex: 1}) {
		t.Fatal("first submit rejected")
	}
	o.Advance()
	if !o.Submit(content.Selection{OptionIndex: -1, Text: "seven"}) {
		t.Fatal("second submit rejected")
	}

	resp := o.Responses()
	if len(resp) != 2 {
		t.Fatalf("responses = %d, want 2", len(resp))
	}
	if resp[0].QuestionID != "q1" || resp[1].QuestionID != "q2" {
		t.Errorf("response order = %s, %s; want q1, q2", resp[0].QuestionID, resp[1].QuestionID)
	}
	if !resp[0].IsCorrect || !resp[1].IsCorrect {
		t.Errorf("expected both correct, got %v, %v", resp[0].IsCorrect, resp[1].IsCorrect)
	}
}

func TestSubmit_DuplicateIsNoOp(t *testing.T) {
	src := &fakeSource{plan: testPlan(t)}
	o := loadedOrchestrator(t, src, Callbacks{})

	if !o.Submit(content.Selection{OptionIndex: 0}) {
		t.Fatal("first submit rejected")
	}
	if o.Submit(content.Selection{OptionIndex: 1}) {
		t.Error("duplicate submit accepted")
	}
	if got := len(o.Responses()); got != 1 {
		t.Errorf("responses = %d, want 1 after duplicate submit", got)
	}
}

func TestSubmit_EmptySelectionRejected(t *testing.T) {
	src := &fakeSource{plan: testPlan(t)}
	o := loadedOrchestrator(t, src, Callbacks{})

	if o.Submit(content.NoSelection) {
		t.Error("empty multiple-choice selection accepted")
	}

	o.Submit(content.Selection{OptionIndex: 0})
	o.Advance()

	if o.Submit(content.Selection{OptionIndex: -1, Text: "   "}) {
		t.Error("whitespace short answer accepted")
	}
}

func TestAdvance_OnlyFromSubmitting(t *testing.T) {
	src := &fakeSource{plan: testPlan(t)}
	o := loadedOrchestrator(t, src, Callbacks{})

	o.Advance()
	if got := o.Progress(); got.Current != 1 {
		t.Errorf("Advance from awaiting moved to %d, want stay at 1", got.Current)
	}

	o.Submit(content.Selection{OptionIndex: 0})
	o.Advance()
	if got := o.Progress(); got.Current != 2 {
		t.Errorf("Progress.Current = %d, want 2", got.Current)
	}
	if o.Phase() != PhaseAwaiting {
		t.Errorf("Phase = %v, want awaiting", o.Phase())
	}
}

func TestSession_CompletesAndBuildsResult(t *testing.T) {
	src := &fakeSource{plan: testPlan(t)}
	var result *Result
	o := loadedOrchestrator(t, src, Callbacks{
		OnComplete: func(r Result) { result = &r },
	})

	o.Submit(content.Selection{OptionIndex: 1})
	o.Advance()
	o.Submit(content.Selection{OptionIndex: -1, Text: "Seven "})
	o.Advance()
	o.Submit(content.Selection{OptionIndex: 1})
	o.Advance()

	if o.Phase() != PhaseFinalized {
		t.Fatalf("Phase = %v, want finalized", o.Phase())
	}
	if result == nil {
		t.Fatal("OnComplete never fired")
	}
	if result.Attempted != 3 || result.Correct != 2 {
		t.Errorf("result = %d attempted %d correct, want 3 and 2", result.Attempted, result.Correct)
	}
	if result.Effort != LabelFocused {
		t.Errorf("Effort = %q, want focused with zero hints", result.Effort)
	}
	if result.BonusOffered {
		t.Error("bonus offered on an imperfect run")
	}
	wantTags := []string{"addition", "numerals", "subtraction"}
	if len(result.SkillTags) != len(wantTags) {
		t.Fatalf("SkillTags = %v, want %v", result.SkillTags, wantTags)
	}
	for i, tag := range wantTags {
		if result.SkillTags[i] != tag {
			t.Errorf("SkillTags[%d] = %q, want %q", i, result.SkillTags[i], tag)
		}
	}
}

func TestSession_PerfectRunOffersBonus(t *testing.T) {
	src := &fakeSource{plan: testPlan(t)}
	var result *Result
	o := loadedOrchestrator(t, src, Callbacks{
		OnComplete: func(r Result) { result = &r },
	})

	o.Submit(content.Selection{OptionIndex: 1})
	o.Advance()
	o.Submit(content.Selection{OptionIndex: -1, Text: "seven"})
	o.Advance()
	o.Submit(content.Selection{OptionIndex: 0})
	o.Advance()

	if result == nil {
		t.Fatal("OnComplete never fired")
	}
	if !result.BonusOffered {
		t.Error("perfect run did not offer the bonus")
	}
}

func TestHint_OncePerItem(t *testing.T) {
	src := &fakeSource{plan: testPlan(t), hint: "count on your fingers"}
	o := loadedOrchestrator(t, src, Callbacks{})

	if !o.RequestHint() {
		t.Fatal("first hint request rejected")
	}
	if o.RequestHint() {
		t.Error("second request accepted while pending")
	}

	o.ApplyHint("q1", o.FetchHint(context.Background(), "q1"))
	if got := o.Hint(); got.Status != HintResolved || got.Text != "count on your fingers" {
		t.Errorf("hint = %+v, want resolved with fetched text", got)
	}

	if o.RequestHint() {
		t.Error("request accepted after resolution for the same item")
	}
}

func TestHint_MarksResponse(t *testing.T) {
	src := &fakeSource{plan: testPlan(t), hint: "try again"}
	o := loadedOrchestrator(t, src, Callbacks{})

	o.RequestHint()
	o.ApplyHint("q1", "try again")
	o.Submit(content.Selection{OptionIndex: 1})
	o.Advance()

	o.Submit(content.Selection{OptionIndex: -1, Text: "seven"})

	resp := o.Responses()
	if !resp[0].HintWasUsed {
		t.Error("hinted item not marked HintWasUsed")
	}
	if resp[1].HintWasUsed {
		t.Error("unhinted item marked HintWasUsed")
	}
}

func TestHint_StaleResolutionDropped(t *testing.T) {
	src := &fakeSource{plan: testPlan(t)}
	o := loadedOrchestrator(t, src, Callbacks{})

	o.RequestHint()
	o.Submit(content.Selection{OptionIndex: 0})
	o.Advance()

	// The fetch for q1 resolves after we already moved to q2.
	o.ApplyHint("q1", "too late")

	if got := o.Hint(); got.Status != HintNone {
		t.Errorf("stale hint applied: %+v", got)
	}

	if !o.RequestHint() {
		t.Error("fresh hint request for the next item rejected")
	}
}

func TestHint_FetchFailureServesCanned(t *testing.T) {
	src := &fakeSource{plan: testPlan(t), hintErr: content.ErrUnavailable}
	o := loadedOrchestrator(t, src, Callbacks{})

	o.RequestHint()
	text := o.FetchHint(context.Background(), "q1")
	if text != content.GenericHint {
		t.Errorf("FetchHint = %q, want the generic canned hint", text)
	}

	o.ApplyHint("q1", text)
	o.Submit(content.Selection{OptionIndex: 1})
	if !o.Responses()[0].HintWasUsed {
		t.Error("canned hint did not count as hint usage")
	}
}

func TestExit_NoResponsesSkipsConfirmation(t *testing.T) {
	src := &fakeSource{plan: testPlan(t)}
	exited := false
	o := loadedOrchestrator(t, src, Callbacks{OnExit: func() { exited = true }})

	if o.RequestExit() {
		t.Error("RequestExit wanted confirmation with nothing to lose")
	}
	if !exited {
		t.Error("exit callback did not fire")
	}
	if o.Phase() != PhaseExited {
		t.Errorf("Phase = %v, want exited", o.Phase())
	}
}

func TestExit_ConfirmAndCancel(t *testing.T) {
	src := &fakeSource{plan: testPlan(t)}
	exited := false
	o := loadedOrchestrator(t, src, Callbacks{OnExit: func() { exited = true }})

	o.Submit(content.Selection{OptionIndex: 0})
	o.Advance()

	if !o.RequestExit() {
		t.Fatal("RequestExit did not ask for confirmation")
	}
	o.CancelExit()
	if o.ExitPending() || exited {
		t.Error("cancel did not return to the in-progress state")
	}
	if o.Phase() != PhaseAwaiting {
		t.Errorf("Phase = %v, want awaiting after cancel", o.Phase())
	}

	o.RequestExit()
	o.ConfirmExit()
	if !exited {
		t.Error("confirmed exit did not fire the callback")
	}
	if o.Phase() != PhaseExited {
		t.Errorf("Phase = %v, want exited", o.Phase())
	}
}

func TestExit_NoOpAfterFinalize(t *testing.T) {
	src := &fakeSource{plan: testPlan(t)}
	completions := 0
	o := loadedOrchestrator(t, src, Callbacks{
		OnComplete: func(Result) { completions++ },
	})

	for range o.Items() {
		o.Submit(content.Selection{OptionIndex: 0, Text: "seven"})
		o.Advance()
	}

	if o.RequestExit() {
		t.Error("RequestExit accepted after finalize")
	}
	if completions != 1 {
		t.Errorf("OnComplete fired %d times, want 1", completions)
	}
}

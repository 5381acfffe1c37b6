package genai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/lumikids/lumi/internal/content"
)

const itemSetSystemPrompt = `You are a content author for a children's practice-test app.
You write short, friendly, age-appropriate questions with a single
unambiguous correct answer. Output must conform to the provided JSON
schema. For multiple_choice items supply 3 or 4 plausible options and
the zero-based answerIndex. For short_answer items supply answerPattern
as a lowercase regular expression accepting every reasonable spelling
of the answer, e.g. "25|twenty[- ]?five".`

const hintSystemPrompt = `You help a child who is stuck on a practice question.
Reply with one encouraging sentence that nudges them toward the method.
Never state the answer. Plain text only.`

// ItemsPerSession is how many items a generated plan requests.
const ItemsPerSession = 8

// Source generates the session item set with an LLM provider. It
// implements the same contract as the remote service, including the
// failure semantics: any generation problem surfaces as ErrUnavailable
// so the session layer falls back to the local bank.
type Source struct {
	provider Provider
	logger   *slog.Logger

	mu    sync.Mutex
	plans map[string][]content.QuestionItem
}

var _ content.Source = (*Source)(nil)

// NewSource creates an LLM-backed content source.
func NewSource(provider Provider, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		provider: provider,
		logger:   logger,
		plans:    make(map[string][]content.QuestionItem),
	}
}

// CreateSessionPlan asks the provider for a schema-constrained item set
// and runs it through the same validation as a remote payload.
func (s *Source) CreateSessionPlan(ctx context.Context, learner content.Learner) (content.SessionPlan, error) {
	prompt := fmt.Sprintf(
		"Write %d practice questions for a year %d learner. Mix multiple_choice and short_answer. Cover at least 3 different skillTag values. Give every item a unique id.",
		ItemsPerSession, learner.YearLevel,
	)

	raw, err := s.provider.Complete(ctx, Request{
		System:      itemSetSystemPrompt,
		Prompt:      prompt,
		Schema:      content.ItemSetSchema(),
		MaxTokens:   4096,
		Temperature: 0.7,
	})
	if err != nil {
		return content.SessionPlan{}, fmt.Errorf("%w: generate item set: %v", content.ErrUnavailable, err)
	}

	items, err := content.ParseItemSetPayload(raw)
	if err != nil {
		return content.SessionPlan{}, fmt.Errorf("%w: %v", content.ErrUnavailable, err)
	}

	sessionID := "genai-" + uuid.New().String()
	s.mu.Lock()
	s.plans[sessionID] = items
	s.mu.Unlock()

	s.logger.Info("generated item set",
		"session_id", sessionID,
		"model", s.provider.ModelID(),
		"items", len(items))

	return content.SessionPlan{SessionID: sessionID, Items: items}, nil
}

// GetHint generates a one-sentence nudge for the item. The caller
// substitutes a canned hint on error.
func (s *Source) GetHint(ctx context.Context, sessionID, questionID string, _ content.Learner) (string, error) {
	s.mu.Lock()
	items := s.plans[sessionID]
	s.mu.Unlock()

	var prompt string
	for _, item := range items {
		if item.ID == questionID {
			prompt = item.Prompt
			break
		}
	}
	if prompt == "" {
		return "", fmt.Errorf("unknown question %s in session %s", questionID, sessionID)
	}

	raw, err := s.provider.Complete(ctx, Request{
		System:      hintSystemPrompt,
		Prompt:      "The question is: " + prompt,
		MaxTokens:   200,
		Temperature: 0.5,
	})
	if err != nil {
		return "", fmt.Errorf("generate hint: %w", err)
	}

	hint := strings.TrimSpace(strings.Trim(string(raw), `"`))
	if hint == "" {
		return "", fmt.Errorf("provider returned an empty hint")
	}
	return hint, nil
}

// SubmitResponse has nowhere to report in generated mode.
func (s *Source) SubmitResponse(_ context.Context, _ string, _ content.ResponseRecord, _ content.Learner) content.ReportStatus {
	return content.ReportOK
}

// FinalizeSession releases the cached plan.
func (s *Source) FinalizeSession(_ context.Context, sessionID string, _ []content.ResponseRecord, _ content.Learner) content.ReportStatus {
	s.mu.Lock()
	delete(s.plans, sessionID)
	s.mu.Unlock()
	return content.ReportOK
}

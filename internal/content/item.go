package content

import (
	"fmt"
	"regexp"
	"strings"
)

// ItemType describes how a question is answered.
type ItemType string

const (
	// TypeMultipleChoice means the learner picks one of the options.
	TypeMultipleChoice ItemType = "multiple_choice"

	// TypeShortAnswer means the learner types a free-text answer.
	TypeShortAnswer ItemType = "short_answer"
)

// QuestionItem is one question as presented to the learner. It is
// immutable for the lifetime of a session.
//
// The answer reference (index or pattern) is deliberately unexported:
// the rendering layer receives QuestionItems but can only learn
// correctness through CheckSelection, which runs on the submission path.
type QuestionItem struct {
	// ID is an opaque identifier assigned by whichever source produced
	// the item.
	ID string

	// Type selects the answer mechanics.
	Type ItemType

	// Prompt is the question text.
	Prompt string

	// Stimulus is optional supporting text shown above the prompt
	// (a word problem setup, a short passage). Empty when absent.
	Stimulus string

	// Options is the ordered list of choices. Populated only for
	// MultipleChoice, and then always with at least two entries.
	Options []string

	// SkillTag labels the skill this item exercises, for post-hoc
	// grouping on the result. Never empty.
	SkillTag string

	answerIndex   int
	answerPattern *regexp.Regexp
}

// NewMultipleChoice builds a validated multiple-choice item.
func NewMultipleChoice(id, prompt, stimulus string, options []string, answerIndex int, skillTag string) (QuestionItem, error) {
	item := QuestionItem{
		ID:          id,
		Type:        TypeMultipleChoice,
		Prompt:      prompt,
		Stimulus:    stimulus,
		Options:     options,
		SkillTag:    skillTag,
		answerIndex: answerIndex,
	}
	if err := item.validate(); err != nil {
		return QuestionItem{}, err
	}
	return item, nil
}

// NewShortAnswer builds a validated short-answer item. The pattern is a
// regular expression matched against the learner's trimmed, lowercased
// input; it is anchored automatically.
func NewShortAnswer(id, prompt, stimulus, pattern, skillTag string) (QuestionItem, error) {
	re, err := compileAnswerPattern(pattern)
	if err != nil {
		return QuestionItem{}, fmt.Errorf("item %s: %w", id, err)
	}
	item := QuestionItem{
		ID:            id,
		Type:          TypeShortAnswer,
		Prompt:        prompt,
		Stimulus:      stimulus,
		SkillTag:      skillTag,
		answerPattern: re,
	}
	if err := item.validate(); err != nil {
		return QuestionItem{}, err
	}
	return item, nil
}

func compileAnswerPattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("empty answer pattern")
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("bad answer pattern %q: %w", pattern, err)
	}
	return re, nil
}

// validate enforces the QuestionItem invariants.
func (q QuestionItem) validate() error {
	if q.ID == "" {
		return fmt.Errorf("item has no id")
	}
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("item %s: empty prompt", q.ID)
	}
	if q.SkillTag == "" {
		return fmt.Errorf("item %s: empty skill tag", q.ID)
	}
	switch q.Type {
	case TypeMultipleChoice:
		if len(q.Options) < 2 {
			return fmt.Errorf("item %s: multiple choice needs at least 2 options, got %d", q.ID, len(q.Options))
		}
		if q.answerIndex < 0 || q.answerIndex >= len(q.Options) {
			return fmt.Errorf("item %s: answer index %d out of bounds for %d options", q.ID, q.answerIndex, len(q.Options))
		}
	case TypeShortAnswer:
		if q.answerPattern == nil {
			return fmt.Errorf("item %s: short answer has no pattern", q.ID)
		}
	default:
		return fmt.Errorf("item %s: unknown type %q", q.ID, q.Type)
	}
	return nil
}

// Selection is the learner's tentative answer for one item.
// OptionIndex applies to MultipleChoice, Text to ShortAnswer.
type Selection struct {
	OptionIndex int
	Text        string
}

// NoSelection is the zero selection used before the learner picks anything.
var NoSelection = Selection{OptionIndex: -1}

// IsEmpty reports whether the selection carries no answer for the given
// item type. Empty selections are not submittable.
func (s Selection) IsEmpty(t ItemType) bool {
	if t == TypeMultipleChoice {
		return s.OptionIndex < 0
	}
	return strings.TrimSpace(s.Text) == ""
}

// String renders the selection as the wire value reported to the
// content service: the chosen option text for multiple choice, the
// trimmed input for short answers.
func (s Selection) String() string {
	if s.Text != "" {
		return strings.TrimSpace(s.Text)
	}
	return fmt.Sprintf("option:%d", s.OptionIndex)
}

// CheckSelection determines correctness for a selection against the
// item's answer reference. Short-answer comparison is case-insensitive
// and whitespace-trimmed.
func CheckSelection(item QuestionItem, sel Selection) bool {
	switch item.Type {
	case TypeMultipleChoice:
		return sel.OptionIndex == item.answerIndex
	case TypeShortAnswer:
		if item.answerPattern == nil {
			return false
		}
		normalized := strings.ToLower(strings.TrimSpace(sel.Text))
		return item.answerPattern.MatchString(normalized)
	}
	return false
}

// SessionPlan is the item set and identity for one session, as produced
// by a Source.
type SessionPlan struct {
	SessionID string
	Items     []QuestionItem
}

// validatePlan checks that a plan is usable: a session id, at least one
// item, and every item satisfying the QuestionItem invariants.
func validatePlan(plan SessionPlan) error {
	if plan.SessionID == "" {
		return fmt.Errorf("plan has no session id")
	}
	if len(plan.Items) == 0 {
		return fmt.Errorf("plan has no items")
	}
	seen := make(map[string]bool, len(plan.Items))
	for _, item := range plan.Items {
		if err := item.validate(); err != nil {
			return err
		}
		if seen[item.ID] {
			return fmt.Errorf("duplicate item id %s", item.ID)
		}
		seen[item.ID] = true
	}
	return nil
}

package session

// EffortLabel is the qualitative classification of how the learner
// engaged with the session. It drives the encouragement copy on the
// closing screen.
type EffortLabel string

const (
	LabelSteady    EffortLabel = "steady"
	LabelFocused   EffortLabel = "focused"
	LabelPersisted EffortLabel = "persisted"
	LabelImproved  EffortLabel = "improved"
	LabelTriedHard EffortLabel = "tried-hard"
)

// Product tuning knobs for the classifier. The structural contract is
// the priority-ordered, total rule set in ClassifyEffort, not these
// exact values.
const (
	// persistedRatio is the correctness ratio qualifying "persisted".
	persistedRatio = 0.7

	// improvedMargin is how much better the second half of the session
	// must go than the first to qualify "improved".
	improvedMargin = 0.25
)

// ClassifyEffort maps a finalized response list to exactly one label.
// Pure, total and deterministic: every input, including the empty
// list, maps to one label.
//
// Rules fire in priority order, first match wins:
//  1. no responses              -> steady
//  2. zero hints used           -> focused
//  3. correct ratio >= 0.7      -> persisted
//  4. second half much stronger -> improved
//  5. anything else             -> tried-hard
//
// The zero-hints rule is deliberately checked before correctness, so an
// all-wrong, no-hint session still classifies "focused". Counter-
// intuitive, but downstream copy depends on this ordering; flagged for
// product review rather than reordered here.
func ClassifyEffort(responses []Response) EffortLabel {
	if len(responses) == 0 {
		return LabelSteady
	}

	hints := 0
	correct := 0
	for _, r := range responses {
		if r.HintWasUsed {
			hints++
		}
		if r.IsCorrect {
			correct++
		}
	}

	if hints == 0 {
		return LabelFocused
	}

	ratio := float64(correct) / float64(len(responses))
	if ratio >= persistedRatio {
		return LabelPersisted
	}

	if secondHalfGain(responses) >= improvedMargin {
		return LabelImproved
	}

	return LabelTriedHard
}

// secondHalfGain returns how much the correctness ratio of the second
// half of the session exceeds the first half. Zero when the session is
// too short to split.
func secondHalfGain(responses []Response) float64 {
	if len(responses) < 2 {
		return 0
	}
	mid := len(responses) / 2
	return correctRatio(responses[mid:]) - correctRatio(responses[:mid])
}

func correctRatio(responses []Response) float64 {
	if len(responses) == 0 {
		return 0
	}
	correct := 0
	for _, r := range responses {
		if r.IsCorrect {
			correct++
		}
	}
	return float64(correct) / float64(len(responses))
}

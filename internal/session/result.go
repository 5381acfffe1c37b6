package session

import (
	"time"

	"github.com/lumikids/lumi/internal/content"
)

// MaxResultSkillTags caps the distinct skill tags carried on a result,
// matching what the closing screen can display.
const MaxResultSkillTags = 5

// Result is the terminal artifact of a completed session, handed to the
// host through the completion callback. Created once, when the last
// response is appended; never mutated afterwards, except that the host
// may set BonusUsed when the learner takes the bonus offer.
type Result struct {
	SessionID string
	LearnerID string

	StartedAt time.Time
	Duration  time.Duration

	Attempted int
	Correct   int
	Hinted    int

	// SkillTags holds the distinct tags touched, in first-appearance
	// order, capped at MaxResultSkillTags.
	SkillTags []string

	Effort EffortLabel

	// BonusOffered is set when a perfect run earns an extra-play offer.
	// BonusUsed records whether the learner took it.
	BonusOffered bool
	BonusUsed    bool

	// UsedFallback records that the session ran on the bundled bank.
	UsedFallback bool
}

// buildResult aggregates the full response list into a Result. Pure
// except for reading the clock via now.
func buildResult(learner content.Learner, sessionID string, items []content.QuestionItem, responses []Response, startedAt, now time.Time, usedFallback bool) Result {
	res := Result{
		SessionID:    sessionID,
		LearnerID:    learner.ID,
		StartedAt:    startedAt,
		Duration:     now.Sub(startedAt),
		Attempted:    len(responses),
		Effort:       ClassifyEffort(responses),
		UsedFallback: usedFallback,
	}

	for _, r := range responses {
		if r.IsCorrect {
			res.Correct++
		}
		if r.HintWasUsed {
			res.Hinted++
		}
	}

	tagsByItem := make(map[string]string, len(items))
	for _, item := range items {
		tagsByItem[item.ID] = item.SkillTag
	}
	seen := make(map[string]bool)
	for _, r := range responses {
		tag := tagsByItem[r.QuestionID]
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		if len(res.SkillTags) < MaxResultSkillTags {
			res.SkillTags = append(res.SkillTags, tag)
		}
	}

	res.BonusOffered = res.Attempted > 0 && res.Correct == res.Attempted
	return res
}

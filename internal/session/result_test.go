package session

import (
	"testing"
	"time"

	"github.com/lumikids/lumi/internal/content"
)

func TestBuildResult_SkillTagsDedupedAndCapped(t *testing.T) {
	var items []content.QuestionItem
	var responses []Response
	tags := []string{"a", "b", "a", "c", "d", "e", "f", "b"}
	for i, tag := range tags {
		id := string(rune('0' + i))
		item, err := content.NewMultipleChoice("q"+id, "prompt", "",
			[]string{"x", "y"}, 0, tag)
		if err != nil {
			t.Fatalf("build item: %v", err)
		}
		items = append(items, item)
		responses = append(responses, Response{QuestionID: item.ID, IsCorrect: i%2 == 0})
	}

	now := time.Now()
	res := buildResult(content.Learner{ID: "kid"}, "s1", items, responses,
		now.Add(-time.Minute), now, false)

	want := []string{"a", "b", "c", "d", "e"}
	if len(res.SkillTags) != len(want) {
		t.Fatalf("SkillTags = %v, want %v", res.SkillTags, want)
	}
	for i := range want {
		if res.SkillTags[i] != want[i] {
			t.Errorf("SkillTags[%d] = %q, want %q", i, res.SkillTags[i], want[i])
		}
	}
	if res.Attempted != 8 || res.Correct != 4 {
		t.Errorf("counts = %d/%d, want 4/8", res.Correct, res.Attempted)
	}
	if res.Duration != time.Minute {
		t.Errorf("Duration = %v, want 1m", res.Duration)
	}
}

func TestBuildResult_BonusRule(t *testing.T) {
	item, err := content.NewMultipleChoice("q1", "prompt", "",
		[]string{"x", "y"}, 0, "tag")
	if err != nil {
		t.Fatalf("build item: %v", err)
	}
	items := []content.QuestionItem{item}
	now := time.Now()

	perfect := buildResult(content.Learner{}, "s", items,
		[]Response{{QuestionID: "q1", IsCorrect: true}}, now, now, false)
	if !perfect.BonusOffered {
		t.Error("perfect run did not offer bonus")
	}

	missed := buildResult(content.Learner{}, "s", items,
		[]Response{{QuestionID: "q1", IsCorrect: false}}, now, now, false)
	if missed.BonusOffered {
		t.Error("imperfect run offered bonus")
	}

	empty := buildResult(content.Learner{}, "s", items, nil, now, now, false)
	if empty.BonusOffered {
		t.Error("empty run offered bonus")
	}
}

func TestBuildResult_CountsHints(t *testing.T) {
	item, err := content.NewMultipleChoice("q1", "prompt", "",
		[]string{"x", "y"}, 0, "tag")
	if err != nil {
		t.Fatalf("build item: %v", err)
	}
	now := time.Now()
	res := buildResult(content.Learner{}, "s", []content.QuestionItem{item},
		[]Response{{QuestionID: "q1", IsCorrect: true, HintWasUsed: true}},
		now, now, true)

	if res.Hinted != 1 {
		t.Errorf("Hinted = %d, want 1", res.Hinted)
	}
	if !res.UsedFallback {
		t.Error("UsedFallback not carried through")
	}
}

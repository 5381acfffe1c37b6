package session

import "testing"

// respList builds a response list from parallel correctness and hint
// flags.
func respList(correct []bool, hinted []bool) []Response {
	out := make([]Response, len(correct))
	for i := range correct {
		out[i] = Response{
			QuestionID:  "q",
			IsCorrect:   correct[i],
			HintWasUsed: hinted[i],
		}
	}
	return out
}

func TestClassifyEffort(t *testing.T) {
	tests := []struct {
		name    string
		correct []bool
		hinted  []bool
		want    EffortLabel
	}{
		{
			name:    "empty session is steady",
			correct: nil,
			hinted:  nil,
			want:    LabelSteady,
		},
		{
			name:    "no hints and all correct is focused",
			correct: []bool{true, true, true, true},
			hinted:  []bool{false, false, false, false},
			want:    LabelFocused,
		},
		{
			name:    "no hints wins even when everything is wrong",
			correct: []bool{false, false, false, false},
			hinted:  []bool{false, false, false, false},
			want:    LabelFocused,
		},
		{
			name:    "hints with high correctness is persisted",
			correct: []bool{true, true, true, false},
			hinted:  []bool{true, false, false, false},
			want:    LabelPersisted,
		},
		{
			name:    "exactly at the persistence threshold",
			correct: []bool{true, true, true, true, true, true, true, false, false, false},
			hinted:  []bool{true, false, false, false, false, false, false, false, false, false},
			want:    LabelPersisted,
		},
		{
			name:    "weak first half then strong second half is improved",
			correct: []bool{false, false, false, true, true, false},
			hinted:  []bool{true, false, false, false, false, false},
			want:    LabelImproved,
		},
		{
			name:    "hints with low flat correctness is tried-hard",
			correct: []bool{false, true, false, false},
			hinted:  []bool{true, true, false, false},
			want:    LabelTriedHard,
		},
		{
			name:    "single hinted wrong answer is tried-hard",
			correct: []bool{false},
			hinted:  []bool{true},
			want:    LabelTriedHard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyEffort(respList(tt.correct, tt.hinted))
			if got != tt.want {
				t.Errorf("ClassifyEffort = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSecondHalfGain(t *testing.T) {
	// First half 0/2, second half 2/2: gain of 1.0.
	gain := secondHalfGain(respList(
		[]bool{false, false, true, true},
		[]bool{false, false, false, false},
	))
	if gain != 1.0 {
		t.Errorf("secondHalfGain = %v, want 1.0", gain)
	}

	if got := secondHalfGain(respList([]bool{true}, []bool{false})); got != 0 {
		t.Errorf("secondHalfGain on one response = %v, want 0", got)
	}
}

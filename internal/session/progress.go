package session

import "fmt"

// Progress is the "item K of N" indicator. A pure value: no state, no
// side effects, no failure modes.
type Progress struct {
	Current int // 1-based position of the item being shown
	Total   int
}

// Ratio returns completion as a fraction in [0, 1]. A zero total maps
// to 0 rather than dividing by zero.
func (p Progress) Ratio() float64 {
	if p.Total <= 0 {
		return 0
	}
	r := float64(p.Current) / float64(p.Total)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// Label renders the display string.
func (p Progress) Label() string {
	return fmt.Sprintf("Question %d of %d", p.Current, p.Total)
}

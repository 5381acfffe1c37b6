package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/lumikids/lumi/internal/ui/theme"
)

// ProgressBar renders session progress as a label plus a filled bar.
// Purely presentational; the ratio arrives precomputed.
type ProgressBar struct {
	Label string
	Ratio float64
	Width int
}

// NewProgressBar creates a progress bar.
func NewProgressBar(label string, ratio float64, width int) ProgressBar {
	return ProgressBar{Label: label, Ratio: ratio, Width: width}
}

// View renders the bar.
func (p ProgressBar) View() string {
	var out string
	if p.Label != "" {
		out = lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Label) + "  "
	}

	barWidth := p.Width - lipgloss.Width(out)
	if barWidth < 4 {
		barWidth = 4
	}

	ratio := p.Ratio
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	filled := int(float64(barWidth) * ratio)
	if filled > barWidth {
		filled = barWidth
	}
	empty := barWidth - filled

	out += lipgloss.NewStyle().
		Background(theme.Primary).
		Render(strings.Repeat(" ", filled))
	out += lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", empty))

	return out
}

package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/lumikids/lumi/internal/ui/theme"
)

// Minimum terminal size Lumi renders into.
const (
	MinWidth  = 60
	MinHeight = 20
)

// Frame chrome heights.
const (
	HeaderHeight = 3
	FooterHeight = 1
)

// KeyHint is one entry in the footer key legend.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight returns the height left for screen content.
func ContentHeight(totalHeight int) int {
	h := totalHeight - HeaderHeight - FooterHeight
	if h < 0 {
		return 0
	}
	return h
}

// RenderMinSizeMessage renders the resize prompt.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"A bit squished in here!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader renders the top bar: app name on the left, the active
// screen title centered.
func RenderHeader(title string, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  Lumi")

	center := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(title)

	innerWidth := width - 4
	if innerWidth < 0 {
		innerWidth = 0
	}

	leftLen := lipgloss.Width(left)
	centerLen := lipgloss.Width(center)
	leftGap := (innerWidth-centerLen)/2 - leftLen
	if leftGap < 1 {
		leftGap = 1
	}
	rightGap := innerWidth - leftLen - leftGap - centerLen
	if rightGap < 1 {
		rightGap = 1
	}

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap)

	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFooter renders the key legend.
func RenderFooter(hints []KeyHint, width int) string {
	var parts []string
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(h.Key)+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(" "+h.Description))
	}
	line := "  " + strings.Join(parts, lipgloss.NewStyle().Foreground(theme.Border).Render("  ·  "))
	return lipgloss.NewStyle().Width(width).Render(line)
}

// RenderFrame stacks header, content and footer into the full window.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}
	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

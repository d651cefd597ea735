package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/spinwheel/engine"
	"github.com/nathoo/spinwheel/engine/angle"
)

// renderBanner is the line under the wheel: the spinner while a spin is
// pending, the winner once it settles, otherwise a hint.
func (m Model) renderBanner() string {
	var text string
	switch p := m.engine.Phase().(type) {
	case engine.Spinning:
		text = m.spinner.View() + " Spinning..."
	case engine.Settled:
		text = styleResult.Render("★ " + p.Label + " ★")
	default:
		if len(m.engine.State.Items) == 0 {
			text = styleHint.Render("Add some items to start spinning!")
		} else {
			text = styleHint.Render("ctrl+s to spin")
		}
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, text)
}

// renderStatusBar produces a full-width inverted status line showing the
// title, item count, rotation and phase.
func (m Model) renderStatusBar() string {
	s := m.engine.State

	left := fmt.Sprintf(" %s | Items: %d", s.Title, len(s.Items))
	right := fmt.Sprintf("%.1f° | %s ", angle.Normalize(m.display), phaseLabel(m.engine.Phase()))

	// Drop the title if the bar is too narrow.
	if lipgloss.Width(left)+lipgloss.Width(right)+2 > m.width {
		left = fmt.Sprintf(" Items: %d", len(s.Items))
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

func phaseLabel(p engine.Phase) string {
	switch p := p.(type) {
	case engine.Settled:
		return "Selected: " + p.Label
	default:
		return strings.ToUpper(p.Name()[:1]) + p.Name()[1:]
	}
}

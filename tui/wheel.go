package tui

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/spinwheel/render"
	"github.com/nathoo/spinwheel/types"
)

// frameInterval paces the spin animation at roughly 30fps.
const frameInterval = time.Second / 30

// frameMsg advances the spin animation.
type frameMsg time.Time

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// animation eases the displayed rotation from one angle to another.
type animation struct {
	from, to float64
	start    time.Time
	duration time.Duration
}

// at returns the displayed rotation at time t and whether the animation has
// finished.
func (a animation) at(t time.Time) (float64, bool) {
	if a.duration <= 0 {
		return a.to, true
	}
	p := float64(t.Sub(a.start)) / float64(a.duration)
	if p >= 1 {
		return a.to, true
	}
	if p < 0 {
		p = 0
	}
	return a.from + (a.to-a.from)*easeOutCubic(p), false
}

// easeOutCubic decelerates to zero velocity at p = 1.
func easeOutCubic(p float64) float64 {
	return 1 - math.Pow(1-p, 3)
}

// wheelSize picks raster dimensions that fit the terminal. Width is odd so
// the pointer column sits exactly over the center.
func wheelSize(termWidth, termHeight int) (w, h int) {
	h = termHeight / 3
	if h > maxWheelRows {
		h = maxWheelRows
	}
	if h < minWheelRows {
		h = minWheelRows
	}
	w = 2*h + 1
	if w > termWidth {
		w = termWidth
		if w%2 == 0 {
			w--
		}
	}
	return w, h
}

const (
	minWheelRows = 5
	maxWheelRows = 13
)

// renderWheel draws the raster with each cell painted in its item color,
// centered in a panel of the given width, with the pointer row on top.
func renderWheel(items []types.WheelItem, rotation float64, w, h, panelWidth int) string {
	grid := render.ASCII(items, rotation, w, h)
	pad := 0
	if panelWidth > w {
		pad = (panelWidth - w) / 2
	}
	indent := strings.Repeat(" ", pad)

	lines := make([]string, 0, h+1)
	lines = append(lines, indent+strings.Repeat(" ", w/2)+stylePointer.Render("▼"))
	for _, row := range grid {
		var b strings.Builder
		b.WriteString(indent)
		// Paint runs of the same segment in one styled span.
		for i := 0; i < len(row); {
			j := i
			for j < len(row) && row[j] == row[i] {
				j++
			}
			span := strings.Repeat(" ", j-i)
			if idx := row[i]; idx != render.Outside {
				span = lipgloss.NewStyle().Background(lipgloss.Color(items[idx].Color)).Render(span)
			}
			b.WriteString(span)
			i = j
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

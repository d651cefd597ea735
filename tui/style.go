package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleLabel = lipgloss.NewStyle().
			Bold(true)

	styleList = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	styleResult = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")).
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleUserInput = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	stylePointer = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	styleSpinner = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	styleHint = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindText lineKind = iota
	kindResult
	kindList
	kindSystem
	kindError
	kindTrace
	kindInput
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "The wheel stops on:"),
		strings.HasPrefix(line, "Selected:"):
		return kindResult
	case strings.HasPrefix(line, "Items ("),
		strings.HasPrefix(line, "Layout ("),
		isNumbered(line):
		return kindList
	case strings.HasPrefix(line, "Wait for the wheel"),
		strings.HasPrefix(line, "Labels can't"),
		strings.HasPrefix(line, "No item matches"),
		strings.HasPrefix(line, "No preset named"),
		strings.HasPrefix(line, "Which "),
		strings.HasPrefix(line, "I don't know how"):
		return kindError
	default:
		return kindText
	}
}

// isNumbered matches indented list entries like "  3. Pizza".
func isNumbered(line string) bool {
	s := strings.TrimLeft(line, " ")
	if len(s) == len(line) {
		return false
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i > 0 && i < len(s) && s[i] == '.'
}

// styledQuoted renders a line with any "double-quoted" labels in bold.
func styledQuoted(line string) string {
	parts := strings.Split(line, `"`)
	if len(parts) < 3 {
		return styleText.Render(line)
	}
	var b strings.Builder
	for i, p := range parts {
		switch {
		case i%2 == 1 && i < len(parts)-1:
			b.WriteString(styleLabel.Render(`"` + p + `"`))
		case i%2 == 1:
			// Unbalanced trailing quote.
			b.WriteString(styleText.Render(`"` + p))
		default:
			b.WriteString(styleText.Render(p))
		}
	}
	return b.String()
}

// renderEntry styles one log line and wraps it to width.
func renderEntry(e entry, width int) string {
	var styled string
	switch e.kind {
	case kindInput:
		styled = styleUserInput.Render(e.text)
	case kindResult:
		styled = styleResult.Render(e.text)
	case kindList:
		styled = styleList.Render(e.text)
	case kindSystem:
		styled = styleSystem.Render(e.text)
	case kindError:
		styled = styleError.Render(e.text)
	case kindTrace:
		styled = styleTrace.Render(e.text)
	default:
		styled = styledQuoted(e.text)
	}
	return lipgloss.NewStyle().Width(width).Render(styled)
}

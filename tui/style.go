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

	styleGame = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	stylePlan = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")).
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleOperatorInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	styleSliceHeader = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true)
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindGame lineKind = iota
	kindSliceHeader
	kindPlan
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
	case strings.HasPrefix(line, "[skipped"):
		return kindError
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "-- t="):
		return kindSliceHeader
	case strings.HasPrefix(line, ">> "):
		return kindPlan
	default:
		return kindGame
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindSliceHeader:
		return styleSliceHeader.Render(line)
	case kindPlan:
		return stylePlan.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	case kindInput:
		return styleOperatorInput.Render(line)
	default:
		return styleGame.Render(line)
	}
}

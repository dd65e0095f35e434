package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/duelcore/types"
)

// renderStatusBar produces a full-width inverted status line showing the
// clock, the target's most plausible state and replay progress.
func (m Model) renderStatusBar() string {
	tl := m.engine.Timeline

	left := fmt.Sprintf(" t=%s", seconds(tl.Time))
	if m.target != "" && tl.Known(m.target) {
		p := tl.Primary(m.target)
		left += fmt.Sprintf(" | %s: %d aff, %d branch", m.target,
			p.Flags.AfflictionCount(), len(tl.Branches(m.target)))
		var affs []string
		for _, f := range p.Flags.Afflictions() {
			affs = append(affs, f.String())
		}
		if candidate := left + " [" + strings.Join(affs, " ") + "]"; len(affs) > 0 &&
			lipgloss.Width(candidate)+24 < m.width {
			left = candidate
		}
	}

	right := fmt.Sprintf("%s | %d/%d ", m.strategyName(), m.applied, m.applied+len(m.pending))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

func (m Model) strategyName() string {
	if m.strategy == "" {
		return "default"
	}
	return m.strategy
}

func seconds(t types.Time) string {
	return fmt.Sprintf("%.2fs", float64(t)/float64(types.Second))
}

package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/types"
)

// Describe renders a branch as short labelled lines for consoles.
func Describe(a *agent.AgentState) []string {
	var lines []string
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, fmt.Sprintf("%-11s %s", label+":", value))
		}
	}

	add("Class", a.ClassOf().String())
	add("Health", fmt.Sprintf("%d/%d  mana %d/%d", a.Stats.Health, a.Stats.MaxHealth, a.Stats.Mana, a.Stats.MaxMana))

	var busy []string
	for b := agent.BType(0); b < agent.NumBalances; b++ {
		if r := a.Balances.Remaining(b); r > 0 {
			busy = append(busy, fmt.Sprintf("%s %s", b, seconds(r)))
		}
	}
	add("Cooldowns", strings.Join(busy, ", "))

	var affs []string
	for _, f := range a.Flags.Afflictions() {
		s := f.String()
		if f.IsCounter() {
			s = fmt.Sprintf("%s(%d)", s, a.Flags.Count(f))
		}
		if a.Guessed(f) {
			s += "?"
		}
		affs = append(affs, s)
	}
	add("Afflicted", strings.Join(affs, ", "))

	var defs []string
	for _, f := range a.Flags.Defenses() {
		defs = append(defs, f.String())
	}
	add("Defenses", strings.Join(defs, ", "))

	var limbs []string
	for _, l := range agent.Limbs() {
		if d := a.Limbs[l].Damage; d > 0 {
			limbs = append(limbs, fmt.Sprintf("%s %.2f%%", l, float64(d)/100))
		}
	}
	add("Limbs", strings.Join(limbs, ", "))
	if a.Parrying != agent.NoLimb {
		add("Parrying", a.Parrying.String())
	}

	if a.Hypnosis.State != agent.HypnosisNone {
		h := a.Hypnosis.State.String()
		if len(a.Hypnosis.Suggestions) > 0 {
			h += " [" + strings.Join(a.Hypnosis.Suggestions, ", ") + "]"
		}
		add("Hypnosis", h)
	}
	switch c := a.Class.(type) {
	case agent.Zealot:
		add("Zealot", fmt.Sprintf("zenith %s  pyromania %s", seconds(c.Zenith), seconds(c.Pyromania)))
	case agent.Shikudo:
		add("Shikudo", fmt.Sprintf("form %s  kata %d", c.Form, c.KataCount))
	}
	add("Strikes", fmt.Sprintf("%d", a.Strikes))
	return lines
}

func seconds(t types.Time) string {
	return fmt.Sprintf("%.2fs", float64(t)/float64(types.Second))
}

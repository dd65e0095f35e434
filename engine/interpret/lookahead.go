package interpret

import (
	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/flags"
	"github.com/nathoo/duelcore/types"
)

// window returns the observations that qualify the current action: after
// the action itself, up to but excluding the next combat action.
func window(after []types.Observation) []types.Observation {
	if len(after) == 0 {
		return nil
	}
	rest := after[1:]
	for i, o := range rest {
		if _, ok := o.(types.CombatAction); ok {
			return rest[:i]
		}
	}
	return rest
}

// qualifier returns the first dodge-style qualifier for the current action.
func qualifier(after []types.Observation) (types.DodgeType, bool) {
	for _, o := range window(after) {
		if d, ok := o.(types.Dodge); ok {
			return d.Type, true
		}
	}
	return "", false
}

// attackHit reports whether the current action connected: no dodge, miss,
// absorb or parry follows it before the next combat action.
func attackHit(after []types.Observation) bool {
	_, found := qualifier(after)
	return !found
}

// applyOrInferBalance trusts an explicit balance report for who in the
// current action's window and otherwise puts the channel on the expected cooldown.
func (c *Context) applyOrInferBalance(who string, b agent.BType, expected types.Time) {
	d := expected
	for _, o := range window(c.After) {
		bal, ok := o.(types.Balance)
		if !ok || bal.Who != who {
			continue
		}
		if got, err := parseBalance(bal.Channel); err == nil && got == b {
			d = bal.Duration
			break
		}
	}
	c.TL.ForAgent(who, func(a *agent.AgentState) { a.Balances.Use(b, d) })
}

// confirmedAfflictions lists the candidates the current action's window
// explicitly reports landing on who.
func confirmedAfflictions(after []types.Observation, who string, candidates []flags.FType) []flags.FType {
	var out []flags.FType
	for _, o := range window(after) {
		af, ok := o.(types.Afflicted)
		if !ok || af.Who != who {
			continue
		}
		f, ok := flags.FromName(af.Affliction)
		if !ok {
			continue
		}
		for _, cand := range candidates {
			if cand == f {
				out = append(out, f)
			}
		}
	}
	return out
}

// confirmedCure reports whether an explicit Cured for who follows.
func confirmedCure(after []types.Observation, who string) bool {
	for _, o := range window(after) {
		if cu, ok := o.(types.Cured); ok && cu.Who == who {
			return true
		}
	}
	return false
}

// explicitLimbDamage reports whether the slice carries an authoritative
// damage value for who's limb l after the current action.
func explicitLimbDamage(after []types.Observation, who string, l agent.Limb) bool {
	for _, o := range after {
		ld, ok := o.(types.LimbDamage)
		if !ok || ld.Who != who {
			continue
		}
		if got, ok := agent.LimbFromName(ld.Limb); ok && got == l {
			return true
		}
	}
	return false
}

// limbConfirmed reports whether a qualifier for who's limb l at level
// follows the current action.
func limbConfirmed(after []types.Observation, who string, l agent.Limb, level types.LimbLevel) bool {
	for _, o := range window(after) {
		q, ok := o.(types.LimbQualifier)
		if !ok || q.Who != who || q.Level != level {
			continue
		}
		if got, ok := agent.LimbFromName(q.Limb); ok && got == l {
			return true
		}
	}
	return false
}

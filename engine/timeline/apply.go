package timeline

import (
	"github.com/sirupsen/logrus"

	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/types"
)

// ApplyTimeSlice runs one slice through in. Observations that fail are
// logged and skipped; the rest of the slice still applies. The errors are
// returned for callers that want them.
func (t *Timeline) ApplyTimeSlice(slice *types.TimeSlice, in Interpreter) []error {
	// 1. Adopt the controlled agent.
	if slice.Me != "" {
		t.Me = slice.Me
		t.Branches(slice.Me)
	}

	// 2. Advance the clock.
	t.UpdateTime(slice.Time)

	// 3. Interpret each observation with its before/after views.
	var errs []error
	obs := slice.Observations
	for i, o := range obs {
		if err := in.Interpret(o, obs[:i], obs[i:], t); err != nil {
			t.log.WithFields(logrus.Fields{
				"observation": o.Kind(),
				"agent":       Subject(o),
				"error":       err,
			}).Warn("observation skipped")
			errs = append(errs, err)
		}
	}

	// 4. Authoritative prompt values override inference.
	t.applyPrompt(slice.Prompt)
	return errs
}

func (t *Timeline) applyPrompt(p types.Prompt) {
	if p.Stats != nil && t.Me != "" {
		st := *p.Stats
		t.ForAgent(t.Me, func(a *agent.AgentState) {
			a.Stats = agent.Stats{
				Health: st.Health, MaxHealth: st.MaxHealth,
				Mana: st.Mana, MaxMana: st.MaxMana,
				Spirit: st.Spirit, MaxSpirit: st.MaxSpirit,
				Sips: st.Sips, Shields: st.Shields,
			}
		})
	}
	if p.Target != "" && p.TargetHealth != nil {
		pct := *p.TargetHealth
		t.ForAgent(p.Target, func(a *agent.AgentState) {
			a.Stats.Health = a.Stats.MaxHealth * pct / 100
		})
	}
}

// Subject returns the agent an observation is about.
func Subject(o types.Observation) string {
	switch o := o.(type) {
	case types.CombatAction:
		if o.Target != "" {
			return o.Target
		}
		return o.Caster
	case types.CureAction:
		return o.Caster
	case types.Afflicted:
		return o.Who
	case types.Cured:
		return o.Who
	case types.DefenseGained:
		return o.Who
	case types.DefenseStripped:
		return o.Who
	case types.Balance:
		return o.Who
	case types.BalanceRecovered:
		return o.Who
	case types.LimbDamage:
		return o.Who
	case types.LimbQualifier:
		return o.Who
	case types.Dodge:
		return o.Who
	case types.Relapse:
		return o.Who
	case types.WieldChange:
		return o.Who
	case types.Parry:
		return o.Who
	case types.HypnoticTrigger:
		return o.Who
	case types.Channel:
		return o.Who
	case types.Death:
		return o.Who
	}
	return ""
}

package interpret

import (
	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/branch"
	"github.com/nathoo/duelcore/engine/flags"
	"github.com/nathoo/duelcore/engine/venoms"
	"github.com/nathoo/duelcore/types"
)

// dose is one delivery of venoms to who. After is the lookahead of the
// observation that delivered them. Relapsed doses are never queued again.
type dose struct {
	who     string
	now     types.Time
	after   []types.Observation
	relapse bool
}

// apply applies one venom to a, forking for venoms whose result is random
// unless the slice already says how it landed. Venoms landing on a
// relapsing target are also queued.
func (d dose) apply(a *agent.AgentState, name string) []*agent.AgentState {
	v, ok := venoms.Lookup(name)
	if !ok {
		return []*agent.AgentState{a}
	}
	if !d.relapse && a.Is(flags.Relapsing) {
		a.Relapses.Push(v.Name, d.now)
	}

	switch v.Effect {
	case venoms.Afflicts:
		if v.Affliction.IsCounter() {
			_ = a.Flags.TickUp(v.Affliction)
		} else {
			a.Set(v.Affliction, true)
		}
	case venoms.Strips:
		if a.Is(v.Strip) {
			a.Set(v.Strip, false)
		} else {
			a.Set(v.Affliction, true)
		}
	case venoms.Damages:
		a.Stats.Health -= v.Damage
		if a.Stats.Health < 0 {
			a.Stats.Health = 0
		}
	case venoms.Breaks:
		// A confirmed break arrives as its own Afflicted observation.
		if len(confirmedAfflictions(d.after, d.who, v.Limbs)) > 0 {
			return []*agent.AgentState{a}
		}
		return branch.Afflictions(a, v.Limbs, 1)
	}
	return []*agent.AgentState{a}
}

// applyAll applies each venom in order, carrying forks forward.
func (d dose) applyAll(a *agent.AgentState, names []string) []*agent.AgentState {
	states := []*agent.AgentState{a}
	for _, v := range names {
		states = branch.Each(states, func(s *agent.AgentState) []*agent.AgentState {
			return d.apply(s, v)
		})
	}
	return states
}

// envenom applies names to the target of the current action.
func (c *Context) envenom(who string, names []string) {
	if len(names) == 0 {
		return
	}
	d := dose{who: who, now: c.TL.Time, after: c.After}
	c.TL.BranchAgent(who, func(a *agent.AgentState) []*agent.AgentState {
		return d.applyAll(a, names)
	})
}

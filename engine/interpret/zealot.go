package interpret

import (
	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/branch"
	"github.com/nathoo/duelcore/engine/flags"
)

// Zealot balance costs and damage.
const (
	ZenithEquil     = 300
	PyromaniaEquil  = 300
	PummelBalance   = 270
	WanekickBalance = 300
	HacklesWrath    = 200

	PummelDamage   = 1800
	WanekickDamage = 1500
	// ZenithBonus is applied to limb damage while zenith is up, in percent.
	ZenithBonus = 130
)

// hacklesAfflictions are the candidates one hackles strike picks from.
var hacklesAfflictions = []flags.FType{
	flags.Clumsiness,
	flags.Weariness,
	flags.Stupidity,
	flags.Dizziness,
	flags.Recklessness,
}

func registerZealot(in *Interpreter) {
	in.Register("zealot", "zenith", zenith)
	in.Register("zealot", "pyromania", pyromania)
	in.Register("zealot", "pummel", pummel)
	in.Register("zealot", "wanekick", wanekick)
	in.Register("zealot", "hackles", hackles)
}

// withZealot updates the caster's zealot sub-state on every branch.
func (c *Context) withZealot(fn func(z *agent.Zealot)) {
	c.TL.ForAgent(c.Action.Caster, func(a *agent.AgentState) {
		z, ok := a.Class.(agent.Zealot)
		if !ok {
			return
		}
		fn(&z)
		a.Class = z
	})
}

func zenith(c *Context) error {
	c.applyOrInferBalance(c.Action.Caster, agent.Equil, ZenithEquil)
	c.withZealot(func(z *agent.Zealot) { z.Zenith = agent.ZenithDuration })
	return nil
}

func pyromania(c *Context) error {
	c.applyOrInferBalance(c.Action.Caster, agent.Equil, PyromaniaEquil)
	c.withZealot(func(z *agent.Zealot) { z.Pyromania = agent.PyromaniaDuration })
	return nil
}

// zealotDamage scales base by the caster's zenith.
func (c *Context) zealotDamage(base int) int {
	if z, ok := c.TL.Primary(c.Action.Caster).Class.(agent.Zealot); ok && z.InZenith() {
		return base * ZenithBonus / 100
	}
	return base
}

// burn ticks ablaze on the target while pyromania is up.
func (c *Context) burn() {
	z, ok := c.TL.Primary(c.Action.Caster).Class.(agent.Zealot)
	if !ok || z.Pyromania <= 0 {
		return
	}
	c.TL.ForAgent(c.Action.Target, func(t *agent.AgentState) { _ = t.Flags.TickUp(flags.Ablaze) })
}

// pummel hits the limb named in the annotation.
func pummel(c *Context) error {
	a := c.Action
	l, err := parseLimb(a.Annotation)
	if err != nil {
		return err
	}
	c.applyOrInferBalance(a.Caster, agent.Balance, PummelBalance)
	if !attackHit(c.After) {
		return nil
	}
	c.applyLimbDamage(a.Target, limbHit{Limb: l, Amount: c.zealotDamage(PummelDamage), MayBreak: true})
	c.burn()
	return nil
}

// wanekick strikes a leg ("left" or "right") and knocks the target down.
func wanekick(c *Context) error {
	a := c.Action
	l, err := parseSide(a.Annotation, "leg")
	if err != nil {
		return err
	}
	c.applyOrInferBalance(a.Caster, agent.Balance, WanekickBalance)
	if !attackHit(c.After) {
		return nil
	}
	c.applyLimbDamage(a.Target, limbHit{Limb: l, Amount: c.zealotDamage(WanekickDamage), MayBreak: true})
	c.TL.ForAgent(a.Target, func(t *agent.AgentState) { t.Set(flags.Prone, true) })
	c.burn()
	return nil
}

// hackles lands one random affliction from a fixed set.
func hackles(c *Context) error {
	a := c.Action
	c.applyOrInferBalance(a.Caster, agent.Wrath, HacklesWrath)
	if !attackHit(c.After) {
		return nil
	}
	c.applyRandom(a.Target, hacklesAfflictions, 1)
	return nil
}

// applyRandom lands k afflictions from candidates on who. Afflictions the
// slice confirms are left to their own observations; otherwise the target
// forks once per possible outcome.
func (c *Context) applyRandom(who string, candidates []flags.FType, k int) {
	if len(confirmedAfflictions(c.After, who, candidates)) > 0 {
		return
	}
	c.TL.BranchAgent(who, func(t *agent.AgentState) []*agent.AgentState {
		return branch.Afflictions(t, candidates, k)
	})
}

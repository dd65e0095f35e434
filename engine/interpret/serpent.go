package interpret

import (
	"strings"

	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/flags"
	"github.com/nathoo/duelcore/engine/timeline"
	"github.com/nathoo/duelcore/types"
)

// Serpent balance costs.
const (
	DoublestabBalance = 280
	BiteBalance       = 190
	FlayBalance       = 190
	HypnotiseEquil    = 300
	SuggestEquil      = 200
	SealEquil         = 300
	SnapEquil         = 100
	DefaultSealDelay  = 4 * types.Second
)

func registerSerpent(in *Interpreter) {
	in.Register("serpent", "doublestab", doublestab)
	in.Register("serpent", "bite", bite)
	in.Register("serpent", "flay", flay)
	in.Register("hypnosis", "hypnotise", hypnotise)
	in.Register("hypnosis", "suggest", suggest)
	in.Register("hypnosis", "seal", seal)
	in.Register("hypnosis", "snap", snap)
}

// doublestab delivers two venoms. The venoms come from the annotation or,
// when the line omits them, from the caster's last_venoms hint. A dodge,
// miss or parry withholds the second stab; absorb, rebound or purge
// withholds both.
func doublestab(c *Context) error {
	a := c.Action
	annotation := a.Annotation
	if annotation == "" {
		annotation, _ = c.TL.GetPlayerHint(a.Caster, timeline.HintLastVenoms)
	}
	vs, err := parseVenoms(annotation)
	if err != nil {
		return err
	}
	if len(vs) > 2 {
		vs = vs[:2]
	}
	c.applyOrInferBalance(a.Caster, agent.Balance, DoublestabBalance)

	if q, found := qualifier(c.After); found {
		switch q {
		case types.DodgeDodge, types.DodgeMiss, types.DodgeParry:
			if len(vs) > 1 {
				vs = vs[:1]
			}
		default:
			vs = nil
		}
		if q == types.DodgeRebounded {
			c.TL.ForAgent(a.Target, func(t *agent.AgentState) { t.Set(flags.Rebounding, true) })
		}
	}
	c.envenom(a.Target, vs)
	return nil
}

func bite(c *Context) error {
	a := c.Action
	vs, err := parseVenoms(a.Annotation)
	if err != nil {
		return err
	}
	if len(vs) > 1 {
		vs = vs[:1]
	}
	c.applyOrInferBalance(a.Caster, agent.Balance, BiteBalance)
	if !attackHit(c.After) {
		return nil
	}
	c.envenom(a.Target, vs)
	return nil
}

// flay strips the defense named in the annotation, rebounding by default.
func flay(c *Context) error {
	a := c.Action
	def := flags.Rebounding
	if a.Annotation != "" {
		f, err := parseFlag(a.Annotation)
		if err != nil {
			return err
		}
		def = f
	}
	c.applyOrInferBalance(a.Caster, agent.Balance, FlayBalance)
	if !attackHit(c.After) {
		return nil
	}
	c.TL.ForAgent(a.Target, func(t *agent.AgentState) { t.Set(def, false) })
	return nil
}

func hypnotise(c *Context) error {
	a := c.Action
	c.applyOrInferBalance(a.Caster, agent.Equil, HypnotiseEquil)
	c.TL.ForAgent(a.Target, func(t *agent.AgentState) { t.Hypnosis.Hypnotize() })
	return nil
}

func suggest(c *Context) error {
	a := c.Action
	s := strings.TrimSpace(a.Annotation)
	if s != "" {
		if _, err := parseFlag(s); err != nil {
			return err
		}
	}
	c.applyOrInferBalance(a.Caster, agent.Equil, SuggestEquil)
	if s == "" {
		return nil
	}
	c.TL.ForAgent(a.Target, func(t *agent.AgentState) {
		if !t.Hypnosis.Suggest(s) {
			t.Strike()
		}
	})
	return nil
}

// seal starts the countdown; the annotation may give it in seconds.
func seal(c *Context) error {
	a := c.Action
	c.applyOrInferBalance(a.Caster, agent.Equil, SealEquil)
	delay := DefaultSealDelay
	if d, ok := parseSeconds(a.Annotation); ok {
		delay = d
	}
	c.TL.ForAgent(a.Target, func(t *agent.AgentState) { t.Hypnosis.Seal(delay) })
	return nil
}

func snap(c *Context) error {
	a := c.Action
	c.applyOrInferBalance(a.Caster, agent.Equil, SnapEquil)
	c.TL.ForAgent(a.Target, func(t *agent.AgentState) { t.Hypnosis.Snap() })
	return nil
}

package interpret

import (
	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/combo"
	"github.com/nathoo/duelcore/engine/flags"
	"github.com/nathoo/duelcore/engine/venoms"
)

// ShikudoLimbScale converts an attack's damage estimate into limb damage.
const ShikudoLimbScale = 250

// kataAfflictions are the random candidates of attacks that afflict
// without a venom.
var kataAfflictions = map[string][]flags.FType{
	"hiraku":      {flags.Stupidity, flags.Dizziness, flags.Confusion},
	"nervestrike": {flags.Paralysis, flags.Weariness, flags.Clumsiness},
}

func registerShikudo(in *Interpreter) {
	for _, a := range combo.All() {
		in.Register("shikudo", a.Name, kata(a))
	}
	in.Register("shikudo", "transition", transition)
}

// kata builds the handler for one staff attack. The annotation may name a
// side ("left", "right") and the venom carried.
func kata(atk *combo.Attack) Handler {
	return func(c *Context) error {
		a := c.Action
		var side string
		var vs []string
		for _, f := range fields(a.Annotation) {
			switch f {
			case "left", "right":
				side = f
			default:
				if _, ok := venoms.Lookup(f); !ok {
					return &UnknownVenomError{Name: f}
				}
				vs = append(vs, f)
			}
		}

		form := combo.Tykonos
		if s, ok := c.TL.Primary(a.Caster).Class.(agent.Shikudo); ok {
			form = s.Form
		}
		c.applyOrInferBalance(a.Caster, agent.Balance, combo.CostFrom(atk, form))
		c.TL.ForAgent(a.Caster, func(s *agent.AgentState) {
			sh, ok := s.Class.(agent.Shikudo)
			if !ok {
				return
			}
			sh.Form = combo.NextStance(atk, sh.Form)
			sh.KataCount++
			s.Class = sh
		})

		if !attackHit(c.After) {
			return nil
		}
		// Arm and leg strikes without a side cannot be attributed.
		if l, err := parseSide(side, atk.Limb); atk.Limb != "" && err == nil {
			c.applyLimbDamage(a.Target, limbHit{Limb: l, Amount: int(atk.Damage * ShikudoLimbScale), MayBreak: true})
		}
		if atk.Knocks {
			c.TL.ForAgent(a.Target, func(t *agent.AgentState) { t.Set(flags.Prone, true) })
		}
		if atk.Shatters {
			c.TL.ForAgent(a.Target, func(t *agent.AgentState) { t.Set(flags.Rebounding, false) })
		}
		if atk.Venom && len(vs) > 0 {
			c.envenom(a.Target, vs[:1])
		}
		if cands, ok := kataAfflictions[atk.Name]; ok {
			c.applyRandom(a.Target, cands, 1)
		}
		return nil
	}
}

// transition records an observed change of form.
func transition(c *Context) error {
	form, ok := combo.StanceFromName(c.Action.Annotation)
	if !ok {
		return nil
	}
	c.TL.ForAgent(c.Action.Caster, func(s *agent.AgentState) {
		if sh, ok := s.Class.(agent.Shikudo); ok {
			sh.Form = form
			s.Class = sh
		}
	})
	return nil
}

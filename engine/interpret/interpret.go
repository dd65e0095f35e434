// Package interpret turns observations into changes on a timeline.
//
// Generic observations (afflictions gained, balances reported, limb
// damage, ...) are handled here directly. Combat actions are routed by
// (category, skill) to class handlers registered in the skill table.
package interpret

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/branch"
	"github.com/nathoo/duelcore/engine/timeline"
	"github.com/nathoo/duelcore/types"
)

// Context is what a skill handler sees for one combat action.
type Context struct {
	Action types.CombatAction
	Before []types.Observation
	// After starts with the action itself.
	After []types.Observation
	TL    *timeline.Timeline
	Log   logrus.FieldLogger
}

// Handler interprets one combat action.
type Handler func(c *Context) error

type skillKey struct {
	category string
	skill    string
}

// Interpreter implements timeline.Interpreter.
type Interpreter struct {
	log    logrus.FieldLogger
	skills map[skillKey]Handler
}

var _ timeline.Interpreter = (*Interpreter)(nil)

// New returns an interpreter with every built-in skill handler registered.
// A nil logger discards output.
func New(log logrus.FieldLogger) *Interpreter {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	in := &Interpreter{log: log, skills: map[skillKey]Handler{}}
	registerSerpent(in)
	registerZealot(in)
	registerShikudo(in)
	return in
}

// Register adds or replaces the handler for a skill.
func (in *Interpreter) Register(category, skill string, h Handler) {
	in.skills[skillKey{category, skill}] = h
}

// Handles reports whether a skill has a handler.
func (in *Interpreter) Handles(category, skill string) bool {
	_, ok := in.skills[skillKey{category, skill}]
	return ok
}

// Interpret applies one observation.
func (in *Interpreter) Interpret(obs types.Observation, before, after []types.Observation, tl *timeline.Timeline) error {
	switch o := obs.(type) {
	case types.CombatAction:
		return in.combatAction(o, before, after, tl)
	case types.CureAction:
		return in.cure(o, after, tl)

	case types.Afflicted:
		f, err := parseFlag(o.Affliction)
		if err != nil {
			return err
		}
		tl.ForAgent(o.Who, func(a *agent.AgentState) {
			if f.IsCounter() && a.Is(f) {
				_ = a.Flags.TickUp(f)
			}
			a.Set(f, true)
			a.Confirm(f)
		})

	case types.Cured:
		f, err := parseFlag(o.Affliction)
		if err != nil {
			return err
		}
		tl.ForAgent(o.Who, func(a *agent.AgentState) {
			if !a.Is(f) {
				a.Strike()
			}
			a.Set(f, false)
		})

	case types.DefenseGained:
		f, err := parseFlag(o.Defense)
		if err != nil {
			return err
		}
		tl.ForAgent(o.Who, func(a *agent.AgentState) { a.Set(f, true) })

	case types.DefenseStripped:
		f, err := parseFlag(o.Defense)
		if err != nil {
			return err
		}
		tl.ForAgent(o.Who, func(a *agent.AgentState) { a.Set(f, false) })

	case types.Balance:
		b, err := parseBalance(o.Channel)
		if err != nil {
			return err
		}
		tl.ForAgent(o.Who, func(a *agent.AgentState) { a.Balances.Use(b, o.Duration) })

	case types.BalanceRecovered:
		b, err := parseBalance(o.Channel)
		if err != nil {
			return err
		}
		tl.ForAgent(o.Who, func(a *agent.AgentState) { a.Balances.Recover(b) })

	case types.LimbDamage:
		l, err := parseLimb(o.Limb)
		if err != nil {
			return err
		}
		tl.ForAgent(o.Who, func(a *agent.AgentState) { a.SetLimbDamage(l, o.Damage) })

	case types.LimbQualifier:
		return in.limbQualifier(o, before, tl)

	case types.Dodge:
		if o.Type == types.DodgeDodge {
			tl.ForAgent(o.Who, func(a *agent.AgentState) { a.Dodge.Dodged() })
		}

	case types.Relapse:
		for _, b := range before {
			if r, ok := b.(types.Relapse); ok && r.Who == o.Who {
				return nil
			}
		}
		n := 0
		for _, o2 := range after {
			if r, ok := o2.(types.Relapse); ok && r.Who == o.Who {
				n++
			}
		}
		d := dose{who: o.Who, now: tl.Time, after: after, relapse: true}
		tl.BranchAgent(o.Who, func(a *agent.AgentState) []*agent.AgentState {
			return branch.Relapses(a, n, d.applyAll)
		})

	case types.WieldChange:
		w := agent.NewWieldState(o.Left, o.Right, o.TwoHanded)
		tl.ForAgent(o.Who, func(a *agent.AgentState) { a.Wield = w })

	case types.Parry:
		l := agent.NoLimb
		if o.Limb != "" {
			var err error
			if l, err = parseLimb(o.Limb); err != nil {
				return err
			}
		}
		tl.ForAgent(o.Who, func(a *agent.AgentState) { a.Parrying = l })

	case types.HypnoticTrigger:
		var unknown error
		tl.ForAgent(o.Who, func(a *agent.AgentState) {
			s, ok := a.Hypnosis.Trigger()
			if !ok {
				a.Strike()
				return
			}
			f, err := parseFlag(s)
			if err != nil {
				unknown = err
				return
			}
			a.Set(f, true)
		})
		return unknown

	case types.Channel:
		tl.ForAgent(o.Who, func(a *agent.AgentState) {
			a.Channel = agent.ChannelState{Name: o.Name, Remaining: o.Duration}
			if o.Duration <= 0 {
				a.Channel = agent.ChannelState{}
			}
		})

	case types.Death:
		tl.Reset(o.Who)
	}
	return nil
}

func (in *Interpreter) combatAction(o types.CombatAction, before, after []types.Observation, tl *timeline.Timeline) error {
	if c := agent.ClassFromName(o.Category); c != agent.ClassUnknown {
		tl.ForAgent(o.Caster, func(a *agent.AgentState) { a.DetectClass(c) })
	}
	h, ok := in.skills[skillKey{o.Category, o.Skill}]
	if !ok {
		in.log.WithFields(logrus.Fields{
			"category": o.Category,
			"skill":    o.Skill,
			"agent":    o.Caster,
		}).Debug("no handler for skill")
		return nil
	}
	return h(&Context{
		Action: o,
		Before: before,
		After:  after,
		TL:     tl,
		Log:    in.log,
	})
}

func (in *Interpreter) limbQualifier(o types.LimbQualifier, before []types.Observation, tl *timeline.Timeline) error {
	l, err := parseLimb(o.Limb)
	if err != nil {
		return err
	}
	// A preceding attack on who in this slice already reconciled the qualifier.
	for _, b := range before {
		if ca, ok := b.(types.CombatAction); ok && ca.Target == o.Who {
			return nil
		}
	}
	floor := agent.DamagedThreshold
	if o.Level == types.LimbMangled {
		floor = agent.MangledThreshold
	}
	tl.ForAgent(o.Who, func(a *agent.AgentState) {
		if a.Limbs[l].Damage < floor {
			a.SetLimbDamage(l, floor)
		}
	})
	return nil
}

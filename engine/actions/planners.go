package actions

import (
	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/combo"
	"github.com/nathoo/duelcore/engine/flags"
	"github.com/nathoo/duelcore/engine/timeline"
	"github.com/nathoo/duelcore/engine/venoms"
)

// Channel is one of the three independent resources a plan fills.
type Channel uint8

const (
	ChannelBalance Channel = iota
	ChannelEquil
	ChannelTertiary
	NumChannels
)

var channelNames = [NumChannels]string{"balance", "equilibrium", "tertiary"}

func (c Channel) String() string {
	if c >= NumChannels {
		return "unknown"
	}
	return channelNames[c]
}

// Strategy is what a named strategy tag resolves to.
type Strategy struct {
	Name   string
	Venoms venoms.Plan
	// Grader ranks staff combos. Nil ranks by damage rate.
	Grader *combo.Grader
}

// Situation is the read-only view one sub-planner decides from.
type Situation struct {
	TL       *timeline.Timeline
	Me       string
	Target   string
	Strategy Strategy
	Profile  *Profile
	Search   combo.SearchOptions
}

// me and target return the most plausible branch of each side.
func (s *Situation) me() *agent.AgentState     { return s.TL.Primary(s.Me) }
func (s *Situation) target() *agent.AgentState { return s.TL.Primary(s.Target) }

// SubPlanner returns the candidate actions for one channel, best first.
type SubPlanner func(s *Situation) []Action

// ShrugThreshold is the affliction count at which a shrug is worth its
// cooldown.
const ShrugThreshold = 3

// Suggestions are planted in this order, skipping any already present.
var Suggestions = []flags.FType{flags.Stupidity, flags.Paralysis, flags.Confusion, flags.Recklessness}

// MaxSuggestions planted before a seal.
const MaxSuggestions = 2

// SealSeconds is the delay asked for when sealing.
const SealSeconds = 4

// SubPlanners returns the three sub-planners for class, indexed by Channel.
// Unknown classes plan as serpents.
func SubPlanners(class agent.Class) [NumChannels]SubPlanner {
	switch class {
	case agent.ClassZealot:
		return [NumChannels]SubPlanner{zealotBalance, zealotEquil, zealotTertiary}
	case agent.ClassShikudo:
		return [NumChannels]SubPlanner{shikudoBalance, nothing, shrugTertiary}
	default:
		return [NumChannels]SubPlanner{serpentBalance, serpentEquil, shrugTertiary}
	}
}

func nothing(*Situation) []Action { return nil }

func shrugTertiary(s *Situation) []Action {
	if s.me().Flags.AfflictionCount() < ShrugThreshold {
		return nil
	}
	return []Action{NewShrug(s.Profile, s.Me)}
}

func serpentBalance(s *Situation) []Action {
	t := s.target()
	var out []Action
	switch {
	case t.Is(flags.Shielded):
		out = append(out, NewFlay(s.Profile, s.Me, s.Target, flags.Shielded))
	case t.Is(flags.Rebounding):
		out = append(out, NewFlay(s.Profile, s.Me, s.Target, flags.Rebounding))
	}
	vs := venoms.Resolve(s.Strategy.Venoms, 2, t)
	switch len(vs) {
	case 2:
		out = append(out, NewDoublestab(s.Profile, s.Me, s.Target, vs[0], vs[1]))
	case 1:
		out = append(out, NewBite(s.Profile, s.Me, s.Target, vs[0]))
	}
	return out
}

// serpentEquil walks the hypnosis machine: hypnotise, plant suggestions,
// then seal.
func serpentEquil(s *Situation) []Action {
	t := s.target()
	h := t.Hypnosis
	switch h.State {
	case agent.HypnosisNone:
		return []Action{NewHypnotise(s.Profile, s.Me, s.Target)}
	case agent.HypnosisArmed:
		if len(h.Suggestions) < MaxSuggestions {
			if aff, ok := nextSuggestion(t); ok {
				return []Action{NewSuggest(s.Profile, s.Me, s.Target, aff)}
			}
		}
		if len(h.Suggestions) > 0 {
			return []Action{NewSeal(s.Profile, s.Me, s.Target, SealSeconds)}
		}
	}
	return nil
}

func nextSuggestion(t *agent.AgentState) (flags.FType, bool) {
next:
	for _, aff := range Suggestions {
		if t.Is(aff) {
			continue
		}
		for _, have := range t.Hypnosis.Suggestions {
			if have == aff.String() {
				continue next
			}
		}
		return aff, true
	}
	return 0, false
}

// zealotBalance kicks a standing target down, then pummels.
func zealotBalance(s *Situation) []Action {
	t := s.target()
	if !t.Prone() {
		return []Action{NewWanekick(s.Profile, s.Me, s.Target, focusSide(t, "leg"))}
	}
	return []Action{NewPummel(s.Profile, s.Me, s.Target, pummelTarget(t))}
}

// pummelTarget picks the most damaged unbroken limb the target is not
// parrying. Head wins ties.
func pummelTarget(t *agent.AgentState) agent.Limb {
	best, dmg := agent.NoLimb, -1
	for _, l := range agent.Limbs() {
		if l == t.Parrying || t.Is(l.BrokenFlag()) {
			continue
		}
		if d := t.Limbs[l].Damage; d > dmg {
			best, dmg = l, d
		}
	}
	if best == agent.NoLimb {
		return agent.Head
	}
	return best
}

func zealotEquil(s *Situation) []Action {
	z, _ := s.me().Class.(agent.Zealot)
	var out []Action
	if !z.InZenith() {
		out = append(out, NewZenith(s.Profile, s.Me))
	}
	if z.Pyromania <= 0 {
		out = append(out, NewPyromania(s.Profile, s.Me))
	}
	return out
}

func zealotTertiary(s *Situation) []Action {
	return []Action{NewHackles(s.Profile, s.Me, s.Target)}
}

// Posture describes t to the combo solver.
func Posture(t *agent.AgentState) combo.Posture {
	p := combo.Posture{
		Prone:      t.Prone(),
		Rebounding: t.Is(flags.Rebounding),
		Shielded:   t.Is(flags.Shielded),
		Debuffs:    t.Flags.AfflictionCount(),
	}
	switch t.Parrying {
	case agent.LeftArm, agent.RightArm:
		p.Parrying = "arm"
	case agent.LeftLeg, agent.RightLeg:
		p.Parrying = "leg"
	case agent.Head:
		p.Parrying = "head"
	case agent.Torso:
		p.Parrying = "torso"
	}
	return p
}

// shikudoBalance searches staff combos from the current form. Combos of
// two or more attacks are preferred.
func shikudoBalance(s *Situation) []Action {
	t := s.target()
	form := combo.Tykonos
	if sh, ok := s.me().Class.(agent.Shikudo); ok {
		form = sh.Form
	}
	combos := combo.FindCombos(combo.All(), form, Posture(t), s.Search)
	obj := combo.HighestDamageRate
	if s.Strategy.Grader != nil {
		obj = combo.Graded(s.Strategy.Grader)
	}
	best, ok := combo.Select(combos, obj, combo.MinLength(2))
	if !ok {
		if best, ok = combo.Select(combos, obj); !ok {
			return nil
		}
	}
	group := "leg"
	for _, a := range best.Attacks {
		if a.Limb == "arm" || a.Limb == "leg" {
			group = a.Limb
			break
		}
	}
	var venom string
	if vs := venoms.Resolve(s.Strategy.Venoms, 1, t); len(vs) > 0 {
		venom = vs[0]
	}
	return []Action{NewKata(s.Profile, s.Me, s.Target, best, focusSide(t, group), venom)}
}

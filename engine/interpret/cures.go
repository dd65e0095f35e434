package interpret

import (
	"strings"

	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/branch"
	"github.com/nathoo/duelcore/engine/flags"
	"github.com/nathoo/duelcore/engine/timeline"
	"github.com/nathoo/duelcore/types"
)

// herbs lists what each herb cures, in the order the game picks.
var herbs = map[string][]flags.FType{
	"goldenseal": {flags.Stupidity, flags.Epilepsy, flags.Dizziness, flags.Shyness, flags.Impatience, flags.Dissonance},
	"kelp":       {flags.Asthma, flags.Weariness, flags.Clumsiness, flags.Sensitivity, flags.Hypochondria, flags.Healthleech},
	"lobelia":    {flags.Agoraphobia, flags.Recklessness, flags.Loneliness, flags.Masochism, flags.Vertigo, flags.Claustrophobia, flags.Spiritburn},
	"ginseng":    {flags.Haemophilia, flags.Darkshade, flags.Nausea, flags.Addiction, flags.Lethargy, flags.ThinBlood},
	"bloodroot":  {flags.Paralysis, flags.Slickness},
	"ash":        {flags.Hallucinations, flags.Confusion, flags.Paranoia, flags.Hypersomnia, flags.Dementia},
	"bellwort":   {flags.Generosity, flags.Pacifism, flags.Peace, flags.Justice, flags.Lovers, flags.Retribution, flags.Timeloop},
	"immunity":   {flags.Voyria},
}

// smokes lists what each pipe herb cures.
var smokes = map[string][]flags.FType{
	"elm":      {flags.Hellsight, flags.Deadening, flags.Aeon},
	"valerian": {flags.Slickness, flags.Disloyalty, flags.Manaleech},
	"skullcap": {flags.Aeon, flags.Hellsight, flags.Deadening},
}

// salves lists what each salve cures on a body location.
var salves = map[string]map[string][]flags.FType{
	"epidermal": {
		"skin": {flags.Anorexia, flags.Itching, flags.Stuttering, flags.Deafness},
		"head": {flags.Blindness, flags.Deafness},
	},
	"caloric": {
		"skin": {flags.Frozen, flags.Shivering, flags.Hypothermia},
	},
}

// cureBalance is the channel and expected cooldown of each cure kind.
var cureBalance = map[types.CureKind]struct {
	b agent.BType
	d types.Time
}{
	types.CurePill:    {agent.Pill, 160},
	types.CureSalve:   {agent.Salve, 100},
	types.CureSmoke:   {agent.Smoke, 150},
	types.CureTree:    {agent.Tree, 1400},
	types.CureFocus:   {agent.Focus, 500},
	types.CureFitness: {agent.Fitness, 2000},
	types.CureShrug:   {agent.ClassCure, 2000},
}

// blockers are afflictions that make a cure kind impossible. Seeing the
// cure used is evidence against them.
var blockers = map[types.CureKind]flags.FType{
	types.CurePill:  flags.Anorexia,
	types.CureSalve: flags.Slickness,
	types.CureSmoke: flags.Asthma,
}

func (in *Interpreter) cure(o types.CureAction, after []types.Observation, tl *timeline.Timeline) error {
	bal, ok := cureBalance[o.Cure]
	if !ok {
		return &UnknownCureError{Kind: string(o.Cure), Item: o.Item}
	}
	c := &Context{After: after, TL: tl, Log: in.log}
	c.applyOrInferBalance(o.Caster, bal.b, bal.d)

	if blocker, ok := blockers[o.Cure]; ok {
		tl.ForAgent(o.Caster, func(a *agent.AgentState) {
			if a.Is(blocker) {
				a.Strike()
				a.Set(blocker, false)
			}
		})
	}

	item := strings.ToLower(strings.TrimSpace(o.Item))
	switch o.Cure {
	case types.CurePill:
		order, ok := herbs[item]
		if !ok {
			return &UnknownCureError{Kind: string(o.Cure), Item: o.Item}
		}
		tl.ForAgent(o.Caster, func(a *agent.AgentState) { cureFirst(a, order) })

	case types.CureSmoke:
		order, ok := smokes[item]
		if !ok {
			return &UnknownCureError{Kind: string(o.Cure), Item: o.Item}
		}
		tl.ForAgent(o.Caster, func(a *agent.AgentState) { cureFirst(a, order) })

	case types.CureSalve:
		return c.salve(o.Caster, item, strings.ToLower(strings.TrimSpace(o.Location)))

	case types.CureFitness:
		tl.ForAgent(o.Caster, func(a *agent.AgentState) { a.Set(flags.Asthma, false) })

	case types.CureTree, types.CureShrug:
		c.randomCure(o.Caster, treeCurable())

	case types.CureFocus:
		c.randomCure(o.Caster, mentalAfflictions())
	}
	return nil
}

func (c *Context) salve(who, item, location string) error {
	switch item {
	case "mending":
		limbs, err := salveLimbs(location)
		if err != nil {
			return err
		}
		var order []flags.FType
		for _, l := range limbs {
			order = append(order, l.BrokenFlag(), l.DislocatedFlag())
		}
		c.TL.ForAgent(who, func(a *agent.AgentState) { cureFirst(a, order) })
	case "restoration":
		limbs, err := salveLimbs(location)
		if err != nil {
			return err
		}
		c.TL.ForAgent(who, func(a *agent.AgentState) {
			if _, busy := a.Restoring(); busy {
				return
			}
			for _, l := range limbs {
				if a.Limbs[l].Damage > 0 {
					a.Restore(l)
					return
				}
			}
		})
	default:
		locs, ok := salves[item]
		if !ok {
			return &UnknownCureError{Kind: string(types.CureSalve), Item: item}
		}
		order := locs[location]
		if order == nil {
			order = locs["skin"]
		}
		c.TL.ForAgent(who, func(a *agent.AgentState) { cureFirst(a, order) })
	}
	return nil
}

// salveLimbs maps a salve location to the limbs it covers, e.g. "legs".
func salveLimbs(location string) ([]agent.Limb, error) {
	switch location {
	case "arms":
		return []agent.Limb{agent.LeftArm, agent.RightArm}, nil
	case "legs":
		return []agent.Limb{agent.LeftLeg, agent.RightLeg}, nil
	case "skin", "body":
		return []agent.Limb{agent.Torso}, nil
	}
	l, err := parseLimb(location)
	if err != nil {
		return nil, err
	}
	return []agent.Limb{l}, nil
}

// randomCure removes one unknown affliction from candidates. An explicit
// Cured observation for who is trusted; otherwise every possibility is
// forked.
func (c *Context) randomCure(who string, candidates []flags.FType) {
	if confirmedCure(c.After, who) {
		return
	}
	c.TL.BranchAgent(who, func(a *agent.AgentState) []*agent.AgentState {
		return branch.Cures(a, candidates)
	})
}

func cureFirst(a *agent.AgentState, order []flags.FType) {
	for _, f := range order {
		if a.Is(f) {
			a.Set(f, false)
			return
		}
	}
}

// treeCurable is every affliction the tree can cure: everything but limb
// states and counters.
func treeCurable() []flags.FType {
	var out []flags.FType
	for f := flags.Stupidity; f < flags.HeadBroken; f++ {
		out = append(out, f)
	}
	return out
}

func mentalAfflictions() []flags.FType {
	var out []flags.FType
	for f := flags.Stupidity; f <= flags.Blackout; f++ {
		out = append(out, f)
	}
	return out
}

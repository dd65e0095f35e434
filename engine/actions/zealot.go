package actions

import (
	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/timeline"
	"github.com/nathoo/duelcore/types"
)

// Strike is a zealot melee attack aimed at a limb or side.
type Strike struct {
	base
	// Where is the limb for pummel and the side for wanekick.
	Where string
}

// NewPummel hits limb.
func NewPummel(p *Profile, caster, target string, limb agent.Limb) *Strike {
	return &Strike{
		base:  base{name: "pummel", caster: caster, target: target, uses: []agent.BType{agent.Balance}, p: p},
		Where: limb.String(),
	}
}

// NewWanekick kicks the leg on side ("left" or "right").
func NewWanekick(p *Profile, caster, target, side string) *Strike {
	return &Strike{
		base:  base{name: "wanekick", caster: caster, target: target, uses: []agent.BType{agent.Balance}, p: p},
		Where: side,
	}
}

func (s *Strike) Simulate(tl *timeline.Timeline) []types.ProbableEvent {
	return hitOrMiss(tl, types.CombatAction{Caster: s.caster, Category: "zealot", Skill: s.name, Annotation: s.Where, Target: s.target})
}

func (s *Strike) Act(tl *timeline.Timeline) (string, error) {
	if err := s.ready(tl); err != nil {
		return "", err
	}
	return s.render("limb", s.Where, "side", s.Where), nil
}

// Buff is a zealot self-buff such as zenith or pyromania.
type Buff struct {
	base
}

func NewZenith(p *Profile, caster string) *Buff {
	return &Buff{base{name: "zenith", caster: caster, uses: []agent.BType{agent.Equil}, p: p}}
}

func NewPyromania(p *Profile, caster string) *Buff {
	return &Buff{base{name: "pyromania", caster: caster, uses: []agent.BType{agent.Equil}, p: p}}
}

func (b *Buff) Simulate(*timeline.Timeline) []types.ProbableEvent {
	return certain(types.CombatAction{Caster: b.caster, Category: "zealot", Skill: b.name})
}

func (b *Buff) Act(tl *timeline.Timeline) (string, error) {
	if err := b.ready(tl); err != nil {
		return "", err
	}
	return b.render(), nil
}

// Hackles lands one random affliction on the wrath channel.
type Hackles struct {
	base
}

func NewHackles(p *Profile, caster, target string) *Hackles {
	return &Hackles{base{name: "hackles", caster: caster, target: target, uses: []agent.BType{agent.Wrath}, p: p}}
}

func (h *Hackles) Simulate(tl *timeline.Timeline) []types.ProbableEvent {
	return hitOrMiss(tl, types.CombatAction{Caster: h.caster, Category: "zealot", Skill: "hackles", Target: h.target})
}

func (h *Hackles) Act(tl *timeline.Timeline) (string, error) {
	if err := h.ready(tl); err != nil {
		return "", err
	}
	return h.render(), nil
}

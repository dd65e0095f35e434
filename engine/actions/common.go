package actions

import (
	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/timeline"
	"github.com/nathoo/duelcore/types"
)

// Shrug cures a random affliction on the class-cure channel.
type Shrug struct {
	base
}

func NewShrug(p *Profile, caster string) *Shrug {
	return &Shrug{base{name: "shrug", caster: caster, uses: []agent.BType{agent.ClassCure}, p: p}}
}

func (s *Shrug) Simulate(*timeline.Timeline) []types.ProbableEvent {
	return certain(types.CureAction{Caster: s.caster, Cure: types.CureShrug})
}

func (s *Shrug) Act(tl *timeline.Timeline) (string, error) {
	if err := s.ready(tl); err != nil {
		return "", err
	}
	return s.render(), nil
}

// Parry guards a limb. It uses no channel.
type Parry struct {
	base
	Limb agent.Limb
}

func NewParry(p *Profile, caster string, limb agent.Limb) *Parry {
	return &Parry{base: base{name: "parry", caster: caster, p: p}, Limb: limb}
}

func (pa *Parry) Simulate(*timeline.Timeline) []types.ProbableEvent {
	return certain(types.Parry{Who: pa.caster, Limb: pa.Limb.String()})
}

// Act fails with an InapplicableActionError on the balance channel when the
// caster cannot hold a parry at all.
func (pa *Parry) Act(tl *timeline.Timeline) (string, error) {
	if !tl.Primary(pa.caster).CanParry() {
		return "", &InapplicableActionError{Action: pa.name, Channel: agent.Balance}
	}
	return pa.render("limb", pa.Limb.String()), nil
}

package actions

import (
	"strconv"
	"strings"

	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/flags"
	"github.com/nathoo/duelcore/engine/timeline"
	"github.com/nathoo/duelcore/types"
)

// Doublestab stabs the target with two venoms.
type Doublestab struct {
	base
	Venoms [2]string
}

// NewDoublestab builds a doublestab from caster at target.
func NewDoublestab(p *Profile, caster, target string, v1, v2 string) *Doublestab {
	return &Doublestab{
		base:   base{name: "doublestab", caster: caster, target: target, uses: []agent.BType{agent.Balance, agent.Equil}, p: p},
		Venoms: [2]string{v1, v2},
	}
}

func (d *Doublestab) observation() types.CombatAction {
	return types.CombatAction{
		Caster: d.caster, Category: "serpent", Skill: "doublestab",
		Annotation: strings.TrimSpace(d.Venoms[0] + " " + d.Venoms[1]), Target: d.target,
	}
}

func (d *Doublestab) Simulate(tl *timeline.Timeline) []types.ProbableEvent {
	return hitOrMiss(tl, d.observation())
}

// Act also records the venoms as the caster's last_venoms hint, since the
// game does not echo them back.
func (d *Doublestab) Act(tl *timeline.Timeline) (string, error) {
	if err := d.ready(tl); err != nil {
		return "", err
	}
	tl.AddPlayerHint(d.caster, timeline.HintLastVenoms, d.observation().Annotation)
	return d.render("venom1", d.Venoms[0], "venom2", d.Venoms[1]), nil
}

// Bite delivers one venom.
type Bite struct {
	base
	Venom string
}

func NewBite(p *Profile, caster, target, venom string) *Bite {
	return &Bite{
		base:  base{name: "bite", caster: caster, target: target, uses: []agent.BType{agent.Balance, agent.Equil}, p: p},
		Venom: venom,
	}
}

func (b *Bite) Simulate(tl *timeline.Timeline) []types.ProbableEvent {
	return hitOrMiss(tl, types.CombatAction{Caster: b.caster, Category: "serpent", Skill: "bite", Annotation: b.Venom, Target: b.target})
}

func (b *Bite) Act(tl *timeline.Timeline) (string, error) {
	if err := b.ready(tl); err != nil {
		return "", err
	}
	tl.AddPlayerHint(b.caster, timeline.HintLastVenoms, b.Venom)
	return b.render("venom1", b.Venom), nil
}

// Flay strips a defense.
type Flay struct {
	base
	Defense flags.FType
}

func NewFlay(p *Profile, caster, target string, def flags.FType) *Flay {
	return &Flay{
		base:    base{name: "flay", caster: caster, target: target, uses: []agent.BType{agent.Balance, agent.Equil}, p: p},
		Defense: def,
	}
}

func (f *Flay) Simulate(tl *timeline.Timeline) []types.ProbableEvent {
	return hitOrMiss(tl, types.CombatAction{Caster: f.caster, Category: "serpent", Skill: "flay", Annotation: f.Defense.String(), Target: f.target})
}

func (f *Flay) Act(tl *timeline.Timeline) (string, error) {
	if err := f.ready(tl); err != nil {
		return "", err
	}
	return f.render("defense", f.Defense.String()), nil
}

// Hypnosis covers hypnotise, suggest, seal and snap.
type Hypnosis struct {
	base
	Arg string
}

func newHypnosis(p *Profile, skill, caster, target, arg string) *Hypnosis {
	return &Hypnosis{
		base: base{name: skill, caster: caster, target: target, uses: []agent.BType{agent.Equil}, p: p},
		Arg:  arg,
	}
}

// NewHypnotise arms the target's hypnosis.
func NewHypnotise(p *Profile, caster, target string) *Hypnosis {
	return newHypnosis(p, "hypnotise", caster, target, "")
}

// NewSuggest plants aff as a suggestion.
func NewSuggest(p *Profile, caster, target string, aff flags.FType) *Hypnosis {
	return newHypnosis(p, "suggest", caster, target, aff.String())
}

// NewSeal seals with a delay in whole seconds.
func NewSeal(p *Profile, caster, target string, seconds int) *Hypnosis {
	return newHypnosis(p, "seal", caster, target, strconv.Itoa(seconds))
}

// NewSnap fires a sealed hypnosis.
func NewSnap(p *Profile, caster, target string) *Hypnosis {
	return newHypnosis(p, "snap", caster, target, "")
}

func (h *Hypnosis) Simulate(*timeline.Timeline) []types.ProbableEvent {
	return certain(types.CombatAction{Caster: h.caster, Category: "hypnosis", Skill: h.name, Annotation: h.Arg, Target: h.target})
}

func (h *Hypnosis) Act(tl *timeline.Timeline) (string, error) {
	if err := h.ready(tl); err != nil {
		return "", err
	}
	return h.render("suggestion", h.Arg, "seconds", h.Arg), nil
}

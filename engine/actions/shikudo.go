package actions

import (
	"strings"

	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/combo"
	"github.com/nathoo/duelcore/engine/timeline"
	"github.com/nathoo/duelcore/types"
)

// Kata sends a staff combo as one command.
type Kata struct {
	base
	Combo combo.Combo
	// Side is used by arm and leg attacks.
	Side  string
	Venom string
}

func NewKata(p *Profile, caster, target string, c combo.Combo, side, venom string) *Kata {
	return &Kata{
		base:  base{name: "kata", caster: caster, target: target, uses: []agent.BType{agent.Balance}, p: p},
		Combo: c,
		Side:  side,
		Venom: venom,
	}
}

// observations lists one combat action per attack, in order.
func (k *Kata) observations() []types.Observation {
	out := make([]types.Observation, 0, k.Combo.Len())
	for _, a := range k.Combo.Attacks {
		var ann []string
		if a.Limb == "arm" || a.Limb == "leg" {
			ann = append(ann, k.Side)
		}
		if a.Venom && k.Venom != "" {
			ann = append(ann, k.Venom)
		}
		out = append(out, types.CombatAction{
			Caster: k.caster, Category: "shikudo", Skill: a.Name,
			Annotation: strings.Join(ann, " "), Target: k.target,
		})
	}
	return out
}

// Simulate predicts either the full combo landing or its opener being
// dodged with the rest connecting.
func (k *Kata) Simulate(tl *timeline.Timeline) []types.ProbableEvent {
	obs := k.observations()
	if len(obs) == 0 {
		return nil
	}
	p := dodgeChance(tl, k.target)
	hit := types.ProbableEvent{Weight: 1 - p, Observations: obs}
	if p == 0 {
		return []types.ProbableEvent{hit}
	}
	missed := make([]types.Observation, 0, len(obs)+1)
	missed = append(missed, obs[0], types.Dodge{Who: k.target, Type: types.DodgeDodge})
	missed = append(missed, obs[1:]...)
	return []types.ProbableEvent{hit, {Weight: p, Observations: missed}}
}

func (k *Kata) Act(tl *timeline.Timeline) (string, error) {
	if err := k.ready(tl); err != nil {
		return "", err
	}
	if k.Combo.HasVenom() && k.Venom != "" {
		tl.AddPlayerHint(k.caster, timeline.HintLastVenoms, k.Venom)
	}
	venom := ""
	if k.Combo.HasVenom() {
		venom = k.Venom
	}
	return k.render("attacks", strings.Join(k.Combo.Names(), " "), "side", k.Side, "venom1", venom), nil
}

// focusSide picks the side of group ("arm" or "leg") already carrying more
// damage, left on a tie.
func focusSide(t *agent.AgentState, group string) string {
	left, right := agent.LeftLeg, agent.RightLeg
	if group == "arm" {
		left, right = agent.LeftArm, agent.RightArm
	}
	if t.Limbs[right].Damage > t.Limbs[left].Damage {
		return "right"
	}
	return "left"
}

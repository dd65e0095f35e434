package interpret

import (
	"github.com/sirupsen/logrus"

	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/timeline"
	"github.com/nathoo/duelcore/types"
)

// limbHit is an expected limb damage from an attack.
type limbHit struct {
	Limb     agent.Limb
	Amount   int
	MayBreak bool
}

// applyLimbDamage adds an attack's expected damage to who's limb unless the
// slice reports the value explicitly. Threshold crossings are checked
// against the qualifiers that follow; a disagreement is logged and the
// threshold wins.
func (c *Context) applyLimbDamage(who string, hit limbHit) {
	if hit.Limb >= agent.NumLimbs {
		return
	}
	c.TL.AddPlayerHint(who, timeline.HintLastAttack, hit.Limb.String())
	if explicitLimbDamage(c.After, who, hit.Limb) {
		return
	}
	confirmDamaged := limbConfirmed(c.After, who, hit.Limb, types.LimbDamaged)
	confirmMangled := limbConfirmed(c.After, who, hit.Limb, types.LimbMangled)

	c.TL.ForAgent(who, func(a *agent.AgentState) {
		amount := hit.Amount
		if !hit.MayBreak {
			if room := agent.DamagedThreshold - 1 - a.Limbs[hit.Limb].Damage; amount > room {
				amount = max(room, 0)
			}
		}
		damaged, mangled := a.AddLimbDamage(hit.Limb, amount)
		if damaged != confirmDamaged || mangled != confirmMangled {
			c.Log.WithFields(logrus.Fields{
				"agent":           who,
				"limb":            hit.Limb.String(),
				"damage":          a.Limbs[hit.Limb].Damage,
				"crossed_damaged": damaged,
				"confirm_damaged": confirmDamaged,
				"crossed_mangled": mangled,
				"confirm_mangled": confirmMangled,
			}).Warn("limb qualifier disagrees with tracked damage")
		}
	})
}

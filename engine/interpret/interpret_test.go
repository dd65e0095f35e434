package interpret

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/combo"
	"github.com/nathoo/duelcore/engine/flags"
	"github.com/nathoo/duelcore/engine/timeline"
	"github.com/nathoo/duelcore/types"
)

func setup() (*timeline.Timeline, *Interpreter) {
	return timeline.New(nil), New(nil)
}

func apply(tl *timeline.Timeline, in *Interpreter, obs ...types.Observation) []error {
	return tl.ApplyTimeSlice(&types.TimeSlice{Me: "me", Time: tl.Time, Observations: obs}, in)
}

func stab(venoms string) types.CombatAction {
	return types.CombatAction{Caster: "me", Category: "serpent", Skill: "doublestab", Annotation: venoms, Target: "ana"}
}

func TestDoublestab_BothLand(t *testing.T) {
	tl, in := setup()
	ana := tl.Primary("ana")
	require.False(t, ana.Is(flags.Paralysis))
	require.False(t, ana.Is(flags.Asthma))

	errs := apply(tl, in, stab("curare kalmia"))
	require.Empty(t, errs)

	ana = tl.Primary("ana")
	assert.True(t, ana.Is(flags.Paralysis))
	assert.True(t, ana.Is(flags.Asthma))
	assert.Equal(t, types.Time(DoublestabBalance), tl.Primary("me").Balances.Remaining(agent.Balance))
	assert.Equal(t, agent.ClassSerpent, tl.Primary("me").ClassOf())
}

func TestDoublestab_DodgeWithholdsSecond(t *testing.T) {
	tl, in := setup()
	errs := apply(tl, in,
		stab("curare kalmia"),
		types.Dodge{Who: "ana", Type: types.DodgeDodge},
	)
	require.Empty(t, errs)

	ana := tl.Primary("ana")
	assert.True(t, ana.Is(flags.Paralysis))
	assert.False(t, ana.Is(flags.Asthma))
	assert.False(t, ana.Dodge.Ready())
}

func TestDoublestab_QualifierScopedToAction(t *testing.T) {
	tl, in := setup()
	apply(tl, in,
		stab("curare kalmia"),
		types.CombatAction{Caster: "bob", Category: "zealot", Skill: "zenith"},
		types.Dodge{Who: "ana", Type: types.DodgeDodge},
	)
	ana := tl.Primary("ana")
	assert.True(t, ana.Is(flags.Paralysis))
	assert.True(t, ana.Is(flags.Asthma), "the dodge belongs to the later action")
}

func TestDoublestab_ReboundWithholdsBoth(t *testing.T) {
	tl, in := setup()
	apply(tl, in,
		stab("curare kalmia"),
		types.Dodge{Who: "ana", Type: types.DodgeRebounded},
	)
	ana := tl.Primary("ana")
	assert.False(t, ana.Is(flags.Paralysis))
	assert.False(t, ana.Is(flags.Asthma))
	assert.True(t, ana.Is(flags.Rebounding))
}

func TestDoublestab_HintFallback(t *testing.T) {
	tl, in := setup()
	tl.AddPlayerHint("me", timeline.HintLastVenoms, "xentio gecko")
	apply(tl, in, stab(""))
	ana := tl.Primary("ana")
	assert.True(t, ana.Is(flags.Clumsiness))
	assert.True(t, ana.Is(flags.Slickness))
}

func TestApplyOrInferBalance_ExplicitWins(t *testing.T) {
	tl, in := setup()
	apply(tl, in,
		stab("curare"),
		types.Balance{Who: "me", Channel: "balance", Duration: 310},
	)
	assert.Equal(t, types.Time(310), tl.Primary("me").Balances.Remaining(agent.Balance))
}

func TestApplyOrInferBalance_ScopedToAction(t *testing.T) {
	tl, _ := setup()
	first, second := stab("curare"), stab("kalmia")
	c := &Context{
		Action: first,
		After:  []types.Observation{first, second, types.Balance{Who: "me", Channel: "balance", Duration: 310}},
		TL:     tl,
	}
	c.applyOrInferBalance("me", agent.Balance, DoublestabBalance)
	assert.Equal(t, types.Time(DoublestabBalance), tl.Primary("me").Balances.Remaining(agent.Balance))
}

func TestRejectedActionLeavesCasterUntouched(t *testing.T) {
	tl, in := setup()
	errs := apply(tl, in,
		stab("curare bogus"),
		types.CombatAction{Caster: "bob", Category: "zealot", Skill: "pummel", Annotation: "tail", Target: "ana"},
		types.CombatAction{Caster: "kai", Category: "shikudo", Skill: "sweep", Annotation: "left bogus", Target: "ana"},
	)
	require.Len(t, errs, 3)
	var venErr *UnknownVenomError
	assert.True(t, errors.As(errs[0], &venErr))

	assert.Zero(t, tl.Primary("me").Balances.Remaining(agent.Balance))
	assert.Zero(t, tl.Primary("bob").Balances.Remaining(agent.Balance))
	kai := tl.Primary("kai")
	assert.Zero(t, kai.Balances.Remaining(agent.Balance))
	if sh, ok := kai.Class.(agent.Shikudo); ok {
		assert.Equal(t, combo.Tykonos, sh.Form)
		assert.Zero(t, sh.KataCount)
	}
	assert.False(t, tl.Primary("ana").Is(flags.Paralysis))
	assert.False(t, tl.Primary("ana").Is(flags.Prone))
}

func TestLimbQualifier_UnrelatedAttackDoesNotSuppress(t *testing.T) {
	tl, in := setup()
	apply(tl, in,
		types.CombatAction{Caster: "bob", Category: "hypnosis", Skill: "snap", Target: "carl"},
		types.LimbQualifier{Who: "ana", Limb: "left leg", Level: types.LimbDamaged},
	)
	assert.Equal(t, agent.DamagedThreshold, tl.Primary("ana").Limbs[agent.LeftLeg].Damage)
}

func TestUnknownNamesAreReportedAndSkipped(t *testing.T) {
	log, hook := test.NewNullLogger()
	tl := timeline.New(log)
	in := New(log)

	errs := apply(tl, in,
		types.Afflicted{Who: "ana", Affliction: "spontaneous_combustion"},
		stab("snakeoil"),
		types.Parry{Who: "ana", Limb: "tail"},
		types.Afflicted{Who: "ana", Affliction: "asthma"},
	)
	require.Len(t, errs, 3)

	var affErr *UnknownAfflictionError
	assert.True(t, errors.As(errs[0], &affErr))
	assert.Equal(t, "spontaneous_combustion", affErr.Name)
	var venErr *UnknownVenomError
	assert.True(t, errors.As(errs[1], &venErr))
	var limbErr *UnknownLimbError
	assert.True(t, errors.As(errs[2], &limbErr))

	assert.True(t, tl.Primary("ana").Is(flags.Asthma), "processing continued")
	warns := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warns++
		}
	}
	assert.Equal(t, 3, warns)
}

func TestRelapse_Concrete(t *testing.T) {
	tl, in := setup()
	tl.ForAgent("ana", func(a *agent.AgentState) {
		a.Relapses.Push("curare", 0)
		a.Relapses.Push("curare", 0)
		a.Wait(3 * types.Second)
		a.Relapses.Push("curare", 300)
	})

	apply(tl, in, types.Relapse{Who: "ana"}, types.Relapse{Who: "ana"})
	bs := tl.Branches("ana")
	require.Len(t, bs, 1)
	assert.True(t, bs[0].Is(flags.Paralysis))
	assert.Equal(t, 1, bs[0].Relapses.Len())
}

func TestRelapse_UncertainForks(t *testing.T) {
	tl, in := setup()
	tl.ForAgent("ana", func(a *agent.AgentState) {
		a.Relapses.Push("curare", 0)
		a.Relapses.Push("curare", 100)
		a.Wait(3 * types.Second)
	})

	apply(tl, in, types.Relapse{Who: "ana"})
	bs := tl.Branches("ana")
	require.Len(t, bs, 2)
	for _, b := range bs {
		assert.True(t, b.Is(flags.Paralysis))
		assert.Equal(t, 1, b.Relapses.Len())
	}
	assert.NotEqual(t, bs[0].Relapses.Entries[0].Origin, bs[1].Relapses.Entries[0].Origin)
}

func TestRelapse_NoneStrikes(t *testing.T) {
	tl, in := setup()
	apply(tl, in, types.Relapse{Who: "ana"})
	assert.Equal(t, 1, tl.Primary("ana").Strikes)
}

func TestRelapsingTargetQueuesVenoms(t *testing.T) {
	tl, in := setup()
	tl.UpdateTime(500)
	tl.ForAgent("ana", func(a *agent.AgentState) { a.Set(flags.Relapsing, true) })
	apply(tl, in, stab("curare kalmia"))
	entries := tl.Primary("ana").Relapses.Entries
	require.Len(t, entries, 2)
	assert.Equal(t, "curare", entries[0].Venom)
	assert.Equal(t, types.Time(500), entries[0].Origin)
}

func TestSpecialVenoms(t *testing.T) {
	tl, in := setup()
	tl.ForAgent("ana", func(a *agent.AgentState) {
		a.Set(flags.Insomnia, true)
		a.Set(flags.Deafness, true)
	})
	apply(tl, in, stab("delphinium prefarar"))
	ana := tl.Primary("ana")
	assert.False(t, ana.Is(flags.Insomnia))
	assert.False(t, ana.Is(flags.Asleep))
	assert.False(t, ana.Is(flags.Deafness))
	assert.False(t, ana.Is(flags.Sensitivity))

	apply(tl, in, stab("delphinium camus"))
	ana = tl.Primary("ana")
	assert.True(t, ana.Is(flags.Asleep))
	assert.Equal(t, agent.DefaultStats.Health-1000, ana.Stats.Health)
}

func TestEpteth_ForksArms(t *testing.T) {
	tl, in := setup()
	apply(tl, in, types.CombatAction{Caster: "me", Category: "serpent", Skill: "bite", Annotation: "epteth", Target: "ana"})
	bs := tl.Branches("ana")
	require.Len(t, bs, 2)
	assert.True(t, bs[0].Guessed(flags.LeftArmBroken))
	assert.True(t, bs[1].Guessed(flags.RightArmBroken))
}

func TestEpteth_ConfirmedBreakDoesNotFork(t *testing.T) {
	tl, in := setup()
	apply(tl, in,
		types.CombatAction{Caster: "me", Category: "serpent", Skill: "bite", Annotation: "epteth", Target: "ana"},
		types.Afflicted{Who: "ana", Affliction: "left_arm_broken"},
	)
	bs := tl.Branches("ana")
	require.Len(t, bs, 1)
	assert.True(t, bs[0].Is(flags.LeftArmBroken))
	assert.False(t, bs[0].Is(flags.RightArmBroken))
	assert.Empty(t, bs[0].Guesses())
}

func TestRelapse_StabbedVenomsLeaveQueue(t *testing.T) {
	tl, in := setup()
	tl.ForAgent("ana", func(a *agent.AgentState) { a.Set(flags.Relapsing, true) })
	apply(tl, in, stab("curare"))
	require.Equal(t, 1, tl.Primary("ana").Relapses.Len())

	tl.UpdateTime(tl.Time + 3*types.Second)
	apply(tl, in, types.Relapse{Who: "ana"})
	bs := tl.Branches("ana")
	require.Len(t, bs, 1)
	assert.True(t, bs[0].Is(flags.Paralysis))
	assert.Equal(t, 0, bs[0].Relapses.Len(), "a relapse is not queued again")
}

func TestRelapse_TwoStabsForkOnOneRelapse(t *testing.T) {
	tl, in := setup()
	tl.ForAgent("ana", func(a *agent.AgentState) { a.Set(flags.Relapsing, true) })
	apply(tl, in, stab("curare"))
	tl.UpdateTime(100)
	apply(tl, in, stab("curare"))

	tl.UpdateTime(400)
	apply(tl, in, types.Relapse{Who: "ana"})
	bs := tl.Branches("ana")
	require.Len(t, bs, 2)
	for _, b := range bs {
		assert.Equal(t, 1, b.Relapses.Len())
	}
	assert.NotEqual(t, bs[0].Relapses.Entries[0].Origin, bs[1].Relapses.Entries[0].Origin)
}

func TestHypnosisThroughObservations(t *testing.T) {
	tl, in := setup()
	hyp := func(skill, ann string) types.CombatAction {
		return types.CombatAction{Caster: "me", Category: "hypnosis", Skill: skill, Annotation: ann, Target: "ana"}
	}
	apply(tl, in, hyp("hypnotise", ""))
	apply(tl, in, hyp("suggest", "paranoia"))
	apply(tl, in, hyp("seal", "2"))
	assert.Equal(t, agent.HypnosisSealed, tl.Primary("ana").Hypnosis.State)

	tl.UpdateTime(tl.Time + 2*types.Second)
	assert.Equal(t, agent.HypnosisActive, tl.Primary("ana").Hypnosis.State)

	apply(tl, in, types.HypnoticTrigger{Who: "ana"})
	assert.True(t, tl.Primary("ana").Is(flags.Paranoia))
	assert.Equal(t, agent.HypnosisNone, tl.Primary("ana").Hypnosis.State)
}

func TestPummel_Limbs(t *testing.T) {
	log, hook := test.NewNullLogger()
	tl := timeline.New(log)
	in := New(log)
	pummel := types.CombatAction{Caster: "bob", Category: "zealot", Skill: "pummel", Annotation: "left leg", Target: "ana"}

	apply(tl, in, pummel)
	assert.Equal(t, PummelDamage, tl.Primary("ana").Limbs[agent.LeftLeg].Damage)
	assert.Equal(t, agent.ClassZealot, tl.Primary("bob").ClassOf())

	hook.Reset()
	apply(tl, in, pummel, types.LimbQualifier{Who: "ana", Limb: "left leg", Level: types.LimbDamaged})
	ana := tl.Primary("ana")
	assert.Equal(t, 2*PummelDamage, ana.Limbs[agent.LeftLeg].Damage)
	assert.True(t, ana.Is(flags.LeftLegDamaged))
	assert.Empty(t, hook.AllEntries(), "confirmed crossing is silent")

	// An explicit value overrides inference.
	apply(tl, in, pummel, types.LimbDamage{Who: "ana", Limb: "left leg", Damage: 1234})
	assert.Equal(t, 1234, tl.Primary("ana").Limbs[agent.LeftLeg].Damage)

	// Crossing without a qualifier is logged but trusted.
	hook.Reset()
	apply(tl, in, pummel, pummel)
	assert.True(t, tl.Primary("ana").Is(flags.LeftLegDamaged))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestZenithScalesDamage(t *testing.T) {
	tl, in := setup()
	apply(tl, in,
		types.CombatAction{Caster: "bob", Category: "zealot", Skill: "zenith"},
		types.CombatAction{Caster: "bob", Category: "zealot", Skill: "pummel", Annotation: "torso", Target: "ana"},
	)
	assert.Equal(t, PummelDamage*ZenithBonus/100, tl.Primary("ana").Limbs[agent.Torso].Damage)
}

func TestHackles_RandomAffliction(t *testing.T) {
	tl, in := setup()
	h := types.CombatAction{Caster: "bob", Category: "zealot", Skill: "hackles", Target: "ana"}

	apply(tl, in, h, types.Afflicted{Who: "ana", Affliction: "weariness"})
	require.Len(t, tl.Branches("ana"), 1)
	assert.True(t, tl.Primary("ana").Is(flags.Weariness))
	assert.Empty(t, tl.Primary("ana").Guesses())

	apply(tl, in, h)
	bs := tl.Branches("ana")
	require.Len(t, bs, len(hacklesAfflictions)-1)
	for _, b := range bs {
		assert.Len(t, b.Guesses(), 1)
	}
}

func TestCures(t *testing.T) {
	tl, in := setup()
	tl.ForAgent("ana", func(a *agent.AgentState) {
		a.Set(flags.Asthma, true)
		a.Set(flags.Clumsiness, true)
		a.Set(flags.LeftLegBroken, true)
	})

	apply(tl, in, types.CureAction{Caster: "ana", Cure: types.CurePill, Item: "kelp"})
	ana := tl.Primary("ana")
	assert.False(t, ana.Is(flags.Asthma))
	assert.True(t, ana.Is(flags.Clumsiness))
	assert.Equal(t, types.Time(160), ana.Balances.Remaining(agent.Pill))

	apply(tl, in, types.CureAction{Caster: "ana", Cure: types.CureSalve, Item: "mending", Location: "legs"})
	assert.False(t, tl.Primary("ana").Is(flags.LeftLegBroken))

	errs := apply(tl, in, types.CureAction{Caster: "ana", Cure: types.CurePill, Item: "candy"})
	require.Len(t, errs, 1)
	var cureErr *UnknownCureError
	assert.True(t, errors.As(errs[0], &cureErr))
}

func TestCure_BlockerIsEvidence(t *testing.T) {
	tl, in := setup()
	tl.ForAgent("ana", func(a *agent.AgentState) { a.Guess(flags.Anorexia) })
	apply(tl, in, types.CureAction{Caster: "ana", Cure: types.CurePill, Item: "kelp"})
	ana := tl.Primary("ana")
	assert.False(t, ana.Is(flags.Anorexia))
	assert.Equal(t, 1, ana.Strikes)
}

func TestTreeCure(t *testing.T) {
	tl, in := setup()
	tl.ForAgent("ana", func(a *agent.AgentState) {
		a.Set(flags.Asthma, true)
		a.Set(flags.Stupidity, true)
	})

	apply(tl, in,
		types.CureAction{Caster: "ana", Cure: types.CureTree},
		types.Cured{Who: "ana", Affliction: "asthma"},
	)
	require.Len(t, tl.Branches("ana"), 1)
	assert.False(t, tl.Primary("ana").Is(flags.Asthma))
	assert.True(t, tl.Primary("ana").Is(flags.Stupidity))

	tl.ForAgent("ana", func(a *agent.AgentState) { a.Set(flags.Asthma, true) })
	apply(tl, in, types.CureAction{Caster: "ana", Cure: types.CureTree})
	bs := tl.Branches("ana")
	require.Len(t, bs, 2)
	assert.NotEqual(t, bs[0].Is(flags.Asthma), bs[1].Is(flags.Asthma))
	assert.Equal(t, types.Time(1400), bs[0].Balances.Remaining(agent.Tree))
}

func TestRestorationSalve(t *testing.T) {
	tl, in := setup()
	tl.ForAgent("ana", func(a *agent.AgentState) { a.SetLimbDamage(agent.RightLeg, 5000) })
	apply(tl, in, types.CureAction{Caster: "ana", Cure: types.CureSalve, Item: "restoration", Location: "legs"})
	l, ok := tl.Primary("ana").Restoring()
	require.True(t, ok)
	assert.Equal(t, agent.RightLeg, l)

	tl.UpdateTime(tl.Time + agent.RestoreTime)
	assert.Equal(t, 2000, tl.Primary("ana").Limbs[agent.RightLeg].Damage)
}

func TestShikudoKata(t *testing.T) {
	tl, in := setup()
	k := func(skill, ann string) types.CombatAction {
		return types.CombatAction{Caster: "kai", Category: "shikudo", Skill: skill, Annotation: ann, Target: "ana"}
	}
	apply(tl, in, k("sweep", "left"))
	kai := tl.Primary("kai")
	sh, ok := kai.Class.(agent.Shikudo)
	require.True(t, ok)
	assert.Equal(t, combo.Rain, sh.Form)
	assert.Equal(t, 1, sh.KataCount)
	assert.True(t, tl.Primary("ana").Is(flags.Prone))
	assert.Equal(t, 500, tl.Primary("ana").Limbs[agent.LeftLeg].Damage)

	sweep, _ := combo.Lookup("sweep")
	assert.Equal(t, combo.CostFrom(sweep, combo.Tykonos), kai.Balances.Remaining(agent.Balance))

	apply(tl, in, k("needle", "kalmia"))
	sh = tl.Primary("kai").Class.(agent.Shikudo)
	assert.Equal(t, combo.Maelstrom, sh.Form)
	assert.True(t, tl.Primary("ana").Is(flags.Asthma))

	apply(tl, in, k("transition", "oak"))
	assert.Equal(t, combo.Oak, tl.Primary("kai").Class.(agent.Shikudo).Form)
}

func TestDeathResets(t *testing.T) {
	tl, in := setup()
	tl.ForAgent("ana", func(a *agent.AgentState) { a.Set(flags.Asthma, true) })
	apply(tl, in, types.Death{Who: "ana"})
	assert.False(t, tl.Primary("ana").Is(flags.Asthma))
}

func TestGenericObservations(t *testing.T) {
	tl, in := setup()
	errs := apply(tl, in,
		types.DefenseGained{Who: "ana", Defense: "rebounding"},
		types.Balance{Who: "ana", Channel: "equilibrium", Duration: 400},
		types.WieldChange{Who: "ana", Left: "dirk", Right: "whip"},
		types.Parry{Who: "ana", Limb: "torso"},
		types.Channel{Who: "ana", Name: "bloodboil", Duration: 300},
		types.Afflicted{Who: "ana", Affliction: "bleeding"},
		types.Afflicted{Who: "ana", Affliction: "bleeding"},
	)
	require.Empty(t, errs)
	ana := tl.Primary("ana")
	assert.True(t, ana.Is(flags.Rebounding))
	assert.Equal(t, types.Time(400), ana.Balances.Remaining(agent.Equil))
	assert.Equal(t, agent.DualWield, ana.Wield.Kind)
	assert.Equal(t, agent.Torso, ana.Parrying)
	assert.True(t, ana.Channel.Active())
	assert.Equal(t, uint8(2), ana.Flags.Count(flags.Bleeding))

	apply(tl, in,
		types.DefenseStripped{Who: "ana", Defense: "rebounding"},
		types.BalanceRecovered{Who: "ana", Channel: "equil"},
		types.Parry{Who: "ana"},
		types.Cured{Who: "ana", Affliction: "asthma"},
	)
	ana = tl.Primary("ana")
	assert.False(t, ana.Is(flags.Rebounding))
	assert.True(t, ana.Balances.Ready(agent.Equil))
	assert.Equal(t, agent.NoLimb, ana.Parrying)
	assert.Equal(t, 1, ana.Strikes, "curing something absent is evidence against the branch")
}

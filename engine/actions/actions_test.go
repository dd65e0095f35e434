package actions

import (
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/combo"
	"github.com/nathoo/duelcore/engine/flags"
	"github.com/nathoo/duelcore/engine/timeline"
	"github.com/nathoo/duelcore/engine/venoms"
	"github.com/nathoo/duelcore/types"
)

func setup(t *testing.T) (*timeline.Timeline, *Assembler) {
	t.Helper()
	log, _ := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return timeline.New(log), NewAssembler(nil, combo.SearchOptions{}, log)
}

func aggro() Strategy {
	return Strategy{Name: venoms.DefaultTag, Venoms: venoms.Aggro}
}

func TestPlan_SerpentQueuesEquilBehindDoublestab(t *testing.T) {
	tl, asm := setup(t)

	plan := asm.Plan(tl, "me", "foe", aggro())

	assert.Equal(t, []string{"dstab foe xentio vernalius"}, plan.Commands)
	assert.Equal(t, []string{"queue add eqbal hypnotise foe"}, plan.Queued)
	assert.Equal(t, "dstab foe xentio vernalius/queue add eqbal hypnotise foe", plan.String())
	assert.Empty(t, plan.Skipped)

	hint, ok := tl.GetPlayerHint("me", timeline.HintLastVenoms)
	require.True(t, ok)
	assert.Equal(t, "xentio vernalius", hint)
}

func TestPlan_InapplicableChannelIsOmitted(t *testing.T) {
	tl, asm := setup(t)
	tl.Primary("me").Balances.Use(agent.Balance, 200)

	plan := asm.Plan(tl, "me", "foe", aggro())

	assert.Equal(t, "hypnotise foe", plan.String())
	assert.NotContains(t, plan.String(), "dstab")
	require.Len(t, plan.Skipped, 1)
	var ia *InapplicableActionError
	require.True(t, errors.As(plan.Skipped[0], &ia))
	assert.Equal(t, "doublestab", ia.Action)
	assert.Equal(t, agent.Balance, ia.Channel)
	assert.Equal(t, types.Time(200), ia.Remaining)

	_, ok := tl.GetPlayerHint("me", timeline.HintLastVenoms)
	assert.False(t, ok, "an action that did not act leaves no hint")
}

func TestAct_InapplicableError(t *testing.T) {
	tl, _ := setup(t)
	tl.Primary("me").Balances.Use(agent.Equil, 150)

	_, err := NewHypnotise(DefaultProfile(), "me", "foe").Act(tl)
	require.Error(t, err)
	assert.Equal(t, "hypnotise: equil not ready for 1.50s", err.Error())
}

func TestPlan_ParryIsPrepended(t *testing.T) {
	tl, asm := setup(t)
	tl.AddPlayerHint("me", timeline.HintLastAttack, "left leg")

	plan := asm.Plan(tl, "me", "foe", aggro())
	assert.True(t, strings.HasPrefix(plan.String(), "parry left leg/dstab foe"), plan.String())
	assert.Equal(t, "parry", plan.Actions[0].Name())

	tl.Primary("me").Parrying = agent.LeftLeg
	plan = asm.Plan(tl, "me", "foe", aggro())
	assert.Empty(t, plan.Parry, "already guarding the predicted limb")

	tl.Primary("me").Parrying = agent.Head
	tl.Primary("me").Set(flags.Prone, true)
	plan = asm.Plan(tl, "me", "foe", aggro())
	assert.Empty(t, plan.Parry, "cannot parry while prone")
}

func TestPlan_FlayBeforeStabbingThroughRebounding(t *testing.T) {
	tl, asm := setup(t)
	tl.Primary("foe").Set(flags.Rebounding, true)

	plan := asm.Plan(tl, "me", "foe", aggro())
	assert.Equal(t, []string{"flay foe rebounding"}, plan.Commands)
}

func TestPlan_HypnosisMachine(t *testing.T) {
	tl, asm := setup(t)
	tl.Primary("me").Balances.Use(agent.Balance, 100)
	foe := tl.Primary("foe")

	foe.Hypnosis.Hypnotize()
	assert.Equal(t, "suggest foe stupidity", asm.Plan(tl, "me", "foe", aggro()).String())

	foe.Hypnosis.Suggest("stupidity")
	assert.Equal(t, "suggest foe paralysis", asm.Plan(tl, "me", "foe", aggro()).String())

	foe.Hypnosis.Suggest("paralysis")
	assert.Equal(t, "seal foe 4", asm.Plan(tl, "me", "foe", aggro()).String())

	foe.Hypnosis.Seal(4 * types.Second)
	assert.True(t, asm.Plan(tl, "me", "foe", aggro()).Empty())
}

func TestPlan_ShrugOnTertiary(t *testing.T) {
	tl, asm := setup(t)
	me := tl.Primary("me")
	for _, aff := range []flags.FType{flags.Stupidity, flags.Paralysis, flags.Asthma} {
		me.Set(aff, true)
	}

	plan := asm.Plan(tl, "me", "foe", aggro())
	require.Len(t, plan.Commands, 2)
	assert.Equal(t, "shrugging", plan.Commands[1])

	me.Balances.Use(agent.ClassCure, 2000)
	plan = asm.Plan(tl, "me", "foe", aggro())
	assert.Len(t, plan.Commands, 1)
}

func TestPlan_Zealot(t *testing.T) {
	tl, asm := setup(t)
	tl.Primary("me").DetectClass(agent.ClassZealot)

	plan := asm.Plan(tl, "me", "foe", aggro())
	assert.Equal(t, "wanekick foe left/zenith/hackles foe", plan.String())

	foe := tl.Primary("foe")
	foe.Set(flags.Prone, true)
	foe.SetLimbDamage(agent.RightArm, 2000)
	me := tl.Primary("me")
	me.Class = agent.Zealot{Zenith: agent.ZenithDuration}

	plan = asm.Plan(tl, "me", "foe", aggro())
	assert.Equal(t, "pummel foe right arm/pyromania/hackles foe", plan.String())

	me.Balances.Use(agent.Wrath, 100)
	plan = asm.Plan(tl, "me", "foe", aggro())
	assert.NotContains(t, plan.String(), "hackles")
}

func TestPummelTarget_SkipsParriedAndBroken(t *testing.T) {
	foe := agent.New()
	assert.Equal(t, agent.Head, pummelTarget(foe))

	foe.SetLimbDamage(agent.Torso, 5000)
	foe.Parrying = agent.Torso
	foe.SetLimbDamage(agent.LeftLeg, 1000)
	assert.Equal(t, agent.LeftLeg, pummelTarget(foe))
}

func TestPlan_ShikudoKata(t *testing.T) {
	tl, asm := setup(t)
	tl.Primary("me").DetectClass(agent.ClassShikudo)

	plan := asm.Plan(tl, "me", "foe", aggro())
	require.Len(t, plan.Commands, 1)
	assert.True(t, strings.HasPrefix(plan.Commands[0], "kata foe "), plan.Commands[0])
	require.Len(t, plan.Actions, 1)

	k, ok := plan.Actions[0].(*Kata)
	require.True(t, ok)
	assert.GreaterOrEqual(t, k.Combo.Len(), 2)
	for _, a := range k.Combo.Attacks {
		assert.NotEqual(t, "shatter", a.Name, "nothing to shatter")
	}
}

func TestKata_Simulate(t *testing.T) {
	tl, _ := setup(t)
	attacks := combo.Available("sweep", "needle")
	c := combo.Combo{Attacks: attacks}
	k := NewKata(DefaultProfile(), "me", "foe", c, "right", "curare")

	events := k.Simulate(tl)
	require.Len(t, events, 2)
	assert.InDelta(t, 1.0, events[0].Weight+events[1].Weight, 1e-9)

	hit := events[0].Observations
	require.Len(t, hit, 2)
	assert.Equal(t, types.CombatAction{Caster: "me", Category: "shikudo", Skill: "sweep", Annotation: "right", Target: "foe"}, hit[0])
	assert.Equal(t, types.CombatAction{Caster: "me", Category: "shikudo", Skill: "needle", Annotation: "curare", Target: "foe"}, hit[1])

	missed := events[1].Observations
	require.Len(t, missed, 3)
	assert.Equal(t, types.Dodge{Who: "foe", Type: types.DodgeDodge}, missed[1])

	tl.Primary("foe").Dodge.Dodged()
	assert.Len(t, k.Simulate(tl), 1)
}

func TestSimulate_Doublestab(t *testing.T) {
	tl, _ := setup(t)
	d := NewDoublestab(DefaultProfile(), "me", "foe", "curare", "kalmia")

	events := d.Simulate(tl)
	require.Len(t, events, 2)
	assert.InDelta(t, 0.75, events[0].Weight, 1e-9)
	assert.Equal(t, types.CombatAction{Caster: "me", Category: "serpent", Skill: "doublestab", Annotation: "curare kalmia", Target: "foe"}, events[0].Observations[0])
}

func TestProfile_Render(t *testing.T) {
	p := DefaultProfile()
	assert.Equal(t, "bite foe curare", p.Render("bite", "target", "foe", "venom1", "curare"))
	assert.Equal(t, "kata foe sweep kuro", p.Render("kata", "target", "foe", "attacks", "sweep kuro", "venom1", ""))
	assert.Equal(t, "unknown foe x", p.Render("unknown", "target", "foe", "arg", "x", "empty", ""))
}

package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/duelcore/engine/combo"
	"github.com/nathoo/duelcore/engine/flags"
	"github.com/nathoo/duelcore/types"
)

func TestNew_Defaults(t *testing.T) {
	a := New()
	assert.Equal(t, DefaultStats, a.Stats)
	assert.Equal(t, NoLimb, a.Parrying)
	assert.Equal(t, ClassUnknown, a.ClassOf())
	assert.Empty(t, a.Flags.Afflictions())
	for b := BType(0); b < NumBalances; b++ {
		assert.True(t, a.Balances.Ready(b), b.String())
	}
}

func TestClone_Independent(t *testing.T) {
	a := New()
	a.Set(flags.Asthma, true)
	a.Hypnosis.Hypnotize()
	a.Hypnosis.Suggest("bleed")
	a.Relapses.Push("curare", 100)
	a.Limbs[LeftLeg].Damage = 2000

	b := a.Clone()
	assert.NotEqual(t, a.ID, b.ID)

	b.Set(flags.Asthma, false)
	b.Hypnosis.Suggest("fear")
	b.Relapses.Push("kalmia", 200)
	b.Limbs[LeftLeg].Damage = 0

	assert.True(t, a.Is(flags.Asthma))
	assert.Equal(t, []string{"bleed"}, a.Hypnosis.Suggestions)
	assert.Equal(t, 1, a.Relapses.Len())
	assert.Equal(t, 2000, a.Limbs[LeftLeg].Damage)
	assert.Equal(t, []string{"bleed", "fear"}, b.Hypnosis.Suggestions)
}

func TestWait_ZeroDeltaIsNoop(t *testing.T) {
	a := New()
	a.Balances.Use(Balance, 250)
	a.Relapses.Push("curare", 0)
	a.Restore(Torso)
	before := *a

	a.Wait(0)
	assert.Equal(t, before.Balances, a.Balances)
	assert.Equal(t, before.Limbs, a.Limbs)
	assert.Equal(t, before.Relapses, a.Relapses)
}

func TestWait_CooldownsFloorAtZero(t *testing.T) {
	tests := []struct {
		before, delta, want types.Time
	}{
		{250, 100, 150},
		{250, 250, 0},
		{250, 400, 0},
		{0, 100, 0},
	}
	for _, tt := range tests {
		a := New()
		a.Balances.Use(Equil, tt.before)
		a.Wait(tt.delta)
		assert.Equal(t, tt.want, a.Balances.Remaining(Equil))
	}
}

func TestLimbThresholds(t *testing.T) {
	a := New()
	damaged, mangled := a.AddLimbDamage(LeftLeg, 3333)
	assert.False(t, damaged)
	assert.False(t, mangled)
	assert.False(t, a.Is(flags.LeftLegDamaged))

	damaged, mangled = a.AddLimbDamage(LeftLeg, 1)
	assert.True(t, damaged)
	assert.False(t, mangled)
	assert.True(t, a.Is(flags.LeftLegDamaged))

	_, mangled = a.AddLimbDamage(LeftLeg, MangledThreshold-DamagedThreshold)
	assert.True(t, mangled)
	assert.True(t, a.Is(flags.LeftLegMangled))

	a.AddLimbDamage(LeftLeg, 50000)
	assert.Equal(t, MaxLimbDamage, a.Limbs[LeftLeg].Damage)
}

func TestRestoration(t *testing.T) {
	a := New()
	a.SetLimbDamage(RightArm, 7000)
	a.Restore(RightArm)

	l, ok := a.Restoring()
	require.True(t, ok)
	assert.Equal(t, RightArm, l)

	a.Wait(RestoreTime - 1)
	assert.Equal(t, 7000, a.Limbs[RightArm].Damage)

	a.Wait(1)
	assert.Equal(t, 4000, a.Limbs[RightArm].Damage)
	assert.False(t, a.Is(flags.RightArmMangled))
	assert.True(t, a.Is(flags.RightArmDamaged))
	_, ok = a.Restoring()
	assert.False(t, ok)
}

func TestLimbFromName(t *testing.T) {
	for in, want := range map[string]Limb{
		"left leg":  LeftLeg,
		"left_leg":  LeftLeg,
		"rightarm":  RightArm,
		"ll":        LeftLeg,
		"HEAD":      Head,
		" torso ":   Torso,
		"right-leg": RightLeg,
	} {
		got, ok := LimbFromName(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := LimbFromName("tail")
	assert.False(t, ok)
}

func TestHypnosisFlow(t *testing.T) {
	var h Hypnosis
	assert.False(t, h.Suggest("ignored"), "suggest before hypnotise")

	h.Hypnotize()
	h.Suggest("stupidity")
	h.Suggest("paranoia")
	h.Seal(3 * types.Second)
	assert.Equal(t, HypnosisSealed, h.State)
	_, ok := h.Trigger()
	assert.False(t, ok, "sealed hypnosis does not fire")

	h.wait(3 * types.Second)
	assert.Equal(t, HypnosisActive, h.State)

	s, ok := h.Trigger()
	require.True(t, ok)
	assert.Equal(t, "stupidity", s)
	s, ok = h.Trigger()
	require.True(t, ok)
	assert.Equal(t, "paranoia", s)
	assert.Equal(t, HypnosisNone, h.State)
}

func TestGuesses(t *testing.T) {
	a := New()
	a.Guess(flags.Paralysis)
	assert.True(t, a.Is(flags.Paralysis))
	assert.True(t, a.Guessed(flags.Paralysis))
	assert.Equal(t, []flags.FType{flags.Paralysis}, a.Guesses())

	a.Confirm(flags.Paralysis)
	assert.False(t, a.Guessed(flags.Paralysis))
	assert.True(t, a.Is(flags.Paralysis))

	a.Guess(flags.Asthma)
	a.Set(flags.Asthma, false)
	assert.Empty(t, a.Guesses())
}

func TestClassState(t *testing.T) {
	a := New()
	a.DetectClass(ClassZealot)
	z, ok := a.Class.(Zealot)
	require.True(t, ok)
	z.Zenith = ZenithDuration
	a.Class = z
	a.Wait(5 * types.Second)
	assert.Equal(t, ZenithDuration-5*types.Second, a.Class.(Zealot).Zenith)

	a.DetectClass(ClassZealot)
	assert.True(t, a.Class.(Zealot).InZenith(), "redetecting keeps state")

	a.DetectClass(ClassShikudo)
	assert.Equal(t, Shikudo{Form: combo.Tykonos}, a.Class)
}

func TestWait_DropsExpiredRelapses(t *testing.T) {
	a := New()
	a.Relapses.Push("curare", 0)
	a.Wait(RelapseMax)
	assert.Equal(t, 1, a.Relapses.Len())
	a.Wait(1)
	assert.Equal(t, 0, a.Relapses.Len())
}

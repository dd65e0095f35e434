package branch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/flags"
	"github.com/nathoo/duelcore/types"
)

func TestCombinations(t *testing.T) {
	assert.Equal(t, [][]int{{0, 1}, {0, 2}, {1, 2}}, Combinations(3, 2, 0))
	assert.Equal(t, [][]int{{0}, {1}}, Combinations(2, 1, 0))
	assert.Len(t, Combinations(4, 0, 0), 1)
	assert.Nil(t, Combinations(2, 3, 0))
	assert.Len(t, Combinations(10, 3, 0), 120)
	assert.Len(t, Combinations(10, 3, 5), 5)
}

// applyAffs sets the afflictions of each venom directly.
func applyAffs(a *agent.AgentState, venoms []string) []*agent.AgentState {
	for _, v := range venoms {
		switch v {
		case "curare":
			a.Set(flags.Paralysis, true)
		case "kalmia":
			a.Set(flags.Asthma, true)
		}
	}
	return []*agent.AgentState{a}
}

func TestRelapses_Concrete(t *testing.T) {
	a := agent.New()
	a.Relapses.Push("curare", 0)
	a.Relapses.Push("curare", 0)
	a.Wait(3 * types.Second)
	a.Relapses.Push("curare", 300)

	out := Relapses(a, 2, applyAffs)
	require.Len(t, out, 1)
	assert.Same(t, a, out[0])
	assert.True(t, a.Is(flags.Paralysis))
	assert.Equal(t, 1, a.Relapses.Len(), "the fresh entry stays queued")
}

func TestRelapses_UncertainForksTwo(t *testing.T) {
	a := agent.New()
	a.Relapses.Push("curare", 0)
	a.Relapses.Push("kalmia", 0)
	a.Wait(3 * types.Second)

	out := Relapses(a, 1, applyAffs)
	require.Len(t, out, 2)
	for _, child := range out {
		assert.NotSame(t, a, child)
		assert.Equal(t, 1, child.Relapses.Len())
	}
	assert.True(t, out[0].Is(flags.Paralysis))
	assert.False(t, out[0].Is(flags.Asthma))
	assert.True(t, out[1].Is(flags.Asthma))
	assert.False(t, out[1].Is(flags.Paralysis))

	assert.Equal(t, 2, a.Relapses.Len(), "parent untouched")
	assert.False(t, a.Is(flags.Paralysis))
}

func TestRelapses_NoneStrikes(t *testing.T) {
	a := agent.New()
	out := Relapses(a, 1, applyAffs)
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].Strikes)
}

func TestAfflictions(t *testing.T) {
	a := agent.New()
	a.Set(flags.Clumsiness, true)
	cands := []flags.FType{flags.Clumsiness, flags.Asthma, flags.Paralysis, flags.Stupidity}

	out := Afflictions(a, cands, 2)
	require.Len(t, out, 3)
	for _, child := range out {
		assert.Len(t, child.Guesses(), 2)
		assert.True(t, child.Is(flags.Clumsiness))
	}
	assert.Empty(t, a.Guesses())

	out = Afflictions(a, []flags.FType{flags.Clumsiness, flags.Asthma}, 1)
	require.Len(t, out, 1)
	assert.True(t, a.Guessed(flags.Asthma))
}

func TestCures(t *testing.T) {
	a := agent.New()
	a.Set(flags.Asthma, true)
	a.Set(flags.Paralysis, true)

	out := Cures(a, []flags.FType{flags.Asthma, flags.Paralysis, flags.Stupidity})
	require.Len(t, out, 2)
	assert.False(t, out[0].Is(flags.Asthma))
	assert.True(t, out[0].Is(flags.Paralysis))
	assert.True(t, out[1].Is(flags.Asthma))
	assert.False(t, out[1].Is(flags.Paralysis))

	single := Cures(out[0], []flags.FType{flags.Paralysis})
	require.Len(t, single, 1)
	assert.False(t, single[0].Is(flags.Paralysis))
}

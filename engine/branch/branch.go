// Package branch forks agent hypotheses when an observation has more than
// one plausible effect. Every child is a deep copy of the parent with only
// the divergent fields changed; the parent itself is never mutated by a fork.
package branch

import (
	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/flags"
)

// MaxFanout caps how many children a single fork may produce.
const MaxFanout = 32

// Applier applies venoms to one hypothesis. It may itself fork, so it
// returns the resulting hypotheses.
type Applier func(a *agent.AgentState, venoms []string) []*agent.AgentState

// Combinations returns up to limit size-k subsets of {0..n-1} in
// lexicographic order. A non-positive limit means no limit.
func Combinations(n, k, limit int) [][]int {
	if k < 0 || k > n {
		return nil
	}
	var out [][]int
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		out = append(out, append([]int(nil), idx...))
		if limit > 0 && len(out) >= limit {
			return out
		}
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// Relapses resolves n observed relapses against a's queue.
//
// A concrete resolution applies the eligible venoms to a in place. An
// uncertain one returns one clone per combination of candidates, each with
// that combination taken from its queue and applied. When nothing in the
// queue explains the relapses, a takes a strike and is returned alone.
func Relapses(a *agent.AgentState, n int, apply Applier) []*agent.AgentState {
	res := a.Relapses.Resolve(n)
	switch res.Resolution {
	case agent.RelapseConcrete:
		return apply(a, a.Relapses.Take(res.Candidates))
	case agent.RelapseUncertain:
		var out []*agent.AgentState
		for _, combo := range Combinations(len(res.Candidates), n, MaxFanout) {
			pick := make([]int, len(combo))
			for i, c := range combo {
				pick[i] = res.Candidates[c]
			}
			child := a.Clone()
			out = append(out, apply(child, child.Relapses.Take(pick))...)
		}
		return out
	default:
		a.Strike()
		return []*agent.AgentState{a}
	}
}

// Afflictions forks a once per size-k subset of candidates. Each child
// records its chosen afflictions as guesses. Candidates already present
// on a are ignored; if no more than k remain they are guessed in place.
func Afflictions(a *agent.AgentState, candidates []flags.FType, k int) []*agent.AgentState {
	var open []flags.FType
	for _, f := range candidates {
		if !a.Is(f) {
			open = append(open, f)
		}
	}
	if k <= 0 {
		return []*agent.AgentState{a}
	}
	if len(open) <= k {
		for _, f := range open {
			a.Guess(f)
		}
		return []*agent.AgentState{a}
	}
	var out []*agent.AgentState
	for _, combo := range Combinations(len(open), k, MaxFanout) {
		child := a.Clone()
		for _, i := range combo {
			child.Guess(open[i])
		}
		out = append(out, child)
	}
	return out
}

// Cures forks a once per candidate affliction, removing it in each child.
// It is used for random cures the observer could not see the result of.
func Cures(a *agent.AgentState, candidates []flags.FType) []*agent.AgentState {
	var present []flags.FType
	for _, f := range candidates {
		if a.Is(f) {
			present = append(present, f)
		}
	}
	switch len(present) {
	case 0:
		return []*agent.AgentState{a}
	case 1:
		a.Set(present[0], false)
		return []*agent.AgentState{a}
	}
	if len(present) > MaxFanout {
		present = present[:MaxFanout]
	}
	out := make([]*agent.AgentState, 0, len(present))
	for _, f := range present {
		child := a.Clone()
		child.Set(f, false)
		out = append(out, child)
	}
	return out
}

// Each applies fn to every hypothesis and concatenates the results.
func Each(states []*agent.AgentState, fn func(*agent.AgentState) []*agent.AgentState) []*agent.AgentState {
	var out []*agent.AgentState
	for _, s := range states {
		out = append(out, fn(s)...)
	}
	return out
}

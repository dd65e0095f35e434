package combo

import "github.com/nathoo/duelcore/types"

// Predicate filters candidate combos.
type Predicate func(Combo) bool

// Objective ranks candidate combos; higher is better.
type Objective func(Combo) float64

// MustIncludeVenom keeps combos that deliver a venom.
func MustIncludeVenom() Predicate {
	return func(c Combo) bool { return c.HasVenom() }
}

// MustEndIn keeps combos that finish in s.
func MustEndIn(s Stance) Predicate {
	return func(c Combo) bool { return c.End == s }
}

// MinLength keeps combos with at least n attacks.
func MinLength(n int) Predicate {
	return func(c Combo) bool { return c.Len() >= n }
}

// MaxBalance keeps combos no slower than t.
func MaxBalance(t types.Time) Predicate {
	return func(c Combo) bool { return c.Balance <= t }
}

// MinScore keeps combos the grader scores at least min. A nil grader
// scores every combo 0.
func MinScore(g *Grader, min float64) Predicate {
	return func(c Combo) bool { return g.Score(c) >= min }
}

// Fastest prefers the lowest balance time.
func Fastest(c Combo) float64 { return -float64(c.Balance) }

// HighestAffRate prefers the most afflictions per second.
func HighestAffRate(c Combo) float64 { return c.AffRate() }

// HighestDamageRate prefers the most damage per second.
func HighestDamageRate(c Combo) float64 { return c.DamageRate() }

// Graded ranks by a grader's weighted score.
func Graded(g *Grader) Objective {
	return g.Score
}

// Select returns the candidate passing every predicate that maximises obj.
// Ties keep the earliest candidate in search order.
func Select(combos []Combo, obj Objective, preds ...Predicate) (Combo, bool) {
	var (
		best  Combo
		score float64
		found bool
	)
next:
	for _, c := range combos {
		for _, p := range preds {
			if !p(c) {
				continue next
			}
		}
		if v := obj(c); !found || v > score {
			best, score, found = c, v, true
		}
	}
	return best, found
}

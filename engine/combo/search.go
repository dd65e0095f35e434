package combo

import "github.com/nathoo/duelcore/types"

// Search limits.
const (
	MaxDepth       = 4
	DefaultNodeCap = 20000
)

// Combo is one candidate attack sequence.
type Combo struct {
	Attacks []*Attack
	// Forms[i] is the form Attacks[i] was used from.
	Forms []Stance
	Start Stance
	End   Stance
	// Balance is the slowest attack's cost from its form.
	Balance types.Time
	Damage  float64
	Affs    int
}

// Names lists the attack names in order.
func (c Combo) Names() []string {
	out := make([]string, len(c.Attacks))
	for i, a := range c.Attacks {
		out[i] = a.Name
	}
	return out
}

// Len is the number of attacks.
func (c Combo) Len() int { return len(c.Attacks) }

// AffRate is afflictions delivered per second of balance.
func (c Combo) AffRate() float64 {
	if c.Balance <= 0 {
		return 0
	}
	return float64(c.Affs) / seconds(c.Balance)
}

// DamageRate is estimated damage per second of balance.
func (c Combo) DamageRate() float64 {
	if c.Balance <= 0 {
		return 0
	}
	return c.Damage / seconds(c.Balance)
}

// HasVenom reports whether any attack carries a venom.
func (c Combo) HasVenom() bool {
	for _, a := range c.Attacks {
		if a.Venom {
			return true
		}
	}
	return false
}

func seconds(t types.Time) float64 {
	return float64(t) / float64(types.Second)
}

// SearchOptions bounds FindCombos.
type SearchOptions struct {
	MaxDepth int
	NodeCap  int
}

func (o SearchOptions) normalize() SearchOptions {
	if o.MaxDepth <= 0 || o.MaxDepth > MaxDepth {
		o.MaxDepth = MaxDepth
	}
	if o.NodeCap <= 0 {
		o.NodeCap = DefaultNodeCap
	}
	return o
}

// searcher holds the state of one FindCombos call.
type searcher struct {
	available []*Attack
	opts      SearchOptions
	nodes     int
	out       []Combo
}

// FindCombos enumerates every attack sequence of length 1 to MaxDepth that
// can legally be performed from start against a target in posture. The
// search stops expanding once NodeCap nodes have been visited.
func FindCombos(available []*Attack, start Stance, posture Posture, opts SearchOptions) []Combo {
	s := &searcher{available: available, opts: opts.normalize()}
	s.walk(nil, nil, start, start, posture, 0, 0, 0)
	return s.out
}

func (s *searcher) walk(seq []*Attack, forms []Stance, start, cur Stance, p Posture, bal types.Time, dmg float64, affs int) {
	if len(seq) == s.opts.MaxDepth {
		return
	}
	for _, a := range s.available {
		if s.nodes >= s.opts.NodeCap {
			return
		}
		if !usable(a, seq, cur, p) {
			continue
		}
		s.nodes++

		nextSeq := append(seq[:len(seq):len(seq)], a)
		nextForms := append(forms[:len(forms):len(forms)], cur)
		cost := CostFrom(a, cur)
		if cost < bal {
			cost = bal
		}
		d := dmg + DamageAgainst(a, p.Debuffs+affs)
		n := affs + a.Affs
		next := NextStance(a, cur)

		s.out = append(s.out, Combo{
			Attacks: nextSeq,
			Forms:   nextForms,
			Start:   start,
			End:     next,
			Balance: cost,
			Damage:  d,
			Affs:    n,
		})

		np := p
		if a.Knocks {
			np.Prone = true
		}
		if a.Shatters {
			np.Rebounding = false
		}
		s.walk(nextSeq, nextForms, start, next, np, cost, d, n)
	}
}

// usable checks an attack's preconditions at the current point in a combo.
func usable(a *Attack, seq []*Attack, cur Stance, p Posture) bool {
	if !a.From.Has(cur) {
		return false
	}
	if a.Opener && len(seq) > 0 {
		return false
	}
	if a.Idempotent {
		for _, prev := range seq {
			if prev == a {
				return false
			}
		}
	}
	if a.NeedsProne && !p.Prone {
		return false
	}
	if a.Knocks && p.Prone {
		return false
	}
	if a.Shatters && !p.Rebounding {
		return false
	}
	if a.Venom && p.Rebounding {
		return false
	}
	if a.Limb != "" && a.Limb == p.Parrying {
		return false
	}
	return true
}

// Replay recomputes the final form of a sequence by applying NextStance
// from start.
func Replay(attacks []*Attack, start Stance) Stance {
	cur := start
	for _, a := range attacks {
		cur = NextStance(a, cur)
	}
	return cur
}

// Available resolves attack names against the catalogue, skipping unknown ones.
func Available(names ...string) []*Attack {
	var out []*Attack
	for _, n := range names {
		if a, ok := Lookup(n); ok {
			out = append(out, a)
		}
	}
	return out
}

// All returns every catalogue attack.
func All() []*Attack {
	out := make([]*Attack, len(Catalogue))
	for i := range Catalogue {
		out[i] = &Catalogue[i]
	}
	return out
}

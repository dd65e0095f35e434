// Package combo searches sequences of staff attacks for form-based melee
// classes. Every attack moves the attacker between a small set of forms,
// costs balance time that depends on the form it was used from, and may
// only be used under certain target postures.
package combo

import "strings"

// Stance is a combat form.
type Stance uint8

const (
	Tykonos Stance = iota
	Willow
	Rain
	Oak
	Gaital
	Maelstrom
	NumStances

	// Keep marks an attack that does not change form.
	Keep = NumStances
)

var stanceNames = [NumStances]string{
	Tykonos:   "tykonos",
	Willow:    "willow",
	Rain:      "rain",
	Oak:       "oak",
	Gaital:    "gaital",
	Maelstrom: "maelstrom",
}

func (s Stance) String() string {
	if s >= NumStances {
		return "keep"
	}
	return stanceNames[s]
}

// StanceFromName parses a form name, case-insensitively.
func StanceFromName(name string) (Stance, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for s := Stance(0); s < NumStances; s++ {
		if stanceNames[s] == n {
			return s, true
		}
	}
	return Tykonos, false
}

// StanceSet is a bitmask of forms.
type StanceSet uint8

// AnyStance contains every form.
const AnyStance StanceSet = 1<<NumStances - 1

// Stances builds a set from forms.
func Stances(ss ...Stance) StanceSet {
	var set StanceSet
	for _, s := range ss {
		set |= 1 << s
	}
	return set
}

// Has reports whether s is in the set.
func (set StanceSet) Has(s Stance) bool {
	return s < NumStances && set&(1<<s) != 0
}

// Posture is what the solver needs to know about the target.
type Posture struct {
	Prone      bool
	Rebounding bool
	Shielded   bool
	// Parrying is the limb group the target guards, e.g. "leg". Empty for none.
	Parrying string
	// Debuffs is the target's accumulated affliction count.
	Debuffs int
}

package combo

import "github.com/nathoo/duelcore/types"

// Attack is one discrete staff attack.
type Attack struct {
	Name string
	// From is the set of forms the attack can be used from.
	From StanceSet
	// Into is the form the attack leaves the attacker in, or Keep.
	Into Stance
	// Cost is the base balance time; Oak is slower and Maelstrom faster.
	Cost types.Time
	// Damage is the flat damage estimate; Compound is added per target debuff.
	Damage   float64
	Compound float64
	// Affs is how many afflictions one use delivers.
	Affs int
	// Limb is the limb group struck, if any. A parry on it blocks the attack.
	Limb string
	// Venom attacks carry a venom and rebound off a rebounding aura.
	Venom bool
	// Opener attacks may only start a combo.
	Opener bool
	// Idempotent attacks may not repeat within one combo.
	Idempotent bool
	// NeedsProne attacks require the target off its feet.
	NeedsProne bool
	// Knocks attacks put the target prone.
	Knocks bool
	// Shatters attacks strip rebounding and need it present.
	Shatters bool
	// Favored forms grant the stance-synergy bonus.
	Favored StanceSet
}

// NextStance returns the form the attacker is in after a is used from s.
func NextStance(a *Attack, s Stance) Stance {
	if a.Into == Keep {
		return s
	}
	return a.Into
}

// CostFrom returns the balance time of a used from s.
func CostFrom(a *Attack, s Stance) types.Time {
	switch s {
	case Oak:
		return a.Cost * 5 / 4
	case Maelstrom:
		return a.Cost * 4 / 5
	default:
		return a.Cost
	}
}

// DamageAgainst estimates the damage of a against a target with debuffs
// afflictions.
func DamageAgainst(a *Attack, debuffs int) float64 {
	return a.Damage + a.Compound*float64(debuffs)
}

// Catalogue is the built-in attack list.
var Catalogue = []Attack{
	{Name: "sweep", From: Stances(Tykonos, Willow, Gaital), Into: Rain, Cost: 250, Damage: 2, Affs: 1, Limb: "leg", Idempotent: true, Knocks: true, Favored: Stances(Gaital)},
	{Name: "kuro", From: AnyStance &^ Stances(Maelstrom), Into: Keep, Cost: 230, Damage: 6, Limb: "leg", Favored: Stances(Oak)},
	{Name: "livestrike", From: AnyStance, Into: Keep, Cost: 260, Damage: 8, Limb: "torso", Favored: Stances(Tykonos)},
	{Name: "thrust", From: Stances(Willow, Rain, Maelstrom), Into: Keep, Cost: 220, Damage: 3, Affs: 1, Venom: true, Favored: Stances(Willow)},
	{Name: "hiraku", From: Stances(Tykonos, Rain), Into: Willow, Cost: 240, Damage: 5, Affs: 1, Limb: "head", Idempotent: true},
	{Name: "ruku", From: Stances(Tykonos, Oak, Gaital), Into: Keep, Cost: 230, Damage: 6, Limb: "arm", Favored: Stances(Gaital)},
	{Name: "jinzuku", From: Stances(Oak, Maelstrom), Into: Keep, Cost: 270, Damage: 4, Compound: 1.5, Limb: "torso", Favored: Stances(Maelstrom)},
	{Name: "shatter", From: AnyStance, Into: Keep, Cost: 300, Damage: 1, Opener: true, Idempotent: true, Shatters: true},
	{Name: "hop", From: AnyStance, Into: Gaital, Cost: 150, Opener: true, Idempotent: true},
	{Name: "needle", From: Stances(Rain, Gaital), Into: Maelstrom, Cost: 240, Damage: 4, Affs: 1, Limb: "head", NeedsProne: true, Venom: true, Favored: Stances(Rain)},
	{Name: "risingkick", From: Stances(Willow, Oak), Into: Rain, Cost: 260, Damage: 7, Limb: "torso"},
	{Name: "nervestrike", From: Stances(Maelstrom, Willow), Into: Oak, Cost: 230, Damage: 3, Affs: 1, Limb: "head", Idempotent: true},
	{Name: "frontkick", From: Stances(Oak, Gaital), Into: Tykonos, Cost: 250, Damage: 6, Limb: "torso", Favored: Stances(Oak)},
}

// Lookup returns the catalogue attack named name.
func Lookup(name string) (*Attack, bool) {
	for i := range Catalogue {
		if Catalogue[i].Name == name {
			return &Catalogue[i], true
		}
	}
	return nil, false
}

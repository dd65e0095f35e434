// Package agent models one combatant as seen by the observer: afflictions,
// defenses, cooldowns, vitals, limbs and class-specific state.
//
// An AgentState is one hypothesis about a combatant. The timeline keeps
// several of them per name, so Clone must return a fully independent copy.
package agent

import (
	"github.com/google/uuid"

	"github.com/nathoo/duelcore/engine/flags"
	"github.com/nathoo/duelcore/types"
)

// MaxStrikes is how many unconfirmed guesses a branch may accumulate before
// it is considered implausible.
const MaxStrikes = 6

// Stats are an agent's vitals.
type Stats struct {
	Health    int `json:"health"`
	MaxHealth int `json:"max_health"`
	Mana      int `json:"mana"`
	MaxMana   int `json:"max_mana"`
	Spirit    int `json:"spirit"`
	MaxSpirit int `json:"max_spirit"`
	Sips      int `json:"sips,omitempty"`
	Shields   int `json:"shields,omitempty"`
}

// DefaultStats are assumed for agents whose prompt we never see.
var DefaultStats = Stats{
	Health: 4000, MaxHealth: 4000,
	Mana: 4000, MaxMana: 4000,
	Spirit: 100, MaxSpirit: 100,
}

// AgentState is one hypothesis about a combatant.
type AgentState struct {
	ID       uuid.UUID    `json:"id"`
	Flags    flags.Store  `json:"-"`
	Balances Balances     `json:"balances"`
	Stats    Stats        `json:"stats"`
	Limbs    LimbSet      `json:"limbs"`
	Parrying Limb         `json:"parrying"`
	Hypnosis Hypnosis     `json:"hypnosis"`
	Wield    WieldState   `json:"wield"`
	Dodge    DodgeState   `json:"dodge"`
	Channel  ChannelState `json:"channel"`
	Class    ClassState   `json:"-"`
	Relapses RelapseState `json:"relapses"`
	Strikes  int          `json:"strikes"`

	guesses [flags.NumFlags]uint8
}

// New returns the default template for a freshly seen agent.
func New() *AgentState {
	return &AgentState{
		ID:       uuid.New(),
		Stats:    DefaultStats,
		Parrying: NoLimb,
		Class:    UnknownClass{},
	}
}

// Clone returns an independent deep copy carrying a fresh branch ID.
func (a *AgentState) Clone() *AgentState {
	c := *a
	c.ID = uuid.New()
	c.Hypnosis = a.Hypnosis.clone()
	c.Relapses = a.Relapses.clone()
	return &c
}

// Wait advances every timer on the agent by d. A zero or negative delta
// leaves the agent unchanged.
func (a *AgentState) Wait(d types.Time) {
	if d <= 0 {
		return
	}
	a.Balances.wait(d)
	a.Hypnosis.wait(d)
	a.Channel.wait(d)
	a.Dodge.Cooldown = countdown(a.Dodge.Cooldown, d)
	if a.Class != nil {
		a.Class = a.Class.Wait(d)
	}
	a.Relapses.wait(d)
	for _, l := range Limbs() {
		ls := &a.Limbs[l]
		if ls.Restoring <= 0 {
			continue
		}
		ls.Restoring -= d
		if ls.Restoring <= 0 {
			ls.Restoring = 0
			a.SetLimbDamage(l, ls.Damage-RestoreAmount)
		}
	}
}

// Is reports whether f is present.
func (a *AgentState) Is(f flags.FType) bool { return a.Flags.IsSet(f) }

// Set marks f present or absent. Clearing f also drops any guess of it.
func (a *AgentState) Set(f flags.FType, v bool) {
	a.Flags.Set(f, v)
	if !v {
		a.Unguess(f)
	}
}

// Guess sets f and records that it was inferred rather than observed.
func (a *AgentState) Guess(f flags.FType) {
	if f >= flags.NumFlags {
		return
	}
	a.Flags.Set(f, true)
	if a.guesses[f] < 255 {
		a.guesses[f]++
	}
}

// Confirm drops a guess of f because it was observed directly.
func (a *AgentState) Confirm(f flags.FType) {
	a.Unguess(f)
}

// Unguess forgets one guess of f.
func (a *AgentState) Unguess(f flags.FType) {
	if f < flags.NumFlags && a.guesses[f] > 0 {
		a.guesses[f]--
	}
}

// Guessed reports whether f is currently held only as a guess.
func (a *AgentState) Guessed(f flags.FType) bool {
	return f < flags.NumFlags && a.guesses[f] > 0
}

// Guesses lists the guessed afflictions.
func (a *AgentState) Guesses() []flags.FType {
	var out []flags.FType
	for i, n := range a.guesses {
		if n > 0 {
			out = append(out, flags.FType(i))
		}
	}
	return out
}

// Strike records evidence against this branch.
func (a *AgentState) Strike() { a.Strikes++ }

// Implausible reports whether the branch has exceeded MaxStrikes.
func (a *AgentState) Implausible() bool { return a.Strikes > MaxStrikes }

// SetLimbDamage stores damage on l, clamped to the valid range, and keeps
// the damaged and mangled flags consistent with the thresholds.
func (a *AgentState) SetLimbDamage(l Limb, damage int) {
	if l >= NumLimbs {
		return
	}
	if damage < 0 {
		damage = 0
	}
	if damage > MaxLimbDamage {
		damage = MaxLimbDamage
	}
	a.Limbs[l].Damage = damage
	damaged, mangled := LimbLevel(damage)
	a.Flags.Set(l.DamagedFlag(), damaged)
	a.Flags.Set(l.MangledFlag(), mangled)
}

// AddLimbDamage adds amount to l and reports which thresholds it crossed.
func (a *AgentState) AddLimbDamage(l Limb, amount int) (damaged, mangled bool) {
	if l >= NumLimbs {
		return false, false
	}
	wasDamaged, wasMangled := LimbLevel(a.Limbs[l].Damage)
	a.SetLimbDamage(l, a.Limbs[l].Damage+amount)
	isDamaged, isMangled := LimbLevel(a.Limbs[l].Damage)
	return isDamaged && !wasDamaged, isMangled && !wasMangled
}

// Restore starts the restoration timer on l.
func (a *AgentState) Restore(l Limb) {
	if l >= NumLimbs {
		return
	}
	a.Limbs[l].Restoring = RestoreTime
}

// Restoring returns the limb currently being restored, if any.
func (a *AgentState) Restoring() (Limb, bool) {
	for _, l := range Limbs() {
		if a.Limbs[l].Restoring > 0 {
			return l, true
		}
	}
	return NoLimb, false
}

// ClassOf returns the detected class.
func (a *AgentState) ClassOf() Class {
	if a.Class == nil {
		return ClassUnknown
	}
	return a.Class.Class()
}

// DetectClass switches the sub-state to c unless c is already tracked.
func (a *AgentState) DetectClass(c Class) {
	if c == ClassUnknown || a.ClassOf() == c {
		return
	}
	a.Class = NewClassState(c)
}

// Prone reports whether the agent is off its feet.
func (a *AgentState) Prone() bool {
	return a.Is(flags.Prone) || a.Is(flags.Asleep) || a.Is(flags.Unconscious) ||
		a.Is(flags.Paralysis) || a.Is(flags.Frozen)
}

// Locked reports whether the agent has no practical way to cure asthma,
// anorexia and slickness together.
func (a *AgentState) Locked() bool {
	return a.Is(flags.Asthma) && a.Is(flags.Anorexia) && a.Is(flags.Slickness)
}

// CanParry reports whether the agent is able to guard a limb.
func (a *AgentState) CanParry() bool {
	return !a.Prone() && !(a.Is(flags.LeftArmBroken) && a.Is(flags.RightArmBroken))
}

package agent

import (
	"github.com/nathoo/duelcore/engine/combo"
	"github.com/nathoo/duelcore/types"
)

// Class names the profession an agent has been seen using.
type Class uint8

const (
	ClassUnknown Class = iota
	ClassZealot
	ClassShikudo
	ClassSerpent
)

func (c Class) String() string {
	switch c {
	case ClassZealot:
		return "zealot"
	case ClassShikudo:
		return "shikudo"
	case ClassSerpent:
		return "serpent"
	default:
		return "unknown"
	}
}

// ClassFromName maps a skill category to a Class.
func ClassFromName(name string) Class {
	switch name {
	case "zealot", "zeal", "purification", "psionics":
		return ClassZealot
	case "shikudo", "monk", "kaido", "tekura":
		return ClassShikudo
	case "serpent", "subterfuge", "venom", "venoms", "hypnosis":
		return ClassSerpent
	default:
		return ClassUnknown
	}
}

// ClassState is the class-specific sub-state of an agent. Implementations
// are values, so copying an AgentState copies them too.
type ClassState interface {
	Class() Class
	Wait(d types.Time) ClassState
}

// NewClassState returns the initial sub-state for c.
func NewClassState(c Class) ClassState {
	switch c {
	case ClassZealot:
		return Zealot{}
	case ClassShikudo:
		return Shikudo{Form: combo.Tykonos}
	case ClassSerpent:
		return Serpent{}
	default:
		return UnknownClass{}
	}
}

// UnknownClass is used until a class-identifying skill is seen.
type UnknownClass struct{}

func (UnknownClass) Class() Class                 { return ClassUnknown }
func (u UnknownClass) Wait(types.Time) ClassState { return u }

// Zealot timers count down to zero.
type Zealot struct {
	Zenith    types.Time `json:"zenith,omitempty"`
	Pyromania types.Time `json:"pyromania,omitempty"`
}

const (
	ZenithDuration    = 15 * types.Second
	PyromaniaDuration = 10 * types.Second
)

func (Zealot) Class() Class { return ClassZealot }

func (z Zealot) Wait(d types.Time) ClassState {
	z.Zenith = countdown(z.Zenith, d)
	z.Pyromania = countdown(z.Pyromania, d)
	return z
}

// InZenith reports whether the zenith window is open.
func (z Zealot) InZenith() bool { return z.Zenith > 0 }

// Shikudo tracks the current form and consecutive kata attacks.
type Shikudo struct {
	Form      combo.Stance `json:"form"`
	KataCount int          `json:"kata_count,omitempty"`
}

func (Shikudo) Class() Class                 { return ClassShikudo }
func (s Shikudo) Wait(types.Time) ClassState { return s }

// Serpent carries no timers of its own.
type Serpent struct{}

func (Serpent) Class() Class                 { return ClassSerpent }
func (s Serpent) Wait(types.Time) ClassState { return s }

func countdown(t, d types.Time) types.Time {
	t -= d
	if t < 0 {
		return 0
	}
	return t
}

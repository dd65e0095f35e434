package agent

import "github.com/nathoo/duelcore/types"

// HypnosisState is the phase of the hypnosis state machine.
type HypnosisState uint8

const (
	HypnosisNone HypnosisState = iota
	// HypnosisArmed accepts suggestions.
	HypnosisArmed
	// HypnosisSealed counts down to activation.
	HypnosisSealed
	// HypnosisActive fires one suggestion per trigger.
	HypnosisActive
)

func (h HypnosisState) String() string {
	switch h {
	case HypnosisArmed:
		return "armed"
	case HypnosisSealed:
		return "sealed"
	case HypnosisActive:
		return "active"
	default:
		return "none"
	}
}

// Hypnosis tracks suggestions planted on an agent.
type Hypnosis struct {
	State       HypnosisState `json:"state"`
	Sealed      types.Time    `json:"sealed,omitempty"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// Hypnotize arms the machine and clears any earlier suggestions.
func (h *Hypnosis) Hypnotize() {
	h.State = HypnosisArmed
	h.Sealed = 0
	h.Suggestions = nil
}

// Suggest queues a suggestion. It is ignored unless the machine is armed.
func (h *Hypnosis) Suggest(s string) bool {
	if h.State != HypnosisArmed {
		return false
	}
	h.Suggestions = append(h.Suggestions, s)
	return true
}

// Seal starts the activation countdown. A zero delay activates at once.
func (h *Hypnosis) Seal(delay types.Time) {
	if h.State != HypnosisArmed {
		return
	}
	if delay <= 0 {
		h.State = HypnosisActive
		return
	}
	h.State = HypnosisSealed
	h.Sealed = delay
}

// Snap activates a sealed or armed hypnosis immediately.
func (h *Hypnosis) Snap() {
	if h.State == HypnosisArmed || h.State == HypnosisSealed {
		h.State = HypnosisActive
		h.Sealed = 0
	}
}

// Trigger pops the next suggestion of an active hypnosis.
func (h *Hypnosis) Trigger() (string, bool) {
	if h.State != HypnosisActive || len(h.Suggestions) == 0 {
		return "", false
	}
	next := h.Suggestions[0]
	h.Suggestions = h.Suggestions[1:]
	if len(h.Suggestions) == 0 {
		h.State = HypnosisNone
		h.Suggestions = nil
	}
	return next, true
}

func (h *Hypnosis) wait(d types.Time) {
	if h.State != HypnosisSealed {
		return
	}
	h.Sealed -= d
	if h.Sealed <= 0 {
		h.Sealed = 0
		h.State = HypnosisActive
	}
}

func (h Hypnosis) clone() Hypnosis {
	if h.Suggestions != nil {
		h.Suggestions = append([]string(nil), h.Suggestions...)
	}
	return h
}

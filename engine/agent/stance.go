package agent

import "github.com/nathoo/duelcore/types"

// WieldKind summarises what an agent is holding.
type WieldKind uint8

const (
	Unarmed WieldKind = iota
	OneHanded
	DualWield
	TwoHanded
)

// WieldState records the items in each hand.
type WieldState struct {
	Kind  WieldKind `json:"kind"`
	Left  string    `json:"left,omitempty"`
	Right string    `json:"right,omitempty"`
}

// NewWieldState derives the kind from the hands.
func NewWieldState(left, right string, twoHanded bool) WieldState {
	w := WieldState{Left: left, Right: right}
	switch {
	case twoHanded:
		w.Kind = TwoHanded
	case left != "" && right != "":
		w.Kind = DualWield
	case left != "" || right != "":
		w.Kind = OneHanded
	}
	return w
}

// DodgeCooldown is how long a successful dodge keeps the reflex spent.
const DodgeCooldown = 2 * types.Second

// DodgeState tracks the dodge reflex.
type DodgeState struct {
	Cooldown types.Time `json:"cooldown,omitempty"`
	Count    int        `json:"count,omitempty"`
}

// Ready reports whether the agent can dodge again.
func (d DodgeState) Ready() bool { return d.Cooldown <= 0 }

// Dodged records a dodge.
func (d *DodgeState) Dodged() {
	d.Cooldown = DodgeCooldown
	d.Count++
}

// ChannelState is an in-progress channelled skill.
type ChannelState struct {
	Name      string     `json:"name,omitempty"`
	Remaining types.Time `json:"remaining,omitempty"`
}

// Active reports whether a channel is running.
func (c ChannelState) Active() bool { return c.Name != "" && c.Remaining > 0 }

func (c *ChannelState) wait(d types.Time) {
	if c.Name == "" {
		return
	}
	c.Remaining -= d
	if c.Remaining <= 0 {
		*c = ChannelState{}
	}
}

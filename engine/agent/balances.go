package agent

import "github.com/nathoo/duelcore/types"

// BType identifies a named cooldown channel.
type BType uint8

const (
	Balance BType = iota
	Equil
	Elixir
	Pill
	Salve
	Smoke
	Tree
	Focus
	Fitness
	ClassCure
	Renew
	Wrath
	NumBalances
)

var balanceNames = [NumBalances]string{
	Balance:   "balance",
	Equil:     "equil",
	Elixir:    "elixir",
	Pill:      "pill",
	Salve:     "salve",
	Smoke:     "smoke",
	Tree:      "tree",
	Focus:     "focus",
	Fitness:   "fitness",
	ClassCure: "class_cure",
	Renew:     "renew",
	Wrath:     "wrath",
}

var balanceAliases = map[string]BType{
	"equilibrium": Equil,
	"herb":        Pill,
	"pipe":        Smoke,
	"shrug":       ClassCure,
	"shrugging":   ClassCure,
}

func (b BType) String() string {
	if b >= NumBalances {
		return "invalid"
	}
	return balanceNames[b]
}

// BalanceFromName resolves a channel name or one of its aliases.
func BalanceFromName(name string) (BType, bool) {
	for b := BType(0); b < NumBalances; b++ {
		if balanceNames[b] == name {
			return b, true
		}
	}
	b, ok := balanceAliases[name]
	return b, ok
}

// Balances holds the remaining cooldown of every channel. Zero means the
// channel is available.
type Balances [NumBalances]types.Time

// Remaining returns how long until b comes back.
func (bs *Balances) Remaining(b BType) types.Time {
	return bs[b]
}

// Ready reports whether b is available now.
func (bs *Balances) Ready(b BType) bool {
	return bs[b] <= 0
}

// Use puts b on cooldown for d. Negative durations clamp to zero.
func (bs *Balances) Use(b BType, d types.Time) {
	if d < 0 {
		d = 0
	}
	bs[b] = d
}

// Recover makes b available immediately.
func (bs *Balances) Recover(b BType) {
	bs[b] = 0
}

func (bs *Balances) wait(d types.Time) {
	for i := range bs {
		bs[i] -= d
		if bs[i] < 0 {
			bs[i] = 0
		}
	}
}

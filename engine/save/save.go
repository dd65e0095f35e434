// Package save implements a JSON snapshot of the most plausible branch of
// every agent in a timeline.
package save

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/combo"
	"github.com/nathoo/duelcore/engine/flags"
	"github.com/nathoo/duelcore/engine/timeline"
	"github.com/nathoo/duelcore/types"
)

// Version is written into every snapshot.
const Version = 1

// SaveData is the JSON-serializable snapshot format.
type SaveData struct {
	Version     int                  `json:"version"`
	Time        types.Time           `json:"time"`
	Me          string               `json:"me"`
	RNGSeed     int64                `json:"rng_seed"`
	RNGPosition int64                `json:"rng_position"`
	Agents      map[string]AgentData `json:"agents"`
}

// AgentData is one agent's primary branch. Flags are keyed by name; a
// simple flag is stored as 1 and a counter as its magnitude.
type AgentData struct {
	Branch    string                     `json:"branch"`
	Branches  int                        `json:"branches"`
	Strikes   int                        `json:"strikes"`
	Flags     map[string]int             `json:"flags"`
	Guesses   []string                   `json:"guesses,omitempty"`
	Balances  map[string]types.Time      `json:"balances,omitempty"`
	Stats     agent.Stats                `json:"stats"`
	Limbs     map[string]agent.LimbState `json:"limbs,omitempty"`
	Parrying  string                     `json:"parrying,omitempty"`
	Hypnosis  agent.Hypnosis             `json:"hypnosis"`
	Wield     agent.WieldState           `json:"wield"`
	Relapses  []agent.RelapseEntry       `json:"relapses,omitempty"`
	Class     string                     `json:"class"`
	Zenith    types.Time                 `json:"zenith,omitempty"`
	Pyromania types.Time                 `json:"pyromania,omitempty"`
	Form      string                     `json:"form,omitempty"`
	KataCount int                        `json:"kata_count,omitempty"`
}

// Save serializes the primary branch of every agent in tl.
func Save(tl *timeline.Timeline, seed, position int64) ([]byte, error) {
	data := SaveData{
		Version:     Version,
		Time:        tl.Time,
		Me:          tl.Me,
		RNGSeed:     seed,
		RNGPosition: position,
		Agents:      make(map[string]AgentData),
	}
	for _, name := range tl.Names() {
		data.Agents[name] = agentData(tl.Primary(name), len(tl.Branches(name)))
	}
	return json.MarshalIndent(data, "", "  ")
}

func agentData(a *agent.AgentState, branches int) AgentData {
	d := AgentData{
		Branch:   a.ID.String(),
		Branches: branches,
		Strikes:  a.Strikes,
		Flags:    map[string]int{},
		Balances: map[string]types.Time{},
		Stats:    a.Stats,
		Limbs:    map[string]agent.LimbState{},
		Hypnosis: a.Hypnosis,
		Wield:    a.Wield,
		Relapses: a.Relapses.Entries,
		Class:    a.ClassOf().String(),
	}
	for _, f := range flags.All() {
		if !a.Is(f) {
			continue
		}
		if f.IsCounter() {
			d.Flags[f.String()] = int(a.Flags.Count(f))
		} else {
			d.Flags[f.String()] = 1
		}
	}
	for _, f := range a.Guesses() {
		d.Guesses = append(d.Guesses, f.String())
	}
	sort.Strings(d.Guesses)
	for b := agent.BType(0); b < agent.NumBalances; b++ {
		if r := a.Balances.Remaining(b); r > 0 {
			d.Balances[b.String()] = r
		}
	}
	for _, l := range agent.Limbs() {
		if st := a.Limbs[l]; st != (agent.LimbState{}) {
			d.Limbs[l.String()] = st
		}
	}
	if a.Parrying != agent.NoLimb {
		d.Parrying = a.Parrying.String()
	}
	switch c := a.Class.(type) {
	case agent.Zealot:
		d.Zenith, d.Pyromania = c.Zenith, c.Pyromania
	case agent.Shikudo:
		d.Form, d.KataCount = c.Form.String(), c.KataCount
	}
	return d
}

// Load deserializes JSON bytes into SaveData.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, err
	}
	if sd.Version > Version {
		return nil, fmt.Errorf("snapshot version %d is newer than %d", sd.Version, Version)
	}
	// Ensure maps are never nil after load.
	if sd.Agents == nil {
		sd.Agents = map[string]AgentData{}
	}
	return &sd, nil
}

// ApplySave replaces tl's agents with the saved primary branches. Hints
// are not saved and are left as they are.
func ApplySave(tl *timeline.Timeline, sd *SaveData) error {
	tl.Me = sd.Me
	tl.Time = sd.Time
	for name, d := range sd.Agents {
		a, err := restore(d)
		if err != nil {
			return fmt.Errorf("agent %s: %w", name, err)
		}
		tl.SetBranches(name, []*agent.AgentState{a})
	}
	return nil
}

func restore(d AgentData) (*agent.AgentState, error) {
	a := agent.New()
	a.Strikes = d.Strikes
	a.Stats = d.Stats
	a.Hypnosis = d.Hypnosis
	a.Wield = d.Wield
	a.Relapses.Entries = append([]agent.RelapseEntry(nil), d.Relapses...)

	for name, n := range d.Flags {
		f, ok := flags.FromName(name)
		if !ok {
			return nil, fmt.Errorf("unknown flag %q", name)
		}
		if f.IsCounter() {
			a.Flags.SetCount(f, uint8(max(0, min(n, flags.MaxCount))))
		} else {
			a.Set(f, n > 0)
		}
	}
	for _, name := range d.Guesses {
		f, ok := flags.FromName(name)
		if !ok {
			return nil, fmt.Errorf("unknown flag %q", name)
		}
		a.Guess(f)
	}
	for name, r := range d.Balances {
		b, ok := agent.BalanceFromName(name)
		if !ok {
			return nil, fmt.Errorf("unknown balance %q", name)
		}
		a.Balances.Use(b, r)
	}
	for name, st := range d.Limbs {
		l, ok := agent.LimbFromName(name)
		if !ok {
			return nil, fmt.Errorf("unknown limb %q", name)
		}
		a.Limbs[l] = st
	}
	if d.Parrying != "" {
		l, ok := agent.LimbFromName(d.Parrying)
		if !ok {
			return nil, fmt.Errorf("unknown limb %q", d.Parrying)
		}
		a.Parrying = l
	}

	a.Class = agent.NewClassState(agent.ClassFromName(d.Class))
	switch c := a.Class.(type) {
	case agent.Zealot:
		c.Zenith, c.Pyromania = d.Zenith, d.Pyromania
		a.Class = c
	case agent.Shikudo:
		if s, ok := combo.StanceFromName(d.Form); ok {
			c.Form = s
		}
		c.KataCount = d.KataCount
		a.Class = c
	}
	return a, nil
}

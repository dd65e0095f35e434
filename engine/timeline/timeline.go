// Package timeline holds every tracked agent's hypotheses, the cross-agent
// hint table and the session clock, and drives one TimeSlice through an
// Interpreter.
package timeline

import (
	"io"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/types"
)

// Hint kinds written by the outbound layer.
const (
	HintLastVenoms = "last_venoms"
	HintLastAttack = "last_attack"
)

// Interpreter applies one observation to the timeline. before holds the
// observations already applied this slice; after holds the current one and
// everything following it.
type Interpreter interface {
	Interpret(obs types.Observation, before, after []types.Observation, tl *Timeline) error
}

// InterpreterFunc adapts a function to Interpreter.
type InterpreterFunc func(obs types.Observation, before, after []types.Observation, tl *Timeline) error

func (f InterpreterFunc) Interpret(obs types.Observation, before, after []types.Observation, tl *Timeline) error {
	return f(obs, before, after, tl)
}

type hintKey struct {
	agent string
	kind  string
}

// Timeline is the reconstructed state of a session.
type Timeline struct {
	// Me is the controlled agent.
	Me string
	// Time is the clock value of the last applied slice.
	Time types.Time

	agents map[string][]*agent.AgentState
	hints  map[hintKey]string
	log    logrus.FieldLogger
}

// New returns an empty timeline. A nil logger discards output.
func New(log logrus.FieldLogger) *Timeline {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Timeline{
		agents: map[string][]*agent.AgentState{},
		hints:  map[hintKey]string{},
		log:    log,
	}
}

// Log returns the timeline's logger.
func (t *Timeline) Log() logrus.FieldLogger { return t.log }

// Branches returns every hypothesis for name, creating the default
// template the first time name is referenced.
func (t *Timeline) Branches(name string) []*agent.AgentState {
	bs, ok := t.agents[name]
	if !ok || len(bs) == 0 {
		bs = []*agent.AgentState{agent.New()}
		t.agents[name] = bs
	}
	return bs
}

// Primary returns the most plausible hypothesis for name: the one with the
// fewest strikes, earliest first on ties.
func (t *Timeline) Primary(name string) *agent.AgentState {
	bs := t.Branches(name)
	best := bs[0]
	for _, b := range bs[1:] {
		if b.Strikes < best.Strikes {
			best = b
		}
	}
	return best
}

// Known reports whether name has been referenced.
func (t *Timeline) Known(name string) bool {
	_, ok := t.agents[name]
	return ok
}

// Names lists every tracked agent, sorted.
func (t *Timeline) Names() []string {
	out := make([]string, 0, len(t.agents))
	for name := range t.agents {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ForAgent applies fn to every hypothesis for name.
func (t *Timeline) ForAgent(name string, fn func(a *agent.AgentState)) {
	for _, a := range t.Branches(name) {
		fn(a)
	}
}

// BranchAgent replaces every hypothesis for name with whatever fn returns
// for it. fn may return the hypothesis itself, several children, or both.
func (t *Timeline) BranchAgent(name string, fn func(a *agent.AgentState) []*agent.AgentState) {
	bs := t.Branches(name)
	out := make([]*agent.AgentState, 0, len(bs))
	for _, a := range bs {
		out = append(out, fn(a)...)
	}
	if len(out) == 0 {
		out = bs
	}
	if len(out) > len(bs) {
		t.log.WithFields(logrus.Fields{
			"agent":    name,
			"branches": len(out),
		}).Debug("forked")
	}
	t.agents[name] = out
}

// SetBranches replaces the hypotheses for name.
func (t *Timeline) SetBranches(name string, bs []*agent.AgentState) {
	if len(bs) == 0 {
		delete(t.agents, name)
		return
	}
	t.agents[name] = bs
}

// Reset discards every hypothesis for name. The next reference starts
// from the default template.
func (t *Timeline) Reset(name string) {
	t.agents[name] = []*agent.AgentState{agent.New()}
}

// Prune keeps at most max hypotheses for name, preferring fewer strikes.
// Implausible hypotheses are dropped unless nothing else remains.
func (t *Timeline) Prune(name string, max int) {
	bs, ok := t.agents[name]
	if !ok || max <= 0 {
		return
	}
	kept := make([]*agent.AgentState, 0, len(bs))
	for _, b := range bs {
		if !b.Implausible() {
			kept = append(kept, b)
		}
	}
	if len(kept) == 0 {
		kept = append(kept, bs...)
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Strikes < kept[j].Strikes })
	if len(kept) > max {
		kept = kept[:max]
	}
	t.agents[name] = kept
}

// PruneAll applies Prune to every agent.
func (t *Timeline) PruneAll(max int) {
	for name := range t.agents {
		t.Prune(name, max)
	}
}

// AddPlayerHint stores a short-lived value about name.
func (t *Timeline) AddPlayerHint(name, kind, value string) {
	t.hints[hintKey{name, kind}] = value
}

// GetPlayerHint returns a stored hint.
func (t *Timeline) GetPlayerHint(name, kind string) (string, bool) {
	v, ok := t.hints[hintKey{name, kind}]
	return v, ok
}

// ClearPlayerHint forgets a hint.
func (t *Timeline) ClearPlayerHint(name, kind string) {
	delete(t.hints, hintKey{name, kind})
}

// UpdateTime advances the clock to now and ticks every hypothesis by the
// elapsed time. The clock never moves backwards.
func (t *Timeline) UpdateTime(now types.Time) {
	if now <= t.Time {
		if now < t.Time {
			t.log.WithFields(logrus.Fields{"time": t.Time, "slice_time": now}).Warn("clock went backwards, ignoring")
		}
		return
	}
	d := now - t.Time
	t.Time = now
	for _, bs := range t.agents {
		for _, a := range bs {
			a.Wait(d)
		}
	}
}

// Clone returns an independent deep copy of the timeline.
func (t *Timeline) Clone() *Timeline {
	c := &Timeline{
		Me:     t.Me,
		Time:   t.Time,
		agents: make(map[string][]*agent.AgentState, len(t.agents)),
		hints:  make(map[hintKey]string, len(t.hints)),
		log:    t.log,
	}
	for name, bs := range t.agents {
		cs := make([]*agent.AgentState, len(bs))
		for i, b := range bs {
			cs[i] = b.Clone()
			cs[i].ID = b.ID
		}
		c.agents[name] = cs
	}
	for k, v := range t.hints {
		c.hints[k] = v
	}
	return c
}

package venoms

import (
	"fmt"
	"strings"

	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/flags"
)

// Node is one entry of a venom plan.
type Node interface {
	// pick returns the venom this node wants against t, if any.
	pick(t *agent.AgentState, count int, out []string) []string
	String() string
}

// Plan is an ordered list of nodes. Later nodes take priority.
type Plan []Node

// Stick applies the venom for Aff when the target lacks it.
type Stick struct{ Aff flags.FType }

// OneOf escalates to Secondary once Primary has stuck.
type OneOf struct{ Primary, Secondary flags.FType }

// OnTree sticks Aff only while the target's tree is available.
type OnTree struct{ Aff flags.FType }

// OffTree sticks Aff only while the target's tree is on cooldown.
type OffTree struct{ Aff flags.FType }

// IfDo resolves Plan only when the target has Cond.
type IfDo struct {
	Cond flags.FType
	Plan Plan
}

// IfNotDo resolves Plan only when the target lacks Cond.
type IfNotDo struct {
	Cond flags.FType
	Plan Plan
}

func (n Stick) pick(t *agent.AgentState, _ int, out []string) []string {
	if t.Is(n.Aff) {
		return out
	}
	return push(out, n.Aff)
}

func (n OneOf) pick(t *agent.AgentState, _ int, out []string) []string {
	switch {
	case t.Is(n.Primary) && !t.Is(n.Secondary):
		return push(out, n.Secondary)
	case !t.Is(n.Primary):
		return push(out, n.Primary)
	}
	return out
}

func (n OnTree) pick(t *agent.AgentState, c int, out []string) []string {
	if !t.Balances.Ready(agent.Tree) {
		return out
	}
	return Stick(n).pick(t, c, out)
}

func (n OffTree) pick(t *agent.AgentState, c int, out []string) []string {
	if t.Balances.Ready(agent.Tree) {
		return out
	}
	return Stick(n).pick(t, c, out)
}

func (n IfDo) pick(t *agent.AgentState, c int, out []string) []string {
	if !t.Is(n.Cond) {
		return out
	}
	return n.Plan.walk(t, c, out)
}

func (n IfNotDo) pick(t *agent.AgentState, c int, out []string) []string {
	if t.Is(n.Cond) {
		return out
	}
	return n.Plan.walk(t, c, out)
}

func (n Stick) String() string   { return "stick(" + n.Aff.String() + ")" }
func (n OneOf) String() string   { return fmt.Sprintf("one_of(%s, %s)", n.Primary, n.Secondary) }
func (n OnTree) String() string  { return "on_tree(" + n.Aff.String() + ")" }
func (n OffTree) String() string { return "off_tree(" + n.Aff.String() + ")" }
func (n IfDo) String() string    { return fmt.Sprintf("if_do(%s, %s)", n.Cond, n.Plan) }
func (n IfNotDo) String() string { return fmt.Sprintf("if_not_do(%s, %s)", n.Cond, n.Plan) }

func (p Plan) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = n.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Resolve walks p against target and returns at most count venoms. Each
// resolved venom is inserted at the front, so the last matching node ends
// up first. A venom is never listed twice.
func Resolve(p Plan, count int, target *agent.AgentState) []string {
	if count <= 0 {
		return nil
	}
	return p.walk(target, count, nil)
}

func (p Plan) walk(t *agent.AgentState, count int, out []string) []string {
	for _, n := range p {
		if len(out) >= count {
			break
		}
		out = n.pick(t, count, out)
	}
	return out
}

func push(out []string, aff flags.FType) []string {
	v, ok := For(aff)
	if !ok {
		return out
	}
	for _, have := range out {
		if have == v {
			return out
		}
	}
	return append([]string{v}, out...)
}

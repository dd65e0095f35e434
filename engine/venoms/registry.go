package venoms

import (
	"sort"

	"github.com/nathoo/duelcore/engine/flags"
)

// DefaultTag names the plan used for unknown strategy tags.
const DefaultTag = "aggro"

// Aggro is the built-in aggressive lock plan. It is used when no loaded
// plan is registered under DefaultTag.
var Aggro = Plan{
	Stick{flags.Weariness},
	Stick{flags.Clumsiness},
	Stick{flags.Stupidity},
	OneOf{flags.Paralysis, flags.Sensitivity},
	Stick{flags.Anorexia},
	OffTree{flags.Slickness},
	Stick{flags.Asthma},
	IfDo{flags.Asthma, Plan{Stick{flags.Slickness}}},
}

// Registry maps strategy tags to plans.
type Registry struct {
	plans map[string]Plan
}

// NewRegistry returns a registry holding only the built-in aggro plan.
func NewRegistry() *Registry {
	return &Registry{plans: map[string]Plan{DefaultTag: Aggro}}
}

// Register adds or replaces the plan for tag.
func (r *Registry) Register(tag string, p Plan) {
	r.plans[tag] = p
}

// Get returns the plan for tag, falling back to DefaultTag.
func (r *Registry) Get(tag string) Plan {
	if p, ok := r.plans[tag]; ok {
		return p
	}
	if p, ok := r.plans[DefaultTag]; ok {
		return p
	}
	return Aggro
}

// Has reports whether tag has its own plan.
func (r *Registry) Has(tag string) bool {
	_, ok := r.plans[tag]
	return ok
}

// Tags lists the registered tags, sorted.
func (r *Registry) Tags() []string {
	out := make([]string, 0, len(r.plans))
	for tag := range r.plans {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

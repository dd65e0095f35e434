// Package loader loads Lua strategy files into Go values at startup.
// The Lua VM is discarded after loading. No Lua runs after that.
package loader

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/duelcore/engine/actions"
	"github.com/nathoo/duelcore/engine/combo"
	"github.com/nathoo/duelcore/engine/flags"
	"github.com/nathoo/duelcore/engine/venoms"
)

// Strategies is everything the strategy files define.
type Strategies struct {
	Plans   map[string]venoms.Plan
	Graders map[string]*combo.Grader
	Profile *actions.Profile
	// Warnings are problems that did not stop loading.
	Warnings []string
}

// Registry returns a venom registry holding every loaded plan.
func (s *Strategies) Registry() *venoms.Registry {
	r := venoms.NewRegistry()
	for tag, p := range s.Plans {
		r.Register(tag, p)
	}
	return r
}

// Tags lists the strategy tags with a plan or grader, sorted.
func (s *Strategies) Tags() []string {
	seen := map[string]bool{}
	for tag := range s.Plans {
		seen[tag] = true
	}
	for tag := range s.Graders {
		seen[tag] = true
	}
	out := make([]string, 0, len(seen))
	for tag := range seen {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// rawPlan holds a venom plan table before compilation.
type rawPlan struct {
	tag   string
	table *lua.LTable
	order int
}

// rawGrader holds a grader table before compilation.
type rawGrader struct {
	tag   string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// tableToStringMap converts a Lua table to a map[string]string.
func tableToStringMap(tbl *lua.LTable) map[string]string {
	if tbl == nil {
		return nil
	}
	m := map[string]string{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if vs, ok := v.(lua.LString); ok {
				m[string(ks)] = string(vs)
			}
		}
	})
	return m
}

// compile converts all collected Lua data into Strategies.
func compile(coll *collector) (*Strategies, error) {
	st := &Strategies{
		Plans:   map[string]venoms.Plan{},
		Graders: map[string]*combo.Grader{},
		Profile: actions.DefaultProfile(),
	}

	// Profile.
	if coll.profile != nil {
		compileProfile(coll.profile, st.Profile)
	}

	// Venom plans. A later definition of a tag replaces an earlier one.
	sort.SliceStable(coll.plans, func(i, j int) bool { return coll.plans[i].order < coll.plans[j].order })
	for _, raw := range coll.plans {
		p, err := compilePlan(raw.table)
		if err != nil {
			return nil, fmt.Errorf("compiling venom plan %s: %w", raw.tag, err)
		}
		st.Plans[raw.tag] = p
	}

	// Graders.
	for _, raw := range coll.graders {
		g, err := compileGrader(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling grader %s: %w", raw.tag, err)
		}
		st.Graders[raw.tag] = g
	}

	return st, nil
}

// compileProfile overlays the table's fields on p.
func compileProfile(tbl *lua.LTable, p *actions.Profile) {
	if s := getString(tbl, "separator"); s != "" {
		p.Separator = s
	}
	if v := tbl.RawGetString("queue_prefix"); v != lua.LNil {
		p.QueuePrefix = lua.LVAsString(v)
	}
	for name, tmpl := range tableToStringMap(getTable(tbl, "commands")) {
		p.Commands[name] = tmpl
	}
}

// compilePlan compiles an array of node tables.
func compilePlan(tbl *lua.LTable) (venoms.Plan, error) {
	var plan venoms.Plan
	for i := 1; i <= tbl.MaxN(); i++ {
		nt, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("entry %d is not a plan node", i)
		}
		n, err := compileNode(nt)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		plan = append(plan, n)
	}
	return plan, nil
}

func compileNode(tbl *lua.LTable) (venoms.Node, error) {
	typ := getString(tbl, "type")
	aff, err := affliction(getString(tbl, "aff"))
	if err != nil {
		return nil, err
	}
	switch typ {
	case "stick":
		return venoms.Stick{Aff: aff}, nil
	case "one_of":
		alt, err := affliction(getString(tbl, "alt"))
		if err != nil {
			return nil, err
		}
		return venoms.OneOf{Primary: aff, Secondary: alt}, nil
	case "on_tree":
		return venoms.OnTree{Aff: aff}, nil
	case "off_tree":
		return venoms.OffTree{Aff: aff}, nil
	case "if_do", "if_not_do":
		sub := getTable(tbl, "plan")
		if sub == nil {
			return nil, fmt.Errorf("%s(%s) has no plan", typ, aff)
		}
		p, err := compilePlan(sub)
		if err != nil {
			return nil, fmt.Errorf("%s(%s): %w", typ, aff, err)
		}
		if typ == "if_do" {
			return venoms.IfDo{Cond: aff, Plan: p}, nil
		}
		return venoms.IfNotDo{Cond: aff, Plan: p}, nil
	default:
		return nil, fmt.Errorf("unknown plan node type %q", typ)
	}
}

func affliction(name string) (flags.FType, error) {
	f, ok := flags.FromName(name)
	if !ok {
		return 0, fmt.Errorf("unknown affliction %q", name)
	}
	return f, nil
}

func compileGrader(raw rawGrader) (*combo.Grader, error) {
	tbl := raw.table
	g := &combo.Grader{
		Name:             raw.tag,
		ReusePenalty:     getNumber(tbl, "reuse_penalty"),
		LimbBonus:        getNumber(tbl, "limb_bonus"),
		FirstUseBonus:    getNumber(tbl, "first_use_bonus"),
		RepeatBonus:      getNumber(tbl, "repeat_bonus"),
		SynergyBonus:     getNumber(tbl, "synergy_bonus"),
		VenomBonus:       getNumber(tbl, "venom_bonus"),
		FinalStanceBonus: getNumber(tbl, "final_stance_bonus"),
	}
	if name := getString(tbl, "final_stance"); name != "" {
		s, ok := combo.StanceFromName(name)
		if !ok {
			return nil, fmt.Errorf("unknown stance %q", name)
		}
		g.FinalStance, g.HasFinal = s, true
	}
	return g, nil
}

package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerPlanHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// VenomPlan "tag" { node, node, ... } is curried.
	L.SetGlobal("VenomPlan", L.NewFunction(func(L *lua.LState) int {
		tag := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.plans = append(coll.plans, rawPlan{tag: tag, table: tbl, order: coll.nextSourceOrder()})
			return 0
		}))
		return 1
	}))

	// Grader "tag" { reuse_penalty = 1, ... } is curried.
	L.SetGlobal("Grader", L.NewFunction(func(L *lua.LState) int {
		tag := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.graders = append(coll.graders, rawGrader{tag: tag, table: tbl})
			return 0
		}))
		return 1
	}))

	// Profile { separator = "/", queue_prefix = "...", commands = {...} }
	// A later Profile replaces an earlier one.
	L.SetGlobal("Profile", L.NewFunction(func(L *lua.LState) int {
		coll.profile = L.CheckTable(1)
		return 0
	}))
}

// node builds the table every plan helper returns.
func node(L *lua.LState, typ string, fields ...any) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("type", lua.LString(typ))
	for i := 0; i+1 < len(fields); i += 2 {
		key := fields[i].(string)
		switch v := fields[i+1].(type) {
		case string:
			tbl.RawSetString(key, lua.LString(v))
		case lua.LValue:
			tbl.RawSetString(key, v)
		}
	}
	return tbl
}

func registerPlanHelpers(L *lua.LState) {
	// Stick("affliction")
	L.SetGlobal("Stick", L.NewFunction(func(L *lua.LState) int {
		L.Push(node(L, "stick", "aff", L.CheckString(1)))
		return 1
	}))

	// OneOf("primary", "secondary")
	L.SetGlobal("OneOf", L.NewFunction(func(L *lua.LState) int {
		L.Push(node(L, "one_of", "aff", L.CheckString(1), "alt", L.CheckString(2)))
		return 1
	}))

	// OnTree("affliction")
	L.SetGlobal("OnTree", L.NewFunction(func(L *lua.LState) int {
		L.Push(node(L, "on_tree", "aff", L.CheckString(1)))
		return 1
	}))

	// OffTree("affliction")
	L.SetGlobal("OffTree", L.NewFunction(func(L *lua.LState) int {
		L.Push(node(L, "off_tree", "aff", L.CheckString(1)))
		return 1
	}))

	// IfDo("affliction", { node, ... })
	L.SetGlobal("IfDo", L.NewFunction(func(L *lua.LState) int {
		L.Push(node(L, "if_do", "aff", L.CheckString(1), "plan", L.CheckTable(2)))
		return 1
	}))

	// IfNotDo("affliction", { node, ... })
	L.SetGlobal("IfNotDo", L.NewFunction(func(L *lua.LState) int {
		L.Push(node(L, "if_not_do", "aff", L.CheckString(1), "plan", L.CheckTable(2)))
		return 1
	}))
}

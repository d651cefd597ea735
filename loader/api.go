package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the wheel constructors as globals:
//
//	Wheel { title = "Movie night", seed = 42, radius = 160, label_cap = 12 }
//	Item "Inception"
//	Item { label = "The Matrix", color = "#4ECDC4" }
//	Items { "Heat", "Ronin" }
//	Preset "movies" { "The Godfather", "Titanic" }
func registerAPI(L *lua.LState, coll *collector) {
	L.SetGlobal("Wheel", L.NewFunction(func(L *lua.LState) int {
		coll.wheel = L.CheckTable(1)
		return 0
	}))

	// Item accepts a bare label or a table with label/color.
	L.SetGlobal("Item", L.NewFunction(func(L *lua.LState) int {
		switch v := L.Get(1).(type) {
		case lua.LString:
			coll.items = append(coll.items, rawItem{label: string(v)})
		case *lua.LTable:
			coll.items = append(coll.items, rawItem{
				label: getString(v, "label"),
				color: getString(v, "color"),
			})
		default:
			L.ArgError(1, "Item expects a label string or a table")
		}
		return 0
	}))

	// Items { "a", "b", ... } is the bulk form of Item.
	L.SetGlobal("Items", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		for _, label := range stringList(tbl) {
			coll.items = append(coll.items, rawItem{label: label})
		}
		return 0
	}))

	// Preset "name" { ... } is curried: Preset("name") returns a function that takes a table.
	L.SetGlobal("Preset", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.presets = append(coll.presets, rawPreset{name: name, labels: stringList(tbl)})
			return 0
		}))
		return 1
	}))
}

// stringList returns the array part of a table as strings. Numbers are
// converted; other values become empty labels, which validation rejects.
func stringList(tbl *lua.LTable) []string {
	var out []string
	tbl.ForEach(func(k, v lua.LValue) {
		if _, ok := k.(lua.LNumber); !ok {
			return
		}
		out = append(out, lua.LVAsString(v))
	})
	return out
}

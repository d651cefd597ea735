// Package loader loads Lua wheel definitions into Go structs.
// The Lua VM is discarded after loading; no Lua runs at runtime.
package loader

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/spinwheel/types"
)

// Defaults for optional Wheel fields.
const (
	DefaultRadius   = 160.0
	DefaultLabelCap = 12
)

// rawItem holds an item before compilation.
type rawItem struct {
	label string
	color string
}

// rawPreset holds a preset before compilation.
type rawPreset struct {
	name   string
	labels []string
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, and whether it was set.
func getNumber(tbl *lua.LTable, key string) (float64, bool) {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n), true
	}
	return 0, false
}

// compile converts collected Lua tables into a WheelDef.
func compile(coll *collector) (*types.WheelDef, error) {
	def := &types.WheelDef{
		Radius:   DefaultRadius,
		LabelCap: DefaultLabelCap,
		Presets:  map[string][]string{},
	}

	if coll.wheel != nil {
		def.Title = strings.TrimSpace(getString(coll.wheel, "title"))
		if seed, ok := getNumber(coll.wheel, "seed"); ok {
			def.Seed = int64(seed)
		}
		if r, ok := getNumber(coll.wheel, "radius"); ok {
			def.Radius = r
		}
		if c, ok := getNumber(coll.wheel, "label_cap"); ok {
			def.LabelCap = int(c)
		}
	}

	for _, it := range coll.items {
		def.Items = append(def.Items, types.WheelItem{
			Label: strings.TrimSpace(it.label),
			Color: strings.ToUpper(strings.TrimSpace(it.color)),
		})
	}

	for _, p := range coll.presets {
		if _, dup := def.Presets[p.name]; dup {
			return nil, fmt.Errorf("preset %q defined twice", p.name)
		}
		labels := make([]string, len(p.labels))
		for i, l := range p.labels {
			labels[i] = strings.TrimSpace(l)
		}
		def.Presets[p.name] = labels
	}

	return def, nil
}

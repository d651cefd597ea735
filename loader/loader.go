package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/spinwheel/types"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	wheel   *lua.LTable
	items   []rawItem
	presets []rawPreset
}

// Load reads a wheel definition from a .lua file, or from every .lua file
// in a directory (wheel.lua first, the rest alphabetical), then compiles and
// validates it. The Lua VM is discarded after loading.
func Load(path string) (*types.WheelDef, error) {
	files, err := luaFiles(path)
	if err != nil {
		return nil, err
	}

	L := newVM()
	defer L.Close()

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range files {
		if err := L.DoFile(f); err != nil {
			return nil, fmt.Errorf("executing %s: %w", filepath.Base(f), err)
		}
	}

	return build(coll)
}

// LoadString compiles a wheel definition from Lua source. name is used in
// error messages.
func LoadString(name, src string) (*types.WheelDef, error) {
	L := newVM()
	defer L.Close()

	coll := &collector{}
	registerAPI(L, coll)

	if err := L.DoString(src); err != nil {
		return nil, fmt.Errorf("executing %s: %w", name, err)
	}
	return build(coll)
}

func build(coll *collector) (*types.WheelDef, error) {
	def, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling wheel: %w", err)
	}
	if err := validate(def); err != nil {
		return nil, err
	}
	return def, nil
}

// luaFiles resolves path to the list of files to execute.
func luaFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading wheel definition %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading wheel directory %s: %w", path, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", path)
	}

	names = sortedLuaFiles(names)
	files := make([]string, len(names))
	for i, n := range names {
		files[i] = filepath.Join(path, n)
	}
	return files, nil
}

// sortedLuaFiles puts wheel.lua first, the rest alphabetical.
func sortedLuaFiles(files []string) []string {
	sort.Slice(files, func(i, j int) bool {
		if files[i] == "wheel.lua" {
			return true
		}
		if files[j] == "wheel.lua" {
			return false
		}
		return files[i] < files[j]
	})
	return files
}

// blockedGlobals reach outside the definition file or around the
// collector, so wheel files never see them.
var blockedGlobals = []string{
	"dofile", "loadfile", "load", "loadstring", "require", "module",
	"rawset", "rawget", "rawequal", "collectgarbage",
}

// newVM returns a Lua state with base, table, string and math loaded and
// everything in blockedGlobals removed. math.random is removed too: item
// lists must come out the same on every load.
func newVM() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(L)
	}
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	if m, ok := L.GetGlobal("math").(*lua.LTable); ok {
		m.RawSetString("random", lua.LNil)
		m.RawSetString("randomseed", lua.LNil)
	}
	return L
}

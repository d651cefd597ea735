// Package console holds the session state shared by the line CLI and the
// TUI: slash commands, save files, command repeat and trace formatting.
package console

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathoo/spinwheel/engine"
	"github.com/nathoo/spinwheel/types"
)

// DefaultSlot is the save name used when /save or /load has no argument.
const DefaultSlot = "quicksave"

// Session wraps an engine with the per-user bits the front ends share.
type Session struct {
	Engine  *engine.Engine
	SaveDir string
	Trace   bool
	lastCmd string
}

// Reply is the outcome of a slash command.
type Reply struct {
	Lines    []string
	Quit     bool
	Reloaded bool // the wheel was replaced from a save file
}

// NewSession creates a session saving under ~/.spinwheel/saves.
func NewSession(eng *engine.Engine) *Session {
	home, _ := os.UserHomeDir()
	return &Session{Engine: eng, SaveDir: filepath.Join(home, ".spinwheel", "saves")}
}

// IsMeta reports whether input is a slash command.
func IsMeta(input string) bool {
	return strings.HasPrefix(input, "/")
}

// Resolve expands "again"/"g" to the previous command. It returns false
// when there is nothing to repeat.
func (s *Session) Resolve(input string) (string, bool) {
	switch strings.ToLower(input) {
	case "again", "g":
		if s.lastCmd == "" {
			return "", false
		}
		return s.lastCmd, true
	}
	s.lastCmd = input
	return input, true
}

// Meta runs a slash command. keyHelp is appended to /help output.
func (s *Session) Meta(input string, keyHelp ...string) Reply {
	fields := strings.Fields(input)
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch fields[0] {
	case "/quit", "/exit":
		return Reply{Lines: []string{"Goodbye."}, Quit: true}
	case "/save":
		return Reply{Lines: []string{s.save(arg)}}
	case "/load":
		return s.load(arg)
	case "/help":
		return Reply{Lines: append(Help(), keyHelp...)}
	case "/state":
		return Reply{Lines: s.Engine.StatusLines()}
	case "/trace":
		s.Trace = !s.Trace
		if s.Trace {
			return Reply{Lines: []string{"Trace output enabled."}}
		}
		return Reply{Lines: []string{"Trace output disabled."}}
	}
	return Reply{Lines: []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", fields[0])}}
}

func (s *Session) slotPath(name string) string {
	if name == "" {
		name = DefaultSlot
	}
	return filepath.Join(s.SaveDir, name+".json")
}

func (s *Session) save(name string) string {
	data, err := s.Engine.Snapshot()
	if err == nil {
		err = os.MkdirAll(s.SaveDir, 0o755)
	}
	if err == nil {
		err = os.WriteFile(s.slotPath(name), data, 0o644)
	}
	if err != nil {
		return fmt.Sprintf("Save failed: %v", err)
	}
	if name == "" {
		name = DefaultSlot
	}
	return fmt.Sprintf("Wheel saved to %s.", name)
}

func (s *Session) load(name string) Reply {
	data, err := os.ReadFile(s.slotPath(name))
	if err != nil {
		return Reply{Lines: []string{fmt.Sprintf("Load failed: %v", err)}}
	}
	sd, err := s.Engine.Restore(data)
	if err != nil {
		return Reply{Lines: []string{fmt.Sprintf("Load failed: %v", err)}}
	}
	if name == "" {
		name = DefaultSlot
	}
	return Reply{
		Lines:    []string{fmt.Sprintf("Wheel loaded from %s (%d items).", name, len(sd.Items))},
		Reloaded: true,
	}
}

// Help lists the slash commands and wheel commands.
func Help() []string {
	return []string{
		"System:",
		"  /save [name]  - Save the wheel (default: quicksave)",
		"  /load [name]  - Load a saved wheel (default: quicksave)",
		"  /quit         - Exit",
		"  /help         - Show this help",
		"  /state        - Show rotation, phase and selection",
		"  /trace        - Toggle event trace output",
		"",
		"Wheel commands:",
		"  spin (s, roll, pick)     - Spin the wheel",
		"  cancel (stop)            - Abort the current spin",
		"  add <label> (a, +)       - Add an item",
		"  remove <item> (rm, -)    - Remove an item by number or name",
		"  list (ls, l)             - Show the items",
		"  clear (reset)            - Remove every item",
		"  load [preset] (use)      - Replace the items with a preset",
		"  layout (geo)             - Show segment geometry",
		"  status (st)              - Show the last result",
		"  again (g)                - Repeat your last command",
	}
}

// Trace formats events for trace output, or nil when there are none.
func Trace(evs []types.Event) []string {
	if len(evs) == 0 {
		return nil
	}
	lines := []string{fmt.Sprintf("[trace] Events: %d", len(evs))}
	for _, e := range evs {
		if len(e.Data) == 0 {
			lines = append(lines, "[trace]   "+e.Type)
			continue
		}
		lines = append(lines, fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
	}
	return lines
}

// SettledLine announces the winner of a spin.
func SettledLine(label string) string {
	return fmt.Sprintf("The wheel stops on: %s!", label)
}

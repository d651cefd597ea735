package console

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathoo/spinwheel/engine"
	"github.com/nathoo/spinwheel/engine/sched"
	"github.com/nathoo/spinwheel/types"
)

type replay struct {
	vals []float64
	i    int
}

func (r *replay) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

// newTestSession returns a session over a four-item wheel whose next spin
// lands on "c", saving into a temp dir.
func newTestSession(t *testing.T) (*Session, *sched.Queue) {
	t.Helper()
	q := sched.NewQueue()
	eng := engine.New(&types.WheelDef{
		Items: []types.WheelItem{{Label: "a"}, {Label: "b"}, {Label: "c"}, {Label: "d"}},
	}, q)
	eng.Source = &replay{vals: []float64{0.5, 0, 0.25}}
	s := NewSession(eng)
	s.SaveDir = t.TempDir()
	return s, q
}

func TestIsMeta(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"/save", true},
		{"/", true},
		{"spin", false},
		{"add /etc", false},
	}
	for _, tt := range tests {
		if got := IsMeta(tt.input); got != tt.want {
			t.Errorf("IsMeta(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	s, _ := newTestSession(t)
	if _, ok := s.Resolve("again"); ok {
		t.Error("nothing to repeat yet")
	}
	if got, ok := s.Resolve("add Pizza"); !ok || got != "add Pizza" {
		t.Errorf("Resolve = %q, %v", got, ok)
	}
	for _, in := range []string{"again", "G", "g"} {
		if got, ok := s.Resolve(in); !ok || got != "add Pizza" {
			t.Errorf("Resolve(%q) = %q, %v", in, got, ok)
		}
	}
}

func TestMeta_Quit(t *testing.T) {
	s, _ := newTestSession(t)
	for _, cmd := range []string{"/quit", "/exit"} {
		if r := s.Meta(cmd); !r.Quit {
			t.Errorf("%s should quit", cmd)
		}
	}
}

func TestMeta_SaveAndLoad(t *testing.T) {
	s, q := newTestSession(t)
	s.Engine.Step("spin")

	if r := s.Meta("/save"); !strings.HasPrefix(r.Lines[0], "Save failed") {
		t.Errorf("save mid-spin = %v", r.Lines)
	}
	q.RunNext()

	if r := s.Meta("/save"); r.Lines[0] != "Wheel saved to quicksave." {
		t.Fatalf("save = %v", r.Lines)
	}
	if _, err := os.Stat(filepath.Join(s.SaveDir, "quicksave.json")); err != nil {
		t.Fatalf("save file: %v", err)
	}

	s.Engine.Step("clear")
	r := s.Meta("/load")
	if !r.Reloaded || r.Lines[0] != "Wheel loaded from quicksave (4 items)." {
		t.Fatalf("load = %+v", r)
	}
	if sel, ok := s.Engine.Selected(); !ok || sel.Label != "c" {
		t.Errorf("selection after load = %+v, %v", sel, ok)
	}
}

func TestMeta_LoadErrors(t *testing.T) {
	s, _ := newTestSession(t)

	r := s.Meta("/load missing")
	if r.Reloaded || !strings.HasPrefix(r.Lines[0], "Load failed") {
		t.Errorf("missing slot = %+v", r)
	}

	if err := os.WriteFile(filepath.Join(s.SaveDir, "bad.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	r = s.Meta("/load bad")
	if r.Reloaded || !strings.HasPrefix(r.Lines[0], "Load failed") {
		t.Errorf("corrupt slot = %+v", r)
	}
	if len(s.Engine.State.Items) != 4 {
		t.Error("a failed load must leave the wheel alone")
	}
}

func TestMeta_HelpAppendsKeys(t *testing.T) {
	s, _ := newTestSession(t)
	r := s.Meta("/help", "Keys: ctrl+s")
	if len(r.Lines) != len(Help())+1 || r.Lines[len(r.Lines)-1] != "Keys: ctrl+s" {
		t.Errorf("help = %v", r.Lines)
	}
}

func TestMeta_TraceToggles(t *testing.T) {
	s, _ := newTestSession(t)
	if r := s.Meta("/trace"); !s.Trace || r.Lines[0] != "Trace output enabled." {
		t.Errorf("first toggle = %v, trace = %v", r.Lines, s.Trace)
	}
	if r := s.Meta("/trace"); s.Trace || r.Lines[0] != "Trace output disabled." {
		t.Errorf("second toggle = %v, trace = %v", r.Lines, s.Trace)
	}
}

func TestMeta_StateAndUnknown(t *testing.T) {
	s, _ := newTestSession(t)
	if r := s.Meta("/state"); r.Lines[0] != "Items: 4" {
		t.Errorf("state = %v", r.Lines)
	}
	r := s.Meta("/bogus arg")
	if r.Quit || r.Lines[0] != "Unknown command: /bogus. Type /help for available commands." {
		t.Errorf("unknown = %+v", r)
	}
}

func TestTrace(t *testing.T) {
	if Trace(nil) != nil {
		t.Error("no events, no lines")
	}
	got := Trace([]types.Event{
		{Type: "spin_cancelled"},
		{Type: "item_added", Data: map[string]any{"label": "x"}},
	})
	want := []string{
		"[trace] Events: 2",
		"[trace]   spin_cancelled",
		"[trace]   item_added map[label:x]",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("Trace = %q", got)
	}
}

func TestSettledLine(t *testing.T) {
	if got := SettledLine("Tacos"); got != "The wheel stops on: Tacos!" {
		t.Errorf("SettledLine = %q", got)
	}
}

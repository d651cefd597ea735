package engine

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/nathoo/spinwheel/engine/angle"
	"github.com/nathoo/spinwheel/engine/events"
	"github.com/nathoo/spinwheel/engine/layout"
	"github.com/nathoo/spinwheel/engine/sched"
	"github.com/nathoo/spinwheel/engine/state"
	"github.com/nathoo/spinwheel/types"
)

// testDef returns the six-movie wheel with a preset.
func testDef() *types.WheelDef {
	labels := []string{
		"Movie: Inception",
		"Movie: The Matrix",
		"Movie: Interstellar",
		"Movie: The Dark Knight",
		"Movie: Pulp Fiction",
		"Movie: The Shawshank Redemption",
	}
	def := &types.WheelDef{
		Title:   "Test Wheel",
		Seed:    42,
		Presets: map[string][]string{"coin": {"Heads", "Tails"}},
	}
	for _, l := range labels {
		def.Items = append(def.Items, types.WheelItem{Label: l})
	}
	return def
}

func newTestEngine(t *testing.T) (*Engine, *sched.Queue) {
	t.Helper()
	q := sched.NewQueue()
	e := New(testDef(), q)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	e.Now = func() time.Time { return base.Add(q.Now()) }
	return e, q
}

func TestEngine_EndToEnd(t *testing.T) {
	e, q := newTestEngine(t)

	params, ok := e.BeginSpin()
	if !ok {
		t.Fatal("BeginSpin on a six-item wheel should start")
	}
	if !e.Spinning() {
		t.Fatal("engine should be spinning")
	}
	if _, ok := e.Selected(); ok {
		t.Fatal("nothing should be selected mid-spin")
	}
	if e.State.Rotation != params.FinalAngle {
		t.Errorf("rotation = %v, want final angle %v immediately", e.State.Rotation, params.FinalAngle)
	}

	// Just before the deadline nothing happens.
	q.Advance(params.Duration - time.Millisecond)
	if !e.Spinning() {
		t.Fatal("settled before the spin duration elapsed")
	}

	q.Advance(time.Millisecond)
	if e.Spinning() {
		t.Fatal("still spinning after the duration elapsed")
	}

	sel, ok := e.Selected()
	if !ok {
		t.Fatal("expected a selection after settle")
	}
	want, err := angle.Resolve(params.FinalAngle, 6, angle.PointerTop)
	if err != nil {
		t.Fatal(err)
	}
	if sel.Index != want {
		t.Errorf("selected index %d, independent resolve gives %d", sel.Index, want)
	}
	if sel.Label != e.State.Items[want].Label || sel.ItemID != e.State.Items[want].ID {
		t.Errorf("selection %+v does not match item %+v", sel, e.State.Items[want])
	}
	if sel.Angle != params.FinalAngle {
		t.Errorf("resolved against %v, want %v", sel.Angle, params.FinalAngle)
	}
}

func TestEngine_FixedDraws(t *testing.T) {
	e, q := newTestEngine(t)
	if err := e.ReplaceItems([]string{"a", "b", "c", "d"}); err != nil {
		t.Fatal(err)
	}
	e.Source = &fixedSource{vals: []float64{0.5, 0.2, 0.25}}

	params, ok := e.BeginSpin()
	if !ok {
		t.Fatal("spin did not start")
	}
	// 6 turns + 90° → normalized 90 → effective 180 → slice 2.
	if params.FinalAngle != 2250 {
		t.Fatalf("final angle = %v, want 2250", params.FinalAngle)
	}
	q.RunNext()

	sel, ok := e.Selected()
	if !ok || sel.Index != 2 || sel.Label != "c" {
		t.Errorf("selection = %+v, %v; want index 2 label c", sel, ok)
	}
}

func TestEngine_SecondSpinIgnoredWhilePending(t *testing.T) {
	e, q := newTestEngine(t)

	first, ok := e.BeginSpin()
	if !ok {
		t.Fatal("first spin did not start")
	}
	pos := e.RNG.Position()

	if _, ok := e.BeginSpin(); ok {
		t.Fatal("second BeginSpin during a pending spin should be ignored")
	}
	if e.State.Rotation != first.FinalAngle {
		t.Errorf("ignored spin changed rotation to %v", e.State.Rotation)
	}
	if e.RNG.Position() != pos {
		t.Error("ignored spin consumed randomness")
	}
	if q.Pending() != 1 {
		t.Errorf("expected exactly one pending settle, got %d", q.Pending())
	}
	if e.Spins() != 1 {
		t.Errorf("Spins = %d, want 1", e.Spins())
	}

	q.RunNext()
	sel, ok := e.Selected()
	if !ok {
		t.Fatal("no selection after settle")
	}
	if sel.Angle != first.FinalAngle {
		t.Errorf("settle used angle %v, want captured %v", sel.Angle, first.FinalAngle)
	}
}

func TestEngine_RotationAccumulates(t *testing.T) {
	e, q := newTestEngine(t)

	first, _ := e.BeginSpin()
	q.RunNext()
	second, ok := e.BeginSpin()
	if !ok {
		t.Fatal("second spin did not start after the first settled")
	}
	q.RunNext()

	if second.StartAngle != first.FinalAngle {
		t.Errorf("second spin started at %v, want %v", second.StartAngle, first.FinalAngle)
	}
	if !(second.FinalAngle > first.FinalAngle) {
		t.Errorf("rotation did not increase: %v then %v", first.FinalAngle, second.FinalAngle)
	}
	if second.FinalAngle-first.FinalAngle < 5*360 {
		t.Errorf("second spin advanced only %v degrees", second.FinalAngle-first.FinalAngle)
	}
	if e.State.Rotation != second.FinalAngle {
		t.Errorf("rotation = %v, want %v", e.State.Rotation, second.FinalAngle)
	}
}

func TestEngine_NewSpinClearsSelection(t *testing.T) {
	e, q := newTestEngine(t)
	e.BeginSpin()
	q.RunNext()
	if _, ok := e.Selected(); !ok {
		t.Fatal("expected a selection")
	}

	e.BeginSpin()
	if _, ok := e.Selected(); ok {
		t.Error("selection should be cleared when a new spin starts")
	}
}

func TestEngine_EmptyWheelIgnored(t *testing.T) {
	e, q := newTestEngine(t)
	if err := e.Clear(); err != nil {
		t.Fatal(err)
	}

	if _, ok := e.BeginSpin(); ok {
		t.Fatal("BeginSpin on an empty wheel should be ignored")
	}
	if e.Spinning() || q.Pending() != 0 {
		t.Error("ignored spin changed state or scheduled a settle")
	}
	if _, ok := e.Phase().(Idle); !ok {
		t.Errorf("phase = %s, want idle", e.Phase().Name())
	}
}

func TestEngine_CancelSpin(t *testing.T) {
	e, q := newTestEngine(t)
	if e.CancelSpin() {
		t.Fatal("CancelSpin with nothing pending should report false")
	}

	params, _ := e.BeginSpin()
	if !e.CancelSpin() {
		t.Fatal("CancelSpin should report true mid-spin")
	}
	if q.Pending() != 0 {
		t.Errorf("cancelled settle still pending")
	}
	q.Advance(10 * time.Second)
	if _, ok := e.Selected(); ok {
		t.Error("cancelled spin produced a selection")
	}
	if e.State.Rotation != params.FinalAngle {
		t.Errorf("rotation = %v, want it to stay at %v", e.State.Rotation, params.FinalAngle)
	}

	// A new spin works after cancelling.
	if _, ok := e.BeginSpin(); !ok {
		t.Error("spin after cancel should start")
	}
}

func TestEngine_StaleSettleIgnored(t *testing.T) {
	e, _ := newTestEngine(t)
	e.BeginSpin()
	e.settle(99)
	if !e.Spinning() {
		t.Error("settle for a different spin changed the phase")
	}
}

func TestEngine_EditsRefusedWhileSpinning(t *testing.T) {
	e, q := newTestEngine(t)
	e.BeginSpin()

	if _, err := e.AddItem("x"); !errors.Is(err, ErrSpinning) {
		t.Errorf("AddItem: expected ErrSpinning, got %v", err)
	}
	if _, err := e.RemoveItem("item-1"); !errors.Is(err, ErrSpinning) {
		t.Errorf("RemoveItem: expected ErrSpinning, got %v", err)
	}
	if err := e.ReplaceItems([]string{"a"}); !errors.Is(err, ErrSpinning) {
		t.Errorf("ReplaceItems: expected ErrSpinning, got %v", err)
	}
	if _, err := e.LoadPreset("coin"); !errors.Is(err, ErrSpinning) {
		t.Errorf("LoadPreset: expected ErrSpinning, got %v", err)
	}
	if err := e.Clear(); !errors.Is(err, ErrSpinning) {
		t.Errorf("Clear: expected ErrSpinning, got %v", err)
	}
	if len(e.State.Items) != 6 {
		t.Errorf("item list changed mid-spin: %d items", len(e.State.Items))
	}

	q.RunNext()
	if _, err := e.AddItem("x"); err != nil {
		t.Errorf("AddItem after settle: %v", err)
	}
}

func TestEngine_EditsClearSelection(t *testing.T) {
	e, q := newTestEngine(t)
	e.BeginSpin()
	q.RunNext()

	if _, err := e.AddItem("Movie: Avatar"); err != nil {
		t.Fatal(err)
	}
	if _, ok := e.Selected(); ok {
		t.Error("adding an item should clear the selection")
	}
}

func TestEngine_ClearResetsRotation(t *testing.T) {
	e, q := newTestEngine(t)
	e.BeginSpin()
	q.RunNext()
	if err := e.Clear(); err != nil {
		t.Fatal(err)
	}
	if e.State.Rotation != 0 {
		t.Errorf("rotation = %v, want 0", e.State.Rotation)
	}
}

func TestEngine_LoadPreset(t *testing.T) {
	e, _ := newTestEngine(t)
	n, err := e.LoadPreset("coin")
	if err != nil || n != 2 {
		t.Fatalf("LoadPreset = %d, %v", n, err)
	}
	if _, err := e.LoadPreset("nope"); !errors.Is(err, state.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEngine_Events(t *testing.T) {
	e, q := newTestEngine(t)
	var seen []string
	e.Events.Subscribe(events.Any, func(ev types.Event) { seen = append(seen, ev.Type) })

	var settled types.Event
	e.Events.Subscribe(events.SpinSettled, func(ev types.Event) { settled = ev })

	e.BeginSpin()
	q.RunNext()

	if len(seen) != 2 || seen[0] != events.SpinStarted || seen[1] != events.SpinSettled {
		t.Fatalf("events = %v", seen)
	}
	sel, _ := e.Selected()
	if settled.Data["label"] != sel.Label {
		t.Errorf("settled event label %v, want %q", settled.Data["label"], sel.Label)
	}
}

func TestEngine_Logging(t *testing.T) {
	e, q := newTestEngine(t)
	var buf bytes.Buffer
	e.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e.BeginSpin()
	e.BeginSpin()
	q.RunNext()

	out := buf.String()
	for _, want := range []string{"spin started", "spin ignored", "already spinning", "spin settled"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestEngine_Deadline(t *testing.T) {
	e, _ := newTestEngine(t)
	params, _ := e.BeginSpin()
	sp, ok := e.Phase().(Spinning)
	if !ok {
		t.Fatalf("phase = %s", e.Phase().Name())
	}
	if got := sp.Deadline.Sub(sp.Started); got != params.Duration {
		t.Errorf("deadline - start = %v, want %v", got, params.Duration)
	}
}

func TestEngine_SnapshotRestore(t *testing.T) {
	e, q := newTestEngine(t)
	e.BeginSpin()
	q.RunNext()
	sel, _ := e.Selected()

	data, err := e.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	e2, q2 := newTestEngine(t)
	if _, err := e2.Restore(data); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if e2.State.Rotation != e.State.Rotation {
		t.Errorf("rotation = %v, want %v", e2.State.Rotation, e.State.Rotation)
	}
	got, ok := e2.Selected()
	if !ok || got != sel {
		t.Errorf("selection = %+v, %v; want %+v", got, ok, sel)
	}
	if e2.RNG.Position() != e.RNG.Position() {
		t.Errorf("rng position = %d, want %d", e2.RNG.Position(), e.RNG.Position())
	}

	// Both engines now produce the same next spin.
	p1, _ := e.BeginSpin()
	p2, _ := e2.BeginSpin()
	if p1 != p2 {
		t.Errorf("next spins differ after restore:\n  %+v\n  %+v", p1, p2)
	}
	q.RunNext()
	q2.RunNext()
}

func TestEngine_SnapshotRefusedWhileSpinning(t *testing.T) {
	e, _ := newTestEngine(t)
	e.BeginSpin()
	if _, err := e.Snapshot(); !errors.Is(err, ErrSpinning) {
		t.Errorf("expected ErrSpinning, got %v", err)
	}
	if _, err := e.Restore([]byte(`{}`)); !errors.Is(err, ErrSpinning) {
		t.Errorf("expected ErrSpinning, got %v", err)
	}
}

func TestEngine_RestoreDropsMismatchedSelection(t *testing.T) {
	e, _ := newTestEngine(t)
	data := []byte(`{"version":"1","title":"t","items":[{"id":"item-1","label":"a","color":"#FFFFFF"}],
		"rotation":10,"next_id":1,"rng_seed":1,"rng_position":0,
		"selected":{"index":0,"item_id":"item-9","label":"gone","angle":10}}`)
	if _, err := e.Restore(data); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if _, ok := e.Selected(); ok {
		t.Error("selection pointing at a missing item should be dropped")
	}
}

func TestEngine_ManySpinsStayInRange(t *testing.T) {
	e, q := newTestEngine(t)
	counts := make([]int, len(e.State.Items))
	for i := 0; i < 600; i++ {
		if _, ok := e.BeginSpin(); !ok {
			t.Fatalf("spin %d did not start", i)
		}
		q.RunNext()
		sel, ok := e.Selected()
		if !ok {
			t.Fatalf("spin %d: no selection", i)
		}
		counts[sel.Index]++
	}
	for i, c := range counts {
		if c == 0 {
			t.Errorf("item %d never selected in 600 spins", i)
		}
	}
}

func TestEngine_Layout(t *testing.T) {
	e, _ := newTestEngine(t)
	segs := e.Layout(100, layout.Options{})
	if len(segs) != 6 {
		t.Fatalf("segments = %d, want 6", len(segs))
	}
	// Default cap of 12 wraps and truncates the longest label.
	want := []string{"Movie: The", "Shawshank..."}
	if got := segs[5].LabelLines; strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("label lines = %q, want %q", got, want)
	}

	if err := e.Clear(); err != nil {
		t.Fatal(err)
	}
	if segs := e.Layout(100, layout.Options{}); segs != nil {
		t.Errorf("empty wheel layout = %v, want nil", segs)
	}
}

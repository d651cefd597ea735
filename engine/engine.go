// Package engine owns the wheel state and runs spins: it samples spin
// parameters, schedules the settle, and resolves the winning item through
// the angle mapper. Step() wires command parsing to those operations.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nathoo/spinwheel/engine/angle"
	"github.com/nathoo/spinwheel/engine/events"
	"github.com/nathoo/spinwheel/engine/layout"
	"github.com/nathoo/spinwheel/engine/save"
	"github.com/nathoo/spinwheel/engine/sched"
	"github.com/nathoo/spinwheel/engine/state"
	"github.com/nathoo/spinwheel/types"
)

// ErrSpinning is returned by operations that are not allowed mid-spin.
var ErrSpinning = errors.New("wheel is spinning")

// Phase is the spin state machine: Idle, Spinning or Settled.
type Phase interface {
	Name() string
}

// Idle means no spin is pending and nothing is selected.
type Idle struct{}

// Spinning means a settle callback is pending.
type Spinning struct {
	Spin     int // sequence number, guards against stale callbacks
	Params   types.SpinParameters
	Started  time.Time
	Deadline time.Time
}

// Settled holds the outcome of the last spin.
type Settled struct {
	Spin int
	types.Selection
}

func (Idle) Name() string     { return "idle" }
func (Spinning) Name() string { return "spinning" }
func (Settled) Name() string  { return "settled" }

// Engine holds the wheel state, the random source and the spin phase.
// It is not safe for concurrent use; callers serialise access (the
// schedulers in package sched make settle callbacks follow the same rule).
type Engine struct {
	State   *types.WheelState
	RNG     *RNG
	Sched   sched.Scheduler
	Events  *events.Bus
	Logger  *slog.Logger
	Pointer float64
	Now     func() time.Time

	// Source overrides RNG for spin sampling when set.
	Source Source

	phase      Phase
	pending    sched.Handle
	spins      int
	collecting bool // true while Step runs
	emitted    []types.Event
}

// New creates an engine for the given wheel definition. Settle callbacks
// are scheduled on sc.
func New(def *types.WheelDef, sc sched.Scheduler) *Engine {
	s := state.NewState(def)
	return &Engine{
		State:   s,
		RNG:     NewRNG(s.RNGSeed),
		Sched:   sc,
		Events:  &events.Bus{},
		Logger:  slog.New(slog.DiscardHandler),
		Pointer: angle.PointerTop,
		Now:     time.Now,
		phase:   Idle{},
	}
}

// Phase returns the current spin phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Spinning reports whether a settle is pending.
func (e *Engine) Spinning() bool {
	_, ok := e.phase.(Spinning)
	return ok
}

// Selected returns the outcome of the last spin, if it is still current.
func (e *Engine) Selected() (types.Selection, bool) {
	if s, ok := e.phase.(Settled); ok {
		return s.Selection, true
	}
	return types.Selection{}, false
}

// Spins returns how many spins have been started.
func (e *Engine) Spins() int {
	return e.spins
}

// BeginSpin starts a spin. It is a no-op returning false when the wheel is
// empty or already spinning. On success the rotation jumps to the final
// angle immediately and exactly one settle is scheduled.
func (e *Engine) BeginSpin() (types.SpinParameters, bool) {
	if len(e.State.Items) == 0 {
		e.Logger.Debug("spin ignored", "reason", "no items")
		return types.SpinParameters{}, false
	}
	if e.Spinning() {
		e.Logger.Debug("spin ignored", "reason", "already spinning")
		return types.SpinParameters{}, false
	}

	var src Source = e.RNG
	if e.Source != nil {
		src = e.Source
	}
	params := SampleSpin(src, e.State.Rotation)

	e.spins++
	spin := e.spins
	now := e.Now()
	e.State.Rotation = params.FinalAngle
	e.phase = Spinning{
		Spin:     spin,
		Params:   params,
		Started:  now,
		Deadline: now.Add(params.Duration),
	}
	e.pending = e.Sched.AfterFunc(params.Duration, func() { e.settle(spin) })

	e.Logger.Info("spin started",
		"spin", spin,
		"duration", params.Duration,
		"final_angle", params.FinalAngle,
		"items", len(e.State.Items))
	e.emit(types.Event{Type: events.SpinStarted, Data: map[string]any{
		"spin":        spin,
		"duration_ms": params.Duration.Milliseconds(),
		"final_angle": params.FinalAngle,
	}})
	return params, true
}

// settle resolves the winner for the given spin. Callbacks for a spin that
// is no longer current are ignored.
func (e *Engine) settle(spin int) {
	sp, ok := e.phase.(Spinning)
	if !ok || sp.Spin != spin {
		return
	}
	e.pending = nil

	final := sp.Params.FinalAngle
	idx, err := angle.Resolve(final, len(e.State.Items), e.Pointer)
	if err != nil {
		e.Logger.Error("settle failed", "spin", spin, "error", err)
		e.phase = Idle{}
		return
	}

	item := e.State.Items[idx]
	sel := types.Selection{Index: idx, ItemID: item.ID, Label: item.Label, Angle: final}
	e.phase = Settled{Spin: spin, Selection: sel}

	e.Logger.Info("spin settled", "spin", spin, "index", idx, "label", item.Label)
	e.emit(types.Event{Type: events.SpinSettled, Data: map[string]any{
		"spin":    spin,
		"index":   idx,
		"item_id": item.ID,
		"label":   item.Label,
	}})
}

// CancelSpin aborts the pending settle. The rotation keeps its target
// angle. Reports false when nothing was spinning.
func (e *Engine) CancelSpin() bool {
	sp, ok := e.phase.(Spinning)
	if !ok {
		return false
	}
	if e.pending != nil {
		e.pending.Cancel()
		e.pending = nil
	}
	e.phase = Idle{}
	e.Logger.Info("spin cancelled", "spin", sp.Spin)
	e.emit(types.Event{Type: events.SpinCancelled, Data: map[string]any{"spin": sp.Spin}})
	return true
}

// AddItem appends an item. Clears the current selection.
func (e *Engine) AddItem(label string) (types.WheelItem, error) {
	if e.Spinning() {
		return types.WheelItem{}, ErrSpinning
	}
	item, err := state.AddItem(e.State, label)
	if err != nil {
		return item, err
	}
	e.phase = Idle{}
	e.emit(types.Event{Type: events.ItemAdded, Data: map[string]any{"id": item.ID, "label": item.Label}})
	return item, nil
}

// RemoveItem deletes an item by ID. Clears the current selection.
func (e *Engine) RemoveItem(id string) (types.WheelItem, error) {
	if e.Spinning() {
		return types.WheelItem{}, ErrSpinning
	}
	item, err := state.RemoveItem(e.State, id)
	if err != nil {
		return item, err
	}
	e.phase = Idle{}
	e.emit(types.Event{Type: events.ItemRemoved, Data: map[string]any{"id": item.ID, "label": item.Label}})
	return item, nil
}

// ReplaceItems swaps in a new list built from labels.
func (e *Engine) ReplaceItems(labels []string) error {
	if e.Spinning() {
		return ErrSpinning
	}
	if err := state.ReplaceItems(e.State, labels); err != nil {
		return err
	}
	e.phase = Idle{}
	e.emit(types.Event{Type: events.ItemsReplaced, Data: map[string]any{"count": len(labels)}})
	return nil
}

// LoadPreset replaces the items with a named preset.
func (e *Engine) LoadPreset(name string) (int, error) {
	labels, ok := e.State.Presets[name]
	if !ok {
		return 0, fmt.Errorf("%w: preset %q", state.ErrNotFound, name)
	}
	if err := e.ReplaceItems(labels); err != nil {
		return 0, err
	}
	return len(labels), nil
}

// Clear removes every item and resets the rotation to zero.
func (e *Engine) Clear() error {
	if e.Spinning() {
		return ErrSpinning
	}
	state.Clear(e.State)
	e.phase = Idle{}
	e.emit(types.Event{Type: events.ItemsCleared})
	return nil
}

// Layout returns the segment geometry for the current items.
func (e *Engine) Layout(radius float64, opts layout.Options) []types.SegmentGeometry {
	return layout.Segments(e.State.Items, radius, opts)
}

// Snapshot serialises the wheel. Not allowed mid-spin.
func (e *Engine) Snapshot() ([]byte, error) {
	if e.Spinning() {
		return nil, ErrSpinning
	}
	var sel *types.Selection
	if s, ok := e.Selected(); ok {
		sel = &s
	}
	return save.Save(e.State, e.RNG.Position(), sel)
}

// Restore replaces the wheel with a snapshot and restores the RNG position.
func (e *Engine) Restore(data []byte) (*save.SaveData, error) {
	if e.Spinning() {
		return nil, ErrSpinning
	}
	sd, err := save.Load(data)
	if err != nil {
		return nil, err
	}
	save.ApplySave(e.State, sd)
	e.RNG = RestoreRNG(sd.RNGSeed, sd.RNGPosition)

	e.phase = Idle{}
	if sel := sd.Selected; sel != nil {
		// Only keep a selection that still points at the same item.
		if sel.Index >= 0 && sel.Index < len(e.State.Items) && e.State.Items[sel.Index].ID == sel.ItemID {
			e.phase = Settled{Selection: *sel}
		}
	}
	return sd, nil
}

// emit dispatches an event and, inside Step, records it for the result.
func (e *Engine) emit(ev types.Event) {
	if e.collecting {
		e.emitted = append(e.emitted, ev)
	}
	e.Events.Dispatch([]types.Event{ev})
}

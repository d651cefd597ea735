package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/spinwheel/engine/angle"
	"github.com/nathoo/spinwheel/engine/layout"
	"github.com/nathoo/spinwheel/engine/parser"
	"github.com/nathoo/spinwheel/engine/resolve"
	"github.com/nathoo/spinwheel/engine/state"
	"github.com/nathoo/spinwheel/types"
)

// StepRadius is the wheel radius used by the "layout" command.
const StepRadius = 160.0

// Step processes one user command and returns the result.
func (e *Engine) Step(input string) types.Result {
	e.collecting = true
	e.emitted = nil
	defer func() {
		e.collecting = false
		e.emitted = nil
	}()

	out := e.run(parser.Parse(input))
	return types.Result{
		Events: append([]types.Event(nil), e.emitted...),
		Output: out,
	}
}

func (e *Engine) run(cmd types.Command) []string {
	switch cmd.Verb {
	case "":
		return []string{"What do you want to do?"}
	case "spin":
		return e.stepSpin()
	case "cancel":
		if e.CancelSpin() {
			return []string{"Spin cancelled."}
		}
		return []string{"The wheel is not spinning."}
	case "add":
		return e.stepAdd(cmd.Arg)
	case "remove":
		return e.stepRemove(cmd.Arg)
	case "list":
		return e.stepList()
	case "clear":
		if err := e.Clear(); err != nil {
			return []string{errorLine(err)}
		}
		return []string{"Cleared all items."}
	case "load":
		return e.stepLoad(cmd.Arg)
	case "layout":
		return e.stepLayout()
	case "status":
		return e.StatusLines()
	default:
		return []string{fmt.Sprintf("I don't know how to %q. Type /help for commands.", cmd.Verb)}
	}
}

func (e *Engine) stepSpin() []string {
	if len(e.State.Items) == 0 {
		return []string{"Add some items to the wheel first."}
	}
	p, ok := e.BeginSpin()
	if !ok {
		return []string{"The wheel is already spinning."}
	}
	return []string{fmt.Sprintf("The wheel is spinning... (%.1fs, %.1f turns)",
		p.Duration.Seconds(), (p.FinalAngle-p.StartAngle)/360)}
}

func (e *Engine) stepAdd(label string) []string {
	if strings.TrimSpace(label) == "" {
		return []string{"Add what?"}
	}
	item, err := e.AddItem(label)
	if err != nil {
		return []string{errorLine(err)}
	}
	return []string{fmt.Sprintf("Added %q.", item.Label)}
}

func (e *Engine) stepRemove(ref string) []string {
	if strings.TrimSpace(ref) == "" {
		return []string{"Remove which item?"}
	}
	if e.Spinning() {
		return []string{errorLine(ErrSpinning)}
	}
	id, err := resolve.Item(e.State.Items, ref)
	if err != nil {
		return []string{capitalize(err.Error()) + "."}
	}
	item, err := e.RemoveItem(id)
	if err != nil {
		return []string{errorLine(err)}
	}
	return []string{fmt.Sprintf("Removed %q.", item.Label)}
}

func (e *Engine) stepList() []string {
	if len(e.State.Items) == 0 {
		return []string{"No items added yet. Add some items to start spinning!"}
	}
	lines := []string{fmt.Sprintf("Items (%d):", len(e.State.Items))}
	for i, it := range e.State.Items {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, it.Label))
	}
	return lines
}

func (e *Engine) stepLoad(name string) []string {
	if name == "" {
		if len(e.State.Presets) == 0 {
			return []string{"No presets defined."}
		}
		names := make([]string, 0, len(e.State.Presets))
		for n := range e.State.Presets {
			names = append(names, n)
		}
		sort.Strings(names)
		return []string{"Presets: " + strings.Join(names, ", ")}
	}
	n, err := e.LoadPreset(name)
	if err != nil {
		if errors.Is(err, state.ErrNotFound) {
			return []string{fmt.Sprintf("No preset named %q.", name)}
		}
		return []string{errorLine(err)}
	}
	return []string{fmt.Sprintf("Loaded preset %q (%d items).", name, n)}
}

func (e *Engine) stepLayout() []string {
	segs := e.Layout(StepRadius, layout.Options{})
	if len(segs) == 0 {
		return []string{"The wheel is empty."}
	}
	lines := []string{fmt.Sprintf("Layout (radius %.0f):", StepRadius)}
	for _, s := range segs {
		lines = append(lines, fmt.Sprintf("  %d. %-14s %6.1f°–%6.1f°  label at (%.1f, %.1f) rotated %.1f°  %s",
			s.Index+1, strings.Join(s.LabelLines, " / "),
			s.StartAngle, s.EndAngle,
			s.LabelAnchor.X, s.LabelAnchor.Y, s.LabelRotation,
			s.Item.Color))
	}
	return lines
}

// StatusLines describes the current phase, rotation and selection.
func (e *Engine) StatusLines() []string {
	lines := []string{
		fmt.Sprintf("Items: %d", len(e.State.Items)),
		fmt.Sprintf("Rotation: %.2f° (%.2f° normalized)", e.State.Rotation, angle.Normalize(e.State.Rotation)),
	}
	switch p := e.phase.(type) {
	case Spinning:
		lines = append(lines, fmt.Sprintf("Spinning: spin #%d, settles in %.1fs", p.Spin, p.Params.Duration.Seconds()))
	case Settled:
		lines = append(lines, fmt.Sprintf("Selected: %s", p.Label))
	default:
		lines = append(lines, "Idle.")
	}
	return lines
}

func errorLine(err error) string {
	switch {
	case errors.Is(err, ErrSpinning):
		return "Wait for the wheel to stop."
	case errors.Is(err, state.ErrEmptyLabel):
		return "Labels can't be empty."
	default:
		return capitalize(err.Error()) + "."
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

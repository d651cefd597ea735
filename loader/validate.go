package loader

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/nathoo/spinwheel/types"
)

// ValidationError collects all validation errors.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

var hexColor = regexp.MustCompile(`^#[0-9A-F]{6}$`)

// MinLabelCap is the smallest cap that still leaves room for "x...".
const MinLabelCap = 4

// validate checks the compiled definition for consistency.
func validate(def *types.WheelDef) error {
	ve := &ValidationError{}

	if def.Title == "" {
		ve.Errors = append(ve.Errors, "Wheel.title is required")
	}
	if def.Radius <= 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("Wheel.radius must be positive, got %v", def.Radius))
	}
	if def.LabelCap < MinLabelCap {
		ve.Errors = append(ve.Errors, fmt.Sprintf("Wheel.label_cap must be at least %d, got %d", MinLabelCap, def.LabelCap))
	}
	if len(def.Items) == 0 && len(def.Presets) == 0 {
		ve.Errors = append(ve.Errors, "at least one Item or Preset is required")
	}

	for i, it := range def.Items {
		if it.Label == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("item %d: label is empty", i+1))
		}
		if it.Color != "" && !hexColor.MatchString(it.Color) {
			ve.Errors = append(ve.Errors, fmt.Sprintf("item %d (%s): color %q is not #RRGGBB", i+1, it.Label, it.Color))
		}
	}

	names := make([]string, 0, len(def.Presets))
	for name := range def.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		labels := def.Presets[name]
		if strings.TrimSpace(name) == "" {
			ve.Errors = append(ve.Errors, "preset name is empty")
		}
		if len(labels) == 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("preset %q has no items", name))
		}
		for i, l := range labels {
			if l == "" {
				ve.Errors = append(ve.Errors, fmt.Sprintf("preset %q item %d: label is empty", name, i+1))
			}
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

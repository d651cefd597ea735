// Package state manages the wheel's item list: creation from a definition,
// editing, ID assignment and palette colors.
package state

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/spinwheel/types"
)

var (
	ErrEmptyLabel = errors.New("label must not be empty")
	ErrNotFound   = errors.New("item not found")
)

// Palette is the color cycle for new items.
var Palette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7", "#DDA0DD",
	"#FF8CC8", "#A8E6CF", "#FFD3B6", "#FFAAA5", "#FF8B94", "#A8DADC",
}

// ColorFor returns the palette color for the item at position i.
func ColorFor(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// NewState creates a fresh wheel state from a definition. Items get
// sequential IDs; items without a color take the palette color for their
// position.
func NewState(def *types.WheelDef) *types.WheelState {
	s := &types.WheelState{
		Title:   def.Title,
		Items:   []types.WheelItem{},
		RNGSeed: def.Seed,
		Presets: map[string][]string{},
	}
	for name, labels := range def.Presets {
		s.Presets[name] = append([]string(nil), labels...)
	}
	for _, it := range def.Items {
		item := types.WheelItem{
			ID:    nextID(s),
			Label: strings.TrimSpace(it.Label),
			Color: it.Color,
		}
		if item.Color == "" {
			item.Color = ColorFor(len(s.Items))
		}
		s.Items = append(s.Items, item)
	}
	return s
}

func nextID(s *types.WheelState) string {
	s.NextID++
	return fmt.Sprintf("item-%d", s.NextID)
}

// AddItem appends a new item with the next palette color.
func AddItem(s *types.WheelState, label string) (types.WheelItem, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return types.WheelItem{}, ErrEmptyLabel
	}
	item := types.WheelItem{
		ID:    nextID(s),
		Label: label,
		Color: ColorFor(len(s.Items)),
	}
	s.Items = append(s.Items, item)
	return item, nil
}

// RemoveItem deletes the item with the given ID and returns it.
func RemoveItem(s *types.WheelState, id string) (types.WheelItem, error) {
	for i, it := range s.Items {
		if it.ID == id {
			s.Items = append(s.Items[:i:i], s.Items[i+1:]...)
			return it, nil
		}
	}
	return types.WheelItem{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ReplaceItems swaps the whole list for new items built from labels.
// Colors restart from the beginning of the palette.
func ReplaceItems(s *types.WheelState, labels []string) error {
	items := make([]types.WheelItem, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			return ErrEmptyLabel
		}
		items = append(items, types.WheelItem{
			ID:    nextID(s),
			Label: l,
			Color: ColorFor(len(items)),
		})
	}
	s.Items = items
	return nil
}

// Clear removes all items and resets the rotation.
func Clear(s *types.WheelState) {
	s.Items = []types.WheelItem{}
	s.Rotation = 0
}

// FindItem returns the item with the given ID and its position.
func FindItem(s *types.WheelState, id string) (types.WheelItem, int, bool) {
	for i, it := range s.Items {
		if it.ID == id {
			return it, i, true
		}
	}
	return types.WheelItem{}, -1, false
}

// Labels returns the item labels in wheel order.
func Labels(s *types.WheelState) []string {
	out := make([]string, len(s.Items))
	for i, it := range s.Items {
		out[i] = it.Label
	}
	return out
}

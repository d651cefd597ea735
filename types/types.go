// Package types defines the shared data structures for the spinwheel engine.
// This package contains only type definitions: no logic, no methods.
package types

import "time"

// WheelItem is one entry on the wheel. Identity is the ID; two items may
// share a label or a color.
type WheelItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"` // "#RRGGBB"
}

// WheelState is the complete mutable wheel state.
type WheelState struct {
	Title    string
	Items    []WheelItem
	Rotation float64 // accumulated degrees, unbounded
	NextID   int     // counter for generated item IDs
	RNGSeed  int64
	Presets  map[string][]string // preset name → labels
}

// SpinParameters are sampled once per spin and drive the pending settle.
type SpinParameters struct {
	Duration       time.Duration `json:"duration"`
	ExtraRotations float64       `json:"extra_rotations"` // in [5, 10)
	Offset         float64       `json:"offset"`          // in [0, 360)
	StartAngle     float64       `json:"start_angle"`
	FinalAngle     float64       `json:"final_angle"`
}

// Selection is the outcome of a settled spin.
type Selection struct {
	Index  int     `json:"index"`
	ItemID string  `json:"item_id"`
	Label  string  `json:"label"`
	Angle  float64 `json:"angle"` // rotation the pointer was resolved against
}

// Point is a 2D coordinate in the wheel's frame (y grows downward).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SegmentGeometry is the layout of a single pie slice.
type SegmentGeometry struct {
	Index         int       `json:"index"`
	Item          WheelItem `json:"item"`
	StartAngle    float64   `json:"start_angle"` // degrees, clockwise from +x
	EndAngle      float64   `json:"end_angle"`
	BisectorAngle float64   `json:"bisector_angle"`
	Start         Point     `json:"start"` // arc start on the rim
	End           Point     `json:"end"`   // arc end on the rim
	LargeArc      bool      `json:"large_arc"`
	FullCircle    bool      `json:"full_circle"` // single-item wheel
	Path          string    `json:"path"`        // SVG path data
	LabelAnchor   Point     `json:"label_anchor"`
	LabelRotation float64   `json:"label_rotation"`
	LabelLines    []string  `json:"label_lines"`
}

// Command is the parsed representation of a user command.
type Command struct {
	Verb string
	Arg  string // optional, original case preserved
}

// Event is emitted after the engine changes state.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single engine step.
type Result struct {
	Events []Event
	Output []string
}

// WheelDef holds a wheel definition loaded from Lua.
type WheelDef struct {
	Title    string
	Seed     int64
	Radius   float64
	LabelCap int
	Items    []WheelItem // IDs are assigned when the state is created
	Presets  map[string][]string
}

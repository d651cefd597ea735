package httpapi

import (
	"time"

	"github.com/nathoo/spinwheel/engine"
	"github.com/nathoo/spinwheel/types"
)

// WheelResponse is the JSON shape returned by GET /api/wheel.
type WheelResponse struct {
	Title    string            `json:"title"`
	Items    []types.WheelItem `json:"items"`
	Rotation float64           `json:"rotation"`
	Phase    string            `json:"phase"`
	Spin     *SpinResponse     `json:"spin,omitempty"`
	Selected *types.Selection  `json:"selected,omitempty"`
}

// SpinResponse describes a pending spin.
type SpinResponse struct {
	Spin           int       `json:"spin"`
	DurationMS     int64     `json:"duration_ms"`
	ExtraRotations float64   `json:"extra_rotations"`
	Offset         float64   `json:"offset"`
	StartAngle     float64   `json:"start_angle"`
	FinalAngle     float64   `json:"final_angle"`
	SettlesAt      time.Time `json:"settles_at"`
}

type LayoutResponse struct {
	Radius   float64                 `json:"radius"`
	Rotation float64                 `json:"rotation"`
	Segments []types.SegmentGeometry `json:"segments"`
}

type AddItemRequest struct {
	Label string `json:"label"`
}

type ReplaceItemsRequest struct {
	Labels []string `json:"labels"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toWheelResponse(eng *engine.Engine) WheelResponse {
	s := eng.State
	resp := WheelResponse{
		Title:    s.Title,
		Items:    append([]types.WheelItem{}, s.Items...),
		Rotation: s.Rotation,
		Phase:    eng.Phase().Name(),
	}
	switch p := eng.Phase().(type) {
	case engine.Spinning:
		sr := toSpinResponse(p)
		resp.Spin = &sr
	case engine.Settled:
		sel := p.Selection
		resp.Selected = &sel
	}
	return resp
}

func toSpinResponse(p engine.Spinning) SpinResponse {
	return SpinResponse{
		Spin:           p.Spin,
		DurationMS:     p.Params.Duration.Milliseconds(),
		ExtraRotations: p.Params.ExtraRotations,
		Offset:         p.Params.Offset,
		StartAngle:     p.Params.StartAngle,
		FinalAngle:     p.Params.FinalAngle,
		SettlesAt:      p.Deadline.UTC(),
	}
}

// Package angle maps a wheel's absolute rotation to the segment under the
// pointer.
//
// Angles are degrees measured clockwise from the positive x-axis in screen
// coordinates (y grows downward). A positive rotation turns the wheel
// clockwise, so a point at local angle a is drawn at a+rotation.
package angle

import (
	"errors"
	"fmt"
	"math"
)

// PointerTop is the pointer position for a marker at the top of the wheel.
const PointerTop = 270.0

// ErrInvalidState is returned when a selection cannot be resolved at all.
var ErrInvalidState = errors.New("invalid wheel state")

// Normalize reduces any finite angle into [0, 360).
func Normalize(deg float64) float64 {
	n := math.Mod(deg, 360)
	if n < 0 {
		n += 360
	}
	// -1e-15 + 360 rounds up to exactly 360.
	if n >= 360 {
		n = 0
	}
	return n
}

// Resolve returns the index of the segment sitting under the pointer once
// the wheel has rotated to finalAngle. A boundary belongs to the segment it
// starts.
func Resolve(finalAngle float64, segmentCount int, pointerAngle float64) (int, error) {
	if segmentCount < 1 {
		return 0, fmt.Errorf("%w: segment count %d", ErrInvalidState, segmentCount)
	}
	if !finite(finalAngle) || !finite(pointerAngle) {
		return 0, fmt.Errorf("%w: non-finite angle", ErrInvalidState)
	}

	effective := Normalize(Normalize(pointerAngle) - Normalize(finalAngle) + 360)
	width := 360 / float64(segmentCount)

	idx := int(math.Floor(effective/width)) % segmentCount
	if idx < 0 {
		idx += segmentCount
	}
	return idx, nil
}

// SegmentWidth returns the angular width of one of n equal segments.
func SegmentWidth(n int) float64 {
	if n < 1 {
		return 0
	}
	return 360 / float64(n)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

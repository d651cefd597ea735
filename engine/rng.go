package engine

import (
	"math/rand"
	"time"

	"github.com/nathoo/spinwheel/types"
)

// Spin parameter ranges. Each is [min, min+span).
const (
	MinSpinDuration  = 3000 * time.Millisecond
	SpinDurationSpan = 2000 * time.Millisecond
	MinExtraTurns    = 5.0
	ExtraTurnsSpan   = 5.0
)

// Source is a uniform random source on [0, 1).
type Source interface {
	Float64() float64
}

// RNG is the engine's default Source: a seeded math/rand generator that
// counts its draws so a save file can replay it to the same point.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG seeds a fresh generator.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 {
	r.pos++
	return r.src.Float64()
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position is the number of draws taken so far.
func (r *RNG) Position() int64 {
	return r.pos
}

// RestoreRNG reseeds and discards position draws.
func RestoreRNG(seed, position int64) *RNG {
	r := NewRNG(seed)
	for r.pos < position {
		r.Float64()
	}
	return r
}

// SampleSpin draws duration, extra turns and offset, in that order, and
// returns parameters for a spin starting at start.
func SampleSpin(src Source, start float64) types.SpinParameters {
	duration := MinSpinDuration + time.Duration(src.Float64()*float64(SpinDurationSpan))
	turns := MinExtraTurns + src.Float64()*ExtraTurnsSpan
	offset := src.Float64() * 360

	return types.SpinParameters{
		Duration:       duration,
		ExtraRotations: turns,
		Offset:         offset,
		StartAngle:     start,
		FinalAngle:     start + turns*360 + offset,
	}
}

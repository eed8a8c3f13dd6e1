// Package flock implements the boids simulation that drives the animated
// background: a fixed population of units steered by alignment, cohesion,
// separation and pointer avoidance on a toroidal viewport.
package flock

import (
	"gonum.org/v1/gonum/spatial/r2"

	"flockbg/internal/core"
)

// Unit is a single simulated agent.
type Unit struct {
	Pos r2.Vec
	Vel r2.Vec
	// Acc is the per-frame force accumulator; it is zero between frames.
	Acc r2.Vec

	Size  float64
	Speed float64 // preferred speed, the hard cap on |Vel|

	Color  Color
	Bounds r2.Vec // viewport width (X) and height (Y)
}

// NewUnit draws a unit at a random position inside bounds.
func NewUnit(rng *core.RNG, bounds r2.Vec, cfg Config) Unit {
	u := Unit{
		Pos:    r2.Vec{X: rng.Range(0, bounds.X), Y: rng.Range(0, bounds.Y)},
		Vel:    r2.Vec{X: rng.Symmetric(cfg.InitialVelocity), Y: rng.Symmetric(cfg.InitialVelocity)},
		Size:   rng.Range(cfg.SizeMin, cfg.SizeMax),
		Speed:  rng.Range(cfg.SpeedMin, cfg.SpeedMax),
		Color:  cfg.Palette.DarkUnit,
		Bounds: bounds,
	}
	u.Vel = limit(u.Vel, u.Speed)
	return u
}

// Heading returns the direction of travel in radians.
func (u Unit) Heading() float64 {
	return heading(u.Vel)
}

package flock

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Integrate applies force to u for one frame and returns the moved unit.
// The speed cap is enforced before the position update and the result is
// wrapped into [0, Bounds.X) x [0, Bounds.Y).
func Integrate(u Unit, force r2.Vec) Unit {
	if finite(force) {
		u.Acc = r2.Add(u.Acc, force)
	}
	u.Vel = limit(r2.Add(u.Vel, u.Acc), u.Speed)
	u.Pos = r2.Add(u.Pos, u.Vel)
	u.Pos.X = wrap(u.Pos.X, u.Bounds.X)
	u.Pos.Y = wrap(u.Pos.Y, u.Bounds.Y)
	u.Acc = r2.Vec{}
	return u
}

// limit rescales v to max when it is longer, preserving direction.
func limit(v r2.Vec, max float64) r2.Vec {
	m := r2.Norm(v)
	if m > max && m > 0 {
		return r2.Scale(max/m, v)
	}
	return v
}

// wrap re-enters a coordinate that left [0, size) at the opposite edge.
func wrap(x, size float64) float64 {
	if size <= 0 {
		return 0
	}
	if x < 0 {
		x += size
	} else if x >= size {
		x -= size
	}
	if x < 0 || x >= size {
		// Only reachable after the viewport shrank under a unit.
		x = math.Mod(x, size)
		if x < 0 {
			x += size
		}
		if x >= size {
			x = 0
		}
	}
	return x
}

func finite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

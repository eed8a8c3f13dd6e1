package flock

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// MinDistance is the distance below which two points are treated as
// coincident and exert no push on each other.
const MinDistance = 1e-6

// Pointer is the host pointer position. The zero value is the inactive sentinel.
type Pointer struct {
	Pos    r2.Vec
	Active bool
}

// Weights scales the three flocking rules before they are summed.
type Weights struct {
	Alignment  float64
	Cohesion   float64
	Separation float64
}

// Forces is the per-rule breakdown of one unit's steering for one frame.
type Forces struct {
	Alignment  r2.Vec
	Cohesion   r2.Vec
	Separation r2.Vec
	Avoidance  r2.Vec
	Neighbors  int
}

// Total is the weighted sum applied to the unit. Avoidance is not weighted.
func (f Forces) Total(w Weights) r2.Vec {
	sum := r2.Scale(w.Alignment, f.Alignment)
	sum = r2.Add(sum, r2.Scale(w.Cohesion, f.Cohesion))
	sum = r2.Add(sum, r2.Scale(w.Separation, f.Separation))
	return r2.Add(sum, f.Avoidance)
}

// Neighborhood accumulates what a unit perceives of the others.
type Neighborhood struct {
	VelSum     r2.Vec
	PosSum     r2.Vec
	Separation r2.Vec
	Count      int
}

// Scan gathers the neighborhood of pop[self]. When candidates is nil every
// unit is considered; otherwise only the listed indices are.
func Scan(self int, pop []Unit, candidates []int, cfg *Config) Neighborhood {
	var nb Neighborhood
	u := pop[self]
	visit := func(j int) {
		if j == self {
			return
		}
		o := pop[j]
		d := r2.Norm(r2.Sub(u.Pos, o.Pos))
		if d < cfg.PerceptionRadius {
			nb.VelSum = r2.Add(nb.VelSum, o.Vel)
			nb.PosSum = r2.Add(nb.PosSum, o.Pos)
			nb.Count++
		}
		if d < cfg.SeparationRadius {
			nb.Separation = r2.Add(nb.Separation, Repel(u.Pos, o.Pos, cfg.Falloff))
		}
	}
	if candidates == nil {
		for j := range pop {
			visit(j)
		}
		return nb
	}
	for _, j := range candidates {
		visit(j)
	}
	return nb
}

// Alignment steers u toward the average heading of n neighbors whose
// velocities sum to velSum.
func Alignment(u Unit, velSum r2.Vec, n int) r2.Vec {
	if n == 0 {
		return r2.Vec{}
	}
	avg := r2.Scale(1/float64(n), velSum)
	m := r2.Norm(avg)
	if m < MinDistance {
		return r2.Vec{}
	}
	return r2.Sub(r2.Scale(u.Speed/m, avg), u.Vel)
}

// Cohesion steers u toward the centroid of n neighbors whose positions sum
// to posSum.
func Cohesion(u Unit, posSum r2.Vec, n int) r2.Vec {
	if n == 0 {
		return r2.Vec{}
	}
	toCenter := r2.Sub(r2.Scale(1/float64(n), posSum), u.Pos)
	if m := r2.Norm(toCenter); m > MinDistance {
		toCenter = r2.Scale(u.Speed/m, toCenter)
	} else {
		toCenter = r2.Vec{}
	}
	return r2.Sub(toCenter, u.Vel)
}

// Repel returns the push on a point at self away from a source at other.
// Coincident points yield zero.
func Repel(self, other r2.Vec, falloff Falloff) r2.Vec {
	diff := r2.Sub(self, other)
	d := r2.Norm(diff)
	if d < MinDistance {
		return r2.Vec{}
	}
	if falloff == FalloffUnit {
		return r2.Scale(1/d, diff)
	}
	return r2.Scale(1/(d*d), diff)
}

// Avoidance pushes u away from an active pointer within radius.
func Avoidance(u Unit, p Pointer, radius, gain float64, falloff Falloff) r2.Vec {
	if !p.Active {
		return r2.Vec{}
	}
	if r2.Norm(r2.Sub(u.Pos, p.Pos)) >= radius {
		return r2.Vec{}
	}
	return r2.Scale(gain, Repel(u.Pos, p.Pos, falloff))
}

// Steer computes the full force breakdown for pop[self].
func Steer(self int, pop []Unit, candidates []int, p Pointer, cfg *Config) Forces {
	u := pop[self]
	nb := Scan(self, pop, candidates, cfg)
	return Forces{
		Alignment:  Alignment(u, nb.VelSum, nb.Count),
		Cohesion:   Cohesion(u, nb.PosSum, nb.Count),
		Separation: nb.Separation,
		Avoidance:  Avoidance(u, p, cfg.AvoidRadius, cfg.AvoidGain, cfg.Falloff),
		Neighbors:  nb.Count,
	}
}

func heading(v r2.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

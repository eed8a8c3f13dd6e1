package flock

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Polarization returns the flock order parameter: the length of the mean unit
// heading, 1 when every unit flies the same way and near 0 when headings are
// random. Stationary units are ignored.
func Polarization(units []Unit) float64 {
	var sum r2.Vec
	n := 0
	for _, u := range units {
		m := r2.Norm(u.Vel)
		if m < MinDistance {
			continue
		}
		sum = r2.Add(sum, r2.Scale(1/m, u.Vel))
		n++
	}
	if n == 0 {
		return 0
	}
	return r2.Norm(sum) / float64(n)
}

// MeanNearestDistance returns the average distance from each unit to its
// closest other unit.
func MeanNearestDistance(units []Unit) float64 {
	if len(units) < 2 {
		return 0
	}
	total := 0.0
	for i, u := range units {
		best := math.Inf(1)
		for j, o := range units {
			if i == j {
				continue
			}
			if d := r2.Norm(r2.Sub(u.Pos, o.Pos)); d < best {
				best = d
			}
		}
		total += best
	}
	return total / float64(len(units))
}

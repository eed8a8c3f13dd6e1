package flock

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestIntegrateClampsSpeed(t *testing.T) {
	u := unitAt(50, 50, 1, 0)
	u.Bounds = r2.Vec{X: 100, Y: 100}
	got := Integrate(u, r2.Vec{X: 3, Y: 4})
	if s := r2.Norm(got.Vel); math.Abs(s-u.Speed) > 1e-12 {
		t.Fatalf("speed %v should be clamped to %v", s, u.Speed)
	}
	dir := r2.Unit(r2.Vec{X: 4, Y: 4})
	if r2.Norm(r2.Sub(r2.Unit(got.Vel), dir)) > 1e-12 {
		t.Fatalf("clamp must preserve direction, got %v", got.Vel)
	}
	if got.Pos != r2.Add(u.Pos, got.Vel) {
		t.Fatalf("position should advance by the clamped velocity, got %v", got.Pos)
	}
	if got.Acc != (r2.Vec{}) {
		t.Fatalf("acceleration must be cleared, got %v", got.Acc)
	}
}

func TestIntegrateIgnoresNonFiniteForce(t *testing.T) {
	u := unitAt(50, 50, 1, 0)
	u.Bounds = r2.Vec{X: 100, Y: 100}
	got := Integrate(u, r2.Vec{X: math.NaN(), Y: math.Inf(1)})
	if got.Vel != u.Vel || got.Pos != (r2.Vec{X: 51, Y: 50}) {
		t.Fatalf("non-finite force should be dropped, got pos=%v vel=%v", got.Pos, got.Vel)
	}
}

func TestWrap(t *testing.T) {
	cases := []struct {
		x, size, want float64
	}{
		{x: 5, size: 10, want: 5},
		{x: 0, size: 10, want: 0},
		{x: -1, size: 10, want: 9},
		{x: 10, size: 10, want: 0},
		{x: 11.5, size: 10, want: 1.5},
		{x: -1e-18, size: 10, want: 0},
		{x: 95, size: 10, want: 5},
		{x: -35, size: 10, want: 5},
		{x: 3, size: 0, want: 0},
	}
	for _, c := range cases {
		got := wrap(c.x, c.size)
		if math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("wrap(%v, %v) = %v, want %v", c.x, c.size, got, c.want)
		}
		if c.size > 0 && (got < 0 || got >= c.size) {
			t.Fatalf("wrap(%v, %v) = %v outside [0,%v)", c.x, c.size, got, c.size)
		}
	}
}

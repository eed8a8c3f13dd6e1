package flock

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"flockbg/internal/core"
)

func newTestFlock(cfg Config, units ...Unit) *Flock {
	f := New(cfg)
	bounds := f.bounds()
	for i := range units {
		if units[i].Bounds == (r2.Vec{}) {
			units[i].Bounds = bounds
		}
	}
	f.units = units
	f.next = make([]Unit, len(units))
	return f
}

func unitAt(x, y, vx, vy float64) Unit {
	return Unit{Pos: r2.Vec{X: x, Y: y}, Vel: r2.Vec{X: vx, Y: vy}, Size: 3, Speed: 2}
}

func checkInvariants(t *testing.T, f *Flock, frame int) {
	t.Helper()
	w, h := float64(f.cfg.Width), float64(f.cfg.Height)
	for i, u := range f.units {
		if !finite(u.Pos) || !finite(u.Vel) {
			t.Fatalf("frame %d unit %d not finite: pos=%v vel=%v", frame, i, u.Pos, u.Vel)
		}
		if s := r2.Norm(u.Vel); s > u.Speed+1e-9 {
			t.Fatalf("frame %d unit %d speed %.6f exceeds cap %.6f", frame, i, s, u.Speed)
		}
		if u.Pos.X < 0 || u.Pos.X >= w || u.Pos.Y < 0 || u.Pos.Y >= h {
			t.Fatalf("frame %d unit %d escaped viewport %vx%v: %v", frame, i, w, h, u.Pos)
		}
		if u.Acc != (r2.Vec{}) {
			t.Fatalf("frame %d unit %d acceleration not cleared: %v", frame, i, u.Acc)
		}
	}
}

func TestSpeedAndBoundsHoldEveryFrame(t *testing.T) {
	for _, mode := range []UpdateMode{UpdateSimultaneous, UpdateSequential} {
		cfg := DefaultConfig()
		cfg.Width, cfg.Height = 200, 150
		cfg.UpdateMode = mode
		f := New(cfg)
		f.Reset(7)
		checkInvariants(t, f, 0)
		for frame := 1; frame <= 400; frame++ {
			// Sweep the pointer across the viewport, leaving it every so often.
			if frame%50 < 40 {
				f.SetPointer(float64(frame%200), float64(frame%150))
			} else {
				f.ClearPointer()
			}
			f.Step()
			checkInvariants(t, f, frame)
		}
	}
}

func TestIsolatedUnitKeepsVelocity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 1000, 1000
	f := newTestFlock(cfg,
		unitAt(100, 100, 1.5, 0.5),
		unitAt(800, 800, -1, 0),
	)
	want := f.units[0].Vel
	for frame := 0; frame < 20; frame++ {
		forces := f.Forces(0)
		if forces.Neighbors != 0 || forces.Total(cfg.Weights()) != (r2.Vec{}) {
			t.Fatalf("isolated unit should feel no force, got %+v", forces)
		}
		f.Step()
		if f.units[0].Vel != want {
			t.Fatalf("frame %d velocity changed to %v, want %v", frame, f.units[0].Vel, want)
		}
	}
	if got := f.units[0].Pos; math.Abs(got.X-130) > 1e-9 || math.Abs(got.Y-110) > 1e-9 {
		t.Fatalf("isolated unit should travel in a straight line, at %v", got)
	}
}

func TestIsolatedUnitWrapsAtEdge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 100, 100
	f := newTestFlock(cfg, unitAt(99.5, 50, 1, 0))
	f.Step()
	if got := f.units[0].Pos.X; math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected wrap to x=0.5, got %v", got)
	}
	if f.units[0].Vel.X != 1 {
		t.Fatalf("wrap must not change velocity, got %v", f.units[0].Vel)
	}
}

func TestAlignmentConvergence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 4000, 4000
	cfg.PerceptionRadius = 5000
	cfg.SeparationRadius = 10
	f := New(cfg)

	rng := core.NewRNG(3)
	units := make([]Unit, 30)
	for i := range units {
		units[i] = NewUnit(rng, f.bounds(), cfg)
		units[i].Pos = r2.Vec{X: rng.Range(1900, 2100), Y: rng.Range(1900, 2100)}
	}
	f = newTestFlock(cfg, units...)

	before := Polarization(f.units)
	for i := 0; i < 60; i++ {
		f.Step()
	}
	after := Polarization(f.units)
	if after < before+0.3 || after < 0.85 {
		t.Fatalf("expected headings to align, polarization %.3f -> %.3f", before, after)
	}
}

func TestSeparationPushesApart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AlignmentWeight = 0
	cfg.CohesionWeight = 0
	f := newTestFlock(cfg, unitAt(100, 100, 0, 0), unitAt(110, 100, 0, 0))
	before := r2.Norm(r2.Sub(f.units[0].Pos, f.units[1].Pos))
	f.Step()
	after := r2.Norm(r2.Sub(f.units[0].Pos, f.units[1].Pos))
	if after <= before {
		t.Fatalf("separation should increase distance: %.4f -> %.4f", before, after)
	}
}

func TestPointerRepelsUnit(t *testing.T) {
	cfg := DefaultConfig()
	f := newTestFlock(cfg, unitAt(100, 100, 0, 0))
	f.SetPointer(150, 100)
	forces := f.Forces(0)
	if forces.Avoidance.X >= 0 || forces.Avoidance.Y != 0 {
		t.Fatalf("expected push in -x away from pointer, got %v", forces.Avoidance)
	}
	f.Step()
	if f.units[0].Vel.X >= 0 {
		t.Fatalf("unit should move away from pointer, vel %v", f.units[0].Vel)
	}

	f.SetPointer(100+cfg.AvoidRadius+1, 100)
	if got := f.Forces(0).Avoidance; got != (r2.Vec{}) {
		t.Fatalf("pointer outside avoid radius should not push, got %v", got)
	}
	f.ClearPointer()
	if got := f.Forces(0).Avoidance; got != (r2.Vec{}) {
		t.Fatalf("inactive pointer should not push, got %v", got)
	}
}

func TestCoincidentUnitsStayFinite(t *testing.T) {
	for _, falloff := range []Falloff{FalloffInverse, FalloffUnit} {
		cfg := DefaultConfig()
		cfg.Falloff = falloff
		f := newTestFlock(cfg, unitAt(50, 50, 1, 0), unitAt(50, 50, 0, 1))
		f.SetPointer(50, 50)
		for frame := 1; frame <= 5; frame++ {
			f.Step()
			checkInvariants(t, f, frame)
		}
	}
}

func TestTwoUnitScenario(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 100, 100
	f := newTestFlock(cfg, unitAt(0, 0, 1, 0), unitAt(10, 0, -1, 0))

	a, b := f.Forces(0), f.Forces(1)
	if a.Separation.X >= 0 || b.Separation.X <= 0 {
		t.Fatalf("separation should point apart, got a=%v b=%v", a.Separation, b.Separation)
	}
	if a.Neighbors != 1 || b.Neighbors != 1 {
		t.Fatalf("each unit should see the other, got %d and %d", a.Neighbors, b.Neighbors)
	}

	f.Step()
	va, vb := f.units[0].Vel, f.units[1].Vel
	if math.Abs(va.X-0.85) > 1e-9 || math.Abs(vb.X+0.85) > 1e-9 || va.Y != 0 || vb.Y != 0 {
		t.Fatalf("unexpected velocities after one frame: a=%v b=%v", va, vb)
	}
	if pa, pb := f.units[0].Pos, f.units[1].Pos; math.Abs(pa.X-0.85) > 1e-9 || math.Abs(pb.X-9.15) > 1e-9 {
		t.Fatalf("unexpected positions after one frame: a=%v b=%v", pa, pb)
	}
}

func TestSimultaneousUpdateIgnoresOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 400, 400
	cfg.Count = 25
	src := New(cfg)
	src.Reset(11)

	forward := newTestFlock(cfg, append([]Unit(nil), src.units...)...)
	reversed := make([]Unit, len(src.units))
	for i, u := range src.units {
		reversed[len(reversed)-1-i] = u
	}
	backward := newTestFlock(cfg, reversed...)

	for i := 0; i < 5; i++ {
		forward.Step()
		backward.Step()
	}
	n := len(forward.units)
	for i := range forward.units {
		a, b := forward.units[i], backward.units[n-1-i]
		if r2.Norm(r2.Sub(a.Pos, b.Pos)) > 1e-9 || r2.Norm(r2.Sub(a.Vel, b.Vel)) > 1e-9 {
			t.Fatalf("unit %d diverged with population order: %v vs %v", i, a.Pos, b.Pos)
		}
	}
}

func TestSpatialIndexMatchesScan(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 300, 240
	cfg.Count = 120
	plain := New(cfg)
	plain.Reset(5)
	cfg.SpatialIndex = true
	indexed := New(cfg)
	indexed.Reset(5)

	for frame := 0; frame < 50; frame++ {
		plain.Step()
		indexed.Step()
	}
	for i := range plain.units {
		a, b := plain.units[i], indexed.units[i]
		if r2.Norm(r2.Sub(a.Pos, b.Pos)) > 1e-12 || r2.Norm(r2.Sub(a.Vel, b.Vel)) > 1e-12 {
			t.Fatalf("unit %d differs with spatial index: %v vs %v", i, a.Pos, b.Pos)
		}
	}
}

func TestResizeKeepsPopulation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 400, 300
	f := New(cfg)
	f.Reset(1)
	first := &f.units[0]
	count := len(f.units)

	f.Resize(50, 40)
	if len(f.units) != count || first != &f.units[0] {
		t.Fatal("resize must not recreate the population")
	}
	for i, u := range f.units {
		if u.Bounds != (r2.Vec{X: 50, Y: 40}) {
			t.Fatalf("unit %d bounds not updated: %v", i, u.Bounds)
		}
	}
	f.Step()
	checkInvariants(t, f, 1)
}

func TestResetDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	f := New(cfg)
	f.Reset(99)
	initial := append([]Unit(nil), f.units...)
	f.Step()
	f.Reset(99)
	for i := range initial {
		if initial[i] != f.units[i] {
			t.Fatalf("Reset with the same seed should redraw unit %d identically", i)
		}
	}
	f.Reset(100)
	if initial[0] == f.units[0] {
		t.Fatal("different seeds should produce different populations")
	}
}

func TestNewUnitRespectsRanges(t *testing.T) {
	cfg := DefaultConfig()
	rng := core.NewRNG(8)
	bounds := r2.Vec{X: 640, Y: 480}
	for i := 0; i < 500; i++ {
		u := NewUnit(rng, bounds, cfg)
		if u.Size < cfg.SizeMin || u.Size >= cfg.SizeMax {
			t.Fatalf("size %v outside [%v,%v)", u.Size, cfg.SizeMin, cfg.SizeMax)
		}
		if u.Speed < cfg.SpeedMin || u.Speed >= cfg.SpeedMax {
			t.Fatalf("speed %v outside [%v,%v)", u.Speed, cfg.SpeedMin, cfg.SpeedMax)
		}
		if r2.Norm(u.Vel) > u.Speed+1e-9 {
			t.Fatalf("initial velocity %v exceeds speed %v", u.Vel, u.Speed)
		}
		if u.Pos.X < 0 || u.Pos.X >= bounds.X || u.Pos.Y < 0 || u.Pos.Y >= bounds.Y {
			t.Fatalf("initial position %v outside viewport", u.Pos)
		}
	}
}

func TestRegisteredAsSim(t *testing.T) {
	factory, ok := core.Sims()["boids"]
	if !ok {
		t.Fatal("boids sim not registered")
	}
	sim := factory(map[string]string{"w": "320", "h": "200", "count": "12"})
	sim.Reset(0)
	if sim.Size() != (core.Size{W: 320, H: 200}) {
		t.Fatalf("unexpected size %+v", sim.Size())
	}
	if got := len(sim.(*Flock).Units()); got != 12 {
		t.Fatalf("expected 12 units, got %d", got)
	}
}

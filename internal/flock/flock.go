package flock

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"flockbg/internal/core"
)

// Flock owns the population and advances it one frame per Step.
type Flock struct {
	cfg Config

	units []Unit
	next  []Unit

	pointer Pointer
	dark    bool

	grid *core.BucketGrid
	near []int
}

// New returns an empty flock. The population is drawn by Reset.
func New(cfg Config) *Flock {
	cfg.Normalize()
	return &Flock{cfg: cfg, dark: true}
}

// Name returns the simulation identifier.
func (f *Flock) Name() string { return "boids" }

// Size reports the current viewport.
func (f *Flock) Size() core.Size { return core.Size{W: f.cfg.Width, H: f.cfg.Height} }

// Config returns a copy of the active configuration.
func (f *Flock) Config() Config { return f.cfg }

// Units exposes the current population. Callers must not retain it across Step.
func (f *Flock) Units() []Unit { return f.units }

// Populated reports whether Reset has drawn a population.
func (f *Flock) Populated() bool { return len(f.units) > 0 }

// Reset draws a fresh population deterministically from seed. A zero seed
// falls back to the configured seed.
func (f *Flock) Reset(seed int64) {
	if seed == 0 {
		seed = f.cfg.Seed
	}
	rng := core.NewRNG(seed)
	bounds := f.bounds()
	f.units = make([]Unit, f.cfg.Count)
	f.next = make([]Unit, f.cfg.Count)
	for i := range f.units {
		f.units[i] = NewUnit(rng, bounds, f.cfg)
	}
	f.Recolor()
}

// Discard drops the population.
func (f *Flock) Discard() {
	f.units = nil
	f.next = nil
}

// Resize updates the viewport of every unit in place.
func (f *Flock) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	f.cfg.Width, f.cfg.Height = w, h
	bounds := f.bounds()
	for i := range f.units {
		f.units[i].Bounds = bounds
	}
	if f.grid != nil {
		f.grid.Resize(bounds.X, bounds.Y, f.grid.Cell)
	}
}

// SetPointer marks the pointer active at (x, y).
func (f *Flock) SetPointer(x, y float64) {
	f.pointer = Pointer{Pos: r2.Vec{X: x, Y: y}, Active: true}
}

// ClearPointer sets the pointer to the inactive sentinel.
func (f *Flock) ClearPointer() { f.pointer = Pointer{} }

// Pointer returns the current pointer state.
func (f *Flock) Pointer() Pointer { return f.pointer }

// SetDark selects the dark or light theme.
func (f *Flock) SetDark(dark bool) { f.dark = dark }

// Dark reports whether the dark theme is active.
func (f *Flock) Dark() bool { return f.dark }

// UnitColor returns the unit color for the active theme.
func (f *Flock) UnitColor() Color {
	if f.dark {
		return f.cfg.Palette.DarkUnit
	}
	return f.cfg.Palette.LightUnit
}

// Background returns the background color for the active theme.
func (f *Flock) Background() Color {
	if f.dark {
		return f.cfg.Palette.DarkBackground
	}
	return f.cfg.Palette.LightBackground
}

// Recolor applies the active theme to every unit.
func (f *Flock) Recolor() {
	c := f.UnitColor()
	for i := range f.units {
		f.units[i].Color = c
	}
}

// Forces computes the steering breakdown of unit i against the current state
// without advancing anything.
func (f *Flock) Forces(i int) Forces {
	return Steer(i, f.units, nil, f.pointer, &f.cfg)
}

// Step advances every unit by one frame.
func (f *Flock) Step() {
	if len(f.units) == 0 {
		return
	}
	w := f.cfg.Weights()
	if f.cfg.UpdateMode == UpdateSequential {
		for i := range f.units {
			forces := Steer(i, f.units, nil, f.pointer, &f.cfg)
			f.units[i] = Integrate(f.units[i], forces.Total(w))
		}
		return
	}

	f.index()
	for i := range f.units {
		forces := Steer(i, f.units, f.candidates(i), f.pointer, &f.cfg)
		f.next[i] = Integrate(f.units[i], forces.Total(w))
	}
	f.units, f.next = f.next, f.units
}

func (f *Flock) bounds() r2.Vec {
	return r2.Vec{X: float64(f.cfg.Width), Y: float64(f.cfg.Height)}
}

// index rebuilds the bucket grid from the frame-start positions.
func (f *Flock) index() {
	if !f.cfg.SpatialIndex {
		return
	}
	b := f.bounds()
	cell := math.Max(f.cfg.PerceptionRadius, 1)
	if f.grid == nil || f.grid.Cell != cell {
		f.grid = core.NewBucketGrid(b.X, b.Y, cell)
	} else {
		f.grid.Clear()
	}
	for i, u := range f.units {
		f.grid.Insert(i, u.Pos.X, u.Pos.Y)
	}
}

// candidates lists the units near unit i in index order, or nil when every
// unit must be scanned.
func (f *Flock) candidates(i int) []int {
	if !f.cfg.SpatialIndex || f.grid == nil || f.cfg.UpdateMode == UpdateSequential {
		return nil
	}
	p := f.units[i].Pos
	f.near = f.grid.Near(f.near[:0], p.X, p.Y, f.cfg.PerceptionRadius)
	sort.Ints(f.near)
	return f.near
}

func init() {
	core.Register("boids", func(cfg map[string]string) core.Sim {
		return New(FromMap(cfg))
	})
}

package flock

import (
	"errors"
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrNoSurface is returned by Mount when the host has nothing to draw on.
var ErrNoSurface = errors.New("flock: drawing surface unavailable")

// State is the lifecycle state of a Driver.
type State int

const (
	// Unmounted drivers draw nothing and hold no population.
	Unmounted State = iota
	// Running drivers advance and draw one frame per Frame call.
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "unmounted"
}

// Triangle is an oriented unit outline; vertex 0 is the tip.
type Triangle [3]r2.Vec

// Centroid returns the mean of the three vertices.
func (t Triangle) Centroid() r2.Vec {
	return r2.Scale(1.0/3, r2.Add(r2.Add(t[0], t[1]), t[2]))
}

// Heading returns the direction the tip points in radians.
func (t Triangle) Heading() float64 {
	return heading(r2.Sub(t[0], t.Centroid()))
}

// TriangleOf returns the outline of u: a wedge twice as long as it is wide,
// rotated to the current velocity and placed at the unit position.
func TriangleOf(u Unit) Triangle {
	a := u.Heading()
	sin, cos := math.Sincos(a)
	local := Triangle{
		{X: 2 * u.Size, Y: 0},
		{X: -u.Size, Y: -u.Size},
		{X: -u.Size, Y: u.Size},
	}
	var t Triangle
	for i, p := range local {
		t[i] = r2.Vec{
			X: u.Pos.X + p.X*cos - p.Y*sin,
			Y: u.Pos.Y + p.X*sin + p.Y*cos,
		}
	}
	return t
}

// Surface receives the draw calls of one frame.
type Surface interface {
	Clear(bg color.Color)
	FillTriangle(t Triangle, c color.Color)
}

// Driver owns a flock for the lifetime of a host view and turns host input
// into frames.
type Driver struct {
	flock *Flock
	state State
}

// NewDriver wraps f. The driver starts unmounted.
func NewDriver(f *Flock) *Driver {
	return &Driver{flock: f}
}

// Flock exposes the driven simulation.
func (d *Driver) Flock() *Flock { return d.flock }

// State reports the lifecycle state.
func (d *Driver) State() State { return d.state }

// Mount starts the frame loop on a surface of w x h. The population is drawn
// on the first mount only.
func (d *Driver) Mount(w, h int) error {
	if w <= 0 || h <= 0 {
		return ErrNoSurface
	}
	d.flock.Resize(w, h)
	if !d.flock.Populated() {
		d.flock.Reset(d.flock.cfg.Seed)
	}
	d.state = Running
	return nil
}

// Unmount stops the loop and discards the population.
func (d *Driver) Unmount() {
	d.state = Unmounted
	d.flock.ClearPointer()
	d.flock.Discard()
}

// Resize propagates new surface dimensions to every unit.
func (d *Driver) Resize(w, h int) { d.flock.Resize(w, h) }

// PointerMove records the pointer position read by the next frame.
func (d *Driver) PointerMove(x, y float64) { d.flock.SetPointer(x, y) }

// PointerLeave marks the pointer inactive.
func (d *Driver) PointerLeave() { d.flock.ClearPointer() }

// SetDark selects the theme used by the next frame.
func (d *Driver) SetDark(dark bool) { d.flock.SetDark(dark) }

// Frame advances the flock one step and draws it onto s. It reports whether
// anything was drawn.
func (d *Driver) Frame(s Surface) bool {
	if !d.Advance() {
		return false
	}
	d.Draw(s)
	return true
}

// Advance applies the theme and steps the flock once without drawing. Hosts
// that separate update from draw call Advance then Draw.
func (d *Driver) Advance() bool {
	if d.state != Running {
		return false
	}
	d.flock.Recolor()
	d.flock.Step()
	return true
}

// Draw paints the current state without advancing it.
func (d *Driver) Draw(s Surface) {
	s.Clear(d.flock.Background())
	for _, u := range d.flock.units {
		s.FillTriangle(TriangleOf(u), u.Color)
	}
}

//go:build ebiten

package ui

import (
	"image/color"

	"flockbg/internal/flock"
	"flockbg/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gonum.org/v1/gonum/spatial/r2"
)

// Overlay draws optional debugging visuals on top of the flock.
type Overlay struct {
	flock *flock.Flock

	showRadii    bool
	showHeadings bool
	showPointer  bool
	focus        int
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(f *flock.Flock) *Overlay {
	return &Overlay{flock: f}
}

// Update toggles layers from the keyboard. 1 shows the perception and
// separation radii of the focused unit, 2 the velocity of every unit, 3 the
// pointer avoidance radius. Tab moves the focus to the next unit.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showRadii = !o.showRadii
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showHeadings = !o.showHeadings
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showPointer = !o.showPointer
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		o.focus++
	}
}

// Draw renders the enabled layers.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o == nil || o.flock == nil {
		return
	}
	units := o.flock.Units()
	cfg := o.flock.Config()
	accent := color.RGBA{R: 56, G: 189, B: 248, A: 255}
	warn := color.RGBA{R: 248, G: 113, B: 113, A: 255}

	if o.showRadii && len(units) > 0 {
		u := units[o.focus%len(units)]
		x, y := float32(u.Pos.X), float32(u.Pos.Y)
		vector.StrokeCircle(screen, x, y, float32(cfg.PerceptionRadius), 1, render.Fade(accent, 0.6), true)
		vector.StrokeCircle(screen, x, y, float32(cfg.SeparationRadius), 1, render.Fade(warn, 0.6), true)
		for _, other := range units {
			d := r2.Sub(other.Pos, u.Pos)
			if d.X*d.X+d.Y*d.Y > cfg.PerceptionRadius*cfg.PerceptionRadius {
				continue
			}
			vector.StrokeLine(screen, x, y, float32(other.Pos.X), float32(other.Pos.Y), 1, render.Fade(accent, 0.25), true)
		}
	}

	if o.showHeadings {
		for _, u := range units {
			end := r2.Add(u.Pos, r2.Scale(8, u.Vel))
			vector.StrokeLine(screen, float32(u.Pos.X), float32(u.Pos.Y), float32(end.X), float32(end.Y), 1, render.Fade(accent, 0.5), true)
		}
	}

	if o.showPointer {
		if p := o.flock.Pointer(); p.Active {
			vector.StrokeCircle(screen, float32(p.Pos.X), float32(p.Pos.Y), float32(cfg.AvoidRadius), 1, render.Fade(warn, 0.4), true)
		}
	}
}

//go:build ebiten

package app

import (
	"log"

	"flockbg/internal/flock"
	"flockbg/internal/prefs"
	"flockbg/internal/render"
	"flockbg/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 280

// Game adapts a flock driver to the ebiten.Game interface.
type Game struct {
	driver  *flock.Driver
	painter *render.Painter
	hud     *ui.HUD
	overlay *ui.Overlay

	prefs     prefs.Prefs
	prefsPath string

	width, height int
}

// New constructs a Game around f. prefsPath may be empty, in which case
// theme and HUD changes are not persisted.
func New(f *flock.Flock, p prefs.Prefs, prefsPath string) *Game {
	d := flock.NewDriver(f)
	d.SetDark(p.Dark())
	return &Game{
		driver:    d,
		painter:   render.NewPainter(),
		hud:       ui.NewHUD(f, hudWidth),
		overlay:   ui.NewOverlay(f),
		prefs:     p,
		prefsPath: prefsPath,
	}
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.driver.Unmount()
		return ebiten.Termination
	}
	if g.driver.State() != flock.Running {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.prefs.SetDark(!g.prefs.Dark())
		g.driver.SetDark(g.prefs.Dark())
		g.savePrefs()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.prefs.ShowHUD = !g.prefs.ShowHUD
		g.savePrefs()
	}

	g.updatePointer()
	if g.prefs.ShowHUD {
		g.hud.Update(g.width)
	}
	g.overlay.Update()

	g.driver.Advance()
	return nil
}

// updatePointer feeds the cursor to the flock. A cursor outside the window
// or over the HUD counts as the pointer leaving.
func (g *Game) updatePointer() {
	x, y := ebiten.CursorPosition()
	outside := x < 0 || y < 0 || x >= g.width || y >= g.height
	if outside || (g.prefs.ShowHUD && g.hud.Contains(x, y)) {
		g.driver.PointerLeave()
		return
	}
	g.driver.PointerMove(float64(x), float64(y))
}

func (g *Game) savePrefs() {
	if g.prefsPath == "" {
		return
	}
	if err := prefs.Save(g.prefsPath, g.prefs); err != nil {
		log.Printf("save preferences: %v", err)
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Target(screen)
	g.driver.Draw(g.painter)
	g.overlay.Draw(screen)
	if g.prefs.ShowHUD {
		g.hud.Draw(screen)
	}
}

// Layout tracks the window size: the first call mounts the driver, later
// calls resize the viewport in place.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth == g.width && outsideHeight == g.height {
		return g.width, g.height
	}
	g.width, g.height = outsideWidth, outsideHeight
	if g.driver.State() != flock.Running {
		if err := g.driver.Mount(outsideWidth, outsideHeight); err != nil {
			log.Printf("mount: %v", err)
		}
	} else {
		g.driver.Resize(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}

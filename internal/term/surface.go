// Package term hosts the flock in a terminal. Every cell stands for a block
// of CellW x CellH simulation units, and each unit is drawn as an arrow
// pointing along its heading.
package term

import (
	"image/color"
	"math"

	"flockbg/internal/flock"

	"github.com/gdamore/tcell/v2"
)

// Simulation units per terminal cell. Cells are roughly twice as tall as
// they are wide.
const (
	CellW = 8
	CellH = 16
)

var arrows = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// Surface draws flock frames into a tcell screen. It implements flock.Surface.
type Surface struct {
	screen tcell.Screen
	bg     tcell.Color
}

// NewSurface wraps screen.
func NewSurface(screen tcell.Screen) *Surface {
	return &Surface{screen: screen, bg: tcell.ColorDefault}
}

// Clear fills every cell with the background color.
func (s *Surface) Clear(bg color.Color) {
	s.bg = Color(bg)
	s.screen.Fill(' ', tcell.StyleDefault.Background(s.bg))
}

// FillTriangle marks the cell under the triangle centroid with a heading arrow.
func (s *Surface) FillTriangle(t flock.Triangle, c color.Color) {
	center := t.Centroid()
	x := int(math.Floor(center.X / CellW))
	y := int(math.Floor(center.Y / CellH))
	w, h := s.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	style := tcell.StyleDefault.Foreground(Color(c)).Background(s.bg)
	s.screen.SetContent(x, y, Arrow(t.Heading()), nil, style)
}

// Arrow returns the arrow glyph closest to angle (radians, y pointing down).
func Arrow(angle float64) rune {
	i := int(math.Round(angle / (math.Pi / 4)))
	return arrows[((i%8)+8)%8]
}

// Color converts c to a true-color tcell color.
func Color(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

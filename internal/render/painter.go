//go:build ebiten

package render

import (
	"image"
	"image/color"

	"flockbg/internal/flock"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Painter draws flock frames onto an ebiten image. It implements flock.Surface.
type Painter struct {
	dst *ebiten.Image
	vs  []ebiten.Vertex
	is  []uint16
	op  ebiten.DrawTrianglesOptions
}

// NewPainter constructs a Painter with antialiased triangle fills.
func NewPainter() *Painter {
	p := &Painter{}
	p.op.AntiAlias = true
	p.op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	return p
}

// Target selects the image the next frame is drawn onto.
func (p *Painter) Target(dst *ebiten.Image) { p.dst = dst }

// Clear fills the whole target with bg.
func (p *Painter) Clear(bg color.Color) {
	if p.dst == nil {
		return
	}
	p.dst.Fill(bg)
}

// FillTriangle draws one filled unit outline.
func (p *Painter) FillTriangle(t flock.Triangle, c color.Color) {
	if p.dst == nil {
		return
	}
	r, g, b, a := premultiplied(c)
	p.vs = p.vs[:0]
	for _, v := range t {
		p.vs = append(p.vs, ebiten.Vertex{
			DstX:   float32(v.X),
			DstY:   float32(v.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}
	p.is = append(p.is[:0], 0, 1, 2)
	p.dst.DrawTriangles(p.vs, p.is, whiteSubImage, &p.op)
}

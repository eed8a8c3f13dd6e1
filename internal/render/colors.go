package render

import "image/color"

// premultiplied converts c into the premultiplied [0,1] components used for
// vertex colors.
func premultiplied(c color.Color) (r, g, b, a float32) {
	cr, cg, cb, ca := c.RGBA()
	return float32(cr) / 0xffff, float32(cg) / 0xffff, float32(cb) / 0xffff, float32(ca) / 0xffff
}

// Fade returns c with its alpha multiplied by f, keeping RGB
// premultiplied consistently.
func Fade(c color.Color, f float64) color.RGBA {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	r, g, b, a := c.RGBA()
	return color.RGBA{
		R: uint8(float64(r>>8) * f),
		G: uint8(float64(g>>8) * f),
		B: uint8(float64(b>>8) * f),
		A: uint8(float64(a>>8) * f),
	}
}

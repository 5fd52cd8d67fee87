package raster

import "image/color"

// Color is a straight (non-premultiplied) RGBA8 colour.
type Color struct {
	R, G, B, A uint8
}

// RGBA builds a Color from its channels.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGB builds an opaque Color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xff}
}

// Common colours.
var (
	Transparent = Color{}
	Black       = RGB(0, 0, 0)
	White       = RGB(0xff, 0xff, 0xff)
	Red         = RGB(0xff, 0, 0)
)

// NRGBA converts to the standard library colour type with the same layout.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// FromColor converts any standard library colour to a straight RGBA8 Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

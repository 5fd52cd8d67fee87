// Package raster is a small software rasterizer that draws anti-aliased
// lines and triangles into a host-owned RGBA8 frame.
//
// The package has no dependencies outside the standard library and never
// returns errors: pixels outside the frame are dropped, degenerate geometry
// is skipped and coverage is clamped before blending.
package raster

import (
	"fmt"
	"image"
)

// Renderer is a non-owning view of an RGBA8 frame: 4 bytes per pixel,
// row-major, origin at the top-left. The backing slice belongs to the host,
// which may reuse it across frames.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	frame  []uint8
	width  int
	height int
}

// NewRenderer attaches a renderer to frame. It panics if len(frame) is not
// width*height*4, since that is a bug in the host rather than a drawing
// condition.
func NewRenderer(frame []uint8, width, height int) *Renderer {
	r := &Renderer{}
	r.Attach(frame, width, height)
	return r
}

// NewFrame allocates a zeroed frame for a width×height renderer.
func NewFrame(width, height int) []uint8 {
	if width <= 0 || height <= 0 {
		return nil
	}
	return make([]uint8, width*height*4)
}

// Attach points the renderer at a new frame, e.g. after the host
// reallocated it on resize.
func (r *Renderer) Attach(frame []uint8, width, height int) {
	if width < 0 || height < 0 || len(frame) != width*height*4 {
		panic(fmt.Sprintf("raster: frame length %d does not match %dx%d", len(frame), width, height))
	}
	r.frame = frame
	r.width = width
	r.height = height
}

// Width returns the frame width in pixels.
func (r *Renderer) Width() int {
	return r.width
}

// Height returns the frame height in pixels.
func (r *Renderer) Height() int {
	return r.height
}

// Frame returns the attached frame.
func (r *Renderer) Frame() []uint8 {
	return r.frame
}

// Clear fills every pixel with c.
func (r *Renderer) Clear(c Color) {
	for i := 0; i+3 < len(r.frame); i += 4 {
		r.frame[i+0] = c.R
		r.frame[i+1] = c.G
		r.frame[i+2] = c.B
		r.frame[i+3] = c.A
	}
}

// PutPixel overwrites one pixel with c, without blending.
// Out-of-bounds coordinates are silently ignored.
func (r *Renderer) PutPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	i := (y*r.width + x) * 4
	r.frame[i+0] = c.R
	r.frame[i+1] = c.G
	r.frame[i+2] = c.B
	r.frame[i+3] = c.A
}

// Pixel returns the colour at (x, y). ok is false outside the frame.
func (r *Renderer) Pixel(x, y int) (c Color, ok bool) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return Transparent, false
	}
	i := (y*r.width + x) * 4
	return Color{R: r.frame[i], G: r.frame[i+1], B: r.frame[i+2], A: r.frame[i+3]}, true
}

// Image returns an image.NRGBA sharing the frame memory. Drawing through the
// renderer is visible in the image and vice versa.
func (r *Renderer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    r.frame,
		Stride: r.width * 4,
		Rect:   image.Rect(0, 0, r.width, r.height),
	}
}

// BlendPixel blends c over the pixel at (x, y) with weight alpha.
// See the package-level BlendPixel.
func (r *Renderer) BlendPixel(x, y int, c Color, alpha float64) {
	BlendPixel(r.frame, r.width, r.height, x, y, c, alpha)
}

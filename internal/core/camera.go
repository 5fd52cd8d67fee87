package core

import "github.com/vovakirdan/zero/internal/raster"

// FOV limits for Camera.Zoom.
const (
	MinFOV = 0.05
	MaxFOV = 50.0
)

// Camera maps world coordinates onto the frame:
// screen = (world - Position) * FOV + viewport centre.
type Camera struct {
	Position raster.FloatPoint
	FOV      float64
	Viewport Rect
}

// NewCamera returns a camera at the origin with FOV 1 over a w×h viewport.
func NewCamera(w, h int) Camera {
	return Camera{FOV: 1, Viewport: NewRect(0, 0, w, h)}
}

// Project transforms a world point into subpixel screen coordinates.
func (c Camera) Project(world raster.FloatPoint) raster.FloatPoint {
	cx, cy := c.Viewport.Center()
	return world.Sub(c.Position).Mul(c.FOV).Add(raster.PtF(cx, cy))
}

// ProjectPixel projects a world point and rounds it to the pixel grid.
func (c Camera) ProjectPixel(world raster.FloatPoint) raster.IntPoint {
	return c.Project(world).Round()
}

// Pan moves the camera by a screen-space offset, so panning feels the same
// at every zoom level.
func (c *Camera) Pan(dx, dy float64) {
	if c.FOV == 0 {
		return
	}
	c.Position = c.Position.Add(raster.PtF(dx/c.FOV, dy/c.FOV))
}

// Zoom multiplies the FOV by factor, clamped to [MinFOV, MaxFOV].
func (c *Camera) Zoom(factor float64) {
	if !(factor > 0) {
		return
	}
	c.FOV = ClampF(c.FOV*factor, MinFOV, MaxFOV)
}

// Apply handles the pan and zoom actions of one input frame. step is the
// pan distance in screen pixels.
func (c *Camera) Apply(in InputFrame, step float64) {
	if in.Has(ActionPanUp) {
		c.Pan(0, -step)
	}
	if in.Has(ActionPanDown) {
		c.Pan(0, step)
	}
	if in.Has(ActionPanLeft) {
		c.Pan(-step, 0)
	}
	if in.Has(ActionPanRight) {
		c.Pan(step, 0)
	}
	if in.Has(ActionZoomIn) {
		c.Zoom(1.25)
	}
	if in.Has(ActionZoomOut) {
		c.Zoom(0.8)
	}
}

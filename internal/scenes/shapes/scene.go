// Package shapes is a static showcase of the rasterizer primitives placed
// in world space and viewed through the camera.
package shapes

import (
	"github.com/vovakirdan/zero/internal/core"
	"github.com/vovakirdan/zero/internal/raster"
	"github.com/vovakirdan/zero/internal/registry"
)

// PanStep is the camera pan distance per action, in screen pixels.
const PanStep = 4.0

var (
	colorCoral = raster.RGB(0xff, 0x6b, 0x5b)
	colorMint  = raster.RGB(0x3d, 0xd6, 0x9c)
	colorGold  = raster.RGB(0xf2, 0xc1, 0x4e)
	colorInk   = raster.RGB(0x1f, 0x25, 0x3a)
)

type triangle struct {
	a, b, c raster.FloatPoint
	color   raster.Color
	stroke  float64 // outline thickness in world units, 0 fills
}

// World-space layout, origin at the frame centre
var triangles = []triangle{
	// Clockwise and counter-clockwise fills
	{raster.PtF(-130, -70), raster.PtF(-70, -70), raster.PtF(-100, -10), colorCoral, 0},
	{raster.PtF(-50, -10), raster.PtF(10, -10), raster.PtF(-20, -70), colorMint, 0},
	// Overlapping pair
	{raster.PtF(30, -70), raster.PtF(110, -50), raster.PtF(50, 0), colorGold, 0},
	{raster.PtF(60, -80), raster.PtF(130, -10), raster.PtF(40, -20), colorCoral, 0},
	// Outline
	{raster.PtF(-130, 20), raster.PtF(-50, 20), raster.PtF(-90, 90), colorInk, 2},
}

// Fan of lines from a shared origin, one per thickness
var fanThickness = []float64{0, 0.5, 1, 1.5, 2, 3, 4, 6}

// Scene draws the static showcase.
type Scene struct {
	palette core.Palette
	camera  core.Camera
	state   core.SceneState
}

// New creates a shapes scene with default settings.
func New() *Scene {
	cfg := core.DefaultConfig()
	return &Scene{palette: cfg.Palette, camera: cfg.Camera}
}

func init() {
	registry.Register("shapes", func() registry.Scene {
		return New()
	})
}

// ID returns the scene identifier.
func (s *Scene) ID() string { return "shapes" }

// Title returns the display name.
func (s *Scene) Title() string { return "Shapes" }

// Reset restores the configured camera and palette.
func (s *Scene) Reset(cfg core.RuntimeConfig) {
	s.palette = cfg.Palette
	s.camera = cfg.Camera
	s.state = core.SceneState{}
}

// Update applies pan and zoom. Nothing animates.
func (s *Scene) Update(in core.InputFrame) {
	if in.Has(core.ActionPause) {
		s.state.Paused = !s.state.Paused
	}
	s.camera.Apply(in, PanStep)
	if !s.state.Paused {
		s.state.Frame++
	}
}

// Camera returns the current camera.
func (s *Scene) Camera() core.Camera { return s.camera }

// Draw renders every primitive through the camera.
func (s *Scene) Draw(r *raster.Renderer) {
	r.Clear(s.palette.Background)

	// Follow the frame if the host resized without a Reset
	s.camera.Viewport = core.NewRect(0, 0, r.Width(), r.Height())

	for _, tri := range triangles {
		a := s.camera.ProjectPixel(tri.a)
		b := s.camera.ProjectPixel(tri.b)
		c := s.camera.ProjectPixel(tri.c)
		if tri.stroke > 0 {
			r.DrawTriangle(a, b, c, tri.color, tri.stroke*s.camera.FOV, false)
			continue
		}
		r.DrawTriangle(a, b, c, tri.color, 0, true)
	}

	s.drawFan(r)
	s.drawVeil(r)
}

func (s *Scene) drawFan(r *raster.Renderer) {
	origin := s.camera.ProjectPixel(raster.PtF(0, 30))
	for i, thickness := range fanThickness {
		end := raster.PtF(20+float64(i)*16, 95)
		r.DrawLine(origin, s.camera.ProjectPixel(end), s.palette.Foreground, thickness*s.camera.FOV)
	}
}

// drawVeil blends a half-transparent band across the overlapping pair.
func (s *Scene) drawVeil(r *raster.Renderer) {
	tl := s.camera.ProjectPixel(raster.PtF(20, -45))
	br := s.camera.ProjectPixel(raster.PtF(140, -35))
	veil := core.NewRect(tl.X, tl.Y, br.X-tl.X, br.Y-tl.Y)
	if veil.Empty() || !veil.Intersects(s.camera.Viewport) {
		return
	}

	frame := r.Frame()
	for y := veil.Y; y < veil.Bottom(); y++ {
		for x := veil.X; x < veil.Right(); x++ {
			if !s.camera.Viewport.Contains(x, y) {
				continue
			}
			raster.BlendPixel(frame, r.Width(), r.Height(), x, y, raster.White, 0.5)
		}
	}
}

// State returns the current scene state.
func (s *Scene) State() core.SceneState { return s.state }

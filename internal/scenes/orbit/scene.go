// Package orbit animates a filled triangle rotating around the world origin.
package orbit

import (
	"math"

	"github.com/vovakirdan/zero/internal/core"
	"github.com/vovakirdan/zero/internal/raster"
	"github.com/vovakirdan/zero/internal/registry"
)

const (
	// Radius is the distance of each vertex from the origin, in world units.
	Radius = 70.0
	// Period is the number of seconds per revolution.
	Period = 4.0

	panStep = 4.0
)

var (
	fillColor  = raster.RGB(0xf2, 0x7a, 0x3e)
	spokeColor = raster.RGB(0x1f, 0x25, 0x3a)
)

// Scene rotates a triangle at a fixed angular speed.
type Scene struct {
	palette  core.Palette
	camera   core.Camera
	state    core.SceneState
	tickRate int
	angle    float64
}

// New creates an orbit scene with default settings.
func New() *Scene {
	s := &Scene{}
	s.Reset(core.DefaultConfig())
	return s
}

func init() {
	registry.Register("orbit", func() registry.Scene {
		return New()
	})
}

// ID returns the scene identifier.
func (s *Scene) ID() string { return "orbit" }

// Title returns the display name.
func (s *Scene) Title() string { return "Orbit" }

// Reset restores the camera and puts the triangle back at angle 0.
func (s *Scene) Reset(cfg core.RuntimeConfig) {
	s.palette = cfg.Palette
	s.camera = cfg.Camera
	s.tickRate = cfg.TickRate
	if s.tickRate <= 0 {
		s.tickRate = 60
	}
	s.angle = 0
	s.state = core.SceneState{}
}

// Update advances the rotation by one tick unless paused.
func (s *Scene) Update(in core.InputFrame) {
	if in.Has(core.ActionPause) {
		s.state.Paused = !s.state.Paused
	}
	s.camera.Apply(in, panStep)
	if s.state.Paused {
		return
	}

	s.angle = math.Mod(s.angle+2*math.Pi/(Period*float64(s.tickRate)), 2*math.Pi)
	s.state.Frame++
}

// Angle returns the current rotation in radians.
func (s *Scene) Angle() float64 { return s.angle }

// Vertices returns the triangle corners in world space.
func (s *Scene) Vertices() [3]raster.FloatPoint {
	var v [3]raster.FloatPoint
	for i := range v {
		v[i] = raster.PtF(Radius, 0).Rotate(s.angle + float64(i)*2*math.Pi/3)
	}
	return v
}

// Draw renders the triangle, its outline and a spoke to each vertex.
func (s *Scene) Draw(r *raster.Renderer) {
	r.Clear(s.palette.Background)
	s.camera.Viewport = core.NewRect(0, 0, r.Width(), r.Height())

	var p [3]raster.IntPoint
	for i, v := range s.Vertices() {
		p[i] = s.camera.ProjectPixel(v)
	}
	centre := s.camera.ProjectPixel(raster.PtF(0, 0))

	r.DrawTriangle(p[0], p[1], p[2], fillColor, 0, true)
	r.DrawTriangle(p[0], p[1], p[2], s.palette.Foreground, 1.5*s.camera.FOV, false)
	for _, v := range p {
		r.DrawLine(centre, v, spokeColor, s.camera.FOV)
	}
}

// State returns the current scene state.
func (s *Scene) State() core.SceneState { return s.state }

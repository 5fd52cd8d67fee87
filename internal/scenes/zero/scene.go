// Package zero is the minimal scene: a flat background with a short
// horizontal run of pixels to the right of the frame centre.
package zero

import (
	"github.com/vovakirdan/zero/internal/core"
	"github.com/vovakirdan/zero/internal/raster"
	"github.com/vovakirdan/zero/internal/registry"
)

// RunLength is the number of pixels drawn right of the centre.
const RunLength = 25

// Scene draws the zero-physics frame. Update changes nothing visible.
type Scene struct {
	palette core.Palette
	state   core.SceneState
}

// New creates a zero scene with the default palette.
func New() *Scene {
	return &Scene{palette: core.DefaultPalette()}
}

func init() {
	registry.Register("zero", func() registry.Scene {
		return New()
	})
}

// ID returns the scene identifier.
func (s *Scene) ID() string { return "zero" }

// Title returns the display name.
func (s *Scene) Title() string { return "Zero Physics" }

// Reset stores the palette and clears the frame counter.
func (s *Scene) Reset(cfg core.RuntimeConfig) {
	s.palette = cfg.Palette
	s.state = core.SceneState{}
}

// Update only tracks the pause flag and frame counter.
func (s *Scene) Update(in core.InputFrame) {
	if in.Has(core.ActionPause) {
		s.state.Paused = !s.state.Paused
	}
	if !s.state.Paused {
		s.state.Frame++
	}
}

// Draw clears to the background and plots the run in the foreground color.
func (s *Scene) Draw(r *raster.Renderer) {
	r.Clear(s.palette.Background)

	cx := r.Width() / 2
	cy := r.Height() / 2
	for i := 1; i <= RunLength; i++ {
		r.PutPixel(cx+i, cy, s.palette.Foreground)
	}
}

// State returns the current scene state.
func (s *Scene) State() core.SceneState { return s.state }

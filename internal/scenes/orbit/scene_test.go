package orbit

import (
	"bytes"
	"math"
	"testing"

	"github.com/vovakirdan/zero/internal/core"
	"github.com/vovakirdan/zero/internal/raster"
)

func render(s *Scene) *raster.Renderer {
	r := raster.NewRenderer(raster.NewFrame(200, 200), 200, 200)
	s.Draw(r)
	return r
}

func TestUpdateAdvancesAngle(t *testing.T) {
	s := New()
	s.Reset(core.DefaultConfig())
	before := render(s)

	s.Update(core.NewInputFrame())

	expected := 2 * math.Pi / (Period * 60)
	if math.Abs(s.Angle()-expected) > 1e-12 {
		t.Errorf("Angle() = %v, expected %v", s.Angle(), expected)
	}
	if s.State().Frame != 1 {
		t.Errorf("State().Frame = %d, expected 1", s.State().Frame)
	}

	for i := 0; i < 30; i++ {
		s.Update(core.NewInputFrame())
	}
	if bytes.Equal(before.Frame(), render(s).Frame()) {
		t.Error("frame did not change after half a second of updates")
	}
}

func TestFullRevolution(t *testing.T) {
	s := New()
	cfg := core.DefaultConfig()
	cfg.TickRate = 10
	s.Reset(cfg)

	for i := 0; i < int(Period)*10; i++ {
		s.Update(core.NewInputFrame())
	}
	a := s.Angle()
	if a > 1e-9 && a < 2*math.Pi-1e-9 {
		t.Errorf("Angle() after one period = %v, expected 0 (mod 2π)", a)
	}
}

func TestPauseStopsRotation(t *testing.T) {
	s := New()
	s.Reset(core.DefaultConfig())

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	s.Update(in)
	for i := 0; i < 10; i++ {
		s.Update(core.NewInputFrame())
	}

	if s.Angle() != 0 {
		t.Errorf("Angle() = %v while paused, expected 0", s.Angle())
	}
	if !s.State().Paused {
		t.Error("State().Paused = false, expected true")
	}
}

func TestVerticesOnCircle(t *testing.T) {
	s := New()
	for _, v := range s.Vertices() {
		if d := v.Length(); math.Abs(d-Radius) > 1e-9 {
			t.Errorf("vertex %v at distance %v, expected %v", v, d, Radius)
		}
	}
}

func TestDrawFillsCentre(t *testing.T) {
	s := New()
	r := render(s)

	// The origin sits inside the triangle; the spokes meet there
	if c, _ := r.Pixel(100, 100); c == core.DefaultPalette().Background {
		t.Error("centre pixel was not drawn")
	}
	if c, _ := r.Pixel(0, 0); c != core.DefaultPalette().Background {
		t.Errorf("corner Pixel(0, 0) = %v, expected background", c)
	}
}

package core

// RuntimeConfig contains configuration passed to scenes on Reset.
// Scenes use this to adapt to the frame size and initial camera.
type RuntimeConfig struct {
	Width    int   // Frame width in pixels
	Height   int   // Frame height in pixels
	TickRate int   // Update ticks per second (default 60)
	Seed     int64 // RNG seed, 0 means use current time in platform layer
	Palette  Palette
	Camera   Camera
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Width:    320,
		Height:   240,
		TickRate: 60,
		Palette:  DefaultPalette(),
		Camera:   NewCamera(320, 240),
	}
}

// WithSize returns a copy of c resized to w×h, with the camera viewport
// following the new size.
func (c RuntimeConfig) WithSize(w, h int) RuntimeConfig {
	c.Width = w
	c.Height = h
	c.Camera.Viewport = NewRect(0, 0, w, h)
	return c
}

// SceneState is the host-visible state of a running scene.
type SceneState struct {
	Frame  uint64 // Updates applied since the last Reset
	Paused bool
}

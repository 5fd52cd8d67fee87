package core

import "github.com/vovakirdan/zero/internal/raster"

// Palette holds the two colors every scene draws with.
type Palette struct {
	Background raster.Color
	Foreground raster.Color
}

// DefaultPalette is the sky-blue background with a light gray foreground.
func DefaultPalette() Palette {
	return Palette{
		Background: raster.RGB(0x48, 0xb2, 0xe8),
		Foreground: raster.RGB(0xb2, 0xb2, 0xb2),
	}
}

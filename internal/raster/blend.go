package raster

// BlendPixel linearly interpolates c into the pixel at (x, y) of an RGBA8
// frame: every channel, alpha included, becomes bg*(1-alpha) + fg*alpha.
//
// It takes the frame and its dimensions directly so the rasterizers can use
// it without any shared state. A height <= 0 is derived from len(frame).
// Coordinates outside the frame are ignored and alpha is clamped to [0,1];
// NaN counts as 0.
func BlendPixel(frame []uint8, width, height, x, y int, c Color, alpha float64) {
	if width <= 0 {
		return
	}
	if height <= 0 {
		height = len(frame) / 4 / width
	}
	if x < 0 || y < 0 || x >= width || y >= height {
		return
	}

	// !(alpha > 0) also catches NaN
	if !(alpha > 0) {
		return
	}
	if alpha > 1 {
		alpha = 1
	}

	i := (y*width + x) * 4
	if i+3 >= len(frame) {
		return
	}
	frame[i+0] = mix(frame[i+0], c.R, alpha)
	frame[i+1] = mix(frame[i+1], c.G, alpha)
	frame[i+2] = mix(frame[i+2], c.B, alpha)
	frame[i+3] = mix(frame[i+3], c.A, alpha)
}

// mix blends one channel on the normalised [0,1] scale.
func mix(bg, fg uint8, alpha float64) uint8 {
	b := float64(bg) / 255
	f := float64(fg) / 255
	return clamp255((b*(1-alpha) + f*alpha) * 255)
}

// clamp255 rounds v to the nearest byte, saturating at 0 and 255.
func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// clamp01 restricts v to [0,1]; NaN maps to 0.
func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

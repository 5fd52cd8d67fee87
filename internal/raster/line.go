package raster

import "math"

// degenerateEpsilon is the length/area below which a primitive is skipped.
const degenerateEpsilon = 1e-6

// DrawLine strokes the segment start→end with the given thickness in
// pixels, centred on the ideal segment, with round caps and a one pixel
// wide linear anti-aliasing band. Zero-length segments draw nothing.
func (r *Renderer) DrawLine(start, end IntPoint, c Color, thickness float64) {
	a := start.Float()
	b := end.Float()
	d := b.Sub(a)
	lengthSq := d.Dot(d)
	if math.Sqrt(lengthSq) < degenerateEpsilon {
		return
	}

	// !(thickness > 0) also catches NaN
	if !(thickness > 0) {
		thickness = 0
	}
	half := thickness / 2

	// Bounding box padded by half the stroke plus the falloff band
	pad := half + 1
	minX, maxX := span(math.Min(a.X, b.X), math.Max(a.X, b.X), pad, r.width)
	minY, maxY := span(math.Min(a.Y, b.Y), math.Max(a.Y, b.Y), pad, r.height)

	outer := half + 0.5
	inner := half - 0.5

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := FloatPoint{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			dist := segmentDistance(p, a, d, lengthSq)
			if dist > outer {
				continue
			}

			alpha := 1.0
			if dist >= inner {
				alpha = clamp01(outer - dist)
			}
			if alpha == 0 {
				continue
			}
			BlendPixel(r.frame, r.width, r.height, x, y, c, alpha)
		}
	}
}

// span pads [lo, hi] by pad and clips it to the pixel range [0, size).
// Clipping happens in float64 so far off-frame coordinates cannot overflow
// int; a span entirely outside the frame comes back with hi < lo.
func span(lo, hi, pad float64, size int) (int, int) {
	lo = math.Min(math.Max(math.Floor(lo-pad), 0), float64(size))
	hi = math.Max(math.Min(math.Ceil(hi+pad), float64(size-1)), -1)
	return int(lo), int(hi)
}

// segmentDistance returns the distance from p to the segment starting at a
// with direction d (lengthSq = |d|²). The projection parameter is clamped
// to [0,1], which yields round caps.
func segmentDistance(p, a, d FloatPoint, lengthSq float64) float64 {
	t := p.Sub(a).Dot(d) / lengthSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := a.Add(d.Mul(t))
	return p.Distance(closest)
}

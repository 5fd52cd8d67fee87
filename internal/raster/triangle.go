package raster

import "math"

// samplesPerAxis is the supersampling grid size for triangle fills (4×4).
const samplesPerAxis = 4

// DrawTriangle fills the triangle v1,v2,v3 with 4×4 supersampled coverage,
// or, when filled is false, strokes its three edges with DrawLine at the
// given thickness. Either winding is accepted; zero-area fills draw nothing.
func (r *Renderer) DrawTriangle(v1, v2, v3 IntPoint, c Color, thickness float64, filled bool) {
	if !filled {
		r.DrawLine(v1, v2, c, thickness)
		r.DrawLine(v2, v3, c, thickness)
		r.DrawLine(v3, v1, c, thickness)
		return
	}

	p1, p2, p3 := v1.Float(), v2.Float(), v3.Float()
	area := edge(p1, p2, p3)
	if math.Abs(area) < degenerateEpsilon {
		return
	}

	// Bounding box padded by one pixel for the anti-aliased rim
	minX, maxX := span(min(p1.X, p2.X, p3.X), max(p1.X, p2.X, p3.X), 1, r.width)
	minY, maxY := span(min(p1.Y, p2.Y, p3.Y), max(p1.Y, p2.Y, p3.Y), 1, r.height)

	positive := area > 0
	const total = samplesPerAxis * samplesPerAxis

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			inside := 0
			for sy := 0; sy < samplesPerAxis; sy++ {
				py := float64(y) + (float64(sy)+0.5)/samplesPerAxis
				for sx := 0; sx < samplesPerAxis; sx++ {
					p := FloatPoint{X: float64(x) + (float64(sx)+0.5)/samplesPerAxis, Y: py}
					if insideTriangle(p1, p2, p3, p, positive) {
						inside++
					}
				}
			}
			if inside == 0 {
				continue
			}
			BlendPixel(r.frame, r.width, r.height, x, y, c, float64(inside)/total)
		}
	}
}

// edge is the 2D cross product (c-a)×(b-a): which side of the directed
// line a→b the point c is on.
func edge(a, b, c FloatPoint) float64 {
	return (c.X-a.X)*(b.Y-a.Y) - (c.Y-a.Y)*(b.X-a.X)
}

// insideTriangle reports whether p lies inside (or on an edge of) the
// triangle, given the sign of its signed area.
func insideTriangle(v1, v2, v3, p FloatPoint, positive bool) bool {
	w1 := edge(v2, v3, p)
	w2 := edge(v3, v1, p)
	w3 := edge(v1, v2, p)
	if positive {
		return w1 >= 0 && w2 >= 0 && w3 >= 0
	}
	return w1 <= 0 && w2 <= 0 && w3 <= 0
}

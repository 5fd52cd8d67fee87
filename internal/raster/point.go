package raster

import "math"

// IntPoint is a pixel-space coordinate. The public drawing API takes these.
type IntPoint struct {
	X, Y int
}

// Pt is a convenience constructor for IntPoint.
func Pt(x, y int) IntPoint {
	return IntPoint{X: x, Y: y}
}

// Float converts the point to subpixel space.
func (p IntPoint) Float() FloatPoint {
	return FloatPoint{X: float64(p.X), Y: float64(p.Y)}
}

// Add returns p+q.
func (p IntPoint) Add(q IntPoint) IntPoint {
	return IntPoint{X: p.X + q.X, Y: p.Y + q.Y}
}

// FloatPoint is a subpixel coordinate used for sampling, distance
// computation and camera output.
type FloatPoint struct {
	X, Y float64
}

// PtF is a convenience constructor for FloatPoint.
func PtF(x, y float64) FloatPoint {
	return FloatPoint{X: x, Y: y}
}

// Round converts to the nearest pixel coordinate (halves away from zero).
func (p FloatPoint) Round() IntPoint {
	return IntPoint{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

// Floor converts to the pixel containing p.
func (p FloatPoint) Floor() IntPoint {
	return IntPoint{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

// Add returns p+q.
func (p FloatPoint) Add(q FloatPoint) FloatPoint {
	return FloatPoint{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p FloatPoint) Sub(q FloatPoint) FloatPoint {
	return FloatPoint{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul scales p by s.
func (p FloatPoint) Mul(s float64) FloatPoint {
	return FloatPoint{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of p and q.
func (p FloatPoint) Dot(q FloatPoint) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Length returns the Euclidean length of p.
func (p FloatPoint) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the Euclidean distance between p and q.
func (p FloatPoint) Distance(q FloatPoint) float64 {
	return p.Sub(q).Length()
}

// Rotate returns p rotated by angle radians around the origin.
func (p FloatPoint) Rotate(angle float64) FloatPoint {
	sin, cos := math.Sincos(angle)
	return FloatPoint{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

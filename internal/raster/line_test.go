package raster

import (
	"bytes"
	"math"
	"testing"
)

func countChanged(before, after []uint8) int {
	n := 0
	for i := 0; i < len(before); i += 4 {
		if !bytes.Equal(before[i:i+4], after[i:i+4]) {
			n++
		}
	}
	return n
}

func TestDrawLineHorizontalBand(t *testing.T) {
	r := newTestRenderer(10, 10, Black)
	r.DrawLine(Pt(1, 5), Pt(8, 5), White, 1)

	// Pixel centres on rows 4 and 5 sit half a pixel from the segment
	for _, y := range []int{4, 5} {
		for x := 1; x <= 7; x++ {
			c, _ := r.Pixel(x, y)
			if c.R != 128 || c.G != 128 || c.B != 128 || c.A != 255 {
				t.Errorf("Pixel(%d, %d) = %v, expected half-covered grey", x, y, c)
			}
		}
	}

	// Round caps reach one pixel past each end, but not two
	for _, x := range []int{0, 8} {
		if c, _ := r.Pixel(x, 5); c.R == 0 || c.R >= 128 {
			t.Errorf("cap Pixel(%d, 5).R = %d, expected partial coverage", x, c.R)
		}
	}
	if c, _ := r.Pixel(9, 5); c != Black {
		t.Errorf("Pixel(9, 5) = %v, expected untouched", c)
	}

	for y := 0; y < 10; y++ {
		if y == 4 || y == 5 {
			continue
		}
		for x := 0; x < 10; x++ {
			if c, _ := r.Pixel(x, y); c != Black {
				t.Errorf("Pixel(%d, %d) = %v, expected untouched", x, y, c)
			}
		}
	}
}

func TestDrawLineThickCore(t *testing.T) {
	r := newTestRenderer(20, 20, Black)
	r.DrawLine(Pt(2, 10), Pt(17, 10), Red, 5)

	// Centre rows lie well inside half-0.5 and get full colour
	for y := 8; y <= 11; y++ {
		if c, _ := r.Pixel(10, y); c != Red {
			t.Errorf("Pixel(10, %d) = %v, expected solid red", y, c)
		}
	}
	if c, _ := r.Pixel(10, 3); c != Black {
		t.Errorf("Pixel(10, 3) = %v, expected untouched", c)
	}
}

func TestDrawLineDegenerate(t *testing.T) {
	r := newTestRenderer(10, 10, Black)
	before := snapshot(r)

	r.DrawLine(Pt(4, 4), Pt(4, 4), White, 3)
	if !bytes.Equal(before, r.Frame()) {
		t.Error("zero-length line modified the frame")
	}
}

func TestDrawLineBadThickness(t *testing.T) {
	zero := newTestRenderer(10, 10, Black)
	zero.DrawLine(Pt(1, 1), Pt(8, 6), White, 0)

	for _, thickness := range []float64{-2, math.NaN()} {
		r := newTestRenderer(10, 10, Black)
		r.DrawLine(Pt(1, 1), Pt(8, 6), White, thickness)
		if !bytes.Equal(zero.Frame(), r.Frame()) {
			t.Errorf("thickness %v drew differently from thickness 0", thickness)
		}
	}
}

func TestDrawLineThicknessMonotonic(t *testing.T) {
	blank := newTestRenderer(32, 32, Black)
	prev := -1

	for thickness := 0.0; thickness <= 8; thickness += 0.5 {
		r := newTestRenderer(32, 32, Black)
		r.DrawLine(Pt(3, 4), Pt(25, 17), White, thickness)

		n := countChanged(blank.Frame(), r.Frame())
		if n < prev {
			t.Errorf("thickness %v touched %d pixels, fewer than %d at the previous step", thickness, n, prev)
		}
		prev = n
	}
}

func TestDrawLineClipsToFrame(t *testing.T) {
	r := newTestRenderer(10, 10, Black)

	// Entirely off-frame, and crossing the frame edges
	r.DrawLine(Pt(-50, -50), Pt(-20, -30), White, 4)
	r.DrawLine(Pt(-5, 5), Pt(15, 5), White, 3)

	if len(r.Frame()) != 10*10*4 {
		t.Fatalf("len(Frame()) = %d, expected %d", len(r.Frame()), 10*10*4)
	}
	if c, _ := r.Pixel(0, 5); c != White {
		t.Errorf("Pixel(0, 5) = %v, expected white", c)
	}
	if c, _ := r.Pixel(9, 5); c != White {
		t.Errorf("Pixel(9, 5) = %v, expected white", c)
	}
}

func TestDrawLineExtremeEndpoint(t *testing.T) {
	r := newTestRenderer(8, 8, Black)
	r.DrawLine(Pt(-10, 4), Pt(math.MaxInt, 4), Red, 2)

	// Pixel centres on rows 3 and 4 are half a pixel from the stroke axis
	for _, y := range []int{3, 4} {
		if c, _ := r.Pixel(3, y); c != Red {
			t.Errorf("Pixel(3, %d) = %v, expected red", y, c)
		}
	}
	if c, _ := r.Pixel(3, 0); c != Black {
		t.Errorf("Pixel(3, 0) = %v, expected untouched", c)
	}
}

func TestSegmentDistance(t *testing.T) {
	a := PtF(0, 0)
	d := PtF(10, 0)
	lengthSq := d.Dot(d)

	tests := []struct {
		p        FloatPoint
		expected float64
	}{
		{PtF(5, 3), 3},
		{PtF(-3, 4), 5},
		{PtF(13, -4), 5},
		{PtF(10, 0), 0},
	}

	for _, tc := range tests {
		if got := segmentDistance(tc.p, a, d, lengthSq); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("segmentDistance(%v) = %v, expected %v", tc.p, got, tc.expected)
		}
	}
}

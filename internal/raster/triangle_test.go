package raster

import (
	"bytes"
	"math"
	"testing"
)

func TestDrawTriangleFilled(t *testing.T) {
	r := newTestRenderer(20, 20, Black)
	r.DrawTriangle(Pt(2, 2), Pt(17, 2), Pt(10, 17), Red, 0, true)

	// Centroid (9.67, 7)
	if c, _ := r.Pixel(9, 7); c != Red {
		t.Errorf("centroid Pixel(9, 7) = %v, expected solid red", c)
	}
	if c, _ := r.Pixel(0, 0); c != Black {
		t.Errorf("Pixel(0, 0) = %v, expected untouched", c)
	}
	if c, _ := r.Pixel(19, 19); c != Black {
		t.Errorf("Pixel(19, 19) = %v, expected untouched", c)
	}
}

func TestDrawTrianglePartialCoverage(t *testing.T) {
	r := newTestRenderer(12, 12, Black)
	r.DrawTriangle(Pt(0, 0), Pt(10, 0), Pt(0, 10), Red, 0, true)

	// The hypotenuse x+y=10 cuts pixel (4,5): 10 of 16 samples are inside
	if c, _ := r.Pixel(4, 5); c.R != 159 || c.G != 0 || c.A != 255 {
		t.Errorf("edge Pixel(4, 5) = %v, expected R=159 from 10/16 coverage", c)
	}
	if c, _ := r.Pixel(1, 1); c != Red {
		t.Errorf("interior Pixel(1, 1) = %v, expected solid red", c)
	}
	if c, _ := r.Pixel(9, 9); c != Black {
		t.Errorf("exterior Pixel(9, 9) = %v, expected untouched", c)
	}
}

func TestDrawTriangleWindingIndependent(t *testing.T) {
	tests := [][3]IntPoint{
		{Pt(2, 2), Pt(17, 4), Pt(8, 16)},
		{Pt(-5, 3), Pt(25, 9), Pt(4, 30)},
		{Pt(0, 0), Pt(19, 0), Pt(0, 19)},
	}

	for _, tri := range tests {
		cw := newTestRenderer(20, 20, Black)
		ccw := newTestRenderer(20, 20, Black)

		cw.DrawTriangle(tri[0], tri[1], tri[2], Red, 0, true)
		ccw.DrawTriangle(tri[0], tri[2], tri[1], Red, 0, true)

		if !bytes.Equal(cw.Frame(), ccw.Frame()) {
			t.Errorf("triangle %v rendered differently when its winding was reversed", tri)
		}
	}
}

func TestDrawTriangleDegenerate(t *testing.T) {
	r := newTestRenderer(10, 10, Black)
	before := snapshot(r)

	r.DrawTriangle(Pt(1, 1), Pt(4, 4), Pt(8, 8), White, 0, true)
	r.DrawTriangle(Pt(3, 3), Pt(3, 3), Pt(3, 3), White, 0, true)

	if !bytes.Equal(before, r.Frame()) {
		t.Error("zero-area filled triangle modified the frame")
	}
}

func TestDrawTriangleOutline(t *testing.T) {
	a, b, c := Pt(2, 2), Pt(17, 4), Pt(8, 16)

	outline := newTestRenderer(20, 20, Black)
	outline.DrawTriangle(a, b, c, White, 2, false)

	lines := newTestRenderer(20, 20, Black)
	lines.DrawLine(a, b, White, 2)
	lines.DrawLine(b, c, White, 2)
	lines.DrawLine(c, a, White, 2)

	if !bytes.Equal(outline.Frame(), lines.Frame()) {
		t.Error("outline triangle differs from its three edges drawn as lines")
	}

	// The interior stays empty
	if px, _ := outline.Pixel(9, 8); px != Black {
		t.Errorf("interior Pixel(9, 8) = %v, expected untouched", px)
	}
}

func TestDrawTriangleClipsToFrame(t *testing.T) {
	r := newTestRenderer(8, 8, Black)
	r.DrawTriangle(Pt(-20, -20), Pt(40, -20), Pt(-20, 40), Red, 0, true)

	if len(r.Frame()) != 8*8*4 {
		t.Fatalf("len(Frame()) = %d, expected %d", len(r.Frame()), 8*8*4)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if c, _ := r.Pixel(x, y); c != Red {
				t.Fatalf("Pixel(%d, %d) = %v, expected covered", x, y, c)
			}
		}
	}
}

func TestDrawTriangleExtremeVertices(t *testing.T) {
	r := newTestRenderer(8, 8, Black)
	r.DrawTriangle(Pt(-10, -10), Pt(math.MaxInt, -10), Pt(-10, 1000), Red, 0, true)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if c, _ := r.Pixel(x, y); c != Red {
				t.Fatalf("Pixel(%d, %d) = %v, expected covered", x, y, c)
			}
		}
	}

	// Entirely off-frame on the far side draws nothing
	far := newTestRenderer(8, 8, Black)
	far.DrawTriangle(Pt(math.MaxInt-4, 0), Pt(math.MaxInt, 0), Pt(math.MaxInt, 4), Red, 0, true)
	if c, _ := far.Pixel(7, 0); c != Black {
		t.Errorf("Pixel(7, 0) = %v, expected untouched", c)
	}
}

func TestSpanClipsToFrame(t *testing.T) {
	tests := []struct {
		lo, hi, pad float64
		size        int
		wantLo      int
		wantHi      int
	}{
		{2, 5, 1, 10, 1, 6},
		{-3, 20, 1, 10, 0, 9},
		{-10, math.MaxInt, 1, 8, 0, 7},
		{math.MinInt, -20, 1, 8, 0, -1},
		{math.MaxInt - 4, math.MaxInt, 1, 8, 8, 7},
		{0, 0, 1, 0, 0, -1},
	}

	for _, tc := range tests {
		lo, hi := span(tc.lo, tc.hi, tc.pad, tc.size)
		if lo != tc.wantLo || hi != tc.wantHi {
			t.Errorf("span(%v, %v, %v, %d) = %d, %d, expected %d, %d",
				tc.lo, tc.hi, tc.pad, tc.size, lo, hi, tc.wantLo, tc.wantHi)
		}
	}
}

func TestEdgeSign(t *testing.T) {
	a, b := PtF(0, 0), PtF(10, 0)

	left := edge(a, b, PtF(5, -1))
	right := edge(a, b, PtF(5, 1))
	on := edge(a, b, PtF(5, 0))

	if left == 0 || right == 0 || (left > 0) == (right > 0) {
		t.Errorf("edge() signs = %v, %v, expected opposite non-zero", left, right)
	}
	if on != 0 {
		t.Errorf("edge() on the line = %v, expected 0", on)
	}
}

package tui

import (
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/zero/internal/raster"
)

func trueColorPresenter() *Presenter {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return NewPresenter(r)
}

func asciiPresenter() *Presenter {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return NewPresenter(r)
}

func TestRenderRowsAndWidth(t *testing.T) {
	tests := []struct {
		w, h int
	}{
		{4, 2},
		{4, 3},
		{7, 10},
		{1, 1},
	}

	for _, tc := range tests {
		r := raster.NewRenderer(raster.NewFrame(tc.w, tc.h), tc.w, tc.h)
		out := asciiPresenter().Render(r)

		lines := strings.Split(out, "\n")
		if len(lines) != TextRows(tc.h) {
			t.Errorf("%dx%d: Render() lines = %d, expected %d", tc.w, tc.h, len(lines), TextRows(tc.h))
		}
		for i, line := range lines {
			if n := utf8.RuneCountInString(line); n != tc.w {
				t.Errorf("%dx%d: line %d has %d cells, expected %d", tc.w, tc.h, i, n, tc.w)
			}
		}
	}
}

func TestRenderColors(t *testing.T) {
	r := raster.NewRenderer(raster.NewFrame(2, 2), 2, 2)
	r.Clear(raster.Black)
	r.PutPixel(0, 0, raster.Red)
	r.PutPixel(0, 1, raster.RGB(0, 255, 0))

	out := trueColorPresenter().Render(r)

	if !strings.Contains(out, "38;2;255;0;0") {
		t.Errorf("Render() = %q, expected red upper half", out)
	}
	if !strings.Contains(out, "48;2;0;255;0") {
		t.Errorf("Render() = %q, expected green lower half", out)
	}
}

func TestRenderOddRowPairsWithBlack(t *testing.T) {
	r := raster.NewRenderer(raster.NewFrame(1, 1), 1, 1)
	r.Clear(raster.White)

	out := trueColorPresenter().Render(r)
	if !strings.Contains(out, "38;2;255;255;255") || !strings.Contains(out, "48;2;0;0;0") {
		t.Errorf("Render() = %q, expected white over black", out)
	}
}

func TestRenderGroupsRuns(t *testing.T) {
	r := raster.NewRenderer(raster.NewFrame(8, 2), 8, 2)
	r.Clear(raster.Red)

	out := trueColorPresenter().Render(r)
	if n := strings.Count(out, "38;2;"); n != 1 {
		t.Errorf("uniform row used %d styles, expected 1", n)
	}
	if n := strings.Count(out, halfBlock); n != 8 {
		t.Errorf("Render() has %d half blocks, expected 8", n)
	}
}

func TestHexColor(t *testing.T) {
	if got := hexColor(raster.RGBA(0x48, 0xb2, 0xe8, 0x10)); got != lipgloss.Color("#48b2e8") {
		t.Errorf("hexColor() = %q, expected #48b2e8", got)
	}
}

func TestFrameSize(t *testing.T) {
	tests := []struct {
		cols, rows int
		w, h       int
	}{
		{80, 24, 80, 44},
		{40, 12, 40, 20},
		{0, 0, 1, 2},
		{10, 2, 10, 2},
	}

	for _, tc := range tests {
		w, h := FrameSize(tc.cols, tc.rows, hudRows)
		if w != tc.w || h != tc.h {
			t.Errorf("FrameSize(%d, %d) = %dx%d, expected %dx%d", tc.cols, tc.rows, w, h, tc.w, tc.h)
		}
	}
}

package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"

	"github.com/vovakirdan/zero/internal/core"
	"github.com/vovakirdan/zero/internal/raster"
	"github.com/vovakirdan/zero/internal/scenes/zero"
)

func testImage() *image.NRGBA {
	r := raster.NewRenderer(raster.NewFrame(6, 4), 6, 4)
	r.Clear(raster.RGB(0x48, 0xb2, 0xe8))
	r.PutPixel(1, 1, raster.Red)
	r.PutPixel(4, 2, raster.White)
	return r.Image()
}

func decode(t *testing.T, f Format, data []byte) image.Image {
	t.Helper()
	var (
		img image.Image
		err error
	)
	switch f {
	case PNG:
		img, err = png.Decode(bytes.NewReader(data))
	case WebP:
		img, err = webp.Decode(bytes.NewReader(data))
	case TGA:
		img, err = tga.Decode(bytes.NewReader(data))
	case BMP:
		img, err = bmp.Decode(bytes.NewReader(data))
	}
	if err != nil {
		t.Fatalf("decode %s failed: %v", f, err)
	}
	return img
}

func sameRGB(a, b color.Color) bool {
	ar, ag, ab, _ := a.RGBA()
	br, bg, bb, _ := b.RGBA()
	return ar>>8 == br>>8 && ag>>8 == bg>>8 && ab>>8 == bb>>8
}

func TestEncodeRoundTrip(t *testing.T) {
	src := testImage()

	for _, f := range Formats() {
		t.Run(string(f), func(t *testing.T) {
			data, err := Bytes(src, f, 1)
			if err != nil {
				t.Fatalf("Bytes() failed: %v", err)
			}

			img := decode(t, f, data)
			if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 4 {
				t.Fatalf("decoded bounds = %v, expected 6x4", img.Bounds())
			}
			if !sameRGB(img.At(1, 1), color.NRGBA{R: 255, A: 255}) {
				t.Errorf("decoded (1, 1) = %v, expected red", img.At(1, 1))
			}
			if !sameRGB(img.At(0, 0), color.NRGBA{R: 0x48, G: 0xb2, B: 0xe8, A: 255}) {
				t.Errorf("decoded (0, 0) = %v, expected background", img.At(0, 0))
			}
		})
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(), Format("gif")); err == nil {
		t.Error("Encode() with an unknown format should fail")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in       string
		expected Format
		ok       bool
	}{
		{"png", PNG, true},
		{"WEBP", WebP, true},
		{".tga", TGA, true},
		{" bmp ", BMP, true},
		{"gif", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		got, err := ParseFormat(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("ParseFormat(%q) error = %v, expected ok=%v", tc.in, err, tc.ok)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParseFormat(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestContentType(t *testing.T) {
	if PNG.ContentType() != "image/png" {
		t.Errorf("PNG.ContentType() = %q, expected image/png", PNG.ContentType())
	}
	if WebP.Ext() != ".webp" {
		t.Errorf("WebP.Ext() = %q, expected .webp", WebP.Ext())
	}
}

func TestScale(t *testing.T) {
	src := testImage()
	img := Scale(src, 3)

	if img.Bounds().Dx() != 18 || img.Bounds().Dy() != 12 {
		t.Fatalf("Scale() bounds = %v, expected 18x12", img.Bounds())
	}

	// Pixel (1,1) becomes the block [3,6)x[3,6)
	for y := 3; y < 6; y++ {
		for x := 3; x < 6; x++ {
			if !sameRGB(img.At(x, y), src.At(1, 1)) {
				t.Errorf("scaled (%d, %d) = %v, expected red", x, y, img.At(x, y))
			}
		}
	}
	if !sameRGB(img.At(2, 3), src.At(0, 1)) {
		t.Errorf("scaled (2, 3) = %v, expected background", img.At(2, 3))
	}

	if Scale(src, 1) != image.Image(src) {
		t.Error("Scale(1) should return the source image")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	r := raster.NewRenderer(raster.NewFrame(2, 2), 2, 2)
	r.Clear(raster.Black)
	snap := Snapshot(r)

	r.PutPixel(0, 0, raster.White)
	if snap.NRGBAAt(0, 0) != raster.Black.NRGBA() {
		t.Error("Snapshot shares memory with the renderer")
	}
}

func TestRender(t *testing.T) {
	rc := core.DefaultConfig().WithSize(64, 32)
	img := Render(zero.New(), rc, 3)

	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 32 {
		t.Fatalf("Render() bounds = %v, expected 64x32", img.Bounds())
	}
	if img.NRGBAAt(33, 16) != rc.Palette.Foreground.NRGBA() {
		t.Errorf("Render() (33, 16) = %v, expected foreground", img.NRGBAAt(33, 16))
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "frame.png")

	n, err := WriteFile(path, testImage(), PNG, 2)
	if err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if n != len(data) {
		t.Errorf("WriteFile() = %d bytes, file has %d", n, len(data))
	}

	img := decode(t, PNG, data)
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 8 {
		t.Errorf("written bounds = %v, expected 12x8", img.Bounds())
	}
}

func TestFileName(t *testing.T) {
	ts := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	if got := FileName("orbit", WebP, ts); got != "orbit-20260304-050607.webp" {
		t.Errorf("FileName() = %q, expected %q", got, "orbit-20260304-050607.webp")
	}
}

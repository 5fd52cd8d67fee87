package export

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/draw"

	"github.com/vovakirdan/zero/internal/core"
	"github.com/vovakirdan/zero/internal/raster"
	"github.com/vovakirdan/zero/internal/registry"
)

// MaxScale bounds the upscale factor.
const MaxScale = 16

// Snapshot copies the renderer's frame into a new image, so the frame can
// be redrawn while the copy is encoded.
func Snapshot(r *raster.Renderer) *image.NRGBA {
	src := r.Image()
	dst := image.NewNRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

// Scale enlarges img by an integer factor with nearest-neighbour sampling,
// so every source pixel becomes a factor×factor block. The factor is
// clamped to [1, MaxScale].
func Scale(img image.Image, factor int) image.Image {
	factor = core.Clamp(factor, 1, MaxScale)
	if factor == 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Render resets the scene to rc, applies the given number of empty update
// ticks and draws one frame.
func Render(scene registry.Scene, rc core.RuntimeConfig, frames int) *image.NRGBA {
	r := raster.NewRenderer(raster.NewFrame(rc.Width, rc.Height), rc.Width, rc.Height)
	scene.Reset(rc)
	for i := 0; i < frames; i++ {
		scene.Update(core.NewInputFrame())
	}
	scene.Draw(r)
	return r.Image()
}

// Bytes encodes img, upscaled by scale, into memory.
func Bytes(img image.Image, f Format, scale int) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, Scale(img, scale), f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes img, upscaled by scale, to path, creating parent
// directories as needed. It returns the number of bytes written.
func WriteFile(path string, img image.Image, f Format, scale int) (int, error) {
	data, err := Bytes(img, f, scale)
	if err != nil {
		return 0, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("export: cannot create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("export: cannot write %s: %w", path, err)
	}
	return len(data), nil
}

// FileName returns "<scene>-<yyyymmdd-hhmmss><ext>".
func FileName(sceneID string, f Format, t time.Time) string {
	return sceneID + "-" + t.Format("20060102-150405") + f.Ext()
}

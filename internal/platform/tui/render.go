package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/zero/internal/raster"
)

// halfBlock paints the upper half of a cell in the foreground color and
// the lower half in the background color: two pixels per cell.
const halfBlock = "▀"

// Presenter turns a frame into terminal text, one text row per two pixel
// rows. Alpha is ignored; terminals have no translucency.
type Presenter struct {
	renderer *lipgloss.Renderer
}

// NewPresenter creates a presenter for the given lipgloss renderer. SSH
// sessions pass their own renderer so color detection follows the client.
func NewPresenter(r *lipgloss.Renderer) *Presenter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Presenter{renderer: r}
}

// cellPair is the two pixels shown by one terminal cell.
type cellPair struct {
	upper, lower raster.Color
}

// Render converts the frame to a styled string. An odd last pixel row is
// paired with black. Adjacent cells with the same colors share one style
// run to minimize ANSI escape sequences.
func (p *Presenter) Render(r *raster.Renderer) string {
	w, h := r.Width(), r.Height()
	rows := TextRows(h)

	var sb strings.Builder
	sb.Grow(w*rows*len(halfBlock) + rows)

	for row := 0; row < rows; row++ {
		if row > 0 {
			sb.WriteRune('\n')
		}

		y := row * 2
		x := 0
		for x < w {
			start := pairAt(r, x, y)
			n := 0
			for x < w && pairAt(r, x, y) == start {
				n++
				x++
			}
			sb.WriteString(p.style(start).Render(strings.Repeat(halfBlock, n)))
		}
	}
	return sb.String()
}

func (p *Presenter) style(c cellPair) lipgloss.Style {
	return p.renderer.NewStyle().
		Foreground(hexColor(c.upper)).
		Background(hexColor(c.lower))
}

func pairAt(r *raster.Renderer, x, y int) cellPair {
	upper, _ := r.Pixel(x, y)
	lower, ok := r.Pixel(x, y+1)
	if !ok {
		lower = raster.Black
	}
	return cellPair{upper: upper, lower: lower}
}

func hexColor(c raster.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// TextRows returns the number of terminal rows needed for h pixel rows.
func TextRows(h int) int {
	return (h + 1) / 2
}

// FrameSize returns the pixel size of a frame filling a cols×rows terminal
// with hudRows reserved below it. The result is at least 1×2.
func FrameSize(cols, rows, hudRows int) (w, h int) {
	w = max(cols, 1)
	h = 2 * max(rows-hudRows, 1)
	return w, h
}

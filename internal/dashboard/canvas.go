package dashboard

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/rileyhilliard/pidash/internal/chart"
)

// Braille character rendering for chart scenes.
//
// Each terminal cell holds a 2x4 dot matrix:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 (empty) and uses bit patterns:
// bit 0 = dot 1, bit 1 = dot 2, bit 2 = dot 3, bit 3 = dot 4,
// bit 4 = dot 5, bit 5 = dot 6, bit 6 = dot 7, bit 7 = dot 8

const brailleBase = '⠀'

// brailleDots maps [row][col] inside a cell to the bit offset.
var brailleDots = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

type cell struct {
	bits uint8
	fg   chart.Color
	bg   chart.Color
	text rune
	tc   chart.Color
}

// Canvas is a chart.Surface that rasterizes a scene into braille cells.
// Viewport pixels are scaled independently on each axis to the cell grid.
type Canvas struct {
	cols, rows int
	vp         chart.Viewport
	cells      [][]cell
	// Labels enables axis text. Narrow canvases leave it off since the
	// labels would cover most of the plot.
	Labels bool
}

// NewCanvas allocates a cols x rows canvas for scenes rendered at vp.
func NewCanvas(cols, rows int, vp chart.Viewport) *Canvas {
	cols = max(cols, 1)
	rows = max(rows, 1)
	c := &Canvas{cols: cols, rows: rows, vp: vp}
	c.cells = make([][]cell, rows)
	for i := range c.cells {
		c.cells[i] = make([]cell, cols)
	}
	return c
}

// Size returns the canvas dimensions in cells.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// dot converts a viewport pixel to dot coordinates.
func (c *Canvas) dot(p chart.Point) (int, int) {
	dx := int(math.Floor(p.X / float64(c.vp.Width) * float64(c.cols*2)))
	dy := int(math.Floor(p.Y / float64(c.vp.Height) * float64(c.rows*4)))
	return clampInt(dx, c.cols*2-1), clampInt(dy, c.rows*4-1)
}

// plot sets one dot. The most opaque color drawn into a cell wins, so
// faint grid lines never recolor the curve.
func (c *Canvas) plot(dx, dy int, col chart.Color) {
	if dx < 0 || dy < 0 || dx >= c.cols*2 || dy >= c.rows*4 {
		return
	}
	cl := &c.cells[dy/4][dx/2]
	cl.bits |= 1 << brailleDots[dy%4][dx%2]
	if col.A >= cl.fg.A {
		cl.fg = col
	}
}

// Line implements chart.Surface with Bresenham's algorithm.
func (c *Canvas) Line(from, to chart.Point, col chart.Color, _ float64) {
	x0, y0 := c.dot(from)
	x1, y1 := c.dot(to)

	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	errv := dx + dy
	for {
		c.plot(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * errv
		if e2 >= dy {
			errv += dy
			x0 += sx
		}
		if e2 <= dx {
			errv += dx
			y0 += sy
		}
	}
}

// Polyline implements chart.Surface.
func (c *Canvas) Polyline(pts []chart.Point, col chart.Color, width float64) {
	if len(pts) == 1 {
		dx, dy := c.dot(pts[0])
		c.plot(dx, dy, col)
		return
	}
	for i := 1; i < len(pts); i++ {
		c.Line(pts[i-1], pts[i], col, width)
	}
}

// FillPath implements chart.Surface by tinting the background of every
// cell whose center lies inside the polygon.
func (c *Canvas) FillPath(pts []chart.Point, col chart.Color) {
	if len(pts) < 3 {
		return
	}
	cw := float64(c.vp.Width) / float64(c.cols)
	ch := float64(c.vp.Height) / float64(c.rows)
	for r := range c.rows {
		for k := range c.cols {
			center := chart.Point{X: (float64(k) + 0.5) * cw, Y: (float64(r) + 0.5) * ch}
			if inside(pts, center) {
				c.cells[r][k].bg = col
			}
		}
	}
}

// Text implements chart.Surface. Text is clipped to the canvas and shifted
// inward when the anchor would push it past an edge.
func (c *Canvas) Text(s string, at chart.Point, col chart.Color, align chart.Align, _ chart.Baseline) {
	if !c.Labels || s == "" {
		return
	}
	runes := []rune(s)
	k := int(at.X / float64(c.vp.Width) * float64(c.cols))
	r := clampInt(int(at.Y/float64(c.vp.Height)*float64(c.rows)), c.rows-1)

	switch align {
	case chart.AlignCenter:
		k -= len(runes) / 2
	case chart.AlignRight:
		k -= len(runes)
	}
	k = clampInt(k, max(c.cols-len(runes), 0))

	for i, ru := range runes {
		if k+i >= c.cols {
			break
		}
		cl := &c.cells[r][k+i]
		cl.text = ru
		cl.tc = col
	}
}

// String renders the canvas as rows of styled braille characters.
func (c *Canvas) String() string {
	lines := make([]string, c.rows)
	for r, row := range c.cells {
		var b strings.Builder
		for _, cl := range row {
			bg := blend(cl.bg, ColorSurfaceBg)
			style := lipgloss.NewStyle().Background(bg)
			switch {
			case cl.text != 0:
				b.WriteString(style.Foreground(blend(cl.tc, bg)).Render(string(cl.text)))
			default:
				b.WriteString(style.Foreground(blend(cl.fg, bg)).Render(string(brailleBase + rune(cl.bits))))
			}
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

// Plain renders the canvas without color, for tests and dumb terminals.
func (c *Canvas) Plain() string {
	lines := make([]string, c.rows)
	for r, row := range c.cells {
		var b strings.Builder
		for _, cl := range row {
			if cl.text != 0 {
				b.WriteRune(cl.text)
				continue
			}
			b.WriteRune(brailleBase + rune(cl.bits))
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

// RenderScene draws sc onto a fresh canvas.
func RenderScene(sc chart.Scene, cols, rows int, labels bool) *Canvas {
	c := NewCanvas(cols, rows, sc.Viewport)
	c.Labels = labels
	if sc.State == chart.StateReady && sc.Viewport.Valid() {
		sc.Replay(c)
	}
	return c
}

// inside is the even-odd ray casting test.
func inside(poly []chart.Point, p chart.Point) bool {
	in := false
	j := len(poly) - 1
	for i := range poly {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
		j = i
	}
	return in
}

// blend composites c over an opaque background and returns a terminal color.
func blend(c chart.Color, bg lipgloss.Color) lipgloss.Color {
	if c.A == 0 {
		return bg
	}
	if c.A == 0xff {
		return lipgloss.Color(c.Hex())
	}
	back, err := colorful.Hex(string(bg))
	if err != nil {
		back = colorful.Color{}
	}
	fg := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	return lipgloss.Color(back.BlendRgb(fg, float64(c.A)/255).Clamped().Hex())
}

// clampInt clamps an integer to a range [0, maxVal].
func clampInt(val, maxVal int) int {
	if val < 0 {
		return 0
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Package export replays chart scenes onto go-chart renderers to produce
// PNG and SVG snapshots of a widget's graph.
package export

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/rileyhilliard/pidash/internal/chart"
	"github.com/rileyhilliard/pidash/internal/errors"
)

// Format is an output image format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// DefaultBackground is the dashboard's panel color.
var DefaultBackground = chart.Color{R: 0x1B, G: 0x1F, B: 0x24, A: 0xff}

// labelFontSize is in points at the renderer's default DPI.
const labelFontSize = 7.5

// ParseFormat accepts "png" or "svg" in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case PNG:
		return PNG, nil
	case SVG:
		return SVG, nil
	}
	return "", errors.New(errors.ErrExport,
		fmt.Sprintf("Unsupported image format %q", s),
		"Use png or svg")
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.New(errors.ErrExport,
			fmt.Sprintf("Cannot tell the image format of %q", path),
			"End the file name with .png or .svg, or pass --format")
	}
	return ParseFormat(ext)
}

// Options tune a snapshot.
type Options struct {
	// Background is painted under the scene. Zero uses DefaultBackground.
	Background chart.Color
	// Scale multiplies every coordinate. Values below 1 mean 1.
	Scale float64
}

// Write renders sc in the given format to w.
func Write(w io.Writer, sc chart.Scene, f Format, opts Options) error {
	if sc.State == chart.StateNoTarget || !sc.Viewport.Valid() {
		return errors.New(errors.ErrRender,
			"Nothing to export: the chart has no drawing area",
			"Give the chart a positive width and height")
	}

	s, err := NewSurface(f, sc.Viewport, opts.Scale)
	if err != nil {
		return err
	}

	bg := opts.Background
	if bg == (chart.Color{}) {
		bg = DefaultBackground
	}
	vw, vh := float64(sc.Viewport.Width), float64(sc.Viewport.Height)
	s.FillPath([]chart.Point{{X: 0, Y: 0}, {X: vw, Y: 0}, {X: vw, Y: vh}, {X: 0, Y: vh}}, bg)

	sc.Replay(s)
	return s.Save(w)
}

// Surface is a chart.Surface backed by a go-chart renderer.
type Surface struct {
	r     gochart.Renderer
	scale float64
}

// NewSurface allocates a renderer for the viewport.
func NewSurface(f Format, vp chart.Viewport, scale float64) (*Surface, error) {
	if scale < 1 {
		scale = 1
	}

	var provider gochart.RendererProvider
	switch f {
	case PNG:
		provider = gochart.PNG
	case SVG:
		provider = gochart.SVG
	default:
		_, err := ParseFormat(string(f))
		return nil, err
	}

	w := int(math.Round(float64(vp.Width) * scale))
	h := int(math.Round(float64(vp.Height) * scale))
	r, err := provider(w, h)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrExport,
			fmt.Sprintf("Cannot create %s renderer", f), "")
	}

	font, err := gochart.GetDefaultFont()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrExport, "Cannot load the chart font", "")
	}
	r.SetFont(font)

	return &Surface{r: r, scale: scale}, nil
}

// Save writes the finished image.
func (s *Surface) Save(w io.Writer) error {
	if err := s.r.Save(w); err != nil {
		return errors.WrapWithCode(err, errors.ErrExport, "Cannot write image", "Check the output path is writable")
	}
	return nil
}

func (s *Surface) xy(p chart.Point) (int, int) {
	return int(math.Round(p.X * s.scale)), int(math.Round(p.Y * s.scale))
}

func color(c chart.Color) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Line implements chart.Surface.
func (s *Surface) Line(from, to chart.Point, c chart.Color, width float64) {
	s.Polyline([]chart.Point{from, to}, c, width)
}

// Polyline implements chart.Surface. A single point is drawn as a dot.
func (s *Surface) Polyline(pts []chart.Point, c chart.Color, width float64) {
	switch len(pts) {
	case 0:
		return
	case 1:
		d := math.Max(width, 1) / 2
		p := pts[0]
		s.FillPath([]chart.Point{
			{X: p.X - d, Y: p.Y - d},
			{X: p.X + d, Y: p.Y - d},
			{X: p.X + d, Y: p.Y + d},
			{X: p.X - d, Y: p.Y + d},
		}, c)
		return
	}

	s.r.ResetStyle()
	s.r.SetStrokeColor(color(c))
	s.r.SetStrokeWidth(width * s.scale)
	s.r.MoveTo(s.xy(pts[0]))
	for _, p := range pts[1:] {
		s.r.LineTo(s.xy(p))
	}
	s.r.Stroke()
}

// FillPath implements chart.Surface.
func (s *Surface) FillPath(pts []chart.Point, c chart.Color) {
	if len(pts) < 3 {
		return
	}
	s.r.ResetStyle()
	s.r.SetFillColor(color(c))
	s.r.MoveTo(s.xy(pts[0]))
	for _, p := range pts[1:] {
		s.r.LineTo(s.xy(p))
	}
	s.r.Close()
	s.r.Fill()
}

// Text implements chart.Surface. go-chart anchors text at the left end of
// its baseline, so the box is shifted to honor align and baseline.
func (s *Surface) Text(text string, at chart.Point, c chart.Color, align chart.Align, baseline chart.Baseline) {
	s.r.ResetStyle()
	s.r.SetFontColor(color(c))
	s.r.SetFontSize(labelFontSize * s.scale)

	box := s.r.MeasureText(text)
	x, y := s.xy(at)
	switch align {
	case chart.AlignCenter:
		x -= box.Width() / 2
	case chart.AlignRight:
		x -= box.Width()
	}
	switch baseline {
	case chart.BaselineTop:
		y += box.Height()
	case chart.BaselineMiddle:
		y += box.Height() / 2
	}
	s.r.Text(text, x, y)
}

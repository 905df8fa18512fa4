// Package chart turns a window of samples into a device-independent list of
// draw commands. Rendering is a pure function of its inputs: the caller
// supplies "now", so identical inputs always produce identical scenes.
package chart

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/rileyhilliard/pidash/internal/series"
)

// Viewport is the drawable area in pixels.
type Viewport struct {
	Width, Height int
}

// Valid reports whether the viewport has a drawable area.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// rangeMargin is the headroom added above and below the data, as a fraction
// of the spread.
const rangeMargin = 0.1

// minSpread keeps flat series from collapsing the Y range to zero.
const minSpread = 1.0

// Render maps samples onto vp for a time window ending at now.
func Render(samples []series.Sample, vp Viewport, window time.Duration, now time.Time, st Style) Scene {
	if !vp.Valid() {
		return Scene{State: StateNoTarget, Viewport: vp}
	}
	if window <= 0 {
		window = series.DefaultWindow
	}

	recent := Recent(samples, window, now)
	if len(recent) == 0 {
		return Scene{State: StateEmpty, Viewport: vp}
	}

	st = st.withDefaults()
	g := newGeometry(recent, vp, window, now, st.Padding)

	sc := Scene{
		State:    StateReady,
		Viewport: vp,
		Range:    Range{Min: g.lo, Max: g.hi},
	}

	// Vertical grid: one line per window slice, labelled with seconds ago.
	for k := 0; k <= st.XSteps; k++ {
		ago := time.Duration(int64(window) * int64(k) / int64(st.XSteps))
		x := g.left + g.innerW*(1-float64(ago)/float64(window))
		sc.Commands = append(sc.Commands,
			Command{
				Kind:   KindLine,
				Role:   RoleGrid,
				Points: []Point{{x, g.top}, {x, g.baseY}},
				Color:  st.Grid,
				Width:  1,
			},
			Command{
				Kind:     KindText,
				Role:     RoleLabel,
				Points:   []Point{{x, g.baseY + 4}},
				Color:    st.Label,
				Text:     secondsLabel(ago),
				Align:    AlignCenter,
				Baseline: BaselineTop,
			},
		)
	}

	// Horizontal grid: top to bottom, labelled with the value at that height.
	for i := 0; i <= st.YSteps; i++ {
		ratio := float64(i) / float64(st.YSteps)
		y := g.top + g.innerH*ratio
		val := g.hi - (g.hi-g.lo)*ratio
		sc.Commands = append(sc.Commands,
			Command{
				Kind:   KindLine,
				Role:   RoleGrid,
				Points: []Point{{g.left, y}, {g.left + g.innerW, y}},
				Color:  st.Grid,
				Width:  1,
			},
			Command{
				Kind:     KindText,
				Role:     RoleLabel,
				Points:   []Point{{g.left - 6, y}},
				Color:    st.Label,
				Text:     fmt.Sprintf("%.1f%s", val, st.AxisSuffix),
				Align:    AlignRight,
				Baseline: BaselineMiddle,
			},
		)
	}

	sc.Commands = append(sc.Commands, Command{
		Kind:   KindPolyline,
		Role:   RoleAxis,
		Points: []Point{{g.left, g.top}, {g.left, g.baseY}, {g.left + g.innerW, g.baseY}},
		Color:  st.Axis,
		Width:  st.AxisWidth,
	})

	pts := make([]Point, len(recent))
	for i, s := range recent {
		pts[i] = Point{X: g.x(s.At), Y: g.y(s.Value)}
	}
	sc.Points = pts

	sc.Commands = append(sc.Commands, Command{
		Kind:   KindPolyline,
		Role:   RoleCurve,
		Points: clonePoints(pts),
		Color:  st.Curve,
		Width:  st.CurveWidth,
	})

	area := make([]Point, 0, len(pts)+2)
	area = append(area, pts...)
	area = append(area, Point{pts[len(pts)-1].X, g.baseY}, Point{pts[0].X, g.baseY})
	sc.Commands = append(sc.Commands, Command{
		Kind:   KindFill,
		Role:   RoleArea,
		Points: area,
		Color:  st.Fill,
	})

	return sc
}

// Recent returns the samples no older than window relative to now, in
// their original order. Samples stamped after now are kept; the renderer
// pins them to the right edge.
func Recent(samples []series.Sample, window time.Duration, now time.Time) []series.Sample {
	var out []series.Sample
	for _, s := range samples {
		if now.Sub(s.At) <= window {
			out = append(out, s)
		}
	}
	return out
}

// geometry holds the per-pass pixel mapping.
type geometry struct {
	now            time.Time
	window         time.Duration
	left, top      float64
	innerW, innerH float64
	baseY          float64
	lo, hi         float64
}

func newGeometry(recent []series.Sample, vp Viewport, window time.Duration, now time.Time, pad Padding) geometry {
	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, s := range recent {
		minVal = math.Min(minVal, s.Value)
		maxVal = math.Max(maxVal, s.Value)
	}
	spread := math.Max(maxVal-minVal, minSpread)

	innerW := math.Max(float64(vp.Width)-pad.Left-pad.Right, 1)
	innerH := math.Max(float64(vp.Height)-pad.Top-pad.Bottom, 1)

	return geometry{
		now:    now,
		window: window,
		left:   pad.Left,
		top:    pad.Top,
		innerW: innerW,
		innerH: innerH,
		baseY:  pad.Top + innerH,
		lo:     minVal - spread*rangeMargin,
		hi:     maxVal + spread*rangeMargin,
	}
}

// x maps a timestamp to a column. A timestamp ahead of now (clock skew
// between the sensor and this host) sits on the right edge.
func (g geometry) x(at time.Time) float64 {
	age := math.Max(float64(g.now.Sub(at)), 0) / float64(g.window)
	return g.left + g.innerW*(1-age)
}

func (g geometry) y(v float64) float64 {
	denom := g.hi - g.lo
	if denom == 0 {
		denom = 1
	}
	return g.top + g.innerH - ((v-g.lo)/denom)*g.innerH
}

func secondsLabel(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}

func clonePoints(pts []Point) []Point {
	out := make([]Point, len(pts))
	copy(out, pts)
	return out
}

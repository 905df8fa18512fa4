package chart

// Padding reserves room around the plot area for axis labels.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// DefaultPadding leaves room for value labels on the left and time labels
// below the baseline.
var DefaultPadding = Padding{Top: 8, Right: 10, Bottom: 22, Left: 44}

// Style controls the look of a rendered chart. Geometry does not depend on
// it except through Padding.
type Style struct {
	Padding    Padding
	AxisSuffix string
	Curve      Color
	CurveWidth float64
	Fill       Color
	Grid       Color
	Label      Color
	Axis       Color
	AxisWidth  float64
	// YSteps is the number of horizontal grid intervals.
	YSteps int
	// XSteps is the number of vertical grid intervals across the window.
	XSteps int
}

// DefaultStyle returns the neutral chart style.
func DefaultStyle() Style {
	return Style{
		Padding:    DefaultPadding,
		Curve:      Color{R: 0x4f, G: 0xa3, B: 0xff, A: 0xff},
		CurveWidth: 2,
		Fill:       RGBA(79, 163, 255, 0.12),
		Grid:       RGBA(255, 255, 255, 0.12),
		Label:      RGBA(255, 255, 255, 0.7),
		Axis:       RGBA(255, 255, 255, 0.5),
		AxisWidth:  1.5,
		YSteps:     4,
		XSteps:     4,
	}
}

// withDefaults fills zero-valued knobs so a partially built Style renders.
func (s Style) withDefaults() Style {
	d := DefaultStyle()
	if s.Padding == (Padding{}) {
		s.Padding = d.Padding
	}
	if s.CurveWidth <= 0 {
		s.CurveWidth = d.CurveWidth
	}
	if s.AxisWidth <= 0 {
		s.AxisWidth = d.AxisWidth
	}
	if s.YSteps <= 0 {
		s.YSteps = d.YSteps
	}
	if s.XSteps <= 0 {
		s.XSteps = d.XSteps
	}
	for _, c := range []struct {
		dst *Color
		def Color
	}{
		{&s.Curve, d.Curve},
		{&s.Fill, d.Fill},
		{&s.Grid, d.Grid},
		{&s.Label, d.Label},
		{&s.Axis, d.Axis},
	} {
		if *c.dst == (Color{}) {
			*c.dst = c.def
		}
	}
	return s
}

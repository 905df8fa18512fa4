package widget

import (
	"math"
	"strconv"
	"strings"

	"github.com/rileyhilliard/pidash/internal/chart"
)

// Kind separates numeric metric widgets from geolocation widgets.
type Kind int

const (
	KindNumeric Kind = iota
	KindGeo
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	if k == KindGeo {
		return "geo"
	}
	return "numeric"
}

// Gauge ramp colors, coldest first.
var (
	RampCold = chart.Color{R: 0x4A, G: 0x90, B: 0xE2, A: 0xff}
	RampOK   = chart.Color{R: 0x7E, G: 0xD3, B: 0x21, A: 0xff}
	RampWarm = chart.Color{R: 0xF5, G: 0xA6, B: 0x23, A: 0xff}
	RampHot  = chart.Color{R: 0xD0, G: 0x02, B: 0x1B, A: 0xff}
)

// Profile is the per-sensor-type display strategy: how values are
// formatted, what the chart axis says and which colors are used. The
// charting algorithm itself is shared by every profile.
type Profile struct {
	Name       string
	Kind       Kind
	AxisSuffix string
	Curve      chart.Color
	Fill       chart.Color

	format func(float64) string
	gauge  func(float64) float64
	ramp   func(float64) chart.Color
}

// FormatValue renders v for the compact card display.
func (p Profile) FormatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if p.format == nil {
		return fixed(v, 1)
	}
	return p.format(v)
}

// Gauge returns the card gauge fill in percent. ok is false when the
// profile has no gauge or v is not finite.
func (p Profile) Gauge(v float64) (pct float64, ok bool) {
	if p.gauge == nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return clamp(p.gauge(v), 0, 100), true
}

// Ramp returns the gauge color for v.
func (p Profile) Ramp(v float64) chart.Color {
	if p.ramp == nil {
		return p.Curve
	}
	return p.ramp(v)
}

// Style returns the chart style for this profile.
func (p Profile) Style() chart.Style {
	st := chart.DefaultStyle()
	st.AxisSuffix = p.AxisSuffix
	st.Curve = p.Curve
	st.Fill = p.Fill
	return st
}

// ProfileFor selects the display strategy for a sensor. The unit decides
// the number format; the type and unit together pick colors and gauges.
func ProfileFor(ref SensorRef) Profile {
	unit := strings.ToLower(strings.TrimSpace(ref.Unit))
	typ := strings.ToLower(strings.TrimSpace(ref.Type))

	switch {
	case isGeo(typ, unit):
		return Profile{
			Name:  "position",
			Kind:  KindGeo,
			Curve: chart.Color{R: 0x00, G: 0xD4, B: 0xFF, A: 0xff},
			Fill:  chart.RGBA(0, 212, 255, 0.12),
		}
	case unit == "etat" || unit == "state":
		return Profile{
			Name:   "state",
			Curve:  chart.Color{R: 0xEA, G: 0xB3, B: 0x08, A: 0xff},
			Fill:   chart.RGBA(234, 179, 8, 0.12),
			format: formatState,
		}
	case unit == "c" || unit == "°c" || strings.HasPrefix(typ, "temp"):
		return Profile{
			Name:       "temperature",
			AxisSuffix: "°C",
			Curve:      chart.Color{R: 0x13, G: 0x53, B: 0x11, A: 0xff},
			Fill:       chart.Color{R: 0x83, G: 0xB6, B: 0x81, A: 0x57},
			format:     decimals(1),
			gauge:      func(v float64) float64 { return (v + 20) / 100 * 100 },
			ramp:       thresholdRamp,
		}
	case unit == "%":
		return Profile{
			Name:       "percent",
			AxisSuffix: "%",
			Curve:      chart.Color{R: 0x4F, G: 0xA3, B: 0xFF, A: 0xff},
			Fill:       chart.RGBA(79, 163, 255, 0.12),
			format:     rounded,
			gauge:      func(v float64) float64 { return v },
			ramp:       thresholdRamp,
		}
	case unit == "ppm":
		return Profile{
			Name:   "co2",
			Curve:  chart.Color{R: 0x4F, G: 0xA3, B: 0xFF, A: 0xff},
			Fill:   chart.RGBA(79, 163, 255, 0.12),
			format: rounded,
		}
	case unit == "l/min":
		return genericProfile("flow", decimals(1))
	case unit == "bar":
		return genericProfile("pressure", decimals(2))
	default:
		return genericProfile("generic", decimals(1))
	}
}

func genericProfile(name string, format func(float64) string) Profile {
	return Profile{
		Name:   name,
		Curve:  chart.Color{R: 0x22, G: 0xC5, B: 0x5E, A: 0xff},
		Fill:   chart.RGBA(34, 197, 94, 0.12),
		format: format,
	}
}

func isGeo(typ, unit string) bool {
	switch unit {
	case "geo", "latlon", "gps":
		return true
	}
	return strings.Contains(typ, "position") || strings.Contains(typ, "gps")
}

func formatState(v float64) string {
	if v > 0.5 {
		return "ON"
	}
	return "OFF"
}

// rounded matches half-up rounding so 2.5 shows as 3 and -2.5 as -2.
func rounded(v float64) string {
	return strconv.FormatFloat(math.Floor(v+0.5), 'f', 0, 64)
}

func decimals(n int) func(float64) string {
	return func(v float64) string { return fixed(v, n) }
}

func fixed(v float64, n int) string {
	return strconv.FormatFloat(v, 'f', n, 64)
}

func thresholdRamp(v float64) chart.Color {
	switch {
	case v < 0:
		return RampCold
	case v < 20:
		return RampOK
	case v < 30:
		return RampWarm
	default:
		return RampHot
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

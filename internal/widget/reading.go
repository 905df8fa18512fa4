package widget

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	pderrors "github.com/rileyhilliard/pidash/internal/errors"
)

// Reading is one telemetry payload: a Value for numeric sensors or a
// GeoFix for position sensors.
type Reading interface {
	kind() Kind
}

// Value is a numeric metric reading.
type Value float64

func (Value) kind() Kind { return KindNumeric }

// GeoFix is a position reading. Non-finite coordinates carry only a source
// label and leave the last known position in place.
type GeoFix struct {
	Latitude  float64
	Longitude float64
	Source    string
}

func (GeoFix) kind() Kind { return KindGeo }

// HasCoords reports whether both coordinates are usable.
func (g GeoFix) HasCoords() bool {
	return isFinite(g.Latitude) && isFinite(g.Longitude)
}

// ParseReading converts a loosely typed payload (as decoded from JSON or
// handed over by a scripting host) into a Reading for the given kind.
// display is the text the card shows for numeric input, kept verbatim so
// that garbage input stays visible.
func ParseReading(k Kind, raw any) (r Reading, display string, err error) {
	if k == KindGeo {
		g, err := parseGeo(raw)
		return g, "", err
	}

	switch v := raw.(type) {
	case Value:
		return v, "", nil
	case float64:
		return Value(v), "", nil
	case float32:
		return Value(v), "", nil
	case int:
		return Value(v), "", nil
	case int64:
		return Value(v), "", nil
	case int32:
		return Value(v), "", nil
	case uint:
		return Value(v), "", nil
	case uint64:
		return Value(v), "", nil
	case bool:
		if v {
			return Value(1), "", nil
		}
		return Value(0), "", nil
	case json.Number:
		f, perr := v.Float64()
		if perr != nil {
			return Value(math.NaN()), v.String(), nil
		}
		return Value(f), "", nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return Value(0), "", nil
		}
		f, perr := strconv.ParseFloat(s, 64)
		if perr != nil {
			return Value(math.NaN()), v, nil
		}
		if !isFinite(f) {
			return Value(f), v, nil
		}
		return Value(f), "", nil
	case nil:
		return nil, "", pderrors.New(pderrors.ErrWidget,
			"Missing reading value",
			"Send a number, or {latitude, longitude, source} for position sensors")
	default:
		return nil, "", pderrors.New(pderrors.ErrWidget,
			fmt.Sprintf("Unsupported reading type %T", raw),
			"Send a number or a numeric string")
	}
}

func parseGeo(raw any) (GeoFix, error) {
	fix := GeoFix{Latitude: math.NaN(), Longitude: math.NaN()}
	switch v := raw.(type) {
	case GeoFix:
		return v, nil
	case *GeoFix:
		if v == nil {
			break
		}
		return *v, nil
	case map[string]any:
		if lat, ok := number(v["latitude"]); ok {
			fix.Latitude = lat
		}
		if lon, ok := number(v["longitude"]); ok {
			fix.Longitude = lon
		}
		if src, ok := v["source"].(string); ok {
			fix.Source = src
		}
		return fix, nil
	case string:
		var m map[string]any
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			return fix, pderrors.WrapWithCode(err, pderrors.ErrWidget,
				"Cannot decode position reading",
				`Expected {"latitude": <n>, "longitude": <n>, "source": "<label>"}`)
		}
		return parseGeo(m)
	}
	return fix, pderrors.New(pderrors.ErrWidget,
		fmt.Sprintf("Unsupported position reading type %T", raw),
		`Expected {"latitude": <n>, "longitude": <n>, "source": "<label>"}`)
}

// number accepts only real numbers, matching a strict typeof check.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// ParseTimestamp parses an ISO-8601 timestamp. An empty string yields the
// zero time, which callers treat as "now".
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, pderrors.New(pderrors.ErrWidget,
		fmt.Sprintf("Invalid timestamp %q", s),
		"Use ISO-8601, e.g. 2026-01-02T15:04:05Z")
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

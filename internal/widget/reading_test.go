package widget

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pderrors "github.com/rileyhilliard/pidash/internal/errors"
)

func TestParseReadingNumeric(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    float64
		nan     bool
		display string
		wantErr bool
	}{
		{name: "float", raw: 22.5, want: 22.5},
		{name: "int", raw: 3, want: 3},
		{name: "numeric string", raw: " 12.5 ", want: 12.5},
		{name: "json number", raw: json.Number("640"), want: 640},
		{name: "bool true", raw: true, want: 1},
		{name: "empty string is zero", raw: "", want: 0},
		{name: "garbage string keeps display", raw: "abc", nan: true, display: "abc"},
		{name: "infinity string keeps display", raw: "Infinity", want: math.Inf(1), display: "Infinity"},
		{name: "nil is an error", raw: nil, wantErr: true},
		{name: "struct is an error", raw: struct{}{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, display, err := ParseReading(KindNumeric, tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, pderrors.IsCode(err, pderrors.ErrWidget))
				return
			}
			require.NoError(t, err)
			v, ok := r.(Value)
			require.True(t, ok)
			if tt.nan {
				assert.True(t, math.IsNaN(float64(v)))
			} else {
				assert.Equal(t, tt.want, float64(v))
			}
			assert.Equal(t, tt.display, display)
		})
	}
}

func TestParseReadingGeo(t *testing.T) {
	tests := []struct {
		name      string
		raw       any
		hasCoords bool
		lat, lon  float64
		source    string
		wantErr   bool
	}{
		{
			name:      "map with coordinates",
			raw:       map[string]any{"latitude": 48.85, "longitude": 2.35, "source": "gps"},
			hasCoords: true, lat: 48.85, lon: 2.35, source: "gps",
		},
		{
			name:   "source only",
			raw:    map[string]any{"source": "wifi"},
			source: "wifi",
		},
		{
			name:   "string coordinates are not numbers",
			raw:    map[string]any{"latitude": "48", "longitude": "2"},
			source: "",
		},
		{
			name:      "json payload",
			raw:       `{"latitude": 50, "longitude": -1.5, "source": "simulation"}`,
			hasCoords: true, lat: 50, lon: -1.5, source: "simulation",
		},
		{
			name:      "typed fix",
			raw:       GeoFix{Latitude: 1, Longitude: 2},
			hasCoords: true, lat: 1, lon: 2,
		},
		{name: "bad json", raw: `{"latitude":`, wantErr: true},
		{name: "number is not a position", raw: 42.0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, err := ParseReading(KindGeo, tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			g, ok := r.(GeoFix)
			require.True(t, ok)
			assert.Equal(t, tt.hasCoords, g.HasCoords())
			assert.Equal(t, tt.source, g.Source)
			if tt.hasCoords {
				assert.Equal(t, tt.lat, g.Latitude)
				assert.Equal(t, tt.lon, g.Longitude)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{name: "empty means now", in: "", want: time.Time{}},
		{name: "rfc3339 with millis", in: "2026-01-02T15:04:05.250Z", want: time.Date(2026, 1, 2, 15, 4, 5, 250e6, time.UTC)},
		{name: "rfc3339 with offset", in: "2026-01-02T16:04:05+01:00", want: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)},
		{name: "date only", in: "2026-01-02", want: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
		{name: "garbage", in: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
		})
	}
}

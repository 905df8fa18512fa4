package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/pidash/internal/series"
)

func at(ms int64) time.Time {
	return time.UnixMilli(ms)
}

func samples(pairs ...float64) []series.Sample {
	out := make([]series.Sample, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, series.Sample{At: at(int64(pairs[i])), Value: pairs[i+1]})
	}
	return out
}

func TestRenderStates(t *testing.T) {
	tests := []struct {
		name    string
		samples []series.Sample
		vp      Viewport
		now     time.Time
		want    State
	}{
		{
			name:    "zero width has no target",
			samples: samples(0, 10),
			vp:      Viewport{Width: 0, Height: 90},
			now:     at(1000),
			want:    StateNoTarget,
		},
		{
			name:    "negative height has no target",
			samples: samples(0, 10),
			vp:      Viewport{Width: 260, Height: -1},
			now:     at(1000),
			want:    StateNoTarget,
		},
		{
			name:    "no samples is empty",
			samples: nil,
			vp:      Viewport{Width: 260, Height: 90},
			now:     at(1000),
			want:    StateEmpty,
		},
		{
			name:    "all samples outside the window is empty",
			samples: samples(0, 10, 500, 12),
			vp:      Viewport{Width: 260, Height: 90},
			now:     at(61000),
			want:    StateEmpty,
		},
		{
			name:    "sample on the window edge is drawn",
			samples: samples(1000, 10),
			vp:      Viewport{Width: 260, Height: 90},
			now:     at(61000),
			want:    StateReady,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := Render(tt.samples, tt.vp, series.DefaultWindow, tt.now, DefaultStyle())
			assert.Equal(t, tt.want, sc.State)
			if tt.want != StateReady {
				assert.Empty(t, sc.Commands)
				assert.Empty(t, sc.Points)
			}
		})
	}
}

func TestRenderPointMapping(t *testing.T) {
	now := at(100000)
	sc := Render(samples(99000, 21.5), Viewport{Width: 260, Height: 90}, 60*time.Second, now, DefaultStyle())
	require.Equal(t, StateReady, sc.State)
	require.Len(t, sc.Points, 1)

	// innerW = 260 - 44 - 10 = 206; one second old of a sixty second window.
	assert.InDelta(t, 44+206*(1-1000.0/60000.0), sc.Points[0].X, 1e-9)
	assert.InDelta(t, 246.567, sc.Points[0].X, 1e-3)

	// Single value: spread floors to 1, so the point sits mid-height.
	// innerH = 90 - 8 - 22 = 60.
	assert.InDelta(t, 38, sc.Points[0].Y, 1e-9)
	assert.InDelta(t, 21.4, sc.Range.Min, 1e-9)
	assert.InDelta(t, 21.6, sc.Range.Max, 1e-9)
}

func TestRenderFutureSampleStaysInsidePlot(t *testing.T) {
	now := at(100000)
	vp := Viewport{Width: 260, Height: 90}
	sc := Render(samples(99000, 1, 102500, 2), vp, 60*time.Second, now, DefaultStyle())
	require.Equal(t, StateReady, sc.State)
	require.Len(t, sc.Points, 2)

	right := float64(vp.Width) - DefaultStyle().Padding.Right
	assert.InDelta(t, right, sc.Points[1].X, 1e-9, "sample stamped ahead of now is pinned to the right edge")
	for _, c := range sc.Commands {
		for _, p := range c.Points {
			assert.LessOrEqual(t, p.X, right+1e-9)
		}
	}
}

func TestRenderRange(t *testing.T) {
	now := at(10000)
	sc := Render(samples(0, 10, 5000, 30, 10000, 20), Viewport{Width: 300, Height: 130}, 60*time.Second, now, DefaultStyle())
	require.Equal(t, StateReady, sc.State)

	assert.InDelta(t, 8, sc.Range.Min, 1e-9)
	assert.InDelta(t, 32, sc.Range.Max, 1e-9)

	innerH := 130.0 - 30
	// Max value maps 10% below the top edge, min 10% above the baseline.
	assert.InDelta(t, 8+innerH*(2.0/24.0), sc.Points[1].Y, 1e-9)
	assert.InDelta(t, 8+innerH*(22.0/24.0), sc.Points[0].Y, 1e-9)
	// Newest sample sits on the right edge of the plot.
	assert.InDelta(t, 44+(300.0-54), sc.Points[2].X, 1e-9)
}

func TestRenderCommands(t *testing.T) {
	st := DefaultStyle()
	st.AxisSuffix = "°C"
	sc := Render(samples(59000, 10), Viewport{Width: 260, Height: 90}, 60*time.Second, at(60000), st)
	require.Equal(t, StateReady, sc.State)

	// 5 vertical + 5 horizontal (line + label), axes, curve, area.
	assert.Len(t, sc.Commands, 23)
	assert.Len(t, sc.Filter(RoleGrid), 10)
	assert.Len(t, sc.Filter(RoleAxis), 1)

	labels := sc.Filter(RoleLabel)
	require.Len(t, labels, 10)
	assert.Equal(t, []string{"0s", "15s", "30s", "45s", "60s"}, []string{
		labels[0].Text, labels[1].Text, labels[2].Text, labels[3].Text, labels[4].Text,
	})
	assert.Equal(t, "10.1°C", labels[5].Text)
	assert.Equal(t, "9.9°C", labels[9].Text)
	assert.Equal(t, AlignRight, labels[5].Align)
	assert.Equal(t, BaselineTop, labels[0].Baseline)

	// "0s" is the right edge, "60s" the left axis.
	assert.InDelta(t, 250, labels[0].Points[0].X, 1e-9)
	assert.InDelta(t, 44, labels[4].Points[0].X, 1e-9)
	assert.InDelta(t, 72, labels[0].Points[0].Y, 1e-9)

	last := sc.Commands[len(sc.Commands)-1]
	assert.Equal(t, KindFill, last.Kind)
	assert.Equal(t, RoleArea, last.Role)
	require.Len(t, last.Points, 3)
	assert.InDelta(t, 68, last.Points[1].Y, 1e-9, "area closes along the baseline")
	assert.InDelta(t, 68, last.Points[2].Y, 1e-9)

	curve := sc.Commands[len(sc.Commands)-2]
	assert.Equal(t, KindPolyline, curve.Kind)
	assert.Equal(t, st.Curve, curve.Color)
	assert.Equal(t, 2.0, curve.Width)
}

func TestRenderIsIdempotent(t *testing.T) {
	in := samples(1000, 3, 2000, 4, 2500, -1)
	vp := Viewport{Width: 400, Height: 200}
	now := at(3000)

	a := Render(in, vp, 60*time.Second, now, DefaultStyle())
	b := Render(in, vp, 60*time.Second, now, DefaultStyle())
	assert.Equal(t, a, b)
}

func TestRenderDoesNotAliasInput(t *testing.T) {
	in := samples(1000, 3, 2000, 4)
	sc := Render(in, Viewport{Width: 400, Height: 200}, 60*time.Second, at(3000), DefaultStyle())
	sc.Points[0].X = -1
	again := Render(in, Viewport{Width: 400, Height: 200}, 60*time.Second, at(3000), DefaultStyle())
	assert.NotEqual(t, -1.0, again.Points[0].X)
	assert.Equal(t, 3.0, in[0].Value)
}

func TestRenderCustomWindowLabels(t *testing.T) {
	sc := Render(samples(0, 1), Viewport{Width: 260, Height: 90}, 10*time.Second, at(1000), DefaultStyle())
	labels := sc.Filter(RoleLabel)
	require.Len(t, labels, 10)
	assert.Equal(t, "2.5s", labels[1].Text)
	assert.Equal(t, "10s", labels[4].Text)
}

func TestRenderTinyViewportClampsInnerArea(t *testing.T) {
	sc := Render(samples(0, 1), Viewport{Width: 10, Height: 10}, 60*time.Second, at(0), DefaultStyle())
	require.Equal(t, StateReady, sc.State)
	// innerW and innerH both clamp to 1.
	assert.InDelta(t, 45, sc.Points[0].X, 1e-9)
	assert.InDelta(t, 8.5, sc.Points[0].Y, 1e-9)
}

func TestRecent(t *testing.T) {
	in := samples(0, 1, 30000, 2, 60000, 3)
	got := Recent(in, 30*time.Second, at(60000))
	require.Len(t, got, 2)
	assert.Equal(t, 2.0, got[0].Value)
	assert.Equal(t, 3.0, got[1].Value)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "no-target", StateNoTarget.String())
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "State(9)", State(9).String())
}

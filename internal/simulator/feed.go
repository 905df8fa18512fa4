// Package simulator produces demo telemetry for every sensor in a fleet:
// a bounded random walk for numeric sensors and a jittered fix for
// position sensors.
package simulator

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rileyhilliard/pidash/internal/clock"
	"github.com/rileyhilliard/pidash/internal/fleet"
	"github.com/rileyhilliard/pidash/internal/logger"
	"github.com/rileyhilliard/pidash/internal/series"
	"github.com/rileyhilliard/pidash/internal/widget"
)

// DefaultInterval is the demo tick period.
const DefaultInterval = 3200 * time.Millisecond

// SourceLabel tags simulated position fixes.
const SourceLabel = "simulation"

// Update is one simulated reading, shaped like a payload from the wire.
type Update struct {
	SensorID  string
	Raw       any
	Timestamp string
}

// Feed walks every sensor's value. Safe for concurrent use.
type Feed struct {
	mu      sync.Mutex
	rng     *rand.Rand
	clock   clock.Clock
	log     logger.Logger
	fleet   *fleet.Fleet
	current map[string]float64
}

// New seeds a feed at each sensor's configured initial value. A zero seed
// picks a random one.
func New(f *fleet.Fleet, seed uint64, clk clock.Clock, log logger.Logger) *Feed {
	if seed == 0 {
		seed = rand.Uint64()
	}
	if log == nil {
		log = logger.Noop()
	}
	feed := &Feed{
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		clock:   clock.OrWall(clk),
		log:     log,
		fleet:   f,
		current: make(map[string]float64),
	}
	for _, s := range f.Sensors() {
		feed.current[s.ID] = s.Initial
	}
	return feed
}

// Value returns the sensor's latest simulated value.
func (f *Feed) Value(sensorID string) (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.current[sensorID]
	return v, ok
}

// Step advances each listed sensor once and returns the readings in the
// same order. Unknown ids are skipped.
func (f *Feed) Step(ids []string) []Update {
	now := f.clock.Now()
	stamp := now.UTC().Format(time.RFC3339Nano)

	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Update, 0, len(ids))
	for _, id := range ids {
		s, ok := f.fleet.Sensor(id)
		if !ok {
			continue
		}
		if widget.ProfileFor(s.Ref()).Kind == widget.KindGeo {
			out = append(out, Update{SensorID: id, Raw: f.fixLocked(), Timestamp: stamp})
			continue
		}
		v := f.current[id]
		v = math.Max(0, v+(f.rng.Float64()-0.5)*drift(s.Unit, v))
		f.current[id] = v
		out = append(out, Update{SensorID: id, Raw: v, Timestamp: stamp})
	}
	return out
}

func (f *Feed) fixLocked() widget.GeoFix {
	return widget.GeoFix{
		Latitude:  45 + f.rng.Float64()*10,
		Longitude: -5 + f.rng.Float64()*10,
		Source:    SourceLabel,
	}
}

// drift is the step amplitude: proportional to the value with a small
// floor, and zero for on/off sensors so they hold their state.
func drift(unit string, v float64) float64 {
	if unit == "etat" || unit == "state" {
		return 0
	}
	return v*0.02 + 0.4
}

// Backfill fabricates n samples ending at now, spaced apart, so a newly
// opened graph is not empty. The walk starts from the sensor's current
// value and does not advance it.
func (f *Feed) Backfill(sensorID string, n int, spacing time.Duration, now time.Time) []series.Sample {
	if n <= 0 {
		return nil
	}
	s, ok := f.fleet.Sensor(sensorID)
	if !ok || widget.ProfileFor(s.Ref()).Kind == widget.KindGeo {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	base := f.current[sensorID]
	cur := base
	out := make([]series.Sample, n)
	for i := range n {
		out[i] = series.Sample{
			At:    now.Add(-time.Duration(n-1-i) * spacing),
			Value: cur,
		}
		cur = math.Max(0, cur+(f.rng.Float64()-0.5)*(base*0.05+1))
	}
	return out
}

// Run steps the sensors returned by ids every interval and sends each
// batch on the returned channel. The channel is closed when ctx is done.
// ids is called on every tick so the set can follow the open widgets.
func (f *Feed) Run(ctx context.Context, interval time.Duration, ids func() []string) <-chan []Update {
	if interval <= 0 {
		interval = DefaultInterval
	}
	out := make(chan []Update, 1)

	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			batch := f.Step(ids())
			if len(batch) == 0 {
				continue
			}
			select {
			case out <- batch:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// Apply delivers updates to the open widgets in reg. Readings for sensors
// without a widget are dropped. Returns how many were delivered.
func Apply(reg *widget.Registry, updates []Update, log logger.Logger) int {
	if log == nil {
		log = logger.Noop()
	}
	n := 0
	for _, u := range updates {
		w, ok := reg.Get(u.SensorID)
		if !ok {
			continue
		}
		if err := w.UpdateRaw(u.Raw, u.Timestamp); err != nil {
			log.Debug("sensor %s: %v", u.SensorID, err)
			continue
		}
		n++
	}
	return n
}

// Prime readies a freshly opened widget: backfill samples spread over its
// window, then one live reading so the card is not blank either.
func (f *Feed) Prime(reg *widget.Registry, sensorID string, backfill int) {
	w, ok := reg.Get(sensorID)
	if !ok {
		return
	}
	if backfill > 0 {
		spacing := w.Window() / time.Duration(backfill)
		w.Seed(f.Backfill(sensorID, backfill, spacing, f.clock.Now()))
	}
	Apply(reg, f.Step([]string{sensorID}), f.log)
}

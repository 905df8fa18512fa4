// Package widget binds a sample buffer and the chart renderer to one
// sensor, and keeps the set of open widgets.
package widget

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rileyhilliard/pidash/internal/chart"
	"github.com/rileyhilliard/pidash/internal/clock"
	pderrors "github.com/rileyhilliard/pidash/internal/errors"
	"github.com/rileyhilliard/pidash/internal/logger"
	"github.com/rileyhilliard/pidash/internal/series"
)

// SensorRef identifies a sensor and carries its display metadata.
type SensorRef struct {
	SensorID string
	Type     string
	Unit     string
}

// Mode is the widget display mode.
type Mode int

const (
	ModeCard Mode = iota
	ModeGraph
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeCard:
		return "card"
	case ModeGraph:
		return "graph"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "card" or "graph".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "card":
		return ModeCard, nil
	case "graph":
		return ModeGraph, nil
	}
	return ModeCard, pderrors.New(pderrors.ErrWidget,
		fmt.Sprintf("Unknown widget mode %q", s),
		"Use card or graph")
}

// SizeTier is a layout hint for the widget footprint.
type SizeTier int

const (
	Tier1 SizeTier = 1
	Tier2 SizeTier = 2
	Tier3 SizeTier = 3
)

// Valid reports whether t is one of the three tiers.
func (t SizeTier) Valid() bool {
	return t >= Tier1 && t <= Tier3
}

// DefaultViewport is the chart area a tier gets when the host layout has
// not reported one. Tier 1 matches the compact 260x90 spark area; larger
// tiers span additional grid columns.
func DefaultViewport(t SizeTier) chart.Viewport {
	if !t.Valid() {
		t = Tier1
	}
	n := int(t)
	return chart.Viewport{
		Width:  260*n + 20*(n-1),
		Height: 90 + 60*(n-1),
	}
}

// Listener receives render and layout notifications. Callbacks run on the
// goroutine that triggered them with no widget lock held, so they may call
// back into the instance, including Destroy or a registry Close.
type Listener interface {
	Rendered(id string, sc chart.Scene)
	LayoutChanged(id string, tier SizeTier)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	OnRendered func(id string, sc chart.Scene)
	OnLayout   func(id string, tier SizeTier)
}

func (f ListenerFuncs) Rendered(id string, sc chart.Scene) {
	if f.OnRendered != nil {
		f.OnRendered(id, sc)
	}
}

func (f ListenerFuncs) LayoutChanged(id string, tier SizeTier) {
	if f.OnLayout != nil {
		f.OnLayout(id, tier)
	}
}

// Card is the compact display snapshot of a widget.
type Card struct {
	Title    string
	Meta     string
	SensorID string
	Text     string
	Unit     string
	// Gauge is the fill percentage; HasGauge is false for profiles without one.
	Gauge      float64
	HasGauge   bool
	GaugeColor chart.Color
	Updated    time.Time
	// Position and Source are set for geo widgets.
	Position *GeoFix
	Source   string
}

// Option configures an Instance.
type Option func(*options)

type options struct {
	clock    clock.Clock
	window   time.Duration
	log      logger.Logger
	listener Listener
	viewport *chart.Viewport
}

// WithClock sets the time source for eviction and rendering.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithWindow sets the retention window.
func WithWindow(d time.Duration) Option {
	return func(o *options) { o.window = d }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithListener attaches a render/layout listener.
func WithListener(l Listener) Option {
	return func(o *options) { o.listener = l }
}

// WithViewport sets the initial chart viewport.
func WithViewport(vp chart.Viewport) Option {
	return func(o *options) { o.viewport = &vp }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	o.clock = clock.OrWall(o.clock)
	if o.log == nil {
		o.log = logger.Noop()
	}
	return o
}

// Instance is one live widget bound to a sensor.
type Instance struct {
	mu        sync.Mutex
	id        string
	ref       SensorRef
	host      string
	device    string
	created   time.Time
	profile   Profile
	buf       *series.Buffer
	clock     clock.Clock
	log       logger.Logger
	listener  Listener
	mode      Mode
	tier      SizeTier
	viewport  chart.Viewport
	card      Card
	scene     chart.Scene
	renders   int
	destroyed bool
}

// New creates a widget for ref in card mode with an empty buffer.
func New(ref SensorRef, hostLabel, deviceLabel string, opts ...Option) *Instance {
	o := buildOptions(opts)
	p := ProfileFor(ref)

	w := &Instance{
		id:       uuid.NewString(),
		ref:      ref,
		host:     hostLabel,
		device:   deviceLabel,
		profile:  p,
		buf:      series.NewBuffer(o.window, o.clock),
		clock:    o.clock,
		log:      o.log,
		listener: o.listener,
		mode:     ModeCard,
		tier:     Tier1,
	}
	w.created = o.clock.Now()
	if o.viewport != nil {
		w.viewport = *o.viewport
	} else {
		w.viewport = DefaultViewport(w.tier)
	}
	w.card = Card{
		Title:    ref.Type,
		Meta:     hostLabel + " / " + deviceLabel,
		SensorID: ref.SensorID,
		Unit:     ref.Unit,
	}
	return w
}

// ID returns the unique instance id. A sensor reopened after a close gets a
// new id.
func (w *Instance) ID() string { return w.id }

// Ref returns the sensor identity.
func (w *Instance) Ref() SensorRef { return w.ref }

// Labels returns the host and device names the widget was opened under.
func (w *Instance) Labels() (host, device string) { return w.host, w.device }

// Profile returns the display strategy.
func (w *Instance) Profile() Profile { return w.profile }

// Created returns the creation time.
func (w *Instance) Created() time.Time { return w.created }

// Update feeds one reading. Numeric readings refresh the card and go to the
// buffer; in graph mode the chart is redrawn right after. A reading whose
// shape does not match the sensor kind is ignored.
func (w *Instance) Update(r Reading, at time.Time) {
	w.update(r, at, "")
}

// UpdateRaw is the loosely typed ingress: value is a number, numeric
// string or position map and timestamp an optional ISO-8601 string. An
// unparseable timestamp falls back to arrival time.
func (w *Instance) UpdateRaw(value any, timestamp string) error {
	r, display, err := ParseReading(w.profile.Kind, value)
	if err != nil {
		return err
	}
	at, terr := ParseTimestamp(timestamp)
	if terr != nil {
		w.log.Debug("widget %s: %q is not a timestamp, using arrival time", w.ref.SensorID, timestamp)
	}
	w.update(r, at, display)
	return nil
}

func (w *Instance) update(r Reading, at time.Time, display string) {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return
	}
	if r == nil || r.kind() != w.profile.Kind {
		w.mu.Unlock()
		w.log.Debug("widget %s: ignoring %T reading for %s sensor", w.ref.SensorID, r, w.profile.Kind)
		return
	}

	now := w.clock.Now()
	w.card.Updated = now

	var rendered *chart.Scene
	switch v := r.(type) {
	case Value:
		f := float64(v)
		if display == "" {
			display = w.profile.FormatValue(f)
		}
		w.card.Text = display
		if pct, ok := w.profile.Gauge(f); ok {
			w.card.Gauge = pct
			w.card.HasGauge = true
			w.card.GaugeColor = w.profile.Ramp(f)
		}
		if !w.buf.Insert(f, at) {
			w.log.Debug("widget %s: dropped non-finite value %v", w.ref.SensorID, f)
		}
		if w.mode == ModeGraph {
			sc := w.renderLocked()
			rendered = &sc
		}
	case GeoFix:
		if v.Source != "" {
			w.card.Source = v.Source
		}
		if v.HasCoords() {
			pos := GeoFix{Latitude: v.Latitude, Longitude: v.Longitude, Source: w.card.Source}
			w.card.Position = &pos
			w.card.Text = fmt.Sprintf("%.4f, %.4f", v.Latitude, v.Longitude)
		}
	}
	w.mu.Unlock()

	if rendered != nil {
		w.emitRendered(*rendered)
	}
}

// SetMode switches between card and graph. Entering graph mode always
// renders, even without new data. Position widgets have no chart.
func (w *Instance) SetMode(m Mode) error {
	if m != ModeCard && m != ModeGraph {
		return pderrors.New(pderrors.ErrWidget, fmt.Sprintf("Unknown widget mode %d", int(m)), "Use card or graph")
	}

	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return nil
	}
	if m == ModeGraph && w.profile.Kind == KindGeo {
		w.mu.Unlock()
		return pderrors.New(pderrors.ErrWidget,
			fmt.Sprintf("Sensor %s has no chart view", w.ref.SensorID),
			"Position widgets only support card mode")
	}
	w.mode = m
	var sc chart.Scene
	if m == ModeGraph {
		sc = w.renderLocked()
	}
	w.mu.Unlock()

	if m == ModeGraph {
		w.emitRendered(sc)
	}
	return nil
}

// ToggleMode flips between card and graph and returns the new mode.
func (w *Instance) ToggleMode() (Mode, error) {
	next := ModeGraph
	if w.Mode() == ModeGraph {
		next = ModeCard
	}
	if err := w.SetMode(next); err != nil {
		return w.Mode(), err
	}
	return next, nil
}

// SetSizeTier records the layout hint and notifies the listener. The host
// layout is expected to answer with SetViewport once sizes settle.
func (w *Instance) SetSizeTier(t SizeTier) error {
	if !t.Valid() {
		return pderrors.New(pderrors.ErrWidget,
			fmt.Sprintf("Invalid size tier %d", int(t)),
			"Use a tier between 1 and 3")
	}
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return nil
	}
	changed := w.tier != t
	w.tier = t
	w.mu.Unlock()

	if changed {
		w.emitLayout(t)
	}
	return nil
}

// SetViewport applies new chart dimensions. In graph mode the chart is
// redrawn for the new size.
func (w *Instance) SetViewport(vp chart.Viewport) {
	w.mu.Lock()
	if w.destroyed || w.viewport == vp {
		w.mu.Unlock()
		return
	}
	w.viewport = vp
	graph := w.mode == ModeGraph
	var sc chart.Scene
	if graph {
		sc = w.renderLocked()
	}
	w.mu.Unlock()

	if graph {
		w.emitRendered(sc)
	}
}

// Redraw runs a render pass in graph mode and reports whether one ran.
// Hosts call it on their own refresh tick so the window keeps sliding
// between samples.
func (w *Instance) Redraw() bool {
	w.mu.Lock()
	if w.destroyed || w.mode != ModeGraph {
		w.mu.Unlock()
		return false
	}
	sc := w.renderLocked()
	w.mu.Unlock()

	w.emitRendered(sc)
	return true
}

// renderLocked recomputes the scene from scratch. Must be called with w.mu held.
func (w *Instance) renderLocked() chart.Scene {
	sc := chart.Render(w.buf.Snapshot(), w.viewport, w.buf.Window(), w.clock.Now(), w.profile.Style())
	w.scene = sc
	w.renders++
	return sc
}

// Destroy releases the buffer, drops rendered output and detaches the
// listener. Safe to call more than once, concurrently with updates, and
// from inside a listener callback. A callback already running when Destroy
// returns finishes; none starts afterwards.
func (w *Instance) Destroy() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.buf.Reset()
	w.scene = chart.Scene{}
	w.listener = nil
}

func (w *Instance) emitRendered(sc chart.Scene) {
	if l := w.currentListener(); l != nil {
		l.Rendered(w.id, sc)
	}
}

func (w *Instance) emitLayout(t SizeTier) {
	if l := w.currentListener(); l != nil {
		l.LayoutChanged(w.id, t)
	}
}

func (w *Instance) currentListener() Listener {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return nil
	}
	return w.listener
}

// Mode returns the display mode.
func (w *Instance) Mode() Mode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mode
}

// Tier returns the size tier.
func (w *Instance) Tier() SizeTier {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tier
}

// Viewport returns the chart viewport.
func (w *Instance) Viewport() chart.Viewport {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewport
}

// Card returns a copy of the compact display state.
func (w *Instance) Card() Card {
	w.mu.Lock()
	defer w.mu.Unlock()
	c := w.card
	if c.Position != nil {
		pos := *c.Position
		c.Position = &pos
	}
	return c
}

// Scene returns the last rendered scene. It is the zero Scene in card mode
// until the first switch to graph.
func (w *Instance) Scene() chart.Scene {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scene
}

// Renders returns how many render passes have run.
func (w *Instance) Renders() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.renders
}

// RenderAt renders the current window into vp without touching the
// widget's own viewport, scene or render count.
func (w *Instance) RenderAt(vp chart.Viewport) chart.Scene {
	return chart.Render(w.buf.Snapshot(), vp, w.buf.Window(), w.clock.Now(), w.profile.Style())
}

// Window returns the retention window.
func (w *Instance) Window() time.Duration {
	return w.buf.Window()
}

// Samples returns a copy of the retained samples.
func (w *Instance) Samples() []series.Sample {
	return w.buf.Snapshot()
}

// Values returns the retained values, oldest first.
func (w *Instance) Values() []float64 {
	return w.buf.Values()
}

// Seed inserts historical samples without touching the card or rendering.
// Used to backfill a freshly opened widget.
func (w *Instance) Seed(samples []series.Sample) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return
	}
	for _, s := range samples {
		w.buf.Insert(s.Value, s.At)
	}
}

// Destroyed reports whether Destroy has run.
func (w *Instance) Destroyed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.destroyed
}

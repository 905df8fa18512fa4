package cli

import (
	"github.com/rileyhilliard/pidash/internal/chart"
	"github.com/rileyhilliard/pidash/internal/clock"
	"github.com/rileyhilliard/pidash/internal/config"
	"github.com/rileyhilliard/pidash/internal/fleet"
	"github.com/rileyhilliard/pidash/internal/logger"
	"github.com/rileyhilliard/pidash/internal/simulator"
	"github.com/rileyhilliard/pidash/internal/ui"
	"github.com/rileyhilliard/pidash/internal/widget"
)

// app is the loaded config and everything built from it.
type app struct {
	cfg   *config.Config
	path  string // empty when running on defaults
	fleet *fleet.Fleet
	clock clock.Clock
	log   logger.Logger
}

// loadApp resolves the config (explicit path, search, or defaults),
// validates it and builds the fleet.
func loadApp(configPath string, clk clock.Clock) (*app, error) {
	cfg, path, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	applyColorMode(cfg.Output.Color)

	f, err := fleet.New(cfg.Fleet)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:   cfg,
		path:  path,
		fleet: f,
		clock: clock.OrWall(clk),
		log:   logger.Default(),
	}, nil
}

// registry builds an empty widget registry using the configured window and
// chart size.
func (a *app) registry(opts ...widget.Option) *widget.Registry {
	base := []widget.Option{
		widget.WithClock(a.clock),
		widget.WithLogger(a.log),
		widget.WithWindow(a.cfg.Window),
		widget.WithViewport(chart.Viewport{Width: a.cfg.Chart.Width, Height: a.cfg.Chart.Height}),
	}
	return widget.NewRegistry(append(base, opts...)...)
}

// feed builds the simulator over the fleet.
func (a *app) feed() *simulator.Feed {
	return simulator.New(a.fleet, a.cfg.Seed, a.clock, a.log)
}

// open creates a widget for each sensor id and primes it with backfill.
// Unknown ids fail before anything is opened.
func (a *app) open(reg *widget.Registry, feed *simulator.Feed, ids []string) error {
	sensors := make([]fleet.Sensor, 0, len(ids))
	for _, id := range ids {
		s, err := a.sensor(id)
		if err != nil {
			return err
		}
		sensors = append(sensors, s)
	}
	for _, s := range sensors {
		if reg.Has(s.ID) {
			continue
		}
		host, device, _ := a.fleet.Labels(s.ID)
		reg.Toggle(s.Ref(), host, device)
		feed.Prime(reg, s.ID, a.cfg.Simulator.Backfill)
	}
	return nil
}

func applyColorMode(mode string) {
	switch mode {
	case "never":
		ui.DisableColors()
	case "always":
		if !noColor {
			ui.ForceColors()
		}
	}
}

package cli

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/pidash/internal/dashboard"
	"github.com/rileyhilliard/pidash/internal/errors"
	"github.com/rileyhilliard/pidash/internal/ui"
)

// DashOptions holds options for the dash command.
type DashOptions struct {
	ConfigPath  string
	Refresh     string // overrides refresh from config
	SnapshotDir string
	Open        []string // sensors to open on start
}

// dashCommand starts the interactive dashboard.
func dashCommand(opts DashOptions) error {
	if !ui.IsTerminal(os.Stdout) {
		return errors.New(errors.ErrConfig,
			"The dashboard needs an interactive terminal",
			"Use 'pidash watch' for plain output, or run pidash in a terminal")
	}

	a, err := loadApp(opts.ConfigPath, nil)
	if err != nil {
		return err
	}

	refresh, err := ParseInterval(opts.Refresh, a.cfg.Refresh, minRefresh)
	if err != nil {
		return err
	}

	model, err := a.dashboardModel(refresh, opts)
	if err != nil {
		return err
	}

	a.log.Debug("dashboard: %d sensors, refresh %s", len(a.fleet.SensorIDs()), refresh)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// dashboardModel builds the Bubble Tea model with its registry and feed.
func (a *app) dashboardModel(refresh time.Duration, opts DashOptions) (dashboard.Model, error) {
	layout := dashboard.NewLayout()
	reg := a.registry(layout.Option())
	feed := a.feed()
	if err := a.open(reg, feed, opts.Open); err != nil {
		return dashboard.Model{}, err
	}

	return dashboard.NewModel(a.fleet, reg, feed, dashboard.Options{
		Refresh:     refresh,
		Backfill:    a.cfg.Simulator.Backfill,
		SnapshotDir: opts.SnapshotDir,
		Layout:      layout,
		Clock:       a.clock,
		Log:         a.log,
	}), nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/pidash/internal/clock"
	"github.com/rileyhilliard/pidash/internal/simulator"
	"github.com/rileyhilliard/pidash/internal/ui"
	"github.com/rileyhilliard/pidash/internal/widget"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	ConfigPath string
	Sensors    []string // empty watches every sensor in the fleet
	Interval   string   // overrides refresh from config
	Count      int      // stop after this many updates; 0 runs until interrupted
	Width      int      // sparkline width in characters
}

// defaultSparkWidth fits a 60s window at the demo refresh with room to spare.
const defaultSparkWidth = 24

// watchCommand prints a line per sensor on every simulator tick. It is the
// headless counterpart of the dashboard: same registry, same widgets.
func watchCommand(ctx context.Context, w io.Writer, opts WatchOptions, clk clock.Clock) error {
	a, err := loadApp(opts.ConfigPath, clk)
	if err != nil {
		return err
	}

	interval, err := ParseInterval(opts.Interval, a.cfg.Refresh, minRefresh)
	if err != nil {
		return err
	}
	if opts.Width <= 0 {
		opts.Width = defaultSparkWidth
	}

	ids := opts.Sensors
	if len(ids) == 0 {
		ids = a.fleet.SensorIDs()
	}

	reg := a.registry()
	defer reg.CloseAll()
	feed := a.feed()
	if err := a.open(reg, feed, ids); err != nil {
		return err
	}

	source := a.path
	if source == "" {
		source = "built-in demo fleet"
	}
	fmt.Fprint(w, ui.RenderHeader(ui.HeaderInfo{
		Version: formatVersion(version),
		Tagline: fmt.Sprintf("watching %d sensors every %s", len(ids), interval),
		Detail:  source,
	}))

	pd := ui.NewPhaseDisplay(w)
	printFrame(w, pd, reg, ids, a.clock.Now(), opts.Width)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.log.Debug("watch: simulator started, interval %s", interval)
	updates := 0
	for batch := range feed.Run(ctx, interval, reg.IDs) {
		simulator.Apply(reg, batch, a.log)
		updates++
		printFrame(w, pd, reg, ids, a.clock.Now(), opts.Width)
		if opts.Count > 0 && updates >= opts.Count {
			break
		}
	}
	a.log.Debug("watch: simulator stopped after %d updates", updates)
	return nil
}

// printFrame writes one block: a time divider then a line per sensor.
func printFrame(w io.Writer, pd *ui.PhaseDisplay, reg *widget.Registry, ids []string, now time.Time, width int) {
	fmt.Fprintln(w, ui.MutedStyle().Render(now.Format("15:04:05")))
	for _, id := range ids {
		inst, ok := reg.Get(id)
		if !ok {
			continue
		}
		symbol, status := watchLine(inst, width)
		pd.RenderSubStatus(symbol, id+" "+inst.Ref().Type, status)
	}
}

// watchLine renders the reading and trend of one widget.
func watchLine(inst *widget.Instance, width int) (symbol, status string) {
	card := inst.Card()
	if card.Text == "" {
		return ui.SymbolPending, ui.MutedStyle().Render("no data yet")
	}

	status = card.Text
	if card.Unit != "" && card.Position == nil {
		status += " " + card.Unit
	}
	if card.Position != nil {
		return ui.SymbolComplete, status + ui.MutedStyle().Render(" ("+card.Source+")")
	}

	values := inst.Values()
	color := lipgloss.Color(inst.Profile().Curve.Hex())
	if card.HasGauge {
		color = lipgloss.Color(card.GaugeColor.Hex())
	}
	return ui.SymbolComplete, fmt.Sprintf("%-12s %s", status, ui.RenderSparkline(values, width, color))
}

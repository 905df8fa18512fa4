package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rileyhilliard/pidash/internal/chart"
	"github.com/rileyhilliard/pidash/internal/clock"
	"github.com/rileyhilliard/pidash/internal/errors"
	"github.com/rileyhilliard/pidash/internal/export"
	"github.com/rileyhilliard/pidash/internal/ui"
	"github.com/rileyhilliard/pidash/internal/widget"
)

// SnapshotOptions holds options for the snapshot command.
type SnapshotOptions struct {
	ConfigPath string
	Sensor     string
	Out        string // defaults to <sensor>.<format>
	Format     string // png or svg; empty infers from Out, then png
	Width      int    // chart width in pixels; 0 uses chart.width
	Height     int    // chart height in pixels; 0 uses chart.height
	Scale      float64
	Samples    int // backfill size; 0 uses simulator.backfill
}

// snapshotCommand fills a widget's window from the simulator and exports
// its chart. Returns the written path.
func snapshotCommand(w io.Writer, opts SnapshotOptions, clk clock.Clock) (string, error) {
	started := time.Now()
	pd := ui.NewPhaseDisplay(w)

	a, err := loadApp(opts.ConfigPath, clk)
	if err != nil {
		return "", err
	}

	s, err := a.sensor(opts.Sensor)
	if err != nil {
		return "", err
	}
	if widget.ProfileFor(s.Ref()).Kind == widget.KindGeo {
		return "", errors.New(errors.ErrExport,
			fmt.Sprintf("Sensor %s reports positions and has no chart", s.ID),
			"Pick a numeric sensor; 'pidash fleet' lists them")
	}

	format, out, err := resolveOutput(opts.Format, opts.Out, s.ID)
	if err != nil {
		return "", err
	}

	vp := chart.Viewport{Width: a.cfg.Chart.Width, Height: a.cfg.Chart.Height}
	if opts.Width > 0 {
		vp.Width = opts.Width
	}
	if opts.Height > 0 {
		vp.Height = opts.Height
	}
	if opts.Samples > 0 {
		a.cfg.Simulator.Backfill = opts.Samples
	}

	pd.RenderProgress(fmt.Sprintf("Sampling %s", s.Label()))
	reg := a.registry()
	defer reg.CloseAll()
	if err := a.open(reg, a.feed(), []string{s.ID}); err != nil {
		return "", err
	}
	inst, _ := reg.Get(s.ID)
	sc := inst.RenderAt(vp)

	f, err := os.Create(out)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrExport,
			fmt.Sprintf("Cannot create %s", out),
			"Check the directory exists and is writable")
	}
	if err := export.Write(f, sc, format, export.Options{Scale: opts.Scale}); err != nil {
		f.Close()
		os.Remove(out)
		pd.RenderFailed("Export", time.Since(started), nil)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrExport,
			fmt.Sprintf("Cannot write %s", out), "")
	}

	pd.RenderSuccess(fmt.Sprintf("Wrote %s (%d samples, %dx%d %s)", out, len(sc.Points), vp.Width, vp.Height, format), time.Since(started))
	return out, nil
}

// resolveOutput settles the format and path. An explicit format wins; an
// extension on out is used next; png is the fallback.
func resolveOutput(format, out, sensorID string) (export.Format, string, error) {
	var f export.Format
	var err error
	switch {
	case format != "":
		f, err = export.ParseFormat(format)
	case out != "":
		f, err = export.FormatFromPath(out)
	default:
		f = export.PNG
	}
	if err != nil {
		return "", "", err
	}
	if out == "" {
		out = fmt.Sprintf("%s.%s", sensorID, f)
	}
	return f, out, nil
}

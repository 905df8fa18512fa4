package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rileyhilliard/pidash/internal/config"
	"github.com/rileyhilliard/pidash/internal/errors"
	"github.com/rileyhilliard/pidash/internal/ui"
	"github.com/rileyhilliard/pidash/internal/widget"
)

var fleetColumns = []string{"HOST", "DEVICE", "SENSOR", "TYPE", "UNIT", "START", "VIEW"}

// fleetCommand lists every configured sensor with the host and device it
// belongs to.
func fleetCommand(w io.Writer, configPath string) error {
	a, err := loadApp(configPath, nil)
	if err != nil {
		return err
	}

	var rows [][]string
	for _, s := range a.fleet.Sensors() {
		host, device, _ := a.fleet.Labels(s.ID)
		view := "chart"
		if widget.ProfileFor(s.Ref()).Kind == widget.KindGeo {
			view = "position"
		}
		rows = append(rows, []string{
			host, device, s.ID, s.Type, s.Unit,
			strconv.FormatFloat(s.Initial, 'f', -1, 64),
			view,
		})
	}

	source := a.path
	if source == "" {
		source = "built-in demo fleet (run 'pidash init' to customize)"
	}
	fmt.Fprint(w, ui.RenderHeader(ui.HeaderInfo{Detail: source}))
	fmt.Fprintln(w, ui.RenderSimpleTable(ui.FitColumns(fleetColumns, rows), rows))

	hosts, devices, sensors := a.fleet.Counts()
	fmt.Fprintln(w, ui.MutedStyle().Render(fmt.Sprintf("%d hosts, %d devices, %d sensors", hosts, devices, sensors)))
	return nil
}

// FleetAddOptions holds options for 'fleet add'.
type FleetAddOptions struct {
	ConfigPath string
	Host       string
	Device     string
	ID         string
	Type       string
	Unit       string
	Value      float64
}

// fleetAddCommand appends a sensor to an existing device in the config
// file, keeping its comments and layout.
func fleetAddCommand(w io.Writer, opts FleetAddOptions) error {
	a, err := loadApp(opts.ConfigPath, nil)
	if err != nil {
		return err
	}
	if a.path == "" {
		return errors.New(errors.ErrConfig,
			"No config file to add the sensor to",
			"Run 'pidash init' first, or pass --config")
	}

	id := strings.TrimSpace(opts.ID)
	if id == "" {
		return errors.New(errors.ErrFleet, "Sensor id is required", "Pass --id, e.g. --id t3")
	}
	if _, exists := a.fleet.Sensor(id); exists {
		return errors.New(errors.ErrFleet,
			fmt.Sprintf("Sensor id '%s' is already in use", id),
			"Sensor ids must be unique across the whole fleet")
	}
	if _, ok := a.fleet.Host(opts.Host); !ok {
		return errors.New(errors.ErrFleet,
			fmt.Sprintf("Unknown host '%s'", opts.Host),
			"Run 'pidash fleet' to list configured hosts")
	}
	d, ok := a.fleet.Device(opts.Device)
	if !ok || d.HostID != opts.Host {
		return errors.New(errors.ErrFleet,
			fmt.Sprintf("Host '%s' has no device '%s'", opts.Host, opts.Device),
			"Run 'pidash fleet' to list devices per host")
	}

	sensor := config.Sensor{ID: id, Type: opts.Type, Unit: opts.Unit, Value: opts.Value}
	if err := config.AddSensor(a.path, opts.Host, opts.Device, sensor); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Cannot update %s", a.path), "")
	}

	fmt.Fprintln(w, ui.FormatPhase(ui.SymbolSuccess, ui.ColorSuccess,
		fmt.Sprintf("Added %s to %s / %s in %s", id, opts.Host, opts.Device, a.path), ""))
	return nil
}

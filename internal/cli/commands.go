package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/pidash/internal/errors"
)

// minRefresh keeps the simulator from spinning.
const minRefresh = 100 * time.Millisecond

// Command-specific flags
var (
	dashFlags     DashOptions
	dashOpenFlag  string
	watchFlags    WatchOptions
	watchSensors  string
	snapshotFlags SnapshotOptions
	fleetAddFlags FleetAddOptions
	initFlags     InitOptions
)

// dashCmd starts the interactive dashboard
var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Interactive live dashboard",
	Long: `Start the interactive dashboard: a host / device / sensor browser on
the left and a zone of live widgets on the right.

Keyboard shortcuts:
  up/k, down/j   Move in the browser or between widgets
  enter/space    Expand a host or device, open or close a sensor widget
  tab            Switch focus between browser and widgets
  g              Toggle card / chart on the focused widget
  1 2 3          Size tier of the focused widget
  x              Close the focused widget (X closes all)
  s              Save the focused chart as SVG
  esc            Collapse the browser
  ?              Show help
  q / Ctrl+C     Quit

Examples:
  pidash dash
  pidash dash --open t1,c1
  pidash dash --refresh 1s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dashFlags.ConfigPath = cfgFile
		dashFlags.Open = ParseSensorList(dashOpenFlag)
		return dashCommand(dashFlags)
	},
}

// watchCmd prints live readings without the TUI
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print live readings with sparklines",
	Long: `Print one line per sensor on every telemetry update, with the current
value and a sparkline of the chart window. Works without a terminal, so it
can be piped or logged.

Examples:
  pidash watch
  pidash watch --sensors t1,h1 --interval 1s
  pidash watch --count 5 > readings.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		watchFlags.ConfigPath = cfgFile
		watchFlags.Sensors = ParseSensorList(watchSensors)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watchCommand(ctx, cmd.OutOrStdout(), watchFlags, nil)
	},
}

// snapshotCmd exports one sensor chart to an image
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Export a sensor chart as PNG or SVG",
	Long: `Fill a sensor's chart window from the simulator and export it as an
image, drawn with the same geometry as the dashboard.

Examples:
  pidash snapshot --sensor t1
  pidash snapshot --sensor c1 --out co2.svg
  pidash snapshot --sensor p1 --width 560 --height 180 --scale 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshotFlags.ConfigPath = cfgFile
		_, err := snapshotCommand(cmd.OutOrStdout(), snapshotFlags, nil)
		return err
	},
}

// fleetCmd lists the configured fleet
var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "List hosts, devices and sensors",
	Long: `List every sensor in the fleet with its host and device.

Examples:
  pidash fleet
  pidash fleet --config lab.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return fleetCommand(cmd.OutOrStdout(), cfgFile)
	},
}

// fleetAddCmd adds a sensor to the config file
var fleetAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a sensor to a device in .pidash.yaml",
	Long: `Append a sensor to an existing device. Comments and layout of the
config file are kept.

Examples:
  pidash fleet add --host rpi-1 --device esp-air-1 --id t3 --type Temperature --unit C --value 21`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fleetAddFlags.ConfigPath = cfgFile
		return fleetAddCommand(cmd.OutOrStdout(), fleetAddFlags)
	},
}

// initCmd creates a new .pidash.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .pidash.yaml configuration",
	Long: `Create a .pidash.yaml in the current directory with the demo fleet
and default settings, ready to edit.

Examples:
  pidash init
  pidash init --force
  pidash init --non-interactive`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(cmd.OutOrStdout(), initFlags)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for pidash.

Examples:
  # Bash
  pidash completion bash > /etc/bash_completion.d/pidash

  # Zsh
  pidash completion zsh > "${fpath[1]}/_pidash"

  # Fish
  pidash completion fish > ~/.config/fish/completions/pidash.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// dash command flags
	dashCmd.Flags().StringVar(&dashFlags.Refresh, "refresh", "", "telemetry refresh interval (e.g., 1s, 3200ms)")
	dashCmd.Flags().StringVar(&dashFlags.SnapshotDir, "snapshot-dir", ".", "where the s key writes SVG files")
	dashCmd.Flags().StringVar(&dashOpenFlag, "open", "", "sensors to open on start (comma-separated)")

	// watch command flags
	watchCmd.Flags().StringVar(&watchSensors, "sensors", "", "sensors to watch (comma-separated, default all)")
	watchCmd.Flags().StringVar(&watchFlags.Interval, "interval", "", "telemetry refresh interval (e.g., 1s, 3200ms)")
	watchCmd.Flags().IntVarP(&watchFlags.Count, "count", "n", 0, "stop after this many updates")
	watchCmd.Flags().IntVar(&watchFlags.Width, "width", defaultSparkWidth, "sparkline width in characters")

	// snapshot command flags
	snapshotCmd.Flags().StringVar(&snapshotFlags.Sensor, "sensor", "", "sensor id to export")
	snapshotCmd.Flags().StringVarP(&snapshotFlags.Out, "out", "o", "", "output file (default <sensor>.<format>)")
	snapshotCmd.Flags().StringVar(&snapshotFlags.Format, "format", "", "png or svg (default from --out, else png)")
	snapshotCmd.Flags().IntVar(&snapshotFlags.Width, "width", 0, "chart width in pixels (default chart.width)")
	snapshotCmd.Flags().IntVar(&snapshotFlags.Height, "height", 0, "chart height in pixels (default chart.height)")
	snapshotCmd.Flags().Float64Var(&snapshotFlags.Scale, "scale", 1, "pixel density multiplier")
	snapshotCmd.Flags().IntVar(&snapshotFlags.Samples, "samples", 0, "backfill sample count (default simulator.backfill)")
	_ = snapshotCmd.MarkFlagRequired("sensor")

	// fleet add flags
	fleetAddCmd.Flags().StringVar(&fleetAddFlags.Host, "host", "", "host id")
	fleetAddCmd.Flags().StringVar(&fleetAddFlags.Device, "device", "", "device id")
	fleetAddCmd.Flags().StringVar(&fleetAddFlags.ID, "id", "", "new sensor id (unique across the fleet)")
	fleetAddCmd.Flags().StringVar(&fleetAddFlags.Type, "type", "", "sensor type, e.g. Temperature")
	fleetAddCmd.Flags().StringVar(&fleetAddFlags.Unit, "unit", "", "unit, e.g. C, %, ppm, gps")
	fleetAddCmd.Flags().Float64Var(&fleetAddFlags.Value, "value", 0, "starting value for the simulator")
	for _, name := range []string{"host", "device", "id"} {
		_ = fleetAddCmd.MarkFlagRequired(name)
	}
	fleetCmd.AddCommand(fleetAddCmd)

	// init command flags
	initCmd.Flags().BoolVarP(&initFlags.Overwrite, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initFlags.NonInteractive, "non-interactive", false, "skip prompts and use defaults")

	// Register all commands
	rootCmd.AddCommand(dashCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(fleetCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}

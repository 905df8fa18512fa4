package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/rileyhilliard/pidash/internal/config"
	"github.com/rileyhilliard/pidash/internal/errors"
	"github.com/rileyhilliard/pidash/internal/ui"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir            string // directory to write .pidash.yaml into; "" is the cwd
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
}

// Init writes a .pidash.yaml with the demo fleet and default settings.
func Init(w io.Writer, opts InitOptions) error {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	configPath := filepath.Join(dir, config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()

	if !opts.NonInteractive {
		refresh := cfg.Refresh.String()
		window := cfg.Window.String()
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Telemetry refresh").
					Description("How often the simulator pushes a reading").
					Options(
						huh.NewOption("1s", "1s"),
						huh.NewOption("3.2s (demo default)", "3.2s"),
						huh.NewOption("10s", "10s"),
					).
					Value(&refresh),
				huh.NewInput().
					Title("Chart window").
					Description("How much history each widget keeps").
					Placeholder("60s").
					Value(&window).
					Validate(validateDuration),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --non-interactive")
		}
		// Both values passed validation or came from the fixed option list.
		cfg.Refresh, _ = time.ParseDuration(refresh)
		cfg.Window, _ = time.ParseDuration(strings.TrimSpace(window))
	}

	if err := config.Write(configPath, cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	hosts, devices, sensors := 0, 0, 0
	for _, h := range cfg.Fleet {
		hosts++
		for _, d := range h.Devices {
			devices++
			sensors += len(d.Sensors)
		}
	}

	fmt.Fprintf(w, "%s Created %s (%d hosts, %d devices, %d sensors)\n\n",
		ui.SuccessStyle().Render(ui.SymbolSuccess), configPath, hosts, devices, sensors)
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "  pidash fleet      - List the configured sensors")
	fmt.Fprintln(w, "  pidash dash       - Open the live dashboard")
	fmt.Fprintln(w, "  pidash fleet add  - Add your own sensor")

	return nil
}

func validateDuration(s string) error {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a duration, try 60s or 5m")
	}
	if d <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

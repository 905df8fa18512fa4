package config

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/pidash/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but pidash only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade pidash, or lower the version field")
	}

	if cfg.Window <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("window must be positive, got %s", cfg.Window),
			"Set window to a duration like 60s in .pidash.yaml")
	}
	if cfg.Refresh <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("refresh must be positive, got %s", cfg.Refresh),
			"Set refresh to a duration like 3200ms in .pidash.yaml")
	}
	if cfg.Chart.Width <= 0 || cfg.Chart.Height <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("chart size must be positive, got %dx%d", cfg.Chart.Width, cfg.Chart.Height),
			"Check the 'chart' section in your .pidash.yaml")
	}
	if cfg.Simulator.Backfill < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("simulator.backfill cannot be negative, got %d", cfg.Simulator.Backfill),
			"Use 0 to disable backfill")
	}

	if err := validateOutput(cfg.Output); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'output' section in your .pidash.yaml.")
	}

	if err := ValidateFleet(cfg.Fleet); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'fleet' section in your .pidash.yaml.")
	}

	return nil
}

func validateOutput(o OutputConfig) error {
	switch o.Color {
	case "", "auto", "always", "never":
		return nil
	}
	return fmt.Errorf("output.color must be auto, always or never, got %q", o.Color)
}

// ValidateFleet checks that the fleet is non-empty and that every id is
// present and unique. Sensor ids must be unique across the whole fleet
// since widgets are keyed by them.
func ValidateFleet(fleet []Host) error {
	if len(fleet) == 0 {
		return fmt.Errorf("fleet is empty")
	}

	hosts := make(map[string]bool)
	devices := make(map[string]string)
	sensors := make(map[string]string)

	for hi, h := range fleet {
		if strings.TrimSpace(h.ID) == "" {
			return fmt.Errorf("fleet[%d] has no id", hi)
		}
		if hosts[h.ID] {
			return fmt.Errorf("host id %q is used twice", h.ID)
		}
		hosts[h.ID] = true

		for di, d := range h.Devices {
			if strings.TrimSpace(d.ID) == "" {
				return fmt.Errorf("host %q device[%d] has no id", h.ID, di)
			}
			if owner, ok := devices[d.ID]; ok {
				return fmt.Errorf("device id %q is used by hosts %q and %q", d.ID, owner, h.ID)
			}
			devices[d.ID] = h.ID

			for si, s := range d.Sensors {
				if strings.TrimSpace(s.ID) == "" {
					return fmt.Errorf("device %q sensor[%d] has no id", d.ID, si)
				}
				if owner, ok := sensors[s.ID]; ok {
					return fmt.Errorf("sensor id %q is used by devices %q and %q", s.ID, owner, d.ID)
				}
				sensors[s.ID] = d.ID
			}
		}
	}
	return nil
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/pidash/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{
			name:    "future version",
			mutate:  func(c *Config) { c.Version = CurrentConfigVersion + 1 },
			wantErr: "from the future",
		},
		{
			name:    "zero window",
			mutate:  func(c *Config) { c.Window = 0 },
			wantErr: "window must be positive",
		},
		{
			name:    "negative refresh",
			mutate:  func(c *Config) { c.Refresh = -time.Second },
			wantErr: "refresh must be positive",
		},
		{
			name:    "zero chart height",
			mutate:  func(c *Config) { c.Chart.Height = 0 },
			wantErr: "chart size must be positive",
		},
		{
			name:    "negative backfill",
			mutate:  func(c *Config) { c.Simulator.Backfill = -1 },
			wantErr: "backfill cannot be negative",
		},
		{
			name:    "bad color mode",
			mutate:  func(c *Config) { c.Output.Color = "rainbow" },
			wantErr: "output.color",
		},
		{
			name:    "empty fleet",
			mutate:  func(c *Config) { c.Fleet = nil },
			wantErr: "fleet is empty",
		},
		{
			name:    "duplicate host",
			mutate:  func(c *Config) { c.Fleet[1].ID = c.Fleet[0].ID },
			wantErr: `host id "rpi-1" is used twice`,
		},
		{
			name: "duplicate device across hosts",
			mutate: func(c *Config) {
				c.Fleet[1].Devices[0].ID = c.Fleet[0].Devices[0].ID
			},
			wantErr: `device id "esp-air-1"`,
		},
		{
			name: "duplicate sensor across devices",
			mutate: func(c *Config) {
				c.Fleet[1].Devices[1].Sensors[0].ID = "t1"
			},
			wantErr: `sensor id "t1"`,
		},
		{
			name:    "blank sensor id",
			mutate:  func(c *Config) { c.Fleet[2].Devices[0].Sensors[1].ID = " " },
			wantErr: "has no id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
		})
	}
}

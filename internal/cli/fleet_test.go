package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/pidash/internal/config"
	"github.com/rileyhilliard/pidash/internal/errors"
)

func TestFleetCommandDemoFleet(t *testing.T) {
	isolate(t)

	var buf bytes.Buffer
	require.NoError(t, fleetCommand(&buf, ""))

	output := buf.String()
	for _, want := range []string{
		"HOST", "DEVICE", "SENSOR", "VIEW",
		"RPi Nord", "ESP-Air-1", "t1", "Temperature",
		"RPi Est", "fl1",
		"built-in demo fleet",
		"3 hosts, 5 devices, 11 sensors",
	} {
		assert.Contains(t, output, want)
	}
}

func TestFleetCommandMarksPositionSensors(t *testing.T) {
	dir := isolate(t)
	path := writeTestConfig(t, dir)

	var buf bytes.Buffer
	require.NoError(t, fleetCommand(&buf, path))

	output := buf.String()
	assert.Contains(t, output, "gps1")
	assert.Contains(t, output, "position")
	assert.Contains(t, output, path)
	assert.Contains(t, output, "12 sensors")
}

func TestFleetAddCommand(t *testing.T) {
	dir := isolate(t)
	path := writeTestConfig(t, dir)

	var buf bytes.Buffer
	err := fleetAddCommand(&buf, FleetAddOptions{
		ConfigPath: path,
		Host:       "rpi-2",
		Device:     "esp-froid-2",
		ID:         "f2",
		Type:       "Temperature",
		Unit:       "C",
		Value:      -18,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Added f2 to rpi-2 / esp-froid-2")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	sensors := cfg.Fleet[1].Devices[0].Sensors
	assert.Equal(t, config.Sensor{ID: "f2", Type: "Temperature", Unit: "C", Value: -18}, sensors[len(sensors)-1])
}

func TestFleetAddCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		opts    FleetAddOptions
		code    string
		wantMsg string
	}{
		{
			name:    "blank id",
			opts:    FleetAddOptions{Host: "rpi-1", Device: "esp-air-1", ID: " "},
			code:    errors.ErrFleet,
			wantMsg: "Sensor id is required",
		},
		{
			name:    "id already used elsewhere",
			opts:    FleetAddOptions{Host: "rpi-1", Device: "esp-air-1", ID: "t2"},
			code:    errors.ErrFleet,
			wantMsg: "already in use",
		},
		{
			name:    "unknown host",
			opts:    FleetAddOptions{Host: "rpi-9", Device: "esp-air-1", ID: "n1"},
			code:    errors.ErrFleet,
			wantMsg: "Unknown host 'rpi-9'",
		},
		{
			name:    "device under another host",
			opts:    FleetAddOptions{Host: "rpi-1", Device: "esp-flow-3", ID: "n1"},
			code:    errors.ErrFleet,
			wantMsg: "Host 'rpi-1' has no device 'esp-flow-3'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			tt.opts.ConfigPath = writeTestConfig(t, dir)

			err := fleetAddCommand(&bytes.Buffer{}, tt.opts)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestFleetAddCommandNeedsConfigFile(t *testing.T) {
	isolate(t)

	err := fleetAddCommand(&bytes.Buffer{}, FleetAddOptions{Host: "rpi-1", Device: "esp-air-1", ID: "n1"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "pidash init")
}

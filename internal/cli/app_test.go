package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/pidash/internal/errors"
)

func TestLoadAppDefaults(t *testing.T) {
	isolate(t)

	a, err := loadApp("", fakeClock())
	require.NoError(t, err)
	assert.Empty(t, a.path)
	hosts, devices, sensors := a.fleet.Counts()
	assert.Equal(t, []int{3, 5, 11}, []int{hosts, devices, sensors})
	assert.True(t, a.clock.Now().Equal(testStart))
}

func TestLoadAppErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    string
	}{
		{
			name:    "invalid settings",
			content: "version: 1\nrefresh: -1s\n",
			code:    errors.ErrConfig,
		},
		{
			name:    "duplicate sensor ids",
			content: "version: 1\nfleet:\n  - id: a\n    devices:\n      - id: d1\n        sensors: [{id: s}]\n      - id: d2\n        sensors: [{id: s}]\n",
			code:    errors.ErrConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := loadApp(path, nil)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), "got %v", err)
		})
	}
}

func TestAppOpenPrimesWidgets(t *testing.T) {
	dir := isolate(t)
	a, err := loadApp(writeTestConfig(t, dir), fakeClock())
	require.NoError(t, err)

	reg := a.registry()
	defer reg.CloseAll()
	feed := a.feed()

	require.NoError(t, a.open(reg, feed, []string{"t1", "gps1", "t1"}))
	assert.Equal(t, 2, reg.Len(), "repeated ids open once")

	w, ok := reg.Get("t1")
	require.True(t, ok)
	assert.Len(t, w.Samples(), a.cfg.Simulator.Backfill+1)
	assert.Equal(t, 60*time.Second, w.Window())
	host, device := w.Labels()
	assert.Equal(t, "RPi Nord", host)
	assert.Equal(t, "ESP-Air-1", device)
}

func TestAppOpenUnknownSensorOpensNothing(t *testing.T) {
	isolate(t)
	a, err := loadApp("", nil)
	require.NoError(t, err)

	reg := a.registry()
	err = a.open(reg, a.feed(), []string{"t1", "nope"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrFleet))
	assert.Contains(t, err.Error(), "Unknown sensor 'nope'")
	assert.Equal(t, 0, reg.Len())
}

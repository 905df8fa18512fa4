package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/pidash/internal/clock"
	"github.com/rileyhilliard/pidash/internal/config"
)

var testStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// isolate moves the test into an empty project directory so config search
// never escapes into the real home directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

// writeTestConfig writes the demo config plus a position sensor, with a
// fixed seed, and returns its path.
func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 17
	cfg.Fleet[0].Devices[0].Sensors = append(cfg.Fleet[0].Devices[0].Sensors,
		config.Sensor{ID: "gps1", Type: "Position", Unit: "gps"})
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, config.Write(path, cfg))
	return path
}

func fakeClock() *clock.Fake {
	return clock.NewFake(testStart)
}

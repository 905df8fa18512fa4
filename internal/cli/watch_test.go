package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/pidash/internal/errors"
	"github.com/rileyhilliard/pidash/internal/widget"
)

func TestWatchCommand(t *testing.T) {
	dir := isolate(t)
	path := writeTestConfig(t, dir)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var buf bytes.Buffer
	err := watchCommand(ctx, &buf, WatchOptions{
		ConfigPath: path,
		Sensors:    []string{"t1", "gps1"},
		Interval:   "100ms",
		Count:      2,
		Width:      10,
	}, fakeClock())
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "watching 2 sensors every 100ms")
	assert.Contains(t, output, path)
	assert.Equal(t, 3, strings.Count(output, "12:00:00"), "initial frame plus two updates")
	assert.Contains(t, output, "t1 Temperature")
	assert.Contains(t, output, "gps1 Position")
	assert.Contains(t, output, "(simulation)")
	assert.NotContains(t, output, "h1 ")
}

func TestWatchCommandStopsOnCancel(t *testing.T) {
	dir := isolate(t)
	path := writeTestConfig(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := watchCommand(ctx, &buf, WatchOptions{ConfigPath: path, Sensors: []string{"t1"}}, fakeClock())
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), "12:00:00"), "only the initial frame")
}

func TestWatchCommandErrors(t *testing.T) {
	dir := isolate(t)
	path := writeTestConfig(t, dir)

	err := watchCommand(context.Background(), &bytes.Buffer{}, WatchOptions{ConfigPath: path, Interval: "1ms"}, nil)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	err = watchCommand(context.Background(), &bytes.Buffer{}, WatchOptions{ConfigPath: path, Sensors: []string{"zz"}}, nil)
	assert.True(t, errors.IsCode(err, errors.ErrFleet))
}

func TestWatchLine(t *testing.T) {
	ref := widget.SensorRef{SensorID: "t1", Type: "Temperature", Unit: "C"}
	clk := fakeClock()
	inst := widget.New(ref, "RPi Nord", "ESP-Air-1", widget.WithClock(clk))

	symbol, status := watchLine(inst, 10)
	assert.Equal(t, "○", symbol)
	assert.Contains(t, status, "no data yet")

	inst.Update(widget.Value(20), clk.Now())
	clk.Advance(time.Second)
	inst.Update(widget.Value(24), clk.Now())

	symbol, status = watchLine(inst, 10)
	assert.Equal(t, "●", symbol)
	assert.Contains(t, status, "C")
	assert.Contains(t, status, "▁█")
}

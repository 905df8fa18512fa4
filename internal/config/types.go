package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .pidash.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Window is how much history each widget keeps and charts.
	Window time.Duration `yaml:"window" mapstructure:"window"`

	// Refresh is the telemetry push interval of the simulated feed, and the
	// dashboard redraw tick.
	Refresh time.Duration `yaml:"refresh" mapstructure:"refresh"`

	// Seed makes the simulated feed reproducible. Zero picks a random seed.
	Seed uint64 `yaml:"seed" mapstructure:"seed"`

	Chart     ChartConfig     `yaml:"chart" mapstructure:"chart"`
	Simulator SimulatorConfig `yaml:"simulator" mapstructure:"simulator"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`

	// Fleet is the host -> device -> sensor catalogue shown in the browser.
	Fleet []Host `yaml:"fleet" mapstructure:"fleet"`
}

// ChartConfig sets the tier-1 chart viewport in pixels.
type ChartConfig struct {
	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`
}

// SimulatorConfig controls the built-in telemetry simulator.
type SimulatorConfig struct {
	// Backfill is how many synthetic samples a freshly opened widget gets so
	// its chart is not blank. Zero disables backfill.
	Backfill int `yaml:"backfill" mapstructure:"backfill"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	Color string `yaml:"color" mapstructure:"color"`
}

// Host is a Raspberry-Pi gateway.
type Host struct {
	ID      string   `yaml:"id" mapstructure:"id"`
	Name    string   `yaml:"name" mapstructure:"name"`
	Devices []Device `yaml:"devices" mapstructure:"devices"`
}

// Device is a microcontroller attached to a host.
type Device struct {
	ID      string   `yaml:"id" mapstructure:"id"`
	Name    string   `yaml:"name" mapstructure:"name"`
	Sensors []Sensor `yaml:"sensors" mapstructure:"sensors"`
}

// Sensor is one metric stream. Value is the starting point of the
// simulated feed.
type Sensor struct {
	ID    string  `yaml:"id" mapstructure:"id"`
	Type  string  `yaml:"type" mapstructure:"type"`
	Unit  string  `yaml:"unit" mapstructure:"unit"`
	Value float64 `yaml:"value" mapstructure:"value"`
}

// DefaultConfig returns a Config with sensible defaults and the demo fleet.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Window:  60 * time.Second,
		Refresh: 3200 * time.Millisecond,
		Chart: ChartConfig{
			Width:  260,
			Height: 90,
		},
		Simulator: SimulatorConfig{
			Backfill: 24,
		},
		Output: OutputConfig{
			Color: "auto",
		},
		Fleet: DefaultFleet(),
	}
}

// DefaultFleet is the demo catalogue: three gateways, five devices.
func DefaultFleet() []Host {
	return []Host{
		{
			ID: "rpi-1", Name: "RPi Nord",
			Devices: []Device{
				{
					ID: "esp-air-1", Name: "ESP-Air-1",
					Sensors: []Sensor{
						{ID: "t1", Type: "Temperature", Unit: "C", Value: 22.5},
						{ID: "h1", Type: "Humidite", Unit: "%", Value: 48},
						{ID: "c1", Type: "CO2", Unit: "ppm", Value: 640},
					},
				},
				{
					ID: "esp-energy-1", Name: "ESP-Energy",
					Sensors: []Sensor{
						{ID: "p1", Type: "Puissance", Unit: "kW", Value: 6.3},
						{ID: "v1", Type: "Vibration", Unit: "mm/s", Value: 1.5},
					},
				},
			},
		},
		{
			ID: "rpi-2", Name: "RPi Sud",
			Devices: []Device{
				{
					ID: "esp-froid-2", Name: "ESP-Froid",
					Sensors: []Sensor{
						{ID: "f1", Type: "Froid", Unit: "C", Value: 4.2},
						{ID: "door-2", Type: "Porte", Unit: "etat", Value: 1},
					},
				},
				{
					ID: "esp-air-2", Name: "ESP-Air-2",
					Sensors: []Sensor{
						{ID: "t2", Type: "Temperature", Unit: "C", Value: 21.1},
						{ID: "h2", Type: "Humidite", Unit: "%", Value: 52},
					},
				},
			},
		},
		{
			ID: "rpi-3", Name: "RPi Est",
			Devices: []Device{
				{
					ID: "esp-flow-3", Name: "ESP-Flow",
					Sensors: []Sensor{
						{ID: "fl1", Type: "Debit eau", Unit: "L/min", Value: 12.5},
						{ID: "pr1", Type: "Pression", Unit: "bar", Value: 2.1},
					},
				},
			},
		},
	}
}

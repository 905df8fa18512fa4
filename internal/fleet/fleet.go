// Package fleet is the read-only host -> device -> sensor catalogue the
// device browser walks.
package fleet

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/pidash/internal/config"
	"github.com/rileyhilliard/pidash/internal/errors"
	"github.com/rileyhilliard/pidash/internal/widget"
)

// Host is a gateway and its attached devices.
type Host struct {
	ID      string
	Name    string
	Devices []Device
}

// Device is a microcontroller and its sensors.
type Device struct {
	ID      string
	Name    string
	HostID  string
	Sensors []Sensor
}

// Sensor is one metric stream with its location in the tree.
type Sensor struct {
	ID       string
	Type     string
	Unit     string
	Initial  float64
	HostID   string
	DeviceID string
}

// Ref returns the widget identity of the sensor.
func (s Sensor) Ref() widget.SensorRef {
	return widget.SensorRef{SensorID: s.ID, Type: s.Type, Unit: s.Unit}
}

// Label is the browser row text, e.g. "Temperature (C)".
func (s Sensor) Label() string {
	if s.Unit == "" {
		return s.Type
	}
	return fmt.Sprintf("%s (%s)", s.Type, s.Unit)
}

type location struct {
	host, device, sensor int
}

// Fleet indexes the configured hosts by id at every level.
type Fleet struct {
	hosts   []Host
	byHost  map[string]int
	byDev   map[string]location
	bySens  map[string]location
	sensors []string
}

// New builds a fleet from configuration. Ids must be unique per level and
// sensor ids unique across the fleet. Empty names fall back to the id.
func New(hosts []config.Host) (*Fleet, error) {
	if err := config.ValidateFleet(hosts); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFleet,
			"Invalid fleet definition",
			"Fix the 'fleet' section of .pidash.yaml, or run 'pidash init' for the demo fleet")
	}

	f := &Fleet{
		byHost: make(map[string]int),
		byDev:  make(map[string]location),
		bySens: make(map[string]location),
	}
	for hi, ch := range hosts {
		h := Host{ID: ch.ID, Name: nameOr(ch.Name, ch.ID)}
		for di, cd := range ch.Devices {
			d := Device{ID: cd.ID, Name: nameOr(cd.Name, cd.ID), HostID: ch.ID}
			for si, cs := range cd.Sensors {
				d.Sensors = append(d.Sensors, Sensor{
					ID:       cs.ID,
					Type:     nameOr(cs.Type, cs.ID),
					Unit:     cs.Unit,
					Initial:  cs.Value,
					HostID:   ch.ID,
					DeviceID: cd.ID,
				})
				f.bySens[cs.ID] = location{hi, di, si}
				f.sensors = append(f.sensors, cs.ID)
			}
			h.Devices = append(h.Devices, d)
			f.byDev[cd.ID] = location{host: hi, device: di}
		}
		f.hosts = append(f.hosts, h)
		f.byHost[ch.ID] = hi
	}
	return f, nil
}

func nameOr(name, id string) string {
	if strings.TrimSpace(name) == "" {
		return id
	}
	return name
}

// Hosts returns every host in configuration order.
func (f *Fleet) Hosts() []Host {
	return f.hosts
}

// Host looks up a host by id.
func (f *Fleet) Host(id string) (Host, bool) {
	i, ok := f.byHost[id]
	if !ok {
		return Host{}, false
	}
	return f.hosts[i], true
}

// Device looks up a device by id.
func (f *Fleet) Device(id string) (Device, bool) {
	loc, ok := f.byDev[id]
	if !ok {
		return Device{}, false
	}
	return f.hosts[loc.host].Devices[loc.device], true
}

// Sensor looks up a sensor by id.
func (f *Fleet) Sensor(id string) (Sensor, bool) {
	loc, ok := f.bySens[id]
	if !ok {
		return Sensor{}, false
	}
	return f.hosts[loc.host].Devices[loc.device].Sensors[loc.sensor], true
}

// Labels returns the host and device names a sensor sits under.
func (f *Fleet) Labels(sensorID string) (host, device string, ok bool) {
	loc, ok := f.bySens[sensorID]
	if !ok {
		return "", "", false
	}
	h := f.hosts[loc.host]
	return h.Name, h.Devices[loc.device].Name, true
}

// SensorIDs returns every sensor id in tree order.
func (f *Fleet) SensorIDs() []string {
	out := make([]string, len(f.sensors))
	copy(out, f.sensors)
	return out
}

// Sensors returns every sensor in tree order.
func (f *Fleet) Sensors() []Sensor {
	out := make([]Sensor, 0, len(f.sensors))
	for _, id := range f.sensors {
		s, _ := f.Sensor(id)
		out = append(out, s)
	}
	return out
}

// Counts returns the number of hosts, devices and sensors.
func (f *Fleet) Counts() (hosts, devices, sensors int) {
	return len(f.hosts), len(f.byDev), len(f.bySens)
}

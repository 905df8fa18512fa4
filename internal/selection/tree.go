// Package selection implements the three-rank device browser state:
// at most one expanded host, at most one expanded device under it, and
// sensor rows that open and close widgets.
package selection

import (
	"fmt"

	"github.com/rileyhilliard/pidash/internal/errors"
	"github.com/rileyhilliard/pidash/internal/fleet"
	"github.com/rileyhilliard/pidash/internal/logger"
	"github.com/rileyhilliard/pidash/internal/widget"
)

// Toggler opens and closes widgets. *widget.Registry implements it.
type Toggler interface {
	Toggle(ref widget.SensorRef, hostLabel, deviceLabel string) bool
	Has(sensorID string) bool
}

// EventKind names a selection transition.
type EventKind int

const (
	HostExpanded EventKind = iota
	HostCollapsed
	DeviceExpanded
	DeviceCollapsed
	SensorOpened
	SensorClosed
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case HostExpanded:
		return "host-expanded"
	case HostCollapsed:
		return "host-collapsed"
	case DeviceExpanded:
		return "device-expanded"
	case DeviceCollapsed:
		return "device-collapsed"
	case SensorOpened:
		return "sensor-opened"
	case SensorClosed:
		return "sensor-closed"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event reports the outcome of a transition. Replaced holds the id of the
// sibling that was collapsed when a different one was expanded.
type Event struct {
	Kind     EventKind
	ID       string
	Replaced string
}

// Tree is the selection state machine. It is not safe for concurrent use;
// drive it from one goroutine, as the UI loop does.
type Tree struct {
	fleet   *fleet.Fleet
	widgets Toggler
	log     logger.Logger

	host   string
	device string
}

// New creates a tree with every rank collapsed.
func New(f *fleet.Fleet, widgets Toggler, log logger.Logger) *Tree {
	if log == nil {
		log = logger.Noop()
	}
	return &Tree{fleet: f, widgets: widgets, log: log}
}

// SelectHost expands id, or collapses it when it is already expanded.
// Expanding a different host collapses the previous one and its device.
func (t *Tree) SelectHost(id string) (Event, error) {
	if _, ok := t.fleet.Host(id); !ok {
		return Event{}, errors.New(errors.ErrFleet,
			fmt.Sprintf("Unknown host %q", id),
			"Run 'pidash fleet' to list configured hosts")
	}

	if t.host == id {
		t.host = ""
		t.device = ""
		t.log.Debug("host %s collapsed", id)
		return Event{Kind: HostCollapsed, ID: id}, nil
	}

	prev := t.host
	t.host = id
	t.device = ""
	t.log.Debug("host %s expanded", id)
	return Event{Kind: HostExpanded, ID: id, Replaced: prev}, nil
}

// SelectDevice applies the same toggle-or-replace rule to devices under the
// expanded host.
func (t *Tree) SelectDevice(id string) (Event, error) {
	d, ok := t.fleet.Device(id)
	if !ok {
		return Event{}, errors.New(errors.ErrFleet,
			fmt.Sprintf("Unknown device %q", id),
			"Run 'pidash fleet' to list configured devices")
	}
	if d.HostID != t.host {
		return Event{}, errors.New(errors.ErrFleet,
			fmt.Sprintf("Device %q is not under the expanded host", id),
			fmt.Sprintf("Expand host %q first", d.HostID))
	}

	if t.device == id {
		t.device = ""
		return Event{Kind: DeviceCollapsed, ID: id}, nil
	}

	prev := t.device
	t.device = id
	return Event{Kind: DeviceExpanded, ID: id, Replaced: prev}, nil
}

// SelectSensor opens or closes the widget for ref. Expansion state is left
// alone and sensors on different branches are independent.
func (t *Tree) SelectSensor(ref widget.SensorRef) (Event, error) {
	hostLabel, deviceLabel, ok := t.fleet.Labels(ref.SensorID)
	if !ok {
		return Event{}, errors.New(errors.ErrFleet,
			fmt.Sprintf("Unknown sensor %q", ref.SensorID),
			"Run 'pidash fleet' to list configured sensors")
	}

	if t.widgets.Toggle(ref, hostLabel, deviceLabel) {
		return Event{Kind: SensorOpened, ID: ref.SensorID}, nil
	}
	return Event{Kind: SensorClosed, ID: ref.SensorID}, nil
}

// SelectSensorID resolves the sensor in the fleet and selects it.
func (t *Tree) SelectSensorID(id string) (Event, error) {
	s, ok := t.fleet.Sensor(id)
	if !ok {
		return Event{}, errors.New(errors.ErrFleet,
			fmt.Sprintf("Unknown sensor %q", id),
			"Run 'pidash fleet' to list configured sensors")
	}
	return t.SelectSensor(s.Ref())
}

// ExpandedHost returns the expanded host id.
func (t *Tree) ExpandedHost() (string, bool) {
	return t.host, t.host != ""
}

// ExpandedDevice returns the expanded device id.
func (t *Tree) ExpandedDevice() (string, bool) {
	return t.device, t.device != ""
}

// Selected reports whether the sensor row is marked. The mark follows the
// widget's existence, so closing a widget from its own close control
// unmarks the row as well.
func (t *Tree) Selected(sensorID string) bool {
	return t.widgets.Has(sensorID)
}

// Reset collapses every rank. Open widgets are untouched.
func (t *Tree) Reset() {
	t.host = ""
	t.device = ""
}

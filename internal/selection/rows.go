package selection

// Level is the rank of a browser row.
type Level int

const (
	LevelHost Level = iota
	LevelDevice
	LevelSensor
)

// Row is one visible line of the device browser.
type Row struct {
	Level    Level
	ID       string
	Label    string
	Detail   string
	Expanded bool
	Selected bool
}

// Rows flattens the visible part of the tree: every host, the devices of
// the expanded host and the sensors of the expanded device.
func (t *Tree) Rows() []Row {
	var rows []Row
	for _, h := range t.fleet.Hosts() {
		expanded := h.ID == t.host
		rows = append(rows, Row{
			Level:    LevelHost,
			ID:       h.ID,
			Label:    h.Name,
			Detail:   h.ID,
			Expanded: expanded,
		})
		if !expanded {
			continue
		}
		for _, d := range h.Devices {
			devExpanded := d.ID == t.device
			rows = append(rows, Row{
				Level:    LevelDevice,
				ID:       d.ID,
				Label:    d.Name,
				Detail:   d.ID,
				Expanded: devExpanded,
			})
			if !devExpanded {
				continue
			}
			for _, s := range d.Sensors {
				rows = append(rows, Row{
					Level:    LevelSensor,
					ID:       s.ID,
					Label:    s.Label(),
					Detail:   s.ID,
					Selected: t.Selected(s.ID),
				})
			}
		}
	}
	return rows
}

// Activate applies the transition for the row: hosts and devices expand or
// collapse, sensors toggle their widget.
func (t *Tree) Activate(r Row) (Event, error) {
	switch r.Level {
	case LevelHost:
		return t.SelectHost(r.ID)
	case LevelDevice:
		return t.SelectDevice(r.ID)
	default:
		return t.SelectSensorID(r.ID)
	}
}

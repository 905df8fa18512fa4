package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/pidash/internal/errors"
	"github.com/rileyhilliard/pidash/internal/fleet"
)

// ParseSensorList splits a comma-separated --sensors value, dropping blanks
// and repeats while keeping order.
func ParseSensorList(flag string) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, id := range strings.Split(flag, ",") {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// ParseInterval parses a duration flag. Empty means fallback. Values below
// minimum are rejected so the simulator cannot spin.
func ParseInterval(flag string, fallback, minimum time.Duration) (time.Duration, error) {
	if flag == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 500ms, 2s, or 1m.")
	}
	if d < minimum {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval %s is too short", d),
			fmt.Sprintf("Use at least %s", minimum))
	}
	return d, nil
}

// sensor looks up a sensor id, listing the known ids when it is missing.
func (a *app) sensor(id string) (fleet.Sensor, error) {
	s, ok := a.fleet.Sensor(id)
	if !ok {
		return fleet.Sensor{}, errors.New(errors.ErrFleet,
			fmt.Sprintf("Unknown sensor '%s'", id),
			"Known sensors: "+strings.Join(a.fleet.SensorIDs(), ", ")+". Run 'pidash fleet' for details.")
	}
	return s, nil
}

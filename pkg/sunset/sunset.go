// Package sunset turns sunrise and sunset instants into wall clock times,
// either in the zone of the place being reported on or in the zone of the
// machine doing the reporting.
package sunset

import (
	"time"
)

const clockFormat = "15:04"

// Mode says which zone a LocalizedEvent was rendered in.
type Mode uint

const (
	// RemoteZone is the zone of the queried location.
	RemoteZone Mode = iota
	// SystemZone is the zone of the machine running the program.
	SystemZone
)

func (m Mode) String() string {
	if m == SystemZone {
		return "system"
	}
	return "remote"
}

// LocalizedEvent is an HH:MM wall clock time and the mode that produced it.
// Clock is empty when there was nothing to render.
type LocalizedEvent struct {
	Clock string
	Mode  Mode
}

func (e LocalizedEvent) String() string {
	return e.Clock
}

// Localizer converts UTC instants to wall clock times. The zero value renders
// in the remote zone. A Localizer holds no state between calls.
type Localizer struct {
	// UseSystemTime selects the system zone instead of the remote zone.
	UseSystemTime bool
	// System is the zone used in system mode. Nil means time.Local.
	System *time.Location
}

// Localize renders instant in the remote zone, or in the system zone when
// UseSystemTime is set. The offset applied is the one in effect at instant, so
// days on either side of a DST transition render correctly.
//
// A nil remote zone means the zone could not be resolved; in remote mode the
// result is then empty. A zero instant, meaning the event does not happen on
// that day, is also empty.
func (l Localizer) Localize(instant time.Time, remote *time.Location) LocalizedEvent {
	mode := RemoteZone
	loc := remote
	if l.UseSystemTime {
		mode = SystemZone
		loc = l.System
		if loc == nil {
			loc = time.Local
		}
	}

	ev := LocalizedEvent{Mode: mode}
	if loc == nil || instant.IsZero() {
		return ev
	}
	ev.Clock = instant.In(loc).Format(clockFormat)
	return ev
}

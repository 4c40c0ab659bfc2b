// Package tzdb is the read-only table of time zone rules. The IANA database is
// embedded in the binary so lookups do not depend on the host having zoneinfo
// files installed.
package tzdb

import (
	"errors"
	"fmt"
	"sync"
	"time"
	_ "time/tzdata"
)

// ErrUnknownZone is returned for names that are not in the table.
var ErrUnknownZone = errors.New("unknown time zone")

// Table maps canonical zone names to their offset rules. A Table is safe for
// concurrent use and its answers never change.
type Table struct {
	fixed map[string]*time.Location
	// loaded memoizes the database; entries are only ever added.
	loaded sync.Map
}

var (
	defaultTable *Table
	defaultOnce  sync.Once
)

// Default returns the process-wide table backed by the IANA database.
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable = &Table{}
	})
	return defaultTable
}

// Static returns a table containing only the given zones.
func Static(zones map[string]*time.Location) *Table {
	fixed := make(map[string]*time.Location, len(zones))
	for name, loc := range zones {
		fixed[name] = loc
	}
	return &Table{fixed: fixed}
}

// Location returns the rules for the zone called name.
func (t *Table) Location(name string) (*time.Location, error) {
	// time.LoadLocation maps these to UTC and the host zone; neither is a
	// region.
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, name)
	}
	if t.fixed != nil {
		loc, ok := t.fixed[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownZone, name)
		}
		return loc, nil
	}

	if loc, ok := t.loaded.Load(name); ok {
		return loc.(*time.Location), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownZone, name, err)
	}
	actual, _ := t.loaded.LoadOrStore(name, loc)
	return actual.(*time.Location), nil
}

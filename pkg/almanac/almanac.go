// Package almanac runs the lookup pipeline: a ZIP code is geocoded, the time
// zone at the coordinates is resolved, and then sun and moon data is fetched
// and localized one day at a time.
//
// Geocoding failures are fatal. A failed time zone lookup is not: the run
// continues and remote times come out empty. A failed day aborts the run
// unless SkipFailedDays is set.
package almanac

import (
	"context"
	"fmt"
	"time"

	"cloudeng.io/errors"
	"go.uber.org/zap"

	"github.com/spencer-p/almanac/pkg/geocode"
	"github.com/spencer-p/almanac/pkg/nws"
	"github.com/spencer-p/almanac/pkg/report"
	"github.com/spencer-p/almanac/pkg/sunset"
	"github.com/spencer-p/almanac/pkg/timetricks"
	"github.com/spencer-p/almanac/pkg/usno"
)

// ErrPartialResults is returned after a run in which some days were skipped.
var ErrPartialResults = errors.New("some days could not be fetched")

type Geocoder interface {
	Resolve(ctx context.Context, zip string) (geocode.Coordinates, error)
}

type ZoneResolver interface {
	TimeZone(ctx context.Context, coords geocode.Coordinates) nws.ZoneResult
}

// Rules looks up time zone rules by name.
type Rules interface {
	Location(name string) (*time.Location, error)
}

type Fetcher interface {
	OneDay(ctx context.Context, q usno.Query) (usno.Record, error)
}

// Pacer blocks until another request to the sun and moon service may be made.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Pipeline holds the collaborators of a run. It keeps no state between runs
// and may be shared by concurrent callers if its collaborators can be.
type Pipeline struct {
	Geocoder Geocoder
	Zones    ZoneResolver
	Rules    Rules
	Fetcher  Fetcher
	// Pacer is waited on between consecutive fetches. Nil means no pause.
	Pacer     Pacer
	Localizer sunset.Localizer

	// SkipFailedDays drops days whose data cannot be fetched instead of
	// aborting. The errors are returned together after the last day.
	SkipFailedDays bool

	// Now defaults to time.Now. The window starts on its local date.
	Now func() time.Time
	Log *zap.SugaredLogger
}

// Request is one run's input.
type Request struct {
	Zip  string
	Days int
}

// Location is a resolved ZIP code.
type Location struct {
	Zip    string
	Coords geocode.Coordinates
	Zone   nws.ZoneResult
	// Loc is nil when the zone could not be resolved.
	Loc *time.Location
}

// Run resolves req.Zip and emits req.Days days in date order. The returned
// Location is valid whenever resolution succeeded, even if a later day fails.
func (p *Pipeline) Run(ctx context.Context, req Request, emit func(report.Day) error) (Location, error) {
	loc, err := p.Resolve(ctx, req.Zip)
	if err != nil {
		return Location{}, err
	}
	return loc, p.Days(ctx, loc, req.Days, emit)
}

// Resolve geocodes zip and resolves the time zone at its coordinates.
func (p *Pipeline) Resolve(ctx context.Context, zip string) (Location, error) {
	coords, err := p.Geocode(ctx, zip)
	if err != nil {
		return Location{}, err
	}
	zone, loc := p.Zone(ctx, coords)
	return Location{Zip: zip, Coords: coords, Zone: zone, Loc: loc}, nil
}

// Geocode returns the coordinates of zip.
func (p *Pipeline) Geocode(ctx context.Context, zip string) (geocode.Coordinates, error) {
	if !geocode.ValidZip(zip) {
		return geocode.Coordinates{}, fmt.Errorf("%w: got %q", geocode.ErrInvalidInput, zip)
	}
	coords, err := p.Geocoder.Resolve(ctx, zip)
	if err != nil {
		return geocode.Coordinates{}, err
	}
	p.log().Debugw("geocoded", "zip", zip, "coords", coords.String())
	return coords, nil
}

// Zone resolves the time zone at coords. Failures are logged and reported
// through the result rather than returned.
func (p *Pipeline) Zone(ctx context.Context, coords geocode.Coordinates) (nws.ZoneResult, *time.Location) {
	zone := p.Zones.TimeZone(ctx, coords)
	if zone.Degraded() {
		p.log().Warnw("time zone lookup failed", "coords", coords.String(), "error", zone.Err)
		return zone, nil
	}
	loc, err := p.Rules.Location(zone.Name)
	if err != nil {
		p.log().Warnw("time zone has no rules", "zone", zone.Name, "error", err)
		return zone, nil
	}
	p.log().Debugw("resolved time zone", "coords", coords.String(), "zone", zone.Name)
	return zone, loc
}

// Days fetches, localizes, and emits n days starting today. Each day is
// emitted before the next is fetched.
func (p *Pipeline) Days(ctx context.Context, loc Location, n int, emit func(report.Day) error) error {
	today := p.Today()
	skipped := &errors.M{}
	first := true
	for date := range timetricks.Window(today, n) {
		if !first {
			if err := p.pace(ctx); err != nil {
				return err
			}
		}
		first = false

		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := p.Fetcher.OneDay(ctx, usno.Query{Date: date, Coords: loc.Coords})
		if err != nil {
			if !p.SkipFailedDays || ctx.Err() != nil {
				return err
			}
			p.log().Warnw("skipping day", "date", date.String(), "error", err)
			skipped.Append(err)
			continue
		}
		if rec.Date != date {
			p.log().Debugw("service reported a different date", "requested", date.String(), "reported", rec.Date.String())
		}
		if err := emit(p.localize(rec, loc.Loc)); err != nil {
			return err
		}
	}
	if err := skipped.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrPartialResults, err)
	}
	return nil
}

// Today is the first date of every window: the local date of Now.
func (p *Pipeline) Today() timetricks.Date {
	return timetricks.DateOf(p.now())
}

func (p *Pipeline) localize(rec usno.Record, loc *time.Location) report.Day {
	return report.Day{
		Date:         rec.Date,
		DayOfWeek:    rec.DayOfWeek,
		Sunrise:      p.Localizer.Localize(rec.Sunrise, loc),
		Sunset:       p.Localizer.Localize(rec.Sunset, loc),
		MoonPhase:    rec.MoonPhase,
		Illumination: rec.Illumination,
	}
}

func (p *Pipeline) pace(ctx context.Context) error {
	if p.Pacer == nil {
		return nil
	}
	return p.Pacer.Wait(ctx)
}

func (p *Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

func (p *Pipeline) log() *zap.SugaredLogger {
	if p.Log == nil {
		return zap.NewNop().Sugar()
	}
	return p.Log
}

package usno

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spencer-p/almanac/pkg/timetricks"
)

const clockFormat = "15:04"

// Record holds one day of sun and moon data.
type Record struct {
	// Date is the date the service reports, which is not necessarily the date
	// requested.
	Date      timetricks.Date
	DayOfWeek string
	// Sunrise and Sunset are UTC instants. They are zero on days where the
	// sun does not rise or set.
	Sunrise, Sunset time.Time
	// MoonPhase is the current phase, e.g. "Waxing Gibbous".
	MoonPhase string
	// Illumination is the illuminated fraction of the moon, e.g. "72%".
	Illumination string
}

func (r Record) String() string {
	return fmt.Sprintf("{date: %s %s, rise: %s, set: %s, moon: %s %s}",
		r.Date, r.DayOfWeek,
		formatInstant(r.Sunrise),
		formatInstant(r.Sunset),
		r.MoonPhase, r.Illumination)
}

func formatInstant(t time.Time) string {
	if t.IsZero() {
		return "none"
	}
	return t.Format(time.RFC822)
}

// Verify the custom types can be unmarshaled
var _ json.Unmarshaler = new(Clock)
var _ json.Unmarshaler = new(Phen)

// Response is the data type returned by the one day API.
type Response struct {
	Properties *struct {
		Data *Data `json:"data"`
	} `json:"properties"`
}

// Data is the "properties.data" object of a Response. Pointer fields are
// required.
type Data struct {
	Year      *int         `json:"year"`
	Month     *int         `json:"month"`
	Day       *int         `json:"day"`
	DayOfWeek *string      `json:"day_of_week"`
	CurPhase  *string      `json:"curphase"`
	FracIllum *string      `json:"fracillum"`
	SunData   []Phenomenon `json:"sundata"`
}

// Phenomenon is one entry of sundata.
type Phenomenon struct {
	Phen Phen  `json:"phen"`
	Time Clock `json:"time"`
}

// Phen names a phenomenon. Only rise and set are of interest; the twilight
// and transit entries decode as Other.
type Phen uint

const (
	Other Phen = iota
	Rise
	Set
)

func (p *Phen) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("phen %q not a string: %w", buf, err)
	}
	switch s {
	case "Rise":
		*p = Rise
	case "Set":
		*p = Set
	default:
		*p = Other
	}
	return nil
}

func (p Phen) String() string {
	switch p {
	case Rise:
		return "Rise"
	case Set:
		return "Set"
	default:
		return "Other"
	}
}

// Clock is a UTC time of day.
type Clock struct {
	Hour, Minute int
}

// UnmarshalJSON accepts "HH:MM", optionally followed by a space and a zone
// suffix such as "ST" or "DT", which is ignored.
func (c *Clock) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("time %q not a string: %w", buf, err)
	}
	hhmm, _, _ := strings.Cut(strings.TrimSpace(s), " ")
	parsed, err := time.Parse(clockFormat, hhmm)
	if err != nil {
		return fmt.Errorf("time %q not in fmt %q: %w", s, clockFormat, err)
	}
	*c = Clock{parsed.Hour(), parsed.Minute()}
	return nil
}

// On returns the UTC instant of c on date d.
func (c Clock) On(d timetricks.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, c.Hour, c.Minute, 0, 0, time.UTC)
}

// Parse validates a one day response and converts it to a Record.
func Parse(body []byte) (Record, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return Record{}, err
	}
	if resp.Properties == nil || resp.Properties.Data == nil {
		return Record{}, errors.New("properties.data missing")
	}
	return resp.Properties.Data.record()
}

func (d *Data) record() (Record, error) {
	var missing []string
	for name, present := range map[string]bool{
		"year":        d.Year != nil,
		"month":       d.Month != nil,
		"day":         d.Day != nil,
		"day_of_week": d.DayOfWeek != nil,
		"curphase":    d.CurPhase != nil,
		"fracillum":   d.FracIllum != nil,
		"sundata":     d.SunData != nil,
	} {
		if !present {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return Record{}, fmt.Errorf("properties.data missing %s", strings.Join(missing, ", "))
	}

	date := timetricks.Date{Year: *d.Year, Month: time.Month(*d.Month), Day: *d.Day}
	if date.AddDays(0) != date {
		return Record{}, fmt.Errorf("invalid date %d-%d-%d", *d.Year, *d.Month, *d.Day)
	}

	rec := Record{
		Date:         date,
		DayOfWeek:    *d.DayOfWeek,
		MoonPhase:    *d.CurPhase,
		Illumination: *d.FracIllum,
	}
	for _, p := range d.SunData {
		switch {
		case p.Phen == Rise && rec.Sunrise.IsZero():
			rec.Sunrise = p.Time.On(date)
		case p.Phen == Set && rec.Sunset.IsZero():
			rec.Sunset = p.Time.On(date)
		}
	}
	return rec, nil
}

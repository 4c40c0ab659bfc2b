// Package report formats localized sun and moon data for display.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spencer-p/almanac/pkg/sunset"
	"github.com/spencer-p/almanac/pkg/timetricks"
)

// Day is one day of localized data.
type Day struct {
	Date      timetricks.Date
	DayOfWeek string
	Sunrise   sunset.LocalizedEvent
	Sunset    sunset.LocalizedEvent
	// MoonPhase and Illumination are passed through as the service wrote them.
	MoonPhase    string
	Illumination string
}

// String renders the three line block for d, without a trailing newline.
func (d Day) String() string {
	return fmt.Sprintf("%s - %s\nSunrise: %s, Sunset: %s\nMoon Phase: %s (%s)",
		d.Date, d.DayOfWeek,
		d.Sunrise.Clock, d.Sunset.Clock,
		d.MoonPhase, d.Illumination)
}

// Render writes each day's block followed by a blank line.
func Render(w io.Writer, days ...Day) error {
	for _, d := range days {
		if _, err := fmt.Fprintf(w, "%s\n\n", d); err != nil {
			return err
		}
	}
	return nil
}

type jsonDay struct {
	Date         string `json:"date"`
	DayOfWeek    string `json:"day_of_week"`
	Sunrise      string `json:"sunrise"`
	Sunset       string `json:"sunset"`
	Zone         string `json:"zone"`
	MoonPhase    string `json:"moon_phase"`
	Illumination string `json:"illumination"`
}

func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonDay{
		Date:         d.Date.String(),
		DayOfWeek:    d.DayOfWeek,
		Sunrise:      d.Sunrise.Clock,
		Sunset:       d.Sunset.Clock,
		Zone:         d.Sunrise.Mode.String(),
		MoonPhase:    d.MoonPhase,
		Illumination: d.Illumination,
	})
}

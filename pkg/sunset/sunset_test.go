package sunset

import (
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"
)

func mustLoad(t testing.TB, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load %q: %v", name, err)
	}
	return loc
}

func ExampleLocalizer_Localize() {
	ny, _ := time.LoadLocation("America/New_York")
	sunrise := time.Date(2024, time.March, 1, 11, 0, 0, 0, time.UTC)

	remote := Localizer{}
	system := Localizer{UseSystemTime: true, System: time.UTC}
	fmt.Println(remote.Localize(sunrise, ny))
	fmt.Println(system.Localize(sunrise, ny))
	// Output:
	// 06:00
	// 11:00
}

func TestLocalizeAcrossDST(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	la := mustLoad(t, "America/Los_Angeles")
	phx := mustLoad(t, "America/Phoenix")

	table := []struct {
		name    string
		instant time.Time
		loc     *time.Location
		want    string
	}{
		// DST began at 2024-03-10 07:00 UTC in New York.
		{"new york before", time.Date(2024, time.March, 1, 11, 0, 0, 0, time.UTC), ny, "06:00"},
		{"new york day before", time.Date(2024, time.March, 9, 11, 0, 0, 0, time.UTC), ny, "06:00"},
		{"new york day of", time.Date(2024, time.March, 10, 11, 0, 0, 0, time.UTC), ny, "07:00"},
		{"new york after", time.Date(2024, time.March, 11, 11, 0, 0, 0, time.UTC), ny, "07:00"},
		{"one minute before switch", time.Date(2024, time.March, 10, 6, 59, 0, 0, time.UTC), ny, "01:59"},
		{"switch", time.Date(2024, time.March, 10, 7, 0, 0, 0, time.UTC), ny, "03:00"},
		// DST ended at 2024-11-03 06:00 UTC.
		{"fall back before", time.Date(2024, time.November, 2, 22, 0, 0, 0, time.UTC), ny, "18:00"},
		{"fall back after", time.Date(2024, time.November, 3, 22, 0, 0, 0, time.UTC), ny, "17:00"},
		// Sunset after midnight UTC is the previous evening locally.
		{"los angeles sunset", time.Date(2024, time.March, 1, 1, 43, 0, 0, time.UTC), la, "17:43"},
		// Arizona does not observe DST.
		{"phoenix winter", time.Date(2024, time.January, 15, 14, 30, 0, 0, time.UTC), phx, "07:30"},
		{"phoenix summer", time.Date(2024, time.July, 15, 12, 30, 0, 0, time.UTC), phx, "05:30"},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got := Localizer{}.Localize(tc.instant, tc.loc)
			if got.Clock != tc.want {
				t.Errorf("got %q, want %q", got.Clock, tc.want)
			}
			if got.Mode != RemoteZone {
				t.Errorf("got mode %v, want %v", got.Mode, RemoteZone)
			}
		})
	}
}

func TestLocalizeSystemZone(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	tokyo := mustLoad(t, "Asia/Tokyo")
	l := Localizer{UseSystemTime: true, System: tokyo}

	instant := time.Date(2024, time.March, 1, 11, 0, 0, 0, time.UTC)
	got := l.Localize(instant, ny)
	if got.Clock != "20:00" || got.Mode != SystemZone {
		t.Errorf("got %+v, want 20:00 in system mode", got)
	}

	// The remote zone is not needed in system mode.
	if got := l.Localize(instant, nil); got.Clock != "20:00" {
		t.Errorf("got %q without a remote zone, want 20:00", got.Clock)
	}
}

func TestLocalizeUnresolved(t *testing.T) {
	instant := time.Date(2024, time.March, 1, 11, 0, 0, 0, time.UTC)
	if got := (Localizer{}).Localize(instant, nil); got.Clock != "" {
		t.Errorf("got %q for an unresolved zone, want empty", got.Clock)
	}
	ny := mustLoad(t, "America/New_York")
	if got := (Localizer{}).Localize(time.Time{}, ny); got.Clock != "" {
		t.Errorf("got %q for a missing event, want empty", got.Clock)
	}
}

func TestLocalizeIdempotent(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	instant := time.Date(2024, time.March, 10, 11, 0, 0, 0, time.UTC)
	for _, l := range []Localizer{{}, {UseSystemTime: true, System: time.UTC}} {
		first := l.Localize(instant, ny)
		second := l.Localize(instant, ny)
		if first != second {
			t.Errorf("%v: got %+v then %+v", l, first, second)
		}
	}
}

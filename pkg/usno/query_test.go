package usno

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spencer-p/almanac/pkg/geocode"
	"github.com/spencer-p/almanac/pkg/timetricks"
	"github.com/spencer-p/almanac/pkg/upstream"
)

func TestQueryURL(t *testing.T) {
	in := Query{
		Date:   timetricks.Date{Year: 2024, Month: time.March, Day: 1},
		Coords: geocode.Coordinates{Lat: "34.0901", Long: "-118.4065"},
	}
	want := "https://aa.usno.navy.mil/api/rstt/oneday?coords=34.0901%2C-118.4065&date=2024-03-01"
	got, err := (&Client{}).url(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want != got.String() {
		t.Errorf("got  %q", got)
		t.Errorf("want %q", want)
	}
}

func TestOneDay(t *testing.T) {
	var gotDate, gotCoords string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDate = r.URL.Query().Get("date")
		gotCoords = r.URL.Query().Get("coords")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, beverlyHillsMarch1)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL + "/api/rstt/oneday", HTTP: upstream.New("usno", "test", 0)}
	rec, err := c.OneDay(context.Background(), Query{
		Date:   timetricks.Date{Year: 2024, Month: time.March, Day: 1},
		Coords: geocode.Coordinates{Lat: "34.0901", Long: "-118.4065"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotDate != "2024-03-01" || gotCoords != "34.0901,-118.4065" {
		t.Errorf("server saw date=%q coords=%q", gotDate, gotCoords)
	}
	if want := time.Date(2024, time.March, 1, 14, 23, 0, 0, time.UTC); !rec.Sunrise.Equal(want) {
		t.Errorf("got sunrise %v, want %v", rec.Sunrise, want)
	}
}

func TestOneDayFailures(t *testing.T) {
	table := []struct {
		name    string
		status  int
		payload string
	}{
		{"bad request", http.StatusBadRequest, `{"error": "Invalid coordinates"}`},
		{"malformed", http.StatusOK, `{"properties": {"data": `},
		{"missing data", http.StatusOK, `{"properties": {}}`},
	}
	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.payload)
			}))
			defer srv.Close()

			c := &Client{BaseURL: srv.URL, HTTP: upstream.New("usno", "test", 0)}
			_, err := c.OneDay(context.Background(), Query{
				Date:   timetricks.Date{Year: 2024, Month: time.March, Day: 1},
				Coords: geocode.Coordinates{Lat: "40.0", Long: "-75.0"},
			})
			if !errors.Is(err, ErrDataUnavailable) {
				t.Errorf("got %v, want %v", err, ErrDataUnavailable)
			}
		})
	}
}

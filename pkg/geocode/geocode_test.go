package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spencer-p/almanac/pkg/upstream"
)

const beverlyHills = `<?xml version='1.0'?><dwml version='1.0' xmlns:xsd='http://www.w3.org/2001/XMLSchema' xmlns:xsi='http://www.w3.org/2001/XMLSchema-instance' xsi:noNamespaceSchemaLocation='https://graphical.weather.gov/xml/DWMLgen/schema/DWML.xsd'><latLonList>34.0901,-118.4065</latLonList></dwml>`

func TestValidZip(t *testing.T) {
	table := []struct {
		in   string
		want bool
	}{
		{"90210", true},
		{"00000", true},
		{"9021", false},
		{"902100", false},
		{"9021a", false},
		{" 90210", false},
		{"90210\n", false},
		{"", false},
		{"١٢٣٤٥", false}, // non-ASCII digits
	}
	for _, tc := range table {
		t.Run(fmt.Sprintf("%q", tc.in), func(t *testing.T) {
			if got := ValidZip(tc.in); got != tc.want {
				t.Errorf("ValidZip(%q) = %t, want %t", tc.in, got, tc.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	table := []struct {
		name    string
		input   string
		want    Coordinates
		wantErr error
	}{{
		name:  "simple",
		input: `<dwml><latLonList>40.0,-75.0</latLonList></dwml>`,
		want:  Coordinates{"40.0", "-75.0"},
	}, {
		name:  "full document",
		input: beverlyHills,
		want:  Coordinates{"34.0901", "-118.4065"},
	}, {
		name:    "unknown zip",
		input:   `<dwml><latLonList>,</latLonList></dwml>`,
		wantErr: ErrInvalidZipCode,
	}, {
		name:    "missing field",
		input:   `<dwml><minResolution>5</minResolution></dwml>`,
		wantErr: ErrGeocodingUnavailable,
	}, {
		name:    "empty field",
		input:   `<dwml><latLonList></latLonList></dwml>`,
		wantErr: ErrGeocodingUnavailable,
	}, {
		name:    "half a pair",
		input:   `<dwml><latLonList>40.0,</latLonList></dwml>`,
		wantErr: ErrGeocodingUnavailable,
	}, {
		name:    "not numbers",
		input:   `<dwml><latLonList>north,west</latLonList></dwml>`,
		wantErr: ErrGeocodingUnavailable,
	}, {
		name:    "error page",
		input:   `<error><h2>ERROR</h2></error>`,
		wantErr: ErrGeocodingUnavailable,
	}, {
		name:    "not xml",
		input:   `{"latLonList": "40.0,-75.0"}`,
		wantErr: ErrGeocodingUnavailable,
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse([]byte(tc.input))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got error %v, want %v", err, tc.wantErr)
			}
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("incorrect parse (-got,+want): %s", diff)
			}
		})
	}
}

func TestInvalidZipIsNotUnavailable(t *testing.T) {
	_, err := Parse([]byte(`<dwml><latLonList>,</latLonList></dwml>`))
	if errors.Is(err, ErrGeocodingUnavailable) {
		t.Errorf("unknown ZIP reported as unavailable: %v", err)
	}
}

func TestResolve(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "text/xml")
		fmt.Fprint(w, beverlyHills)
	}))
	defer srv.Close()

	c := &Client{
		BaseURL: srv.URL + "/xml/ndfdXMLclient.php",
		HTTP:    upstream.New("geocode", "test", 0),
	}
	got, err := c.Resolve(context.Background(), "90210")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "34.0901,-118.4065"; got.String() != want {
		t.Errorf("got %q, want %q", got.String(), want)
	}
	if want := "listZipCodeList=90210"; gotQuery != want {
		t.Errorf("got query %q, want %q", gotQuery, want)
	}
}

func TestResolveServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTP: upstream.New("geocode", "test", 0)}
	_, err := c.Resolve(context.Background(), "90210")
	if !errors.Is(err, ErrGeocodingUnavailable) {
		t.Errorf("got %v, want %v", err, ErrGeocodingUnavailable)
	}
}

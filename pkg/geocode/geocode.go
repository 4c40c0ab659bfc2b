// Package geocode resolves US ZIP codes to coordinates using the National
// Digital Forecast Database XML interface. A successful lookup returns the
// latitude and longitude as text, exactly as the service reported them.
package geocode

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidInput means the input is not a five digit ZIP code. It is
	// caught before any lookup is made.
	ErrInvalidInput = errors.New("ZIP code must be five digits")
	// ErrInvalidZipCode means the service does not know the ZIP code.
	ErrInvalidZipCode = errors.New("invalid ZIP code")
	// ErrGeocodingUnavailable means no coordinates could be obtained.
	ErrGeocodingUnavailable = errors.New("lat/long lookup failed")
)

var zipPattern = regexp.MustCompile(`^\d{5}$`)

// ValidZip reports whether s is a five digit ZIP code.
func ValidZip(s string) bool {
	return zipPattern.MatchString(s)
}

// Coordinates is a latitude and longitude in decimal degrees. They stay text
// since they are only ever embedded in other requests.
type Coordinates struct {
	Lat, Long string
}

// String returns the "lat,long" form accepted by the downstream services.
func (c Coordinates) String() string {
	return c.Lat + "," + c.Long
}

// Getter fetches a document.
type Getter interface {
	Get(ctx context.Context, url, accept string) ([]byte, error)
}

// Client looks up ZIP codes at BaseURL.
type Client struct {
	BaseURL string
	HTTP    Getter
}

// Resolve returns the coordinates of zip. Errors wrap either
// ErrInvalidZipCode or ErrGeocodingUnavailable.
func (c *Client) Resolve(ctx context.Context, zip string) (Coordinates, error) {
	addr, err := c.url(zip)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: %v", ErrGeocodingUnavailable, err)
	}
	body, err := c.HTTP.Get(ctx, addr, "application/xml")
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: %v", ErrGeocodingUnavailable, err)
	}
	return Parse(body)
}

func (c *Client) url(zip string) (string, error) {
	addr, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", err
	}
	vals := addr.Query()
	vals.Set("listZipCodeList", zip)
	addr.RawQuery = vals.Encode()
	return addr.String(), nil
}

// dwml is the document returned for a listZipCodeList query.
type dwml struct {
	XMLName    xml.Name `xml:"dwml"`
	LatLonList *string  `xml:"latLonList"`
}

// Parse extracts the coordinates from a dwml document.
func Parse(body []byte) (Coordinates, error) {
	var doc dwml
	if err := xml.NewDecoder(bytes.NewReader(body)).Decode(&doc); err != nil {
		return Coordinates{}, fmt.Errorf("%w: %v", ErrGeocodingUnavailable, err)
	}
	if doc.LatLonList == nil {
		return Coordinates{}, fmt.Errorf("%w: no latLonList in response", ErrGeocodingUnavailable)
	}

	list := strings.TrimSpace(*doc.LatLonList)
	if list == "," {
		return Coordinates{}, ErrInvalidZipCode
	}

	lat, long, ok := strings.Cut(list, ",")
	if !ok || lat == "" || long == "" {
		return Coordinates{}, fmt.Errorf("%w: latLonList %q not lat,long", ErrGeocodingUnavailable, list)
	}
	for _, v := range []string{lat, long} {
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return Coordinates{}, fmt.Errorf("%w: latLonList %q: %v", ErrGeocodingUnavailable, list, err)
		}
	}
	return Coordinates{Lat: lat, Long: long}, nil
}

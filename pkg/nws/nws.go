// Package nws reads point metadata from the National Weather Service API.
// Only the IANA time zone of a point is used.
//
// Lookups never fail outright. A failed lookup produces a ZoneResult that
// carries the error and a readable label, so callers can report it and carry
// on without a zone.
package nws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spencer-p/almanac/pkg/geocode"
)

var errNoTimeZone = errors.New("properties.timeZone missing")

// Getter fetches a document.
type Getter interface {
	Get(ctx context.Context, url, accept string) ([]byte, error)
}

// Client queries the points endpoint at BaseURL.
type Client struct {
	BaseURL string
	HTTP    Getter
}

// ZoneResult is the outcome of a time zone lookup. Exactly one of Name and Err
// is set.
type ZoneResult struct {
	Name string
	Err  error
}

// Degraded reports whether the lookup failed.
func (z ZoneResult) Degraded() bool {
	return z.Err != nil
}

// Label is the zone name, or a description of why there is none.
func (z ZoneResult) Label() string {
	if z.Err != nil {
		return fmt.Sprintf("lookup failed: %v", z.Err)
	}
	return z.Name
}

func (z ZoneResult) String() string {
	return z.Label()
}

// TimeZone returns the time zone containing coords.
func (c *Client) TimeZone(ctx context.Context, coords geocode.Coordinates) ZoneResult {
	addr, err := url.JoinPath(c.BaseURL, coords.String())
	if err != nil {
		return ZoneResult{Err: err}
	}
	body, err := c.HTTP.Get(ctx, addr, "application/geo+json")
	if err != nil {
		return ZoneResult{Err: err}
	}
	return ParseTimeZone(body)
}

// point is the subset of a points document that is read.
type point struct {
	Properties *struct {
		TimeZone *string `json:"timeZone"`
	} `json:"properties"`
}

// ParseTimeZone extracts properties.timeZone from a points document.
func ParseTimeZone(body []byte) ZoneResult {
	var p point
	if err := json.Unmarshal(body, &p); err != nil {
		return ZoneResult{Err: fmt.Errorf("points response: %w", err)}
	}
	if p.Properties == nil || p.Properties.TimeZone == nil {
		return ZoneResult{Err: errNoTimeZone}
	}
	name := strings.TrimSpace(*p.Properties.TimeZone)
	if name == "" {
		return ZoneResult{Err: errNoTimeZone}
	}
	return ZoneResult{Name: name}
}

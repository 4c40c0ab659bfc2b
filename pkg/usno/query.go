package usno

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/spencer-p/almanac/pkg/geocode"
	"github.com/spencer-p/almanac/pkg/timetricks"
)

const USNO_URL = "https://aa.usno.navy.mil/api/rstt/oneday"

// ErrDataUnavailable is wrapped by every error OneDay returns.
var ErrDataUnavailable = errors.New("sun and moon data unavailable")

// Getter fetches a document.
type Getter interface {
	Get(ctx context.Context, url, accept string) ([]byte, error)
}

// Client queries the one day endpoint at BaseURL, or USNO_URL when BaseURL is
// empty.
type Client struct {
	BaseURL string
	HTTP    Getter
}

// Query names the day and place to fetch.
type Query struct {
	Date   timetricks.Date
	Coords geocode.Coordinates
}

// OneDay fetches the sun and moon data for q.
func (c *Client) OneDay(ctx context.Context, q Query) (Record, error) {
	addr, err := c.url(q)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	body, err := c.HTTP.Get(ctx, addr.String(), "application/json")
	if err != nil {
		return Record{}, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, q.Date, err)
	}

	rec, err := Parse(body)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, q.Date, err)
	}
	return rec, nil
}

func (c *Client) url(q Query) (*url.URL, error) {
	base := c.BaseURL
	if base == "" {
		base = USNO_URL
	}
	addr, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	addr.RawQuery = q.build().Encode()
	return addr, nil
}

func (q Query) build() url.Values {
	vals := make(url.Values)
	vals.Add("date", q.Date.String())
	vals.Add("coords", q.Coords.String())
	return vals
}

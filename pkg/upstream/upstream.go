// Package upstream performs the synchronous GET requests made to the remote
// data services. It never retries.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spencer-p/almanac/pkg/metrics"
)

// maxBody bounds how much of a response is read. The largest payload, the
// NWS points document, is a few kilobytes.
const maxBody = 1 << 20

// StatusError is returned for responses with a status code of 400 or above.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// Client GETs documents from one named service. The name labels metrics.
type Client struct {
	Service   string
	UserAgent string
	HTTP      *http.Client
}

// New returns a Client for service with the given per-request timeout.
func New(service, userAgent string, timeout time.Duration) *Client {
	return &Client{
		Service:   service,
		UserAgent: userAgent,
		HTTP:      &http.Client{Timeout: timeout},
	}
}

// Get fetches url and returns the response body.
func (c *Client) Get(ctx context.Context, url, accept string) (body []byte, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveUpstream(c.Service, outcome(err), time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if _, ok := err.(*StatusError); ok {
		return "status"
	}
	return "error"
}

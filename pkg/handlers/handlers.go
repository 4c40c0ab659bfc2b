package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/spencer-p/almanac/pkg/almanac"
	"github.com/spencer-p/almanac/pkg/cache"
	"github.com/spencer-p/almanac/pkg/config"
	"github.com/spencer-p/almanac/pkg/geocode"
	"github.com/spencer-p/almanac/pkg/log"
	"github.com/spencer-p/almanac/pkg/report"
	"github.com/spencer-p/almanac/pkg/sunset"
)

// Register adds the almanac API to r. The pipeline is copied per request, so
// it may be shared with other callers.
func Register(r *mux.Router, cfg config.Config, p *almanac.Pipeline) {
	r.Handle("/api/v1/almanac", makeServeAlmanac(cfg, p)).Methods(http.MethodGet)
}

type response struct {
	Zip         string       `json:"zip"`
	Coordinates string       `json:"coordinates"`
	TimeZone    string       `json:"timezone"`
	Days        []report.Day `json:"days"`
}

type cached struct {
	contentType string
	body        []byte
}

func makeServeAlmanac(cfg config.Config, base *almanac.Pipeline) http.Handler {
	// cache for slightly less than one day so daily clients don't see stale
	// data
	timeCache := cache.NewTimed[cached](cfg.CacheTTL)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// cache based on method and URL, which should encapsulate the query,
		// and on the date, since windows start today
		key := fmt.Sprintf("%s %s %s", base.Today(), r.Method, r.URL)
		if c, ok := timeCache.Get(key); ok {
			write(w, http.StatusOK, c.contentType, c.body)
			return
		}

		zip := r.FormValue("zip")
		if !geocode.ValidZip(zip) {
			write(w, http.StatusBadRequest, "text/plain", []byte("zip must be five digits\n"))
			return
		}
		days := cfg.Days
		if s := r.FormValue("days"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				write(w, http.StatusBadRequest, "text/plain", []byte("days must be an integer\n"))
				return
			}
			days, _ = cfg.ClampDays(n)
		}

		p := *base
		if r.FormValue("local") == "1" {
			p.Localizer = sunset.Localizer{UseSystemTime: true, System: time.Local}
		}

		var resp response
		loc, err := p.Run(r.Context(), almanac.Request{Zip: zip, Days: days}, func(d report.Day) error {
			resp.Days = append(resp.Days, d)
			return nil
		})
		if err != nil {
			code := statusFor(err)
			log.Errorw("almanac request failed", "zip", zip, "code", code, "error", err)
			write(w, code, "text/plain", []byte(fmt.Sprintf("Failed to get data: %v\n", err)))
			return
		}
		resp.Zip = loc.Zip
		resp.Coordinates = loc.Coords.String()
		resp.TimeZone = loc.Zone.Label()

		var out cached
		var buf bytes.Buffer
		if r.FormValue("o") == "json" {
			out.contentType = "application/json"
			if err := json.NewEncoder(&buf).Encode(resp); err != nil {
				log.Errorw("failed to encode JSON result", "error", err)
				write(w, http.StatusInternalServerError, "text/plain", []byte("encoding failed\n"))
				return
			}
		} else {
			out.contentType = "text/plain"
			fmt.Fprintf(&buf, "Using timezone: %s\n\n", resp.TimeZone)
			report.Render(&buf, resp.Days...)
		}
		out.body = buf.Bytes()

		// a degraded zone lookup may be transient
		if !loc.Zone.Degraded() {
			timeCache.Set(key, out)
		}
		write(w, http.StatusOK, out.contentType, out.body)
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, geocode.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, geocode.ErrInvalidZipCode):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func write(w http.ResponseWriter, code int, contentType string, body []byte) {
	w.Header().Add("Content-Type", contentType)
	w.WriteHeader(code)
	w.Write(body)
}

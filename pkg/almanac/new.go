package almanac

import (
	"time"

	"github.com/spencer-p/almanac/pkg/config"
	"github.com/spencer-p/almanac/pkg/geocode"
	"github.com/spencer-p/almanac/pkg/log"
	"github.com/spencer-p/almanac/pkg/nws"
	"github.com/spencer-p/almanac/pkg/sunset"
	"github.com/spencer-p/almanac/pkg/tzdb"
	"github.com/spencer-p/almanac/pkg/upstream"
	"github.com/spencer-p/almanac/pkg/usno"
)

// New wires a Pipeline to the services named in cfg, using the embedded time
// zone table and the process logger.
func New(cfg config.Config) *Pipeline {
	return &Pipeline{
		Geocoder: &geocode.Client{
			BaseURL: cfg.GeocodeURL,
			HTTP:    upstream.New("geocode", cfg.UserAgent, cfg.Timeout),
		},
		Zones: &nws.Client{
			BaseURL: cfg.PointsURL,
			HTTP:    upstream.New("nws", cfg.UserAgent, cfg.Timeout),
		},
		Rules: tzdb.Default(),
		Fetcher: &usno.Client{
			BaseURL: cfg.USNOURL,
			HTTP:    upstream.New("usno", cfg.UserAgent, cfg.Timeout),
		},
		Pacer:     NewPacer(cfg.Pace),
		Localizer: sunset.Localizer{System: time.Local},
		Log:       log.Sugared(),
	}
}

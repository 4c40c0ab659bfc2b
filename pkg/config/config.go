// Package config reads almanac settings from the environment.
package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const prefix = "ALMANAC"

// Config is shared by the command line tool and the server. Every field can be
// set with ALMANAC_<FIELD>, e.g. ALMANAC_DAYS=7.
type Config struct {
	GeocodeURL string        `default:"https://graphical.weather.gov/xml/sample_products/browser_interface/ndfdXMLclient.php" split_words:"true"`
	PointsURL  string        `default:"https://api.weather.gov/points" split_words:"true"`
	USNOURL    string        `default:"https://aa.usno.navy.mil/api/rstt/oneday" envconfig:"USNO_URL"`
	UserAgent  string        `default:"almanac (github.com/spencer-p/almanac)" split_words:"true"`
	Timeout    time.Duration `default:"30s"`

	// Days is the default window length.
	Days    int `default:"4"`
	MaxDays int `default:"30" split_words:"true"`
	// Pace is the pause between consecutive USNO requests.
	Pace  time.Duration `default:"1s"`
	Debug bool

	Port     string        `default:"8080"`
	Prefix   string        `default:"/"`
	CacheTTL time.Duration `default:"23h" split_words:"true"`
}

// Load reads an optional .env file from the working directory and then the
// environment. Variables already set in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	return Process()
}

// Process reads the environment only.
func Process() (Config, error) {
	var c Config
	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ClampDays bounds n to [1, MaxDays]. The second result reports whether n was
// changed.
func (c Config) ClampDays(n int) (int, bool) {
	switch {
	case n < 1:
		return 1, true
	case c.MaxDays > 0 && n > c.MaxDays:
		return c.MaxDays, true
	}
	return n, false
}

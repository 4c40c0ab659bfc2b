// Command almanac prints sunrise, sunset, and moon phase for a ZIP code over
// the next few days.
//
// Usage:
//
//	almanac [-zip 90210] [-days 4] [-skip-failed-days] [-v] [1]
//
// Flags and the positional argument may appear in any order.
//
// Times are shown in the ZIP code's own time zone, or in the local time zone
// of this machine when the positional argument is 1.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spencer-p/almanac/pkg/almanac"
	"github.com/spencer-p/almanac/pkg/config"
	"github.com/spencer-p/almanac/pkg/geocode"
	"github.com/spencer-p/almanac/pkg/log"
	"github.com/spencer-p/almanac/pkg/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Sync()
		os.Exit(1)
	}
	log.Sync()
}

type options struct {
	zip            string
	days           int
	skipFailedDays bool
	verbose        bool
	systemTime     bool
}

func parseArgs(args []string, cfg config.Config, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("almanac", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.zip, "zip", "", "five digit ZIP code; prompted for when empty")
	fs.IntVar(&o.days, "days", cfg.Days, fmt.Sprintf("number of days to show, at most %d", cfg.MaxDays))
	fs.BoolVar(&o.skipFailedDays, "skip-failed-days", false, "leave out days whose data cannot be fetched instead of stopping")
	fs.BoolVar(&o.verbose, "v", cfg.Debug, "debug logging")
	// Flags may come before or after the positional argument.
	var positional []string
	for rest := args; ; {
		if err := fs.Parse(rest); err != nil {
			return o, err
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		rest = fs.Args()[1:]
	}
	if len(positional) > 1 {
		return o, fmt.Errorf("unexpected arguments %q", positional[1:])
	}
	o.systemTime = len(positional) == 1 && positional[0] == "1"
	return o, nil
}

// promptZip asks for a ZIP code until a well formed one is entered.
func promptZip(in *bufio.Scanner, out io.Writer) (string, error) {
	for {
		fmt.Fprint(out, "Enter ZIP code: ")
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		if zip := strings.TrimSpace(in.Text()); geocode.ValidZip(zip) {
			return zip, nil
		}
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	opts, err := parseArgs(args, cfg, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := log.Init(opts.verbose); err != nil {
		return err
	}
	return printAlmanac(ctx, almanac.New(cfg), cfg, opts, stdin, stdout)
}

// printAlmanac runs p and writes the progress lines and day blocks.
func printAlmanac(ctx context.Context, p *almanac.Pipeline, cfg config.Config, opts options, stdin io.Reader, stdout io.Writer) error {
	days, clamped := cfg.ClampDays(opts.days)
	if clamped && opts.days > cfg.MaxDays {
		fmt.Fprintf(stdout, "Maximum allowed days is %d. Setting to %d.\n", cfg.MaxDays, days)
	}

	zip := opts.zip
	if zip == "" {
		var err error
		if zip, err = promptZip(bufio.NewScanner(stdin), stdout); err != nil {
			return fmt.Errorf("reading ZIP code: %w", err)
		}
	}

	p.Localizer.UseSystemTime = opts.systemTime
	p.SkipFailedDays = opts.skipFailedDays
	// The pacing interval starts once the operator has answered, so the
	// first pause is not spent while waiting at the prompt.
	p.Pacer = almanac.NewPacer(cfg.Pace)

	fmt.Fprint(stdout, "Getting Lat/Long from ZIP code. . . ")
	coords, err := p.Geocode(ctx, zip)
	if err != nil {
		fmt.Fprintln(stdout)
		return err
	}
	fmt.Fprintln(stdout, coords)

	zone, loc := p.Zone(ctx, coords)
	fmt.Fprintf(stdout, "Using timezone: %s\n\n", zone.Label())

	where := almanac.Location{Zip: zip, Coords: coords, Zone: zone, Loc: loc}
	return p.Days(ctx, where, days, func(d report.Day) error {
		return report.Render(stdout, d)
	})
}

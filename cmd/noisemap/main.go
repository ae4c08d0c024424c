// Command noisemap samples coherent noise on the unit sphere.
//
// Usage:
//
//	noisemap [flags] <lat> <lon>
//	noisemap -map [flags]
//
// Examples:
//
//	noisemap 39.64 -106.37
//	noisemap -source perlin -seed 7 -json 39.64 -106.37
//	noisemap -map -width 720 -height 360 -workers 8
//	noisemap -map -south 20 -north 55 -west -130 -east -60 -json
//	noisemap -map -west 170 -east 190 -border -1
//	noisemap -source const -value 0.5 0 0
//	noisemap -config planet.toml -map
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/geal-ai/noisemap"
	"github.com/geal-ai/noisemap/sources"
)

// knownSources is the help text for -source.
var knownSources = []struct {
	key  string
	desc string
}{
	{"simplex", "OpenSimplex noise, roughly [-1, 1]"},
	{"simplex01", "OpenSimplex noise normalised to [0, 1)"},
	{"perlin", "Perlin noise, alpha=2 beta=2 3 octaves"},
	{"const", "The same value everywhere (set with -value)"},
}

// jsonLocation is the location sub-object in JSON output.
type jsonLocation struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// jsonPoint is the JSON output for a single point lookup.
type jsonPoint struct {
	Location jsonLocation `json:"location"`
	Source   string       `json:"source"`
	Seed     int64        `json:"seed"`
	Point    [3]float64   `json:"point"`
	Value    float64      `json:"value"`
}

// jsonMap is the JSON output for -map.
type jsonMap struct {
	Source  string           `json:"source"`
	Seed    int64            `json:"seed"`
	Width   int              `json:"width"`
	Height  int              `json:"height"`
	Bounds  noisemap.Bounds  `json:"bounds"`
	Border  float64          `json:"border"`
	Elapsed string           `json:"elapsed"`
	Stats   noisemap.Summary `json:"stats"`
}

func main() {
	configPath := flag.String("config", "", "TOML config file; explicit flags override its keys")
	source := flag.String("source", "simplex", "Noise source (see -list)")
	seed := flag.Int64("seed", 0, "Noise seed")
	scale := flag.Float64("scale", 1, "Frequency multiplier applied to the sphere point")
	buildMap := flag.Bool("map", false, "Build a lat/lon map and print summary statistics")
	width := flag.Int("width", 360, "Map width in cells (-map)")
	height := flag.Int("height", 180, "Map height in cells (-map)")
	south := flag.Float64("south", -90, "Southern edge in degrees (-map)")
	north := flag.Float64("north", 90, "Northern edge in degrees (-map)")
	west := flag.Float64("west", -180, "Western edge in degrees, 0-360 accepted (-map)")
	east := flag.Float64("east", 180, "Eastern edge in degrees; may exceed 180 to cross the antimeridian (-map)")
	workers := flag.Int("workers", 1, "Rows sampled concurrently (-map)")
	border := flag.Float64("border", 0, "Value reported outside the map (-map)")
	value := flag.Float64("value", 0, "Constant for -source const")
	listSources := flag.Bool("list", false, "Print noise sources and exit")
	asJSON := flag.Bool("json", false, "Output results as JSON")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Usage = usage
	flag.Parse()

	setupLogging(*verbose)

	if *listSources {
		printSourceList()
		os.Exit(0)
	}

	opts := defaultOptions()
	if *configPath != "" {
		var err error
		if opts, err = loadConfig(*configPath, opts); err != nil {
			fatalf("%v", err)
		}
		log.Debug().Str("path", *configPath).Msg("config loaded")
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "source":
			opts.Source = strings.ToLower(strings.TrimSpace(*source))
		case "seed":
			opts.Seed = *seed
		case "scale":
			opts.Scale = *scale
		case "width":
			opts.Width = *width
		case "height":
			opts.Height = *height
		case "south":
			opts.Bounds.South = *south
		case "north":
			opts.Bounds.North = *north
		case "west":
			opts.Bounds.West = *west
		case "east":
			opts.Bounds.East = *east
		case "workers":
			opts.Workers = *workers
		case "border":
			opts.Border = *border
		case "value":
			opts.Value = *value
		}
	})
	opts.Bounds.West, opts.Bounds.East = lonRange(opts.Bounds.West, opts.Bounds.East)
	if err := opts.validate(); err != nil {
		fatalf("%v", err)
	}

	field, err := newField(opts)
	if err != nil {
		fatalf("%v", err)
	}
	sphere := noisemap.NewSphere(field)

	if *buildMap {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := runMap(ctx, os.Stdout, sphere, opts, *asJSON); err != nil {
			fatalf("%v", err)
		}
		return
	}

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "error: lat and lon are required")
		usage()
		os.Exit(2)
	}
	lat, err := strconv.ParseFloat(flag.Arg(0), 64)
	if err != nil {
		fatalf("invalid lat %q: %v", flag.Arg(0), err)
	}
	lon, err := strconv.ParseFloat(flag.Arg(1), 64)
	if err != nil {
		fatalf("invalid lon %q: %v", flag.Arg(1), err)
	}
	if err := runPoint(os.Stdout, sphere, opts, lat, noisemap.NormLon(lon), *asJSON); err != nil {
		fatalf("%v", err)
	}
}

func setupLogging(verbose bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
}

// newField builds the configured noise source, scaled by opts.Scale.
func newField(opts options) (noisemap.Field, error) {
	var f noisemap.Field
	switch opts.Source {
	case "simplex":
		f = sources.OpenSimplex(opts.Seed)
	case "simplex01":
		f = sources.NormalizedOpenSimplex(opts.Seed)
	case "perlin":
		f = sources.Perlin(2, 2, 3, opts.Seed)
	case "const":
		return noisemap.Const(opts.Value), nil
	default:
		return nil, fmt.Errorf("unknown source %q (see -list)", opts.Source)
	}
	if opts.Scale != 1 {
		f = sources.Scale(f, opts.Scale, opts.Scale, opts.Scale)
	}
	return f, nil
}

// runPoint evaluates a single point and writes the result to w.
func runPoint(w io.Writer, sphere *noisemap.Sphere, opts options, lat, lon float64, asJSON bool) error {
	if lat < -90 || lat > 90 {
		log.Warn().Float64("lat", lat).Msg("latitude outside [-90, 90], projection wraps")
	}
	p := sphere.Point(lat, lon)
	val := sphere.Value(lat, lon)

	if asJSON {
		return emitJSON(w, jsonPoint{
			Location: jsonLocation{Lat: lat, Lon: lon},
			Source:   opts.Source,
			Seed:     opts.Seed,
			Point:    [3]float64{p.X, p.Y, p.Z},
			Value:    val,
		})
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Location : %.4f°N  %.4f°E\n", lat, lon)
	fmt.Fprintf(w, "  Point    : (%.6f, %.6f, %.6f)\n", p.X, p.Y, p.Z)
	fmt.Fprintf(w, "  Source   : %s (seed %d)\n", opts.Source, opts.Seed)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Value    : %g\n", val)
	fmt.Fprintf(w, "\n")
	return nil
}

// runMap builds a map over opts.Bounds and writes its statistics to w.
func runMap(ctx context.Context, w io.Writer, sphere *noisemap.Sphere, opts options, asJSON bool) error {
	m, err := noisemap.New(opts.Width, opts.Height)
	if err != nil {
		return err
	}
	m.SetBorderValue(opts.Border)

	var done atomic.Int64
	step := max(opts.Height/10, 1)
	b, err := noisemap.NewSphereBuilder(sphere, m, opts.Bounds,
		noisemap.WithWorkers(opts.Workers),
		noisemap.WithRowCallback(func(int) {
			if n := done.Add(1); n%int64(step) == 0 {
				log.Debug().Int64("rows", n).Int("of", opts.Height).Msg("building")
			}
		}))
	if err != nil {
		return err
	}

	start := time.Now()
	log.Info().
		Str("source", opts.Source).
		Int("width", opts.Width).
		Int("height", opts.Height).
		Int("workers", opts.Workers).
		Msg("building map")
	if err := b.Build(ctx); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	elapsed := time.Since(start)
	log.Info().Dur("elapsed", elapsed).Msg("map built")

	stats := m.Stats()
	if asJSON {
		return emitJSON(w, jsonMap{
			Source:  opts.Source,
			Seed:    opts.Seed,
			Width:   opts.Width,
			Height:  opts.Height,
			Bounds:  opts.Bounds,
			Border:  m.BorderValue(),
			Elapsed: elapsed.Round(time.Millisecond).String(),
			Stats:   stats,
		})
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Source   : %s (seed %d)\n", opts.Source, opts.Seed)
	fmt.Fprintf(w, "  Size     : %d x %d\n", opts.Width, opts.Height)
	fmt.Fprintf(w, "  Bounds   : %.2f°N..%.2f°N  %.2f°E..%.2f°E\n",
		opts.Bounds.South, opts.Bounds.North, opts.Bounds.West, opts.Bounds.East)
	fmt.Fprintf(w, "  Border   : %g\n", m.BorderValue())
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Min      : %g\n", stats.Min)
	fmt.Fprintf(w, "  Max      : %g\n", stats.Max)
	fmt.Fprintf(w, "  Mean     : %g\n", stats.Mean)
	fmt.Fprintf(w, "  Std dev  : %g\n", stats.StdDev)
	fmt.Fprintf(w, "\n")
	return nil
}

// emitJSON writes v to w as indented JSON.
func emitJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

func printSourceList() {
	fmt.Println("Noise sources for use with -source:")
	fmt.Println()
	maxKey := 0
	for _, s := range knownSources {
		if len(s.key) > maxKey {
			maxKey = len(s.key)
		}
	}
	for _, s := range knownSources {
		fmt.Printf("  %-*s  %s\n", maxKey, s.key, s.desc)
	}
	fmt.Println()
}

func usage() {
	fmt.Fprintln(os.Stderr, `noisemap — sample coherent noise on the unit sphere

Usage:
  noisemap [flags] <lat> <lon>
  noisemap -map [flags]
  noisemap -list

Flags:`)
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, `
Examples:
  noisemap 39.64 -106.37
  noisemap -source perlin -seed 7 -json 39.64 -106.37
  noisemap -map -width 720 -height 360 -workers 8
  noisemap -map -south 20 -north 55 -west -130 -east -60 -json
  noisemap -map -west 170 -east 190 -border -1
  noisemap -source const -value 0.5 0 0
  noisemap -config planet.toml -map`)
}

func fatalf(format string, args ...any) {
	log.Fatal().Msgf(format, args...)
}

package noisemap

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Bounds is a lat/lon rectangle in degrees. Longitudes are signed.
type Bounds struct {
	South float64 `json:"south"`
	North float64 `json:"north"`
	West  float64 `json:"west"`
	East  float64 `json:"east"`
}

// Validate reports ErrInvalidParameter for an empty or inverted rectangle.
func (b Bounds) Validate() error {
	if !(b.South < b.North) || !(b.West < b.East) {
		return fmt.Errorf("bounds S=%g N=%g W=%g E=%g: %w", b.South, b.North, b.West, b.East, ErrInvalidParameter)
	}
	return nil
}

// SphereBuilder fills a NoiseMap by sampling a Sphere over a Bounds
// rectangle. Row 0 is the southern edge and column 0 the western edge.
type SphereBuilder struct {
	sphere  *Sphere
	dst     *NoiseMap
	bounds  Bounds
	workers int
	onRow   func(row int)
}

// BuilderOption configures a SphereBuilder.
type BuilderOption func(*SphereBuilder)

// WithWorkers samples rows on n goroutines. The sphere's field must be safe
// for concurrent use when n > 1. Values below 1 are treated as 1.
func WithWorkers(n int) BuilderOption {
	return func(b *SphereBuilder) {
		if n < 1 {
			n = 1
		}
		b.workers = n
	}
}

// WithRowCallback registers fn to be called after each row is written.
// With several workers fn runs on the worker goroutines, so rows may be
// reported out of order and fn must be safe for concurrent calls.
func WithRowCallback(fn func(row int)) BuilderOption {
	return func(b *SphereBuilder) { b.onRow = fn }
}

// NewSphereBuilder returns a builder writing into dst.
func NewSphereBuilder(s *Sphere, dst *NoiseMap, bounds Bounds, opts ...BuilderOption) (*SphereBuilder, error) {
	if s == nil || dst == nil {
		return nil, fmt.Errorf("sphere builder: nil sphere or destination: %w", ErrInvalidParameter)
	}
	if err := bounds.Validate(); err != nil {
		return nil, fmt.Errorf("sphere builder: %w", err)
	}
	b := &SphereBuilder{sphere: s, dst: dst, bounds: bounds, workers: 1}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Bounds returns the sampled rectangle.
func (b *SphereBuilder) Bounds() Bounds { return b.bounds }

// Sample returns the (lat, lon) sampled for cell (x, y) of the destination.
func (b *SphereBuilder) Sample(x, y int) (lat, lon float64) {
	latDelta := (b.bounds.North - b.bounds.South) / float64(b.dst.Height())
	lonDelta := (b.bounds.East - b.bounds.West) / float64(b.dst.Width())
	return b.bounds.South + float64(y)*latDelta, b.bounds.West + float64(x)*lonDelta
}

// Build samples every cell of the destination at its current size.
// Cancellation is checked between rows; rows written before ctx is done
// keep their new values.
func (b *SphereBuilder) Build(ctx context.Context) error {
	height := b.dst.Height()
	workers := min(b.workers, height)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for y := w; y < height; y += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				b.buildRow(y)
				if b.onRow != nil {
					b.onRow(y)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("sphere builder: %w", err)
	}
	return nil
}

func (b *SphereBuilder) buildRow(y int) {
	width := b.dst.Width()
	for x := 0; x < width; x++ {
		lat, lon := b.Sample(x, y)
		b.dst.SetValue(x, y, b.sphere.Value(lat, lon))
	}
}

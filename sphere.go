// Package noisemap maps geographic coordinates onto a unit sphere for
// coherent-noise sampling and stores sampled values in bounded 2D maps.
package noisemap

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sphere is a unit sphere centred at the origin. It projects
// (latitude, longitude) onto its surface and evaluates a Field there.
//
// A Sphere has no state besides its field, so concurrent Value calls are
// safe whenever the field itself is.
type Sphere struct {
	field Field
}

// NewSphere returns a sphere bound to f. It panics if f is nil.
func NewSphere(f Field) *Sphere {
	mustField(f)
	return &Sphere{field: f}
}

// Value returns the field value at (lat°N, lon°E) on the sphere surface.
// Use negative latitudes for the southern hemisphere and negative longitudes
// for the western hemisphere. Inputs outside [-90,90] x [-180,180] are not
// rejected; the projection is periodic.
func (s *Sphere) Value(lat, lon float64) float64 {
	p := s.Point(lat, lon)
	return s.field.Value(p.X, p.Y, p.Z)
}

// Point returns the Cartesian point for (lat°N, lon°E).
// Convention: y is the polar axis, x points at (0°, 0°), z at (0°, 90°E).
func (s *Sphere) Point(lat, lon float64) r3.Vec {
	return sphericalToCartesian(lat, lon)
}

// LatLon inverts Point for any non-zero p, returning (lat°N, lon°E signed).
// p need not be unit length. The origin maps to (0, 0) and the poles report
// longitude 0.
func (s *Sphere) LatLon(p r3.Vec) (lat, lon float64) {
	h := math.Hypot(p.X, p.Z)
	if h == 0 && p.Y == 0 {
		return 0, 0
	}
	lat = toDeg(math.Atan2(p.Y, h))
	if h == 0 {
		return lat, 0
	}
	lon = toDeg(math.Atan2(p.Z, p.X))
	return lat, lon
}

// Field returns the bound field.
func (s *Sphere) Field() Field { return s.field }

// SetField rebinds the sphere. It panics if f is nil.
func (s *Sphere) SetField(f Field) {
	mustField(f)
	s.field = f
}

func sphericalToCartesian(lat, lon float64) r3.Vec {
	φ := toRad(lat)
	λ := toRad(lon)
	r := math.Cos(φ)
	return r3.Vec{
		X: r * math.Cos(λ),
		Y: math.Sin(φ),
		Z: r * math.Sin(λ),
	}
}

func mustField(f Field) {
	if f == nil {
		panic("noisemap: nil Field")
	}
}

// helpers
func toRad(d float64) float64 { return d * math.Pi / 180 }
func toDeg(r float64) float64 { return r * 180 / math.Pi }

// NormLon wraps any longitude into -180..+180. -180 and +180 are both kept
// as given.
func NormLon(lon float64) float64 {
	lon = math.Mod(lon, 360)
	switch {
	case lon > 180:
		return lon - 360
	case lon < -180:
		return lon + 360
	}
	return lon
}

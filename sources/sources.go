// Package sources adapts third-party noise generators to noisemap.Field.
package sources

import (
	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"

	"github.com/geal-ai/noisemap"
)

type simplexField struct {
	noise opensimplex.Noise
}

func (f simplexField) Value(x, y, z float64) float64 { return f.noise.Eval3(x, y, z) }

// OpenSimplex returns 3D OpenSimplex noise in roughly [-1, 1].
func OpenSimplex(seed int64) noisemap.Field {
	return simplexField{noise: opensimplex.New(seed)}
}

// NormalizedOpenSimplex returns 3D OpenSimplex noise in [0, 1).
func NormalizedOpenSimplex(seed int64) noisemap.Field {
	return simplexField{noise: opensimplex.NewNormalized(seed)}
}

type perlinField struct {
	p *perlin.Perlin
}

func (f perlinField) Value(x, y, z float64) float64 { return f.p.Noise3D(x, y, z) }

// Perlin returns 3D Perlin noise. alpha is the weight of each octave (the
// sum is divided by alpha^i), beta the frequency multiplier, and octaves the
// number of iterations.
func Perlin(alpha, beta float64, octaves int32, seed int64) noisemap.Field {
	return perlinField{p: perlin.NewPerlin(alpha, beta, octaves, seed)}
}

// Scale samples f at (x*sx, y*sy, z*sz).
func Scale(f noisemap.Field, sx, sy, sz float64) noisemap.Field {
	return noisemap.FieldFunc(func(x, y, z float64) float64 {
		return f.Value(x*sx, y*sy, z*sz)
	})
}

// Amplify multiplies f by k.
func Amplify(f noisemap.Field, k float64) noisemap.Field {
	return noisemap.FieldFunc(func(x, y, z float64) float64 {
		return f.Value(x, y, z) * k
	})
}

// Bias adds b to f.
func Bias(f noisemap.Field, b float64) noisemap.Field {
	return noisemap.FieldFunc(func(x, y, z float64) float64 {
		return f.Value(x, y, z) + b
	})
}

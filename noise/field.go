// Package noise provides seeded coherent noise fields.
//
// A field is a pure function of its coordinates once constructed. Two fields
// built from the same seed string return bit-identical values; distinct seeds
// give uncorrelated fields. Every result lies in [-1, 1].
package noise

import (
	"github.com/aquilax/go-perlin"
	"github.com/cespare/xxhash/v2"
	"github.com/ojrac/opensimplex-go"
)

// DefaultSeed is used when a field is constructed with an empty seed string.
const DefaultSeed int64 = 0

// Field2D is the minimal surface the contour background needs.
type Field2D interface {
	Eval2(x, y float64) float64
}

// Field is a full coherent noise field.
type Field interface {
	Field2D
	Eval3(x, y, z float64) float64
	Eval4(x, y, z, w float64) float64
}

// SeedFromString maps a seed string to the integer seed fed to the
// permutation tables. The empty string maps to DefaultSeed.
func SeedFromString(seed string) int64 {
	if seed == "" {
		return DefaultSeed
	}
	return int64(xxhash.Sum64String(seed))
}

// Simplex is an OpenSimplex field.
type Simplex struct {
	seed string
	n    opensimplex.Noise
}

// New creates an OpenSimplex field for the given seed.
func New(seed string) *Simplex {
	return &Simplex{
		seed: seed,
		n:    opensimplex.New(SeedFromString(seed)),
	}
}

// Seed returns the seed string the field was built from.
func (s *Simplex) Seed() string { return s.seed }

func (s *Simplex) Eval2(x, y float64) float64 {
	return clamp(s.n.Eval2(x, y))
}

func (s *Simplex) Eval3(x, y, z float64) float64 {
	return clamp(s.n.Eval3(x, y, z))
}

func (s *Simplex) Eval4(x, y, z, w float64) float64 {
	return clamp(s.n.Eval4(x, y, z, w))
}

// Perlin is a fractal Perlin field, used as an alternative background.
type Perlin struct {
	p *perlin.Perlin
}

// NewPerlin creates a Perlin field summing the given number of octaves.
func NewPerlin(seed string, octaves int) *Perlin {
	if octaves < 1 {
		octaves = 1
	}
	return &Perlin{p: perlin.NewPerlin(2, 2, int32(octaves), SeedFromString(seed))}
}

func (p *Perlin) Eval2(x, y float64) float64 {
	return clamp(p.p.Noise2D(x, y))
}

func (p *Perlin) Eval3(x, y, z float64) float64 {
	return clamp(p.p.Noise3D(x, y, z))
}

// Unit remaps a [-1, 1] noise value to [0, 1].
func Unit(v float64) float64 {
	return (v + 1) / 2
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

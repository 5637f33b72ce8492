// Package sampler draws points uniformly on spheres, inside spherical shells
// and across thin disks.
package sampler

import (
	"fmt"
	"math"
	"math/rand"

	"planetcloud/core"
)

// Sampler wraps a deterministic random source.
type Sampler struct {
	rng *rand.Rand
}

// New creates a sampler seeded with seed.
func New(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform value in [0, 1).
func (s *Sampler) Float64() float64 {
	return s.rng.Float64()
}

// Range returns a uniform value in [lo, hi).
func (s *Sampler) Range(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Centered returns a uniform value in [-span/2, span/2).
func (s *Sampler) Centered(span float64) float64 {
	return (s.rng.Float64() - 0.5) * span
}

// Intn returns a uniform int in [0, n).
func (s *Sampler) Intn(n int) int {
	return s.rng.Intn(n)
}

// Angles draws θ uniform in [0, 2π) and φ = acos(2u-1). Drawing φ uniformly
// would cluster points at the poles.
func (s *Sampler) Angles() (theta, phi float64) {
	theta = s.rng.Float64() * 2 * math.Pi
	phi = math.Acos(2*s.rng.Float64() - 1)
	return theta, phi
}

// Direction returns a uniformly distributed unit vector.
func (s *Sampler) Direction() core.Vector3 {
	theta, phi := s.Angles()
	return core.SphericalToCartesian(1, theta, phi)
}

// OnSphere returns a point uniformly distributed on a sphere of radius r.
func (s *Sampler) OnSphere(r float64) core.Vector3 {
	mustRadius(r)
	return s.Direction().Scale(r)
}

// ShellRadius draws rMin + u^p·(rMax-rMin). p = 1 is uniform in radius;
// p > 1 biases toward rMin and p < 1 toward rMax.
func (s *Sampler) ShellRadius(rMin, rMax, p float64) float64 {
	mustShell(rMin, rMax)
	t := s.rng.Float64()
	if p != 1 && p > 0 {
		t = math.Pow(t, p)
	}
	return rMin + t*(rMax-rMin)
}

// InShell returns a point between rMin and rMax along with its radius.
func (s *Sampler) InShell(rMin, rMax, p float64) (core.Vector3, float64) {
	r := s.ShellRadius(rMin, rMax, p)
	return s.Direction().Scale(r), r
}

// Disk returns a point in the XZ plane between rMin and rMax with a vertical
// jitter of the given thickness, plus its radius and azimuth.
func (s *Sampler) Disk(rMin, rMax, p, thickness float64) (pos core.Vector3, r, angle float64) {
	r = s.ShellRadius(rMin, rMax, p)
	angle = s.rng.Float64() * 2 * math.Pi
	pos = core.Vector3{
		X: r * math.Cos(angle),
		Y: s.Centered(thickness),
		Z: r * math.Sin(angle),
	}
	return pos, r, angle
}

func mustRadius(r float64) {
	if !(r > 0) || math.IsInf(r, 0) {
		panic(fmt.Sprintf("sampler: radius must be positive and finite, got %v", r))
	}
}

func mustShell(rMin, rMax float64) {
	mustRadius(rMax)
	if rMin < 0 || rMax < rMin || math.IsNaN(rMin) {
		panic(fmt.Sprintf("sampler: invalid shell [%v, %v]", rMin, rMax))
	}
}

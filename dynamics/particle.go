// Package dynamics holds the per-frame updaters of dynamic point clouds.
//
// Every updater owns exactly one cloud and rewrites its Positions, Colors
// and Sizes in place. Each Update is a full O(n) pass over the cloud; nothing
// is incremental. Buffers are sized once at construction and never
// reallocated.
//
// Update receives the frame clock (one unit per frame). Each updater scales
// it by its own TimeScale, since every body animates on its own clock.
package dynamics

import (
	"math"

	"planetcloud/core"
)

// Updater advances one dynamic cloud.
type Updater interface {
	Cloud() *core.PointCloud
	Update(frame float64)
}

// Particle is one member of a fixed-size pool. Age never leaves [0, MaxLife]
// after an update.
type Particle struct {
	Position core.Vector3
	Velocity core.Vector3
	Age      float64
	MaxLife  float64
	Phase    float64
	Active   bool
}

// Pool is a preallocated particle set mirrored into a cloud.
type Pool struct {
	Particles []Particle
	cloud     *core.PointCloud
}

// NewPool allocates capacity particles and a cloud of the same length.
func NewPool(name string, kind core.CloudKind, capacity int, color core.Color, sized bool) *Pool {
	cloud := core.NewPointCloud(name, kind, capacity)
	cloud.Positions = cloud.Positions[:capacity]
	cloud.Colors = cloud.Colors[:capacity]
	for i := range cloud.Colors {
		cloud.Colors[i] = color
	}
	if sized {
		cloud.Sizes = make([]float64, capacity)
	}
	cloud.Dynamic = true

	return &Pool{
		Particles: make([]Particle, capacity),
		cloud:     cloud,
	}
}

func (p *Pool) Cloud() *core.PointCloud { return p.cloud }

// Capacity is the fixed pool size.
func (p *Pool) Capacity() int { return len(p.Particles) }

// Live counts active particles.
func (p *Pool) Live() int {
	n := 0
	for i := range p.Particles {
		if p.Particles[i].Active {
			n++
		}
	}
	return n
}

// frameClock turns the absolute frame clock into the step since the last
// update. A repeated or rewound clock is a zero step.
type frameClock struct {
	last float64
}

func (c *frameClock) step(frame float64) float64 {
	dt := frame - c.last
	c.last = frame
	return math.Max(0, dt)
}

// restPositions copies a cloud's positions so updaters can work from the
// generated shape every frame.
func restPositions(cloud *core.PointCloud) []core.Vector3 {
	rest := make([]core.Vector3, len(cloud.Positions))
	copy(rest, cloud.Positions)
	return rest
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

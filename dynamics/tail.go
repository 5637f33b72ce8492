package dynamics

import (
	"math"

	"planetcloud/core"
	"planetcloud/sampler"
)

// SodiumTail streams particles away from the sun (toward -X) from a ring
// just behind the planet. Particles fade in, fade out, and respawn in place.
type SodiumTail struct {
	*Pool

	// FarX is the distance past which a particle respawns early.
	FarX     float64
	BaseSize float64

	rng   *sampler.Sampler
	clock frameClock
}

func NewSodiumTail(capacity int, seed int64) *SodiumTail {
	st := &SodiumTail{
		Pool:     NewPool("mercury-sodium-tail", core.KindTail, capacity, core.MustHex("#fff5cc"), true),
		FarX:     -25,
		BaseSize: 0.15,
		rng:      sampler.New(seed),
	}
	st.cloud.Opacity = 0.4
	st.cloud.PointSize = 0.1
	for i := range st.Particles {
		st.respawn(&st.Particles[i], true)
		st.cloud.Positions[i] = st.Particles[i].Position
	}
	return st
}

// respawn resets p on the emission ring. A warm start pre-travels it and
// gives it a random age so the tail is full on the first frame.
func (st *SodiumTail) respawn(p *Particle, warm bool) {
	angle := st.rng.Float64() * 2 * math.Pi
	radius := st.rng.Range(2.0, 4.8)

	p.Position = core.Vector3{
		X: -1.0 - st.rng.Float64()*1.5,
		Y: math.Cos(angle) * radius,
		Z: math.Sin(angle) * radius,
	}
	p.Velocity = core.Vector3{
		X: -0.10 - st.rng.Float64()*0.08,
		Y: st.rng.Centered(0.01),
		Z: st.rng.Centered(0.01),
	}
	p.Age = 0
	p.MaxLife = st.rng.Range(60, 140)
	p.Active = true

	if warm {
		p.Position = p.Position.Add(p.Velocity.Scale(st.rng.Float64() * 120))
		p.Age = math.Floor(st.rng.Float64() * p.MaxLife)
	}
}

func (st *SodiumTail) Update(frame float64) {
	dt := st.clock.step(frame)
	if dt == 0 {
		return
	}
	for i := range st.Particles {
		p := &st.Particles[i]
		p.Position = p.Position.Add(p.Velocity.Scale(dt))
		p.Age = math.Min(p.Age+dt, p.MaxLife)

		if p.Age >= p.MaxLife || p.Position.X < st.FarX {
			st.respawn(p, false)
			st.cloud.Sizes[i] = 0
		} else {
			st.cloud.Sizes[i] = st.BaseSize * st.fade(p)
		}
		st.cloud.Positions[i] = p.Position
	}
}

func (st *SodiumTail) fade(p *Particle) float64 {
	progress := p.Age / p.MaxLife
	var f float64
	if progress < 0.15 {
		f = progress / 0.15
	} else {
		f = 1 - (progress-0.15)/0.85
	}
	// soften particles still behind the planet
	if p.Position.X > -3 {
		f *= 0.8
	}
	return f
}

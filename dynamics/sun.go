package dynamics

import (
	"math"

	"planetcloud/core"
	"planetcloud/noise"
	"planetcloud/sampler"
)

var (
	solarCore    = core.MustHex("#ffffff")
	solarSurface = core.MustHex("#ffb84d")
	solarEdge    = core.MustHex("#cc4400")
	solarSpot    = core.MustHex("#8a1c00")
)

// Photosphere recolors and pulses the star's surface from two drifting
// noise terms and darkens the limb.
type Photosphere struct {
	TimeScale float64
	Radius    float64
	Facing    core.Vector3 // unit direction toward the viewer, in the cloud's frame

	cloud *core.PointCloud
	rest  []core.Vector3
	field noise.Field
}

func NewPhotosphere(cloud *core.PointCloud, field noise.Field, radius float64) *Photosphere {
	cloud.Dynamic = true
	return &Photosphere{
		TimeScale: 0.005,
		Radius:    radius,
		Facing:    core.Vector3{Z: 1},
		cloud:     cloud,
		rest:      restPositions(cloud),
		field:     field,
	}
}

func (p *Photosphere) Cloud() *core.PointCloud { return p.cloud }

func (p *Photosphere) Update(frame float64) {
	t := frame * p.TimeScale
	for i, r := range p.rest {
		n := p.field.Eval3(r.X*0.4, r.Y*0.4, r.Z*0.4+t*0.3)
		n += 0.5 * p.field.Eval3(r.X*1.5, r.Y*1.5, r.Z*1.5-t*0.5)

		c := PhotosphereColor(n)
		if limb := r.Dot(p.Facing) / p.Radius; limb < 0.5 {
			c = core.Lerp(c, solarSpot, clamp01((0.5-limb)*1.5))
		}

		p.cloud.Colors[i] = c
		p.cloud.Positions[i] = r.Scale(1 + n*0.05)
	}
}

// PhotosphereColor maps granulation noise to the four-stop solar palette.
func PhotosphereColor(n float64) core.Color {
	switch {
	case n > 0.6:
		return solarCore
	case n > 0:
		return core.Lerp(solarSurface, solarCore, n)
	case n > -0.5:
		return core.Lerp(solarEdge, solarSurface, (n+0.5)*2)
	default:
		return core.Lerp(solarSpot, solarEdge, clamp01((n+1)*2))
	}
}

// Corona pushes particles outward along their birth direction with 4D
// turbulence, snapping them back to BaseRadius once past MaxRadius.
type Corona struct {
	TimeScale  float64
	BaseRadius float64
	MaxRadius  float64

	cloud      *core.PointCloud
	directions []core.Vector3
	speeds     []float64
	field      noise.Field
	clock      frameClock
}

func NewCorona(cloud *core.PointCloud, field noise.Field, seed int64) *Corona {
	s := sampler.New(seed)
	c := &Corona{
		TimeScale:  0.005,
		BaseRadius: 5.1,
		MaxRadius:  8.1,
		cloud:      cloud,
		directions: make([]core.Vector3, cloud.Len()),
		speeds:     make([]float64, cloud.Len()),
		field:      field,
	}
	cloud.Dynamic = true
	if cloud.Sizes == nil {
		cloud.Sizes = make([]float64, cloud.Len())
		for i, p := range cloud.Positions {
			d := clamp01((p.Length() - 6.1) / 3.0)
			cloud.Sizes[i] = 0.18 * (1 - d*0.5)
		}
	}
	for i, p := range cloud.Positions {
		c.directions[i] = p.Normalize()
		c.speeds[i] = s.Range(0.003, 0.01)
	}
	return c
}

func (c *Corona) Cloud() *core.PointCloud { return c.cloud }

func (c *Corona) Update(frame float64) {
	dt := c.clock.step(frame)
	if dt == 0 {
		return
	}
	t := frame * c.TimeScale
	tw := t * 0.5
	for i := range c.cloud.Positions {
		p := c.cloud.Positions[i]
		dir := c.directions[i]

		turb := core.Vector3{
			X: c.field.Eval4(p.X*0.5, p.Y*0.5, p.Z*0.5, tw),
			Y: c.field.Eval4(p.Y*0.5, p.Z*0.5, p.X*0.5, tw+100),
			Z: c.field.Eval4(p.Z*0.5, p.X*0.5, p.Y*0.5, tw+200),
		}.Scale(0.03 * dt)

		speed := c.speeds[i] * (1 + math.Sin(t+float64(i))*0.3)
		p = p.Add(dir.Scale(speed * dt)).Add(turb)

		if p.Length() > c.MaxRadius {
			p = dir.Scale(c.BaseRadius)
		}
		c.cloud.Positions[i] = p
	}
}

// Eruptions is a fixed pool of ejecta. Each frame a batch may launch from a
// random surface point; live particles fall back under gravity with drag and
// turbulence and cool from white to deep red.
type Eruptions struct {
	*Pool

	TimeScale   float64
	Radius      float64 // launch radius
	FloorRadius float64 // particles below this are absorbed
	Trigger     float64 // chance per frame
	SlowMo      float64
	Gravity     float64
	Drag        float64

	rng   *sampler.Sampler
	field noise.Field
	hot   core.Color
	mid   core.Color
	cool  core.Color
	clock frameClock
}

func NewEruptions(capacity int, field noise.Field, seed int64) *Eruptions {
	return &Eruptions{
		Pool:        NewPool("sun-eruptions", core.KindEruption, capacity, solarCore, false),
		TimeScale:   0.005,
		Radius:      6.0,
		FloorRadius: 5.8,
		Trigger:     0.005,
		SlowMo:      0.15,
		Gravity:     0.002,
		Drag:        0.003,
		rng:         sampler.New(seed),
		field:       field,
		hot:         solarCore,
		mid:         core.MustHex("#ffcc00"),
		cool:        solarSpot,
	}
}

// Launch activates up to 60-99 idle particles around one surface point and
// returns how many it launched.
func (e *Eruptions) Launch() int {
	normal := e.rng.Direction()
	start := normal.Scale(e.Radius)
	batch := 60 + e.rng.Intn(40)

	launched := 0
	for i := range e.Particles {
		if launched >= batch {
			break
		}
		p := &e.Particles[i]
		if p.Active {
			continue
		}
		offset := core.Vector3{X: e.rng.Centered(1), Y: e.rng.Centered(1), Z: e.rng.Centered(1)}.Scale(0.2)
		spread := core.Vector3{X: e.rng.Centered(1), Y: e.rng.Centered(1), Z: e.rng.Centered(1)}.Scale(0.02)

		p.Active = true
		p.Age = 0
		p.MaxLife = e.rng.Range(300, 500)
		p.Position = start.Add(offset)
		p.Velocity = normal.Scale(e.rng.Range(0.05, 0.09)).Add(spread)
		e.cloud.Positions[i] = p.Position
		launched++
	}
	return launched
}

func (e *Eruptions) Update(frame float64) {
	dt := e.clock.step(frame)
	if dt == 0 {
		return
	}
	if e.rng.Float64() < e.Trigger*dt {
		e.Launch()
	}

	t := frame * e.TimeScale
	slow := e.SlowMo * dt
	for i := range e.Particles {
		p := &e.Particles[i]
		if !p.Active {
			continue
		}

		p.Position = p.Position.Add(p.Velocity.Scale(slow))
		c := p.Position
		dist := c.Length()

		turb := core.Vector3{
			X: e.field.Eval4(c.X*0.5, c.Y*0.5, c.Z*0.5, t),
			Y: e.field.Eval4(c.Y*0.5, c.Z*0.5, c.X*0.5, t+100),
			Z: e.field.Eval4(c.Z*0.5, c.X*0.5, c.Y*0.5, t+200),
		}.Scale(0.003 * slow)
		p.Velocity = p.Velocity.Add(turb)
		p.Velocity = p.Velocity.Add(c.Scale(-1).Normalize().Scale(e.Gravity * slow))
		p.Velocity = p.Velocity.Scale(math.Pow(1-e.Drag*e.SlowMo, dt))

		p.Age = math.Min(p.Age+slow, p.MaxLife)
		progress := p.Age / p.MaxLife
		if progress < 0.15 {
			e.cloud.Colors[i] = core.Lerp(e.hot, e.mid, progress/0.15)
		} else {
			e.cloud.Colors[i] = core.Lerp(e.mid, e.cool, (progress-0.15)/0.85)
		}

		if p.Age >= p.MaxLife || dist < e.FloorRadius {
			p.Active = false
			p.Position = core.Vector3{}
		}
		e.cloud.Positions[i] = p.Position
	}
}

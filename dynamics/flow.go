package dynamics

import (
	"math"

	"planetcloud/body"
	"planetcloud/core"
	"planetcloud/noise"
)

// Vortex turns a storm spot layer into a rotating flow. Each particle keeps
// the distance and swirl angle it was generated with and circles the
// center on an ellipse, faster near the eye. The lens height breathes.
type Vortex struct {
	TimeScale float64
	Region    body.SpotRegion
	Lens      float64 // lens bulge height at the center
	Breath    float64

	cloud  *core.PointCloud
	dist   []float64
	angle  []float64
	speeds []float64
	clock  frameClock
}

// NewVortex recovers each particle's (distance, angle) from its position
// relative to region.
func NewVortex(cloud *core.PointCloud, region body.SpotRegion) *Vortex {
	v := &Vortex{
		TimeScale: 1.0 / 60,
		Region:    region,
		Lens:      0.06,
		Breath:    0.002,
		cloud:     cloud,
		dist:      make([]float64, cloud.Len()),
		angle:     make([]float64, cloud.Len()),
		speeds:    make([]float64, cloud.Len()),
	}
	cloud.Dynamic = true

	for i, p := range cloud.Positions {
		g := core.CartesianToGeographic(p, region.Radius)
		sinPart := (g.Lat - region.Lat) / (region.Extent * region.Height)
		cosPart := (g.Lon - region.Lon) / (region.Extent * region.Width)
		d := math.Min(1, math.Hypot(sinPart, cosPart))

		v.dist[i] = d
		v.angle[i] = math.Atan2(sinPart, cosPart)
		v.speeds[i] = (1-d)*0.02 + 0.005
	}
	return v
}

func (v *Vortex) Cloud() *core.PointCloud { return v.cloud }

func (v *Vortex) Update(frame float64) {
	dt := v.clock.step(frame)
	if dt == 0 {
		return
	}
	t := frame * v.TimeScale
	r := v.Region
	for i := range v.cloud.Positions {
		v.angle[i] += v.speeds[i] * dt
		d := v.dist[i]

		g := core.Geographic{
			Lat: r.Lat + math.Sin(v.angle[i])*d*r.Extent*r.Height,
			Lon: r.Lon + math.Cos(v.angle[i])*d*r.Extent*r.Width,
			Alt: LensHeight(d, v.Lens) + math.Sin(t*2+d*5)*v.Breath,
		}
		v.cloud.Positions[i] = core.GeographicToCartesian(g, r.Radius)
	}
}

// LensHeight is the bulge of a storm at normalized distance d from its eye.
func LensHeight(d, peak float64) float64 {
	return math.Cos(d*math.Pi/2) * peak
}

// CloudFlow modulates the brightness of a uniform cloud deck with noise
// drifting along the diagonal.
type CloudFlow struct {
	TimeScale float64
	Freq      float64
	Amplitude float64
	Base      core.Color

	cloud *core.PointCloud
	field noise.Field
}

func NewCloudFlow(cloud *core.PointCloud, field noise.Field, base core.Color) *CloudFlow {
	cloud.Dynamic = true
	return &CloudFlow{
		TimeScale: 0.05 / 60,
		Freq:      0.2,
		Amplitude: 0.25,
		Base:      base,
		cloud:     cloud,
		field:     field,
	}
}

func (f *CloudFlow) Cloud() *core.PointCloud { return f.cloud }

func (f *CloudFlow) Update(frame float64) {
	t := frame * f.TimeScale
	for i, p := range f.cloud.Positions {
		n := f.field.Eval3(p.X*f.Freq+t, p.Y*f.Freq+t, p.Z*f.Freq+t)
		f.cloud.Colors[i] = core.ScaleColor(f.Base, 1+n*f.Amplitude)
	}
}

// RingShear rotates every ring particle about Y by -t·K·r^Exponent from its
// rest position, so inner ringlets lap outer ones.
type RingShear struct {
	TimeScale float64
	K         float64
	Exponent  float64

	cloud *core.PointCloud
	rest  []core.Vector3
	radii []float64
}

func NewRingShear(cloud *core.PointCloud) *RingShear {
	rs := &RingShear{
		TimeScale: 0.002,
		K:         12,
		Exponent:  -1.4,
		cloud:     cloud,
		rest:      restPositions(cloud),
		radii:     make([]float64, cloud.Len()),
	}
	cloud.Dynamic = true
	for i, p := range rs.rest {
		rs.radii[i] = math.Hypot(p.X, p.Z)
	}
	return rs
}

func (rs *RingShear) Cloud() *core.PointCloud { return rs.cloud }

func (rs *RingShear) Update(frame float64) {
	t := frame * rs.TimeScale
	for i, p := range rs.rest {
		angle := rs.Angle(t, rs.radii[i])
		c, s := math.Cos(angle), math.Sin(angle)
		rs.cloud.Positions[i] = core.Vector3{
			X: p.X*c - p.Z*s,
			Y: p.Y,
			Z: p.X*s + p.Z*c,
		}
	}
}

// Angle is the shear rotation at radius r and scaled time t.
func (rs *RingShear) Angle(t, r float64) float64 {
	if r <= 0 {
		return 0
	}
	return -t * rs.K * math.Pow(r, rs.Exponent)
}

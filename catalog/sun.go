package catalog

import (
	"planetcloud/body"
	"planetcloud/core"
	"planetcloud/dynamics"
	"planetcloud/kinematics"
	"planetcloud/noise"
	"planetcloud/sampler"
	"planetcloud/system"
)

const sunSeed = "sol-core-v1"

func buildSun(seed int64) (*system.System, error) {
	field := noise.New(sunSeed)

	photosphere := sphere("sun-photosphere", core.KindSurface, 30000, 6)
	photosphere.NoiseSeed = sunSeed
	photosphere.Terms = []body.NoiseTerm{body.Isotropic(0.4, 1), body.Isotropic(1.5, 0.5)}
	photosphere.Classify = func(s *body.Sample, _ core.Color) core.Color {
		return dynamics.PhotosphereColor(s.Value)
	}
	photosphere.PointSize, photosphere.Opacity = 0.09, 0.95
	photosphere.Dynamic = true

	coreLayer := shell("sun-core", core.KindCore, 5000, 4.0, 5.5)
	coreLayer.Value = func(s *body.Sample) float64 { return (s.Radius - 4.0) / 1.5 }
	coreLayer.Bands = []body.ColorBand{band(0, 1, "#ffffff", "#ffb84d")}
	coreLayer.PointSize, coreLayer.Opacity = 0.12, 0.85

	corona := shell("sun-corona", core.KindCorona, 6000, 6.1, 9.1)
	corona.Bias = 1.5
	corona.Value = func(s *body.Sample) float64 { return (s.Radius - 6.1) / 3.0 }
	corona.Bands = []body.ColorBand{band(0, 1, "#ffcc66", "#cc4400")}
	corona.Jitter = [2]float64{0.8, 1.2}
	corona.PointSize, corona.Opacity = 0.1, 0.4
	corona.Dynamic = true

	clouds, err := layers(body.BodySpec{
		Name:   "sun",
		Seed:   seed,
		Layers: []body.Layer{photosphere, coreLayer, corona},
	})
	if err != nil {
		return nil, err
	}

	b := kinematics.NewBody("sun", 6, 0, 0, 0.001)
	s := system.New("sun", b, 30)

	s.Attach(clouds["sun-photosphere"], b.Spin.Node)
	s.AddUpdater(dynamics.NewPhotosphere(clouds["sun-photosphere"], field, 6))

	coreNode := b.AddRotor("sun-core-spin", b.Spin.Node, 0.002)
	s.Attach(clouds["sun-core"], coreNode)

	s.Attach(clouds["sun-corona"], b.Spin.Node)
	s.AddUpdater(dynamics.NewCorona(clouds["sun-corona"], field, seed+1))

	eruptions := dynamics.NewEruptions(2000, field, seed+2)
	eruptions.Cloud().PointSize, eruptions.Cloud().Opacity = 0.15, 0.95
	s.Attach(eruptions.Cloud(), b.Spin.Node)
	s.AddUpdater(eruptions)

	s.Attach(magneticLoops(seed+3), b.Spin.Node)

	inner := b.AddRotor("sun-grid-inner", b.Spin.Node, 0.0005)
	outer := b.AddRotor("sun-grid-outer", b.Spin.Node, -0.0005)
	grid(s, inner, 6.0, 24, 24, "#ffb84d", 0.15)
	grid(s, outer, 6.5, 32, 32, "#cc4400", 0.05)

	return s, nil
}

// magneticLoops samples 12 cubic bezier arcs between nearby surface points,
// 61 points each.
func magneticLoops(seed int64) *core.PointCloud {
	const (
		count  = 12
		steps  = 60
		radius = 5.8
	)
	rng := sampler.New(seed)
	palette := []core.Color{core.MustHex("#e06236"), core.MustHex("#ffb84d"), core.MustHex("#cc4400")}

	cloud := core.NewPointCloud("sun-magnetic-loops", core.KindLoop, count*(steps+1))
	cloud.PointSize, cloud.Opacity = 0.05, 0.6

	for i := 0; i < count; i++ {
		p1 := rng.OnSphere(radius)
		offset := core.Vector3{X: rng.Centered(3), Y: rng.Centered(3), Z: rng.Centered(3)}
		p2 := p1.Add(offset).Normalize().Scale(radius)
		mid := p1.Add(p2).Scale(0.5).Normalize().Scale(radius * rng.Range(1.3, 1.8))

		c1 := p1.Lerp(mid, 0.5)
		c2 := p2.Lerp(mid, 0.5)

		color := palette[0]
		switch pick := rng.Float64(); {
		case pick > 0.6:
			color = palette[1]
		case pick < 0.3:
			color = palette[2]
		}

		for k := 0; k <= steps; k++ {
			cloud.Append(bezier(p1, c1, c2, p2, float64(k)/steps), color)
		}
	}
	return cloud
}

func bezier(p0, p1, p2, p3 core.Vector3, t float64) core.Vector3 {
	u := 1 - t
	return p0.Scale(u * u * u).
		Add(p1.Scale(3 * u * u * t)).
		Add(p2.Scale(3 * u * t * t)).
		Add(p3.Scale(t * t * t))
}

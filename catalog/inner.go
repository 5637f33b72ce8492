package catalog

import (
	"math"

	"planetcloud/body"
	"planetcloud/core"
	"planetcloud/dynamics"
	"planetcloud/kinematics"
	"planetcloud/noise"
	"planetcloud/system"
)

func buildMercury(seed int64) (*system.System, error) {
	dark := core.ScaleColor(core.MustHex("#555555"), 0.8)
	light := core.Lerp(core.MustHex("#cccccc"), core.MustHex("#999999"), 0.3)

	surface := sphere("mercury-surface", core.KindSurface, 45000, 5)
	surface.NoiseSeed = "mercury-surface"
	surface.Terms = []body.NoiseTerm{
		body.Isotropic(0.4, 1),
		{Freq: core.Vector3{X: 2, Y: 2, Z: 2}, Abs: true, Power: 1.2, Invert: true},
	}
	surface.Height = func(s *body.Sample) float64 {
		return s.Terms[0]*0.06 - s.Terms[1]*0.08
	}
	surface.Base = core.MustHex("#999999")
	surface.Classify = func(s *body.Sample, c core.Color) core.Color {
		switch {
		case s.Terms[1] > 0.6:
			return dark
		case s.Terms[0] > 0.2:
			return light
		}
		return c
	}
	surface.Jitter = [2]float64{0.9, 1.1}
	surface.PointSize, surface.Opacity = 0.05, 0.95

	clouds, err := layers(body.BodySpec{Name: "mercury", Seed: seed, Layers: []body.Layer{surface}})
	if err != nil {
		return nil, err
	}

	b := kinematics.NewBody("mercury", 5, 0, deg(0.03), 0.0003)
	s := system.New("mercury", b, 28)
	s.SetViewRotation(0.2, -0.6)

	s.Attach(clouds["mercury-surface"], b.Spin.Node)
	grid(s, b.Spin.Node, 5.02, 24, 12, "#aaaaaa", 0.08)

	tail := dynamics.NewSodiumTail(1200, seed+1)
	s.Attach(tail.Cloud(), b.Tilt)
	s.AddUpdater(tail)

	return s, nil
}

func buildVenus(seed int64) (*system.System, error) {
	const coreRadius = 5.0
	cloudBase := core.MustHex("#ffae20")

	surface := sphere("venus-surface", core.KindSurface, 40000, coreRadius)
	surface.NoiseSeed = "venus-magma-chaos-rock"
	surface.Terms = []body.NoiseTerm{
		body.Isotropic(1.5, 0.8),
		body.Isotropic(4, 0.2),
		body.Isotropic(0.2, 0),
	}
	surface.Normalize = true
	surface.Height = func(s *body.Sample) float64 { return s.Terms[2] * 0.005 }
	surface.Bands = []body.ColorBand{
		band(0, 0.5, "#8b1a1a", "#d9531e"),
		band(0.5, 1, "#d9531e", "#ffe0a0"),
	}
	surface.Jitter = [2]float64{0.9, 1.1}
	surface.PointSize, surface.Opacity = 0.055, 0.95

	atmosphere := shell("venus-clouds", core.KindAtmosphere, 45000, coreRadius, coreRadius+0.4)
	atmosphere.Base = cloudBase
	atmosphere.Jitter = [2]float64{0.9, 1.1}
	atmosphere.PointSize, atmosphere.Opacity = 0.06, 0.2
	atmosphere.Dynamic = true

	clouds, err := layers(body.BodySpec{Name: "venus", Seed: seed, Layers: []body.Layer{surface, atmosphere}})
	if err != nil {
		return nil, err
	}

	b := kinematics.NewBody("venus", coreRadius, 0, deg(177), -0.0002)
	s := system.New("venus", b, 25)
	s.SetViewRotation(-0.2, 0)

	s.Attach(clouds["venus-surface"], b.Spin.Node)

	cloudNode := b.AddRotor("venus-cloud-spin", b.Tilt, -0.0015)
	s.Attach(clouds["venus-clouds"], cloudNode)
	s.AddUpdater(dynamics.NewCloudFlow(clouds["venus-clouds"], noise.New("venus-atmosphere-flow"), cloudBase))
	grid(s, b.Tilt, coreRadius+0.1, 24, 12, "#ffc140", 0.05)

	// The cloud deck is what the viewer sees, so telemetry follows it.
	s.Telemetry = cloudNode
	s.SignFactor = 2

	return s, nil
}

func buildEarth(seed int64) (*system.System, error) {
	land := sphere("earth-land", core.KindSurface, 60000, 5)
	land.NoiseSeed = "seed-terra-firma-v2"
	land.Terms = []body.NoiseTerm{body.Isotropic(0.15, 1.2), body.Isotropic(0.6, 0.25)}
	land.Survival = func(s *body.Sample) float64 { return step(s.Raw > 0.1) }
	land.Value = func(s *body.Sample) float64 { return (s.Raw - 0.1) * 1.2 }
	land.Height = func(s *body.Sample) float64 { return math.Max(0, s.Value) * 0.06 }
	land.Bands = []body.ColorBand{
		band(0, 0.5, "#3e6b48", "#9abf8a"),
		band(0.5, 1.0, "#9abf8a", "#ffffff"),
	}
	land.PointSize, land.Opacity = 0.045, 0.9

	cloudLayer := shell("earth-clouds", core.KindAtmosphere, 20000, 5.2, 5.3)
	cloudLayer.NoiseSeed = "cloud-layer-v3"
	cloudLayer.Terms = []body.NoiseTerm{
		{Freq: core.Vector3{X: 0.15, Y: 0.1, Z: 0.15}, Weight: 1},
		body.Isotropic(0.8, 0.4),
	}
	cloudLayer.Survival = func(s *body.Sample) float64 { return step(s.Raw > 0.3) }
	cloudLayer.Base = core.MustHex("#ffffff")
	cloudLayer.PointSize, cloudLayer.Opacity = 0.06, 0.35

	moon := sphere("luna", core.KindMoon, 1200, 0.8)
	moon.NoiseSeed = "luna-v2-refined"
	moon.Terms = []body.NoiseTerm{body.Isotropic(2.5, 1), body.Isotropic(6, 0.3)}
	moon.Normalize = true
	moon.Bands = []body.ColorBand{
		band(0, 0.45, "#1f242b", "#7a7e85"),
		band(0.45, 1, "#7a7e85", "#e6e8eb"),
	}
	moon.PointSize = 0.045

	clouds, err := layers(body.BodySpec{Name: "earth", Seed: seed, Layers: []body.Layer{land, cloudLayer, moon}})
	if err != nil {
		return nil, err
	}

	b := kinematics.NewBody("earth", 5, 0, deg(23.44), 0.0015)
	s := system.New("earth", b, 25)
	s.SetViewRotation(0.2, 0)

	s.Attach(clouds["earth-land"], b.Spin.Node)
	grid(s, b.Spin.Node, 5, 24, 24, "#3b4e6b", 0.08)

	cloudNode := b.AddRotor("earth-cloud-spin", b.Spin.Node, 0.0005)
	s.Attach(clouds["earth-clouds"], cloudNode)

	leo := []struct {
		radius, speed, incline float64
		color                  string
	}{
		{6.0, 0.005, 0, "#ffffff"},
		{6.5, -0.003, math.Pi / 2, "#e06236"},
		{5.8, 0.006, math.Pi / 4, "#7da5c6"},
		{7.0, 0.002, -math.Pi / 6, "#ffffff"},
	}
	for i, sat := range leo {
		m := b.AddMoon(kinematics.NewMoon(leoName(i), b.Tilt,
			kinematics.Orbit{Radius: sat.radius, Speed: sat.speed, Angle: float64(i) * 1.7}, 0.05))
		m.Incline(0, sat.incline)
		m.Spin.Rate = 0.02
		m.Roll = true
		grid(s, m.Node, 0.05, 4, 2, sat.color, 1)
		s.AddWire(m.Pivot, sat.color, 0.15, core.OrbitPath(sat.radius, sat.radius, 64))
	}

	luna := b.AddMoon(kinematics.NewMoon("luna", b.View, kinematics.Orbit{Radius: 8.5, Speed: 0.0002}, 0.8))
	luna.Incline(0, deg(5.14))
	luna.Lock = &kinematics.TidalLock{}
	s.Attach(clouds["luna"], luna.Node)
	grid(s, luna.Node, 0.8, 16, 16, "#5d6d7e", 0.15)
	s.AddWire(luna.Pivot, "#aaaaaa", 0.08, core.OrbitPath(8.5, 8.5, 128))

	return s, nil
}

func leoName(i int) string {
	return "earth-leo-" + string(rune('a'+i))
}

func buildMars(seed int64) (*system.System, error) {
	const r = 5.0
	crater := core.MustHex("#6b433c")
	highland := core.Lerp(core.MustHex("#d98c6b"), core.MustHex("#94544d"), 0.3)

	canyon := func(p core.Vector3) float64 {
		if p.X > 0 && math.Abs(p.Y) < 0.5 {
			return math.Abs(p.Z / r)
		}
		return 0
	}

	surface := sphere("mars-surface", core.KindSurface, 50000, r)
	surface.NoiseSeed = "mars-craters-dust"
	surface.Terms = []body.NoiseTerm{
		body.Isotropic(0.3, 1),
		body.Isotropic(1.5, 0),
		{Freq: core.Vector3{X: 2.5, Y: 2.5, Z: 2.5}, Abs: true},
	}
	surface.Height = func(s *body.Sample) float64 {
		return 0.04*s.Terms[0] + 0.02*s.Terms[1] - 0.05*s.Terms[2] - 0.03*canyon(s.Pos)
	}
	surface.Base = core.MustHex("#94544d")
	surface.Classify = func(s *body.Sample, c core.Color) core.Color {
		switch {
		case s.Terms[2] > 0.7:
			return crater
		case noise.Unit(s.Terms[0]) > 0.6 || canyon(s.Pos) > 0.1:
			return highland
		}
		return c
	}
	surface.Jitter = [2]float64{0.9, 1.1}
	surface.PointSize, surface.Opacity = 0.05, 0.95

	atmosphere := shell("mars-atmosphere", core.KindAtmosphere, 15000, 5.1, 5.4)
	atmosphere.Base = core.MustHex("#ffc840")
	atmosphere.Jitter = [2]float64{0.5, 1.0}
	atmosphere.PointSize, atmosphere.Opacity = 0.04, 0.15

	clouds, err := layers(body.BodySpec{Name: "mars", Seed: seed, Layers: []body.Layer{surface, atmosphere}})
	if err != nil {
		return nil, err
	}

	b := kinematics.NewBody("mars", r, 0, deg(25.19), 0.0025)
	s := system.New("mars", b, 30)
	s.SetViewRotation(0.2, 0)

	s.Attach(clouds["mars-surface"], b.Spin.Node)
	grid(s, b.Spin.Node, r+0.02, 24, 12, "#d98c6b", 0.06)
	atmoNode := b.AddRotor("mars-atmosphere-spin", b.Tilt, 0.003)
	s.Attach(clouds["mars-atmosphere"], atmoNode)

	if err := addMoons(s, b.Tilt, seed+1, []moonSpec{
		{Name: "phobos", Orbit: 7.5, Speed: 0.008, Size: 0.25, Color: "#8c7b70", Major: true, Points: 600, Detail: 4, Incline: 0.05},
		{Name: "deimos", Orbit: 12, Speed: 0.003, Size: 0.18, Color: "#a09080", Major: true, Points: 400, Detail: 4, Incline: 0.05},
	}); err != nil {
		return nil, err
	}
	for _, m := range b.Moons {
		m.Spin.Rate = 0.005
		m.Tumble = core.Vector3{X: 0.003}
	}

	return s, nil
}

// step is a hard survival threshold.
func step(keep bool) float64 {
	if keep {
		return 1
	}
	return 0
}

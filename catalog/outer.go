package catalog

import (
	"math"

	"planetcloud/body"
	"planetcloud/core"
	"planetcloud/dynamics"
	"planetcloud/kinematics"
	"planetcloud/sampler"
	"planetcloud/system"
)

func disk(name string, count int, rMin, rMax, thickness float64) body.Layer {
	return body.Layer{
		Name: name, Kind: core.KindRing, Count: count, Shape: body.ShapeDisk,
		RadiusMin: rMin, RadiusMax: rMax, Thickness: thickness,
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func buildJupiter(seed int64) (*system.System, error) {
	zoneLight := core.MustHex("#f0e2c2")
	zoneDark := core.MustHex("#d6c7a5")
	beltBase := core.MustHex("#c28266")
	beltDeep := core.MustHex("#8a3f2d")
	polar := core.MustHex("#787878")

	surface := shell("jupiter-surface", core.KindSurface, 45000, 6.45, 6.55)
	surface.NoiseSeed = "jupiter-ultimate-final"
	surface.Terms = []body.NoiseTerm{{Freq: core.Vector3{X: 1, Y: 0.3, Z: 1}, Weight: 1}}
	surface.Classify = func(s *body.Sample, _ core.Color) core.Color {
		lat := s.Pos.Y / 6.5
		stretched := sign(lat) * math.Pow(math.Abs(lat), 1.4)
		n := s.Terms[0]
		signal := math.Sin(stretched*12 + n*1.2)
		dist := math.Abs(lat)

		var c core.Color
		switch {
		case dist > 0.85:
			c = core.ScaleColor(core.Lerp(zoneDark, polar, (dist-0.85)*4), s.Rand.Range(0.9, 1.1))
		case signal > 0.1:
			brightness := signal
			if dist < 0.15 {
				brightness = 1
			}
			c = core.Lerp(zoneDark, zoneLight, brightness*0.8)
			if n > 0.6 {
				c = core.Lerp(c, beltBase, 0.15)
			}
		case dist > 0.15 && dist < 0.45:
			c = core.Lerp(beltBase, beltDeep, math.Abs(signal)*0.8+0.2)
		default:
			c = core.Lerp(beltBase, beltDeep, math.Abs(signal)*0.5)
		}

		depth := (s.Radius - 6.45) / 0.1
		return core.ScaleColor(c, 0.8+depth*0.4)
	}
	surface.PointSize, surface.Opacity = 0.07, 0.95

	haze := shell("jupiter-haze", core.KindHaze, 25000, 6.6, 6.8)
	haze.Base = core.Lerp(core.MustHex("#ffffff"), core.MustHex("#ffcc00"), 0.2)
	haze.PointSize, haze.Opacity = 0.1, 0.25

	region := body.SpotRegion{
		Lat: deg(-22), Lon: 0.5,
		Width: 1.6, Height: 1.0,
		Extent: 0.22, Exponent: 0.6,
		Radius: 6.5,
	}
	spotCore := core.MustHex("#8a3f2d")
	eye := core.MustHex("#c25e40")
	swirl := core.MustHex("#e3dccb")
	merge := core.MustHex("#8c4e38")

	storm := body.Layer{
		Name:      "jupiter-grs",
		Kind:      core.KindStorm,
		Count:     3500,
		NoiseSeed: "grs-vortex-final",
		Shape:     body.ShapeSpot,
		Spot:      &region,
		Terms:     []body.NoiseTerm{body.Isotropic(2, 1)},
		Survival: func(s *body.Sample) float64 {
			if s.Dist > 0.8 {
				return 0.6
			}
			return 1
		},
		Height: func(s *body.Sample) float64 { return dynamics.LensHeight(s.Dist, 0.06) },
		Classify: func(s *body.Sample, _ core.Color) core.Color {
			n := s.Terms[0]
			if s.Dist < 0.7 {
				c := core.Lerp(spotCore, eye, n*0.5+0.5)
				if math.Sin(s.Dist*10+s.Angle*2+n*2) > 0.6 {
					c = core.Lerp(c, swirl, 0.4)
				}
				return c
			}
			f := (s.Dist - 0.7) / 0.3
			return core.ScaleColor(core.Lerp(spotCore, merge, f), 1-f*0.3)
		},
		PointSize: 0.05,
		Opacity:   0.9,
		Dynamic:   true,
	}

	rock := core.MustHex("#333333")
	rust := core.MustHex("#4a3c31")
	rings := disk("jupiter-rings", 7000, 14.2, 16.8, 0.12)
	rings.Bias = 1.2
	rings.Classify = func(s *body.Sample, _ core.Color) core.Color {
		return core.Lerp(rock, rust, s.Rand.Float64())
	}
	rings.Jitter = [2]float64{0.8, 1.2}
	rings.PointSize, rings.Opacity = 0.06, 0.6

	clouds, err := layers(body.BodySpec{
		Name:   "jupiter",
		Seed:   seed,
		Layers: []body.Layer{surface, haze, storm, rings},
	})
	if err != nil {
		return nil, err
	}

	b := kinematics.NewBody("jupiter", 6.5, 0, deg(3.13), 0.0025)
	s := system.New("jupiter", b, 38)
	s.SetViewRotation(0.2, 0)

	s.Attach(clouds["jupiter-surface"], b.Spin.Node)
	s.Attach(clouds["jupiter-haze"], b.Spin.Node)
	grid(s, b.Spin.Node, 6.6, 24, 12, "#c29b61", 0.04)

	drift := b.AddRotor("jupiter-grs-drift", b.Spin.Node, -0.0004)
	s.Attach(clouds["jupiter-grs"], drift)
	s.AddUpdater(dynamics.NewVortex(clouds["jupiter-grs"], region))

	s.Attach(clouds["jupiter-rings"], b.Spin.Node)

	if err := addMoons(s, b.Tilt, seed+1, []moonSpec{
		{Name: "metis", Orbit: 6.7, Speed: 0.035, Size: 0.04, Color: "#aa5555"},
		{Name: "adrastea", Orbit: 6.8, Speed: 0.034, Size: 0.03, Color: "#aa5555"},
		{Name: "amalthea", Orbit: 7.0, Speed: 0.030, Size: 0.06, Color: "#cc6666"},
		{Name: "thebe", Orbit: 7.2, Speed: 0.028, Size: 0.05, Color: "#aa5555"},
		{Name: "io", Orbit: 7.8, Speed: 0.015, Size: 0.25, Color: "#ffd700", Major: true},
		{Name: "europa", Orbit: 10.5, Speed: 0.010, Size: 0.22, Color: "#d0f0ff", Major: true},
		{Name: "ganymede", Orbit: 13.5, Speed: 0.007, Size: 0.35, Color: "#a09080", Major: true},
		{Name: "callisto", Orbit: 18.0, Speed: 0.004, Size: 0.32, Color: "#555555", Major: true},
		{Name: "himalia", Orbit: 21.0, Speed: 0.002, Size: 0.05, Color: "#888888"},
		{Name: "elara", Orbit: 23.0, Speed: 0.0018, Size: 0.04, Color: "#888888"},
	}); err != nil {
		return nil, err
	}

	return s, nil
}

// saturnMoon is one of the small icy moons drawn as a point ball.
type saturnMoon struct {
	name    string
	orbit   float64
	speed   float64
	incline float64 // degrees
	color   string
	size    float64
}

func buildSaturn(seed int64) (*system.System, error) {
	cream := core.MustHex("#f4f0d5")
	beige := core.MustHex("#d9c37c")
	tan := core.MustHex("#a68f58")
	blue := core.MustHex("#6b7e8c")

	planet := shell("saturn-surface", core.KindSurface, 35000, 5.4, 5.5)
	planet.NoiseSeed = "saturn-seed-v2"
	planet.Terms = []body.NoiseTerm{{Freq: core.Vector3{X: 2.5, Y: 0.8, Z: 2.5}, Weight: 1}}
	planet.Classify = func(s *body.Sample, _ core.Color) core.Color {
		y := s.Pos.Y
		band := math.Sin(y*3.5 + s.Terms[0]*0.3)

		var c core.Color
		switch {
		case band > 0.5:
			c = cream
		case band < -0.3:
			c = core.Lerp(tan, beige, 0.4)
		default:
			c = core.Lerp(beige, cream, 0.3)
		}
		if y > 3.0 {
			c = core.Lerp(c, blue, math.Min(1, (y-3.0)/2.5)*0.7)
		}
		if s.Rand.Float64() > 0.99 {
			c = core.Color{R: c.R + 0.1, G: c.G + 0.1, B: c.B + 0.1}
		}
		return c
	}
	planet.PointSize, planet.Opacity = 0.06, 0.95

	haze := shell("saturn-haze", core.KindHaze, 15000, 5.6, 5.7)
	haze.Base = cream
	haze.Classify = func(s *body.Sample, c core.Color) core.Color {
		if s.Pos.Y > 3.5 {
			return core.Lerp(c, blue, 0.3)
		}
		return c
	}
	haze.Jitter = [2]float64{0.8, 1.2}
	haze.PointSize, haze.Opacity = 0.05, 0.3

	const innerRadius, outerRadius = 6.3, 12.0
	innerDark := core.MustHex("#4a3b2a")
	mainBright := core.MustHex("#f0e4c0")
	outerIce := core.MustHex("#a0b0c0")

	rings := disk("saturn-rings", 30000, innerRadius, outerRadius, 0.06)
	rings.Bias = 0.8
	// Cassini division.
	rings.Survival = func(s *body.Sample) float64 {
		return step(s.Radius <= 9.9 || s.Radius >= 10.4)
	}
	rings.Classify = func(s *body.Sample, _ core.Color) core.Color {
		r := s.Radius
		if r < 7.8 {
			mix := (r - innerRadius) / 1.5
			return core.ScaleColor(core.Lerp(innerDark, mainBright, mix*0.3), 0.2+mix*0.4)
		}
		mix := (r - 7.8) / (outerRadius - 7.8)
		return core.ScaleColor(core.Lerp(mainBright, outerIce, mix*0.6), s.Rand.Range(0.8, 1.2))
	}
	rings.PointSize, rings.Opacity = 0.06, 0.7

	titanCore := sphere("titan-core", core.KindMoon, 1200, 0.75)
	titanCore.NoiseSeed = "titan-core"
	titanCore.Terms = []body.NoiseTerm{body.Isotropic(3, 1)}
	titanCore.Normalize = true
	titanCore.Bands = []body.ColorBand{band(0, 1, "#4a2e20", "#8c4b28")}
	titanCore.PointSize, titanCore.Opacity = 0.05, 0.95

	titanHaze := sphere("titan-haze", core.KindHaze, 2000, 0.82)
	titanHaze.NoiseSeed = "titan-haze"
	titanHaze.Terms = []body.NoiseTerm{body.Isotropic(1.5, 1)}
	titanHaze.Normalize = true
	titanHaze.Bands = []body.ColorBand{band(0, 1, "#d68528", "#ffaa44")}
	titanHaze.PointSize, titanHaze.Opacity = 0.045, 0.5

	iapetusDark := core.MustHex("#111111")
	iapetusLight := core.MustHex("#eeeeee")
	iapetus := sphere("iapetus", core.KindMoon, 64, 0.13*0.9)
	iapetus.Classify = func(s *body.Sample, _ core.Color) core.Color {
		if s.Pos.X > 0 {
			return iapetusLight
		}
		return iapetusDark
	}
	iapetus.PointSize = 0.13 * 0.8

	clouds, err := layers(body.BodySpec{
		Name:   "saturn",
		Seed:   seed,
		Layers: []body.Layer{planet, haze, rings, titanCore, titanHaze, iapetus},
	})
	if err != nil {
		return nil, err
	}

	b := kinematics.NewBody("saturn", 5.5, deg(15), deg(27), 0.002)
	s := system.New("saturn", b, 42)

	s.Attach(clouds["saturn-surface"], b.Spin.Node)
	grid(s, b.Spin.Node, 5.6, 24, 16, "#c2b280", 0.1)
	atmo := b.AddRotor("saturn-haze-spin", b.Tilt, 0.0015)
	s.Attach(clouds["saturn-haze"], atmo)

	s.Attach(clouds["saturn-rings"], b.Tilt)
	s.AddUpdater(dynamics.NewRingShear(clouds["saturn-rings"]))

	titan := b.AddMoon(kinematics.NewMoon("titan", b.Tilt, kinematics.Orbit{Radius: 16.2, Speed: 0.0005}, 0.75))
	titan.Lock = &kinematics.TidalLock{Offset: -math.Pi / 2}
	s.Attach(clouds["titan-core"], titan.Node)
	grid(s, titan.Node, 0.75, 16, 16, "#ff8c69", 0.2)
	titanAtmo := b.AddRotor("titan-haze-spin", titan.Node, 0.001)
	s.Attach(clouds["titan-haze"], titanAtmo)
	s.AddWire(titan.Pivot, "#e06236", 0.4, core.OrbitPath(16.2, 16.2, 128))

	rng := sampler.New(seed + 1)
	for _, sm := range []saturnMoon{
		{"mimas", 12.4, 0.009, 0, "#8090a0", 0.08},
		{"enceladus", 13.0, 0.0075, 0, "#aaffff", 0.09},
		{"tethys", 13.6, 0.006, 0, "#e6e0c0", 0.10},
		{"dione", 14.2, 0.005, 0, "#c0c0e0", 0.10},
		{"rhea", 14.8, 0.004, 0, "#b0a090", 0.12},
		{"hyperion", 17.6, 0.0025, 0, "#cd853f", 0.09},
		{"iapetus", 19.0, 0.0015, 15.47, "#ffffff", 0.13},
		{"phoebe", 20.5, -0.001, 20.0, "#2f4f4f", 0.07},
	} {
		parent := b.Tilt
		if sm.speed < 0 {
			// Phoebe's retrograde orbit ignores the ring plane.
			parent = b.View
		}
		m := b.AddMoon(kinematics.NewMoon(sm.name, parent, kinematics.Orbit{Radius: sm.orbit, Speed: sm.speed}, sm.size))
		m.Incline(deg(sm.incline), 0)
		m.Pivot.Rotation.Y = rng.Float64() * 2 * math.Pi

		switch {
		case sm.name == "hyperion":
			m.Spin.Rate = 0.05
			m.Tumble = core.Vector3{X: 0.03}
		case sm.speed < 0:
			m.Spin.Rate = 0.02
		default:
			m.Lock = &kinematics.TidalLock{Factor: -1}
		}

		if cloud, ok := clouds[sm.name]; ok {
			s.Attach(cloud, m.Node)
		} else {
			grid(s, m.Node, sm.size, 4, 4, sm.color, 0.8)
		}
		s.AddWire(m.Pivot, sm.color, 0.15, core.OrbitPath(sm.orbit, sm.orbit, 64))
	}

	return s, nil
}

// uranusRing is one narrow ringlet: radius ± width/2 with vertical spread.
type uranusRing struct {
	name    string
	radius  float64
	width   float64
	color   string
	opacity float64
	count   int
	spread  float64
}

func buildUranus(seed int64) (*system.System, error) {
	const r = 5.0
	base := core.MustHex("#a4d8e6")
	deep := core.MustHex("#4a9cb8")
	high := core.MustHex("#e0ffff")

	planet := sphere("uranus-surface", core.KindSurface, 35000, r)
	planet.NoiseSeed = "uranus-base"
	planet.Terms = []body.NoiseTerm{{Freq: core.Vector3{X: 1, Y: 4, Z: 1}, Weight: 1}}
	planet.Classify = func(s *body.Sample, _ core.Color) core.Color {
		lat := math.Abs(s.Pos.Y / r)
		c := core.Lerp(deep, base, lat*0.8+0.2)
		if lat > 0.8 {
			c = core.Lerp(c, high, (lat-0.8)*3)
		}
		if math.Abs(s.Terms[0]) > 0.6 {
			c = core.ScaleColor(c, 1.05)
		}
		return c
	}
	planet.PointSize, planet.Opacity = 0.06, 0.9

	atmosphere := sphere("uranus-atmosphere", core.KindAtmosphere, 8000, 5.2)
	atmosphere.Base = core.Color{R: 0.4, G: 0.9, B: 1.0}
	atmosphere.PointSize, atmosphere.Opacity = 0.08, 0.15

	ringDefs := []uranusRing{
		{"uranus-ring-zeta", 6.9, 0.8, "#1a1a1a", 0.12, 10000, 0.08},
		{"uranus-ring-alpha", 9.0, 0.2, "#2a4f50", 0.25, 5000, 0.04},
		{"uranus-ring-beta", 9.7, 0.3, "#40e0d0", 0.5, 12000, 0.02},
		{"uranus-ring-lambda", 10.3, 0.1, "#3a5f60", 0.3, 4000, 0.03},
		{"uranus-ring-epsilon", 11.4, 0.8, "#2f4f4f", 0.15, 8000, 0.06},
	}
	all := []body.Layer{planet, atmosphere}
	for _, def := range ringDefs {
		l := disk(def.name, def.count, def.radius-def.width/2, def.radius+def.width/2, def.spread)
		l.Base = core.MustHex(def.color)
		l.Jitter = [2]float64{0.7 * 0.8, 1.3 * 0.8}
		l.PointSize, l.Opacity = 0.05, def.opacity
		all = append(all, l)
	}

	clouds, err := layers(body.BodySpec{Name: "uranus", Seed: seed, Layers: all})
	if err != nil {
		return nil, err
	}

	b := kinematics.NewBody("uranus", r, 0, deg(-97.77), -0.004)
	s := system.New("uranus", b, 38)
	s.SetViewRotation(0, 0.2)
	// North is defined by the IAU pole, not the spin direction.
	s.SignFactor = -1

	s.Attach(clouds["uranus-surface"], b.Spin.Node)
	s.Attach(clouds["uranus-atmosphere"], b.Spin.Node)
	grid(s, b.Spin.Node, 5.1, 24, 24, "#64dceb", 0.05)

	ringNode := b.AddRotor("uranus-rings", b.Tilt, 0.0005)
	for _, def := range ringDefs {
		s.Attach(clouds[def.name], ringNode)
	}

	// Uranian satellites show their texture at a finer scale.
	tint := func(name string) func(n float64, base, dark core.Color) core.Color {
		return func(n float64, base, dark core.Color) core.Color {
			c := base
			switch {
			case name == "miranda" && math.Abs(n) > 0.3:
				c = core.ScaleColor(c, 0.4)
			case name == "ariel" && n > 0.2:
				c = core.Color{R: c.R + 0.3, G: c.G + 0.3, B: c.B + 0.3}
			case name == "umbriel":
				c = core.ScaleColor(c, 0.6)
			}
			if n < -0.2 {
				c = core.Lerp(c, dark, 0.5)
			}
			return c
		}
	}
	major := func(name string, orbit, speed, size float64, color string, detail float64) moonSpec {
		return moonSpec{
			Name: name, Orbit: orbit, Speed: speed, Size: size, Color: color,
			Major: true, Points: 300, Detail: detail, Shade: 0.3, Incline: 0.04,
			Tint: tint(name), OrbitOpacity: 0.35, GridOpacity: 0.6,
		}
	}
	minor := func(name string, orbit, speed, size float64, color string) moonSpec {
		return moonSpec{Name: name, Orbit: orbit, Speed: speed, Size: size, Color: color, Incline: 0.04}
	}
	irregular := func(name string, orbit, speed, size float64, color string, incline float64) moonSpec {
		return moonSpec{Name: name, Orbit: orbit, Speed: -speed, Size: size, Color: color, Incline: incline, Skew: true}
	}

	if err := addMoons(s, b.Tilt, seed+1, []moonSpec{
		minor("bianca", 7.5, 0.018, 0.05, "#447777"),
		minor("cressida", 7.8, 0.017, 0.06, "#447777"),
		minor("puck", 8.0, 0.015, 0.08, "#55aaaa"),
		minor("desdemona", 8.1, 0.016, 0.05, "#447777"),
		minor("juliet", 8.4, 0.015, 0.06, "#447777"),
		minor("portia", 8.7, 0.014, 0.08, "#559999"),
		minor("cordelia", 9.35, 0.013, 0.04, "#558888"),
		minor("ophelia", 10.05, 0.012, 0.04, "#558888"),
		major("miranda", 10.6, 0.008, 0.22, "#cccccc", 10),
		major("ariel", 12.2, 0.006, 0.28, "#e0ffff", 5),
		major("umbriel", 14.0, 0.005, 0.28, "#666666", 3),
		major("titania", 16.2, 0.004, 0.38, "#e0d0b0", 6),
		major("oberon", 19.0, 0.003, 0.35, "#a08080", 8),
		irregular("caliban", 23.0, 0.0008, 0.06, "#aa5555", 0.8),
		irregular("sycorax", 27.0, 0.0005, 0.08, "#cc6666", 0.9),
		irregular("setebos", 31.0, 0.0003, 0.05, "#888888", 0.6),
	}); err != nil {
		return nil, err
	}

	return s, nil
}

// neptuneRing is one of the five named rings. Each spins at its own
// Keplerian rate.
type neptuneRing struct {
	name    string
	radius  float64
	width   float64
	count   int
	opacity float64
	color   string
	arcs    bool
}

// keplerRate is the angular speed of a ring at radius r, scaled so the
// innermost ring turns at 0.008 per frame.
func keplerRate(r float64) float64 {
	return 0.008 * math.Pow(7.1/r, 1.5)
}

func buildNeptune(seed int64) (*system.System, error) {
	storm := core.MustHex("#0d1238")

	planet := shell("neptune-surface", core.KindSurface, 85000, 5.0, 5.3)
	planet.NoiseSeed = "neptune-wind-shear"
	planet.Terms = []body.NoiseTerm{{Freq: core.Vector3{X: 0.5, Y: 3, Z: 0.5}, Weight: 1}}
	planet.Normalize = true
	planet.Bands = []body.ColorBand{
		band(0, 0.4, "#1a237e", "#2962ff"),
		band(0.4, 1, "#2962ff", "#448aff"),
	}
	planet.Classify = func(s *body.Sample, c core.Color) core.Color {
		p := s.Pos
		if p.Y < -1.5 && p.Y > -2.5 && p.X > 0 && math.Abs(p.Z) < 2.0 && s.Rand.Float64() > 0.6 {
			c = storm
		}
		depth := (s.Radius - 5.0) / 0.3
		return core.ScaleColor(c, 0.5+depth*0.5)
	}
	planet.PointSize, planet.Opacity = 0.055, 0.85

	ringDefs := []neptuneRing{
		{"neptune-ring-galle", 7.1, 0.6, 2500, 0.15, "#5566aa", false},
		{"neptune-ring-leverrier", 7.8, 0.1, 1200, 0.3, "#6677cc", false},
		{"neptune-ring-lassell", 8.2, 0.3, 1000, 0.1, "#445599", false},
		{"neptune-ring-arago", 8.6, 0.1, 1000, 0.3, "#6677cc", false},
		{"neptune-ring-adams", 9.4, 0.4, 12000, 0.9, "#88aaff", true},
	}
	all := []body.Layer{planet}
	for _, def := range ringDefs {
		l := disk(def.name, def.count, def.radius-def.width/2, def.radius+def.width/2, 0)
		l.NoiseSeed = "ring-arcs-separated"
		l.Base = core.MustHex(def.color)
		l.Jitter = [2]float64{0.7, 1.2}
		l.PointSize, l.Opacity = 0.055, 0.4
		if def.arcs {
			l.Survival = func(s *body.Sample) float64 {
				return 0.02 + 0.98*math.Pow(arcPresence(s), 3)
			}
			l.Opacity = 0.9
		}
		all = append(all, l)
	}

	tritonBase := core.MustHex("#d0e0ff")
	tritonDark := core.MustHex("#90a0bb")
	triton := sphere("triton", core.KindMoon, 800, 0.35)
	triton.NoiseSeed = "triton-cryovolcanism"
	triton.Terms = []body.NoiseTerm{body.Isotropic(6, 1)}
	triton.Classify = func(s *body.Sample, _ core.Color) core.Color {
		n := s.Terms[0]
		brightness := s.Rand.Range(0.8, 1.0)
		factor := math.Max(0.6, math.Min(1.2, (n+1)*0.5*1.5))
		c := core.ScaleColor(tritonBase, brightness*factor)
		if n < -0.3 {
			c = core.Lerp(c, tritonDark, 0.4)
		}
		return c
	}
	triton.PointSize, triton.Opacity = 0.045, 1
	all = append(all, triton)

	clouds, err := layers(body.BodySpec{Name: "neptune", Seed: seed, Layers: all})
	if err != nil {
		return nil, err
	}

	b := kinematics.NewBody("neptune", 5.3, 0, deg(28.32), 0.003)
	s := system.New("neptune", b, 30)
	s.SetViewRotation(0.3, 0)

	s.Attach(clouds["neptune-surface"], b.Spin.Node)
	grid(s, b.Tilt, 5.32, 32, 16, "#448aff", 0.06)

	for _, def := range ringDefs {
		node := b.AddRotor(def.name+"-spin", b.Tilt, keplerRate(def.radius))
		s.Attach(clouds[def.name], node)
	}

	// Triton's retrograde, steeply inclined orbit hangs outside the tilt.
	t := b.AddMoon(kinematics.NewMoon("triton", b.View, kinematics.Orbit{Radius: 12.5, Speed: -0.004}, 0.35))
	t.Incline(deg(157), deg(20))
	t.Spin.Rate = 0.01
	s.Attach(clouds["triton"], t.Node)
	grid(s, t.Node, 0.36, 12, 12, "#88aaff", 0.1)
	s.AddWire(t.Pivot, "#88aaff", 0.25, core.OrbitPath(12.5, 12.5, 128))

	rng := sampler.New(seed + 1)
	for _, mc := range []struct {
		name         string
		orbit, speed float64
		size         float64
		color        string
		eccentric    bool
	}{
		{"galatea", 5.5, 0.015, 0.05, "#6677aa", false},
		{"larissa", 5.75, 0.0125, 0.06, "#556699", false},
		{"proteus", 6.0, 0.01, 0.08, "#6677aa", false},
		{"nereid", 24.0, 0.001, 0.07, "#8899cc", true},
	} {
		orbit := kinematics.Orbit{Radius: mc.orbit, Speed: mc.speed, Angle: rng.Float64() * 2 * math.Pi}
		points := 64
		if mc.eccentric {
			orbit.RadiusY = mc.orbit * 0.7
			points = 128
		}
		m := b.AddMoon(kinematics.NewMoon(mc.name, b.Tilt, orbit, mc.size))
		if mc.eccentric {
			m.Incline(0.3, 0.2)
		} else {
			m.Incline(rng.Float64()*0.05, rng.Float64()*0.05)
		}
		m.Spin.Rate = 0.02
		m.Tumble = core.Vector3{X: 0.02}
		grid(s, m.Node, mc.size, 5, 3, mc.color, 0.6)
		ry := orbit.RadiusY
		if ry == 0 {
			ry = mc.orbit
		}
		s.AddWire(m.Pivot, "#445588", 0.1, core.OrbitPath(mc.orbit, ry, points))
	}

	return s, nil
}

// arcPresence samples the arc noise around the ring so the Adams ring
// clumps into discrete arcs.
func arcPresence(s *body.Sample) float64 {
	raw := s.Noise.Eval2(math.Cos(s.Angle)*2, math.Sin(s.Angle)*2)
	return math.Max(0, (raw+0.4)/1.4)
}

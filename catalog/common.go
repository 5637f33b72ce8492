package catalog

import (
	"fmt"
	"math"

	"planetcloud/body"
	"planetcloud/core"
	"planetcloud/kinematics"
	"planetcloud/sampler"
	"planetcloud/system"
)

// layers generates spec and indexes the clouds by layer name.
func layers(spec body.BodySpec) (map[string]*core.PointCloud, error) {
	clouds, err := body.Generate(spec)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*core.PointCloud, len(clouds))
	for i := range clouds {
		byName[clouds[i].Name] = &clouds[i]
	}
	return byName, nil
}

func deg(d float64) float64 { return d * math.Pi / 180 }

func sphere(name string, kind core.CloudKind, count int, radius float64) body.Layer {
	return body.Layer{Name: name, Kind: kind, Count: count, Shape: body.ShapeSphere, Radius: radius}
}

func shell(name string, kind core.CloudKind, count int, rMin, rMax float64) body.Layer {
	return body.Layer{Name: name, Kind: kind, Count: count, Shape: body.ShapeShell, RadiusMin: rMin, RadiusMax: rMax}
}

func band(min, max float64, low, high string) body.ColorBand {
	return body.ColorBand{Min: min, Max: max, Low: core.MustHex(low), High: core.MustHex(high)}
}

// grid attaches the standard faint UV reference sphere.
func grid(s *system.System, node *kinematics.Node, radius float64, segments, rings int, color string, opacity float64) {
	s.AddWire(node, color, opacity, core.SphereWireframe(radius, segments, rings))
}

// moonSpec describes a satellite. Major moons get a noise-textured point
// cloud; minor moons are drawn as a coarse wire ball.
type moonSpec struct {
	Name    string
	Orbit   float64
	Speed   float64 // negative is retrograde
	Size    float64
	Color   string
	Major   bool
	Points  int
	Detail  float64 // noise frequency of the surface texture
	Shade   float64 // dark color = base × Shade
	Incline float64 // random orbit plane tilt spread in radians
	Skew    bool    // spread the tilt over Z as well as X

	// Tint replaces the default shading of a major moon's surface.
	Tint func(n float64, base, dark core.Color) core.Color

	OrbitOpacity float64
	GridOpacity  float64
}

func (m moonSpec) layer() body.Layer {
	base := core.MustHex(m.Color)
	dark := core.ScaleColor(base, m.Shade)
	detail := m.Detail
	if detail == 0 {
		detail = 5
	}
	classify := func(s *body.Sample, c core.Color) core.Color {
		if s.Raw < 0 {
			return core.Lerp(c, dark, -s.Raw)
		}
		return c
	}
	if m.Tint != nil {
		classify = func(s *body.Sample, _ core.Color) core.Color {
			return m.Tint(s.Raw, base, dark)
		}
	}
	return body.Layer{
		Name:      m.Name,
		Kind:      core.KindMoon,
		Count:     m.Points,
		NoiseSeed: m.Name,
		Shape:     body.ShapeSphere,
		Radius:    m.Size * 0.95,
		Terms:     []body.NoiseTerm{body.Isotropic(detail, 1)},
		Base:      base,
		Classify:  classify,
		PointSize: 0.05,
	}
}

// addMoons places each moon on a randomly phased orbit under parent and
// attaches its cloud or wire ball plus a faint orbit path.
func addMoons(s *system.System, parent *kinematics.Node, seed int64, moons []moonSpec) error {
	rng := sampler.New(seed)

	var majors []body.Layer
	for i := range moons {
		m := &moons[i]
		if !m.Major {
			continue
		}
		if m.Shade == 0 {
			m.Shade = 0.5
		}
		if m.Points == 0 {
			m.Points = 200
		}
		majors = append(majors, m.layer())
	}
	var clouds map[string]*core.PointCloud
	if len(majors) > 0 {
		var err error
		clouds, err = layers(body.BodySpec{Name: s.Name + "-moons", Seed: seed, Layers: majors})
		if err != nil {
			return fmt.Errorf("moons: %w", err)
		}
	}

	for _, spec := range moons {
		orbit := kinematics.Orbit{Radius: spec.Orbit, Speed: spec.Speed, Angle: rng.Float64() * 2 * math.Pi}
		m := s.Body.AddMoon(kinematics.NewMoon(spec.Name, parent, orbit, spec.Size))

		spread := spec.Incline
		if spread == 0 {
			spread = 0.02
			if !spec.Major {
				spread = 0.2
			}
		}
		if spec.Skew {
			m.Incline(rng.Centered(spread), rng.Centered(spread))
		} else {
			m.Incline(rng.Centered(spread), 0)
		}
		m.Pivot.Rotation.Y = rng.Float64() * 2 * math.Pi

		orbitOpacity, gridOpacity := 0.08, 0.5
		if spec.Major {
			orbitOpacity, gridOpacity = 0.25, 0.4
		}
		if spec.OrbitOpacity > 0 {
			orbitOpacity = spec.OrbitOpacity
		}
		if spec.GridOpacity > 0 {
			gridOpacity = spec.GridOpacity
		}

		if spec.Major {
			m.Spin.Rate = 0.01
			s.Attach(clouds[spec.Name], m.Node)
			grid(s, m.Node, spec.Size, 8, 8, spec.Color, gridOpacity)
		} else {
			m.Spin.Rate = 0.02
			m.Tumble = core.Vector3{X: 0.02}
			grid(s, m.Node, spec.Size, 5, 3, spec.Color, gridOpacity)
		}
		s.AddWire(m.Pivot, spec.Color, orbitOpacity, core.OrbitPath(spec.Orbit, spec.Orbit, 128))
	}
	return nil
}

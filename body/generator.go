// Package body turns a BodySpec into point clouds.
//
// Each layer samples points from a shape, evaluates weighted noise terms at
// scaled coordinates, optionally rejects the point, perturbs its radius and
// colors it through an ordered band ramp. Layers are independent and are
// generated concurrently, each with its own deterministic random source.
package body

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/cespare/xxhash/v2"

	"planetcloud/core"
	"planetcloud/noise"
	"planetcloud/sampler"
)

// ErrInvalidSpec is returned when a spec cannot produce a body.
var ErrInvalidSpec = errors.New("invalid body spec")

// Shape selects how base positions are drawn.
type Shape int

const (
	// ShapeSphere places every point at Radius.
	ShapeSphere Shape = iota
	// ShapeShell draws radii in [RadiusMin, RadiusMax] with density exponent Bias.
	ShapeShell
	// ShapeDisk draws a flat ring in the XZ plane.
	ShapeDisk
	// ShapeSpot scatters points around a lat/lon center.
	ShapeSpot
)

func (s Shape) String() string {
	switch s {
	case ShapeSphere:
		return "sphere"
	case ShapeShell:
		return "shell"
	case ShapeDisk:
		return "disk"
	case ShapeSpot:
		return "spot"
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// NoiseTerm is one weighted noise evaluation at pos⊙Freq + Offset.
type NoiseTerm struct {
	Freq   core.Vector3
	Offset core.Vector3
	Weight float64
	Abs    bool    // take |n| before Power
	Power  float64 // 0 or 1 leaves the value alone
	Invert bool    // 1 - v after Abs and Power
}

// Isotropic is a term with the same frequency on every axis.
func Isotropic(freq, weight float64) NoiseTerm {
	return NoiseTerm{Freq: core.Vector3{X: freq, Y: freq, Z: freq}, Weight: weight}
}

func (nt NoiseTerm) eval(f noise.Field, p core.Vector3) float64 {
	q := p.Mul(nt.Freq).Add(nt.Offset)
	v := f.Eval3(q.X, q.Y, q.Z)
	if nt.Abs {
		v = math.Abs(v)
	}
	if nt.Power != 0 && nt.Power != 1 {
		if v < 0 {
			v = -math.Pow(-v, nt.Power)
		} else {
			v = math.Pow(v, nt.Power)
		}
	}
	if nt.Invert {
		v = 1 - v
	}
	return v
}

// ColorBand ramps Low→High as the value moves from Min to Max.
type ColorBand struct {
	Min, Max  float64
	Low, High core.Color
}

// SpotRegion describes a feature scattered around a surface point, such as
// a storm.
type SpotRegion struct {
	Lat, Lon      float64 // radians
	Width, Height float64 // angular stretch along longitude and latitude
	Extent        float64 // angular radius at distance 1
	Exponent      float64 // distance = u^Exponent
	Radius        float64
}

// Sample carries per-point state into the hooks. Terms is reused between
// points; hooks must not retain it.
type Sample struct {
	Pos    core.Vector3 // base position, before radial perturbation
	Radius float64      // base radius
	Angle  float64      // disk azimuth or spot swirl angle
	Dist   float64      // normalized spot distance
	Terms  []float64
	Raw    float64 // weighted sum of terms
	Value  float64 // value fed to the bands
	Height float64 // radial offset applied
	Noise  noise.Field
	Rand   *sampler.Sampler
}

type (
	ValueFunc    func(s *Sample) float64
	HeightFunc   func(s *Sample) float64
	SurvivalFunc func(s *Sample) float64
	ClassifyFunc func(s *Sample, c core.Color) core.Color
)

// Layer is one point cloud of a body.
type Layer struct {
	Name      string
	Kind      core.CloudKind
	Count     int
	NoiseSeed string

	Shape     Shape
	Radius    float64
	RadiusMin float64
	RadiusMax float64
	Bias      float64
	Thickness float64
	Spot      *SpotRegion

	Terms     []NoiseTerm
	Normalize bool
	Value     ValueFunc

	Bands []ColorBand
	Base  core.Color

	Height   HeightFunc
	Survival SurvivalFunc
	Classify ClassifyFunc
	Jitter   [2]float64

	PointSize float64
	Opacity   float64
	Dynamic   bool
}

// BodySpec enumerates a body's layers.
type BodySpec struct {
	Name   string
	Seed   int64
	Layers []Layer
}

// Validate checks counts and radii.
func (s BodySpec) Validate() error {
	if len(s.Layers) == 0 {
		return fmt.Errorf("%w: %s has no layers", ErrInvalidSpec, s.Name)
	}
	for i, l := range s.Layers {
		if err := l.validate(); err != nil {
			return fmt.Errorf("%w: %s layer %d (%s): %v", ErrInvalidSpec, s.Name, i, l.Name, err)
		}
	}
	return nil
}

func (l Layer) validate() error {
	if l.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", l.Count)
	}
	switch l.Shape {
	case ShapeSphere:
		if !finitePositive(l.Radius) {
			return fmt.Errorf("radius must be positive, got %v", l.Radius)
		}
	case ShapeShell, ShapeDisk:
		if !finitePositive(l.RadiusMax) || l.RadiusMin < 0 || l.RadiusMax < l.RadiusMin || math.IsNaN(l.RadiusMin) {
			return fmt.Errorf("bad radius range [%v, %v]", l.RadiusMin, l.RadiusMax)
		}
		if l.Bias < 0 {
			return fmt.Errorf("bias must not be negative, got %v", l.Bias)
		}
	case ShapeSpot:
		if l.Spot == nil || !finitePositive(l.Spot.Radius) {
			return errors.New("spot layer needs a region with a positive radius")
		}
	default:
		return fmt.Errorf("unknown shape %v", l.Shape)
	}
	for _, b := range l.Bands {
		if b.Max < b.Min {
			return fmt.Errorf("band [%v, %v] is inverted", b.Min, b.Max)
		}
	}
	return nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// Generate builds one point cloud per layer, in layer order.
func Generate(spec BodySpec) ([]core.PointCloud, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	clouds := make([]core.PointCloud, len(spec.Layers))
	var wg sync.WaitGroup
	for i := range spec.Layers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l := &spec.Layers[i]
			clouds[i] = *GenerateLayer(l, LayerSeed(spec.Seed, l.Name))
		}(i)
	}
	wg.Wait()

	return clouds, nil
}

// LayerSeed derives a layer's random seed from the body seed and layer name.
func LayerSeed(seed int64, name string) int64 {
	return seed + int64(xxhash.Sum64String(name))
}

// GenerateLayer runs the pipeline for a single validated layer.
func GenerateLayer(l *Layer, seed int64) *core.PointCloud {
	s := sampler.New(seed)
	field := noise.New(l.NoiseSeed)

	cloud := core.NewPointCloud(l.Name, l.Kind, l.Count)
	cloud.Dynamic = l.Dynamic
	if l.PointSize > 0 {
		cloud.PointSize = l.PointSize
	}
	if l.Opacity > 0 {
		cloud.Opacity = l.Opacity
	}

	sample := Sample{
		Terms: make([]float64, len(l.Terms)),
		Noise: field,
		Rand:  s,
	}

	for i := 0; i < l.Count; i++ {
		l.place(s, &sample)

		sample.Raw = 0
		for k, term := range l.Terms {
			v := term.eval(field, sample.Pos)
			sample.Terms[k] = v
			sample.Raw += term.Weight * v
		}
		sample.Value = sample.Raw
		if l.Normalize {
			sample.Value = noise.Unit(sample.Value)
		}
		if l.Value != nil {
			sample.Value = l.Value(&sample)
		}

		if l.Survival != nil {
			p := l.Survival(&sample)
			if p <= 0 || s.Float64() > p {
				continue
			}
		}

		pos := sample.Pos
		sample.Height = 0
		if l.Height != nil {
			sample.Height = l.Height(&sample)
			if sample.Height != 0 {
				r := pos.Length()
				if r > 0 {
					pos = pos.Scale((r + sample.Height) / r)
				}
			}
		}

		c := l.color(sample.Value)
		if l.Classify != nil {
			c = l.Classify(&sample, c)
		}
		if l.Jitter[1] > 0 {
			c = core.ScaleColor(c, s.Range(l.Jitter[0], l.Jitter[1]))
		}

		cloud.Append(pos, c)
	}

	return cloud
}

func (l *Layer) place(s *sampler.Sampler, sample *Sample) {
	sample.Angle, sample.Dist = 0, 0
	switch l.Shape {
	case ShapeSphere:
		sample.Pos = s.OnSphere(l.Radius)
		sample.Radius = l.Radius
	case ShapeShell:
		sample.Pos, sample.Radius = s.InShell(l.RadiusMin, l.RadiusMax, l.bias())
	case ShapeDisk:
		sample.Pos, sample.Radius, sample.Angle = s.Disk(l.RadiusMin, l.RadiusMax, l.bias(), l.Thickness)
	case ShapeSpot:
		sp := l.Spot
		exp := sp.Exponent
		if exp <= 0 {
			exp = 1
		}
		sample.Dist = math.Pow(s.Float64(), exp)
		sample.Angle = s.Float64() * 2 * math.Pi
		g := core.Geographic{
			Lat: sp.Lat + math.Sin(sample.Angle)*sample.Dist*sp.Extent*sp.Height,
			Lon: sp.Lon + math.Cos(sample.Angle)*sample.Dist*sp.Extent*sp.Width,
		}
		sample.Pos = core.GeographicToCartesian(g, sp.Radius)
		sample.Radius = sp.Radius
	}
}

func (l *Layer) bias() float64 {
	if l.Bias == 0 {
		return 1
	}
	return l.Bias
}

func (l *Layer) color(v float64) core.Color {
	return Ramp(l.Bands, l.Base, v)
}

// Ramp picks the first band with v < Max (the last band catches the rest)
// and lerps across it. With no bands the base color is returned.
func Ramp(bands []ColorBand, base core.Color, v float64) core.Color {
	if len(bands) == 0 {
		return base
	}
	b := bands[len(bands)-1]
	for _, candidate := range bands {
		if v < candidate.Max {
			b = candidate
			break
		}
	}
	t := 0.0
	if span := b.Max - b.Min; span > 0 {
		t = (v - b.Min) / span
	}
	return core.Lerp(b.Low, b.High, clamp01(t))
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

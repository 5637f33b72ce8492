package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Vector3 represents a 3D vector
type Vector3 struct {
	X, Y, Z float64
}

func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Mul multiplies component-wise.
func (v Vector3) Mul(other Vector3) Vector3 {
	return Vector3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vector3) Normalize() Vector3 {
	length := v.Length()
	if length == 0 {
		return Vector3{0, 0, 0}
	}
	return Vector3{v.X / length, v.Y / length, v.Z / length}
}

// Lerp moves t of the way from v to other.
func (v Vector3) Lerp(other Vector3, t float64) Vector3 {
	return Vector3{
		v.X + (other.X-v.X)*t,
		v.Y + (other.Y-v.Y)*t,
		v.Z + (other.Z-v.Z)*t,
	}
}

// Vec3 converts to a mathgl vector for matrix work.
func (v Vector3) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// FromVec3 converts a mathgl vector back.
func FromVec3(v mgl64.Vec3) Vector3 {
	return Vector3{v[0], v[1], v[2]}
}

// Color is a linear RGB triple. Channels may exceed 1 after brightness
// modulation; renderers clamp.
type Color = colorful.Color

// MustHex parses a #rrggbb palette entry. Palettes are literals, so a bad
// value is a programming error.
func MustHex(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Lerp blends a toward b by t, like three.js Color.lerp.
func Lerp(a, b Color, t float64) Color {
	return a.BlendRgb(b, t)
}

// ScaleColor multiplies every channel by s.
func ScaleColor(c Color, s float64) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s}
}

// CloudKind tags what a point cloud represents.
type CloudKind string

const (
	KindSurface    CloudKind = "surface"
	KindAtmosphere CloudKind = "atmosphere"
	KindHaze       CloudKind = "haze"
	KindRing       CloudKind = "ring"
	KindStorm      CloudKind = "storm"
	KindCore       CloudKind = "core"
	KindCorona     CloudKind = "corona"
	KindEruption   CloudKind = "eruption"
	KindTail       CloudKind = "tail"
	KindMoon       CloudKind = "moon"
	KindLoop       CloudKind = "loop"
)

// PointCloud is a set of colored particles. Positions[i] pairs with Colors[i].
// Dynamic clouds are rewritten in place every frame by a single owner; the
// slices are never reallocated after construction.
type PointCloud struct {
	Name      string
	Kind      CloudKind
	Positions []Vector3
	Colors    []Color
	Sizes     []float64 // optional per-particle size, nil when uniform
	PointSize float64
	Opacity   float64
	Dynamic   bool
}

// NewPointCloud preallocates a cloud with room for capacity particles.
func NewPointCloud(name string, kind CloudKind, capacity int) *PointCloud {
	return &PointCloud{
		Name:      name,
		Kind:      kind,
		Positions: make([]Vector3, 0, capacity),
		Colors:    make([]Color, 0, capacity),
		PointSize: 0.05,
		Opacity:   1.0,
	}
}

// Append adds one particle.
func (pc *PointCloud) Append(p Vector3, c Color) {
	pc.Positions = append(pc.Positions, p)
	pc.Colors = append(pc.Colors, c)
}

// Len returns the particle count.
func (pc *PointCloud) Len() int {
	return len(pc.Positions)
}

// Segment is a 2D line segment produced by contour extraction.
type Segment struct {
	X1, Y1, X2, Y2 float64
	Level          float64
}

// Segment3 is a 3D line segment, used for reference wireframes and orbit paths.
type Segment3 struct {
	A, B Vector3
}

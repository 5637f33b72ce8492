// Package viewer draws a body's scene in a native raylib window.
package viewer

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"planetcloud/core"
	"planetcloud/system"
)

// MaxPointsPerCloud caps how many particles of one cloud are drawn per
// frame. Larger clouds are drawn with a stride.
const MaxPointsPerCloud = 25000

// Batch is one cloud mapped to world space.
type Batch struct {
	Name    string
	Points  []core.Vector3
	Colors  []core.Color
	Opacity float64
}

// Line is a world-space wire segment.
type Line struct {
	A, B    core.Vector3
	Color   core.Color
	Opacity float64
}

// Stride returns the step that keeps n particles within MaxPointsPerCloud.
func Stride(n int) int {
	if n <= MaxPointsPerCloud {
		return 1
	}
	return (n + MaxPointsPerCloud - 1) / MaxPointsPerCloud
}

// Project maps every attached cloud through its node's world transform.
// Batches reuse the buffers of prev when it has the same shape.
func Project(sys *system.System, prev []Batch) []Batch {
	if len(prev) != len(sys.Clouds) {
		prev = make([]Batch, len(sys.Clouds))
	}
	for i, a := range sys.Clouds {
		world := a.Node.World()
		step := Stride(a.Cloud.Len())
		b := &prev[i]
		b.Name = a.Cloud.Name
		b.Opacity = a.Cloud.Opacity
		b.Points = b.Points[:0]
		b.Colors = b.Colors[:0]
		for k := 0; k < len(a.Cloud.Positions); k += step {
			p := mgl64.TransformCoordinate(a.Cloud.Positions[k].Vec3(), world)
			b.Points = append(b.Points, core.FromVec3(p))
			b.Colors = append(b.Colors, a.Cloud.Colors[k])
		}
	}
	return prev
}

// Wires maps every reference wire to world space.
func Wires(sys *system.System) []Line {
	var lines []Line
	for _, w := range sys.Wires {
		world := w.Node.World()
		c, err := colorful.Hex(w.Color)
		if err != nil {
			continue
		}
		for _, s := range w.Segments {
			lines = append(lines, Line{
				A:       core.FromVec3(mgl64.TransformCoordinate(s.A.Vec3(), world)),
				B:       core.FromVec3(mgl64.TransformCoordinate(s.B.Vec3(), world)),
				Color:   c,
				Opacity: w.Opacity,
			})
		}
	}
	return lines
}

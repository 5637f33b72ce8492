// Package kinematics animates bodies and moons with per-frame angle
// increments. Nothing here integrates forces; every motion is a scalar
// angle advanced at a hand-tuned rate.
package kinematics

import (
	"github.com/go-gl/mathgl/mgl64"

	"planetcloud/core"
)

// Node is a scene-graph transform. Rotation holds Euler angles applied in
// XYZ order.
type Node struct {
	Name     string
	Parent   *Node
	Position core.Vector3
	Rotation core.Vector3
	Scale    core.Vector3
}

// NewNode creates a unit-scale node under parent (which may be nil).
func NewNode(name string, parent *Node) *Node {
	return &Node{
		Name:   name,
		Parent: parent,
		Scale:  core.Vector3{X: 1, Y: 1, Z: 1},
	}
}

// Local returns T·Rx·Ry·Rz·S.
func (n *Node) Local() mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position.X, n.Position.Y, n.Position.Z)
	r := mgl64.HomogRotate3DX(n.Rotation.X).
		Mul4(mgl64.HomogRotate3DY(n.Rotation.Y)).
		Mul4(mgl64.HomogRotate3DZ(n.Rotation.Z))
	s := mgl64.Scale3D(n.Scale.X, n.Scale.Y, n.Scale.Z)
	return t.Mul4(r).Mul4(s)
}

// World composes the parent chain.
func (n *Node) World() mgl64.Mat4 {
	if n.Parent == nil {
		return n.Local()
	}
	return n.Parent.World().Mul4(n.Local())
}

// Apply maps a local point to world space.
func (n *Node) Apply(p core.Vector3) core.Vector3 {
	return core.FromVec3(mgl64.TransformCoordinate(p.Vec3(), n.World()))
}

// Data describes the node for the wire.
func (n *Node) Data() core.NodeData {
	d := core.NodeData{
		Name:     n.Name,
		Position: [3]float64{n.Position.X, n.Position.Y, n.Position.Z},
		Rotation: [3]float64{n.Rotation.X, n.Rotation.Y, n.Rotation.Z},
		Scale:    [3]float64{n.Scale.X, n.Scale.Y, n.Scale.Z},
	}
	if n.Parent != nil {
		d.Parent = n.Parent.Name
	}
	return d
}

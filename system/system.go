// Package system holds the application context of one body's scene and its
// per-frame run loop.
package system

import (
	"fmt"
	"strings"

	"planetcloud/core"
	"planetcloud/dynamics"
	"planetcloud/kinematics"
	"planetcloud/telemetry"
)

// Attached is a point cloud hanging from a scene node.
type Attached struct {
	Cloud *core.PointCloud
	Node  *kinematics.Node
}

// Wire is a reference grid or orbit path drawn as line segments.
type Wire struct {
	Node     *kinematics.Node
	Color    string
	Opacity  float64
	Segments []core.Segment3
}

// Frame is the snapshot returned by Step.
type Frame struct {
	Number  uint64
	Time    float64
	Camera  float64
	Zoom    float64
	Reading telemetry.Reading
}

// System owns every piece of mutable state of a scene. It is not safe for
// concurrent use; one goroutine drives Step.
type System struct {
	Name       string
	Body       *kinematics.Body
	View       *kinematics.ViewControl
	Clouds     []Attached
	Wires      []Wire
	Updaters   []dynamics.Updater
	Telemetry  *kinematics.Node
	SignFactor float64

	frame   uint64
	time    float64
	camera  float64
	reading telemetry.Reading
}

// New creates a system around body with the camera initially at initialZ.
// Telemetry reads the body's spin node until overridden.
func New(name string, body *kinematics.Body, initialZ float64) *System {
	s := &System{
		Name:       name,
		Body:       body,
		View:       kinematics.NewViewControl(initialZ),
		Telemetry:  body.Spin.Node,
		SignFactor: 1,
	}
	s.camera = s.View.CameraZ()
	s.reading = telemetry.Compute(s.Telemetry.World(), s.SignFactor)
	return s
}

// Attach hangs cloud from node.
func (s *System) Attach(cloud *core.PointCloud, node *kinematics.Node) *core.PointCloud {
	s.Clouds = append(s.Clouds, Attached{Cloud: cloud, Node: node})
	return cloud
}

// AddUpdater registers a dynamic cloud updater. The updater's cloud must
// already be attached.
func (s *System) AddUpdater(u dynamics.Updater) {
	s.Updaters = append(s.Updaters, u)
}

// AddWire attaches a line set to node.
func (s *System) AddWire(node *kinematics.Node, color string, opacity float64, segments []core.Segment3) {
	s.Wires = append(s.Wires, Wire{Node: node, Color: color, Opacity: opacity, Segments: segments})
}

// SetViewRotation sets both the rotation and the drag target of the view.
func (s *System) SetViewRotation(x, y float64) {
	s.View.TargetX, s.View.TargetY = x, y
	s.Body.View.Rotation.X, s.Body.View.Rotation.Y = x, y
}

// Step advances the scene by dt frames: kinematics, then dynamic clouds,
// then telemetry from the just-updated transforms.
func (s *System) Step(dt float64) Frame {
	s.frame++
	s.time += dt

	kinematics.Advance(s.Body, dt)
	s.camera = s.View.Update(s.Body.View)

	for _, u := range s.Updaters {
		u.Update(s.time)
	}

	s.reading = telemetry.Compute(s.Telemetry.World(), s.SignFactor)

	return s.Snapshot()
}

// Snapshot returns the current frame without advancing.
func (s *System) Snapshot() Frame {
	return Frame{
		Number:  s.frame,
		Time:    s.time,
		Camera:  s.camera,
		Zoom:    s.View.ZoomFactor(),
		Reading: s.reading,
	}
}

// Drag forwards a pointer drag to the view control.
func (s *System) Drag(dx, dy float64) { s.View.Drag(dx, dy) }

// Zoom forwards a slider value to the view control.
func (s *System) Zoom(v float64) { s.View.SetZoom(v) }

// Particles counts every point across attached clouds.
func (s *System) Particles() int {
	n := 0
	for _, a := range s.Clouds {
		n += a.Cloud.Len()
	}
	return n
}

// Summary is a one-line description of the scene contents.
func (s *System) Summary() string {
	parts := make([]string, 0, len(s.Clouds))
	for _, a := range s.Clouds {
		parts = append(parts, fmt.Sprintf("%s=%d", a.Cloud.Name, a.Cloud.Len()))
	}
	return fmt.Sprintf("%s: %d particles, %d moons [%s]",
		s.Name, s.Particles(), len(s.Body.Moons), strings.Join(parts, " "))
}

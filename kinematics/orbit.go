package kinematics

import (
	"math"
	"sort"

	"planetcloud/core"
)

// Spin is an angle advancing at Rate per frame. The angle is never wrapped;
// consumers only feed it to trig functions.
type Spin struct {
	Angle float64
	Rate  float64
}

func (s *Spin) Advance(dt float64) {
	s.Angle += s.Rate * dt
}

// Orbit is a circular or elliptical path in the parent's XZ plane.
// A negative Speed orbits retrograde.
type Orbit struct {
	Radius  float64
	RadiusY float64 // second semi-axis along Z, defaults to Radius
	Speed   float64
	Angle   float64
}

func (o *Orbit) Advance(dt float64) {
	o.Angle += o.Speed * dt
}

// Position is (R cos a, 0, Ry sin a).
func (o *Orbit) Position() core.Vector3 {
	ry := o.RadiusY
	if ry == 0 {
		ry = o.Radius
	}
	return core.Vector3{X: o.Radius * math.Cos(o.Angle), Z: ry * math.Sin(o.Angle)}
}

// TidalLock keeps one face toward the parent: spin = Factor·orbit + Offset.
// A zero Factor means 1.
type TidalLock struct {
	Factor float64
	Offset float64
}

func (l *TidalLock) angle(orbit float64) float64 {
	f := l.Factor
	if f == 0 {
		f = 1
	}
	return f*orbit + l.Offset
}

// Rotor spins a node about its Y axis.
type Rotor struct {
	Node *Node
	Spin Spin
}

func (r *Rotor) Advance(dt float64) {
	r.Spin.Advance(dt)
	r.Node.Rotation.Y = r.Spin.Angle
}

// Moon orbits inside Pivot, whose rotation sets the orbit plane.
type Moon struct {
	Name  string
	Size  float64
	Pivot *Node
	Node  *Node
	Orbit Orbit
	Spin  Spin
	Lock  *TidalLock
	// Tumble adds per-frame rotation about X and Z for irregular moons.
	Tumble core.Vector3
	// Roll banks the node against its orbit angle, the way the LEO
	// satellites are drawn.
	Roll bool
}

// NewMoon creates the pivot and body nodes of a moon under parent.
func NewMoon(name string, parent *Node, orbit Orbit, size float64) *Moon {
	pivot := NewNode(name+"-orbit", parent)
	m := &Moon{
		Name:  name,
		Size:  size,
		Pivot: pivot,
		Node:  NewNode(name, pivot),
		Orbit: orbit,
	}
	m.Node.Position = orbit.Position()
	return m
}

// Incline tilts the orbit plane.
func (m *Moon) Incline(x, z float64) *Moon {
	m.Pivot.Rotation.X = x
	m.Pivot.Rotation.Z = z
	return m
}

func (m *Moon) Advance(dt float64) {
	m.Orbit.Advance(dt)
	m.Node.Position = m.Orbit.Position()

	if m.Lock != nil {
		m.Node.Rotation.Y = m.Lock.angle(m.Orbit.Angle)
	} else {
		m.Spin.Advance(dt)
		m.Node.Rotation.Y = m.Spin.Angle
	}
	m.Node.Rotation.X += m.Tumble.X * dt
	if m.Roll {
		m.Node.Rotation.Z = -m.Orbit.Angle
	} else {
		m.Node.Rotation.Z += m.Tumble.Z * dt
	}
}

// Body is the kinematic skeleton of a planet or star: a view node driven by
// the user, a tilt node with the fixed axial tilt, a spin node the surface
// hangs from, extra rotors for layers with their own rates, and moons.
type Body struct {
	Name   string
	Radius float64
	View   *Node
	Tilt   *Node
	Spin   *Rotor
	Rotors []*Rotor
	Moons  []*Moon
}

// NewBody builds the View → Tilt → Spin chain. Tilt angles are in radians.
func NewBody(name string, radius float64, tiltX, tiltZ, spinRate float64) *Body {
	view := NewNode(name+"-view", nil)
	tilt := NewNode(name+"-tilt", view)
	tilt.Rotation = core.Vector3{X: tiltX, Z: tiltZ}
	spin := NewNode(name+"-spin", tilt)
	return &Body{
		Name:   name,
		Radius: radius,
		View:   view,
		Tilt:   tilt,
		Spin:   &Rotor{Node: spin, Spin: Spin{Rate: spinRate}},
	}
}

// AddRotor hangs a separately spinning node under parent.
func (b *Body) AddRotor(name string, parent *Node, rate float64) *Node {
	n := NewNode(name, parent)
	b.Rotors = append(b.Rotors, &Rotor{Node: n, Spin: Spin{Rate: rate}})
	return n
}

// AddMoon registers a moon orbiting under parent.
func (b *Body) AddMoon(m *Moon) *Moon {
	b.Moons = append(b.Moons, m)
	return m
}

// Nodes lists every node of the body, parents before children.
func (b *Body) Nodes() []*Node {
	nodes := []*Node{b.View, b.Tilt, b.Spin.Node}
	for _, m := range b.Moons {
		nodes = append(nodes, m.Pivot, m.Node)
	}
	for _, r := range b.Rotors {
		nodes = append(nodes, r.Node)
	}
	sort.SliceStable(nodes, func(i, j int) bool { return depth(nodes[i]) < depth(nodes[j]) })
	return nodes
}

func depth(n *Node) int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// Advance moves every angle of the body by dt frames.
func Advance(b *Body, dt float64) {
	b.Spin.Advance(dt)
	for _, r := range b.Rotors {
		r.Advance(dt)
	}
	for _, m := range b.Moons {
		m.Advance(dt)
	}
}

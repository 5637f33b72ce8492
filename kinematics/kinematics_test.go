package kinematics

import (
	"math"
	"testing"

	"planetcloud/core"
)

func near(a, b core.Vector3, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestSpinWrap(t *testing.T) {
	const (
		steps     = 100000
		increment = 0.0015
	)
	p := core.Vector3{X: 5}

	stepped := NewNode("stepped", nil)
	rs := &Rotor{Node: stepped, Spin: Spin{Rate: increment}}
	for i := 0; i < steps; i++ {
		rs.Advance(1)
	}

	once := NewNode("once", nil)
	once.Rotation.Y = math.Mod(steps*increment, 2*math.Pi)

	a, b := stepped.Apply(p), once.Apply(p)
	if !near(a, b, 1e-6) {
		t.Errorf("wrapped position: got %+v, want %+v", a, b)
	}
}

func TestOrbitPosition(t *testing.T) {
	tests := []struct {
		name  string
		orbit Orbit
		want  core.Vector3
	}{
		{"start", Orbit{Radius: 8.5}, core.Vector3{X: 8.5}},
		{"quarter", Orbit{Radius: 8.5, Angle: math.Pi / 2}, core.Vector3{Z: 8.5}},
		{"ellipse", Orbit{Radius: 8, RadiusY: 4, Angle: math.Pi / 2}, core.Vector3{Z: 4}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.orbit.Position(); !near(got, tc.want, 1e-12) {
				t.Errorf("Position: got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestRetrogradeOrbit(t *testing.T) {
	m := NewMoon("triton", nil, Orbit{Radius: 12.5, Speed: -0.01}, 0.3)
	m.Advance(10)
	if m.Orbit.Angle >= 0 {
		t.Fatalf("retrograde angle should decrease, got %f", m.Orbit.Angle)
	}
	if m.Node.Position.Z >= 0 {
		t.Errorf("retrograde moon should move toward -Z, got %+v", m.Node.Position)
	}
}

func TestTidalLock(t *testing.T) {
	m := NewMoon("moon", nil, Orbit{Radius: 8.5, Speed: 0.0002}, 0.8)
	m.Lock = &TidalLock{Offset: -math.Pi / 2}
	for i := 0; i < 500; i++ {
		m.Advance(1)
		if got, want := m.Node.Rotation.Y, m.Orbit.Angle-math.Pi/2; got != want {
			t.Fatalf("frame %d: rotation %f, want %f", i, got, want)
		}
	}
}

func TestWorldComposesParents(t *testing.T) {
	b := NewBody("earth", 5, 0, 0, 0)
	moon := b.AddMoon(NewMoon("moon", b.Tilt, Orbit{Radius: 8.5}, 0.8))

	b.View.Rotation.Y = math.Pi / 2
	got := moon.Node.Apply(core.Vector3{})
	// Rotating +X by 90° about Y lands on -Z.
	if !near(got, core.Vector3{Z: -8.5}, 1e-9) {
		t.Errorf("moon world position: got %+v, want (0, 0, -8.5)", got)
	}
}

func TestAdvanceBody(t *testing.T) {
	b := NewBody("earth", 5, 0.409, 0, 0.0015)
	clouds := b.AddRotor("earth-clouds", b.Tilt, 0.0005)
	Advance(b, 2)
	if b.Spin.Node.Rotation.Y != 0.003 {
		t.Errorf("spin: got %f, want 0.003", b.Spin.Node.Rotation.Y)
	}
	if clouds.Rotation.Y != 0.001 {
		t.Errorf("clouds: got %f, want 0.001", clouds.Rotation.Y)
	}
	if len(b.Nodes()) != 4 {
		t.Errorf("nodes: got %d, want 4", len(b.Nodes()))
	}
}

func TestViewControl(t *testing.T) {
	v := NewViewControl(25)
	if f := v.ZoomFactor(); math.Abs(f-1) > 1e-12 {
		t.Fatalf("default zoom factor: got %f, want 1", f)
	}

	n := NewNode("view", nil)
	v.Drag(100, -40)
	v.SetZoom(250)
	for i := 0; i < 400; i++ {
		v.Update(n)
	}
	if math.Abs(n.Rotation.Y-0.5) > 1e-6 || math.Abs(n.Rotation.X+0.2) > 1e-6 {
		t.Errorf("rotation: got (%f, %f), want (-0.2, 0.5)", n.Rotation.X, n.Rotation.Y)
	}
	if math.Abs(v.ZoomFactor()-2) > 1e-6 {
		t.Errorf("zoom factor at max: got %f, want 2", v.ZoomFactor())
	}
	if math.Abs(v.CameraZ()-12.5) > 1e-5 {
		t.Errorf("camera z: got %f, want 12.5", v.CameraZ())
	}
}

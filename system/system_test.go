package system

import (
	"math"
	"testing"

	"planetcloud/core"
	"planetcloud/kinematics"
	"planetcloud/telemetry"
)

// counter records every clock it is given.
type counter struct {
	cloud *core.PointCloud
	seen  []float64
}

func (c *counter) Cloud() *core.PointCloud { return c.cloud }
func (c *counter) Update(t float64)        { c.seen = append(c.seen, t) }

func newSystem() (*System, *counter) {
	b := kinematics.NewBody("test", 5, 0, 0, 0.01)
	s := New("test", b, 30)

	static := core.NewPointCloud("static", core.KindSurface, 1)
	static.Append(core.Vector3{X: 5}, core.MustHex("#ffffff"))
	s.Attach(static, b.Spin.Node)

	dynamic := core.NewPointCloud("dynamic", core.KindTail, 1)
	dynamic.Append(core.Vector3{X: 6}, core.MustHex("#ffcc00"))
	dynamic.Dynamic = true
	s.Attach(dynamic, b.Tilt)

	c := &counter{cloud: dynamic}
	s.AddUpdater(c)
	s.AddWire(b.Spin.Node, "#444444", 0.1, core.SphereWireframe(5, 8, 4))
	return s, c
}

func TestStepAdvancesClock(t *testing.T) {
	s, c := newSystem()

	s.Step(1)
	f := s.Step(0.5)
	if f.Number != 2 {
		t.Errorf("frame: got %d, want 2", f.Number)
	}
	if f.Time != 1.5 {
		t.Errorf("time: got %f, want 1.5", f.Time)
	}
	if len(c.seen) != 2 || c.seen[0] != 1 || c.seen[1] != 1.5 {
		t.Errorf("updater clocks: got %v, want [1 1.5]", c.seen)
	}
	if got := s.Body.Spin.Node.Rotation.Y; math.Abs(got-0.015) > 1e-12 {
		t.Errorf("spin: got %f, want 0.015", got)
	}
}

func TestZoomEasesCamera(t *testing.T) {
	s, _ := newSystem()
	start := s.Snapshot().Camera
	if start != 30 {
		t.Fatalf("initial camera: got %f, want 30", start)
	}

	s.Zoom(100)
	var f Frame
	for i := 0; i < 200; i++ {
		f = s.Step(1)
	}
	if math.Abs(f.Camera-15) > 1e-3 {
		t.Errorf("camera at full zoom: got %f, want 15", f.Camera)
	}
	if math.Abs(f.Zoom-2) > 1e-3 {
		t.Errorf("zoom factor: got %f, want 2", f.Zoom)
	}
}

func TestSceneAndFrameData(t *testing.T) {
	s, _ := newSystem()

	scene := s.Scene()
	if scene.Type != "scene" || scene.Body != "test" {
		t.Errorf("scene header: got %q %q", scene.Type, scene.Body)
	}
	if len(scene.Clouds) != 2 {
		t.Fatalf("scene clouds: got %d, want 2", len(scene.Clouds))
	}
	if scene.Clouds[0].Node != s.Body.Spin.Node.Name {
		t.Errorf("cloud node: got %s, want %s", scene.Clouds[0].Node, s.Body.Spin.Node.Name)
	}
	if len(scene.Wires) != 1 || len(scene.Wires[0].Vertices)%6 != 0 {
		t.Errorf("wires: got %d", len(scene.Wires))
	}
	if len(scene.Nodes) != len(s.Body.Nodes()) {
		t.Errorf("nodes: got %d, want %d", len(scene.Nodes), len(s.Body.Nodes()))
	}

	data := s.FrameData(s.Step(1))
	if data.Type != "frame" || data.Frame != 1 {
		t.Errorf("frame header: got %q %d", data.Type, data.Frame)
	}
	if len(data.Clouds) != 1 || data.Clouds[0].Name != "dynamic" {
		t.Errorf("frame clouds: got %d, want only the dynamic one", len(data.Clouds))
	}
	if data.Telemetry == "" {
		t.Error("empty telemetry")
	}
}

func TestSummary(t *testing.T) {
	s, _ := newSystem()
	if got := s.Particles(); got != 2 {
		t.Errorf("particles: got %d, want 2", got)
	}
	want := "test: 2 particles, 0 moons [static=1 dynamic=1]"
	if got := s.Summary(); got != want {
		t.Errorf("summary: got %q, want %q", got, want)
	}
}

func TestTelemetryReadsUpdatedTransforms(t *testing.T) {
	// 0.1 rad per frame is about 23 minutes of RA.
	b := kinematics.NewBody("fast", 5, 0.2, 0, 0.1)
	s := New("fast", b, 30)
	before := telemetry.Compute(s.Telemetry.World(), s.SignFactor)

	for _, dt := range []float64{1, 0.5, 2} {
		f := s.Step(dt)
		want := telemetry.Compute(s.Telemetry.World(), s.SignFactor)
		if f.Reading != want {
			t.Fatalf("dt %f: reading %s does not match the stepped transform %s", dt, f.Reading, want)
		}
		if f.Reading.RAHour == before.RAHour && f.Reading.RAMinute == before.RAMinute {
			t.Fatalf("dt %f: RA did not move from %s", dt, before)
		}
		before = f.Reading
	}
}

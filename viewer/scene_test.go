package viewer

import (
	"context"
	"math"
	"testing"

	"planetcloud/catalog"
	"planetcloud/core"
)

func TestStride(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 1},
		{MaxPointsPerCloud, 1},
		{MaxPointsPerCloud + 1, 2},
		{3 * MaxPointsPerCloud, 3},
	}
	for _, tt := range tests {
		if got := Stride(tt.n); got != tt.want {
			t.Errorf("Stride(%d): got %d, want %d", tt.n, got, tt.want)
		}
		if tt.n > 0 && (tt.n+Stride(tt.n)-1)/Stride(tt.n) > MaxPointsPerCloud {
			t.Errorf("Stride(%d) draws too many points", tt.n)
		}
	}
}

func TestProjectFollowsNodes(t *testing.T) {
	sys, err := catalog.Build(context.Background(), "mercury", 1)
	if err != nil {
		t.Fatal(err)
	}

	batches := Project(sys, nil)
	if len(batches) != len(sys.Clouds) {
		t.Fatalf("batches: got %d, want %d", len(batches), len(sys.Clouds))
	}
	for i, b := range batches {
		a := sys.Clouds[i]
		if b.Name != a.Cloud.Name {
			t.Errorf("batch %d: got %s, want %s", i, b.Name, a.Cloud.Name)
		}
		want := (a.Cloud.Len() + Stride(a.Cloud.Len()) - 1) / Stride(a.Cloud.Len())
		if len(b.Points) != want || len(b.Colors) != want {
			t.Errorf("%s: got %d points, want %d", b.Name, len(b.Points), want)
		}
		if len(b.Points) > 0 {
			got := b.Points[0]
			exp := a.Node.Apply(a.Cloud.Positions[0])
			if got.Vec3().Sub(exp.Vec3()).Len() > 1e-9 {
				t.Errorf("%s: first point got %v, want %v", b.Name, got, exp)
			}
		}
	}

	// Buffers are reused across frames.
	first := &batches[0].Points[0]
	sys.Step(1)
	again := Project(sys, batches)
	if &again[0].Points[0] != first {
		t.Error("Project reallocated an unchanged batch")
	}
}

func TestWiresUseWorldSpace(t *testing.T) {
	sys, err := catalog.Build(context.Background(), "mercury", 1)
	if err != nil {
		t.Fatal(err)
	}
	lines := Wires(sys)
	if len(lines) == 0 {
		t.Fatal("no wire segments")
	}
	for _, l := range lines[:10] {
		if r := l.A.Length(); math.Abs(r-5.02) > 1e-6 {
			t.Errorf("grid vertex radius: got %f, want 5.02", r)
		}
	}
}

func TestRGBA(t *testing.T) {
	c := rgba(core.Color{R: 2, G: 0.5, B: -1}, 0.5)
	if c.R != 255 || c.G != 128 || c.B != 0 || c.A != 128 {
		t.Errorf("rgba: got %v", c)
	}
}

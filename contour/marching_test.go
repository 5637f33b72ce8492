package contour

import (
	"math"
	"strings"
	"testing"

	"planetcloud/noise"
)

// corners returns values realizing state against level 0.5.
func corners(state int) (tl, tr, br, bl float64) {
	v := func(bit int) float64 {
		if state&bit != 0 {
			return 1
		}
		return 0
	}
	return v(TopLeft), v(TopRight), v(BottomRight), v(BottomLeft)
}

func TestCaseCompleteness(t *testing.T) {
	want := map[int][]string{
		0:  nil,
		1:  {"bottom-left"},
		2:  {"right-bottom"},
		3:  {"right-left"},
		4:  {"top-right"},
		5:  {"top-left", "right-bottom"},
		6:  {"top-bottom"},
		7:  {"top-left"},
		8:  {"top-left"},
		9:  {"top-bottom"},
		10: {"top-right", "bottom-left"},
		11: {"top-right"},
		12: {"right-left"},
		13: {"right-bottom"},
		14: {"bottom-left"},
		15: nil,
	}

	for state := 0; state < 16; state++ {
		tl, tr, br, bl := corners(state)
		if got := State(tl, tr, br, bl, 0.5); got != state {
			t.Fatalf("State for case %d: got %d", state, got)
		}

		pairs := Cases[state]
		if len(pairs) != len(want[state]) {
			t.Errorf("case %d: got %d segments, want %d", state, len(pairs), len(want[state]))
			continue
		}
		for k, p := range pairs {
			if name := p[0].String() + "-" + p[1].String(); name != want[state][k] {
				t.Errorf("case %d segment %d: got %s, want %s", state, k, name, want[state][k])
			}
		}

		segs := Cell(0, 0, 10, tl, tr, br, bl, 0.5, nil)
		if len(segs) != len(want[state]) {
			t.Errorf("case %d: Cell emitted %d segments, want %d", state, len(segs), len(want[state]))
			continue
		}
		for k, seg := range segs {
			ends := strings.Split(want[state][k], "-")
			for n, end := range []struct{ x, y float64 }{{seg.X1, seg.Y1}, {seg.X2, seg.Y2}} {
				edge := ends[n]
				mid := midpoints[edge]
				if end.x != mid[0] || end.y != mid[1] {
					t.Errorf("case %d segment %d: %s end at (%g, %g), want (%g, %g)",
						state, k, edge, end.x, end.y, mid[0], mid[1])
				}
				a, b := edgeCorners(edge, tl, tr, br, bl)
				if (a >= 0.5) == (b >= 0.5) {
					t.Errorf("case %d segment %d: edge %s is not crossed", state, k, edge)
				}
			}
		}
	}
}

// midpoints of a 10px cell at the origin, where every crossing sits at t = 0.5.
var midpoints = map[string][2]float64{
	"top":    {5, 0},
	"right":  {10, 5},
	"bottom": {5, 10},
	"left":   {0, 5},
}

func edgeCorners(edge string, tl, tr, br, bl float64) (float64, float64) {
	switch edge {
	case "top":
		return tl, tr
	case "right":
		return tr, br
	case "bottom":
		return bl, br
	default:
		return tl, bl
	}
}

func TestSegmentEndpointsOnEdges(t *testing.T) {
	// Case 6: TR and BR above, segment runs from the top edge to the bottom edge.
	segs := Cell(0, 0, 10, 0, 1, 1, 0, 0.5, nil)
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	s := segs[0]
	if s.X1 != 5 || s.Y1 != 0 || s.X2 != 5 || s.Y2 != 10 {
		t.Errorf("segment: got %+v, want (5,0)-(5,10)", s)
	}
	if s.Level != 0.5 {
		t.Errorf("level: got %f, want 0.5", s.Level)
	}
}

func TestEdgeT(t *testing.T) {
	tests := []struct {
		name          string
		v1, v2, level float64
		want          float64
	}{
		{"exact midpoint", 0, 10, 5, 0.5},
		{"degenerate", 0.5, 0.5, 0.5, 0.5},
		{"near flat", 0.3, 0.3 + 1e-6, 0.3, 0.5},
		{"quarter", 0, 4, 1, 0.25},
		{"descending", 1, 0, 0.75, 0.25},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EdgeT(tc.v1, tc.v2, tc.level)
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Fatalf("EdgeT returned %v", got)
			}
			if got != tc.want {
				t.Errorf("EdgeT(%f, %f, %f): got %f, want %f", tc.v1, tc.v2, tc.level, got, tc.want)
			}
		})
	}
}

func TestLevels(t *testing.T) {
	got := DefaultLevels()
	want := []float64{0.2, 0.2 + 1.0/6, 0.2 + 2.0/6, 0.2 + 3.0/6}
	if len(got) != len(want) {
		t.Fatalf("levels: got %v, want %v", got, want)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("level %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestGridDimensions(t *testing.T) {
	tests := []struct {
		name       string
		w, h, cell float64
		cols, rows int
	}{
		{"exact", 100, 50, 5, 21, 11},
		{"partial cell", 101, 50, 5, 22, 11},
		{"zero area", 0, 0, 5, 1, 1},
		{"zero height", 800, 0, 5, 1, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGrid(tc.w, tc.h, tc.cell)
			if g.Cols != tc.cols || g.Rows != tc.rows {
				t.Errorf("grid: got %dx%d, want %dx%d", g.Cols, g.Rows, tc.cols, tc.rows)
			}
		})
	}
}

func TestZeroAreaCanvas(t *testing.T) {
	bg := NewBackground(noise.New(""), DefaultOptions())
	segs := bg.Resize(0, 0)
	if segs == nil || len(segs) != 0 {
		t.Errorf("zero-area canvas: got %v, want empty slice", segs)
	}
}

func TestBackgroundResize(t *testing.T) {
	opts := DefaultOptions()
	opts.NoiseScale = 0.05
	bg := NewBackground(noise.New(""), opts)
	small := bg.Resize(200, 100)
	if len(small) == 0 {
		t.Fatalf("expected contours on a 200x100 canvas")
	}
	for i, s := range small {
		for _, v := range []float64{s.X1, s.X2} {
			if v < 0 || v > bg.Grid().Width+5 {
				t.Fatalf("segment %d x out of canvas: %+v", i, s)
			}
		}
	}
	again := bg.Resize(200, 100)
	if len(again) != len(small) {
		t.Errorf("same canvas gave %d then %d segments", len(small), len(again))
	}
}

func TestBackgroundCachesPerSize(t *testing.T) {
	opts := DefaultOptions()
	opts.NoiseScale = 0.05
	bg := NewBackground(noise.New(""), opts)

	first := bg.Resize(200, 100)
	if len(first) == 0 {
		t.Fatal("expected contours on a 200x100 canvas")
	}
	bg.Resize(300, 150)
	if bg.Grid().Width != 300 {
		t.Fatalf("grid width: got %f, want 300", bg.Grid().Width)
	}

	hit := bg.Resize(200, 100)
	if &hit[0] != &first[0] {
		t.Error("cached size was extracted again")
	}
	if bg.Grid().Width != 200 || &bg.Segments()[0] != &first[0] {
		t.Error("cache hit did not become the current canvas")
	}

	for i := 0; i < MaxCached; i++ {
		bg.Resize(float64(400+i), 100)
	}
	evicted := bg.Resize(200, 100)
	if &evicted[0] == &first[0] {
		t.Error("oldest size was not evicted")
	}
	if len(evicted) != len(first) {
		t.Errorf("re-extraction gave %d segments, want %d", len(evicted), len(first))
	}
}

package body

import (
	"errors"
	"math"
	"testing"

	"planetcloud/core"
)

func testSpec() BodySpec {
	return BodySpec{
		Name: "test",
		Seed: 11,
		Layers: []Layer{
			{
				Name:      "surface",
				Kind:      core.KindSurface,
				Count:     4000,
				NoiseSeed: "test-surface",
				Shape:     ShapeSphere,
				Radius:    5,
				Terms:     []NoiseTerm{Isotropic(0.4, 1)},
				Height:    func(s *Sample) float64 { return s.Raw * 0.3 },
				Bands: []ColorBand{
					{Min: -1, Max: 0, Low: core.MustHex("#000000"), High: core.MustHex("#808080")},
					{Min: 0, Max: 1, Low: core.MustHex("#808080"), High: core.MustHex("#ffffff")},
				},
			},
			{
				Name:      "ring",
				Kind:      core.KindRing,
				Count:     3000,
				Shape:     ShapeDisk,
				RadiusMin: 6.3,
				RadiusMax: 12,
				Bias:      0.8,
				Thickness: 0.06,
				Base:      core.MustHex("#a0b0c0"),
				Survival: func(s *Sample) float64 {
					if s.Radius > 9.9 && s.Radius < 10.4 {
						return 0
					}
					return 1
				},
			},
		},
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(testSpec())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(testSpec())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(a) != 2 || len(b) != 2 {
		t.Fatalf("layer count: got %d and %d, want 2", len(a), len(b))
	}
	for i := range a {
		if a[i].Len() != b[i].Len() {
			t.Fatalf("layer %s: lengths differ %d vs %d", a[i].Name, a[i].Len(), b[i].Len())
		}
		for j := range a[i].Positions {
			if a[i].Positions[j] != b[i].Positions[j] || a[i].Colors[j] != b[i].Colors[j] {
				t.Fatalf("layer %s point %d differs between runs", a[i].Name, j)
			}
		}
	}
}

func TestRadialPerturbationKeepsDirection(t *testing.T) {
	spec := testSpec()
	spec.Layers = spec.Layers[:1]
	l := &spec.Layers[0]

	perturbed := GenerateLayer(l, LayerSeed(spec.Seed, l.Name))
	l.Height = nil
	flat := GenerateLayer(l, LayerSeed(spec.Seed, l.Name))

	if perturbed.Len() != flat.Len() {
		t.Fatalf("count changed: %d vs %d", perturbed.Len(), flat.Len())
	}
	moved := 0
	for i := range flat.Positions {
		d1 := flat.Positions[i].Normalize()
		d2 := perturbed.Positions[i].Normalize()
		if math.Abs(d1.Dot(d2)-1) > 1e-12 {
			t.Fatalf("point %d changed direction: %+v vs %+v", i, d1, d2)
		}
		if math.Abs(perturbed.Positions[i].Length()-5) > 1e-9 {
			moved++
		}
		if r := perturbed.Positions[i].Length(); r < 5-0.3-1e-9 || r > 5+0.3+1e-9 {
			t.Fatalf("point %d radius %v outside perturbation range", i, r)
		}
	}
	if moved == 0 {
		t.Errorf("height function had no effect")
	}
}

func TestSurvivalCarvesGap(t *testing.T) {
	clouds, err := Generate(testSpec())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	ring := clouds[1]
	if ring.Len() == 0 || ring.Len() >= 3000 {
		t.Fatalf("ring count %d, want between 0 and 3000", ring.Len())
	}
	for i, p := range ring.Positions {
		r := math.Hypot(p.X, p.Z)
		if r > 9.9 && r < 10.4 {
			t.Fatalf("point %d at r=%v sits in the gap", i, r)
		}
	}
}

func TestRamp(t *testing.T) {
	black := core.MustHex("#000000")
	grey := core.MustHex("#808080")
	white := core.MustHex("#ffffff")
	bands := []ColorBand{
		{Min: 0, Max: 0.5, Low: black, High: grey},
		{Min: 0.5, Max: 1, Low: grey, High: white},
	}

	tests := []struct {
		name string
		v    float64
		want core.Color
	}{
		{"bottom", 0, black},
		{"below range clamps", -3, black},
		{"band edge", 0.5, grey},
		{"top", 1, white},
		{"above range clamps", 4, white},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Ramp(bands, core.Color{}, tc.v)
			if !got.AlmostEqualRgb(tc.want) {
				t.Errorf("Ramp(%f): got %v, want %v", tc.v, got.Hex(), tc.want.Hex())
			}
		})
	}

	if got := Ramp(nil, grey, 0.9); got != grey {
		t.Errorf("empty bands should return base color")
	}
}

func TestInvalidSpec(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*BodySpec)
	}{
		{"no layers", func(s *BodySpec) { s.Layers = nil }},
		{"zero count", func(s *BodySpec) { s.Layers[0].Count = 0 }},
		{"negative radius", func(s *BodySpec) { s.Layers[0].Radius = -5 }},
		{"inverted shell", func(s *BodySpec) { s.Layers[1].RadiusMin, s.Layers[1].RadiusMax = 12, 6 }},
		{"spot without region", func(s *BodySpec) { s.Layers[0].Shape = ShapeSpot }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := testSpec()
			tc.mod(&spec)
			clouds, err := Generate(spec)
			if !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("got err %v, want ErrInvalidSpec", err)
			}
			if clouds != nil {
				t.Errorf("clouds returned alongside error")
			}
		})
	}
}

func TestSpotStaysNearCenter(t *testing.T) {
	l := Layer{
		Name:  "grs",
		Count: 2000,
		Shape: ShapeSpot,
		Spot: &SpotRegion{
			Lat: core.DegreesToRadians(-22), Lon: 0.5,
			Width: 1.6, Height: 1.0, Extent: 0.22, Exponent: 0.6, Radius: 6.5,
		},
		Base: core.MustHex("#8a3f2d"),
	}
	cloud := GenerateLayer(&l, 5)
	if cloud.Len() != 2000 {
		t.Fatalf("count: got %d, want 2000", cloud.Len())
	}
	for i, p := range cloud.Positions {
		g := core.CartesianToGeographic(p, 6.5)
		if math.Abs(g.Lat-l.Spot.Lat) > 0.22+1e-9 {
			t.Fatalf("point %d latitude %v too far from center", i, g.Lat)
		}
		if math.Abs(g.Lon-l.Spot.Lon) > 0.22*1.6+1e-9 {
			t.Fatalf("point %d longitude %v too far from center", i, g.Lon)
		}
	}
}

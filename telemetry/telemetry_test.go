package telemetry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"planetcloud/core"
)

func TestIdentityFacesReferencePoint(t *testing.T) {
	r := Compute(mgl64.Ident4(), 1)
	if r.RAHour != 0 || r.RAMinute != 0 {
		t.Errorf("RA: got %dh %dm, want 0h 0m", r.RAHour, r.RAMinute)
	}
	if r.DecSign != "+" || r.DecDegrees != 0 {
		t.Errorf("Dec: got %s%d, want +0", r.DecSign, r.DecDegrees)
	}
	if got := r.String(); got != "TGT: RA 00h 00m | DEC +00°" {
		t.Errorf("String: got %q", got)
	}
}

func TestSpinSetsLongitude(t *testing.T) {
	tests := []struct {
		name         string
		minutes      float64
		hour, minute int
	}{
		{"quarter turn", 390.5, 6, 30},
		{"just past zero", 1.5, 0, 1},
		{"late", 1439.5, 23, 59},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spin := tc.minutes / 1440 * 2 * math.Pi
			r := Compute(mgl64.HomogRotate3DY(spin), 1)
			if r.RAHour != tc.hour || r.RAMinute != tc.minute {
				t.Errorf("RA: got %02dh %02dm, want %02dh %02dm", r.RAHour, r.RAMinute, tc.hour, tc.minute)
			}
		})
	}
}

func TestTiltSetsLatitude(t *testing.T) {
	tilt := mgl64.DegToRad(23.44)
	r := Compute(mgl64.HomogRotate3DX(tilt), 1)
	if r.DecSign != "+" || r.DecDegrees != 23 {
		t.Errorf("Dec: got %s%02d, want +23", r.DecSign, r.DecDegrees)
	}
}

func TestSignFactorNegatesLatitude(t *testing.T) {
	world := mgl64.HomogRotate3DX(mgl64.DegToRad(40)).Mul4(mgl64.HomogRotate3DY(1.1))
	pos := Compute(world, 1)
	neg := Compute(world, -1)

	if pos.DecSign == neg.DecSign {
		t.Fatalf("sign factor did not flip latitude sign: %s vs %s", pos.DecSign, neg.DecSign)
	}
	if math.Abs(pos.Lat+neg.Lat) > 1e-12 {
		t.Errorf("latitudes not negated: %f vs %f", pos.Lat, neg.Lat)
	}
	// Degrees are floored before the absolute value, so negatives read one higher.
	if d := neg.DecDegrees - pos.DecDegrees; d < 0 || d > 1 {
		t.Errorf("degree magnitudes: got %d and %d", pos.DecDegrees, neg.DecDegrees)
	}
	if pos.Lon != neg.Lon {
		t.Errorf("sign factor changed longitude")
	}
}

func TestTranslationAlongViewAxis(t *testing.T) {
	world := mgl64.Translate3D(0, 0, -3)
	r := Compute(world, 1)
	if r.RAHour != 0 || r.RAMinute != 0 || r.DecDegrees != 0 {
		t.Errorf("got %s", r)
	}
}

func TestLongitudeWrapsIntoOneTurn(t *testing.T) {
	for _, spin := range []float64{-3, -0.1, 0.4, 7, 13} {
		r := Compute(mgl64.HomogRotate3DY(spin), 1)
		if r.Lon < 0 || r.Lon >= 2*math.Pi {
			t.Errorf("spin %f: lon %f outside [0, 2π)", spin, r.Lon)
		}
		if want := core.NormalizeAngle(spin); math.Abs(r.Lon-want) > 1e-9 {
			t.Errorf("spin %f: got lon %f, want %f", spin, r.Lon, want)
		}
	}
}

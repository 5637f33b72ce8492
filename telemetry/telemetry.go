// Package telemetry computes the sub-observer point of a spinning body.
package telemetry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"planetcloud/core"
)

// Observer is the camera position direction in world space. The camera
// always looks at the origin from +Z.
var Observer = mgl64.Vec3{0, 0, 1}

// Reading is the sub-observer point in sexagesimal form.
type Reading struct {
	RAHour     int
	RAMinute   int
	DecSign    string
	DecDegrees int

	// Lon and Lat are the raw values in radians, Lat already scaled by the
	// sign factor.
	Lon float64
	Lat float64
}

// Compute maps the observer direction into the body frame described by
// world and reports its longitude and latitude. signFactor scales the
// latitude for bodies with a flipped rotation convention.
func Compute(world mgl64.Mat4, signFactor float64) Reading {
	local := mgl64.TransformCoordinate(Observer, world.Inv()).Normalize()

	lat := math.Asin(clamp(local.Y())) * signFactor
	lon := core.NormalizeAngle(math.Atan2(-local.X(), local.Z()))

	minutes := lon / (2 * math.Pi) * 1440
	decDeg := core.RadiansToDegrees(lat)

	r := Reading{
		RAHour:     int(math.Floor(minutes / 60)),
		RAMinute:   int(math.Floor(math.Mod(minutes, 60))),
		DecSign:    "-",
		DecDegrees: int(math.Abs(math.Floor(decDeg))),
		Lon:        lon,
		Lat:        lat,
	}
	if decDeg >= 0 {
		r.DecSign = "+"
	}
	return r
}

func (r Reading) String() string {
	return fmt.Sprintf("TGT: RA %02dh %02dm | DEC %s%02d°", r.RAHour, r.RAMinute, r.DecSign, r.DecDegrees)
}

// NaN from asin is possible when normalization leaves |y| a hair above 1.
func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

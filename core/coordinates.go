package core

import (
	"math"
)

// Geographic represents a position in body-fixed geographic coordinates
type Geographic struct {
	Lat float64 // Latitude in radians [-π/2, π/2], positive = north
	Lon float64 // Longitude in radians, positive = east
	Alt float64 // Altitude above reference radius
}

// DegreesToRadians converts degrees to radians
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// RadiansToDegrees converts radians to degrees
func RadiansToDegrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}

// GeographicToCartesian converts geographic coordinates to a body-fixed
// position. Y points to the north pole and longitude 0 lies on +Z, which is
// the direction the camera sees at zero spin.
func GeographicToCartesian(g Geographic, radius float64) Vector3 {
	r := radius + g.Alt
	cosLat := math.Cos(g.Lat)

	return Vector3{
		X: r * cosLat * math.Sin(g.Lon),
		Y: r * math.Sin(g.Lat),
		Z: r * cosLat * math.Cos(g.Lon),
	}
}

// CartesianToGeographic converts a body-fixed position to geographic coordinates
func CartesianToGeographic(c Vector3, radius float64) Geographic {
	r := c.Length()

	// Handle special case of origin
	if r < 1e-10 {
		return Geographic{Lat: 0, Lon: 0, Alt: -radius}
	}

	return Geographic{
		Lat: math.Asin(c.Y / r),
		Lon: math.Atan2(c.X, c.Z),
		Alt: r - radius,
	}
}

// SphericalToCartesian maps the sampler's (r, θ, φ) convention, where φ is
// measured from +Z, to a position.
func SphericalToCartesian(r, theta, phi float64) Vector3 {
	sinPhi := math.Sin(phi)
	return Vector3{
		X: r * sinPhi * math.Cos(theta),
		Y: r * sinPhi * math.Sin(theta),
		Z: r * math.Cos(phi),
	}
}

// NormalizeAngle wraps an angle into [0, 2π)
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

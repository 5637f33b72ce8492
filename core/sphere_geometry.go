package core

import (
	"math"
)

// SphereWireframe generates the edge list of a UV sphere. Bodies carry one
// as a faint reference grid around their point cloud.
func SphereWireframe(radius float64, segments, rings int) []Segment3 {
	// Use default values if not specified
	if segments <= 0 {
		segments = 24
	}
	if rings <= 0 {
		rings = 12
	}

	vertex := func(ring, seg int) Vector3 {
		theta := float64(ring) * math.Pi / float64(rings)
		phi := float64(seg) * 2.0 * math.Pi / float64(segments)
		sinTheta := math.Sin(theta)

		return Vector3{
			X: math.Cos(phi) * sinTheta * radius,
			Y: math.Cos(theta) * radius,
			Z: math.Sin(phi) * sinTheta * radius,
		}
	}

	edges := make([]Segment3, 0, rings*segments*2)
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := vertex(ring, seg)

			// Meridian edge down to the next ring
			edges = append(edges, Segment3{A: current, B: vertex(ring+1, seg)})

			// Parallel edge; the top ring collapses to a point, skip it
			if ring > 0 {
				edges = append(edges, Segment3{A: current, B: vertex(ring, seg+1)})
			}
		}
	}

	return edges
}

// OrbitPath returns a closed ellipse in the XZ plane as line segments.
func OrbitPath(radiusX, radiusZ float64, points int) []Segment3 {
	if points < 3 {
		points = 64
	}
	path := make([]Segment3, 0, points)
	prev := Vector3{X: radiusX}
	for i := 1; i <= points; i++ {
		a := float64(i) * 2 * math.Pi / float64(points)
		next := Vector3{X: radiusX * math.Cos(a), Z: radiusZ * math.Sin(a)}
		path = append(path, Segment3{A: prev, B: next})
		prev = next
	}
	return path
}

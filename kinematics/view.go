package kinematics

import "math"

const (
	DragSensitivity = 0.005
	Damping         = 0.1
)

// ViewControl eases a node's rotation toward a drag target and eases the
// zoom slider toward its set value.
type ViewControl struct {
	TargetX, TargetY float64
	Slider           float64 // current, 0..100
	SliderTarget     float64
	InitialZ         float64
}

// NewViewControl starts at 100% zoom with the camera at initialZ.
func NewViewControl(initialZ float64) *ViewControl {
	return &ViewControl{Slider: 50, SliderTarget: 50, InitialZ: initialZ}
}

// Drag converts a pointer delta in pixels into a rotation target.
func (v *ViewControl) Drag(dx, dy float64) {
	v.TargetY += dx * DragSensitivity
	v.TargetX += dy * DragSensitivity
}

// SetZoom sets the slider target, clamped to [0, 100].
func (v *ViewControl) SetZoom(value float64) {
	v.SliderTarget = math.Max(0, math.Min(100, value))
}

// Update applies one frame of damping to node and returns the camera distance.
func (v *ViewControl) Update(node *Node) float64 {
	if node != nil {
		node.Rotation.Y += (v.TargetY - node.Rotation.Y) * Damping
		node.Rotation.X += (v.TargetX - node.Rotation.X) * Damping
	}
	v.Slider += (v.SliderTarget - v.Slider) * Damping
	return v.CameraZ()
}

// ZoomFactor maps the slider logarithmically: 0 → 0.5, 50 → 1, 100 → 2.
func (v *ViewControl) ZoomFactor() float64 {
	return 0.5 * math.Pow(4, v.Slider/100)
}

func (v *ViewControl) CameraZ() float64 {
	return v.InitialZ / v.ZoomFactor()
}

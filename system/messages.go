package system

import (
	"planetcloud/core"
)

func (s *System) nodes() []core.NodeData {
	nodes := s.Body.Nodes()
	data := make([]core.NodeData, len(nodes))
	for i, n := range nodes {
		data[i] = n.Data()
	}
	return data
}

// Scene describes the whole scene for a newly connected client.
func (s *System) Scene() core.SceneData {
	scene := core.SceneData{
		Type:    "scene",
		Body:    s.Name,
		Camera:  s.camera,
		Nodes:   s.nodes(),
		Clouds:  make([]core.CloudData, 0, len(s.Clouds)),
		Wires:   make([]core.WireData, 0, len(s.Wires)),
		Time:    s.time,
		Summary: s.Summary(),
	}
	for _, a := range s.Clouds {
		scene.Clouds = append(scene.Clouds, a.Cloud.Flatten(a.Node.Name))
	}
	for _, w := range s.Wires {
		scene.Wires = append(scene.Wires, core.WireData{
			Node:     w.Node.Name,
			Color:    w.Color,
			Opacity:  w.Opacity,
			Vertices: core.FlattenSegments(w.Segments),
		})
	}
	return scene
}

// FrameData packages a step result with the current node transforms and
// every dynamic cloud.
func (s *System) FrameData(f Frame) core.FrameData {
	data := core.FrameData{
		Type:      "frame",
		Frame:     f.Number,
		Time:      f.Time,
		Camera:    f.Camera,
		Zoom:      f.Zoom,
		Nodes:     s.nodes(),
		Telemetry: f.Reading.String(),
	}
	for _, a := range s.Clouds {
		if a.Cloud.Dynamic {
			data.Clouds = append(data.Clouds, a.Cloud.Flatten(a.Node.Name))
		}
	}
	return data
}

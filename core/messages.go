package core

// CloudData is a point cloud flattened for the browser's BufferGeometry
type CloudData struct {
	Name      string    `json:"name"`
	Kind      CloudKind `json:"kind"`
	Node      string    `json:"node"`
	Positions []float32 `json:"positions"`
	Colors    []float32 `json:"colors"`
	Sizes     []float32 `json:"sizes,omitempty"`
	PointSize float64   `json:"pointSize"`
	Opacity   float64   `json:"opacity"`
	Dynamic   bool      `json:"dynamic"`
}

// NodeData describes one scene-graph node
type NodeData struct {
	Name     string     `json:"name"`
	Parent   string     `json:"parent,omitempty"`
	Position [3]float64 `json:"position"`
	Rotation [3]float64 `json:"rotation"`
	Scale    [3]float64 `json:"scale"`
}

// WireData is a reference grid or orbit path attached to a node
type WireData struct {
	Node     string    `json:"node"`
	Color    string    `json:"color"`
	Opacity  float64   `json:"opacity"`
	Vertices []float32 `json:"vertices"`
}

// SceneData is sent once when a client connects
type SceneData struct {
	Type    string      `json:"type"`
	Body    string      `json:"body"`
	Camera  float64     `json:"camera"`
	Nodes   []NodeData  `json:"nodes"`
	Clouds  []CloudData `json:"clouds"`
	Wires   []WireData  `json:"wires"`
	Time    float64     `json:"time"`
	Summary string      `json:"summary"`
}

// FrameData is broadcast every tick. Only dynamic clouds are included.
type FrameData struct {
	Type      string      `json:"type"`
	Frame     uint64      `json:"frame"`
	Time      float64     `json:"time"`
	Camera    float64     `json:"camera"`
	Zoom      float64     `json:"zoom"`
	Nodes     []NodeData  `json:"nodes"`
	Clouds    []CloudData `json:"clouds"`
	Telemetry string      `json:"telemetry"`
}

// ContourData is the response of the background contour endpoint
type ContourData struct {
	Type     string    `json:"type"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Levels   []float64 `json:"levels"`
	Segments []Segment `json:"segments"`
}

// Flatten converts a cloud to its wire form.
func (pc *PointCloud) Flatten(node string) CloudData {
	data := CloudData{
		Name:      pc.Name,
		Kind:      pc.Kind,
		Node:      node,
		Positions: make([]float32, 0, len(pc.Positions)*3),
		Colors:    make([]float32, 0, len(pc.Colors)*3),
		PointSize: pc.PointSize,
		Opacity:   pc.Opacity,
		Dynamic:   pc.Dynamic,
	}
	for i, p := range pc.Positions {
		c := pc.Colors[i]
		data.Positions = append(data.Positions, float32(p.X), float32(p.Y), float32(p.Z))
		data.Colors = append(data.Colors, float32(c.R), float32(c.G), float32(c.B))
	}
	if pc.Sizes != nil {
		data.Sizes = make([]float32, len(pc.Sizes))
		for i, s := range pc.Sizes {
			data.Sizes[i] = float32(s)
		}
	}
	return data
}

// FlattenSegments converts 3D segments into a vertex list for LineSegments.
func FlattenSegments(segments []Segment3) []float32 {
	out := make([]float32, 0, len(segments)*6)
	for _, s := range segments {
		out = append(out,
			float32(s.A.X), float32(s.A.Y), float32(s.A.Z),
			float32(s.B.X), float32(s.B.Y), float32(s.B.Z))
	}
	return out
}

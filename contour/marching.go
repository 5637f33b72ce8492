// Package contour extracts iso-lines from a sampled scalar field with
// marching squares.
package contour

import (
	"math"

	"planetcloud/core"
	"planetcloud/noise"
)

// Epsilon is the corner difference below which an edge is treated as flat.
const Epsilon = 1e-5

// Corner weights of the case index.
const (
	TopLeft     = 8
	TopRight    = 4
	BottomRight = 2
	BottomLeft  = 1
)

// Edge names a cell side.
type Edge int

const (
	EdgeTop    Edge = iota // TL -> TR
	EdgeRight              // TR -> BR
	EdgeBottom             // BL -> BR
	EdgeLeft               // TL -> BL
)

func (e Edge) String() string {
	return [...]string{"top", "right", "bottom", "left"}[e]
}

// Cases maps each of the 16 states to the edge pairs it connects. Saddles
// 5 and 10 always produce two separate segments.
var Cases = [16][][2]Edge{
	0:  nil,
	1:  {{EdgeBottom, EdgeLeft}},
	2:  {{EdgeRight, EdgeBottom}},
	3:  {{EdgeRight, EdgeLeft}},
	4:  {{EdgeTop, EdgeRight}},
	5:  {{EdgeTop, EdgeLeft}, {EdgeRight, EdgeBottom}},
	6:  {{EdgeTop, EdgeBottom}},
	7:  {{EdgeTop, EdgeLeft}},
	8:  {{EdgeTop, EdgeLeft}},
	9:  {{EdgeTop, EdgeBottom}},
	10: {{EdgeTop, EdgeRight}, {EdgeBottom, EdgeLeft}},
	11: {{EdgeTop, EdgeRight}},
	12: {{EdgeRight, EdgeLeft}},
	13: {{EdgeRight, EdgeBottom}},
	14: {{EdgeBottom, EdgeLeft}},
	15: nil,
}

// Grid holds Cols×Rows samples spaced Cell apart. Values are indexed
// [col][row] with row 0 at the top.
type Grid struct {
	Cols, Rows int
	Cell       float64
	Width      float64
	Height     float64
	Values     [][]float64
}

// NewGrid sizes a grid for a width×height canvas. A zero-area canvas yields
// a single sample and no cells.
func NewGrid(width, height, cell float64) *Grid {
	if cell <= 0 {
		cell = 1
	}
	g := &Grid{
		Cols:   samples(width, cell),
		Rows:   samples(height, cell),
		Cell:   cell,
		Width:  width,
		Height: height,
	}
	if width <= 0 || height <= 0 {
		g.Cols, g.Rows = 1, 1
	}
	g.Values = make([][]float64, g.Cols)
	for i := range g.Values {
		g.Values[i] = make([]float64, g.Rows)
	}
	return g
}

func samples(extent, cell float64) int {
	if extent <= 0 || math.IsNaN(extent) {
		return 1
	}
	return int(math.Ceil(extent/cell)) + 1
}

// Fill samples f at every grid point, remapped to [0, 1].
func (g *Grid) Fill(f noise.Field2D, scale, offset float64) {
	for i := 0; i < g.Cols; i++ {
		for j := 0; j < g.Rows; j++ {
			x := float64(i)*g.Cell*scale + offset
			y := float64(j)*g.Cell*scale + offset
			g.Values[i][j] = noise.Unit(f.Eval2(x, y))
		}
	}
}

// EdgeT is the interpolation parameter where the edge v1→v2 crosses
// threshold, or 0.5 when the edge is flat.
func EdgeT(v1, v2, threshold float64) float64 {
	d := v2 - v1
	if math.Abs(d) < Epsilon {
		return 0.5
	}
	return (threshold - v1) / d
}

// State builds the 4-bit case index of a cell.
func State(tl, tr, br, bl, level float64) int {
	s := 0
	if tl >= level {
		s |= TopLeft
	}
	if tr >= level {
		s |= TopRight
	}
	if br >= level {
		s |= BottomRight
	}
	if bl >= level {
		s |= BottomLeft
	}
	return s
}

// Levels returns start + k/count for k = 0, 1, ... while below end.
func Levels(start, end float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	var levels []float64
	for k := 0; ; k++ {
		l := start + float64(k)/float64(count)
		if l >= end {
			break
		}
		levels = append(levels, l)
	}
	return levels
}

// DefaultLevels is 0.2 to 0.8 in steps of 1/6.
func DefaultLevels() []float64 {
	return Levels(0.2, 0.8, 6)
}

// Cell extracts the segments of one cell whose top-left corner is at (x, y).
func Cell(x, y, size, tl, tr, br, bl, level float64, out []core.Segment) []core.Segment {
	state := State(tl, tr, br, bl, level)
	pairs := Cases[state]
	if len(pairs) == 0 {
		return out
	}

	point := func(e Edge) (float64, float64) {
		switch e {
		case EdgeTop:
			return x + size*EdgeT(tl, tr, level), y
		case EdgeRight:
			return x + size, y + size*EdgeT(tr, br, level)
		case EdgeBottom:
			return x + size*EdgeT(bl, br, level), y + size
		default:
			return x, y + size*EdgeT(tl, bl, level)
		}
	}

	for _, p := range pairs {
		x1, y1 := point(p[0])
		x2, y2 := point(p[1])
		out = append(out, core.Segment{X1: x1, Y1: y1, X2: x2, Y2: y2, Level: level})
	}
	return out
}

// Extract runs every level over every cell of the grid.
func Extract(g *Grid, levels []float64) []core.Segment {
	segments := []core.Segment{}
	if g == nil || g.Cols < 2 || g.Rows < 2 {
		return segments
	}
	for _, level := range levels {
		for i := 0; i < g.Cols-1; i++ {
			for j := 0; j < g.Rows-1; j++ {
				x := float64(i) * g.Cell
				y := float64(j) * g.Cell
				segments = Cell(x, y, g.Cell,
					g.Values[i][j], g.Values[i+1][j], g.Values[i+1][j+1], g.Values[i][j+1],
					level, segments)
			}
		}
	}
	return segments
}

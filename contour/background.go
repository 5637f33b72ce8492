package contour

import (
	"sync"

	"planetcloud/core"
	"planetcloud/noise"
)

// Options configures the animated background.
type Options struct {
	Cell       float64
	NoiseScale float64
	Offset     float64
	LevelStart float64
	LevelEnd   float64
	LevelSteps int
}

// DefaultOptions matches the stock background: 5px cells, scale 0.002,
// offset 100 and levels 0.2..0.8 in sixths.
func DefaultOptions() Options {
	return Options{
		Cell:       5,
		NoiseScale: 0.002,
		Offset:     100,
		LevelStart: 0.2,
		LevelEnd:   0.8,
		LevelSteps: 6,
	}
}

// MaxCached bounds how many canvas sizes a Background remembers.
const MaxCached = 8

type canvas struct {
	width, height float64
}

type extraction struct {
	grid     *Grid
	segments []core.Segment
}

// Background owns the contour grid for one canvas. Resize rebuilds the grid
// for sizes it has not seen recently; segments are cached per size.
type Background struct {
	opts   Options
	field  noise.Field2D
	levels []float64

	mu       sync.Mutex
	grid     *Grid
	segments []core.Segment
	cache    map[canvas]extraction
	order    []canvas // oldest first
}

// NewBackground creates a background that samples field.
func NewBackground(field noise.Field2D, opts Options) *Background {
	if opts.Cell <= 0 {
		opts.Cell = DefaultOptions().Cell
	}
	return &Background{
		opts:   opts,
		field:  field,
		levels: Levels(opts.LevelStart, opts.LevelEnd, opts.LevelSteps),
		cache:  make(map[canvas]extraction),
	}
}

// Resize switches to a canvas size and returns its segments, extracting
// them only on a cache miss.
func (b *Background) Resize(width, height float64) []core.Segment {
	key := canvas{width, height}

	b.mu.Lock()
	if e, ok := b.cache[key]; ok {
		b.grid, b.segments = e.grid, e.segments
		b.mu.Unlock()
		return e.segments
	}
	b.mu.Unlock()

	grid := NewGrid(width, height, b.opts.Cell)
	grid.Fill(b.field, b.opts.NoiseScale, b.opts.Offset)
	segments := Extract(grid, b.levels)

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.cache[key]; !ok {
		if len(b.order) >= MaxCached {
			delete(b.cache, b.order[0])
			b.order = b.order[1:]
		}
		b.order = append(b.order, key)
	}
	b.cache[key] = extraction{grid: grid, segments: segments}
	b.grid = grid
	b.segments = segments
	return segments
}

// Segments returns the segments of the last resize.
func (b *Background) Segments() []core.Segment {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.segments
}

// Grid returns the grid of the last resize, or nil.
func (b *Background) Grid() *Grid {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.grid
}

// Levels returns the iso-levels in use.
func (b *Background) Levels() []float64 {
	return b.levels
}

// Data packages a resize result for the wire.
func (b *Background) Data(width, height float64) core.ContourData {
	return core.ContourData{
		Type:     "contours",
		Width:    width,
		Height:   height,
		Levels:   b.levels,
		Segments: b.Resize(width, height),
	}
}

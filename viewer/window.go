package viewer

import (
	"context"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"planetcloud/config"
	"planetcloud/contour"
	"planetcloud/core"
	"planetcloud/logging"
	"planetcloud/system"
)

const (
	fovY      = 75
	zoomStep  = 2.0
	hudHeight = 20
)

// Viewer owns the window state for one scene.
type Viewer struct {
	settings   config.ViewerSettings
	sys        *system.System
	background *contour.Background
	log        logging.Logger

	timeScale float64
	zoom      float64
	batches   []Batch
	segments  []core.Segment
	width     int
	height    int
}

// New creates a viewer for sys. The background may be nil.
func New(settings config.ViewerSettings, sys *system.System, background *contour.Background, timeScale float64, log logging.Logger) *Viewer {
	if log == nil {
		log = logging.Noop()
	}
	return &Viewer{
		settings:   settings,
		sys:        sys,
		background: background,
		log:        log.With(logging.String("body", sys.Name)),
		timeScale:  timeScale,
		zoom:       sys.View.SliderTarget,
	}
}

// Run opens the window and draws until it is closed or ctx is done. Raylib
// must be driven from the goroutine that opened the window.
func (v *Viewer) Run(ctx context.Context) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(v.settings.Width), int32(v.settings.Height), "planetcloud - "+v.sys.Name)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(v.settings.FPS))

	v.log.Info(ctx, "viewer open",
		logging.Int("width", v.settings.Width),
		logging.Int("height", v.settings.Height),
		logging.Int("particles", v.sys.Particles()),
	)

	start := time.Now()
	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			break
		}
		v.input()
		f := v.sys.Step(v.timeScale)
		v.resize()
		v.batches = Project(v.sys, v.batches)
		v.draw(f)
	}
	v.log.Info(ctx, "viewer closed",
		logging.Int64("frames", int64(v.sys.Snapshot().Number)),
		logging.Any("took", time.Since(start)),
	)
	return nil
}

func (v *Viewer) input() {
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		v.sys.Drag(float64(d.X), float64(d.Y))
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.zoom = clamp(v.zoom+float64(wheel)*zoomStep*2, 0, 100)
		v.sys.Zoom(v.zoom)
	}
	switch {
	case rl.IsKeyDown(rl.KeyEqual), rl.IsKeyDown(rl.KeyKpAdd):
		v.zoom = clamp(v.zoom+zoomStep, 0, 100)
		v.sys.Zoom(v.zoom)
	case rl.IsKeyDown(rl.KeyMinus), rl.IsKeyDown(rl.KeyKpSubtract):
		v.zoom = clamp(v.zoom-zoomStep, 0, 100)
		v.sys.Zoom(v.zoom)
	}
	switch {
	case rl.IsKeyPressed(rl.KeyRightBracket):
		v.timeScale *= 2
	case rl.IsKeyPressed(rl.KeyLeftBracket):
		v.timeScale /= 2
	case rl.IsKeyPressed(rl.KeySpace):
		if v.timeScale == 0 {
			v.timeScale = 1
		} else {
			v.timeScale = 0
		}
	}
}

// resize recomputes the contour background when the window size changes.
func (v *Viewer) resize() {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	if w == v.width && h == v.height {
		return
	}
	v.width, v.height = w, h
	if v.background != nil {
		v.segments = v.background.Resize(float64(w), float64(h))
	}
}

func (v *Viewer) draw(f system.Frame) {
	camera := rl.Camera3D{
		Position:   rl.NewVector3(0, 0, float32(f.Camera)),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       fovY,
		Projection: rl.CameraPerspective,
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	for _, s := range v.segments {
		rl.DrawLineV(
			rl.NewVector2(float32(s.X1), float32(s.Y1)),
			rl.NewVector2(float32(s.X2), float32(s.Y2)),
			rl.NewColor(80, 80, 80, 90),
		)
	}

	rl.BeginMode3D(camera)
	for _, l := range Wires(v.sys) {
		rl.DrawLine3D(vec(l.A), vec(l.B), rgba(l.Color, l.Opacity))
	}
	for _, b := range v.batches {
		for i, p := range b.Points {
			rl.DrawPoint3D(vec(p), rgba(b.Colors[i], b.Opacity))
		}
	}
	rl.EndMode3D()

	rl.DrawRectangle(0, 0, int32(v.width), hudHeight, rl.NewColor(0, 0, 0, 160))
	rl.DrawText(f.Reading.String(), 8, 4, 12, rl.NewColor(0, 255, 170, 255))
	rl.DrawFPS(int32(v.width)-90, 4)

	rl.EndDrawing()
}

func vec(p core.Vector3) rl.Vector3 {
	return rl.NewVector3(float32(p.X), float32(p.Y), float32(p.Z))
}

// rgba clamps a linear color to bytes.
func rgba(c core.Color, opacity float64) rl.Color {
	return rl.NewColor(channel(c.R), channel(c.G), channel(c.B), channel(opacity))
}

func channel(v float64) uint8 {
	return uint8(math.Round(clamp(v, 0, 1) * 255))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Package config loads settings.json over built-in defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"planetcloud/contour"
	"planetcloud/logging"
	"planetcloud/observability"
)

// DefaultPath is where Load looks when given an empty path.
const DefaultPath = "settings.json"

type Settings struct {
	Simulation SimulationSettings          `json:"simulation"`
	Server     ServerSettings              `json:"server"`
	Background BackgroundSettings          `json:"background"`
	Viewer     ViewerSettings              `json:"viewer"`
	Logging    logging.Config              `json:"logging"`
	Tracing    observability.TracingConfig `json:"tracing"`
}

type SimulationSettings struct {
	Body string `json:"body"`
	Seed int64  `json:"seed"`
	// TimeScale multiplies the per-tick frame increment.
	TimeScale float64 `json:"timeScale"`
}

type ServerSettings struct {
	Addr             string `json:"addr"`
	UpdateIntervalMs int    `json:"updateIntervalMs"`
	StaticDir        string `json:"staticDir"`
}

type BackgroundSettings struct {
	CellSize   float64 `json:"cellSize"`
	NoiseScale float64 `json:"noiseScale"`
	Offset     float64 `json:"offset"`
	LevelStart float64 `json:"levelStart"`
	LevelEnd   float64 `json:"levelEnd"`
	LevelCount int     `json:"levelCount"`
}

type ViewerSettings struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	FPS    int `json:"fps"`
}

// Defaults mirrors the browser build: 60 frames per second, the contour
// background at 5px cells.
func Defaults() Settings {
	bg := contour.DefaultOptions()
	return Settings{
		Simulation: SimulationSettings{
			Body:      "earth",
			Seed:      1,
			TimeScale: 1,
		},
		Server: ServerSettings{
			Addr:             ":8080",
			UpdateIntervalMs: 16,
			StaticDir:        "web",
		},
		Background: BackgroundSettings{
			CellSize:   bg.Cell,
			NoiseScale: bg.NoiseScale,
			Offset:     bg.Offset,
			LevelStart: bg.LevelStart,
			LevelEnd:   bg.LevelEnd,
			LevelCount: bg.LevelSteps,
		},
		Viewer: ViewerSettings{
			Width:  1280,
			Height: 720,
			FPS:    60,
		},
		Logging: logging.Config{
			Level:  "info",
			Format: "text",
		},
		Tracing: observability.TracingConfig{
			ServiceName: "planetcloud",
			Exporter:    "stdout",
			SampleRatio: 1,
		},
	}
}

// Load reads path (DefaultPath when empty) over the defaults. A missing
// file is not an error.
func Load(path string) (*Settings, error) {
	if path == "" {
		path = DefaultPath
	}
	s := Defaults()

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &s, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &s, nil
}

// Validate rejects settings the server cannot run with.
func (s *Settings) Validate() error {
	if s.Server.UpdateIntervalMs <= 0 {
		return fmt.Errorf("server.updateIntervalMs must be positive, got %d", s.Server.UpdateIntervalMs)
	}
	if s.Simulation.TimeScale < 0 {
		return fmt.Errorf("simulation.timeScale must not be negative, got %v", s.Simulation.TimeScale)
	}
	if s.Background.CellSize <= 0 {
		return fmt.Errorf("background.cellSize must be positive, got %v", s.Background.CellSize)
	}
	if s.Background.LevelCount < 0 {
		return fmt.Errorf("background.levelCount must not be negative, got %d", s.Background.LevelCount)
	}
	return nil
}

// UpdateInterval is the server tick period.
func (s *Settings) UpdateInterval() time.Duration {
	return time.Duration(s.Server.UpdateIntervalMs) * time.Millisecond
}

// ContourOptions converts the background section for the contour package.
func (s *Settings) ContourOptions() contour.Options {
	b := s.Background
	return contour.Options{
		Cell:       b.CellSize,
		NoiseScale: b.NoiseScale,
		Offset:     b.Offset,
		LevelStart: b.LevelStart,
		LevelEnd:   b.LevelEnd,
		LevelSteps: b.LevelCount,
	}
}

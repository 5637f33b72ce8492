package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Defaults()
	if s.Server.Addr != want.Server.Addr || s.Simulation.Body != want.Simulation.Body {
		t.Errorf("defaults: got %+v, want %+v", s, want)
	}
	if got := s.UpdateInterval(); got != 16*time.Millisecond {
		t.Errorf("interval: got %v, want 16ms", got)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeSettings(t, `{
		"simulation": {"body": "saturn", "seed": 9},
		"server": {"addr": ":9090"},
		"logging": {"level": "debug", "format": "json"},
		"tracing": {"enabled": true}
	}`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"body", s.Simulation.Body, "saturn"},
		{"seed", s.Simulation.Seed, int64(9)},
		{"time scale kept", s.Simulation.TimeScale, 1.0},
		{"addr", s.Server.Addr, ":9090"},
		{"interval kept", s.Server.UpdateIntervalMs, 16},
		{"log level", s.Logging.Level, "debug"},
		{"log format", s.Logging.Format, "json"},
		{"tracing", s.Tracing.Enabled, true},
		{"exporter kept", s.Tracing.Exporter, "stdout"},
		{"cell kept", s.Background.CellSize, 5.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"server": `},
		{"zero interval", `{"server": {"updateIntervalMs": 0}}`},
		{"negative time scale", `{"simulation": {"timeScale": -1}}`},
		{"zero cell", `{"background": {"cellSize": 0}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeSettings(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestContourOptions(t *testing.T) {
	s := Defaults()
	opts := s.ContourOptions()
	if opts.Cell != 5 || opts.LevelSteps != 6 || opts.NoiseScale != 0.002 {
		t.Errorf("options: got %+v", opts)
	}
}

package observability

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel"
)

func TestCollectorRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	c.ObserveFrame(2 * time.Millisecond)
	c.ObserveFrame(3 * time.Millisecond)
	c.ObserveBroadcast(nil)
	c.ObserveBroadcast(errors.New("closed"))
	c.ObserveBuild("mars", 50*time.Millisecond, 1234)
	c.SetClients(2)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"frames", testutil.ToFloat64(c.Frames), 2},
		{"broadcasts ok", testutil.ToFloat64(c.Broadcasts.WithLabelValues("ok")), 1},
		{"broadcasts error", testutil.ToFloat64(c.Broadcasts.WithLabelValues("error")), 1},
		{"particles", testutil.ToFloat64(c.Particles.WithLabelValues("mars")), 1234},
		{"clients", testutil.ToFloat64(c.Clients), 2},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %f, want %f", tt.name, tt.got, tt.want)
		}
	}
}

func TestCollectorRegistersTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	b, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	a.ObserveFrame(time.Millisecond)
	if got := testutil.ToFloat64(b.Frames); got != 1 {
		t.Errorf("shared frames: got %f, want 1", got)
	}
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	c.ObserveFrame(time.Millisecond)
	c.ObserveBroadcast(nil)
	c.ObserveBuild("sun", time.Second, 1)
	c.SetClients(1)
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	c.ObserveFrame(time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "planetcloud_frames_total 1") {
		t.Errorf("metrics output missing frame counter:\n%s", body)
	}
}

func TestTracingStdout(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := InitTracing(context.Background(), TracingConfig{Enabled: true, Output: &buf}, nil)
	if err != nil {
		t.Fatalf("InitTracing: %v", err)
	}
	_, span := otel.Tracer("test").Start(context.Background(), "probe")
	span.End()
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if !strings.Contains(buf.String(), "probe") {
		t.Errorf("span not exported: %q", buf.String())
	}

	if _, err := InitTracing(context.Background(), TracingConfig{}, nil); err != nil {
		t.Fatalf("disabled: %v", err)
	}
}

func TestTracingUnknownExporter(t *testing.T) {
	_, err := InitTracing(context.Background(), TracingConfig{Enabled: true, Exporter: "zipkin"}, nil)
	if err == nil {
		t.Error("expected error for unknown exporter")
	}
}

// Package observability holds the Prometheus collectors and tracer setup
// shared by the server and the catalog.
package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the metrics of a running scene server.
type Collector struct {
	gatherer prometheus.Gatherer

	FrameDuration prometheus.Histogram
	Frames        prometheus.Counter
	Broadcasts    *prometheus.CounterVec
	Clients       prometheus.Gauge
	Generation    *prometheus.HistogramVec
	Particles     *prometheus.GaugeVec
}

// NewCollector registers the metrics against reg, defaulting to the global
// registry when nil. Registering twice returns the existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	frameDuration, err := register(reg, prometheus.Histogram(prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "planetcloud_frame_duration_seconds",
		Help:    "Time spent stepping the scene and encoding one frame.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	})), "planetcloud_frame_duration_seconds")
	if err != nil {
		return nil, err
	}
	frames, err := register(reg, prometheus.Counter(prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planetcloud_frames_total",
		Help: "Frames stepped across all sessions.",
	})), "planetcloud_frames_total")
	if err != nil {
		return nil, err
	}
	broadcasts, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planetcloud_broadcasts_total",
		Help: "Frame messages written to clients, labeled by result.",
	}, []string{"result"}), "planetcloud_broadcasts_total")
	if err != nil {
		return nil, err
	}
	clients, err := register(reg, prometheus.Gauge(prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "planetcloud_clients",
		Help: "Connected websocket clients.",
	})), "planetcloud_clients")
	if err != nil {
		return nil, err
	}
	generation, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planetcloud_generation_seconds",
		Help:    "Time to build a body's scene, labeled by body.",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"body"}), "planetcloud_generation_seconds")
	if err != nil {
		return nil, err
	}
	particles, err := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "planetcloud_particles",
		Help: "Points in the most recently built scene, labeled by body.",
	}, []string{"body"}), "planetcloud_particles")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:      gatherer,
		FrameDuration: frameDuration,
		Frames:        frames,
		Broadcasts:    broadcasts,
		Clients:       clients,
		Generation:    generation,
		Particles:     particles,
	}, nil
}

// ObserveFrame records one stepped frame.
func (c *Collector) ObserveFrame(d time.Duration) {
	if c == nil {
		return
	}
	c.Frames.Inc()
	c.FrameDuration.Observe(d.Seconds())
}

// ObserveBuild records a scene build.
func (c *Collector) ObserveBuild(body string, d time.Duration, particles int) {
	if c == nil {
		return
	}
	c.Generation.WithLabelValues(body).Observe(d.Seconds())
	c.Particles.WithLabelValues(body).Set(float64(particles))
}

// ObserveBroadcast counts one client write.
func (c *Collector) ObserveBroadcast(err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.Broadcasts.WithLabelValues(result).Inc()
}

// SetClients updates the connected client gauge.
func (c *Collector) SetClients(n int) {
	if c == nil {
		return
	}
	c.Clients.Set(float64(n))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C, name string) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
			var zero C
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero C
		return zero, err
	}
	return c, nil
}

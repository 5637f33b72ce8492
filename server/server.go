// Package server streams body scenes to browsers over websockets and serves
// the contour background.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"planetcloud/catalog"
	"planetcloud/config"
	"planetcloud/contour"
	"planetcloud/logging"
	"planetcloud/noise"
	"planetcloud/observability"
)

// MaxCanvas bounds the contour canvas on each axis. 4096 covers a 4K
// display at 5px cells.
const MaxCanvas = 4096

var tracer trace.Tracer = otel.Tracer("planetcloud/server")

// Server owns one session per requested body. Sessions are built on first
// use and run until Close.
type Server struct {
	settings   *config.Settings
	log        logging.Logger
	metrics    *observability.Collector
	background *contour.Background
	upgrader   websocket.Upgrader

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	sessions map[string]*session
	clients  atomic.Int64
}

// New creates a server. A nil logger logs nothing; a nil collector records
// nothing.
func New(settings *config.Settings, log logging.Logger, metrics *observability.Collector) *Server {
	if log == nil {
		log = logging.Noop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		settings:   settings,
		log:        log,
		metrics:    metrics,
		background: contour.NewBackground(noise.NewPerlin("contour-background", 3), settings.ContourOptions()),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for development
			},
		},
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*session),
	}
}

// Handler routes every endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/contours", s.handleContours)
	mux.HandleFunc("/bodies", s.handleBodies)
	mux.Handle("/metrics", s.metrics.Handler())
	if dir := s.settings.Server.StaticDir; dir != "" {
		if _, err := os.Stat(dir); err == nil {
			mux.Handle("/", http.FileServer(http.Dir(dir)))
		}
	}
	return mux
}

// Run serves until ctx is done, then shuts down.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.settings.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "server listening", logging.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close stops every session and waits for the run loops to exit.
func (s *Server) Close() {
	s.cancel()
	s.wg.Wait()
}

// session returns the running session for body, building it on first use.
// Building runs outside the lock so running sessions keep accepting clients.
func (s *Server) session(ctx context.Context, body string) (*session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[body]
	s.mu.Unlock()
	if ok {
		return sess, nil
	}

	start := time.Now()
	sys, err := catalog.Build(ctx, body, s.settings.Simulation.Seed)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveBuild(body, time.Since(start), sys.Particles())
	s.log.Info(ctx, "scene built",
		logging.String("body", body),
		logging.Any("took", time.Since(start)),
		logging.String("summary", sys.Summary()),
	)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ctx.Err(); err != nil {
		return nil, err
	}
	if sess, ok := s.sessions[body]; ok {
		// another request finished building first
		return sess, nil
	}
	sess = newSession(body, sys, s.settings.Simulation.TimeScale, s.log, s.metrics)
	s.sessions[body] = sess

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		sess.run(s.ctx, s.settings.UpdateInterval())
	}()
	return sess, nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body := r.URL.Query().Get("body")
	if body == "" {
		body = s.settings.Simulation.Body
	}
	if !catalog.Has(body) {
		http.Error(w, fmt.Sprintf("unknown body %q", body), http.StatusNotFound)
		return
	}

	sess, err := s.session(ctx, body)
	if err != nil {
		s.log.Error(ctx, "build scene", logging.String("body", body), logging.Err(err))
		http.Error(w, "scene unavailable", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn(ctx, "websocket upgrade", logging.Err(err))
		return
	}
	defer conn.Close()

	scene, ok := sess.scene(s.ctx)
	if !ok {
		return
	}
	connMutex := &sync.Mutex{}
	connMutex.Lock()
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	err = conn.WriteMessage(websocket.TextMessage, scene)
	connMutex.Unlock()
	if err != nil {
		s.log.Warn(ctx, "send scene", logging.Err(err))
		return
	}

	sess.add(conn, connMutex)
	s.metrics.SetClients(int(s.clients.Add(1)))
	defer func() {
		sess.remove(conn)
		s.metrics.SetClients(int(s.clients.Add(-1)))
	}()

	for {
		var msg Control
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn(ctx, "websocket read", logging.Err(err))
			}
			return
		}
		if !sess.send(msg) {
			s.log.Debug(ctx, "input dropped", logging.String("body", body))
		}
	}
}

func (s *Server) handleContours(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "contours")
	defer span.End()

	width, err := canvasParam(r, "width")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	height, err := canvasParam(r, "height")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data := s.background.Data(width, height)
	span.SetAttributes(
		attribute.Float64("width", width),
		attribute.Float64("height", height),
		attribute.Int("segments", len(data.Segments)),
	)
	s.log.Debug(ctx, "contours", logging.Float("width", width), logging.Float("height", height),
		logging.Int("segments", len(data.Segments)))

	writeJSON(w, data)
}

func (s *Server) handleBodies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, catalog.Names())
}

func canvasParam(r *http.Request, key string) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, fmt.Errorf("missing %s", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > MaxCanvas {
		return 0, fmt.Errorf("%s must be a number in [0, %d]", key, MaxCanvas)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

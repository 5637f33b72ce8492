package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"planetcloud/logging"
	"planetcloud/observability"
	"planetcloud/system"
)

const writeWait = 2 * time.Second

// Control is a client input message. Absent fields are left alone.
type Control struct {
	Rotate *struct {
		DX float64 `json:"dx"`
		DY float64 `json:"dy"`
	} `json:"rotate,omitempty"`
	Zoom      *float64 `json:"zoom,omitempty"`
	TimeScale *float64 `json:"timeScale,omitempty"`
}

// join asks the run loop for the current scene.
type join struct {
	reply chan []byte
}

// session is one body's scene and its clients. The System is touched only
// by the run goroutine; handlers talk to it through channels.
type session struct {
	name    string
	sys     *system.System
	log     logging.Logger
	metrics *observability.Collector

	input chan Control
	joins chan join

	clients      map[*websocket.Conn]*sync.Mutex
	clientsMutex sync.RWMutex

	timeScale float64
}

func newSession(name string, sys *system.System, timeScale float64, log logging.Logger, metrics *observability.Collector) *session {
	return &session{
		name:      name,
		sys:       sys,
		log:       log.With(logging.String("body", name)),
		metrics:   metrics,
		input:     make(chan Control, 64),
		joins:     make(chan join),
		clients:   make(map[*websocket.Conn]*sync.Mutex),
		timeScale: timeScale,
	}
}

// run steps the scene every interval and broadcasts each frame until ctx is
// done.
func (s *session) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastReport := time.Now()
	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return

		case j := <-s.joins:
			payload, err := json.Marshal(s.sys.Scene())
			if err != nil {
				s.log.Error(ctx, "encode scene", logging.Err(err))
				payload = nil
			}
			j.reply <- payload

		case c := <-s.input:
			s.apply(c)

		case <-ticker.C:
			start := time.Now()
			f := s.sys.Step(s.timeScale)
			payload, err := json.Marshal(s.sys.FrameData(f))
			s.metrics.ObserveFrame(time.Since(start))
			if err != nil {
				s.log.Error(ctx, "encode frame", logging.Err(err))
				continue
			}
			s.broadcast(ctx, payload)

			if total := time.Since(start); total > interval {
				s.log.Warn(ctx, "slow frame", logging.Any("took", total), logging.Any("interval", interval))
			}
			if time.Since(lastReport) > 10*time.Second {
				lastReport = time.Now()
				s.log.Debug(ctx, "tick",
					logging.Int64("frame", int64(f.Number)),
					logging.String("telemetry", f.Reading.String()),
					logging.Int("clients", s.clientCount()),
				)
			}
		}
	}
}

func (s *session) apply(c Control) {
	if c.Rotate != nil {
		s.sys.Drag(c.Rotate.DX, c.Rotate.DY)
	}
	if c.Zoom != nil {
		s.sys.Zoom(*c.Zoom)
	}
	if c.TimeScale != nil && *c.TimeScale >= 0 {
		s.timeScale = *c.TimeScale
	}
}

// scene fetches the encoded scene from the run loop.
func (s *session) scene(ctx context.Context) ([]byte, bool) {
	j := join{reply: make(chan []byte, 1)}
	select {
	case s.joins <- j:
	case <-ctx.Done():
		return nil, false
	}
	select {
	case payload := <-j.reply:
		return payload, payload != nil
	case <-ctx.Done():
		return nil, false
	}
}

// send forwards client input to the run loop, dropping it when the loop is
// backed up.
func (s *session) send(c Control) bool {
	select {
	case s.input <- c:
		return true
	default:
		return false
	}
}

func (s *session) add(conn *websocket.Conn, mu *sync.Mutex) int {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()
	s.clients[conn] = mu
	return len(s.clients)
}

func (s *session) remove(conn *websocket.Conn) int {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()
	delete(s.clients, conn)
	return len(s.clients)
}

func (s *session) clientCount() int {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()
	return len(s.clients)
}

func (s *session) broadcast(ctx context.Context, payload []byte) {
	s.clientsMutex.RLock()
	var failed []*websocket.Conn
	for client, mutex := range s.clients {
		mutex.Lock()
		client.SetWriteDeadline(time.Now().Add(writeWait))
		err := client.WriteMessage(websocket.TextMessage, payload)
		mutex.Unlock()
		s.metrics.ObserveBroadcast(err)
		if err != nil {
			s.log.Warn(ctx, "websocket write", logging.Err(err))
			client.Close()
			failed = append(failed, client)
		}
	}
	s.clientsMutex.RUnlock()

	for _, client := range failed {
		s.remove(client)
	}
}

func (s *session) closeAll() {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()
	for client, mutex := range s.clients {
		mutex.Lock()
		client.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		client.Close()
		mutex.Unlock()
		delete(s.clients, client)
	}
}

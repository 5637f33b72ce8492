package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"planetcloud/config"
	"planetcloud/core"
	"planetcloud/observability"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	settings := config.Defaults()
	settings.Server.UpdateIntervalMs = 5
	settings.Server.StaticDir = ""

	metrics, err := observability.NewCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	srv := New(&settings, nil, metrics)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})
	return srv, ts
}

func TestBodies(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/bodies")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var names []string
	if err := json.NewDecoder(resp.Body).Decode(&names); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(names) != 9 || names[0] != "sun" || names[8] != "neptune" {
		t.Errorf("bodies: got %v", names)
	}
}

func TestContours(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"ok", "width=320&height=200", http.StatusOK},
		{"zero area", "width=0&height=0", http.StatusOK},
		{"missing height", "width=320", http.StatusBadRequest},
		{"negative", "width=-1&height=10", http.StatusBadRequest},
		{"not a number", "width=abc&height=10", http.StatusBadRequest},
		{"too large", "width=100000&height=10", http.StatusBadRequest},
		{"above bound", "width=4097&height=10", http.StatusBadRequest},
		{"at bound", "width=4096&height=1", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/contours?" + tt.query)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Fatalf("status: got %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.status != http.StatusOK {
				return
			}
			var data core.ContourData
			if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if data.Type != "contours" {
				t.Errorf("type: got %q, want contours", data.Type)
			}
			if len(data.Levels) != 6 {
				t.Errorf("levels: got %d, want 6", len(data.Levels))
			}
		})
	}
}

func TestWebSocketSceneThenFrames(t *testing.T) {
	_, ts := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?body=mercury"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(30 * time.Second))

	var scene core.SceneData
	if err := conn.ReadJSON(&scene); err != nil {
		t.Fatalf("read scene: %v", err)
	}
	if scene.Type != "scene" || scene.Body != "mercury" {
		t.Fatalf("scene: got type %q body %q", scene.Type, scene.Body)
	}
	if len(scene.Clouds) == 0 || len(scene.Nodes) == 0 {
		t.Fatalf("scene: %d clouds, %d nodes", len(scene.Clouds), len(scene.Nodes))
	}

	zoom := 100.0
	if err := conn.WriteJSON(Control{Zoom: &zoom}); err != nil {
		t.Fatalf("write control: %v", err)
	}

	var last core.FrameData
	for i := 0; i < 3; i++ {
		if err := conn.ReadJSON(&last); err != nil {
			t.Fatalf("read frame %d: %v", i, err)
		}
		if last.Type != "frame" {
			t.Fatalf("frame %d: got type %q", i, last.Type)
		}
	}
	if !strings.HasPrefix(last.Telemetry, "TGT: RA ") {
		t.Errorf("telemetry: got %q", last.Telemetry)
	}
	// The sodium tail is the only dynamic cloud on Mercury.
	if len(last.Clouds) != 1 || last.Clouds[0].Kind != core.KindTail {
		t.Errorf("dynamic clouds: got %d", len(last.Clouds))
	}
}

func TestWebSocketUnknownBody(t *testing.T) {
	_, ts := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?body=pluto"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("expected dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("status: got %v, want 404", resp)
	}
}

func TestSessionApply(t *testing.T) {
	srv, _ := newTestServer(t)
	sess, err := srv.session(srv.ctx, "earth")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	again, err := srv.session(srv.ctx, "earth")
	if err != nil || again != sess {
		t.Fatalf("second session: got %p (%v), want %p", again, err, sess)
	}

	neg := -1.0
	if !sess.send(Control{TimeScale: &neg}) {
		t.Fatal("input dropped")
	}
}

func TestConcurrentSessionBuildsShareOne(t *testing.T) {
	srv, _ := newTestServer(t)

	const callers = 4
	got := make([]*session, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess, err := srv.session(srv.ctx, "mars")
			if err != nil {
				t.Errorf("session: %v", err)
				return
			}
			got[i] = sess
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		if got[i] != got[0] {
			t.Fatalf("caller %d got a different session", i)
		}
	}
	srv.mu.Lock()
	n := len(srv.sessions)
	srv.mu.Unlock()
	if n != 1 {
		t.Errorf("sessions: got %d, want 1", n)
	}
}

func TestSessionAfterClose(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.Close()
	if _, err := srv.session(srv.ctx, "mercury"); err == nil {
		t.Error("expected an error after Close")
	}
}

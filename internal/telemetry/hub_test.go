package telemetry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/longiy/lcm/internal/logger"
	"github.com/longiy/lcm/internal/sim"
)

func TestMain(m *testing.M) {
	// The hub logs subscriber churn; keep it quiet during tests.
	if err := logger.InitWithFileConfig("error", logger.FileConfig{}, false); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func dialHub(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(h.handleWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForSubscribers(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Subscribers() != want {
		if time.Now().After(deadline) {
			t.Fatalf("subscriber count stuck at %d, want %d", h.Subscribers(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewHubClampsDivisor(t *testing.T) {
	if h := NewHub(0); h.divisor != 1 {
		t.Errorf("divisor = %d, want clamp to 1", h.divisor)
	}
	if h := NewHub(4); h.divisor != 4 {
		t.Errorf("divisor = %d, want 4", h.divisor)
	}
}

func TestBroadcastReachesSubscriber(t *testing.T) {
	h := NewHub(1)
	conn := dialHub(t, h)
	waitForSubscribers(t, h, 1)

	sent := sim.Frame{Tick: 42, Speed: 1.5, Stability: "stable"}
	h.Broadcast(sent)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("reading broadcast: %v", err)
	}

	var got sim.Frame
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshaling broadcast: %v", err)
	}
	if got.Tick != sent.Tick || got.Speed != sent.Speed || got.Stability != sent.Stability {
		t.Errorf("received %+v, want %+v", got, sent)
	}
}

func TestBroadcastHonorsDivisor(t *testing.T) {
	h := NewHub(3)
	conn := dialHub(t, h)
	waitForSubscribers(t, h, 1)

	// Ticks 0..5: only 0 and 3 land on the divisor.
	for tick := int64(0); tick < 6; tick++ {
		h.Broadcast(sim.Frame{Tick: tick})
	}

	var ticks []int64
	for i := 0; i < 2; i++ {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, payload, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("reading broadcast %d: %v", i, err)
		}
		var f sim.Frame
		if err := json.Unmarshal(payload, &f); err != nil {
			t.Fatalf("unmarshaling broadcast %d: %v", i, err)
		}
		ticks = append(ticks, f.Tick)
	}

	if ticks[0] != 0 || ticks[1] != 3 {
		t.Errorf("received ticks %v, want [0 3]", ticks)
	}
}

func TestClosedSubscriberIsDropped(t *testing.T) {
	h := NewHub(1)
	conn := dialHub(t, h)
	waitForSubscribers(t, h, 1)

	conn.Close()
	waitForSubscribers(t, h, 0)

	// Broadcasting into an empty hub must not panic or block.
	h.Broadcast(sim.Frame{Tick: 1})
}

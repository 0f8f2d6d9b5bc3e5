// Package telemetry broadcasts per-frame simulation snapshots to
// websocket subscribers, for browser-side plotting and inspection of a
// running simulation. Entirely optional: when disabled the simulation
// never touches the network.
package telemetry

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/longiy/lcm/internal/logger"
	"github.com/longiy/lcm/internal/sim"
)

const writeTimeout = 2 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The hub serves localhost tooling; cross-origin pages are fine.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Hub owns the live subscriber set and fans frame snapshots out to it.
type Hub struct {
	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
	divisor     int64
	server      *http.Server
}

// NewHub returns a hub broadcasting every divisor-th frame.
func NewHub(divisor int) *Hub {
	if divisor < 1 {
		divisor = 1
	}
	return &Hub{
		subscribers: make(map[*subscriber]struct{}),
		divisor:     int64(divisor),
	}
}

// Serve starts the websocket endpoint on addr in a background
// goroutine. The server runs until Close.
func (h *Hub) Serve(addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWS)
	h.server = &http.Server{Addr: addr, Handler: mux}

	go func() {
		logger.Info("telemetry listening", zap.String("addr", addr))
		if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("telemetry server", zap.Error(err))
		}
	}()
}

// Close shuts the server down and drops all subscribers.
func (h *Hub) Close() {
	if h.server != nil {
		_ = h.server.Close()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		sub.conn.Close()
	}
	clear(h.subscribers)
}

func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("telemetry upgrade failed", zap.Error(err))
		return
	}

	sub := &subscriber{conn: conn}
	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	n := len(h.subscribers)
	h.mu.Unlock()

	logger.Info("telemetry subscriber connected",
		zap.String("remote", conn.RemoteAddr().String()),
		zap.Int("subscribers", n),
	)

	// Drain the read side so pings and close frames are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(sub)
				return
			}
		}
	}()
}

// Broadcast sends the frame to every subscriber. Frames that do not
// land on the divisor are skipped; subscribers that fail a write are
// dropped rather than allowed to stall the simulation loop.
func (h *Hub) Broadcast(frame sim.Frame) {
	if frame.Tick%h.divisor != 0 {
		return
	}

	h.mu.Lock()
	if len(h.subscribers) == 0 {
		h.mu.Unlock()
		return
	}
	subs := make([]*subscriber, 0, len(h.subscribers))
	for sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	payload, err := json.Marshal(frame)
	if err != nil {
		logger.Error("telemetry marshal", zap.Error(err))
		return
	}

	for _, sub := range subs {
		sub.mu.Lock()
		sub.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		err := sub.conn.WriteMessage(websocket.TextMessage, payload)
		sub.mu.Unlock()
		if err != nil {
			h.drop(sub)
		}
	}
}

// Subscribers returns the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

func (h *Hub) drop(sub *subscriber) {
	h.mu.Lock()
	_, ok := h.subscribers[sub]
	if ok {
		delete(h.subscribers, sub)
	}
	h.mu.Unlock()

	if ok {
		sub.conn.Close()
		logger.Debug("telemetry subscriber dropped",
			zap.String("remote", sub.conn.RemoteAddr().String()))
	}
}

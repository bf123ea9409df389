package pushchannel

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"hr-server/chatbot-api/internal/infrastructure/metrics"
)

// Hub tracks the WebSocket clients subscribed to each chat session and
// pushes events to them. A session may have several clients (multiple
// browser tabs); a client subscribes to exactly one session.
type Hub struct {
	mu     sync.RWMutex
	active map[string]map[*websocket.Conn]struct{}
	log    zerolog.Logger
}

// NewHub creates an empty client hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		active: make(map[string]map[*websocket.Conn]struct{}),
		log:    log.With().Str("component", "push-hub").Logger(),
	}
}

// Register adds a client connection for a session.
func (h *Hub) Register(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.active[sessionID]; !exists {
		h.active[sessionID] = make(map[*websocket.Conn]struct{})
	}
	h.active[sessionID][conn] = struct{}{}
	metrics.EventClientsActive.Inc()
	h.log.Debug().Str("session", sessionID).Msg("event client registered")
}

// Unregister removes a client connection for a session.
func (h *Hub) Unregister(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.active[sessionID]; ok {
		if _, exists := conns[conn]; exists {
			delete(conns, conn)
			if len(conns) == 0 {
				delete(h.active, sessionID)
			}
			metrics.EventClientsActive.Dec()
			h.log.Debug().Str("session", sessionID).Msg("event client unregistered")
		}
	}
}

// Broadcast sends an event to every client of one session. A failed
// write only drops that client's delivery; the connection's own read
// loop notices the closure and unregisters it.
func (h *Hub) Broadcast(sessionID string, eventType string, payload any) {
	data, err := json.Marshal(map[string]any{"type": eventType, "payload": payload})
	if err != nil {
		h.log.Error().Err(err).Str("session", sessionID).Msg("marshal event failed")
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.active[sessionID]))
	for conn := range h.active[sessionID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.Write(context.Background(), websocket.MessageText, data); err != nil {
			h.log.Debug().Err(err).Str("session", sessionID).Msg("event write failed")
		}
	}
}

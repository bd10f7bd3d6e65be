package websocket

import (
	"encoding/json"
	"sync"

	"kj-canvas-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// Hub fans board-change events out to connected canvas clients. Single
// instance only: there is one logical writer per profile, so no
// cross-instance coordination exists.
type Hub struct {
	// Registered clients by connection id
	clients map[uuid.UUID]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID]*Client),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.Id] = client
			h.mu.Unlock()
			h.logger.Info("Hub", "Canvas client registered", map[string]interface{}{"client_id": client.Id})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.Id]; ok {
				delete(h.clients, client.Id)
				close(client.Send)
				h.logger.Info("Hub", "Canvas client unregistered", map[string]interface{}{"client_id": client.Id})
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends a board event to all connected canvases.
func (h *Hub) Broadcast(eventType string, payload map[string]interface{}) {
	data, err := json.Marshal(map[string]interface{}{
		"type": eventType,
		"data": payload,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to serialize broadcast", map[string]interface{}{"error": err.Error()})
		return
	}

	var slow []*Client
	h.mu.RLock()
	for _, client := range h.clients {
		select {
		case client.Send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	// Run is the only goroutine that closes Send. A client that cannot keep
	// up is dropped through the normal unregister path, after the read lock
	// is released so the unregister handler can make progress.
	for _, client := range slow {
		h.unregister <- client
	}
}

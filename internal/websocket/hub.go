// internal/websocket/hub.go
package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event is one fan-out message to connected dashboard clients: an
// entity collection changed, or a ticket gained activity.
type Event struct {
	Type   string    `json:"type"`
	Entity string    `json:"entity,omitempty"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}

const (
	EventEntityChanged  = "entity_changed"
	EventTicketActivity = "ticket_activity"
)

// Hub fans events out to connected clients. It is read-only from the
// client's point of view: no inbound commands beyond ping/pong.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	Register   chan *Client
	unregister chan *Client
	broadcast  chan Event

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 256),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// EntityChanged notifies clients that a collection was mutated and
// refetched. Implements the store's Events interface.
func (h *Hub) EntityChanged(entity string) {
	h.publish(Event{Type: EventEntityChanged, Entity: entity, At: time.Now()})
}

// TicketActivity notifies clients about a new ticket message.
func (h *Hub) TicketActivity(ticketID string) {
	h.publish(Event{Type: EventTicketActivity, Entity: "ticket", Detail: ticketID, At: time.Now()})
}

// publish never blocks a mutation path; events are dropped when the
// buffer is full.
func (h *Hub) publish(event Event) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("event dropped, broadcast buffer full", zap.String("type", event.Type))
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true
	h.logger.Info("websocket client connected", zap.Int("clients", len(h.clients)))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

func (h *Hub) broadcastEvent(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Slow consumer; skip rather than block the hub.
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.logger.Info("websocket hub stopped")
}

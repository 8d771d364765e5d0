package ws

import (
	"sync"

	"github.com/google/uuid"

	"github.com/restodesk/backoffice/internal/adapter/logger"
	"github.com/restodesk/backoffice/internal/interfaces"
)

// Hub tracks connected dashboard clients grouped into per-restaurant rooms.
// It implements interfaces.Broadcaster.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[uuid.UUID]map[*Client]struct{}
	logger logger.Logger
}

func NewHub(lgr logger.Logger) *Hub {
	return &Hub{
		rooms:  make(map[uuid.UUID]map[*Client]struct{}),
		logger: lgr,
	}
}

func (h *Hub) Join(c *Client) {
	h.mu.Lock()
	if _, ok := h.rooms[c.restaurantID]; !ok {
		h.rooms[c.restaurantID] = make(map[*Client]struct{})
	}
	h.rooms[c.restaurantID][c] = struct{}{}
	total := len(h.rooms[c.restaurantID])
	h.mu.Unlock()

	h.logger.Info("ws_connected", "Dashboard client connected", map[string]interface{}{
		"restaurant_id": c.restaurantID,
		"room_size":     total,
	})
}

func (h *Hub) Leave(c *Client) {
	h.mu.Lock()
	if conns, ok := h.rooms[c.restaurantID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.rooms, c.restaurantID)
		}
	}
	h.mu.Unlock()

	c.shutdown()

	h.logger.Info("ws_disconnected", "Dashboard client disconnected", map[string]interface{}{
		"restaurant_id": c.restaurantID,
	})
}

// Emit delivers the message to every client in the restaurant's room.
// An empty room is a no-op. Delivery is at-most-once per connection: a
// client whose send buffer is full simply misses this event, and a
// duplicate event id is suppressed by the client's tray.
func (h *Hub) Emit(restaurantID uuid.UUID, msg interfaces.NotificationMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns, ok := h.rooms[restaurantID]
	if !ok {
		return
	}
	for c := range conns {
		c.deliver(msg)
	}
}

package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	httpadapter "github.com/restodesk/backoffice/internal/adapter/http"
	"github.com/restodesk/backoffice/internal/adapter/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	hub        *Hub
	trayTTL    time.Duration
	sendBuffer int
	logger     logger.Logger
}

func NewHandler(hub *Hub, trayTTL time.Duration, sendBuffer int, lgr logger.Logger) *Handler {
	return &Handler{
		hub:        hub,
		trayTTL:    trayTTL,
		sendBuffer: sendBuffer,
		logger:     lgr,
	}
}

// HandleNotifications upgrades the request and joins the client to its
// restaurant's room. Auth middleware has already resolved the identity.
func (h *Handler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := httpadapter.RestaurantIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("ws_upgrade_failed", "Failed to upgrade connection", nil, err)
		return
	}

	client := NewClient(h.hub, conn, restaurantID, h.trayTTL, h.sendBuffer, h.logger)
	h.hub.Join(client)

	go client.writePump()
	client.readPump()
}

package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/restodesk/backoffice/internal/adapter/logger"
	"github.com/restodesk/backoffice/internal/app/notify"
	"github.com/restodesk/backoffice/internal/domain"
	"github.com/restodesk/backoffice/internal/interfaces"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	readLimit  = 512
)

// pushMessage is the socket envelope. Payload carries notification events;
// ID alone marks control messages such as expiry notices.
type pushMessage struct {
	Event   string                    `json:"event"`
	Payload *domain.NotificationEvent `json:"payload,omitempty"`
	ID      string                    `json:"id,omitempty"`
}

// clientAction is what the dashboard sends back: acknowledgments only, no
// delivery protocol.
type clientAction struct {
	Action string `json:"action"`
	ID     string `json:"id"`
}

// Client is one dashboard connection. Its tray deduplicates and expires
// notifications; its buffered send channel keeps delivery FIFO while a slow
// connection never blocks the rest of the room.
type Client struct {
	hub          *Hub
	conn         *websocket.Conn
	restaurantID uuid.UUID
	tray         *notify.Tray
	send         chan pushMessage
	logger       logger.Logger

	mu     sync.Mutex
	closed bool
}

func NewClient(hub *Hub, conn *websocket.Conn, restaurantID uuid.UUID, trayTTL time.Duration, sendBuffer int, lgr logger.Logger) *Client {
	c := &Client{
		hub:          hub,
		conn:         conn,
		restaurantID: restaurantID,
		send:         make(chan pushMessage, sendBuffer),
		logger:       lgr,
	}
	c.tray = notify.NewTray(trayTTL, func(id string) {
		c.enqueue(pushMessage{Event: "notification-expired", ID: id})
	})
	return c
}

// deliver runs the event through the tray before queueing it for the socket.
func (c *Client) deliver(msg interfaces.NotificationMessage) {
	if !c.tray.Offer(msg.Payload) {
		return
	}
	payload := msg.Payload
	c.enqueue(pushMessage{Event: string(msg.Event), Payload: &payload})
}

func (c *Client) enqueue(msg pushMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	select {
	case c.send <- msg:
	default:
		// Buffer full: drop for this connection only.
		c.logger.Debug("ws_send_dropped", "Send buffer full, dropping event", map[string]interface{}{
			"restaurant_id": c.restaurantID,
			"event":         msg.Event,
		})
	}
}

func (c *Client) shutdown() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	c.mu.Unlock()

	c.tray.Clear()
	_ = c.conn.Close()
}

// readPump handles pongs and operator acknowledgments until the connection
// drops.
func (c *Client) readPump() {
	defer c.hub.Leave(c)

	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var action clientAction
		if err := json.Unmarshal(data, &action); err != nil {
			continue
		}

		switch action.Action {
		case "dismiss":
			c.tray.Dismiss(action.ID)
		case "clear":
			c.tray.Clear()
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

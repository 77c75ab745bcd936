package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/bulk-report-generator/backend/internal/models"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// WebSocket message types for the notification protocol
const (
	// Client -> Server messages
	MsgTypePing = "ping"

	// Server -> Client messages
	MsgTypeConnected = "connected"
	MsgTypeToast     = "toast"
	MsgTypePong      = "pong"
)

// WSMessage is the envelope for all websocket traffic
type WSMessage struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// NotificationHub broadcasts toast notifications to connected clients.
// It implements notify.Notifier; delivery is fire-and-forget, so a client
// that connects late simply misses earlier toasts.
type NotificationHub struct {
	upgrader websocket.Upgrader
	clients  map[*websocket.Conn]bool
	mu       sync.Mutex
}

// NewNotificationHub creates a hub with no connected clients.
func NewNotificationHub(maxMessageSizeKB int) *NotificationHub {
	if maxMessageSizeKB <= 0 {
		maxMessageSizeKB = 64
	}
	return &NotificationHub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Allow connections from dev server
				return true
			},
			ReadBufferSize:  maxMessageSizeKB * 1024,
			WriteBufferSize: maxMessageSizeKB * 1024,
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

// HandleWebSocket upgrades the connection and keeps it registered until the
// client disconnects. The read loop only services pings; all toast traffic
// flows server -> client.
func (hub *NotificationHub) HandleWebSocket(c echo.Context) error {
	ws, err := hub.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	fmt.Println("[WebSocket] Client connected for notifications")

	hub.mu.Lock()
	hub.clients[ws] = true
	hub.mu.Unlock()

	defer func() {
		hub.mu.Lock()
		delete(hub.clients, ws)
		hub.mu.Unlock()
		fmt.Println("[WebSocket] Client disconnected")
	}()

	// Send welcome message
	hub.send(ws, WSMessage{
		Type:      MsgTypeConnected,
		Timestamp: time.Now().UnixMilli(),
	})

	for {
		var msg WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				fmt.Printf("[WebSocket] Connection error: %v\n", err)
			}
			return nil
		}

		if msg.Type == MsgTypePing {
			hub.send(ws, WSMessage{Type: MsgTypePong, Timestamp: time.Now().UnixMilli()})
		}
	}
}

// Notify implements notify.Notifier by broadcasting a toast to every
// connected client.
func (hub *NotificationHub) Notify(n models.Notification) {
	msg := WSMessage{
		Type:      MsgTypeToast,
		Payload:   mustJSON(n),
		Timestamp: time.Now().UnixMilli(),
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()

	for ws := range hub.clients {
		if err := ws.WriteJSON(msg); err != nil {
			fmt.Printf("[WebSocket] Failed to send toast: %v\n", err)
		}
	}
}

// ClientCount returns the number of connected clients.
func (hub *NotificationHub) ClientCount() int {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return len(hub.clients)
}

func (hub *NotificationHub) send(ws *websocket.Conn, msg WSMessage) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	if err := ws.WriteJSON(msg); err != nil {
		fmt.Printf("[WebSocket] Failed to send message: %v\n", err)
	}
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return data
}

package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/pocketrush/backend/internal/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin policy is enforced by the CORS middleware
	},
}

// Client is one connected spectator/player.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of active clients and broadcasts frames to them.
type Hub struct {
	session    *game.Session
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub(session *game.Session) *Hub {
	return &Hub{
		session:    session,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run owns the client set. Start it once in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			n := len(h.clients)
			h.mu.Unlock()
			log.Printf("[WS] client connected (%d total)", n)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			log.Printf("[WS] client disconnected (%d total)", n)
		}
	}
}

// BroadcastFrame pushes a snapshot to every client. Slow clients drop
// frames rather than stalling the tick loop.
func (h *Hub) BroadcastFrame(snap game.Snapshot) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "frame",
		"data": snap,
	})
	if err != nil {
		log.Printf("[WS] frame marshal error: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Buffer full; this frame is stale by the next tick anyway.
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Message is the wire envelope in both directions.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type takeShotData struct {
	Angle float64 `json:"angle"`
	Power float64 `json:"power"`
}

type placeCueBallData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HandleWebSocket upgrades the connection and starts the client pumps.
func HandleWebSocket(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] upgrade error: %v", err)
			return
		}

		client := &Client{
			hub:  hub,
			conn: conn,
			send: make(chan []byte, 256),
		}
		hub.register <- client

		go client.writePump()
		go client.readPump()
	}
}

// readPump handles incoming commands until the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] read error: %v", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg Message) {
	switch msg.Type {
	case "take_shot":
		var data takeShotData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid shot data")
			return
		}
		if err := c.hub.session.Shoot(data.Angle, data.Power); err != nil {
			c.sendError(err.Error())
		}

	case "aim":
		var data takeShotData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid aim data")
			return
		}
		c.sendJSON(map[string]interface{}{
			"type": "trail",
			"data": c.hub.session.Aim(data.Angle, data.Power),
		})

	case "place_cue_ball":
		var data placeCueBallData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid placement data")
			return
		}
		if err := c.hub.session.PlaceCueBall(data.X, data.Y); err != nil {
			c.sendError(err.Error())
		}

	case "get_state":
		c.sendJSON(map[string]interface{}{
			"type": "frame",
			"data": c.hub.session.Snapshot(),
		})

	default:
		c.sendError("unknown message type")
	}
}

func (c *Client) sendJSON(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WS] marshal error: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) sendError(msg string) {
	c.sendJSON(map[string]interface{}{"type": "error", "message": msg})
}

// writePump flushes outbound messages and keeps the connection alive with
// pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

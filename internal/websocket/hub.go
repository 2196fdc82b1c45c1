package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"acservice/internal/model"
	"acservice/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are enforced by CORS on the REST side; the token gates this endpoint
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// TokenParser verifies the token passed in the ?token= query parameter
type TokenParser interface {
	Parse(tokenString string) (*service.Claims, error)
}

// Client represents a single connected WebSocket subscriber
type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
	UserID string
	Role   model.Role
}

// wants reports whether the event concerns this subscriber. Admins see every
// complaint, other roles only tickets they created or are assigned to.
func (c *Client) wants(event model.ComplaintEvent) bool {
	if c.Role == model.RoleAdmin {
		return true
	}
	cmp := event.Complaint
	if cmp == nil {
		return false
	}
	return (cmp.AssignedToID != nil && cmp.AssignedToID.String() == c.UserID) ||
		(cmp.CreatedByID != nil && cmp.CreatedByID.String() == c.UserID)
}

type broadcast struct {
	event   model.ComplaintEvent
	payload []byte
}

// Hub maintains the set of active clients and fans complaint events out to them
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan broadcast
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex
}

// NewHub initializes a new WS Hub instance
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan broadcast, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		done:       make(chan struct{}),
	}
}

// Publish implements service.EventPublisher
func (h *Hub) Publish(event model.ComplaintEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("websocket: failed to encode %s event: %v", event.Type, err)
		return
	}
	select {
	case h.broadcast <- broadcast{event: event, payload: payload}:
	default:
		log.Printf("websocket: dropping %s event, hub backlog full", event.Type)
	}
}

// ClientCount returns the number of connected subscribers
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Run starts the dispatch loop; it returns when ctx is done
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for client := range h.clients {
				close(client.Send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("WebSocket client connected (user %s)", client.UserID)
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Printf("WebSocket client disconnected (user %s)", client.UserID)
			}
			h.mu.Unlock()
		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if !client.wants(msg.event) {
					continue
				}
				select {
				case client.Send <- msg.payload:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// writePump handles writing messages from the Hub to the WebSocket connection.
// Each event is sent as its own text frame.
func (c *Client) writePump() {
	defer func() {
		_ = c.Conn.Close()
	}()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump drains the connection so close frames are noticed
func (c *Client) readPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.done:
		}
		_ = c.Conn.Close()
	}()
	for {
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			break
		}
	}
}

// ServeWs authenticates the ?token= parameter and subscribes the caller
func ServeWs(hub *Hub, c *gin.Context, tokens TokenParser) {
	tokenString := c.Query("token")
	if tokenString == "" {
		log.Println("WebSocket connection rejected: missing token")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims, err := tokens.Parse(tokenString)
	if err != nil {
		log.Println("WebSocket connection rejected: invalid token:", err)
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade failed:", err)
		return
	}
	client := &Client{
		Hub:    hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		UserID: claims.Subject,
		Role:   claims.Role,
	}
	select {
	case hub.register <- client:
	case <-hub.done:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

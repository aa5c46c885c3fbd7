package websocket

import (
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Hub fans occupancy events out to connected dashboards. Clients subscribe
// per site; events carry the site they belong to.
type Hub struct {
	clients map[*Client]bool

	broadcast  chan siteMessage
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex
}

type siteMessage struct {
	siteID string
	data   []byte
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	// siteID filters which occupancy events this client receives. Empty
	// receives everything.
	siteID string
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan siteMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				if client.siteID != "" && client.siteID != message.siteID {
					continue
				}
				select {
				case client.send <- message.data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastToSite pushes an occupancy event to every client watching the site.
func (h *Hub) BroadcastToSite(siteID string, data []byte) {
	h.broadcast <- siteMessage{siteID: siteID, data: data}
}

func (h *Hub) AddClient(conn *websocket.Conn, siteID string) {
	client := &Client{hub: h, conn: conn, send: make(chan []byte, 256), siteID: siteID}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		// Push-only hub; the read loop just keeps the connection alive and
		// handles control frames.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) writePump() {
	defer func() {
		c.conn.Close()
	}()
	for message := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)

		// Drain any queued events into the same frame.
		n := len(c.send)
		for i := 0; i < n; i++ {
			w.Write(<-c.send)
		}

		if err := w.Close(); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

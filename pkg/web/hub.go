package web

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/openlightgun/go-lightgun/internal/log"
)

const (
	// writeWait is how long to wait for a write to complete.
	writeWait = 10 * time.Second

	// pongWait is how long to wait for a pong response.
	pongWait = 60 * time.Second

	// pingPeriod must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

// hub maintains the set of connected dashboard clients and fans state
// snapshots out to them.
type hub struct {
	mu      sync.RWMutex
	clients map[*client]bool

	broadcast  chan []byte
	register   chan *client
	unregister chan *client
}

func newHub() *hub {
	return &hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

// run is the hub's main loop; call in a goroutine.
func (h *hub) run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("dashboard client connected", "total", count)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow client, drop it.
					close(c.send)
					delete(h.clients, c)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// publish queues a message for all clients, dropping it if the hub is
// saturated. Pointer snapshots are superseded every tick anyway.
func (h *hub) publish(msg []byte) {
	select {
	case h.broadcast <- msg:
	default:
	}
}

// clientCount returns the number of connected clients.
func (h *hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// client is a single dashboard websocket connection.
type client struct {
	hub  *hub
	conn *websocket.Conn
	send chan []byte
}

func newClient(h *hub, conn *websocket.Conn) *client {
	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 16),
	}
	h.register <- c
	return c
}

// run pumps messages until the connection closes. Call from the websocket
// handler; it blocks.
func (c *client) run() {
	go c.writePump()
	c.readPump()
}

// readPump only watches for disconnection and pongs; clients never send.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

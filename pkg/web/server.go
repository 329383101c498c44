// Package web provides a small status dashboard for go-lightgun: JSON
// endpoints for the current calibration phase and pointer position, plus a
// websocket feed of per-tick state for eyeballing calibration from a
// browser while standing in the play space.
package web

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/openlightgun/go-lightgun/pkg/bridge"
)

// Server is the status dashboard server.
type Server struct {
	app  *fiber.App
	addr string

	mu      sync.RWMutex
	state   bridge.State
	started time.Time

	hub *hub
}

// NewServer creates a dashboard server listening on addr (host:port).
func NewServer(addr string) *Server {
	s := &Server{
		addr:    addr,
		started: time.Now(),
		hub:     newHub(),
	}

	app := fiber.New(fiber.Config{
		AppName:               "go-lightgun status",
		DisableStartupMessage: true,
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	app.Get("/status", func(c *fiber.Ctx) error {
		s.mu.RLock()
		state := s.state
		s.mu.RUnlock()
		return c.JSON(fiber.Map{
			"state":   state,
			"clients": s.hub.clientCount(),
			"uptime":  time.Since(s.started).Round(time.Second).String(),
		})
	})

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		newClient(s.hub, conn).run()
	}))

	s.app = app
	return s
}

// Publish records the latest bridge state and fans it out to websocket
// clients. Called from the bridge loop every tick; it never blocks.
func (s *Server) Publish(state bridge.State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	if msg, err := json.Marshal(state); err == nil {
		s.hub.publish(msg)
	}
}

// State returns the last published bridge state.
func (s *Server) State() bridge.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Start runs the hub and listens for connections. It blocks.
func (s *Server) Start() error {
	go s.hub.run()
	return s.app.Listen(s.addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

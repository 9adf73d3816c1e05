// Package remote exposes the presenter to a phone or clicker over HTTP and
// websockets.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/shahbajlive/deck/internal/presenter"
)

// Command is a navigation request from a remote client.
type Command string

const (
	CommandNext Command = "next"
	CommandPrev Command = "prev"
)

// Valid reports whether c is a known command.
func (c Command) Valid() bool { return c == CommandNext || c == CommandPrev }

// PressFunc delivers a command to the presenter. It is called from HTTP
// goroutines and must hand the command to the owning event loop.
type PressFunc func(Command)

// Envelope is the websocket message format in both directions.
type Envelope struct {
	Type    string          `json:"type"`
	Command Command         `json:"command,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	TS      time.Time       `json:"ts,omitempty"`
}

// Server is the remote control endpoint.
type Server struct {
	press    PressFunc
	hub      *Hub
	logger   *slog.Logger
	router   chi.Router
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	state []byte
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a server that forwards presses to press. Start the hub
// with Run, or use ListenAndServe which does both.
func NewServer(press PressFunc, opts ...Option) *Server {
	s := &Server{
		press:  press,
		hub:    NewHub(),
		logger: slog.Default(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The clicker page is served from anywhere on the LAN.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Route("/api", func(r chi.Router) {
		r.Post("/next", s.handlePress(CommandNext))
		r.Post("/prev", s.handlePress(CommandPrev))
		r.Get("/state", s.handleState)
	})
	r.Get("/ws", s.handleWS)
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// Run starts the hub loop. It returns when Close is called.
func (s *Server) Run() { s.hub.Run() }

// Close disconnects every websocket client.
func (s *Server) Close() { s.hub.Stop() }

// Publish records f as the current state and pushes it to websocket clients.
func (s *Server) Publish(f presenter.Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		s.logger.Warn("remote: encode frame", "error", err)
		return
	}
	s.mu.Lock()
	s.state = data
	s.mu.Unlock()

	msg, _ := json.Marshal(Envelope{Type: "frame", Data: data, TS: time.Now()})
	s.hub.Broadcast(msg)
}

func (s *Server) handlePress(cmd Command) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("remote press", "command", cmd, "remote", r.RemoteAddr)
		if s.press != nil {
			s.press(cmd)
		}
		writeJSON(w, http.StatusAccepted, map[string]any{"ok": true, "command": cmd})
	}
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()
	if state == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(state)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("remote: websocket upgrade", "error", err)
		return
	}
	c := &Client{hub: s.hub, conn: conn, send: make(chan []byte, clientBuffer)}

	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()
	if state != nil {
		msg, _ := json.Marshal(Envelope{Type: "frame", Data: state, TS: time.Now()})
		c.send <- msg
	}

	select {
	case s.hub.register <- c:
	case <-s.hub.stop:
		conn.Close()
		return
	}
	go c.writePump()
	go c.readPump(s.handleMessage)
}

func (s *Server) handleMessage(data []byte) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		s.logger.Debug("remote: bad message", "error", err)
		return
	}
	if env.Type != "press" || !env.Command.Valid() {
		return
	}
	if s.press != nil {
		s.press(env.Command)
	}
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go s.Run()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("remote listen %s: %w", addr, err)
	case <-ctx.Done():
		s.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Package game contains the client side of the real-time game session.
// It is a placeholder for the gameplay protocol: it connects, announces the
// client, and logs whatever the server pushes. Game rules and board state
// live on the server and are out of scope here.
package game

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/olivierdt/skyjo-cli/internal/logging"
)

// Envelope is the wire frame for game-session events.
type Envelope struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data,omitempty"`
}

// Session is one WebSocket connection to the game server.
type Session struct {
	url string
	log logging.Logger
	id  string

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
}

// NewSession returns a disconnected session bound to the game socket URL.
func NewSession(url string, log logging.Logger) *Session {
	return &Session{url: url, log: log, id: uuid.NewString()}
}

// ID is the client-generated session identifier sent in the hello envelope.
func (s *Session) ID() string {
	return s.id
}

// Connected reports whether the socket is currently open.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Connect dials the game server with the bearer token, sends the hello
// envelope and starts reading inbound events. Calling Connect on an already
// connected session is a no-op.
func (s *Session) Connect(ctx context.Context, token string, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.connected {
		return nil
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, header)
	if err != nil {
		return fmt.Errorf("failed to dial game server: %w", err)
	}

	hello := Envelope{Event: "hello", Data: map[string]any{
		"id":       s.id,
		"username": username,
		"msg":      "Hello from client!",
	}}
	if err := conn.WriteJSON(hello); err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to send hello: %w", err)
	}

	s.conn = conn
	s.connected = true
	go s.readLoop(conn)
	return nil
}

// Close tears the connection down. Safe to call on a disconnected session.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	s.connected = false
	return err
}

func (s *Session) readLoop(conn *websocket.Conn) {
	ctx := context.Background()
	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			s.mu.Lock()
			if s.conn == conn {
				s.conn = nil
				s.connected = false
			}
			s.mu.Unlock()
			return
		}

		switch env.Event {
		case "message":
			s.log.Info(ctx, "received message", "data", env.Data)
		default:
			s.log.Warn(ctx, "unhandled game event", "event", env.Event)
		}
	}
}

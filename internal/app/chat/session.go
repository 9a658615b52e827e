/*
Package chat contains the core logic for real-time chat sessions, room
membership, and message fan-out.

This file defines the Session struct, the per-connection state machine. A
Session exists only for verified connections; its lifecycle is
authenticated-without-room, then optionally in a room, then disconnected.
ReadPump and WritePump drive the underlying WebSocket connection.
*/
package chat

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"parley/internal/app/user"
	"parley/internal/pkg/errs"
	"parley/internal/pkg/logx"
	"parley/internal/pkg/randx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time the server waits for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of an inbound frame.
	maxInboundBytes = 4096

	// capacity of the per-session outbound queue.
	sendQueueSize = 256
)

// Session represents one live, authenticated connection. The currentRoom
// field is single-valued and mutated only by the Registry while holding its
// lock; the session never infers membership from anything else.
type Session struct {
	// id uniquely identifies this connection. Two connections of the same
	// user have distinct ids.
	id string

	// identity is the verified user identity, immutable for the session's lifetime.
	identity user.Identity

	manager *Manager

	// underlying WebSocket connection; nil only in tests.
	conn *websocket.Conn

	// send queues marshaled frames waiting to be written to the connection.
	send chan []byte

	// done is closed exactly once when the session disconnects.
	done chan struct{}

	closeOnce sync.Once

	// currentRoom is the room this session occupies, or empty. Guarded by
	// the Registry mutex.
	currentRoom string

	logger zerolog.Logger
}

// request is the envelope of every client-to-server frame.
type request struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type joinRequest struct {
	Room string `json:"room"`
}

type sendRequest struct {
	Room    string `json:"room"`
	Message string `json:"message"`
}

// newSession constructs a Session for a verified identity.
func newSession(m *Manager, conn *websocket.Conn, ident user.Identity) *Session {
	id := randx.ConnectionID()

	return &Session{
		id:       id,
		identity: ident,
		manager:  m,
		conn:     conn,
		send:     make(chan []byte, sendQueueSize),
		done:     make(chan struct{}),
		logger: logx.Logger().With().
			Str("connection_id", id).
			Str("user_id", ident.ID).
			Logger(),
	}
}

// Identity returns the verified identity bound to this session.
func (s *Session) Identity() user.Identity {
	return s.identity
}

// ReadPump reads frames from the WebSocket connection and dispatches them.
// It handles heartbeats (Pong) and triggers disconnect cleanup on exit.
func (s *Session) ReadPump() {
	defer s.Close()

	s.conn.SetReadLimit(maxInboundBytes)

	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		s.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Info().Err(err).Msg("Connection read ended unexpectedly")
			}
			return
		}

		s.dispatch(frame)
	}
}

// dispatch routes one inbound frame to the matching request handler.
// Every well-formed request yields exactly one acknowledgment; frames that
// cannot be attributed to a request type get a generic error event.
func (s *Session) dispatch(frame []byte) {
	var req request
	if err := json.Unmarshal(frame, &req); err != nil {
		s.logger.Warn().Err(err).Msg("Client sent invalid JSON")
		s.sendEvent(Event{Type: EventError, Payload: ErrorPayload{Error: "Malformed request"}})
		return
	}

	switch req.Type {
	case requestJoinRoom:
		var join joinRequest
		if err := json.Unmarshal(req.Payload, &join); err != nil {
			s.respondError(EventJoinResponse, errs.NewError(errs.ErrInvalidParams))
			return
		}
		s.manager.HandleJoin(s, join.Room)

	case requestSendMessage:
		var send sendRequest
		if err := json.Unmarshal(req.Payload, &send); err != nil {
			s.respondError(EventSendResponse, errs.NewError(errs.ErrInvalidParams))
			return
		}
		s.manager.HandleSend(s, send.Message)

	default:
		s.logger.Warn().Str("request_type", req.Type).Msg("Client sent unsupported request type")
		s.sendEvent(Event{Type: EventError, Payload: ErrorPayload{Error: "Unsupported request type"}})
	}
}

// WritePump writes queued frames to the WebSocket connection and keeps the
// heartbeat alive. It terminates when the session disconnects or a write fails.
func (s *Session) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		s.Close()
	}()

	for {
		select {
		case frame := <-s.send:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				s.logger.Error().Err(err).Msg("Failed to set write deadline")
				return
			}

			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				s.logger.Error().Err(err).Msg("Error writing frame")
				return
			}

		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				s.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
				return
			}

			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.logger.Error().Err(err).Msg("Error writing ping")
				return
			}

		case <-s.done:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
				s.logger.Info().Err(err).Msg("Error writing close frame")
			}
			return
		}
	}
}

// Close tears the session down: membership cleanup, presence notification,
// and connection close. It is idempotent and fires at most once no matter
// how many disconnect signals arrive.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.logger.Info().Msg("Session disconnecting.")

		s.manager.handleDisconnect(s)

		close(s.done)

		if s.conn != nil {
			if err := s.conn.Close(); err != nil {
				s.logger.Info().Err(err).Msg("Connection close error")
			}
		}
	})
}

// enqueue places a marshaled frame on the outbound queue without blocking.
// It reports false if the session is disconnected or the queue is full.
func (s *Session) enqueue(frame []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.send <- frame:
		return true
	default:
		return false
	}
}

// sendEvent marshals the event and queues it for this session alone.
func (s *Session) sendEvent(evt Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		s.logger.Error().Err(err).Str("event_type", string(evt.Type)).Msg("Error marshaling event")
		return
	}

	if !s.enqueue(data) {
		s.logger.Warn().Str("event_type", string(evt.Type)).Msg("Send queue full, dropping event")
	}
}

// respondError sends an error acknowledgment of the given response type.
func (s *Session) respondError(ack EventType, customErr *errs.CustomError) {
	s.sendEvent(Event{Type: ack, Payload: ErrorPayload{Error: customErr.Message}})
}

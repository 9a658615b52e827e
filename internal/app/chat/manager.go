/*
Package chat contains the core logic for real-time chat sessions, room
membership, and message fan-out.

This file defines the Manager, the connection server core. It owns the
Registry, the Broadcaster, and the message store, tracks every live session,
and dispatches join-room, send-message, and disconnect with the ordering the
protocol requires: membership transitions are atomic, and a message is never
broadcast before the store has durably acknowledged it.
*/
package chat

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"parley/internal/app/message"
	"parley/internal/app/user"
	"parley/internal/pkg/errs"
	"parley/internal/pkg/logx"
)

const (
	// MaxMessageChars is the maximum allowed message text length.
	MaxMessageChars = 500

	// storeTimeout bounds every message store call made on behalf of a request.
	storeTimeout = 5 * time.Second
)

// Manager coordinates all live sessions and routes their requests.
type Manager struct {
	registry    *Registry
	broadcaster *Broadcaster
	store       message.Store

	// mu protects the sessions map.
	mu       sync.Mutex
	sessions map[string]*Session

	logger zerolog.Logger
}

// NewManager constructs a Manager backed by the given message store.
func NewManager(store message.Store) *Manager {
	return &Manager{
		registry:    NewRegistry(),
		broadcaster: NewBroadcaster(),
		store:       store,
		sessions:    make(map[string]*Session),
		logger:      logx.Logger().With().Str("component", "Manager").Logger(),
	}
}

// Connect creates a session for a connection whose credential has already
// been verified. Unverified connections must never reach this point.
func (m *Manager) Connect(conn *websocket.Conn, ident user.Identity) *Session {
	s := newSession(m, conn, ident)

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	m.logger.Info().
		Str("connection_id", s.id).
		Str("user_id", ident.ID).
		Str("username", ident.Username).
		Msg("Session created.")

	return s
}

// HandleJoin processes a join-room request. The membership switch is applied
// as one atomic registry step; remaining members of the prior room are told
// the user left, existing members of the new room are told the user joined,
// and the joiner alone receives the recent history plus the member list.
func (m *Manager) HandleJoin(s *Session, room string) {
	res, joinErr := m.registry.Join(s, room)
	if joinErr != nil {
		s.respondError(EventJoinResponse, joinErr)
		return
	}

	now := time.Now()

	if res.LeftRoom != "" {
		m.broadcaster.Fanout(res.LeftNotify, Event{
			Type:    EventUserLeft,
			Payload: PresencePayload{Username: s.identity.Username, Timestamp: now},
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	history, err := m.store.Recent(ctx, room, message.HistoryLimit)
	if err != nil {
		s.respondError(EventJoinResponse, errs.NewError(errs.ErrJoinFailed, err))
		return
	}

	m.broadcaster.Fanout(res.JoinNotify, Event{
		Type:    EventUserJoined,
		Payload: PresencePayload{Username: s.identity.Username, Timestamp: now},
	})

	msgs := make([]MessagePayload, 0, len(history))
	for _, h := range history {
		msgs = append(msgs, MessagePayload{
			ID:        h.ID,
			Username:  h.Username,
			Message:   h.Text,
			Timestamp: h.Timestamp,
		})
	}

	s.sendEvent(Event{
		Type: EventJoinResponse,
		Payload: JoinResponsePayload{
			Status:   "success",
			Room:     room,
			Messages: msgs,
			Users:    res.Members,
		},
	})
}

// HandleSend processes a send-message request: validate, persist, then fan
// out to every member of the room including the sender. If persistence fails
// the sender alone is told; no member sees a partial broadcast.
func (m *Manager) HandleSend(s *Session, text string) {
	room := m.registry.CurrentRoom(s)
	if room == "" {
		s.respondError(EventSendResponse, errs.NewError(errs.ErrNotInRoom))
		return
	}

	if text == "" || utf8.RuneCountInString(text) > MaxMessageChars {
		s.respondError(EventSendResponse, errs.NewError(errs.ErrMessageInvalid))
		return
	}

	msg := &message.Message{
		Room:     room,
		UserID:   s.identity.ID,
		Username: s.identity.Username,
		Text:     text,
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := m.store.Append(ctx, msg); err != nil {
		s.respondError(EventSendResponse, errs.NewError(errs.ErrMessageSaveFailed, err))
		return
	}

	// The store has acknowledged the write; fan out over the member snapshot
	// taken at dispatch time, sender included.
	m.broadcaster.Fanout(m.registry.Sessions(room), Event{
		Type: EventNewMessage,
		Payload: MessagePayload{
			ID:        msg.ID,
			Username:  msg.Username,
			Message:   msg.Text,
			Timestamp: msg.Timestamp,
		},
	})

	s.sendEvent(Event{Type: EventSendResponse, Payload: SendResponsePayload{Status: "success"}})
}

// Snapshot returns the current member list of a room.
func (m *Manager) Snapshot(room string) []Member {
	return m.registry.Snapshot(room)
}

// Shutdown closes every live session. Used during graceful server shutdown.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}

	m.logger.Info().Int("sessions", len(sessions)).Msg("All sessions closed.")
}

// handleDisconnect removes the session's membership and notifies the
// remaining members. Invoked exactly once per session via Session.Close.
func (m *Manager) handleDisconnect(s *Session) {
	m.mu.Lock()
	delete(m.sessions, s.id)
	m.mu.Unlock()

	room, remaining := m.registry.Leave(s)
	if room != "" {
		m.broadcaster.Fanout(remaining, Event{
			Type:    EventUserLeft,
			Payload: PresencePayload{Username: s.identity.Username, Timestamp: time.Now()},
		})
	}

	m.logger.Info().
		Str("connection_id", s.id).
		Str("user_id", s.identity.ID).
		Msg("Session disconnected.")
}

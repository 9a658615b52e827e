/*
Package chat contains the core logic for real-time chat sessions, room
membership, and message fan-out.

This file defines the wire protocol: the JSON envelope exchanged over a
session channel and the payload types for requests, responses, and events.
*/
package chat

import "time"

// EventType discriminates the envelopes sent to clients.
type EventType string

const (
	// EventJoinResponse acknowledges a join-room request, carrying either the
	// room snapshot plus recent history or an error.
	EventJoinResponse EventType = "join-response"

	// EventSendResponse acknowledges a send-message request.
	EventSendResponse EventType = "send-response"

	// EventNewMessage delivers a persisted chat message to room members.
	EventNewMessage EventType = "new-message"

	// EventUserJoined notifies existing room members of a new member.
	EventUserJoined EventType = "user-joined"

	// EventUserLeft notifies remaining room members of a departure.
	EventUserLeft EventType = "user-left"

	// EventError reports a request that could not be attributed to a
	// well-formed join-room or send-message request.
	EventError EventType = "error"
)

// Inbound request types accepted from clients.
const (
	requestJoinRoom    = "join-room"
	requestSendMessage = "send-message"
)

// Event is the envelope for every server-to-client frame.
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload"`
}

// Member is one entry of a room membership snapshot.
type Member struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// MessagePayload is the client-facing shape of a persisted chat message.
type MessagePayload struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// PresencePayload is the body of user-joined and user-left events.
type PresencePayload struct {
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}

// JoinResponsePayload is the private response delivered to a joining session:
// the recent history of the room oldest-first plus the full member list,
// including the joiner itself.
type JoinResponsePayload struct {
	Status   string           `json:"status"`
	Room     string           `json:"room"`
	Messages []MessagePayload `json:"messages"`
	Users    []Member         `json:"users"`
}

// SendResponsePayload acknowledges a successfully persisted message.
type SendResponsePayload struct {
	Status string `json:"status"`
}

// ErrorPayload is the body of every error acknowledgment.
type ErrorPayload struct {
	Error string `json:"error"`
}

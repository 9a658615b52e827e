/*
Package message defines the chat message domain type and the durable store
contract it is persisted through.

The store is append-only: messages are immutable once written, and retrieval
per room is ordered by timestamp with insertion order breaking ties.
*/
package message

import (
	"context"
	"time"
)

// HistoryLimit is the number of recent messages returned to a joining session.
const HistoryLimit = 50

// Message is one persisted chat message. ID and Timestamp are assigned by the
// store at persistence time and must not be set by callers.
type Message struct {
	ID        string    `json:"id"`
	Room      string    `json:"room"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Text      string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Store is the durable append-only message log.
type Store interface {
	// Append persists the message, filling in its ID and Timestamp.
	// The message must not be considered delivered until Append returns nil.
	Append(ctx context.Context, m *Message) error

	// Recent returns up to limit most recent messages for the room,
	// ordered oldest first.
	Recent(ctx context.Context, room string, limit int) ([]Message, error)
}

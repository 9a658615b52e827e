package chat

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parley/internal/app/message"
	"parley/internal/app/user"
)

// MockStore is a testify mock implementation of the message.Store interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Append(ctx context.Context, msg *message.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockStore) Recent(ctx context.Context, room string, limit int) ([]message.Message, error) {
	args := m.Called(ctx, room, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]message.Message), args.Error(1)
}

// newTestSession builds a session without a WebSocket connection. Events end
// up on the send queue, where tests read them back.
func newTestSession(m *Manager, id, username string) *Session {
	return m.Connect(nil, user.Identity{ID: id, Username: username})
}

// rawEvent mirrors the Event envelope with the payload left undecoded.
type rawEvent struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// recvEvent pops the next queued event of the session, failing if there is none.
func recvEvent(t *testing.T, s *Session) rawEvent {
	t.Helper()

	select {
	case data := <-s.send:
		var evt rawEvent
		require.NoError(t, json.Unmarshal(data, &evt))
		return evt
	default:
		t.Fatal("expected a queued event, got none")
		return rawEvent{}
	}
}

// requireNoEvent asserts that the session has nothing queued.
func requireNoEvent(t *testing.T, s *Session) {
	t.Helper()

	select {
	case data := <-s.send:
		t.Fatalf("unexpected event queued: %s", data)
	default:
	}
}

// drain discards everything currently queued on the session.
func drain(s *Session) {
	for {
		select {
		case <-s.send:
		default:
			return
		}
	}
}

// decodePayload unmarshals an event payload into the given shape.
func decodePayload[T any](t *testing.T, evt rawEvent) T {
	t.Helper()

	var payload T
	require.NoError(t, json.Unmarshal(evt.Payload, &payload))
	return payload
}

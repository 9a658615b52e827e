/*
Package chat contains the core logic for real-time chat sessions, room
membership, and message fan-out.

This file defines the Broadcaster, the multicast primitive that delivers one
event to a snapshot of member sessions.
*/
package chat

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"parley/internal/pkg/logx"
)

// Broadcaster delivers events to sets of live sessions. Delivery is
// fire-and-forget: each target has a bounded outbound queue, and a slow or
// closed member never blocks or aborts delivery to the rest.
type Broadcaster struct {
	logger zerolog.Logger
}

// NewBroadcaster constructs a Broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		logger: logx.Logger().With().Str("component", "Broadcaster").Logger(),
	}
}

// Fanout marshals the event once and enqueues it on every target session.
func (b *Broadcaster) Fanout(targets []*Session, evt Event) {
	if len(targets) == 0 {
		return
	}

	data, err := json.Marshal(evt)
	if err != nil {
		b.logger.Error().
			Err(err).
			Str("event_type", string(evt.Type)).
			Msg("Failed to marshal event for fan-out.")
		return
	}

	for _, s := range targets {
		if !s.enqueue(data) {
			b.logger.Warn().
				Str("connection_id", s.id).
				Str("event_type", string(evt.Type)).
				Msg("Dropped event for slow or closed session.")
		}
	}
}

/*
Package chat contains the core logic for real-time chat sessions, room
membership, and message fan-out.

This file defines the Registry, the authoritative in-memory mapping of room
name to member sessions. All membership mutation goes through the Registry
under a single mutex: a session appears in at most one room at any instant,
a room switch is one atomic leave-then-join step, and a room whose member
set becomes empty is deleted. The underlying map is never exposed.
*/
package chat

import (
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"parley/internal/pkg/errs"
	"parley/internal/pkg/logx"
)

// MaxRoomNameChars is the maximum allowed room name length.
const MaxRoomNameChars = 20

// Registry is the single owner of all room membership state.
type Registry struct {
	// mu serializes every membership mutation and snapshot.
	mu sync.Mutex

	// rooms maps a room name to its member sessions in join order.
	rooms map[string][]*Session

	logger zerolog.Logger
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms:  make(map[string][]*Session),
		logger: logx.Logger().With().Str("component", "Registry").Logger(),
	}
}

// JoinResult describes one committed membership transition. The notify slices
// are snapshots taken while the transition was applied, so presence events
// reach exactly the sessions that observed it.
type JoinResult struct {
	// Room is the room that was joined.
	Room string

	// LeftRoom is the room implicitly left, or empty if there was none.
	LeftRoom string

	// LeftNotify holds the members remaining in LeftRoom.
	LeftNotify []*Session

	// JoinNotify holds the members of Room present before the join.
	JoinNotify []*Session

	// Members is the full member list of Room after the join, joiner included.
	Members []Member
}

// Join moves the session into the named room as one serialized step: any
// prior room is left first, and no observer ever sees the session in two
// rooms or in none while it switches. Joining the current room again leaves
// membership untouched but still returns a fresh snapshot and re-announces
// the join.
func (r *Registry) Join(s *Session, room string) (JoinResult, *errs.CustomError) {
	if room == "" || utf8.RuneCountInString(room) > MaxRoomNameChars {
		return JoinResult{}, errs.NewError(errs.ErrRoomNameInvalid)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	res := JoinResult{Room: room}

	if s.currentRoom == room {
		res.JoinNotify = r.othersLocked(room, s)
		res.Members = r.membersLocked(room)
		return res, nil
	}

	if prior := s.currentRoom; prior != "" {
		res.LeftRoom = prior
		res.LeftNotify = r.removeLocked(s, prior)
	}

	// An earlier connection of the same user in the target room is superseded:
	// its membership entry is dropped so the member set stays keyed by user.
	members := r.rooms[room]
	kept := make([]*Session, 0, len(members)+1)
	for _, m := range members {
		if m.identity.ID == s.identity.ID {
			m.currentRoom = ""
			r.logger.Warn().
				Str("room", room).
				Str("user_id", m.identity.ID).
				Msg("Superseding earlier connection of the same user.")
			continue
		}
		kept = append(kept, m)
	}

	res.JoinNotify = append([]*Session(nil), kept...)
	r.rooms[room] = append(kept, s)
	s.currentRoom = room
	res.Members = r.membersLocked(room)

	r.logger.Info().
		Str("room", room).
		Str("user_id", s.identity.ID).
		Int("members", len(res.Members)).
		Msg("Session joined room.")

	return res, nil
}

// Leave removes the session from its current room, if any. It returns the
// room that was left and the members remaining in it.
func (r *Registry) Leave(s *Session) (string, []*Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := s.currentRoom
	if room == "" {
		return "", nil
	}

	s.currentRoom = ""
	remaining := r.removeLocked(s, room)

	r.logger.Info().
		Str("room", room).
		Str("user_id", s.identity.ID).
		Int("members", len(remaining)).
		Msg("Session left room.")

	return room, remaining
}

// Snapshot returns the current member list of the room, in join order.
func (r *Registry) Snapshot(room string) []Member {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.membersLocked(room)
}

// Sessions returns the member sessions of the room at this instant, used as
// the fan-out target set for message delivery.
func (r *Registry) Sessions(room string) []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]*Session(nil), r.rooms[room]...)
}

// CurrentRoom returns the room the session currently occupies, or empty.
func (r *Registry) CurrentRoom(s *Session) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return s.currentRoom
}

// removeLocked removes the session from the named room, deleting the room
// once its member set is empty, and returns the remaining member sessions.
func (r *Registry) removeLocked(s *Session, room string) []*Session {
	members := r.rooms[room]

	kept := make([]*Session, 0, len(members))
	for _, m := range members {
		if m != s {
			kept = append(kept, m)
		}
	}

	if len(kept) == 0 {
		delete(r.rooms, room)
		r.logger.Info().Str("room", room).Msg("Room emptied and removed.")
		return nil
	}

	r.rooms[room] = kept
	return append([]*Session(nil), kept...)
}

// membersLocked builds the membership snapshot of the room.
func (r *Registry) membersLocked(room string) []Member {
	members := r.rooms[room]

	snapshot := make([]Member, 0, len(members))
	for _, m := range members {
		snapshot = append(snapshot, Member{ID: m.identity.ID, Username: m.identity.Username})
	}

	return snapshot
}

// othersLocked returns the member sessions of the room excluding s.
func (r *Registry) othersLocked(room string, s *Session) []*Session {
	members := r.rooms[room]

	others := make([]*Session, 0, len(members))
	for _, m := range members {
		if m != s {
			others = append(others, m)
		}
	}

	return others
}

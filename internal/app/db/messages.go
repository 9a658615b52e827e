package db

import (
	"context"
	"fmt"

	"parley/internal/app/message"
	"parley/internal/pkg/randx"
)

// Append persists the message, assigning its ID here and its timestamp at the
// database. The seq column breaks ordering ties between messages persisted in
// the same instant. Queries satisfies the message.Store interface.
func (q *Queries) Append(ctx context.Context, m *message.Message) error {
	m.ID = randx.MessageID()

	row := q.pool.QueryRow(ctx, `
		INSERT INTO messages (id, room, user_id, username, body)
		VALUES ($1::uuid, $2, $3::uuid, $4, $5)
		RETURNING created_at`,
		m.ID, m.Room, m.UserID, m.Username, m.Text,
	)

	if err := row.Scan(&m.Timestamp); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	return nil
}

// Recent returns up to limit most recent messages for the room, oldest first.
func (q *Queries) Recent(ctx context.Context, room string, limit int) ([]message.Message, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT id::text, room, user_id::text, username, body, created_at
		FROM (
			SELECT id, room, user_id, username, body, created_at, seq
			FROM messages
			WHERE room = $1
			ORDER BY created_at DESC, seq DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC, seq ASC`,
		room, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent messages: %w", err)
	}
	defer rows.Close()

	var messages []message.Message
	for rows.Next() {
		var m message.Message
		if err := rows.Scan(&m.ID, &m.Room, &m.UserID, &m.Username, &m.Text, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate message rows: %w", err)
	}

	return messages, nil
}

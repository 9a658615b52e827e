package db

import (
	"context"
	"fmt"
	"time"

	"parley/internal/app/user"
	"parley/internal/pkg/randx"
)

// UserRecord is one row of the users table, including the credential hash.
// It is only handed to the authentication handlers, never to chat code.
type UserRecord struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateUser inserts a new user with a generated ID. Usernames are unique
// case-insensitively; violations surface as a unique-constraint error.
func (q *Queries) CreateUser(ctx context.Context, username, passwordHash string) (UserRecord, error) {
	rec := UserRecord{
		ID:           randx.UserID(),
		Username:     username,
		PasswordHash: passwordHash,
	}

	row := q.pool.QueryRow(ctx, `
		INSERT INTO users (id, username, password_hash)
		VALUES ($1::uuid, $2, $3)
		RETURNING created_at`,
		rec.ID, rec.Username, rec.PasswordHash,
	)

	if err := row.Scan(&rec.CreatedAt); err != nil {
		return UserRecord{}, fmt.Errorf("insert user: %w", err)
	}

	return rec, nil
}

// GetUserByUsername fetches a user record by case-insensitive username match.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (UserRecord, error) {
	var rec UserRecord

	row := q.pool.QueryRow(ctx, `
		SELECT id::text, username, password_hash, created_at
		FROM users
		WHERE lower(username) = lower($1)`,
		username,
	)

	if err := row.Scan(&rec.ID, &rec.Username, &rec.PasswordHash, &rec.CreatedAt); err != nil {
		return UserRecord{}, fmt.Errorf("select user by username: %w", err)
	}

	return rec, nil
}

// GetUserByID resolves a user ID to its identity. Used by the identity
// verifier after token validation.
func (q *Queries) GetUserByID(ctx context.Context, id string) (user.Identity, error) {
	var ident user.Identity

	row := q.pool.QueryRow(ctx, `
		SELECT id::text, username
		FROM users
		WHERE id = $1::uuid`,
		id,
	)

	if err := row.Scan(&ident.ID, &ident.Username); err != nil {
		return user.Identity{}, fmt.Errorf("select user by id: %w", err)
	}

	return ident, nil
}

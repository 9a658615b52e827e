/*
Package randx provides generation of unique identifiers.

It wraps UUID v4 generation for message, user, and connection identifiers so
that the rest of the application does not depend on the uuid package directly.
*/
package randx

import "github.com/google/uuid"

// MessageID generates a UUID v4 string to serve as a unique message identifier.
func MessageID() string {
	return uuid.New().String()
}

// UserID generates a UUID v4 string to serve as a unique user identifier.
func UserID() string {
	return uuid.New().String()
}

// ConnectionID generates a UUID v4 string identifying one live connection.
// A user connecting twice yields two distinct connection IDs.
func ConnectionID() string {
	return uuid.New().String()
}

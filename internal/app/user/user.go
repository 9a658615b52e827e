/*
Package user contains core data structures related to user identity.

It defines the Identity struct, the resolved identity of an authenticated
chat participant, used for passing user information both internally and to clients.
*/
package user

// Identity represents the resolved identity of an authenticated participant.
// It is immutable for the lifetime of a connection once the bearer credential
// has been verified.
type Identity struct {

	// ID is the unique identifier of the user (UUID string).
	ID string `json:"id"`

	// Username is the display name shown in chat rooms.
	Username string `json:"username"`
}

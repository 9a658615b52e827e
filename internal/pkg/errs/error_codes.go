/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Room and Message Business Logic Errors
const (
	// ErrRoomNameInvalid indicates that a room name is empty or exceeds the length limit.
	ErrRoomNameInvalid = 2101

	// ErrNotInRoom indicates a message was sent by a session that has not joined any room.
	ErrNotInRoom = 2102

	// ErrJoinFailed indicates that joining a room failed for an internal reason.
	ErrJoinFailed = 2103

	// ErrMessageInvalid indicates that message text is empty or exceeds the length limit.
	ErrMessageInvalid = 2201

	// ErrMessageSaveFailed indicates that persisting a message to the store failed.
	ErrMessageSaveFailed = 2202
)

// 3xxx: Authentication and Account Errors
const (
	// ErrTokenMissing indicates that no bearer credential was supplied at handshake.
	ErrTokenMissing = 3001

	// ErrTokenInvalid indicates a malformed or wrongly signed credential.
	ErrTokenInvalid = 3002

	// ErrTokenExpired indicates that the supplied credential has expired.
	ErrTokenExpired = 3003

	// ErrUserNotFound indicates that a valid credential resolves to no existing user.
	ErrUserNotFound = 3004

	// ErrInvalidUsername indicates a registration username that fails validation.
	ErrInvalidUsername = 3101

	// ErrInvalidPassword indicates a registration password that fails validation.
	ErrInvalidPassword = 3102

	// ErrUserAlreadyExists indicates the registration username is already taken.
	ErrUserAlreadyExists = 3103

	// ErrInvalidCredentials indicates a failed username/password login attempt.
	ErrInvalidCredentials = 3104
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)

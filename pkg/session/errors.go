package session

import "errors"

var (
	// ErrSessionNotFound indicates no live session exists for the token.
	ErrSessionNotFound = errors.New("session: not found")

	// ErrSessionExpired indicates the session's expiry has passed.
	// Collapsed into "anonymous" at the middleware boundary.
	ErrSessionExpired = errors.New("session: expired")

	// ErrInvalidSession indicates a structurally unusable record.
	ErrInvalidSession = errors.New("session: invalid record")

	// ErrTokenTaken indicates a create collided with a live token.
	ErrTokenTaken = errors.New("session: token already live")

	// ErrNoToken indicates the request carries no session token.
	ErrNoToken = errors.New("session: no token presented")

	// ErrTokenGeneration indicates the random source failed.
	ErrTokenGeneration = errors.New("session: token generation failed")

	// ErrStoreUnavailable indicates the backing store is unreachable or
	// timed out; distinct from any authentication outcome.
	ErrStoreUnavailable = errors.New("session: backing store unavailable")

	// ErrIdentifierRevoked is the definitive signal from an
	// IdentifierValidator that the identity behind a session is gone.
	// Only this error destroys the session; a validator that merely
	// could not check must return something else.
	ErrIdentifierRevoked = errors.New("session: identifier no longer valid")
)

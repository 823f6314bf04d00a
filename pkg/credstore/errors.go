package credstore

import "errors"

var (
	// ErrIdentityNotFound indicates no record exists for the identifier.
	ErrIdentityNotFound = errors.New("credstore: identity not found")

	// ErrDuplicateIdentity indicates the identifier is already registered.
	ErrDuplicateIdentity = errors.New("credstore: identity already exists")

	// ErrInvalidIdentity indicates a structurally unusable record (empty email or hash).
	ErrInvalidIdentity = errors.New("credstore: invalid identity record")

	// ErrStoreUnavailable indicates the backing store is unreachable or timed out.
	// Distinct from a credentials failure so operators can tell outages from attacks.
	ErrStoreUnavailable = errors.New("credstore: backing store unavailable")
)

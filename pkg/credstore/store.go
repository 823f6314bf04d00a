package credstore

import "context"

// Store is the credential record boundary. Implementations own the
// Identity records exclusively; callers receive copies.
//
// Lookups are by exact normalized email. Caller-supplied identifiers are
// always passed as query parameters, never interpolated into query text.
type Store interface {
	// FindByEmail returns the identity for the normalized email, or
	// ErrIdentityNotFound. Callers must not surface the distinction
	// between "unknown" and "known" to clients.
	FindByEmail(ctx context.Context, email string) (*Identity, error)

	// Insert persists a new identity. A concurrent or prior insert of
	// the same email yields ErrDuplicateIdentity; the uniqueness
	// invariant holds regardless of submission ordering.
	Insert(ctx context.Context, identity *Identity) error

	// UpdatePasswordHash replaces the stored hash for an existing
	// identity, the only mutation identities undergo.
	UpdatePasswordHash(ctx context.Context, email, passwordHash string) error
}

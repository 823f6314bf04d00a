package session

import (
	"context"
	"time"
)

// Store persists session records keyed by opaque token.
//
// Implementations must treat an expired record as absent from Get
// onward; DeleteExpired only bounds storage growth, correctness never
// depends on sweep timeliness. Operations on the same token are
// linearizable: no caller observes a torn data bag.
type Store interface {
	// Create stores a new session. The token must not be live;
	// check-and-insert is atomic and a collision yields ErrTokenTaken.
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by token. Absent → ErrSessionNotFound,
	// past expiry → ErrSessionExpired; neither resurrects the record.
	Get(ctx context.Context, token string) (*Session, error)

	// Update replaces the stored record (data bag, expiry) for an
	// existing live session.
	Update(ctx context.Context, session *Session) error

	// Touch extends the session's expiry. No-op when the session is
	// already absent or expired.
	Touch(ctx context.Context, token string, extendTo time.Time) error

	// UpdateActivity records the last activity time without touching expiry.
	UpdateActivity(ctx context.Context, token string, lastActivity time.Time) error

	// Delete removes the record. Idempotent: unknown tokens are not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired reclaims records past their expiry.
	DeleteExpired(ctx context.Context) error

	// DeleteByIdentifier removes every session for a principal
	// identifier (logout-everywhere, password change revocation).
	DeleteByIdentifier(ctx context.Context, identifier string) error
}

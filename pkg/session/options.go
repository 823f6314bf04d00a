package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/chirpweb/authkit/pkg/cookie"
)

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithStore sets the session store. Defaults to an in-memory store.
func WithStore(store Store) Option {
	return func(m *Manager) { m.store = store }
}

// WithTransport sets the token transport, replacing the default signed
// cookie transport.
func WithTransport(transport Transport) Option {
	return func(m *Manager) { m.transport = transport }
}

// WithConfig replaces the whole lifecycle configuration.
func WithConfig(config Config) Option {
	return func(m *Manager) { m.config = config }
}

// WithCookieManager supplies the cookie manager backing the default
// transport.
func WithCookieManager(cookies *cookie.Manager) Option {
	return func(m *Manager) { m.cookies = cookies }
}

// WithTTL sets the session lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.config.TTL = ttl }
}

// WithCookieName sets the session cookie name.
func WithCookieName(name string) Option {
	return func(m *Manager) { m.config.CookieName = name }
}

// WithTouchThreshold sets the minimum interval between persisted
// activity updates.
func WithTouchThreshold(threshold time.Duration) Option {
	return func(m *Manager) { m.config.TouchThreshold = threshold }
}

// WithLogger sets the logger for background-path failures.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// IdentifierValidator re-checks that a session's cached identifier still
// resolves to a live identity. Returning ErrIdentifierRevoked destroys
// the session; any other error means the check could not run and
// surfaces to the caller as a resolution failure.
type IdentifierValidator func(ctx context.Context, identifier string) error

// WithIdentifierValidator enables per-request revalidation of session
// identifiers against the credential store. Deployments that tolerate
// briefly stale sessions after identity deletion leave it unset.
func WithIdentifierValidator(fn IdentifierValidator) Option {
	return func(m *Manager) { m.validator = fn }
}

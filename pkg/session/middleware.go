package session

import (
	"errors"
	"net/http"

	"github.com/chirpweb/authkit/pkg/logger"
)

// Middleware resolves the request's token and attaches the session to
// the request context. An absent, expired, or unverifiable token means
// the request proceeds anonymously and the stale client token is
// cleared; a store outage is a server error, never silent anonymity.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.Resolve(r.Context(), r)
		switch {
		case err == nil:
			if m.shouldRecordActivity(session) {
				m.queueActivity(session.Token)
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))

		case errors.Is(err, ErrNoToken):
			next.ServeHTTP(w, r)

		case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrSessionExpired):
			_ = m.transport.ClearToken(w)
			next.ServeHTTP(w, r)

		default:
			m.log.ErrorContext(r.Context(), "session resolution failed",
				logger.Error(err),
				logger.Component("session"),
			)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	})
}

// RequireAuth rejects requests without an authenticated session. Chain
// it after Middleware or use it standalone.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := FromContext(r.Context())
		if !ok {
			var err error
			session, err = m.Resolve(r.Context(), r)
			switch {
			case err == nil:
				r = r.WithContext(WithSession(r.Context(), session))
			case errors.Is(err, ErrNoToken), errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrSessionExpired):
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			default:
				// An unresolvable session is a server fault, not a
				// missing login.
				m.log.ErrorContext(r.Context(), "session resolution failed",
					logger.Error(err),
					logger.Component("session"),
				)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}

		if !session.IsAuthenticated() {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/chirpweb/authkit/pkg/cookie"
	"github.com/chirpweb/authkit/pkg/logger"
)

// Manager orchestrates the session lifecycle per request: resolving an
// incoming token to a session, minting fresh sessions on login, and
// destroying them on logout. Store and transport are injected; the
// manager holds no per-request state and is safe for concurrent use.
type Manager struct {
	store      Store
	transport  Transport
	cookies    *cookie.Manager
	config     Config
	validator  IdentifierValidator
	log        *slog.Logger
	activityCh chan activityUpdate
	done       chan struct{}
	closeOnce  sync.Once
}

type activityUpdate struct {
	token string
	at    time.Time
}

// New creates a session manager. Without WithTransport, a signed cookie
// transport is built from the cookie manager; construction fails if
// neither is supplied, rather than falling back to an unsigned carrier.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{
		config:     DefaultConfig(),
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		activityCh: make(chan activityUpdate, 1024),
		done:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
	}

	if m.transport == nil {
		if m.cookies == nil {
			if len(m.config.Secrets) == 0 {
				return nil, ErrNoTokenCarrier
			}
			var err error
			m.cookies, err = cookie.New(m.config.Secrets)
			if err != nil {
				return nil, err
			}
		}
		m.transport = NewCookieTransport(m.cookies, m.config.CookieName, m.config.SecureCookies)
	}

	go m.activityWorker()

	return m, nil
}

// NewFromConfig creates a Manager from an environment-loaded Config.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}

// ErrNoTokenCarrier rejects construction without any way to carry tokens.
var ErrNoTokenCarrier = errors.New("session: no transport and no cookie secrets configured")

// Login mints a session for the identifier and instructs the transport
// to remember its token. Any token the client already presented is
// destroyed first and never reused, so a pre-login token planted by an
// attacker can't ride into the authenticated session.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, r *http.Request, identifier string) (*Session, error) {
	if old, err := m.transport.GetToken(r); err == nil && old != "" {
		if err := m.store.Delete(ctx, old); err != nil {
			return nil, err
		}
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	session := NewSession(token, identifier, m.config.TTL)
	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}

	if err := m.transport.SetToken(w, token, m.config.TTL); err != nil {
		// All-or-nothing: a session the client never learned about must
		// not stay live.
		_ = m.store.Delete(ctx, token)
		return nil, err
	}

	return session, nil
}

// Resolve maps the request's token to its live session. ErrNoToken,
// ErrSessionNotFound, and ErrSessionExpired are the anonymous outcomes;
// ErrStoreUnavailable is not and must surface as a server failure.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}

	session, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if m.validator != nil && session.IsAuthenticated() {
		if err := m.validator(ctx, session.Identifier); err != nil {
			if errors.Is(err, ErrIdentifierRevoked) {
				// The identity behind the session is gone; the session
				// is invalid, not dangling.
				_ = m.store.Delete(ctx, token)
				return nil, ErrSessionNotFound
			}
			// Revalidation could not run. A credential-store outage
			// must not read as a logout.
			return nil, err
		}
	}

	return session, nil
}

// Logout destroys the presented session and clears the client-held
// token. Idempotent: requests without a live session still succeed.
func (m *Manager) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, err := m.transport.GetToken(r); err == nil && token != "" {
		if err := m.store.Delete(ctx, token); err != nil {
			return err
		}
	}
	return m.transport.ClearToken(w)
}

// Refresh extends the session's expiry by a full TTL and re-issues the
// token to the client.
func (m *Manager) Refresh(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	session, err := m.Resolve(ctx, r)
	if err != nil {
		return err
	}

	if err := m.store.Touch(ctx, session.Token, time.Now().Add(m.config.TTL)); err != nil {
		return err
	}

	return m.transport.SetToken(w, session.Token, m.config.TTL)
}

// SetValue writes a key into the session's data bag and persists it.
func (m *Manager) SetValue(ctx context.Context, r *http.Request, key string, value any) error {
	session, err := m.Resolve(ctx, r)
	if err != nil {
		return err
	}

	session.Set(key, value)
	return m.store.Update(ctx, session)
}

// RevokeIdentifier destroys every live session belonging to the
// identifier, for logout-everywhere and password-change revocation.
func (m *Manager) RevokeIdentifier(ctx context.Context, identifier string) error {
	return m.store.DeleteByIdentifier(ctx, identifier)
}

func (m *Manager) shouldRecordActivity(session *Session) bool {
	return time.Since(session.LastActivityAt) >= m.config.TouchThreshold
}

func (m *Manager) queueActivity(token string) {
	select {
	case m.activityCh <- activityUpdate{token: token, at: time.Now()}:
	default:
		// Dropping an activity sample beats blocking a request.
	}
}

func (m *Manager) activityWorker() {
	for {
		select {
		case update := <-m.activityCh:
			m.applyActivity(update)
		case <-m.done:
			for {
				select {
				case update := <-m.activityCh:
					m.applyActivity(update)
				default:
					return
				}
			}
		}
	}
}

func (m *Manager) applyActivity(update activityUpdate) {
	err := m.store.UpdateActivity(context.Background(), update.token, update.at)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		m.log.Error("failed to record session activity",
			logger.SessionID(update.token),
			logger.Error(err),
			logger.Component("session"),
		)
	}
}

// Close drains pending activity updates and stops the worker.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() { close(m.done) })
	return nil
}

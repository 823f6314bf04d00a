package authn

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/chirpweb/authkit/pkg/credstore"
	"github.com/chirpweb/authkit/pkg/hasher"
	"github.com/chirpweb/authkit/pkg/logger"
)

// Strategy validates a submitted credential against the store through
// the hasher. Both collaborators are injected at construction; the
// strategy holds no mutable state and is safe for concurrent use.
type Strategy struct {
	credentials credstore.Store
	hasher      hasher.Hasher
	log         *slog.Logger
}

// StrategyOption configures a Strategy.
type StrategyOption func(*Strategy)

// WithLogger sets the logger for server-side failure reporting.
func WithLogger(log *slog.Logger) StrategyOption {
	return func(s *Strategy) {
		if log != nil {
			s.log = log
		}
	}
}

// NewStrategy creates the authentication strategy.
func NewStrategy(credentials credstore.Store, h hasher.Hasher, opts ...StrategyOption) *Strategy {
	s := &Strategy{
		credentials: credentials,
		hasher:      h,
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authenticate checks the identifier/secret pair.
//
// Rejections are always ErrInvalidCredentials regardless of which step
// failed. When the identifier is unknown, a dummy verification of
// equivalent cost runs before rejecting, so the unknown-identifier and
// wrong-secret paths stay close in timing.
//
// Store outages (credstore.ErrStoreUnavailable) and corrupt hash records
// (hasher.ErrHashCorrupt) propagate as distinct server-side failures;
// neither is ever collapsed into a credentials rejection or a match.
func (s *Strategy) Authenticate(ctx context.Context, email, secret string) (Principal, error) {
	email = credstore.NormalizeEmail(email)

	identity, err := s.credentials.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, credstore.ErrIdentityNotFound) {
			s.hasher.DummyVerify(ctx)
			return Principal{}, ErrInvalidCredentials
		}
		return Principal{}, err
	}

	ok, err := s.hasher.Verify(ctx, secret, identity.PasswordHash)
	if err != nil {
		if errors.Is(err, hasher.ErrHashCorrupt) {
			// Data corruption, not a bad login. Fail closed and make noise.
			s.log.ErrorContext(ctx, "stored password hash is corrupt",
				logger.Email(email),
				logger.Error(err),
				logger.Component("authn"),
			)
		}
		return Principal{}, err
	}
	if !ok {
		return Principal{}, ErrInvalidCredentials
	}

	return principalFrom(identity), nil
}
